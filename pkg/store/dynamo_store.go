package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
)

// DynamoAPI is the subset of *dynamodb.Client the store calls.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type DynamoTables struct {
	Sensor       string
	SleepRecords string
	Analysis     string
}

type DynamoStore struct {
	Client DynamoAPI
	Tables DynamoTables
}

func NewDynamoStore(client DynamoAPI, tables DynamoTables) (*DynamoStore, error) {
	if client == nil {
		return nil, fmt.Errorf("dynamodb client is not initialized")
	}
	if tables.Sensor == "" {
		return nil, fmt.Errorf("%s is not set", common.EnvKeyDynamoSensorTable)
	}
	if tables.SleepRecords == "" {
		return nil, fmt.Errorf("%s is not set", common.EnvKeyDynamoSleepRecordsTable)
	}
	if tables.Analysis == "" {
		return nil, fmt.Errorf("%s is not set", common.EnvKeyDynamoAnalysisTable)
	}
	return &DynamoStore{Client: client, Tables: tables}, nil
}

// toAttributeValue maps json.Number to N so sensor decimals keep their text.
func toAttributeValue(v any) (types.AttributeValue, error) {
	switch val := v.(type) {
	case json.Number:
		return &types.AttributeValueMemberN{Value: val.String()}, nil
	case map[string]any:
		m := make(map[string]types.AttributeValue, len(val))
		for k, inner := range val {
			av, err := toAttributeValue(inner)
			if err != nil {
				return nil, err
			}
			m[k] = av
		}
		return &types.AttributeValueMemberM{Value: m}, nil
	case []any:
		l := make([]types.AttributeValue, 0, len(val))
		for _, inner := range val {
			av, err := toAttributeValue(inner)
			if err != nil {
				return nil, err
			}
			l = append(l, av)
		}
		return &types.AttributeValueMemberL{Value: l}, nil
	default:
		return attributevalue.Marshal(v)
	}
}

func fromAttributeValue(v types.AttributeValue) (any, error) {
	switch av := v.(type) {
	case *types.AttributeValueMemberN:
		return json.Number(av.Value), nil
	case *types.AttributeValueMemberS:
		return av.Value, nil
	case *types.AttributeValueMemberBOOL:
		return av.Value, nil
	case *types.AttributeValueMemberNULL:
		return nil, nil
	case *types.AttributeValueMemberM:
		m := make(map[string]any, len(av.Value))
		for k, inner := range av.Value {
			decoded, err := fromAttributeValue(inner)
			if err != nil {
				return nil, err
			}
			m[k] = decoded
		}
		return m, nil
	case *types.AttributeValueMemberL:
		l := make([]any, 0, len(av.Value))
		for _, inner := range av.Value {
			decoded, err := fromAttributeValue(inner)
			if err != nil {
				return nil, err
			}
			l = append(l, decoded)
		}
		return l, nil
	default:
		var out any
		err := attributevalue.Unmarshal(v, &out)
		return out, err
	}
}

func sensorItem(reading models.SensorReading) (map[string]types.AttributeValue, error) {
	item := make(map[string]types.AttributeValue, len(reading.Fields)+2)
	for k, v := range reading.Fields {
		av, err := toAttributeValue(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal sensor field %q: %w", k, err)
		}
		item[k] = av
	}
	item[models.FieldClientUUID] = &types.AttributeValueMemberS{Value: reading.ClientID}
	item[models.FieldTime] = &types.AttributeValueMemberN{Value: strconv.FormatInt(reading.Time, 10)}
	return item, nil
}

func sensorFromItem(item map[string]types.AttributeValue) (models.SensorReading, error) {
	reading := models.SensorReading{Fields: map[string]any{}}
	for k, av := range item {
		switch k {
		case models.FieldClientUUID:
			if s, ok := av.(*types.AttributeValueMemberS); ok {
				reading.ClientID = s.Value
			}
		case models.FieldTime:
			n, ok := av.(*types.AttributeValueMemberN)
			if !ok {
				return reading, fmt.Errorf("sensor item time is not a number")
			}
			t, err := strconv.ParseInt(n.Value, 10, 64)
			if err != nil {
				return reading, fmt.Errorf("failed to parse sensor item time: %w", err)
			}
			reading.Time = t
		default:
			v, err := fromAttributeValue(av)
			if err != nil {
				return reading, err
			}
			reading.Fields[k] = v
		}
	}
	return reading, nil
}

func (s *DynamoStore) PutSensorReading(ctx context.Context, reading models.SensorReading) error {
	item, err := sensorItem(reading)
	if err != nil {
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.Sensor),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store sensor reading in dynamodb: %w", err)
	}
	return nil
}

func (s *DynamoStore) QuerySensorReadings(ctx context.Context, clientID string, from, to int64) ([]models.SensorReading, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Sensor),
		KeyConditionExpression: aws.String("client_uuid = :client AND #t BETWEEN :from AND :to"),
		ExpressionAttributeNames: map[string]string{
			"#t": models.FieldTime,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":client": &types.AttributeValueMemberS{Value: clientID},
			":from":   &types.AttributeValueMemberN{Value: strconv.FormatInt(from, 10)},
			":to":     &types.AttributeValueMemberN{Value: strconv.FormatInt(to, 10)},
		},
	}

	readings := []models.SensorReading{}
	paginator := dynamodb.NewQueryPaginator(s.Client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query sensor readings: %w", err)
		}
		for _, item := range page.Items {
			reading, err := sensorFromItem(item)
			if err != nil {
				return nil, err
			}
			readings = append(readings, reading)
		}
	}
	return readings, nil
}

func (s *DynamoStore) PutSleepStage(ctx context.Context, record models.SleepStageRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal sleep record: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.SleepRecords),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store sleep record in dynamodb: %w", err)
	}
	return nil
}

func (s *DynamoStore) QuerySleepStages(ctx context.Context, sessionID string) ([]models.SleepStageRecord, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.SleepRecords),
		KeyConditionExpression: aws.String("session_uuid = :session"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":session": &types.AttributeValueMemberS{Value: sessionID},
		},
	}

	records := []models.SleepStageRecord{}
	paginator := dynamodb.NewQueryPaginator(s.Client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query sleep records: %w", err)
		}
		var batch []models.SleepStageRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sleep records: %w", err)
		}
		records = append(records, batch...)
	}
	return records, nil
}

// ScanSleepStages reads the whole table. It is unpaginated towards the
// caller, so cost grows with the table.
func (s *DynamoStore) ScanSleepStages(ctx context.Context) ([]models.SleepStageRecord, error) {
	logger := common.GetCategoryLogger(common.LoggerNameStore, common.LoggerCategoryDynamo)

	records := []models.SleepStageRecord{}
	paginator := dynamodb.NewScanPaginator(s.Client, &dynamodb.ScanInput{
		TableName: aws.String(s.Tables.SleepRecords),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sleep records: %w", err)
		}
		var batch []models.SleepStageRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sleep records: %w", err)
		}
		records = append(records, batch...)
	}

	logger.Info("Scanned sleep records", zap.Int("count", len(records)))
	return records, nil
}

func (s *DynamoStore) PutAnalysis(ctx context.Context, result models.AnalysisResult) error {
	item, err := attributevalue.MarshalMap(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.Analysis),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store analysis in dynamodb: %w", err)
	}
	return nil
}

func (s *DynamoStore) GetAnalysis(ctx context.Context, sessionID string) (*models.AnalysisResult, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Analysis),
		Key: map[string]types.AttributeValue{
			models.FieldSessionUUID: &types.AttributeValueMemberS{Value: sessionID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var result models.AnalysisResult
	if err := attributevalue.UnmarshalMap(out.Item, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return &result, nil
}

func (s *DynamoStore) ScanAnalyses(ctx context.Context) ([]models.AnalysisResult, error) {
	results := []models.AnalysisResult{}
	paginator := dynamodb.NewScanPaginator(s.Client, &dynamodb.ScanInput{
		TableName: aws.String(s.Tables.Analysis),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analyses: %w", err)
		}
		var batch []models.AnalysisResult
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analyses: %w", err)
		}
		results = append(results, batch...)
	}
	return results, nil
}

func (s *DynamoStore) Close() error {
	return nil
}
