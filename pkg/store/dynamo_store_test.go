package store

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
)

type fakeDynamo struct {
	puts      []*dynamodb.PutItemInput
	queries   []*dynamodb.QueryInput
	queryOuts []*dynamodb.QueryOutput
	scanOuts  []*dynamodb.ScanOutput
	getOut    *dynamodb.GetItemOutput
	err       error
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, params)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getOut, nil
}

func (f *fakeDynamo) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.queries = append(f.queries, params)
	if len(f.queryOuts) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	out := f.queryOuts[0]
	f.queryOuts = f.queryOuts[1:]
	return out, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.scanOuts) == 0 {
		return &dynamodb.ScanOutput{}, nil
	}
	out := f.scanOuts[0]
	f.scanOuts = f.scanOuts[1:]
	return out, nil
}

var testTables = DynamoTables{Sensor: "sensor_data", SleepRecords: "sleep_records", Analysis: "sleep_analysis"}

func TestNewDynamoStore_RequiresTables(t *testing.T) {
	_, err := NewDynamoStore(&fakeDynamo{}, DynamoTables{Sensor: "a", SleepRecords: "b"})
	assert.Error(t, err)

	_, err = NewDynamoStore(nil, testTables)
	assert.Error(t, err)

	s, err := NewDynamoStore(&fakeDynamo{}, testTables)
	require.NoError(t, err)
	assert.Equal(t, "sleep_analysis", s.Tables.Analysis)
}

func TestDynamoStore_PutSensorReadingUsesNumbers(t *testing.T) {
	fake := &fakeDynamo{}
	s, err := NewDynamoStore(fake, testTables)
	require.NoError(t, err)

	err = s.PutSensorReading(context.Background(), models.SensorReading{
		ClientID: "c1",
		Time:     1700000000,
		Fields: map[string]any{
			"temp":  json.Number("36.6"),
			"note":  "fine",
			"flags": []any{true, json.Number("2")},
		},
	})
	require.NoError(t, err)
	require.Len(t, fake.puts, 1)

	item := fake.puts[0].Item
	assert.Equal(t, "sensor_data", aws.ToString(fake.puts[0].TableName))
	assert.Equal(t, &types.AttributeValueMemberS{Value: "c1"}, item["client_uuid"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1700000000"}, item["time"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "36.6"}, item["temp"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "fine"}, item["note"])
	assert.Equal(t, &types.AttributeValueMemberL{Value: []types.AttributeValue{
		&types.AttributeValueMemberBOOL{Value: true},
		&types.AttributeValueMemberN{Value: "2"},
	}}, item["flags"])
}

func TestDynamoStore_QuerySensorReadingsPaginates(t *testing.T) {
	fake := &fakeDynamo{
		queryOuts: []*dynamodb.QueryOutput{
			{
				Items: []map[string]types.AttributeValue{{
					"client_uuid": &types.AttributeValueMemberS{Value: "c1"},
					"time":        &types.AttributeValueMemberN{Value: "10"},
					"hr":          &types.AttributeValueMemberN{Value: "60"},
				}},
				LastEvaluatedKey: map[string]types.AttributeValue{
					"client_uuid": &types.AttributeValueMemberS{Value: "c1"},
					"time":        &types.AttributeValueMemberN{Value: "10"},
				},
			},
			{
				Items: []map[string]types.AttributeValue{{
					"client_uuid": &types.AttributeValueMemberS{Value: "c1"},
					"time":        &types.AttributeValueMemberN{Value: "20"},
					"asleep":      &types.AttributeValueMemberNULL{Value: true},
				}},
			},
		},
	}
	s, err := NewDynamoStore(fake, testTables)
	require.NoError(t, err)

	readings, err := s.QuerySensorReadings(context.Background(), "c1", 10, 20)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, json.Number("60"), readings[0].Fields["hr"])
	assert.Equal(t, int64(20), readings[1].Time)
	assert.Contains(t, readings[1].Fields, "asleep")
	assert.Nil(t, readings[1].Fields["asleep"])

	require.Len(t, fake.queries, 2)
	q := fake.queries[0]
	assert.Equal(t, "time", q.ExpressionAttributeNames["#t"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "10"}, q.ExpressionAttributeValues[":from"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "20"}, q.ExpressionAttributeValues[":to"])
	assert.NotNil(t, fake.queries[1].ExclusiveStartKey)
}

func TestDynamoStore_SleepStagesAndAnalysis(t *testing.T) {
	fake := &fakeDynamo{
		queryOuts: []*dynamodb.QueryOutput{{
			Items: []map[string]types.AttributeValue{{
				"client_uuid":  &types.AttributeValueMemberS{Value: "c1"},
				"session_uuid": &types.AttributeValueMemberS{Value: "s1"},
				"start_time":   &types.AttributeValueMemberN{Value: "10"},
				"end_time":     &types.AttributeValueMemberN{Value: "20"},
				"stage":        &types.AttributeValueMemberN{Value: "3"},
			}},
		}},
		getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"session_uuid": &types.AttributeValueMemberS{Value: "s1"},
			"score":        &types.AttributeValueMemberN{Value: "81"},
			"analysis":     &types.AttributeValueMemberNULL{Value: true},
		}},
	}
	s, err := NewDynamoStore(fake, testTables)
	require.NoError(t, err)

	records, err := s.QuerySleepStages(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.SleepStageRecord{ClientID: "c1", SessionID: "s1", StartTime: 10, EndTime: 20, Stage: 3}, records[0])

	result, err := s.GetAnalysis(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 81.0, *result.Score)
	assert.Nil(t, result.Analysis)

	fake.getOut = nil
	result, err = s.GetAnalysis(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestDynamoStore_Errors(t *testing.T) {
	fake := &fakeDynamo{err: fmt.Errorf("throttled")}
	s, err := NewDynamoStore(fake, testTables)
	require.NoError(t, err)

	err = s.PutSleepStage(context.Background(), models.SleepStageRecord{SessionID: "s"})
	assert.ErrorContains(t, err, "throttled")

	_, err = s.ScanSleepStages(context.Background())
	assert.ErrorContains(t, err, "throttled")

	_, err = s.GetAnalysis(context.Background(), "s")
	assert.ErrorContains(t, err, "throttled")
}
