package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
)

const (
	TypeFile     = "file"
	TypeMemory   = "memory"
	TypeDynamoDB = "dynamodb"
	TypeBadger   = "badger"
)

// Store is the table store behind every handler. Puts replace any row with
// the same key. GetAnalysis returns nil, nil when the session has no result.
type Store interface {
	PutSensorReading(ctx context.Context, reading models.SensorReading) error
	// QuerySensorReadings returns the client's readings with from <= time <= to,
	// ordered by time.
	QuerySensorReadings(ctx context.Context, clientID string, from, to int64) ([]models.SensorReading, error)

	PutSleepStage(ctx context.Context, record models.SleepStageRecord) error
	// QuerySleepStages returns the session's records ordered by start_time.
	QuerySleepStages(ctx context.Context, sessionID string) ([]models.SleepStageRecord, error)
	ScanSleepStages(ctx context.Context) ([]models.SleepStageRecord, error)

	PutAnalysis(ctx context.Context, result models.AnalysisResult) error
	GetAnalysis(ctx context.Context, sessionID string) (*models.AnalysisResult, error)
	ScanAnalyses(ctx context.Context) ([]models.AnalysisResult, error)

	Close() error
}

func encodeFields(fields map[string]any) ([]byte, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sensor fields: %w", err)
	}
	return data, nil
}

// decodeJSON decodes with UseNumber so stored decimals come back exact.
func decodeJSON(data []byte, out any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	return decoder.Decode(out)
}

func decodeFields(data []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(data) == 0 {
		return fields, nil
	}
	if err := decodeJSON(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode sensor fields: %w", err)
	}
	return fields, nil
}
