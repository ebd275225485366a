package sleep

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
)

var requiredStageFields = []string{"sessionId", "startTime", "endTime", "stage"}

type stageInput struct {
	record models.SleepStageRecord
	end    bool
}

func parseStageRecord(clientID string, raw any) (stageInput, error) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return stageInput{}, NewValidationError("Invalid request body: sleep_data records must be objects")
	}

	missing := []string{}
	for _, field := range requiredStageFields {
		if _, ok := rec[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return stageInput{}, NewValidationError("Missing required fields in one of the records: " + strings.Join(missing, ", "))
	}

	sessionID, err := coerceString(rec["sessionId"])
	if err != nil || sessionID == "" {
		return stageInput{}, NewValidationError("Invalid value for sessionId in one of the records")
	}
	startTime, err := coerceInt(rec["startTime"])
	if err != nil {
		return stageInput{}, NewValidationError("Invalid value for startTime in one of the records")
	}
	endTime, err := coerceInt(rec["endTime"])
	if err != nil {
		return stageInput{}, NewValidationError("Invalid value for endTime in one of the records")
	}
	stage, err := coerceInt(rec["stage"])
	if err != nil {
		return stageInput{}, NewValidationError("Invalid value for stage in one of the records")
	}

	return stageInput{
		record: models.SleepStageRecord{
			ClientID:  clientID,
			SessionID: sessionID,
			StartTime: startTime,
			EndTime:   endTime,
			Stage:     int(stage),
		},
		end: isTruthy(rec["end"]),
	}, nil
}

func (s *Sleep) ingestSleepStages(ctx context.Context, clientID string, records []any) error {
	logger := common.GetCategoryLogger(common.LoggerNameSleepCore, common.LoggerCategoryStage)

	if clientID == "" {
		return NewValidationError("client_uuid is required as query parameter")
	}

	inputs := make([]stageInput, 0, len(records))
	for _, raw := range records {
		input, err := parseStageRecord(clientID, raw)
		if err != nil {
			logger.Warn("Rejected sleep data batch", zap.String("client_uuid", clientID), zap.Error(err))
			return err
		}
		inputs = append(inputs, input)
	}

	logger.Info("Received sleep data", zap.String("client_uuid", clientID), zap.Int("records", len(inputs)))

	for _, input := range inputs {
		if err := s.Store.PutSleepStage(ctx, input.record); err != nil {
			logger.Error("Failed to store sleep record", zap.Reflect("record", input.record), zap.Error(err))
			return fmt.Errorf("%w: %w", ErrStorage, err)
		}

		if !input.end {
			continue
		}

		if s.Dispatcher == nil {
			return fmt.Errorf("%w: dispatcher not available", ErrDispatch)
		}
		if err := s.Dispatcher.Enqueue(ctx, input.record.SessionID); err != nil {
			logger.Error("Failed to enqueue analysis", zap.String("session_uuid", input.record.SessionID), zap.Error(err))
			return fmt.Errorf("%w: %w", ErrDispatch, err)
		}
		logger.Info("Session ended, analysis enqueued", zap.String("session_uuid", input.record.SessionID))
	}

	return nil
}

type IStageImpl struct {
	sleep *Sleep
}

func (is *IStageImpl) IngestSleepStages(ctx context.Context, clientID string, records []any) error {
	return is.sleep.ingestSleepStages(ctx, clientID, records)
}

func (s *Sleep) GetIStage() IStage {
	return &IStageImpl{sleep: s}
}
