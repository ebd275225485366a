package sleep

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
)

func (s *Sleep) ingestSensorData(ctx context.Context, clientID string, data map[string]any) error {
	logger := common.GetCategoryLogger(common.LoggerNameSleepCore, common.LoggerCategorySensor)

	if clientID == "" {
		return NewValidationError("client is required")
	}
	if data == nil {
		return NewValidationError("data is required")
	}

	fields := make(map[string]any, len(data))
	for k, v := range data {
		if k == models.FieldClientUUID || k == models.FieldTime {
			logger.Warn("Ignoring reserved key in sensor data", zap.String("client_uuid", clientID), zap.String("key", k))
			continue
		}
		nv, err := normalizeValue(v)
		if err != nil {
			return NewValidationError(fmt.Sprintf("Invalid value for %s: %v", k, err))
		}
		fields[k] = nv
	}

	reading := models.SensorReading{
		ClientID: clientID,
		Time:     s.now().UTC().Unix(),
		Fields:   fields,
	}

	logger.Info("Received sensor data", zap.String("client_uuid", clientID), zap.Int64("time", reading.Time), zap.Int("fields", len(fields)))

	if err := s.Store.PutSensorReading(ctx, reading); err != nil {
		logger.Error("Failed to store sensor data", zap.String("client_uuid", clientID), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return nil
}

type ISensorImpl struct {
	sleep *Sleep
}

func (is *ISensorImpl) IngestSensorData(ctx context.Context, clientID string, data map[string]any) error {
	return is.sleep.ingestSensorData(ctx, clientID, data)
}

func (s *Sleep) GetISensor() ISensor {
	return &ISensorImpl{sleep: s}
}
