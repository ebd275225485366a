package sleep

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
	_ "liyu1981.xyz/sleep-telemetry-service/pkg/testing"
)

func TestIngestSensorData(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	ctrl, sleepObj, _, _, _ := GetMockSleepWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	fixed := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	sleepObj.Now = func() time.Time { return fixed }

	clientID := uuid.NewString()
	err := sleepObj.Sensor.IngestSensorData(context.Background(), clientID, map[string]any{
		"heart_rate":  json.Number("58.5"),
		"snore":       float64(3),
		"posture":     "left",
		"client_uuid": "spoofed",
		"time":        json.Number("1"),
	})
	require.NoError(t, err)

	readings, err := sleepObj.Store.QuerySensorReadings(context.Background(), clientID, fixed.Unix(), fixed.Unix())
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, clientID, readings[0].ClientID)
	assert.Equal(t, fixed.Unix(), readings[0].Time)
	assert.Equal(t, json.Number("58.5"), readings[0].Fields["heart_rate"])
	assert.Equal(t, json.Number("3"), readings[0].Fields["snore"])
	assert.Equal(t, "left", readings[0].Fields["posture"])
	assert.NotContains(t, readings[0].Fields, "client_uuid")
	assert.NotContains(t, readings[0].Fields, "time")

	logs := ParseLogs(&buf)
	warn := findLog(logs, "Ignoring reserved key in sensor data")
	require.NotNil(t, warn)
	assert.Equal(t, "warn", warn["level"])
	assert.Equal(t, common.LoggerCategorySensor, warn[common.LoggerFieldCategory])

	received := findLog(logs, "Received sensor data")
	require.NotNil(t, received)
	assert.Equal(t, clientID, received["client_uuid"])
}

func TestIngestSensorData_Validation(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, sleepObj, _, _, _ := GetMockSleepWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	err := sleepObj.Sensor.IngestSensorData(context.Background(), "", map[string]any{"a": 1})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "client is required", ErrorMessage(err, ""))

	err = sleepObj.Sensor.IngestSensorData(context.Background(), "c1", nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "data is required", ErrorMessage(err, ""))
}

func TestIngestSensorData_EmptyDataIsStored(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, sleepObj, mockStore, _, _ := GetMockSleepWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	mockStore.EXPECT().
		PutSensorReading(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, reading models.SensorReading) error {
			assert.Equal(t, "c1", reading.ClientID)
			assert.Empty(t, reading.Fields)
			return nil
		}).
		Times(1)

	err := sleepObj.Sensor.IngestSensorData(context.Background(), "c1", map[string]any{})
	assert.NoError(t, err)
}

func TestIngestSensorData_StorageFailure(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, sleepObj, mockStore, _, _ := GetMockSleepWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	mockStore.EXPECT().
		PutSensorReading(gomock.Any(), gomock.Any()).
		Return(errors.New("disk full")).
		Times(1)

	err := sleepObj.Sensor.IngestSensorData(context.Background(), "c1", map[string]any{"x": json.Number("1")})
	require.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, 500, HttpStatus(err))
	assert.Equal(t, "Failed to store data", ErrorMessage(err, "Failed to store data"))
}
