package sleep

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
	_ "liyu1981.xyz/sleep-telemetry-service/pkg/testing"
)

func stageRecord(sessionID string, start, end int64, stage int, ended bool) map[string]any {
	rec := map[string]any{
		"sessionId": sessionID,
		"startTime": json.Number(strconv.FormatInt(start, 10)),
		"endTime":   json.Number(strconv.FormatInt(end, 10)),
		"stage":     json.Number(strconv.Itoa(stage)),
	}
	if ended {
		rec["end"] = true
	}
	return rec
}

func TestIngestSleepStages(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, sleepObj, _, mockDispatcher, _ := GetMockSleepWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	clientID := uuid.NewString()
	sessionID := uuid.NewString()

	mockDispatcher.EXPECT().
		Enqueue(gomock.Any(), gomock.Eq(sessionID)).
		Return(nil).
		Times(1)

	err := sleepObj.Stage.IngestSleepStages(context.Background(), clientID, []any{
		stageRecord(sessionID, 1700000060, 1700000120, 2, false),
		stageRecord(sessionID, 1700000000, 1700000060, 1, false),
		stageRecord(sessionID, 1700000120, 1700000180, 3, true),
	})
	require.NoError(t, err)

	records, err := sleepObj.Store.QuerySleepStages(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(1700000000), records[0].StartTime)
	assert.Equal(t, 1, records[0].Stage)
	assert.Equal(t, clientID, records[0].ClientID)
	assert.Equal(t, int64(1700000180), records[2].EndTime)
}

func TestIngestSleepStages_CoercesValues(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, sleepObj, mockStore, _, _ := GetMockSleepWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	mockStore.EXPECT().
		PutSleepStage(gomock.Any(), gomock.Eq(models.SleepStageRecord{
			ClientID:  "c1",
			SessionID: "42",
			StartTime: 100,
			EndTime:   160,
			Stage:     2,
		})).
		Return(nil).
		Times(1)

	err := sleepObj.Stage.IngestSleepStages(context.Background(), "c1", []any{
		map[string]any{
			"sessionId": json.Number("42"),
			"startTime": "100",
			"endTime":   json.Number("160.9"),
			"stage":     float64(2),
			"end":       false,
		},
	})
	assert.NoError(t, err)
}

func TestIngestSleepStages_ValidatesWholeBatchFirst(t *testing.T) {
	common.SetTestLoggerNop()

	// no PutSleepStage expectation: any write fails the test
	ctrl, sleepObj, _, _, _ := GetMockSleepWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	err := sleepObj.Stage.IngestSleepStages(context.Background(), "c1", []any{
		stageRecord("s1", 1, 2, 1, false),
		map[string]any{"sessionId": "s1", "endTime": json.Number("3")},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 400, HttpStatus(err))
	assert.Equal(t, "Missing required fields in one of the records: startTime, stage", ErrorMessage(err, ""))

	err = sleepObj.Stage.IngestSleepStages(context.Background(), "c1", []any{
		stageRecord("s1", 1, 2, 1, false),
		"not an object",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	err = sleepObj.Stage.IngestSleepStages(context.Background(), "c1", []any{
		map[string]any{"sessionId": "s1", "startTime": "soon", "endTime": json.Number("3"), "stage": json.Number("1")},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "Invalid value for startTime in one of the records", ErrorMessage(err, ""))

	err = sleepObj.Stage.IngestSleepStages(context.Background(), "c1", []any{
		map[string]any{"sessionId": "", "startTime": json.Number("1"), "endTime": json.Number("3"), "stage": json.Number("1")},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestIngestSleepStages_MissingClient(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, sleepObj, _, _, _ := GetMockSleepWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	err := sleepObj.Stage.IngestSleepStages(context.Background(), "", []any{stageRecord("s1", 1, 2, 1, false)})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "client_uuid is required as query parameter", ErrorMessage(err, ""))
}

func TestIngestSleepStages_EmptyBatch(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, sleepObj, _, _, _ := GetMockSleepWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	assert.NoError(t, sleepObj.Stage.IngestSleepStages(context.Background(), "c1", []any{}))
}

func TestIngestSleepStages_StorageFailureStopsBatch(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, sleepObj, mockStore, _, _ := GetMockSleepWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	gomock.InOrder(
		mockStore.EXPECT().PutSleepStage(gomock.Any(), gomock.Any()).Return(nil),
		mockStore.EXPECT().PutSleepStage(gomock.Any(), gomock.Any()).Return(errors.New("locked")),
	)

	err := sleepObj.Stage.IngestSleepStages(context.Background(), "c1", []any{
		stageRecord("s1", 1, 2, 1, false),
		stageRecord("s1", 2, 3, 1, true),
		stageRecord("s1", 3, 4, 1, false),
	})
	require.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, 500, HttpStatus(err))
}

func TestIngestSleepStages_DispatchFailures(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, sleepObj, mockStore, mockDispatcher, _ := GetMockSleepWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	mockStore.EXPECT().PutSleepStage(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	mockDispatcher.EXPECT().
		Enqueue(gomock.Any(), gomock.Eq("s1")).
		Return(errors.New("queue full")).
		Times(1)

	err := sleepObj.Stage.IngestSleepStages(context.Background(), "c1", []any{stageRecord("s1", 1, 2, 1, true)})
	require.ErrorIs(t, err, ErrDispatch)
	assert.Equal(t, 500, HttpStatus(err))

	// force the dispatcher to be nil to cause dispatcher not available
	sleepObj.Dispatcher = nil

	err = sleepObj.Stage.IngestSleepStages(context.Background(), "c1", []any{stageRecord("s1", 1, 2, 1, true)})
	require.ErrorIs(t, err, ErrDispatch)
	assert.Contains(t, err.Error(), "dispatcher not available")
}
