package sleep

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/mock/gomock"
	completionmocks "liyu1981.xyz/sleep-telemetry-service/pkg/completion/mocks"
	"liyu1981.xyz/sleep-telemetry-service/pkg/db"
	queuemocks "liyu1981.xyz/sleep-telemetry-service/pkg/queue/mocks"
	"liyu1981.xyz/sleep-telemetry-service/pkg/store"
	storemocks "liyu1981.xyz/sleep-telemetry-service/pkg/store/mocks"
)

func GetMockSleepWithMemorySqliteDialector(t *testing.T, useMockStore bool) (
	*gomock.Controller,
	*Sleep,
	*storemocks.MockStore,
	*queuemocks.MockIDispatcher,
	*completionmocks.MockICompletion,
) {
	ctrl := gomock.NewController(t)

	mockStore := storemocks.NewMockStore(ctrl)
	mockDispatcher := queuemocks.NewMockIDispatcher(ctrl)
	mockCompletion := completionmocks.NewMockICompletion(ctrl)

	var s store.Store = mockStore
	if !useMockStore {
		s = store.NewGormStore(db.GetInstance(db.UseMemorySqliteDialector()))
	}

	sleepInstance := (&Sleep{
		Store:      s,
		Dispatcher: mockDispatcher,
		Completion: mockCompletion,
	}).WithDefaultServices()

	return ctrl, sleepInstance, mockStore, mockDispatcher, mockCompletion
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func findLog(logs []any, msg string) map[string]any {
	for _, l := range logs {
		if m, ok := l.(map[string]any); ok && m["msg"] == msg {
			return m
		}
	}
	return nil
}
