package mqtt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/db"
	"liyu1981.xyz/sleep-telemetry-service/pkg/sleep"
	"liyu1981.xyz/sleep-telemetry-service/pkg/sleep/mocks"
	"liyu1981.xyz/sleep-telemetry-service/pkg/store"
	_ "liyu1981.xyz/sleep-telemetry-service/pkg/testing"
)

const testTopic = "sensors/+/data"

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return DefaultQos }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 1 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

func newTestSubscriber(limiterStore *sleep.RateLimiterStore) *Subscriber {
	sleepCore := (&sleep.Sleep{
		Store: store.NewGormStore(db.GetInstance(db.UseMemorySqliteDialector())),
	}).WithDefaultServices()
	return NewSubscriber(Options{Topic: testTopic, Qos: DefaultQos}, sleepCore, limiterStore)
}

func TestClientIDFromTopic(t *testing.T) {
	testCases := []struct {
		filter string
		topic  string
		want   string
		err    error
	}{
		{filter: testTopic, topic: "sensors/c1/data", want: "c1"},
		{filter: "home/bedroom/+/sensors/#", topic: "home/bedroom/c2/sensors/a/b", want: "c2"},
		{filter: "+/data", topic: "c3/data", want: "c3"},
		{filter: testTopic, topic: "sensors/c1/other", err: ErrTopicMismatch},
		{filter: testTopic, topic: "sensors/c1", err: ErrTopicMismatch},
		{filter: testTopic, topic: "sensors/c1/data/extra", err: ErrTopicMismatch},
		{filter: testTopic, topic: "sensors//data", err: sleep.ErrInvalidInput},
		{filter: "sensors/data", topic: "sensors/data", err: ErrNoClientLevel},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s %s", tc.filter, tc.topic), func(t *testing.T) {
			got, err := ClientIDFromTopic(tc.filter, tc.topic)
			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHandleMessage(t *testing.T) {
	common.SetTestLoggerNop()
	sub := newTestSubscriber(nil)

	clientID := uuid.NewString()
	err := sub.HandleMessage(context.Background(), "sensors/"+clientID+"/data", []byte(`{"heart_rate": 61.25, "posture": "back"}`))
	require.NoError(t, err)

	readings, err := sub.Sleep.Store.QuerySensorReadings(context.Background(), clientID, 0, 1<<62)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, clientID, readings[0].ClientID)
	assert.Equal(t, json.Number("61.25"), readings[0].Fields["heart_rate"])
	assert.Equal(t, "back", readings[0].Fields["posture"])
}

func TestHandleMessage_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()
	sub := newTestSubscriber(nil)
	ctx := context.Background()

	for _, payload := range []string{"", "not json", "[1, 2]", "null", `"text"`} {
		err := sub.HandleMessage(ctx, "sensors/c1/data", []byte(payload))
		assert.True(t, errors.Is(err, sleep.ErrInvalidInput), "payload %q: %v", payload, err)
	}

	err := sub.HandleMessage(ctx, "other/c1/data", []byte(`{"a": 1}`))
	assert.True(t, errors.Is(err, ErrTopicMismatch))
}

func TestHandleMessage_ServiceError(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sub := newTestSubscriber(nil)
	mockISensor := mocks.NewMockISensor(ctrl)
	sub.Sleep.WithServices(sleep.ServiceOpts{Sensor: mockISensor})

	mockISensor.EXPECT().
		IngestSensorData(gomock.Any(), gomock.Eq("c1"), gomock.Eq(map[string]any{"snore": json.Number("2")})).
		Return(sleep.ErrStorage).
		Times(1)

	err := sub.HandleMessage(context.Background(), "sensors/c1/data", []byte(`{"snore": 2}`))
	assert.True(t, errors.Is(err, sleep.ErrStorage))
}

func TestHandleMessage_RateLimit(t *testing.T) {
	common.SetTestLoggerNop()

	limiterStore := sleep.NewRateLimiterStore(1, 1)
	sub := newTestSubscriber(limiterStore)
	ctx := context.Background()

	clientID := uuid.NewString()
	topic := "sensors/" + clientID + "/data"

	require.NoError(t, sub.HandleMessage(ctx, topic, []byte(`{"snore": 1}`)))
	err := sub.HandleMessage(ctx, topic, []byte(`{"snore": 2}`))
	assert.True(t, errors.Is(err, ErrRateLimited))

	// other clients keep their own bucket
	require.NoError(t, sub.HandleMessage(ctx, "sensors/"+uuid.NewString()+"/data", []byte(`{"snore": 1}`)))
}

func TestOnMessage_LogsDroppedMessage(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	sub := newTestSubscriber(nil)
	sub.onMessage(nil, &fakeMessage{topic: "sensors/c1/data", payload: []byte("{")})

	out := buf.String()
	assert.True(t, strings.Contains(out, "Dropped sensor message"), out)
	assert.True(t, strings.Contains(out, `"logger":"mqtt"`), out)
}

func TestStart_RejectsFilterWithoutClientLevel(t *testing.T) {
	sub := NewSubscriber(Options{Broker: "tcp://127.0.0.1:1", Topic: "sensors/data"}, nil, nil)
	err := sub.Start()
	assert.True(t, errors.Is(err, ErrNoClientLevel))
	sub.Stop()
}
