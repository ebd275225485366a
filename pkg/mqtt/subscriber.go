package mqtt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/sleep"
)

const (
	DefaultQos            byte = 1
	defaultHandleTimeout       = 10 * time.Second
	disconnectQuiesceMsec uint = 250
)

var (
	ErrTopicMismatch = errors.New("topic does not match subscription")
	ErrNoClientLevel = errors.New("subscription has no + level for the client id")
	ErrRateLimited   = errors.New("rate limit exceeded")
)

type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	Qos      byte
}

// Subscriber ingests sensor readings published on Topic. The client id is
// the topic level under the first + wildcard; the payload is the data object.
type Subscriber struct {
	Sleep            *sleep.Sleep
	RateLimiterStore *sleep.RateLimiterStore
	Options          Options

	client paho.Client
}

func NewSubscriber(opts Options, sleepCore *sleep.Sleep, limiterStore *sleep.RateLimiterStore) *Subscriber {
	return &Subscriber{
		Sleep:            sleepCore,
		RateLimiterStore: limiterStore,
		Options:          opts,
	}
}

func (s *Subscriber) clientOptions() *paho.ClientOptions {
	opts := paho.NewClientOptions()
	opts.AddBroker(s.Options.Broker)
	opts.SetClientID(s.Options.ClientID)

	if s.Options.Username != "" {
		opts.SetUsername(s.Options.Username)
	}
	if s.Options.Password != "" {
		opts.SetPassword(s.Options.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	logger := common.GetLoggerWith(common.LoggerNameMqtt)
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.Warn("Connection to broker lost", zap.Error(err))
	})
	// subscriptions do not survive a clean session reconnect
	opts.SetOnConnectHandler(func(c paho.Client) {
		logger.Info("Connected to broker", zap.String("broker", s.Options.Broker))
		if token := c.Subscribe(s.Options.Topic, s.Options.Qos, s.onMessage); token.Wait() && token.Error() != nil {
			logger.Error("Failed to subscribe", zap.String("topic", s.Options.Topic), zap.Error(token.Error()))
		}
	})
	return opts
}

// Start connects to the broker; subscribing happens on every (re)connect.
func (s *Subscriber) Start() error {
	if _, err := topicClientLevel(s.Options.Topic); err != nil {
		return err
	}

	s.client = paho.NewClient(s.clientOptions())
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return nil
}

func (s *Subscriber) Stop() {
	if s.client == nil {
		return
	}
	if token := s.client.Unsubscribe(s.Options.Topic); token.Wait() && token.Error() != nil {
		common.GetLoggerWith(common.LoggerNameMqtt).Warn("Failed to unsubscribe", zap.Error(token.Error()))
	}
	s.client.Disconnect(disconnectQuiesceMsec)
}

func (s *Subscriber) onMessage(_ paho.Client, msg paho.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultHandleTimeout)
	defer cancel()

	if err := s.HandleMessage(ctx, msg.Topic(), msg.Payload()); err != nil {
		common.GetLoggerWith(common.LoggerNameMqtt).
			Warn("Dropped sensor message", zap.String("topic", msg.Topic()), zap.Error(err))
	}
}

// HandleMessage ingests one published payload. Failures are returned, there
// is no reply channel on this surface.
func (s *Subscriber) HandleMessage(ctx context.Context, topic string, payload []byte) error {
	clientID, err := ClientIDFromTopic(s.Options.Topic, topic)
	if err != nil {
		return err
	}

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	var data map[string]any
	if err := decoder.Decode(&data); err != nil || data == nil {
		return sleep.NewValidationError("Invalid JSON format")
	}

	if s.RateLimiterStore != nil && !s.RateLimiterStore.Allow(clientID) {
		return ErrRateLimited
	}

	return s.Sleep.Sensor.IngestSensorData(ctx, clientID, data)
}

func topicClientLevel(filter string) (int, error) {
	for i, level := range strings.Split(filter, "/") {
		if level == "+" {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrNoClientLevel, filter)
}

// ClientIDFromTopic returns the level of topic matched by the first + of
// filter. A trailing # in filter matches any remaining levels.
func ClientIDFromTopic(filter, topic string) (string, error) {
	index, err := topicClientLevel(filter)
	if err != nil {
		return "", err
	}

	filterLevels := strings.Split(filter, "/")
	topicLevels := strings.Split(topic, "/")

	for i, level := range filterLevels {
		if level == "#" {
			break
		}
		if i >= len(topicLevels) {
			return "", fmt.Errorf("%w: %q", ErrTopicMismatch, topic)
		}
		if level != "+" && level != topicLevels[i] {
			return "", fmt.Errorf("%w: %q", ErrTopicMismatch, topic)
		}
		if i == len(filterLevels)-1 && len(topicLevels) != len(filterLevels) {
			return "", fmt.Errorf("%w: %q", ErrTopicMismatch, topic)
		}
	}

	clientID := topicLevels[index]
	if clientID == "" {
		return "", sleep.NewValidationError("client is required")
	}
	return clientID, nil
}
