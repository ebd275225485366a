package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/completion"
	"liyu1981.xyz/sleep-telemetry-service/pkg/queue"
	"liyu1981.xyz/sleep-telemetry-service/pkg/store"
)

const (
	DefaultHttpHostPort  = ":1080"
	DefaultRate          = 10.0
	DefaultBurst         = 20
	DefaultMqttTopic     = "sensors/+/data"
	DefaultMqttClientID  = "sleep-telemetry-service"
	DefaultStoreType     = store.TypeFile
	DefaultDispatchLocal = queue.DispatchLocal
)

type Config struct {
	StoreType  string
	BadgerPath string
	Tables     store.DynamoTables

	HttpHostPort string
	GrpcHostPort string

	DefaultRate  float64
	DefaultBurst int

	Dispatch           string
	Redis              queue.RedisOptions
	AnalysisStream     string
	ConsumerGroup      string
	ConsumerName       string
	AnalysisLambdaName string

	Completion completion.Options

	MqttBroker      string
	MqttClientID    string
	MqttUsername    string
	MqttPassword    string
	MqttSensorTopic string
}

// StoreOptions is the store.Open input derived from c.
func (c Config) StoreOptions() store.Options {
	return store.Options{
		Type:       c.StoreType,
		BadgerPath: c.BadgerPath,
		Tables:     c.Tables,
	}
}

// LoadDotEnv reads .env from the working directory. A missing file is only an
// error in development.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) && !common.IsDevelopment() {
		return nil
	}
	return fmt.Errorf("error loading .env file, copy .env.example to .env first if in development: %w", err)
}

// Load reads .env, then builds a Config from the environment.
func Load() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	var err error
	c := Config{
		StoreType:  common.GetEnvOr(common.EnvKeyStoreType, DefaultStoreType),
		BadgerPath: common.GetEnvOr(common.EnvKeyBadgerPath, ""),
		Tables: store.DynamoTables{
			Sensor:       os.Getenv(common.EnvKeyDynamoSensorTable),
			SleepRecords: os.Getenv(common.EnvKeyDynamoSleepRecordsTable),
			Analysis:     os.Getenv(common.EnvKeyDynamoAnalysisTable),
		},
		HttpHostPort: strings.TrimSpace(common.GetEnvOr(common.EnvKeyHttpHostPort, DefaultHttpHostPort)),
		GrpcHostPort: strings.TrimSpace(os.Getenv(common.EnvKeyGrpcHostPort)),

		Dispatch:           common.GetEnvOr(common.EnvKeyAnalysisDispatch, DefaultDispatchLocal),
		AnalysisStream:     common.GetEnvOr(common.EnvKeyAnalysisStream, queue.DefaultAnalysisStream),
		ConsumerGroup:      common.GetEnvOr(common.EnvKeyAnalysisConsumerGroup, queue.DefaultConsumerGroup),
		ConsumerName:       os.Getenv(common.EnvKeyAnalysisConsumerName),
		AnalysisLambdaName: common.GetEnvOr(common.EnvKeyAnalysisLambdaName, queue.DefaultAnalysisLambdaName),

		MqttBroker:      strings.TrimSpace(os.Getenv(common.EnvKeyMqttBroker)),
		MqttClientID:    common.GetEnvOr(common.EnvKeyMqttClientID, DefaultMqttClientID),
		MqttUsername:    os.Getenv(common.EnvKeyMqttUsername),
		MqttPassword:    os.Getenv(common.EnvKeyMqttPassword),
		MqttSensorTopic: common.GetEnvOr(common.EnvKeyMqttSensorTopic, DefaultMqttTopic),
	}

	if c.DefaultRate, err = common.GetEnvFloatOr(common.EnvKeyDefaultRate, DefaultRate); err != nil {
		return Config{}, fmt.Errorf("invalid %s, should be a float64 value: %w", common.EnvKeyDefaultRate, err)
	}
	if c.DefaultBurst, err = common.GetEnvIntOr(common.EnvKeyDefaultBurst, DefaultBurst); err != nil {
		return Config{}, fmt.Errorf("invalid %s, should be an int value: %w", common.EnvKeyDefaultBurst, err)
	}

	c.Redis = queue.RedisOptions{
		Addr:     common.GetEnvOr(common.EnvKeyRedisAddr, "localhost:6379"),
		Password: os.Getenv(common.EnvKeyRedisPassword),
	}
	if c.Redis.DB, err = common.GetEnvIntOr(common.EnvKeyRedisDB, 0); err != nil {
		return Config{}, fmt.Errorf("invalid %s, should be an int value: %w", common.EnvKeyRedisDB, err)
	}

	c.Completion = completion.Options{
		BaseURL:     common.GetEnvOr(common.EnvKeyOpenAIBaseURL, completion.DefaultBaseURL),
		ApiKey:      os.Getenv(common.EnvKeyOpenAIApiKey),
		AssistantID: common.GetEnvOr(common.EnvKeyOpenAIAssistantID, completion.DefaultAssistantID),
	}
	if c.Completion.PollInterval, err = common.GetEnvDurationOr(common.EnvKeyOpenAIPollInterval, completion.DefaultPollInterval); err != nil {
		return Config{}, fmt.Errorf("invalid %s, should be a duration: %w", common.EnvKeyOpenAIPollInterval, err)
	}
	if c.Completion.MaxPollAttempts, err = common.GetEnvIntOr(common.EnvKeyOpenAIMaxPollAttempts, completion.DefaultMaxPollAttempts); err != nil {
		return Config{}, fmt.Errorf("invalid %s, should be an int value: %w", common.EnvKeyOpenAIMaxPollAttempts, err)
	}
	if c.Completion.RunTimeout, err = common.GetEnvDurationOr(common.EnvKeyOpenAIRunTimeout, completion.DefaultRunTimeout); err != nil {
		return Config{}, fmt.Errorf("invalid %s, should be a duration: %w", common.EnvKeyOpenAIRunTimeout, err)
	}

	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.StoreType {
	case store.TypeFile, store.TypeMemory, store.TypeBadger:
	case store.TypeDynamoDB:
		if c.Tables.Sensor == "" || c.Tables.SleepRecords == "" || c.Tables.Analysis == "" {
			return fmt.Errorf("%s, %s and %s must be set for store type %s",
				common.EnvKeyDynamoSensorTable, common.EnvKeyDynamoSleepRecordsTable, common.EnvKeyDynamoAnalysisTable, c.StoreType)
		}
	default:
		return fmt.Errorf("unknown %s: %q", common.EnvKeyStoreType, c.StoreType)
	}

	switch c.Dispatch {
	case queue.DispatchLocal, queue.DispatchRedis, queue.DispatchLambda:
	default:
		return fmt.Errorf("unknown %s: %q", common.EnvKeyAnalysisDispatch, c.Dispatch)
	}

	if c.DefaultRate <= 0 || c.DefaultBurst <= 0 {
		return fmt.Errorf("%s and %s must be positive", common.EnvKeyDefaultRate, common.EnvKeyDefaultBurst)
	}

	if c.Completion.PollInterval <= 0 || c.Completion.RunTimeout <= 0 || c.Completion.MaxPollAttempts <= 0 {
		return errors.New("completion poll interval, run timeout and max poll attempts must be positive")
	}
	return nil
}
