package common

const (
	EnvKeyGoEnv  string = "GO_ENV"
	EnvKeyLogDir string = "LOG_DIR"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyStoreType  string = "STORE_TYPE"
	EnvKeySqlitePath string = "SQLITE_PATH"
	EnvKeyBadgerPath string = "BADGER_PATH"

	EnvKeyDynamoSensorTable       string = "DYNAMODB_SENSOR_TABLE"
	EnvKeyDynamoSleepRecordsTable string = "DYNAMODB_SLEEP_RECORDS_TABLE"
	EnvKeyDynamoAnalysisTable     string = "DYNAMODB_ANALYSIS_TABLE"

	EnvKeyHttpHostPort string = "HTTP_HOST_PORT"
	EnvKeyGrpcHostPort string = "GRPC_HOST_PORT"

	EnvKeyDefaultRate  string = "DEFAULT_RATE"
	EnvKeyDefaultBurst string = "DEFAULT_BURST"

	EnvKeyAnalysisDispatch      string = "ANALYSIS_DISPATCH"
	EnvKeyRedisAddr             string = "REDIS_ADDR"
	EnvKeyRedisPassword         string = "REDIS_PASSWORD"
	EnvKeyRedisDB               string = "REDIS_DB"
	EnvKeyAnalysisStream        string = "ANALYSIS_STREAM"
	EnvKeyAnalysisConsumerGroup string = "ANALYSIS_CONSUMER_GROUP"
	EnvKeyAnalysisConsumerName  string = "ANALYSIS_CONSUMER_NAME"
	EnvKeyAnalysisLambdaName    string = "ANALYSIS_LAMBDA_NAME"

	EnvKeyOpenAIApiKey          string = "OPENAI_API_KEY"
	EnvKeyOpenAIAssistantID     string = "OPENAI_ASSISTANT_ID"
	EnvKeyOpenAIBaseURL         string = "OPENAI_BASE_URL"
	EnvKeyOpenAIPollInterval    string = "OPENAI_POLL_INTERVAL"
	EnvKeyOpenAIMaxPollAttempts string = "OPENAI_MAX_POLL_ATTEMPTS"
	EnvKeyOpenAIRunTimeout      string = "OPENAI_RUN_TIMEOUT"

	EnvKeyMqttBroker      string = "MQTT_BROKER"
	EnvKeyMqttClientID    string = "MQTT_CLIENT_ID"
	EnvKeyMqttUsername    string = "MQTT_USERNAME"
	EnvKeyMqttPassword    string = "MQTT_PASSWORD"
	EnvKeyMqttSensorTopic string = "MQTT_SENSOR_TOPIC"

	LoggerNameSleepCore     string = "sleep_core"
	LoggerNameStore         string = "store"
	LoggerNameCompletion    string = "completion"
	LoggerNameQueue         string = "queue"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameMqtt          string = "mqtt"
	LoggerNameLambda        string = "lambda"

	LoggerFieldCategory      string = "category"
	LoggerCategorySensor     string = "sensor"
	LoggerCategoryStage      string = "stage"
	LoggerCategoryAnalysis   string = "analysis"
	LoggerCategoryReport     string = "report"
	LoggerCategoryGorm       string = "gorm"
	LoggerCategoryDynamo     string = "dynamodb"
	LoggerCategoryBadger     string = "badger"
	LoggerCategoryRedis      string = "redis"
	LoggerCategoryLocalQueue string = "local"
	LoggerCategoryLambdaCall string = "lambda_invoke"
)
