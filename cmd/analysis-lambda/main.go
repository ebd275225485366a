package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"liyu1981.xyz/sleep-telemetry-service/pkg/awslambda"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/completion"
	"liyu1981.xyz/sleep-telemetry-service/pkg/config"
	"liyu1981.xyz/sleep-telemetry-service/pkg/sleep"
	"liyu1981.xyz/sleep-telemetry-service/pkg/store"
)

var handler *awslambda.Handler

// for Cold Start
func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	sleepStore, err := store.Open(context.Background(), cfg.StoreOptions())
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}

	assistant, err := completion.NewAssistantClient(cfg.Completion)
	if err != nil {
		log.Fatalf("failed to create completion client: %v", err)
	}

	sleepCore := (&sleep.Sleep{
		Store:      sleepStore,
		Completion: assistant,
	}).WithDefaultServices()

	handler = &awslambda.Handler{Sleep: sleepCore}
	common.GetLoggerWith(common.LoggerNameLambda).Info("Analysis function: Cold Start Initialization")
}

func main() {
	lambda.Start(handler.HandleRequest)
}
