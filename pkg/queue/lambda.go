package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
)

const DefaultAnalysisLambdaName = "sleep_data_analysis"

// LambdaInvoker is the subset of *lambda.Client used for dispatch.
type LambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaDispatcher fires the analysis function asynchronously with
// InvocationType Event and the payload {"session_uuid": ...}.
type LambdaDispatcher struct {
	Client       LambdaInvoker
	FunctionName string
}

func NewLambdaDispatcher(cfg aws.Config, functionName string) *LambdaDispatcher {
	if functionName == "" {
		functionName = DefaultAnalysisLambdaName
	}
	return &LambdaDispatcher{
		Client:       lambda.NewFromConfig(cfg),
		FunctionName: functionName,
	}
}

func (d *LambdaDispatcher) Enqueue(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNoSessionID
	}

	payload, err := json.Marshal(AnalysisJob{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to marshal analysis job: %w", err)
	}

	out, err := d.Client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(d.FunctionName),
		InvocationType: types.InvocationTypeEvent,
		Payload:        payload,
	})
	if err != nil {
		return fmt.Errorf("failed to invoke %s: %w", d.FunctionName, err)
	}

	common.GetCategoryLogger(common.LoggerNameQueue, common.LoggerCategoryLambdaCall).
		Info("Analysis function invoked",
			zap.String("session_uuid", sessionID),
			zap.String("function", d.FunctionName),
			zap.Int32("status_code", out.StatusCode))
	return nil
}
