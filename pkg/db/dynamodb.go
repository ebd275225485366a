package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
)

var (
	awsConfig     aws.Config
	awsConfigErr  error
	awsConfigOnce sync.Once

	dynamoClient     *dynamodb.Client
	dynamoClientOnce sync.Once
)

// LoadAWSConfig resolves the default credential chain once per process, so
// a warm Lambda reuses it across invocations.
func LoadAWSConfig(ctx context.Context) (aws.Config, error) {
	awsConfigOnce.Do(func() {
		awsConfig, awsConfigErr = config.LoadDefaultConfig(ctx)
		if awsConfigErr != nil {
			awsConfigErr = fmt.Errorf("failed to load aws config: %w", awsConfigErr)
			return
		}
		common.GetLogger().Info("AWS config loaded", zap.String("region", awsConfig.Region))
	})
	return awsConfig, awsConfigErr
}

func GetDynamoDBClient(ctx context.Context) (*dynamodb.Client, error) {
	cfg, err := LoadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	dynamoClientOnce.Do(func() {
		dynamoClient = dynamodb.NewFromConfig(cfg)
	})
	return dynamoClient, nil
}
