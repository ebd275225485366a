package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/db"
)

type Options struct {
	Type       string
	BadgerPath string
	Tables     DynamoTables
}

// Open builds the backend named by opts.Type.
func Open(ctx context.Context, opts Options) (Store, error) {
	logger := common.GetLoggerWith(common.LoggerNameStore)
	logger.Info("Opening store", zap.String("type", opts.Type))

	switch opts.Type {
	case TypeFile:
		return NewGormStore(db.GetInstance(db.UseSqliteDialector())), nil
	case TypeMemory:
		return NewGormStore(db.GetInstance(db.UseMemorySqliteDialector())), nil
	case TypeDynamoDB:
		client, err := db.GetDynamoDBClient(ctx)
		if err != nil {
			return nil, err
		}
		return NewDynamoStore(client, opts.Tables)
	case TypeBadger:
		bdb, err := db.OpenBadger(opts.BadgerPath)
		if err != nil {
			return nil, err
		}
		return NewBadgerStore(bdb)
	default:
		return nil, fmt.Errorf("unknown store type: %q", opts.Type)
	}
}
