package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
)

const (
	DefaultAnalysisStream = "sleep:analysis:jobs"
	DefaultConsumerGroup  = "sleep-analysis"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// RedisDispatcher appends jobs to a redis stream.
type RedisDispatcher struct {
	Client *redis.Client
	Stream string
}

func (d *RedisDispatcher) Enqueue(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNoSessionID
	}

	id, err := d.Client.XAdd(ctx, &redis.XAddArgs{
		Stream: d.Stream,
		Values: map[string]interface{}{
			FieldSessionUUID: sessionID,
			FieldEnqueuedAt:  time.Now().Unix(),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish analysis job: %w", err)
	}

	common.GetCategoryLogger(common.LoggerNameQueue, common.LoggerCategoryRedis).
		Info("Analysis job published", zap.String("session_uuid", sessionID), zap.String("message_id", id))
	return nil
}

// RedisWorker consumes the stream through a consumer group. Every message is
// acknowledged once the handler returns, failed or not; a job is attempted
// once unless the worker dies before the ack.
type RedisWorker struct {
	Client    *redis.Client
	Stream    string
	Group     string
	Consumer  string
	BatchSize int64
	Block     time.Duration
	Handler   Handler
}

func (w *RedisWorker) createConsumerGroup(ctx context.Context) error {
	err := w.Client.XGroupCreateMkStream(ctx, w.Stream, w.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group %s: %w", w.Group, err)
	}
	return nil
}

// sessionIDFromValues pulls the job's session id out of a stream entry.
func sessionIDFromValues(values map[string]interface{}) (string, error) {
	raw, ok := values[FieldSessionUUID]
	if !ok {
		return "", ErrNoSessionID
	}
	sessionID, ok := raw.(string)
	if !ok || sessionID == "" {
		return "", ErrNoSessionID
	}
	return sessionID, nil
}

func (w *RedisWorker) consume(ctx context.Context) error {
	logger := common.GetCategoryLogger(common.LoggerNameQueue, common.LoggerCategoryRedis)

	block := w.Block
	if block <= 0 {
		block = 5 * time.Second
	}
	count := w.BatchSize
	if count <= 0 {
		count = 10
	}

	streams, err := w.Client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    w.Group,
		Consumer: w.Consumer,
		Streams:  []string{w.Stream, ">"},
		Count:    count,
		Block:    block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to read from stream %s: %w", w.Stream, err)
	}

	for _, stream := range streams {
		for _, msg := range stream.Messages {
			sessionID, err := sessionIDFromValues(msg.Values)
			if err != nil {
				logger.Warn("Dropping malformed analysis job", zap.String("message_id", msg.ID), zap.Error(err))
			} else if err := w.Handler(ctx, sessionID); err != nil {
				logger.Error("Analysis job failed",
					zap.String("message_id", msg.ID),
					zap.String("session_uuid", sessionID),
					zap.Error(err))
			}

			if err := w.Client.XAck(ctx, w.Stream, w.Group, msg.ID).Err(); err != nil {
				logger.Error("Failed to ack analysis job", zap.String("message_id", msg.ID), zap.Error(err))
			}
		}
	}
	return nil
}

// Start blocks consuming until ctx is done, backing off on read errors.
func (w *RedisWorker) Start(ctx context.Context) error {
	logger := common.GetCategoryLogger(common.LoggerNameQueue, common.LoggerCategoryRedis)

	if err := w.createConsumerGroup(ctx); err != nil {
		return err
	}

	logger.Info("Analysis worker started",
		zap.String("stream", w.Stream),
		zap.String("consumer_group", w.Group),
		zap.String("consumer_name", w.Consumer))

	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := w.consume(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error("Failed to consume analysis stream", zap.Error(err), zap.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
			}
			continue
		}
		backoff = time.Second
	}
}
