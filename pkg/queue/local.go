package queue

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
)

// LocalDispatcher runs jobs on in-process workers fed by a bounded channel.
type LocalDispatcher struct {
	jobs    chan string
	handler Handler
	workers int

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewLocalDispatcher(handler Handler, workers int, buffer int) *LocalDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 64
	}
	return &LocalDispatcher{
		jobs:    make(chan string, buffer),
		handler: handler,
		workers: workers,
	}
}

// Start launches the workers. They exit when ctx is done or Close drains the queue.
func (d *LocalDispatcher) Start(ctx context.Context) {
	logger := common.GetCategoryLogger(common.LoggerNameQueue, common.LoggerCategoryLocalQueue)

	for w := 0; w < d.workers; w++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case sessionID, ok := <-d.jobs:
					if !ok {
						return
					}
					if err := d.handler(ctx, sessionID); err != nil {
						logger.Error("Analysis job failed", zap.String("session_uuid", sessionID), zap.Error(err))
					}
				}
			}
		}()
	}
}

func (d *LocalDispatcher) Enqueue(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNoSessionID
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}

	select {
	case d.jobs <- sessionID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (d *LocalDispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
