package queue

import (
	"context"
	"errors"
)

const (
	DispatchRedis  = "redis"
	DispatchLambda = "lambda"
	DispatchLocal  = "local"

	FieldSessionUUID = "session_uuid"
	FieldEnqueuedAt  = "enqueued_at"
)

var (
	ErrQueueFull   = errors.New("analysis queue is full")
	ErrQueueClosed = errors.New("analysis queue is closed")
	ErrNoSessionID = errors.New("analysis job has no session_uuid")
)

// IDispatcher hands an analysis job off for asynchronous execution. It
// returns once the job is accepted, never waiting for the analysis itself.
type IDispatcher interface {
	Enqueue(ctx context.Context, sessionID string) error
}

// Handler runs one analysis job.
type Handler func(ctx context.Context, sessionID string) error

// AnalysisJob is the payload carried by every dispatcher.
type AnalysisJob struct {
	SessionID string `json:"session_uuid"`
}
