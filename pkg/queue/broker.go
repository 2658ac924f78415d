package queue

import (
	"context"
	"time"
)

// Broker is the transport tasks travel through. Push is fire-and-forget
// from the producer's point of view; Pop blocks up to wait and returns
// (nil, nil) when no task arrived in time.
type Broker interface {
	Push(ctx context.Context, task *Task) error
	Pop(ctx context.Context, queues []string, wait time.Duration) (*Task, error)
}

// DeadLetterer is an optional Broker extension for parking tasks that
// exhausted their retries.
type DeadLetterer interface {
	PushDead(ctx context.Context, task *Task, reason string) error
}
