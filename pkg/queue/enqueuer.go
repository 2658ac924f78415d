package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Enqueuer hands tasks to the broker. Producers never learn whether a
// worker picked the task up; the handoff is fire-and-forget.
type Enqueuer struct {
	broker       Broker
	defaultQueue string
	maxRetries   int8
}

// EnqueuerOption configures an Enqueuer.
type EnqueuerOption func(*Enqueuer)

// WithQueue sets the queue tasks are pushed to.
func WithQueue(name string) EnqueuerOption {
	return func(e *Enqueuer) {
		if name != "" {
			e.defaultQueue = name
		}
	}
}

// WithMaxRetries sets how many times a failed task is retried before it
// is parked on the dead list.
func WithMaxRetries(n int8) EnqueuerOption {
	return func(e *Enqueuer) {
		if n >= 0 {
			e.maxRetries = n
		}
	}
}

// NewEnqueuer creates an Enqueuer over the given broker.
func NewEnqueuer(broker Broker, opts ...EnqueuerOption) (*Enqueuer, error) {
	if broker == nil {
		return nil, ErrBrokerNil
	}

	e := &Enqueuer{
		broker:       broker,
		defaultQueue: DefaultQueueName,
		maxRetries:   3,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Enqueue pushes payload to the queue. The task name is derived from
// the payload's type, so the worker side registers handlers by type.
func (e *Enqueuer) Enqueue(ctx context.Context, payload any) error {
	if payload == nil {
		return ErrPayloadNil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload of type %T: %w", payload, err)
	}

	task := &Task{
		ID:         uuid.New(),
		Queue:      e.defaultQueue,
		TaskName:   qualifiedStructName(payload),
		Payload:    data,
		MaxRetries: e.maxRetries,
		CreatedAt:  time.Now(),
	}

	if err := e.broker.Push(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue task %q: %w", task.TaskName, err)
	}
	return nil
}

func qualifiedStructName(v any) string {
	return strings.TrimLeft(fmt.Sprintf("%T", v), "*")
}
