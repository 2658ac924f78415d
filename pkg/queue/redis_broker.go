package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	queueKeyPrefix = "queue:"
	deadKeySuffix  = ":dead"
)

// RedisBroker moves tasks through redis lists: LPUSH to produce, BRPOP
// to consume. Tasks that exhaust retries land on a per-queue dead list
// for manual inspection.
type RedisBroker struct {
	client redis.UniversalClient
}

// NewRedisBroker wraps an existing redis client.
func NewRedisBroker(client redis.UniversalClient) *RedisBroker {
	return &RedisBroker{client: client}
}

// Push appends the task to its queue list.
func (b *RedisBroker) Push(ctx context.Context, task *Task) error {
	if task == nil {
		return ErrPayloadNil
	}

	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task %q: %w", task.TaskName, err)
	}

	if err := b.client.LPush(ctx, queueKeyPrefix+task.Queue, data).Err(); err != nil {
		return fmt.Errorf("failed to push task %q to queue %q: %w", task.TaskName, task.Queue, err)
	}
	return nil
}

// Pop blocks up to wait for a task on any of the given queues. A timeout
// is not an error: the caller gets (nil, nil) and polls again.
func (b *RedisBroker) Pop(ctx context.Context, queues []string, wait time.Duration) (*Task, error) {
	keys := make([]string, len(queues))
	for i, q := range queues {
		keys[i] = queueKeyPrefix + q
	}

	res, err := b.client.BRPop(ctx, wait, keys...).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop task: %w", err)
	}

	// BRPOP returns [key, value].
	var task Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return &task, nil
}

// PushDead parks a task on the queue's dead list together with the
// failure reason.
func (b *RedisBroker) PushDead(ctx context.Context, task *Task, reason string) error {
	entry := struct {
		Task   *Task     `json:"task"`
		Reason string    `json:"reason"`
		At     time.Time `json:"failed_at"`
	}{task, reason, time.Now()}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal dead task: %w", err)
	}
	return b.client.LPush(ctx, queueKeyPrefix+task.Queue+deadKeySuffix, data).Err()
}
