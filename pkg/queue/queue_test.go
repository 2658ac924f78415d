package queue_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fahleh/alx-files-manager/pkg/queue"
)

// memoryBroker is a channel-backed Broker for tests.
type memoryBroker struct {
	ch   chan *queue.Task
	mu   sync.Mutex
	dead []*queue.Task
}

func newMemoryBroker() *memoryBroker {
	return &memoryBroker{ch: make(chan *queue.Task, 16)}
}

func (b *memoryBroker) Push(_ context.Context, task *queue.Task) error {
	b.ch <- task
	return nil
}

func (b *memoryBroker) Pop(ctx context.Context, _ []string, wait time.Duration) (*queue.Task, error) {
	select {
	case task := <-b.ch:
		return task, nil
	case <-time.After(wait):
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *memoryBroker) PushDead(_ context.Context, task *queue.Task, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dead = append(b.dead, task)
	return nil
}

func (b *memoryBroker) deadCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.dead)
}

type thumbnailJob struct {
	UserID string `json:"userId"`
	FileID string `json:"fileId"`
}

func TestEnqueuer_Enqueue(t *testing.T) {
	t.Parallel()

	broker := newMemoryBroker()
	enq, err := queue.NewEnqueuer(broker, queue.WithQueue("thumbnails"))
	require.NoError(t, err)

	require.NoError(t, enq.Enqueue(context.Background(), thumbnailJob{UserID: "u1", FileID: "f1"}))

	task, err := broker.Pop(context.Background(), nil, time.Second)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "thumbnails", task.Queue)
	assert.Equal(t, "queue_test.thumbnailJob", task.TaskName)
	assert.JSONEq(t, `{"userId":"u1","fileId":"f1"}`, string(task.Payload))
}

func TestEnqueuer_NilPayload(t *testing.T) {
	t.Parallel()

	enq, err := queue.NewEnqueuer(newMemoryBroker())
	require.NoError(t, err)
	assert.ErrorIs(t, enq.Enqueue(context.Background(), nil), queue.ErrPayloadNil)
}

func TestWorker_DispatchesTypedPayload(t *testing.T) {
	t.Parallel()

	broker := newMemoryBroker()
	enq, err := queue.NewEnqueuer(broker)
	require.NoError(t, err)

	got := make(chan thumbnailJob, 1)
	worker, err := queue.NewWorker(broker, queue.WithPopWait(50*time.Millisecond))
	require.NoError(t, err)
	worker.RegisterHandlers(queue.NewTaskHandler(func(_ context.Context, job thumbnailJob) error {
		got <- job
		return nil
	}))

	require.NoError(t, worker.Start(context.Background()))
	defer worker.Stop()

	require.NoError(t, enq.Enqueue(context.Background(), thumbnailJob{UserID: "u2", FileID: "f2"}))

	select {
	case job := <-got:
		assert.Equal(t, "u2", job.UserID)
		assert.Equal(t, "f2", job.FileID)
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestWorker_RetriesThenParks(t *testing.T) {
	t.Parallel()

	broker := newMemoryBroker()
	enq, err := queue.NewEnqueuer(broker, queue.WithMaxRetries(1))
	require.NoError(t, err)

	var mu sync.Mutex
	attempts := 0
	worker, err := queue.NewWorker(broker, queue.WithPopWait(50*time.Millisecond))
	require.NoError(t, err)
	worker.RegisterHandlers(queue.NewTaskHandler(func(_ context.Context, _ thumbnailJob) error {
		mu.Lock()
		attempts++
		mu.Unlock()
		return assert.AnError
	}))

	require.NoError(t, worker.Start(context.Background()))
	defer worker.Stop()

	require.NoError(t, enq.Enqueue(context.Background(), thumbnailJob{FileID: "f3"}))

	require.Eventually(t, func() bool {
		return broker.deadCount() == 1
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, attempts) // first attempt plus one retry
}

func TestWorker_StartWithoutHandlers(t *testing.T) {
	t.Parallel()

	worker, err := queue.NewWorker(newMemoryBroker())
	require.NoError(t, err)
	assert.ErrorIs(t, worker.Start(context.Background()), queue.ErrNoHandlers)
}
