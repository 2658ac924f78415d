package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Worker pops tasks from the broker and dispatches them to registered
// handlers. A failed task is re-pushed until its retries run out, then
// parked on the dead list when the broker supports it.
type Worker struct {
	broker   Broker
	handlers map[string]Handler
	queues   []string
	popWait  time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithQueues sets the queues the worker consumes, in priority order.
func WithQueues(queues ...string) WorkerOption {
	return func(w *Worker) {
		if len(queues) > 0 {
			w.queues = queues
		}
	}
}

// WithPopWait sets how long a single blocking pop waits.
func WithPopWait(d time.Duration) WorkerOption {
	return func(w *Worker) {
		if d > 0 {
			w.popWait = d
		}
	}
}

// WithLogger sets the worker logger.
func WithLogger(log *slog.Logger) WorkerOption {
	return func(w *Worker) {
		if log != nil {
			w.logger = log
		}
	}
}

// NewWorker creates a worker over the given broker.
func NewWorker(broker Broker, opts ...WorkerOption) (*Worker, error) {
	if broker == nil {
		return nil, ErrBrokerNil
	}

	w := &Worker{
		broker:   broker,
		handlers: make(map[string]Handler),
		queues:   []string{DefaultQueueName},
		popWait:  5 * time.Second,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// RegisterHandlers registers task handlers by name. A later handler
// with the same name replaces the earlier one.
func (w *Worker) RegisterHandlers(handlers ...Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, h := range handlers {
		if h != nil {
			w.handlers[h.Name()] = h
		}
	}
}

// Start begins consuming in a background goroutine until the context is
// canceled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return ErrAlreadyStarted
	}
	if len(w.handlers) == 0 {
		return ErrNoHandlers
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})

	go w.loop(ctx)
	return nil
}

// Stop cancels the consume loop and waits for the in-flight task.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *Worker) loop(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		task, err := w.broker.Pop(ctx, w.queues, w.popWait)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("failed to pop task", slog.Any("error", err))
			// Back off so a broken broker does not spin the loop.
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.popWait):
			}
			continue
		}
		if task == nil {
			continue
		}

		w.process(ctx, task)
	}
}

func (w *Worker) process(ctx context.Context, task *Task) {
	log := w.logger.With(
		slog.String("task", task.TaskName),
		slog.String("task_id", task.ID.String()),
	)

	w.mu.Lock()
	handler, ok := w.handlers[task.TaskName]
	w.mu.Unlock()
	if !ok {
		log.Error("no handler registered", slog.Any("error", ErrHandlerNotFound))
		w.park(ctx, task, ErrHandlerNotFound.Error())
		return
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &panicError{value: r}
			}
		}()
		return handler.Handle(ctx, task.Payload)
	}()
	if err == nil {
		log.Debug("task completed")
		return
	}

	log.Error("task failed", slog.Any("error", err), slog.Int("retry", int(task.RetryCount)))

	task.RetryCount++
	if task.RetryCount > task.MaxRetries {
		w.park(ctx, task, err.Error())
		return
	}
	if pushErr := w.broker.Push(ctx, task); pushErr != nil {
		log.Error("failed to requeue task", slog.Any("error", pushErr))
	}
}

func (w *Worker) park(ctx context.Context, task *Task, reason string) {
	dl, ok := w.broker.(DeadLetterer)
	if !ok {
		return
	}
	if err := dl.PushDead(ctx, task, reason); err != nil {
		w.logger.Error("failed to park dead task", slog.Any("error", err))
	}
}

type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return "task handler panicked"
}
