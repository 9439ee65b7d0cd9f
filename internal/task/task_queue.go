package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Common errors returned by the TaskQueue
var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// TaskQueue implements a buffered task queue that satisfies both
// TaskQueueReader and TaskQueueWriter interfaces. It additionally
// tracks how many enqueued tasks are still unfinished so callers can
// wait for the queue to drain completely.
type TaskQueue struct {
	tasks   chan Task
	logger  *slog.Logger
	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

// NewTaskQueue creates a new task queue with the specified buffer size
func NewTaskQueue(size int, logger *slog.Logger) *TaskQueue {
	return &TaskQueue{
		tasks:  make(chan Task, size),
		logger: logger,
	}
}

// Enqueue adds a task to the queue for processing
// Returns an error if the queue is full or closed
func (q *TaskQueue) Enqueue(task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	// Count the task before offering it to the channel so a drain
	// started right after Enqueue returns cannot miss it.
	q.pending.Add(1)

	select {
	case q.tasks <- task:
		q.logger.Debug("task enqueued",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"queue_len", len(q.tasks),
			"queue_cap", cap(q.tasks))
		return nil
	default:
		// Channel is full
		q.pending.Add(-1)
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.tasks))
	}
}

// MarkDone records that a previously dequeued task has finished
// processing. Every consumed task must be marked done exactly once for
// Join to return.
func (q *TaskQueue) MarkDone() {
	q.pending.Done()
}

// Join blocks until every enqueued task has been consumed and marked
// done, or the context is canceled. It returns the context's error on
// cancellation.
func (q *TaskQueue) Join(ctx context.Context) error {
	drained := make(chan struct{})
	go func() {
		q.pending.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes the task queue, preventing further task submission
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.tasks)
		q.logger.Info("task queue closed")
	}
}

// GetChannel returns a read-only channel for consuming tasks
func (q *TaskQueue) GetChannel() <-chan Task {
	return q.tasks
}
