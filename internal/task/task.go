package task

import (
	"context"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task type constants
const (
	// TaskTypeFetchParse represents the task type for fetching and parsing a CSV resource
	TaskTypeFetchParse = "fetch_parse"
)

// Task represents a unit of work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Payload returns the task data as a byte slice
	Payload() []byte

	// Status returns the current task status
	Status() TaskStatus

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// TaskQueueReader provides read access to the task channel, allowing
// workers to consume tasks and report their completion without the
// ability to enqueue
type TaskQueueReader interface {
	// GetChannel returns a read-only channel for consuming tasks
	GetChannel() <-chan Task

	// MarkDone records that a previously dequeued task has finished
	// processing, successfully or not
	MarkDone()
}

// TaskQueueWriter provides write access to the task queue,
// allowing run logic to enqueue tasks for processing
type TaskQueueWriter interface {
	// Enqueue adds a task to the queue for processing
	// Returns an error if the queue is full or closed
	Enqueue(task Task) error

	// Close closes the task queue, preventing further task submission
	Close()
}

// workerIDKey is the context key carrying the executing worker's ID.
type workerIDKey struct{}

// WithWorkerID returns a context carrying the given worker ID. The
// worker pool attaches it before executing a task so task logic can
// attribute its results.
func WithWorkerID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, workerIDKey{}, id)
}

// WorkerIDFromContext extracts the worker ID attached by WithWorkerID.
// It returns 0 when the context carries none, which is also the ID the
// sequential runner reports.
func WorkerIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(workerIDKey{}).(int); ok {
		return id
	}
	return 0
}
