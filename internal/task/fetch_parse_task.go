package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/csvsweep/csvsweep/internal/domain"
	"github.com/csvsweep/csvsweep/internal/events"
	"github.com/csvsweep/csvsweep/internal/fetch"
	"github.com/csvsweep/csvsweep/internal/redact"
)

// Common errors
var (
	ErrNilFetcher        = errors.New("fetcher cannot be nil")
	ErrNilParser         = errors.New("parser cannot be nil")
	ErrNilEmitter        = errors.New("event emitter cannot be nil")
	ErrNilLogger         = errors.New("logger cannot be nil")
	ErrEmptyTaskResource = errors.New("task resource URL cannot be empty")
)

// Fetcher defines the retrieval operation this task needs.
// Declared here so the task depends on behavior, not on a concrete client.
type Fetcher interface {
	// Fetch retrieves the raw body of a resource
	Fetch(ctx context.Context, res domain.Resource) (*fetch.Payload, error)
}

// FrameParser defines the parsing operation this task needs.
type FrameParser interface {
	// Parse turns raw bytes into a frame
	Parse(body []byte) (*domain.Frame, error)
}

// OutcomeEmitter defines the event publishing operation this task needs.
type OutcomeEmitter interface {
	// EmitEvent publishes an outcome event to registered handlers
	EmitEvent(ctx context.Context, event *events.OutcomeEvent) error
}

// TaskOptions holds the per-task execution settings shared by all
// tasks of a run.
type TaskOptions struct {
	// ProcessingDelay simulates post-parse processing work. Zero
	// disables the delay.
	ProcessingDelay time.Duration

	// PreviewColumns is how many leading cells of the first row are
	// captured in the outcome preview.
	PreviewColumns int
}

// fetchParsePayload represents the serialized data describing the task
type fetchParsePayload struct {
	RunID uuid.UUID `json:"run_id"`
	URL   string    `json:"url"`
}

// FetchParseTask implements the Task interface for retrieving one CSV
// resource, parsing it, and publishing the outcome
type FetchParseTask struct {
	id       uuid.UUID
	runID    uuid.UUID
	resource domain.Resource
	fetcher  Fetcher
	parser   FrameParser
	emitter  OutcomeEmitter
	opts     TaskOptions
	logger   *slog.Logger

	mu     sync.Mutex
	status TaskStatus
}

// NewFetchParseTask creates a new fetch-parse task for one resource
func NewFetchParseTask(
	runID uuid.UUID,
	resource domain.Resource,
	fetcher Fetcher,
	parser FrameParser,
	emitter OutcomeEmitter,
	opts TaskOptions,
	logger *slog.Logger,
) (*FetchParseTask, error) {
	// Validate dependencies
	if fetcher == nil {
		return nil, ErrNilFetcher
	}
	if parser == nil {
		return nil, ErrNilParser
	}
	if emitter == nil {
		return nil, ErrNilEmitter
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	// Validate the resource
	if resource.URL == "" {
		return nil, ErrEmptyTaskResource
	}

	return &FetchParseTask{
		id:       uuid.New(),
		runID:    runID,
		resource: resource,
		fetcher:  fetcher,
		parser:   parser,
		emitter:  emitter,
		opts:     opts,
		logger:   logger.With("task_type", TaskTypeFetchParse, "url", redact.URL(resource.URL)),
		status:   TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *FetchParseTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *FetchParseTask) Type() string {
	return TaskTypeFetchParse
}

// Payload returns the task data as a byte slice
func (t *FetchParseTask) Payload() []byte {
	payload := fetchParsePayload{
		RunID: t.runID,
		URL:   t.resource.URL,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// If marshal fails, return an empty payload with error logged
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *FetchParseTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *FetchParseTask) setStatus(status TaskStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
}

// Execute runs the full lifecycle for one resource: fetch the body,
// parse it into a frame, simulate the processing delay, and publish
// the outcome. Failures at any step are captured in a failed outcome
// and returned; they never affect other tasks.
func (t *FetchParseTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)
	start := time.Now()
	workerID := WorkerIDFromContext(ctx)

	t.logger.Info("starting to parse CSV resource", "worker_id", workerID)

	// Check for cancellation before doing any work
	if err := ctx.Err(); err != nil {
		return t.fail(ctx, workerID, start, fmt.Errorf("task canceled: %w", err))
	}

	// 1. Retrieve the resource body
	payload, err := t.fetcher.Fetch(ctx, t.resource)
	if err != nil {
		return t.fail(ctx, workerID, start, fmt.Errorf("failed to fetch resource: %w", err))
	}

	t.logger.Debug("resource fetched",
		"bytes", len(payload.Body),
		"content_type", payload.ContentType,
		"fetch_time", payload.ElapsedTime)

	// 2. Parse the body into a frame
	frame, err := t.parser.Parse(payload.Body)
	if err != nil {
		return t.fail(ctx, workerID, start, fmt.Errorf("failed to parse CSV: %w", err))
	}

	// 3. Simulate the long processing step, honoring cancellation
	if t.opts.ProcessingDelay > 0 {
		timer := time.NewTimer(t.opts.ProcessingDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return t.fail(ctx, workerID, start, fmt.Errorf("processing interrupted: %w", ctx.Err()))
		}
	}

	// 4. Publish the outcome
	outcome := domain.NewParsedOutcome(t.resource, workerID, frame, t.opts.PreviewColumns, time.Since(start))

	t.logger.Info("CSV resource parsed",
		"worker_id", workerID,
		"rows", outcome.Rows,
		"columns", outcome.Columns,
		"duration", outcome.Duration)

	if err := t.emitter.EmitEvent(ctx, events.NewOutcomeEvent(t.runID, outcome)); err != nil {
		t.setStatus(TaskStatusFailed)
		t.logger.Error("failed to emit outcome event", "error", err)
		return fmt.Errorf("failed to emit outcome event: %w", err)
	}

	t.setStatus(TaskStatusCompleted)
	return nil
}

// fail records a failed outcome for the resource and returns err.
// Emission problems are logged but never mask the original failure.
func (t *FetchParseTask) fail(ctx context.Context, workerID int, start time.Time, err error) error {
	t.setStatus(TaskStatusFailed)
	t.logger.Error("error processing resource", "worker_id", workerID, "error", err)

	outcome := domain.NewFailedOutcome(t.resource, workerID, err, time.Since(start))
	if emitErr := t.emitter.EmitEvent(ctx, events.NewOutcomeEvent(t.runID, outcome)); emitErr != nil {
		t.logger.Error("failed to emit failure outcome event", "error", emitErr)
	}

	return err
}
