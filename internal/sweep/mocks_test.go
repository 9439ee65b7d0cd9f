package sweep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/csvsweep/csvsweep/internal/config"
	"github.com/csvsweep/csvsweep/internal/domain"
	"github.com/csvsweep/csvsweep/internal/events"
	"github.com/csvsweep/csvsweep/internal/task"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// execRecorder tracks which resources ran, in what order, how often, and
// under which worker IDs.
type execRecorder struct {
	mu        sync.Mutex
	order     []string
	counts    map[string]int
	workerIDs map[int]bool
	early     bool
}

func newExecRecorder() *execRecorder {
	return &execRecorder{
		counts:    make(map[string]int),
		workerIDs: make(map[int]bool),
	}
}

func (r *execRecorder) record(url string, workerID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, url)
	r.counts[url]++
	r.workerIDs[workerID] = true
}

// markEarly flags that a task began executing before the whole manifest had
// been turned into tasks.
func (r *execRecorder) markEarly() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.early = true
}

func (r *execRecorder) snapshot() ([]string, map[string]int, map[int]bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order := make([]string, len(r.order))
	copy(order, r.order)
	counts := make(map[string]int, len(r.counts))
	for k, v := range r.counts {
		counts[k] = v
	}
	workers := make(map[int]bool, len(r.workerIDs))
	for k, v := range r.workerIDs {
		workers[k] = v
	}
	return order, counts, workers, r.early
}

func previewFrame() *domain.Frame {
	return &domain.Frame{
		Columns: []string{"Name", "Team"},
		Rows:    [][]string{{"Adam Donachie", "BAL"}},
	}
}

// fakeTask is a scripted task.Task that emits outcomes through the real
// emitter, standing in for the full fetch-parse pipeline.
type fakeTask struct {
	id       uuid.UUID
	runID    uuid.UUID
	resource domain.Resource
	emitter  *events.InMemoryEventEmitter
	rec      *execRecorder

	delay    time.Duration
	failWith error
	silent   bool

	created       *atomic.Int64
	expectCreated int64
}

func (t *fakeTask) ID() uuid.UUID           { return t.id }
func (t *fakeTask) Type() string            { return "fake" }
func (t *fakeTask) Payload() []byte         { return nil }
func (t *fakeTask) Status() task.TaskStatus { return task.TaskStatusPending }

func (t *fakeTask) Execute(ctx context.Context) error {
	start := time.Now()
	workerID := task.WorkerIDFromContext(ctx)

	if t.expectCreated > 0 && t.created.Load() != t.expectCreated {
		t.rec.markEarly()
	}
	t.rec.record(t.resource.URL, workerID)

	if t.delay > 0 {
		timer := time.NewTimer(t.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			err := ctx.Err()
			t.emitFailed(ctx, workerID, err, time.Since(start))
			return err
		}
	}

	if t.failWith != nil {
		t.emitFailed(ctx, workerID, t.failWith, time.Since(start))
		return t.failWith
	}

	if t.silent {
		return nil
	}

	outcome := domain.NewParsedOutcome(t.resource, workerID, previewFrame(), 5, time.Since(start))
	return t.emitter.EmitEvent(ctx, events.NewOutcomeEvent(t.runID, outcome))
}

func (t *fakeTask) emitFailed(ctx context.Context, workerID int, err error, d time.Duration) {
	if t.silent {
		return
	}
	outcome := domain.NewFailedOutcome(t.resource, workerID, err, d)
	_ = t.emitter.EmitEvent(ctx, events.NewOutcomeEvent(t.runID, outcome))
}

// fakeTaskFactory builds fakeTasks and doubles as the failure injection
// point for factory-level errors.
type fakeTaskFactory struct {
	emitter *events.InMemoryEventEmitter
	rec     *execRecorder

	delay      time.Duration
	failURLs   map[string]error
	silentURLs map[string]bool
	createErr  error

	created       atomic.Int64
	expectCreated int64
}

func newFakeTaskFactory(emitter *events.InMemoryEventEmitter, rec *execRecorder) *fakeTaskFactory {
	return &fakeTaskFactory{
		emitter:    emitter,
		rec:        rec,
		failURLs:   make(map[string]error),
		silentURLs: make(map[string]bool),
	}
}

func (f *fakeTaskFactory) CreateTask(runID uuid.UUID, resource domain.Resource) (task.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created.Add(1)
	return &fakeTask{
		id:            uuid.New(),
		runID:         runID,
		resource:      resource,
		emitter:       f.emitter,
		rec:           f.rec,
		delay:         f.delay,
		failWith:      f.failURLs[resource.URL],
		silent:        f.silentURLs[resource.URL],
		created:       &f.created,
		expectCreated: f.expectCreated,
	}, nil
}

func testManifest(t *testing.T, n int) []domain.Resource {
	t.Helper()
	manifest := make([]domain.Resource, 0, n)
	for i := 0; i < n; i++ {
		res, err := domain.NewResource(fmt.Sprintf("https://data.test/file%02d.csv", i))
		require.NoError(t, err)
		manifest = append(manifest, res)
	}
	return manifest
}

func testRunConfig() config.RunConfig {
	return config.RunConfig{
		Mode:            "both",
		Workers:         3,
		QueueSize:       4,
		ProcessingDelay: 0,
	}
}

// newTestService wires a service over a real emitter and a fake factory.
func newTestService(t *testing.T) (*Service, *fakeTaskFactory, *execRecorder) {
	t.Helper()
	logger := setupTestLogger()
	emitter := events.NewInMemoryEventEmitter(logger)
	rec := newExecRecorder()
	factory := newFakeTaskFactory(emitter, rec)

	svc, err := NewService(factory, emitter, testRunConfig(), logger)
	require.NoError(t, err)
	return svc, factory, rec
}
