package task

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/csvsweep/csvsweep/internal/domain"
)

// FetchParseTaskFactory creates FetchParseTask instances sharing one
// set of dependencies and options
type FetchParseTaskFactory struct {
	fetcher Fetcher
	parser  FrameParser
	emitter OutcomeEmitter
	opts    TaskOptions
	logger  *slog.Logger
}

// NewFetchParseTaskFactory creates a new factory for FetchParseTasks
func NewFetchParseTaskFactory(
	fetcher Fetcher,
	parser FrameParser,
	emitter OutcomeEmitter,
	opts TaskOptions,
	logger *slog.Logger,
) *FetchParseTaskFactory {
	return &FetchParseTaskFactory{
		fetcher: fetcher,
		parser:  parser,
		emitter: emitter,
		opts:    opts,
		logger:  logger.With("component", "fetch_parse_task_factory"),
	}
}

// CreateTask creates a new FetchParseTask for the specified resource
func (f *FetchParseTaskFactory) CreateTask(runID uuid.UUID, resource domain.Resource) (Task, error) {
	t, err := NewFetchParseTask(
		runID,
		resource,
		f.fetcher,
		f.parser,
		f.emitter,
		f.opts,
		f.logger,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
