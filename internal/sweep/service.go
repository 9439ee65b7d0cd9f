package sweep

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/csvsweep/csvsweep/internal/config"
	"github.com/csvsweep/csvsweep/internal/domain"
	"github.com/csvsweep/csvsweep/internal/domain/runstats"
	"github.com/csvsweep/csvsweep/internal/events"
	"github.com/csvsweep/csvsweep/internal/task"
)

// TaskFactory creates the task that fetches and parses one resource.
type TaskFactory interface {
	// CreateTask creates a new task for the specified resource
	CreateTask(runID uuid.UUID, resource domain.Resource) (task.Task, error)
}

// HandlerRegistry registers outcome handlers with the event emitter.
type HandlerRegistry interface {
	// RegisterHandler adds a new event handler to receive events
	RegisterHandler(handler events.EventHandler)
}

// Service runs manifest sweeps. Each run gets a fresh report whose
// collector is registered on the shared emitter, so outcomes flow back
// regardless of which execution strategy produced them.
type Service struct {
	factory  TaskFactory
	registry HandlerRegistry
	cfg      config.RunConfig
	logger   *slog.Logger
}

// NewService creates a new sweep Service.
// It returns an error if any of the required dependencies are nil.
func NewService(
	factory TaskFactory,
	registry HandlerRegistry,
	cfg config.RunConfig,
	logger *slog.Logger,
) (*Service, error) {
	// Validate dependencies
	if factory == nil {
		return nil, &SweepError{
			Operation: "create_service",
			Message:   "factory cannot be nil",
		}
	}
	if registry == nil {
		return nil, &SweepError{
			Operation: "create_service",
			Message:   "registry cannot be nil",
		}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		factory:  factory,
		registry: registry,
		cfg:      cfg,
		logger:   logger.With("component", "sweep_service"),
	}, nil
}

// beginRun creates the report for a new run and registers its collector so
// outcomes emitted by the run's tasks land in it.
func (s *Service) beginRun(mode domain.RunMode, manifest []domain.Resource) (*domain.Report, error) {
	if len(manifest) == 0 {
		return nil, NewSweepError("begin_run", "nothing to sweep", ErrNoResources)
	}

	report, err := domain.NewReport(uuid.New(), mode)
	if err != nil {
		return nil, NewSweepError("begin_run", "failed to create report", err)
	}

	s.registry.RegisterHandler(NewReportCollector(report))
	return report, nil
}

// verify checks the exactly-once invariant: every manifest resource produced
// one outcome, and nothing outside the manifest did.
func (s *Service) verify(report *domain.Report, manifest []domain.Resource) error {
	if err := report.Complete(manifest); err != nil {
		return NewSweepError(
			"verify_run",
			fmt.Sprintf("run %s did not process the manifest exactly once", report.RunID),
			err,
		)
	}
	return nil
}

// logSummary writes the end-of-run line shared by both strategies.
func (s *Service) logSummary(logger *slog.Logger, report *domain.Report) {
	stats := runstats.Summarize(report.Durations())
	logger.Info("sweep complete",
		"resources", len(report.Outcomes),
		"parsed", report.Parsed(),
		"failed", report.Failed(),
		"total_duration", report.TotalDuration(),
		"mean_duration", stats.Mean,
		"median_duration", stats.Median,
		"max_duration", stats.Max)
}
