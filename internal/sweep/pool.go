package sweep

import (
	"context"
	"fmt"

	"github.com/csvsweep/csvsweep/internal/domain"
	"github.com/csvsweep/csvsweep/internal/redact"
	"github.com/csvsweep/csvsweep/internal/task"
)

// RunPool processes the manifest through a fixed-size worker pool. The queue
// is fully populated before the first worker starts, the run waits for every
// task to be marked done, and only then are the workers stopped.
func (s *Service) RunPool(ctx context.Context, manifest []domain.Resource) (*domain.Report, error) {
	report, err := s.beginRun(domain.RunModePool, manifest)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With("run_id", report.RunID, "mode", report.Mode)
	logger.Info("starting pool sweep",
		"resources", len(manifest),
		"workers", s.cfg.Workers)

	// Size the queue up to the manifest so the bulk enqueue below can
	// never hit the capacity limit.
	size := s.cfg.QueueSize
	if size < len(manifest) {
		size = len(manifest)
	}
	queue := task.NewTaskQueue(size, logger)

	// Populate the queue completely before any worker starts.
	for _, res := range manifest {
		t, err := s.factory.CreateTask(report.RunID, res)
		if err != nil {
			report.Finish()
			return report, NewSweepError(
				"run_pool",
				fmt.Sprintf("failed to create task for %s", redact.URL(res.URL)),
				err,
			)
		}
		if err := queue.Enqueue(t); err != nil {
			report.Finish()
			return report, NewSweepError(
				"run_pool",
				fmt.Sprintf("failed to enqueue task for %s", redact.URL(res.URL)),
				err,
			)
		}
	}
	logger.Debug("queue populated", "tasks", len(manifest))

	pool := task.NewWorkerPool(ctx, queue, task.WorkerPoolConfig{WorkerCount: s.cfg.Workers}, logger)
	// The failing task has already recorded its outcome; the pool handler
	// only traces.
	pool.SetErrorHandler(func(t task.Task, err error) {
		logger.Debug("task failed, continuing", "task_id", t.ID(), "error", err)
	})
	pool.Start()

	// Wait for every task to be marked done, then stop the workers.
	joinErr := queue.Join(ctx)
	pool.Stop()
	queue.Close()

	report.Finish()
	if joinErr != nil {
		return report, NewSweepError("run_pool", "interrupted before the queue drained", joinErr)
	}

	if err := s.verify(report, manifest); err != nil {
		return report, err
	}

	s.logSummary(logger, report)
	return report, nil
}
