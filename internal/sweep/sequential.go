package sweep

import (
	"context"
	"fmt"

	"github.com/csvsweep/csvsweep/internal/domain"
	"github.com/csvsweep/csvsweep/internal/redact"
)

// RunSequential processes every manifest resource in order, one at a time.
// A resource that fails to fetch or parse is recorded in the report and
// skipped. The returned report covers whatever was processed, even when the
// run is interrupted by ctx.
func (s *Service) RunSequential(ctx context.Context, manifest []domain.Resource) (*domain.Report, error) {
	report, err := s.beginRun(domain.RunModeSequential, manifest)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With("run_id", report.RunID, "mode", report.Mode)
	logger.Info("starting sequential sweep", "resources", len(manifest))

	for i, res := range manifest {
		if err := ctx.Err(); err != nil {
			report.Finish()
			return report, NewSweepError(
				"run_sequential",
				fmt.Sprintf("interrupted after %d of %d resources", i, len(manifest)),
				err,
			)
		}

		t, err := s.factory.CreateTask(report.RunID, res)
		if err != nil {
			report.Finish()
			return report, NewSweepError(
				"run_sequential",
				fmt.Sprintf("failed to create task for %s", redact.URL(res.URL)),
				err,
			)
		}

		// The task has already recorded a failed outcome; move on to
		// the next resource.
		if err := t.Execute(ctx); err != nil {
			logger.Debug("resource failed, continuing",
				"url", redact.URL(res.URL),
				"error", err)
		}
	}

	report.Finish()
	if err := s.verify(report, manifest); err != nil {
		return report, err
	}

	s.logSummary(logger, report)
	return report, nil
}
