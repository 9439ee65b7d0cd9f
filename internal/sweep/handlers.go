package sweep

import (
	"context"
	"log/slog"
	"sync"

	"github.com/csvsweep/csvsweep/internal/domain"
	"github.com/csvsweep/csvsweep/internal/events"
	"github.com/csvsweep/csvsweep/internal/redact"
)

// ReportCollector is an event handler that appends outcomes to one run's
// report. Workers emit concurrently, so appends are serialized here; events
// belonging to other runs are ignored, which lets collectors for several
// runs share one emitter.
type ReportCollector struct {
	mu     sync.Mutex
	report *domain.Report
}

// NewReportCollector creates a collector bound to the given report.
func NewReportCollector(report *domain.Report) *ReportCollector {
	return &ReportCollector{report: report}
}

// HandleEvent implements events.EventHandler.
func (c *ReportCollector) HandleEvent(ctx context.Context, event *events.OutcomeEvent) error {
	if event == nil || event.RunID != c.report.RunID {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.Append(event.Outcome)
	return nil
}

// PreviewLogHandler is an event handler that writes the human-facing line
// for each outcome: the first-row preview when the resource parsed, the
// failure text when it did not.
type PreviewLogHandler struct {
	logger *slog.Logger
}

// NewPreviewLogHandler creates a new PreviewLogHandler.
func NewPreviewLogHandler(logger *slog.Logger) *PreviewLogHandler {
	return &PreviewLogHandler{
		logger: logger.With("component", "preview_log_handler"),
	}
}

// HandleEvent implements events.EventHandler.
func (h *PreviewLogHandler) HandleEvent(ctx context.Context, event *events.OutcomeEvent) error {
	if event == nil {
		return nil
	}

	o := event.Outcome
	if o.Failed() {
		h.logger.Warn("resource failed",
			"run_id", event.RunID,
			"url", redact.URL(o.Resource.URL),
			"worker_id", o.WorkerID,
			"duration", o.Duration,
			"error", redact.String(o.Err))
		return nil
	}

	h.logger.Info("first row preview",
		"run_id", event.RunID,
		"url", redact.URL(o.Resource.URL),
		"worker_id", o.WorkerID,
		"rows", o.Rows,
		"columns", o.Columns,
		"duration", o.Duration,
		"preview", o.Preview)
	return nil
}
