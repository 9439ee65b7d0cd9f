package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunMode selects the execution strategy for a sweep.
type RunMode string

// Possible run modes. A "both" CLI invocation is two runs, one of each mode;
// a single report is always one or the other.
const (
	RunModeSequential RunMode = "sequential"
	RunModePool       RunMode = "pool"
)

// Common validation errors for Report
var (
	ErrEmptyRunID        = errors.New("run ID cannot be empty")
	ErrInvalidRunMode    = errors.New("invalid run mode")
	ErrMissingOutcome    = errors.New("resource has no outcome")
	ErrDuplicateOutcome  = errors.New("resource has more than one outcome")
	ErrUnexpectedOutcome = errors.New("outcome for resource not in manifest")
)

// Report aggregates the outcomes of one sweep run. Append is not
// concurrency-safe; concurrent producers must serialize through a collector
// (see the sweep package's report collector handler).
type Report struct {
	RunID      uuid.UUID `json:"run_id"`
	Mode       RunMode   `json:"mode"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Outcomes   []Outcome `json:"outcomes"`
}

// NewReport creates a Report for one run. The caller supplies the run ID so
// log lines and the report share the same identifier.
func NewReport(runID uuid.UUID, mode RunMode) (*Report, error) {
	if runID == uuid.Nil {
		return nil, ErrEmptyRunID
	}
	if !isValidRunMode(mode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRunMode, mode)
	}

	return &Report{
		RunID:     runID,
		Mode:      mode,
		StartedAt: time.Now().UTC(),
	}, nil
}

// Append records one resource's outcome.
func (r *Report) Append(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Finish stamps the report's end time.
func (r *Report) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// Parsed returns how many resources parsed successfully.
func (r *Report) Parsed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Failed() {
			n++
		}
	}
	return n
}

// Failed returns how many resources failed.
func (r *Report) Failed() int {
	return len(r.Outcomes) - r.Parsed()
}

// Durations returns every outcome's fetch+parse duration, in outcome order.
func (r *Report) Durations() []time.Duration {
	ds := make([]time.Duration, len(r.Outcomes))
	for i, o := range r.Outcomes {
		ds[i] = o.Duration
	}
	return ds
}

// TotalDuration returns the wall time of the whole run, or zero when the
// report has not been finished yet.
func (r *Report) TotalDuration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Complete verifies the exactly-once invariant against the manifest the run
// was given: every manifest resource has exactly one outcome, and no outcome
// names a resource outside the manifest.
func (r *Report) Complete(manifest []Resource) error {
	want := make(map[string]int, len(manifest))
	for _, res := range manifest {
		want[res.URL]++
	}

	seen := make(map[string]int, len(r.Outcomes))
	for _, o := range r.Outcomes {
		seen[o.Resource.URL]++
	}

	for url, n := range seen {
		if _, ok := want[url]; !ok {
			return fmt.Errorf("%w: %s", ErrUnexpectedOutcome, url)
		}
		if n > 1 {
			return fmt.Errorf("%w: %s seen %d times", ErrDuplicateOutcome, url, n)
		}
	}

	for url := range want {
		if seen[url] == 0 {
			return fmt.Errorf("%w: %s", ErrMissingOutcome, url)
		}
	}

	return nil
}

// isValidRunMode checks if the given mode is a valid RunMode.
func isValidRunMode(mode RunMode) bool {
	switch mode {
	case RunModeSequential, RunModePool:
		return true
	default:
		return false
	}
}
