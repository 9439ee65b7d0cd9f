// Package sweep orchestrates manifest runs: it turns a list of CSV
// resources into fetch-parse tasks, executes them either one at a time or
// through a bounded worker pool, and aggregates the per-resource outcomes
// into a report.
//
// The two execution strategies share every other moving part. Both create
// their tasks through the same factory and both collect outcomes through the
// event emitter, so a report looks the same regardless of how the run was
// scheduled. The pool strategy enqueues the whole manifest before any worker
// starts, waits for the queue to drain, and only then stops the workers.
//
// Every run ends with an exactly-once check: each manifest resource must
// have produced one outcome, successful or not. A resource that fails to
// fetch or parse is recorded and skipped, never retried, and never aborts
// the run.
package sweep
