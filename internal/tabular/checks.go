package tabular

import (
	"fmt"

	"github.com/csvsweep/csvsweep/internal/domain"
)

// Check validates a parsed frame. Checks report the first violation
// they find by wrapping ErrCheckFailed.
type Check func(*domain.Frame) error

// WithChecks wraps a parse function so the given checks run, in order,
// against every frame it produces. The first failing check aborts the
// parse.
func WithChecks(parse ParseFunc, checks ...Check) ParseFunc {
	return func(body []byte) (*domain.Frame, error) {
		frame, err := parse(body)
		if err != nil {
			return nil, err
		}
		for _, check := range checks {
			if err := check(frame); err != nil {
				return nil, err
			}
		}
		return frame, nil
	}
}

// RequireColumns fails when any of the named columns is missing from
// the frame header.
func RequireColumns(names ...string) Check {
	return func(frame *domain.Frame) error {
		for _, name := range names {
			if !frame.HasColumn(name) {
				return fmt.Errorf("%w: missing required column %q", ErrCheckFailed, name)
			}
		}
		return nil
	}
}

// MinRows fails when the frame holds fewer than n data rows.
func MinRows(n int) Check {
	return func(frame *domain.Frame) error {
		if frame.NumRows() < n {
			return fmt.Errorf("%w: expected at least %d rows, got %d",
				ErrCheckFailed, n, frame.NumRows())
		}
		return nil
	}
}

// AllowedValues fails when any cell of the named column holds a value
// outside the allowed set. A missing column is also a failure.
func AllowedValues(column string, values ...string) Check {
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}

	return func(frame *domain.Frame) error {
		cells, err := frame.Column(column)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCheckFailed, err)
		}
		for i, cell := range cells {
			if !allowed[cell] {
				return fmt.Errorf("%w: row %d has disallowed value %q in column %q",
					ErrCheckFailed, i, cell, column)
			}
		}
		return nil
	}
}
