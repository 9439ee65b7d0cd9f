package sweep

import (
	"errors"
	"fmt"
)

// Common sentinel errors for the sweep service
var (
	// ErrNoResources indicates that a run was requested with an empty
	// manifest.
	ErrNoResources = errors.New("manifest has no resources")
)

// SweepError wraps errors from the sweep service with context.
type SweepError struct {
	// Operation is the operation that failed (e.g., "run_sequential", "run_pool")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for SweepError.
func (e *SweepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sweep %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("sweep %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SweepError) Unwrap() error {
	return e.Err
}

// NewSweepError creates a new SweepError.
// It returns known sentinel errors directly without wrapping.
func NewSweepError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNoResources) {
		return ErrNoResources
	}

	return &SweepError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
