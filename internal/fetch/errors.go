package fetch

import (
	"errors"
	"fmt"
)

// Common errors returned by Fetcher implementations.
var (
	// ErrFetchFailed is returned when a retrieval fails for any general
	// reason, such as a connection error or a canceled context.
	ErrFetchFailed = errors.New("failed to fetch resource")

	// ErrUnexpectedStatus is returned when the server responds with a
	// non-2xx status code.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrBodyTooLarge is returned when a response body exceeds the
	// configured size cap.
	ErrBodyTooLarge = errors.New("response body exceeds size limit")

	// ErrInvalidConfig is returned when a fetcher is constructed with
	// an invalid configuration.
	ErrInvalidConfig = errors.New("invalid fetcher configuration")
)

// RequestError carries the context of a failed retrieval: which URL
// was requested and, when a response arrived, its status code.
type RequestError struct {
	URL        string // The URL that was requested
	StatusCode int    // HTTP status code, or 0 if no response arrived
	Err        error  // Original error
}

// Error implements the error interface for RequestError.
func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError creates a RequestError for the given URL, status
// code, and underlying error.
func NewRequestError(url string, statusCode int, err error) *RequestError {
	return &RequestError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}
