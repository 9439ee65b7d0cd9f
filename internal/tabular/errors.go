package tabular

import "errors"

// Common errors returned by the tabular package.
var (
	// ErrEmptyInput is returned when the input contains no header row.
	ErrEmptyInput = errors.New("input contains no data")

	// ErrMalformedCSV is returned when the input cannot be parsed as
	// CSV, for example because of unbalanced quotes or ragged rows.
	ErrMalformedCSV = errors.New("malformed CSV input")

	// ErrCheckFailed is returned when a parsed frame fails one of the
	// checks attached to the parser.
	ErrCheckFailed = errors.New("frame check failed")

	// ErrInvalidOptions is returned when a parser is constructed with
	// unusable options.
	ErrInvalidOptions = errors.New("invalid parser options")
)
