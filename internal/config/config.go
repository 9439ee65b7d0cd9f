package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Run   RunConfig   `mapstructure:"run" validate:"required"`
	Fetch FetchConfig `mapstructure:"fetch" validate:"required"`
	Parse ParseConfig `mapstructure:"parse" validate:"required"`
	Log   LogConfig   `mapstructure:"log" validate:"required"`
}

// RunConfig controls how a sweep executes: which strategy runs, how
// many workers the pool uses, and the simulated per-resource
// processing delay.
type RunConfig struct {
	// Mode selects the execution strategy. "sequential" processes
	// resources one at a time, "pool" uses the worker pool, and
	// "both" runs sequential then pool and reports the comparison.
	Mode string `mapstructure:"mode" validate:"required,oneof=sequential pool both"`

	// Workers is the number of pool workers when Mode is "pool" or "both".
	Workers int `mapstructure:"workers" validate:"required,gt=0,lte=64"`

	// QueueSize is the task queue capacity. It must hold at least one
	// task; runs size their queues up from this floor to fit the
	// manifest so population never blocks.
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`

	// ProcessingDelay simulates post-parse processing work per resource.
	ProcessingDelay time.Duration `mapstructure:"processing_delay" validate:"gte=0"`
}

// FetchConfig contains all HTTP retrieval settings.
type FetchConfig struct {
	// Timeout bounds each fetch, covering connection, request, and
	// body read.
	Timeout time.Duration `mapstructure:"timeout" validate:"required,gt=0"`

	// MaxBodyBytes caps the response body size read per resource.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"required,gt=0"`

	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" validate:"required"`
}

// ParseConfig contains all CSV parsing settings.
type ParseConfig struct {
	// Delimiter is the field separator, a single character.
	Delimiter string `mapstructure:"delimiter" validate:"required,len=1"`

	// Encoding names the charset response bodies are decoded from.
	Encoding string `mapstructure:"encoding" validate:"required,oneof=utf-8 latin-1 windows-1252"`

	// PreviewColumns is how many leading cells of the first row are
	// logged after a successful parse.
	PreviewColumns int `mapstructure:"preview_columns" validate:"required,gt=0,lte=16"`
}

// LogConfig contains all logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}
