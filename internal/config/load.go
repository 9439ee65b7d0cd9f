package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied before any config file or environment
// variable is consulted.
const (
	DefaultMode            = "both"
	DefaultWorkers         = 5
	DefaultQueueSize       = 64
	DefaultProcessingDelay = "500ms"
	DefaultFetchTimeout    = "5s"
	DefaultMaxBodyBytes    = 8 << 20
	DefaultUserAgent       = "csvsweep/1.0"
	DefaultDelimiter       = ","
	DefaultEncoding        = "utf-8"
	DefaultPreviewColumns  = 5
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Load configuration from defaults, an optional config file, and
// environment variables. Environment variables take precedence over
// values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile behaves like Load but reads the given config file
// instead of searching the working directory. An empty path keeps the
// working-directory search.
func LoadWithFile(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Configure to read from a config file
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// A missing config file is fine; the defaults and
			// environment cover everything.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	// Configure environment variables with the CSVSWEEP prefix
	v.SetEnvPrefix("CSVSWEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind environment variables so they are visible to
	// Unmarshal even without a config file entry
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"run.mode", "CSVSWEEP_RUN_MODE"},
		{"run.workers", "CSVSWEEP_RUN_WORKERS"},
		{"run.queue_size", "CSVSWEEP_RUN_QUEUE_SIZE"},
		{"run.processing_delay", "CSVSWEEP_RUN_PROCESSING_DELAY"},
		{"fetch.timeout", "CSVSWEEP_FETCH_TIMEOUT"},
		{"fetch.max_body_bytes", "CSVSWEEP_FETCH_MAX_BODY_BYTES"},
		{"fetch.user_agent", "CSVSWEEP_FETCH_USER_AGENT"},
		{"parse.delimiter", "CSVSWEEP_PARSE_DELIMITER"},
		{"parse.encoding", "CSVSWEEP_PARSE_ENCODING"},
		{"parse.preview_columns", "CSVSWEEP_PARSE_PREVIEW_COLUMNS"},
		{"log.level", "CSVSWEEP_LOG_LEVEL"},
		{"log.format", "CSVSWEEP_LOG_FORMAT"},
	}

	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	// Unmarshal and validate
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against the struct validation rules. Callers that
// override loaded values (for example from command line flags) should
// re-validate before using the config.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("run.mode", DefaultMode)
	v.SetDefault("run.workers", DefaultWorkers)
	v.SetDefault("run.queue_size", DefaultQueueSize)
	v.SetDefault("run.processing_delay", DefaultProcessingDelay)
	v.SetDefault("fetch.timeout", DefaultFetchTimeout)
	v.SetDefault("fetch.max_body_bytes", DefaultMaxBodyBytes)
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("parse.delimiter", DefaultDelimiter)
	v.SetDefault("parse.encoding", DefaultEncoding)
	v.SetDefault("parse.preview_columns", DefaultPreviewColumns)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}
