package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets up environment variables for testing
func setupEnv(t *testing.T, envVars map[string]string) func() {
	// Save current environment values
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	// Set new environment variables
	for name, value := range envVars {
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	// Return cleanup function
	return func() {
		// Restore original environment
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// clearEnv unsets every CSVSWEEP variable the loader binds so tests
// observe pure defaults.
func clearEnv(t *testing.T) func() {
	return setupEnv(t, map[string]string{
		"CSVSWEEP_RUN_MODE":              "",
		"CSVSWEEP_RUN_WORKERS":           "",
		"CSVSWEEP_RUN_QUEUE_SIZE":        "",
		"CSVSWEEP_RUN_PROCESSING_DELAY":  "",
		"CSVSWEEP_FETCH_TIMEOUT":         "",
		"CSVSWEEP_FETCH_MAX_BODY_BYTES":  "",
		"CSVSWEEP_FETCH_USER_AGENT":      "",
		"CSVSWEEP_PARSE_DELIMITER":       "",
		"CSVSWEEP_PARSE_ENCODING":        "",
		"CSVSWEEP_PARSE_PREVIEW_COLUMNS": "",
		"CSVSWEEP_LOG_LEVEL":             "",
		"CSVSWEEP_LOG_FORMAT":            "",
	})
}

// TestLoadDefaults verifies that the Load function sets the expected default
// values when no environment variables or config file are present.
func TestLoadDefaults(t *testing.T) {
	cleanup := clearEnv(t)
	defer cleanup()

	// Point at an explicit empty config file so a config.yaml in the
	// working directory cannot leak into the test.
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))

	cfg, err := LoadWithFile(path)

	require.NoError(t, err, "Load should not return an error with default values")
	require.NotNil(t, cfg, "Load should return a non-nil config")
	assert.Equal(t, "both", cfg.Run.Mode, "Default mode should be 'both'")
	assert.Equal(t, 5, cfg.Run.Workers, "Default worker count should be 5")
	assert.Equal(t, 64, cfg.Run.QueueSize, "Default queue size should be 64")
	assert.Equal(t, 500*time.Millisecond, cfg.Run.ProcessingDelay, "Default processing delay should be 500ms")
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout, "Default fetch timeout should be 5s")
	assert.Equal(t, int64(8<<20), cfg.Fetch.MaxBodyBytes, "Default body cap should be 8 MiB")
	assert.Equal(t, ",", cfg.Parse.Delimiter, "Default delimiter should be a comma")
	assert.Equal(t, "utf-8", cfg.Parse.Encoding, "Default encoding should be utf-8")
	assert.Equal(t, 5, cfg.Parse.PreviewColumns, "Default preview width should be 5 columns")
	assert.Equal(t, "info", cfg.Log.Level, "Default log level should be 'info'")
	assert.Equal(t, "text", cfg.Log.Format, "Default log format should be 'text'")
}

// TestLoadFromEnv verifies that the Load function correctly reads values from
// environment variables.
func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"CSVSWEEP_RUN_MODE":             "pool",
		"CSVSWEEP_RUN_WORKERS":          "8",
		"CSVSWEEP_RUN_PROCESSING_DELAY": "250ms",
		"CSVSWEEP_FETCH_TIMEOUT":        "10s",
		"CSVSWEEP_PARSE_ENCODING":       "latin-1",
		"CSVSWEEP_LOG_LEVEL":            "debug",
		"CSVSWEEP_LOG_FORMAT":           "json",
	})
	defer cleanup()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))

	cfg, err := LoadWithFile(path)

	require.NoError(t, err, "Load should not return an error with valid environment variables")
	require.NotNil(t, cfg, "Load should return a non-nil config")
	assert.Equal(t, "pool", cfg.Run.Mode, "Mode should be loaded from environment variables")
	assert.Equal(t, 8, cfg.Run.Workers, "Worker count should be loaded from environment variables")
	assert.Equal(t, 250*time.Millisecond, cfg.Run.ProcessingDelay, "Processing delay should be loaded from environment variables")
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout, "Fetch timeout should be loaded from environment variables")
	assert.Equal(t, "latin-1", cfg.Parse.Encoding, "Encoding should be loaded from environment variables")
	assert.Equal(t, "debug", cfg.Log.Level, "Log level should be loaded from environment variables")
	assert.Equal(t, "json", cfg.Log.Format, "Log format should be loaded from environment variables")
}

// TestLoadFromFile verifies that config file values are applied and that
// environment variables take precedence over them.
func TestLoadFromFile(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"CSVSWEEP_RUN_WORKERS": "12",
		"CSVSWEEP_RUN_MODE":    "",
		"CSVSWEEP_LOG_LEVEL":   "",
	})
	defer cleanup()

	configYaml := `
run:
  mode: sequential
  workers: 3
log:
  level: warn
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYaml), 0o600))

	cfg, err := LoadWithFile(path)

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "sequential", cfg.Run.Mode, "Mode should come from the config file")
	assert.Equal(t, "warn", cfg.Log.Level, "Log level should come from the config file")
	assert.Equal(t, 12, cfg.Run.Workers, "Environment variable should override the config file")
}

// TestLoadValidationErrors verifies that the Load function correctly
// validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name           string
		envVars        map[string]string
		errorSubstring string
	}{
		{
			name: "Invalid mode",
			envVars: map[string]string{
				"CSVSWEEP_RUN_MODE": "parallel",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Zero workers",
			envVars: map[string]string{
				"CSVSWEEP_RUN_WORKERS": "0",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Too many workers",
			envVars: map[string]string{
				"CSVSWEEP_RUN_WORKERS": "9999",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Invalid log level",
			envVars: map[string]string{
				"CSVSWEEP_LOG_LEVEL": "loud",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Unsupported encoding",
			envVars: map[string]string{
				"CSVSWEEP_PARSE_ENCODING": "utf-16",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Multi-character delimiter",
			envVars: map[string]string{
				"CSVSWEEP_PARSE_DELIMITER": ",,",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Malformed duration",
			envVars: map[string]string{
				"CSVSWEEP_FETCH_TIMEOUT": "five seconds",
			},
			errorSubstring: "failed to unmarshal",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := clearEnv(t)
			defer cleanup()
			caseCleanup := setupEnv(t, tc.envVars)
			defer caseCleanup()

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))

			cfg, err := LoadWithFile(path)

			assert.Error(t, err, "Load should return an error with invalid configuration")
			if err != nil {
				assert.Contains(t, err.Error(), tc.errorSubstring, "Error message should contain expected substring")
			}
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
