// Package config defines the application's configuration structure and
// loading logic. Values come from defaults, an optional YAML config
// file, and environment variables with the CSVSWEEP prefix, in
// ascending order of precedence. The loaded configuration is validated
// before use so the rest of the application can trust it.
package config
