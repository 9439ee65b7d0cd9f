// Package manifest provides the list of CSV resources a run operates
// on. It abstracts where the list comes from so the run logic stays
// independent of the source: callers get the built-in default set or
// load a custom set from a YAML file.
package manifest
