// Package events defines the outcome event type and the emitter used
// to publish per-resource results to interested handlers. It decouples
// the code that produces outcomes (workers, the sequential runner)
// from the code that consumes them (report collection, preview
// logging).
package events
