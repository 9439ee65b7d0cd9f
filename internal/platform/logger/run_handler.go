package logger

import (
	"context"
	"log/slog"
	"sort"
)

// RunHandler is a custom slog.Handler that stamps application metadata
// onto every log record before forwarding it to the underlying handler.
// It lets run output from any part of the application, including code
// that uses the default logger, carry the same identifying attributes.
type RunHandler struct {
	// The underlying handler (text or JSON)
	handler slog.Handler
	// Metadata attributes added to every record, in stable order
	attrs []slog.Attr
}

// NewRunHandler creates a RunHandler that wraps the provided handler,
// adding the given metadata to each log record. Keys are emitted in
// sorted order so log output stays stable across records.
func NewRunHandler(handler slog.Handler, metadata map[string]string) *RunHandler {
	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.String(key, metadata[key]))
	}

	return &RunHandler{
		handler: handler,
		attrs:   attrs,
	}
}

// Enabled implements the slog.Handler interface.
func (h *RunHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *RunHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RunHandler{
		handler: h.handler.WithAttrs(attrs),
		attrs:   h.attrs,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *RunHandler) WithGroup(name string) slog.Handler {
	return &RunHandler{
		handler: h.handler.WithGroup(name),
		attrs:   h.attrs,
	}
}

// Handle implements the slog.Handler interface.
func (h *RunHandler) Handle(ctx context.Context, record slog.Record) error {
	// Clone the record to avoid modifying the original
	enhanced := record.Clone()
	enhanced.AddAttrs(h.attrs...)
	return h.handler.Handle(ctx, enhanced)
}
