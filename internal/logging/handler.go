// Package logging provides a custom slog handler that retains recent warnings.
// It forwards logs at WARN level and above to an in-memory ring buffer so the
// dashboard can show operational noise without any persistence layer.
package logging

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultBufferSize is the number of recent events kept when no size is given.
const DefaultBufferSize = 100

// Event is one retained log record.
type Event struct {
	Time    time.Time         `json:"time"`
	Level   string            `json:"level"`
	Message string            `json:"message"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// EventBufferHandler is a slog.Handler that wraps another handler and also
// retains WARN and ERROR level records in a bounded ring buffer.
type EventBufferHandler struct {
	inner slog.Handler
	level slog.Level

	mu     sync.Mutex
	events []Event
	size   int
}

// NewEventBufferHandler creates a handler that wraps inner and retains the
// last DefaultBufferSize records at WARN level and above.
func NewEventBufferHandler(inner slog.Handler) *EventBufferHandler {
	return NewEventBufferHandlerWithSize(inner, DefaultBufferSize)
}

// NewEventBufferHandlerWithSize creates a handler with a custom buffer size.
func NewEventBufferHandlerWithSize(inner slog.Handler, size int) *EventBufferHandler {
	if size < 1 {
		size = DefaultBufferSize
	}
	return &EventBufferHandler{
		inner: inner,
		level: slog.LevelWarn,
		size:  size,
	}
}

// Enabled implements slog.Handler.
func (h *EventBufferHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventBufferHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always forward to the inner handler first
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.retain(r, nil)
	}

	return nil
}

// WithAttrs implements slog.Handler. The buffer is shared with the parent so
// derived loggers feed the same event list.
func (h *EventBufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &shareHandler{inner: h.inner.WithAttrs(attrs), parent: h, attrs: attrs}
}

// WithGroup implements slog.Handler.
func (h *EventBufferHandler) WithGroup(name string) slog.Handler {
	return &shareHandler{inner: h.inner.WithGroup(name), parent: h}
}

// Recent returns the retained events, newest first.
func (h *EventBufferHandler) Recent() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Event, len(h.events))
	for i, ev := range h.events {
		out[len(h.events)-1-i] = ev
	}
	return out
}

// retain appends a record to the ring, evicting the oldest entry when full.
// extra carries attributes accumulated by WithAttrs on derived handlers.
func (h *EventBufferHandler) retain(r slog.Record, extra []slog.Attr) {
	ev := Event{
		Time:    r.Time,
		Level:   levelName(r.Level),
		Message: r.Message,
	}
	if r.NumAttrs() > 0 || len(extra) > 0 {
		ev.Attrs = make(map[string]string, r.NumAttrs()+len(extra))
		for _, a := range extra {
			ev.Attrs[a.Key] = a.Value.String()
		}
		r.Attrs(func(a slog.Attr) bool {
			ev.Attrs[a.Key] = a.Value.String()
			return true
		})
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.events = append(h.events, ev)
	if len(h.events) > h.size {
		h.events = h.events[len(h.events)-h.size:]
	}
}

// levelName converts a slog.Level to the event level string.
func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	default:
		return "info"
	}
}

// shareHandler forwards Handle to its own inner handler but retains records
// in the parent's buffer, so WithAttrs/WithGroup derivatives stay wired.
type shareHandler struct {
	inner  slog.Handler
	parent *EventBufferHandler
	attrs  []slog.Attr
}

func (h *shareHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *shareHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.parent.level {
		h.parent.retain(r, h.attrs)
	}
	return nil
}

func (h *shareHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &shareHandler{inner: h.inner.WithAttrs(attrs), parent: h.parent, attrs: merged}
}

func (h *shareHandler) WithGroup(name string) slog.Handler {
	return &shareHandler{inner: h.inner.WithGroup(name), parent: h.parent, attrs: h.attrs}
}
