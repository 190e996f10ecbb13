package log

import (
	"context"
	"log/slog"
	"strings"
)

const redacted = "[REDACTED]"

// personalFields are attribute keys that carry journal text or contact
// details. Their values never reach a log sink.
var personalFields = map[string]struct{}{
	"entry":        {},
	"note":         {},
	"text":         {},
	"phone":        {},
	"contact":      {},
	"contact_name": {},
	"value":        {},
}

type RedactingHandler struct {
	inner  slog.Handler
	fields map[string]struct{}
}

// NewRedactingHandler wraps inner and masks personalFields plus any extra
// keys. Key matching is case-insensitive.
func NewRedactingHandler(inner slog.Handler, extra ...string) *RedactingHandler {
	fields := make(map[string]struct{}, len(personalFields)+len(extra))
	for key := range personalFields {
		fields[key] = struct{}{}
	}
	for _, key := range extra {
		fields[strings.ToLower(key)] = struct{}{}
	}
	return &RedactingHandler{inner: inner, fields: fields}
}

func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *RedactingHandler) Handle(ctx context.Context, record slog.Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fallback := slog.NewRecord(record.Time, slog.LevelError, "redaction handler panic recovered", record.PC)
			fallback.AddAttrs(slog.String("panic", redacted))
			err = h.inner.Handle(ctx, fallback)
		}
	}()

	out := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(h.redactAttr(attr))
		return true
	})
	return h.inner.Handle(ctx, out)
}

func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		masked = append(masked, h.redactAttr(attr))
	}
	return &RedactingHandler{inner: h.inner.WithAttrs(masked), fields: h.fields}
}

func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name), fields: h.fields}
}

func (h *RedactingHandler) redactAttr(attr slog.Attr) slog.Attr {
	if _, ok := h.fields[strings.ToLower(attr.Key)]; ok {
		return slog.String(attr.Key, redacted)
	}

	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		group := value.Group()
		nested := make([]slog.Attr, 0, len(group))
		for _, a := range group {
			nested = append(nested, h.redactAttr(a))
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(nested...)}
	}

	return attr
}
