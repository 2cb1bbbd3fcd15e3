package instrument

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
)

const maskedValue = "***"

// masker hides values whose key matches one of its fields, case-insensitively.
// It walks groups, maps, slices and JSON documents carried as strings or bytes.
type masker map[string]struct{}

func newMasker(fields []string) masker {
	m := make(masker, len(fields))
	for _, f := range fields {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			m[f] = struct{}{}
		}
	}
	return m
}

func (m masker) hides(key string) bool {
	_, ok := m[strings.ToLower(key)]
	return ok
}

func (m masker) attr(a slog.Attr) slog.Attr {
	if m.hides(a.Key) {
		return slog.String(a.Key, maskedValue)
	}

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		group := v.Group()
		out := make([]slog.Attr, len(group))
		for i, ga := range group {
			out[i] = m.attr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case slog.KindString:
		if s := v.String(); strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
			if masked, ok := m.json([]byte(s)); ok {
				return slog.String(a.Key, masked)
			}
		}
	case slog.KindAny:
		switch raw := v.Any().(type) {
		case map[string]any, []any:
			return slog.Any(a.Key, m.value(raw))
		case map[string]string:
			conv := make(map[string]any, len(raw))
			for k, s := range raw {
				conv[k] = s
			}
			return slog.Any(a.Key, m.value(conv))
		case []byte:
			if masked, ok := m.json(raw); ok {
				return slog.String(a.Key, masked)
			}
		}
	}

	return a
}

func (m masker) value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if m.hides(k) {
				out[k] = maskedValue
				continue
			}
			out[k] = m.value(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = m.value(item)
		}
		return out
	default:
		return v
	}
}

func (m masker) json(payload []byte) (string, bool) {
	var doc any
	if len(payload) == 0 || json.Unmarshal(payload, &doc) != nil {
		return "", false
	}
	b, err := json.Marshal(m.value(doc))
	if err != nil {
		return "", false
	}
	return string(b), true
}

type maskHandler struct {
	next slog.Handler
	mask masker
}

func (h *maskHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *maskHandler) Handle(ctx context.Context, r slog.Record) error {
	if len(h.mask) == 0 {
		return h.next.Handle(ctx, r)
	}

	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.mask.attr(a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *maskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.mask.attr(a)
	}
	return &maskHandler{next: h.next.WithAttrs(masked), mask: h.mask}
}

func (h *maskHandler) WithGroup(name string) slog.Handler {
	return &maskHandler{next: h.next.WithGroup(name), mask: h.mask}
}
