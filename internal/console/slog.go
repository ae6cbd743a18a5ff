package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// SlogHandler adapts a Console to log/slog. Attributes are rendered as
// key=value pairs after the message.
type SlogHandler struct {
	console *Console
	level   slog.Leveler
	caller  string
	attrs   []string
	group   string
}

// NewSlogHandler creates a handler that writes records at or above level to c
// under the given caller label. A nil level means slog.LevelInfo.
func NewSlogHandler(c *Console, level slog.Leveler, caller string) *SlogHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &SlogHandler{console: c, level: level, caller: caller}
}

// Enabled implements slog.Handler.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Message)
	for _, a := range h.attrs {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	record.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.group, a)
		return true
	})
	h.console.Log(levelFromSlog(record.Level), b.String(), h.caller)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		var b strings.Builder
		appendAttr(&b, h.group, a)
		if s := strings.TrimPrefix(b.String(), " "); s != "" {
			next.attrs = append(next.attrs, s)
		}
	}
	return next
}

// WithGroup implements slog.Handler.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	if next.group != "" {
		next.group += "." + name
	} else {
		next.group = name
	}
	return next
}

func (h *SlogHandler) clone() *SlogHandler {
	dup := *h
	dup.attrs = append([]string(nil), h.attrs...)
	return &dup
}

func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, sub := range a.Value.Group() {
			appendAttr(b, key, sub)
		}
		return
	}
	fmt.Fprintf(b, " %s=%v", key, a.Value.Any())
}

func levelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelDebug:
		return LevelVerbose
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarning
	default:
		return LevelError
	}
}
