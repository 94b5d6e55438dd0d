package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// prettyHandler renders one colored line per record for terminal use.
type prettyHandler struct {
	out    io.Writer
	level  slog.Level
	attrs  []slog.Attr
	groups []string

	mut sync.Mutex
}

var _ slog.Handler = (*prettyHandler)(nil)

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := append([]slog.Attr(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	var b strings.Builder
	b.WriteString(color.New(color.FgHiBlack).Sprint(r.Time.Format("15:04:05.000")))
	b.WriteByte(' ')
	b.WriteString(levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(color.New(color.FgCyan).Sprint(h.attrKey(a.Key)))
		b.WriteByte('=')
		b.WriteString(formatValue(a.Value))
	}
	b.WriteByte('\n')

	h.mut.Lock()
	defer h.mut.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyHandler{
		out:    h.out,
		level:  h.level,
		attrs:  append(append([]slog.Attr(nil), h.attrs...), attrs...),
		groups: h.groups,
	}
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &prettyHandler{
		out:    h.out,
		level:  h.level,
		attrs:  h.attrs,
		groups: append(append([]string(nil), h.groups...), name),
	}
}

func (h *prettyHandler) attrKey(key string) string {
	if len(h.groups) == 0 {
		return key
	}
	return strings.Join(h.groups, ".") + "." + key
}

func levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold).Sprint("ERRO")
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow, color.Bold).Sprint("WARN")
	case level >= slog.LevelInfo:
		return color.New(color.FgBlue, color.Bold).Sprint("INFO")
	default:
		return color.New(color.FgMagenta, color.Bold).Sprint("DEBU")
	}
}

func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return fmt.Sprintf("%q", v.String())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	default:
		return fmt.Sprint(v.Any())
	}
}
