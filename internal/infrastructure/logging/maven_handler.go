package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// MavenHandler is a slog.Handler that formats logs in Maven-style:
// [LEVEL] [SYSTEM] [HH:MM:SS] message key=value key=value
type MavenHandler struct {
	w              io.Writer
	level          slog.Leveler
	mu             *sync.Mutex
	system         string // e.g., "api", "features"
	showTimestamps bool
	useColors      bool
	prefix         string // dotted group path applied to later attrs
	attrs          []slog.Attr
}

// NewMavenHandler creates a new Maven-style handler
func NewMavenHandler(w io.Writer, opts *slog.HandlerOptions) *MavenHandler {
	h := &MavenHandler{
		w:              w,
		level:          slog.LevelInfo,
		mu:             &sync.Mutex{},
		showTimestamps: true,
		useColors:      isTerminal(w),
	}

	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}

	return h
}

// isTerminal checks if the writer is a terminal (for color output)
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Enabled reports whether the handler handles records at the given level.
func (h *MavenHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes a log record
func (h *MavenHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	h.colored(&buf, levelColor(r.Level), "["+levelString(r.Level)+"]")

	if h.system != "" {
		buf.WriteString(" [")
		buf.WriteString(h.system)
		buf.WriteString("]")
	}

	if h.showTimestamps && !r.Time.IsZero() {
		buf.WriteString(" ")
		h.colored(&buf, colorGray, "["+r.Time.Format("15:04:05")+"]")
	}

	buf.WriteString(" ")
	buf.WriteString(r.Message)

	for _, attr := range h.attrs {
		appendAttr(&buf, "", attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&buf, h.prefix, a)
		return true
	})

	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, buf.String())
	return err
}

func (h *MavenHandler) colored(buf *strings.Builder, color, s string) {
	if h.useColors {
		buf.WriteString(color)
	}
	buf.WriteString(s)
	if h.useColors {
		buf.WriteString(colorReset)
	}
}

// appendAttr writes " key=value", flattening groups into dotted keys.
// The system attr is rendered in the header instead.
func appendAttr(buf *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if prefix == "" && a.Key == "system" {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(buf, key, ga)
		}
		return
	}

	buf.WriteString(" ")
	buf.WriteString(key)
	buf.WriteString("=")
	buf.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	s := fmt.Sprint(v.Any())
	if v.Kind() == slog.KindString && strings.ContainsAny(s, " =\"") {
		return strconv.Quote(s)
	}
	return s
}

// WithAttrs returns a new handler with the given attributes added
func (h *MavenHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr(nil), h.attrs...)

	for _, attr := range attrs {
		if h.prefix == "" && attr.Key == "system" {
			clone.system = attr.Value.String()
			continue
		}
		if h.prefix != "" {
			attr = slog.Attr{Key: h.prefix + "." + attr.Key, Value: attr.Value}
		}
		clone.attrs = append(clone.attrs, attr)
	}

	return &clone
}

// WithGroup returns a new handler that prefixes later keys with name.
func (h *MavenHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.prefix == "" {
		clone.prefix = name
	} else {
		clone.prefix = clone.prefix + "." + name
	}
	return &clone
}

// levelColor returns the ANSI color code for a log level (Maven-style)
func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorCyan
	default:
		return colorGray
	}
}

// levelString returns a short, uppercase string for the log level
func levelString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", level)
	}
}
