package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset  = "\033[0m"
	ansiDim    = "\033[2m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// TerminalHandler writes one line per record:
//
//	15:04:05.000 INF solved mode=range lowest=46 duration=1.2ms
//
// Colours are only emitted when color is set.
type TerminalHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	color  bool
	prefix string
	groups string
}

// NewTerminalHandler creates a TerminalHandler. A nil opts logs at INFO.
func NewTerminalHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *TerminalHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &TerminalHandler{w: w, mu: &sync.Mutex{}, level: level, color: color}
}

// Enabled reports whether records at level are written.
func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record.
func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	buf := bytes.NewBuffer(make([]byte, 0, 256))

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	h.styled(buf, ansiDim, ts.Format("15:04:05.000"))
	buf.WriteByte(' ')

	color, label := levelStyle(r.Level)
	h.styled(buf, color, label)
	buf.WriteByte(' ')
	h.styled(buf, ansiBold, r.Message)

	buf.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(buf, h.groups, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs pre-renders attrs so they are not formatted on every record.
func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var buf bytes.Buffer
	for _, a := range attrs {
		h.appendAttr(&buf, h.groups, a)
	}
	clone := *h
	clone.prefix = h.prefix + buf.String()
	return &clone
}

// WithGroup qualifies later attribute keys with name.
func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = h.groups + name + "."
	return &clone
}

func (h *TerminalHandler) styled(buf *bytes.Buffer, style, s string) {
	if !h.color {
		buf.WriteString(s)
		return
	}
	buf.WriteString(style)
	buf.WriteString(s)
	buf.WriteString(ansiReset)
}

func (h *TerminalHandler) appendAttr(buf *bytes.Buffer, groups string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			groups += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, groups, ga)
		}
		return
	}

	buf.WriteByte(' ')
	h.styled(buf, ansiDim, groups+a.Key+"=")
	value := formatValue(a.Value)
	if _, isErr := a.Value.Any().(error); isErr {
		h.styled(buf, ansiRed, value)
		return
	}
	buf.WriteString(value)
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level < slog.LevelInfo:
		return ansiCyan, "DBG"
	case level < slog.LevelWarn:
		return ansiGreen, "INF"
	case level < slog.LevelError:
		return ansiYellow, "WRN"
	default:
		return ansiRed, "ERR"
	}
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindDuration:
		return v.Duration().Round(time.Microsecond).String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = v.String()
		}
	default:
		return v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"\\=") {
		return strconv.Quote(s)
	}
	return s
}
