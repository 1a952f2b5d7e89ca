package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"speakersplit/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Console receives every line alongside Files. With neither set, output
	// goes to stdout.
	Console io.Writer
	Files   []string
	// Color enables ANSI level colours. It only applies when Files is empty,
	// so log files never contain escape codes.
	Color bool
}

// logFileName is the log file created under the configured log directory.
const logFileName = "speakersplit.log"

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format != "" && format != "console" && format != "json" {
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
	out, err := openOutputs(opts)
	if err != nil {
		return nil, err
	}

	level := parseLevel(opts.Level)
	withSource := level <= slog.LevelDebug
	if format == "json" {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level:       level,
			AddSource:   withSource,
			ReplaceAttr: renameJSONKeys,
		})), nil
	}
	return slog.New(&consoleHandler{
		out:    &lockedWriter{w: out},
		level:  level,
		source: withSource,
		color:  opts.Color && len(opts.Files) == 0,
	}), nil
}

// NewFromConfig logs to stdout and, when a log directory is configured, to
// speakersplit.log inside it.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	opts := Options{Console: os.Stdout, Color: isTerminal(os.Stdout)}
	if cfg == nil {
		return New(opts)
	}
	opts.Level = cfg.Logging.Level
	opts.Format = cfg.Logging.Format
	if cfg.Paths.LogDir != "" {
		opts.Files = []string{filepath.Join(cfg.Paths.LogDir, logFileName)}
	}
	return New(opts)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// parseLevel accepts slog level names; anything else logs at info.
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func openOutputs(opts Options) (io.Writer, error) {
	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, opts.Console)
	}
	for _, path := range opts.Files {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		writers = append(writers, f)
	}
	switch len(writers) {
	case 0:
		return os.Stdout, nil
	case 1:
		return writers[0], nil
	default:
		return io.MultiWriter(writers...), nil
	}
}

func renameJSONKeys(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		a.Key = "ts"
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339))
	case slog.LevelKey:
		a.Value = slog.StringValue(strings.ToLower(a.Value.String()))
	case slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok && src != nil {
			a.Value = slog.StringValue(filepath.Base(src.File) + ":" + strconv.Itoa(src.Line))
		}
	}
	return a
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) write(p []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := l.w.Write(p)
	return err
}

// consoleHandler writes "<ts> <LEVEL> <component>: <msg> key=value..." lines.
// The component attribute becomes the message prefix instead of a pair.
type consoleHandler struct {
	out       *lockedWriter
	level     slog.Level
	source    bool
	color     bool
	component string
	group     string
	bound     []byte
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	component := h.component
	pairs := slices.Clip(h.bound)
	r.Attrs(func(a slog.Attr) bool {
		if h.group == "" && a.Key == FieldComponent && component == "" {
			component = a.Value.String()
			return true
		}
		pairs = appendPair(pairs, h.group, a)
		return true
	})

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	line := make([]byte, 0, 96+len(pairs))
	line = ts.UTC().AppendFormat(line, time.RFC3339)
	line = append(line, ' ')
	if h.color {
		line = append(line, levelColor(r.Level)...)
		line = append(line, r.Level.String()...)
		line = append(line, ansiReset...)
	} else {
		line = append(line, r.Level.String()...)
	}
	line = append(line, ' ')
	if component != "" {
		line = append(line, component...)
		line = append(line, ": "...)
	}
	line = append(line, strings.TrimSpace(r.Message)...)
	if h.source && r.PC != 0 {
		if src := r.Source(); src != nil {
			line = fmt.Appendf(line, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	line = append(line, pairs...)
	line = append(line, '\n')
	return h.out.write(line)
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.bound = append([]byte(nil), h.bound...)
	for _, a := range attrs {
		if h.group == "" && a.Key == FieldComponent && next.component == "" {
			next.component = a.Value.String()
			continue
		}
		next.bound = appendPair(next.bound, h.group, a)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = h.group + name + "."
	return &next
}

// appendPair appends " key=value", flattening groups into dotted keys.
func appendPair(buf []byte, group string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			group += a.Key + "."
		}
		for _, member := range a.Value.Group() {
			buf = appendPair(buf, group, member)
		}
		return buf
	}
	buf = append(buf, ' ')
	buf = append(buf, group...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return append(buf, quoteIfNeeded(valueText(a.Value))...)
}

func valueText(v slog.Value) string {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
	}
	return v.String()
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}

const ansiReset = "\x1b[0m"

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "\x1b[31m"
	case level >= slog.LevelWarn:
		return "\x1b[33m"
	case level >= slog.LevelInfo:
		return "\x1b[36m"
	default:
		return "\x1b[90m"
	}
}
