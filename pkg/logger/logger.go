package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a component-scoped slog wrapper. File and Function return
// copies carrying the extra scope, so a logger can be derived per call site.
type Logger struct {
	base     *slog.Logger
	name     string
	file     string
	function string
}

// New returns a logger for the named component, configured from LOG_LEVEL
// and LOG_FORMAT.
func New(name string) Logger {
	return Logger{base: slog.New(handlerFromEnv(os.Stderr)), name: name}
}

// NewWithHandler builds a logger around an explicit handler. Tests use it to
// capture output.
func NewWithHandler(name string, handler slog.Handler) Logger {
	return Logger{base: slog.New(handler), name: name}
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return Logger{base: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func handlerFromEnv(w io.Writer) slog.Handler {
	level := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func (l Logger) File(name string) Logger {
	l.file = name
	return l
}

func (l Logger) Function(name string) Logger {
	l.function = name
	return l
}

// With attaches key/value pairs to every subsequent record.
func (l Logger) With(args ...any) Logger {
	l.base = l.logger().With(args...)
	return l
}

func (l Logger) logger() *slog.Logger {
	if l.base == nil {
		return slog.Default()
	}
	return l.base
}

func (l Logger) attrs(args []any) []any {
	scoped := make([]any, 0, len(args)+6)
	if l.name != "" {
		scoped = append(scoped, "component", l.name)
	}
	if l.file != "" {
		scoped = append(scoped, "file", l.file)
	}
	if l.function != "" {
		scoped = append(scoped, "function", l.function)
	}
	return append(scoped, args...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.logger().Debug(msg, l.attrs(args)...)
}

func (l Logger) Info(msg string, args ...any) {
	l.logger().Info(msg, l.attrs(args)...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.logger().Warn(msg, l.attrs(args)...)
}

// Er logs err at error level without returning it.
func (l Logger) Er(msg string, err error, args ...any) {
	l.logger().Error(msg, l.attrs(append(args, "error", err))...)
}

// ErMsg logs msg at error level.
func (l Logger) ErMsg(msg string, args ...any) {
	l.logger().Error(msg, l.attrs(args)...)
}

// Err logs err and returns it wrapped with msg.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs msg and returns it as a new error.
func (l Logger) Error(msg string, args ...any) error {
	l.ErMsg(msg, args...)
	return errors.New(msg)
}
