package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nhle/todolists/internal/model"
)

// Logger is the structured logger passed to every component that logs.
type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	base *slog.Logger
}

// New builds a Logger writing to output at the given level and format
// ("json" or "text").
func New(output io.Writer, level slog.Level, format string) Logger {
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch normalizeValue(format) {
	case "json":
		handler = slog.NewJSONHandler(output, options)
	default:
		handler = slog.NewTextHandler(output, options)
	}

	return &slogLogger{base: slog.New(handler)}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return New(io.Discard, slog.LevelError, "text")
}

// FromConfig opens the configured log file and builds a Logger on it.
// The returned closer must be called on shutdown.
func FromConfig(cfg model.LogConfig) (Logger, io.Closer, error) {
	if strings.TrimSpace(cfg.File) == "" {
		return Discard(), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
	}

	return New(f, ParseLevel(cfg.Level), cfg.Format), f, nil
}

func (l *slogLogger) Debug(message string, args ...any) {
	l.base.Debug(message, args...)
}

func (l *slogLogger) Info(message string, args ...any) {
	l.base.Info(message, args...)
}

func (l *slogLogger) Warn(message string, args ...any) {
	l.base.Warn(message, args...)
}

func (l *slogLogger) Error(message string, args ...any) {
	l.base.Error(message, args...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

// ParseLevel maps a level name onto a slog level, defaulting to info.
func ParseLevel(value string) slog.Level {
	switch normalizeValue(value) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func normalizeValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
