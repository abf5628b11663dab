// Package logging provides the structured logger used across dirout.
//
// Loggers wrap log/slog. The zero value and NewNop discard everything, so
// components can hold a *Logger unconditionally.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Level represents different logging levels
type Level int

// Logging levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lower-case name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// SlogLevel returns the equivalent slog level.
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger provides structured logging with accumulated context fields.
type Logger struct {
	logger *slog.Logger
	fields []any
}

// New wraps an existing slog logger. A nil logger yields a nop logger.
func New(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// NewText creates a logger writing slog text records to w at the given level.
func NewText(w io.Writer, level Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.SlogLevel()})
	return New(slog.New(handler))
}

// NewNop creates a no-op logger that discards all log messages.
func NewNop() *Logger {
	return &Logger{}
}

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if l == nil || l.logger == nil {
		return
	}
	allArgs := make([]any, len(l.fields)+len(args))
	copy(allArgs, l.fields)
	copy(allArgs[len(l.fields):], args)
	l.logger.Log(ctx, level, msg, allArgs...)
}

// Debug logs debug-level messages
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args)
}

// Info logs info-level messages
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, args)
}

// Warn logs warning-level messages
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args)
}

// Error logs error-level messages
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, msg, args)
}

// Enabled reports whether records at level would be emitted.
func (l *Logger) Enabled(ctx context.Context, level Level) bool {
	if l == nil || l.logger == nil {
		return false
	}
	return l.logger.Enabled(ctx, level.SlogLevel())
}

// With returns a logger with additional context fields
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.logger == nil {
		return l
	}
	newFields := make([]any, len(l.fields)+len(args))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], args)
	return &Logger{logger: l.logger, fields: newFields}
}

// WithOperation returns a logger with operation context
func (l *Logger) WithOperation(operation Operation) *Logger {
	return l.With("operation", string(operation))
}

// WithPath returns a logger with directory path context
func (l *Logger) WithPath(path string) *Logger {
	return l.With("path", path)
}

// Operation names a directory operation for logging.
type Operation string

// Operation constants for directory operations
const (
	OpRemove   Operation = "remove"
	OpCreate   Operation = "create_dir"
	OpPreserve Operation = "preserve"
	OpEmpty    Operation = "empty"
	OpEmptyDir Operation = "empty_dir"
	OpList     Operation = "list"
)

// LogBackendCall logs a completed backend call with its duration.
// Failures are logged at warn, successes at debug.
func LogBackendCall(
	ctx context.Context,
	logger *Logger,
	operation Operation,
	name string,
	duration time.Duration,
	err error,
) {
	if logger == nil {
		return
	}

	fields := []any{
		"operation", string(operation),
		"name", name,
		"duration_ms", duration.Milliseconds(),
		"success", err == nil,
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		logger.Warn(ctx, "backend call failed", fields...)
		return
	}
	logger.Debug(ctx, "backend call completed", fields...)
}

// LogJoin logs a call that was satisfied by an in-flight operation.
func LogJoin(ctx context.Context, logger *Logger, operation Operation, name string, result string) {
	if logger == nil {
		return
	}

	logger.Debug(ctx, "joined in-flight operation",
		"operation", string(operation),
		"name", name,
		"result", result)
}

// ParseLevel parses a string log level into a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}
