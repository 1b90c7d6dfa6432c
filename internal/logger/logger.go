package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Define an unexported custom type for the context key to prevent collisions.
type loggerContextKey struct{}

const (
	TimeStampKey = "timestamp"
	MessageKey   = "message"
	CommandKey   = "command"
	VersionKey   = "version"
)

// ParseLevel converts a level name (debug, info, warn, error) to a zap level
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// New builds a JSON logger writing to w at the given minimum level. The
// returned *zap.Logger is only needed for Sync.
func New(w zapcore.WriteSyncer, level zapcore.Level, keysAndValues ...any) (logr.Logger, *zap.Logger) {
	// Encoder Configuration: How log entries are formatted (JSON in this case)
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(w),
		zap.NewAtomicLevelAt(level),
	)

	zl := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)

	return zapr.NewLogger(zl).WithValues(keysAndValues...), zl
}

// NewFile opens (appending) the log file at path and builds a logger on it.
// The terminal owns stdout and stderr while the TUI runs, so logs go to a
// file. The returned close func flushes and closes the file.
func NewFile(path, level string, keysAndValues ...any) (logr.Logger, func() error, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return logr.Discard(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return logr.Discard(), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log, zl := New(f, lvl, keysAndValues...)
	closeFn := func() error {
		syncErr := zl.Sync()
		if syncErr != nil && isIgnorableSyncError(syncErr) {
			syncErr = nil
		}
		return errors.Join(syncErr, f.Close())
	}
	return log, closeFn, nil
}

// isIgnorableSyncError returns true for common Sync errors on pipes/TTYs
func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF)
}

// WithLogger returns a new context with the provided logr.Logger attached
func WithLogger(ctx context.Context, log logr.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext retrieves the logr.Logger from the context.
// If no logger is found it returns a no-op logger.
func FromContext(ctx context.Context) logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(logr.Logger); ok {
		return log
	}
	return logr.Discard()
}
