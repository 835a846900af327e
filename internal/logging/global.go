package logging

import (
	"context"
	"sync"
)

var (
	globalMu     sync.RWMutex
	globalLogger = NewNoop()
)

// Global returns the process-wide logger. It is a no-op logger until
// InitGlobal or SetGlobal installs another one, and again after CloseGlobal.
func Global() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobal installs l as the process-wide logger. A nil l restores the
// no-op logger.
func SetGlobal(l *Logger) {
	if l == nil {
		l = NewNoop()
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// InitGlobal creates a logger from config and installs it.
func InitGlobal(config *Config) error {
	l, err := New(config)
	if err != nil {
		return err
	}
	SetGlobal(l)
	return nil
}

// CloseGlobal closes the installed logger's file and restores the no-op
// logger, so logging after shutdown is silently dropped.
func CloseGlobal() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	err := globalLogger.Close()
	globalLogger = NewNoop()
	return err
}

// Level helpers log through the global logger.
func Debug(msg string, args ...any) { Global().Debug(msg, args...) }
func Info(msg string, args ...any)  { Global().Info(msg, args...) }
func Warn(msg string, args ...any)  { Global().Warn(msg, args...) }
func Error(msg string, args ...any) { Global().Error(msg, args...) }

// With returns the global logger with args attached.
func With(args ...any) *Logger {
	return Global().With(args...)
}

// FromContext returns the global logger carrying the form and user IDs
// stored in ctx.
func FromContext(ctx context.Context) *Logger {
	return Global().WithContext(ctx)
}

// InfoContext logs msg with the IDs stored in ctx.
func InfoContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

// WarnContext logs msg with the IDs stored in ctx.
func WarnContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

// DebugContext logs msg with the IDs stored in ctx.
func DebugContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}
