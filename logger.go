package autopas

import (
	"log/slog"
	"os"
)

// Logger is the structured logging sink every core component writes
// through. The core never keeps a process-wide logger singleton (§9);
// callers construct one and pass it to New.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// slogLogger adapts a *slog.Logger to Logger.
type slogLogger struct{ l *slog.Logger }

func (s slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }

// NewSlogLogger wraps a *slog.Logger as a Logger.
func NewSlogLogger(l *slog.Logger) Logger { return slogLogger{l: l} }

// NewDefaultLogger returns a Logger writing structured text to stderr at
// Info level, suitable for a caller that has no logging opinion of its own.
func NewDefaultLogger() Logger {
	return slogLogger{l: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))}
}

// noopLogger discards everything; used as the zero value fallback.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
