// Package logger provides the structured logger used by every binary and
// background worker.  It wraps charmbracelet/log behind a small interface
// so components can receive a logger explicitly or pull one from a context.
package logger

import (
	"context"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the structured logging interface: a message followed by
// alternating keys and values.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
	With(keyvals ...any) Logger
}

// LogLevel is a level name as it appears in LOG_LEVEL or --log-level.
type LogLevel string

// Config selects the level, sink and format of a logger.
type Config struct {
	Level  LogLevel
	Output io.Writer
	JSON   bool
}

func DefaultConfig() *Config {
	return &Config{Level: "info", Output: os.Stderr}
}

// level maps a level name onto charm's levels; unknown names are info.
func (l LogLevel) level() charmlog.Level {
	lvl, err := charmlog.ParseLevel(string(l))
	if err != nil {
		return charmlog.InfoLevel
	}
	return lvl
}

type charmLogger struct {
	charm *charmlog.Logger
}

func (l charmLogger) Debug(msg string, keyvals ...any) { l.charm.Debug(msg, keyvals...) }
func (l charmLogger) Info(msg string, keyvals ...any)  { l.charm.Info(msg, keyvals...) }
func (l charmLogger) Warn(msg string, keyvals ...any)  { l.charm.Warn(msg, keyvals...) }
func (l charmLogger) Error(msg string, keyvals ...any) { l.charm.Error(msg, keyvals...) }

func (l charmLogger) With(keyvals ...any) Logger {
	return charmLogger{l.charm.With(keyvals...)}
}

func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	formatter := charmlog.TextFormatter
	if cfg.JSON {
		formatter = charmlog.JSONFormatter
	}
	return charmLogger{charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           cfg.Level.level(),
		Formatter:       formatter,
	})}
}

type ctxKey struct{}

var defaultLogger = NewLogger(DefaultConfig())

// Init replaces the process-wide default logger and returns it.  It is
// called once from main before any goroutine starts.
func Init(cfg *Config) Logger {
	defaultLogger = NewLogger(cfg)
	return defaultLogger
}

// ContextWithLogger stores l in ctx.
func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
			return l
		}
	}
	return defaultLogger
}

func Info(msg string, keyvals ...any)  { defaultLogger.Info(msg, keyvals...) }
func Error(msg string, keyvals ...any) { defaultLogger.Error(msg, keyvals...) }
