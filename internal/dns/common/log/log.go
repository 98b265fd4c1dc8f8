// Package log provides the structured logging surface for dnsq,
// backed by Uber's zap.
package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used throughout dnsq. Fields travel as
// a map so call sites stay decoupled from the zap field types.
type Logger interface {
	Debug(fields map[string]any, msg string)
	Info(fields map[string]any, msg string)
	Warn(fields map[string]any, msg string)
	Error(fields map[string]any, msg string)
	Fatal(fields map[string]any, msg string)
}

var global Logger = newZapLogger(false, zapcore.InfoLevel)

// Configure replaces the global logger with one built for the given
// environment ("dev" or "prod") and level string.
func Configure(env, level string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	global = newZapLogger(env != "prod", lvl)
	return nil
}

// SetLogger replaces the global logger instance, mostly for tests.
func SetLogger(l Logger) { global = l }

// GetLogger returns the current global logger instance.
func GetLogger() Logger { return global }

// Package-level helpers forwarding to the global logger.

func Debug(fields map[string]any, msg string) { global.Debug(fields, msg) }
func Info(fields map[string]any, msg string)  { global.Info(fields, msg) }
func Warn(fields map[string]any, msg string)  { global.Warn(fields, msg) }
func Error(fields map[string]any, msg string) { global.Error(fields, msg) }
func Fatal(fields map[string]any, msg string) { global.Fatal(fields, msg) }

type zapLogger struct {
	base *zap.Logger
}

func newZapLogger(dev bool, level zapcore.Level) Logger {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.LevelKey = "level"

	logger, _ := cfg.Build(zap.AddCallerSkip(1))
	return &zapLogger{base: logger}
}

func (l *zapLogger) log(level zapcore.Level, fields map[string]any, msg string) {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	switch level {
	case zapcore.DebugLevel:
		l.base.Debug(msg, zf...)
	case zapcore.InfoLevel:
		l.base.Info(msg, zf...)
	case zapcore.WarnLevel:
		l.base.Warn(msg, zf...)
	case zapcore.ErrorLevel:
		l.base.Error(msg, zf...)
	case zapcore.FatalLevel:
		l.base.Fatal(msg, zf...)
	}
}

func (l *zapLogger) Debug(f map[string]any, m string) { l.log(zapcore.DebugLevel, f, m) }
func (l *zapLogger) Info(f map[string]any, m string)  { l.log(zapcore.InfoLevel, f, m) }
func (l *zapLogger) Warn(f map[string]any, m string)  { l.log(zapcore.WarnLevel, f, m) }
func (l *zapLogger) Error(f map[string]any, m string) { l.log(zapcore.ErrorLevel, f, m) }
func (l *zapLogger) Fatal(f map[string]any, m string) { l.log(zapcore.FatalLevel, f, m) }

// noopLogger discards everything; used by tests and as a safe default
// for components constructed without a logger.
type noopLogger struct{}

func (noopLogger) Debug(map[string]any, string) {}
func (noopLogger) Info(map[string]any, string)  {}
func (noopLogger) Warn(map[string]any, string)  {}
func (noopLogger) Error(map[string]any, string) {}
func (noopLogger) Fatal(map[string]any, string) {}

// NewNoopLogger returns a Logger that discards all messages.
func NewNoopLogger() Logger { return noopLogger{} }
