package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shopmesh/shopmesh/common/env"
)

const MessageKey = "message"

// Logger is a thin wrapper around zap that the rest of the codebase logs
// through. It also satisfies the resty logging interface so it can be
// plugged into outbound HTTP clients directly.
type Logger struct {
	zl *zap.Logger
}

func NewLogger(zl *zap.Logger) *Logger {
	return &Logger{zl: zl}
}

var (
	instanceMu sync.Mutex
	instance   *Logger
)

// Instance returns the process-wide logger, building an environment-default
// one on first use. Init replaces it.
func Instance() *Logger {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance == nil {
		zl, err := build()
		if err != nil {
			zl = zap.NewNop()
		}
		instance = NewLogger(zl)
	}
	return instance
}

// Init builds the environment-specific logger and installs it as the
// process-wide instance.
func Init(zapOpts ...zap.Option) (*Logger, error) {
	zl, err := build(zapOpts...)
	if err != nil {
		return nil, err
	}
	log := NewLogger(zl)

	instanceMu.Lock()
	instance = log
	instanceMu.Unlock()
	return log, nil
}

// build assembles a zap logger with environment-specific settings.
func build(zapOpts ...zap.Option) (*zap.Logger, error) {
	var config zap.Config

	currentEnv, err := env.GetApplicationEnv()
	if err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	// Consistent encoder configuration for structured (JSON) output
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:       "timestamp",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		FunctionKey:   zapcore.OmitKey, // Hide function name for brevity
		MessageKey:    MessageKey,
		StacktraceKey: "stacktrace",
		EncodeTime:    zapcore.ISO8601TimeEncoder,  // Use human-readable timestamp format
		EncodeLevel:   zapcore.CapitalLevelEncoder, // INFO, WARN, ERROR, etc.
		EncodeCaller:  zapcore.ShortCallerEncoder,  // Short file path
	}

	options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel)}

	switch currentEnv {
	case env.EnvironmentLocal:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.MessageKey = MessageKey
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	case env.EnvironmentDevelopment:
		// Development: JSON logs for Datadog ingestion, debug level
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig = encoderConfig
		config.Encoding = "json"

	case env.EnvironmentProduction:
		// Production: JSON logs with structured metadata
		config = zap.NewProductionConfig()
		config.EncoderConfig = encoderConfig
		config.Level.SetLevel(zap.InfoLevel)
	}

	options = append(options, zapOpts...)

	logger, err := config.Build(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func (l *Logger) Debug(msg string, fields ...Field) { l.zl.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.zl.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.zl.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.zl.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.zl.Fatal(msg, fields...) }

// Log writes a message at an arbitrary level.
func (l *Logger) Log(level Level, msg string, fields ...Field) {
	l.zl.Log(zapcore.Level(level), msg, fields...)
}

// With returns a child logger with the fields appended to every entry.
func (l *Logger) With(fields ...Field) *Logger {
	return NewLogger(l.zl.With(fields...))
}

func (l *Logger) Sync() error { return l.zl.Sync() }

// Errorf, Warnf and Debugf satisfy resty's Logger interface.
func (l *Logger) Errorf(format string, v ...interface{}) { l.zl.Error(fmt.Sprintf(format, v...)) }
func (l *Logger) Warnf(format string, v ...interface{})  { l.zl.Warn(fmt.Sprintf(format, v...)) }
func (l *Logger) Debugf(format string, v ...interface{}) { l.zl.Debug(fmt.Sprintf(format, v...)) }

// WithPanic builds the fields for logging a recovered panic value.
func WithPanic(r interface{}) []Field {
	return []Field{Any("panic", r), zap.Stack("stacktrace")}
}
