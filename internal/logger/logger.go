package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel names a logging verbosity level.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Logger is the logging interface used throughout gantry.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	Sync() error
}

// LoggingConfig configures logger construction.
type LoggingConfig struct {
	Level       LogLevel `yaml:"level"`
	Development bool     `yaml:"development"`
}

// logger implements the Logger interface using zap
type logger struct {
	zap *zap.Logger
}

func (l *logger) Debug(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }
func (l *logger) Info(msg string, fields ...zap.Field)  { l.zap.Info(msg, fields...) }
func (l *logger) Warn(msg string, fields ...zap.Field)  { l.zap.Warn(msg, fields...) }
func (l *logger) Error(msg string, fields ...zap.Field) { l.zap.Error(msg, fields...) }
func (l *logger) Sync() error                           { return l.zap.Sync() }

func (l *logger) With(fields ...zap.Field) Logger {
	return &logger{zap: l.zap.With(fields...)}
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(config LoggingConfig) Logger {
	var cfg zap.Config
	if config.Development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if level, err := zapcore.ParseLevel(string(config.Level)); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		z = zap.NewNop()
	}
	return &logger{zap: z}
}

// NewDevelopmentLogger creates a console-friendly development logger.
func NewDevelopmentLogger() Logger {
	return NewLogger(LoggingConfig{Level: LevelDebug, Development: true})
}

// NewProductionLogger creates a JSON production logger.
func NewProductionLogger() Logger {
	return NewLogger(LoggingConfig{Level: LevelInfo})
}

// NewNoopLogger creates a logger that does nothing.
func NewNoopLogger() Logger {
	return &logger{zap: zap.NewNop()}
}

// NewZapLogger wraps an existing zap.Logger.
func NewZapLogger(z *zap.Logger) Logger {
	return &logger{zap: z}
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewProductionLogger()
)

// GetGlobalLogger returns the process-wide logger.
func GetGlobalLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobalLogger replaces the process-wide logger.
func SetGlobalLogger(l Logger) {
	if l == nil {
		l = NewNoopLogger()
	}
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}
