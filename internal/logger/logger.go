package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init builds the singleton logger. Idempotent: only the first call has
// effect. Call it at the top of main.
func Init() {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			l = zap.NewNop()
		}
		instance = l
	})
}

func l() *zap.Logger {
	if instance == nil {
		Init()
	}
	return instance
}

func toFields(fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func Info(msg string, fields map[string]any) {
	l().Info(msg, toFields(fields)...)
}

func Warn(msg string, fields map[string]any) {
	l().Warn(msg, toFields(fields)...)
}

func Error(msg string, fields map[string]any) {
	l().Error(msg, toFields(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	l().Fatal(msg, toFields(fields)...)
}

// Sync flushes any buffered entries. Defer it in main.
func Sync() error {
	return l().Sync()
}
