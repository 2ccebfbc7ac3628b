// Package logger builds the process-wide zap logger. Debug mode gets
// colorized console output for working a journal locally; otherwise
// production JSON, which is what the dashboard's log shipper expects.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger for the given mode.
func New(development bool) (*zap.Logger, error) {
	if !development {
		return zap.NewProductionConfig().Build()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

// Must is New for main, where a logger that cannot be built means the
// process cannot start.
func Must(development bool) *zap.Logger {
	log, err := New(development)
	if err != nil {
		panic(err)
	}
	return log
}
