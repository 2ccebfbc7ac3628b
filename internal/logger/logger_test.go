package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_DevelopmentEnablesDebug(t *testing.T) {
	log, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer log.Sync()

	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("development logger should enable debug level")
	}
}

func TestNew_ProductionSuppressesDebug(t *testing.T) {
	log, err := New(false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer log.Sync()

	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("production logger should not enable debug level")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("production logger should enable info level")
	}
}

func TestMust_ReturnsLogger(t *testing.T) {
	if log := Must(false); log == nil {
		t.Fatal("Must returned nil")
	}
}
