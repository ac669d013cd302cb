package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewDefaultsToInfo(t *testing.T) {
	log, err := New("", "production")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug enabled at default level")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info disabled at default level")
	}
}

func TestNewHonorsLevel(t *testing.T) {
	log, err := New("debug", "development")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug disabled")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("shouty", "production"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
