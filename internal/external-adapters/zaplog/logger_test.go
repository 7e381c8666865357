package zaplog

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ochairo/wallet-release/internal/domain/interfaces"
)

func TestLogger_ForwardsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := Wrap(zap.New(core))

	logger.Info("promoting signer", interfaces.F("signer", "Alice"), interfaces.F("artifacts", 9))
	logger.Debug("skipping signature file", interfaces.F("file", "noSignerSuffix"))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx["signer"] != "Alice" {
		t.Errorf("signer field = %v, want Alice", ctx["signer"])
	}
	if ctx["artifacts"] != int64(9) {
		t.Errorf("artifacts field = %v (%T), want 9", ctx["artifacts"], ctx["artifacts"])
	}
	if entries[1].Level != zapcore.DebugLevel {
		t.Errorf("second entry level = %v, want debug", entries[1].Level)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := Wrap(zap.New(core))

	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept too")

	if n := logs.Len(); n != 2 {
		t.Errorf("logged %d entries, want 2", n)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	logger, err := New("debug")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var _ interfaces.Logger = logger

	if _, err := New("loud"); err == nil {
		t.Error("New() with unknown level should return error")
	}
}

func TestWrapNil(t *testing.T) {
	Wrap(nil).Info("no panic")
}
