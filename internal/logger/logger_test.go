package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"WRN", slog.LevelWarn, true},
		{"err", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := levelFromString(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("levelFromString(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLevelEnvOverride(t *testing.T) {
	t.Setenv(EnvLevel, "")
	if got := Level(""); got != "info" {
		t.Errorf("Level(\"\") = %q, want info", got)
	}
	if got := Level("warn"); got != "warn" {
		t.Errorf("Level(warn) = %q", got)
	}

	t.Setenv(EnvLevel, "debug")
	if got := Level("warn"); got != "debug" {
		t.Errorf("env override ignored: %q", got)
	}
}

func TestInitLoggerWritesFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "nested", "hkdt.log")
	closer, err := InitLogger(path, "debug")
	if err != nil {
		t.Fatalf("InitLogger: %v", err)
	}

	slog.Debug("scanning", "file", "frogs.txt")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "file=frogs.txt") {
		t.Errorf("log file missing entry: %q", data)
	}
}
