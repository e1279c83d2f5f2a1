package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// EnvLevel names the environment variable that overrides the log level.
const EnvLevel = "HKDT_LOG"

func levelFromString(s string) (l slog.Level, ok bool) {
	switch strings.ToLower(s) {
	case "debug", "dbg":
		return slog.LevelDebug, true
	case "info", "inf":
		return slog.LevelInfo, true
	case "warn", "wrn":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Level resolves the effective level name: the env override wins over the
// configured value, and an empty result means "info".
func Level(configured string) string {
	if env := os.Getenv(EnvLevel); env != "" {
		return env
	}
	if configured == "" {
		return "info"
	}
	return configured
}

// InitLogger points the default slog logger at a log file. The returned
// closer releases the file; callers defer it from main.
func InitLogger(path, level string) (io.Closer, error) {
	loglevel, ok := levelFromString(level)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	// slog defaults to logging in the order of time, level, msg, and other attributes.
	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: loglevel})
	slog.SetDefault(slog.New(handler))

	if !ok {
		slog.Warn("Unknown log level, using info", "level", level)
	}
	return logFile, nil
}
