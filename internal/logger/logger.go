package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// EnvLevel overrides the level passed on the command line
const EnvLevel = "ACTIVELABEL_LOG"

func levelFromString(s string) (l slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// ResolveLevel picks the log level from the environment, then from the
// given flag value. An empty flag means info.
func ResolveLevel(flag string) (slog.Level, error) {
	if env := os.Getenv(EnvLevel); env != "" {
		l, ok := levelFromString(env)
		if !ok {
			return l, fmt.Errorf("invalid %s value: %q", EnvLevel, env)
		}
		return l, nil
	}
	if strings.TrimSpace(flag) == "" {
		return slog.LevelInfo, nil
	}
	l, ok := levelFromString(flag)
	if !ok {
		return l, fmt.Errorf("invalid log level: %q", flag)
	}
	return l, nil
}

// InitLogger installs a text logger writing to path as the slog default.
// The returned function closes the log file.
func InitLogger(path string, level slog.Level) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	return logFile.Close, nil
}
