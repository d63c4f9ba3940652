// Package logging wires the run log: one JSON line per event, appended to the
// configured log file and mirrored to stderr. The log file is the only
// persisted operational record of a run.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Setup opens the append-only log file and returns a logger carrying a fresh
// run ID, plus a closer for the underlying file.
func Setup(logFile, level string) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", logFile, err)
	}

	handler := slog.NewJSONHandler(io.MultiWriter(f, os.Stderr), &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	logger := slog.New(handler).With("run_id", uuid.NewString())

	return logger, f, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
