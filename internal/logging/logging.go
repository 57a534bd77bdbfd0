package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// New creates a console slog.Logger with the provided level string.
func New(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromString(level),
	})
	return slog.New(handler)
}

// NewRunLogger tees log output into a timestamped file under dir in
// addition to stdout, matching the per-run scrape log layout. The returned
// close func flushes the file; the path is reported for the run summary.
func NewRunLogger(level, dir string) (*slog.Logger, string, func(), error) {
	if dir == "" {
		return New(level), "", func() {}, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("scrape_log.%s.log", time.Now().Format("2006-01-02_15-04-05")))
	file, err := os.Create(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("create log file: %w", err)
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, file), &slog.HandlerOptions{
		Level: levelFromString(level),
	})

	return slog.New(handler), path, func() { _ = file.Close() }, nil
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
