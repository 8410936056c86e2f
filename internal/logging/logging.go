// =============================================================================
// Bill Generator - Logging
// =============================================================================
//
// Every stateful component takes a Logger rather than printing directly.
// The default implementation is a leveled key/value text logger; callers pass
// attributes as alternating key/value pairs:
//
//   logger.Warn("invoice counter unreadable, starting at 1", "path", path, "error", err)
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger is the logging interface used throughout the application.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// New returns a text logger at the given level writing to w.
// Unknown levels fall back to info.
func New(w io.Writer, level string) Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// NewFile opens (or creates) logFile in append mode and returns a logger
// writing to it together with the file so the caller can close it.
// An empty logFile means stderr.
func NewFile(logFile, level string) (Logger, io.Closer, error) {
	if logFile == "" {
		return New(os.Stderr, level), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(f, level), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Nop returns a logger that discards everything. Used by tests.
func Nop() Logger {
	return New(io.Discard, "error")
}

// ParseLevel maps "debug", "info", "warn", "error" to slog levels.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
