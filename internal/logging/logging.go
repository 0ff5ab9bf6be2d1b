// Package logging provides the server's structured logging, via Go's
// log/slog. Everything goes to stderr: the LSP transport owns stdout for
// JSON-RPC framing, so a stray log line there would corrupt the wire
// protocol.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds a slog.Logger at the given level, writing to stderr. level is
// one of "debug", "info", "warn", "error" (case-insensitive); an
// unrecognized value falls back to info.
func New(level string) *slog.Logger {
	return NewWithOutput(level, os.Stderr)
}

// NewWithOutput is New with an explicit sink, for tests that want to
// capture or suppress output.
func NewWithOutput(level string, w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler).With("component", "fuzzyruby")
}

// Nop returns a logger that discards everything, for tests that don't care
// about log output but pass a logger through a constructor anyway.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
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

// WrapErr logs err at error level under op before returning it unchanged —
// a convenience for the transport layer's "log and swallow" error handling
// (spec.md §7: failures surface as empty results plus a log line, never a
// JSON-RPC error response).
func WrapErr(logger *slog.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	logger.Error(fmt.Sprintf("%s failed", op), "error", err)
	return err
}
