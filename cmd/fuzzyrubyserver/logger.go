package main

import (
	"log/slog"

	fuzzyruby "github.com/GMGilson/fuzzy-ruby-server"
	"github.com/GMGilson/fuzzy-ruby-server/internal/logging"
)

// logger builds the process-wide logger from a resolved Config, always
// writing to stderr so stdout stays clean for LSP framing (serve).
func logger(cfg fuzzyruby.Config) *slog.Logger {
	return logging.New(cfg.LogLevel)
}
