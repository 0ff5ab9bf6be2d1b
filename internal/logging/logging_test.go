package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithOutput_WritesAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("warn", &buf)

	logger.Info("should be filtered")
	assert.Empty(t, buf.String())

	logger.Warn("should appear")
	assert.Contains(t, buf.String(), "should appear")
	assert.Contains(t, buf.String(), "component=fuzzyruby")
}

func TestNewWithOutput_UnrecognizedLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("nonsense", &buf)

	logger.Info("visible at default level")
	assert.Contains(t, buf.String(), "visible at default level")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for input, want := range cases {
		assert.Equal(t, want, parseLevel(input), "input=%q", input)
	}
}

func TestNop_NeverPanics(t *testing.T) {
	logger := Nop()
	assert.NotPanics(t, func() {
		logger.Info("discarded")
		logger.Error("also discarded")
	})
}

func TestWrapErr_PassesThroughAndLogsOnError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("debug", &buf)

	assert.Nil(t, WrapErr(logger, "reindex", nil))
	assert.Empty(t, buf.String())

	err := assert.AnError
	assert.Equal(t, err, WrapErr(logger, "reindex", err))
	assert.Contains(t, buf.String(), "reindex failed")
}
