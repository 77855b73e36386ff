// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package logging builds the diagnostics logger used by every service.
//
// The logger is created once by the CLI and handed to service constructors;
// nothing in the SDK reads a package-level default. Entries go to an
// append-only file so that repeated runs against the same CSV accumulate a
// single history.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Open creates (or appends to) the log file at path and returns a logger
// tagged with runID. The returned closer releases the file.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Open(path, level, format, runID string) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	logger := New(f, level, format)
	if runID != "" {
		logger = logger.With("run_id", runID)
	}
	return logger, f, nil
}

// New builds a logger on an arbitrary writer.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard is a logger that drops everything; handy for tests and for
// constructors called with a nil logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDiscard returns l, or Discard() when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// ForRow returns a logger keyed by the row's parent reference.
func ForRow(l *slog.Logger, parentURI string) *slog.Logger {
	return l.With("parent_uri", parentURI)
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
