// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package logger provides the slog based logger shared by the meteobuf packages.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps a *slog.Logger so it can be passed around the internal packages.
type Logger struct {
	*slog.Logger
}

// New returns a text logger for the given level that writes to stderr.
func New(level slog.Level) *Logger {
	return NewLogger(level, os.Stderr)
}

// NewLogger returns a text logger for the given level that writes to output.
func NewLogger(level slog.Level, output io.Writer) *Logger {
	return &Logger{slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))}
}

// Wrap returns a Logger for an existing *slog.Logger. A nil logger results in a
// logger that discards everything.
func Wrap(l *slog.Logger) *Logger {
	if l == nil {
		return Discard()
	}
	return &Logger{l}
}

// Discard returns a logger that drops all records.
func Discard() *Logger {
	return &Logger{slog.New(slog.DiscardHandler)}
}

// Err returns the error as slog attribute.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}
