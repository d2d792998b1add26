// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the console logger shared by every migration stage.
package logging

import (
	"io"
	"os"

	"github.com/phuslu/log"
)

// New returns a logger writing human-readable lines to w at the given level
// ("debug", "info", "warn", "error"). A nil writer means stderr.
func New(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return &log.Logger{
		Level: log.ParseLevel(level),
		Writer: &log.ConsoleWriter{
			Writer:         w,
			ColorOutput:    false,
			EndWithMessage: true,
		},
	}
}

// Discard returns a logger that drops everything, for callers that do not
// care about progress output.
func Discard() *log.Logger {
	return New(io.Discard, "error")
}
