// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging holds the process-wide logger. Diagnostics go to stderr so
// command output on stdout stays scriptable.
package logging

import (
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Callers should use the helper functions
// below rather than reaching for L directly.
var L = clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "ewc"})

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		L.SetLevel(clog.DebugLevel)
		L.SetReportTimestamp(true)
		return
	}
	L.SetLevel(clog.InfoLevel)
	L.SetReportTimestamp(false)
}

// SetLevel parses a level name ("debug", "info", "warn", "error").
func SetLevel(name string) error {
	lvl, err := clog.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	L.SetLevel(lvl)
	return nil
}

// SetOutput redirects the logger to the command's error stream.
func SetOutput(w io.Writer) { L.SetOutput(w) }

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}
