// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.
package logging

import (
	"bytes"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

// TestLoggingHelpers_WriteToBuffer swaps L with a buffer-backed logger and
// checks every helper reaches it.
func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	L.SetLevel(clog.DebugLevel)
	defer func() { L = prev }()

	Debugf("hello %s", "dbg")
	Warnf("warn")

	out := buf.String()
	for _, want := range []string{"hello dbg", "warn"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output: %s", want, out)
		}
	}
}

func TestSetDebug(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	defer func() { L = prev }()

	SetDebug(false)
	Debugf("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug output emitted at info level: %s", buf.String())
	}
	SetDebug(true)
	Debugf("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("debug output missing: %s", buf.String())
	}
}

func TestSetOutput(t *testing.T) {
	prev := L
	L = clog.New(&bytes.Buffer{})
	defer func() { L = prev }()

	var buf bytes.Buffer
	SetOutput(&buf)
	Warnf("redirected")
	if !strings.Contains(buf.String(), "redirected") {
		t.Fatalf("expected output in the new writer, got %q", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	prev := L.GetLevel()
	defer L.SetLevel(prev)

	if err := SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel(warn): %v", err)
	}
	if L.GetLevel() != clog.WarnLevel {
		t.Fatalf("expected warn level, got %v", L.GetLevel())
	}
	if err := SetLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
