// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package security keeps tokens and application credential secrets out of
// logs and terminal output.
package security

import (
	"encoding/json"
	"fmt"
	"io"
)

const redacted = "[SECRET]"

// Secret wraps sensitive bytes. Formatting and JSON encoding both
// produce a placeholder instead of the content.
type Secret []byte

// String redacts the secret for fmt.Print* convenience.
func (s Secret) String() string { return redacted }

// Format implements fmt.Formatter so every verb is redacted.
func (s Secret) Format(f fmt.State, c rune) {
	_, _ = io.WriteString(f, redacted)
}

// MarshalJSON redacts secrets in JSON output.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

// FromString creates a Secret from a string.
func FromString(in string) Secret { return Secret([]byte(in)) }

// Mask renders v for display: long values keep their last four characters,
// short ones are fully redacted and empty values stay empty.
func Mask(v string) string {
	switch {
	case v == "":
		return ""
	case len(v) <= 8:
		return redacted
	default:
		return "****" + v[len(v)-4:]
	}
}
