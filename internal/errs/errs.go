// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package errs defines the error kinds surfaced by the validation and profile
// packages. Every kind carries enough context for the CLI dispatcher to render
// a user message; none of them terminate the process.
package errs

import (
	"fmt"
	"strings"
)

// Kind names used by the CLI dispatcher and in logs.
const (
	KindValidation      = "ValidationError"
	KindMissingInputs   = "MissingInputsError"
	KindConfiguration   = "ConfigurationError"
	KindProfileConflict = "ProfileConflictError"
	KindProfileNotFound = "ProfileNotFoundError"
)

// Kinded is implemented by every error in this package.
type Kinded interface {
	error
	Kind() string
}

// ValidationError reports a supplied item input that does not satisfy its
// declared type, or an input that could not be parsed at all.
type ValidationError struct {
	Field    string
	Expected string
	Got      any
	Msg      string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("Invalid value for item input '%s': got %T (%v), expected type: %s", e.Field, e.Got, e.Got, e.Expected)
}

func (e *ValidationError) Kind() string { return KindValidation }

// MissingInputsError lists required item inputs that were not supplied. Msg
// is the rendered user message.
type MissingInputsError struct {
	Names []string
	Msg   string
}

func (e *MissingInputsError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "missing required item inputs: " + strings.Join(e.Names, ", ")
}

func (e *MissingInputsError) Kind() string { return KindMissingInputs }

// ConfigurationError is returned when a profile name cannot be resolved or a
// stored profile references an unsupported federee.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

func (e *ConfigurationError) Kind() string { return KindConfiguration }

// ProfileConflictError is returned when saving over an existing profile.
type ProfileConflictError struct {
	Profile string
	Path    string
}

func (e *ProfileConflictError) Error() string {
	return fmt.Sprintf("profile '%s' already exists in %s", e.Profile, e.Path)
}

func (e *ProfileConflictError) Kind() string { return KindProfileConflict }

// ProfileNotFoundError is returned when the profiles file is missing or empty,
// or when the requested profile is not one of its sections. Available lists
// the profiles that do exist so the caller can guide the user.
type ProfileNotFoundError struct {
	Profile       string
	Path          string
	Available     []string
	DefaultExists bool
}

func (e *ProfileNotFoundError) Error() string {
	if e.Profile == "" || len(e.Available) == 0 {
		return fmt.Sprintf("no profiles found in %s", e.Path)
	}
	return fmt.Sprintf("profile '%s' not found in %s (available: %s)", e.Profile, e.Path, strings.Join(e.Available, ", "))
}

func (e *ProfileNotFoundError) Kind() string { return KindProfileNotFound }
