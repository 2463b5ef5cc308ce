// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ewcloud/ewccli/internal/errs"
	"github.com/ewcloud/ewccli/internal/i18n"
	"github.com/ewcloud/ewccli/internal/logging"
)

// Exit codes returned by Execute.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	itemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

// usageError marks flag parsing failures.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		ue usageError
		ve *errs.ValidationError
		me *errs.MissingInputsError
	)
	if errors.As(err, &ue) || errors.As(err, &ve) || errors.As(err, &me) {
		return ExitUsage
	}
	return ExitError
}

// RenderError writes the user message for err to w.
func RenderError(w io.Writer, err error) {
	line := func(style lipgloss.Style, s string) {
		writeStyled(w, style, s)
	}

	var (
		kinded   errs.Kinded
		notFound *errs.ProfileNotFoundError
		conflict *errs.ProfileConflictError
	)
	if errors.As(err, &kinded) {
		logging.Debugf("command failed with %s: %v", kinded.Kind(), err)
	}

	switch {
	case errors.As(err, &notFound):
		renderNotFound(w, notFound, defaultNameFor(err))
	case errors.As(err, &conflict):
		line(errorStyle, "❌ "+i18n.T("error.profile_conflict", conflict.Profile, conflict.Path))
		line(hintStyle, i18n.T("error.profile_conflict_hint"))
	default:
		line(errorStyle, "❌ "+err.Error())
	}
}

// defaultNamed lets a not-found error carry the default profile name that
// was in effect, so the hints can tell the two cases apart.
type defaultNamed interface {
	DefaultProfileName() string
}

func defaultNameFor(err error) string {
	var dn defaultNamed
	if errors.As(err, &dn) {
		return dn.DefaultProfileName()
	}
	return ""
}

// writeStyled renders s line by line; lipgloss pads a multi-line block to
// its widest line otherwise.
func writeStyled(w io.Writer, style lipgloss.Style, s string) {
	for _, l := range strings.Split(s, "\n") {
		fmt.Fprintln(w, style.Render(l))
	}
}

func renderNotFound(w io.Writer, e *errs.ProfileNotFoundError, defaultProfile string) {
	line := func(style lipgloss.Style, s string) {
		writeStyled(w, style, s)
	}

	if len(e.Available) == 0 {
		line(errorStyle, "❌ "+i18n.T("error.profile_none"))
		line(pathStyle, i18n.T("error.searched_in", e.Path))
		line(hintStyle, i18n.T("error.run_login"))
		return
	}

	requestedDefault := defaultProfile != "" && e.Profile == defaultProfile
	if requestedDefault {
		line(hintStyle, "ℹ️ "+i18n.T("error.default_alternatives"))
	} else {
		line(errorStyle, "❌ "+i18n.T("error.profile_not_found", e.Profile))
		line(pathStyle, i18n.T("error.searched_in", e.Path))
		line(hintStyle, "ℹ️ "+i18n.T("error.profile_alternatives", e.Profile))
	}
	for _, name := range e.Available {
		line(itemStyle, "  • "+name)
	}
	line(hintStyle, i18n.T("error.you_can"))
	if !requestedDefault && e.DefaultExists {
		line(pathStyle, "  • "+i18n.T("error.hint_use_default"))
	}
	line(pathStyle, "  • "+i18n.T("error.hint_use_existing"))
	if requestedDefault {
		line(pathStyle, "  • "+i18n.T("error.hint_login_default"))
	} else {
		line(pathStyle, "  • "+i18n.T("error.hint_login_new"))
	}
}

// profileLookupError wraps a store error with the default profile name that
// was configured for the lookup.
type profileLookupError struct {
	err            error
	defaultProfile string
}

func (e *profileLookupError) Error() string              { return e.err.Error() }
func (e *profileLookupError) Unwrap() error              { return e.err }
func (e *profileLookupError) DefaultProfileName() string { return e.defaultProfile }
