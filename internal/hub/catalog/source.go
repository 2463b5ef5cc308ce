// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

package catalog

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/ewcloud/ewccli/internal/errs"
)

// SourceKind is where an item's deployable content comes from.
type SourceKind string

const (
	SourceGitHub    SourceKind = "github"
	SourceDirectory SourceKind = "directory"
)

// ClassifySource decides whether src is a GitHub HTTPS repository URL or an
// absolute path to a non-empty local directory.
func ClassifySource(fs afero.Fs, src string) (SourceKind, error) {
	if IsGitHubHTTPSURL(src) {
		return SourceGitHub, nil
	}
	if filepath.IsAbs(src) {
		if entries, err := afero.ReadDir(fs, src); err == nil && len(entries) > 0 {
			return SourceDirectory, nil
		}
	}
	return "", &errs.ValidationError{
		Field: "source",
		Msg:   fmt.Sprintf("Source provided: %s is not a valid GitHub repo URL or an absolute path to a local directory with content.", src),
	}
}

// IsGitHubHTTPSURL accepts https://github.com/<owner>/<repo> with an optional
// ".git" suffix or trailing slash.
func IsGitHubHTTPSURL(src string) bool {
	src = strings.TrimSuffix(src, ".git")
	src = strings.TrimRight(src, "/")

	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	if u.Scheme != "https" || u.Host != "github.com" {
		return false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}
