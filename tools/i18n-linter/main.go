// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks that every message ID passed to i18n.T or i18nShort
// exists in the English locale and that the other locales carry the same IDs.
//
// Run it from the repository root:
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
)

var usedKeyRe = regexp.MustCompile(`(?:i18n\.T|i18nShort)\("([^"]+)"`)

// report is the outcome of one lint run.
type report struct {
	// Undefined IDs are used in code but absent from the primary locale.
	Undefined []string
	// Orphaned IDs are defined in the primary locale but never used.
	Orphaned []string
	// Missing maps a secondary locale file to the primary IDs it lacks.
	Missing map[string][]string
}

func (r report) failed() bool {
	return len(r.Undefined) > 0 || len(r.Missing) > 0
}

func main() {
	r, err := lint(afero.NewOsFs(), ".")
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	printList("Used but not defined in "+primaryLocale, r.Undefined)
	printList("Defined but never used", r.Orphaned)
	files := make([]string, 0, len(r.Missing))
	for f := range r.Missing {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		printList("Missing in "+f, r.Missing[f])
	}
	if r.failed() {
		fmt.Println("❌ Found issues that need to be addressed.")
		os.Exit(1)
	}
	fmt.Println("✅ All translation files are consistent!")
}

func printList(title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Printf("--- %s ---\n", title)
	for _, k := range keys {
		fmt.Printf("  - %s\n", k)
	}
}

func lint(fsys afero.Fs, root string) (report, error) {
	used, err := findUsedKeys(fsys, root)
	if err != nil {
		return report{}, fmt.Errorf("scan sources: %w", err)
	}
	dir := filepath.Join(root, localesDir)
	primary, err := loadKeys(fsys, filepath.Join(dir, primaryLocale))
	if err != nil {
		return report{}, fmt.Errorf("load primary locale: %w", err)
	}

	r := report{Missing: map[string][]string{}}
	r.Undefined = difference(used, primary)
	r.Orphaned = difference(primary, used)

	files, err := afero.Glob(fsys, filepath.Join(dir, "*.yaml"))
	if err != nil {
		return report{}, err
	}
	for _, f := range files {
		if filepath.Base(f) == primaryLocale {
			continue
		}
		keys, err := loadKeys(fsys, f)
		if err != nil {
			return report{}, fmt.Errorf("load %s: %w", f, err)
		}
		if missing := difference(primary, keys); len(missing) > 0 {
			r.Missing[filepath.Base(f)] = missing
		}
	}
	return r, nil
}

// findUsedKeys collects the literal message IDs used in non-test sources.
func findUsedKeys(fsys afero.Fs, root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			switch info.Name() {
			case "tools", "_examples", ".git":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		for _, m := range usedKeyRe.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = struct{}{}
		}
		return nil
	})
	return keys, err
}

// loadKeys reads a flat locale file of "id": "message" pairs.
func loadKeys(fsys afero.Fs, path string) (map[string]struct{}, error) {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	var data map[string]string
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{}, len(data))
	for k := range data {
		keys[k] = struct{}{}
	}
	return keys, nil
}

// difference returns the sorted keys of a that are not in b.
func difference(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
