// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package inputs checks user-supplied hub item inputs against the item's
// input schema. Values are never coerced: a list must arrive as a list, not
// as a string that looks like one.
package inputs

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/ewcloud/ewccli/internal/errs"
	"github.com/ewcloud/ewccli/internal/hub/typespec"
)

// SchemaEntry declares one item input and its type string.
type SchemaEntry struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Raw maps input names to the values supplied for them. A nil Raw means no
// inputs were supplied at all.
type Raw map[string]any

// Validate checks every supplied input named in schema, in schema order, and
// returns a message describing the first mismatch. An empty string means all
// supplied inputs are valid. Inputs absent from raw are not checked; that is
// the job of Missing.
func Validate(raw Raw, schema []SchemaEntry) string {
	if raw == nil || schema == nil {
		return ""
	}
	for _, entry := range schema {
		if err := checkEntry(raw, entry); err != nil {
			return err.Error()
		}
	}
	return ""
}

// ValidateAll is Validate without the early exit. It returns every mismatch
// as a *multierror.Error of *errs.ValidationError values, or nil.
func ValidateAll(raw Raw, schema []SchemaEntry) error {
	if raw == nil || schema == nil {
		return nil
	}
	var result *multierror.Error
	for _, entry := range schema {
		if err := checkEntry(raw, entry); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Missing returns the names of required inputs that are absent from raw or
// explicitly nil, in the order of required. An empty string counts as
// supplied.
func Missing(raw Raw, required []SchemaEntry) []string {
	missing := []string{}
	for _, entry := range required {
		if v, ok := raw[entry.Name]; !ok || v == nil {
			missing = append(missing, entry.Name)
		}
	}
	return missing
}

// MissingMessage renders the user message for the given missing input names:
//
//	Missing 2 required item input(s):
//	- a
//	- b
func MissingMessage(names []string) string {
	lines := make([]string, 0, len(names)+1)
	lines = append(lines, fmt.Sprintf("Missing %d required item input(s):", len(names)))
	for _, n := range names {
		lines = append(lines, "- "+n)
	}
	return strings.Join(lines, "\n")
}

// Check runs the required-inputs check followed by the fail-fast type check
// and returns a *errs.MissingInputsError or *errs.ValidationError on failure.
func Check(raw Raw, schema, required []SchemaEntry) error {
	if missing := Missing(raw, required); len(missing) > 0 {
		return &errs.MissingInputsError{Names: missing, Msg: MissingMessage(missing)}
	}
	if msg := Validate(raw, schema); msg != "" {
		return &errs.ValidationError{Msg: msg}
	}
	return nil
}

func checkEntry(raw Raw, entry SchemaEntry) *errs.ValidationError {
	v, ok := raw[entry.Name]
	if !ok {
		return nil
	}
	if !matches(typespec.Parse(entry.Type), v) {
		return &errs.ValidationError{Field: entry.Name, Expected: entry.Type, Got: v}
	}
	return nil
}

func matches(d typespec.Descriptor, v any) bool {
	switch t := d.(type) {
	case typespec.OptionalOf:
		if v == nil {
			return true
		}
		if s, ok := v.(string); ok && s == "" {
			return true
		}
		return matches(t.Inner, v)
	case typespec.ListOf:
		if v == nil {
			return false
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return false
		}
		for i := 0; i < rv.Len(); i++ {
			if !matches(t.Elem, rv.Index(i).Interface()) {
				return false
			}
		}
		return true
	case typespec.Primitive:
		return matchesPrimitive(t.Kind, v)
	}
	return true
}

func matchesPrimitive(k typespec.Kind, v any) bool {
	if k == typespec.KindAny || k == typespec.KindUnknown {
		return true
	}
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String:
		return k == typespec.KindStr
	case reflect.Bool:
		return k == typespec.KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return k == typespec.KindInt
	case reflect.Float32, reflect.Float64:
		return k == typespec.KindFloat
	case reflect.Map:
		return k == typespec.KindDict
	}
	return false
}
