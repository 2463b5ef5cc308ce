// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

package inputs

import (
	"fmt"
	"strings"

	"github.com/ewcloud/ewccli/internal/errs"
	"github.com/ewcloud/ewccli/internal/hub/typespec"
)

// ParseAssignments builds Raw from repeated key=value flag values. A key given
// once maps to its string value; a repeated key, or a key whose schema type is
// a list, maps to a []string in flag order. Values are taken verbatim, so
// "key=" yields the empty string. A bracketed value for a list-typed key is
// rejected: list items are supplied by repeating the flag.
func ParseAssignments(pairs []string, schema []SchemaEntry) (Raw, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	listKeys := make(map[string]bool, len(schema))
	for _, entry := range schema {
		d, _ := typespec.IsOptional(typespec.Parse(entry.Type))
		if _, ok := d.(typespec.ListOf); ok {
			listKeys[entry.Name] = true
		}
	}

	raw := make(Raw, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &errs.ValidationError{Msg: fmt.Sprintf("invalid item input %q: expected key=value", pair)}
		}
		if listKeys[key] && looksLikeListLiteral(value) {
			return nil, &errs.ValidationError{
				Field: key,
				Msg:   fmt.Sprintf("invalid item input %q: list values are given by repeating --item-input %s=<value>", pair, key),
			}
		}

		switch prev := raw[key].(type) {
		case nil:
			if listKeys[key] {
				raw[key] = []string{value}
			} else {
				raw[key] = value
			}
		case string:
			raw[key] = []string{prev, value}
		case []string:
			raw[key] = append(prev, value)
		}
	}
	return raw, nil
}

func looksLikeListLiteral(v string) bool {
	v = strings.TrimSpace(v)
	return strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]")
}
