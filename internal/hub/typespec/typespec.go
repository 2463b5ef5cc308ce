// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package typespec parses the type strings used in hub item input schemas
// ("str", "List[str]", "Optional[List[str]]", ...) into a small closed set of
// structural descriptors, so that validation can dispatch on structure rather
// than on string matching.
package typespec

import (
	"strings"
	"unicode"
)

// Descriptor is a parsed type string. The concrete types are Primitive,
// ListOf and OptionalOf.
type Descriptor interface {
	descriptor()
	String() string
}

// Kind identifies a primitive type.
type Kind int

const (
	// KindUnknown is any primitive name this package does not recognise,
	// including malformed type strings. It accepts every value.
	KindUnknown Kind = iota
	KindStr
	KindInt
	KindFloat
	KindBool
	KindDict
	KindAny
)

var kindNames = map[string]Kind{
	"str":   KindStr,
	"int":   KindInt,
	"float": KindFloat,
	"bool":  KindBool,
	"dict":  KindDict,
	"Any":   KindAny,
}

func (k Kind) String() string {
	switch k {
	case KindStr:
		return "str"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDict:
		return "dict"
	case KindAny:
		return "Any"
	default:
		return "unknown"
	}
}

// Primitive is a leaf type. Name holds the text it was parsed from, which for
// KindUnknown is the whole (possibly malformed) type string.
type Primitive struct {
	Kind Kind
	Name string
}

func (Primitive) descriptor() {}

func (p Primitive) String() string {
	if p.Kind == KindUnknown {
		return p.Name
	}
	return p.Kind.String()
}

// ListOf is List[Elem].
type ListOf struct {
	Elem Descriptor
}

func (ListOf) descriptor() {}

func (l ListOf) String() string { return "List[" + l.Elem.String() + "]" }

// OptionalOf is Optional[Inner]: the value may be absent or the empty string.
type OptionalOf struct {
	Inner Descriptor
}

func (OptionalOf) descriptor() {}

func (o OptionalOf) String() string { return "Optional[" + o.Inner.String() + "]" }

const (
	optionalPrefix = "Optional["
	listPrefix     = "List["
)

// Parse turns a type string into a Descriptor. It never fails: anything that
// does not match the grammar becomes an unknown Primitive carrying the
// original string.
func Parse(s string) Descriptor {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if d, ok := parse(compact); ok {
		return d
	}
	return Primitive{Kind: KindUnknown, Name: s}
}

func parse(s string) (Descriptor, bool) {
	if inner, ok := unwrap(s, optionalPrefix); ok {
		d, ok := parse(inner)
		if !ok {
			return nil, false
		}
		return OptionalOf{Inner: d}, true
	}
	if inner, ok := unwrap(s, listPrefix); ok {
		d, ok := parse(inner)
		if !ok {
			return nil, false
		}
		return ListOf{Elem: d}, true
	}
	if s == "" || strings.ContainsAny(s, "[]") {
		return nil, false
	}
	if s == "list" {
		return ListOf{Elem: Primitive{Kind: KindAny, Name: "Any"}}, true
	}
	if k, ok := kindNames[s]; ok {
		return Primitive{Kind: k, Name: s}, true
	}
	return Primitive{Kind: KindUnknown, Name: s}, true
}

// unwrap strips "<prefix>...]" and returns the inner text when the brackets
// between prefix and the final "]" are balanced.
func unwrap(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, "]") || len(s) <= len(prefix) {
		return "", false
	}
	inner := s[len(prefix) : len(s)-1]
	depth := 0
	for _, r := range inner {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return "", false
			}
		}
	}
	if depth != 0 {
		return "", false
	}
	return inner, true
}

// IsOptional reports whether d is an OptionalOf, returning its inner type.
func IsOptional(d Descriptor) (Descriptor, bool) {
	if o, ok := d.(OptionalOf); ok {
		return o.Inner, true
	}
	return d, false
}
