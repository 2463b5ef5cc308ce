// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package catalog reads the hub items manifest and exposes each item's input
// schema in the form consumed by the inputs package.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/ewcloud/ewccli/internal/hub/inputs"
)

// Technology annotations of items the CLI knows how to deploy.
const (
	TechnologyAnsible   = "Ansible Playbook"
	TechnologyTerraform = "Terraform Module"
)

// DeployableTechnologies is the default set passed to Item.Deployable.
var DeployableTechnologies = []string{TechnologyAnsible, TechnologyTerraform}

// Input is one declared item input.
type Input struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required,omitempty"`
	Default     any    `yaml:"default,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Item is a hub catalog entry.
type Item struct {
	Name        string            `yaml:"-"`
	Description string            `yaml:"description,omitempty"`
	Version     string            `yaml:"version,omitempty"`
	Source      string            `yaml:"source,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
	Inputs      []Input           `yaml:"inputs,omitempty"`
}

// Catalog is the parsed hub items manifest.
type Catalog struct {
	Items map[string]*Item `yaml:"items"`
}

// Load reads and parses the manifest at path.
func Load(fs afero.Fs, path string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("could not read hub items file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes manifest bytes.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("could not parse hub items: %w", err)
	}
	if c.Items == nil {
		c.Items = map[string]*Item{}
	}
	for name, item := range c.Items {
		if item == nil {
			item = &Item{}
			c.Items[name] = item
		}
		item.Name = name
	}
	return &c, nil
}

// Names returns the item names in lexical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Items))
	for n := range c.Items {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the named item.
func (c *Catalog) Get(name string) (*Item, bool) {
	item, ok := c.Items[name]
	return item, ok
}

// Schema returns every declared input as a schema entry, in manifest order.
func (i *Item) Schema() []inputs.SchemaEntry {
	out := make([]inputs.SchemaEntry, 0, len(i.Inputs))
	for _, in := range i.Inputs {
		out = append(out, inputs.SchemaEntry{Name: in.Name, Type: in.Type})
	}
	return out
}

// RequiredSchema returns the inputs marked required that have no default.
func (i *Item) RequiredSchema() []inputs.SchemaEntry {
	out := make([]inputs.SchemaEntry, 0, len(i.Inputs))
	for _, in := range i.Inputs {
		if in.Required && in.Default == nil {
			out = append(out, inputs.SchemaEntry{Name: in.Name, Type: in.Type})
		}
	}
	return out
}

// Deployable reports whether any of the item's technology annotations is in
// supported.
func (i *Item) Deployable(supported []string) bool {
	_, technology := ExtractAnnotations(i.Annotations)
	for _, tech := range technology {
		for _, s := range supported {
			if tech == s {
				return true
			}
		}
	}
	return false
}

// ExtractAnnotations splits the comma separated category and technology
// annotations. Both results are empty when annotations is empty.
func ExtractAnnotations(annotations map[string]string) (category, technology []string) {
	if len(annotations) == 0 {
		return []string{}, []string{}
	}
	return splitList(annotations["category"]), splitList(annotations["technology"])
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
