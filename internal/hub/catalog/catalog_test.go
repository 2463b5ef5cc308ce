// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.
package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spf13/afero"

	"github.com/ewcloud/ewccli/internal/errs"
	"github.com/ewcloud/ewccli/internal/hub/inputs"
)

const manifest = `items:
  ipa-client:
    description: Enrol a VM into an IPA domain
    version: 1.2.0
    source: https://github.com/ewcloud/ipa-client
    annotations:
      category: "Security, Identity"
      technology: "Ansible Playbook"
    inputs:
      - name: ipa_domain
        type: str
        required: true
      - name: password_allowed_ip_ranges
        type: List[str]
        required: true
        default: []
      - name: ipa_admin_password
        type: str
        required: true
      - name: extra_tags
        type: Optional[List[str]]
  docs:
    description: Documentation only
    annotations:
      category: Docs
      technology: Markdown
`

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/home/u/.ewccli/hub_items.yml", []byte(manifest), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	c, err := Load(fs, "/home/u/.ewccli/hub_items.yml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestLoad_ItemsAndSchemas(t *testing.T) {
	c := loadTestCatalog(t)

	if got := c.Names(); !reflect.DeepEqual(got, []string{"docs", "ipa-client"}) {
		t.Fatalf("unexpected names %v", got)
	}
	item, ok := c.Get("ipa-client")
	if !ok {
		t.Fatalf("ipa-client not found")
	}
	if item.Name != "ipa-client" || item.Version != "1.2.0" {
		t.Fatalf("unexpected item %#v", item)
	}

	wantSchema := []inputs.SchemaEntry{
		{Name: "ipa_domain", Type: "str"},
		{Name: "password_allowed_ip_ranges", Type: "List[str]"},
		{Name: "ipa_admin_password", Type: "str"},
		{Name: "extra_tags", Type: "Optional[List[str]]"},
	}
	if got := item.Schema(); !reflect.DeepEqual(got, wantSchema) {
		t.Fatalf("schema: got %#v", got)
	}
	wantRequired := []inputs.SchemaEntry{
		{Name: "ipa_domain", Type: "str"},
		{Name: "ipa_admin_password", Type: "str"},
	}
	if got := item.RequiredSchema(); !reflect.DeepEqual(got, wantRequired) {
		t.Fatalf("required: got %#v", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := Load(fs, "/missing.yml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Parse([]byte("items: [unclosed")); err == nil {
		t.Fatalf("expected parse error")
	}
	c, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("empty manifest: %v", err)
	}
	if len(c.Names()) != 0 {
		t.Fatalf("expected no items")
	}
}

func TestDeployable(t *testing.T) {
	c := loadTestCatalog(t)
	ipa, _ := c.Get("ipa-client")
	docs, _ := c.Get("docs")
	if !ipa.Deployable(DeployableTechnologies) {
		t.Fatalf("ipa-client should be deployable")
	}
	if docs.Deployable(DeployableTechnologies) {
		t.Fatalf("docs should not be deployable")
	}
	if (&Item{}).Deployable(DeployableTechnologies) {
		t.Fatalf("item without annotations should not be deployable")
	}
}

func TestExtractAnnotations(t *testing.T) {
	cat, tech := ExtractAnnotations(nil)
	if len(cat) != 0 || len(tech) != 0 {
		t.Fatalf("expected empty slices, got %v %v", cat, tech)
	}
	cat, tech = ExtractAnnotations(map[string]string{
		"category":   "Security , Identity",
		"technology": "Ansible Playbook,Terraform Module",
	})
	if !reflect.DeepEqual(cat, []string{"Security", "Identity"}) {
		t.Fatalf("category: %v", cat)
	}
	if !reflect.DeepEqual(tech, []string{"Ansible Playbook", "Terraform Module"}) {
		t.Fatalf("technology: %v", tech)
	}
}

func TestClassifySource(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("/srv/empty", 0o755)
	_ = afero.WriteFile(fs, "/srv/playbook/main.yml", []byte("---"), 0o644)

	cases := []struct {
		src  string
		want SourceKind
	}{
		{"https://github.com/ewcloud/ipa-client", SourceGitHub},
		{"https://github.com/ewcloud/ipa-client.git", SourceGitHub},
		{"https://github.com/ewcloud/ipa-client/", SourceGitHub},
		{"/srv/playbook", SourceDirectory},
	}
	for _, tc := range cases {
		got, err := ClassifySource(fs, tc.src)
		if err != nil || got != tc.want {
			t.Fatalf("%s: got %q, %v; want %q", tc.src, got, err, tc.want)
		}
	}

	for _, src := range []string{
		"http://github.com/ewcloud/ipa-client",
		"https://gitlab.com/ewcloud/ipa-client",
		"https://github.com/ewcloud",
		"https://github.com/ewcloud/ipa-client/tree/main",
		"/srv/empty",
		"/srv/missing",
		"srv/playbook",
		"/srv/playbook/main.yml",
	} {
		_, err := ClassifySource(fs, src)
		var verr *errs.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", src, err)
		}
	}
}
