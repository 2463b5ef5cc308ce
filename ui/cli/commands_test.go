// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

const hubItems = `items:
  ipa-client:
    version: 1.2.0
    source: https://github.com/ewcloud/ipa-client
    annotations:
      category: "Security, Identity"
      technology: "Ansible Playbook"
    inputs:
      - name: ipa_domain
        type: str
        required: true
      - name: ipa_admin_password
        type: str
        required: true
      - name: vm_count
        type: Optional[int]
      - name: allowed_ranges
        type: List[str]
  docs:
    annotations:
      category: Docs
      technology: Markdown
`

func newFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, basePath+"/hub_items.yml", []byte(hubItems), 0o600); err != nil {
		t.Fatalf("write hub items: %v", err)
	}
	return fs
}

func login(t *testing.T, fs afero.Fs, args ...string) result {
	t.Helper()
	return executeCommand(t, fs, nil, append([]string{"login"}, args...)...)
}

func TestLogin_CreatesProfileAndDefault(t *testing.T) {
	isolateConfig(t)
	fs := newFs(t)

	res := login(t, fs, "--federee", "EUMETSAT", "--tenant-name", "Alpha", "--token", "tok-1234567890")
	if res.code != ExitOK {
		t.Fatalf("login failed: %+v", res)
	}
	if !strings.Contains(res.out, "Profile 'eumetsat-alpha' saved") || !strings.Contains(res.out, "Default profile 'default' is ready.") {
		t.Fatalf("unexpected login output:\n%s", res.out)
	}

	res = executeCommand(t, fs, nil, "profile", "list")
	if res.code != ExitOK {
		t.Fatalf("profile list failed: %+v", res)
	}
	if res.out != "eumetsat-alpha\ndefault (default)\n" && res.out != "default (default)\neumetsat-alpha\n" {
		t.Fatalf("unexpected profile list:\n%s", res.out)
	}

	// A second login keeps the existing default untouched.
	res = login(t, fs, "--federee", "ECMWF", "--tenant-name", "beta", "--profile", "work")
	if res.code != ExitOK {
		t.Fatalf("second login failed: %+v", res)
	}
	if strings.Contains(res.out, "Default profile") {
		t.Fatalf("default must not be recreated:\n%s", res.out)
	}
	res = executeCommand(t, fs, nil, "profile", "show")
	if !strings.Contains(res.out, "EUMETSAT") || !strings.Contains(res.out, "****7890") {
		t.Fatalf("default profile should hold the first login, got:\n%s", res.out)
	}
}

func TestLogin_ConflictIsRejected(t *testing.T) {
	isolateConfig(t)
	fs := newFs(t)

	if res := login(t, fs, "--federee", "EUMETSAT", "--tenant-name", "alpha"); res.code != ExitOK {
		t.Fatalf("first login failed: %+v", res)
	}
	before, err := afero.ReadFile(fs, basePath+"/profiles")
	if err != nil {
		t.Fatalf("read profiles: %v", err)
	}

	res := login(t, fs, "--federee", "EUMETSAT", "--tenant-name", "alpha", "--region", "other")
	if res.code != ExitError {
		t.Fatalf("expected error exit code, got %d", res.code)
	}
	if !strings.Contains(res.err, "Profile 'eumetsat-alpha' already exists in "+basePath+"/profiles") {
		t.Fatalf("unexpected conflict message:\n%s", res.err)
	}
	after, _ := afero.ReadFile(fs, basePath+"/profiles")
	if string(before) != string(after) {
		t.Fatalf("profiles file changed on conflict")
	}
}

func TestLogin_UnsupportedFederee(t *testing.T) {
	isolateConfig(t)
	res := login(t, newFs(t), "--federee", "NASA", "--tenant-name", "x")
	if res.code != ExitError {
		t.Fatalf("expected error exit code, got %d", res.code)
	}
	if !strings.Contains(res.err, "`NASA` federee not supported. Please use one from the following: [EUMETSAT, ECMWF]") {
		t.Fatalf("unexpected message:\n%s", res.err)
	}
}

func TestLogin_SecretReadFromStdin(t *testing.T) {
	isolateConfig(t)
	fs := newFs(t)
	res := executeCommand(t, fs, strings.NewReader("s3cret\n"),
		"login", "--federee", "ECMWF", "--tenant-name", "t", "--application-credential-id", "cred-1")
	if res.code != ExitOK {
		t.Fatalf("login failed: %+v", res)
	}
	data, _ := afero.ReadFile(fs, basePath+"/profiles")
	if !strings.Contains(string(data), "application_credential_secret = s3cret") {
		t.Fatalf("secret not stored:\n%s", data)
	}

	res = executeCommand(t, fs, nil, "profile", "show", "--profile", "ecmwf-t")
	if strings.Contains(res.out, "s3cret") || !strings.Contains(res.out, "[SECRET]") {
		t.Fatalf("secret must be masked:\n%s", res.out)
	}
}

func TestProfileShow_NoProfiles(t *testing.T) {
	isolateConfig(t)
	res := executeCommand(t, newFs(t), nil, "profile", "show")
	if res.code != ExitError {
		t.Fatalf("expected error exit code, got %d", res.code)
	}
	for _, want := range []string{"No profiles found.", "Searched in: " + basePath + "/profiles", "ewc login"} {
		if !strings.Contains(res.err, want) {
			t.Fatalf("missing %q in:\n%s", want, res.err)
		}
	}
}

func TestProfileShow_NotFoundListsAlternatives(t *testing.T) {
	isolateConfig(t)
	fs := newFs(t)
	if res := login(t, fs, "--federee", "EUMETSAT", "--tenant-name", "alpha"); res.code != ExitOK {
		t.Fatalf("login failed: %+v", res)
	}

	res := executeCommand(t, fs, nil, "profile", "show", "--profile", "missing")
	if res.code != ExitError {
		t.Fatalf("expected error exit code, got %d", res.code)
	}
	for _, want := range []string{
		"Profile 'missing' not found.",
		"The missing profile does not exist, but other profiles are available:",
		"• eumetsat-alpha",
		"Use the default without --profile",
	} {
		if !strings.Contains(res.err, want) {
			t.Fatalf("missing %q in:\n%s", want, res.err)
		}
	}
}

func TestProfileShow_MissingDefault(t *testing.T) {
	isolateConfig(t)
	fs := newFs(t)
	if err := afero.WriteFile(fs, basePath+"/profiles", []byte("[work]\nfederee = ECMWF\ntenant_name = t\n"), 0o600); err != nil {
		t.Fatalf("write profiles: %v", err)
	}
	res := executeCommand(t, fs, nil, "profile", "show")
	if !strings.Contains(res.err, "The default profile does not exist") ||
		!strings.Contains(res.err, "create the default profile automatically") {
		t.Fatalf("unexpected output:\n%s", res.err)
	}
	if strings.Contains(res.err, "Use the default without --profile") {
		t.Fatalf("default hint shown although default is missing:\n%s", res.err)
	}
}

func TestHubValidate(t *testing.T) {
	isolateConfig(t)
	fs := newFs(t)

	cases := []struct {
		name string
		args []string
		code int
		want string
	}{
		{
			name: "missing",
			args: nil,
			code: ExitUsage,
			want: "Missing 2 required item input(s):\n- ipa_domain\n- ipa_admin_password",
		},
		{
			name: "type mismatch",
			args: []string{"-i", "ipa_domain=x", "-i", "ipa_admin_password=y", "-i", "vm_count=3"},
			code: ExitUsage,
			want: "Invalid value for item input 'vm_count': got string (3), expected type: Optional[int]",
		},
		{
			name: "list literal",
			args: []string{"-i", "ipa_domain=x", "-i", "ipa_admin_password=y", "-i", "allowed_ranges=[a, b]"},
			code: ExitUsage,
			want: "allowed_ranges",
		},
		{
			name: "valid",
			args: []string{"-i", "ipa_domain=x", "--item-input", "ipa_admin_password=y", "-i", "allowed_ranges=10.0.0.0/8"},
			code: ExitOK,
			want: "All inputs for 'ipa-client' are valid.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := executeCommand(t, fs, nil, append([]string{"hub", "validate", "ipa-client"}, tc.args...)...)
			if res.code != tc.code {
				t.Fatalf("exit code %d, want %d (%+v)", res.code, tc.code, res)
			}
			if !strings.Contains(res.out+res.err, tc.want) {
				t.Fatalf("missing %q in:\n%s%s", tc.want, res.out, res.err)
			}
		})
	}
}

func TestHubValidate_UnknownItem(t *testing.T) {
	isolateConfig(t)
	res := executeCommand(t, newFs(t), nil, "hub", "validate", "nope")
	if res.code != ExitUsage || !strings.Contains(res.err, "Item 'nope' not found") {
		t.Fatalf("unexpected result %+v", res)
	}
	if !strings.Contains(res.err, "Available items: docs, ipa-client") {
		t.Fatalf("missing item hint in:\n%s", res.err)
	}
}

func TestHubPlan(t *testing.T) {
	isolateConfig(t)
	fs := newFs(t)
	if res := login(t, fs, "--federee", "EUMETSAT", "--tenant-name", "alpha", "--region", "eu-1"); res.code != ExitOK {
		t.Fatalf("login failed: %+v", res)
	}

	res := executeCommand(t, fs, nil, "hub", "plan", "ipa-client",
		"-i", "ipa_domain=example.org", "-i", "ipa_admin_password=pw",
		"-i", "allowed_ranges=10.0.0.0/8", "-i", "allowed_ranges=192.168.0.0/16")
	if res.code != ExitOK {
		t.Fatalf("hub plan failed: %+v", res)
	}

	var plan deployPlan
	if err := yaml.Unmarshal([]byte(res.out), &plan); err != nil {
		t.Fatalf("plan is not YAML: %v\n%s", err, res.out)
	}
	if plan.Item != "ipa-client" || plan.SourceKind != "github" || plan.Profile != "default" ||
		plan.Federee != "EUMETSAT" || plan.Region != "eu-1" {
		t.Fatalf("unexpected plan %#v", plan)
	}
	ranges, ok := plan.Inputs["allowed_ranges"].([]any)
	if !ok || len(ranges) != 2 {
		t.Fatalf("expected two allowed_ranges, got %#v", plan.Inputs["allowed_ranges"])
	}
}

func TestHubPlan_RejectsUndeployableAndBadSource(t *testing.T) {
	isolateConfig(t)
	fs := newFs(t)
	if res := login(t, fs, "--federee", "EUMETSAT", "--tenant-name", "alpha"); res.code != ExitOK {
		t.Fatalf("login failed: %+v", res)
	}

	res := executeCommand(t, fs, nil, "hub", "plan", "docs")
	if res.code != ExitUsage || !strings.Contains(res.err, "cannot be deployed") {
		t.Fatalf("unexpected result %+v", res)
	}

	res = executeCommand(t, fs, nil, "hub", "plan", "ipa-client", "--source", "relative/dir",
		"-i", "ipa_domain=x", "-i", "ipa_admin_password=y")
	if res.code != ExitUsage {
		t.Fatalf("expected usage exit code for a bad source, got %+v", res)
	}
}

func TestHubPlan_RequiresProfile(t *testing.T) {
	isolateConfig(t)
	res := executeCommand(t, newFs(t), nil, "hub", "plan", "ipa-client")
	if res.code != ExitError || !strings.Contains(res.err, "No profiles found.") {
		t.Fatalf("unexpected result %+v", res)
	}
}
