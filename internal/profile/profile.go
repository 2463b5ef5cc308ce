// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package profile persists named credential profiles in a single INI file,
// one section per profile. Profiles are never overwritten: saving an existing
// name fails and the caller must pick another name or remove the section.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"

	"github.com/ewcloud/ewccli/internal/errs"
	"github.com/ewcloud/ewccli/internal/logging"
	"github.com/ewcloud/ewccli/internal/security"
)

// Keys used inside a profile section.
const (
	KeyFederee                     = "federee"
	KeyTenantName                  = "tenant_name"
	KeyRegion                      = "region"
	KeyToken                       = "token"
	KeyApplicationCredentialID     = "application_credential_id"
	KeyApplicationCredentialSecret = "application_credential_secret"
)

// Profile is one stored set of credentials. Optional fields are nil when the
// section does not carry the key.
type Profile struct {
	Name                        string
	Federee                     string
	TenantName                  string
	Region                      *string
	Token                       *string
	ApplicationCredentialID     *string
	ApplicationCredentialSecret *string
}

// SaveRequest carries the fields written by Save and SaveDefault. Profile is
// the explicit profile name; when empty the name is derived from Federee and
// TenantName. Empty optional fields are not written.
type SaveRequest struct {
	Profile                     string
	Federee                     string
	TenantName                  string
	Region                      string
	Token                       string
	ApplicationCredentialID     string
	ApplicationCredentialSecret string
}

// Options configures a Store.
type Options struct {
	// Fs is the filesystem holding the profiles file. Defaults to the OS.
	Fs afero.Fs
	// Path of the profiles file.
	Path string
	// DefaultProfile is the name SaveDefault writes to.
	DefaultProfile string
	// Federees lists the federee identifiers Load accepts.
	Federees []string
}

// Store reads and writes the profiles file. Every operation reads the whole
// file and every write rewrites it.
type Store struct {
	fs             afero.Fs
	path           string
	defaultProfile string
	federees       []string
}

// NewStore returns a Store for opts.
func NewStore(opts Options) *Store {
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Store{
		fs:             fsys,
		path:           opts.Path,
		defaultProfile: opts.DefaultProfile,
		federees:       slices.Clone(opts.Federees),
	}
}

// Path returns the profiles file location.
func (s *Store) Path() string { return s.path }

// DefaultProfile returns the configured default profile name.
func (s *Store) DefaultProfile() string { return s.defaultProfile }

// loadOptions apply to every read and write so values containing "#" or ";"
// are stored verbatim, as ConfigParser writes them.
var loadOptions = ini.LoadOptions{IgnoreInlineComment: true}

// ResolveName returns explicit when set, otherwise "<federee>-<tenant>" in
// lower case. Without an explicit name both federee and tenantName are
// required. The INI default section name is reserved.
func ResolveName(explicit, federee, tenantName string) (string, error) {
	if explicit == ini.DefaultSection {
		return "", &errs.ConfigurationError{Msg: fmt.Sprintf("'%s' is reserved and cannot be used as a profile name", ini.DefaultSection)}
	}
	if explicit != "" {
		return explicit, nil
	}
	if federee == "" || tenantName == "" {
		return "", &errs.ConfigurationError{Msg: "either 'profile' must be provided or both 'federee' and 'tenant_name'"}
	}
	return strings.ToLower(federee) + "-" + strings.ToLower(tenantName), nil
}

// Save writes a new profile. It returns *errs.ProfileConflictError, leaving
// the file untouched, when the resolved name already exists.
func (s *Store) Save(req SaveRequest) error {
	name, err := ResolveName(req.Profile, req.Federee, req.TenantName)
	if err != nil {
		return err
	}
	f, _, err := s.read()
	if err != nil {
		return err
	}
	if hasProfile(f, name) {
		return &errs.ProfileConflictError{Profile: name, Path: s.path}
	}

	sec, err := f.NewSection(name)
	if err != nil {
		return fmt.Errorf("could not create profile section %q: %w", name, err)
	}
	// NewKey rather than Key: Key resolves through parent sections of dotted
	// names and would overwrite the parent's value.
	for _, kv := range []struct {
		key, value string
		optional   bool
	}{
		{KeyFederee, req.Federee, false},
		{KeyTenantName, req.TenantName, false},
		{KeyRegion, req.Region, true},
		{KeyToken, req.Token, true},
		{KeyApplicationCredentialID, req.ApplicationCredentialID, true},
		{KeyApplicationCredentialSecret, req.ApplicationCredentialSecret, true},
	} {
		if kv.optional && kv.value == "" {
			continue
		}
		if _, err := sec.NewKey(kv.key, kv.value); err != nil {
			return fmt.Errorf("could not set %s for profile %q: %w", kv.key, name, err)
		}
	}

	if err := s.write(f); err != nil {
		return err
	}
	logging.Debugf("saved profile %s (federee=%s tenant=%s secret=%v) to %s",
		name, req.Federee, req.TenantName, security.FromString(req.ApplicationCredentialSecret), s.path)
	return nil
}

// SaveDefault writes req under the default profile name unless a profile
// with that name already exists, in which case it does nothing. Without a
// configured default name it also does nothing.
func (s *Store) SaveDefault(req SaveRequest) error {
	if s.defaultProfile == "" {
		logging.Debugf("no default profile configured, skipping")
		return nil
	}
	f, _, err := s.read()
	if err != nil {
		return err
	}
	if hasProfile(f, s.defaultProfile) {
		logging.Debugf("default profile %s already present in %s, skipping", s.defaultProfile, s.path)
		return nil
	}
	req.Profile = s.defaultProfile
	return s.Save(req)
}

// Load returns the profile named explicit, or the one derived from federee
// and tenantName. It never falls back to a different profile: when the name
// is absent the returned *errs.ProfileNotFoundError lists what is available.
func (s *Store) Load(explicit, federee, tenantName string) (*Profile, error) {
	name, err := ResolveName(explicit, federee, tenantName)
	if err != nil {
		return nil, err
	}
	f, exists, err := s.read()
	if err != nil {
		return nil, err
	}
	available := profileNames(f)
	if !exists || len(available) == 0 {
		return nil, &errs.ProfileNotFoundError{Profile: name, Path: s.path}
	}
	if !hasProfile(f, name) {
		return nil, &errs.ProfileNotFoundError{
			Profile:       name,
			Path:          s.path,
			Available:     available,
			DefaultExists: hasProfile(f, s.defaultProfile),
		}
	}

	// KeysHash holds only the section's own keys; Key and HasKey would
	// fall back to the parent of a dotted name such as "ops.dev".
	own := f.Section(name).KeysHash()
	p := &Profile{
		Name:                        name,
		Federee:                     own[KeyFederee],
		TenantName:                  own[KeyTenantName],
		Region:                      optional(own, KeyRegion),
		Token:                       optional(own, KeyToken),
		ApplicationCredentialID:     optional(own, KeyApplicationCredentialID),
		ApplicationCredentialSecret: optional(own, KeyApplicationCredentialSecret),
	}
	if !slices.Contains(s.federees, p.Federee) {
		return nil, &errs.ConfigurationError{Msg: fmt.Sprintf(
			"`%s` federee not supported. Check your profiles in %s. Please use one from the following: [%s]",
			p.Federee, s.path, strings.Join(s.federees, ", "))}
	}
	logging.Debugf("loaded profile %s from %s", name, s.path)
	return p, nil
}

// List returns the stored profile names in file order.
func (s *Store) List() ([]string, error) {
	f, _, err := s.read()
	if err != nil {
		return nil, err
	}
	return profileNames(f), nil
}

// read loads the profiles file. A missing file yields an empty ini.File and
// exists=false.
func (s *Store) read() (f *ini.File, exists bool, err error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ini.Empty(loadOptions), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("could not read profiles file %s: %w", s.path, err)
	}
	f, err = ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, true, fmt.Errorf("could not parse profiles file %s: %w", s.path, err)
	}
	return f, true, nil
}

func (s *Store) write(f *ini.File) error {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("could not encode profiles: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create profiles directory %s: %w", dir, err)
	}
	if err := afero.WriteFile(s.fs, s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("could not write profiles file %s: %w", s.path, err)
	}
	return nil
}

func profileNames(f *ini.File) []string {
	names := []string{}
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		names = append(names, sec.Name())
	}
	return names
}

func hasProfile(f *ini.File, name string) bool {
	if name == "" || name == ini.DefaultSection {
		return false
	}
	_, err := f.GetSection(name)
	return err == nil
}

func optional(own map[string]string, key string) *string {
	v, ok := own[key]
	if !ok {
		return nil
	}
	return &v
}
