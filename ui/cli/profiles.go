// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ewcloud/ewccli/internal/i18n"
	"github.com/ewcloud/ewccli/internal/profile"
	"github.com/ewcloud/ewccli/internal/security"
)

// profileSelector holds the flags that pick a profile.
type profileSelector struct {
	name       string
	federee    string
	tenantName string
}

func (s *profileSelector) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.name, "profile", "", "Profile name (default: the default profile)")
	cmd.Flags().StringVar(&s.federee, "federee", "", "Federee, with --tenant-name, to derive the profile name")
	cmd.Flags().StringVar(&s.tenantName, "tenant-name", "", "Tenant name, with --federee, to derive the profile name")
}

// loadProfile resolves the selector against the store. With nothing selected
// the configured default profile is used.
func (a *app) loadProfile(sel profileSelector) (*profile.Profile, error) {
	store := a.profiles()
	name := sel.name
	if name == "" && sel.federee == "" && sel.tenantName == "" {
		name = store.DefaultProfile()
	}
	p, err := store.Load(name, sel.federee, sel.tenantName)
	if err != nil {
		return nil, &profileLookupError{err: err, defaultProfile: store.DefaultProfile()}
	}
	return p, nil
}

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "profile",
		Annotations: i18nShort("profile.short"),
	}
	cmd.AddCommand(newProfileListCmd(a), newProfileShowCmd(a))
	return cmd
}

func newProfileListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "list",
		Annotations: i18nShort("profile.list_short"),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.profiles()
			names, err := store.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, i18n.T("profile.none"))
				return nil
			}
			for _, n := range names {
				if n == store.DefaultProfile() {
					fmt.Fprintf(out, "%s %s\n", n, i18n.T("profile.default_marker"))
					continue
				}
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}
}

func newProfileShowCmd(a *app) *cobra.Command {
	var sel profileSelector
	cmd := &cobra.Command{
		Use:         "show",
		Annotations: i18nShort("profile.show_short"),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProfile(sel)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			row := func(k, v string) { fmt.Fprintf(tw, "%s:\t%s\n", k, v) }
			row("profile", p.Name)
			row(profile.KeyFederee, p.Federee)
			row(profile.KeyTenantName, p.TenantName)
			row(profile.KeyRegion, deref(p.Region))
			row(profile.KeyToken, security.Mask(deref(p.Token)))
			row(profile.KeyApplicationCredentialID, deref(p.ApplicationCredentialID))
			row(profile.KeyApplicationCredentialSecret, security.Mask(deref(p.ApplicationCredentialSecret)))
			return tw.Flush()
		},
	}
	sel.register(cmd)
	return cmd
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
