// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ewcloud/ewccli/internal/errs"
	"github.com/ewcloud/ewccli/internal/i18n"
	"github.com/ewcloud/ewccli/internal/profile"
)

type loginOptions struct {
	profile    string
	federee    string
	tenantName string
	region     string
	token      string
	credID     string
	credSecret string
}

// newLoginCmd stores the supplied credentials. The first login also becomes
// the default profile; later logins never replace it.
func newLoginCmd(a *app) *cobra.Command {
	var o loginOptions
	cmd := &cobra.Command{
		Use:         "login",
		Annotations: i18nShort("login.short"),
		Long: `Saves the tenant credentials to the profiles file.

The profile is named after --profile, or "<federee>-<tenant-name>" in lower
case. Existing profiles are never overwritten. The first successful login also
creates the default profile used when no --profile is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, a, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.profile, "profile", "", "Profile name (default <federee>-<tenant-name>)")
	f.StringVar(&o.federee, "federee", "", "Federee the tenant belongs to")
	f.StringVar(&o.tenantName, "tenant-name", "", "Tenant name")
	f.StringVar(&o.region, "region", "", "Region")
	f.StringVar(&o.token, "token", "", "Authentication token")
	f.StringVar(&o.credID, "application-credential-id", "", "Application credential ID")
	f.StringVar(&o.credSecret, "application-credential-secret", "", "Application credential secret (prompted when omitted on a terminal)")
	_ = cmd.MarkFlagRequired("federee")
	_ = cmd.MarkFlagRequired("tenant-name")
	return cmd
}

func runLogin(cmd *cobra.Command, a *app, o loginOptions) error {
	if !slices.Contains(a.cfg.Federees, o.federee) {
		return &errs.ConfigurationError{Msg: fmt.Sprintf(
			"`%s` federee not supported. Please use one from the following: [%s]",
			o.federee, strings.Join(a.cfg.Federees, ", "))}
	}
	if o.credID != "" && o.credSecret == "" {
		secret, err := promptSecret(cmd, a)
		if err != nil {
			return err
		}
		o.credSecret = secret
	}

	store := a.profiles()
	req := profile.SaveRequest{
		Profile:                     o.profile,
		Federee:                     o.federee,
		TenantName:                  o.tenantName,
		Region:                      o.region,
		Token:                       o.token,
		ApplicationCredentialID:     o.credID,
		ApplicationCredentialSecret: o.credSecret,
	}
	name, err := profile.ResolveName(req.Profile, req.Federee, req.TenantName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := store.Save(req); err != nil {
		return err
	}
	fmt.Fprintln(out, successStyle.Render(i18n.T("login.saved", name, store.Path())))
	if name == store.DefaultProfile() {
		return nil
	}

	names, err := store.List()
	if err != nil {
		return err
	}
	if !slices.Contains(names, store.DefaultProfile()) {
		if err := store.SaveDefault(req); err != nil {
			return err
		}
		fmt.Fprintln(out, successStyle.Render(i18n.T("login.default_saved", store.DefaultProfile())))
	}
	return nil
}

// promptSecret reads the credential secret without echo on a terminal, or
// one line from stdin otherwise.
func promptSecret(cmd *cobra.Command, a *app) (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), i18n.T("login.secret_prompt"))
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("could not read secret: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", &errs.ValidationError{Msg: "application credential secret is required with --application-credential-id"}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
