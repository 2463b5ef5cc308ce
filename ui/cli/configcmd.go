// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/ewcloud/ewccli/internal/config"
	"github.com/ewcloud/ewccli/internal/i18n"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Annotations: i18nShort("config.short"),
	}

	show := &cobra.Command{
		Use:         "show",
		Annotations: i18nShort("config.show_short"),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	var system bool
	initCmd := &cobra.Command{
		Use:         "init",
		Annotations: i18nShort("config.init_short"),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteConfigFile(&a.cfg, system)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(i18n.T("config.written", path)))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&system, "system", false, "Write the system-wide config instead of the user config")

	cmd.AddCommand(show, initCmd)
	return cmd
}
