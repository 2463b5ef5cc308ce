// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, configuration loading, and the version
// command. Subcommands live in their own files.

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ewcloud/ewccli/buildvars"
	"github.com/ewcloud/ewccli/internal/config"
	"github.com/ewcloud/ewccli/internal/errs"
	"github.com/ewcloud/ewccli/internal/i18n"
	"github.com/ewcloud/ewccli/internal/logging"
	"github.com/ewcloud/ewccli/internal/profile"
)

const modulePath = "github.com/ewcloud/ewccli"

// app carries what every command needs once PersistentPreRunE has run.
type app struct {
	fs      afero.Fs
	cfg     config.Config
	cfgFile string
	verbose bool
	stdin   io.Reader
}

func (a *app) profiles() *profile.Store {
	return profile.NewStore(profile.Options{
		Fs:             a.fs,
		Path:           a.cfg.ProfilesPath(),
		DefaultProfile: a.cfg.DefaultProfile,
		Federees:       a.cfg.Federees,
	})
}

// setup loads configuration and initialises logging and i18n.
func (a *app) setup(cmd *cobra.Command) error {
	explicit, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	a.cfg, err = config.LoadConfig[config.Config](cmd, config.Defaults(), explicit)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if strings.TrimSpace(a.cfg.DefaultProfile) == "" {
		return &errs.ConfigurationError{Msg: fmt.Sprintf("'%s' must not be empty", config.KeyDefaultProfile)}
	}

	logging.SetOutput(cmd.ErrOrStderr())
	if err := logging.SetLevel(a.cfg.LogLevel); err != nil {
		logging.Warnf("%v, using info", err)
	}
	if a.verbose {
		logging.SetDebug(true)
	}
	i18n.Init(a.cfg.Language)
	localize(cmd.Root())

	logging.Debugf("profiles file: %s", a.cfg.ProfilesPath())
	return nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// Execute runs the CLI and returns the process exit code. Errors returned by
// commands are rendered here and nowhere else.
func Execute() int {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	RenderError(cmd.ErrOrStderr(), err)
	return ExitCode(err)
}

// NewRootCmd creates the root command backed by the OS filesystem.
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs(), os.Stdin)
}

func newRootCmd(fs afero.Fs, stdin io.Reader) *cobra.Command {
	a := &app{fs: fs, stdin: stdin}

	cmd := &cobra.Command{
		Use:         "ewc",
		Annotations: i18nShort("root.short"),
		Long: `European Weather Cloud (EWC) CLI.

Save tenant credentials as named profiles and prepare Community Hub item
deployments, checking the item inputs you supply against the item's schema.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	cmd.Version = compositeVersion(nil)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String(config.KeyBasePath, "", "Directory holding profiles and hub items (default ~/.ewccli)")
	cmd.PersistentFlags().String(config.KeyLanguage, "en", `Message language ("en", "de")`)
	cmd.PersistentFlags().String(config.KeyLogLevel, "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newLoginCmd(a),
		newProfileCmd(a),
		newHubCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)

	// Help bypasses PersistentPreRunE, so load the language here as well.
	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if err := a.setup(c); err != nil {
			logging.Debugf("help without configuration: %v", err)
		}
		defaultHelp(c, args)
	})
	localize(cmd)
	return cmd
}

// shortKey annotates a command with the message ID of its short description.
const shortKey = "i18n.short"

func i18nShort(id string) map[string]string {
	return map[string]string{shortKey: id}
}

// localize sets Short on cmd and its subcommands from their shortKey
// annotation in the active language.
func localize(cmd *cobra.Command) {
	if id, ok := cmd.Annotations[shortKey]; ok {
		cmd.Short = i18n.T(id)
	}
	for _, c := range cmd.Commands() {
		localize(c)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Annotations: i18nShort("version.short"),
		// Skip config loading so version works with a broken config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
			return nil
		},
	}
}

func compositeVersion(info *debug.BuildInfo) string {
	v, c, d := resolveBuildVersion(info)
	out := v
	if c != "" && c != "dev" {
		out += " (" + c + ")"
	}
	if d != "" {
		out += " built: " + d
	}
	return out
}

// resolveBuildVersion computes the best-available version, commit and build
// date. If info is nil it reads build info from the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault("dev")
	resolvedCommit := "dev"
	if buildvars.GitCommit != "" {
		resolvedCommit = buildvars.GitCommit
	}
	resolvedDate := buildvars.BuildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}
	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		if resolvedVersion == "dev" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" && resolvedCommit == "dev" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" && resolvedDate == "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && resolvedCommit != "dev" {
		resolvedVersion = resolvedCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
