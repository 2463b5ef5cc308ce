// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the CLI configuration with Viper from defaults, an
// optional ewc.yaml, EWC_* environment variables and command flags, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Keys understood by LoadConfig. Flags bound from cobra use the same names.
const (
	KeyBasePath       = "base-path"
	KeyProfilesFile   = "profiles-file"
	KeyDefaultProfile = "default-profile"
	KeyFederees       = "federees"
	KeyHubItemsFile   = "hub-items-file"
	KeyLanguage       = "language"
	KeyLogLevel       = "log-level"
)

// Config is the process-wide configuration. It is built once per command
// invocation and passed to the packages that need it.
type Config struct {
	BasePath       string   `mapstructure:"base-path" yaml:"base-path"`
	ProfilesFile   string   `mapstructure:"profiles-file" yaml:"profiles-file"`
	DefaultProfile string   `mapstructure:"default-profile" yaml:"default-profile"`
	Federees       []string `mapstructure:"federees" yaml:"federees"`
	HubItemsFile   string   `mapstructure:"hub-items-file" yaml:"hub-items-file"`
	Language       string   `mapstructure:"language" yaml:"language"`
	LogLevel       string   `mapstructure:"log-level" yaml:"log-level"`
}

// ProfilesPath is the credential profiles file.
func (c Config) ProfilesPath() string {
	return filepath.Join(ExpandHome(c.BasePath), c.ProfilesFile)
}

// HubItemsPath is the cached hub items manifest.
func (c Config) HubItemsPath() string {
	return filepath.Join(ExpandHome(c.BasePath), c.HubItemsFile)
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	base := ".ewccli"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".ewccli")
	}
	return map[string]any{
		KeyBasePath:       base,
		KeyProfilesFile:   "profiles",
		KeyDefaultProfile: "default",
		KeyFederees:       []string{"EUMETSAT", "ECMWF"},
		KeyHubItemsFile:   "hub_items.yml",
		KeyLanguage:       "en",
		KeyLogLevel:       "info",
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// GetConfigPath returns the full path of the user or system config file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "ewccli")
		default:
			configDir = "/etc/ewccli"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "ewccli")
	}

	return filepath.Join(configDir, "ewc.yaml"), nil
}

// LoadConfig resolves configuration into T. A missing config file is not an
// error; a malformed one is. explicitPath, when non-nil, takes precedence
// over the standard locations.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("ewc")
	v.SetConfigType("yaml")
	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("could not read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	v.SetEnvPrefix("ewc")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("could not decode config: %w", err)
	}
	return c, nil
}

// WriteConfigFile persists c as YAML to the user (or system) config path and
// returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
