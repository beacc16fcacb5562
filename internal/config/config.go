// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/polyrun/polyrun/internal/issue"
	"github.com/polyrun/polyrun/pkg/cueutil"

	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

const (
	// AppName is the application name.
	AppName = "polyrun"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. POLYRUN_TIMEOUT.
	EnvPrefix = "POLYRUN"

	schemaDefinition = "#Config"
)

// ErrConfigExists is returned by CreateDefaultConfig when the file is already there.
var ErrConfigExists = errors.New("config file already exists")

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the polyrun configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// newViper returns a viper instance seeded with defaults and wired to
// POLYRUN_* environment variables.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("default_language", defaults.DefaultLanguage)
	v.SetDefault("timeout", defaults.Timeout.String())
	v.SetDefault("probe_timeout", defaults.ProbeTimeout.String())
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme.String())
	v.SetDefault("extract.mode", defaults.Extract.Mode.String())
	v.SetDefault("extract.start_separator", defaults.Extract.StartSeparator)
	v.SetDefault("extract.end_separator", defaults.Extract.EndSeparator)
	v.SetDefault("extract.skip_first_line", defaults.Extract.SkipFirstLine)
	v.SetDefault("toolchains", map[string]any{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// loadWithOptions performs option-driven config loading without touching
// package-level state. It returns the config and the file it came from.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	resolvedPath, err := resolveConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'polyrun config show' to see the effective configuration").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(displayPath(resolvedPath)).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Run 'polyrun languages' to list supported languages").
			WithSuggestion("Durations use Go syntax, e.g. \"30s\" or \"1m\"").
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	// Toolchain overrides need the registry to rebuild, which CUE cannot express.
	if _, err := cfg.Registry(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(displayPath(resolvedPath)).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Override keys must be language names or aliases from 'polyrun languages'").
			WithSuggestion("Quote arguments containing spaces, e.g. run: \"'/opt/my py/python' -c {code}\"").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// resolveConfigFile picks the config file to load: the explicit path (which
// must exist), then <ConfigDir>/config.cue, then ./config.cue. An empty result
// means defaults only.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'polyrun config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	for _, candidate := range []string{
		filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt),
		ConfigFileName + "." + ConfigFileExt,
	} {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

func displayPath(path string) string {
	if path == "" {
		return "built-in defaults"
	}
	return path
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against #Config and merges its
// contents into Viper, keeping defaults for unset fields.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeToMap(configSchema, schemaDefinition, data, path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// DefaultConfigPath returns <ConfigDir>/config.cue.
func DefaultConfigPath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// CreateDefaultConfig writes the default configuration to DefaultConfigPath.
// An existing file is kept unless force is set, in which case it is replaced.
// The returned path is valid even when ErrConfigExists is returned.
func CreateDefaultConfig(force bool) (string, error) {
	cfgPath, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if !force && fileExists(cfgPath) {
		return cfgPath, ErrConfigExists
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE renders cfg as a config.cue document that validates against
// the embedded schema.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// polyrun configuration file\n")
	sb.WriteString("// Unset fields use built-in defaults; POLYRUN_* environment variables win over this file.\n\n")

	fmt.Fprintf(&sb, "default_language: %s\n", strconv.Quote(cfg.DefaultLanguage))
	fmt.Fprintf(&sb, "timeout: %s\n", strconv.Quote(cfg.Timeout.String()))
	fmt.Fprintf(&sb, "probe_timeout: %s\n", strconv.Quote(cfg.ProbeTimeout.String()))
	fmt.Fprintf(&sb, "log_file: %s\n", strconv.Quote(cfg.LogFile))

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %s\n", strconv.Quote(cfg.UI.ColorScheme.String()))
	sb.WriteString("}\n")

	sb.WriteString("\nextract: {\n")
	fmt.Fprintf(&sb, "\tmode: %s\n", strconv.Quote(cfg.Extract.Mode.String()))
	fmt.Fprintf(&sb, "\tstart_separator: %s\n", strconv.Quote(cfg.Extract.StartSeparator))
	fmt.Fprintf(&sb, "\tend_separator: %s\n", strconv.Quote(cfg.Extract.EndSeparator))
	fmt.Fprintf(&sb, "\tskip_first_line: %v\n", cfg.Extract.SkipFirstLine)
	sb.WriteString("}\n")

	if len(cfg.Toolchains) > 0 {
		names := make([]string, 0, len(cfg.Toolchains))
		for name := range cfg.Toolchains {
			names = append(names, name)
		}
		slices.Sort(names)

		sb.WriteString("\ntoolchains: {\n")
		for _, name := range names {
			o := cfg.Toolchains[name]
			fmt.Fprintf(&sb, "\t%s: {\n", strconv.Quote(name))
			for _, field := range [][2]string{{"probe", o.Probe}, {"compile", o.Compile}, {"run", o.Run}} {
				if field[1] != "" {
					fmt.Fprintf(&sb, "\t\t%s: %s\n", field[0], strconv.Quote(field[1]))
				}
			}
			sb.WriteString("\t}\n")
		}
		sb.WriteString("}\n")
	}

	out, err := cueutil.FormatSource([]byte(sb.String()))
	if err != nil {
		return sb.String()
	}
	return string(out)
}
