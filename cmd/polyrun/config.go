// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/polyrun/polyrun/internal/config"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the `polyrun config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, root *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage polyrun configuration",
		Long: `Manage polyrun configuration.

Configuration is stored in:
  - Linux: ~/.config/polyrun/config.cue
  - macOS: ~/Library/Application Support/polyrun/config.cue
  - Windows: %APPDATA%\polyrun\config.cue

A config.cue in the current directory is used when none exists there, and
POLYRUN_* environment variables (e.g. POLYRUN_TIMEOUT=5s) override both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var asJSON, asTOML bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.finish(cmd, root.verbose, showConfig(cmd, app, root, asJSON, asTOML))
		},
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	showCmd.Flags().BoolVar(&asTOML, "toml", false, "print as TOML")
	showCmd.MarkFlagsMutuallyExclusive("json", "toml")
	cfgCmd.AddCommand(showCmd)

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.finish(cmd, root.verbose, initConfig(app, force))
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.finish(cmd, root.verbose, showConfigPath(cmd, app, root))
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, root *rootFlags, asJSON, asTOML bool) error {
	cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: root.configPath})
	if err != nil {
		return err
	}

	if root.verbose {
		fmt.Fprintf(app.stderr, "%s %s\n", VerboseStyle.Render("Config file:"), VerboseHighlightStyle.Render(displaySource(cfg)))
	}

	switch {
	case asJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(app.stdout, string(data))
	case asTOML:
		data, err := toml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(app.stdout, string(data))
	default:
		fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
	}
	return nil
}

func initConfig(app *App, force bool) error {
	cfgPath, err := config.CreateDefaultConfig(force)
	if errors.Is(err, config.ErrConfigExists) {
		fmt.Fprintf(app.stderr, "%s Configuration already exists at %s (use --force to overwrite)\n", WarningStyle.Render("!"), cfgPath)
		return &ExitError{Code: 1}
	}
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

// showConfigPath prints the file the configuration is loaded from, or the
// default location when no file exists yet.
func showConfigPath(cmd *cobra.Command, app *App, root *rootFlags) error {
	cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: root.configPath})
	if err != nil {
		return err
	}
	if cfg.Source != "" {
		fmt.Fprintln(app.stdout, cfg.Source)
		return nil
	}

	cfgPath, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(app.stdout, cfgPath)
	if root.verbose {
		fmt.Fprintln(app.stderr, VerboseStyle.Render("(file does not exist yet; built-in defaults apply)"))
	}
	return nil
}
