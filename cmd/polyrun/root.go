// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the polyrun command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "polyrun",
		Short: "Run code snippets in many languages",
		Long: TitleStyle.Render("polyrun") + SubtitleStyle.Render(" - Run code snippets in many languages") + `

polyrun runs a piece of source code with the locally installed toolchain for
its language and reports what happened: output, compiler errors, runtime
failures or a missing toolchain. Code can come from an argument, a file,
standard input or the clipboard, and may be cut out of surrounding prose
such as a chat reply or a markdown document.

` + SubtitleStyle.Render("Examples:") + `
  polyrun run -c 'print(1 + 1)'            Run a Python snippet
  polyrun run hello.go                     Run a file, language from the extension
  polyrun run --extract auto answer.md     Run the fenced block in a markdown file
  polyrun run hello.rb --watch             Re-run on every save
  polyrun extract --all notes.md           List every fenced block
  polyrun check                            Show which toolchains are installed
  polyrun languages                        List supported languages`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is <config dir>/polyrun/config.cue)")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "append log entries to this file ('-' for stderr, empty to disable)")

	rootCmd.AddCommand(
		newRunCommand(app, flags),
		newExtractCommand(app, flags),
		newCheckCommand(app, flags),
		newLanguagesCommand(app, flags),
		newConfigCommand(app, flags),
		newCompletionCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the root command. This is called
// by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
