// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/polyrun/polyrun/internal/config"
	"github.com/polyrun/polyrun/internal/issue"
	"github.com/polyrun/polyrun/internal/logsink"
	"github.com/polyrun/polyrun/internal/runtime"
	"github.com/polyrun/polyrun/internal/toolchain"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra command handler receives an App reference.
	App struct {
		Config    ConfigProvider
		Clipboard Clipboard
		// Launcher starts toolchain processes; nil selects host processes.
		Launcher runtime.Launcher
		stdin    io.Reader
		stdout   io.Writer
		stderr   io.Writer
		// stdinIsTerminal reports whether stdin is interactive, in which case
		// it is never read as code.
		stdinIsTerminal func() bool
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config          ConfigProvider
		Clipboard       Clipboard
		Launcher        runtime.Launcher
		Stdin           io.Reader
		Stdout          io.Writer
		Stderr          io.Writer
		StdinIsTerminal func() bool
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// Clipboard reads and writes the system clipboard.
	Clipboard interface {
		ReadAll() (string, error)
		WriteAll(text string) error
	}

	systemClipboard struct{}

	// rootFlags holds the persistent flags shared by every subcommand.
	rootFlags struct {
		verbose    bool
		configPath string
		logFile    string
	}

	// session is the per-invocation state: effective config, registry and log sink.
	session struct {
		cfg      *config.Config
		registry *toolchain.Registry
		log      *logsink.Sink
		verbose  bool
		launcher runtime.Launcher
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Clipboard == nil {
		deps.Clipboard = systemClipboard{}
	}
	if deps.StdinIsTerminal == nil {
		stdin := deps.Stdin
		deps.StdinIsTerminal = func() bool { return isTerminal(stdin) }
	}

	return &App{
		Config:          deps.Config,
		Clipboard:       deps.Clipboard,
		Launcher:        deps.Launcher,
		stdin:           deps.Stdin,
		stdout:          deps.Stdout,
		stderr:          deps.Stderr,
		stdinIsTerminal: deps.StdinIsTerminal,
	}, nil
}

// open loads the effective configuration and opens the log sink for one
// command invocation. The caller must Close the returned session.
func (a *App) open(cmd *cobra.Command, flags *rootFlags) (*session, error) {
	cfg, err := a.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return nil, err
	}

	registry, err := cfg.Registry()
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("apply toolchain overrides").
			WithResource(displaySource(cfg)).
			WithSuggestion("Check the toolchains section of the config file").
			WithSuggestion("Run 'polyrun languages' to list the known languages").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	applyColorScheme(cfg.UI.ColorScheme)

	s := &session{
		cfg:      cfg,
		registry: registry,
		verbose:  flags.verbose || cfg.UI.Verbose,
		launcher: a.Launcher,
	}

	logPath := cfg.LogFile
	if cmd.Flags().Changed("log-file") {
		logPath = flags.logFile
	}
	s.log, err = logsink.Open(logPath)
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+fmt.Sprintf("logging disabled: %v", err))
		s.log = logsink.Discard()
	}
	return s, nil
}

// dispatcher builds an execution dispatcher from the session. A non-empty
// timeout overrides the configured one.
func (s *session) dispatcher(timeout config.Duration) *runtime.Dispatcher {
	if timeout == "" {
		timeout = s.cfg.Timeout
	}
	opts := []runtime.Option{
		runtime.WithRegistry(s.registry),
		runtime.WithLogger(s.log),
		runtime.WithTimeout(timeout.Std()),
		runtime.WithProbeTimeout(s.cfg.ProbeTimeout.Std()),
	}
	if s.launcher != nil {
		opts = append(opts, runtime.WithLauncher(s.launcher))
	}
	return runtime.NewDispatcher(opts...)
}

// Close releases the session's log sink.
func (s *session) Close() error {
	return s.log.Close()
}

func (systemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", errClipboardUnsupported
	}
	return clipboard.ReadAll()
}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// isTerminal reports whether stream is an interactive terminal. Streams
// without a file descriptor never are.
func isTerminal(stream any) bool {
	f, ok := stream.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// applyColorScheme forces lipgloss to the configured background; auto keeps
// terminal detection.
func applyColorScheme(scheme config.ColorScheme) {
	switch scheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}

func displaySource(cfg *config.Config) string {
	if cfg.Source == "" {
		return "built-in defaults"
	}
	return cfg.Source
}
