// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/polyrun/polyrun/internal/config"
	"github.com/polyrun/polyrun/internal/extract"
	"github.com/polyrun/polyrun/internal/issue"
	"github.com/polyrun/polyrun/internal/runtime"
	"github.com/polyrun/polyrun/internal/store"
	"github.com/polyrun/polyrun/internal/toolchain"

	"github.com/spf13/cobra"
)

// saveCodeDefault makes --save-code pick code_generated.<ext> in the working directory.
const saveCodeDefault = "auto"

type (
	// runFlags holds the flags of `polyrun run`.
	runFlags struct {
		code        string
		clipboard   bool
		language    string
		extract     bool
		extractMode string
		timeout     string
		json        bool
		save        string
		saveCode    string
		watch       bool
		patterns    []string
	}

	// runPlan is the resolved code and language for one run.
	runPlan struct {
		code     string
		language string
		// block is the extraction result when extraction was applied.
		block *extract.Block
	}
)

// newRunCommand creates the `polyrun run` command.
func newRunCommand(app *App, root *rootFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [FILE]",
		Short: "Run a code snippet with its language toolchain",
		Long: `Run a code snippet with the locally installed toolchain for its language.

The code comes from FILE ('-' for stdin), --code, --clipboard, or piped stdin.
The language is taken from --language, then the FILE extension, then the tag
of an extracted fenced block, and finally the configured default_language.

Markdown files are extracted automatically; pass --extract to cut code out of
any other input using the configured extraction mode.

` + SubtitleStyle.Render("Exit codes:") + `
  0    the code ran and exited with status 0
  N    the code ran and exited with status N
  1    compilation failed or the toolchain could not be started
  2    there was no code, or the language is not supported
  124  the code timed out
  127  the toolchain is not installed`,
		Example: `  polyrun run -c 'console.log(6 * 7)' -l js
  polyrun run main.go
  polyrun run answer.md --save-code
  pbpaste | polyrun run --extract -l python
  polyrun run script.rb --watch --pattern 'lib/**/*.rb'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := inputSource{code: flags.code, clipboard: flags.clipboard}
			if len(args) == 1 {
				src.file = args[0]
			}
			return app.finish(cmd, root.verbose, runRun(cmd, app, root, flags, src))
		},
	}

	cmd.Flags().StringVarP(&flags.code, "code", "c", "", "code to run")
	cmd.Flags().BoolVar(&flags.clipboard, "clipboard", false, "read the code from the clipboard")
	cmd.Flags().StringVarP(&flags.language, "language", "l", "", "language of the code (e.g. python, c++, go)")
	cmd.Flags().BoolVarP(&flags.extract, "extract", "x", false, "extract the code from surrounding text first")
	cmd.Flags().StringVar(&flags.extractMode, "extract-mode", "", "extraction mode: auto, delimited, heuristic or none (implies --extract)")
	cmd.Flags().StringVarP(&flags.timeout, "timeout", "t", "", "per-process time limit, e.g. 5s (default from config)")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&flags.save, "save", "", "write the result to this file (.json, .toml, otherwise stdout text)")
	cmd.Flags().StringVar(&flags.saveCode, "save-code", "", "write the code that ran to this file (default code_generated.<ext>)")
	cmd.Flags().Lookup("save-code").NoOptDefVal = saveCodeDefault
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-run whenever FILE changes")
	cmd.Flags().StringSliceVar(&flags.patterns, "pattern", nil, "with --watch, further files to watch (doublestar globs)")

	_ = cmd.RegisterFlagCompletionFunc("extract-mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		modes := extract.Modes()
		out := make([]string, len(modes))
		for i, m := range modes {
			out[i] = m.String()
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("language", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		langs := toolchain.Default().Languages()
		out := make([]string, len(langs))
		for i, l := range langs {
			out[i] = string(l)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRun(cmd *cobra.Command, app *App, root *rootFlags, flags *runFlags, src inputSource) error {
	if err := validateRunFlags(flags, src); err != nil {
		return err
	}

	s, err := app.open(cmd, root)
	if err != nil {
		return err
	}
	defer s.Close()

	if flags.watch {
		return runWatch(cmd.Context(), app, s, flags, src)
	}
	return runOnce(cmd.Context(), app, s, flags, src)
}

func validateRunFlags(flags *runFlags, src inputSource) error {
	if flags.timeout != "" {
		if valid, _ := config.Duration(flags.timeout).IsValid(); !valid {
			return &config.InvalidDurationError{Field: "--timeout", Value: config.Duration(flags.timeout)}
		}
	}
	if flags.extractMode != "" {
		if valid, errs := extract.Mode(flags.extractMode).IsValid(); !valid {
			return errs[0]
		}
	}
	if flags.watch && (src.file == "" || src.file == stdinPath) {
		return fmt.Errorf("--watch needs a FILE to follow")
	}
	if len(flags.patterns) > 0 && !flags.watch {
		return fmt.Errorf("--pattern only applies with --watch")
	}
	return nil
}

// runOnce reads the input, runs it and reports the result. A failed outcome
// becomes an ExitError carrying the mapped exit code.
func runOnce(ctx context.Context, app *App, s *session, flags *runFlags, src inputSource) error {
	in, err := app.readInput(src)
	if err != nil {
		return err
	}

	plan := planRun(s, flags, in)
	if plan.block != nil && s.verbose {
		fmt.Fprintln(app.stderr, VerboseStyle.Render(fmt.Sprintf("Extracted %d line(s) from %s (%s)",
			lineCount(plan.block.Text), in.origin, plan.block.Provenance)))
	}

	if flags.saveCode != "" {
		if err := saveCode(s, flags.saveCode, plan); err != nil {
			return err
		}
	}

	if s.verbose {
		fmt.Fprintln(app.stderr, VerboseStyle.Render("Running as ")+VerboseHighlightStyle.Render(plan.language))
	}
	res := s.dispatcher(config.Duration(flags.timeout)).Run(ctx, plan.code, plan.language)

	if flags.save != "" {
		if err := store.SaveResult(flags.save, res); err != nil {
			return saveError(flags.save, err)
		}
	}

	if flags.json {
		data, err := store.Encode(res, store.FormatJSON)
		if err != nil {
			return err
		}
		if _, err := app.stdout.Write(data); err != nil {
			return err
		}
	} else {
		app.report(s, res)
	}

	if code := exitCodeFor(res); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// planRun applies extraction when requested (or when the input is markdown)
// and resolves the language.
func planRun(s *session, flags *runFlags, in input) runPlan {
	plan := runPlan{code: in.text}

	if flags.extract || flags.extractMode != "" || isMarkdown(in.file) {
		opts := s.cfg.Extract.Options()
		if flags.extractMode != "" {
			opts.Mode = extract.Mode(flags.extractMode)
		}
		block := extract.Extract(in.text, opts)
		s.log.Info("extract", "origin", in.origin, "mode", opts.Mode, "provenance", block.Provenance, "bytes", len(block.Text))
		plan.code = block.Text
		plan.block = &block
	}

	plan.language = resolveLanguage(s.registry, flags.language, in.file, plan.block, s.cfg.DefaultLanguage)
	return plan
}

// resolveLanguage picks the language: explicit flag, FILE extension, fence
// tag of the extracted block, then the configured default.
func resolveLanguage(reg *toolchain.Registry, explicit, file string, block *extract.Block, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if file != "" && !isMarkdown(file) {
		if lang, ok := reg.InferFromFilename(file); ok {
			return string(lang)
		}
	}
	if block != nil && block.Tag != "" {
		if spec, err := reg.Lookup(block.Tag); err == nil {
			return string(spec.Language)
		}
	}
	return fallback
}

func saveCode(s *session, path string, plan runPlan) error {
	if path == saveCodeDefault {
		spec, _ := s.registry.Lookup(plan.language)
		path = store.DefaultCodeFilename(spec)
	}
	if err := store.Save(path, plan.code); err != nil {
		return saveError(path, err)
	}
	s.log.Info("save code", "path", path, "bytes", len(plan.code))
	return nil
}

func saveError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("save").
		WithResource(path).
		WithSuggestion("Check that the directory is writable").
		WithIssue(issue.SaveFailedId).
		Wrap(err).
		BuildError()
}

// report prints a result for humans: the child's stdout on stdout, and either
// its stderr or a failure headline with diagnostic on stderr.
func (a *App) report(s *session, res runtime.ExecutionResult) {
	fmt.Fprint(a.stdout, res.Stdout)

	if res.Success() {
		fmt.Fprint(a.stderr, res.Stderr)
		if s.verbose {
			fmt.Fprintln(a.stderr, SuccessStyle.Render("✓ ")+VerboseStyle.Render(fmt.Sprintf("%s finished in %dms", res.Language, res.DurationMs)))
		}
		return
	}

	fmt.Fprintln(a.stderr, ErrorStyle.Render("✗ "+outcomeHeadline(res)))
	if res.Outcome.ProcessRan() || res.Outcome == runtime.OutcomeLaunchFailed {
		fmt.Fprintln(a.stderr, res.Diagnostic())
	}
	if res.Outcome == runtime.OutcomeUnsupportedLanguage {
		if suggestions := s.registry.Suggest(string(res.Language)); len(suggestions) > 0 {
			fmt.Fprintln(a.stderr, "Did you mean "+CmdStyle.Render(strings.Join(suggestions, ", "))+"?")
		}
	}
	if s.verbose {
		renderRemedy(a.stderr, issueFor(res), isTerminal(a.stderr))
	}
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(strings.TrimRight(s, "\n"), "\n") + 1
}
