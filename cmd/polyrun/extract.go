// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/polyrun/polyrun/internal/extract"
	"github.com/polyrun/polyrun/internal/runtime"
	"github.com/polyrun/polyrun/internal/store"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// extractFlags holds the flags of `polyrun extract`.
type extractFlags struct {
	clipboard     bool
	mode          string
	start         string
	end           string
	skipFirstLine bool
	all           bool
	copy          bool
	render        bool
	save          string
	json          bool
}

// newExtractCommand creates the `polyrun extract` command.
func newExtractCommand(app *App, root *rootFlags) *cobra.Command {
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract [FILE]",
		Short: "Cut code out of surrounding text",
		Long: `Extract the code from a chat reply, a markdown document or any other text.

Modes:
  auto       delimited when the separators occur, heuristic otherwise (default)
  delimited  the text between the start and end separators
  heuristic  paragraphs that look like code, merged
  none       the input unchanged

The extraction defaults come from the extract section of the config file.`,
		Example: `  polyrun extract answer.md
  polyrun extract --all README.md
  pbpaste | polyrun extract --mode heuristic --copy
  polyrun extract notes.txt --start '<code>' --end '</code>' --no-skip-first-line`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := inputSource{clipboard: flags.clipboard}
			if len(args) == 1 {
				src.file = args[0]
			}
			return app.finish(cmd, root.verbose, runExtract(cmd, app, root, flags, src))
		},
	}

	cmd.Flags().BoolVar(&flags.clipboard, "clipboard", false, "read the text from the clipboard")
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "extraction mode: auto, delimited, heuristic or none (default from config)")
	cmd.Flags().StringVar(&flags.start, "start", "", "start separator for delimited mode (default from config)")
	cmd.Flags().StringVar(&flags.end, "end", "", "end separator for delimited mode (default from config)")
	cmd.Flags().BoolVar(&flags.skipFirstLine, "skip-first-line", true, "drop the rest of the start separator's line (e.g. a fence tag)")
	cmd.Flags().Bool("no-skip-first-line", false, "keep the rest of the start separator's line")
	cmd.Flags().BoolVarP(&flags.all, "all", "a", false, "list every fenced code block")
	cmd.Flags().BoolVar(&flags.copy, "copy", false, "copy the extracted code to the clipboard")
	cmd.Flags().BoolVar(&flags.render, "render", false, "pretty-print the code as highlighted markdown")
	cmd.Flags().StringVar(&flags.save, "save", "", "write the extracted code to this file")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the block(s) as JSON")
	cmd.MarkFlagsMutuallyExclusive("skip-first-line", "no-skip-first-line")
	cmd.MarkFlagsMutuallyExclusive("all", "copy")
	cmd.MarkFlagsMutuallyExclusive("all", "save")

	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		modes := extract.Modes()
		out := make([]string, len(modes))
		for i, m := range modes {
			out[i] = m.String()
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runExtract(cmd *cobra.Command, app *App, root *rootFlags, flags *extractFlags, src inputSource) error {
	if flags.mode != "" {
		if valid, errs := extract.Mode(flags.mode).IsValid(); !valid {
			return errs[0]
		}
	}

	s, err := app.open(cmd, root)
	if err != nil {
		return err
	}
	defer s.Close()

	in, err := app.readInput(src)
	if err != nil {
		return err
	}

	if flags.all {
		blocks := extract.ExtractAll(in.text)
		s.log.Info("extract", "origin", in.origin, "mode", "all", "blocks", len(blocks))
		if len(blocks) == 0 {
			fmt.Fprintln(app.stderr, WarningStyle.Render("No fenced code blocks in "+in.origin))
			return &ExitError{Code: int(runtime.ExitUsage)}
		}
		return app.printBlocks(blocks, flags)
	}

	opts := extractOptions(cmd, s, flags)
	block := extract.Extract(in.text, opts)
	s.log.Info("extract", "origin", in.origin, "mode", opts.Mode, "provenance", block.Provenance, "bytes", len(block.Text))
	if block.IsEmpty() {
		fmt.Fprintln(app.stderr, WarningStyle.Render("No code found in "+in.origin))
		return &ExitError{Code: int(runtime.ExitUsage)}
	}

	if flags.save != "" {
		if err := store.Save(flags.save, block.Text); err != nil {
			return saveError(flags.save, err)
		}
		if s.verbose {
			fmt.Fprintln(app.stderr, VerboseStyle.Render("Saved to ")+VerboseHighlightStyle.Render(flags.save))
		}
	}
	if flags.copy {
		if err := app.Clipboard.WriteAll(block.Text); err != nil {
			return clipboardError("copy code to the clipboard", err)
		}
		fmt.Fprintln(app.stderr, SuccessStyle.Render("✓ ")+fmt.Sprintf("Copied %d line(s) to the clipboard", lineCount(block.Text)))
	}

	if s.verbose {
		fmt.Fprintln(app.stderr, VerboseStyle.Render(fmt.Sprintf("Extracted %d line(s) from %s (%s)",
			lineCount(block.Text), in.origin, block.Provenance)))
	}
	return app.printBlocks([]extract.Block{block}, flags)
}

// extractOptions layers explicit flags over the configured extract section.
func extractOptions(cmd *cobra.Command, s *session, flags *extractFlags) extract.Options {
	opts := s.cfg.Extract.Options()
	if flags.mode != "" {
		opts.Mode = extract.Mode(flags.mode)
	}
	if flags.start != "" {
		opts.StartSep = flags.start
	}
	if flags.end != "" {
		opts.EndSep = flags.end
	}
	switch {
	case cmd.Flags().Changed("no-skip-first-line"):
		opts.SkipFirstLine = false
	case cmd.Flags().Changed("skip-first-line"):
		opts.SkipFirstLine = flags.skipFirstLine
	}
	return opts
}

// printBlocks writes blocks to stdout as raw text, JSON or rendered markdown.
// Raw text of a single block is printed exactly as extracted.
func (a *App) printBlocks(blocks []extract.Block, flags *extractFlags) error {
	switch {
	case flags.json:
		var v any = blocks
		if !flags.all {
			v = blocks[0]
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, string(data))
		return nil

	case flags.render:
		var md strings.Builder
		for _, b := range blocks {
			md.WriteString("```" + b.Tag + "\n" + strings.TrimRight(b.Text, "\n") + "\n```\n\n")
		}
		out, err := glamour.Render(md.String(), glamourStyle(isTerminal(a.stdout)))
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		fmt.Fprint(a.stdout, out)
		return nil

	case len(blocks) == 1 && !flags.all:
		fmt.Fprint(a.stdout, blocks[0].Text)
		return nil
	}

	for i, b := range blocks {
		header := fmt.Sprintf("# block %d", i+1)
		if b.Tag != "" {
			header += " (" + b.Tag + ")"
		}
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}
		fmt.Fprintln(a.stdout, SubtitleStyle.Render(header))
		fmt.Fprint(a.stdout, b.Text)
		if !strings.HasSuffix(b.Text, "\n") {
			fmt.Fprintln(a.stdout)
		}
	}
	return nil
}
