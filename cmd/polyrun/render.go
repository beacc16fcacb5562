// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/polyrun/polyrun/internal/issue"
	"github.com/polyrun/polyrun/internal/runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const (
	glamourStyleDark  = "dark"
	glamourStyleLight = "light"
	glamourStyleNoTTY = "notty"
)

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// finish prints an actionable error with its suggestions, plus the catalog
// remedy in verbose mode, and turns it into a silenced exit. Other errors are
// left for fang to print.
func (a *App) finish(cmd *cobra.Command, verbose bool, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return silenceExit(cmd, err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return err
	}
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	if verbose && ae.Issue != 0 {
		renderRemedy(a.stderr, issue.Get(ae.Issue), isTerminal(a.stderr))
	}
	return silenceExit(cmd, &ExitError{Code: int(runtime.ExitFailure), Err: err})
}

// issueFor returns the remedy for a failed result, or nil on success.
func issueFor(res runtime.ExecutionResult) *issue.Issue {
	var id issue.Id
	switch res.Outcome {
	case runtime.OutcomeEmptyInput:
		id = issue.EmptyInputId
	case runtime.OutcomeUnsupportedLanguage:
		id = issue.UnsupportedLanguageId
	case runtime.OutcomeToolchainMissing:
		id = issue.ToolchainMissingId
	case runtime.OutcomeCompileFailed:
		id = issue.CompileFailedId
	case runtime.OutcomeRuntimeFailed:
		id = issue.RuntimeFailedId
		if res.TimedOut {
			id = issue.TimedOutId
		}
	case runtime.OutcomeLaunchFailed:
		id = issue.LaunchFailedId
	default:
		return nil
	}
	return issue.Get(id)
}

// outcomeHeadline is the one-line summary printed above a failure diagnostic.
func outcomeHeadline(res runtime.ExecutionResult) string {
	switch res.Outcome {
	case runtime.OutcomeEmptyInput:
		return "Nothing to run"
	case runtime.OutcomeUnsupportedLanguage:
		return fmt.Sprintf("Unsupported language %q", res.Language)
	case runtime.OutcomeToolchainMissing:
		return fmt.Sprintf("Toolchain for %s is not installed", res.Language)
	case runtime.OutcomeCompileFailed:
		return fmt.Sprintf("Compilation failed (%s)", res.Language)
	case runtime.OutcomeRuntimeFailed:
		if res.TimedOut {
			return fmt.Sprintf("Timed out (%s)", res.Language)
		}
		return fmt.Sprintf("Exited with code %d (%s)", res.ExitCode, res.Language)
	case runtime.OutcomeLaunchFailed:
		return fmt.Sprintf("Could not start the %s toolchain", res.Language)
	default:
		return res.Outcome.String()
	}
}

// renderRemedy writes the markdown remedy for iss to w. Rendering failures
// fall back to the raw markdown.
func renderRemedy(w io.Writer, iss *issue.Issue, styled bool) {
	if iss == nil {
		return
	}
	out, err := iss.Render(glamourStyle(styled))
	if err != nil {
		out = iss.Markdown()
	}
	fmt.Fprintln(w, strings.TrimRight(out, "\n"))
}

// glamourStyle picks the glamour style: plain text when the output is not a
// terminal, otherwise the style matching the terminal background.
func glamourStyle(styled bool) string {
	if !styled {
		return glamourStyleNoTTY
	}
	if lipgloss.HasDarkBackground() {
		return glamourStyleDark
	}
	return glamourStyleLight
}
