// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/polyrun/polyrun/internal/issue"
	"github.com/polyrun/polyrun/internal/runtime"
)

func TestIssueFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		res  runtime.ExecutionResult
		want issue.Id
	}{
		{runtime.ExecutionResult{Outcome: runtime.OutcomeEmptyInput}, issue.EmptyInputId},
		{runtime.ExecutionResult{Outcome: runtime.OutcomeUnsupportedLanguage}, issue.UnsupportedLanguageId},
		{runtime.ExecutionResult{Outcome: runtime.OutcomeToolchainMissing}, issue.ToolchainMissingId},
		{runtime.ExecutionResult{Outcome: runtime.OutcomeCompileFailed}, issue.CompileFailedId},
		{runtime.ExecutionResult{Outcome: runtime.OutcomeRuntimeFailed}, issue.RuntimeFailedId},
		{runtime.ExecutionResult{Outcome: runtime.OutcomeRuntimeFailed, TimedOut: true}, issue.TimedOutId},
		{runtime.ExecutionResult{Outcome: runtime.OutcomeLaunchFailed}, issue.LaunchFailedId},
	}
	for _, tt := range tests {
		got := issueFor(tt.res)
		if got == nil || got.Id() != tt.want {
			t.Errorf("issueFor(%s) = %v, want id %d", tt.res.Outcome, got, tt.want)
		}
	}

	if issueFor(runtime.ExecutionResult{Outcome: runtime.OutcomeSuccess}) != nil {
		t.Error("success has no remedy")
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain")
	if got := formatErrorForDisplay(plain, false); got != "plain" {
		t.Errorf("plain error = %q", got)
	}

	ae := issue.NewErrorContext().
		WithOperation("save").
		WithResource("out.json").
		WithSuggestion("Check permissions").
		Wrap(errors.New("denied")).
		BuildError()
	got := formatErrorForDisplay(ae, false)
	if !strings.Contains(got, "failed to save: out.json: denied") || !strings.Contains(got, "Check permissions") {
		t.Errorf("actionable error = %q", got)
	}
}

func TestVerboseRunRendersRemedy(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, testConfig(), "")
	ta.launcher.handle = func(req runtime.ProcessRequest) (runtime.ProcessResult, error) {
		if isProbe(req) {
			return runtime.ProcessResult{}, nil
		}
		return runtime.ProcessResult{ExitCode: 1, Stderr: []byte("SyntaxError")}, nil
	}
	if code := ta.run(t, "--verbose", "run", "-c", "x("); code != 1 {
		t.Fatalf("exit code = %d", code)
	}

	var want bytes.Buffer
	renderRemedy(&want, issue.Get(issue.RuntimeFailedId), false)
	if !strings.Contains(ta.stderr.String(), strings.TrimSpace(want.String())) {
		t.Errorf("stderr should contain the rendered remedy:\n%s", ta.stderr)
	}
	if !strings.Contains(ta.stderr.String(), "Running as") {
		t.Error("verbose run should announce the language")
	}
}

func TestGlamourStyle(t *testing.T) {
	t.Parallel()

	if got := glamourStyle(false); got != glamourStyleNoTTY {
		t.Errorf("glamourStyle(false) = %q", got)
	}
	if got := glamourStyle(true); got != glamourStyleDark && got != glamourStyleLight {
		t.Errorf("glamourStyle(true) = %q", got)
	}
}
