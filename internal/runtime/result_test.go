// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"strings"
	"testing"
)

func TestExecutionResult_Diagnostic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result ExecutionResult
		want   string
	}{
		{"success is empty", ExecutionResult{Outcome: OutcomeSuccess, Stderr: "warning"}, ""},
		{"empty input", ExecutionResult{Outcome: OutcomeEmptyInput}, "no code to run"},
		{"unsupported", ExecutionResult{Outcome: OutcomeUnsupportedLanguage, Language: "cobol"}, `unsupported language "cobol"`},
		{"missing toolchain", ExecutionResult{Outcome: OutcomeToolchainMissing, Language: "go"}, "toolchain not found for go"},
		{"compile stderr", ExecutionResult{Outcome: OutcomeCompileFailed, Stderr: "  main.c:1: error\n"}, "main.c:1: error"},
		{"compile no stderr", ExecutionResult{Outcome: OutcomeCompileFailed, ExitCode: 1}, "compilation failed with exit code 1"},
		{"runtime stderr", ExecutionResult{Outcome: OutcomeRuntimeFailed, Stderr: "Traceback\n", ExitCode: 1}, "Traceback"},
		{"runtime no stderr", ExecutionResult{Outcome: OutcomeRuntimeFailed, ExitCode: 3}, "process exited with code 3"},
		{"launch failed", ExecutionResult{Outcome: OutcomeLaunchFailed}, "failed to start process"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.result.Diagnostic(); got != tt.want {
				t.Errorf("Diagnostic() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecutionResult_DiagnosticUnknownOutcome(t *testing.T) {
	t.Parallel()

	got := ExecutionResult{Outcome: Outcome("weird")}.Diagnostic()
	if !strings.Contains(got, "weird") {
		t.Errorf("Diagnostic() = %q, want it to name the outcome", got)
	}
}

func TestExecutionResult_Success(t *testing.T) {
	t.Parallel()

	if !(ExecutionResult{Outcome: OutcomeSuccess}).Success() {
		t.Error("Success() = false for OutcomeSuccess")
	}
	if (ExecutionResult{Outcome: OutcomeRuntimeFailed}).Success() {
		t.Error("Success() = true for OutcomeRuntimeFailed")
	}
}

func TestOutcomeIsValid(t *testing.T) {
	t.Parallel()

	valid, errs := Outcome("exploded").IsValid()
	if valid || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidOutcome) {
		t.Errorf("IsValid() = %v, %v", valid, errs)
	}
	if ok, _ := OutcomeLaunchFailed.IsValid(); !ok {
		t.Error("OutcomeLaunchFailed.IsValid() = false")
	}
}
