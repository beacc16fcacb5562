// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"strings"

	"github.com/polyrun/polyrun/internal/toolchain"
)

// ExecutionResult is the per-call value returned by Dispatcher.Run. It is owned
// by the caller.
type ExecutionResult struct {
	Language toolchain.Language `json:"language" toml:"language"`
	Outcome  Outcome            `json:"outcome" toml:"outcome"`
	Stdout   string             `json:"stdout" toml:"stdout"`
	Stderr   string             `json:"stderr" toml:"stderr"`
	// ExitCode is the exit status of the last step that ran.
	ExitCode   ExitCode `json:"exit_code" toml:"exit_code"`
	TimedOut   bool     `json:"timed_out" toml:"timed_out"`
	DurationMs int64    `json:"duration_ms" toml:"duration_ms"`
}

// Success reports whether the code ran to completion with status 0.
func (r ExecutionResult) Success() bool {
	return r.Outcome == OutcomeSuccess
}

// Diagnostic returns a human-readable explanation of a non-successful outcome.
// For compile and runtime failures it is the captured stderr; otherwise it is a
// fixed message. It returns "" on success.
func (r ExecutionResult) Diagnostic() string {
	stderr := strings.TrimSpace(r.Stderr)
	switch r.Outcome {
	case OutcomeSuccess:
		return ""
	case OutcomeEmptyInput:
		return "no code to run"
	case OutcomeUnsupportedLanguage:
		return fmt.Sprintf("unsupported language %q", r.Language)
	case OutcomeToolchainMissing:
		return fmt.Sprintf("toolchain not found for %s", r.Language)
	case OutcomeCompileFailed:
		if stderr != "" {
			return stderr
		}
		return fmt.Sprintf("compilation failed with exit code %d", r.ExitCode)
	case OutcomeRuntimeFailed:
		if stderr != "" {
			return stderr
		}
		return fmt.Sprintf("process exited with code %d", r.ExitCode)
	case OutcomeLaunchFailed:
		if stderr != "" {
			return stderr
		}
		return "failed to start process"
	default:
		return fmt.Sprintf("unknown outcome %q", r.Outcome)
	}
}
