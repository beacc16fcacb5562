// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/polyrun/polyrun/internal/runtime"

	"github.com/spf13/cobra"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps an execution outcome to the process exit code. A runtime
// failure passes the child's own status through; a timeout or cancellation
// that left status 0 behind still exits non-zero.
func exitCodeFor(res runtime.ExecutionResult) int {
	switch res.Outcome {
	case runtime.OutcomeSuccess:
		return int(runtime.ExitSuccess)
	case runtime.OutcomeRuntimeFailed:
		switch {
		case res.TimedOut:
			return int(runtime.ExitTimeout)
		case res.ExitCode.IsSuccess():
			return int(runtime.ExitFailure)
		default:
			return int(res.ExitCode)
		}
	case runtime.OutcomeEmptyInput, runtime.OutcomeUnsupportedLanguage:
		return int(runtime.ExitUsage)
	case runtime.OutcomeToolchainMissing:
		return int(runtime.ExitNotFound)
	default:
		return int(runtime.ExitFailure)
	}
}

// silenceExit stops cobra and fang from printing err again when it only
// carries an exit code for output that was already written.
func silenceExit(cmd *cobra.Command, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
	}
	return err
}
