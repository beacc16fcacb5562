// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
)

const (
	// OutcomeSuccess means the final step exited with status 0.
	OutcomeSuccess Outcome = "success"
	// OutcomeCompileFailed means the compile step exited non-zero; the run step never started.
	OutcomeCompileFailed Outcome = "compile-failed"
	// OutcomeRuntimeFailed means a step exited non-zero, timed out or was canceled.
	OutcomeRuntimeFailed Outcome = "runtime-failed"
	// OutcomeToolchainMissing means the toolchain probe did not succeed.
	OutcomeToolchainMissing Outcome = "toolchain-missing"
	// OutcomeUnsupportedLanguage means the language is not in the registry.
	OutcomeUnsupportedLanguage Outcome = "unsupported-language"
	// OutcomeEmptyInput means the code was empty or whitespace-only.
	OutcomeEmptyInput Outcome = "empty-input"
	// OutcomeLaunchFailed means the probe passed but a step could not be started.
	OutcomeLaunchFailed Outcome = "launch-failed"
)

// ErrInvalidOutcome is returned when an Outcome value is not recognized.
var ErrInvalidOutcome = errors.New("invalid outcome")

type (
	// Outcome classifies an ExecutionResult.
	Outcome string

	// InvalidOutcomeError is returned when an Outcome value is not recognized.
	// It wraps ErrInvalidOutcome for errors.Is() compatibility.
	InvalidOutcomeError struct {
		Value Outcome
	}
)

// String returns the string representation of the Outcome.
func (o Outcome) String() string { return string(o) }

// IsValid returns whether the Outcome is one of the defined outcomes,
// and a list of validation errors if it is not.
func (o Outcome) IsValid() (bool, []error) {
	switch o {
	case OutcomeSuccess, OutcomeCompileFailed, OutcomeRuntimeFailed, OutcomeToolchainMissing,
		OutcomeUnsupportedLanguage, OutcomeEmptyInput, OutcomeLaunchFailed:
		return true, nil
	default:
		return false, []error{&InvalidOutcomeError{Value: o}}
	}
}

// ProcessRan reports whether the outcome implies at least one code step ran,
// so Stdout and Stderr are meaningful.
func (o Outcome) ProcessRan() bool {
	return o == OutcomeSuccess || o == OutcomeCompileFailed || o == OutcomeRuntimeFailed
}

// Error implements the error interface for InvalidOutcomeError.
func (e *InvalidOutcomeError) Error() string {
	return fmt.Sprintf("invalid outcome %q", e.Value)
}

// Unwrap returns ErrInvalidOutcome for errors.Is() compatibility.
func (e *InvalidOutcomeError) Unwrap() error { return ErrInvalidOutcome }
