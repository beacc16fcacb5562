// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"time"
)

type (
	// ProcessRequest describes one child process.
	ProcessRequest struct {
		// Argv is the program followed by its arguments. It must not be empty.
		Argv []string
		// Stdin is written to the child's standard input; nil means no input.
		Stdin []byte
		// Dir is the working directory; empty inherits the caller's.
		Dir string
		// Timeout bounds the whole process; zero means no bound beyond ctx.
		Timeout time.Duration
	}

	// ProcessResult is the captured outcome of a child process that started.
	ProcessResult struct {
		Stdout   []byte
		Stderr   []byte
		ExitCode ExitCode
		// TimedOut is set when Timeout expired and the process tree was killed.
		TimedOut bool
		// Canceled is set when the caller's context ended first.
		Canceled bool
		Duration time.Duration
	}

	// Launcher starts child processes. A non-nil error means the process could
	// not be started at all (binary missing, permission denied); a process that
	// ran and failed is reported through ProcessResult.
	Launcher interface {
		Launch(ctx context.Context, req ProcessRequest) (ProcessResult, error)
	}

	// Logger receives one entry per significant step. Implementations must be
	// safe for concurrent use and must not fail the caller.
	Logger interface {
		Info(msg string, keyvals ...any)
		Error(msg string, keyvals ...any)
	}

	nopLogger struct{}
)

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
