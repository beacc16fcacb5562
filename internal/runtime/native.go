// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// defaultWaitDelay bounds how long Wait blocks on output pipes held open by
// orphaned grandchildren after the process tree was killed.
const defaultWaitDelay = 2 * time.Second

// ErrEmptyArgv is returned by Launch when the request has no program.
var ErrEmptyArgv = errors.New("empty argv")

// OSLauncher launches real host processes.
type OSLauncher struct {
	// WaitDelay overrides defaultWaitDelay when positive.
	WaitDelay time.Duration
}

// NewOSLauncher creates a launcher for host processes.
func NewOSLauncher() *OSLauncher {
	return &OSLauncher{}
}

// Launch runs req to completion and captures both output streams. On timeout or
// cancellation the child's whole process group is killed.
func (l *OSLauncher) Launch(ctx context.Context, req ProcessRequest) (ProcessResult, error) {
	if len(req.Argv) == 0 {
		return ProcessResult{}, ErrEmptyArgv
	}

	runCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, req.Argv[0], req.Argv[1:]...)
	cmd.Dir = req.Dir
	if req.Stdin != nil {
		cmd.Stdin = bytes.NewReader(req.Stdin)
	}
	out, captured := newCapturingOutput()
	cmd.Stdout = out.stdout
	cmd.Stderr = out.stderr
	cmd.WaitDelay = defaultWaitDelay
	if l.WaitDelay > 0 {
		cmd.WaitDelay = l.WaitDelay
	}
	killProcessTreeOnCancel(cmd)

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if cmd.Process == nil {
		return ProcessResult{}, fmt.Errorf("start %s: %w", req.Argv[0], err)
	}

	res := captured.result()
	res.Duration = elapsed
	res.ExitCode = exitCodeOf(err)
	if err != nil && runCtx.Err() != nil {
		if ctx.Err() != nil {
			res.Canceled = true
		} else {
			res.TimedOut = true
			res.ExitCode = ExitTimeout
		}
	}
	return res, nil
}
