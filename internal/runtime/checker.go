// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"time"

	"github.com/polyrun/polyrun/internal/toolchain"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultProbeTimeout bounds each toolchain probe.
	DefaultProbeTimeout = 10 * time.Second

	// maxConcurrentProbes limits VerifyAll fan-out.
	maxConcurrentProbes = 4
)

type (
	// Checker runs toolchain probes.
	Checker struct {
		launcher Launcher
		timeout  time.Duration
		logger   Logger
	}

	// Availability pairs a toolchain with its probe result.
	Availability struct {
		Spec      toolchain.Spec
		Available bool
	}
)

// NewChecker creates a Checker. A non-positive timeout selects DefaultProbeTimeout
// and a nil logger discards entries.
func NewChecker(launcher Launcher, timeout time.Duration, logger Logger) *Checker {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Checker{launcher: launcher, timeout: timeout, logger: logger}
}

// Verify reports whether the spec's probe exits with status 0 within the probe
// timeout. Launch failures, timeouts and non-zero exits all report false.
func (c *Checker) Verify(ctx context.Context, spec toolchain.Spec) bool {
	res, err := c.launcher.Launch(ctx, ProcessRequest{Argv: spec.Probe, Timeout: c.timeout})
	available := err == nil && !res.TimedOut && !res.Canceled && res.ExitCode.IsSuccess()

	switch {
	case err != nil:
		c.logger.Info("probe", "language", spec.Language, "available", false, "error", err)
	case available:
		c.logger.Info("probe", "language", spec.Language, "available", true)
	default:
		c.logger.Info("probe", "language", spec.Language, "available", false,
			"exit_code", res.ExitCode, "timed_out", res.TimedOut)
	}
	return available
}

// VerifyAll probes every spec concurrently and returns the results in input order.
func (c *Checker) VerifyAll(ctx context.Context, specs []toolchain.Spec) []Availability {
	out := make([]Availability, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)
	for i, spec := range specs {
		g.Go(func() error {
			out[i] = Availability{Spec: spec, Available: c.Verify(gctx, spec)}
			return nil
		})
	}
	_ = g.Wait() // probes never return errors
	return out
}
