// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/polyrun/polyrun/internal/toolchain"
)

// DefaultTimeout bounds every child process of a Run call.
const DefaultTimeout = 30 * time.Second

type (
	// Dispatcher runs code through the toolchain of its language. It holds no
	// per-call state and is safe for concurrent use.
	Dispatcher struct {
		registry     *toolchain.Registry
		launcher     Launcher
		logger       Logger
		timeout      time.Duration
		probeTimeout time.Duration
		tempDir      string
		checker      *Checker
	}

	// Option configures a Dispatcher.
	Option func(*Dispatcher)

	// step is one child process of a run.
	step struct {
		name string
		req  ProcessRequest
	}
)

// WithRegistry sets the toolchain registry (default toolchain.Default()).
func WithRegistry(r *toolchain.Registry) Option {
	return func(d *Dispatcher) { d.registry = r }
}

// WithLauncher sets the process launcher (default an OSLauncher).
func WithLauncher(l Launcher) Option {
	return func(d *Dispatcher) { d.launcher = l }
}

// WithLogger sets the log sink (default discards).
func WithLogger(l Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithTimeout sets the per-process timeout (default DefaultTimeout).
func WithTimeout(t time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = t }
}

// WithProbeTimeout sets the probe timeout (default DefaultProbeTimeout).
func WithProbeTimeout(t time.Duration) Option {
	return func(d *Dispatcher) { d.probeTimeout = t }
}

// WithTempDir sets the parent of per-run work directories (default os.TempDir()).
func WithTempDir(dir string) Option {
	return func(d *Dispatcher) { d.tempDir = dir }
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		timeout:      DefaultTimeout,
		probeTimeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.registry == nil {
		d.registry = toolchain.Default()
	}
	if d.launcher == nil {
		d.launcher = NewOSLauncher()
	}
	if d.logger == nil {
		d.logger = nopLogger{}
	}
	if d.timeout <= 0 {
		d.timeout = DefaultTimeout
	}
	d.checker = NewChecker(d.launcher, d.probeTimeout, d.logger)
	return d
}

// Registry returns the dispatcher's toolchain registry.
func (d *Dispatcher) Registry() *toolchain.Registry { return d.registry }

// Checker returns the dispatcher's availability checker.
func (d *Dispatcher) Checker() *Checker { return d.checker }

// Timeout returns the per-process timeout.
func (d *Dispatcher) Timeout() time.Duration { return d.timeout }

// CheckToolchain resolves language and runs its probe. Unknown languages report false.
func (d *Dispatcher) CheckToolchain(ctx context.Context, language string) bool {
	spec, err := d.registry.Lookup(language)
	if err != nil {
		d.logger.Error("probe", "language", language, "error", err)
		return false
	}
	return d.checker.Verify(ctx, spec)
}

// Run executes code as language and classifies the outcome. It never returns a
// Go error: every failure mode is an Outcome with a diagnostic.
//
// For compiled toolchains the run step is launched only after the compile step
// exited with status 0.
func (d *Dispatcher) Run(ctx context.Context, code, language string) ExecutionResult {
	start := time.Now()
	res := d.run(ctx, code, language)
	res.DurationMs = time.Since(start).Milliseconds()

	keyvals := []any{"language", res.Language, "outcome", res.Outcome, "exit_code", res.ExitCode, "duration_ms", res.DurationMs}
	if res.Success() {
		d.logger.Info("run", keyvals...)
	} else {
		d.logger.Error("run", append(keyvals, "diagnostic", firstLine(res.Diagnostic()))...)
	}
	return res
}

func (d *Dispatcher) run(ctx context.Context, code, language string) ExecutionResult {
	res := ExecutionResult{Language: toolchain.Language(toolchain.Normalize(language))}

	if strings.TrimSpace(code) == "" {
		res.Outcome = OutcomeEmptyInput
		return res
	}

	spec, err := d.registry.Lookup(language)
	if err != nil {
		res.Outcome = OutcomeUnsupportedLanguage
		return res
	}
	res.Language = spec.Language

	if !d.checker.Verify(ctx, spec) {
		res.Outcome = OutcomeToolchainMissing
		res.ExitCode = ExitNotFound
		return res
	}

	ws, err := newWorkspace(d.tempDir, spec, code)
	if err != nil {
		res.Outcome = OutcomeLaunchFailed
		res.ExitCode = ExitFailure
		res.Stderr = err.Error()
		return res
	}
	defer ws.remove()

	vars := ws.vars(spec, code)
	var stdin []byte
	if spec.Delivery == toolchain.DeliveryStdin {
		stdin = []byte(code)
	}

	if spec.IsCompiled() {
		compile := step{name: "compile", req: ProcessRequest{
			Argv:    toolchain.Expand(spec.Compile, vars),
			Stdin:   stdin,
			Dir:     ws.dir,
			Timeout: d.timeout,
		}}
		pr, ok := d.launch(ctx, spec, compile, &res)
		if !ok {
			return res
		}
		if !pr.ExitCode.IsSuccess() || pr.TimedOut || pr.Canceled {
			d.fill(&res, pr, OutcomeCompileFailed)
			return res
		}
		d.logger.Info("compile", "language", spec.Language, "exit_code", pr.ExitCode)
		stdin = nil
	}

	run := step{name: "run", req: ProcessRequest{
		Argv:    toolchain.Expand(spec.Run, vars),
		Stdin:   stdin,
		Dir:     ws.dir,
		Timeout: d.timeout,
	}}
	pr, ok := d.launch(ctx, spec, run, &res)
	if !ok {
		return res
	}
	outcome := OutcomeSuccess
	if !pr.ExitCode.IsSuccess() || pr.TimedOut || pr.Canceled {
		outcome = OutcomeRuntimeFailed
	}
	d.fill(&res, pr, outcome)
	return res
}

// launch runs one step. It reports false, with res filled as LaunchFailed, when
// the process could not be started.
func (d *Dispatcher) launch(ctx context.Context, spec toolchain.Spec, s step, res *ExecutionResult) (ProcessResult, bool) {
	pr, err := d.launcher.Launch(ctx, s.req)
	if err != nil {
		d.logger.Error(s.name+" launch failed", "language", spec.Language, "argv0", s.req.Argv[0], "error", err)
		res.Outcome = OutcomeLaunchFailed
		res.ExitCode = ExitFailure
		res.Stderr = err.Error()
		return pr, false
	}
	return pr, true
}

// fill copies a process result into res. A timeout or cancellation overrides
// outcome with RuntimeFailed and appends a diagnostic line to stderr.
func (d *Dispatcher) fill(res *ExecutionResult, pr ProcessResult, outcome Outcome) {
	res.Stdout = decodeOutput(pr.Stdout)
	res.Stderr = decodeOutput(pr.Stderr)
	res.ExitCode = pr.ExitCode
	res.TimedOut = pr.TimedOut
	res.Outcome = outcome

	var note string
	switch {
	case pr.TimedOut:
		note = fmt.Sprintf("polyrun: process timed out after %v", d.timeout)
	case pr.Canceled:
		note = "polyrun: process canceled"
	default:
		return
	}
	res.Outcome = OutcomeRuntimeFailed
	if res.Stderr != "" && !strings.HasSuffix(res.Stderr, "\n") {
		res.Stderr += "\n"
	}
	res.Stderr += note
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
