// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os/exec"
	"strings"
	"testing"
	"time"
)

func requireToolchain(t *testing.T, bin string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath(bin); err != nil {
		t.Skipf("%s not available", bin)
	}
}

func TestIntegrationPython(t *testing.T) {
	t.Parallel()
	requireToolchain(t, "python")

	res := NewDispatcher().Run(t.Context(), "import sys\nprint(1 + 1)\nprint('warn', file=sys.stderr)", "python")
	if res.Outcome != OutcomeSuccess {
		t.Fatalf("Outcome = %q, diagnostic %q", res.Outcome, res.Diagnostic())
	}
	if res.Stdout != "2\n" || res.Stderr != "warn\n" {
		t.Errorf("Stdout = %q, Stderr = %q", res.Stdout, res.Stderr)
	}
}

func TestIntegrationPythonTimeout(t *testing.T) {
	t.Parallel()
	requireToolchain(t, "python")

	timeout := 500 * time.Millisecond
	start := time.Now()
	res := NewDispatcher(WithTimeout(timeout)).Run(t.Context(), "import time\ntime.sleep(30)", "python")
	elapsed := time.Since(start)

	if res.Outcome != OutcomeRuntimeFailed || !res.TimedOut {
		t.Fatalf("Outcome = %q, TimedOut = %v", res.Outcome, res.TimedOut)
	}
	if !strings.Contains(res.Stderr, "timed out") {
		t.Errorf("Stderr = %q, want timeout diagnostic", res.Stderr)
	}
	// Probe time plus the run timeout plus a generous margin.
	if elapsed > DefaultProbeTimeout+timeout+5*time.Second {
		t.Errorf("Run took %v", elapsed)
	}
}

func TestIntegrationC(t *testing.T) {
	t.Parallel()
	requireToolchain(t, "gcc")

	code := "#include <stdio.h>\nint main(void) { printf(\"c ok\\n\"); return 0; }\n"
	res := NewDispatcher(WithTempDir(t.TempDir())).Run(t.Context(), code, "C")
	if res.Outcome != OutcomeSuccess {
		t.Fatalf("Outcome = %q, diagnostic %q", res.Outcome, res.Diagnostic())
	}
	if res.Stdout != "c ok\n" {
		t.Errorf("Stdout = %q", res.Stdout)
	}

	bad := NewDispatcher(WithTempDir(t.TempDir())).Run(t.Context(), "int main( {", "c")
	if bad.Outcome != OutcomeCompileFailed || bad.Stderr == "" {
		t.Errorf("Outcome = %q, Stderr = %q; want compile failure with diagnostic", bad.Outcome, bad.Stderr)
	}
}
