// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/polyrun/polyrun/internal/toolchain"
)

func TestLanguagesTable(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, testConfig(), "")
	if code := ta.run(t, "languages"); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, ta.stderr)
	}
	out := ta.stdout.String()
	for _, want := range []string{"python", "c++", "compiled-then-run", "kotlinc"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestLanguagesAppliesOverrides(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Toolchains = map[string]toolchain.Override{
		"python": {Probe: "python3 --version", Run: "python3 -c {code}"},
	}

	ta := newTestApp(t, cfg, "")
	if code := ta.run(t, "languages", "--json"); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, ta.stderr)
	}
	var specs []toolchain.Spec
	if err := json.Unmarshal(ta.stdout.Bytes(), &specs); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	for _, s := range specs {
		if s.Language == toolchain.Python && s.Run[0] != "python3" {
			t.Errorf("python run = %v, want the override", s.Run)
		}
	}
}

func TestLanguagesRejectsUnknownOverride(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Toolchains = map[string]toolchain.Override{"cobol": {Run: "cobc -x {source}"}}

	ta := newTestApp(t, cfg, "")
	if code := ta.run(t, "languages"); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(ta.stderr.String(), "apply toolchain overrides") {
		t.Errorf("stderr = %s", ta.stderr)
	}
}

func TestShellJoin(t *testing.T) {
	t.Parallel()

	if got, want := shellJoin([]string{"node", "-e", "console.log(1 + 1)"}), `node -e 'console.log(1 + 1)'`; got != want {
		t.Errorf("shellJoin() = %s, want %s", got, want)
	}
}
