// SPDX-License-Identifier: MPL-2.0

//go:build unix

package runtime

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestOSLauncherCapturesStreamsSeparately(t *testing.T) {
	t.Parallel()
	requireSh(t)

	res, err := NewOSLauncher().Launch(t.Context(), ProcessRequest{
		Argv: []string{"sh", "-c", "echo out; echo err >&2; exit 3"},
	})
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if string(res.Stdout) != "out\n" || string(res.Stderr) != "err\n" {
		t.Errorf("Stdout = %q, Stderr = %q", res.Stdout, res.Stderr)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.TimedOut || res.Canceled {
		t.Errorf("TimedOut = %v, Canceled = %v", res.TimedOut, res.Canceled)
	}
}

func TestOSLauncherFeedsStdinAndDir(t *testing.T) {
	t.Parallel()
	requireSh(t)

	dir := t.TempDir()
	res, err := NewOSLauncher().Launch(t.Context(), ProcessRequest{
		Argv:  []string{"sh", "-c", "cat; pwd"},
		Stdin: []byte("from stdin\n"),
		Dir:   dir,
	})
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if !strings.HasPrefix(string(res.Stdout), "from stdin\n") {
		t.Errorf("Stdout = %q", res.Stdout)
	}
	if !strings.Contains(string(res.Stdout), dir[strings.LastIndex(dir, "/")+1:]) {
		t.Errorf("Stdout = %q, want working directory %s", res.Stdout, dir)
	}
}

func TestOSLauncherStartFailure(t *testing.T) {
	t.Parallel()

	_, err := NewOSLauncher().Launch(t.Context(), ProcessRequest{Argv: []string{"polyrun-no-such-binary-xyz"}})
	if err == nil {
		t.Fatal("Launch() error = nil, want start failure")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("Launch() error = %v, want exec.ErrNotFound", err)
	}

	if _, err := NewOSLauncher().Launch(t.Context(), ProcessRequest{}); !errors.Is(err, ErrEmptyArgv) {
		t.Errorf("Launch(empty) error = %v, want ErrEmptyArgv", err)
	}
}

func TestOSLauncherTimeoutKillsProcessTree(t *testing.T) {
	t.Parallel()
	requireSh(t)
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}

	start := time.Now()
	res, err := (&OSLauncher{WaitDelay: 500 * time.Millisecond}).Launch(t.Context(), ProcessRequest{
		// The grandchild sleep holds stdout open; only a group kill ends it promptly.
		Argv:    []string{"sh", "-c", "sleep 30 & sleep 30; wait"},
		Timeout: 200 * time.Millisecond,
	})
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if !res.TimedOut {
		t.Error("TimedOut = false, want true")
	}
	if res.ExitCode != ExitTimeout {
		t.Errorf("ExitCode = %d, want %d", res.ExitCode, ExitTimeout)
	}
	if elapsed > 5*time.Second {
		t.Errorf("Launch() took %v, want prompt termination", elapsed)
	}
}

func TestOSLauncherCancellation(t *testing.T) {
	t.Parallel()
	requireSh(t)

	ctx, cancel := contextWithCancelAfter(t, 100*time.Millisecond)
	defer cancel()

	res, err := NewOSLauncher().Launch(ctx, ProcessRequest{Argv: []string{"sh", "-c", "sleep 30"}})
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if !res.Canceled || res.TimedOut {
		t.Errorf("Canceled = %v, TimedOut = %v; want canceled only", res.Canceled, res.TimedOut)
	}
}

func TestDecodeOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("plain"), "plain"},
		{[]byte("héllo"), "héllo"},
		{[]byte{0xff, 'x', 0xfe}, "�x�"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := decodeOutput(tt.in); got != tt.want {
			t.Errorf("decodeOutput(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
