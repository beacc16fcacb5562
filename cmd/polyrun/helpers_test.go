// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/polyrun/polyrun/internal/config"
	"github.com/polyrun/polyrun/internal/runtime"
)

type (
	// staticConfig returns a fixed configuration.
	staticConfig struct {
		cfg *config.Config
		err error
	}

	// fakeLauncher records requests and answers them with handle. Without a
	// handler, probes succeed and every other step echoes its last argument.
	fakeLauncher struct {
		mu     sync.Mutex
		calls  [][]string
		handle func(req runtime.ProcessRequest) (runtime.ProcessResult, error)
	}

	memClipboard struct {
		text string
		err  error
	}

	testApp struct {
		app      *App
		stdout   *bytes.Buffer
		stderr   *bytes.Buffer
		launcher *fakeLauncher
		clip     *memClipboard
	}
)

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	cfg := *s.cfg
	return &cfg, nil
}

func (f *fakeLauncher) Launch(_ context.Context, req runtime.ProcessRequest) (runtime.ProcessResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, slices.Clone(req.Argv))
	f.mu.Unlock()
	if f.handle != nil {
		return f.handle(req)
	}
	if isProbe(req) {
		return runtime.ProcessResult{}, nil
	}
	return runtime.ProcessResult{Stdout: []byte(req.Argv[len(req.Argv)-1])}, nil
}

func (f *fakeLauncher) requests() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (c *memClipboard) ReadAll() (string, error) { return c.text, c.err }

func (c *memClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func isProbe(req runtime.ProcessRequest) bool {
	return len(req.Argv) == 2 && (req.Argv[1] == "--version" || req.Argv[1] == "version")
}

// testConfig is the default configuration with logging disabled.
func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.LogFile = ""
	return cfg
}

// newTestApp builds an App around in-memory streams, a fake launcher and a
// fake clipboard. stdin is treated as piped when non-empty.
func newTestApp(t *testing.T, cfg *config.Config, stdin string) *testApp {
	t.Helper()

	ta := &testApp{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		launcher: &fakeLauncher{},
		clip:     &memClipboard{},
	}
	app, err := NewApp(Dependencies{
		Config:          staticConfig{cfg: cfg},
		Clipboard:       ta.clip,
		Launcher:        ta.launcher,
		Stdin:           strings.NewReader(stdin),
		Stdout:          ta.stdout,
		Stderr:          ta.stderr,
		StdinIsTerminal: func() bool { return stdin == "" },
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	ta.app = app
	return ta
}

// run executes the command tree with args and returns the exit code the
// process would report.
func (ta *testApp) run(t *testing.T, args ...string) int {
	t.Helper()

	root := NewRootCommand(ta.app)
	root.SetArgs(args)
	root.SetOut(ta.stdout)
	root.SetErr(ta.stderr)
	err := root.ExecuteContext(t.Context())
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	ta.stderr.WriteString(err.Error())
	return 1
}
