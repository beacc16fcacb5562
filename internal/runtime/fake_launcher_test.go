// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"slices"
	"sync"
)

// fakeLauncher records every request and answers through handle. A nil handle
// answers every request with exit status 0 and no output.
type fakeLauncher struct {
	mu     sync.Mutex
	calls  []ProcessRequest
	handle func(req ProcessRequest) (ProcessResult, error)
}

func (f *fakeLauncher) Launch(_ context.Context, req ProcessRequest) (ProcessResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, ProcessRequest{
		Argv:    slices.Clone(req.Argv),
		Stdin:   slices.Clone(req.Stdin),
		Dir:     req.Dir,
		Timeout: req.Timeout,
	})
	f.mu.Unlock()
	if f.handle == nil {
		return ProcessResult{}, nil
	}
	return f.handle(req)
}

func (f *fakeLauncher) requests() []ProcessRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// isProbe reports whether req is a "--version" or "version" style probe.
func isProbe(req ProcessRequest) bool {
	return len(req.Argv) == 2 && (req.Argv[1] == "--version" || req.Argv[1] == "version")
}

// recordingLogger keeps log entries for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) Info(msg string, _ ...any)  { l.add("info " + msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.add("error " + msg) }

func (l *recordingLogger) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

func (l *recordingLogger) has(e string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Contains(l.entries, e)
}
