// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

func TestIsFatalFsnotifyError_InotifyExhaustion(t *testing.T) {
	t.Parallel()

	for _, errno := range []syscall.Errno{syscall.ENOSPC, syscall.EMFILE, syscall.ENFILE} {
		if !isFatalFsnotifyError(errno) {
			t.Errorf("%v should stop the watcher", errno)
		}
		if !isFatalFsnotifyError(fmt.Errorf("inotify_add_watch: %w", errno)) {
			t.Errorf("wrapped %v should stop the watcher", errno)
		}
	}
	for _, err := range []error{syscall.EACCES, syscall.ENOENT, errors.New("queue overflow")} {
		if isFatalFsnotifyError(err) {
			t.Errorf("%v should not stop the watcher", err)
		}
	}
}

func TestRun_StopsOnFatalError(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "main.py")
	if err := os.WriteFile(file, []byte("print(1)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := New(Config{
		Files:    []string{file},
		OnChange: func(context.Context, []string) error { return nil },
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	w.fsw.Errors <- syscall.ENOSPC

	select {
	case err := <-done:
		if !errors.Is(err, syscall.ENOSPC) {
			t.Errorf("Run() error = %v, want it to wrap ENOSPC", err)
		}
	case <-ctx.Done():
		t.Fatal("Run() did not stop on a fatal fsnotify error")
	}
}
