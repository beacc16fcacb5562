// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/polyrun/polyrun/internal/issue"
	"github.com/polyrun/polyrun/internal/testutil"
)

func TestReadInputSources(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snippet.py")
	testutil.MustWriteFile(t, path, "print(3)")

	ta := newTestApp(t, testConfig(), "from stdin")
	ta.clip.text = "from clipboard"

	tests := []struct {
		name       string
		src        inputSource
		wantText   string
		wantOrigin string
	}{
		{"code", inputSource{code: "x"}, "x", originArgument},
		{"file", inputSource{file: path}, "print(3)", path},
		{"clipboard", inputSource{clipboard: true}, "from clipboard", originClipboard},
		{"dash is stdin", inputSource{file: stdinPath}, "from stdin", originStdin},
	}
	for _, tt := range tests {
		in, err := ta.app.readInput(tt.src)
		if err != nil {
			t.Fatalf("%s: readInput() error = %v", tt.name, err)
		}
		if in.text != tt.wantText || in.origin != tt.wantOrigin {
			t.Errorf("%s: got (%q, %q), want (%q, %q)", tt.name, in.text, in.origin, tt.wantText, tt.wantOrigin)
		}
	}
}

func TestReadInputErrors(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, testConfig(), "")

	if _, err := ta.app.readInput(inputSource{code: "x", file: "a.py"}); !errors.Is(err, errConflictingInput) {
		t.Errorf("conflict: err = %v", err)
	}
	if _, err := ta.app.readInput(inputSource{}); !errors.Is(err, errNoInput) {
		t.Errorf("terminal stdin: err = %v", err)
	}

	var ae *issue.ActionableError
	if _, err := ta.app.readInput(inputSource{file: filepath.Join(t.TempDir(), "missing.py")}); !errors.As(err, &ae) {
		t.Errorf("missing file: err = %v, want an ActionableError", err)
	}

	ta.clip.err = errClipboardUnsupported
	_, err := ta.app.readInput(inputSource{clipboard: true})
	if !errors.As(err, &ae) || ae.Issue != issue.ClipboardUnavailableId || !errors.Is(err, errClipboardUnsupported) {
		t.Errorf("clipboard: err = %v", err)
	}
}

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	for path, want := range map[string]bool{
		"README.md":      true,
		"notes.MARKDOWN": true,
		"main.go":        false,
		"":               false,
	} {
		if got := isMarkdown(path); got != want {
			t.Errorf("isMarkdown(%q) = %v, want %v", path, got, want)
		}
	}
}
