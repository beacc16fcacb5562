// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/polyrun/polyrun/internal/issue"
)

const (
	originArgument  = "argument"
	originStdin     = "stdin"
	originClipboard = "clipboard"

	// stdinPath selects standard input where a FILE is expected.
	stdinPath = "-"
)

var (
	errClipboardUnsupported = errors.New("clipboard is not supported on this system")
	errNoInput              = errors.New("no input: pass a FILE, use --code or --clipboard, or pipe text on stdin")
	errConflictingInput     = errors.New("use only one of FILE, --code and --clipboard")
)

type (
	// inputSource selects where command input comes from. At most one field
	// may be set; when none is, piped stdin is read.
	inputSource struct {
		file      string
		code      string
		clipboard bool
	}

	// input is text read from an inputSource.
	input struct {
		text string
		// origin names the source for messages: a file path, "argument",
		// "stdin" or "clipboard".
		origin string
		// file is the path the text was read from, when it came from a file.
		file string
	}
)

// readInput resolves src to text.
func (a *App) readInput(src inputSource) (input, error) {
	set := 0
	for _, ok := range []bool{src.file != "", src.code != "", src.clipboard} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return input{}, errConflictingInput
	}

	switch {
	case src.code != "":
		return input{text: src.code, origin: originArgument}, nil
	case src.clipboard:
		text, err := a.Clipboard.ReadAll()
		if err != nil {
			return input{}, clipboardError("read code from the clipboard", err)
		}
		return input{text: text, origin: originClipboard}, nil
	case src.file == stdinPath:
		return a.readStdin()
	case src.file != "":
		data, err := os.ReadFile(src.file)
		if err != nil {
			return input{}, issue.NewErrorContext().
				WithOperation("read input").
				WithResource(src.file).
				WithSuggestion("Check that the file exists and is readable").
				Wrap(err).
				BuildError()
		}
		return input{text: string(data), origin: src.file, file: src.file}, nil
	}

	if a.stdinIsTerminal() {
		return input{}, errNoInput
	}
	return a.readStdin()
}

func (a *App) readStdin() (input, error) {
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return input{}, fmt.Errorf("read stdin: %w", err)
	}
	return input{text: string(data), origin: originStdin}, nil
}

// isMarkdown reports whether path names a markdown document, whose code has
// to be extracted before it can run.
func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return true
	}
	return false
}

func clipboardError(operation string, err error) error {
	return issue.NewErrorContext().
		WithOperation(operation).
		WithResource(originClipboard).
		WithSuggestion("On Linux, install xclip, xsel or wl-clipboard").
		WithSuggestion("Pass the code as a FILE or pipe it on stdin instead").
		WithIssue(issue.ClipboardUnavailableId).
		Wrap(err).
		BuildError()
}
