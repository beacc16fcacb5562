// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type (
	// executeOutput holds the writers a child process writes to.
	executeOutput struct {
		stdout io.Writer
		stderr io.Writer
	}

	// capturedOutput holds the buffers behind a capturing executeOutput.
	capturedOutput struct {
		stdout bytes.Buffer
		stderr bytes.Buffer
	}
)

// newCapturingOutput creates an output configuration that captures to internal
// buffers, and the holder to read them back from.
func newCapturingOutput() (*executeOutput, *capturedOutput) {
	captured := &capturedOutput{}
	return &executeOutput{
		stdout: &captured.stdout,
		stderr: &captured.stderr,
	}, captured
}

func (c *capturedOutput) result() ProcessResult {
	return ProcessResult{
		Stdout: bytes.Clone(c.stdout.Bytes()),
		Stderr: bytes.Clone(c.stderr.Bytes()),
	}
}

// decodeOutput converts child output to a string, replacing every byte that is
// not valid UTF-8 with U+FFFD. It never fails.
func decodeOutput(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), b)
	if err != nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return string(out)
}
