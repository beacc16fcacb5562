// SPDX-License-Identifier: MPL-2.0

package logsink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// Stderr is the path value that selects standard error instead of a file.
	Stderr = "-"

	prefix     = "polyrun"
	fileName   = "polyrun.log"
	timeFormat = "2006-01-02 15:04:05.000"
)

// Sink is a process-wide log handle. It is safe for concurrent use.
type Sink struct {
	logger *log.Logger
	closer io.Closer
}

// New creates a Sink that writes entries to w.
func New(w io.Writer) *Sink {
	return newSink(&bestEffortWriter{w: w}, nil)
}

// Discard returns a Sink that drops every entry.
func Discard() *Sink {
	return New(io.Discard)
}

// Open creates a Sink for path. An empty path discards entries, Stderr logs to
// standard error, and anything else is opened for appending, creating parent
// directories as needed.
func Open(path string) (*Sink, error) {
	switch path {
	case "":
		return Discard(), nil
	case Stderr:
		return New(os.Stderr), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return newSink(&bestEffortWriter{w: f, lock: lockFile(f)}, f), nil
}

// DefaultPath returns $XDG_STATE_HOME/polyrun/polyrun.log, falling back to
// ~/.local/state when XDG_STATE_HOME is unset.
func DefaultPath() (string, error) {
	return defaultPathWith(os.Getenv, os.UserHomeDir)
}

func defaultPathWith(getenv func(string) string, home func() (string, error)) (string, error) {
	dir := getenv("XDG_STATE_HOME")
	if dir == "" {
		h, err := home()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(h, ".local", "state")
	}
	return filepath.Join(dir, prefix, fileName), nil
}

func newSink(w io.Writer, closer io.Closer) *Sink {
	return &Sink{
		logger: log.NewWithOptions(w, log.Options{
			Prefix:          prefix,
			ReportTimestamp: true,
			TimeFormat:      timeFormat,
			Level:           log.InfoLevel,
			Formatter:       log.TextFormatter,
			TimeFunction:    func(t time.Time) time.Time { return t.Local() },
		}),
		closer: closer,
	}
}

// Info records a step at info severity.
func (s *Sink) Info(msg string, keyvals ...any) {
	s.logger.Info(msg, keyvals...)
}

// Error records a step at error severity.
func (s *Sink) Error(msg string, keyvals ...any) {
	s.logger.Error(msg, keyvals...)
}

// Close releases the underlying file, if any. It is safe to call more than once.
func (s *Sink) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
