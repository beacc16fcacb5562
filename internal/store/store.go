// SPDX-License-Identifier: MPL-2.0

// Package store writes code and execution results to disk.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/polyrun/polyrun/internal/runtime"
	"github.com/polyrun/polyrun/internal/toolchain"

	"github.com/pelletier/go-toml/v2"
)

const (
	// FormatText writes only the captured stdout.
	FormatText Format = "text"
	// FormatJSON writes the whole result as indented JSON.
	FormatJSON Format = "json"
	// FormatTOML writes the whole result as TOML.
	FormatTOML Format = "toml"

	defaultBaseName = "code_generated"
)

// ErrSave is the sentinel error wrapped by SaveError.
var ErrSave = errors.New("save failed")

type (
	// Format is an on-disk result encoding.
	Format string

	// SaveError reports a failed write. It wraps ErrSave and the I/O cause.
	SaveError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

// Unwrap returns both ErrSave and the underlying cause.
func (e *SaveError) Unwrap() []error { return []error{ErrSave, e.Err} }

// Save writes content to path, creating parent directories.
func Save(path, content string) error {
	if strings.TrimSpace(path) == "" {
		return &SaveError{Path: path, Err: errors.New("empty path")}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &SaveError{Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	return nil
}

// DefaultCodeFilename returns "code_generated" plus the language's first file
// extension, or ".txt" when the language has none.
func DefaultCodeFilename(spec toolchain.Spec) string {
	if len(spec.Extensions) == 0 {
		return defaultBaseName + ".txt"
	}
	return defaultBaseName + spec.Extensions[0]
}

// FormatForPath picks a result format from the file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

// Encode renders res in format f.
func Encode(res runtime.ExecutionResult, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatTOML:
		return toml.Marshal(res)
	default:
		return []byte(res.Stdout), nil
	}
}

// SaveResult writes res to path in the format implied by its extension.
func SaveResult(path string, res runtime.ExecutionResult) error {
	data, err := Encode(res, FormatForPath(path))
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	return Save(path, string(data))
}
