// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

// DecodeToMap validates data against the named definition in schema and
// decodes the result into a generic map. Fields may be left open
// (non-concrete) so that callers can layer defaults underneath.
func DecodeToMap(schema, definition string, data []byte, filename string) (map[string]any, error) {
	if err := CheckFileSize(data, DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	root := schemaValue.LookupPath(cue.ParsePath(definition))
	if !root.Exists() || root.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found", definition)
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, FormatError(err, filename)
	}

	var out map[string]any
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}
	return out, nil
}

// FormatSource pretty-prints CUE source the way `cue fmt` would.
func FormatSource(src []byte) ([]byte, error) {
	out, err := format.Source(src, format.Simplify())
	if err != nil {
		return nil, fmt.Errorf("format CUE source: %w", err)
	}
	return out, nil
}
