// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// Override replaces argv templates of one toolchain. Each non-empty field is a
// command line split with POSIX shell quoting rules, so `python3 -c {code}` and
// `'/opt/my python/bin/python' -c {code}` both work. Environment variables in
// the line are expanded from the current process environment.
type Override struct {
	Probe   string `json:"probe,omitempty" toml:"probe,omitempty" mapstructure:"probe"`
	Compile string `json:"compile,omitempty" toml:"compile,omitempty" mapstructure:"compile"`
	Run     string `json:"run,omitempty" toml:"run,omitempty" mapstructure:"run"`
}

// IsZero reports whether the override changes nothing.
func (o Override) IsZero() bool {
	return strings.TrimSpace(o.Probe) == "" && strings.TrimSpace(o.Compile) == "" && strings.TrimSpace(o.Run) == ""
}

// WithOverrides returns a new registry with the given overrides applied. Keys may
// be canonical names or aliases. Unknown languages and overrides that leave a spec
// invalid are errors; the receiver is never modified.
func (r *Registry) WithOverrides(overrides map[string]Override) (*Registry, error) {
	if len(overrides) == 0 {
		return r, nil
	}
	specs := make(map[Language]Spec, len(r.specs))
	for lang, spec := range r.specs {
		specs[lang] = spec.clone()
	}
	for key, o := range overrides {
		spec, err := r.Lookup(key)
		if err != nil {
			return nil, fmt.Errorf("toolchain override: %w", err)
		}
		spec = specs[spec.Language]
		if spec.Probe, err = splitOr(o.Probe, spec.Probe); err != nil {
			return nil, fmt.Errorf("toolchain override %q probe: %w", key, err)
		}
		if spec.Compile, err = splitOr(o.Compile, spec.Compile); err != nil {
			return nil, fmt.Errorf("toolchain override %q compile: %w", key, err)
		}
		if spec.Run, err = splitOr(o.Run, spec.Run); err != nil {
			return nil, fmt.Errorf("toolchain override %q run: %w", key, err)
		}
		specs[spec.Language] = spec
	}
	list := make([]Spec, 0, len(specs))
	for _, spec := range specs {
		list = append(list, spec)
	}
	return New(list...)
}

func splitOr(line string, fallback []string) ([]string, error) {
	if strings.TrimSpace(line) == "" {
		return fallback, nil
	}
	fields, err := shell.Fields(line, nil)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return fallback, nil
	}
	return fields, nil
}
