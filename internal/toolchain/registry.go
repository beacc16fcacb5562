// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/exp/slices"
)

// ErrUnknownLanguage is the sentinel error wrapped by UnknownLanguageError.
var ErrUnknownLanguage = errors.New("unsupported language")

type (
	// UnknownLanguageError is returned by Lookup when no toolchain matches.
	UnknownLanguageError struct {
		Value string
		// Suggestions holds close matches, best first. It may be empty.
		Suggestions []string
	}

	// Registry is an immutable set of toolchain specs keyed by canonical language.
	// It is safe for concurrent use.
	Registry struct {
		specs   map[Language]Spec
		aliases map[string]Language
		exts    map[string]Language
	}
)

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := New(builtinSpecs()...)
	if err != nil {
		panic("toolchain: invalid built-in table: " + err.Error())
	}
	return r
})

// Error implements the error interface.
func (e *UnknownLanguageError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unsupported language %q (did you mean %s?)", e.Value, strings.Join(e.Suggestions, ", "))
	}
	return fmt.Sprintf("unsupported language %q", e.Value)
}

// Unwrap returns ErrUnknownLanguage for errors.Is() compatibility.
func (e *UnknownLanguageError) Unwrap() error { return ErrUnknownLanguage }

// Default returns the built-in registry. The same instance is returned on every call.
func Default() *Registry {
	return defaultRegistry()
}

// New builds a registry from specs. Every spec must be valid, and no language,
// alias or extension may be claimed twice.
func New(specs ...Spec) (*Registry, error) {
	r := &Registry{
		specs:   make(map[Language]Spec, len(specs)),
		aliases: make(map[string]Language),
		exts:    make(map[string]Language),
	}
	for _, spec := range specs {
		spec = spec.clone()
		spec.Language = Language(Normalize(string(spec.Language)))
		if valid, errs := spec.IsValid(); !valid {
			return nil, errors.Join(errs...)
		}
		if _, dup := r.specs[spec.Language]; dup {
			return nil, fmt.Errorf("duplicate toolchain %q", spec.Language)
		}
		r.specs[spec.Language] = spec
	}
	for lang, spec := range r.specs {
		for _, alias := range spec.Aliases {
			key := Normalize(alias)
			if _, clash := r.specs[Language(key)]; clash {
				return nil, fmt.Errorf("alias %q of %q shadows a toolchain", alias, lang)
			}
			if owner, dup := r.aliases[key]; dup && owner != lang {
				return nil, fmt.Errorf("alias %q claimed by both %q and %q", alias, owner, lang)
			}
			r.aliases[key] = lang
		}
		for _, ext := range spec.Extensions {
			key := strings.ToLower(ext)
			if owner, dup := r.exts[key]; dup && owner != lang {
				return nil, fmt.Errorf("extension %q claimed by both %q and %q", ext, owner, lang)
			}
			r.exts[key] = lang
		}
	}
	return r, nil
}

// Normalize lower-cases and trims a language identifier.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Lookup resolves a language identifier or alias, ignoring case and surrounding
// whitespace. A miss returns an *UnknownLanguageError.
func (r *Registry) Lookup(id string) (Spec, error) {
	key := Normalize(id)
	if spec, ok := r.specs[Language(key)]; ok {
		return spec.clone(), nil
	}
	if lang, ok := r.aliases[key]; ok {
		return r.specs[lang].clone(), nil
	}
	return Spec{}, &UnknownLanguageError{Value: id, Suggestions: r.Suggest(id)}
}

// Languages returns the canonical languages in sorted order.
func (r *Registry) Languages() []Language {
	out := make([]Language, 0, len(r.specs))
	for lang := range r.specs {
		out = append(out, lang)
	}
	slices.Sort(out)
	return out
}

// Specs returns copies of every spec, sorted by language.
func (r *Registry) Specs() []Spec {
	langs := r.Languages()
	out := make([]Spec, 0, len(langs))
	for _, lang := range langs {
		out = append(out, r.specs[lang].clone())
	}
	return out
}

// InferFromFilename maps a file name's extension to a language.
func (r *Registry) InferFromFilename(name string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return "", false
	}
	lang, ok := r.exts[ext]
	return lang, ok
}

// identifiers returns every canonical name and alias, sorted.
func (r *Registry) identifiers() []string {
	out := make([]string, 0, len(r.specs)+len(r.aliases))
	for lang := range r.specs {
		out = append(out, string(lang))
	}
	for alias := range r.aliases {
		out = append(out, alias)
	}
	slices.Sort(out)
	return out
}
