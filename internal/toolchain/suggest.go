// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"github.com/sahilm/fuzzy"
	"golang.org/x/exp/slices"
)

const maxSuggestions = 3

// Suggest returns up to three known identifiers that fuzzy-match id, resolved
// to canonical languages and deduplicated.
func (r *Registry) Suggest(id string) []string {
	pattern := Normalize(id)
	if pattern == "" {
		return nil
	}
	var out []string
	for _, m := range fuzzy.Find(pattern, r.identifiers()) {
		name := m.Str
		if lang, ok := r.aliases[name]; ok {
			name = string(lang)
		}
		if slices.Contains(out, name) {
			continue
		}
		out = append(out, name)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
