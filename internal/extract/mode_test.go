// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"errors"
	"testing"
)

func TestExtractModes(t *testing.T) {
	t.Parallel()

	fenced := "Try:\n```python\nprint(1)\n```"
	prose := "Some words.\n\nimport os\nprint(os.sep)"

	tests := []struct {
		name     string
		text     string
		opts     Options
		wantText string
		wantProv Provenance
	}{
		{"auto prefers fences", fenced, Options{Mode: ModeAuto, SkipFirstLine: true}, "print(1)\n", ProvenanceDelimited},
		{"auto falls back to heuristic", prose, Options{Mode: ModeAuto}, "import os\nprint(os.sep)", ProvenanceHeuristicMerged},
		{"auto keeps verbatim when nothing found", "just prose", Options{}, "just prose", ProvenanceVerbatim},
		{"none", fenced, Options{Mode: ModeNone}, fenced, ProvenanceVerbatim},
		{"heuristic ignores fences", fenced, Options{Mode: ModeHeuristic}, "", ProvenanceHeuristicMerged},
		{"delimited on prose is verbatim", prose, Options{Mode: ModeDelimited}, prose, ProvenanceVerbatim},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Extract(tt.text, tt.opts)
			if got.Text != tt.wantText || got.Provenance != tt.wantProv {
				t.Errorf("Extract() = %+v, want text %q provenance %q", got, tt.wantText, tt.wantProv)
			}
		})
	}
}

func TestModeIsValid(t *testing.T) {
	t.Parallel()

	for _, m := range Modes() {
		if valid, errs := m.IsValid(); !valid {
			t.Errorf("%q.IsValid() = false, %v", m, errs)
		}
	}
	valid, errs := Mode("magic").IsValid()
	if valid || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidMode) {
		t.Errorf("Mode(magic).IsValid() = %v, %v", valid, errs)
	}
}
