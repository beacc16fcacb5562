// SPDX-License-Identifier: MPL-2.0

package extract

import "testing"

func TestExtractHeuristic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "prose then code keeps code only",
			text: "Here is a small function that returns one.\n\ndef f():\n    return 1\n",
			want: "def f():\n    return 1",
		},
		{
			name: "pure prose yields nothing",
			text: "The quick brown fox.\nJumps over the lazy dog.\n\nSome more words here.",
			want: "",
		},
		{
			name: "empty input yields nothing",
			text: "",
			want: "",
		},
		{
			name: "code paragraphs separated by prose are merged",
			text: "import os\nprint(os.name)\n\nThat prints the platform.\n\nfor i in range(3):\n    print(i)",
			want: "import os\nprint(os.name)\nfor i in range(3):\n    print(i)",
		},
		{
			name: "backticks are stripped",
			text: "Run this:\n\n```\nprint('hi')\n```",
			want: "print('hi')",
		},
		{
			name: "half code is not enough",
			text: "import os\nplain words",
			want: "",
		},
		{
			name: "operator-leading lines count",
			text: "{\n  \"a\": 1\n}",
			want: "{\n  \"a\": 1\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractHeuristic(tt.text)
			if got != tt.want {
				t.Errorf("ExtractHeuristic() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsCodeLine(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"import sys":         true,
		"    return x":       true,
		"format(x)":          true,
		"= 3":                true,
		"]":                  true,
		"Hello world":        false,
		"":                   false,
		"   ":                false,
		"Import capitalised": false,
	}
	for line, want := range tests {
		if got := IsCodeLine(line); got != want {
			t.Errorf("IsCodeLine(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestHeuristicProvenance(t *testing.T) {
	t.Parallel()

	if b := Heuristic("just words"); b.Provenance != ProvenanceHeuristicMerged || b.Text != "" {
		t.Errorf("Heuristic() = %+v", b)
	}
}
