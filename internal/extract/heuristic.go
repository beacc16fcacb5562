// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"regexp"
	"strings"
)

var (
	// paragraphBreak splits on a newline, any run of whitespace, and another newline.
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)

	// codeLine is a prefix match: "format(x)" counts because it starts with "for".
	codeLine = regexp.MustCompile(`^\s*(import|from|def|class|if|elif|else|for|while|try|except|with|async|await|pass|break|continue|return|raise|yield|print|assert|global|open|del|lambda|and|or|not|=|\(|\)|\[|\]|\{|\}|:)`)
)

// ExtractHeuristic returns the longest run of code-like paragraphs in text,
// trimmed, or "" when no paragraph looks like code.
func ExtractHeuristic(text string) string {
	return Heuristic(text).Text
}

// Heuristic is ExtractHeuristic with provenance. The result is always tagged
// ProvenanceHeuristicMerged, including the empty "no code found" result.
func Heuristic(text string) Block {
	text = strings.ReplaceAll(text, "`", "")
	paragraphs := paragraphBreak.Split(strings.TrimSpace(text), -1)

	var code []string
	for _, p := range paragraphs {
		if IsCodeParagraph(p) {
			code = append(code, p)
		}
	}

	var (
		candidates []string
		run        []string
	)
	for _, p := range code {
		if len(run) > 0 && p != "" {
			run = append(run, p)
			continue
		}
		if len(run) > 0 {
			candidates = append(candidates, strings.Join(run, "\n"))
			run = nil
		}
		run = append(run, p)
	}
	if len(run) > 0 {
		candidates = append(candidates, strings.Join(run, "\n"))
	}

	longest := ""
	for _, c := range candidates {
		if len(c) > len(longest) {
			longest = c
		}
	}
	return Block{Text: strings.TrimSpace(longest), Provenance: ProvenanceHeuristicMerged}
}

// IsCodeLine reports whether line starts, after indentation, with a keyword or
// an operator token from the fixed code-likeness set.
func IsCodeLine(line string) bool {
	return codeLine.MatchString(line)
}

// IsCodeParagraph reports whether strictly more than half of the paragraph's
// lines are code-like. Blank lines count toward the total.
func IsCodeParagraph(paragraph string) bool {
	lines := strings.Split(paragraph, "\n")
	n := 0
	for _, line := range lines {
		if IsCodeLine(line) {
			n++
		}
	}
	return 2*n > len(lines)
}
