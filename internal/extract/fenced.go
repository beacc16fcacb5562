// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"regexp"
	"strings"
)

// fence matches a complete markdown code fence with an optional info string.
var fence = regexp.MustCompile("(?s)```([A-Za-z0-9_+#.-]*)[ \\t]*\\r?\\n(.*?)```")

// ExtractAll returns every complete fenced block in text, in order. The Tag of
// each block is the fence info string, lower-cased; it is empty for bare fences.
func ExtractAll(text string) []Block {
	matches := fence.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	blocks := make([]Block, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, Block{
			Text:       m[2],
			Provenance: ProvenanceDelimited,
			Tag:        strings.ToLower(m[1]),
		})
	}
	return blocks
}
