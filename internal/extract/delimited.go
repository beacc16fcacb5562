// SPDX-License-Identifier: MPL-2.0

package extract

import "strings"

// ExtractDelimited returns the text between the first startSep and the next
// endSep after it. When either separator is missing from text, text is returned
// unchanged: such input is taken to be code already.
func ExtractDelimited(text, startSep, endSep string, skipFirstLine bool) string {
	return Delimited(text, startSep, endSep, skipFirstLine).Text
}

// Delimited is ExtractDelimited with provenance.
//
// After the start separator, a single line break is consumed. With skipFirstLine,
// everything up to and including the next newline is dropped instead, which removes
// an info string such as "python" after an opening fence. When no end separator
// follows, the block runs to the end of text.
func Delimited(text, startSep, endSep string, skipFirstLine bool) Block {
	if startSep == "" {
		startSep = DefaultSeparator
	}
	if endSep == "" {
		endSep = DefaultSeparator
	}

	open := strings.Index(text, startSep)
	if open < 0 || !strings.Contains(text, endSep) {
		return Block{Text: text, Provenance: ProvenanceVerbatim}
	}

	start := open + len(startSep)
	tag := ""
	if skipFirstLine {
		nl := strings.IndexByte(text[start:], '\n')
		if nl < 0 {
			return Block{Text: "", Provenance: ProvenanceDelimited, Tag: strings.TrimSpace(text[start:])}
		}
		tag = strings.TrimSpace(text[start : start+nl])
		start += nl + 1
	} else {
		switch {
		case strings.HasPrefix(text[start:], "\r\n"):
			start += 2
		case strings.HasPrefix(text[start:], "\n"):
			start++
		}
	}

	rest := text[start:]
	if end := strings.Index(rest, endSep); end >= 0 {
		rest = rest[:end]
	}
	return Block{Text: rest, Provenance: ProvenanceDelimited, Tag: tag}
}
