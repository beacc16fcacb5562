// SPDX-License-Identifier: MPL-2.0

package extract

const (
	// ModeAuto uses delimited extraction when separators are present and the
	// heuristic otherwise, falling back to the verbatim text when it finds nothing.
	ModeAuto Mode = "auto"
	// ModeDelimited always uses delimited extraction.
	ModeDelimited Mode = "delimited"
	// ModeHeuristic always uses heuristic extraction.
	ModeHeuristic Mode = "heuristic"
	// ModeNone returns the input unchanged.
	ModeNone Mode = "none"
)

type (
	// Mode selects an extraction strategy.
	Mode string

	// Options parameterize Extract.
	Options struct {
		Mode          Mode
		StartSep      string
		EndSep        string
		SkipFirstLine bool
	}
)

// String returns the string representation of the Mode.
func (m Mode) String() string { return string(m) }

// IsValid returns whether the Mode is one of the defined modes,
// and a list of validation errors if it is not.
func (m Mode) IsValid() (bool, []error) {
	switch m {
	case ModeAuto, ModeDelimited, ModeHeuristic, ModeNone:
		return true, nil
	default:
		return false, []error{&InvalidModeError{Value: m}}
	}
}

// Modes returns all valid modes.
func Modes() []Mode {
	return []Mode{ModeAuto, ModeDelimited, ModeHeuristic, ModeNone}
}

// Extract applies the strategy selected by opts. An empty or unknown mode
// behaves like ModeAuto.
func Extract(text string, opts Options) Block {
	switch opts.Mode {
	case ModeNone:
		return Block{Text: text, Provenance: ProvenanceVerbatim}
	case ModeDelimited:
		return Delimited(text, opts.StartSep, opts.EndSep, opts.SkipFirstLine)
	case ModeHeuristic:
		return Heuristic(text)
	}

	if b := Delimited(text, opts.StartSep, opts.EndSep, opts.SkipFirstLine); b.Provenance == ProvenanceDelimited {
		return b
	}
	if b := Heuristic(text); !b.IsEmpty() {
		return b
	}
	return Block{Text: text, Provenance: ProvenanceVerbatim}
}
