// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"errors"
	"fmt"
)

const (
	// ProvenanceDelimited marks text cut between explicit separators.
	ProvenanceDelimited Provenance = "delimited"
	// ProvenanceHeuristicMerged marks text assembled from code-like paragraphs.
	ProvenanceHeuristicMerged Provenance = "heuristic-merged"
	// ProvenanceVerbatim marks input returned unchanged because no separators were found.
	ProvenanceVerbatim Provenance = "verbatim"

	// DefaultSeparator is the markdown code fence.
	DefaultSeparator = "```"
)

// ErrInvalidMode is returned when a Mode value is not recognized.
var ErrInvalidMode = errors.New("invalid extract mode")

type (
	// Provenance records which strategy produced a Block.
	Provenance string

	// Block is an extracted substring together with how it was obtained.
	Block struct {
		Text       string     `json:"text"`
		Provenance Provenance `json:"provenance"`
		// Tag is the fence info string (e.g. "python") when known.
		Tag string `json:"tag,omitempty"`
	}

	// InvalidModeError is returned when a Mode value is not recognized.
	InvalidModeError struct {
		Value Mode
	}
)

// String returns the string representation of the Provenance.
func (p Provenance) String() string { return string(p) }

// IsEmpty reports whether the block holds only whitespace.
func (b Block) IsEmpty() bool {
	for _, r := range b.Text {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
		default:
			return false
		}
	}
	return true
}

// Error implements the error interface for InvalidModeError.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid extract mode %q (valid: auto, delimited, heuristic, none)", e.Value)
}

// Unwrap returns ErrInvalidMode for errors.Is() compatibility.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }
