// SPDX-License-Identifier: MPL-2.0

// Package extract pulls a candidate code fragment out of mixed prose and code.
//
// Two strategies are offered. Delimited extraction cuts the text between explicit
// start and end markers (a markdown fence by default). Heuristic extraction splits
// the text into blank-line separated paragraphs, keeps those where most lines look
// like code, and returns the longest merged candidate. Neither strategy fails: a
// text without markers is returned unchanged, and a text without code-like
// paragraphs yields an empty result.
package extract
