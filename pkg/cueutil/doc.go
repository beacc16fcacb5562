// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds the CUE plumbing shared by file-backed settings:
// compiling an embedded schema, unifying user data against one of its
// definitions, and reporting failures with JSON-style field paths.
//
//	//go:embed config_schema.cue
//	var schema string
//
//	values, err := cueutil.DecodeToMap(schema, "#Config", data, "config.cue")
package cueutil
