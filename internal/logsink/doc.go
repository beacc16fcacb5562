// SPDX-License-Identifier: MPL-2.0

// Package logsink provides the append-only, timestamped log polyrun writes one
// entry to per significant step (probe, compile, run, extraction).
//
// A Sink never fails its caller: write errors are swallowed. On Linux each entry
// is appended under an advisory flock so concurrent polyrun processes sharing a
// log file never interleave partial lines.
package logsink
