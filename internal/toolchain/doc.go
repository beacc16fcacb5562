// SPDX-License-Identifier: MPL-2.0

// Package toolchain holds the closed set of language toolchains polyrun can drive.
//
// Each Spec is pure data: a probe argv, a protocol (interpreted or compiled-then-run)
// and argv templates for one or two execution steps. Adding a language is a table
// edit in builtin.go, not new control flow.
package toolchain
