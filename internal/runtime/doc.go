// SPDX-License-Identifier: MPL-2.0

// Package runtime runs source code through the toolchain that owns its language.
//
// The Dispatcher resolves a language in a toolchain.Registry, asks the Checker
// whether the toolchain's probe succeeds, and then drives one child process
// (interpreted toolchains) or two (compile, then run the artifact). Every child
// process goes through a Launcher, which captures stdout and stderr separately,
// enforces a per-process timeout and kills the whole process tree on timeout or
// cancellation.
//
// Expected failures (empty input, unknown language, missing toolchain, compile or
// runtime errors, launch failures) are reported as an Outcome in ExecutionResult,
// never as a Go error.
package runtime
