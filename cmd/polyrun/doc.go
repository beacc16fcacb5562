// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the polyrun command tree.
//
// Every command is built from an App, which owns the configuration provider,
// the process launcher, the clipboard and the standard streams. Handlers open
// a session per invocation (effective config, toolchain registry, log sink)
// and delegate the actual work to internal/runtime and internal/extract.
package cmd
