// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package runtime

import "os/exec"

// killProcessTreeOnCancel keeps exec's default cancellation, which kills only the
// direct child. Process groups are not available on this platform.
func killProcessTreeOnCancel(_ *exec.Cmd) {}
