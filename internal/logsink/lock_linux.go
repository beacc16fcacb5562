// SPDX-License-Identifier: MPL-2.0

//go:build linux

package logsink

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockFile returns a function that takes an exclusive flock on f for the
// duration of one append. The kernel releases it if the process dies.
func lockFile(f *os.File) func() (unlock func()) {
	fd := int(f.Fd())
	return func() func() {
		if err := unix.Flock(fd, unix.LOCK_EX); err != nil {
			return func() {}
		}
		return func() { _ = unix.Flock(fd, unix.LOCK_UN) }
	}
}
