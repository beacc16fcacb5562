// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"sync"
)

var defaultDispatcher = sync.OnceValue(func() *Dispatcher { return NewDispatcher() })

// CheckToolchain reports whether the toolchain for language is installed, using
// the built-in registry and host processes.
func CheckToolchain(ctx context.Context, language string) bool {
	return defaultDispatcher().CheckToolchain(ctx, language)
}

// RunCode runs code with the built-in registry, host processes and the default
// timeout.
func RunCode(ctx context.Context, code, language string) ExecutionResult {
	return defaultDispatcher().Run(ctx, code, language)
}
