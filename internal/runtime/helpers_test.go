// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"testing"
	"time"
)

// contextWithCancelAfter returns a test-scoped context canceled after d.
func contextWithCancelAfter(t *testing.T, d time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(t.Context())
	timer := time.AfterFunc(d, cancel)
	return ctx, func() {
		timer.Stop()
		cancel()
	}
}
