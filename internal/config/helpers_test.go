// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"testing"
)

func contextCanceled(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	return ctx, cancel
}
