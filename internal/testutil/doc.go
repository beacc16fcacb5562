// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on setup errors,
// so call sites stay free of error-handling boilerplate.
package testutil
