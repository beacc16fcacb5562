// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the operation, resource and suggestions for a
// failure. The catalog in issue.go holds longer Markdown remedies, one per
// failure class, rendered with glamour in verbose mode.
package issue
