// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for the user. The Issue catalog holds longer Markdown help for
// the failures users hit most often (missing workflow file, missing programs,
// broken configuration), rendered with glamour.
package issue
