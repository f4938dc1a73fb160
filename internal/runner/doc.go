// SPDX-License-Identifier: MPL-2.0

// Package runner executes a resolved invocation as a child process and maps
// its termination to an exit code mtgasp can propagate.
//
// The child inherits the parent's standard streams and environment. Nothing is
// captured or rewritten, so snakemake progress output reaches the terminal
// exactly as it would when the workflow is run by hand.
package runner
