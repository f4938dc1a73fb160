// SPDX-License-Identifier: MPL-2.0

// Package invocation turns assembly parameters into the single external
// process mtgasp runs.
//
// A Builder locates the workflow file on the executable search path, picks
// one of four modes (dry run, unlock, no-subsample, subsampled) and produces
// an Invocation: a program name and a discrete argument list. No shell
// string is ever built, so paths with spaces reach the child intact.
package invocation
