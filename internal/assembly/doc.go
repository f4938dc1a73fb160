// SPDX-License-Identifier: MPL-2.0

// Package assembly defines the run configuration of a single mtGasp assembly.
//
// A Params value is built once from the command line, never mutated, and
// consumed by the invocation builder. It knows how to derive the sample
// identifiers passed to the subsampling script and how to express itself as
// the ordered key=value pairs understood by the mtgasp.smk workflow.
//
// Values are passed through as given. Range checks (k-mer below 128, false
// positive rates in (0,1), ...) are the external tools' business unless the
// caller opts in to Validate.
package assembly
