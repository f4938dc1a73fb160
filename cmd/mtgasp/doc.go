// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the mtgasp command tree.
//
// The root command is the pipeline launcher itself: it takes the assembly
// flags, resolves the workflow on PATH and runs exactly one child process.
// `plan` prints that child process instead of running it, and `config`
// manages the optional configuration file.
package cmd
