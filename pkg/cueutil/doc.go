// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE parsing helpers used to read mtgasp's
// configuration file.
//
// Parsing follows three steps:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with a schema definition
//  3. Validate, then decode into a Go value
//
// Errors are reported as "<file>: <json-path>: <message>" so users can find
// the offending field.
package cueutil
