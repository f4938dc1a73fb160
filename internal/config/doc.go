// SPDX-License-Identifier: MPL-2.0

// Package config handles mtgasp's application configuration using Viper with
// CUE as the file format.
//
// Configuration is loaded from ~/.config/mtgasp/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/mtgasp/config.cue on
// macOS, %APPDATA%\mtgasp\config.cue on Windows), falling back to
// ./config.cue. MTGASP_* environment variables override file values
// (MTGASP_ENGINE_BINARY, MTGASP_VALIDATION_STRICT, ...).
//
// The configuration never carries assembly parameters; those always come from
// the command line. It selects the programs mtgasp runs and how it behaves.
package config
