// SPDX-License-Identifier: MPL-2.0

package invocation

import "github.com/ycecilia/mtGasp/internal/assembly"

const (
	// ModeDryRun asks the workflow engine for its plan (-np) without running jobs.
	ModeDryRun Mode = "dry-run"
	// ModeUnlock releases the engine's lock on the output directory.
	ModeUnlock Mode = "unlock"
	// ModeNoSubsample runs the workflow on the full read set.
	ModeNoSubsample Mode = "no-subsample"
	// ModeSubsample subsamples the reads with the companion script, which then
	// runs the workflow. This is the default.
	ModeSubsample Mode = "subsample"
)

// Mode is the execution mode of one run.
type Mode string

// SelectMode picks the mode for p. Flags are not combinable; the first set
// flag in the order dry run, unlock, no-subsample wins.
func SelectMode(p assembly.Params) Mode {
	switch {
	case p.DryRun:
		return ModeDryRun
	case p.Unlock:
		return ModeUnlock
	case p.NoSubsample:
		return ModeNoSubsample
	default:
		return ModeSubsample
	}
}

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// UsesEngine reports whether the mode calls the workflow engine directly.
func (m Mode) UsesEngine() bool { return m != ModeSubsample }
