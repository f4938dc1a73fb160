// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package runner

import (
	"os"

	"github.com/ycecilia/mtGasp/pkg/types"
)

func signalExitCode(*os.ProcessState) types.ExitCode {
	return types.ExitFailure
}

// Windows cannot deliver os.Interrupt to a child, so cancellation kills it.
func interrupt(p *os.Process) error {
	if p == nil {
		return os.ErrProcessDone
	}
	return p.Kill()
}
