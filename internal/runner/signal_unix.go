// SPDX-License-Identifier: MPL-2.0

//go:build unix

package runner

import (
	"os"
	"syscall"

	"github.com/ycecilia/mtGasp/pkg/types"
)

// signalExitCode follows the shell convention of 128 plus the signal number.
func signalExitCode(state *os.ProcessState) types.ExitCode {
	if state == nil {
		return types.ExitFailure
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return types.ExitCode(128 + int(ws.Signal()))
	}
	return types.ExitFailure
}

func interrupt(p *os.Process) error {
	if p == nil {
		return os.ErrProcessDone
	}
	return p.Signal(os.Interrupt)
}
