// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/ycecilia/mtGasp/internal/invocation"
	"github.com/ycecilia/mtGasp/internal/issue"
	"github.com/ycecilia/mtGasp/pkg/types"

	"github.com/charmbracelet/log"
)

// DefaultWaitDelay is how long a canceled child gets to exit after the
// interrupt before it is killed.
const DefaultWaitDelay = 10 * time.Second

type (
	// Runner executes an invocation and waits for it to finish.
	Runner interface {
		Run(ctx context.Context, inv *invocation.Invocation) *Result
	}

	// Result is the outcome of one child process.
	//
	// A child that ran and exited non-zero is a normal result: ExitCode carries
	// its status and Error is nil. Error is only set when the child could not be
	// started or waited for; ExitCode is then ExitFailure.
	Result struct {
		ExitCode types.ExitCode
		Error    error
	}

	// ExecRunner runs invocations with os/exec.
	ExecRunner struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// Logger receives debug output. Nil disables logging.
		Logger *log.Logger
		// WaitDelay bounds the wait after cancellation. Zero means DefaultWaitDelay.
		WaitDelay time.Duration
	}
)

// NewExecRunner returns an ExecRunner attached to the process's own streams.
func NewExecRunner(logger *log.Logger) *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// NewErrorResult creates a Result for a child that never produced a status.
func NewErrorResult(err error) *Result {
	return &Result{ExitCode: types.ExitFailure, Error: err}
}

// NewExitCodeResult creates a Result for a child that exited with code.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success reports whether the child ran and exited zero.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}

// Run starts inv and blocks until it exits. Canceling ctx sends the child an
// interrupt; it is killed if still alive after WaitDelay.
func (r *ExecRunner) Run(ctx context.Context, inv *invocation.Invocation) *Result {
	if inv == nil || inv.Program == "" {
		return NewErrorResult(errors.New("no program to run"))
	}

	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Cancel = func() error { return interrupt(cmd.Process) }
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	if r.Logger != nil {
		r.Logger.Debug("starting child process", "mode", inv.Mode, "program", inv.Program, "args", len(inv.Args))
	}

	err := cmd.Run()
	result := extractExitCode(err)

	if result.Error != nil && cmd.Process == nil {
		result.Error = issue.NewErrorContext().
			WithOperation("start " + inv.Program).
			WithResource(inv.Program).
			WithSuggestion("Make sure " + inv.Program + " is installed and on PATH").
			WithSuggestion("Activate the environment that provides the mtGasp dependencies").
			Wrap(err).
			BuildError()
	}

	if r.Logger != nil {
		r.Logger.Debug("child process finished", "program", inv.Program, "exit_code", result.ExitCode)
	}
	return result
}

// extractExitCode maps the error from exec.Cmd.Run to a Result.
func extractExitCode(err error) *Result {
	if err == nil {
		return NewExitCodeResult(types.ExitSuccess)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := types.ExitCode(exitErr.ExitCode())
		if code < 0 {
			// Terminated by a signal.
			code = signalExitCode(exitErr.ProcessState)
		}
		if validateErr := code.Validate(); validateErr != nil {
			return NewErrorResult(validateErr)
		}
		return NewExitCodeResult(code)
	}

	return NewErrorResult(err)
}
