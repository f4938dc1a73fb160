// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/ycecilia/mtGasp/internal/assembly"
	"github.com/ycecilia/mtGasp/internal/config"
	"github.com/ycecilia/mtGasp/internal/invocation"
	"github.com/ycecilia/mtGasp/internal/issue"
	"github.com/ycecilia/mtGasp/pkg/types"
)

// runPipeline resolves the invocation for p and runs it. The child's exit
// code becomes the exit code of mtgasp.
func runPipeline(ctx context.Context, app *App, opts *rootOptions, p assembly.Params) error {
	inv, cfg, err := resolveInvocation(ctx, app, opts, p)
	if err != nil {
		return err
	}

	app.Logger.Debug("running pipeline", "mode", inv.Mode, "workflow_dir", inv.WorkflowDir)
	app.Logger.Debug("command", "line", inv.String())

	result := app.Runner.Run(ctx, inv)
	if result.Error != nil {
		if errors.Is(result.Error, exec.ErrNotFound) {
			renderIssue(app.stderr, cfg, issue.ProgramNotFoundId)
		}
		return &ExitError{Code: result.ExitCode, Err: result.Error}
	}

	if !result.ExitCode.IsSuccess() {
		app.Logger.Debug("pipeline exited with an error", "exit_code", result.ExitCode)
		if app.verbose {
			renderIssue(app.stderr, cfg, issue.PipelineFailedId)
		}
		return &ExitError{Code: result.ExitCode}
	}

	return nil
}

// resolveInvocation loads the configuration, optionally validates p and
// builds the invocation. Every failure here happens before a process is
// started and exits with code 1.
func resolveInvocation(ctx context.Context, app *App, opts *rootOptions, p assembly.Params) (*invocation.Invocation, *config.Config, error) {
	cfg := loadRunConfig(ctx, app, opts)

	if opts.strict || cfg.Validation.Strict {
		if err := p.Validate(); err != nil {
			renderIssue(app.stderr, cfg, issue.InvalidParametersId)
			return nil, cfg, &ExitError{
				Code: types.ExitFailure,
				Err: issue.NewErrorContext().
					WithOperation("validate assembly parameters").
					WithSuggestion("Fix the values above or run without --strict").
					Wrap(err).
					BuildError(),
			}
		}
	}

	builder := invocation.NewBuilder(invocation.OptionsFromConfig(cfg, app.Locator))
	inv, err := builder.Build(ctx, p)
	if err != nil {
		if errors.Is(err, invocation.ErrResourceNotFound) {
			renderIssue(app.stderr, cfg, issue.WorkflowNotFoundId)
		}
		return nil, cfg, &ExitError{Code: types.ExitFailure, Err: err}
	}

	return inv, cfg, nil
}

// loadRunConfig loads the configuration for a run. A config that fails to
// load is reported as a warning and the defaults are used.
func loadRunConfig(ctx context.Context, app *App, opts *rootOptions) *config.Config {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, opts.verbose))
		cfg = nil
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	app.setVerbose(opts.verbose || cfg.UI.Verbose)
	return cfg
}

// renderIssue prints a catalog entry with the configured glamour style.
func renderIssue(w io.Writer, cfg *config.Config, id issue.Id) {
	style := config.ColorSchemeAuto.GlamourStyle()
	if cfg != nil {
		style = cfg.UI.ColorScheme.GlamourStyle()
	}

	rendered, err := issue.Get(id).Render(style)
	if err != nil {
		return
	}
	fmt.Fprint(w, rendered)
}
