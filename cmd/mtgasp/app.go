// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/ycecilia/mtGasp/internal/config"
	"github.com/ycecilia/mtGasp/internal/invocation"
	"github.com/ycecilia/mtGasp/internal/runner"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: command handlers receive an App and reach the config,
	// the workflow locator and the process runner only through it.
	App struct {
		Config  ConfigProvider
		Locator invocation.Locator
		Runner  runner.Runner
		Logger  *log.Logger
		stdout  io.Writer
		stderr  io.Writer
		verbose bool
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		Locator invocation.Locator
		Runner  runner.Runner
		Logger  *log.Logger
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Logger == nil {
		deps.Logger = log.NewWithOptions(deps.Stderr, log.Options{
			Prefix: config.AppName,
			Level:  log.WarnLevel,
		})
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Locator == nil {
		deps.Locator = invocation.NewPathLocator()
	}
	if deps.Runner == nil {
		deps.Runner = runner.NewExecRunner(deps.Logger)
	}

	return &App{
		Config:  deps.Config,
		Locator: deps.Locator,
		Runner:  deps.Runner,
		Logger:  deps.Logger,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}
}

// setVerbose switches the logger between warnings only and debug output.
func (a *App) setVerbose(verbose bool) {
	a.verbose = verbose
	if verbose {
		a.Logger.SetLevel(log.DebugLevel)
		return
	}
	a.Logger.SetLevel(log.WarnLevel)
}
