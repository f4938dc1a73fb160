// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ycecilia/mtGasp/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootOptions holds the global flags.
type rootOptions struct {
	verbose    bool
	configPath string
	strict     bool
}

// NewRootCommand builds the mtgasp command tree on top of app.
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}
	flags := &runFlags{}

	root := &cobra.Command{
		Use:   "mtgasp",
		Short: "Mitochondrial genome assembly from short reads",
		Long: TitleStyle.Render("mtgasp") + SubtitleStyle.Render(" - Mitochondrial genome assembly from short reads") + `

mtgasp runs the mtGasp Snakemake workflow (mtgasp.smk, found on PATH).
By default the reads are first subsampled with sub_then_run_mtgasp.sh.

` + SubtitleStyle.Render("Modes (the first one set wins):") + `
  --dry_run       snakemake -np, list the jobs without running them
  --unlock        snakemake --unlock, release a stale working directory lock
  --nosubsample   snakemake --cores N -p -k on the full read set
  (default)       sub_then_run_mtgasp.sh, subsample then assemble

` + SubtitleStyle.Render("Examples:") + `
  mtgasp -r1 S.R1.fq.gz -r2 S.R2.fq.gz -o out -m 2 -r ref.fa
  mtgasp -r1 S.R1.fq.gz -r2 S.R2.fq.gz -o out -m 2 -r ref.fa -n
  mtgasp plan -r1 S.R1.fq.gz -r2 S.R2.fq.gz -o out -m 2 -r ref.fa
  mtgasp config show`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd.Context(), app, opts, flags.params())
		},
	}

	root.SetGlobalNormalizationFunc(normalizeFlagName)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	root.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "enable verbose output")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/mtgasp/config.cue)")
	root.PersistentFlags().BoolVar(&opts.strict, "strict", false, "check parameter ranges before running anything")

	flags.register(root)

	root.AddCommand(newPlanCommand(app, opts))
	root.AddCommand(newConfigCommand(app, opts))

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the command tree with os.Args and exits with the exit code of
// the pipeline. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	root := NewRootCommand(app)
	root.SetArgs(rewriteLegacyArgs(os.Args[1:]))

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(newErrorHandler(app)),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// newErrorHandler prints actionable errors with their suggestions and leaves
// everything else to fang. A bare ExitError means the child process already
// reported its failure, so nothing is printed.
func newErrorHandler(app *App) func(io.Writer, fang.Styles, error) {
	return func(w io.Writer, styles fang.Styles, err error) {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Err == nil {
			return
		}

		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(app.verbose))
			return
		}

		fang.DefaultErrorHandler(w, styles, err)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
