// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/ycecilia/mtGasp/internal/invocation"

	"github.com/spf13/cobra"
)

// newPlanCommand creates `mtgasp plan`, which resolves the pipeline command
// exactly like a run and prints it instead of executing it.
func newPlanCommand(app *App, opts *rootOptions) *cobra.Command {
	flags := &runFlags{}
	var quiet bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the pipeline command without running it",
		Long: `Print the command mtgasp would run for the given flags.

The workflow file is still looked up on PATH, so plan fails wherever a run
would fail before starting the pipeline. Use --dry_run to ask Snakemake for
its own job plan instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inv, _, err := resolveInvocation(cmd.Context(), app, opts, flags.params())
			if err != nil {
				return err
			}

			if quiet {
				fmt.Fprintln(app.stdout, inv.String())
				return nil
			}
			renderPlan(app.stdout, inv)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the command line")

	return cmd
}

// renderPlan prints the resolved invocation with its mode and workflow.
func renderPlan(w io.Writer, inv *invocation.Invocation) {
	fmt.Fprintln(w, TitleStyle.Render("Plan"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Mode:"), inv.Mode)
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Workflow:"), inv.WorkflowPath)
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Program:"), inv.Program)

	fmt.Fprintln(w)
	fmt.Fprintln(w, VerboseHighlightStyle.Render("  Command:"))
	fmt.Fprintf(w, "    %s\n", inv.String())
	fmt.Fprintln(w)
}
