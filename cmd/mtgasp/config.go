// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ycecilia/mtGasp/internal/config"
	"github.com/ycecilia/mtGasp/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `mtgasp config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mtgasp configuration",
		Long: `Manage mtgasp configuration.

The configuration only affects how the pipeline is launched (which
snakemake, extra engine arguments, validation). Assembly parameters are
always given as flags.

Configuration is stored in:
  - Linux: ~/.config/mtgasp/config.cue
  - macOS: ~/Library/Application Support/mtgasp/config.cue
  - Windows: %APPDATA%\mtgasp\config.cue

Every key can be overridden with an MTGASP_* environment variable,
for example MTGASP_ENGINE_BINARY or MTGASP_VALIDATION_STRICT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, opts)
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpConfig(cmd.Context(), app, opts, config.Format(format))
		},
	}
	dumpCmd.Flags().StringVarP(&format, "format", "f", string(config.FormatCUE), "output format ("+formatNames()+")")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

// loadConfigWithPath loads the configuration and, when the provider can
// tell, the file it came from.
func loadConfigWithPath(ctx context.Context, app *App, opts *rootOptions) (*config.Config, string, error) {
	loadOpts := config.LoadOptions{ConfigFilePath: opts.configPath}
	if p, ok := app.Config.(config.FileInfoProvider); ok {
		return p.LoadWithPath(ctx, loadOpts)
	}
	cfg, err := app.Config.Load(ctx, loadOpts)
	return cfg, opts.configPath, err
}

func showConfig(ctx context.Context, app *App, opts *rootOptions) error {
	cfg, path, err := loadConfigWithPath(ctx, app, opts)
	if err != nil {
		renderIssue(app.stderr, nil, issue.ConfigLoadFailedId)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("engine"))
	fmt.Fprintf(w, "  binary: %s\n", valueStyle.Render(cfg.Engine.Binary))
	if len(cfg.Engine.ExtraArgs) == 0 {
		fmt.Fprintf(w, "  extra_args: %s\n", SubtitleStyle.Render("(none)"))
	} else {
		fmt.Fprintf(w, "  extra_args: %s\n", valueStyle.Render(strings.Join(cfg.Engine.ExtraArgs, " ")))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("workflow"))
	fmt.Fprintf(w, "  file: %s\n", valueStyle.Render(cfg.Workflow.File))
	fmt.Fprintf(w, "  subsample_script: %s\n", valueStyle.Render(cfg.Workflow.SubsampleScript))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("validation"))
	fmt.Fprintf(w, "  strict: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Validation.Strict)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func showConfigPath(app *App, opts *rootOptions) error {
	if opts.configPath != "" {
		fmt.Fprintf(app.stdout, "Config file: %s\n", opts.configPath)
		return nil
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)
	return nil
}

func initConfig(app *App, opts *rootOptions) error {
	path, created, err := config.CreateDefaultConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func dumpConfig(ctx context.Context, app *App, opts *rootOptions, format config.Format) error {
	if err := format.Validate(); err != nil {
		return err
	}

	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		return err
	}

	data, err := config.Render(cfg, format)
	if err != nil {
		return fmt.Errorf("failed to render config as %s: %w", format, err)
	}

	_, err = app.stdout.Write(data)
	return err
}

// formatNames lists the dump formats for help text.
func formatNames() string {
	formats := config.Formats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
