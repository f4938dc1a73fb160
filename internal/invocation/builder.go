// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ycecilia/mtGasp/internal/assembly"
	"github.com/ycecilia/mtGasp/internal/config"
	"github.com/ycecilia/mtGasp/internal/issue"

	"mvdan.cc/sh/v3/syntax"
)

type (
	// Options configures a Builder. Zero fields take the defaults of
	// config.DefaultConfig.
	Options struct {
		// Locator finds the workflow file. Defaults to a PathLocator.
		Locator Locator
		// EngineBinary is the workflow engine program (snakemake).
		EngineBinary string
		// EngineExtraArgs are inserted before --config in engine modes.
		EngineExtraArgs []string
		// WorkflowFile is the workflow definition to locate (mtgasp.smk).
		WorkflowFile string
		// SubsampleScript is the default-mode program (sub_then_run_mtgasp.sh).
		SubsampleScript string
	}

	// Builder produces the Invocation for a set of assembly parameters.
	Builder struct {
		opts Options
	}

	// Invocation is one fully resolved external process call.
	Invocation struct {
		// Mode is the execution mode that produced this invocation.
		Mode Mode
		// Program is the executable name or path.
		Program string
		// Args are the arguments, one token per element.
		Args []string
		// WorkflowPath is the located workflow file.
		WorkflowPath string
		// WorkflowDir is the directory containing WorkflowPath.
		WorkflowDir string
	}
)

// NewBuilder creates a Builder, filling unset options with defaults.
func NewBuilder(opts Options) *Builder {
	if opts.Locator == nil {
		opts.Locator = NewPathLocator()
	}
	if opts.EngineBinary == "" {
		opts.EngineBinary = config.DefaultEngineBinary
	}
	if opts.WorkflowFile == "" {
		opts.WorkflowFile = config.DefaultWorkflowFile
	}
	if opts.SubsampleScript == "" {
		opts.SubsampleScript = config.DefaultSubsampleScript
	}
	return &Builder{opts: opts}
}

// OptionsFromConfig maps the application configuration to builder options.
func OptionsFromConfig(cfg *config.Config, locator Locator) Options {
	return Options{
		Locator:         locator,
		EngineBinary:    cfg.Engine.Binary,
		EngineExtraArgs: cfg.Engine.ExtraArgs,
		WorkflowFile:    cfg.Workflow.File,
		SubsampleScript: cfg.Workflow.SubsampleScript,
	}
}

// Build locates the workflow file and returns the invocation for p. A lookup
// failure is returned before anything else happens, whatever the mode.
func (b *Builder) Build(ctx context.Context, p assembly.Params) (*Invocation, error) {
	workflowPath, err := b.opts.Locator.Locate(ctx, b.opts.WorkflowFile)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("locate workflow file").
			WithResource(b.opts.WorkflowFile).
			WithSuggestion("Add the mtGasp installation directory to PATH").
			WithSuggestion("Make sure " + b.opts.WorkflowFile + " is executable").
			Wrap(err).
			BuildError()
	}

	inv := &Invocation{
		Mode:         SelectMode(p),
		WorkflowPath: workflowPath,
		WorkflowDir:  filepath.Dir(workflowPath),
	}

	switch inv.Mode {
	case ModeDryRun:
		inv.Program = b.opts.EngineBinary
		inv.Args = b.engineArgs(workflowPath, p, "-np")
	case ModeUnlock:
		inv.Program = b.opts.EngineBinary
		inv.Args = b.engineArgs(workflowPath, p, "--unlock")
	case ModeNoSubsample:
		inv.Program = b.opts.EngineBinary
		inv.Args = b.engineArgs(workflowPath, p, "--cores", assembly.FormatInt(p.Threads), "-p", "-k")
	default:
		inv.Program = b.opts.SubsampleScript
		inv.Args = subsampleArgs(inv.WorkflowDir, p)
	}

	return inv, nil
}

// engineArgs builds: -s <workflow> <mode args...> <extra args...> --config k=v...
func (b *Builder) engineArgs(workflowPath string, p assembly.Params, modeArgs ...string) []string {
	pairs := p.ConfigArgs()
	args := make([]string, 0, 3+len(modeArgs)+len(b.opts.EngineExtraArgs)+len(pairs))
	args = append(args, "-s", workflowPath)
	args = append(args, modeArgs...)
	args = append(args, b.opts.EngineExtraArgs...)
	args = append(args, "--config")
	return append(args, pairs...)
}

// subsampleArgs builds the positional arguments of the subsampling script.
// The order is fixed by the script.
func subsampleArgs(workflowDir string, p assembly.Params) []string {
	return []string{
		p.OutDir.String(),
		p.Read1.String(),
		p.Read2.String(),
		assembly.FormatInt(p.Subsample),
		p.Read1Base(),
		p.Read2Base(),
		workflowDir,
		assembly.FormatInt(p.Threads),
		p.MitoGeneticCode,
		assembly.FormatInt(p.Kmer),
		assembly.FormatInt(p.KmerCoverage),
		p.RefPath.String(),
		assembly.FormatFloat(p.AbyssFPR),
		assembly.FormatFloat(p.SealerFPR),
		assembly.FormatInt(p.GapFillingP),
		p.SealerK.String(),
		assembly.FormatFloat(p.EndRecovSealerFPR),
		assembly.FormatInt(p.EndRecovP),
		p.EndRecovSealerK.String(),
		assembly.FormatInt(p.MismatchAllowed),
	}
}

// Argv returns Program followed by Args.
func (i *Invocation) Argv() []string {
	return append([]string{i.Program}, i.Args...)
}

// String renders the invocation as a bash command line, quoting tokens only
// where needed. It is for display; the runner never parses it.
func (i *Invocation) String() string {
	argv := i.Argv()
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		quoted = append(quoted, quote(arg))
	}
	return strings.Join(quoted, " ")
}

func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return strconv.Quote(s)
	}
	return q
}
