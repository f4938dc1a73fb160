// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os/exec"
	"slices"
	"strings"
	"testing"

	"github.com/ycecilia/mtGasp/internal/assembly"
	"github.com/ycecilia/mtGasp/internal/config"
	"github.com/ycecilia/mtGasp/internal/invocation"
	"github.com/ycecilia/mtGasp/internal/issue"
	"github.com/ycecilia/mtGasp/internal/runner"
	"github.com/ycecilia/mtGasp/pkg/types"
)

func TestRun_ModeSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   []string
		program string
		mode    invocation.Mode
	}{
		{"default", nil, "sub_then_run_mtgasp.sh", invocation.ModeSubsample},
		{"dry run short", []string{"-n"}, "snakemake", invocation.ModeDryRun},
		{"dry run dashed", []string{"--dry-run"}, "snakemake", invocation.ModeDryRun},
		{"unlock", []string{"-u"}, "snakemake", invocation.ModeUnlock},
		{"nosubsample legacy", []string{"-nsub"}, "snakemake", invocation.ModeNoSubsample},
		{"all flags", []string{"-nsub", "-u", "-n"}, "snakemake", invocation.ModeDryRun},
		{"unlock beats nosubsample", []string{"--nosubsample", "--unlock"}, "snakemake", invocation.ModeUnlock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			if err := env.execute(withRequired(tt.flags...)...); err != nil {
				t.Fatalf("execute() error: %v", err)
			}

			if len(env.runner.runs) != 1 {
				t.Fatalf("runner called %d times, want 1", len(env.runner.runs))
			}
			inv := env.runner.runs[0]
			if inv.Program != tt.program || inv.Mode != tt.mode {
				t.Errorf("ran %s (%s), want %s (%s)", inv.Program, inv.Mode, tt.program, tt.mode)
			}
		})
	}
}

func TestRun_DefaultArgv(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	err := env.execute(withRequired("-t", "4", "-sub=500000", "-ma", "2", "-k", "101")...)
	if err != nil {
		t.Fatalf("execute() error: %v", err)
	}

	want := []string{
		"sub_then_run_mtgasp.sh",
		"out", "/data/S.R1.fq.gz", "/data/S.R2.fq.gz", "500000", "S", "S", "/opt/mtgasp",
		"4", "2", "101", "3", "/ref/mito.fa", "0.005", "0.01", "5", "60,80,100,120",
		"0.01", "5", "60,80,100,120", "2",
	}
	if got := env.runner.runs[0].Argv(); !slices.Equal(got, want) {
		t.Errorf("argv =\n  %q\nwant\n  %q", got, want)
	}
}

func TestRun_EngineArgvUsesAllFlags(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	err := env.execute(withRequired(
		"--nosubsample", "-t", "12", "-c", "5", "-a", "0.001", "-s", "0.02", "-p", "7",
		"-b", "50,70", "-e", "0.03", "-v", "40,60", "-i", "9",
	)...)
	if err != nil {
		t.Fatalf("execute() error: %v", err)
	}

	want := []string{
		"snakemake", "-s", testWorkflowPath, "--cores", "12", "-p", "-k", "--config",
		"r1=/data/S.R1.fq.gz", "r2=/data/S.R2.fq.gz", "out_dir=out", "mt_code=2", "k=91", "kc=5",
		"ref_path=/ref/mito.fa", "threads=12", "abyss_fpr=0.001", "sealer_fpr=0.02", "p=7",
		"sealer_k=50,70", "end_recov_sealer_fpr=0.03", "end_recov_p=9", "end_recov_sealer_k=40,60",
		"mismatch_allowed=1",
	}
	if got := env.runner.runs[0].Argv(); !slices.Equal(got, want) {
		t.Errorf("argv =\n  %q\nwant\n  %q", got, want)
	}
}

func TestRun_ConfiguredEngine(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cfg := config.DefaultConfig()
	cfg.Engine.Binary = "/opt/sm/snakemake"
	cfg.Engine.ExtraArgs = []string{"--rerun-incomplete"}
	env.config.cfg = cfg

	if err := env.execute(withRequired("-n", "--config", "/etc/mtgasp.cue")...); err != nil {
		t.Fatalf("execute() error: %v", err)
	}

	inv := env.runner.runs[0]
	if inv.Program != "/opt/sm/snakemake" {
		t.Errorf("Program = %q", inv.Program)
	}
	if !slices.Equal(inv.Args[:5], []string{"-s", testWorkflowPath, "-np", "--rerun-incomplete", "--config"}) {
		t.Errorf("Args = %q", inv.Args)
	}
	if got := env.config.opts[0].ConfigFilePath; got != "/etc/mtgasp.cue" {
		t.Errorf("config loaded from %q, want /etc/mtgasp.cue", got)
	}
}

func TestRun_PropagatesChildExitCode(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.runner.result = runner.NewExitCodeResult(3)

	err := env.execute(withRequired()...)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 || exitErr.Err != nil {
		t.Errorf("ExitError = %+v, want code 3 without a message", exitErr)
	}
}

func TestRun_SpawnFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.runner.result = runner.NewErrorResult(issue.NewErrorContext().
		WithOperation("start snakemake").
		Wrap(exec.ErrNotFound).
		BuildError())

	err := env.execute(withRequired("-n")...)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != types.ExitFailure {
		t.Fatalf("error = %v, want ExitError with code 1", err)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("error should wrap exec.ErrNotFound: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "could not be started") {
		t.Errorf("stderr should carry the program-not-found issue:\n%s", env.stderr.String())
	}
}

func TestRun_WorkflowNotFoundAbortsInEveryMode(t *testing.T) {
	t.Parallel()

	for _, flags := range [][]string{nil, {"-n"}, {"-u"}, {"-nsub"}} {
		t.Run(strings.Join(append([]string{"mode"}, flags...), " "), func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			env.loc.path = ""

			err := env.execute(withRequired(flags...)...)

			var exitErr *ExitError
			if !errors.As(err, &exitErr) || exitErr.Code != types.ExitFailure {
				t.Fatalf("error = %v, want ExitError with code 1", err)
			}
			if !errors.Is(err, invocation.ErrResourceNotFound) {
				t.Errorf("error should wrap ErrResourceNotFound: %v", err)
			}
			if len(env.runner.runs) != 0 {
				t.Errorf("runner called %d times after lookup failure", len(env.runner.runs))
			}
			if !strings.Contains(env.stderr.String(), "was not found on PATH") {
				t.Errorf("stderr should carry the workflow-not-found issue:\n%s", env.stderr.String())
			}
		})
	}
}

func TestRun_MissingRequiredFlag(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	err := env.execute("-r1", "a.fq", "-r2", "b.fq", "-o", "out", "-m", "2")

	if err == nil || !strings.Contains(err.Error(), flagRefPath) {
		t.Fatalf("error = %v, want a missing ref_path error", err)
	}
	if env.loc.calls != 0 || len(env.runner.runs) != 0 {
		t.Errorf("lookup (%d) and runner (%d) must not run on usage errors", env.loc.calls, len(env.runner.runs))
	}
}

func TestRun_NonNumericValueIsUsageError(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	err := env.execute(withRequired("-t", "many")...)
	if err == nil {
		t.Fatal("expected a parse error for --threads many")
	}
	if len(env.runner.runs) != 0 {
		t.Error("runner must not run on usage errors")
	}
}

func TestRun_IntegersAreDecimal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags []string
		index int
		want  string
	}{
		{"threads with leading zero", []string{"-t", "010"}, 7, "10"},
		{"kmer with leading zero", []string{"-k", "091"}, 9, "91"},
		{"subsample with leading zero", []string{"-sub", "0100000"}, 3, "100000"},
		{"mismatch with leading zero", []string{"-ma", "07"}, 19, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			if err := env.execute(withRequired(tt.flags...)...); err != nil {
				t.Fatalf("execute() error: %v", err)
			}
			if got := env.runner.runs[0].Args[tt.index]; got != tt.want {
				t.Errorf("Args[%d] = %q, want %q", tt.index, got, tt.want)
			}
		})
	}
}

func TestRun_HexIntegerIsUsageError(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if err := env.execute(withRequired("-t", "0x10")...); err == nil {
		t.Fatal("expected a parse error for --threads 0x10")
	}
	if len(env.runner.runs) != 0 {
		t.Error("runner must not run on usage errors")
	}
}

func TestRun_PermissiveByDefault(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if err := env.execute(withRequired("-k", "500", "-a", "7")...); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	args := env.runner.runs[0].Args
	if args[9] != "500" || args[12] != "7" {
		t.Errorf("out-of-range values should pass through unchanged: %q", args)
	}
}

func TestRun_StrictValidation(t *testing.T) {
	t.Parallel()

	t.Run("flag", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		err := env.execute(withRequired("--strict", "-k", "128")...)

		if !errors.Is(err, assembly.ErrInvalidParams) {
			t.Fatalf("error = %v, want ErrInvalidParams", err)
		}
		if env.loc.calls != 0 || len(env.runner.runs) != 0 {
			t.Error("strict validation must fail before lookup")
		}
	})

	t.Run("config", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		cfg := config.DefaultConfig()
		cfg.Validation.Strict = true
		env.config.cfg = cfg

		err := env.execute(withRequired("-s", "1.5")...)
		if !errors.Is(err, assembly.ErrInvalidParams) {
			t.Fatalf("error = %v, want ErrInvalidParams", err)
		}
	})

	t.Run("valid values pass", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if err := env.execute(withRequired("--strict", "-k", "127")...); err != nil {
			t.Fatalf("execute() error: %v", err)
		}
		if len(env.runner.runs) != 1 {
			t.Error("runner should run once")
		}
	})
}

func TestRun_BrokenConfigFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.config.err = errors.New("bad cue")

	if err := env.execute(withRequired("-n")...); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if env.runner.runs[0].Program != "snakemake" {
		t.Errorf("Program = %q, want the default snakemake", env.runner.runs[0].Program)
	}
	if !strings.Contains(env.stderr.String(), "bad cue") {
		t.Errorf("stderr = %q, want a warning", env.stderr.String())
	}
}

func TestRun_VerboseLogsCommand(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if err := env.execute(withRequired("--verbose", "-n")...); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "running pipeline") {
		t.Errorf("verbose run should log the mode:\n%s", env.stderr.String())
	}
	if env.stdout.Len() != 0 {
		t.Errorf("nothing should be written to stdout, got %q", env.stdout.String())
	}
}
