// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/ycecilia/mtGasp/internal/config"
	"github.com/ycecilia/mtGasp/internal/invocation"
	"github.com/ycecilia/mtGasp/internal/runner"
	"github.com/ycecilia/mtGasp/pkg/types"

	"github.com/charmbracelet/log"
)

const testWorkflowPath = "/opt/mtgasp/mtgasp.smk"

var requiredArgs = []string{"-r1", "/data/S.R1.fq.gz", "-r2", "/data/S.R2.fq.gz", "-o", "out", "-m", "2", "-r", "/ref/mito.fa"}

type (
	fakeLocator struct {
		path  string
		calls int
	}

	fakeRunner struct {
		result *runner.Result
		runs   []*invocation.Invocation
	}

	fakeConfig struct {
		cfg  *config.Config
		err  error
		opts []config.LoadOptions
	}

	testEnv struct {
		app    *App
		loc    *fakeLocator
		runner *fakeRunner
		config *fakeConfig
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	}
)

func (l *fakeLocator) Locate(_ context.Context, name string) (string, error) {
	l.calls++
	if l.path == "" {
		return "", &invocation.ResourceNotFoundError{Name: name}
	}
	return l.path, nil
}

func (r *fakeRunner) Run(_ context.Context, inv *invocation.Invocation) *runner.Result {
	r.runs = append(r.runs, inv)
	if r.result == nil {
		return runner.NewExitCodeResult(types.ExitSuccess)
	}
	return r.result
}

func (c *fakeConfig) Load(_ context.Context, opts config.LoadOptions) (*config.Config, error) {
	c.opts = append(c.opts, opts)
	if c.err != nil {
		return nil, c.err
	}
	if c.cfg == nil {
		return config.DefaultConfig(), nil
	}
	return c.cfg, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		loc:    &fakeLocator{path: testWorkflowPath},
		runner: &fakeRunner{},
		config: &fakeConfig{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	env.app = NewApp(Dependencies{
		Config:  env.config,
		Locator: env.loc,
		Runner:  env.runner,
		Logger:  log.NewWithOptions(env.stderr, log.Options{Prefix: "mtgasp", Level: log.WarnLevel}),
		Stdout:  env.stdout,
		Stderr:  env.stderr,
	})
	return env
}

// execute runs the command tree the way Execute does, minus fang and os.Exit.
func (e *testEnv) execute(args ...string) error {
	root := NewRootCommand(e.app)
	root.SetArgs(rewriteLegacyArgs(args))
	return root.ExecuteContext(context.Background())
}

func withRequired(extra ...string) []string {
	return append(append([]string{}, requiredArgs...), extra...)
}
