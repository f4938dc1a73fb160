// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	WorkflowNotFoundId Id = iota + 1
	ProgramNotFoundId
	ConfigLoadFailedId
	InvalidParametersId
	PipelineFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue with the given glamour style ("dark", "light",
// "notty", "auto").
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
		for _, link := range i.extLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	workflowNotFoundIssue = &Issue{
		id: WorkflowNotFoundId,
		mdMsg: `
# The workflow file was not found on PATH

mtgasp locates its Snakemake workflow by searching the executable search path,
the same way ` + "`which`" + ` does. The file is ` + "`mtgasp.smk`" + ` unless the
` + "`workflow.file`" + ` setting names another one. It must be on PATH and executable.

## Things you can try:
- Check which file mtgasp is looking for:
~~~
$ mtgasp config show
~~~
- Add the directory holding the workflow file to PATH:
~~~
$ export PATH=/path/to/mtGasp:$PATH
~~~
- Check that the workflow file is executable:
~~~
$ chmod +x /path/to/mtGasp/<workflow file>
~~~
- If you installed with conda, activate the environment first.`,
		docLinks: []HttpLink{"https://github.com/ycecilia/mtGasp"},
	}

	programNotFoundIssue = &Issue{
		id: ProgramNotFoundId,
		mdMsg: `
# A pipeline program could not be started

mtgasp runs either ` + "`snakemake`" + ` (for --dry_run, --unlock and --nosubsample)
or ` + "`sub_then_run_mtgasp.sh`" + ` (the default, subsampled run). The program
must be installed and on PATH.

## Things you can try:
- Check that Snakemake is installed:
~~~
$ snakemake --version
~~~
- Check that the subsampling script is on PATH:
~~~
$ which sub_then_run_mtgasp.sh
~~~
- Point mtgasp at a different Snakemake in the configuration:
~~~cue
engine: binary: "/opt/snakemake/bin/snakemake"
~~~`,
		extLinks: []HttpLink{"https://snakemake.readthedocs.io/en/stable/getting_started/installation.html"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the mtgasp configuration file. Defaults are used instead.

## Configuration file locations:
- Linux: ~/.config/mtgasp/config.cue
- macOS: ~/Library/Application Support/mtgasp/config.cue
- Windows: %APPDATA%\mtgasp\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ mtgasp config init
~~~
- Check the configuration syntax

## Example configuration:
~~~cue
engine: {
  binary: "snakemake"
  extra_args: ["--rerun-incomplete"]
}
validation: strict: false
ui: verbose: false
~~~`,
	}

	invalidParametersIssue = &Issue{
		id: InvalidParametersId,
		mdMsg: `
# Invalid assembly parameters

Strict validation is enabled and at least one parameter is outside the range
the pipeline accepts.

## Accepted ranges:
- **--kmer**: 1-127
- **--abyss_fpr**, **--sealer_fpr**, **--end_recov_sealer_fpr**: between 0 and 1
- **--sealer_k**, **--end_recov_sealer_k**: comma-separated positive integers
- **--threads**, **--kc**, **--gap_filling_p**, **--end_recov_p**, **--subsample**: positive integers
- **--mismatch_allowed**: zero or more

Run without ` + "`--strict`" + ` to hand the values to the pipeline unchanged.`,
	}

	pipelineFailedIssue = &Issue{
		id: PipelineFailedId,
		mdMsg: `
# The pipeline exited with an error

The output above comes from the pipeline itself.

## Things you can try:
- If Snakemake reports a locked directory, release it:
~~~
$ mtgasp --unlock -r1 R1.fq.gz -r2 R2.fq.gz -o out -m 2 -r ref.fa
~~~
- Preview the jobs without running them with ` + "`--dry_run`" + `.
- Check that the k-mer size is below 128.`,
	}

	issues = map[Id]*Issue{
		workflowNotFoundIssue.Id():  workflowNotFoundIssue,
		programNotFoundIssue.Id():   programNotFoundIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		invalidParametersIssue.Id(): invalidParametersIssue,
		pipelineFailedIssue.Id():    pipelineFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	ids := make([]Id, 0, len(issues))
	for id := range issues {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	values := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		values = append(values, issues[id])
	}
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
