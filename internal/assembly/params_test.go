// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"slices"
	"testing"

	"github.com/ycecilia/mtGasp/pkg/types"
)

func testParams() Params {
	return NewParams("reads/sampleA.R1.fastq.gz", "reads/sampleA.R2.fastq.gz", "out", "2", "ref/mito.fa")
}

func TestNewParamsDefaults(t *testing.T) {
	t.Parallel()

	p := testParams()

	if p.Threads != 8 {
		t.Errorf("Threads = %d, want 8", p.Threads)
	}
	if p.Kmer != 91 {
		t.Errorf("Kmer = %d, want 91", p.Kmer)
	}
	if p.KmerCoverage != 3 {
		t.Errorf("KmerCoverage = %d, want 3", p.KmerCoverage)
	}
	if p.AbyssFPR != 0.005 || p.SealerFPR != 0.01 || p.EndRecovSealerFPR != 0.01 {
		t.Errorf("fpr defaults = %v/%v/%v, want 0.005/0.01/0.01", p.AbyssFPR, p.SealerFPR, p.EndRecovSealerFPR)
	}
	if p.GapFillingP != 5 || p.EndRecovP != 5 {
		t.Errorf("p defaults = %d/%d, want 5/5", p.GapFillingP, p.EndRecovP)
	}
	if p.SealerK != "60,80,100,120" || p.EndRecovSealerK != "60,80,100,120" {
		t.Errorf("k-list defaults = %q/%q", p.SealerK, p.EndRecovSealerK)
	}
	if p.MismatchAllowed != 1 {
		t.Errorf("MismatchAllowed = %d, want 1", p.MismatchAllowed)
	}
	if p.Subsample != 2000000 {
		t.Errorf("Subsample = %d, want 2000000", p.Subsample)
	}
	if p.DryRun || p.Unlock || p.NoSubsample {
		t.Error("mode flags should default to false")
	}
}

func TestSampleBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path types.FilesystemPath
		want string
	}{
		{"bare file name", "sampleA.R1.fastq.gz", "sampleA"},
		{"nested path", "/data/run 1/sampleB_1.fq.gz", "sampleB_1"},
		{"no extension", "reads/sampleC", "sampleC"},
		{"dot in directory only", "/data/v1.2/sampleD", "sampleD"},
		{"hidden file", "reads/.sampleE.fq", ""},
		{"trailing slash", "reads/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SampleBase(tt.path); got != tt.want {
				t.Errorf("SampleBase(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestParamsReadBases(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.Read2 = "/x/other.R2.fq"

	if got := p.Read1Base(); got != "sampleA" {
		t.Errorf("Read1Base() = %q, want sampleA", got)
	}
	if got := p.Read2Base(); got != "other" {
		t.Errorf("Read2Base() = %q, want other", got)
	}
}

func TestParamsConfigArgs(t *testing.T) {
	t.Parallel()

	p := testParams()
	want := []string{
		"r1=reads/sampleA.R1.fastq.gz",
		"r2=reads/sampleA.R2.fastq.gz",
		"out_dir=out",
		"mt_code=2",
		"k=91",
		"kc=3",
		"ref_path=ref/mito.fa",
		"threads=8",
		"abyss_fpr=0.005",
		"sealer_fpr=0.01",
		"p=5",
		"sealer_k=60,80,100,120",
		"end_recov_sealer_fpr=0.01",
		"end_recov_p=5",
		"end_recov_sealer_k=60,80,100,120",
		"mismatch_allowed=1",
	}

	if got := p.ConfigArgs(); !slices.Equal(got, want) {
		t.Errorf("ConfigArgs() =\n  %q\nwant\n  %q", got, want)
	}
}

func TestParamsConfigArgsPassThrough(t *testing.T) {
	t.Parallel()

	// Out-of-range values are forwarded as given; the pipeline rejects them.
	p := testParams()
	p.Kmer = 200
	p.AbyssFPR = 1.5
	p.SealerK = "abc"

	got := p.ConfigArgs()
	for _, want := range []string{"k=200", "abyss_fpr=1.5", "sealer_k=abc"} {
		if !slices.Contains(got, want) {
			t.Errorf("ConfigArgs() missing %q: %q", want, got)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0.005, "0.005"},
		{0.01, "0.01"},
		{0.1, "0.1"},
		{1e-7, "1e-07"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
