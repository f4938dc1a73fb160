// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"strconv"
	"strings"

	"github.com/ycecilia/mtGasp/pkg/types"
)

// Defaults for the optional parameters.
const (
	DefaultThreads           = 8
	DefaultKmer              = 91
	DefaultKmerCoverage      = 3
	DefaultAbyssFPR          = 0.005
	DefaultSealerFPR         = 0.01
	DefaultGapFillingP       = 5
	DefaultSealerK           = KmerList("60,80,100,120")
	DefaultEndRecovSealerFPR = 0.01
	DefaultEndRecovSealerK   = KmerList("60,80,100,120")
	DefaultEndRecovP         = 5
	DefaultMismatchAllowed   = 1
	DefaultSubsample         = 2000000
)

// Workflow configuration keys understood by mtgasp.smk.
const (
	KeyRead1             = "r1"
	KeyRead2             = "r2"
	KeyOutDir            = "out_dir"
	KeyMitoCode          = "mt_code"
	KeyKmer              = "k"
	KeyKmerCoverage      = "kc"
	KeyRefPath           = "ref_path"
	KeyThreads           = "threads"
	KeyAbyssFPR          = "abyss_fpr"
	KeySealerFPR         = "sealer_fpr"
	KeyGapFillingP       = "p"
	KeySealerK           = "sealer_k"
	KeyEndRecovSealerFPR = "end_recov_sealer_fpr"
	KeyEndRecovP         = "end_recov_p"
	KeyEndRecovSealerK   = "end_recov_sealer_k"
	KeyMismatchAllowed   = "mismatch_allowed"
)

type (
	// Params is the run configuration of one mtGasp invocation.
	Params struct {
		// Read1 and Read2 are the paired-end read files.
		Read1 types.FilesystemPath
		Read2 types.FilesystemPath
		// OutDir is created and populated by the pipeline.
		OutDir types.FilesystemPath
		// MitoGeneticCode selects the genetic code table used for annotation.
		MitoGeneticCode string
		// RefPath is the reference fasta.
		RefPath types.FilesystemPath

		Threads      int
		Kmer         int
		KmerCoverage int

		AbyssFPR    float64
		SealerFPR   float64
		GapFillingP int
		SealerK     KmerList

		EndRecovSealerFPR float64
		EndRecovSealerK   KmerList
		EndRecovP         int

		MismatchAllowed int
		Subsample       int

		// DryRun, Unlock and NoSubsample select the execution mode.
		// See invocation.SelectMode for their priority.
		DryRun      bool
		Unlock      bool
		NoSubsample bool
	}

	// ConfigPair is one key=value entry of the workflow configuration.
	ConfigPair struct {
		Key   string
		Value string
	}
)

// NewParams returns Params for the required fields with every optional
// field set to its default.
func NewParams(read1, read2, outDir types.FilesystemPath, mitoCode string, refPath types.FilesystemPath) Params {
	return Params{
		Read1:             read1,
		Read2:             read2,
		OutDir:            outDir,
		MitoGeneticCode:   mitoCode,
		RefPath:           refPath,
		Threads:           DefaultThreads,
		Kmer:              DefaultKmer,
		KmerCoverage:      DefaultKmerCoverage,
		AbyssFPR:          DefaultAbyssFPR,
		SealerFPR:         DefaultSealerFPR,
		GapFillingP:       DefaultGapFillingP,
		SealerK:           DefaultSealerK,
		EndRecovSealerFPR: DefaultEndRecovSealerFPR,
		EndRecovSealerK:   DefaultEndRecovSealerK,
		EndRecovP:         DefaultEndRecovP,
		MismatchAllowed:   DefaultMismatchAllowed,
		Subsample:         DefaultSubsample,
	}
}

// SampleBase returns the sample identifier of a read file: its file name up
// to, not including, the first '.'.
//
//	SampleBase("/data/sampleA.R1.fastq.gz") == "sampleA"
func SampleBase(path types.FilesystemPath) string {
	name := path.Base()
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// Read1Base is the sample identifier derived from Read1.
func (p Params) Read1Base() string { return SampleBase(p.Read1) }

// Read2Base is the sample identifier derived from Read2.
func (p Params) Read2Base() string { return SampleBase(p.Read2) }

// ConfigPairs returns the workflow configuration in the fixed key order
// mtgasp.smk documents.
func (p Params) ConfigPairs() []ConfigPair {
	return []ConfigPair{
		{KeyRead1, p.Read1.String()},
		{KeyRead2, p.Read2.String()},
		{KeyOutDir, p.OutDir.String()},
		{KeyMitoCode, p.MitoGeneticCode},
		{KeyKmer, FormatInt(p.Kmer)},
		{KeyKmerCoverage, FormatInt(p.KmerCoverage)},
		{KeyRefPath, p.RefPath.String()},
		{KeyThreads, FormatInt(p.Threads)},
		{KeyAbyssFPR, FormatFloat(p.AbyssFPR)},
		{KeySealerFPR, FormatFloat(p.SealerFPR)},
		{KeyGapFillingP, FormatInt(p.GapFillingP)},
		{KeySealerK, p.SealerK.String()},
		{KeyEndRecovSealerFPR, FormatFloat(p.EndRecovSealerFPR)},
		{KeyEndRecovP, FormatInt(p.EndRecovP)},
		{KeyEndRecovSealerK, p.EndRecovSealerK.String()},
		{KeyMismatchAllowed, FormatInt(p.MismatchAllowed)},
	}
}

// ConfigArgs renders ConfigPairs as "key=value" tokens.
func (p Params) ConfigArgs() []string {
	pairs := p.ConfigPairs()
	args := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		args = append(args, pair.String())
	}
	return args
}

// String returns "key=value".
func (c ConfigPair) String() string { return c.Key + "=" + c.Value }

// FormatInt renders an integer parameter the way it is handed to the pipeline.
func FormatInt(n int) string { return strconv.Itoa(n) }

// FormatFloat renders a rate with the shortest representation that round-trips,
// so 0.005 stays "0.005".
func FormatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
