// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strconv"
	"strings"

	"github.com/ycecilia/mtGasp/internal/assembly"
	"github.com/ycecilia/mtGasp/pkg/types"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	flagRead1             = "read1"
	flagRead2             = "read2"
	flagOutDir            = "out_dir"
	flagMtGen             = "mt_gen"
	flagThreads           = "threads"
	flagKmer              = "kmer"
	flagKC                = "kc"
	flagRefPath           = "ref_path"
	flagDryRun            = "dry_run"
	flagAbyssFPR          = "abyss_fpr"
	flagSealerFPR         = "sealer_fpr"
	flagGapFillingP       = "gap_filling_p"
	flagSealerK           = "sealer_k"
	flagEndRecovSealerFPR = "end_recov_sealer_fpr"
	flagEndRecovSealerK   = "end_recov_sealer_k"
	flagEndRecovP         = "end_recov_p"
	flagUnlock            = "unlock"
	flagMismatchAllowed   = "mismatch_allowed"
	flagSubsample         = "subsample"
	flagNoSubsample       = "nosubsample"
)

// legacyFlags maps the multi-letter single-dash spellings of the original
// wrapper to their long names. pflag shorthands are one letter, so `-r1`
// would otherwise parse as `-r 1`.
var legacyFlags = map[string]string{
	"-r1":   "--" + flagRead1,
	"-r2":   "--" + flagRead2,
	"-ma":   "--" + flagMismatchAllowed,
	"-sub":  "--" + flagSubsample,
	"-nsub": "--" + flagNoSubsample,
}

// requiredRunFlags must be given on every run.
var requiredRunFlags = []string{flagRead1, flagRead2, flagOutDir, flagMtGen, flagRefPath}

// runFlags holds the assembly flags shared by the root command and `plan`.
type runFlags struct {
	read1   string
	read2   string
	outDir  string
	mtGen   string
	refPath string

	threads           int
	kmer              int
	kc                int
	abyssFPR          float64
	sealerFPR         float64
	gapFillingP       int
	sealerK           string
	endRecovSealerFPR float64
	endRecovSealerK   string
	endRecovP         int
	mismatchAllowed   int
	subsample         int

	dryRun      bool
	unlock      bool
	noSubsample bool
}

// decimalInt is an int flag that only accepts base-10 input. pflag's own
// int flags read a leading zero as octal, so `-t 010` would become 8.
type decimalInt struct{ p *int }

func newDecimalInt(p *int, def int) *decimalInt {
	*p = def
	return &decimalInt{p: p}
}

func (d *decimalInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*d.p = n
	return nil
}

func (d *decimalInt) String() string {
	if d.p == nil {
		return "0"
	}
	return strconv.Itoa(*d.p)
}

func (d *decimalInt) Type() string { return "int" }

// register adds the assembly flags to cmd and marks the required ones.
func (f *runFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()

	fs.StringVar(&f.read1, flagRead1, "", "forward read fastq.gz file (-r1)")
	fs.StringVar(&f.read2, flagRead2, "", "reverse read fastq.gz file (-r2)")
	fs.StringVarP(&f.outDir, flagOutDir, "o", "", "output directory")
	fs.StringVarP(&f.mtGen, flagMtGen, "m", "", "mitochondrial genetic code")
	fs.VarP(newDecimalInt(&f.threads, assembly.DefaultThreads), flagThreads, "t", "number of threads")
	fs.VarP(newDecimalInt(&f.kmer, assembly.DefaultKmer), flagKmer, "k", "k-mer size used in abyss de novo assembly (must be less than 128)")
	fs.VarP(newDecimalInt(&f.kc, assembly.DefaultKmerCoverage), flagKC, "c", "minimum k-mer coverage (abyss kc)")
	fs.StringVarP(&f.refPath, flagRefPath, "r", "", "path to the reference fasta file")
	fs.BoolVarP(&f.dryRun, flagDryRun, "n", false, "dry-run the pipeline (snakemake -np)")
	fs.Float64VarP(&f.abyssFPR, flagAbyssFPR, "a", assembly.DefaultAbyssFPR, "false positive rate for the bloom filter used by abyss")
	fs.Float64VarP(&f.sealerFPR, flagSealerFPR, "s", assembly.DefaultSealerFPR, "false positive rate for the bloom filter used by sealer during gap filling")
	fs.VarP(newDecimalInt(&f.gapFillingP, assembly.DefaultGapFillingP), flagGapFillingP, "p", "merge at most N alternate paths during sealer gap filling")
	fs.StringVarP(&f.sealerK, flagSealerK, "b", assembly.DefaultSealerK.String(), "k-mer sizes used in sealer gap filling")
	fs.Float64VarP(&f.endRecovSealerFPR, flagEndRecovSealerFPR, "e", assembly.DefaultEndRecovSealerFPR, "false positive rate for the bloom filter used by sealer during flanking end recovery")
	fs.StringVarP(&f.endRecovSealerK, flagEndRecovSealerK, "v", assembly.DefaultEndRecovSealerK.String(), "k-mer sizes used in sealer flanking end recovery")
	fs.VarP(newDecimalInt(&f.endRecovP, assembly.DefaultEndRecovP), flagEndRecovP, "i", "merge at most N alternate paths during sealer flanking end recovery")
	fs.BoolVarP(&f.unlock, flagUnlock, "u", false, "remove the lock snakemake holds on the working directory")
	fs.Var(newDecimalInt(&f.mismatchAllowed, assembly.DefaultMismatchAllowed), flagMismatchAllowed, "maximum mismatches allowed while finding the overlap between the two ends of the assembly (-ma)")
	fs.Var(newDecimalInt(&f.subsample, assembly.DefaultSubsample), flagSubsample, "subsample N read pairs from the two paired FASTQ files (-sub)")
	fs.BoolVar(&f.noSubsample, flagNoSubsample, false, "run on the entire read dataset without subsampling (-nsub)")

	for _, name := range requiredRunFlags {
		// Only fails for unknown flag names.
		_ = cmd.MarkFlagRequired(name)
	}
}

// params converts the parsed flags into assembly parameters. Values are
// passed through as given; range checks belong to Params.Validate.
func (f *runFlags) params() assembly.Params {
	p := assembly.NewParams(
		types.FilesystemPath(f.read1),
		types.FilesystemPath(f.read2),
		types.FilesystemPath(f.outDir),
		f.mtGen,
		types.FilesystemPath(f.refPath),
	)
	p.Threads = f.threads
	p.Kmer = f.kmer
	p.KmerCoverage = f.kc
	p.AbyssFPR = f.abyssFPR
	p.SealerFPR = f.sealerFPR
	p.GapFillingP = f.gapFillingP
	p.SealerK = assembly.KmerList(f.sealerK)
	p.EndRecovSealerFPR = f.endRecovSealerFPR
	p.EndRecovSealerK = assembly.KmerList(f.endRecovSealerK)
	p.EndRecovP = f.endRecovP
	p.MismatchAllowed = f.mismatchAllowed
	p.Subsample = f.subsample
	p.DryRun = f.dryRun
	p.Unlock = f.unlock
	p.NoSubsample = f.noSubsample
	return p
}

// normalizeFlagName lets `--dry-run` stand for `--dry_run`.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "-", "_"))
}

// rewriteLegacyArgs replaces legacy single-dash flags, including the
// `-flag=value` form, with their long names. Arguments after `--` are left
// alone.
func rewriteLegacyArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}

		name, value, hasValue := strings.Cut(arg, "=")
		long, ok := legacyFlags[name]
		switch {
		case !ok:
			out = append(out, arg)
		case hasValue:
			out = append(out, long+"="+value)
		default:
			out = append(out, long)
		}
	}
	return out
}
