// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"errors"
	"fmt"
	"strings"
)

// MaxKmer is the exclusive upper bound ABySS accepts for the k-mer size.
const MaxKmer = 128

var (
	// ErrInvalidParams is the sentinel error wrapped by InvalidParamsError.
	ErrInvalidParams = errors.New("invalid assembly parameters")
	// ErrInvalidParameter is the sentinel error wrapped by InvalidParameterError.
	ErrInvalidParameter = errors.New("invalid parameter")
)

type (
	// InvalidParameterError describes one out-of-range parameter.
	InvalidParameterError struct {
		// Flag is the long flag name the value came from.
		Flag   string
		Value  string
		Reason string
	}

	// InvalidParamsError collects every field-level failure found by Validate.
	InvalidParamsError struct {
		FieldErrors []error
	}
)

// Validate checks the documented ranges of every parameter. It is opt-in:
// the default behavior is to hand values to the pipeline untouched.
func (p Params) Validate() error {
	var errs []error

	for _, f := range []struct {
		flag  string
		value interface{ Validate() error }
	}{
		{"read1", p.Read1},
		{"read2", p.Read2},
		{"out_dir", p.OutDir},
		{"ref_path", p.RefPath},
	} {
		if err := f.value.Validate(); err != nil {
			errs = append(errs, &InvalidParameterError{Flag: f.flag, Reason: err.Error()})
		}
	}

	if strings.TrimSpace(p.MitoGeneticCode) == "" {
		errs = append(errs, &InvalidParameterError{Flag: "mt_gen", Value: p.MitoGeneticCode, Reason: "must not be empty"})
	}

	if p.Kmer <= 0 || p.Kmer >= MaxKmer {
		errs = append(errs, &InvalidParameterError{Flag: "kmer", Value: FormatInt(p.Kmer), Reason: fmt.Sprintf("must be in range 1-%d", MaxKmer-1)})
	}

	for _, f := range []struct {
		flag  string
		value int
	}{
		{"threads", p.Threads},
		{"kc", p.KmerCoverage},
		{"gap_filling_p", p.GapFillingP},
		{"end_recov_p", p.EndRecovP},
		{"subsample", p.Subsample},
	} {
		if f.value <= 0 {
			errs = append(errs, &InvalidParameterError{Flag: f.flag, Value: FormatInt(f.value), Reason: "must be a positive integer"})
		}
	}

	if p.MismatchAllowed < 0 {
		errs = append(errs, &InvalidParameterError{Flag: "mismatch_allowed", Value: FormatInt(p.MismatchAllowed), Reason: "must not be negative"})
	}

	for _, f := range []struct {
		flag  string
		value float64
	}{
		{"abyss_fpr", p.AbyssFPR},
		{"sealer_fpr", p.SealerFPR},
		{"end_recov_sealer_fpr", p.EndRecovSealerFPR},
	} {
		if !(f.value > 0 && f.value < 1) {
			errs = append(errs, &InvalidParameterError{Flag: f.flag, Value: FormatFloat(f.value), Reason: "must be between 0 and 1 (exclusive)"})
		}
	}

	for _, f := range []struct {
		flag  string
		value KmerList
	}{
		{"sealer_k", p.SealerK},
		{"end_recov_sealer_k", p.EndRecovSealerK},
	} {
		if err := f.value.Validate(); err != nil {
			errs = append(errs, &InvalidParameterError{Flag: f.flag, Value: f.value.String(), Reason: "must be a comma-separated list of positive integers"})
		}
	}

	if len(errs) > 0 {
		return &InvalidParamsError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidParameterError.
func (e *InvalidParameterError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("--%s: %s", e.Flag, e.Reason)
	}
	return fmt.Sprintf("--%s %s: %s", e.Flag, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidParameter for errors.Is() compatibility.
func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }

// Error implements the error interface for InvalidParamsError.
func (e *InvalidParamsError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid assembly parameters: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidParams for errors.Is() compatibility.
func (e *InvalidParamsError) Unwrap() error { return ErrInvalidParams }
