// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidKmerList is the sentinel error wrapped by InvalidKmerListError.
var ErrInvalidKmerList = errors.New("invalid k-mer list")

type (
	// KmerList is a comma-separated, ordered list of k-mer sizes used by
	// sealer, e.g. "60,80,100,120". It is forwarded verbatim.
	KmerList string

	// InvalidKmerListError is returned when a KmerList contains an entry that
	// is not a positive integer.
	InvalidKmerListError struct {
		Value KmerList
		Entry string
	}
)

// String returns the list unchanged.
func (k KmerList) String() string { return string(k) }

// Sizes parses the list into its k-mer sizes.
func (k KmerList) Sizes() ([]int, error) {
	if strings.TrimSpace(string(k)) == "" {
		return nil, &InvalidKmerListError{Value: k}
	}
	parts := strings.Split(string(k), ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return nil, &InvalidKmerListError{Value: k, Entry: part}
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// Validate returns an error unless every entry is a positive integer.
func (k KmerList) Validate() error {
	_, err := k.Sizes()
	return err
}

// Error implements the error interface for InvalidKmerListError.
func (e *InvalidKmerListError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("invalid k-mer list %q: must not be empty", e.Value)
	}
	return fmt.Sprintf("invalid k-mer list %q: %q is not a positive integer", e.Value, e.Entry)
}

// Unwrap returns ErrInvalidKmerList for errors.Is() compatibility.
func (e *InvalidKmerListError) Unwrap() error { return ErrInvalidKmerList }
