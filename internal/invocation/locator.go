// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
)

// ErrResourceNotFound is the sentinel error wrapped by ResourceNotFoundError.
var ErrResourceNotFound = errors.New("resource not found on PATH")

type (
	// Locator finds a named resource on the executable search path and
	// returns its absolute path.
	Locator interface {
		Locate(ctx context.Context, name string) (string, error)
	}

	// PathLocator resolves names the way `which` does: the file must be on
	// PATH and executable.
	PathLocator struct {
		// LookPath defaults to exec.LookPath.
		LookPath func(file string) (string, error)
	}

	// ResourceNotFoundError is returned when a resource is not on PATH.
	ResourceNotFoundError struct {
		Name string
		Err  error
	}
)

// NewPathLocator returns a PathLocator backed by exec.LookPath.
func NewPathLocator() *PathLocator {
	return &PathLocator{LookPath: exec.LookPath}
}

// Locate returns the absolute path of name.
func (l *PathLocator) Locate(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lookPath := l.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	// A match through a relative PATH entry comes back with exec.ErrDot.
	// which(1) resolves those, so accept the path and make it absolute.
	path, err := lookPath(name)
	if err != nil && (path == "" || !errors.Is(err, exec.ErrDot)) {
		return "", &ResourceNotFoundError{Name: name, Err: err}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return abs, nil
}

// Error implements the error interface.
func (e *ResourceNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s not found on PATH: %v", e.Name, e.Err)
	}
	return e.Name + " not found on PATH"
}

// Unwrap returns ErrResourceNotFound and the lookup error, so both
// errors.Is(err, ErrResourceNotFound) and errors.Is(err, exec.ErrNotFound) work.
func (e *ResourceNotFoundError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrResourceNotFound}
	}
	return []error{ErrResourceNotFound, e.Err}
}
