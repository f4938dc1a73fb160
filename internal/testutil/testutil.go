// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// MustWriteFile writes data to path, creating parent directories.
// The test fails immediately if the write fails.
func MustWriteFile(t testing.TB, path string, data []byte, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WriteExecutable writes a /bin/sh script named name into dir and returns
// its path. Tests using it are skipped on Windows.
func WriteExecutable(t testing.TB, dir, name, body string) string {
	t.Helper()
	SkipOnWindows(t)

	path := filepath.Join(dir, name)
	MustWriteFile(t, path, []byte("#!/bin/sh\n"+body+"\n"), 0o755)
	return path
}

// PrependPath puts dir first on PATH for the duration of the test.
// Like t.Setenv, it cannot be used in parallel tests.
func PrependPath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// SkipOnWindows skips tests that depend on POSIX shells or permission bits.
func SkipOnWindows(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping: requires a POSIX shell")
	}
}
