// harness/harnessgen maintains a test suite's known-globals allowlist.
// To use it, install it with `go install github.com/toejough/harness/harnessgen@latest`
// and run `harnessgen <pkgdir>` to diff the package-level variable names declared in
// that package against the allowlist in harness.toml, or `harnessgen --write <pkgdir>`
// to rewrite the allowlist from the scan.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toejough/harness/harnessgen/run"
)

// main is the entry point of the harnessgen tool.
func main() {
	err := run.Run(os.Args, &realFileSystem{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements FileSystem using os package.
type realFileSystem struct{}

// Glob returns the names of all files matching pattern.
func (fs *realFileSystem) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob failed for pattern %s: %w", pattern, err)
	}

	return matches, nil
}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}
