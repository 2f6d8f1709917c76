// Package run implements the main logic for the harnessgen tool in a testable way.
package run

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/akedrou/textdiff"
	"github.com/alexflint/go-arg"
	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// Interfaces - Public

// FileSystem interface for mocking.
type FileSystem interface {
	Glob(pattern string) ([]string, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Structs - Private

// cliArgs defines the command-line arguments for the tool.
type cliArgs struct {
	Dir       string `arg:"positional,required"         help:"package directory to scan for package-level variables"`
	Allowlist string `arg:"--allowlist" default:"harness.toml" help:"allowlist file to diff against"`
	Write     bool   `arg:"--write"                     help:"rewrite the allowlist from the scan instead of just reporting"`
}

// allowlistFile is the subset of harness.toml harnessgen reads and rewrites.
type allowlistFile struct {
	KnownGlobals []string `toml:"known_globals"`
}

// unexported variables.
var (
	errNoGoFiles   = errors.New("no .go files found")
	errStaleGlobal = errors.New("allowlist out of date")
)

// Functions - Public

// Run executes the harnessgen tool logic. It takes command-line arguments, a
// FileSystem interface for file operations, and a writer for the report. It
// scans the package directory for package-level variable names, diffs them
// against the allowlist file, and either reports the diff (failing when the
// allowlist is stale) or rewrites the allowlist with --write.
func Run(args []string, fileSys FileSystem, out io.Writer) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	scanned, err := scanGlobals(parsed.Dir, fileSys)
	if err != nil {
		return err
	}

	known, err := loadAllowlist(parsed.Allowlist, fileSys)
	if err != nil {
		return err
	}

	diff := textdiff.Unified(
		parsed.Allowlist+" (current)",
		parsed.Allowlist+" (scanned)",
		joinLines(known),
		joinLines(scanned),
	)

	if diff == "" {
		fmt.Fprintf(out, "%s is up to date (%d known globals)\n", parsed.Allowlist, len(known))

		return nil
	}

	if !parsed.Write {
		fmt.Fprintf(out, "%s\n", diff)

		return fmt.Errorf("%w: %s", errStaleGlobal, parsed.Allowlist)
	}

	if err := writeAllowlist(parsed.Allowlist, scanned, fileSys); err != nil {
		return err
	}

	fmt.Fprintf(out, "wrote %d known globals to %s\n", len(scanned), parsed.Allowlist)

	return nil
}

// Functions - Private

func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "harnessgen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to build argument parser: %w", err)
	}

	if err := parser.Parse(args[1:]); err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// scanGlobals parses every .go file in dir and collects the names of
// package-level var declarations, sorted and deduplicated. The blank
// identifier is skipped.
func scanGlobals(dir string, fileSys FileSystem) ([]string, error) {
	goFiles, err := fileSys.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, err
	}

	if len(goFiles) == 0 {
		return nil, fmt.Errorf("%w in %s", errNoGoFiles, dir)
	}

	names := make(map[string]struct{})

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)

	for _, goFile := range goFiles {
		src, err := fileSys.ReadFile(goFile)
		if err != nil {
			return nil, err
		}

		dstFile, err := dec.ParseFile(goFile, src, 0)
		if err != nil {
			// Skip files with parse errors
			continue
		}

		collectGlobals(dstFile, names)
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}

	sort.Strings(sorted)

	return sorted, nil
}

// collectGlobals adds the names declared by top-level var blocks to names.
func collectGlobals(file *dst.File, names map[string]struct{}) {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*dst.GenDecl)
		if !ok || genDecl.Tok != token.VAR {
			continue
		}

		for _, spec := range genDecl.Specs {
			valueSpec, ok := spec.(*dst.ValueSpec)
			if !ok {
				continue
			}

			for _, ident := range valueSpec.Names {
				if ident.Name == "_" {
					continue
				}

				names[ident.Name] = struct{}{}
			}
		}
	}
}

func loadAllowlist(path string, fileSys FileSystem) ([]string, error) {
	data, err := fileSys.ReadFile(path)
	if err != nil {
		// A missing allowlist reads as empty; --write creates it
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	var file allowlistFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse allowlist %s: %w", path, err)
	}

	known := append([]string{}, file.KnownGlobals...)
	sort.Strings(known)

	return known, nil
}

func writeAllowlist(path string, names []string, fileSys FileSystem) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(allowlistFile{KnownGlobals: names}); err != nil {
		return fmt.Errorf("failed to encode allowlist: %w", err)
	}

	return fileSys.WriteFile(path, buf.Bytes(), 0o644)
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	return strings.Join(lines, "\n") + "\n"
}
