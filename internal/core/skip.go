package core

import (
	"fmt"
	"os"
)

// Hooks for the process-exit skip path, overridable for tests.
var (
	//nolint:gochecknoglobals // Overridable for skip-path tests
	osExit = os.Exit
	//nolint:gochecknoglobals // Overridable for skip-path tests
	skipOut = func(line string) { fmt.Println(line) }
)

// Skip skips the current test. Reporters that support Skip (like *testing.T)
// get a normal skip; otherwise the TAP skip marker is printed and the
// process exits 0, so standalone helper binaries read as skipped too.
func Skip(t TestReporter, reason string) {
	t.Helper()

	if s, ok := t.(skipper); ok {
		s.Skip(reason)

		return
	}

	skipOut("1..0 # Skipped: " + reason)
	osExit(0)
}

// SkipIfNot skips unless the probe holds. Pair with the capability probes:
// SkipIfNot(t, HasOpenSSL(), "no openssl binary").
func SkipIfNot(t TestReporter, probe bool, reason string) {
	t.Helper()

	if !probe {
		Skip(t, reason)
	}
}
