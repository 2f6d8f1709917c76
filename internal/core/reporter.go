// Package core provides the internal implementation of harness's test-support
// infrastructure: call-count enforcement, global-leak detection, warning
// expectations, error-shape matching, and platform/environment probes.
package core

// TestReporter is the minimal interface harness needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}

// errorReporter is the interface for non-fatal failure reporting. Verify-time
// checks prefer it because Fatalf inside a test cleanup can swallow later
// checks. Satisfied by *testing.T and *testing.B.
type errorReporter interface {
	Errorf(format string, args ...any)
}

// skipper is the interface for skipping a test. Satisfied by *testing.T.
type skipper interface {
	Skip(args ...any)
}

// fail reports a verify-time failure, preferring Errorf when available so
// every registered check gets a chance to report.
func fail(t TestReporter, format string, args ...any) {
	t.Helper()

	if er, ok := t.(errorReporter); ok {
		er.Errorf(format, args...)

		return
	}

	t.Fatalf(format, args...)
}
