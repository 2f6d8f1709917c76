package harness

import (
	"go.uber.org/goleak"

	"github.com/toejough/harness/internal/core"
)

// GetOrCreate returns the Harness for the given test, creating one if
// needed. Multiple calls with the same TestReporter return the same Harness
// instance, so helpers registered from different call sites in the same test
// share one registry of end-of-test checks. When the reporter supports
// Cleanup (like *testing.T), Verify runs automatically at test end.
func GetOrCreate(t TestReporter) *Harness {
	return core.GetOrCreateHarness(t)
}

// Verify runs all end-of-test checks registered under t: unmet call counts,
// unmet warning expectations, and leaked globals. Idempotent; needed only
// for reporters without Cleanup support, or to force the checks before the
// test function returns.
func Verify(t TestReporter) {
	core.Verify(t)
}

// MustCall wraps fn so that the test fails unless the wrapper is invoked
// exactly n times before the test ends.
func MustCall(t TestReporter, fn func(), n int) func() {
	return GetOrCreate(t).MustCall(fn, n)
}

// MustCallAtLeast wraps fn so that the test fails unless the wrapper is
// invoked at least n times before the test ends.
func MustCallAtLeast(t TestReporter, fn func(), n int) func() {
	return GetOrCreate(t).MustCallAtLeast(fn, n)
}

// MustNotCall returns a function that fails the test immediately if it is
// ever invoked.
func MustNotCall(t TestReporter, msg string) func() {
	return GetOrCreate(t).MustNotCall(msg)
}

// MustCall1 is the arg-forwarding form of MustCall for single-argument
// callbacks.
func MustCall1[A any](t TestReporter, fn func(A), n int) func(A) {
	callCtx := GetOrCreate(t).NewCallContext("mustCall", true, n)

	return func(arg A) {
		callCtx.Invoked()

		if fn != nil {
			fn(arg)
		}
	}
}

// MustCall2 is the arg-forwarding form of MustCall for two-argument
// callbacks.
func MustCall2[A, B any](t TestReporter, fn func(A, B), n int) func(A, B) {
	callCtx := GetOrCreate(t).NewCallContext("mustCall", true, n)

	return func(a A, b B) {
		callCtx.Invoked()

		if fn != nil {
			fn(a, b)
		}
	}
}

// ExpectsError fails the test unless err structurally matches the shape:
// code, concrete type anywhere in the chain, message text (exact or regexp),
// and exported fields.
func ExpectsError(t TestReporter, err error, shape ErrorShape) {
	t.Helper()
	GetOrCreate(t).ExpectsError(err, shape)
}

// MustCallError returns an error-checking callback that applies ExpectsError
// and must be invoked exactly once before the test ends.
func MustCallError(t TestReporter, shape ErrorShape) func(error) {
	return GetOrCreate(t).MustCallError(shape)
}

// ExpectWarning registers an expectation that a warning with the given name
// is emitted exactly once per message form before the test ends. Messages
// may be exact strings, *regexp.Regexp values, or Matchers.
func ExpectWarning(t TestReporter, name string, messages ...any) {
	GetOrCreate(t).ExpectWarning(name, messages...)
}

// Warn emits a warning into the test's harness. A warning whose name has a
// registered expectation but matches none of its message forms fails the
// test immediately.
func Warn(t TestReporter, name, format string, args ...any) {
	GetOrCreate(t).Warn(name, format, args...)
}

// AllowGlobals adds names to the test's global-leak allowlist.
func AllowGlobals(t TestReporter, names ...string) {
	GetOrCreate(t).Leaks().Allow(names...)
}

// VerifyNoGoroutineLeaks fails the test if goroutines beyond the harness
// defaults are still running.
func VerifyNoGoroutineLeaks(t TestReporter, extra ...goleak.Option) {
	t.Helper()
	core.VerifyNoGoroutineLeaks(t, extra...)
}
