package core

import (
	"sync"
)

// Harness is the per-test coordinator. It owns the call-count registry, the
// warning expectations, and the global-leak checker, and runs all of their
// end-of-test checks in Verify.
type Harness struct {
	t TestReporter

	mu           sync.Mutex
	calls        []*CallContext
	expectations []*warningExpectation
	leaks        *LeakChecker
	verified     bool
}

// NewHarness creates a new Harness coordinator. The leak checker snapshots
// the process environment at this point, so create the harness before the
// code under test runs.
func NewHarness(t TestReporter) *Harness {
	return &Harness{
		t:     t,
		leaks: NewLeakChecker(),
	}
}

// Fatalf fails the test with a formatted message.
// Implements TestReporter interface.
func (h *Harness) Fatalf(format string, args ...any) {
	h.t.Fatalf(format, args...)
}

// Helper marks the calling function as a test helper.
// Implements TestReporter interface.
func (h *Harness) Helper() {
	h.t.Helper()
}

// Leaks returns the harness's global-leak checker.
func (h *Harness) Leaks() *LeakChecker {
	return h.leaks
}

// Verify runs every registered end-of-test check: unmet call counts, unmet
// warning expectations, and leaked globals. It is idempotent; the registry
// arranges for it to run automatically via test cleanup when the reporter
// supports that.
func (h *Harness) Verify() {
	h.t.Helper()

	h.mu.Lock()

	if h.verified {
		h.mu.Unlock()

		return
	}

	h.verified = true
	calls := h.calls
	expectations := h.expectations
	h.mu.Unlock()

	for _, callCtx := range calls {
		callCtx.check(h.t)
	}

	for _, exp := range expectations {
		exp.check(h.t)
	}

	h.leaks.check(h.t)
}

func (h *Harness) registerCall(callCtx *CallContext) {
	h.mu.Lock()
	h.calls = append(h.calls, callCtx)
	h.mu.Unlock()
}

func (h *Harness) registerWarning(exp *warningExpectation) {
	h.mu.Lock()
	h.expectations = append(h.expectations, exp)
	h.mu.Unlock()
}
