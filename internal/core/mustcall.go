package core

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
)

// CallContext tracks one call-count expectation: the wrapped function, the
// expected cardinality, the observed count, and the stack captured where the
// expectation was created (for diagnostics when it goes unmet).
type CallContext struct {
	name     string
	exact    bool // exact count vs minimum
	expected int
	stack    string

	mu     sync.Mutex
	actual int
}

// Actual returns the number of times the wrapped function has been invoked.
func (cc *CallContext) Actual() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	return cc.actual
}

func (cc *CallContext) invoked() {
	cc.mu.Lock()
	cc.actual++
	cc.mu.Unlock()
}

// check reports the expectation's verdict at verify time.
func (cc *CallContext) check(t TestReporter) {
	t.Helper()

	actual := cc.Actual()

	if cc.exact && actual != cc.expected {
		fail(t, "%s: expected exactly %d call(s), got %d\nregistered at:\n%s",
			cc.name, cc.expected, actual, cc.stack)

		return
	}

	if !cc.exact && actual < cc.expected {
		fail(t, "%s: expected at least %d call(s), got %d\nregistered at:\n%s",
			cc.name, cc.expected, actual, cc.stack)
	}
}

// MustCall wraps fn so that the test fails at verify time unless the wrapper
// has been invoked exactly n times.
func (h *Harness) MustCall(fn func(), n int) func() {
	callCtx := h.newCallContext("mustCall", true, n)

	return func() {
		callCtx.invoked()

		if fn != nil {
			fn()
		}
	}
}

// MustCallAtLeast wraps fn so that the test fails at verify time unless the
// wrapper has been invoked at least n times.
func (h *Harness) MustCallAtLeast(fn func(), n int) func() {
	callCtx := h.newCallContext("mustCallAtLeast", false, n)

	return func() {
		callCtx.invoked()

		if fn != nil {
			fn()
		}
	}
}

// MustNotCall returns a function that fails the test immediately if it is
// ever invoked. The message is included in the failure along with the stack
// captured where the expectation was created.
func (h *Harness) MustNotCall(msg string) func() {
	stack := captureStack()

	return func() {
		h.t.Helper()

		if msg == "" {
			msg = "function should not have been called"
		}

		h.t.Fatalf("mustNotCall: %s\nregistered at:\n%s", msg, stack)
	}
}

// NewCallContext registers a raw call-count expectation without wrapping a
// function. Wrappers that forward typed arguments (built in the facade
// package with generics) count invocations through it.
func (h *Harness) NewCallContext(name string, exact bool, n int) *CallContext {
	return h.newCallContext(name, exact, n)
}

// Invoked records one invocation against the context.
func (cc *CallContext) Invoked() {
	cc.invoked()
}

func (h *Harness) newCallContext(name string, exact bool, n int) *CallContext {
	callCtx := &CallContext{
		name:     name,
		exact:    exact,
		expected: n,
		stack:    captureStack(),
	}
	h.registerCall(callCtx)

	return callCtx
}

// modulePath is the import path prefix of this module's own packages; stack
// capture drops frames under it so diagnostics start at the caller.
const modulePath = "github.com/toejough/harness"

// ownFrame reports whether fn belongs to one of this module's packages. Test
// packages like harness_test do not count: their path continues with an
// underscore rather than a package boundary.
func ownFrame(fn string) bool {
	rest, ok := strings.CutPrefix(fn, modulePath)
	if !ok {
		return false
	}

	return strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, "/")
}

// captureStack formats the caller stack above the harness frames.
func captureStack() string {
	const maxFrames = 16

	pcs := make([]uintptr, maxFrames)

	// Skip runtime.Callers and this function; the harness frames above the
	// registration site are filtered by name below.
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder

	for {
		frame, more := frames.Next()

		// Stop at the test runner; frames below it are noise
		if strings.HasPrefix(frame.Function, "testing.") {
			break
		}

		if !ownFrame(frame.Function) {
			fmt.Fprintf(&b, "    %s\n        %s:%d\n", frame.Function, frame.File, frame.Line)
		}

		if !more {
			break
		}
	}

	return b.String()
}
