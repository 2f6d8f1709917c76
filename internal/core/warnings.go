package core

import (
	"fmt"
	"sync"
)

// Warning is one emitted diagnostic: a category name plus a message.
type Warning struct {
	Name    string
	Message string
}

func (w Warning) String() string {
	return w.Name + ": " + w.Message
}

// warningExpectation tracks one expected warning: a name, the acceptable
// message forms (exact strings, regexps, or matchers, per MatchValue), and
// how many matching warnings have been observed. Each expectation must be
// observed exactly once per message form by verify time.
type warningExpectation struct {
	name     string
	messages []any
	stack    string

	mu   sync.Mutex
	seen []int // observation count per message form
}

func (we *warningExpectation) check(t TestReporter) {
	t.Helper()

	we.mu.Lock()
	defer we.mu.Unlock()

	for i, msg := range we.messages {
		if we.seen[i] != 1 {
			fail(t, "expected warning %q (%v) once, observed %d time(s)\nregistered at:\n%s",
				we.name, msg, we.seen[i], we.stack)
		}
	}
}

// observe records the warning against this expectation. Returns true if one
// of the message forms matched.
func (we *warningExpectation) observe(w Warning) bool {
	we.mu.Lock()
	defer we.mu.Unlock()

	for i, msg := range we.messages {
		if ok, _ := MatchValue(w.Message, msg); ok {
			we.seen[i]++

			return true
		}
	}

	return false
}

// ExpectWarning registers an expectation that a warning with the given name
// is emitted exactly once per message form before verify time. Each message
// may be an exact string, a *regexp.Regexp, or a Matcher.
func (h *Harness) ExpectWarning(name string, messages ...any) {
	h.t.Helper()

	if len(messages) == 0 {
		h.t.Fatalf("expectWarning %q: at least one message form is required", name)

		return
	}

	exp := &warningExpectation{
		name:     name,
		messages: messages,
		stack:    captureStack(),
		seen:     make([]int, len(messages)),
	}
	h.registerWarning(exp)
}

// Warn emits a warning into the harness. A warning whose name has a
// registered expectation but matches none of its message forms fails the
// test immediately; warnings with no registered name are only logged.
func (h *Harness) Warn(name, format string, args ...any) {
	warning := Warning{Name: name, Message: fmt.Sprintf(format, args...)}

	debugLog().Debug().Str("name", warning.Name).Str("message", warning.Message).Msg("warning emitted")

	h.mu.Lock()
	expectations := h.expectations
	h.mu.Unlock()

	nameRegistered := false

	for _, exp := range expectations {
		if exp.name != warning.Name {
			continue
		}

		nameRegistered = true

		if exp.observe(warning) {
			return
		}
	}

	if nameRegistered {
		h.t.Fatalf("unexpected warning %q: %q matches no registered expectation", warning.Name, warning.Message)
	}
}
