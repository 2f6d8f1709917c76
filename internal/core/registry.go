package core

import (
	"sync"
)

// GetOrCreateHarness returns the Harness for the given test, creating one if
// needed. Multiple calls with the same TestReporter return the same Harness
// instance. This lets helpers registered from different call sites in the
// same test share one registry of end-of-test checks.
//
// If the TestReporter supports Cleanup (like *testing.T), Verify is run and
// the Harness is removed from the registry when the test completes.
func GetOrCreateHarness(t TestReporter) *Harness {
	registryMu.Lock()
	defer registryMu.Unlock()

	if h, ok := registry[t]; ok {
		return h
	}

	h := NewHarness(t)
	registry[t] = h

	// Register cleanup if the TestReporter supports it
	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			h.Verify()

			registryMu.Lock()
			delete(registry, t)
			registryMu.Unlock()
		})
	}

	return h
}

// Verify runs all end-of-test checks registered under t. This is the
// package-level verify for reporters without Cleanup support, and for tests
// that want the checks to run before the test function returns.
//
// If no Harness has been created for t yet, Verify returns immediately.
func Verify(t TestReporter) {
	registryMu.Lock()

	h, ok := registry[t]

	registryMu.Unlock()

	if !ok {
		return
	}

	h.Verify()
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[TestReporter]*Harness)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)
