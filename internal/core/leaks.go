package core

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/akedrou/textdiff"
	"go.uber.org/goleak"
)

// KnownGlobalsEnv names additional allowed globals, comma-separated.
const KnownGlobalsEnv = "HARNESS_KNOWN_GLOBALS"

// LeakChecker detects process-global state leaked by the code under test.
// Go offers no runtime enumeration of package-level variables, so "globals"
// here are the observable process-global namespace: environment variable
// names. The checker snapshots them at creation and diffs the set at verify
// time against the snapshot plus an allowlist.
type LeakChecker struct {
	mu       sync.Mutex
	baseline map[string]struct{}
	allowed  map[string]struct{}
}

// NewLeakChecker snapshots the current environment. Names listed in
// HARNESS_KNOWN_GLOBALS and in the suite config's known_globals are
// pre-allowed.
func NewLeakChecker() *LeakChecker {
	lc := &LeakChecker{
		baseline: envNames(),
		allowed:  make(map[string]struct{}),
	}

	for _, name := range strings.Split(os.Getenv(KnownGlobalsEnv), ",") {
		if name = strings.TrimSpace(name); name != "" {
			lc.allowed[name] = struct{}{}
		}
	}

	for _, name := range SuiteConfig().KnownGlobals {
		lc.allowed[name] = struct{}{}
	}

	return lc
}

// Allow adds names to the allowlist.
func (lc *LeakChecker) Allow(names ...string) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	for _, name := range names {
		lc.allowed[name] = struct{}{}
	}
}

// Leaked returns the sorted names present in the environment now that were
// neither present at snapshot time nor allowed.
func (lc *LeakChecker) Leaked() []string {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	var leaked []string

	for name := range envNames() {
		if _, ok := lc.baseline[name]; ok {
			continue
		}

		if _, ok := lc.allowed[name]; ok {
			continue
		}

		leaked = append(leaked, name)
	}

	sort.Strings(leaked)

	return leaked
}

// check fails the test if any globals leaked, rendering the known-vs-observed
// sets as a unified diff for diagnostics.
func (lc *LeakChecker) check(t TestReporter) {
	t.Helper()

	leaked := lc.Leaked()
	if len(leaked) == 0 {
		return
	}

	known := lc.knownList()
	observed := append(append([]string{}, known...), leaked...)
	sort.Strings(observed)

	diff := textdiff.Unified(
		"globals (known)",
		"globals (observed)",
		strings.Join(known, "\n")+"\n",
		strings.Join(observed, "\n")+"\n",
	)

	fail(t, "leaked global(s): %s\n%s", strings.Join(leaked, ", "), diff)
}

// knownList returns the sorted union of the baseline and the allowlist.
func (lc *LeakChecker) knownList() []string {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	known := make([]string, 0, len(lc.baseline)+len(lc.allowed))

	for name := range lc.baseline {
		known = append(known, name)
	}

	for name := range lc.allowed {
		if _, ok := lc.baseline[name]; !ok {
			known = append(known, name)
		}
	}

	sort.Strings(known)

	return known
}

func envNames() map[string]struct{} {
	environ := os.Environ()
	names := make(map[string]struct{}, len(environ))

	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		names[name] = struct{}{}
	}

	return names
}

// VerifyNoGoroutineLeaks fails the test if goroutines beyond the harness
// defaults are still running. Delegates to goleak with ignores for the
// runtime's own background goroutines.
func VerifyNoGoroutineLeaks(t TestReporter, extra ...goleak.Option) {
	t.Helper()

	gt, ok := t.(goleak.TestingT)
	if !ok {
		t.Fatalf("reporter %T does not support goroutine leak verification", t)

		return
	}

	opts := append([]goleak.Option{
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("sync.runtime_Semacquire"),
	}, extra...)

	goleak.VerifyNone(gt, opts...)
}
