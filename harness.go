// Package harness provides test-support helpers for a runtime's own test
// suite: platform detection, call-count assertions, global-leak detection,
// warning expectations, error-shape matching, and OS helper spawning.
//
// This is the public API entry point. Implementation lives in internal/core.
package harness

import (
	"github.com/toejough/harness/internal/core"
)

// CallContext tracks one call-count expectation.
type CallContext = core.CallContext

// Config carries suite-wide harness settings.
type Config = core.Config

// DefaultConfig returns the settings used when no harness.toml is present.
func DefaultConfig() Config {
	return core.DefaultConfig()
}

// ErrorShape describes the expected structure of an error for ExpectsError.
type ErrorShape = core.ErrorShape

// Harness is the per-test coordinator for all registered checks.
type Harness = core.Harness

// NewHarness creates a new Harness coordinator. Most tests should use
// GetOrCreate instead, which shares one Harness per test.
func NewHarness(t TestReporter) *Harness {
	return core.NewHarness(t)
}

// LeakChecker detects process-global state leaked by the code under test.
type LeakChecker = core.LeakChecker

// LoadConfig reads a harness.toml, overlaying only the keys the file defines
// onto the defaults.
func LoadConfig(path string) (Config, error) {
	return core.LoadConfig(path)
}

// Matcher defines the interface for flexible value matching.
type Matcher = core.Matcher

// MatchValue checks if actual matches expected: Matchers match themselves,
// regexps match the text of strings and errors, everything else compares
// with reflect.DeepEqual.
func MatchValue(actual, expected any) (bool, string) {
	return core.MatchValue(actual, expected)
}

// SetConfig installs cfg as the process-wide suite settings. Call it from
// TestMain, before any probe runs.
func SetConfig(cfg Config) {
	core.SetConfig(cfg)
}

// TestReporter is the minimal interface harness needs from test frameworks.
type TestReporter = core.TestReporter

// Warning is one emitted diagnostic: a category name plus a message.
type Warning = core.Warning
