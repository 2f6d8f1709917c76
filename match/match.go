// Package match provides matchers for use with harness's ExpectsError and
// ExpectWarning message forms.
// This package is designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/harness/match"
//	)
//
//	harness.ExpectsError(t, err, harness.ErrorShape{
//	    Message: MatchText(`connect .* refused`),
//	    Fields:  map[string]any{"Port": BeNumerically(">", 0)},
//	})
package match

import (
	"errors"
	"fmt"
	"regexp"
)

// errTypeMismatch is a sentinel error for type assertion failures.
var errTypeMismatch = errors.New("type mismatch")

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// BeAny is a matcher that matches any value.
// Useful when you don't care about a particular field or message.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny Matcher = anyMatcher{}

// HaveErrorCode returns a matcher that matches an error whose Code() method
// or exported Code field equals code.
func HaveErrorCode(code string) Matcher {
	return &codeMatcher{code: code}
}

// MatchText returns a matcher that matches a string, error, or Stringer
// whose text matches the pattern. Panics on an invalid pattern, like
// regexp.MustCompile.
func MatchText(pattern string) Matcher {
	return &textMatcher{re: regexp.MustCompile(pattern)}
}

// Satisfy returns a matcher that uses a predicate function to check for a
// match. The predicate should return nil if the value matches, or an error
// describing the mismatch if it does not.
//
// Example:
//
//	harness.ExpectWarning(t, "deprecation", Satisfy(func(msg string) error {
//	    if !strings.HasPrefix(msg, "DEP") { return fmt.Errorf("no code in %q", msg) }
//	    return nil
//	}))
func Satisfy[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

// anyMatcher is the implementation of the BeAny matcher.
type anyMatcher struct{}

// FailureMessage returns an empty string since BeAny always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

type codeMatcher struct {
	code string
}

func (m *codeMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected error with code %q, got %v", m.code, actual)
}

func (m *codeMatcher) Match(actual any) (bool, error) {
	err, ok := actual.(error)
	if !ok {
		return false, fmt.Errorf("%w: expected error, got %T", errTypeMismatch, actual)
	}

	return chainHasCode(err, m.code), nil
}

// chainHasCode searches the whole unwrap tree, including joined branches,
// for an error whose Code() equals code.
func chainHasCode(err error, code string) bool {
	if err == nil {
		return false
	}

	if c, ok := err.(interface{ Code() string }); ok && c.Code() == code {
		return true
	}

	switch unwrapped := err.(type) {
	case interface{ Unwrap() error }:
		return chainHasCode(unwrapped.Unwrap(), code)
	case interface{ Unwrap() []error }:
		for _, e := range unwrapped.Unwrap() {
			if chainHasCode(e, code) {
				return true
			}
		}
	}

	return false
}

type textMatcher struct {
	re *regexp.Regexp
}

func (m *textMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected text matching %v, got %v", m.re, actual)
}

func (m *textMatcher) Match(actual any) (bool, error) {
	switch v := actual.(type) {
	case string:
		return m.re.MatchString(v), nil
	case error:
		return m.re.MatchString(v.Error()), nil
	case fmt.Stringer:
		return m.re.MatchString(v.String()), nil
	default:
		return false, fmt.Errorf("%w: expected text, got %T", errTypeMismatch, actual)
	}
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	if m.lastErr != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, m.lastErr)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)

	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	m.lastErr = m.predicate(val)

	return m.lastErr == nil, nil
}
