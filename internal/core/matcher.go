package core

import (
	"fmt"
	"reflect"
	"regexp"
)

type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// MatchValue checks if actual matches expected.
// If expected implements the Matcher interface, uses its Match method.
// If expected is a *regexp.Regexp and actual is a string (or an error or
// fmt.Stringer, which are matched against their text), uses MatchString.
// Otherwise, uses reflect.DeepEqual for comparison.
// Returns (success, errorMessage). If success is true, errorMessage is empty.
func MatchValue(actual, expected any) (bool, string) {
	// Check if expected is a Matcher
	if matcher, ok := expected.(Matcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	// Regexp expectations match the textual form of the actual value
	if re, ok := expected.(*regexp.Regexp); ok {
		text, ok := stringForm(actual)
		if !ok {
			return false, fmt.Sprintf("expected text matching %v, got non-text value %v", re, actual)
		}

		if re.MatchString(text) {
			return true, ""
		}

		return false, fmt.Sprintf("expected text matching %v, got %q", re, text)
	}

	// Fall back to reflect.DeepEqual for non-matchers
	if reflect.DeepEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %v, got %v", expected, actual)
}

// stringForm extracts the text of a value for regexp matching.
func stringForm(actual any) (string, bool) {
	switch v := actual.(type) {
	case string:
		return v, true
	case error:
		return v.Error(), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}
