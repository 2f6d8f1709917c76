package core

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

type containsMatcher struct {
	substr string
}

func (m containsMatcher) FailureMessage(actual any) string {
	return "expected " + m.substr + " in value"
}

func (m containsMatcher) Match(actual any) (bool, error) {
	s, ok := actual.(string)

	return ok && strings.Contains(s, m.substr), nil
}

func TestMatchValue_DeepEqualFallback(t *testing.T) {
	t.Parallel()

	if ok, _ := MatchValue(42, 42); !ok {
		t.Error("equal values should match")
	}

	ok, msg := MatchValue(42, 43)
	if ok || msg == "" {
		t.Errorf("unequal values should mismatch with a message, got ok=%v msg=%q", ok, msg)
	}
}

func TestMatchValue_MatcherDelegation(t *testing.T) {
	t.Parallel()

	if ok, _ := MatchValue("hello world", containsMatcher{substr: "world"}); !ok {
		t.Error("matcher should have matched")
	}

	ok, msg := MatchValue("hello", containsMatcher{substr: "world"})
	if ok || !strings.Contains(msg, "expected world") {
		t.Errorf("matcher mismatch should surface FailureMessage, got ok=%v msg=%q", ok, msg)
	}
}

func TestMatchValue_RegexpAgainstString(t *testing.T) {
	t.Parallel()

	if ok, _ := MatchValue("error 42 occurred", regexp.MustCompile(`error \d+`)); !ok {
		t.Error("regexp should match string text")
	}

	if ok, _ := MatchValue("no digits here", regexp.MustCompile(`\d+`)); ok {
		t.Error("regexp should not match")
	}
}

func TestMatchValue_RegexpAgainstError(t *testing.T) {
	t.Parallel()

	err := errors.New("dial tcp: connection refused")

	if ok, _ := MatchValue(err, regexp.MustCompile(`connection refused`)); !ok {
		t.Error("regexp should match error text")
	}
}

func TestMatchValue_RegexpAgainstNonText(t *testing.T) {
	t.Parallel()

	ok, msg := MatchValue(42, regexp.MustCompile(`\d+`))
	if ok || !strings.Contains(msg, "non-text") {
		t.Errorf("regexp against non-text should mismatch, got ok=%v msg=%q", ok, msg)
	}
}
