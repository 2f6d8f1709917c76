package core

import (
	"errors"
	"reflect"
)

// ErrorShape describes the expected structure of an error for ExpectsError.
// Zero-valued fields are not checked.
type ErrorShape struct {
	// Code is compared against the error's Code() string method, or its
	// exported Code field, whichever the concrete error carries.
	Code string

	// Type requires some error in the chain to have the same concrete type
	// as this example value.
	Type error

	// Message is matched against the error text: an exact string, a
	// *regexp.Regexp, or a Matcher.
	Message any

	// Fields are matched against same-named exported fields of the first
	// concrete struct error in the chain, each value via MatchValue.
	Fields map[string]any
}

// coder is the conventional interface for errors carrying a code.
type coder interface {
	Code() string
}

// ExpectsError fails the test unless err structurally matches the shape.
func (h *Harness) ExpectsError(err error, shape ErrorShape) {
	h.t.Helper()

	if err == nil {
		h.t.Fatalf("expected an error matching %+v, got nil", shape)

		return
	}

	if shape.Message != nil {
		if ok, msg := MatchValue(err.Error(), shape.Message); !ok {
			h.t.Fatalf("error message: %s", msg)

			return
		}
	}

	if shape.Code != "" {
		code, ok := errorCode(err)
		if !ok {
			h.t.Fatalf("expected error with code %q, but %T carries no code", shape.Code, err)

			return
		}

		if code != shape.Code {
			h.t.Fatalf("expected error code %q, got %q", shape.Code, code)

			return
		}
	}

	if shape.Type != nil && !chainContainsType(err, shape.Type) {
		h.t.Fatalf("expected error chain to contain %T, got %T (%v)", shape.Type, err, err)

		return
	}

	for name, expected := range shape.Fields {
		actual, ok := errorField(err, name)
		if !ok {
			h.t.Fatalf("expected error with field %q, but none in chain of %T carries it", name, err)

			return
		}

		if ok, msg := MatchValue(actual, expected); !ok {
			h.t.Fatalf("error field %q: %s", name, msg)

			return
		}
	}
}

// MustCallError wraps an error-checking callback as a counted expectation:
// the returned func(error) applies ExpectsError on every invocation and must
// be invoked exactly once by verify time.
func (h *Harness) MustCallError(shape ErrorShape) func(error) {
	callCtx := h.newCallContext("expectsError", true, 1)

	return func(err error) {
		h.t.Helper()
		callCtx.invoked()
		h.ExpectsError(err, shape)
	}
}

// walkChain visits every error reachable through Unwrap, including the
// branches of joined errors, stopping at the first error visit accepts.
func walkChain(err error, visit func(error) bool) bool {
	if err == nil {
		return false
	}

	if visit(err) {
		return true
	}

	switch unwrapped := err.(type) {
	case interface{ Unwrap() error }:
		return walkChain(unwrapped.Unwrap(), visit)
	case interface{ Unwrap() []error }:
		for _, e := range unwrapped.Unwrap() {
			if walkChain(e, visit) {
				return true
			}
		}
	}

	return false
}

// errorCode extracts a code from anywhere in the error chain, preferring the
// Code() method over an exported Code string field.
func errorCode(err error) (string, bool) {
	var code string

	found := walkChain(err, func(e error) bool {
		if c, ok := e.(coder); ok {
			code = c.Code()

			return true
		}

		if field, ok := structField(e, "Code"); ok {
			if s, ok := field.(string); ok {
				code = s

				return true
			}
		}

		return false
	})

	return code, found
}

// errorField finds the named exported field on the first concrete struct
// error in the chain that carries it.
func errorField(err error, name string) (any, bool) {
	var value any

	found := walkChain(err, func(e error) bool {
		if field, ok := structField(e, name); ok {
			value = field

			return true
		}

		return false
	})

	return value, found
}

func structField(err error, name string) (any, bool) {
	val := reflect.ValueOf(err)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, false
		}

		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return nil, false
	}

	field := val.FieldByName(name)
	if !field.IsValid() || !field.CanInterface() {
		return nil, false
	}

	return field.Interface(), true
}

// chainContainsType reports whether some error in the chain has the same
// concrete type as want. It defers to errors.As so joined errors are
// searched across every branch.
func chainContainsType(err, want error) bool {
	wantType := reflect.TypeOf(want)
	if wantType == nil {
		return false
	}

	target := reflect.New(wantType)

	return errors.As(err, target.Interface())
}
