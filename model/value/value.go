// Package value defines the dynamically typed value that crosses the
// boundary between callers and registered functions. A Value carries its
// kind at runtime; extraction to a mismatched kind fails with
// *MismatchError rather than coercing.
package value

import (
	"fmt"
)

// Kind identifies the runtime type carried by a Value.
type Kind uint8

const (
	// KindVoid marks the absence of a value (procedure results, nil input)
	KindVoid Kind = iota
	// KindInt carries a 64-bit signed integer
	KindInt
	// KindFloat carries a 64-bit float
	KindFloat
	// KindString carries a string
	KindString
	// KindBool carries a boolean
	KindBool
	// KindAny carries an opaque payload such as a struct or slice
	KindAny
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindAny:
		return "any"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a single dynamically typed value. The zero Value is void.
type Value struct {
	kind Kind
	data interface{}
}

// Int creates an integer value
func Int(v int64) Value {
	return Value{kind: KindInt, data: v}
}

// Float creates a float value
func Float(v float64) Value {
	return Value{kind: KindFloat, data: v}
}

// String creates a string value
func String(v string) Value {
	return Value{kind: KindString, data: v}
}

// Bool creates a boolean value
func Bool(v bool) Value {
	return Value{kind: KindBool, data: v}
}

// Void creates a void value
func Void() Value {
	return Value{}
}

// Any wraps an arbitrary payload without interpreting it. A nil payload
// yields a void value.
func Any(v interface{}) Value {
	if v == nil {
		return Value{}
	}
	return Value{kind: KindAny, data: v}
}

// Kind returns the runtime kind of this value
func (v Value) Kind() Kind {
	return v.kind
}

// IsVoid reports whether this value is void
func (v Value) IsVoid() bool {
	return v.kind == KindVoid
}

// AsInt extracts an integer; it fails when the value holds any other kind
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, NewMismatchError(KindInt.String(), v.kind.String())
	}
	return v.data.(int64), nil
}

// AsFloat extracts a float; it fails when the value holds any other kind
func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, NewMismatchError(KindFloat.String(), v.kind.String())
	}
	return v.data.(float64), nil
}

// AsString extracts a string; it fails when the value holds any other kind
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", NewMismatchError(KindString.String(), v.kind.String())
	}
	return v.data.(string), nil
}

// AsBool extracts a boolean; it fails when the value holds any other kind
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, NewMismatchError(KindBool.String(), v.kind.String())
	}
	return v.data.(bool), nil
}

// Interface returns the raw payload: int64, float64, string, bool, the
// wrapped payload for KindAny, or nil for void.
func (v Value) Interface() interface{} {
	return v.data
}

// String renders the value for diagnostics, i.e. int(42) or void.
func (v Value) String() string {
	if v.kind == KindVoid {
		return "void"
	}
	if v.kind == KindString {
		return fmt.Sprintf("string(%q)", v.data)
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.data)
}

// MismatchError reports an extraction attempt against a value of a
// different kind, i.e. reading a string out of an integer value.
type MismatchError struct {
	Want string
	Got  string
}

// NewMismatchError creates a kind mismatch error
func NewMismatchError(want, got string) *MismatchError {
	return &MismatchError{Want: want, Got: got}
}

// Error implements error
func (e *MismatchError) Error() string {
	return fmt.Sprintf("cannot use %s value as %s", e.Got, e.Want)
}
