package minirel

import (
	"fmt"
	"strconv"
	"strings"
)

type ValueKind int

const (
	Integer ValueKind = iota + 1
	Real
	Text
)

func (k ValueKind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

func (k ValueKind) IsNumeric() bool {
	return k == Integer || k == Real
}

// Value is a tagged scalar, one of integer, real or text. Only the field
// matching Kind is meaningful. The zero Value has no kind and is invalid.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
}

func NewInteger(v int64) Value {
	return Value{Kind: Integer, Int: v}
}

func NewReal(v float64) Value {
	return Value{Kind: Real, Float: v}
}

func NewText(v string) Value {
	return Value{Kind: Text, Str: v}
}

// NewValue converts a plain Go scalar into a Value. Used by front ends that
// receive untyped input (form fields, parsed literals).
func NewValue(v any) (Value, error) {
	switch theValue := v.(type) {
	case int:
		return NewInteger(int64(theValue)), nil
	case int32:
		return NewInteger(int64(theValue)), nil
	case int64:
		return NewInteger(theValue), nil
	case float32:
		return NewReal(float64(theValue)), nil
	case float64:
		return NewReal(theValue), nil
	case string:
		return NewText(theValue), nil
	case Value:
		return theValue, nil
	default:
		return Value{}, fmt.Errorf("cannot convert %T to a value", v)
	}
}

func (v Value) IsNumeric() bool {
	return v.Kind.IsNumeric()
}

// float64Value widens the numeric payload, integer or real, to float64.
func (v Value) float64Value() float64 {
	if v.Kind == Integer {
		return float64(v.Int)
	}
	return v.Float
}

// Compare orders v against other, returning -1, 0 or 1. Numeric kinds compare
// numerically (integer widened against real), text compares lexicographically
// by code point. Comparing numeric against text fails with TypeMismatch.
func (v Value) Compare(other Value) (int, error) {
	switch {
	case v.Kind == Integer && other.Kind == Integer:
		switch {
		case v.Int < other.Int:
			return -1, nil
		case v.Int > other.Int:
			return 1, nil
		}
		return 0, nil
	case v.IsNumeric() && other.IsNumeric():
		switch {
		case v.float64Value() < other.float64Value():
			return -1, nil
		case v.float64Value() > other.float64Value():
			return 1, nil
		}
		return 0, nil
	case v.Kind == Text && other.Kind == Text:
		return strings.Compare(v.Str, other.Str), nil
	}
	return 0, TypeMismatchError{
		Detail: fmt.Sprintf("cannot compare %s with %s", v.Kind, other.Kind),
	}
}

func (v Value) String() string {
	switch v.Kind {
	case Integer:
		return strconv.FormatInt(v.Int, 10)
	case Real:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case Text:
		return v.Str
	default:
		return "<invalid>"
	}
}

// coerce adapts v to the target column kind where the assignment is
// compatible. The only widening allowed is integer into a real column.
func (v Value) coerce(kind ValueKind) (Value, bool) {
	if v.Kind == kind {
		return v, true
	}
	if v.Kind == Integer && kind == Real {
		return NewReal(float64(v.Int)), true
	}
	return Value{}, false
}
