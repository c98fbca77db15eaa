package tree

import (
	"fmt"
	"strconv"
)

// ValueKind discriminates literal value types.
type ValueKind uint8

// Literal value kinds.
const (
	ValueInt ValueKind = iota
	ValueFloat
	ValueString
	ValueBool
	ValueNil
)

// Value is a literal carried by a Leaf node.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// Int returns an integer literal value.
func Int(v int64) Value { return Value{Kind: ValueInt, Int: v} }

// Float returns a float literal value.
func Float(v float64) Value { return Value{Kind: ValueFloat, Float: v} }

// Str returns a string literal value.
func Str(v string) Value { return Value{Kind: ValueString, Str: v} }

// Bool returns a boolean literal value.
func Bool(v bool) Value { return Value{Kind: ValueBool, Bool: v} }

// Nil returns the nil literal value.
func Nil() Value { return Value{Kind: ValueNil} }

// Equal reports whether two literal values are identical.
func (v Value) Equal(w Value) bool {
	if v.Kind != w.Kind {
		return false
	}
	switch v.Kind {
	case ValueInt:
		return v.Int == w.Int
	case ValueFloat:
		return v.Float == w.Float
	case ValueString:
		return v.Str == w.Str
	case ValueBool:
		return v.Bool == w.Bool
	case ValueNil:
		return true
	default:
		return false
	}
}

// String returns the source spelling of the literal.
func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueString:
		return strconv.Quote(v.Str)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueNil:
		return "nil"
	default:
		return fmt.Sprintf("Value(%d)", uint8(v.Kind))
	}
}
