// Package object implements the value domain of the emulator: the
// tagged Value union held in registers and on the heap, Object
// instances with dynamic fields and an opaque mock payload, and
// typed Arrays.
package object

import (
	"fmt"

	"github.com/fatalSec/DaliVM/internal/types"
)

// Value is the tagged union a register or field slot holds. Only the
// field(s) matching Kind are meaningful; opcode handlers are
// responsible for reading the right one (the interpreter does not
// type-check reads).
type Value struct {
	Kind types.Kind

	I32  int32
	I64  int64
	F32  float32
	F64  float64
	Bool bool
	Char rune

	Str string // KindString: raw Unicode text, pre-boxing

	Obj *Object // KindObject, KindBoxed
	Arr *Array  // KindArray

	ClassRef string // KindClassRef: the class descriptor it names
}

// Null is the canonical null reference value.
func Null() Value { return Value{Kind: types.KindNull} }

// Void is the sentinel value a void method "returns".
func Void() Value { return Value{Kind: types.KindVoid} }

// Int32 constructs an int value.
func Int32(v int32) Value { return Value{Kind: types.KindInt32, I32: v} }

// Int64 constructs a long value.
func Int64(v int64) Value { return Value{Kind: types.KindInt64, I64: v} }

// Float32 constructs a float value.
func Float32(v float32) Value { return Value{Kind: types.KindFloat32, F32: v} }

// Float64 constructs a double value.
func Float64(v float64) Value { return Value{Kind: types.KindFloat64, F64: v} }

// Bool constructs a boolean value.
func Bool(v bool) Value { return Value{Kind: types.KindBool, Bool: v} }

// Char constructs a char value.
func Char(v rune) Value { return Value{Kind: types.KindChar, Char: v} }

// RawString constructs an unboxed string value (KindString). Registers
// loaded by const-string carry the boxed String object built by
// ConstString instead.
func RawString(v string) Value { return Value{Kind: types.KindString, Str: v} }

// ClassRef constructs a class-reference value (const-class).
func ClassRef(descriptor string) Value { return Value{Kind: types.KindClassRef, ClassRef: descriptor} }

// ObjectVal wraps an *Object as a register value.
func ObjectVal(o *Object) Value {
	if o == nil {
		return Null()
	}
	return Value{Kind: types.KindObject, Obj: o}
}

// ArrayVal wraps an *Array as a register value.
func ArrayVal(a *Array) Value {
	if a == nil {
		return Null()
	}
	return Value{Kind: types.KindArray, Arr: a}
}

// IsNull reports whether v is the null reference.
func (v Value) IsNull() bool { return v.Kind == types.KindNull }

func (v Value) String() string {
	switch v.Kind {
	case types.KindInt32:
		return fmt.Sprintf("%d", v.I32)
	case types.KindInt64:
		return fmt.Sprintf("%d", v.I64)
	case types.KindFloat32:
		return fmt.Sprintf("%g", v.F32)
	case types.KindFloat64:
		return fmt.Sprintf("%g", v.F64)
	case types.KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case types.KindChar:
		return fmt.Sprintf("%c", v.Char)
	case types.KindNull:
		return "null"
	case types.KindVoid:
		return "void"
	case types.KindString:
		return v.Str
	case types.KindClassRef:
		return "class:" + v.ClassRef
	case types.KindObject, types.KindBoxed:
		if v.Obj != nil {
			return v.Obj.String()
		}
		return "null"
	case types.KindArray:
		if v.Arr != nil {
			return v.Arr.String()
		}
		return "null"
	default:
		return "<unknown>"
	}
}
