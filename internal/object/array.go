package object

import (
	"fmt"
	"strings"

	"github.com/fatalSec/DaliVM/internal/types"
)

// Array is a fixed-length, element-typed sequence of Values: an
// element-type descriptor plus a slice of that many elements.
type Array struct {
	ElementDescriptor string
	Elements          []Value
}

// NewArray allocates an array of the given primitive-or-object
// element type and length, zero/null-filled per element kind. A
// negative length is the caller's bug to catch before calling this
// (the new-array opcode handler rejects it).
func NewArray(elementDescriptor string, length int) *Array {
	elems := make([]Value, length)
	zero := zeroValueFor(elementDescriptor)
	for i := range elems {
		elems[i] = zero
	}
	return &Array{ElementDescriptor: elementDescriptor, Elements: elems}
}

func zeroValueFor(desc string) Value {
	switch types.ElementKindForDescriptor(desc) {
	case types.KindInt64:
		return Int64(0)
	case types.KindFloat32:
		return Float32(0)
	case types.KindFloat64:
		return Float64(0)
	case types.KindBool:
		return Bool(false)
	case types.KindChar:
		return Char(0)
	case types.KindObject:
		return Null()
	default:
		return Int32(0)
	}
}

// Len returns the array's length.
func (a *Array) Len() int { return len(a.Elements) }

// Get returns the element at idx, or an error if idx is out of
// bounds. Out-of-bounds access is a fatal interpreter error, never a
// silent clamp.
func (a *Array) Get(idx int) (Value, error) {
	if idx < 0 || idx >= len(a.Elements) {
		return Value{}, fmt.Errorf("array index %d out of bounds for length %d", idx, len(a.Elements))
	}
	return a.Elements[idx], nil
}

// Set stores v at idx, or returns an error if idx is out of bounds.
func (a *Array) Set(idx int, v Value) error {
	if idx < 0 || idx >= len(a.Elements) {
		return fmt.Errorf("array index %d out of bounds for length %d", idx, len(a.Elements))
	}
	a.Elements[idx] = v
	return nil
}

func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("%s[%s]", a.ElementDescriptor, strings.Join(parts, ","))
}

// ByteArrayFromGoBytes builds a [B array value from a raw Go byte
// slice, the idiom used throughout the mock layer (Base64.decode,
// String.getBytes) to hand bytes back across the Value boundary.
func ByteArrayFromGoBytes(b []byte) *Array {
	arr := &Array{ElementDescriptor: "B", Elements: make([]Value, len(b))}
	for i, by := range b {
		arr.Elements[i] = Int32(int32(int8(by)))
	}
	return arr
}

// GoBytesFromByteArray reverses ByteArrayFromGoBytes, truncating each
// element to its low 8 bits.
func GoBytesFromByteArray(a *Array) []byte {
	if a == nil {
		return nil
	}
	out := make([]byte, len(a.Elements))
	for i, e := range a.Elements {
		out[i] = byte(e.I32)
	}
	return out
}
