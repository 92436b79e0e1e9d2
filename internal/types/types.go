// Package types holds the small vocabulary of Dalvik type-descriptor
// and value-kind constants shared by every other package. Nothing
// here depends on the rest of the module.
package types

// Kind tags the variant held by an object.Value: the small closed set
// of primitive, reference, and bookkeeping shapes a Dalvik register
// or field can hold.
type Kind int

const (
	KindInt32 Kind = iota
	KindInt64
	KindFloat32
	KindFloat64
	KindBool
	KindChar
	KindNull
	KindString
	KindBoxed
	KindObject
	KindArray
	KindClassRef
	KindException
	KindVoid // last-result / return of a void method
)

func (k Kind) String() string {
	switch k {
	case KindInt32:
		return "int"
	case KindInt64:
		return "long"
	case KindFloat32:
		return "float"
	case KindFloat64:
		return "double"
	case KindBool:
		return "boolean"
	case KindChar:
		return "char"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindBoxed:
		return "boxed"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindClassRef:
		return "class"
	case KindException:
		return "exception"
	case KindVoid:
		return "void"
	default:
		return "unknown"
	}
}

// IsWide reports whether a descriptor's first character denotes a
// value that occupies two consecutive register slots.
func IsWide(descriptorChar byte) bool {
	return descriptorChar == 'J' || descriptorChar == 'D'
}

// ElementKindForDescriptor maps a Dalvik type descriptor's leading
// character to the Kind an array element or field of that type holds
// in a register.
func ElementKindForDescriptor(desc string) Kind {
	if desc == "" {
		return KindNull
	}
	switch desc[0] {
	case 'L', '[':
		return KindObject
	case 'I', 'S', 'B':
		return KindInt32
	case 'J':
		return KindInt64
	case 'F':
		return KindFloat32
	case 'D':
		return KindFloat64
	case 'Z':
		return KindBool
	case 'C':
		return KindChar
	default:
		return KindInt32
	}
}

// ParamWidths returns, for each parameter in a bare parameter list
// such as "II[Ljava/lang/String;J" (no parentheses, no return type),
// the number of register
// slots it occupies (1, or 2 for wide types), in declaration order.
func ParamWidths(paramDescriptor string) []int {
	var widths []int
	i := 0
	for i < len(paramDescriptor) {
		c := paramDescriptor[i]
		switch c {
		case 'L':
			j := i
			for paramDescriptor[j] != ';' {
				j++
			}
			widths = append(widths, 1)
			i = j + 1
		case '[':
			j := i
			for paramDescriptor[j] == '[' {
				j++
			}
			if paramDescriptor[j] == 'L' {
				for paramDescriptor[j] != ';' {
					j++
				}
			}
			widths = append(widths, 1)
			i = j + 1
		case 'J', 'D':
			widths = append(widths, 2)
			i++
		default:
			widths = append(widths, 1)
			i++
		}
	}
	return widths
}

// SplitMethodDescriptor splits "(II)V" into "II" params and "V" return.
func SplitMethodDescriptor(desc string) (params string, ret string) {
	end := indexByte(desc, ')')
	if end < 0 {
		return "", desc
	}
	return desc[1:end], desc[end+1:]
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
