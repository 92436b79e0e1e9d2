package object

import (
	"unicode/utf16"

	"github.com/fatalSec/DaliVM/internal/types"
)

// StringClassName is the Dalvik descriptor for boxed strings.
const StringClassName = "Ljava/lang/String;"

// StringObjectFromGoString boxes a Go string as a java/lang/String
// instance, mirroring jacobin's StringObjectFromJavaByteArray: the
// concrete text lives in the object's opaque payload, not in a
// declared field.
func StringObjectFromGoString(s string) *Object {
	o := NewObject(StringClassName)
	o.Payload = HostValue{Kind: HostString, Str: s}
	return o
}

// GoStringFromStringObject unwraps a boxed String's payload back to a
// Go string. Returns "" for nil or non-string objects, matching the
// mock layer's general policy of a neutral default on gaps.
func GoStringFromStringObject(o *Object) string {
	if o == nil || o.Payload.Kind != HostString {
		return ""
	}
	return o.Payload.Str
}

// ConstString implements const-string's boxing rule: resolve an index
// into the string pool and box the result as a String object whose
// payload holds the Unicode text.
func ConstString(s string) Value {
	return ObjectVal(StringObjectFromGoString(s))
}

// IsStringObject reports whether v holds a boxed java/lang/String.
func IsStringObject(v Value) bool {
	return v.Kind == types.KindObject && v.Obj != nil && v.Obj.ClassName == StringClassName
}

// UTF16LEBytes encodes s the way String.getBytes(StandardCharsets.UTF_16LE)
// does.
func UTF16LEBytes(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*2)
	for _, u := range units {
		out = append(out, byte(u&0xFF), byte(u>>8))
	}
	return out
}
