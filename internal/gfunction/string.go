package gfunction

import (
	"strconv"

	"github.com/fatalSec/DaliVM/internal/object"
)

// LoadString registers the java/lang/String surface this mock layer
// bundles: length, charAt, toCharArray, getBytes (UTF-16LE), intern,
// equals, concat, format, and valueOf(int) (no other valueOf
// overload is registered). Each hook follows
// jacobin's javaLangThread.go template: type-assert the incoming
// args, operate on the Go-native payload, box and return.
func LoadString(r *Registry) {
	r.RegisterVirtual("Ljava/lang/String;->length()I", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		s := object.GoStringFromStringObject(receiverString(args))
		return object.Int32(int32(len([]rune(s)))), nil
	})

	r.RegisterVirtual("Ljava/lang/String;->charAt(I)C", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		s := []rune(object.GoStringFromStringObject(receiverString(args)))
		idx := int(args[1].I32)
		if idx < 0 || idx >= len(s) {
			return object.Value{}, indexOutOfBounds("String.charAt", idx)
		}
		return object.Char(s[idx]), nil
	})

	r.RegisterVirtual("Ljava/lang/String;->toCharArray()[C", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		s := []rune(object.GoStringFromStringObject(receiverString(args)))
		arr := object.NewArray("C", len(s))
		for i, c := range s {
			_ = arr.Set(i, object.Char(c))
		}
		return object.ArrayVal(arr), nil
	})

	r.RegisterVirtual("Ljava/lang/String;->getBytes()[B", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		s := object.GoStringFromStringObject(receiverString(args))
		return object.ArrayVal(object.ByteArrayFromGoBytes(object.UTF16LEBytes(s))), nil
	})

	r.RegisterVirtual("Ljava/lang/String;->intern()Ljava/lang/String;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return args[0], nil
	})

	r.RegisterVirtual("Ljava/lang/String;->equals(Ljava/lang/Object;)Z", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		if len(args) < 2 || !object.IsStringObject(args[1]) {
			return object.Bool(false), nil
		}
		return object.Bool(object.GoStringFromStringObject(receiverString(args)) == object.GoStringFromStringObject(args[1].Obj)), nil
	})

	r.RegisterVirtual("Ljava/lang/String;->concat(Ljava/lang/String;)Ljava/lang/String;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		a := object.GoStringFromStringObject(receiverString(args))
		b := object.GoStringFromStringObject(args[1].Obj)
		return object.ConstString(a + b), nil
	})

	r.RegisterStatic("Ljava/lang/String;->valueOf(I)Ljava/lang/String;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.ConstString(strconv.Itoa(int(args[0].I32))), nil
	})

	r.RegisterStatic("Ljava/lang/String;->format(Ljava/lang/String;[Ljava/lang/Object;)Ljava/lang/String;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		// Simplified: the mock layer does not implement printf-style
		// substitution, only returns the format string unmodified,
		// following the recoverable-gap policy of a neutral default.
		if len(args) == 0 || !object.IsStringObject(args[0]) {
			return object.ConstString(""), nil
		}
		return args[0], nil
	})
}

func receiverString(args []object.Value) *object.Object {
	if len(args) == 0 {
		return nil
	}
	return args[0].Obj
}

