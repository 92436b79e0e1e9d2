package gfunction

import (
	"strconv"

	"github.com/fatalSec/DaliVM/internal/object"
)

// LoadNumeric registers the java/lang/Integer and java/lang/Long
// parse/valueOf/unbox surface, following jacobin's box-per-file
// convention (one file, several related MethodSignatures entries).
func LoadNumeric(r *Registry) {
	r.RegisterStatic("Ljava/lang/Integer;->parseInt(Ljava/lang/String;)I", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		s := object.GoStringFromStringObject(args[0].Obj)
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return object.Value{}, numberFormatError("Integer.parseInt", s)
		}
		return object.Int32(int32(n)), nil
	})

	r.RegisterStatic("Ljava/lang/Integer;->valueOf(I)Ljava/lang/Integer;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.ObjectVal(object.BoxInt(args[0].I32)), nil
	})

	r.RegisterVirtual("Ljava/lang/Integer;->intValue()I", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.Int32(object.UnboxInt(args[0].Obj)), nil
	})

	r.RegisterStatic("Ljava/lang/Long;->parseLong(Ljava/lang/String;)J", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		s := object.GoStringFromStringObject(args[0].Obj)
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return object.Value{}, numberFormatError("Long.parseLong", s)
		}
		return object.Int64(n), nil
	})

	r.RegisterStatic("Ljava/lang/Long;->valueOf(J)Ljava/lang/Long;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.ObjectVal(object.BoxLong(args[0].I64)), nil
	})

	r.RegisterVirtual("Ljava/lang/Long;->longValue()J", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.Int64(object.UnboxLong(args[0].Obj)), nil
	})

	r.RegisterStatic("Ljava/lang/Boolean;->valueOf(Z)Ljava/lang/Boolean;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.ObjectVal(object.BoxBool(args[0].Bool)), nil
	})

	r.RegisterVirtual("Ljava/lang/Boolean;->booleanValue()Z", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.Bool(object.UnboxBool(args[0].Obj)), nil
	})
}

func numberFormatError(method, text string) error {
	return runtimeError(method, "NumberFormatException: for input string \""+text+"\"")
}
