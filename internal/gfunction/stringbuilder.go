package gfunction

import "github.com/fatalSec/DaliVM/internal/object"

// StringBuilderClassName is the descriptor for mocked StringBuilder
// instances.
const StringBuilderClassName = "Ljava/lang/StringBuilder;"

// LoadStringBuilder registers a host-string-backed StringBuilder: the
// constructor allocates an object whose payload is an empty Go
// string, and append/toString operate on that payload directly
// instead of modeling StringBuilder's internal char-array growth
// (the de-obfuscation use case only ever observes the final string,
// never the intermediate capacity).
func LoadStringBuilder(r *Registry) {
	r.RegisterFactory(StringBuilderClassName, func(args []object.Value) *object.Object {
		o := object.NewObject(StringBuilderClassName)
		seed := ""
		if len(args) > 0 && object.IsStringObject(args[0]) {
			seed = object.GoStringFromStringObject(args[0].Obj)
		}
		o.Payload = object.HostValue{Kind: object.HostString, Str: seed}
		return o
	})

	r.RegisterVirtual(StringBuilderClassName+"-><init>()V", noOpInit)
	r.RegisterVirtual(StringBuilderClassName+"-><init>(Ljava/lang/String;)V", noOpInit)

	appendHook := func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		recv := args[0].Obj
		recv.Payload.Str += stringify(args[1])
		return args[0], nil
	}
	r.RegisterVirtual(StringBuilderClassName+"->append(Ljava/lang/String;)Ljava/lang/StringBuilder;", appendHook)
	r.RegisterVirtual(StringBuilderClassName+"->append(I)Ljava/lang/StringBuilder;", appendHook)
	r.RegisterVirtual(StringBuilderClassName+"->append(C)Ljava/lang/StringBuilder;", appendHook)
	r.RegisterVirtual(StringBuilderClassName+"->append(Ljava/lang/Object;)Ljava/lang/StringBuilder;", appendHook)

	r.RegisterVirtual(StringBuilderClassName+"->toString()Ljava/lang/String;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.ConstString(args[0].Obj.Payload.Str), nil
	})

	r.RegisterVirtual(StringBuilderClassName+"->length()I", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.Int32(int32(len([]rune(args[0].Obj.Payload.Str)))), nil
	})
}

func noOpInit(ctx *Context, args []object.Value, trace string) (object.Value, error) {
	if len(args) > 1 && args[0].Obj != nil && object.IsStringObject(args[1]) {
		args[0].Obj.Payload.Str = object.GoStringFromStringObject(args[1].Obj)
	}
	return object.Void(), nil
}

func stringify(v object.Value) string {
	if object.IsStringObject(v) {
		return object.GoStringFromStringObject(v.Obj)
	}
	return v.String()
}
