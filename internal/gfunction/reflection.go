package gfunction

import "github.com/fatalSec/DaliVM/internal/object"

// ClassClassName is the descriptor for mocked java/lang/Class
// instances returned by getClass()/forName(), carrying only enough
// state (the named class descriptor) for getName() to answer from;
// getSimpleName() is not registered.
const ClassClassName = "Ljava/lang/Class;"

// LoadReflection registers opaque stand-ins for the small slice of
// java/lang/reflect and Class.* surface obfuscators call incidentally
// (usually getClass().getName() for a log tag, or Class.forName as an
// indirection layer around a literal class name). Reflective
// invocation is out of scope, so these never actually invoke anything;
// they only hand back an object carrying the class name so callers
// asking for Class.getName() get a sensible answer.
func LoadReflection(r *Registry) {
	r.RegisterStatic("Ljava/lang/Class;->forName(Ljava/lang/String;)Ljava/lang/Class;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		name := object.GoStringFromStringObject(args[0].Obj)
		o := object.NewObject(ClassClassName)
		o.Payload = object.HostValue{Kind: object.HostString, Str: name}
		return object.ObjectVal(o), nil
	})

	r.RegisterVirtual("Ljava/lang/Object;->getClass()Ljava/lang/Class;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		recv := args[0].Obj
		o := object.NewObject(ClassClassName)
		if recv != nil {
			o.Payload = object.HostValue{Kind: object.HostString, Str: recv.ClassName}
		}
		return object.ObjectVal(o), nil
	})

	r.RegisterVirtual(ClassClassName+"->getName()Ljava/lang/String;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.ConstString(args[0].Obj.Payload.Str), nil
	})
}
