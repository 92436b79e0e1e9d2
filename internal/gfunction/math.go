package gfunction

import "github.com/fatalSec/DaliVM/internal/object"

// LoadMath registers java/lang/Math.{abs,max,min} for int and long.
func LoadMath(r *Registry) {
	r.RegisterStatic("Ljava/lang/Math;->abs(I)I", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		v := args[0].I32
		if v < 0 {
			v = -v
		}
		return object.Int32(v), nil
	})
	r.RegisterStatic("Ljava/lang/Math;->abs(J)J", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		v := args[0].I64
		if v < 0 {
			v = -v
		}
		return object.Int64(v), nil
	})
	r.RegisterStatic("Ljava/lang/Math;->max(II)I", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		if args[0].I32 > args[1].I32 {
			return args[0], nil
		}
		return args[1], nil
	})
	r.RegisterStatic("Ljava/lang/Math;->min(II)I", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		if args[0].I32 < args[1].I32 {
			return args[0], nil
		}
		return args[1], nil
	})
	r.RegisterStatic("Ljava/lang/Math;->max(JJ)J", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		if args[0].I64 > args[1].I64 {
			return args[0], nil
		}
		return args[1], nil
	})
	r.RegisterStatic("Ljava/lang/Math;->min(JJ)J", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		if args[0].I64 < args[1].I64 {
			return args[0], nil
		}
		return args[1], nil
	})
}
