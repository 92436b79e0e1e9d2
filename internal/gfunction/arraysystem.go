package gfunction

import "github.com/fatalSec/DaliVM/internal/object"

// LoadArraysSystem registers java/util/Arrays.copyOf and
// java/lang/System.arraycopy, the two array-manipulation primitives
// string-decryption routines most commonly lean on.
func LoadArraysSystem(r *Registry) {
	r.RegisterStatic("Ljava/util/Arrays;->copyOf([BI)[B", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		src := args[0].Arr
		n := int(args[1].I32)
		out := object.NewArray("B", n)
		for i := 0; i < n; i++ {
			if src != nil && i < src.Len() {
				v, _ := src.Get(i)
				_ = out.Set(i, v)
			}
		}
		return object.ArrayVal(out), nil
	})

	r.RegisterStatic("Ljava/lang/System;->arraycopy(Ljava/lang/Object;ILjava/lang/Object;II)V", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		src, srcPos := args[0].Arr, int(args[1].I32)
		dst, dstPos := args[2].Arr, int(args[3].I32)
		length := int(args[4].I32)
		if src == nil || dst == nil {
			return object.Void(), runtimeError("System.arraycopy", "null array")
		}
		for i := 0; i < length; i++ {
			v, err := src.Get(srcPos + i)
			if err != nil {
				return object.Value{}, runtimeError("System.arraycopy", err.Error())
			}
			if err := dst.Set(dstPos+i, v); err != nil {
				return object.Value{}, runtimeError("System.arraycopy", err.Error())
			}
		}
		return object.Void(), nil
	})

	r.RegisterStatic("Ljava/lang/System;->currentTimeMillis()J", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		// Deterministic by design: a de-obfuscation target that branches
		// on wall-clock time has no statically meaningful answer, so the
		// mock returns a fixed epoch instead of querying real time.
		return object.Int64(0), nil
	})
}
