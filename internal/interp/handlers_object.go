package interp

import (
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/object"
)

func init() {
	register(dex.OpNewInstance, func(st *execState, instr dex.Instruction) error {
		class, ok := st.method.TypeAt(instr.Pool)
		if !ok {
			return stringPoolError(st, instr)
		}
		if factory, ok := st.loader.Mocks.NewInstance(class, nil); ok {
			st.frame.SetReg(instr.A, object.ObjectVal(factory))
			return nil
		}
		st.frame.SetReg(instr.A, object.ObjectVal(object.NewObject(class)))
		return nil
	})

	register(dex.OpCheckCast, func(st *execState, instr dex.Instruction) error {
		// No class hierarchy is modeled beyond descriptor identity
		// (reflective invocation and dynamic loading are out of
		// scope); check-cast never throws here, it just observes.
		return nil
	})
	register(dex.OpInstanceOf, func(st *execState, instr dex.Instruction) error {
		v := st.frame.GetReg(instr.B)
		desc, ok := st.method.TypeAt(instr.Pool)
		if !ok {
			return stringPoolError(st, instr)
		}
		result := !v.IsNull() && v.Obj != nil && v.Obj.InstanceOf(desc)
		st.frame.SetReg(instr.A, object.Bool(result))
		return nil
	})

	registerRange(dex.OpIget, 7, func(offset int) handlerFunc {
		wide := offset == 1
		return func(st *execState, instr dex.Instruction) error {
			recv := st.frame.GetReg(instr.B)
			if recv.Obj == nil {
				return nullReceiver(st, "iget")
			}
			field, ok := st.method.FieldAt(instr.Pool)
			if !ok {
				return stringPoolError(st, instr)
			}
			v := recv.Obj.GetField(field.Name)
			if wide {
				st.frame.SetWideReg(instr.A, v)
			} else {
				st.frame.SetReg(instr.A, v)
			}
			return nil
		}
	})
	registerRange(dex.OpIput, 7, func(offset int) handlerFunc {
		wide := offset == 1
		return func(st *execState, instr dex.Instruction) error {
			recv := st.frame.GetReg(instr.B)
			if recv.Obj == nil {
				return nullReceiver(st, "iput")
			}
			field, ok := st.method.FieldAt(instr.Pool)
			if !ok {
				return stringPoolError(st, instr)
			}
			var v object.Value
			if wide {
				v = st.frame.GetWideReg(instr.A)
			} else {
				v = st.frame.GetReg(instr.A)
			}
			recv.Obj.SetField(field.Name, v)
			return nil
		}
	})

	registerRange(dex.OpSget, 7, func(offset int) handlerFunc {
		wide := offset == 1
		return func(st *execState, instr dex.Instruction) error {
			field, ok := st.method.FieldAt(instr.Pool)
			if !ok {
				return stringPoolError(st, instr)
			}
			if err := st.loader.RunClinit(field.Class); err != nil {
				return err
			}
			v := resolveStaticField(st, field)
			if wide {
				st.frame.SetWideReg(instr.A, v)
			} else {
				st.frame.SetReg(instr.A, v)
			}
			return nil
		}
	})
	registerRange(dex.OpSput, 7, func(offset int) handlerFunc {
		wide := offset == 1
		return func(st *execState, instr dex.Instruction) error {
			field, ok := st.method.FieldAt(instr.Pool)
			if !ok {
				return stringPoolError(st, instr)
			}
			if err := st.loader.RunClinit(field.Class); err != nil {
				return err
			}
			var v object.Value
			if wide {
				v = st.frame.GetWideReg(instr.A)
			} else {
				v = st.frame.GetReg(instr.A)
			}
			st.loader.Session.SetStatic(field.Class, field.Name, v)
			return nil
		}
	})
}

// resolveStaticField consults the mock registry's field overrides
// (e.g. Build$VERSION.SDK_INT) before falling back to the session's
// own static-field store, the same dispatch-order precedent applied to
// field reads rather than method calls.
func resolveStaticField(st *execState, field dex.FieldRef) object.Value {
	if v, ok := st.loader.Mocks.StaticFieldOverride(field.Class, field.Name); ok {
		return v
	}
	if v, ok := st.loader.Session.GetStatic(field.Class, field.Name); ok {
		return v
	}
	return object.Null()
}
