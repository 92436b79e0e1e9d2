package interp

import (
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/errs"
	"github.com/fatalSec/DaliVM/internal/object"
)

func init() {
	register(dex.OpNewArray, func(st *execState, instr dex.Instruction) error {
		length := st.frame.GetReg(instr.B).I32
		if length < 0 {
			return errs.New(errs.KindRuntime, st.method.Signature(), st.pc, "", "negative array length")
		}
		desc, ok := st.method.TypeAt(instr.Pool)
		if !ok {
			return stringPoolError(st, instr)
		}
		if len(desc) > 0 && desc[0] == '[' {
			desc = desc[1:] // array type -> element type
		}
		st.frame.SetReg(instr.A, object.ArrayVal(object.NewArray(desc, int(length))))
		return nil
	})

	register(dex.OpFilledNewArray, func(st *execState, instr dex.Instruction) error {
		return filledNewArray(st, instr, instr.Regs)
	})
	register(dex.OpFilledNewArrayRng, func(st *execState, instr dex.Instruction) error {
		return filledNewArray(st, instr, instr.Regs)
	})

	registerRange(dex.OpAget, 7, func(offset int) handlerFunc {
		wide := offset == 1 // aget-wide
		return func(st *execState, instr dex.Instruction) error {
			v := st.frame.GetReg(instr.B)
			if v.Arr == nil {
				return nullReceiver(st, "aget")
			}
			elem, err := v.Arr.Get(int(st.frame.GetReg(instr.C).I32))
			if err != nil {
				return errs.New(errs.KindRuntime, st.method.Signature(), st.pc, "", err.Error())
			}
			if wide {
				st.frame.SetWideReg(instr.A, elem)
			} else {
				st.frame.SetReg(instr.A, elem)
			}
			return nil
		}
	})
	registerRange(dex.OpAput, 7, func(offset int) handlerFunc {
		wide := offset == 1 // aput-wide
		return func(st *execState, instr dex.Instruction) error {
			v := st.frame.GetReg(instr.B)
			if v.Arr == nil {
				return nullReceiver(st, "aput")
			}
			var value object.Value
			if wide {
				value = st.frame.GetWideReg(instr.A)
			} else {
				value = st.frame.GetReg(instr.A)
			}
			if err := v.Arr.Set(int(st.frame.GetReg(instr.C).I32), value); err != nil {
				return errs.New(errs.KindRuntime, st.method.Signature(), st.pc, "", err.Error())
			}
			return nil
		}
	})
}

// filledNewArray materializes a small array inline from its argument
// registers (35c) or register range (3rc). The result lands in
// LastResult, not a destination register, matching real Dalvik
// (consumed by a following move-result-object).
func filledNewArray(st *execState, instr dex.Instruction, regs []int) error {
	desc, ok := st.method.TypeAt(instr.Pool)
	if !ok {
		return stringPoolError(st, instr)
	}
	if len(desc) > 0 && desc[0] == '[' {
		desc = desc[1:] // array type -> element type
	}
	arr := object.NewArray(desc, len(regs))
	for i, r := range regs {
		if err := arr.Set(i, st.frame.GetReg(r)); err != nil {
			return errs.New(errs.KindRuntime, st.method.Signature(), st.pc, "", err.Error())
		}
	}
	st.frame.LastResult = object.ArrayVal(arr)
	return nil
}
