package interp

import (
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/object"
)

func init() {
	register(dex.OpNop, func(st *execState, instr dex.Instruction) error { return nil })

	register(dex.OpMove, func(st *execState, instr dex.Instruction) error {
		st.frame.SetReg(instr.A, st.frame.GetReg(instr.B))
		return nil
	})
	register(dex.OpMoveFrom16, func(st *execState, instr dex.Instruction) error {
		st.frame.SetReg(instr.A, st.frame.GetReg(instr.B))
		return nil
	})
	register(dex.OpMoveObject, func(st *execState, instr dex.Instruction) error {
		st.frame.SetReg(instr.A, st.frame.GetReg(instr.B))
		return nil
	})
	register(dex.OpMoveWide, func(st *execState, instr dex.Instruction) error {
		st.frame.SetWideReg(instr.A, st.frame.GetWideReg(instr.B))
		return nil
	})

	register(dex.OpMoveResult, func(st *execState, instr dex.Instruction) error {
		st.frame.SetReg(instr.A, st.frame.LastResult)
		return nil
	})
	register(dex.OpMoveResultObject, func(st *execState, instr dex.Instruction) error {
		st.frame.SetReg(instr.A, st.frame.LastResult)
		return nil
	})
	register(dex.OpMoveResultWide, func(st *execState, instr dex.Instruction) error {
		st.frame.SetWideReg(instr.A, st.frame.LastResult)
		return nil
	})
	register(dex.OpMoveException, func(st *execState, instr dex.Instruction) error {
		// Exception objects are never synthesized by this interpreter
		// (no exception unwinding is modeled); a handler reached via
		// move-exception simply observes null.
		st.frame.SetReg(instr.A, object.Null())
		return nil
	})

	register(dex.OpConst4, func(st *execState, instr dex.Instruction) error {
		st.frame.SetReg(instr.A, object.Int32(int32(instr.Lit)))
		return nil
	})
	register(dex.OpConst16, func(st *execState, instr dex.Instruction) error {
		st.frame.SetReg(instr.A, object.Int32(int32(instr.Lit)))
		return nil
	})
	register(dex.OpConst, func(st *execState, instr dex.Instruction) error {
		st.frame.SetReg(instr.A, object.Int32(int32(instr.Lit)))
		return nil
	})
	register(dex.OpConstHigh16, func(st *execState, instr dex.Instruction) error {
		st.frame.SetReg(instr.A, object.Int32(int32(instr.Lit)))
		return nil
	})
	register(dex.OpConstWide16, func(st *execState, instr dex.Instruction) error {
		st.frame.SetWideReg(instr.A, object.Int64(instr.Lit))
		return nil
	})
	register(dex.OpConstWide32, func(st *execState, instr dex.Instruction) error {
		st.frame.SetWideReg(instr.A, object.Int64(instr.Lit))
		return nil
	})
	register(dex.OpConstWide, func(st *execState, instr dex.Instruction) error {
		st.frame.SetWideReg(instr.A, object.Int64(instr.Lit))
		return nil
	})
	register(dex.OpConstWideHigh16, func(st *execState, instr dex.Instruction) error {
		st.frame.SetWideReg(instr.A, object.Int64(instr.Lit))
		return nil
	})

	register(dex.OpConstString, func(st *execState, instr dex.Instruction) error {
		s, ok := st.method.StringAt(instr.Pool)
		if !ok {
			return stringPoolError(st, instr)
		}
		st.frame.SetReg(instr.A, object.ConstString(s))
		return nil
	})
	register(dex.OpConstStringJumbo, func(st *execState, instr dex.Instruction) error {
		s, ok := st.method.StringAt(instr.Pool)
		if !ok {
			return stringPoolError(st, instr)
		}
		st.frame.SetReg(instr.A, object.ConstString(s))
		return nil
	})
	register(dex.OpConstClass, func(st *execState, instr dex.Instruction) error {
		t, ok := st.method.TypeAt(instr.Pool)
		if !ok {
			return stringPoolError(st, instr)
		}
		st.frame.SetReg(instr.A, object.ClassRef(t))
		return nil
	})

	register(dex.OpMonitorEnter, noop1)
	register(dex.OpMonitorExit, noop1)
}

func noop1(st *execState, instr dex.Instruction) error { return nil }
