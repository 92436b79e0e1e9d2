package interp

import (
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/errs"
	"github.com/fatalSec/DaliVM/internal/object"
)

func init() {
	register(dex.OpReturnVoid, func(st *execState, instr dex.Instruction) error {
		st.returned = true
		st.returnValue = object.Void()
		return nil
	})
	register(dex.OpReturn, func(st *execState, instr dex.Instruction) error {
		st.returned = true
		st.returnValue = st.frame.GetReg(instr.A)
		return nil
	})
	register(dex.OpReturnWide, func(st *execState, instr dex.Instruction) error {
		st.returned = true
		st.returnValue = st.frame.GetWideReg(instr.A)
		return nil
	})
	register(dex.OpReturnObject, func(st *execState, instr dex.Instruction) error {
		st.returned = true
		st.returnValue = st.frame.GetReg(instr.A)
		return nil
	})

	register(dex.OpGoto, branchHandler)
	register(dex.OpGoto16, branchHandler)
	register(dex.OpGoto32, branchHandler)

	registerRange(dex.OpIfEq, 6, func(offset int) handlerFunc {
		test := ifTestKind(offset)
		return func(st *execState, instr dex.Instruction) error {
			a, b := st.frame.GetReg(instr.A).I32, st.frame.GetReg(instr.B).I32
			if test(int64(a), int64(b)) {
				st.nextPC = st.pc + instr.Offset
			}
			return nil
		}
	})
	registerRange(dex.OpIfEqz, 6, func(offset int) handlerFunc {
		test := ifTestKind(offset)
		return func(st *execState, instr dex.Instruction) error {
			a := st.frame.GetReg(instr.A).I32
			if test(int64(a), 0) {
				st.nextPC = st.pc + instr.Offset
			}
			return nil
		}
	})

	register(dex.OpPackedSwitch, func(st *execState, instr dex.Instruction) error {
		key := st.frame.GetReg(instr.A).I32
		target, ok := readPackedSwitchPayload(st.method.Code, st.pc+instr.Offset, key)
		if ok {
			st.nextPC = st.pc + target
		}
		return nil
	})
	register(dex.OpSparseSwitch, func(st *execState, instr dex.Instruction) error {
		key := st.frame.GetReg(instr.A).I32
		target, ok := readSparseSwitchPayload(st.method.Code, st.pc+instr.Offset, key)
		if ok {
			st.nextPC = st.pc + target
		}
		return nil
	})

	register(dex.OpFillArrayData, func(st *execState, instr dex.Instruction) error {
		v := st.frame.GetReg(instr.A)
		if v.Arr == nil {
			return nullReceiver(st, "fill-array-data")
		}
		fillArrayDataPayload(st.method.Code, st.pc+instr.Offset, v.Arr)
		return nil
	})

	register(dex.OpThrow, func(st *execState, instr dex.Instruction) error {
		// No exception unwinding is modeled; throw is surfaced as a
		// fatal runtime error rather than silently continuing.
		return errs.New(errs.KindRuntime, st.method.Signature(), st.pc, "", "throw reached (exceptions are not modeled)")
	})
}

func branchHandler(st *execState, instr dex.Instruction) error {
	st.nextPC = st.pc + instr.Offset
	return nil
}

// ifTestKind returns the comparison a 22t/21t if-test opcode performs,
// indexed 0..5 in eq,ne,lt,ge,gt,le order (matching both OpIfEq..OpIfLe
// and OpIfEqz..OpIfLez's declaration order).
func ifTestKind(offset int) func(a, b int64) bool {
	switch offset {
	case 0:
		return func(a, b int64) bool { return a == b }
	case 1:
		return func(a, b int64) bool { return a != b }
	case 2:
		return func(a, b int64) bool { return a < b }
	case 3:
		return func(a, b int64) bool { return a >= b }
	case 4:
		return func(a, b int64) bool { return a > b }
	default:
		return func(a, b int64) bool { return a <= b }
	}
}

// readPackedSwitchPayload reads a packed-switch-payload pseudo-
// instruction at code unit offset pos (ident 0x0100), returning the
// branch offset (in code units, relative to the switch instruction)
// for key, or (0, false) if key falls outside [first_key, first_key+size).
func readPackedSwitchPayload(code []uint16, pos int, key int32) (int, bool) {
	if pos < 0 || pos+1 >= len(code) || code[pos] != 0x0100 {
		return 0, false
	}
	size := int(code[pos+1])
	firstKey := int32(uint32(code[pos+2]) | uint32(code[pos+3])<<16)
	idx := int(key - firstKey)
	if idx < 0 || idx >= size {
		return 0, false
	}
	targetsStart := pos + 4
	lo := int(code[targetsStart+idx*2])
	hi := int(code[targetsStart+idx*2+1])
	return int(int32(uint32(lo) | uint32(hi)<<16)), true
}

// readSparseSwitchPayload reads a sparse-switch-payload pseudo-
// instruction (ident 0x0200): parallel sorted key and target arrays.
func readSparseSwitchPayload(code []uint16, pos int, key int32) (int, bool) {
	if pos < 0 || pos+1 >= len(code) || code[pos] != 0x0200 {
		return 0, false
	}
	size := int(code[pos+1])
	keysStart := pos + 2
	targetsStart := keysStart + size*2
	for i := 0; i < size; i++ {
		lo := int(code[keysStart+i*2])
		hi := int(code[keysStart+i*2+1])
		k := int32(uint32(lo) | uint32(hi)<<16)
		if k == key {
			tlo := int(code[targetsStart+i*2])
			thi := int(code[targetsStart+i*2+1])
			return int(int32(uint32(tlo) | uint32(thi)<<16)), true
		}
	}
	return 0, false
}

// fillArrayDataPayload reads a fill-array-data-payload pseudo-
// instruction (ident 0x0300) and populates dst element-by-element.
func fillArrayDataPayload(code []uint16, pos int, dst *object.Array) {
	elementWidth, values, ok := dex.FillArrayDataElements(code, pos)
	if !ok {
		return
	}
	for i, v := range values {
		if i >= dst.Len() {
			break
		}
		if elementWidth == 8 {
			_ = dst.Set(i, object.Int64(v))
		} else {
			_ = dst.Set(i, object.Int32(int32(v)))
		}
	}
}
