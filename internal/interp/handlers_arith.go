package interp

import (
	"math"

	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/object"
)

func init() {
	registerRange(dex.OpNegInt, 21, func(offset int) handlerFunc {
		kind := dex.UnaryKind(offset)
		return func(st *execState, instr dex.Instruction) error {
			return execUnary(st, kind, instr)
		}
	})

	registerRange(dex.OpBinOp23xBase, 32, func(offset int) handlerFunc {
		kind := dex.BinOpKind(offset)
		return func(st *execState, instr dex.Instruction) error {
			lhs, rhs := operandFor(st.frame, kind, instr.B), operandFor(st.frame, kind, instr.C)
			return execBinary(st, kind, instr.A, lhs, rhs)
		}
	})
	registerRange(dex.OpBinOp12xBase, 32, func(offset int) handlerFunc {
		kind := dex.BinOpKind(offset)
		return func(st *execState, instr dex.Instruction) error {
			lhs, rhs := operandFor(st.frame, kind, instr.A), operandFor(st.frame, kind, instr.B)
			return execBinary(st, kind, instr.A, lhs, rhs)
		}
	})
	registerRange(dex.OpBinOpLit16Base, 8, func(offset int) handlerFunc {
		kinds := []dex.BinOpKind{dex.BinAddInt, dex.BinSubInt, dex.BinMulInt, dex.BinDivInt, dex.BinRemInt, dex.BinAndInt, dex.BinOrInt, dex.BinXorInt}
		kind := kinds[offset]
		reversed := offset == 1 // rsub-int: literal - register
		return func(st *execState, instr dex.Instruction) error {
			lit := object.Int32(int32(instr.Lit))
			reg := object.Int32(st.frame.GetReg(instr.B).I32)
			if reversed {
				return execBinary(st, kind, instr.A, lit, reg)
			}
			return execBinary(st, kind, instr.A, reg, lit)
		}
	})
	registerRange(dex.OpBinOpLit8Base, 11, func(offset int) handlerFunc {
		kinds := []dex.BinOpKind{dex.BinAddInt, dex.BinSubInt, dex.BinMulInt, dex.BinDivInt, dex.BinRemInt, dex.BinAndInt, dex.BinOrInt, dex.BinXorInt, dex.BinShlInt, dex.BinShrInt, dex.BinUshrInt}
		kind := kinds[offset]
		reversed := offset == 1
		return func(st *execState, instr dex.Instruction) error {
			lit := object.Int32(int32(instr.Lit))
			reg := object.Int32(st.frame.GetReg(instr.B).I32)
			if reversed {
				return execBinary(st, kind, instr.A, lit, reg)
			}
			return execBinary(st, kind, instr.A, reg, lit)
		}
	})

	register(dex.OpCmplFloat, cmpHandler(cmpFloatL))
	register(dex.OpCmpgFloat, cmpHandler(cmpFloatG))
	register(dex.OpCmplDouble, cmpHandler(cmpDoubleL))
	register(dex.OpCmpgDouble, cmpHandler(cmpDoubleG))
	register(dex.OpCmpLong, cmpHandler(cmpLong))

	register(dex.OpArrayLength, func(st *execState, instr dex.Instruction) error {
		v := st.frame.GetReg(instr.B)
		if v.Arr == nil {
			return nullReceiver(st, "array-length")
		}
		st.frame.SetReg(instr.A, object.Int32(int32(v.Arr.Len())))
		return nil
	})
}

// operandFor reads register r as whichever Go-native type kind
// operates over: wide kinds read the wide pair, narrow kinds read the
// single slot.
func operandFor(f *Frame, kind dex.BinOpKind, r int) object.Value {
	if isWideBinKind(kind) {
		return f.GetWideReg(r)
	}
	return f.GetReg(r)
}

func isWideBinKind(kind dex.BinOpKind) bool {
	return kind >= dex.BinAddLong && kind <= dex.BinUshrLong
}

func isFloatBinKind(kind dex.BinOpKind) bool {
	return kind >= dex.BinAddFloat && kind <= dex.BinRemFloat
}

func isDoubleBinKind(kind dex.BinOpKind) bool {
	return kind >= dex.BinAddDouble && kind <= dex.BinRemDouble
}

func execBinary(st *execState, kind dex.BinOpKind, dest int, lhs, rhs object.Value) error {
	switch {
	case isWideBinKind(kind):
		v, err := intLongOp(st, kind-dex.BinAddLong, lhs.I64, rhs.I64, true)
		if err != nil {
			return err
		}
		st.frame.SetWideReg(dest, object.Int64(v))
		return nil
	case isFloatBinKind(kind):
		v := floatOp(kind-dex.BinAddFloat, lhs.F32, rhs.F32)
		st.frame.SetReg(dest, object.Float32(v))
		return nil
	case isDoubleBinKind(kind):
		v := doubleOp(kind-dex.BinAddDouble, lhs.F64, rhs.F64)
		st.frame.SetWideReg(dest, object.Float64(v))
		return nil
	default:
		v, err := intLongOp(st, kind, int64(lhs.I32), int64(rhs.I32), false)
		if err != nil {
			return err
		}
		st.frame.SetReg(dest, object.Int32(int32(v)))
		return nil
	}
}

// intLongOp implements the 11 int/long arithmetic+bitwise ops shared
// by both widths, operating in int64 and letting the caller truncate
// for the 32-bit case. Shift counts mask to 5 bits for int shifts and
// 6 bits for long shifts ("shl-int v0, v1, v2" with a count of 32
// computes v1 << 0, not 0), so wide tells shl/shr/ushr which width's
// shift-distance rule applies.
func intLongOp(st *execState, op dex.BinOpKind, a, b int64, wide bool) (int64, error) {
	shiftMask := uint(31)
	if wide {
		shiftMask = 63
	}
	switch op {
	case dex.BinAddInt:
		return a + b, nil
	case dex.BinSubInt:
		return a - b, nil
	case dex.BinMulInt:
		return a * b, nil
	case dex.BinDivInt:
		if b == 0 {
			return 0, divisionByZero(st)
		}
		return a / b, nil
	case dex.BinRemInt:
		if b == 0 {
			return 0, divisionByZero(st)
		}
		return a % b, nil
	case dex.BinAndInt:
		return a & b, nil
	case dex.BinOrInt:
		return a | b, nil
	case dex.BinXorInt:
		return a ^ b, nil
	case dex.BinShlInt:
		return a << (uint(b) & shiftMask), nil
	case dex.BinShrInt:
		return a >> (uint(b) & shiftMask), nil
	case dex.BinUshrInt:
		if wide {
			return int64(uint64(a) >> (uint(b) & shiftMask)), nil
		}
		// a is an int32 value sign-extended into int64; mask back to
		// 32 bits first so the logical shift doesn't pull in the
		// sign-extension's high 1-bits.
		return int64(int32(uint32(a) >> (uint(b) & shiftMask))), nil
	default:
		return 0, nil
	}
}

func floatOp(op dex.BinOpKind, a, b float32) float32 {
	switch op {
	case dex.BinAddInt:
		return a + b
	case dex.BinSubInt:
		return a - b
	case dex.BinMulInt:
		return a * b
	case dex.BinDivInt:
		return a / b
	case dex.BinRemInt:
		return float32(math.Mod(float64(a), float64(b)))
	default:
		return 0
	}
}

func doubleOp(op dex.BinOpKind, a, b float64) float64 {
	switch op {
	case dex.BinAddInt:
		return a + b
	case dex.BinSubInt:
		return a - b
	case dex.BinMulInt:
		return a * b
	case dex.BinDivInt:
		return a / b
	case dex.BinRemInt:
		return math.Mod(a, b)
	default:
		return 0
	}
}

func execUnary(st *execState, kind dex.UnaryKind, instr dex.Instruction) error {
	switch kind {
	case dex.UnNegInt:
		st.frame.SetReg(instr.A, object.Int32(-st.frame.GetReg(instr.B).I32))
	case dex.UnNotInt:
		st.frame.SetReg(instr.A, object.Int32(^st.frame.GetReg(instr.B).I32))
	case dex.UnNegLong:
		st.frame.SetWideReg(instr.A, object.Int64(-st.frame.GetWideReg(instr.B).I64))
	case dex.UnNotLong:
		st.frame.SetWideReg(instr.A, object.Int64(^st.frame.GetWideReg(instr.B).I64))
	case dex.UnNegFloat:
		st.frame.SetReg(instr.A, object.Float32(-st.frame.GetReg(instr.B).F32))
	case dex.UnNegDouble:
		st.frame.SetWideReg(instr.A, object.Float64(-st.frame.GetWideReg(instr.B).F64))
	case dex.UnIntToLong:
		st.frame.SetWideReg(instr.A, object.Int64(int64(st.frame.GetReg(instr.B).I32)))
	case dex.UnIntToFloat:
		st.frame.SetReg(instr.A, object.Float32(float32(st.frame.GetReg(instr.B).I32)))
	case dex.UnIntToDouble:
		st.frame.SetWideReg(instr.A, object.Float64(float64(st.frame.GetReg(instr.B).I32)))
	case dex.UnLongToInt:
		st.frame.SetReg(instr.A, object.Int32(int32(st.frame.GetWideReg(instr.B).I64)))
	case dex.UnLongToFloat:
		st.frame.SetReg(instr.A, object.Float32(float32(st.frame.GetWideReg(instr.B).I64)))
	case dex.UnLongToDouble:
		st.frame.SetWideReg(instr.A, object.Float64(float64(st.frame.GetWideReg(instr.B).I64)))
	case dex.UnFloatToInt:
		st.frame.SetReg(instr.A, object.Int32(int32(st.frame.GetReg(instr.B).F32)))
	case dex.UnFloatToLong:
		st.frame.SetWideReg(instr.A, object.Int64(int64(st.frame.GetReg(instr.B).F32)))
	case dex.UnFloatToDouble:
		st.frame.SetWideReg(instr.A, object.Float64(float64(st.frame.GetReg(instr.B).F32)))
	case dex.UnDoubleToInt:
		st.frame.SetReg(instr.A, object.Int32(int32(st.frame.GetWideReg(instr.B).F64)))
	case dex.UnDoubleToLong:
		st.frame.SetWideReg(instr.A, object.Int64(int64(st.frame.GetWideReg(instr.B).F64)))
	case dex.UnDoubleToFloat:
		st.frame.SetReg(instr.A, object.Float32(float32(st.frame.GetWideReg(instr.B).F64)))
	case dex.UnIntToByte:
		st.frame.SetReg(instr.A, object.Int32(int32(int8(st.frame.GetReg(instr.B).I32))))
	case dex.UnIntToChar:
		st.frame.SetReg(instr.A, object.Int32(int32(uint16(st.frame.GetReg(instr.B).I32))))
	case dex.UnIntToShort:
		st.frame.SetReg(instr.A, object.Int32(int32(int16(st.frame.GetReg(instr.B).I32))))
	}
	return nil
}

func cmpFloatL(a, b object.Value) int32 { return cmpFloatVals(a.F32, b.F32, -1) }

func cmpFloatG(a, b object.Value) int32 { return cmpFloatVals(a.F32, b.F32, 1) }

func cmpDoubleL(a, b object.Value) int32 { return cmpDoubleVals(a.F64, b.F64, -1) }

func cmpDoubleG(a, b object.Value) int32 { return cmpDoubleVals(a.F64, b.F64, 1) }

func cmpLong(a, b object.Value) int32 {
	switch {
	case a.I64 > b.I64:
		return 1
	case a.I64 < b.I64:
		return -1
	default:
		return 0
	}
}

func cmpFloatVals(a, b float32, nanResult int32) int32 {
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return nanResult
	}
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func cmpDoubleVals(a, b float64, nanResult int32) int32 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return nanResult
	}
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func cmpHandler(f func(a, b object.Value) int32) handlerFunc {
	return func(st *execState, instr dex.Instruction) error {
		var a, b object.Value
		if instr.Opcode == dex.OpCmpLong || instr.Opcode == dex.OpCmplDouble || instr.Opcode == dex.OpCmpgDouble {
			a, b = st.frame.GetWideReg(instr.B), st.frame.GetWideReg(instr.C)
		} else {
			a, b = st.frame.GetReg(instr.B), st.frame.GetReg(instr.C)
		}
		st.frame.SetReg(instr.A, object.Int32(f(a, b)))
		return nil
	}
}
