// Package analysis implements the call-site argument recovery passes:
// a backward analyzer that reconstructs a register's value by walking
// a method's instructions in decreasing pc order from some query
// point, a forward analyzer that enriches an
// allocation by scanning forward for the constructor call and field
// writes that populate it, and a dependency analyzer that reports the
// static fields, classes, and methods a method's execution touches.
package analysis

import (
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/object"
)

// ResolutionKind classifies how (or whether) a register's value was
// recovered, mirroring the vocabulary used for each case the backward
// analyzer distinguishes.
type ResolutionKind string

const (
	KindConstant     ResolutionKind = "constant"
	KindStaticField  ResolutionKind = "static-field"
	KindInvokeResult ResolutionKind = "invoke-result"
	KindParameter    ResolutionKind = "parameter"
	KindAllocation   ResolutionKind = "allocation"
	KindUnknown      ResolutionKind = "unknown"
)

// Resolution is the outcome of tracing one register at one pc.
type Resolution struct {
	Kind     ResolutionKind
	Value    object.Value
	Resolved bool

	// AllocPC is set when Kind == KindAllocation: the pc of the
	// new-instance/new-array that produced the value,
	// for EnrichAllocation to pick up.
	AllocPC int

	// Detail carries a short human-readable reason for an unresolved
	// result (e.g. "recursion depth exceeded", "uninitialized static"),
	// surfaced in trace logging.
	Detail string
}

func unresolved(kind ResolutionKind, detail string) Resolution {
	return Resolution{Kind: kind, Resolved: false, Detail: detail}
}

func resolved(kind ResolutionKind, v object.Value) Resolution {
	return Resolution{Kind: kind, Value: v, Resolved: true}
}

// destRegister reports the register an instruction writes its result
// into, and whether it writes a (non-wide-aliased) single destination
// register at all. Instructions with no destination register (aput*,
// iput*, sput*, invoke*, if*, goto*, return*, throw, monitor*) report
// ok=false.
func destRegister(instr dex.Instruction) (reg int, ok bool) {
	op := instr.Opcode
	switch {
	case op == dex.OpMove || op == dex.OpMoveWide || op == dex.OpMoveObject || op == dex.OpMoveFrom16:
		return instr.A, true
	case op == dex.OpMoveResult || op == dex.OpMoveResultWide || op == dex.OpMoveResultObject || op == dex.OpMoveException:
		return instr.A, true
	case op == dex.OpConst4 || op == dex.OpConst16 || op == dex.OpConst || op == dex.OpConstHigh16:
		return instr.A, true
	case op == dex.OpConstWide16 || op == dex.OpConstWide32 || op == dex.OpConstWide || op == dex.OpConstWideHigh16:
		return instr.A, true
	case op == dex.OpConstString || op == dex.OpConstStringJumbo || op == dex.OpConstClass:
		return instr.A, true
	case op == dex.OpNewInstance || op == dex.OpNewArray || op == dex.OpCheckCast:
		return instr.A, true
	case op == dex.OpArrayLength:
		return instr.A, true
	case op == dex.OpInstanceOf:
		return instr.A, true
	case op >= dex.OpIget && op <= dex.OpIgetShort:
		return instr.A, true
	case op >= dex.OpSget && op <= dex.OpSgetShort:
		return instr.A, true
	case op >= dex.OpAget && op <= dex.OpAgetShort:
		return instr.A, true
	case (op >= dex.OpNegInt && op <= dex.OpIntToShort):
		return instr.A, true
	case op >= dex.OpBinOp23xBase && op < dex.OpBinOp23xBase+32:
		return instr.A, true
	case op >= dex.OpBinOp12xBase && op < dex.OpBinOp12xBase+32:
		return instr.A, true
	case op >= dex.OpBinOpLit16Base && op < dex.OpBinOpLit16Base+8:
		return instr.A, true
	case op >= dex.OpBinOpLit8Base && op < dex.OpBinOpLit8Base+11:
		return instr.A, true
	case op >= dex.OpCmplFloat && op <= dex.OpCmpLong:
		return instr.A, true
	case op == dex.OpFilledNewArray || op == dex.OpFilledNewArrayRng:
		// result only reachable via a following move-result-object; the
		// filled-new-array instruction itself writes no register.
		return 0, false
	default:
		return 0, false
	}
}

func isBranch(op dex.Opcode) bool {
	switch {
	case op == dex.OpGoto || op == dex.OpGoto16 || op == dex.OpGoto32:
		return true
	case op >= dex.OpIfEq && op <= dex.OpIfLez:
		return true
	case op == dex.OpPackedSwitch || op == dex.OpSparseSwitch:
		return true
	case op == dex.OpReturnVoid || op == dex.OpReturn || op == dex.OpReturnWide || op == dex.OpReturnObject:
		return true
	case op == dex.OpThrow:
		return true
	}
	return false
}

func isAllocation(op dex.Opcode) bool {
	return op == dex.OpNewInstance || op == dex.OpNewArray || op == dex.OpFilledNewArray || op == dex.OpFilledNewArrayRng
}

func isInvokeResultMove(op dex.Opcode) bool {
	return op == dex.OpMoveResult || op == dex.OpMoveResultObject || op == dex.OpMoveResultWide
}

func isInvoke(op dex.Opcode) bool {
	return (op >= dex.OpInvokeVirtual && op <= dex.OpInvokeInterface) || (op >= dex.OpInvokeVirtualRange && op <= dex.OpInvokeInterfaceRange)
}
