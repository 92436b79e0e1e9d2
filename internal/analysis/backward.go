package analysis

import (
	"strconv"

	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/object"
	"github.com/fatalSec/DaliVM/internal/session"
)

// DefaultInvokeResultDepth bounds how many nested invoke-result hops
// the backward analyzer will follow before giving up: bounded
// recursion with a suggested depth of 4.
const DefaultInvokeResultDepth = 4

// StaticLookup is the subset of session.Session the backward analyzer
// needs, kept as an interface so analysis can be tested without a
// full Session.
type StaticLookup interface {
	GetStatic(class, field string) (object.Value, bool)
}

var _ StaticLookup = (*session.Session)(nil)

// TraceRegister reconstructs the value held in reg immediately before
// queryPC executes by walking m's instructions in decreasing pc order.
// depth bounds invoke-result recursion; callers should pass
// DefaultInvokeResultDepth at the top level.
func TraceRegister(idx *dex.Index, statics StaticLookup, m *dex.Method, trace map[int]dex.TraceEntry, queryPC, reg, depth int) Resolution {
	pcs := dex.OrderedPCs(trace)

	// Walk backward over every pc strictly less than queryPC.
	for i := len(pcs) - 1; i >= 0; i-- {
		pc := pcs[i]
		if pc >= queryPC {
			continue
		}
		entry := trace[pc]
		instr := entry.Instr

		if isInvokeResultMove(instr.Opcode) {
			if dst, ok := destRegister(instr); ok && dst == reg {
				return resolveInvokeResult(idx, statics, m, trace, pcs, i, depth)
			}
			continue
		}

		dst, ok := destRegister(instr)
		if !ok || dst != reg {
			continue
		}

		switch instr.Opcode {
		case dex.OpMove, dex.OpMoveWide, dex.OpMoveObject, dex.OpMoveFrom16:
			return TraceRegister(idx, statics, m, trace, pc, instr.B, depth)
		case dex.OpConst4, dex.OpConst16, dex.OpConst, dex.OpConstHigh16:
			return resolved(KindConstant, object.Int32(int32(instr.Lit)))
		case dex.OpConstWide16, dex.OpConstWide32, dex.OpConstWide, dex.OpConstWideHigh16:
			return resolved(KindConstant, object.Int64(instr.Lit))
		case dex.OpConstString, dex.OpConstStringJumbo:
			s, ok := m.StringAt(instr.Pool)
			if !ok {
				return unresolved(KindUnknown, "string pool index out of range")
			}
			return resolved(KindConstant, object.ConstString(s))
		case dex.OpConstClass:
			t, ok := m.TypeAt(instr.Pool)
			if !ok {
				return unresolved(KindUnknown, "type pool index out of range")
			}
			return resolved(KindConstant, object.ClassRef(t))
		case dex.OpSget, dex.OpSgetWide, dex.OpSgetObject, dex.OpSgetBoolean, dex.OpSgetByte, dex.OpSgetChar, dex.OpSgetShort:
			field, ok := m.FieldAt(instr.Pool)
			if !ok {
				return unresolved(KindUnknown, "field pool index out of range")
			}
			if v, ok := statics.GetStatic(field.Class, field.Name); ok {
				return resolved(KindStaticField, v)
			}
			return unresolved(KindStaticField, "static field never initialized: "+field.Class+"->"+field.Name)
		case dex.OpNewInstance, dex.OpNewArray:
			r := unresolved(KindAllocation, "allocation requires forward enrichment")
			r.AllocPC = pc
			return r
		default:
			// Any other register-writing instruction (arithmetic, array
			// read, instance field read, cast, instance-of) defines reg
			// with a value this pass does not statically evaluate.
			return unresolved(KindUnknown, "register defined by "+entry.Text)
		}
	}

	// No write to reg found anywhere before queryPC: either an incoming
	// parameter register or simply never assigned.
	if reg >= m.RegsCount-m.InsSize {
		return unresolved(KindParameter, "incoming parameter register "+strconv.Itoa(reg-(m.RegsCount-m.InsSize)))
	}
	return unresolved(KindUnknown, "register never assigned before query pc")
}

// resolveInvokeResult handles a move-result* at pcs[moveIdx] whose
// preceding invoke instruction is pcs[moveIdx-1]: resolve by
// statically evaluating the callee's return value, bounded by depth.
func resolveInvokeResult(idx *dex.Index, statics StaticLookup, m *dex.Method, trace map[int]dex.TraceEntry, pcs []int, moveIdx, depth int) Resolution {
	if moveIdx == 0 {
		return unresolved(KindInvokeResult, "move-result with no preceding invoke")
	}
	invokePC := pcs[moveIdx-1]
	invokeInstr := trace[invokePC].Instr
	if !isInvoke(invokeInstr.Opcode) {
		return unresolved(KindInvokeResult, "move-result with no preceding invoke")
	}
	if depth <= 0 {
		return unresolved(KindInvokeResult, "recursion depth exceeded")
	}
	ref, ok := m.MethodRefAt(invokeInstr.Pool)
	if !ok {
		return unresolved(KindInvokeResult, "unresolved method reference")
	}
	callee, ok := idx.MethodBySignature(ref.Signature())
	if !ok {
		return unresolved(KindInvokeResult, "callee not found: "+ref.Signature())
	}
	calleeTrace, err := dex.BuildTraceMap(callee)
	if err != nil {
		return unresolved(KindInvokeResult, "callee decode failed: "+err.Error())
	}
	return resolveCalleeReturn(idx, statics, callee, calleeTrace, depth-1)
}

// resolveCalleeReturn finds callee's first return instruction in pc
// order and traces the returned register's value backward from there.
// Later return sites are not examined, and no speculative re-execution
// across divergent paths is attempted.
func resolveCalleeReturn(idx *dex.Index, statics StaticLookup, callee *dex.Method, trace map[int]dex.TraceEntry, depth int) Resolution {
	for _, pc := range dex.OrderedPCs(trace) {
		instr := trace[pc].Instr
		switch instr.Opcode {
		case dex.OpReturnVoid:
			return resolved(KindConstant, object.Void())
		case dex.OpReturn, dex.OpReturnWide, dex.OpReturnObject:
			return TraceRegister(idx, statics, callee, trace, pc, instr.A, depth)
		}
	}
	return unresolved(KindInvokeResult, "callee has no return instruction")
}
