package analysis

import (
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/object"
)

// ConstructorCall records a constructor (`<init>`) invocation observed
// against an allocated object.
type ConstructorCall struct {
	Method MethodCall
}

// FieldWrite records an `iput*` that stores into an allocated object's
// field.
type FieldWrite struct {
	Field dex.FieldRef
	Value Resolution
}

// MethodCall records an invoke instruction's resolved target and
// per-argument resolutions, in argument order (receiver excluded).
type MethodCall struct {
	Target dex.MethodRef
	Args   []Resolution
}

// Enrichment is the forward analyzer's complete picture of what
// happens to a freshly allocated object or array before it leaves the
// local data-flow scope: the constructor call that initialized it,
// any field writes, any setter-style method calls made against it
// (receiver == the allocated register), and fill-array-data contents
// if the allocation was an array.
type Enrichment struct {
	ConstructorCall *ConstructorCall
	FieldWrites     []FieldWrite
	SetterCalls     []MethodCall
	ArrayFillData   []Resolution // only set for fill-array-data targeting the allocation
}

// EnrichAllocation scans forward from allocPC (the new-instance /
// new-array instruction) for everything that populates the value it
// produced in reg. The scan stops at the first of:
// a branch instruction (the scope no longer provably runs), a
// reassignment of reg, or method end — matching the "basic block /
// reassignment / method end" bound the backward analyzer's allocation
// case defers to.
func EnrichAllocation(idx *dex.Index, statics StaticLookup, m *dex.Method, trace map[int]dex.TraceEntry, allocPC, reg int) Enrichment {
	var enr Enrichment
	pcs := dex.OrderedPCs(trace)

	startIdx := -1
	for i, pc := range pcs {
		if pc == allocPC {
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		return enr
	}

	for i := startIdx + 1; i < len(pcs); i++ {
		pc := pcs[i]
		entry := trace[pc]
		instr := entry.Instr

		if isBranch(instr.Opcode) {
			break
		}

		if dst, ok := destRegister(instr); ok && dst == reg && !isInvokeResultMove(instr.Opcode) {
			// reg got overwritten by something other than a move-result
			// tied back to a call against it; scope ends here.
			break
		}

		switch {
		case instr.Opcode == dex.OpFillArrayData:
			if instr.A == reg {
				enr.ArrayFillData = resolveArrayFillData(m.Code, pc+instr.Offset)
			}
		case isInvoke(instr.Opcode):
			if len(instr.Regs) == 0 || instr.Regs[0] != reg {
				continue
			}
			ref, ok := m.MethodRefAt(instr.Pool)
			if !ok {
				continue
			}
			args := make([]Resolution, 0, len(instr.Regs)-1)
			for _, argReg := range instr.Regs[1:] {
				args = append(args, TraceRegister(idx, statics, m, trace, pc, argReg, DefaultInvokeResultDepth))
			}
			call := MethodCall{Target: ref, Args: args}
			if ref.Name == "<init>" {
				enr.ConstructorCall = &ConstructorCall{Method: call}
			} else {
				enr.SetterCalls = append(enr.SetterCalls, call)
			}
		}

		// iput* encodes as 22c: A=value reg, B=object reg, pool=field.
		if instr.Opcode >= dex.OpIput && instr.Opcode <= dex.OpIputShort && instr.B == reg {
			field, ok := m.FieldAt(instr.Pool)
			if ok {
				valRes := TraceRegister(idx, statics, m, trace, pc, instr.A, DefaultInvokeResultDepth)
				enr.FieldWrites = append(enr.FieldWrites, FieldWrite{Field: field, Value: valRes})
			}
		}
	}
	return enr
}

// resolveArrayFillData decodes the packed literal block a
// fill-array-data instruction points at and reports one resolved
// constant per array slot, in order.
func resolveArrayFillData(code []uint16, payloadPos int) []Resolution {
	elementWidth, values, ok := dex.FillArrayDataElements(code, payloadPos)
	if !ok {
		return []Resolution{unresolved(KindUnknown, "fill-array-data payload malformed or out of range")}
	}
	out := make([]Resolution, len(values))
	for i, v := range values {
		if elementWidth == 8 {
			out[i] = resolved(KindConstant, object.Int64(v))
		} else {
			out[i] = resolved(KindConstant, object.Int32(int32(v)))
		}
	}
	return out
}
