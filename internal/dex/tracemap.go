package dex

/// TraceEntry is one decoded instruction slot in a method's trace map:
// its disassembly text and its length in code units, the two things
// every handler consults before advancing pc.
type TraceEntry struct {
	Instr  Instruction
	Text   string
	Length int
}

// BuildTraceMap decodes m's entire bytecode up front into a pc ->
// TraceEntry map, a dedicated pass so the interpreter core and the
// backward/forward analyzers share one disassembly instead of
// redecoding at each use.
func BuildTraceMap(m *Method) (map[int]TraceEntry, error) {
	trace := make(map[int]TraceEntry)
	for pc := 0; pc < len(m.Code); {
		instr, err := Decode(m.Code, pc)
		if err != nil {
			return nil, err
		}
		trace[pc] = TraceEntry{
			Instr:  instr,
			Text:   Disassemble(m, instr),
			Length: instr.Length,
		}
		pc += instr.Length
	}
	return trace, nil
}

// OrderedPCs returns the method's instruction pcs in ascending order,
// the iteration order the backward analyzer walks in reverse.
func OrderedPCs(trace map[int]TraceEntry) []int {
	pcs := make([]int, 0, len(trace))
	for pc := range trace {
		pcs = append(pcs, pc)
	}
	// insertion sort is fine; methods are small and this runs once per
	// analysis, not per instruction.
	for i := 1; i < len(pcs); i++ {
		for j := i; j > 0 && pcs[j-1] > pcs[j]; j-- {
			pcs[j-1], pcs[j] = pcs[j], pcs[j-1]
		}
	}
	return pcs
}
