package analysis

import "github.com/fatalSec/DaliVM/internal/dex"

// Dependencies is what a method touches when it runs: the static
// fields it reads or writes (each implying the owning class needs
// `<clinit>` to have run), and the methods it calls. Used by the
// classloader to decide which classes to initialize before executing
// a target method.
type Dependencies struct {
	StaticFields       []dex.FieldRef
	ClassesNeedingInit []string
	MethodsCalled      []string
}

// AnalyzeMethod walks m's bytecode once and reports its direct
// dependencies. It does not recurse into called methods; see
// AnalyzeMethodTransitive for that.
func AnalyzeMethod(m *dex.Method) Dependencies {
	var deps Dependencies
	seenClass := map[string]bool{}
	seenMethod := map[string]bool{}
	seenField := map[string]bool{}

	for pc := 0; pc < len(m.Code); {
		instr, err := dex.Decode(m.Code, pc)
		if err != nil {
			break
		}
		switch {
		case (instr.Opcode >= dex.OpSget && instr.Opcode <= dex.OpSgetShort) || (instr.Opcode >= dex.OpSput && instr.Opcode <= dex.OpSputShort):
			if field, ok := m.FieldAt(instr.Pool); ok {
				key := field.Class + "->" + field.Name
				if !seenField[key] {
					seenField[key] = true
					deps.StaticFields = append(deps.StaticFields, field)
				}
				if !seenClass[field.Class] {
					seenClass[field.Class] = true
					deps.ClassesNeedingInit = append(deps.ClassesNeedingInit, field.Class)
				}
			}
		case isInvoke(instr.Opcode):
			if ref, ok := m.MethodRefAt(instr.Pool); ok {
				sig := ref.Signature()
				if !seenMethod[sig] {
					seenMethod[sig] = true
					deps.MethodsCalled = append(deps.MethodsCalled, sig)
				}
				if instr.Opcode == dex.OpInvokeStatic || instr.Opcode == dex.OpInvokeStaticRange {
					if !seenClass[ref.Class] {
						seenClass[ref.Class] = true
						deps.ClassesNeedingInit = append(deps.ClassesNeedingInit, ref.Class)
					}
				}
			}
		case instr.Opcode == dex.OpNewInstance:
			if t, ok := m.TypeAt(instr.Pool); ok && !seenClass[t] {
				seenClass[t] = true
				deps.ClassesNeedingInit = append(deps.ClassesNeedingInit, t)
			}
		}
		pc += instr.Length
	}
	return deps
}

// AnalyzeMethodTransitive follows MethodsCalled recursively through
// idx, merging every reachable method's direct dependencies. A
// visited-signature guard prevents infinite recursion through call
// cycles: optionally transitive, with a cycle guard.
func AnalyzeMethodTransitive(idx *dex.Index, m *dex.Method) Dependencies {
	visited := map[string]bool{m.Signature(): true}
	merged := Dependencies{}
	seenClass := map[string]bool{}
	seenMethod := map[string]bool{}
	seenField := map[string]bool{}

	var walk func(cur *dex.Method)
	walk = func(cur *dex.Method) {
		d := AnalyzeMethod(cur)
		for _, f := range d.StaticFields {
			key := f.Class + "->" + f.Name
			if !seenField[key] {
				seenField[key] = true
				merged.StaticFields = append(merged.StaticFields, f)
			}
		}
		for _, c := range d.ClassesNeedingInit {
			if !seenClass[c] {
				seenClass[c] = true
				merged.ClassesNeedingInit = append(merged.ClassesNeedingInit, c)
			}
		}
		for _, sig := range d.MethodsCalled {
			if !seenMethod[sig] {
				seenMethod[sig] = true
				merged.MethodsCalled = append(merged.MethodsCalled, sig)
			}
			if visited[sig] {
				continue
			}
			visited[sig] = true
			if callee, ok := idx.MethodBySignature(sig); ok {
				walk(callee)
			}
		}
	}
	walk(m)
	return merged
}
