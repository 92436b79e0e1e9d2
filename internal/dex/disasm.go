package dex

import (
	"fmt"
	"strings"
)

// Disassemble renders instr (decoded from m's bytecode) as text in
// roughly the form `mnemonic operands`, resolving pool indices against
// m's container-local tables. This is the single source of truth for
// "trace text" used both by the trace map (the handler's per-pc
// disassembly) and by backward-analysis pattern matching.
func Disassemble(m *Method, instr Instruction) string {
	name := mnemonic(instr.Opcode)
	switch instr.Format {
	case Fmt10x:
		return name
	case Fmt12x:
		if instr.Opcode == OpArrayLength || isUnary(instr.Opcode) {
			return fmt.Sprintf("%s v%d, v%d", name, instr.A, instr.B)
		}
		return fmt.Sprintf("%s v%d, v%d", name, instr.A, instr.B)
	case Fmt11n:
		return fmt.Sprintf("%s v%d, #%d", name, instr.A, instr.Lit)
	case Fmt11x:
		return fmt.Sprintf("%s v%d", name, instr.A)
	case Fmt10t, Fmt20t, Fmt30t:
		return fmt.Sprintf("%s +%d", name, instr.Offset)
	case Fmt22x:
		return fmt.Sprintf("%s v%d, v%d", name, instr.A, instr.B)
	case Fmt21t:
		return fmt.Sprintf("%s v%d, +%d", name, instr.A, instr.Offset)
	case Fmt21s, Fmt21h:
		return fmt.Sprintf("%s v%d, #%d", name, instr.A, instr.Lit)
	case Fmt21c:
		return fmt.Sprintf("%s v%d, %s", name, instr.A, resolvePoolText(m, instr))
	case Fmt23x:
		return fmt.Sprintf("%s v%d, v%d, v%d", name, instr.A, instr.B, instr.C)
	case Fmt22b:
		return fmt.Sprintf("%s v%d, v%d, #%d", name, instr.A, instr.B, instr.Lit)
	case Fmt22t:
		return fmt.Sprintf("%s v%d, v%d, +%d", name, instr.A, instr.B, instr.Offset)
	case Fmt22s:
		return fmt.Sprintf("%s v%d, v%d, #%d", name, instr.A, instr.B, instr.Lit)
	case Fmt22c:
		return fmt.Sprintf("%s v%d, v%d, %s", name, instr.A, instr.B, resolvePoolText(m, instr))
	case Fmt31i:
		return fmt.Sprintf("%s v%d, #%d", name, instr.A, instr.Lit)
	case Fmt31t:
		return fmt.Sprintf("%s v%d, +%d", name, instr.A, instr.Offset)
	case Fmt31c:
		return fmt.Sprintf("%s v%d, %s", name, instr.A, resolvePoolText(m, instr))
	case Fmt35c:
		regs := make([]string, len(instr.Regs))
		for i, r := range instr.Regs {
			regs[i] = fmt.Sprintf("v%d", r)
		}
		return fmt.Sprintf("%s {%s}, %s", name, strings.Join(regs, ", "), resolvePoolText(m, instr))
	case Fmt3rc:
		return fmt.Sprintf("%s {v%d .. v%d}, %s", name, instr.Regs[0], instr.Regs[len(instr.Regs)-1], resolvePoolText(m, instr))
	case Fmt51l:
		return fmt.Sprintf("%s v%d, #%d", name, instr.A, instr.Lit)
	default:
		return name
	}
}

func isUnary(op Opcode) bool { return op >= OpNegInt && op <= OpIntToShort }

// resolvePoolText resolves instr.Pool the way its opcode family
// dictates: a method reference for invoke-kind, a field reference for
// i/sget/iput/sput, a quoted string for const-string, a type reference
// for everything else that carries a pool operand.
func resolvePoolText(m *Method, instr Instruction) string {
	switch {
	case isInvoke(instr.Opcode):
		if ref, ok := m.MethodRefAt(instr.Pool); ok {
			return ref.Signature()
		}
	case (instr.Opcode >= OpIget && instr.Opcode <= OpIputShort) || (instr.Opcode >= OpSget && instr.Opcode <= OpSputShort):
		if ref, ok := m.FieldAt(instr.Pool); ok {
			return fmt.Sprintf("%s->%s:%s", ref.Class, ref.Name, ref.Type)
		}
	case instr.Opcode == OpConstString:
		if s, ok := m.StringAt(instr.Pool); ok {
			return fmt.Sprintf("%q", s)
		}
	default:
		if t, ok := m.TypeAt(instr.Pool); ok {
			return t
		}
	}
	return fmt.Sprintf("pool@%d", instr.Pool)
}
