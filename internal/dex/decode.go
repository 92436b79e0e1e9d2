package dex

import "fmt"

// Format identifies an instruction's operand layout. Field names
// mirror the real Dalvik format mnemonics (see the Dalvik bytecode
// reference) even though the exact bit packing below is a simplified
// encoding: registers used by invoke-kind instructions are stored one
// per code unit rather than nibble-packed, since wire compactness is
// not behaviorally relevant to anything this package's consumers test
// (pc arithmetic, instruction length, and operand values are).
type Format int

const (
	Fmt10x Format = iota
	Fmt12x
	Fmt11n
	Fmt11x
	Fmt10t
	Fmt20t
	Fmt22x
	Fmt21t
	Fmt21s
	Fmt21h
	Fmt21c
	Fmt23x
	Fmt22b
	Fmt22t
	Fmt22s
	Fmt22c
	Fmt30t
	Fmt31i
	Fmt31t
	Fmt31c
	Fmt35c
	Fmt3rc
	Fmt51l

	// FmtPayload is a packed-switch-payload, sparse-switch-payload, or
	// fill-array-data-payload pseudo-instruction: real Dalvik encodes
	// these as data following a 0x00 (nop) opcode byte whose high byte
	// is a non-zero pseudo-opcode tag, placed out of the normal
	// control-flow path and reached only via a switch/fill-array-data
	// instruction's table offset.
	FmtPayload
)

// Pseudo-opcode tags a 0x00 (nop) instruction's high byte carries when
// it is actually a payload table, not a real nop.
const (
	payloadTagPackedSwitch = 0x01
	payloadTagSparseSwitch = 0x02
	payloadTagFillArray    = 0x03
)

// Instruction is a decoded instruction at some pc. Not every field is
// meaningful for every format; see formatOf for which fields a given
// opcode populates.
type Instruction struct {
	Opcode Opcode
	Format Format
	Length int // in code units (uint16s)

	A, B, C int   // register operands, meaning depends on Format
	Lit     int64 // sign-extended immediate (11n/21s/21h/22s/22b/31i/51l)
	Pool    int   // constant-pool index (21c/31c/22c/35c/3rc)
	Offset  int   // signed branch/table offset in code units (10t/20t/21t/22t/30t/31t)

	Regs []int // ordered argument registers for 35c
}

func formatOf(op Opcode) (Format, error) {
	switch {
	case op == OpNop || op == OpReturnVoid:
		return Fmt10x, nil
	case op == OpMove || op == OpMoveWide || op == OpMoveObject || op == OpArrayLength ||
		(op >= OpNegInt && op <= OpIntToShort) || (op >= OpBinOp12xBase && op < OpBinOp12xBase+32):
		return Fmt12x, nil
	case op == OpConst4:
		return Fmt11n, nil
	case op == OpMoveResult || op == OpMoveResultWide || op == OpMoveResultObject ||
		op == OpMoveException || op == OpReturn || op == OpReturnWide || op == OpReturnObject ||
		op == OpMonitorEnter || op == OpMonitorExit || op == OpThrow:
		return Fmt11x, nil
	case op == OpGoto:
		return Fmt10t, nil
	case op == OpGoto16:
		return Fmt20t, nil
	case op == OpMoveFrom16:
		return Fmt22x, nil
	case (op >= OpIfEqz && op <= OpIfLez):
		return Fmt21t, nil
	case op == OpConst16 || op == OpConstWide16:
		return Fmt21s, nil
	case op == OpConstHigh16 || op == OpConstWideHigh16:
		return Fmt21h, nil
	case op == OpConstString || op == OpConstClass || op == OpCheckCast || op == OpNewInstance ||
		(op >= OpSget && op <= OpSputShort):
		return Fmt21c, nil
	case op == OpArrayLength:
		return Fmt12x, nil
	case (op >= OpAget && op <= OpAputShort) || (op >= OpCmplFloat && op <= OpCmpLong) ||
		(op >= OpBinOp23xBase && op < OpBinOp23xBase+32):
		return Fmt23x, nil
	case op >= OpBinOpLit8Base && op < OpBinOpLit8Base+11:
		return Fmt22b, nil
	case op >= OpIfEq && op <= OpIfLe:
		return Fmt22t, nil
	case op >= OpBinOpLit16Base && op < OpBinOpLit16Base+8:
		return Fmt22s, nil
	case op == OpInstanceOf || op == OpNewArray || (op >= OpIget && op <= OpIputShort):
		return Fmt22c, nil
	case op == OpGoto32:
		return Fmt30t, nil
	case op == OpConst:
		return Fmt31i, nil
	case op == OpFillArrayData || op == OpPackedSwitch || op == OpSparseSwitch:
		return Fmt31t, nil
	case op == OpConstStringJumbo:
		return Fmt31c, nil
	case op == OpFilledNewArray || (op >= OpInvokeVirtual && op <= OpInvokeInterface):
		return Fmt35c, nil
	case op == OpFilledNewArrayRng || (op >= OpInvokeVirtualRange && op <= OpInvokeInterfaceRange):
		return Fmt3rc, nil
	case op == OpConstWide:
		return Fmt51l, nil
	default:
		return 0, fmt.Errorf("dex: unknown opcode 0x%02x", byte(op))
	}
}

func signExtend(v uint16, bits int) int64 {
	shift := uint(64 - bits)
	return int64(int64(v) << shift >> shift)
}

// Decode parses the instruction whose first code unit is code[pc].
func Decode(code []uint16, pc int) (Instruction, error) {
	if pc < 0 || pc >= len(code) {
		return Instruction{}, fmt.Errorf("dex: pc %d out of range (code length %d)", pc, len(code))
	}
	unit0 := code[pc]
	op := Opcode(unit0 & 0xFF)
	hi := byte(unit0 >> 8)

	if op == OpNop && hi != 0 {
		return decodePayload(code, pc, hi)
	}

	format, err := formatOf(op)
	if err != nil {
		return Instruction{}, err
	}

	need := func(n int) error {
		if pc+n > len(code) {
			return fmt.Errorf("dex: truncated instruction at pc %d (opcode 0x%02x needs %d units)", pc, byte(op), n)
		}
		return nil
	}

	instr := Instruction{Opcode: op, Format: format}
	switch format {
	case Fmt10x:
		instr.Length = 1
	case Fmt12x:
		instr.A = int(hi & 0x0F)
		instr.B = int(hi >> 4)
		instr.Length = 1
	case Fmt11n:
		instr.A = int(hi & 0x0F)
		instr.Lit = signExtend(uint16(hi>>4), 4)
		instr.Length = 1
	case Fmt11x:
		instr.A = int(hi)
		instr.Length = 1
	case Fmt10t:
		instr.Offset = int(int8(hi))
		instr.Length = 1
	case Fmt20t:
		if err := need(2); err != nil {
			return Instruction{}, err
		}
		instr.Offset = int(int16(code[pc+1]))
		instr.Length = 2
	case Fmt22x:
		if err := need(2); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi)
		instr.B = int(code[pc+1])
		instr.Length = 2
	case Fmt21t:
		if err := need(2); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi)
		instr.Offset = int(int16(code[pc+1]))
		instr.Length = 2
	case Fmt21s:
		if err := need(2); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi)
		instr.Lit = int64(int16(code[pc+1]))
		instr.Length = 2
	case Fmt21h:
		if err := need(2); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi)
		if op == OpConstHigh16 {
			instr.Lit = int64(int32(uint32(code[pc+1]) << 16))
		} else {
			instr.Lit = int64(int64(uint64(code[pc+1]) << 48))
		}
		instr.Length = 2
	case Fmt21c:
		if err := need(2); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi)
		instr.Pool = int(code[pc+1])
		instr.Length = 2
	case Fmt23x:
		if err := need(2); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi)
		instr.B = int(byte(code[pc+1]))
		instr.C = int(byte(code[pc+1] >> 8))
		instr.Length = 2
	case Fmt22b:
		if err := need(2); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi)
		instr.B = int(byte(code[pc+1]))
		instr.Lit = signExtend(uint16(byte(code[pc+1]>>8)), 8)
		instr.Length = 2
	case Fmt22t:
		if err := need(2); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi & 0x0F)
		instr.B = int(hi >> 4)
		instr.Offset = int(int16(code[pc+1]))
		instr.Length = 2
	case Fmt22s:
		if err := need(2); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi & 0x0F)
		instr.B = int(hi >> 4)
		instr.Lit = int64(int16(code[pc+1]))
		instr.Length = 2
	case Fmt22c:
		if err := need(2); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi & 0x0F)
		instr.B = int(hi >> 4)
		instr.Pool = int(code[pc+1])
		instr.Length = 2
	case Fmt30t:
		if err := need(3); err != nil {
			return Instruction{}, err
		}
		instr.Offset = int(int32(uint32(code[pc+1]) | uint32(code[pc+2])<<16))
		instr.Length = 3
	case Fmt31i:
		if err := need(3); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi)
		instr.Lit = int64(int32(uint32(code[pc+1]) | uint32(code[pc+2])<<16))
		instr.Length = 3
	case Fmt31t:
		if err := need(3); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi)
		instr.Offset = int(int32(uint32(code[pc+1]) | uint32(code[pc+2])<<16))
		instr.Length = 3
	case Fmt31c:
		if err := need(3); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi)
		instr.Pool = int(uint32(code[pc+1]) | uint32(code[pc+2])<<16)
		instr.Length = 3
	case Fmt35c:
		if err := need(2); err != nil {
			return Instruction{}, err
		}
		argCount := int(hi)
		instr.Pool = int(code[pc+1])
		if err := need(2 + argCount); err != nil {
			return Instruction{}, err
		}
		regs := make([]int, argCount)
		for i := 0; i < argCount; i++ {
			regs[i] = int(code[pc+2+i])
		}
		instr.Regs = regs
		instr.Length = 2 + argCount
	case Fmt3rc:
		if err := need(3); err != nil {
			return Instruction{}, err
		}
		argCount := int(hi)
		instr.Pool = int(code[pc+1])
		regStart := int(code[pc+2])
		regs := make([]int, argCount)
		for i := 0; i < argCount; i++ {
			regs[i] = regStart + i
		}
		instr.Regs = regs
		instr.Length = 3
	case Fmt51l:
		if err := need(5); err != nil {
			return Instruction{}, err
		}
		instr.A = int(hi)
		lo := uint64(code[pc+1]) | uint64(code[pc+2])<<16
		high := uint64(code[pc+3]) | uint64(code[pc+4])<<16
		instr.Lit = int64(lo | high<<32)
		instr.Length = 5
	default:
		return Instruction{}, fmt.Errorf("dex: unhandled format for opcode 0x%02x", byte(op))
	}
	return instr, nil
}

// decodePayload computes the length of a switch/fill-array-data
// payload table so a linear scan over a method's code (BuildTraceMap,
// AllCallSites) can step over it without misreading its data as
// further instructions. Payload tables never appear on an executable
// control path; the opcode-level handlers that reach one (packed-
// switch, sparse-switch, fill-array-data) read code directly rather
// than consulting this decoded form.
func decodePayload(code []uint16, pc int, tag byte) (Instruction, error) {
	instr := Instruction{Opcode: OpNop, Format: FmtPayload}
	switch tag {
	case payloadTagPackedSwitch:
		if pc+1 >= len(code) {
			return Instruction{}, fmt.Errorf("dex: truncated packed-switch-payload at pc %d", pc)
		}
		size := int(code[pc+1])
		instr.Length = 4 + size*2
	case payloadTagSparseSwitch:
		if pc+1 >= len(code) {
			return Instruction{}, fmt.Errorf("dex: truncated sparse-switch-payload at pc %d", pc)
		}
		size := int(code[pc+1])
		instr.Length = 2 + size*4
	case payloadTagFillArray:
		if pc+3 >= len(code) {
			return Instruction{}, fmt.Errorf("dex: truncated fill-array-data-payload at pc %d", pc)
		}
		elementWidth := int(code[pc+1])
		size := int(uint32(code[pc+2]) | uint32(code[pc+3])<<16)
		dataUnits := (size*elementWidth + 1) / 2
		instr.Length = 4 + dataUnits
	default:
		return Instruction{}, fmt.Errorf("dex: unknown pseudo-opcode tag 0x%02x at pc %d", tag, pc)
	}
	if pc+instr.Length > len(code) {
		return Instruction{}, fmt.Errorf("dex: payload at pc %d overruns code (length %d)", pc, instr.Length)
	}
	return instr, nil
}

// FillArrayDataElements decodes a fill-array-data-payload pseudo-
// instruction at code unit offset pos (ident 0x0300): the element
// width in bytes and one value per array slot, each sign-extended
// into an int64. ok is false if pos isn't a fill-array-data payload.
// Shared by the interpreter (which writes the values into a live
// array) and the forward analyzer (which reports them as resolved
// constants) so the packed-literal-block layout is decoded in one
// place.
func FillArrayDataElements(code []uint16, pos int) (elementWidth int, values []int64, ok bool) {
	if pos < 0 || pos+3 >= len(code) || code[pos] != 0x0300 {
		return 0, nil, false
	}
	elementWidth = int(code[pos+1])
	size := int(uint32(code[pos+2]) | uint32(code[pos+3])<<16)
	unitsNeeded := (size*elementWidth + 1) / 2
	if pos+4+unitsNeeded > len(code) {
		return 0, nil, false
	}
	raw := make([]byte, 0, size*elementWidth)
	for i := 0; i < unitsNeeded; i++ {
		unit := code[pos+4+i]
		raw = append(raw, byte(unit), byte(unit>>8))
	}
	values = make([]int64, size)
	for i := 0; i < size; i++ {
		var v int64
		for b := 0; b < elementWidth; b++ {
			v |= int64(raw[i*elementWidth+b]) << (8 * b)
		}
		switch elementWidth {
		case 1:
			v = int64(int8(v))
		case 2:
			v = int64(int16(v))
		case 4:
			v = int64(int32(v))
		}
		values[i] = v
	}
	return elementWidth, values, true
}
