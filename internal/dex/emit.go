package dex

// The Emit* helpers pack a single instruction into code units using
// this package's own Decode layout. They exist so tests (here and in
// higher-level packages) can build bytecode streams by hand without
// duplicating the bit-packing rules decode.go already knows.

func Emit10x(op Opcode) []uint16 {
	return []uint16{uint16(op)}
}

func Emit12x(op Opcode, a, b int) []uint16 {
	return []uint16{uint16(op) | uint16(a&0x0F)<<8 | uint16(b&0x0F)<<12}
}

func Emit11n(op Opcode, a int, lit int8) []uint16 {
	return []uint16{uint16(op) | uint16(a&0x0F)<<8 | uint16(uint8(lit)&0x0F)<<12}
}

func Emit11x(op Opcode, a int) []uint16 {
	return []uint16{uint16(op) | uint16(byte(a))<<8}
}

func Emit10t(op Opcode, offset int8) []uint16 {
	return []uint16{uint16(op) | uint16(uint8(offset))<<8}
}

func Emit21s(op Opcode, a int, lit int16) []uint16 {
	return []uint16{uint16(op) | uint16(byte(a))<<8, uint16(lit)}
}

func Emit21h(op Opcode, a int, hi16 uint16) []uint16 {
	return []uint16{uint16(op) | uint16(byte(a))<<8, hi16}
}

func Emit21t(op Opcode, a int, offset int16) []uint16 {
	return []uint16{uint16(op) | uint16(byte(a))<<8, uint16(offset)}
}

func Emit21c(op Opcode, a int, poolIdx uint16) []uint16 {
	return []uint16{uint16(op) | uint16(byte(a))<<8, poolIdx}
}

func Emit23x(op Opcode, a, b, c int) []uint16 {
	return []uint16{uint16(op) | uint16(byte(a))<<8, uint16(byte(b)) | uint16(byte(c))<<8}
}

func Emit22b(op Opcode, a, b int, lit int8) []uint16 {
	return []uint16{uint16(op) | uint16(byte(a))<<8, uint16(byte(b)) | uint16(uint8(lit))<<8}
}

func Emit22t(op Opcode, a, b int, offset int16) []uint16 {
	return []uint16{uint16(op) | uint16(a&0x0F)<<8 | uint16(b&0x0F)<<12, uint16(offset)}
}

func Emit22s(op Opcode, a, b int, lit int16) []uint16 {
	return []uint16{uint16(op) | uint16(a&0x0F)<<8 | uint16(b&0x0F)<<12, uint16(lit)}
}

func Emit22c(op Opcode, a, b int, poolIdx uint16) []uint16 {
	return []uint16{uint16(op) | uint16(a&0x0F)<<8 | uint16(b&0x0F)<<12, poolIdx}
}

func Emit31i(op Opcode, a int, lit int32) []uint16 {
	return []uint16{uint16(op) | uint16(byte(a))<<8, uint16(uint32(lit)), uint16(uint32(lit) >> 16)}
}

func Emit31t(op Opcode, a int, offset int32) []uint16 {
	return []uint16{uint16(op) | uint16(byte(a))<<8, uint16(uint32(offset)), uint16(uint32(offset) >> 16)}
}

func Emit31c(op Opcode, a int, poolIdx uint32) []uint16 {
	return []uint16{uint16(op) | uint16(byte(a))<<8, uint16(poolIdx), uint16(poolIdx >> 16)}
}

func Emit35c(op Opcode, poolIdx uint16, regs ...int) []uint16 {
	out := []uint16{uint16(op) | uint16(byte(len(regs)))<<8, poolIdx}
	for _, r := range regs {
		out = append(out, uint16(r))
	}
	return out
}

func Emit3rc(op Opcode, poolIdx uint16, regStart, count int) []uint16 {
	return []uint16{uint16(op) | uint16(byte(count))<<8, poolIdx, uint16(regStart)}
}

func Emit51l(op Opcode, a int, lit int64) []uint16 {
	u := uint64(lit)
	return []uint16{uint16(op) | uint16(byte(a))<<8, uint16(u), uint16(u >> 16), uint16(u >> 32), uint16(u >> 48)}
}

// Cat concatenates instruction-sized chunks into one code stream.
func Cat(chunks ...[]uint16) []uint16 {
	var out []uint16
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}
