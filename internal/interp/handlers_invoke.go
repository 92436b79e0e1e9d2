package interp

import (
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/object"
	"github.com/fatalSec/DaliVM/internal/types"
)

func init() {
	register(dex.OpInvokeVirtual, invokeHandler(false))
	register(dex.OpInvokeSuper, invokeHandler(false))
	register(dex.OpInvokeDirect, invokeHandler(false))
	register(dex.OpInvokeStatic, invokeHandler(true))
	register(dex.OpInvokeInterface, invokeHandler(false))

	register(dex.OpInvokeVirtualRange, invokeHandler(false))
	register(dex.OpInvokeSuperRange, invokeHandler(false))
	register(dex.OpInvokeDirectRange, invokeHandler(false))
	register(dex.OpInvokeStaticRange, invokeHandler(true))
	register(dex.OpInvokeInterfaceRange, invokeHandler(false))
}

// invokeHandler builds the handler for one invoke-kind opcode family.
// Both the 35c (explicit register list) and 3rc (register range)
// encodings populate instr.Regs identically at decode time, so a
// single handler covers both.
func invokeHandler(isStatic bool) handlerFunc {
	return func(st *execState, instr dex.Instruction) error {
		ref, ok := st.method.MethodRefAt(instr.Pool)
		if !ok {
			return stringPoolError(st, instr)
		}

		regs := instr.Regs
		var recv object.Value
		argRegs := regs
		if !isStatic {
			if len(regs) == 0 {
				return nullReceiver(st, "invoke")
			}
			recv = st.frame.GetReg(regs[0])
			argRegs = regs[1:]
		}

		args := readInvokeArgs(st.frame, argRegs, ref.ParamDesc)

		traceText := ""
		if entry, ok := st.trace[st.pc]; ok {
			traceText = entry.Text
		}

		result, err := st.loader.Invoke(ref, recv, args, traceText, isStatic)
		if err != nil {
			return err
		}
		st.frame.LastResult = result
		return nil
	}
}

// readInvokeArgs reads an invoke instruction's argument registers,
// consuming two register slots (but reading once, via GetWideReg) for
// each wide (long/double) parameter per paramDesc, matching how javac
// packs a 35c/3rc argument list.
func readInvokeArgs(frame *Frame, argRegs []int, paramDesc string) []object.Value {
	widths := types.ParamWidths(paramDesc)
	args := make([]object.Value, 0, len(widths))
	i := 0
	for _, w := range widths {
		if i >= len(argRegs) {
			break
		}
		if w == 2 {
			args = append(args, frame.GetWideReg(argRegs[i]))
		} else {
			args = append(args, frame.GetReg(argRegs[i]))
		}
		i += w
	}
	return args
}
