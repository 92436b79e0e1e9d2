package interp

import (
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/errs"
)

func stringPoolError(st *execState, instr dex.Instruction) error {
	return errs.New(errs.KindDecode, st.method.Signature(), st.pc, "", "pool index out of range")
}

func divisionByZero(st *execState) error {
	return errs.New(errs.KindRuntime, st.method.Signature(), st.pc, "", "division by zero")
}

func nullReceiver(st *execState, op string) error {
	return errs.New(errs.KindRuntime, st.method.Signature(), st.pc, "", "null receiver in "+op)
}
