package interp

import (
	"github.com/fatalSec/DaliVM/internal/classloader"
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/errs"
	"github.com/fatalSec/DaliVM/internal/object"
	"github.com/fatalSec/DaliVM/internal/tracelog"
)

// execState is threaded through every handler call: the running
// frame, the owning method and its trace map, and the pc the loop
// will advance to next (handlers override nextPC for branches,
// invoke-result coupling, and returns).
type execState struct {
	loader *classloader.Loader
	method *dex.Method
	trace  map[int]dex.TraceEntry

	frame *Frame

	pc     int
	nextPC int

	returned    bool
	returnValue object.Value
}

// handlerFunc executes one decoded instruction against st, mutating
// st.frame and st.nextPC/st.returned as appropriate. It returns an
// error only for fatal conditions (resolution/decode/runtime/policy
// kinds); recoverable gaps are handled inline by returning a neutral
// default instead of an error.
type handlerFunc func(st *execState, instr dex.Instruction) error

var handlers [256]handlerFunc

func register(op dex.Opcode, h handlerFunc) {
	handlers[byte(op)] = h
}

func registerRange(start dex.Opcode, count int, build func(offset int) handlerFunc) {
	for i := 0; i < count; i++ {
		handlers[byte(start)+i] = build(i)
	}
}

// run executes method's bytecode starting at pc 0 against the given
// frame until a return instruction (or a throw / fatal error) ends the
// activation.
func run(loader *classloader.Loader, method *dex.Method, frame *Frame) (object.Value, error) {
	trace, err := dex.BuildTraceMap(method)
	if err != nil {
		return object.Value{}, errs.Wrap(err, errs.KindDecode, method.Signature(), 0, "")
	}

	st := &execState{loader: loader, method: method, trace: trace, frame: frame}
	for {
		entry, ok := trace[st.pc]
		if !ok {
			return object.Value{}, errs.New(errs.KindDecode, method.Signature(), st.pc, "", "pc does not address a decoded instruction boundary")
		}
		h := handlers[byte(entry.Instr.Opcode)]
		if h == nil {
			return object.Value{}, errs.New(errs.KindDecode, method.Signature(), st.pc, entry.Text, "unimplemented opcode")
		}
		st.nextPC = st.pc + entry.Length

		tracelog.TraceInstf("%s pc=%d %s", method.Signature(), st.pc, entry.Text)

		if err := h(st, entry.Instr); err != nil {
			return object.Value{}, errs.Wrap(err, errs.KindRuntime, method.Signature(), st.pc, entry.Text)
		}
		if st.returned {
			return st.returnValue, nil
		}
		st.pc = st.nextPC
	}
}
