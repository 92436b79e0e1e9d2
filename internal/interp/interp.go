package interp

import (
	"github.com/fatalSec/DaliVM/internal/classloader"
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/gfunction"
	"github.com/fatalSec/DaliVM/internal/object"
	"github.com/fatalSec/DaliVM/internal/session"
	"github.com/fatalSec/DaliVM/internal/types"
)

// Interpreter adapts the package's fetch-decode-dispatch loop to the
// classloader.Interpreter interface, closing the import cycle between
// classloader (method resolution, <clinit>, mock dispatch) and interp
// (bytecode execution) that Attach below sets up.
type Interpreter struct {
	Loader *classloader.Loader
}

// Attach constructs a classloader.Loader wired to a fresh Interpreter
// for every nested frame it runs, the single point where the
// dex/classloader/interp three-package split comes together.
func Attach(idx *dex.Index, sess *session.Session, mocks *gfunction.Registry) *classloader.Loader {
	return classloader.New(idx, sess, mocks, func(l *classloader.Loader) classloader.Interpreter {
		return &Interpreter{Loader: l}
	})
}

// Run builds a register frame for m, places args in its trailing
// parameter window ("this" occupies the first slot of that window for
// instance methods, with wide parameters consuming two consecutive
// slots), and executes it.
func (it *Interpreter) Run(m *dex.Method, args []object.Value) (object.Value, error) {
	frame := NewFrame(m.RegsCount)
	placeArgs(frame, m, args)
	return run(it.Loader, m, frame)
}

// placeArgs lays args out across the callee's trailing InsSize
// registers. For an instance method the first arg is the receiver
// (width 1, always); remaining args follow paramDesc's widths.
func placeArgs(frame *Frame, m *dex.Method, args []object.Value) {
	reg := m.RegsCount - m.InsSize
	if reg < 0 {
		reg = 0
	}

	widths := types.ParamWidths(m.ParamDesc)
	if !m.IsStatic {
		widths = append([]int{1}, widths...)
	}

	for i, v := range args {
		w := 1
		if i < len(widths) {
			w = widths[i]
		}
		if reg+w > len(frame.Regs) {
			break
		}
		if w == 2 {
			frame.SetWideReg(reg, v)
		} else {
			frame.SetReg(reg, v)
		}
		reg += w
	}
}
