// Package classloader resolves methods by signature or trace text,
// orchestrates <clinit> execution, and drives nested interpreter
// frames for invoke-kind instructions. It is the glue between
// dex.Index (static bytecode), gfunction (mocked native surface), and
// interp (the register-machine core).
package classloader

import (
	"github.com/fatalSec/DaliVM/internal/analysis"
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/errs"
	"github.com/fatalSec/DaliVM/internal/gfunction"
	"github.com/fatalSec/DaliVM/internal/object"
	"github.com/fatalSec/DaliVM/internal/session"
	"github.com/fatalSec/DaliVM/internal/tracelog"
)

// Interpreter is the subset of interp.Interpreter the classloader
// needs, kept as an interface to avoid an import cycle (interp calls
// back into classloader to resolve invoke targets).
type Interpreter interface {
	Run(m *dex.Method, args []object.Value) (object.Value, error)
}

// Loader resolves and executes methods against a single dex.Index and
// session.Session, consulting the gfunction registry before falling
// back to bytecode execution.
type Loader struct {
	Index   *dex.Index
	Session *session.Session
	Mocks   *gfunction.Registry

	// newInterp constructs a fresh nested interpreter frame; set by
	// interp.Attach to break the import cycle described above.
	newInterp func(l *Loader) Interpreter
}

// New builds a Loader. newInterp is supplied by the interp package at
// wiring time (see interp.Attach) since interp itself depends on
// classloader to resolve invoke targets.
func New(idx *dex.Index, sess *session.Session, mocks *gfunction.Registry, newInterp func(l *Loader) Interpreter) *Loader {
	return &Loader{Index: idx, Session: sess, Mocks: mocks, newInterp: newInterp}
}

// ResolveMethod looks up a method by its canonical signature.
func (l *Loader) ResolveMethod(signature string) (*dex.Method, bool) {
	return l.Index.MethodBySignature(signature)
}

// ResolveByTrace looks up the method an invoke targets by the invoke's
// trace key (mnemonic and target signature, see
// dex.Index.MethodByTraceText), a fallback when signature lookup misses.
func (l *Loader) ResolveByTrace(traceText string) (*dex.Method, bool) {
	return l.Index.MethodByTraceText(traceText)
}

// RunClinit runs class's <clinit> exactly once per session, marking it
// in-progress before executing so a cyclic static-init dependency
// (A.<clinit> reads B's static field, B.<clinit> reads A's) observes
// "in progress" and proceeds with whatever partial state exists
// instead of recursing forever, modeled on jacobin's superclass-chain
// clinit ordering.
func (l *Loader) RunClinit(class string) error {
	switch l.Session.ClinitStateOf(class) {
	case session.ClinitDone, session.ClinitInProgress:
		return nil
	}
	l.Session.MarkClinitInProgress(class)

	sig := class + "->" + "<clinit>()V"
	m, ok := l.Index.MethodBySignature(sig)
	if !ok {
		// No static initializer present in the index is not an error;
		// most classes have none.
		l.Session.MarkClinitDone(class)
		return nil
	}

	tracelog.Finef("running <clinit> for %s", class)
	if _, err := l.Execute(m, nil); err != nil {
		return errs.Wrap(err, errs.KindPolicy, sig, 0, "<clinit>")
	}
	l.Session.MarkClinitDone(class)
	return nil
}

// Execute runs a resolved method with the given argument values,
// first ensuring its declaring class's <clinit> has completed. A
// method with no bytecode returns Void if it is `<init>`, otherwise a
// neutral default with a warning; anything else runs in a nested
// interpreter frame. Mock hooks are not consulted here (Invoke does
// that before calling Execute).
func (l *Loader) Execute(m *dex.Method, args []object.Value) (object.Value, error) {
	if err := l.Session.EnterFrame(m.Signature()); err != nil {
		return object.Value{}, err
	}
	defer l.Session.ExitFrame()

	if err := l.RunClinit(m.Class); err != nil {
		return object.Value{}, err
	}

	if len(m.Code) == 0 {
		if m.Name == "<init>" {
			tracelog.Finef("no-op <init> fallback for %s", m.Signature())
			return object.Void(), nil
		}
		tracelog.Warningf("unmocked, bodyless method %s; returning neutral default", m.Signature())
		return neutralDefault(m.ReturnDesc), nil
	}

	interp := l.newInterp(l)
	return interp.Run(m, args)
}

// Invoke is the entry point interp's invoke-kind handlers call: it
// resolves a method reference via hook registry, then signature, then
// trace text, and executes whichever is found first.
func (l *Loader) Invoke(ref dex.MethodRef, receiver object.Value, args []object.Value, traceText string, isStatic bool) (object.Value, error) {
	allArgs := args
	if !isStatic {
		allArgs = append([]object.Value{receiver}, args...)
	}

	if hook, ok := l.Mocks.Lookup(ref.Signature(), isStatic); ok {
		tracelog.TraceInstf("mock hook dispatch: %s", ref.Signature())
		return hook(l.hookContext(), allArgs, traceText)
	}

	if m, ok := l.ResolveMethod(ref.Signature()); ok {
		return l.Execute(m, allArgs)
	}
	if m, ok := l.ResolveByTrace(traceText); ok {
		return l.Execute(m, allArgs)
	}

	if ref.Name == "<init>" {
		tracelog.Finef("no-op <init> fallback (unresolved): %s", ref.Signature())
		return object.Void(), nil
	}

	tracelog.Warningf("unresolved call %s; returning neutral default", ref.Signature())
	return neutralDefault(ref.ReturnDesc), nil
}

func (l *Loader) hookContext() *gfunction.Context {
	return &gfunction.Context{
		Session: l.Session,
		Invoke: func(ref gfunction.MethodRefLike, receiver object.Value, args []object.Value, traceText string, isStatic bool) (object.Value, error) {
			mref, ok := ref.(dex.MethodRef)
			if !ok {
				return object.Value{}, errs.New(errs.KindRuntime, ref.Signature(), 0, traceText, "hook invoke received non-dex.MethodRef target")
			}
			return l.Invoke(mref, receiver, args, traceText, isStatic)
		},
	}
}

// neutralDefault implements the "recoverable gap" policy: a
// zero-valued/neutral result of the declared return type, rather than
// aborting the whole emulation.
func neutralDefault(returnDesc string) object.Value {
	if returnDesc == "" {
		return object.Void()
	}
	switch returnDesc[0] {
	case 'V':
		return object.Void()
	case 'Z':
		return object.Bool(false)
	case 'C':
		return object.Char(0)
	case 'J':
		return object.Int64(0)
	case 'F':
		return object.Float32(0)
	case 'D':
		return object.Float64(0)
	case 'L', '[':
		return object.Null()
	default:
		return object.Int32(0)
	}
}

// Dependencies exposes analysis.AnalyzeMethod/AnalyzeMethodTransitive
// over this loader's index, the glue the control surface's
// dependency reporting (AnalyzeDependencies) uses.
func (l *Loader) Dependencies(m *dex.Method, transitive bool) analysis.Dependencies {
	if transitive {
		return analysis.AnalyzeMethodTransitive(l.Index, m)
	}
	return analysis.AnalyzeMethod(m)
}
