// Package errs defines the structured error shape surfaced to the
// host for a fatal emulation failure: {kind, pc, method, disassembly,
// message}.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an emulation failure.
type Kind string

const (
	KindResolution Kind = "resolution" // method/class not found, ambiguous signature
	KindDecode     Kind = "decode"     // unknown opcode, malformed payload, pc out of range
	KindRuntime    Kind = "runtime"    // division by zero, bounds, cast rejection, null receiver
	KindPolicy     Kind = "policy"     // static-initializer cycle, recursion depth exceeded
)

// Emu is the structured error type returned by a fatal emulation
// failure. It is never used for recoverable gaps in mock coverage,
// which instead return a neutral default and a tracelog warning.
type Emu struct {
	Kind        Kind
	PC          int
	Method      string
	Disassembly string
	Message     string
	cause       error
}

func (e *Emu) Error() string {
	return fmt.Sprintf("%s error in %s at pc=%d (%s): %s", e.Kind, e.Method, e.PC, e.Disassembly, e.Message)
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause.
func (e *Emu) Unwrap() error { return e.cause }

// New builds a fresh structured error, wrapping it with pkg/errors so
// a stack trace is attached at the point of failure.
func New(kind Kind, method string, pc int, disassembly, message string) error {
	base := errors.Errorf("%s: %s", kind, message)
	return &Emu{Kind: kind, PC: pc, Method: method, Disassembly: disassembly, Message: message, cause: base}
}

// Wrap attaches call-site context to an existing error the way
// jacobin's cfe() attaches file/line to a class-format error, except
// here the "call site" is bytecode position rather than Go source.
func Wrap(err error, kind Kind, method string, pc int, disassembly string) error {
	if err == nil {
		return nil
	}
	wrapped := errors.Wrapf(err, "%s at pc=%d in %s", kind, pc, method)
	return &Emu{Kind: kind, PC: pc, Method: method, Disassembly: disassembly, Message: err.Error(), cause: wrapped}
}

// Cause unwraps to the deepest pkg/errors-wrapped cause. The top-level
// entry points do not call it; they return errors unchanged.
func Cause(err error) error {
	return errors.Cause(err)
}

// AsEmu extracts the structured error, if any, from an error chain.
func AsEmu(err error) (*Emu, bool) {
	var e *Emu
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
