// Package tracelog is the leveled trace facility used across the
// loader, analyzers, and interpreter, in the spirit of jacobin's
// log.FINE/log.SEVERE/log.TRACE_INST calls but backed by glog.
package tracelog

import (
	"fmt"

	"github.com/golang/glog"
)

// Level mirrors the granularity jacobin's log package exposes.
// TraceInst is the noisiest (per-instruction), Severe the rarest.
type Level int

const (
	TraceInst Level = iota
	Fine
	Info
	Warning
	Severe
)

var enabled = Info

// SetLevel controls the minimum level that is actually emitted;
// everything below it is dropped before reaching glog, keeping
// per-instruction tracing free when it isn't wanted.
func SetLevel(l Level) { enabled = l }

func emit(l Level, msg string) {
	if l < enabled {
		return
	}
	switch l {
	case TraceInst:
		glog.V(2).Info(msg)
	case Fine:
		glog.V(1).Info(msg)
	case Info:
		glog.Info(msg)
	case Warning:
		glog.Warning(msg)
	case Severe:
		glog.Error(msg)
	}
}

// TraceInst logs at per-instruction granularity, analogous to
// jacobin's log.TRACE_INST level emitted from runFrame's dispatch loop.
func TraceInstf(format string, args ...interface{}) { emit(TraceInst, sprintf(format, args...)) }

// Finef logs a fine-grained diagnostic (class loading, method
// resolution), analogous to jacobin's log.FINE.
func Finef(format string, args ...interface{}) { emit(Fine, sprintf(format, args...)) }

// Infof logs a normal informational event.
func Infof(format string, args ...interface{}) { emit(Info, sprintf(format, args...)) }

// Warningf logs a recoverable gap: unmocked API, unresolved static
// field, unresolved argument. Execution continues.
func Warningf(format string, args ...interface{}) { emit(Warning, sprintf(format, args...)) }

// Severef logs a fatal condition immediately before it is returned
// to the caller as a structured error.
func Severef(format string, args ...interface{}) { emit(Severe, sprintf(format, args...)) }

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
