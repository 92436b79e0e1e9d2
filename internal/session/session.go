// Package session holds the emulation state kept session-scoped
// rather than process-global: the static-field store, the set of
// initialized classes, the current frame depth, and the active mock
// configuration. Unlike jacobin's process-wide, mutex-guarded
// `classloader.Classes` map, a Session is an ordinary value a caller
// constructs per emulation run and threads through explicitly — there
// is nothing to lock because emulation runs single-threaded.
package session

import (
	"github.com/fatalSec/DaliVM/internal/config"
	"github.com/fatalSec/DaliVM/internal/errs"
	"github.com/fatalSec/DaliVM/internal/object"
)

// ClinitState tracks where a class is in its <clinit> lifecycle.
type ClinitState int

const (
	ClinitNotStarted ClinitState = iota
	ClinitInProgress
	ClinitDone
)

type staticFieldKey struct {
	Class string
	Field string
}

// MaxFrameDepth bounds recursive invoke nesting, guarding against
// runaway or mutually-recursive mock/target method calls.
const MaxFrameDepth = 256

// Session is the mutable state one emulation run shares across every
// nested interpreter frame it spawns.
type Session struct {
	Config config.MockConfig

	statics map[staticFieldKey]object.Value
	clinit  map[string]ClinitState
	depth   int
}

// New creates a Session with the given mock configuration and empty
// static-field/clinit state.
func New(cfg config.MockConfig) *Session {
	return &Session{
		Config:  cfg,
		statics: make(map[staticFieldKey]object.Value),
		clinit:  make(map[string]ClinitState),
	}
}

// GetStatic returns the stored value for (class, field) and whether it
// has ever been set.
func (s *Session) GetStatic(class, field string) (object.Value, bool) {
	v, ok := s.statics[staticFieldKey{class, field}]
	return v, ok
}

// SetStatic stores v for (class, field), creating the slot if absent.
func (s *Session) SetStatic(class, field string, v object.Value) {
	s.statics[staticFieldKey{class, field}] = v
}

// HasStatic reports whether (class, field) has a stored value.
func (s *Session) HasStatic(class, field string) bool {
	_, ok := s.statics[staticFieldKey{class, field}]
	return ok
}

// ResetStaticFieldStore clears all static-field values and clinit
// progress. Used between independent emulation runs against the same
// loaded DEX so one call site's mutated statics don't leak into the
// next.
func (s *Session) ResetStaticFieldStore() {
	s.statics = make(map[staticFieldKey]object.Value)
	s.clinit = make(map[string]ClinitState)
}

// ClinitStateOf returns class's current <clinit> lifecycle state.
func (s *Session) ClinitStateOf(class string) ClinitState {
	return s.clinit[class]
}

// MarkClinitInProgress records that class's <clinit> has begun
// running, the marker classloader.RunClinit plants before executing
// so a cyclic static-init dependency observes "in progress" instead
// of recursing forever.
func (s *Session) MarkClinitInProgress(class string) {
	s.clinit[class] = ClinitInProgress
}

// MarkClinitDone records that class's <clinit> has finished.
func (s *Session) MarkClinitDone(class string) {
	s.clinit[class] = ClinitDone
}

// IsClassInitialized reports whether class's <clinit> has completed.
func (s *Session) IsClassInitialized(class string) bool {
	return s.clinit[class] == ClinitDone
}

// EnterFrame increments the nested-call depth counter, returning a
// policy error once MaxFrameDepth is exceeded so a runaway recursive
// mock or target method aborts instead of exhausting the Go stack.
func (s *Session) EnterFrame(method string) error {
	s.depth++
	if s.depth > MaxFrameDepth {
		s.depth--
		return errs.New(errs.KindPolicy, method, 0, "", "frame depth exceeded MaxFrameDepth")
	}
	return nil
}

// ExitFrame decrements the nested-call depth counter. Callers must
// pair every successful EnterFrame with exactly one ExitFrame,
// typically via defer.
func (s *Session) ExitFrame() {
	if s.depth > 0 {
		s.depth--
	}
}

// Depth reports the current nested-call depth.
func (s *Session) Depth() int { return s.depth }
