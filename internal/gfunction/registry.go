// Package gfunction implements the mock dispatch layer: registries of
// native-method hooks, static-field overrides, and object factories
// keyed by Dalvik method/field signature, plus
// the bundled semantics (String, StringBuilder, boxed numerics, Math,
// Arrays/System, List/Iterator, Base64, reflection stubs) that let the
// interpreter execute against java.lang/java.util APIs it never loads
// real bytecode for.
//
// The registration idiom is lifted wholesale from jacobin's gfunction
// package: each bundle is a small file with a Load_X(reg *Registry)
// entrypoint that populates MethodSignatures-style maps, called once
// at startup from Default().
package gfunction

import "github.com/fatalSec/DaliVM/internal/object"

// Hook is a mocked native method body. traceText is the call site's
// disassembly text, passed through so a hook can fall back to
// pattern-matching when structured args don't carry enough
// information (mirrors the method index's trace-text lookup).
type Hook func(ctx *Context, args []object.Value, traceText string) (object.Value, error)

// Invoker is the classloader's nested-call entrypoint, handed to hooks
// that themselves need to call back into the interpreter (e.g. a
// List.forEach mock invoking a supplied functional-interface method).
type Invoker func(ref MethodRefLike, receiver object.Value, args []object.Value, traceText string, isStatic bool) (object.Value, error)

// MethodRefLike avoids an import of dex here; classloader supplies a
// dex.MethodRef, which satisfies this by having the same fields.
type MethodRefLike interface {
	Signature() string
}

// SessionLike is the subset of session.Session a hook body needs.
type SessionLike interface {
	GetStatic(class, field string) (object.Value, bool)
	SetStatic(class, field string, v object.Value)
	HasStatic(class, field string) bool
}

// Context is handed to every hook invocation.
type Context struct {
	Session SessionLike
	Invoke  func(ref MethodRefLike, receiver object.Value, args []object.Value, traceText string, isStatic bool) (object.Value, error)
}

// Factory builds a fresh object instance for classes the mock layer
// knows how to construct without running a real constructor (e.g.
// java/util/ArrayList).
type Factory func(args []object.Value) *object.Object

// Registry holds the four mock-layer tables.
type Registry struct {
	staticHooks    map[string]Hook
	virtualHooks   map[string]Hook
	fieldOverrides map[string]object.Value
	factories      map[string]Factory
}

// NewRegistry builds an empty registry. Use Default for the fully
// bundled one the classloader normally runs with.
func NewRegistry() *Registry {
	return &Registry{
		staticHooks:    make(map[string]Hook),
		virtualHooks:   make(map[string]Hook),
		fieldOverrides: make(map[string]object.Value),
		factories:      make(map[string]Factory),
	}
}

// RegisterStatic installs a static-method hook keyed by its full
// canonical signature.
func (r *Registry) RegisterStatic(signature string, h Hook) { r.staticHooks[signature] = h }

// RegisterVirtual installs a virtual/direct/interface-method hook.
func (r *Registry) RegisterVirtual(signature string, h Hook) { r.virtualHooks[signature] = h }

// RegisterStaticField installs a constant override for a static
// field, consulted before the session's own static-field store (used
// for things like Build.VERSION.SDK_INT that the mock layer treats as
// environment configuration rather than emulated state).
func (r *Registry) RegisterStaticField(class, name string, v object.Value) {
	r.fieldOverrides[class+"->"+name] = v
}

// RegisterFactory installs an object factory for a class name.
func (r *Registry) RegisterFactory(class string, f Factory) { r.factories[class] = f }

// Lookup finds a hook for signature, checking the static or virtual
// table according to isStatic.
func (r *Registry) Lookup(signature string, isStatic bool) (Hook, bool) {
	if isStatic {
		h, ok := r.staticHooks[signature]
		return h, ok
	}
	h, ok := r.virtualHooks[signature]
	return h, ok
}

// StaticFieldOverride returns a mocked static field's constant value,
// if the mock layer owns that field.
func (r *Registry) StaticFieldOverride(class, name string) (object.Value, bool) {
	v, ok := r.fieldOverrides[class+"->"+name]
	return v, ok
}

// NewInstance builds a mock-owned object via its registered factory,
// if any.
func (r *Registry) NewInstance(class string, args []object.Value) (*object.Object, bool) {
	f, ok := r.factories[class]
	if !ok {
		return nil, false
	}
	return f(args), true
}

// Default builds a Registry with every bundled mock loaded, the
// equivalent of jacobin's gfunction.MethodSignatures after all
// Load_X calls have run at startup.
func Default(cfg PackageConfig) *Registry {
	r := NewRegistry()
	LoadString(r)
	LoadStringBuilder(r)
	LoadNumeric(r)
	LoadMath(r)
	LoadArraysSystem(r)
	LoadListIterator(r)
	LoadBase64(r)
	LoadReflection(r)
	LoadBuildConfig(r, cfg)
	return r
}

// PackageConfig carries the three mock configuration values: the
// host app's package name, its signing-certificate bytes, and the
// emulated SDK level. They surface through the mock
// layer as the values Context.getPackageName(),
// Signature.toByteArray()/toCharsString(), and Build.VERSION.SDK_INT
// would return on a real device; PackageInfo is not mocked.
type PackageConfig struct {
	PackageName    string
	SignatureBytes []byte
	SDKInt         int
}
