// Package dalivm is the top-level control surface: build an index
// from already-parsed DEX containers, locate the target method,
// enumerate its call sites, and emulate it against the mocked
// Android/Java runtime.
package dalivm

import (
	"github.com/fatalSec/DaliVM/internal/analysis"
	"github.com/fatalSec/DaliVM/internal/classloader"
	"github.com/fatalSec/DaliVM/internal/config"
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/gfunction"
	"github.com/fatalSec/DaliVM/internal/interp"
	"github.com/fatalSec/DaliVM/internal/object"
	"github.com/fatalSec/DaliVM/internal/session"
)

// Re-exported so callers never need to import the internal packages
// directly.
type (
	Index       = dex.Index
	Method      = dex.Method
	MethodRef   = dex.MethodRef
	CallSite    = dex.CallSite
	Value       = object.Value
	Config      = config.MockConfig
	ClassLoader = classloader.Loader
)

// NewIndex builds a DEX index from already-parsed containers. Turning
// raw APK/DEX bytes into ContainerInput is left to an external DEX
// analyzer; the index itself only ever sees already-decoded
// classes/methods/strings.
func NewIndex(containers []dex.ContainerInput) *Index {
	return dex.NewIndex(containers)
}

// NewClassLoader builds the class loader + mock dispatch layer an
// emulation runs against: a fresh session (static-field store,
// initialized-classes set, frame-depth guard) and the bundled mock
// registry configured with cfg, wired to the bytecode interpreter via
// interp.Attach.
func NewClassLoader(idx *Index, cfg Config) *ClassLoader {
	sess := session.New(cfg)
	mocks := gfunction.Default(gfunction.PackageConfig{
		PackageName:    cfg.PackageName,
		SignatureBytes: cfg.SignatureBytes,
		SDKInt:         cfg.SDKInt,
	})
	return interp.Attach(idx, sess, mocks)
}

// DefaultConfig returns the mock configuration used when the caller
// has no package_name/signature_bytes/sdk_int of its own yet.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads the three mock configuration values from a YAML
// file, starting from DefaultConfig() so a partial file only
// overrides the fields it sets.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// FindMethod resolves a method by its canonical
// Lpkg/Class;->name(params)return signature.
func FindMethod(idx *Index, signature string) (*Method, bool) {
	return idx.MethodBySignature(signature)
}

// FindMethodByTrace resolves the method an invoke targets by the
// invoke's trace key: its mnemonic, a space, and the target signature
// (for example "invoke-static Lcom/example/Math;->add(II)I").
func FindMethodByTrace(idx *Index, traceText string) (*Method, bool) {
	return idx.MethodByTraceText(traceText)
}

// FindMethodsByName resolves every overload of class_descriptor->name,
// for callers that only have a class and a method name and must
// disambiguate among the results themselves.
func FindMethodsByName(idx *Index, classDescriptor, name string) []*Method {
	return idx.MethodsByName(classDescriptor, name)
}

// FindAllCallSites enumerates every invoke-kind instruction across the
// whole index whose resolved target matches targetSignature.
func FindAllCallSites(idx *Index, targetSignature string) []CallSite {
	return idx.AllCallSites(targetSignature)
}

// AnalyzeDependencies runs the dependency analyzer over method,
// walking callees transitively when recursive is set.
func AnalyzeDependencies(loader *ClassLoader, method *Method, recursive bool) analysis.Dependencies {
	return loader.Dependencies(method, recursive)
}

// EmulateWithArgs runs method to completion against loader with args
// bound to its parameter registers (the receiver first, for instance
// methods). Fatal failures come back as *errs.Emu
// (kind/pc/method/disassembly/message); the mock layer's own
// recoverable gaps instead surface as a neutral return value plus a
// tracelog warning, never an error here.
func EmulateWithArgs(loader *ClassLoader, method *Method, args []Value) (Value, error) {
	return loader.Execute(method, args)
}

// ResetStaticFieldStore clears the static-field store and the
// initialized-classes set, the reset callers must do between
// independent emulations that share one session.
func ResetStaticFieldStore(loader *ClassLoader) {
	loader.Session.ResetStaticFieldStore()
}
