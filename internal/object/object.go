package object

import "fmt"

// HostKind tags the variant held by a HostValue: a small closed sum
// over the host-side representations a mock actually needs.
type HostKind int

const (
	HostNone HostKind = iota
	HostString
	HostBytes
	HostList
	HostBool
	HostInt
	HostIterator
)

// HostValue is the opaque internal payload mocks use to carry
// host-side state that has no natural Dalvik field representation,
// e.g. the Go string backing a boxed java/lang/String, or the Go
// slice backing a java/util/ArrayList.
type HostValue struct {
	Kind  HostKind
	Str   string
	Bytes []byte
	List  []*Value
	Bool  bool
	Int   int64
}

// Object is an emulated instance: a declared class name (in Dalvik's
// Lpkg/Cls; descriptor form), a dynamic field table that gains
// entries on first assignment, and an opaque mock payload.
type Object struct {
	ClassName string
	Fields    map[string]*Value
	Payload   HostValue
}

// NewObject allocates a bare instance with no fields yet populated;
// new-instance never runs a real constructor body, so fields stay
// empty until something writes them.
func NewObject(className string) *Object {
	return &Object{ClassName: className, Fields: make(map[string]*Value)}
}

// GetField returns the named field's value, or the null value if the
// field has never been assigned.
func (o *Object) GetField(name string) Value {
	if f, ok := o.Fields[name]; ok && f != nil {
		return *f
	}
	return Null()
}

// SetField assigns a field, creating the entry on first write.
func (o *Object) SetField(name string, v Value) {
	vv := v
	o.Fields[name] = &vv
}

// HasField reports whether the field has ever been assigned.
func (o *Object) HasField(name string) bool {
	_, ok := o.Fields[name]
	return ok
}

func (o *Object) String() string {
	return fmt.Sprintf("%s@%p", o.ClassName, o)
}

// InstanceOf performs a nominal type-cast check by class-name string
// match. No class hierarchy walk is attempted (the mock layer does
// not model interface/superclass relationships beyond what a hook
// hard-codes).
func (o *Object) InstanceOf(className string) bool {
	if o == nil {
		return false
	}
	return o.ClassName == className
}
