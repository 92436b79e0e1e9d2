package dex

import "fmt"

// MethodRef is a constant-pool method reference: the (class, name,
// descriptor) triple an invoke-kind instruction's pool index resolves
// to, analogous to jacobin's CPentry for a MethodRef constant.
type MethodRef struct {
	Class      string
	Name       string
	ParamDesc  string
	ReturnDesc string
}

// Signature renders the canonical Lpkg/Cls;->name(params)return form
// used throughout as the method identity.
func (m MethodRef) Signature() string {
	return fmt.Sprintf("%s->%s(%s)%s", m.Class, m.Name, m.ParamDesc, m.ReturnDesc)
}

// FieldRef is a constant-pool field reference.
type FieldRef struct {
	Class string
	Name  string
	Type  string
}

// MethodData is one container's contribution to the method table: a
// method's bytecode plus the per-container constant-pool tables its
// instructions index into.
type MethodData struct {
	Class      string
	Name       string
	ParamDesc  string
	ReturnDesc string
	RegsCount  int // total registers the method's frame needs (v0..vN-1)
	InsSize    int // how many of those registers are incoming parameters
	IsStatic   bool
	Code       []uint16

	Strings    []string
	TypeRefs   []string
	FieldRefs  []FieldRef
	MethodRefs []MethodRef
}

func (m MethodData) Signature() string {
	return fmt.Sprintf("%s->%s(%s)%s", m.Class, m.Name, m.ParamDesc, m.ReturnDesc)
}

// ContainerInput is one already-parsed DEX container (an APK typically
// bundles several). The DEX index unifies any number of these behind
// a single global string pool and a single method table.
type ContainerInput struct {
	Name    string
	Strings []string
	Methods []MethodData
}

// Method is the index's resolved view of a method: its identity, its
// bytecode, and a back-reference to the container-local tables needed
// to decode operands found in that bytecode.
type Method struct {
	MethodRef
	RegsCount   int
	InsSize     int
	IsStatic    bool
	Code        []uint16
	ContainerID int
	data        MethodData
}

// StringAt resolves a string-pool index local to this method's
// container (const-string operand).
func (m *Method) StringAt(idx int) (string, bool) {
	if idx < 0 || idx >= len(m.data.Strings) {
		return "", false
	}
	return m.data.Strings[idx], true
}

// TypeAt resolves a type-pool index (const-class, new-instance,
// check-cast, new-array, instance-of operand).
func (m *Method) TypeAt(idx int) (string, bool) {
	if idx < 0 || idx >= len(m.data.TypeRefs) {
		return "", false
	}
	return m.data.TypeRefs[idx], true
}

// FieldAt resolves a field-pool index (iget/iput/sget/sput operand).
func (m *Method) FieldAt(idx int) (FieldRef, bool) {
	if idx < 0 || idx >= len(m.data.FieldRefs) {
		return FieldRef{}, false
	}
	return m.data.FieldRefs[idx], true
}

// MethodRefAt resolves a method-pool index (invoke-kind operand).
func (m *Method) MethodRefAt(idx int) (MethodRef, bool) {
	if idx < 0 || idx >= len(m.data.MethodRefs) {
		return MethodRef{}, false
	}
	return m.data.MethodRefs[idx], true
}

// Index is the unified multi-container "DEX index": a global string
// pool (container strings concatenated with per-container base
// offsets) and a method table keyed both by canonical signature and by
// disassembly trace text.
type Index struct {
	containerNames []string
	stringBases    []int // stringBases[i] = global index of containerStrings[i][0]
	globalStrings  []string

	bySignature map[string]*Method
	byTrace     map[string]*Method
	all         []*Method
}

// NewIndex concatenates the string pools of the given containers (in
// order, recording each one's base offset) and builds the method
// table.
func NewIndex(containers []ContainerInput) *Index {
	idx := &Index{
		bySignature: make(map[string]*Method),
		byTrace:     make(map[string]*Method),
	}
	var traceTargets [][2]string // (trace key, target signature)
	for ci, c := range containers {
		idx.containerNames = append(idx.containerNames, c.Name)
		idx.stringBases = append(idx.stringBases, len(idx.globalStrings))
		idx.globalStrings = append(idx.globalStrings, c.Strings...)

		for _, md := range c.Methods {
			m := &Method{
				MethodRef:   MethodRef{Class: md.Class, Name: md.Name, ParamDesc: md.ParamDesc, ReturnDesc: md.ReturnDesc},
				RegsCount:   md.RegsCount,
				InsSize:     md.InsSize,
				IsStatic:    md.IsStatic,
				Code:        md.Code,
				ContainerID: ci,
				data:        md,
			}
			idx.bySignature[m.Signature()] = m
			idx.all = append(idx.all, m)
			for pc := 0; pc < len(m.Code); {
				instr, err := Decode(m.Code, pc)
				if err != nil {
					break
				}
				if text, ok := idx.disassembleInvokeTrace(m, instr); ok {
					if ref, ok := m.MethodRefAt(instr.Pool); ok {
						traceTargets = append(traceTargets, [2]string{text, ref.Signature()})
					}
				}
				pc += instr.Length
			}
		}
	}
	for _, tt := range traceTargets {
		if target, ok := idx.bySignature[tt[1]]; ok {
			idx.byTrace[tt[0]] = target
		}
	}
	return idx
}

// String resolves a global string-pool index (an index already
// translated to global space, as produced by GlobalStringIndex).
func (idx *Index) String(globalIdx int) (string, bool) {
	if globalIdx < 0 || globalIdx >= len(idx.globalStrings) {
		return "", false
	}
	return idx.globalStrings[globalIdx], true
}

// GlobalStringIndex translates a container-local string index to the
// unified global index space.
func (idx *Index) GlobalStringIndex(containerID, localIdx int) int {
	if containerID < 0 || containerID >= len(idx.stringBases) {
		return -1
	}
	return idx.stringBases[containerID] + localIdx
}

// MethodBySignature looks up a method by its canonical
// Lpkg/Cls;->name(params)return signature.
func (idx *Index) MethodBySignature(sig string) (*Method, bool) {
	m, ok := idx.bySignature[sig]
	return m, ok
}

// MethodByTraceText looks up the indexed method that an invoke
// instruction targets by that invoke's trace key: the mnemonic, a
// space, and the target's signature (no register list), as built by
// disassembleInvokeTrace. It is a fallback for cases where structured
// signature matching misses. Invokes whose target is not in the index
// have no entry.
func (idx *Index) MethodByTraceText(text string) (*Method, bool) {
	m, ok := idx.byTrace[text]
	return m, ok
}

// MethodsByName returns every indexed method declared on class with
// the given name, regardless of overload signature — the ambiguous
// counterpart to MethodBySignature for callers that don't yet have a
// full `(params)return` descriptor.
func (idx *Index) MethodsByName(class, name string) []*Method {
	var out []*Method
	for _, m := range idx.all {
		if m.Class == class && m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// CallSite is one location where targetSig is invoked.
type CallSite struct {
	Caller *Method
	PC      int
	Instr   Instruction
}

// AllCallSites scans every indexed method's bytecode for invoke-kind
// instructions whose resolved method reference matches targetSig.
func (idx *Index) AllCallSites(targetSig string) []CallSite {
	var sites []CallSite
	for _, m := range idx.all {
		for pc := 0; pc < len(m.Code); {
			instr, err := Decode(m.Code, pc)
			if err != nil {
				break
			}
			if isInvoke(instr.Opcode) {
				if ref, ok := m.MethodRefAt(instr.Pool); ok && ref.Signature() == targetSig {
					sites = append(sites, CallSite{Caller: m, PC: pc, Instr: instr})
				}
			}
			pc += instr.Length
		}
	}
	return sites
}

func isInvoke(op Opcode) bool {
	return (op >= OpInvokeVirtual && op <= OpInvokeInterface) || (op >= OpInvokeVirtualRange && op <= OpInvokeInterfaceRange)
}

// disassembleInvokeTrace renders the trace text used as byTrace's key,
// for invoke instructions only.
func (idx *Index) disassembleInvokeTrace(m *Method, instr Instruction) (string, bool) {
	if !isInvoke(instr.Opcode) {
		return "", false
	}
	ref, ok := m.MethodRefAt(instr.Pool)
	if !ok {
		return "", false
	}
	return mnemonic(instr.Opcode) + " " + ref.Signature(), true
}
