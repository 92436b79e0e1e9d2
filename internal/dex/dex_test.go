package dex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func addMethodCode() []uint16 {
	// add(II)I body: v2 = v0 + v1; return v2. Only decoded and
	// disassembled here, never executed.
	return Cat(
		Emit23x(OpBinOp23xBase+Opcode(BinAddInt), 2, 0, 1), // add-int v2, v0, v1
		Emit11x(OpReturn, 2),
	)
}

func TestDecodeConst4SignExtends(t *testing.T) {
	code := Emit11n(OpConst4, 0, -1)
	instr, err := Decode(code, 0)
	require.NoError(t, err)
	require.Equal(t, int64(-1), instr.Lit)
	require.Equal(t, 1, instr.Length)
}

func TestDecodeInvokeStatic35c(t *testing.T) {
	code := Emit35c(OpInvokeStatic, 7, 0, 1)
	instr, err := Decode(code, 0)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, instr.Regs)
	require.Equal(t, 7, instr.Pool)
	require.Equal(t, 4, instr.Length)
}

func TestDecodeBranchOffsetsSignExtend(t *testing.T) {
	code := Emit21t(OpIfEqz, 0, -3)
	instr, err := Decode(code, 0)
	require.NoError(t, err)
	require.Equal(t, -3, instr.Offset)
}

func TestIndexBuildsSignatureAndTraceLookups(t *testing.T) {
	md := MethodData{
		Class: "Lcom/example/Math;", Name: "add", ParamDesc: "II", ReturnDesc: "I",
		RegsCount: 3, InsSize: 2, IsStatic: true,
		Code: addMethodCode(),
	}
	container := ContainerInput{Name: "classes.dex", Strings: []string{"hi"}, Methods: []MethodData{md}}

	idx := NewIndex([]ContainerInput{container})
	m, ok := idx.MethodBySignature("Lcom/example/Math;->add(II)I")
	require.True(t, ok)
	require.Equal(t, 2, m.InsSize)

	trace, err := BuildTraceMap(m)
	require.NoError(t, err)
	require.Len(t, trace, 2)
	require.Equal(t, "add-int v2, v0, v1", trace[0].Text)
	require.Equal(t, "return v2", trace[2].Text)
}

func TestAllCallSitesFindsInvokeByTargetSignature(t *testing.T) {
	callee := MethodData{Class: "Lcom/example/Math;", Name: "add", ParamDesc: "II", ReturnDesc: "I", RegsCount: 3, InsSize: 2, IsStatic: true, Code: addMethodCode()}
	caller := MethodData{
		Class: "Lcom/example/Caller;", Name: "run", ParamDesc: "", ReturnDesc: "I",
		RegsCount: 3, InsSize: 0, IsStatic: true,
		Code: Cat(
			Emit11n(OpConst4, 0, 2),
			Emit11n(OpConst4, 1, 3),
			Emit35c(OpInvokeStatic, 0, 0, 1),
			Emit11x(OpMoveResult, 2),
			Emit11x(OpReturn, 2),
		),
		MethodRefs: []MethodRef{{Class: "Lcom/example/Math;", Name: "add", ParamDesc: "II", ReturnDesc: "I"}},
	}
	idx := NewIndex([]ContainerInput{{Name: "classes.dex", Methods: []MethodData{callee, caller}}})

	sites := idx.AllCallSites("Lcom/example/Math;->add(II)I")
	require.Len(t, sites, 1)
	require.Equal(t, "Lcom/example/Caller;->run()I", sites[0].Caller.Signature())
	require.Equal(t, 2, sites[0].PC)
}

func TestGlobalStringIndexAppliesPerContainerBase(t *testing.T) {
	c1 := ContainerInput{Name: "a.dex", Strings: []string{"x", "y"}}
	c2 := ContainerInput{Name: "b.dex", Strings: []string{"z"}}
	idx := NewIndex([]ContainerInput{c1, c2})

	require.Equal(t, 2, idx.GlobalStringIndex(1, 0))
	s, ok := idx.String(idx.GlobalStringIndex(1, 0))
	require.True(t, ok)
	require.Equal(t, "z", s)
}
