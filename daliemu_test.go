package dalivm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/object"
)

func TestEmulateWithArgsAddsTwoInts(t *testing.T) {
	md := dex.MethodData{
		Class: "Lcom/example/Math;", Name: "add", ParamDesc: "II", ReturnDesc: "I",
		RegsCount: 3, InsSize: 2, IsStatic: true,
		Code: dex.Cat(
			dex.Emit23x(dex.OpBinOp23xBase+dex.Opcode(dex.BinAddInt), 0, 1, 2),
			dex.Emit11x(dex.OpReturn, 0),
		),
	}
	idx := NewIndex([]dex.ContainerInput{{Name: "classes.dex", Methods: []dex.MethodData{md}}})
	loader := NewClassLoader(idx, DefaultConfig())

	m, ok := FindMethod(idx, "Lcom/example/Math;->add(II)I")
	require.True(t, ok)

	result, err := EmulateWithArgs(loader, m, []Value{object.Int32(2), object.Int32(3)})
	require.NoError(t, err)
	require.Equal(t, int32(5), result.I32)
}

func TestFindMethodsByNameFindsOverloads(t *testing.T) {
	a := dex.MethodData{
		Class: "Lcom/example/Over;", Name: "f", ParamDesc: "I", ReturnDesc: "I",
		RegsCount: 2, InsSize: 1, IsStatic: true,
		Code: dex.Cat(dex.Emit11x(dex.OpReturn, 0)),
	}
	b := dex.MethodData{
		Class: "Lcom/example/Over;", Name: "f", ParamDesc: "J", ReturnDesc: "J",
		RegsCount: 3, InsSize: 2, IsStatic: true,
		Code: dex.Cat(dex.Emit12x(dex.OpReturnWide, 0, 0)),
	}
	idx := NewIndex([]dex.ContainerInput{{Name: "classes.dex", Methods: []dex.MethodData{a, b}}})

	found := FindMethodsByName(idx, "Lcom/example/Over;", "f")
	require.Len(t, found, 2)
}

func TestFindAllCallSitesLocatesCaller(t *testing.T) {
	callee := dex.MethodData{
		Class: "Lcom/example/Math;", Name: "add", ParamDesc: "II", ReturnDesc: "I",
		RegsCount: 3, InsSize: 2, IsStatic: true,
		Code: dex.Cat(
			dex.Emit23x(dex.OpBinOp23xBase+dex.Opcode(dex.BinAddInt), 2, 0, 1),
			dex.Emit11x(dex.OpReturn, 2),
		),
	}
	caller := dex.MethodData{
		Class: "Lcom/example/Caller;", Name: "run", ParamDesc: "", ReturnDesc: "I",
		RegsCount: 3, InsSize: 0, IsStatic: true,
		Code: dex.Cat(
			dex.Emit11n(dex.OpConst4, 0, 2),
			dex.Emit11n(dex.OpConst4, 1, 3),
			dex.Emit35c(dex.OpInvokeStatic, 0, 0, 1),
			dex.Emit11x(dex.OpMoveResult, 2),
			dex.Emit11x(dex.OpReturn, 2),
		),
		MethodRefs: []dex.MethodRef{{Class: "Lcom/example/Math;", Name: "add", ParamDesc: "II", ReturnDesc: "I"}},
	}
	idx := NewIndex([]dex.ContainerInput{{Name: "classes.dex", Methods: []dex.MethodData{callee, caller}}})

	sites := FindAllCallSites(idx, "Lcom/example/Math;->add(II)I")
	require.Len(t, sites, 1)
	require.Equal(t, "Lcom/example/Caller;->run()I", sites[0].Caller.Signature())
}

func TestResetStaticFieldStoreClearsValue(t *testing.T) {
	clinit := dex.MethodData{
		Class: "Lcom/example/Counter;", Name: "<clinit>", ParamDesc: "", ReturnDesc: "V",
		RegsCount: 1, InsSize: 0, IsStatic: true,
		Code: dex.Cat(
			dex.Emit11n(dex.OpConst4, 0, 7),
			dex.Emit21c(dex.OpSput, 0, 0),
			dex.Emit10x(dex.OpReturnVoid),
		),
		FieldRefs: []dex.FieldRef{{Class: "Lcom/example/Counter;", Name: "value", Type: "I"}},
	}
	reader := dex.MethodData{
		Class: "Lcom/example/Counter;", Name: "read", ParamDesc: "", ReturnDesc: "I",
		RegsCount: 1, InsSize: 0, IsStatic: true,
		Code: dex.Cat(
			dex.Emit21c(dex.OpSget, 0, 0),
			dex.Emit11x(dex.OpReturn, 0),
		),
		FieldRefs: []dex.FieldRef{{Class: "Lcom/example/Counter;", Name: "value", Type: "I"}},
	}
	idx := NewIndex([]dex.ContainerInput{{Name: "classes.dex", Methods: []dex.MethodData{clinit, reader}}})
	loader := NewClassLoader(idx, DefaultConfig())
	m, _ := FindMethod(idx, "Lcom/example/Counter;->read()I")

	result, err := EmulateWithArgs(loader, m, nil)
	require.NoError(t, err)
	require.Equal(t, int32(7), result.I32)

	ResetStaticFieldStore(loader)
	require.False(t, loader.Session.HasStatic("Lcom/example/Counter;", "value"))

	result, err = EmulateWithArgs(loader, m, nil)
	require.NoError(t, err)
	require.Equal(t, int32(7), result.I32, "reset reruns <clinit> lazily, observing the same stored value again")
}
