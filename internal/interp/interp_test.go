package interp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatalSec/DaliVM/internal/classloader"
	"github.com/fatalSec/DaliVM/internal/config"
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/gfunction"
	"github.com/fatalSec/DaliVM/internal/object"
	"github.com/fatalSec/DaliVM/internal/session"
)

func newLoader(t *testing.T, containers ...dex.ContainerInput) (*classloader.Loader, *dex.Index) {
	t.Helper()
	idx := dex.NewIndex(containers)
	sess := session.New(config.Default())
	mocks := gfunction.Default(gfunction.PackageConfig{PackageName: "com.example.app", SDKInt: 30})
	return Attach(idx, sess, mocks), idx
}

func TestAddIntReturnsSum(t *testing.T) {
	md := dex.MethodData{
		Class: "Lcom/example/Math;", Name: "add", ParamDesc: "II", ReturnDesc: "I",
		RegsCount: 3, InsSize: 2, IsStatic: true,
		Code: dex.Cat(
			dex.Emit23x(dex.OpBinOp23xBase+dex.Opcode(dex.BinAddInt), 0, 1, 2),
			dex.Emit11x(dex.OpReturn, 0),
		),
	}
	loader, idx := newLoader(t, dex.ContainerInput{Name: "classes.dex", Methods: []dex.MethodData{md}})
	m, ok := idx.MethodBySignature("Lcom/example/Math;->add(II)I")
	require.True(t, ok)

	result, err := loader.Execute(m, []object.Value{object.Int32(2), object.Int32(3)})
	require.NoError(t, err)
	require.Equal(t, int32(5), result.I32)
}

func TestConstStringRoundTrip(t *testing.T) {
	md := dex.MethodData{
		Class: "Lcom/example/Strings;", Name: "hello", ParamDesc: "", ReturnDesc: "Ljava/lang/String;",
		RegsCount: 1, InsSize: 0, IsStatic: true,
		Code: dex.Cat(
			dex.Emit21c(dex.OpConstString, 0, 0),
			dex.Emit11x(dex.OpReturnObject, 0),
		),
		Strings: []string{"hi"},
	}
	loader, idx := newLoader(t, dex.ContainerInput{Name: "classes.dex", Methods: []dex.MethodData{md}})
	m, _ := idx.MethodBySignature("Lcom/example/Strings;->hello()Ljava/lang/String;")

	result, err := loader.Execute(m, nil)
	require.NoError(t, err)
	require.Equal(t, "hi", object.GoStringFromStringObject(result.Obj))
}

func TestPackedSwitchSelectsCaseOrDefault(t *testing.T) {
	// sel(I)I: packed-switch v0 over {0->10, 1->20, 2->30}, default 99.
	// Layout: switch instr (3 units) at pc 0, the default body (reached
	// by falling through when no key matches), three case bodies, then
	// the payload table placed after the last return.
	// v1 holds the incoming parameter (InsSize=1, RegsCount=2); v0 is
	// scratch for the selected result.
	case0 := dex.Cat(dex.Emit21s(dex.OpConst16, 0, 10), dex.Emit11x(dex.OpReturn, 0))
	case1 := dex.Cat(dex.Emit21s(dex.OpConst16, 0, 20), dex.Emit11x(dex.OpReturn, 0))
	case2 := dex.Cat(dex.Emit21s(dex.OpConst16, 0, 30), dex.Emit11x(dex.OpReturn, 0))
	def := dex.Cat(dex.Emit21s(dex.OpConst16, 0, 99), dex.Emit11x(dex.OpReturn, 0))

	payloadPC := 3 + len(case0) + len(case1) + len(case2) + len(def)
	switchInstr := dex.Emit31t(dex.OpPackedSwitch, 1, int32(payloadPC))

	payload := []uint16{
		0x0100, 3, // ident, size
		0, 0, // first_key = 0
		uint16(3 + len(def)), 0, // target for key 0 (case0 start)
		uint16(3 + len(def) + len(case0)), 0, // target for key 1 (case1 start)
		uint16(3 + len(def) + len(case0) + len(case1)), 0, // target for key 2 (case2 start)
	}

	code := dex.Cat(switchInstr, def, case0, case1, case2, payload)

	md := dex.MethodData{
		Class: "Lcom/example/Sel;", Name: "sel", ParamDesc: "I", ReturnDesc: "I",
		RegsCount: 2, InsSize: 1, IsStatic: true,
		Code: code,
	}
	loader, idx := newLoader(t, dex.ContainerInput{Name: "classes.dex", Methods: []dex.MethodData{md}})
	m, _ := idx.MethodBySignature("Lcom/example/Sel;->sel(I)I")

	r1, err := loader.Execute(m, []object.Value{object.Int32(1)})
	require.NoError(t, err)
	require.Equal(t, int32(20), r1.I32)

	r2, err := loader.Execute(m, []object.Value{object.Int32(5)})
	require.NoError(t, err)
	require.Equal(t, int32(99), r2.I32)
}

func TestFilledNewArraySumsElements(t *testing.T) {
	// sum3(III)I: a = {p0,p1,p2}; return a[0]+a[1]+a[2].
	// Params land in v7,v8,v9 (the trailing InsSize=3 window).
	md := dex.MethodData{
		Class: "Lcom/example/Arr;", Name: "sum3", ParamDesc: "III", ReturnDesc: "I",
		RegsCount: 10, InsSize: 3, IsStatic: true,
		Code: dex.Cat(
			dex.Emit35c(dex.OpFilledNewArray, 0, 7, 8, 9),
			dex.Emit11x(dex.OpMoveResultObject, 0),
			dex.Emit11n(dex.OpConst4, 1, 0),
			dex.Emit23x(dex.OpAget, 2, 0, 1),
			dex.Emit11n(dex.OpConst4, 1, 1),
			dex.Emit23x(dex.OpAget, 3, 0, 1),
			dex.Emit11n(dex.OpConst4, 1, 2),
			dex.Emit23x(dex.OpAget, 4, 0, 1),
			dex.Emit23x(dex.OpBinOp23xBase+dex.Opcode(dex.BinAddInt), 2, 2, 3),
			dex.Emit23x(dex.OpBinOp23xBase+dex.Opcode(dex.BinAddInt), 2, 2, 4),
			dex.Emit11x(dex.OpReturn, 2),
		),
		TypeRefs: []string{"[I"},
	}
	loader, idx := newLoader(t, dex.ContainerInput{Name: "classes.dex", Methods: []dex.MethodData{md}})
	m, _ := idx.MethodBySignature("Lcom/example/Arr;->sum3(III)I")

	result, err := loader.Execute(m, []object.Value{object.Int32(4), object.Int32(5), object.Int32(6)})
	require.NoError(t, err)
	require.Equal(t, int32(15), result.I32)
}

func TestInvokeStaticAddsViaNestedFrame(t *testing.T) {
	callee := dex.MethodData{
		Class: "Lcom/example/Math;", Name: "add", ParamDesc: "II", ReturnDesc: "I",
		RegsCount: 3, InsSize: 2, IsStatic: true,
		Code: dex.Cat(
			dex.Emit23x(dex.OpBinOp23xBase+dex.Opcode(dex.BinAddInt), 0, 1, 2),
			dex.Emit11x(dex.OpReturn, 0),
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
	loader, idx := newLoader(t, dex.ContainerInput{Name: "classes.dex", Methods: []dex.MethodData{callee, caller}})
	m, _ := idx.MethodBySignature("Lcom/example/Caller;->run()I")

	result, err := loader.Execute(m, nil)
	require.NoError(t, err)
	require.Equal(t, int32(5), result.I32)
}

func TestStaticFieldSurvivesAcrossCalls(t *testing.T) {
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
	loader, idx := newLoader(t, dex.ContainerInput{Name: "classes.dex", Methods: []dex.MethodData{clinit, reader}})
	m, _ := idx.MethodBySignature("Lcom/example/Counter;->read()I")

	result, err := loader.Execute(m, nil)
	require.NoError(t, err)
	require.Equal(t, int32(7), result.I32)
}

func TestDivisionByZeroSurfacesAsError(t *testing.T) {
	md := dex.MethodData{
		Class: "Lcom/example/Math;", Name: "divz", ParamDesc: "", ReturnDesc: "I",
		RegsCount: 2, InsSize: 0, IsStatic: true,
		Code: dex.Cat(
			dex.Emit11n(dex.OpConst4, 0, 1),
			dex.Emit11n(dex.OpConst4, 1, 0),
			dex.Emit23x(dex.OpBinOp23xBase+dex.Opcode(dex.BinDivInt), 0, 0, 1),
			dex.Emit11x(dex.OpReturn, 0),
		),
	}
	loader, idx := newLoader(t, dex.ContainerInput{Name: "classes.dex", Methods: []dex.MethodData{md}})
	m, _ := idx.MethodBySignature("Lcom/example/Math;->divz()I")

	_, err := loader.Execute(m, nil)
	require.Error(t, err)
}
