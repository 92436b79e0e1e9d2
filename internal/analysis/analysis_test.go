package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatalSec/DaliVM/internal/config"
	"github.com/fatalSec/DaliVM/internal/dex"
	"github.com/fatalSec/DaliVM/internal/object"
	"github.com/fatalSec/DaliVM/internal/session"
)

func TestTraceRegisterResolvesConstant(t *testing.T) {
	code := dex.Cat(
		dex.Emit11n(dex.OpConst4, 0, 5),
		dex.Emit11x(dex.OpReturn, 0),
	)
	md := dex.MethodData{Class: "Lc/E;", Name: "five", ReturnDesc: "I", RegsCount: 1, Code: code}
	idx := dex.NewIndex([]dex.ContainerInput{{Methods: []dex.MethodData{md}}})
	m, _ := idx.MethodBySignature("Lc/E;->five()I")
	trace, err := dex.BuildTraceMap(m)
	require.NoError(t, err)

	res := TraceRegister(idx, session.New(config.Default()), m, trace, 1, 0, DefaultInvokeResultDepth)
	require.True(t, res.Resolved)
	require.Equal(t, KindConstant, res.Kind)
	require.Equal(t, int32(5), res.Value.I32)
}

func TestTraceRegisterFollowsMoveChain(t *testing.T) {
	code := dex.Cat(
		dex.Emit11n(dex.OpConst4, 0, 7),
		dex.Emit12x(dex.OpMove, 1, 0),
		dex.Emit11x(dex.OpReturn, 1),
	)
	md := dex.MethodData{Class: "Lc/E;", Name: "seven", ReturnDesc: "I", RegsCount: 2, Code: code}
	idx := dex.NewIndex([]dex.ContainerInput{{Methods: []dex.MethodData{md}}})
	m, _ := idx.MethodBySignature("Lc/E;->seven()I")
	trace, err := dex.BuildTraceMap(m)
	require.NoError(t, err)

	res := TraceRegister(idx, session.New(config.Default()), m, trace, 2, 1, DefaultInvokeResultDepth)
	require.True(t, res.Resolved)
	require.Equal(t, int32(7), res.Value.I32)
}

func TestTraceRegisterResolvesStaticField(t *testing.T) {
	md := dex.MethodData{
		Class: "Lc/E;", Name: "readKey", ReturnDesc: "Ljava/lang/Object;",
		RegsCount: 1,
		Code: dex.Cat(
			dex.Emit21c(dex.OpSget, 0, 0),
			dex.Emit11x(dex.OpReturnObject, 0),
		),
		FieldRefs: []dex.FieldRef{{Class: "Lc/E;", Name: "KEY", Type: "Ljava/lang/String;"}},
	}
	idx := dex.NewIndex([]dex.ContainerInput{{Methods: []dex.MethodData{md}}})
	m, _ := idx.MethodBySignature("Lc/E;->readKey()Ljava/lang/Object;")
	trace, err := dex.BuildTraceMap(m)
	require.NoError(t, err)

	sess := session.New(config.Default())
	res := TraceRegister(idx, sess, m, trace, 2, 0, DefaultInvokeResultDepth)
	require.False(t, res.Resolved)
	require.Equal(t, KindStaticField, res.Kind)

	sess.SetStatic("Lc/E;", "KEY", object.Int32(9))
	res = TraceRegister(idx, sess, m, trace, 2, 0, DefaultInvokeResultDepth)
	require.True(t, res.Resolved)
	require.Equal(t, int32(9), res.Value.I32)
}

func TestTraceRegisterRecognizesParameterRegister(t *testing.T) {
	code := dex.Cat(
		dex.Emit11x(dex.OpReturn, 0),
	)
	md := dex.MethodData{Class: "Lc/E;", Name: "ident", ParamDesc: "I", ReturnDesc: "I", RegsCount: 1, InsSize: 1, Code: code}
	idx := dex.NewIndex([]dex.ContainerInput{{Methods: []dex.MethodData{md}}})
	m, _ := idx.MethodBySignature("Lc/E;->ident(I)I")
	trace, err := dex.BuildTraceMap(m)
	require.NoError(t, err)

	res := TraceRegister(idx, session.New(config.Default()), m, trace, 0, 0, DefaultInvokeResultDepth)
	require.False(t, res.Resolved)
	require.Equal(t, KindParameter, res.Kind)
}

func TestTraceRegisterFollowsInvokeResultThroughCallee(t *testing.T) {
	callee := dex.MethodData{
		Class: "Lc/E;", Name: "constant", ReturnDesc: "I", RegsCount: 1,
		Code: dex.Cat(dex.Emit11n(dex.OpConst4, 0, 4), dex.Emit11x(dex.OpReturn, 0)),
	}
	caller := dex.MethodData{
		Class: "Lc/Caller;", Name: "run", ReturnDesc: "I", RegsCount: 1,
		Code: dex.Cat(
			dex.Emit35c(dex.OpInvokeStatic, 0),
			dex.Emit11x(dex.OpMoveResult, 0),
			dex.Emit11x(dex.OpReturn, 0),
		),
		MethodRefs: []dex.MethodRef{{Class: "Lc/E;", Name: "constant", ReturnDesc: "I"}},
	}
	idx := dex.NewIndex([]dex.ContainerInput{{Methods: []dex.MethodData{callee, caller}}})
	m, _ := idx.MethodBySignature("Lc/Caller;->run()I")
	trace, err := dex.BuildTraceMap(m)
	require.NoError(t, err)

	res := TraceRegister(idx, session.New(config.Default()), m, trace, 3, 0, DefaultInvokeResultDepth)
	require.True(t, res.Resolved)
	require.Equal(t, int32(4), res.Value.I32)
}

func TestEnrichAllocationCollectsConstructorArgs(t *testing.T) {
	md := dex.MethodData{
		Class: "Lc/E;", Name: "build", ReturnDesc: "Ljava/lang/Object;",
		RegsCount: 2,
		Code: dex.Cat(
			dex.Emit21c(dex.OpNewInstance, 0, 0),
			dex.Emit11n(dex.OpConst4, 1, 3),
			dex.Emit35c(dex.OpInvokeDirect, 0, 0, 1),
			dex.Emit11x(dex.OpReturnObject, 0),
		),
		TypeRefs:   []string{"Lc/Widget;"},
		MethodRefs: []dex.MethodRef{{Class: "Lc/Widget;", Name: "<init>", ParamDesc: "I", ReturnDesc: "V"}},
	}
	idx := dex.NewIndex([]dex.ContainerInput{{Methods: []dex.MethodData{md}}})
	m, _ := idx.MethodBySignature("Lc/E;->build()Ljava/lang/Object;")
	trace, err := dex.BuildTraceMap(m)
	require.NoError(t, err)

	enr := EnrichAllocation(idx, session.New(config.Default()), m, trace, 0, 0)
	require.NotNil(t, enr.ConstructorCall)
	require.Len(t, enr.ConstructorCall.Method.Args, 1)
	require.True(t, enr.ConstructorCall.Method.Args[0].Resolved)
	require.Equal(t, int32(3), enr.ConstructorCall.Method.Args[0].Value.I32)
}

func TestEnrichAllocationResolvesFillArrayData(t *testing.T) {
	// build(): v0 = new int[3]; fill-array-data v0, {10, 20, 30}; return v0.
	newArr := dex.Emit21c(dex.OpNewArray, 0, 0)
	fill := dex.Emit31t(dex.OpFillArrayData, 0, 0) // offset patched below
	ret := dex.Emit11x(dex.OpReturnObject, 0)
	payload := []uint16{
		0x0300, 4, // ident, element_width
		3, 0, // size (uint32, low then high)
		10, 0, 20, 0, 30, 0, // three 4-byte elements, little-endian
	}
	fillPC := len(newArr)
	payloadPC := fillPC + len(fill) + len(ret)
	fill = dex.Emit31t(dex.OpFillArrayData, 0, int32(payloadPC-fillPC))

	md := dex.MethodData{
		Class: "Lc/E;", Name: "build", ReturnDesc: "[I",
		RegsCount: 1,
		Code:      dex.Cat(newArr, fill, ret, payload),
		TypeRefs:  []string{"[I"},
	}
	idx := dex.NewIndex([]dex.ContainerInput{{Methods: []dex.MethodData{md}}})
	m, _ := idx.MethodBySignature("Lc/E;->build()[I")
	trace, err := dex.BuildTraceMap(m)
	require.NoError(t, err)

	enr := EnrichAllocation(idx, session.New(config.Default()), m, trace, 0, 0)
	require.Len(t, enr.ArrayFillData, 3)
	require.True(t, enr.ArrayFillData[0].Resolved)
	require.Equal(t, int32(10), enr.ArrayFillData[0].Value.I32)
	require.Equal(t, int32(20), enr.ArrayFillData[1].Value.I32)
	require.Equal(t, int32(30), enr.ArrayFillData[2].Value.I32)
}

func TestAnalyzeMethodReportsDirectDependencies(t *testing.T) {
	md := dex.MethodData{
		Class: "Lc/E;", Name: "run", ReturnDesc: "V",
		RegsCount: 1,
		Code: dex.Cat(
			dex.Emit21c(dex.OpSget, 0, 0),
			dex.Emit35c(dex.OpInvokeStatic, 0),
			dex.Emit10x(dex.OpReturnVoid),
		),
		FieldRefs:  []dex.FieldRef{{Class: "Lc/Other;", Name: "X", Type: "I"}},
		MethodRefs: []dex.MethodRef{{Class: "Lc/Helper;", Name: "touch", ReturnDesc: "V"}},
	}
	idx := dex.NewIndex([]dex.ContainerInput{{Methods: []dex.MethodData{md}}})
	m, _ := idx.MethodBySignature("Lc/E;->run()V")

	deps := AnalyzeMethod(m)
	require.Len(t, deps.StaticFields, 1)
	require.Contains(t, deps.ClassesNeedingInit, "Lc/Other;")
	require.Contains(t, deps.MethodsCalled, "Lc/Helper;->touch()V")
}
