package gfunction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatalSec/DaliVM/internal/object"
)

func TestStringLengthHook(t *testing.T) {
	r := Default(PackageConfig{PackageName: "com.example.app", SDKInt: 30})
	hook, ok := r.Lookup("Ljava/lang/String;->length()I", false)
	require.True(t, ok)

	recv := object.ConstString("hello")
	v, err := hook(&Context{}, []object.Value{recv}, "")
	require.NoError(t, err)
	require.Equal(t, int32(5), v.I32)
}

func TestBase64DecodeHook(t *testing.T) {
	r := Default(PackageConfig{})
	hook, ok := r.Lookup("Landroid/util/Base64;->decode(Ljava/lang/String;I)[B", true)
	require.True(t, ok)

	v, err := hook(&Context{}, []object.Value{object.ConstString("aGk="), object.Int32(0)}, "")
	require.NoError(t, err)
	require.Equal(t, []byte{0x68, 0x69}, object.GoBytesFromByteArray(v.Arr))
}

func TestStringBuilderAppendAccumulates(t *testing.T) {
	r := Default(PackageConfig{})
	sb, ok := r.NewInstance(StringBuilderClassName, nil)
	require.True(t, ok)

	appendHook, ok := r.Lookup(StringBuilderClassName+"->append(Ljava/lang/String;)Ljava/lang/StringBuilder;", false)
	require.True(t, ok)
	recv := object.ObjectVal(sb)
	_, err := appendHook(&Context{}, []object.Value{recv, object.ConstString("ab")}, "")
	require.NoError(t, err)
	_, err = appendHook(&Context{}, []object.Value{recv, object.ConstString("cd")}, "")
	require.NoError(t, err)

	toString, ok := r.Lookup(StringBuilderClassName+"->toString()Ljava/lang/String;", false)
	require.True(t, ok)
	v, err := toString(&Context{}, []object.Value{recv}, "")
	require.NoError(t, err)
	require.Equal(t, "abcd", object.GoStringFromStringObject(v.Obj))
}

func TestArrayListIteratorWalksElementsInOrder(t *testing.T) {
	r := Default(PackageConfig{})
	list, ok := r.NewInstance(ArrayListClassName, nil)
	require.True(t, ok)
	recv := object.ObjectVal(list)

	add, ok := r.Lookup(ArrayListClassName+"->add(Ljava/lang/Object;)Z", false)
	require.True(t, ok)
	_, err := add(&Context{}, []object.Value{recv, object.Int32(1)}, "")
	require.NoError(t, err)
	_, err = add(&Context{}, []object.Value{recv, object.Int32(2)}, "")
	require.NoError(t, err)

	iterator, ok := r.Lookup(ArrayListClassName+"->iterator()Ljava/util/Iterator;", false)
	require.True(t, ok)
	itVal, err := iterator(&Context{}, []object.Value{recv}, "")
	require.NoError(t, err)

	hasNext, ok := r.Lookup(IteratorClassName+"->hasNext()Z", false)
	require.True(t, ok)
	next, ok := r.Lookup(IteratorClassName+"->next()Ljava/lang/Object;", false)
	require.True(t, ok)

	var seen []int32
	for {
		hn, err := hasNext(&Context{}, []object.Value{itVal}, "")
		require.NoError(t, err)
		if !hn.Bool {
			break
		}
		v, err := next(&Context{}, []object.Value{itVal}, "")
		require.NoError(t, err)
		seen = append(seen, v.I32)
	}
	require.Equal(t, []int32{1, 2}, seen)

	_, err = next(&Context{}, []object.Value{itVal}, "")
	require.Error(t, err)
}

func TestBuildVersionSDKIntOverride(t *testing.T) {
	r := Default(PackageConfig{SDKInt: 33})
	v, ok := r.StaticFieldOverride("Landroid/os/Build$VERSION;", "SDK_INT")
	require.True(t, ok)
	require.Equal(t, int32(33), v.I32)
}
