package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDynamicFieldsAppearOnFirstAssignment(t *testing.T) {
	obj := NewObject("Lcom/example/Foo;")
	require.False(t, obj.HasField("bar"))
	require.True(t, obj.GetField("bar").IsNull())

	obj.SetField("bar", Int32(42))
	require.True(t, obj.HasField("bar"))
	require.Equal(t, int32(42), obj.GetField("bar").I32)
}

func TestStringBoxRoundTrip(t *testing.T) {
	obj := StringObjectFromGoString("hello")
	require.True(t, IsStringObject(ObjectVal(obj)))
	require.Equal(t, "hello", GoStringFromStringObject(obj))
}

func TestUTF16LEBytes(t *testing.T) {
	b := UTF16LEBytes("hi")
	require.Equal(t, []byte{'h', 0x00, 'i', 0x00}, b)
}

func TestArrayBoundsCheck(t *testing.T) {
	arr := NewArray("I", 3)
	require.Equal(t, 3, arr.Len())

	require.NoError(t, arr.Set(1, Int32(7)))
	v, err := arr.Get(1)
	require.NoError(t, err)
	require.Equal(t, int32(7), v.I32)

	_, err = arr.Get(3)
	require.Error(t, err)
}

func TestByteArrayRoundTrip(t *testing.T) {
	src := []byte{0x68, 0x69}
	arr := ByteArrayFromGoBytes(src)
	require.Equal(t, src, GoBytesFromByteArray(arr))
}

func TestBoxedNumericsRoundTrip(t *testing.T) {
	require.Equal(t, int32(5), UnboxInt(BoxInt(5)))
	require.Equal(t, int64(9000000000), UnboxLong(BoxLong(9000000000)))
	require.True(t, UnboxBool(BoxBool(true)))
}

func TestInstanceOfIsClassNameMatch(t *testing.T) {
	obj := NewObject("Ljava/lang/String;")
	require.True(t, obj.InstanceOf("Ljava/lang/String;"))
	require.False(t, obj.InstanceOf("Ljava/lang/Object;"))
}
