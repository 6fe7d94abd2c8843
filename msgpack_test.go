package msgpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpack_RoundTrip(t *testing.T) {
	v := FromMap([]MapEntry{
		{Key: FromString([]byte("name")), Val: FromString([]byte("Alice"))},
		{Key: FromString([]byte("age")), Val: FromUint(30)},
		{Key: FromString([]byte("tags")), Val: FromArray([]Value{FromUint(1), FromUint(2)})},
	})

	encoded := Pack(v)
	decoded, err := Unpack(encoded)
	require.NoError(t, err)
	assert.True(t, v.Equal(decoded))
}

func TestUnpackAll(t *testing.T) {
	buf := append(Pack(FromInt(1)), Pack(FromInt(2))...)

	vs, err := UnpackAll(buf)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, uint64(1), vs[0].Uint())
}

func TestTryUnpack_NeverFails(t *testing.T) {
	assert.True(t, TryUnpack([]byte{0xc1}).IsNil())
}

func TestWriteReadContainer_RoundTrip(t *testing.T) {
	values := []Value{FromUint(1), FromString([]byte("two")), Nil()}

	encoded, err := WriteContainer(values, CompressionS2)
	require.NoError(t, err)

	decoded, err := ReadContainer(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(values))

	for i := range values {
		assert.True(t, values[i].Equal(decoded[i]))
	}
}

func TestTagConstants(t *testing.T) {
	assert.Equal(t, TagNil, Nil().Type())
	assert.Equal(t, TagInt, FromInt(1).Type())
	assert.Equal(t, TagUint, FromUint(1).Type())
	assert.Equal(t, TagBool, FromBool(true).Type())
	assert.Equal(t, TagFloat, FromFloat(1).Type())
	assert.Equal(t, TagStr, FromString(nil).Type())
	assert.Equal(t, TagBin, FromBin(nil).Type())
	assert.Equal(t, TagArray, FromArray(nil).Type())
	assert.Equal(t, TagMap, FromMap(nil).Type())
}
