package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoriesAndPredicates(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		tag  Tag
	}{
		{"nil", Nil(), TagNil},
		{"bool", FromBool(true), TagBool},
		{"int", FromInt(-5), TagInt},
		{"uint", FromUint(5), TagUint},
		{"float", FromFloat(1.5), TagFloat},
		{"float32", FromFloat32(1.5), TagFloat},
		{"str", FromString([]byte("hi")), TagStr},
		{"bin", FromBin([]byte{1, 2}), TagBin},
		{"array", FromArray([]Value{FromInt(1)}), TagArray},
		{"map", FromMap([]MapEntry{{Key: FromString([]byte("k")), Val: FromInt(1)}}), TagMap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.tag, tt.v.Type())
		})
	}
}

func TestIsIntegerIsNumber(t *testing.T) {
	assert.True(t, FromInt(1).IsInteger())
	assert.True(t, FromUint(1).IsInteger())
	assert.False(t, FromFloat(1).IsInteger())

	assert.True(t, FromInt(1).IsNumber())
	assert.True(t, FromUint(1).IsNumber())
	assert.True(t, FromFloat(1).IsNumber())
	assert.False(t, FromString([]byte("x")).IsNumber())
}

func TestAccessorsZeroValueOnMismatch(t *testing.T) {
	s := FromString([]byte("hi"))

	assert.False(t, s.Bool())
	assert.Equal(t, int64(0), s.Int())
	assert.Equal(t, uint64(0), s.Uint())
	assert.Equal(t, float64(0), s.Float())
	assert.Nil(t, s.Bin())
	assert.Nil(t, s.Array())
	assert.Nil(t, s.Map())
	assert.Equal(t, 2, s.Len())

	i := FromInt(5)
	assert.Equal(t, 0, i.Len())
	assert.Nil(t, i.Str())
}

func TestIntUintCoercion(t *testing.T) {
	t.Run("uint reinterprets as two's complement int", func(t *testing.T) {
		u := FromUint(math.MaxUint64)
		assert.Equal(t, int64(-1), u.Int())
	})

	t.Run("negative int coerces to zero uint", func(t *testing.T) {
		i := FromInt(-5)
		assert.Equal(t, uint64(0), i.Uint())
	})

	t.Run("non-negative int coerces to uint", func(t *testing.T) {
		i := FromInt(5)
		assert.Equal(t, uint64(5), i.Uint())
	})

	t.Run("int/uint widen to float", func(t *testing.T) {
		assert.Equal(t, float64(5), FromInt(5).Float())
		assert.Equal(t, float64(5), FromUint(5).Float())
	})
}

func TestLenAndAt(t *testing.T) {
	arr := FromArray([]Value{FromInt(1), FromInt(2), FromInt(3)})
	require.Equal(t, 3, arr.Len())
	assert.True(t, FromInt(2).Equal(arr.At(1)))
	assert.True(t, Nil().Equal(arr.At(-1)))
	assert.True(t, Nil().Equal(arr.At(3)))
}

func TestLookup(t *testing.T) {
	m := FromMap([]MapEntry{
		{Key: FromString([]byte("name")), Val: FromString([]byte("Alice"))},
		{Key: FromString([]byte("age")), Val: FromUint(30)},
	})

	assert.True(t, FromString([]byte("Alice")).Equal(m.Lookup("name")))
	assert.True(t, FromUint(30).Equal(m.Lookup("age")))
	assert.True(t, Nil().Equal(m.Lookup("missing")))
	assert.True(t, Nil().Equal(FromInt(1).Lookup("x")))
}

func TestLookupDuplicateKeysReturnsFirst(t *testing.T) {
	m := FromMap([]MapEntry{
		{Key: FromString([]byte("k")), Val: FromInt(1)},
		{Key: FromString([]byte("k")), Val: FromInt(2)},
	})

	assert.True(t, FromInt(1).Equal(m.Lookup("k")))
}

func TestEqual(t *testing.T) {
	t.Run("same tag same payload", func(t *testing.T) {
		assert.True(t, FromInt(5).Equal(FromInt(5)))
		assert.True(t, FromString([]byte("x")).Equal(FromString([]byte("x"))))
	})

	t.Run("int and uint with same numeric value are not equal", func(t *testing.T) {
		assert.False(t, FromInt(5).Equal(FromUint(5)))
	})

	t.Run("NaN is never equal", func(t *testing.T) {
		nan := FromFloat(math.NaN())
		assert.False(t, nan.Equal(nan))
	})

	t.Run("arrays compare positionally", func(t *testing.T) {
		a := FromArray([]Value{FromInt(1), FromInt(2)})
		b := FromArray([]Value{FromInt(2), FromInt(1)})
		assert.False(t, a.Equal(b))
	})

	t.Run("maps compare positionally, not as sets", func(t *testing.T) {
		a := FromMap([]MapEntry{
			{Key: FromString([]byte("a")), Val: FromInt(1)},
			{Key: FromString([]byte("b")), Val: FromInt(2)},
		})
		b := FromMap([]MapEntry{
			{Key: FromString([]byte("b")), Val: FromInt(2)},
			{Key: FromString([]byte("a")), Val: FromInt(1)},
		})
		assert.False(t, a.Equal(b))
	})
}

func TestCloneIsIndependent(t *testing.T) {
	orig := []byte{1, 2, 3}
	v := FromBin(orig)
	clone := v.Clone()

	orig[0] = 0xFF
	assert.Equal(t, byte(1), v.Bin()[0])
	assert.Equal(t, byte(1), clone.Bin()[0])

	v.Bin()[1] = 0xEE
	assert.Equal(t, byte(2), clone.Bin()[1])
}

func TestFromArrayCopiesSlice(t *testing.T) {
	src := []Value{FromInt(1)}
	v := FromArray(src)
	src[0] = FromInt(99)

	assert.True(t, FromInt(1).Equal(v.At(0)))
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"nil", Nil(), "nil"},
		{"bool true", FromBool(true), "true"},
		{"bool false", FromBool(false), "false"},
		{"int", FromInt(-5), "-5"},
		{"uint", FromUint(5), "5"},
		{"str", FromString([]byte("hi")), `"hi"`},
		{"bin", FromBin([]byte{1, 2, 3}), "<binary:3 bytes>"},
		{"array", FromArray([]Value{FromInt(1), FromInt(2)}), "[1, 2]"},
		{
			"map",
			FromMap([]MapEntry{{Key: FromString([]byte("k")), Val: FromInt(1)}}),
			`"k": 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.v.String(), tt.want)
		})
	}
}

func TestString_StrDoesNotEscape(t *testing.T) {
	v := FromString([]byte(`line"with\backslash`))
	assert.Equal(t, `"line"with\backslash"`, v.String())
}
