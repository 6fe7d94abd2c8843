package pack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/msgpack/value"
)

func TestPack_Nil(t *testing.T) {
	assert.Equal(t, []byte{0xc0}, Pack(value.Nil()))
}

func TestPack_Bool(t *testing.T) {
	assert.Equal(t, []byte{0xc3}, Pack(value.FromBool(true)))
	assert.Equal(t, []byte{0xc2}, Pack(value.FromBool(false)))
}

func TestPack_Int_SmallestEncoding(t *testing.T) {
	tests := []struct {
		name string
		v    int64
		want []byte
	}{
		{"positive fixint zero", 0, []byte{0x00}},
		{"positive fixint max", 127, []byte{0x7f}},
		{"negative fixint upper bound", -1, []byte{0xff}},
		{"negative fixint lower bound", -32, []byte{0xe0}},
		{"int8", -33, []byte{0xd0, 0xdf}},
		{"int8 min", -128, []byte{0xd0, 0x80}},
		{"int16", -129, []byte{0xd1, 0xff, 0x7f}},
		{"int32", -32769, []byte{0xd2, 0xff, 0xff, 0x7f, 0xff}},
		{"int64", -1 << 40, []byte{0xd3, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pack(value.FromInt(tt.v)))
		})
	}
}

func TestPack_Int_NonNegativeUsesUintPath(t *testing.T) {
	assert.Equal(t, []byte{0xcc, 200}, Pack(value.FromInt(200)))
}

func TestPack_Uint_SmallestEncoding(t *testing.T) {
	tests := []struct {
		name string
		v    uint64
		want []byte
	}{
		{"positive fixint", 127, []byte{0x7f}},
		{"uint8", 128, []byte{0xcc, 128}},
		{"uint8 max", 255, []byte{0xcc, 0xff}},
		{"uint16", 256, []byte{0xcd, 0x01, 0x00}},
		{"uint16 max", 65535, []byte{0xcd, 0xff, 0xff}},
		{"uint32", 65536, []byte{0xce, 0x00, 0x01, 0x00, 0x00}},
		{"uint64", uint64(math.MaxUint32) + 1, []byte{0xcf, 0, 0, 0, 1, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pack(value.FromUint(tt.v)))
		})
	}
}

func TestPack_Float(t *testing.T) {
	got := Pack(value.FromFloat(1.5))
	require.Len(t, got, 9)
	assert.Equal(t, byte(0xcb), got[0])
	assert.Equal(t, 1.5, math.Float64frombits(
		uint64(got[1])<<56|uint64(got[2])<<48|uint64(got[3])<<40|uint64(got[4])<<32|
			uint64(got[5])<<24|uint64(got[6])<<16|uint64(got[7])<<8|uint64(got[8])))
}

func TestPack_Str_SmallestEncoding(t *testing.T) {
	assert.Equal(t, []byte{0xa0}, Pack(value.FromString(nil)))
	assert.Equal(t, append([]byte{0xa5}, "hello"...), Pack(value.FromString([]byte("hello"))))

	s32 := make([]byte, 32)
	got := Pack(value.FromString(s32))
	assert.Equal(t, byte(0xd9), got[0])
	assert.Equal(t, byte(32), got[1])

	s256 := make([]byte, 256)
	got = Pack(value.FromString(s256))
	assert.Equal(t, byte(0xda), got[0])
}

func TestPack_Bin_SmallestEncoding(t *testing.T) {
	got := Pack(value.FromBin([]byte{1, 2, 3}))
	assert.Equal(t, []byte{0xc4, 3, 1, 2, 3}, got)

	b256 := make([]byte, 256)
	got = Pack(value.FromBin(b256))
	assert.Equal(t, byte(0xc5), got[0])
}

func TestPack_Array(t *testing.T) {
	arr := value.FromArray([]value.Value{value.FromInt(1), value.FromInt(2)})
	got := Pack(arr)
	assert.Equal(t, []byte{0x92, 0x01, 0x02}, got)
}

func TestPack_Array16(t *testing.T) {
	vs := make([]value.Value, 16)
	for i := range vs {
		vs[i] = value.FromInt(0)
	}
	got := Pack(value.FromArray(vs))
	assert.Equal(t, byte(0xdc), got[0])
}

func TestPack_Map(t *testing.T) {
	m := value.FromMap([]value.MapEntry{
		{Key: value.FromString([]byte("k")), Val: value.FromInt(1)},
	})
	got := Pack(m)
	assert.Equal(t, byte(0x81), got[0])
}

func TestPacker_AccumulatesAcrossCalls(t *testing.T) {
	p := NewPacker()
	defer p.Release()

	p.Pack(value.FromInt(1))
	p.Pack(value.FromInt(2))

	assert.Equal(t, []byte{0x01, 0x02}, p.Bytes())
}

func TestPacker_Reset(t *testing.T) {
	p := NewPacker()
	defer p.Release()

	p.Pack(value.FromInt(1))
	p.Reset()
	p.Pack(value.FromInt(2))

	assert.Equal(t, []byte{0x02}, p.Bytes())
}

func TestOneShotHelpers(t *testing.T) {
	assert.Equal(t, []byte{0xc0}, PackNil())
	assert.Equal(t, []byte{0xc3}, PackBool(true))
	assert.Equal(t, []byte{0x05}, PackInt(5))
	assert.Equal(t, []byte{0x05}, PackUint(5))
	assert.Equal(t, byte(0xcb), PackFloat(1.0)[0])
	assert.Equal(t, append([]byte{0xa1}, "x"...), PackStr([]byte("x")))
	assert.Equal(t, []byte{0xc4, 1, 0xff}, PackBin([]byte{0xff}))
}
