// Package pack encodes value.Value instances into MessagePack wire bytes.
//
// Encoding always chooses the smallest representation that fits a given
// payload, per the MessagePack format family (fixint/fixstr/fixarray/fixmap
// through the full-width variants). The Packer type amortizes output buffer
// allocation across repeated calls; Pack is a one-shot convenience wrapper
// around it.
package pack

import (
	"math"

	"github.com/arloliu/msgpack/endian"
	"github.com/arloliu/msgpack/internal/pool"
	"github.com/arloliu/msgpack/value"
)

const (
	fixintPositiveMax = 0x7f
	fixintNegativeMin = -32

	fixstrMaxLen   = 31
	fixarrayMaxLen = 15
	fixmapMaxLen   = 15
)

// Format bytes, per the MessagePack specification.
const (
	fmtNil        = 0xc0
	fmtFalse      = 0xc2
	fmtTrue       = 0xc3
	fmtBin8       = 0xc4
	fmtBin16      = 0xc5
	fmtBin32      = 0xc6
	fmtFloat32    = 0xca
	fmtFloat64    = 0xcb
	fmtUint8      = 0xcc
	fmtUint16     = 0xcd
	fmtUint32     = 0xce
	fmtUint64     = 0xcf
	fmtInt8       = 0xd0
	fmtInt16      = 0xd1
	fmtInt32      = 0xd2
	fmtInt64      = 0xd3
	fmtStr8       = 0xd9
	fmtStr16      = 0xda
	fmtStr32      = 0xdb
	fmtArray16    = 0xdc
	fmtArray32    = 0xdd
	fmtMap16      = 0xde
	fmtMap32      = 0xdf
	fixstrMask    = 0xa0
	fixarrayMask  = 0x90
	fixmapMask    = 0x80
	negFixintMask = 0xe0
)

// Packer encodes a sequence of values into an internal pooled buffer.
//
// A Packer is not safe for concurrent use; each goroutine should own its
// own instance.
type Packer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewPacker creates a Packer backed by a pooled output buffer.
func NewPacker() *Packer {
	return &Packer{
		buf:    pool.GetPackBuffer(),
		engine: endian.GetBigEndianEngine(),
	}
}

// Pack appends the wire encoding of v to the internal buffer and returns the
// buffer's contents so far.
//
// The returned slice aliases the Packer's internal storage and is valid
// until the next Pack, Reset, or Release call.
func (p *Packer) Pack(v value.Value) []byte {
	p.encode(v)
	return p.buf.Bytes()
}

// Bytes returns the bytes accumulated so far.
func (p *Packer) Bytes() []byte {
	return p.buf.Bytes()
}

// Reset clears accumulated output, retaining the underlying buffer for
// reuse.
func (p *Packer) Reset() {
	p.buf.Reset()
}

// Release returns the internal buffer to the pool. The Packer must not be
// used after Release: Pack, Bytes and Reset panic once the buffer has been
// returned.
func (p *Packer) Release() {
	if p.buf != nil {
		pool.PutPackBuffer(p.buf)
		p.buf = nil
	}
}

func (p *Packer) encode(v value.Value) {
	switch v.Type() {
	case value.TagNil:
		p.writeByte(fmtNil)
	case value.TagBool:
		if v.Bool() {
			p.writeByte(fmtTrue)
		} else {
			p.writeByte(fmtFalse)
		}
	case value.TagInt:
		p.encodeInt(v.Int())
	case value.TagUint:
		p.encodeUint(v.Uint())
	case value.TagFloat:
		p.encodeFloat(v.Float())
	case value.TagStr:
		p.encodeStr(v.Str())
	case value.TagBin:
		p.encodeBin(v.Bin())
	case value.TagArray:
		p.encodeArray(v.Array())
	case value.TagMap:
		p.encodeMap(v.Map())
	}
}

func (p *Packer) encodeInt(i int64) {
	if i >= 0 {
		p.encodeUint(uint64(i)) //nolint:gosec
		return
	}

	switch {
	case i >= fixintNegativeMin:
		p.writeByte(byte(negFixintMask | (i & 0x1f)))
	case i >= -128:
		p.writeByte(fmtInt8)
		p.writeByte(byte(int8(i)))
	case i >= -32768:
		p.writeByte(fmtInt16)
		p.appendUint16(uint16(int16(i)))
	case i >= -(1 << 31):
		p.writeByte(fmtInt32)
		p.appendUint32(uint32(int32(i)))
	default:
		p.writeByte(fmtInt64)
		p.appendUint64(uint64(i))
	}
}

func (p *Packer) encodeUint(u uint64) {
	switch {
	case u <= fixintPositiveMax:
		p.writeByte(byte(u))
	case u <= math.MaxUint8:
		p.writeByte(fmtUint8)
		p.writeByte(byte(u))
	case u <= math.MaxUint16:
		p.writeByte(fmtUint16)
		p.appendUint16(uint16(u))
	case u <= math.MaxUint32:
		p.writeByte(fmtUint32)
		p.appendUint32(uint32(u))
	default:
		p.writeByte(fmtUint64)
		p.appendUint64(u)
	}
}

func (p *Packer) encodeFloat(f float64) {
	p.writeByte(fmtFloat64)
	p.appendUint64(math.Float64bits(f))
}

func (p *Packer) encodeStr(b []byte) {
	n := len(b)
	switch {
	case n <= fixstrMaxLen:
		p.writeByte(byte(fixstrMask | n))
	case n <= math.MaxUint8:
		p.writeByte(fmtStr8)
		p.writeByte(byte(n))
	case n <= math.MaxUint16:
		p.writeByte(fmtStr16)
		p.appendUint16(uint16(n))
	default:
		p.writeByte(fmtStr32)
		p.appendUint32(uint32(n)) //nolint:gosec
	}
	p.writeRaw(b)
}

func (p *Packer) encodeBin(b []byte) {
	n := len(b)
	switch {
	case n <= math.MaxUint8:
		p.writeByte(fmtBin8)
		p.writeByte(byte(n))
	case n <= math.MaxUint16:
		p.writeByte(fmtBin16)
		p.appendUint16(uint16(n))
	default:
		p.writeByte(fmtBin32)
		p.appendUint32(uint32(n)) //nolint:gosec
	}
	p.writeRaw(b)
}

func (p *Packer) encodeArray(vs []value.Value) {
	n := len(vs)
	switch {
	case n <= fixarrayMaxLen:
		p.writeByte(byte(fixarrayMask | n))
	case n <= math.MaxUint16:
		p.writeByte(fmtArray16)
		p.appendUint16(uint16(n))
	default:
		p.writeByte(fmtArray32)
		p.appendUint32(uint32(n)) //nolint:gosec
	}
	for _, e := range vs {
		p.encode(e)
	}
}

func (p *Packer) encodeMap(entries []value.MapEntry) {
	n := len(entries)
	switch {
	case n <= fixmapMaxLen:
		p.writeByte(byte(fixmapMask | n))
	case n <= math.MaxUint16:
		p.writeByte(fmtMap16)
		p.appendUint16(uint16(n))
	default:
		p.writeByte(fmtMap32)
		p.appendUint32(uint32(n)) //nolint:gosec
	}
	for _, e := range entries {
		p.encode(e.Key)
		p.encode(e.Val)
	}
}

func (p *Packer) writeByte(b byte) {
	p.buf.Grow(1)
	start := p.buf.Len()
	p.buf.ExtendOrGrow(1)
	p.buf.Slice(start, start+1)[0] = b
}

func (p *Packer) writeRaw(b []byte) {
	if len(b) == 0 {
		return
	}

	p.buf.Grow(len(b))
	start := p.buf.Len()
	p.buf.ExtendOrGrow(len(b))
	copy(p.buf.Slice(start, start+len(b)), b)
}

func (p *Packer) appendUint16(v uint16) {
	p.buf.Grow(2)
	start := p.buf.Len()
	p.buf.ExtendOrGrow(2)
	p.engine.PutUint16(p.buf.Slice(start, start+2), v)
}

func (p *Packer) appendUint32(v uint32) {
	p.buf.Grow(4)
	start := p.buf.Len()
	p.buf.ExtendOrGrow(4)
	p.engine.PutUint32(p.buf.Slice(start, start+4), v)
}

func (p *Packer) appendUint64(v uint64) {
	p.buf.Grow(8)
	start := p.buf.Len()
	p.buf.ExtendOrGrow(8)
	p.engine.PutUint64(p.buf.Slice(start, start+8), v)
}

// Pack encodes v into a freshly allocated byte slice.
func Pack(v value.Value) []byte {
	p := NewPacker()
	defer p.Release()

	out := p.Pack(v)
	dst := make([]byte, len(out))
	copy(dst, out)

	return dst
}

// PackNil encodes the Nil value.
func PackNil() []byte { return Pack(value.Nil()) }

// PackBool encodes a Bool value.
func PackBool(b bool) []byte { return Pack(value.FromBool(b)) }

// PackInt encodes a signed-integer value.
func PackInt(i int64) []byte { return Pack(value.FromInt(i)) }

// PackUint encodes an unsigned-integer value.
func PackUint(u uint64) []byte { return Pack(value.FromUint(u)) }

// PackFloat encodes a binary64 float value.
func PackFloat(f float64) []byte { return Pack(value.FromFloat(f)) }

// PackStr encodes a Str value.
func PackStr(s []byte) []byte { return Pack(value.FromString(s)) }

// PackBin encodes a Bin value.
func PackBin(b []byte) []byte { return Pack(value.FromBin(b)) }
