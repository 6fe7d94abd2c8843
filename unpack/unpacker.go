// Package unpack decodes MessagePack wire bytes into value.Value instances.
//
// Decoding dispatches on the leading format byte per the MessagePack
// specification. Array and Map elements decode through plain recursion,
// bounded by a configurable depth cap so adversarial input cannot exhaust the
// goroutine stack.
package unpack

import (
	"fmt"
	"math"

	"github.com/arloliu/msgpack/endian"
	"github.com/arloliu/msgpack/errs"
	"github.com/arloliu/msgpack/internal/options"
	"github.com/arloliu/msgpack/value"
)

// DefaultMaxDepth is the default cap on nested Array/Map recursion.
const DefaultMaxDepth = 512

// Option configures an Unpacker. Use WithMaxDepth and WithStrictTrailingBytes.
type Option = options.Option[*Unpacker]

// WithMaxDepth overrides the default recursion depth cap.
func WithMaxDepth(n int) Option {
	return options.NoError(func(u *Unpacker) {
		u.maxDepth = n
	})
}

// WithStrictTrailingBytes makes Unpack fail if bytes remain after decoding
// one top-level value.
func WithStrictTrailingBytes(strict bool) Option {
	return options.NoError(func(u *Unpacker) {
		u.strictTrailing = strict
	})
}

// Unpacker decodes successive values from a fixed input buffer.
//
// An Unpacker is not safe for concurrent use; each goroutine should own its
// own instance.
type Unpacker struct {
	buf            []byte
	pos            int
	engine         endian.EndianEngine
	maxDepth       int
	strictTrailing bool
}

// NewUnpacker creates an Unpacker positioned at the start of buf.
func NewUnpacker(buf []byte, opts ...Option) *Unpacker {
	u := &Unpacker{
		buf:      buf,
		engine:   endian.GetBigEndianEngine(),
		maxDepth: DefaultMaxDepth,
	}

	_ = options.Apply(u, opts...)

	return u
}

// Reset re-initializes the Unpacker with a new buffer and cursor 0. Options
// set at construction (max depth, strict trailing bytes) are retained.
func (u *Unpacker) Reset(buf []byte) {
	u.buf = buf
	u.pos = 0
}

// Remaining returns the number of unread bytes.
func (u *Unpacker) Remaining() int {
	return len(u.buf) - u.pos
}

// IsComplete reports whether the cursor has reached the end of the buffer.
func (u *Unpacker) IsComplete() bool {
	return u.pos >= len(u.buf)
}

// Unpack decodes exactly one value and advances the cursor past it.
func (u *Unpacker) Unpack() (value.Value, error) {
	v, err := u.decode(0)
	if err != nil {
		return value.Nil(), err
	}

	if u.strictTrailing && !u.IsComplete() {
		return value.Nil(), fmt.Errorf("%w: %d bytes remain", errs.ErrTrailingBytes, u.Remaining())
	}

	return v, nil
}

func (u *Unpacker) decode(depth int) (value.Value, error) {
	if depth > u.maxDepth {
		return value.Nil(), errs.ErrMaxDepthExceeded
	}

	b, err := u.readByte()
	if err != nil {
		return value.Nil(), err
	}

	switch {
	case b <= 0x7f:
		return value.FromUint(uint64(b)), nil
	case b >= 0x80 && b <= 0x8f:
		return u.decodeMap(int(b&0x0f), depth)
	case b >= 0x90 && b <= 0x9f:
		return u.decodeArray(int(b&0x0f), depth)
	case b >= 0xa0 && b <= 0xbf:
		return u.decodeStr(int(b & 0x1f))
	case b == 0xc0:
		return value.Nil(), nil
	case b == 0xc1:
		return value.Nil(), errs.ErrReservedByte
	case b == 0xc2:
		return value.FromBool(false), nil
	case b == 0xc3:
		return value.FromBool(true), nil
	case b == 0xc4:
		return u.decodeBinWithLen(1)
	case b == 0xc5:
		return u.decodeBinWithLen(2)
	case b == 0xc6:
		return u.decodeBinWithLen(4)
	case b >= 0xc7 && b <= 0xc9:
		return u.decodeExt(b)
	case b == 0xca:
		return u.decodeFloat32()
	case b == 0xcb:
		return u.decodeFloat64()
	case b == 0xcc:
		return u.decodeUintWithLen(1)
	case b == 0xcd:
		return u.decodeUintWithLen(2)
	case b == 0xce:
		return u.decodeUintWithLen(4)
	case b == 0xcf:
		return u.decodeUintWithLen(8)
	case b == 0xd0:
		return u.decodeIntWithLen(1)
	case b == 0xd1:
		return u.decodeIntWithLen(2)
	case b == 0xd2:
		return u.decodeIntWithLen(4)
	case b == 0xd3:
		return u.decodeIntWithLen(8)
	case b >= 0xd4 && b <= 0xd8:
		return u.decodeFixext(b)
	case b == 0xd9:
		return u.decodeStrWithLen(1)
	case b == 0xda:
		return u.decodeStrWithLen(2)
	case b == 0xdb:
		return u.decodeStrWithLen(4)
	case b == 0xdc:
		return u.decodeArrayWithLen(2, depth)
	case b == 0xdd:
		return u.decodeArrayWithLen(4, depth)
	case b == 0xde:
		return u.decodeMapWithLen(2, depth)
	case b == 0xdf:
		return u.decodeMapWithLen(4, depth)
	case b >= 0xe0:
		return value.FromInt(int64(int8(b))), nil
	default:
		return value.Nil(), errs.ErrUnknownFormatByte
	}
}

func (u *Unpacker) readByte() (byte, error) {
	if u.pos >= len(u.buf) {
		return 0, errs.ErrTruncatedInput
	}

	b := u.buf[u.pos]
	u.pos++

	return b, nil
}

func (u *Unpacker) take(n int) ([]byte, error) {
	if n < 0 || u.pos+n > len(u.buf) {
		return nil, errs.ErrTruncatedInput
	}

	b := u.buf[u.pos : u.pos+n]
	u.pos += n

	return b, nil
}

func (u *Unpacker) readLen(byteWidth int) (int, error) {
	b, err := u.take(byteWidth)
	if err != nil {
		return 0, err
	}

	switch byteWidth {
	case 1:
		return int(b[0]), nil
	case 2:
		return int(u.engine.Uint16(b)), nil
	case 4:
		n := u.engine.Uint32(b)
		if n > math.MaxInt32 {
			return 0, fmt.Errorf("%w: length %d exceeds int range", errs.ErrTruncatedInput, n)
		}

		return int(n), nil
	default:
		return 0, errs.ErrUnknownFormatByte
	}
}

func (u *Unpacker) decodeUintWithLen(byteWidth int) (value.Value, error) {
	b, err := u.take(byteWidth)
	if err != nil {
		return value.Nil(), err
	}

	switch byteWidth {
	case 1:
		return value.FromUint(uint64(b[0])), nil
	case 2:
		return value.FromUint(uint64(u.engine.Uint16(b))), nil
	case 4:
		return value.FromUint(uint64(u.engine.Uint32(b))), nil
	default:
		return value.FromUint(u.engine.Uint64(b)), nil
	}
}

func (u *Unpacker) decodeIntWithLen(byteWidth int) (value.Value, error) {
	b, err := u.take(byteWidth)
	if err != nil {
		return value.Nil(), err
	}

	switch byteWidth {
	case 1:
		return value.FromInt(int64(int8(b[0]))), nil
	case 2:
		return value.FromInt(int64(int16(u.engine.Uint16(b)))), nil
	case 4:
		return value.FromInt(int64(int32(u.engine.Uint32(b)))), nil
	default:
		return value.FromInt(int64(u.engine.Uint64(b))), nil
	}
}

func (u *Unpacker) decodeFloat32() (value.Value, error) {
	b, err := u.take(4)
	if err != nil {
		return value.Nil(), err
	}

	return value.FromFloat32(math.Float32frombits(u.engine.Uint32(b))), nil
}

func (u *Unpacker) decodeFloat64() (value.Value, error) {
	b, err := u.take(8)
	if err != nil {
		return value.Nil(), err
	}

	return value.FromFloat(math.Float64frombits(u.engine.Uint64(b))), nil
}

func (u *Unpacker) decodeStr(length int) (value.Value, error) {
	b, err := u.take(length)
	if err != nil {
		return value.Nil(), err
	}

	return value.FromString(b), nil
}

func (u *Unpacker) decodeStrWithLen(byteWidth int) (value.Value, error) {
	length, err := u.readLen(byteWidth)
	if err != nil {
		return value.Nil(), err
	}

	return u.decodeStr(length)
}

func (u *Unpacker) decodeBinWithLen(byteWidth int) (value.Value, error) {
	length, err := u.readLen(byteWidth)
	if err != nil {
		return value.Nil(), err
	}

	b, err := u.take(length)
	if err != nil {
		return value.Nil(), err
	}

	return value.FromBin(b), nil
}

func (u *Unpacker) decodeArray(count, depth int) (value.Value, error) {
	if count > u.Remaining() {
		return value.Nil(), fmt.Errorf("%w: array count %d exceeds %d remaining bytes", errs.ErrTruncatedInput, count, u.Remaining())
	}

	elems := make([]value.Value, 0, count)
	for i := 0; i < count; i++ {
		e, err := u.decode(depth + 1)
		if err != nil {
			return value.Nil(), fmt.Errorf("array element %d: %w", i, err)
		}
		elems = append(elems, e)
	}

	return value.FromArray(elems), nil
}

func (u *Unpacker) decodeArrayWithLen(byteWidth, depth int) (value.Value, error) {
	count, err := u.readLen(byteWidth)
	if err != nil {
		return value.Nil(), err
	}

	return u.decodeArray(count, depth)
}

func (u *Unpacker) decodeMap(count, depth int) (value.Value, error) {
	if count > u.Remaining()/2 {
		return value.Nil(), fmt.Errorf("%w: map count %d exceeds half of %d remaining bytes", errs.ErrTruncatedInput, count, u.Remaining())
	}

	entries := make([]value.MapEntry, 0, count)
	for i := 0; i < count; i++ {
		k, err := u.decode(depth + 1)
		if err != nil {
			return value.Nil(), fmt.Errorf("map entry %d key: %w", i, err)
		}

		v, err := u.decode(depth + 1)
		if err != nil {
			return value.Nil(), fmt.Errorf("map entry %d value: %w", i, err)
		}

		entries = append(entries, value.MapEntry{Key: k, Val: v})
	}

	return value.FromMap(entries), nil
}

func (u *Unpacker) decodeMapWithLen(byteWidth, depth int) (value.Value, error) {
	count, err := u.readLen(byteWidth)
	if err != nil {
		return value.Nil(), err
	}

	return u.decodeMap(count, depth)
}

// decodeExt skips an ext8/16/32 payload and returns Nil; the cursor advances
// past the 1-byte type tag and the data bytes so streaming can continue.
func (u *Unpacker) decodeExt(formatByte byte) (value.Value, error) {
	byteWidth := 1 << (formatByte - 0xc7)

	length, err := u.readLen(byteWidth)
	if err != nil {
		return value.Nil(), err
	}

	if _, err := u.take(1 + length); err != nil {
		return value.Nil(), err
	}

	return value.Nil(), nil
}

// fixextLengths maps 0xd4-0xd8 to their fixed data length (1, 2, 4, 8, 16).
var fixextLengths = [5]int{1, 2, 4, 8, 16}

func (u *Unpacker) decodeFixext(formatByte byte) (value.Value, error) {
	length := fixextLengths[formatByte-0xd4]

	if _, err := u.take(1 + length); err != nil {
		return value.Nil(), err
	}

	return value.Nil(), nil
}

// UnpackAll repeatedly unpacks until buf is exhausted, discarding partial
// results on the first failure.
func UnpackAll(buf []byte) ([]value.Value, error) {
	u := NewUnpacker(buf)

	var out []value.Value
	for !u.IsComplete() {
		v, err := u.Unpack()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// TryUnpack decodes one value from buf, returning value.Nil() on any failure
// including a recovered panic.
func TryUnpack(buf []byte) (v value.Value) {
	defer func() {
		if recover() != nil {
			v = value.Nil()
		}
	}()

	result, err := NewUnpacker(buf).Unpack()
	if err != nil {
		return value.Nil()
	}

	return result
}
