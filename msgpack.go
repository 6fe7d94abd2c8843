// Package msgpack implements the MessagePack serialization format: a
// dynamically-typed value model, a packer that encodes values into the
// smallest wire representation, an unpacker that decodes them back, and a
// container envelope for framing a value sequence for storage or transport.
//
// # Basic Usage
//
//	import "github.com/arloliu/msgpack"
//
//	encoded := msgpack.Pack(msgpack.FromString([]byte("hello")))
//	decoded, err := msgpack.Unpack(encoded)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the value,
// pack, and unpack packages. For repeated encode/decode without per-call
// buffer allocation, use pack.Packer and unpack.Unpacker directly. For
// framing a batch of values with compression and integrity checking, use the
// container package.
package msgpack

import (
	"github.com/arloliu/msgpack/container"
	"github.com/arloliu/msgpack/format"
	"github.com/arloliu/msgpack/pack"
	"github.com/arloliu/msgpack/unpack"
	"github.com/arloliu/msgpack/value"
)

// Re-exported value model so callers need only import this package for
// common usage.
type (
	Value    = value.Value
	Tag      = value.Tag
	MapEntry = value.MapEntry
)

const (
	TagNil   = value.TagNil
	TagBool  = value.TagBool
	TagInt   = value.TagInt
	TagUint  = value.TagUint
	TagFloat = value.TagFloat
	TagStr   = value.TagStr
	TagBin   = value.TagBin
	TagArray = value.TagArray
	TagMap   = value.TagMap
)

// Nil returns the absent value.
func Nil() Value { return value.Nil() }

// FromBool constructs a Bool value.
func FromBool(b bool) Value { return value.FromBool(b) }

// FromInt constructs a signed-integer value.
func FromInt(i int64) Value { return value.FromInt(i) }

// FromUint constructs an unsigned-integer value.
func FromUint(u uint64) Value { return value.FromUint(u) }

// FromFloat constructs a binary64 float value.
func FromFloat(f float64) Value { return value.FromFloat(f) }

// FromFloat32 constructs a float value by widening a binary32.
func FromFloat32(f float32) Value { return value.FromFloat32(f) }

// FromString constructs a Str value from raw bytes.
func FromString(b []byte) Value { return value.FromString(b) }

// FromBin constructs a Bin value from raw bytes.
func FromBin(b []byte) Value { return value.FromBin(b) }

// FromArray constructs an Array value.
func FromArray(vs []Value) Value { return value.FromArray(vs) }

// FromMap constructs a Map value from an ordered list of entries.
func FromMap(entries []MapEntry) Value { return value.FromMap(entries) }

// Pack encodes v into a freshly allocated byte slice using the smallest
// wire representation that round-trips v.
func Pack(v Value) []byte {
	return pack.Pack(v)
}

// Unpack decodes exactly one value from data.
//
// Trailing bytes after the decoded value are ignored; use UnpackAll to
// decode a buffer holding multiple concatenated values, or construct an
// unpack.Unpacker directly with unpack.WithStrictTrailingBytes to reject
// trailing bytes.
func Unpack(data []byte) (Value, error) {
	return unpack.NewUnpacker(data).Unpack()
}

// UnpackAll decodes every value from a buffer holding concatenated
// MessagePack values, aborting and discarding partial results on the first
// failure.
func UnpackAll(data []byte) ([]Value, error) {
	return unpack.UnpackAll(data)
}

// TryUnpack decodes one value from data, returning Nil on any failure
// instead of an error.
func TryUnpack(data []byte) Value {
	return unpack.TryUnpack(data)
}

// Compression selects the codec a Container envelope compresses its
// payload with.
type Compression = format.CompressionType

const (
	CompressionNone = format.CompressionNone
	CompressionZstd = format.CompressionZstd
	CompressionS2   = format.CompressionS2
	CompressionLZ4  = format.CompressionLZ4
)

// WriteContainer frames values into a self-describing, optionally
// compressed envelope. See package container for the wire layout.
func WriteContainer(values []Value, compression Compression) ([]byte, error) {
	return container.Write(values, compression)
}

// ReadContainer parses a container envelope produced by WriteContainer and
// decodes its payload back into a value sequence.
func ReadContainer(data []byte) ([]Value, error) {
	return container.Read(data)
}
