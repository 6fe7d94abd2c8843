// Package value defines the dynamically-typed value representation shared by
// the pack and unpack packages.
//
// A Value is a tagged union over every type the MessagePack wire format can
// describe. Exactly one payload field is live for a given Tag; accessors for
// any other tag return the zero value of their return shape rather than
// failing, so callers never need to type-switch before reading.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag identifies which payload of a Value is live.
type Tag uint8

const (
	TagNil Tag = iota
	TagBool
	TagInt
	TagUint
	TagFloat
	TagStr
	TagBin
	TagArray
	TagMap
)

func (t Tag) String() string {
	switch t {
	case TagNil:
		return "Nil"
	case TagBool:
		return "Bool"
	case TagInt:
		return "Int"
	case TagUint:
		return "Uint"
	case TagFloat:
		return "Float"
	case TagStr:
		return "Str"
	case TagBin:
		return "Bin"
	case TagArray:
		return "Array"
	case TagMap:
		return "Map"
	default:
		return "Unknown"
	}
}

// MapEntry is one (key, value) pair of a Map value. Order is preserved and
// significant: Map equality compares entries positionally, not by key.
type MapEntry struct {
	Key Value
	Val Value
}

// Value is a dynamically-typed MessagePack value.
//
// The zero Value is the Nil value. Values are immutable by convention: no
// method mutates a Value in place, so a Value may be freely shared across
// goroutines once constructed.
type Value struct {
	tag Tag

	boolVal  bool
	intVal   int64
	uintVal  uint64
	floatVal float64
	bytes    []byte
	arr      []Value
	m        []MapEntry
}

// Nil returns the singleton-meaning "absent" value.
func Nil() Value {
	return Value{tag: TagNil}
}

// FromBool constructs a Bool value.
func FromBool(b bool) Value {
	return Value{tag: TagBool, boolVal: b}
}

// FromInt constructs a signed-integer value.
func FromInt(i int64) Value {
	return Value{tag: TagInt, intVal: i}
}

// FromUint constructs an unsigned-integer value.
func FromUint(u uint64) Value {
	return Value{tag: TagUint, uintVal: u}
}

// FromFloat constructs a binary64 float value.
func FromFloat(f float64) Value {
	return Value{tag: TagFloat, floatVal: f}
}

// FromFloat32 constructs a float value by widening a binary32 to binary64.
func FromFloat32(f float32) Value {
	return Value{tag: TagFloat, floatVal: float64(f)}
}

// FromString constructs a Str value from raw bytes.
//
// The bytes are treated as opaque on the wire: the codec neither validates
// nor transcodes UTF-8. The input is copied so the Value does not alias
// caller-owned storage (invariant: every Value is self-contained).
func FromString(b []byte) Value {
	return Value{tag: TagStr, bytes: cloneBytes(b)}
}

// FromBin constructs a Bin value from raw bytes. The input is copied.
func FromBin(b []byte) Value {
	return Value{tag: TagBin, bytes: cloneBytes(b)}
}

// FromArray constructs an Array value. The input slice is copied and each
// element is deep-copied with Clone, so the result shares no storage with vs.
func FromArray(vs []Value) Value {
	if len(vs) == 0 {
		return Value{tag: TagArray, arr: []Value{}}
	}

	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = v.Clone()
	}

	return Value{tag: TagArray, arr: out}
}

// FromMap constructs a Map value from an ordered list of entries. Duplicate
// and non-scalar keys are permitted; order is preserved.
func FromMap(entries []MapEntry) Value {
	if len(entries) == 0 {
		return Value{tag: TagMap, m: []MapEntry{}}
	}

	out := make([]MapEntry, len(entries))
	for i, e := range entries {
		out[i] = MapEntry{Key: e.Key.Clone(), Val: e.Val.Clone()}
	}

	return Value{tag: TagMap, m: out}
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return []byte{}
	}

	out := make([]byte, len(b))
	copy(out, b)

	return out
}

// Type returns the tag discriminating which payload is live.
func (v Value) Type() Tag { return v.tag }

func (v Value) IsNil() bool   { return v.tag == TagNil }
func (v Value) IsBool() bool  { return v.tag == TagBool }
func (v Value) IsInt() bool   { return v.tag == TagInt }
func (v Value) IsUint() bool  { return v.tag == TagUint }
func (v Value) IsFloat() bool { return v.tag == TagFloat }
func (v Value) IsStr() bool   { return v.tag == TagStr }
func (v Value) IsBin() bool   { return v.tag == TagBin }
func (v Value) IsArray() bool { return v.tag == TagArray }
func (v Value) IsMap() bool   { return v.tag == TagMap }

// IsInteger reports whether the value is Int or Uint.
func (v Value) IsInteger() bool { return v.tag == TagInt || v.tag == TagUint }

// IsNumber reports whether the value is Int, Uint, or Float.
func (v Value) IsNumber() bool { return v.IsInteger() || v.tag == TagFloat }

// Bool returns the boolean payload, or false for any other tag.
func (v Value) Bool() bool {
	if v.tag != TagBool {
		return false
	}

	return v.boolVal
}

// Int returns the value as a signed 64-bit integer.
//
// On a Uint payload this is the two's-complement reinterpretation of the
// unsigned bits (a payload >= 2^63 wraps to negative). On any other tag it
// returns 0.
func (v Value) Int() int64 {
	switch v.tag {
	case TagInt:
		return v.intVal
	case TagUint:
		return int64(v.uintVal) //nolint:gosec
	default:
		return 0
	}
}

// Uint returns the value as an unsigned 64-bit integer.
//
// On an Int payload this returns the payload if it is non-negative, else 0.
// On any other tag it returns 0.
func (v Value) Uint() uint64 {
	switch v.tag {
	case TagUint:
		return v.uintVal
	case TagInt:
		if v.intVal < 0 {
			return 0
		}

		return uint64(v.intVal)
	default:
		return 0
	}
}

// Float returns the value widened to a binary64 float.
//
// Int and Uint payloads are widened. Any other tag returns 0.
func (v Value) Float() float64 {
	switch v.tag {
	case TagFloat:
		return v.floatVal
	case TagInt:
		return float64(v.intVal)
	case TagUint:
		return float64(v.uintVal)
	default:
		return 0
	}
}

// Str returns the Str payload as raw bytes, or nil for any other tag.
func (v Value) Str() []byte {
	if v.tag != TagStr {
		return nil
	}

	return v.bytes
}

// Bin returns the Bin payload as raw bytes, or nil for any other tag.
func (v Value) Bin() []byte {
	if v.tag != TagBin {
		return nil
	}

	return v.bytes
}

// Array returns the Array payload, or nil for any other tag.
func (v Value) Array() []Value {
	if v.tag != TagArray {
		return nil
	}

	return v.arr
}

// Map returns the Map payload, or nil for any other tag.
func (v Value) Map() []MapEntry {
	if v.tag != TagMap {
		return nil
	}

	return v.m
}

// Len returns the element count for Array/Map and the byte count for
// Str/Bin. It returns 0 for every other tag.
func (v Value) Len() int {
	switch v.tag {
	case TagArray:
		return len(v.arr)
	case TagMap:
		return len(v.m)
	case TagStr, TagBin:
		return len(v.bytes)
	default:
		return 0
	}
}

// At returns the i-th element of an Array value, or Nil if the value is not
// an Array or the index is out of range.
func (v Value) At(i int) Value {
	if v.tag != TagArray || i < 0 || i >= len(v.arr) {
		return Nil()
	}

	return v.arr[i]
}

// Lookup performs a linear scan over a Map's entries and returns the value of
// the first entry whose key is a Str equal to key, or Nil if absent or if v
// is not a Map.
//
// This is intentionally O(N): the value model preserves duplicate keys and
// insertion order, which a hash-map representation would silently break.
func (v Value) Lookup(key string) Value {
	if v.tag != TagMap {
		return Nil()
	}

	for _, e := range v.m {
		if e.Key.tag == TagStr && string(e.Key.bytes) == key {
			return e.Val
		}
	}

	return Nil()
}

// Clone deep-copies v so the result shares no storage with v.
func (v Value) Clone() Value {
	switch v.tag {
	case TagStr, TagBin:
		out := v
		out.bytes = cloneBytes(v.bytes)

		return out
	case TagArray:
		return FromArray(v.arr)
	case TagMap:
		return FromMap(v.m)
	default:
		return v
	}
}

// Equal reports whether v and other have the same tag and pointwise-equal
// payload. Array/Map equality compares length and elements positionally.
// Float comparison uses IEEE equality (NaN is never equal to NaN, including
// itself).
func (v Value) Equal(other Value) bool {
	if v.tag != other.tag {
		return false
	}

	switch v.tag {
	case TagNil:
		return true
	case TagBool:
		return v.boolVal == other.boolVal
	case TagInt:
		return v.intVal == other.intVal
	case TagUint:
		return v.uintVal == other.uintVal
	case TagFloat:
		return v.floatVal == other.floatVal
	case TagStr, TagBin:
		return string(v.bytes) == string(other.bytes)
	case TagArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}

		return true
	case TagMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for i := range v.m {
			if !v.m[i].Key.Equal(other.m[i].Key) || !v.m[i].Val.Equal(other.m[i].Val) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// String returns a diagnostic textual form of v. It is intended for test
// failure messages and debugging, not as a stable serialization format.
func (v Value) String() string {
	switch v.tag {
	case TagNil:
		return "nil"
	case TagBool:
		if v.boolVal {
			return "true"
		}

		return "false"
	case TagInt:
		return strconv.FormatInt(v.intVal, 10)
	case TagUint:
		return strconv.FormatUint(v.uintVal, 10)
	case TagFloat:
		return strconv.FormatFloat(v.floatVal, 'g', -1, 64)
	case TagStr:
		return `"` + string(v.bytes) + `"`
	case TagBin:
		return fmt.Sprintf("<binary:%d bytes>", len(v.bytes))
	case TagArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case TagMap:
		parts := make([]string, len(v.m))
		for i, e := range v.m {
			parts[i] = e.Key.String() + ": " + e.Val.String()
		}

		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "?"
	}
}
