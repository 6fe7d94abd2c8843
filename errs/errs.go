// Package errs defines the sentinel errors returned by the unpack and
// container packages.
//
// Callers should use errors.Is against these sentinels rather than matching
// on error strings; call sites that add context wrap a sentinel with
// fmt.Errorf("...: %w", err) so the wrapped chain stays matchable.
package errs

import "errors"

var (
	// ErrTruncatedInput indicates the input ended before a value's encoded
	// length was satisfied.
	ErrTruncatedInput = errors.New("msgpack: truncated input")

	// ErrReservedByte indicates a format byte from the reserved range
	// (0xc1) was encountered.
	ErrReservedByte = errors.New("msgpack: reserved format byte 0xc1")

	// ErrUnknownFormatByte indicates a format byte outside the MessagePack
	// dispatch table was encountered.
	ErrUnknownFormatByte = errors.New("msgpack: unknown format byte")

	// ErrMaxDepthExceeded indicates an Array or Map nested deeper than the
	// unpacker's configured maximum depth.
	ErrMaxDepthExceeded = errors.New("msgpack: maximum nesting depth exceeded")

	// ErrTrailingBytes indicates bytes remained after decoding a single
	// value while strict trailing-bytes mode is enabled.
	ErrTrailingBytes = errors.New("msgpack: unexpected trailing bytes")

	// ErrStringTooLarge indicates a Str or Bin payload's declared length is
	// too large. The unpacker has no size-limit option and does not return
	// it; oversized declared lengths surface as ErrTruncatedInput.
	ErrStringTooLarge = errors.New("msgpack: string or binary payload too large")

	// ErrContainerTooLarge indicates an Array or Map's declared element
	// count is too large. The unpacker has no size-limit option and does not
	// return it; oversized declared counts surface as ErrTruncatedInput.
	ErrContainerTooLarge = errors.New("msgpack: array or map too large")
)

var (
	// ErrInvalidMagicNumber indicates a container header's magic number
	// did not match the expected value.
	ErrInvalidMagicNumber = errors.New("container: invalid magic number")

	// ErrUnsupportedVersion indicates a container header declared a
	// version this build does not know how to read.
	ErrUnsupportedVersion = errors.New("container: unsupported version")

	// ErrChecksumMismatch indicates the payload's computed xxHash64 did
	// not match the checksum recorded in the header.
	ErrChecksumMismatch = errors.New("container: checksum mismatch")

	// ErrInvalidCompressionType indicates a container header named a
	// compression type that has no registered codec.
	ErrInvalidCompressionType = errors.New("container: invalid compression type")

	// ErrContainerTruncated indicates the container's input ended before
	// the header was fully read, or that the decoded payload's length or
	// value count disagrees with the header.
	ErrContainerTruncated = errors.New("container: truncated input")

	// ErrHeaderSize indicates the input was shorter than the fixed
	// container header size.
	ErrHeaderSize = errors.New("container: invalid header size")
)
