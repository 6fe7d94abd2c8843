// Package compress provides the pluggable compression backends a container
// envelope's payload can be stored under.
package compress

import (
	"fmt"

	"github.com/arloliu/msgpack/format"
)

// Compressor compresses a packed payload before it is written into a
// container envelope.
type Compressor interface {
	// Compress compresses data and returns the result. The input is never
	// modified; NoOpCodec returns data itself, the other codecs return a
	// newly allocated slice.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor's transform.
type Decompressor interface {
	// Decompress decompresses data and returns a newly allocated result.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of a compression scheme.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec builds a fresh Codec for the given compression type.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("invalid compression type: %s", compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves a shared built-in Codec for the given compression type.
//
// Every built-in codec is either stateless (NoOp, S2) or pools its algorithm
// state internally (LZ4, Zstd), so the returned value is safe for concurrent
// Compress/Decompress calls.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
