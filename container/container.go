// Package container frames a sequence of packed values into a
// self-describing envelope suitable for storage or transmission: a fixed
// header (magic number, version, compression selector, count, length,
// checksum) followed by an optionally compressed payload.
package container

import (
	"fmt"

	"github.com/arloliu/msgpack/container/compress"
	"github.com/arloliu/msgpack/errs"
	"github.com/arloliu/msgpack/format"
	"github.com/arloliu/msgpack/internal/hash"
	"github.com/arloliu/msgpack/pack"
	"github.com/arloliu/msgpack/unpack"
	"github.com/arloliu/msgpack/value"
)

// Write packs each value in order, checksums and compresses the result, and
// prefixes it with a header describing how to reverse the transform.
func Write(values []value.Value, compression format.CompressionType) ([]byte, error) {
	codec, err := compress.CreateCodec(compression)
	if err != nil {
		return nil, err
	}

	p := pack.NewPacker()
	defer p.Release()

	for _, v := range values {
		p.Pack(v)
	}

	payload := p.Bytes()
	checksum := hash.ID(string(payload))

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	h := newHeader(uint32(len(values)), uint64(len(payload)), checksum, compression) //nolint:gosec

	out := make([]byte, 0, HeaderSize+len(compressed))
	out = append(out, h.bytes()...)
	out = append(out, compressed...)

	return out, nil
}

// Read parses and validates a container envelope and decodes its payload
// back into a value sequence.
func Read(data []byte) ([]value.Value, error) {
	if len(data) < HeaderSize {
		return nil, errs.ErrContainerTruncated
	}

	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	compressedPayload := data[HeaderSize:]

	codec, err := compress.GetCodec(h.compression)
	if err != nil {
		return nil, errs.ErrInvalidCompressionType
	}

	payload, err := codec.Decompress(compressedPayload)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}

	if uint64(len(payload)) != h.payloadLen {
		return nil, fmt.Errorf("%w: header declares %d bytes, got %d", errs.ErrContainerTruncated, h.payloadLen, len(payload))
	}

	if hash.ID(string(payload)) != h.checksum {
		return nil, errs.ErrChecksumMismatch
	}

	values, err := unpack.UnpackAll(payload)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	if uint32(len(values)) != h.count { //nolint:gosec
		return nil, fmt.Errorf("%w: header declares %d values, got %d", errs.ErrContainerTruncated, h.count, len(values))
	}

	return values, nil
}
