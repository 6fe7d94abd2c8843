package container

import (
	"github.com/arloliu/msgpack/endian"
	"github.com/arloliu/msgpack/errs"
	"github.com/arloliu/msgpack/format"
)

// magicNumber identifies a byte sequence as a msgpack container envelope.
const magicNumber = 0x4d50 // "MP"

const version1 = 0x01

// flagChecksumPresent marks bit 3 of the header flags; every envelope this
// package writes sets it, but Read tolerates it being unset for forward
// compatibility with a future no-checksum mode.
const flagChecksumPresent = 0x08

// compressionMask extracts the compression selector from bits 0-2 of flags.
const compressionMask = 0x07

// HeaderSize is the fixed size in bytes of a container header.
const HeaderSize = 24

// header is the fixed 24-byte envelope prefix.
//
//	offset  size  field
//	0       2     magic number
//	2       1     version
//	3       1     flags (bits 0-2: compression selector, bit 3: checksum present)
//	4       4     value count
//	8       8     uncompressed payload length
//	16      8     xxHash64 checksum of the uncompressed payload
type header struct {
	magic       uint16
	version     uint8
	flags       uint8
	count       uint32
	payloadLen  uint64
	checksum    uint64
	compression format.CompressionType
}

func newHeader(count uint32, payloadLen uint64, checksum uint64, compression format.CompressionType) header {
	return header{
		magic:       magicNumber,
		version:     version1,
		flags:       byte(compression) | flagChecksumPresent,
		count:       count,
		payloadLen:  payloadLen,
		checksum:    checksum,
		compression: compression,
	}
}

func (h header) bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := endian.GetBigEndianEngine()

	engine.PutUint16(b[0:2], h.magic)
	b[2] = h.version
	b[3] = h.flags
	engine.PutUint32(b[4:8], h.count)
	engine.PutUint64(b[8:16], h.payloadLen)
	engine.PutUint64(b[16:24], h.checksum)

	return b
}

func parseHeader(data []byte) (header, error) {
	if len(data) < HeaderSize {
		return header{}, errs.ErrHeaderSize
	}

	engine := endian.GetBigEndianEngine()

	h := header{
		magic:   engine.Uint16(data[0:2]),
		version: data[2],
		flags:   data[3],
	}

	if h.magic != magicNumber {
		return header{}, errs.ErrInvalidMagicNumber
	}

	if h.version != version1 {
		return header{}, errs.ErrUnsupportedVersion
	}

	h.compression = format.CompressionType(h.flags & compressionMask)
	h.count = engine.Uint32(data[4:8])
	h.payloadLen = engine.Uint64(data[8:16])
	h.checksum = engine.Uint64(data[16:24])

	return h, nil
}
