package compress

// ZstdCodec compresses with klauspost/compress/zstd, favoring compression
// ratio over speed — suited to cold-stored or network-transmitted
// containers rather than hot-path round-trips.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
