package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		c    CompressionType
		want string
	}{
		{CompressionNone, "None"},
		{CompressionZstd, "Zstd"},
		{CompressionS2, "S2"},
		{CompressionLZ4, "LZ4"},
		{CompressionType(0xff), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.c.String())
	}
}
