package compress

import (
	"fmt"

	"github.com/golang/snappy"
)

// SnappyCompressor implements Snappy block compression, the container
// format's "snappy" codec. The container-level CRC trailer that the format
// appends after the snappy payload is handled by the decode pipeline, not
// here; this codec deals with the snappy block format alone.
type SnappyCompressor struct{}

var _ Codec = (*SnappyCompressor)(nil)

// NewSnappyCompressor creates a new Snappy compressor.
func NewSnappyCompressor() SnappyCompressor {
	return SnappyCompressor{}
}

// Compress compresses the input data using the Snappy block format.
func (c SnappyCompressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

// Decompress decompresses a Snappy block. The decoded length is declared
// inside the compressed format, so corrupt input fails instead of
// producing truncated output.
func (c SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompression failed: %w", err)
	}

	return decompressed, nil
}
