// Package format defines the closed enumerations shared by the container
// decoding pipeline and the compression layer.
package format

// CompressionType identifies the per-block compression codec of a container
// file. The zero value is deliberately invalid so an unset codec is never
// mistaken for a real one.
type CompressionType uint8

const (
	CompressionNone    CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionDeflate CompressionType = 0x2 // CompressionDeflate represents raw DEFLATE (RFC 1951) compression.
	CompressionSnappy  CompressionType = 0x3 // CompressionSnappy represents Snappy block compression.
	CompressionZstd    CompressionType = 0x4 // CompressionZstd represents Zstandard compression.
	CompressionLZ4     CompressionType = 0x5 // CompressionLZ4 represents LZ4 block compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionDeflate:
		return "Deflate"
	case CompressionSnappy:
		return "Snappy"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
