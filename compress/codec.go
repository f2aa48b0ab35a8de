// Package compress provides the block compression codecs used by the
// container decode pipeline.
//
// Each codec is a pure transform over one block body. Codecs are stateless
// values; the pooled internals of the zstd and lz4 implementations make
// every codec safe for concurrent use.
package compress

import (
	"fmt"

	"github.com/arloliu/vireo/format"
)

// Compressor compresses one block body.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is newly allocated and owned by the caller; the
	// input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses one block body.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// bytes. It validates the compressed format and returns an error for
	// corrupt or incompatible input; it never silently produces truncated
	// output.
	//
	// The returned slice is newly allocated and owned by the caller; the
	// input slice is not modified.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. The decode pipeline only consumes the
// Decompressor side; the Compressor side exists for tests and tooling that
// produce container files.
type Codec interface {
	Compressor
	Decompressor
}

// GetCodec returns the built-in Codec for the given compression type.
//
// Returns:
//   - Codec: Codec instance for compressionType
//   - error: Unsupported compression type error
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:    NewNoOpCompressor(),
	format.CompressionDeflate: NewDeflateCompressor(),
	format.CompressionSnappy:  NewSnappyCompressor(),
	format.CompressionZstd:    NewZstdCompressor(),
	format.CompressionLZ4:     NewLZ4Compressor(),
}
