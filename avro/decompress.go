package avro

import (
	"fmt"
	"hash/crc32"

	"github.com/arloliu/vireo/compress"
	"github.com/arloliu/vireo/endian"
	"github.com/arloliu/vireo/errs"
	"github.com/arloliu/vireo/format"
)

// snappyCRCSize is the length of the checksum the container format appends
// after a snappy-compressed block body: a big-endian CRC-32 (IEEE) of the
// decompressed payload.
const snappyCRCSize = 4

// Decompressor turns the raw block sequence into decompressed record
// bytes, applying the codec the file metadata selected. It is a pure
// per-block transform: a rejected body surfaces as a decoding error, never
// as silently truncated output.
type Decompressor struct {
	blocks *BlockReader
	ctype  format.CompressionType
	codec  compress.Codec
}

// NewDecompressor creates a decompressor over the block reader using the
// given codec.
//
// Returns:
//   - *Decompressor: Decompressor for the codec
//   - error: errs.ErrUnsupportedCodec for a codec with no implementation
func NewDecompressor(blocks *BlockReader, ctype format.CompressionType) (*Decompressor, error) {
	codec, err := compress.GetCodec(ctype)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, ctype)
	}

	return &Decompressor{blocks: blocks, ctype: ctype, codec: codec}, nil
}

// Next pulls one block and decompresses its body.
//
// Returns:
//   - int: Declared record count of the block
//   - []byte: Decompressed record bytes; for the identity codec they alias
//     the block buffer and are only valid until the next call
//   - error: io.EOF at the clean end of the sequence, block or codec
//     corruption errors otherwise
func (d *Decompressor) Next() (int, []byte, error) {
	block, err := d.blocks.Next()
	if err != nil {
		return 0, nil, err
	}

	body := block.Data
	if d.ctype == format.CompressionSnappy {
		var crc uint32
		body, crc, err = splitSnappyCRC(body)
		if err != nil {
			return 0, nil, err
		}

		data, err := d.codec.Decompress(body)
		if err != nil {
			return 0, nil, err
		}
		if crc32.ChecksumIEEE(data) != crc {
			return 0, nil, fmt.Errorf("%w: snappy crc", errs.ErrChecksumMismatch)
		}

		return block.Count, data, nil
	}

	data, err := d.codec.Decompress(body)
	if err != nil {
		return 0, nil, err
	}

	return block.Count, data, nil
}

// Close releases the underlying block reader's resources.
func (d *Decompressor) Close() {
	d.blocks.Close()
}

// splitSnappyCRC splits a snappy block body into the compressed payload
// and its trailing checksum.
func splitSnappyCRC(body []byte) ([]byte, uint32, error) {
	if len(body) < snappyCRCSize {
		return nil, 0, fmt.Errorf("%w: snappy body of %d bytes", errs.ErrTruncatedBlock, len(body))
	}

	n := len(body) - snappyCRCSize

	return body[:n], endian.GetBigEndianEngine().Uint32(body[n:]), nil
}
