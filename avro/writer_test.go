package avro

// Test-only container writer. The library surface is read-only, so the
// round-trip tests produce their own container bytes here, exercising the
// Compressor side of the compress codecs.

import (
	"encoding/binary"
	"hash/crc32"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vireo/compress"
	"github.com/arloliu/vireo/format"
)

var testSync = [SyncSize]byte{
	0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef,
	0xfe, 0xdc, 0xba, 0x98, 0x76, 0x54, 0x32, 0x10,
}

// appendLong appends a zig-zag base-128 varint.
func appendLong(buf []byte, v int64) []byte {
	return binary.AppendVarint(buf, v)
}

// appendAvroBytes appends a zig-zag length prefix followed by the raw bytes.
func appendAvroBytes(buf, b []byte) []byte {
	buf = appendLong(buf, int64(len(b)))

	return append(buf, b...)
}

func appendAvroString(buf []byte, s string) []byte {
	return appendAvroBytes(buf, []byte(s))
}

func appendDouble(buf []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
}

// testBlock is one block of a container under construction: a declared
// record count and the not-yet-compressed record bytes.
type testBlock struct {
	count int
	body  []byte
}

// encodeBlockBody compresses one block body with the given codec, adding
// the trailing checksum the snappy codec requires.
func encodeBlockBody(t *testing.T, ctype format.CompressionType, raw []byte) []byte {
	t.Helper()

	codec, err := compress.GetCodec(ctype)
	require.NoError(t, err)

	body, err := codec.Compress(raw)
	require.NoError(t, err)

	if ctype == format.CompressionSnappy {
		body = binary.BigEndian.AppendUint32(body, crc32.ChecksumIEEE(raw))
	}

	return body
}

// appendHeader appends the magic bytes, the metadata map and the sync
// marker. An empty codecName omits the avro.codec entry.
func appendHeader(buf []byte, schemaJSON, codecName string, sync [SyncSize]byte) []byte {
	buf = append(buf, Magic[:]...)

	pairs := [][2]string{{schemaKey, schemaJSON}}
	if codecName != "" {
		pairs = append(pairs, [2]string{codecKey, codecName})
	}

	buf = appendLong(buf, int64(len(pairs)))
	for _, p := range pairs {
		buf = appendAvroString(buf, p[0])
		buf = appendAvroString(buf, p[1])
	}
	buf = appendLong(buf, 0)

	return append(buf, sync[:]...)
}

// buildContainer assembles a complete container file from uncompressed
// blocks.
func buildContainer(t *testing.T, schemaJSON, codecName string, ctype format.CompressionType, blocks ...testBlock) []byte {
	t.Helper()

	buf := appendHeader(nil, schemaJSON, codecName, testSync)
	for _, b := range blocks {
		body := encodeBlockBody(t, ctype, b.body)
		buf = appendLong(buf, int64(b.count))
		buf = appendLong(buf, int64(len(body)))
		buf = append(buf, body...)
		buf = append(buf, testSync[:]...)
	}

	return buf
}
