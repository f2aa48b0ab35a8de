package avro

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/vireo/errs"
	"github.com/arloliu/vireo/format"
)

func TestReadMetadata(t *testing.T) {
	data := appendHeader(nil, fixtureSchema, "zstandard", testSync)

	meta, err := ReadMetadata(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, format.CompressionZstd, meta.Codec)
	assert.Equal(t, testSync, meta.Sync)
	assert.Equal(t, "record", meta.Schema.Type)
	assert.Equal(t, 10, meta.Resolved.Len())
	assert.Empty(t, meta.Pairs, "reserved entries must not leak into Pairs")
}

func TestReadMetadataBadMagic(t *testing.T) {
	data := appendHeader(nil, fixtureSchema, "null", testSync)
	data[0] = 'X'

	_, err := ReadMetadata(bytes.NewReader(data))
	assert.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
}

func TestReadMetadataTruncatedHeader(t *testing.T) {
	_, err := ReadMetadata(bytes.NewReader(Magic[:]))
	assert.ErrorIs(t, err, errs.ErrTruncatedBlock)
}

func TestReadMetadataMissingSchema(t *testing.T) {
	buf := append([]byte{}, Magic[:]...)
	buf = appendLong(buf, 1)
	buf = appendAvroString(buf, codecKey)
	buf = appendAvroString(buf, "null")
	buf = appendLong(buf, 0)
	buf = append(buf, testSync[:]...)

	_, err := ReadMetadata(bytes.NewReader(buf))
	assert.ErrorIs(t, err, errs.ErrInvalidSchema)
}

func TestReadMetadataUnknownCodec(t *testing.T) {
	data := appendHeader(nil, fixtureSchema, "lzma", testSync)

	_, err := ReadMetadata(bytes.NewReader(data))
	assert.ErrorIs(t, err, errs.ErrUnsupportedCodec)
}

func TestReadMetadataCodecNames(t *testing.T) {
	cases := map[string]format.CompressionType{
		"null":      format.CompressionNone,
		"deflate":   format.CompressionDeflate,
		"snappy":    format.CompressionSnappy,
		"zstandard": format.CompressionZstd,
		"lz4":       format.CompressionLZ4,
	}
	for name, want := range cases {
		meta, err := ReadMetadata(bytes.NewReader(appendHeader(nil, fixtureSchema, name, testSync)))
		require.NoError(t, err, name)
		assert.Equal(t, want, meta.Codec, name)
	}
}

// A metadata entry declaring a huge length backed by no bytes must fail as
// truncation without allocating the declared size.
func TestReadMetadataHugeEntryLength(t *testing.T) {
	buf := append([]byte{}, Magic[:]...)
	buf = appendLong(buf, 1)
	buf = appendLong(buf, 1<<62) // key length, stream ends here

	_, err := ReadMetadata(bytes.NewReader(buf))
	assert.ErrorIs(t, err, errs.ErrTruncatedBlock)
}

func TestReadMetadataGroupCountOverflow(t *testing.T) {
	buf := append([]byte{}, Magic[:]...)
	buf = appendLong(buf, math.MinInt64) // group count, negates to itself
	buf = appendLong(buf, 0)             // group byte size

	_, err := ReadMetadata(bytes.NewReader(buf))
	assert.ErrorIs(t, err, errs.ErrInvalidVarint)
}

// A negative map count declares -count pairs preceded by the group's byte
// size; writers may emit the map in that form.
func TestReadMetadataNegativeCountGroups(t *testing.T) {
	var group []byte
	group = appendAvroString(group, schemaKey)
	group = appendAvroString(group, fixtureSchema)
	group = appendAvroString(group, "app.name")
	group = appendAvroString(group, "vireo")

	buf := append([]byte{}, Magic[:]...)
	buf = appendLong(buf, -2)
	buf = appendLong(buf, int64(len(group)))
	buf = append(buf, group...)
	buf = appendLong(buf, 0)
	buf = append(buf, testSync[:]...)

	meta, err := ReadMetadata(bytes.NewReader(buf))
	require.NoError(t, err)

	assert.Equal(t, format.CompressionNone, meta.Codec)
	assert.Equal(t, map[string][]byte{"app.name": []byte("vireo")}, meta.Pairs)
}
