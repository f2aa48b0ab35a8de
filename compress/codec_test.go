package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vireo/format"
)

var codecTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionDeflate,
	format.CompressionSnappy,
	format.CompressionZstd,
	format.CompressionLZ4,
}

func TestCodecRoundTrip(t *testing.T) {
	// Repetitive payload so every codec actually shrinks it.
	payload := bytes.Repeat([]byte("columnar blocks compress well, columnar blocks compress well. "), 64)

	for _, ctype := range codecTypes {
		t.Run(ctype.String(), func(t *testing.T) {
			codec, err := GetCodec(ctype)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, decompressed)

			if ctype != format.CompressionNone {
				require.Less(t, len(compressed), len(payload))
			}
		})
	}
}

func TestCodecRejectsCorruptInput(t *testing.T) {
	garbage := []byte{0x03, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	for _, ctype := range codecTypes {
		if ctype == format.CompressionNone {
			continue
		}

		t.Run(ctype.String(), func(t *testing.T) {
			codec, err := GetCodec(ctype)
			require.NoError(t, err)

			_, err = codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestNoOpAliasesInput(t *testing.T) {
	codec := NewNoOpCompressor()
	data := []byte("pass through")

	out, err := codec.Decompress(data)
	require.NoError(t, err)
	require.Equal(t, &data[0], &out[0])
}

func TestGetCodecUnknownType(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0xEE))
	require.Error(t, err)
}

func TestCodecEmptyInput(t *testing.T) {
	for _, ctype := range codecTypes {
		codec, err := GetCodec(ctype)
		require.NoError(t, err)

		out, err := codec.Decompress(nil)
		require.NoError(t, err, "codec %s", ctype)
		require.Empty(t, out, "codec %s", ctype)
	}
}
