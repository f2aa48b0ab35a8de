package avro

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/vireo/errs"
)

// rawBlocks assembles a bare block sequence, without a file header.
func rawBlocks(bodies ...[]byte) []byte {
	var buf []byte
	for _, body := range bodies {
		buf = appendLong(buf, 1)
		buf = appendLong(buf, int64(len(body)))
		buf = append(buf, body...)
		buf = append(buf, testSync[:]...)
	}

	return buf
}

func TestBlockReaderSequence(t *testing.T) {
	data := rawBlocks([]byte("first"), []byte("second"))

	br := NewBlockReader(bytes.NewReader(data), testSync)
	defer br.Close()

	block, err := br.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, block.Count)
	assert.Equal(t, []byte("first"), block.Data)

	block, err = br.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), block.Data)

	_, err = br.Next()
	assert.ErrorIs(t, err, io.EOF)
}

// Block.Data aliases a buffer the reader reuses, so it is only valid until
// the next call.
func TestBlockReaderReusesBuffer(t *testing.T) {
	data := rawBlocks([]byte("aaaaaa"), []byte("bbbbbb"))

	br := NewBlockReader(bytes.NewReader(data), testSync)
	defer br.Close()

	first, err := br.Next()
	require.NoError(t, err)
	held := first.Data

	second, err := br.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("bbbbbb"), second.Data)
	assert.Equal(t, []byte("bbbbbb"), held, "previous Data must alias the reused buffer")
}

func TestBlockReaderSyncMismatch(t *testing.T) {
	data := rawBlocks([]byte("body"))
	data[len(data)-3] ^= 0x01

	br := NewBlockReader(bytes.NewReader(data), testSync)
	defer br.Close()

	_, err := br.Next()
	assert.ErrorIs(t, err, errs.ErrSyncMarkerMismatch)
}

func TestBlockReaderTruncatedMarker(t *testing.T) {
	data := rawBlocks([]byte("body"))

	br := NewBlockReader(bytes.NewReader(data[:len(data)-8]), testSync)
	defer br.Close()

	_, err := br.Next()
	assert.ErrorIs(t, err, errs.ErrTruncatedBlock)
}

func TestBlockReaderNegativeSize(t *testing.T) {
	buf := appendLong(nil, 1)
	buf = appendLong(buf, -5)

	br := NewBlockReader(bytes.NewReader(buf), testSync)
	defer br.Close()

	_, err := br.Next()
	assert.ErrorIs(t, err, errs.ErrInvalidVarint)
}

func TestBlockReaderSizeLimit(t *testing.T) {
	data := rawBlocks(bytes.Repeat([]byte{'x'}, 100))

	br := NewBlockReader(bytes.NewReader(data), testSync)
	defer br.Close()
	br.setMaxBlockSize(64)

	_, err := br.Next()
	assert.ErrorIs(t, err, errs.ErrBlockTooLarge)
}
