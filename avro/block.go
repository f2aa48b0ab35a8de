package avro

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/vireo/errs"
	"github.com/arloliu/vireo/internal/pool"
)

// DefaultMaxBlockSize caps a block's declared compressed size. A block
// larger than this fails with errs.ErrBlockTooLarge before any allocation,
// guarding against hostile headers demanding unbounded memory.
const DefaultMaxBlockSize = 1 << 30

// Block is one raw, still-compressed unit of the container: a declared
// record count and the compressed body, already validated against the sync
// marker.
type Block struct {
	// Count is the number of records the body decodes to.
	Count int
	// Data is the compressed body. It aliases a buffer owned by the
	// BlockReader and is only valid until the next call to Next.
	Data []byte
}

// BlockReader is a lazy, finite, single-pass iterator over the container's
// raw blocks. It is not restartable: the underlying stream position
// advances monotonically and is owned exclusively by the reader.
type BlockReader struct {
	r            ByteStream
	sync         [SyncSize]byte
	buf          *pool.ByteBuffer
	maxBlockSize int
}

// NewBlockReader creates a block reader over the stream tail following the
// metadata, validating every block's trailing marker against sync.
func NewBlockReader(r ByteStream, sync [SyncSize]byte) *BlockReader {
	return &BlockReader{
		r:            r,
		sync:         sync,
		buf:          pool.GetBlockBuffer(),
		maxBlockSize: DefaultMaxBlockSize,
	}
}

// Next reads one block: the record count, the compressed byte length,
// exactly that many body bytes, and the 16-byte marker, which must match
// the file marker byte for byte.
//
// Returns:
//   - *Block: The next raw block; its Data is valid until the next call
//   - error: io.EOF when the stream is exhausted cleanly at a block
//     boundary; errs.ErrTruncatedBlock, errs.ErrInvalidRecordCount,
//     errs.ErrBlockTooLarge or errs.ErrSyncMarkerMismatch on corruption
func (br *BlockReader) Next() (*Block, error) {
	count, err := binary.ReadVarint(br.r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			// Clean end of the block sequence.
			return nil, io.EOF
		}

		return nil, fmt.Errorf("reading block record count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidRecordCount, count)
	}

	size, err := binary.ReadVarint(br.r)
	if err != nil {
		return nil, fmt.Errorf("reading block byte length: %w", corruptEOF(err))
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: negative byte length %d", errs.ErrInvalidVarint, size)
	}
	if size > int64(br.maxBlockSize) {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", errs.ErrBlockTooLarge, size, br.maxBlockSize)
	}

	br.buf.Resize(int(size))
	if _, err := io.ReadFull(br.r, br.buf.B); err != nil {
		return nil, fmt.Errorf("reading block body: %w", corruptEOF(err))
	}

	var marker [SyncSize]byte
	if _, err := io.ReadFull(br.r, marker[:]); err != nil {
		return nil, fmt.Errorf("reading block sync marker: %w", corruptEOF(err))
	}
	if !bytes.Equal(marker[:], br.sync[:]) {
		return nil, errs.ErrSyncMarkerMismatch
	}

	return &Block{Count: int(count), Data: br.buf.B}, nil
}

// setMaxBlockSize overrides the declared-size guard; wired through Reader
// options.
func (br *BlockReader) setMaxBlockSize(n int) {
	br.maxBlockSize = n
}

// Close returns the reader's block buffer to the pool. The reader must not
// be used afterwards.
func (br *BlockReader) Close() {
	pool.PutBlockBuffer(br.buf)
	br.buf = nil
}
