// Package pool provides pooled byte buffers for the block decode path.
//
// A container file is decoded one block at a time and the record decoder
// copies every value out of the raw block bytes into column builders, so
// the block body and decompression scratch buffers are dead as soon as a
// block finishes decoding. Pooling them amortizes the per-block
// allocations across a whole file.
package pool

import "sync"

const (
	// BlockBufferDefaultSize matches common container block sizes (writers
	// typically sync every 64KiB).
	BlockBufferDefaultSize = 1024 * 64
	// BlockBufferMaxThreshold caps the capacity a pooled buffer may retain;
	// larger buffers are dropped instead of returned to the pool.
	BlockBufferMaxThreshold = 1024 * 1024 * 4
)

// ByteBuffer is a growable byte buffer with direct access to its backing
// slice.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int { return cap(bb.B) }

// Reset empties the buffer, retaining the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Resize sets the buffer length to n, reallocating when the capacity is
// insufficient. The contents are unspecified after a reallocation; callers
// overwrite the whole buffer.
func (bb *ByteBuffer) Resize(n int) {
	if cap(bb.B) < n {
		bb.B = make([]byte, n)

		return
	}
	bb.B = bb.B[:n]
}

// ByteBufferPool pools ByteBuffers, discarding buffers that grew past the
// configured threshold to avoid retaining memory from one oversized block.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool producing buffers of defaultSize
// capacity and retaining buffers up to maxThreshold capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)

	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var blockDefaultPool = NewByteBufferPool(BlockBufferDefaultSize, BlockBufferMaxThreshold)

// GetBlockBuffer retrieves a ByteBuffer from the default block pool.
func GetBlockBuffer() *ByteBuffer {
	return blockDefaultPool.Get()
}

// PutBlockBuffer returns a ByteBuffer to the default block pool.
func PutBlockBuffer(bb *ByteBuffer) {
	blockDefaultPool.Put(bb)
}
