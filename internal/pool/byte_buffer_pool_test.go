package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBufferResize(t *testing.T) {
	bb := NewByteBuffer(16)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 16, bb.Cap())

	bb.Resize(8)
	assert.Equal(t, 8, bb.Len())
	assert.Equal(t, 16, bb.Cap(), "resize within capacity must not reallocate")

	bb.Resize(64)
	assert.Equal(t, 64, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 64)

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 64, "reset retains the allocation")
}

func TestByteBufferPoolReuse(t *testing.T) {
	p := NewByteBufferPool(32, 1024)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.Resize(16)
	p.Put(bb)

	got := p.Get()
	require.NotNil(t, got)
	assert.Equal(t, 0, got.Len(), "pooled buffers come back reset")
}

func TestByteBufferPoolDropsOversized(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	bb.Resize(1024)
	p.Put(bb) // over threshold, dropped

	got := p.Get()
	assert.LessOrEqual(t, got.Cap(), 64, "oversized buffer must not return to the pool")
}

func TestByteBufferPoolPutNil(t *testing.T) {
	p := NewByteBufferPool(32, 64)
	assert.NotPanics(t, func() { p.Put(nil) })
}

func TestBlockBufferDefaults(t *testing.T) {
	bb := GetBlockBuffer()
	require.NotNil(t, bb)
	defer PutBlockBuffer(bb)

	bb.Resize(BlockBufferDefaultSize)
	assert.Equal(t, BlockBufferDefaultSize, bb.Len())
}
