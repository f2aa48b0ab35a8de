package array

import (
	"math/bits"

	"github.com/arloliu/vireo/errs"
)

// Bitmap is a packed bit-per-element mask with an incrementally maintained
// set-bit count. Arrays use it as their validity mask (set bit = valid,
// non-null element) and BooleanArray uses it as its value storage.
//
// A Bitmap is owned exclusively by its array once the array is constructed;
// it must not be mutated afterwards.
type Bitmap struct {
	data     []byte
	length   int
	setCount int
}

// NewBitmap creates an empty bitmap ready for appending.
func NewBitmap() *Bitmap {
	return &Bitmap{}
}

// NewBitmapFromBytes creates a bitmap over length bits of data, recounting
// the set bits. The byte slice is retained, not copied; bytes beyond the
// last bit are sliced off so bitmaps of equal length always share a backing
// size.
//
// Returns:
//   - *Bitmap: Bitmap of the given length
//   - error: errs.ErrLengthMismatch if data holds fewer than length bits
func NewBitmapFromBytes(data []byte, length int) (*Bitmap, error) {
	if len(data)*8 < length {
		return nil, errs.ErrLengthMismatch
	}

	bm := &Bitmap{data: data[:(length+7)/8], length: length}
	bm.recount()

	return bm, nil
}

// Append appends one bit.
func (b *Bitmap) Append(v bool) {
	byteIdx := b.length >> 3
	if byteIdx == len(b.data) {
		b.data = append(b.data, 0)
	}

	if v {
		b.data[byteIdx] |= 1 << (b.length & 7)
		b.setCount++
	}
	b.length++
}

// AppendN appends n copies of the same bit.
func (b *Bitmap) AppendN(v bool, n int) {
	for i := 0; i < n; i++ {
		b.Append(v)
	}
}

// Get returns the bit at position i. Panics if i is out of range.
func (b *Bitmap) Get(i int) bool {
	if i < 0 || i >= b.length {
		panic("array: bitmap index out of range")
	}

	return b.data[i>>3]&(1<<(i&7)) != 0
}

// Len returns the number of bits.
func (b *Bitmap) Len() int { return b.length }

// SetCount returns the number of set bits.
func (b *Bitmap) SetCount() int { return b.setCount }

// UnsetCount returns the number of unset bits. For a validity bitmap this
// is the null count.
func (b *Bitmap) UnsetCount() int { return b.length - b.setCount }

// And returns a new bitmap holding the bit-wise AND of b and other, with a
// freshly computed set count. Used to union nullability across nested
// structures: an element is valid only when both masks say so.
//
// Returns:
//   - *Bitmap: Merged bitmap of the same length
//   - error: errs.ErrLengthMismatch if the lengths differ
func (b *Bitmap) And(other *Bitmap) (*Bitmap, error) {
	if b.length != other.length {
		return nil, errs.ErrLengthMismatch
	}

	data := make([]byte, len(b.data))
	for i := range b.data {
		data[i] = b.data[i] & other.data[i]
	}

	merged := &Bitmap{data: data, length: b.length}
	merged.recount()

	return merged, nil
}

// recount recomputes setCount from the packed bytes, masking the unused
// tail bits of the last byte.
func (b *Bitmap) recount() {
	count := 0
	full := b.length >> 3
	for _, v := range b.data[:full] {
		count += bits.OnesCount8(v)
	}

	if rem := b.length & 7; rem != 0 {
		mask := byte(1<<rem) - 1
		count += bits.OnesCount8(b.data[full] & mask)
	}

	b.setCount = count
}
