package array

import (
	"github.com/arloliu/vireo/datatypes"
	"github.com/arloliu/vireo/errs"
)

// BinaryArray is an immutable array of variable-length byte sequences:
// element i is values[offsets[i]:offsets[i+1]].
type BinaryArray struct {
	offsets  []int32
	values   []byte
	validity *Bitmap
}

// NewBinaryArray creates a binary array, panicking if the offsets buffer
// violates the layout invariants. Use TryNewBinaryArray for untrusted
// buffers.
func NewBinaryArray(offsets []int32, values []byte, validity *Bitmap) *BinaryArray {
	arr, err := TryNewBinaryArray(offsets, values, validity)
	if err != nil {
		panic(err)
	}

	return arr
}

// TryNewBinaryArray creates a binary array after validating that offsets
// are monotonically non-decreasing and bounded by the values buffer. The
// buffers are retained, not copied.
//
// Returns:
//   - *BinaryArray: Array of length len(offsets)-1
//   - error: errs.ErrEmptyOffsets, offset invariant errors, or
//     errs.ErrLengthMismatch for a validity length mismatch
func TryNewBinaryArray(offsets []int32, values []byte, validity *Bitmap) (*BinaryArray, error) {
	if _, err := checkVarLenLayout(offsets, validity); err != nil {
		return nil, err
	}
	if err := TryCheckOffsets(offsets, len(values)); err != nil {
		return nil, err
	}

	return &BinaryArray{offsets: offsets, values: values, validity: validity}, nil
}

// DataType returns the binary data type.
func (a *BinaryArray) DataType() datatypes.DataType { return datatypes.Binary() }

// Len returns the number of elements.
func (a *BinaryArray) Len() int { return len(a.offsets) - 1 }

// NullCount returns the number of null elements.
func (a *BinaryArray) NullCount() int { return nullCountOf(a.validity) }

// Validity returns the validity bitmap, or nil when there are no nulls.
func (a *BinaryArray) Validity() *Bitmap { return a.validity }

// Value returns the bytes at position i. The returned slice aliases the
// array's values buffer and must not be mutated.
func (a *BinaryArray) Value(i int) []byte {
	return a.values[a.offsets[i]:a.offsets[i+1]]
}

// Offsets returns the offsets buffer. Callers must not mutate it.
func (a *BinaryArray) Offsets() []int32 { return a.offsets }

// StringArray is an immutable array of variable-length UTF-8 strings with
// the same layout as BinaryArray plus per-element UTF-8 validity.
type StringArray struct {
	offsets  []int32
	values   []byte
	validity *Bitmap
}

// NewStringArray creates a string array, panicking if the offsets buffer or
// the UTF-8 contents violate the layout invariants. Use TryNewStringArray
// for untrusted buffers.
func NewStringArray(offsets []int32, values []byte, validity *Bitmap) *StringArray {
	arr, err := TryNewStringArray(offsets, values, validity)
	if err != nil {
		panic(err)
	}

	return arr
}

// TryNewStringArray creates a string array after validating the offset
// invariants and that every element slice is valid UTF-8. The buffers are
// retained, not copied.
//
// Returns:
//   - *StringArray: Array of length len(offsets)-1
//   - error: errs.ErrEmptyOffsets, offset invariant errors,
//     errs.ErrInvalidUTF8, or errs.ErrLengthMismatch for a validity length
//     mismatch
func TryNewStringArray(offsets []int32, values []byte, validity *Bitmap) (*StringArray, error) {
	if _, err := checkVarLenLayout(offsets, validity); err != nil {
		return nil, err
	}
	if err := TryCheckOffsetsAndUTF8(offsets, values); err != nil {
		return nil, err
	}

	return &StringArray{offsets: offsets, values: values, validity: validity}, nil
}

// DataType returns the utf8 data type.
func (a *StringArray) DataType() datatypes.DataType { return datatypes.Utf8() }

// Len returns the number of elements.
func (a *StringArray) Len() int { return len(a.offsets) - 1 }

// NullCount returns the number of null elements.
func (a *StringArray) NullCount() int { return nullCountOf(a.validity) }

// Validity returns the validity bitmap, or nil when there are no nulls.
func (a *StringArray) Validity() *Bitmap { return a.validity }

// Value returns the string at position i.
func (a *StringArray) Value(i int) string {
	return string(a.values[a.offsets[i]:a.offsets[i+1]])
}

// Offsets returns the offsets buffer. Callers must not mutate it.
func (a *StringArray) Offsets() []int32 { return a.offsets }

// checkVarLenLayout validates the parts of a variable-length layout shared
// by binary and string arrays: a non-empty offsets buffer and a validity
// bitmap matching the logical length.
func checkVarLenLayout(offsets []int32, validity *Bitmap) (int, error) {
	if len(offsets) == 0 {
		return 0, errs.ErrEmptyOffsets
	}

	length := len(offsets) - 1
	if validity != nil && validity.Len() != length {
		return 0, errs.ErrLengthMismatch
	}

	return length, nil
}
