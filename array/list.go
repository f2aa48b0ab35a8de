package array

import (
	"fmt"

	"github.com/arloliu/vireo/datatypes"
	"github.com/arloliu/vireo/errs"
)

// ListArray is an immutable array of variable-length lists: element i spans
// positions [offsets[i], offsets[i+1]) of the child values array.
type ListArray struct {
	dtype    datatypes.DataType
	offsets  []int32
	values   Array
	validity *Bitmap
}

// NewListArray creates a list array, panicking on layout violations. Use
// TryNewListArray for untrusted buffers.
func NewListArray(dtype datatypes.DataType, offsets []int32, values Array, validity *Bitmap) *ListArray {
	arr, err := TryNewListArray(dtype, offsets, values, validity)
	if err != nil {
		panic(err)
	}

	return arr
}

// TryNewListArray creates a list array after validating that dtype is a
// list of the child's type and that offsets are monotonically
// non-decreasing and bounded by the child length.
//
// Returns:
//   - *ListArray: Array of length len(offsets)-1
//   - error: errs.ErrUnsupportedType for a non-list dtype or a child type
//     mismatch, errs.ErrEmptyOffsets, offset invariant errors, or
//     errs.ErrLengthMismatch for a validity length mismatch
func TryNewListArray(dtype datatypes.DataType, offsets []int32, values Array, validity *Bitmap) (*ListArray, error) {
	if dtype.Kind != datatypes.KindList {
		return nil, fmt.Errorf("%w: %s is not a list type", errs.ErrUnsupportedType, dtype)
	}
	if !dtype.Elem.Type.Equal(values.DataType()) {
		return nil, fmt.Errorf("%w: list item type %s does not match child type %s",
			errs.ErrUnsupportedType, dtype.Elem.Type, values.DataType())
	}
	if _, err := checkVarLenLayout(offsets, validity); err != nil {
		return nil, err
	}
	if err := TryCheckOffsets(offsets, values.Len()); err != nil {
		return nil, err
	}

	return &ListArray{dtype: dtype, offsets: offsets, values: values, validity: validity}, nil
}

// DataType returns the list data type.
func (a *ListArray) DataType() datatypes.DataType { return a.dtype }

// Len returns the number of list elements.
func (a *ListArray) Len() int { return len(a.offsets) - 1 }

// NullCount returns the number of null list elements.
func (a *ListArray) NullCount() int { return nullCountOf(a.validity) }

// Validity returns the validity bitmap, or nil when there are no nulls.
func (a *ListArray) Validity() *Bitmap { return a.validity }

// Values returns the child array holding all list items.
func (a *ListArray) Values() Array { return a.values }

// Offsets returns the offsets buffer. Callers must not mutate it.
func (a *ListArray) Offsets() []int32 { return a.offsets }

// ValueRange returns the [start, end) child positions of list element i.
func (a *ListArray) ValueRange(i int) (int, int) {
	return int(a.offsets[i]), int(a.offsets[i+1])
}
