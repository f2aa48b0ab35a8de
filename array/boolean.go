package array

import "github.com/arloliu/vireo/datatypes"

// BooleanArray is an immutable array of booleans, stored one bit per
// element.
type BooleanArray struct {
	values   *Bitmap
	validity *Bitmap
}

// NewBooleanArray creates a boolean array over the given packed values.
// Panics if validity is non-nil and its length differs from values.Len().
func NewBooleanArray(values *Bitmap, validity *Bitmap) *BooleanArray {
	checkValidity(validity, values.Len())

	return &BooleanArray{values: values, validity: validity}
}

// DataType returns the boolean data type.
func (a *BooleanArray) DataType() datatypes.DataType { return datatypes.Boolean() }

// Len returns the number of elements.
func (a *BooleanArray) Len() int { return a.values.Len() }

// NullCount returns the number of null elements.
func (a *BooleanArray) NullCount() int { return nullCountOf(a.validity) }

// Validity returns the validity bitmap, or nil when there are no nulls.
func (a *BooleanArray) Validity() *Bitmap { return a.validity }

// Value returns the value at position i.
func (a *BooleanArray) Value(i int) bool { return a.values.Get(i) }
