package array

import (
	"fmt"

	"github.com/arloliu/vireo/datatypes"
)

// PrimitiveValue constrains the fixed-width value types primitive arrays
// can hold.
type PrimitiveValue interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// PrimitiveArray is an immutable array of fixed-width values. The same
// storage serves multiple logical types: a date32 array is a PrimitiveArray
// of int32 tagged with the Date32 data type.
type PrimitiveArray[T PrimitiveValue] struct {
	dtype    datatypes.DataType
	values   []T
	validity *Bitmap
}

// NewPrimitiveArray creates a primitive array over the given values. The
// value slice is retained, not copied. Panics if validity is non-nil and
// its length differs from len(values), or if dtype's physical width does
// not match T.
func NewPrimitiveArray[T PrimitiveValue](dtype datatypes.DataType, values []T, validity *Bitmap) *PrimitiveArray[T] {
	checkPrimitiveKind[T](dtype)
	checkValidity(validity, len(values))

	return &PrimitiveArray[T]{dtype: dtype, values: values, validity: validity}
}

func checkPrimitiveKind[T PrimitiveValue](dtype datatypes.DataType) {
	var zero T
	ok := false
	switch any(zero).(type) {
	case int32:
		ok = dtype.Kind == datatypes.KindInt32 || dtype.Kind == datatypes.KindDate32
	case int64:
		ok = dtype.Kind == datatypes.KindInt64
	case float32:
		ok = dtype.Kind == datatypes.KindFloat32
	case float64:
		ok = dtype.Kind == datatypes.KindFloat64
	}

	if !ok {
		panic(fmt.Sprintf("array: data type %s does not match primitive value type %T", dtype, zero))
	}
}

// DataType returns the array's type.
func (a *PrimitiveArray[T]) DataType() datatypes.DataType { return a.dtype }

// Len returns the number of elements.
func (a *PrimitiveArray[T]) Len() int { return len(a.values) }

// NullCount returns the number of null elements.
func (a *PrimitiveArray[T]) NullCount() int { return nullCountOf(a.validity) }

// Validity returns the validity bitmap, or nil when there are no nulls.
func (a *PrimitiveArray[T]) Validity() *Bitmap { return a.validity }

// Value returns the value at position i. The result for a null element is
// unspecified; check IsNull first.
func (a *PrimitiveArray[T]) Value(i int) T { return a.values[i] }

// Values returns the backing value slice. Callers must not mutate it.
func (a *PrimitiveArray[T]) Values() []T { return a.values }
