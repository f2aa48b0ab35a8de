package array

import (
	"fmt"

	"github.com/arloliu/vireo/datatypes"
	"github.com/arloliu/vireo/errs"
)

// Array is an immutable, typed, nullable columnar sequence.
//
// Implementations form a closed set: PrimitiveArray, BooleanArray,
// BinaryArray, StringArray, ListArray and DictionaryArray. Consumers must
// narrow with the As* accessors rather than asserting concrete types.
type Array interface {
	// DataType returns the array's type.
	DataType() datatypes.DataType
	// Len returns the number of elements.
	Len() int
	// NullCount returns the number of null elements.
	NullCount() int
	// Validity returns the validity bitmap, or nil when the array holds no
	// nulls. A set bit marks a valid (non-null) element.
	Validity() *Bitmap
}

// IsNull reports whether element i of a is null.
func IsNull(a Array, i int) bool {
	v := a.Validity()

	return v != nil && !v.Get(i)
}

// AsInt32 narrows a to an int32 primitive array.
func AsInt32(a Array) (*PrimitiveArray[int32], error) {
	return asPrimitive[int32](a, datatypes.KindInt32)
}

// AsInt64 narrows a to an int64 primitive array.
func AsInt64(a Array) (*PrimitiveArray[int64], error) {
	return asPrimitive[int64](a, datatypes.KindInt64)
}

// AsFloat32 narrows a to a float32 primitive array.
func AsFloat32(a Array) (*PrimitiveArray[float32], error) {
	return asPrimitive[float32](a, datatypes.KindFloat32)
}

// AsFloat64 narrows a to a float64 primitive array.
func AsFloat64(a Array) (*PrimitiveArray[float64], error) {
	return asPrimitive[float64](a, datatypes.KindFloat64)
}

// AsDate32 narrows a to a date32 array. Date32 shares the int32 physical
// layout; only the semantic tag differs.
func AsDate32(a Array) (*PrimitiveArray[int32], error) {
	return asPrimitive[int32](a, datatypes.KindDate32)
}

func asPrimitive[T PrimitiveValue](a Array, kind datatypes.Kind) (*PrimitiveArray[T], error) {
	arr, ok := a.(*PrimitiveArray[T])
	if !ok || arr.dtype.Kind != kind {
		return nil, wrongVariant(kind, a)
	}

	return arr, nil
}

// AsBoolean narrows a to a boolean array.
func AsBoolean(a Array) (*BooleanArray, error) {
	if arr, ok := a.(*BooleanArray); ok {
		return arr, nil
	}

	return nil, wrongVariant(datatypes.KindBoolean, a)
}

// AsBinary narrows a to a binary array.
func AsBinary(a Array) (*BinaryArray, error) {
	if arr, ok := a.(*BinaryArray); ok {
		return arr, nil
	}

	return nil, wrongVariant(datatypes.KindBinary, a)
}

// AsString narrows a to a utf8 string array.
func AsString(a Array) (*StringArray, error) {
	if arr, ok := a.(*StringArray); ok {
		return arr, nil
	}

	return nil, wrongVariant(datatypes.KindUtf8, a)
}

// AsList narrows a to a list array.
func AsList(a Array) (*ListArray, error) {
	if arr, ok := a.(*ListArray); ok {
		return arr, nil
	}

	return nil, wrongVariant(datatypes.KindList, a)
}

// AsDictionary narrows a to a dictionary array.
func AsDictionary(a Array) (*DictionaryArray, error) {
	if arr, ok := a.(*DictionaryArray); ok {
		return arr, nil
	}

	return nil, wrongVariant(datatypes.KindDictionary, a)
}

func wrongVariant(want datatypes.Kind, got Array) error {
	return fmt.Errorf("%w: want %s, got %s", errs.ErrWrongVariant, want, got.DataType())
}

// nullCountOf is the shared null-count rule: no bitmap means no nulls.
func nullCountOf(validity *Bitmap) int {
	if validity == nil {
		return 0
	}

	return validity.UnsetCount()
}

// checkValidity panics unless validity is nil or matches length. Arrays are
// constructed by the engine; a mismatch here is an engine bug.
func checkValidity(validity *Bitmap, length int) {
	if validity != nil && validity.Len() != length {
		panic(fmt.Sprintf("array: validity length %d must equal array length %d", validity.Len(), length))
	}
}
