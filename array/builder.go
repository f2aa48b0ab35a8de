package array

import (
	"fmt"

	"github.com/arloliu/vireo/datatypes"
	"github.com/arloliu/vireo/errs"
)

// Builder is a mutable, growable column buffer finalized into an immutable
// array. Builders are owned by the in-progress decode of a single block and
// are consumed by Finish; a finished builder must not be reused.
//
// Builders are not thread-safe.
type Builder interface {
	// Len returns the number of elements appended so far.
	Len() int
	// AppendNull appends a null element.
	AppendNull()
	// Finish finalizes the buffered elements into an immutable array,
	// running the layout invariant checks. It returns an error when the
	// buffered data violates an invariant that externally supplied bytes
	// can trigger, such as invalid UTF-8 in a string column.
	Finish() (Array, error)
}

// NewBuilder creates a builder for the given data type.
//
// Support is total over the type enumeration: every Kind either yields a
// working builder here or fails with errs.ErrUnsupportedType, so an
// unsupported type can never silently misdecode.
//
// Returns:
//   - Builder: Builder for dtype
//   - error: errs.ErrUnsupportedType when the engine cannot build dtype
func NewBuilder(dtype datatypes.DataType) (Builder, error) {
	switch dtype.Kind {
	case datatypes.KindBoolean:
		return NewBooleanBuilder(), nil
	case datatypes.KindInt32, datatypes.KindDate32:
		return NewPrimitiveBuilder[int32](dtype), nil
	case datatypes.KindInt64:
		return NewPrimitiveBuilder[int64](dtype), nil
	case datatypes.KindFloat32:
		return NewPrimitiveBuilder[float32](dtype), nil
	case datatypes.KindFloat64:
		return NewPrimitiveBuilder[float64](dtype), nil
	case datatypes.KindBinary:
		return NewBinaryBuilder(), nil
	case datatypes.KindUtf8:
		return NewStringBuilder(), nil
	case datatypes.KindList:
		child, err := NewBuilder(dtype.Elem.Type)
		if err != nil {
			return nil, err
		}

		return NewListBuilder(dtype, child), nil
	case datatypes.KindDictionary:
		return NewDictionaryBuilder(dtype, nil)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedType, dtype)
	}
}

// validityTracker accumulates a validity bitmap and collapses it to nil at
// finalize time when no null was ever appended.
type validityTracker struct {
	bitmap Bitmap
}

func (v *validityTracker) append(valid bool) {
	v.bitmap.Append(valid)
}

// finish returns the accumulated bitmap, or nil when every element is
// valid.
func (v *validityTracker) finish() *Bitmap {
	if v.bitmap.UnsetCount() == 0 {
		return nil
	}

	return &v.bitmap
}

// PrimitiveBuilder builds arrays of fixed-width values.
type PrimitiveBuilder[T PrimitiveValue] struct {
	dtype    datatypes.DataType
	values   []T
	validity validityTracker
}

// NewPrimitiveBuilder creates a builder for the given primitive or logical
// data type. Panics if dtype's physical width does not match T.
func NewPrimitiveBuilder[T PrimitiveValue](dtype datatypes.DataType) *PrimitiveBuilder[T] {
	checkPrimitiveKind[T](dtype)

	return &PrimitiveBuilder[T]{dtype: dtype}
}

// Append appends a valid value.
func (b *PrimitiveBuilder[T]) Append(v T) {
	b.values = append(b.values, v)
	b.validity.append(true)
}

// AppendNull appends a null element.
func (b *PrimitiveBuilder[T]) AppendNull() {
	var zero T
	b.values = append(b.values, zero)
	b.validity.append(false)
}

// Len returns the number of elements appended so far.
func (b *PrimitiveBuilder[T]) Len() int { return len(b.values) }

// Finish finalizes the builder into a primitive array. Never fails for
// primitive layouts; the error is part of the Builder contract.
func (b *PrimitiveBuilder[T]) Finish() (Array, error) {
	return NewPrimitiveArray(b.dtype, b.values, b.validity.finish()), nil
}

// BooleanBuilder builds bit-packed boolean arrays.
type BooleanBuilder struct {
	values   Bitmap
	validity validityTracker
}

// NewBooleanBuilder creates a boolean builder.
func NewBooleanBuilder() *BooleanBuilder {
	return &BooleanBuilder{}
}

// Append appends a valid value.
func (b *BooleanBuilder) Append(v bool) {
	b.values.Append(v)
	b.validity.append(true)
}

// AppendNull appends a null element.
func (b *BooleanBuilder) AppendNull() {
	b.values.Append(false)
	b.validity.append(false)
}

// Len returns the number of elements appended so far.
func (b *BooleanBuilder) Len() int { return b.values.Len() }

// Finish finalizes the builder into a boolean array.
func (b *BooleanBuilder) Finish() (Array, error) {
	return NewBooleanArray(&b.values, b.validity.finish()), nil
}
