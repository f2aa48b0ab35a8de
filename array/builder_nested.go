package array

import (
	"fmt"

	"github.com/arloliu/vireo/datatypes"
	"github.com/arloliu/vireo/errs"
)

// BinaryBuilder builds variable-length byte arrays. Offsets are extended
// monotonically by construction, so finalization never has to repair them.
type BinaryBuilder struct {
	offsets  []int32
	values   []byte
	validity validityTracker
}

// NewBinaryBuilder creates a binary builder.
func NewBinaryBuilder() *BinaryBuilder {
	return &BinaryBuilder{offsets: []int32{0}}
}

// Append appends a valid byte element. The bytes are copied.
func (b *BinaryBuilder) Append(v []byte) {
	b.values = append(b.values, v...)
	b.offsets = append(b.offsets, int32(len(b.values)))
	b.validity.append(true)
}

// AppendNull appends a null element of zero length.
func (b *BinaryBuilder) AppendNull() {
	b.offsets = append(b.offsets, int32(len(b.values)))
	b.validity.append(false)
}

// Len returns the number of elements appended so far.
func (b *BinaryBuilder) Len() int { return len(b.offsets) - 1 }

// Finish finalizes the builder into a binary array.
func (b *BinaryBuilder) Finish() (Array, error) {
	CheckOffsetsMinimal(b.offsets, len(b.values))

	return TryNewBinaryArray(b.offsets, b.values, b.validity.finish())
}

// StringBuilder builds variable-length UTF-8 string arrays. Appended bytes
// are not validated eagerly; Finish validates every element slice and fails
// with errs.ErrInvalidUTF8 on untrusted input that is not UTF-8.
type StringBuilder struct {
	offsets  []int32
	values   []byte
	validity validityTracker
}

// NewStringBuilder creates a string builder.
func NewStringBuilder() *StringBuilder {
	return &StringBuilder{offsets: []int32{0}}
}

// Append appends a valid string element.
func (b *StringBuilder) Append(v string) {
	b.values = append(b.values, v...)
	b.offsets = append(b.offsets, int32(len(b.values)))
	b.validity.append(true)
}

// AppendBytes appends a valid element from raw bytes, deferring UTF-8
// validation to Finish. The bytes are copied.
func (b *StringBuilder) AppendBytes(v []byte) {
	b.values = append(b.values, v...)
	b.offsets = append(b.offsets, int32(len(b.values)))
	b.validity.append(true)
}

// AppendNull appends a null element of zero length.
func (b *StringBuilder) AppendNull() {
	b.offsets = append(b.offsets, int32(len(b.values)))
	b.validity.append(false)
}

// Len returns the number of elements appended so far.
func (b *StringBuilder) Len() int { return len(b.offsets) - 1 }

// Finish finalizes the builder into a string array, validating UTF-8.
func (b *StringBuilder) Finish() (Array, error) {
	CheckOffsetsMinimal(b.offsets, len(b.values))

	return TryNewStringArray(b.offsets, b.values, b.validity.finish())
}

// ListBuilder builds list arrays. Items are appended to the child builder
// directly; FinishElement then closes one list element spanning everything
// appended to the child since the previous element boundary.
type ListBuilder struct {
	dtype    datatypes.DataType
	offsets  []int32
	child    Builder
	validity validityTracker
}

// NewListBuilder creates a list builder over the given child builder.
// Panics if dtype is not a list type.
func NewListBuilder(dtype datatypes.DataType, child Builder) *ListBuilder {
	if dtype.Kind != datatypes.KindList {
		panic(fmt.Sprintf("array: %s is not a list type", dtype))
	}

	return &ListBuilder{dtype: dtype, offsets: []int32{0}, child: child}
}

// Child returns the builder for list items.
func (b *ListBuilder) Child() Builder { return b.child }

// FinishElement closes one valid list element containing every item
// appended to the child builder since the last element boundary.
func (b *ListBuilder) FinishElement() {
	b.offsets = append(b.offsets, int32(b.child.Len()))
	b.validity.append(true)
}

// AppendNull appends a null list element.
func (b *ListBuilder) AppendNull() {
	b.offsets = append(b.offsets, int32(b.child.Len()))
	b.validity.append(false)
}

// Len returns the number of list elements appended so far.
func (b *ListBuilder) Len() int { return len(b.offsets) - 1 }

// Finish finalizes the child builder and wraps it into a list array.
func (b *ListBuilder) Finish() (Array, error) {
	values, err := b.child.Finish()
	if err != nil {
		return nil, err
	}
	CheckOffsetsMinimal(b.offsets, values.Len())

	return TryNewListArray(b.dtype, b.offsets, values, b.validity.finish())
}

// DictionaryBuilder builds dictionary arrays of utf8 values. The values
// dictionary is either fixed up front by the constructor's symbol set (the
// enum decode path, where the schema declares the symbols) or grown by
// interning through AppendValue.
type DictionaryBuilder struct {
	dtype   datatypes.DataType
	keys    *PrimitiveBuilder[int32]
	symbols []string
	index   map[string]int32
	fixed   bool
}

// NewDictionaryBuilder creates a dictionary builder. Only utf8 value
// dictionaries are supported; other value types fail with
// errs.ErrUnsupportedType. A nil symbols slice starts an empty, growable
// dictionary; a non-nil one fixes the dictionary so only AppendKey may be
// used.
func NewDictionaryBuilder(dtype datatypes.DataType, symbols []string) (*DictionaryBuilder, error) {
	if dtype.Kind != datatypes.KindDictionary {
		return nil, fmt.Errorf("%w: %s is not a dictionary type", errs.ErrUnsupportedType, dtype)
	}
	if dtype.Values.Kind != datatypes.KindUtf8 {
		return nil, fmt.Errorf("%w: dictionary values of %s", errs.ErrUnsupportedType, *dtype.Values)
	}

	b := &DictionaryBuilder{
		dtype: dtype,
		keys:  NewPrimitiveBuilder[int32](datatypes.Int32()),
		index: make(map[string]int32),
	}

	if symbols != nil {
		b.symbols = symbols
		b.fixed = true
		for i, s := range symbols {
			b.index[s] = int32(i)
		}
	}

	return b, nil
}

// AppendKey appends a key into the fixed dictionary, bounds-checked against
// the symbol set.
//
// Returns:
//   - error: errs.ErrEnumIndexOutOfRange when key is outside the dictionary
func (b *DictionaryBuilder) AppendKey(key int32) error {
	if key < 0 || int(key) >= len(b.symbols) {
		return fmt.Errorf("%w: key %d outside dictionary of %d values",
			errs.ErrEnumIndexOutOfRange, key, len(b.symbols))
	}
	b.keys.Append(key)

	return nil
}

// AppendValue interns a value into a growable dictionary and appends its
// key. Must not be used on a fixed dictionary.
func (b *DictionaryBuilder) AppendValue(v string) {
	if b.fixed {
		panic("array: AppendValue on a fixed dictionary")
	}

	key, ok := b.index[v]
	if !ok {
		key = int32(len(b.symbols))
		b.symbols = append(b.symbols, v)
		b.index[v] = key
	}
	b.keys.Append(key)
}

// AppendNull appends a null element.
func (b *DictionaryBuilder) AppendNull() {
	b.keys.AppendNull()
}

// Len returns the number of elements appended so far.
func (b *DictionaryBuilder) Len() int { return b.keys.Len() }

// Finish finalizes the builder into a dictionary array over the symbol
// values.
func (b *DictionaryBuilder) Finish() (Array, error) {
	keysArr, err := b.keys.Finish()
	if err != nil {
		return nil, err
	}
	keys, err := AsInt32(keysArr)
	if err != nil {
		return nil, err
	}

	values := NewStringBuilder()
	for _, s := range b.symbols {
		values.Append(s)
	}
	valuesArr, err := values.Finish()
	if err != nil {
		return nil, err
	}

	return TryNewDictionaryArray(b.dtype, keys, valuesArr)
}
