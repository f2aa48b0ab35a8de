package array

import (
	"fmt"

	"github.com/arloliu/vireo/datatypes"
	"github.com/arloliu/vireo/errs"
)

// DictionaryArray is an immutable key/value-indexed array: small int32 keys
// index into a shared values dictionary. Enum columns decode to dictionary
// arrays whose values are the ordered symbol strings.
//
// Nullability lives in the keys array; the values dictionary itself
// contributes nothing to the null count. A dictionary built from an enum is
// non-nullable by construction, so its null count is structurally zero.
type DictionaryArray struct {
	dtype  datatypes.DataType
	keys   *PrimitiveArray[int32]
	values Array
}

// NewDictionaryArray creates a dictionary array, panicking on a type or key
// range violation. Use TryNewDictionaryArray for untrusted buffers.
func NewDictionaryArray(dtype datatypes.DataType, keys *PrimitiveArray[int32], values Array) *DictionaryArray {
	arr, err := TryNewDictionaryArray(dtype, keys, values)
	if err != nil {
		panic(err)
	}

	return arr
}

// TryNewDictionaryArray creates a dictionary array after validating that
// dtype is a dictionary of the values' type and that every valid key is in
// range for the values dictionary.
//
// Returns:
//   - *DictionaryArray: Array with the same length as keys
//   - error: errs.ErrUnsupportedType for a type mismatch, or
//     errs.ErrEnumIndexOutOfRange for an out-of-range key
func TryNewDictionaryArray(dtype datatypes.DataType, keys *PrimitiveArray[int32], values Array) (*DictionaryArray, error) {
	if dtype.Kind != datatypes.KindDictionary {
		return nil, fmt.Errorf("%w: %s is not a dictionary type", errs.ErrUnsupportedType, dtype)
	}
	if !dtype.Values.Equal(values.DataType()) {
		return nil, fmt.Errorf("%w: dictionary value type %s does not match values array type %s",
			errs.ErrUnsupportedType, dtype.Values, values.DataType())
	}

	for i := 0; i < keys.Len(); i++ {
		if IsNull(keys, i) {
			continue
		}
		if k := keys.Value(i); k < 0 || int(k) >= values.Len() {
			return nil, fmt.Errorf("%w: key %d outside dictionary of %d values",
				errs.ErrEnumIndexOutOfRange, k, values.Len())
		}
	}

	return &DictionaryArray{dtype: dtype, keys: keys, values: values}, nil
}

// DataType returns the dictionary data type.
func (a *DictionaryArray) DataType() datatypes.DataType { return a.dtype }

// Len returns the number of elements.
func (a *DictionaryArray) Len() int { return a.keys.Len() }

// NullCount returns the number of null elements, defined by the keys array.
func (a *DictionaryArray) NullCount() int { return a.keys.NullCount() }

// Validity returns the keys' validity bitmap, or nil when there are no
// nulls.
func (a *DictionaryArray) Validity() *Bitmap { return a.keys.Validity() }

// Keys returns the keys array.
func (a *DictionaryArray) Keys() *PrimitiveArray[int32] { return a.keys }

// Values returns the values dictionary array.
func (a *DictionaryArray) Values() Array { return a.values }
