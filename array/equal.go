package array

// Equal reports whether two arrays are logically equal: same data type,
// length, null positions, and element values. Dictionary arrays compare
// their materialized values, so two dictionaries with different key spaces
// but identical logical contents are equal.
func Equal(a, b Array) bool {
	if !a.DataType().Equal(b.DataType()) || a.Len() != b.Len() {
		return false
	}

	for i := 0; i < a.Len(); i++ {
		if IsNull(a, i) != IsNull(b, i) {
			return false
		}
		if IsNull(a, i) {
			continue
		}
		if !elementEqual(a, i, b, i) {
			return false
		}
	}

	return true
}

// elementEqual compares element i of a with element j of b. Both elements
// must be valid and both arrays must share a data type.
func elementEqual(a Array, i int, b Array, j int) bool {
	switch x := a.(type) {
	case *PrimitiveArray[int32]:
		return x.Value(i) == b.(*PrimitiveArray[int32]).Value(j)
	case *PrimitiveArray[int64]:
		return x.Value(i) == b.(*PrimitiveArray[int64]).Value(j)
	case *PrimitiveArray[float32]:
		return x.Value(i) == b.(*PrimitiveArray[float32]).Value(j)
	case *PrimitiveArray[float64]:
		return x.Value(i) == b.(*PrimitiveArray[float64]).Value(j)
	case *BooleanArray:
		return x.Value(i) == b.(*BooleanArray).Value(j)
	case *StringArray:
		return x.Value(i) == b.(*StringArray).Value(j)
	case *BinaryArray:
		return string(x.Value(i)) == string(b.(*BinaryArray).Value(j))
	case *ListArray:
		return listElementEqual(x, i, b.(*ListArray), j)
	case *DictionaryArray:
		y := b.(*DictionaryArray)

		return elementEqual(x.values, int(x.keys.Value(i)), y.values, int(y.keys.Value(j)))
	default:
		return false
	}
}

func listElementEqual(a *ListArray, i int, b *ListArray, j int) bool {
	sa, ea := a.ValueRange(i)
	sb, eb := b.ValueRange(j)
	if ea-sa != eb-sb {
		return false
	}

	for k := 0; k < ea-sa; k++ {
		if IsNull(a.values, sa+k) != IsNull(b.values, sb+k) {
			return false
		}
		if IsNull(a.values, sa+k) {
			continue
		}
		if !elementEqual(a.values, sa+k, b.values, sb+k) {
			return false
		}
	}

	return true
}
