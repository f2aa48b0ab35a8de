package datatypes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataTypeEqual(t *testing.T) {
	require.True(t, Int64().Equal(Int64()))
	require.False(t, Int64().Equal(Int32()))
	require.False(t, Int32().Equal(Date32()))

	listA := ListOf(NewField("item", Int32(), true))
	listB := ListOf(NewField("item", Int32(), true))
	require.True(t, listA.Equal(listB))

	// Item nullability is part of the type.
	listC := ListOf(NewField("item", Int32(), false))
	require.False(t, listA.Equal(listC))

	dictA := DictionaryOf(Utf8())
	dictB := DictionaryOf(Binary())
	require.True(t, dictA.Equal(DictionaryOf(Utf8())))
	require.False(t, dictA.Equal(dictB))
}

func TestSchemaEqual(t *testing.T) {
	a := NewSchema(
		NewField("a", Int64(), false),
		NewField("b", Utf8(), true),
	)
	b := NewSchema(
		NewField("a", Int64(), false),
		NewField("b", Utf8(), true),
	)
	require.True(t, a.Equal(b))

	reordered := NewSchema(
		NewField("b", Utf8(), true),
		NewField("a", Int64(), false),
	)
	require.False(t, a.Equal(reordered))
}

func TestSchemaFingerprint(t *testing.T) {
	a := NewSchema(
		NewField("a", Int64(), false),
		NewField("h", ListOf(NewField("item", Int32(), true)), false),
	)
	same := NewSchema(
		NewField("a", Int64(), false),
		NewField("h", ListOf(NewField("item", Int32(), true)), false),
	)
	require.Equal(t, a.Fingerprint(), same.Fingerprint())

	nullable := NewSchema(
		NewField("a", Int64(), true),
		NewField("h", ListOf(NewField("item", Int32(), true)), false),
	)
	require.NotEqual(t, a.Fingerprint(), nullable.Fingerprint())
}

func TestDataTypeString(t *testing.T) {
	require.Equal(t, "int64", Int64().String())
	require.Equal(t, "list<item:int32:nullable=true>", ListOf(NewField("item", Int32(), true)).String())
	require.Equal(t, "dictionary<utf8>", DictionaryOf(Utf8()).String())
}

func TestAllKindsCoversEnumeration(t *testing.T) {
	kinds := AllKinds()
	require.Len(t, kinds, 10)

	seen := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		require.NotEqual(t, "unknown", k.String())
		require.False(t, seen[k])
		seen[k] = true
	}
}
