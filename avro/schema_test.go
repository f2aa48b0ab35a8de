package avro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/vireo/errs"
)

func TestParseSchemaBareName(t *testing.T) {
	s, err := ParseSchema([]byte(`"long"`))
	require.NoError(t, err)
	assert.Equal(t, "long", s.Type)
	assert.False(t, s.IsUnion())
}

func TestParseSchemaUnion(t *testing.T) {
	s, err := ParseSchema([]byte(`["null", "string"]`))
	require.NoError(t, err)
	require.True(t, s.IsUnion())
	require.Len(t, s.Union, 2)
	assert.Equal(t, "null", s.Union[0].Type)
	assert.Equal(t, "string", s.Union[1].Type)
}

func TestParseSchemaObject(t *testing.T) {
	s, err := ParseSchema([]byte(`{"type": "int", "logicalType": "date"}`))
	require.NoError(t, err)
	assert.Equal(t, "int", s.Type)
	assert.Equal(t, "date", s.LogicalType)
}

func TestParseSchemaEnum(t *testing.T) {
	s, err := ParseSchema([]byte(`{"type": "enum", "name": "Suit", "symbols": ["SPADES", "HEARTS"]}`))
	require.NoError(t, err)
	assert.Equal(t, "enum", s.Type)
	assert.Equal(t, "Suit", s.Name)
	assert.Equal(t, []string{"SPADES", "HEARTS"}, s.Symbols)
}

// The "type" attribute may itself be a nested declaration; the surrounding
// attributes add to it.
func TestParseSchemaNestedTypeDeclaration(t *testing.T) {
	s, err := ParseSchema([]byte(`{"name": "h", "type": {"type": "array", "items": "int"}}`))
	require.NoError(t, err)
	assert.Equal(t, "array", s.Type)
	assert.Equal(t, "h", s.Name)
	require.NotNil(t, s.Items)
	assert.Equal(t, "int", s.Items.Type)
}

func TestParseSchemaRecord(t *testing.T) {
	s, err := ParseSchema([]byte(fixtureSchema))
	require.NoError(t, err)
	assert.Equal(t, "record", s.Type)
	assert.Equal(t, "test", s.Name)
	require.Len(t, s.Fields, 10)
	assert.Equal(t, "a", s.Fields[0].Name)
	assert.Equal(t, "long", s.Fields[0].Type.Type)
	assert.True(t, s.Fields[7].Type.IsUnion())
	require.NotNil(t, s.Fields[8].Type.Items)
	assert.True(t, s.Fields[8].Type.Items.IsUnion())
	assert.Len(t, s.Fields[9].Type.Symbols, 4)
}

func TestParseSchemaInvalid(t *testing.T) {
	cases := map[string]string{
		"malformed json": `{"type": `,
		"missing type":   `{"name": "x"}`,
		"bad field list": `{"type": "record", "fields": 1}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSchema([]byte(doc))
			assert.ErrorIs(t, err, errs.ErrInvalidSchema)
		})
	}
}
