// Package datatypes defines the engine's type system: a closed, recursive
// set of data types plus the named, typed, independently nullable fields
// that make up a schema.
//
// DataType is a tagged variant tree, not an open interface: every composite
// case (list item, dictionary values) owns a boxed child, recursion depth is
// bounded by the input schema depth, and all consumers dispatch on the Kind
// tag over the finite set of physical layouts.
package datatypes

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Kind tags the closed set of data types the engine models.
type Kind uint8

const (
	KindBoolean    Kind = iota + 1 // one byte per value, bit-packed in arrays
	KindInt32                      // 32-bit signed integer
	KindInt64                      // 64-bit signed integer
	KindFloat32                    // IEEE 754 single precision
	KindFloat64                    // IEEE 754 double precision
	KindBinary                     // variable-length byte sequences
	KindUtf8                       // variable-length UTF-8 strings
	KindDate32                     // days since the Unix epoch, stored as int32
	KindList                       // variable-length list of a child type
	KindDictionary                 // int32 keys into a value dictionary
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBinary:
		return "binary"
	case KindUtf8:
		return "utf8"
	case KindDate32:
		return "date32"
	case KindList:
		return "list"
	case KindDictionary:
		return "dictionary"
	default:
		return "unknown"
	}
}

// AllKinds returns every Kind the engine defines, in declaration order.
// Exhaustiveness tests iterate this list so a new Kind cannot be added
// without deciding its builder and decoder support.
func AllKinds() []Kind {
	return []Kind{
		KindBoolean, KindInt32, KindInt64, KindFloat32, KindFloat64,
		KindBinary, KindUtf8, KindDate32, KindList, KindDictionary,
	}
}

// DataType describes a single column type. Primitive kinds use only the
// Kind tag; KindList carries the item field in Elem; KindDictionary carries
// the value type in Values (keys are always int32, regardless of dictionary
// size).
type DataType struct {
	Kind   Kind
	Elem   *Field
	Values *DataType
}

// Boolean returns the boolean data type.
func Boolean() DataType { return DataType{Kind: KindBoolean} }

// Int32 returns the 32-bit integer data type.
func Int32() DataType { return DataType{Kind: KindInt32} }

// Int64 returns the 64-bit integer data type.
func Int64() DataType { return DataType{Kind: KindInt64} }

// Float32 returns the single-precision float data type.
func Float32() DataType { return DataType{Kind: KindFloat32} }

// Float64 returns the double-precision float data type.
func Float64() DataType { return DataType{Kind: KindFloat64} }

// Binary returns the variable-length bytes data type.
func Binary() DataType { return DataType{Kind: KindBinary} }

// Utf8 returns the variable-length string data type.
func Utf8() DataType { return DataType{Kind: KindUtf8} }

// Date32 returns the days-since-epoch logical date type. It shares the
// physical layout of Int32 and differs only in semantic tag.
func Date32() DataType { return DataType{Kind: KindDate32} }

// ListOf returns a list type whose elements are described by item.
func ListOf(item Field) DataType {
	return DataType{Kind: KindList, Elem: &item}
}

// DictionaryOf returns a dictionary type with int32 keys and the given
// value type.
func DictionaryOf(values DataType) DataType {
	return DataType{Kind: KindDictionary, Values: &values}
}

// Equal reports whether two data types are structurally identical,
// recursing into list item fields and dictionary value types.
func (t DataType) Equal(other DataType) bool {
	if t.Kind != other.Kind {
		return false
	}

	switch t.Kind {
	case KindList:
		return t.Elem.Equal(*other.Elem)
	case KindDictionary:
		return t.Values.Equal(*other.Values)
	default:
		return true
	}
}

func (t DataType) String() string {
	var sb strings.Builder
	t.writeTo(&sb)

	return sb.String()
}

func (t DataType) writeTo(sb *strings.Builder) {
	sb.WriteString(t.Kind.String())

	switch t.Kind {
	case KindList:
		sb.WriteByte('<')
		t.Elem.writeTo(sb)
		sb.WriteByte('>')
	case KindDictionary:
		sb.WriteByte('<')
		t.Values.writeTo(sb)
		sb.WriteByte('>')
	}
}

// Field is a named, typed schema entry. Nullable applies to the field
// itself; nested nullability lives in the nested fields.
type Field struct {
	Name     string
	Type     DataType
	Nullable bool
}

// NewField creates a field with the given name, type and nullability.
func NewField(name string, dtype DataType, nullable bool) Field {
	return Field{Name: name, Type: dtype, Nullable: nullable}
}

// Equal reports whether two fields agree in name, type and nullability.
func (f Field) Equal(other Field) bool {
	return f.Name == other.Name && f.Nullable == other.Nullable && f.Type.Equal(other.Type)
}

func (f Field) String() string {
	var sb strings.Builder
	f.writeTo(&sb)

	return sb.String()
}

func (f Field) writeTo(sb *strings.Builder) {
	sb.WriteString(f.Name)
	sb.WriteByte(':')
	f.Type.writeTo(sb)
	sb.WriteString(":nullable=")
	sb.WriteString(strconv.FormatBool(f.Nullable))
}

// Schema is an ordered sequence of fields. Field order is significant: the
// record decoder consumes fields positionally.
type Schema struct {
	Fields []Field
}

// NewSchema creates a schema from the given fields.
func NewSchema(fields ...Field) Schema {
	return Schema{Fields: fields}
}

// Len returns the number of fields.
func (s Schema) Len() int { return len(s.Fields) }

// Equal reports whether two schemas hold equal fields in the same order.
func (s Schema) Equal(other Schema) bool {
	if len(s.Fields) != len(other.Fields) {
		return false
	}
	for i, f := range s.Fields {
		if !f.Equal(other.Fields[i]) {
			return false
		}
	}

	return true
}

// Fingerprint returns a 64-bit xxHash of the schema's canonical rendering.
// Two schemas share a fingerprint iff they are Equal (modulo hash
// collisions), which makes the fingerprint a cheap identity for caching
// resolved decode plans keyed by schema.
func (s Schema) Fingerprint() uint64 {
	var sb strings.Builder
	for i, f := range s.Fields {
		if i > 0 {
			sb.WriteByte(';')
		}
		f.writeTo(&sb)
	}

	return xxhash.Sum64String(sb.String())
}

func (s Schema) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range s.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		f.writeTo(&sb)
	}
	sb.WriteByte('}')

	return sb.String()
}
