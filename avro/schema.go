// Package avro decodes Avro object container files directly into vireo's
// columnar chunks.
//
// A container file is a self-describing byte stream: the magic bytes, a
// metadata map embedding the writer schema as JSON and the block codec
// name, a 16-byte sync marker, then zero or more independently compressed
// blocks of records, each closed by the sync marker. The decode pipeline
// mirrors that structure:
//
//	meta, _ := avro.ReadMetadata(stream)     // once per file
//	blocks  := avro.NewBlockReader(...)      // lazy raw block sequence
//	decomp  := avro.NewDecompressor(...)     // per-block codec transform
//	reader  := avro.NewReader(...)           // records -> columnar chunks
//
// Most callers use NewReader directly, which wires the pipeline together.
// Each call to Next decodes exactly one block into a chunk; a block either
// fully decodes or the call fails, never yielding a partial chunk.
package avro

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/arloliu/vireo/errs"
)

// Schema is one node of an Avro schema declaration: a primitive name, a
// union of branches, or a complex type object. The JSON form is
// polymorphic (string, array, or object), so Schema implements
// json.Unmarshaler.
type Schema struct {
	// Type is the type name: "null", "boolean", "int", "long", "float",
	// "double", "bytes", "string", "record", "enum", "array", "map",
	// "fixed".
	Type string
	// Name names records, enums and fixeds.
	Name string
	// LogicalType annotates a primitive with a semantic type, such as
	// "date" over int.
	LogicalType string
	// Fields holds a record's fields, in declaration order.
	Fields []SchemaField
	// Items holds an array's element schema.
	Items *Schema
	// Values holds a map's value schema.
	Values *Schema
	// Symbols holds an enum's ordered symbol set.
	Symbols []string
	// Size holds a fixed's byte width.
	Size int
	// Union holds the branches of a union schema, in declaration order.
	Union []Schema
}

// SchemaField is one named field of a record schema.
type SchemaField struct {
	Name string `json:"name"`
	Type Schema `json:"type"`
}

// IsUnion reports whether the node is a union schema.
func (s *Schema) IsUnion() bool { return len(s.Union) > 0 }

// UnmarshalJSON decodes the three JSON shapes a schema node can take: a
// bare type-name string, an array of union branches, or a type object.
func (s *Schema) UnmarshalJSON(data []byte) error {
	*s = Schema{}

	switch {
	case len(data) > 0 && data[0] == '"':
		return json.Unmarshal(data, &s.Type)
	case len(data) > 0 && data[0] == '[':
		return json.Unmarshal(data, &s.Union)
	default:
		var obj schemaObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}

		return s.fromObject(&obj)
	}
}

// schemaObject is the object form of a schema node. The "type" attribute
// is itself a schema (usually a plain name, occasionally a nested
// declaration), so it stays raw until fromObject inspects it.
type schemaObject struct {
	Type        json.RawMessage `json:"type"`
	Name        string          `json:"name"`
	LogicalType string          `json:"logicalType"`
	Fields      []SchemaField   `json:"fields"`
	Items       *Schema         `json:"items"`
	Values      *Schema         `json:"values"`
	Symbols     []string        `json:"symbols"`
	Size        int             `json:"size"`
}

func (s *Schema) fromObject(obj *schemaObject) error {
	if len(obj.Type) == 0 {
		return fmt.Errorf("%w: schema object without a type", errs.ErrInvalidSchema)
	}

	if obj.Type[0] == '"' {
		if err := json.Unmarshal(obj.Type, &s.Type); err != nil {
			return err
		}
	} else {
		// A nested declaration in the "type" attribute stands for the
		// whole node; the surrounding attributes only add to it.
		var nested Schema
		if err := json.Unmarshal(obj.Type, &nested); err != nil {
			return err
		}
		*s = nested
	}

	if obj.Name != "" {
		s.Name = obj.Name
	}
	if obj.LogicalType != "" {
		s.LogicalType = obj.LogicalType
	}
	if obj.Fields != nil {
		s.Fields = obj.Fields
	}
	if obj.Items != nil {
		s.Items = obj.Items
	}
	if obj.Values != nil {
		s.Values = obj.Values
	}
	if obj.Symbols != nil {
		s.Symbols = obj.Symbols
	}
	if obj.Size != 0 {
		s.Size = obj.Size
	}

	return nil
}

// ParseSchema parses an Avro schema JSON document.
//
// Returns:
//   - *Schema: Parsed schema tree
//   - error: errs.ErrInvalidSchema-wrapped parse failure
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidSchema, err)
	}

	return &s, nil
}
