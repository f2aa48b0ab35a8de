package avro

import (
	"fmt"

	"github.com/arloliu/vireo/datatypes"
	"github.com/arloliu/vireo/errs"
)

// maxSchemaDepth bounds schema recursion so a hostile deeply nested schema
// cannot exhaust the stack during resolution.
const maxSchemaDepth = 64

// ResolveSchema maps an Avro record schema to the engine's internal schema.
//
// The mapping, applied recursively:
//
//   - primitives map 1:1 (long to int64, double to float64, boolean to
//     boolean, bytes to binary, string to utf8, int and float likewise)
//   - int annotated with the "date" logical type maps to date32
//   - a 2-branch union of "null" and T maps to a nullable field of T's
//     type, with either branch order
//   - array of T maps to list<T>, carrying the item schema's nullability
//   - enum maps to dictionary<utf8> with int32 keys; the key width is
//     fixed regardless of symbol count
//
// Anything else (N-ary unions, maps, fixeds, nested records) fails with
// errs.ErrUnsupportedSchema. An unsupported construct is a hard error, not
// a silently dropped field.
//
// Returns:
//   - datatypes.Schema: Resolved internal schema
//   - error: errs.ErrUnsupportedSchema-wrapped resolution failure
func ResolveSchema(s *Schema) (datatypes.Schema, error) {
	if s.Type != "record" {
		return datatypes.Schema{}, fmt.Errorf("%w: top-level schema must be a record, got %q",
			errs.ErrUnsupportedSchema, s.Type)
	}

	fields := make([]datatypes.Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		dtype, nullable, err := resolveType(&f.Type, 0)
		if err != nil {
			return datatypes.Schema{}, fmt.Errorf("field %q: %w", f.Name, err)
		}
		fields = append(fields, datatypes.NewField(f.Name, dtype, nullable))
	}

	return datatypes.NewSchema(fields...), nil
}

// resolveType maps one schema node to a DataType plus its nullability.
func resolveType(s *Schema, depth int) (datatypes.DataType, bool, error) {
	if depth > maxSchemaDepth {
		return datatypes.DataType{}, false, fmt.Errorf("%w: schema nesting exceeds depth %d",
			errs.ErrUnsupportedSchema, maxSchemaDepth)
	}

	if s.IsUnion() {
		inner, _, err := resolveNullableUnion(s, depth)
		if err != nil {
			return datatypes.DataType{}, false, err
		}
		dtype, _, err := resolveType(inner, depth+1)

		return dtype, true, err
	}

	switch s.Type {
	case "boolean":
		return datatypes.Boolean(), false, nil
	case "int":
		if s.LogicalType == "date" {
			return datatypes.Date32(), false, nil
		}

		return datatypes.Int32(), false, nil
	case "long":
		return datatypes.Int64(), false, nil
	case "float":
		return datatypes.Float32(), false, nil
	case "double":
		return datatypes.Float64(), false, nil
	case "bytes":
		return datatypes.Binary(), false, nil
	case "string":
		return datatypes.Utf8(), false, nil
	case "array":
		if s.Items == nil {
			return datatypes.DataType{}, false, fmt.Errorf("%w: array without items", errs.ErrUnsupportedSchema)
		}
		item, nullable, err := resolveType(s.Items, depth+1)
		if err != nil {
			return datatypes.DataType{}, false, err
		}
		name := s.Items.Name
		if name == "" {
			name = "item"
		}

		return datatypes.ListOf(datatypes.NewField(name, item, nullable)), false, nil
	case "enum":
		if len(s.Symbols) == 0 {
			return datatypes.DataType{}, false, fmt.Errorf("%w: enum without symbols", errs.ErrUnsupportedSchema)
		}

		return datatypes.DictionaryOf(datatypes.Utf8()), false, nil
	default:
		return datatypes.DataType{}, false, fmt.Errorf("%w: %q", errs.ErrUnsupportedSchema, s.Type)
	}
}

// resolveNullableUnion accepts the 2-branch "null | T" union convention in
// either branch order and returns the value branch plus the wire index of
// the null branch. General N-ary unions have no mapping in the engine's
// type system and are rejected.
func resolveNullableUnion(s *Schema, depth int) (*Schema, int, error) {
	if len(s.Union) != 2 {
		return nil, 0, fmt.Errorf("%w: %d-branch union", errs.ErrUnsupportedSchema, len(s.Union))
	}

	switch {
	case s.Union[0].Type == "null":
		return &s.Union[1], 0, nil
	case s.Union[1].Type == "null":
		return &s.Union[0], 1, nil
	default:
		return nil, 0, fmt.Errorf("%w: union without a null branch", errs.ErrUnsupportedSchema)
	}
}
