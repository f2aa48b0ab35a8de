// Package vireo provides a columnar in-memory data engine with binary
// container-format ingestion.
//
// Vireo represents data as immutable, typed, nullable arrays under strict
// memory-layout invariants, and decodes Avro object container files
// (schema + compressed record blocks) directly into that columnar
// representation, one chunk per block.
//
// # Core Features
//
//   - Typed columnar arrays: primitives, booleans, binary/utf8, lists and
//     dictionaries, each with a packed validity bitmap
//   - Layout invariants enforced at construction: offset monotonicity,
//     bounds, and per-element UTF-8 validity with an ASCII fast path
//   - Lazy, pull-based container decoding with sync-marker validation
//   - Pluggable block compression (null, deflate, snappy, zstandard, and
//     an lz4 extension)
//   - Schema resolution from the container's embedded JSON schema to the
//     engine type system, including nullable unions, lists and enums
//
// # Basic Usage
//
// Decoding a container file into chunks:
//
//	import "github.com/arloliu/vireo"
//
//	f, _ := os.Open("events.avro")
//	defer f.Close()
//
//	reader, err := vireo.NewAvroReader(f)
//	if err != nil {
//	    return err
//	}
//	defer reader.Close()
//
//	for reader.Next() {
//	    chunk := reader.Chunk()
//	    // chunk.Column(i) holds the i-th field of reader.Schema()
//	}
//	if err := reader.Err(); err != nil {
//	    return err
//	}
//
// Narrowing a decoded column to its concrete array:
//
//	col, err := array.AsInt64(chunk.Column(0))
//	if err != nil {
//	    return err
//	}
//	sum := int64(0)
//	for i := 0; i < col.Len(); i++ {
//	    if !array.IsNull(col, i) {
//	        sum += col.Value(i)
//	    }
//	}
//
// The packages compose bottom-up: array and chunk hold the columnar data
// model, datatypes the type system, avro the container decode pipeline,
// and compress the block codecs.
package vireo

import (
	"io"

	"github.com/arloliu/vireo/avro"
)

// NewAvroReader opens an Avro object container stream for chunk-at-a-time
// decoding. It is shorthand for avro.NewReader.
func NewAvroReader(r io.Reader, opts ...avro.Option) (*avro.Reader, error) {
	return avro.NewReader(r, opts...)
}
