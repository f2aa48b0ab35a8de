package avro

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/vireo/datatypes"
	"github.com/arloliu/vireo/errs"
	"github.com/arloliu/vireo/format"
)

// Magic identifies an Avro object container file.
var Magic = [4]byte{'O', 'b', 'j', 1}

// SyncSize is the byte length of the synchronization marker separating
// blocks.
const SyncSize = 16

// ByteStream is the input a container is decoded from. bufio.Reader,
// bytes.Reader and bytes.Buffer all satisfy it; NewReader wraps any plain
// io.Reader into one.
type ByteStream interface {
	io.Reader
	io.ByteReader
}

// schemaKey and codecKey are the reserved metadata map entries.
const (
	schemaKey = "avro.schema"
	codecKey  = "avro.codec"
)

// codecNames maps the codec names a container may declare to compression
// types. "lz4" is a vireo extension, not part of the container
// specification; vireo reads it for files it produced itself.
var codecNames = map[string]format.CompressionType{
	"":          format.CompressionNone,
	"null":      format.CompressionNone,
	"deflate":   format.CompressionDeflate,
	"snappy":    format.CompressionSnappy,
	"zstandard": format.CompressionZstd,
	"lz4":       format.CompressionLZ4,
}

// Metadata is the parsed container file header. It is read once per input
// stream and lives for the lifetime of the associated block reader.
type Metadata struct {
	// Schema is the container's writer schema as declared.
	Schema *Schema
	// Resolved is the engine schema the writer schema maps to.
	Resolved datatypes.Schema
	// Codec is the per-block compression codec.
	Codec format.CompressionType
	// Sync is the 16-byte marker closing every block.
	Sync [SyncSize]byte
	// Pairs holds the remaining metadata entries verbatim.
	Pairs map[string][]byte
}

// ReadMetadata reads and validates a container file header: the magic
// bytes, the metadata map with the embedded schema and codec name, and the
// sync marker. The stream is left positioned at the first block.
//
// Returns:
//   - *Metadata: Parsed and resolved header
//   - error: errs.ErrInvalidMagicNumber, errs.ErrInvalidSchema,
//     errs.ErrUnsupportedSchema or errs.ErrUnsupportedCodec, all fatal to
//     opening the stream
func ReadMetadata(r ByteStream) (*Metadata, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidMagicNumber, err)
	}
	if magic != Magic {
		return nil, errs.ErrInvalidMagicNumber
	}

	pairs, err := readMetadataPairs(r)
	if err != nil {
		return nil, err
	}

	schemaJSON, ok := pairs[schemaKey]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s entry", errs.ErrInvalidSchema, schemaKey)
	}
	delete(pairs, schemaKey)

	schema, err := ParseSchema(schemaJSON)
	if err != nil {
		return nil, err
	}
	resolved, err := ResolveSchema(schema)
	if err != nil {
		return nil, err
	}

	codecName := string(pairs[codecKey])
	delete(pairs, codecKey)
	codec, ok := codecNames[codecName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedCodec, codecName)
	}

	meta := &Metadata{
		Schema:   schema,
		Resolved: resolved,
		Codec:    codec,
		Pairs:    pairs,
	}
	if _, err := io.ReadFull(r, meta.Sync[:]); err != nil {
		return nil, fmt.Errorf("reading sync marker: %w", corruptEOF(err))
	}

	return meta, nil
}

// readMetadataPairs decodes the header's map: zig-zag counted groups of
// key/value byte pairs, terminated by a zero count. A negative count is
// followed by the group's byte size and declares -count pairs.
func readMetadataPairs(r ByteStream) (map[string][]byte, error) {
	pairs := make(map[string][]byte)
	for {
		count, err := binary.ReadVarint(r)
		if err != nil {
			return nil, fmt.Errorf("reading metadata count: %w", corruptEOF(err))
		}
		if count == 0 {
			return pairs, nil
		}
		if count < 0 {
			if _, err := binary.ReadVarint(r); err != nil {
				return nil, fmt.Errorf("reading metadata group size: %w", corruptEOF(err))
			}
			count = -count
			if count <= 0 {
				// MinInt64 negates to itself.
				return nil, fmt.Errorf("%w: metadata group count %d", errs.ErrInvalidVarint, count)
			}
		}

		for i := int64(0); i < count; i++ {
			key, err := readLenPrefixed(r)
			if err != nil {
				return nil, fmt.Errorf("reading metadata key: %w", err)
			}
			value, err := readLenPrefixed(r)
			if err != nil {
				return nil, fmt.Errorf("reading metadata value: %w", err)
			}
			pairs[string(key)] = value
		}
	}
}

// readLenPrefixed reads a zig-zag length prefix followed by that many raw
// bytes from the stream. The declared length is untrusted, so the buffer
// grows with the bytes actually present rather than being allocated up
// front; a hostile prefix then surfaces as truncation, not an allocation
// for memory the stream never carries.
func readLenPrefixed(r ByteStream) ([]byte, error) {
	n, err := binary.ReadVarint(r)
	if err != nil {
		return nil, corruptEOF(err)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative byte length %d", errs.ErrInvalidVarint, n)
	}

	b, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		return nil, corruptEOF(err)
	}
	if int64(len(b)) < n {
		return nil, fmt.Errorf("%w: metadata entry of %d bytes, declared %d",
			errs.ErrTruncatedBlock, len(b), n)
	}

	return b, nil
}

// corruptEOF classifies running out of bytes inside a structure as
// truncation: mid-structure, neither a clean nor a partial EOF is a valid
// end of input.
func corruptEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", errs.ErrTruncatedBlock, io.ErrUnexpectedEOF)
	}

	return err
}
