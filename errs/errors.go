// Package errs defines the sentinel error values shared across vireo packages.
//
// Errors fall into three groups:
//
//   - Format errors: the input cannot be recognized as a container file at
//     all (bad magic, unparseable schema, unknown codec). Detected when a
//     reader is constructed.
//   - Corruption errors: the container was recognized but a block or buffer
//     inside it is structurally out of spec (sync marker mismatch, truncated
//     data, invalid offsets or UTF-8). Detected mid-stream and fatal to the
//     current decode call.
//   - Usage errors: the caller asked for something the engine does not model
//     (wrong array variant, unsupported data type).
//
// Callers should match with errors.Is; most call sites wrap these values
// with fmt.Errorf("...: %w", err) to add context.
package errs

import "errors"

// Container format errors, detected while opening a stream.
var (
	// ErrInvalidMagicNumber indicates the stream does not start with the
	// Avro object container magic bytes.
	ErrInvalidMagicNumber = errors.New("invalid container magic number")
	// ErrInvalidSchema indicates the embedded schema JSON is malformed.
	ErrInvalidSchema = errors.New("invalid container schema")
	// ErrUnsupportedSchema indicates a schema construct with no mapping to
	// the engine's type system.
	ErrUnsupportedSchema = errors.New("unsupported schema construct")
	// ErrUnsupportedCodec indicates an unrecognized avro.codec name.
	ErrUnsupportedCodec = errors.New("unsupported compression codec")
)

// Corruption errors, detected while decoding blocks.
var (
	// ErrSyncMarkerMismatch indicates a block's trailing sync marker does
	// not match the marker declared in the file header.
	ErrSyncMarkerMismatch = errors.New("sync marker mismatch")
	// ErrTruncatedBlock indicates a block body or record ended before its
	// declared length.
	ErrTruncatedBlock = errors.New("truncated block data")
	// ErrBlockTooLarge indicates a block declares a size beyond the
	// configured limit.
	ErrBlockTooLarge = errors.New("block exceeds size limit")
	// ErrInvalidRecordCount indicates a block declares a negative record
	// count, or its body holds fewer records than declared.
	ErrInvalidRecordCount = errors.New("invalid block record count")
	// ErrInvalidVarint indicates a malformed or overlong variable-length
	// integer.
	ErrInvalidVarint = errors.New("invalid varint encoding")
	// ErrEnumIndexOutOfRange indicates a decoded enum index outside the
	// schema's symbol list.
	ErrEnumIndexOutOfRange = errors.New("enum index out of range")
	// ErrChecksumMismatch indicates a block-level checksum did not match
	// the decompressed payload.
	ErrChecksumMismatch = errors.New("block checksum mismatch")
)

// Array layout errors, detected when validating variable-length buffers.
var (
	// ErrEmptyOffsets indicates an offsets buffer with no entries; a valid
	// buffer always holds at least one offset.
	ErrEmptyOffsets = errors.New("offsets buffer must not be empty")
	// ErrOffsetsNotMonotonic indicates a decreasing adjacent offset pair.
	ErrOffsetsNotMonotonic = errors.New("offsets must be monotonically increasing")
	// ErrOffsetsOutOfBounds indicates the last offset exceeds the values
	// buffer length.
	ErrOffsetsOutOfBounds = errors.New("offsets must not exceed values length")
	// ErrInvalidUTF8 indicates a string element slice holding invalid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 sequence")
	// ErrLengthMismatch indicates two buffers or arrays that must share a
	// length do not.
	ErrLengthMismatch = errors.New("length mismatch")
)

// Usage errors.
var (
	// ErrUnsupportedType indicates a DataType the engine cannot build or
	// decode.
	ErrUnsupportedType = errors.New("unsupported data type")
	// ErrWrongVariant indicates a variant-narrowing accessor applied to an
	// array of a different physical layout.
	ErrWrongVariant = errors.New("array is not of the requested variant")
)
