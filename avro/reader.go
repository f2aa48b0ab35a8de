package avro

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/vireo/array"
	"github.com/arloliu/vireo/chunk"
	"github.com/arloliu/vireo/datatypes"
	"github.com/arloliu/vireo/errs"
	"github.com/arloliu/vireo/internal/options"
)

// Option configures a Reader.
type Option = options.Option[*Reader]

// WithMaxBlockSize caps the compressed size a block may declare before the
// reader rejects it with errs.ErrBlockTooLarge. The default is
// DefaultMaxBlockSize.
func WithMaxBlockSize(n int) Option {
	return options.New(func(r *Reader) error {
		if n <= 0 {
			return fmt.Errorf("max block size must be positive, got %d", n)
		}
		r.decomp.blocks.setMaxBlockSize(n)

		return nil
	})
}

// Reader decodes an Avro object container file into columnar chunks, one
// fully decoded block per call to Next.
//
// Iteration is single-threaded and pull-based:
//
//	reader, err := avro.NewReader(f)
//	if err != nil { ... }
//	defer reader.Close()
//	for reader.Next() {
//	    process(reader.Chunk())
//	}
//	if err := reader.Err(); err != nil { ... }
//
// A decode error is fatal to the stream: after Err returns non-nil the
// reader yields no further chunks and decoding is never retried
// internally.
//
// Note: The Reader is NOT thread-safe. Each reader instance must be used
// by a single goroutine at a time.
type Reader struct {
	meta   *Metadata
	plan   *decodePlan
	decomp *Decompressor
	cur    *chunk.Chunk
	err    error
	done   bool
}

// NewReader opens a container stream: it parses and validates the file
// header, resolves the schema, builds the decode plan, and prepares block
// iteration. It fails immediately on malformed magic bytes, an
// unparseable or unsupported schema, or an unknown codec name.
//
// If r does not implement ByteStream it is wrapped in a bufio.Reader.
//
// Returns:
//   - *Reader: Reader positioned before the first block
//   - error: Format errors fatal to opening the stream
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	bs, ok := r.(ByteStream)
	if !ok {
		bs = bufio.NewReader(r)
	}

	meta, err := ReadMetadata(bs)
	if err != nil {
		return nil, err
	}

	return newReader(bs, meta, opts...)
}

func newReader(bs ByteStream, meta *Metadata, opts ...Option) (*Reader, error) {
	plan, err := newDecodePlan(meta.Schema, meta.Resolved)
	if err != nil {
		return nil, err
	}

	decomp, err := NewDecompressor(NewBlockReader(bs, meta.Sync), meta.Codec)
	if err != nil {
		return nil, err
	}

	reader := &Reader{meta: meta, plan: plan, decomp: decomp}
	if err := options.Apply(reader, opts...); err != nil {
		reader.Close()

		return nil, err
	}

	return reader, nil
}

// Metadata returns the parsed container header.
func (r *Reader) Metadata() *Metadata { return r.meta }

// Schema returns the resolved engine schema shared by every chunk.
func (r *Reader) Schema() datatypes.Schema { return r.meta.Resolved }

// Next decodes the next block into a chunk. It returns false at the clean
// end of the stream or on the first error; Err distinguishes the two.
func (r *Reader) Next() bool {
	if r.done || r.err != nil {
		return false
	}

	count, data, err := r.decomp.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.done = true
		} else {
			r.err = err
		}
		r.cur = nil

		return false
	}

	r.cur, r.err = r.decodeBlock(count, data)

	return r.err == nil
}

// Chunk returns the chunk decoded by the last successful Next. Every chunk
// holds exactly the record count its block declared; the reader never
// yields a partial chunk.
func (r *Reader) Chunk() *chunk.Chunk { return r.cur }

// Err returns the first error encountered, or nil after a clean end of
// stream.
func (r *Reader) Err() error { return r.err }

// Close releases the reader's pooled buffers. The reader must not be used
// afterwards.
func (r *Reader) Close() {
	r.decomp.Close()
}

// decodeBlock decodes exactly count records from one decompressed block
// body and assembles the finalized columns into a chunk.
func (r *Reader) decodeBlock(count int, data []byte) (*chunk.Chunk, error) {
	builders, err := r.plan.newBuilders()
	if err != nil {
		return nil, err
	}

	c := &cursor{data: data}
	for rec := 0; rec < count; rec++ {
		for i, node := range r.plan.fields {
			if err := node.decode(c, builders[i]); err != nil {
				return nil, fmt.Errorf("record %d, field %q: %w", rec, r.meta.Resolved.Fields[i].Name, err)
			}
		}
	}
	if c.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after %d records",
			errs.ErrInvalidRecordCount, c.remaining(), count)
	}

	columns := make([]array.Array, 0, len(builders))
	for i, b := range builders {
		col, err := b.Finish()
		if err != nil {
			return nil, fmt.Errorf("finalizing field %q: %w", r.meta.Resolved.Fields[i].Name, err)
		}
		if col.Len() != count {
			return nil, fmt.Errorf("%w: field %q finalized to %d rows, block declared %d",
				errs.ErrInvalidRecordCount, r.meta.Resolved.Fields[i].Name, col.Len(), count)
		}
		columns = append(columns, col)
	}

	return chunk.New(columns)
}
