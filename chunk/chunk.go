// Package chunk defines the horizontal batch type produced by the decoder:
// an ordered set of equal-length arrays representing one slice of a table.
package chunk

import (
	"fmt"

	"github.com/arloliu/vireo/array"
	"github.com/arloliu/vireo/errs"
)

// Chunk is an ordered, immutable sequence of equal-length arrays. A chunk
// holds shared ownership of its arrays: consumers may retain individual
// columns independently of the chunk itself.
type Chunk struct {
	columns []array.Array
	rows    int
}

// New creates a chunk over the given columns, failing fast when any two
// columns disagree in length.
//
// Returns:
//   - *Chunk: Chunk holding the columns
//   - error: errs.ErrLengthMismatch when column lengths differ
func New(columns []array.Array) (*Chunk, error) {
	rows := 0
	if len(columns) > 0 {
		rows = columns[0].Len()
	}

	for i, col := range columns {
		if col.Len() != rows {
			return nil, fmt.Errorf("%w: column %d has length %d, want %d",
				errs.ErrLengthMismatch, i, col.Len(), rows)
		}
	}

	return &Chunk{columns: columns, rows: rows}, nil
}

// NumRows returns the number of rows shared by every column.
func (c *Chunk) NumRows() int { return c.rows }

// NumColumns returns the number of columns.
func (c *Chunk) NumColumns() int { return len(c.columns) }

// Column returns the array at position i.
func (c *Chunk) Column(i int) array.Array { return c.columns[i] }

// Columns returns the column slice. Callers must not mutate it.
func (c *Chunk) Columns() []array.Array { return c.columns }

// Equal reports whether two chunks hold logically equal columns in the
// same order.
func (c *Chunk) Equal(other *Chunk) bool {
	if c.rows != other.rows || len(c.columns) != len(other.columns) {
		return false
	}
	for i, col := range c.columns {
		if !array.Equal(col, other.columns[i]) {
			return false
		}
	}

	return true
}
