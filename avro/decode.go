package avro

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/vireo/array"
	"github.com/arloliu/vireo/datatypes"
	"github.com/arloliu/vireo/endian"
	"github.com/arloliu/vireo/errs"
)

// cursor walks the decompressed bytes of one block. All reads fail with a
// corruption error instead of running past the buffer.
type cursor struct {
	data []byte
	pos  int
}

// readLong reads a zig-zag base-128 varint.
func (c *cursor) readLong() (int64, error) {
	v, n := binary.Varint(c.data[c.pos:])
	switch {
	case n > 0:
		c.pos += n

		return v, nil
	case n == 0:
		return 0, fmt.Errorf("%w: varint", errs.ErrTruncatedBlock)
	default:
		return 0, errs.ErrInvalidVarint
	}
}

// readFixed reads exactly n raw bytes. The returned slice aliases the
// block buffer. The headroom comparison avoids c.pos+n, which a hostile
// length prefix near MaxInt64 would wrap negative.
func (c *cursor) readFixed(n int) ([]byte, error) {
	if n < 0 || n > len(c.data)-c.pos {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrTruncatedBlock, n, len(c.data)-c.pos)
	}

	b := c.data[c.pos : c.pos+n]
	c.pos += n

	return b, nil
}

// readBytes reads a zig-zag length prefix followed by that many raw bytes.
// The prefix is compared against the remaining block bytes while still an
// int64, before any narrowing conversion.
func (c *cursor) readBytes() ([]byte, error) {
	n, err := c.readLong()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative byte length %d", errs.ErrInvalidVarint, n)
	}
	if n > int64(c.remaining()) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrTruncatedBlock, n, c.remaining())
	}

	return c.readFixed(int(n))
}

func (c *cursor) readByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, fmt.Errorf("%w: byte", errs.ErrTruncatedBlock)
	}

	b := c.data[c.pos]
	c.pos++

	return b, nil
}

// remaining returns the number of bytes left in the block.
func (c *cursor) remaining() int { return len(c.data) - c.pos }

// planKind tags the binary decoding rule of a plan node.
type planKind uint8

const (
	planBoolean  planKind = iota + 1 // single byte, zero or nonzero
	planInt                          // zig-zag varint, 32-bit range
	planLong                         // zig-zag varint
	planFloat                        // 4-byte little-endian
	planDouble                       // 8-byte little-endian
	planBytes                        // zig-zag length prefix plus raw bytes
	planString                       // as planBytes, validated as UTF-8 at finalize
	planList                         // zig-zag (count, items) groups, zero-count terminated
	planEnum                         // zig-zag index into the symbol set
	planNullable                     // zig-zag branch index, then the value when non-null
)

// planNode carries the decoding rule for one schema node. A plan is built
// once from the resolved schema and reused across every record and block;
// builders are instantiated fresh per block.
type planNode struct {
	kind       planKind
	dtype      datatypes.DataType
	inner      *planNode // planNullable value branch; planList item
	nullBranch int64     // planNullable: wire index of the null branch
	symbols    []string  // planEnum
}

// decodePlan mirrors the resolved schema: one node per field, in field
// order.
type decodePlan struct {
	fields []*planNode
}

// newDecodePlan builds the decode plan for an Avro record schema alongside
// its resolved counterpart. Both trees derive from the same declaration;
// resolution failures surface here exactly as in ResolveSchema.
func newDecodePlan(s *Schema, resolved datatypes.Schema) (*decodePlan, error) {
	if s.Type != "record" || len(s.Fields) != resolved.Len() {
		return nil, fmt.Errorf("%w: schema and resolved schema disagree", errs.ErrUnsupportedSchema)
	}

	plan := &decodePlan{fields: make([]*planNode, 0, len(s.Fields))}
	for i, f := range s.Fields {
		node, err := newPlanNode(&f.Type, resolved.Fields[i].Type, 0)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		plan.fields = append(plan.fields, node)
	}

	return plan, nil
}

func newPlanNode(s *Schema, dtype datatypes.DataType, depth int) (*planNode, error) {
	if depth > maxSchemaDepth {
		return nil, fmt.Errorf("%w: schema nesting exceeds depth %d", errs.ErrUnsupportedSchema, maxSchemaDepth)
	}

	if s.IsUnion() {
		value, nullBranch, err := resolveNullableUnion(s, depth)
		if err != nil {
			return nil, err
		}
		inner, err := newPlanNode(value, dtype, depth+1)
		if err != nil {
			return nil, err
		}

		return &planNode{kind: planNullable, dtype: dtype, inner: inner, nullBranch: int64(nullBranch)}, nil
	}

	switch s.Type {
	case "boolean":
		return &planNode{kind: planBoolean, dtype: dtype}, nil
	case "int":
		return &planNode{kind: planInt, dtype: dtype}, nil
	case "long":
		return &planNode{kind: planLong, dtype: dtype}, nil
	case "float":
		return &planNode{kind: planFloat, dtype: dtype}, nil
	case "double":
		return &planNode{kind: planDouble, dtype: dtype}, nil
	case "bytes":
		return &planNode{kind: planBytes, dtype: dtype}, nil
	case "string":
		return &planNode{kind: planString, dtype: dtype}, nil
	case "array":
		inner, err := newPlanNode(s.Items, dtype.Elem.Type, depth+1)
		if err != nil {
			return nil, err
		}

		return &planNode{kind: planList, dtype: dtype, inner: inner}, nil
	case "enum":
		return &planNode{kind: planEnum, dtype: dtype, symbols: s.Symbols}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedSchema, s.Type)
	}
}

// newBuilders instantiates one fresh builder per field for a new block.
func (p *decodePlan) newBuilders() ([]array.Builder, error) {
	builders := make([]array.Builder, 0, len(p.fields))
	for _, node := range p.fields {
		b, err := node.newBuilder()
		if err != nil {
			return nil, err
		}
		builders = append(builders, b)
	}

	return builders, nil
}

func (n *planNode) newBuilder() (array.Builder, error) {
	switch n.kind {
	case planNullable:
		return n.inner.newBuilder()
	case planEnum:
		return array.NewDictionaryBuilder(n.dtype, n.symbols)
	case planList:
		child, err := n.inner.newBuilder()
		if err != nil {
			return nil, err
		}

		return array.NewListBuilder(n.dtype, child), nil
	default:
		return array.NewBuilder(n.dtype)
	}
}

var wireByteOrder = endian.GetLittleEndianEngine()

// decode decodes one value according to the node's rule and appends it to
// b, which must be the builder the node's newBuilder produced.
func (n *planNode) decode(c *cursor, b array.Builder) error {
	switch n.kind {
	case planNullable:
		branch, err := c.readLong()
		if err != nil {
			return err
		}
		if branch == n.nullBranch {
			b.AppendNull()

			return nil
		}
		if branch != 1-n.nullBranch {
			return fmt.Errorf("%w: union branch %d", errs.ErrInvalidVarint, branch)
		}

		return n.inner.decode(c, b)

	case planBoolean:
		v, err := c.readByte()
		if err != nil {
			return err
		}
		builderFor[*array.BooleanBuilder](n, b).Append(v != 0)

	case planInt:
		v, err := c.readLong()
		if err != nil {
			return err
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return fmt.Errorf("%w: value %d outside int32 range", errs.ErrInvalidVarint, v)
		}
		builderFor[*array.PrimitiveBuilder[int32]](n, b).Append(int32(v))

	case planLong:
		v, err := c.readLong()
		if err != nil {
			return err
		}
		builderFor[*array.PrimitiveBuilder[int64]](n, b).Append(v)

	case planFloat:
		raw, err := c.readFixed(4)
		if err != nil {
			return err
		}
		builderFor[*array.PrimitiveBuilder[float32]](n, b).Append(math.Float32frombits(wireByteOrder.Uint32(raw)))

	case planDouble:
		raw, err := c.readFixed(8)
		if err != nil {
			return err
		}
		builderFor[*array.PrimitiveBuilder[float64]](n, b).Append(math.Float64frombits(wireByteOrder.Uint64(raw)))

	case planBytes:
		v, err := c.readBytes()
		if err != nil {
			return err
		}
		builderFor[*array.BinaryBuilder](n, b).Append(v)

	case planString:
		v, err := c.readBytes()
		if err != nil {
			return err
		}
		builderFor[*array.StringBuilder](n, b).AppendBytes(v)

	case planList:
		return n.decodeList(c, builderFor[*array.ListBuilder](n, b))

	case planEnum:
		idx, err := c.readLong()
		if err != nil {
			return err
		}
		if idx < 0 || idx >= int64(len(n.symbols)) {
			return fmt.Errorf("%w: index %d of %d symbols", errs.ErrEnumIndexOutOfRange, idx, len(n.symbols))
		}

		return builderFor[*array.DictionaryBuilder](n, b).AppendKey(int32(idx))
	}

	return nil
}

// decodeList decodes the item-block sequence of one array value: zig-zag
// (count, items...) groups terminated by a zero count. A negative count is
// followed by the group's byte size and declares -count items.
func (n *planNode) decodeList(c *cursor, lb *array.ListBuilder) error {
	for {
		count, err := c.readLong()
		if err != nil {
			return err
		}
		if count == 0 {
			break
		}
		if count < 0 {
			// The byte size of the group enables skipping; the decoder
			// reads every item, so only the count matters.
			if _, err := c.readLong(); err != nil {
				return err
			}
			count = -count
			if count <= 0 {
				// MinInt64 negates to itself.
				return fmt.Errorf("%w: item group count %d", errs.ErrInvalidVarint, count)
			}
		}

		for i := int64(0); i < count; i++ {
			if err := n.inner.decode(c, lb.Child()); err != nil {
				return err
			}
		}
	}

	lb.FinishElement()

	return nil
}

// builderFor narrows b to the concrete builder the plan node produced. The
// plan constructs both from the same data type, so a mismatch is an engine
// bug, not bad input.
func builderFor[T array.Builder](n *planNode, b array.Builder) T {
	t, ok := b.(T)
	if !ok {
		panic(fmt.Sprintf("avro: plan node %s bound to mismatched builder %T", n.dtype, b))
	}

	return t
}
