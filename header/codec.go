package header

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/herald/encoding"
	"github.com/arloliu/herald/errs"
)

// maxNesting bounds descriptor recursion so a malicious stream of composite
// code bytes cannot exhaust the stack. Real descriptor trees are a handful
// of levels deep.
const maxNesting = 512

// AppendTo appends the wire encoding of the descriptor tree to dst and
// returns the extended slice.
//
// Each node contributes its one-byte kind code; Optional and Array append
// their single child, Map appends its key then its value descriptor, and
// Tuple appends a varint element count followed by each element in declared
// order.
func (h Header) AppendTo(dst []byte) []byte {
	dst = append(dst, byte(h.kind))

	if h.kind == KindTuple {
		dst = encoding.AppendUvarint(dst, uint64(len(h.elems)))
	}
	for _, elem := range h.elems {
		dst = elem.AppendTo(dst)
	}

	return dst
}

// Marshal returns the wire encoding of the descriptor tree as a fresh byte
// slice.
func (h Header) Marshal() []byte {
	return h.AppendTo(nil)
}

// Decode reads exactly one descriptor tree from r, leaving the cursor
// positioned at the first byte after it. Multiple descriptors concatenated
// on one source decode with successive calls.
//
// Returns:
//   - Header: The reconstructed descriptor tree
//   - error: errs.ErrUnknownCode if a code byte is not in the reserved kind
//     table, errs.ErrRead if the source is exhausted mid-descriptor
func Decode(r io.ByteReader) (Header, error) {
	return decode(r, 0)
}

func decode(r io.ByteReader, depth int) (Header, error) {
	if depth >= maxNesting {
		return Header{}, fmt.Errorf("%w: descriptor nesting deeper than %d", errs.ErrOverflow, maxNesting)
	}

	b, err := r.ReadByte()
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, errs.ErrRead
		}

		return Header{}, err
	}

	kind := Kind(b)
	n := kind.numChildren()
	switch n {
	case -2:
		return Header{}, fmt.Errorf("%w: %d", errs.ErrUnknownCode, b)
	case -1:
		// Same 32-bit cap as the body's array and map length prefixes.
		count, err := encoding.Uvarint(r, 32)
		if err != nil {
			return Header{}, err
		}
		n = int(count)
	}

	if n == 0 {
		return Header{kind: kind}, nil
	}

	// Grow as elements arrive; a lying count against a short source fails
	// with ErrRead before it can drive a large allocation.
	elems := make([]Header, 0, min(n, 4096))
	for i := 0; i < n; i++ {
		elem, err := decode(r, depth+1)
		if err != nil {
			return Header{}, err
		}
		elems = append(elems, elem)
	}

	return Header{kind: kind, elems: elems}, nil
}

// Unmarshal decodes a single descriptor tree that must span the entire
// input. Trailing bytes are rejected; use Decode for concatenated streams.
func Unmarshal(data []byte) (Header, error) {
	r := bytes.NewReader(data)
	h, err := Decode(r)
	if err != nil {
		return Header{}, err
	}
	if r.Len() != 0 {
		return Header{}, fmt.Errorf("%w: %d trailing byte(s) after descriptor", errs.ErrInvalidValue, r.Len())
	}

	return h, nil
}
