package header

import (
	"fmt"
	"strings"
)

// Kind identifies a Header node's variant. The numeric values are the
// reserved one-byte wire codes and must never be reordered.
type Kind uint8

const (
	KindUnit       Kind = 0
	KindOptional   Kind = 1
	KindBoolean    Kind = 2
	KindUInt8      Kind = 3
	KindUInt16     Kind = 4
	KindUInt32     Kind = 5
	KindUInt64     Kind = 6
	KindUInt128    Kind = 7
	KindInt8       Kind = 8
	KindInt16      Kind = 9
	KindInt32      Kind = 10
	KindInt64      Kind = 11
	KindInt128     Kind = 12
	KindFloat32    Kind = 13
	KindFloat64    Kind = 14
	KindBigUInt    Kind = 15
	KindBigInt     Kind = 16
	KindBigDecimal Kind = 17
	KindString     Kind = 18
	KindBinary     Kind = 19
	KindArray      Kind = 20
	KindTuple      Kind = 21
	// Code 22 is reserved.
	KindMap Kind = 23
	// Code 24 is reserved.
	KindDate     Kind = 25
	KindDateTime Kind = 26
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "Unit"
	case KindOptional:
		return "Optional"
	case KindBoolean:
		return "Boolean"
	case KindUInt8:
		return "UInt8"
	case KindUInt16:
		return "UInt16"
	case KindUInt32:
		return "UInt32"
	case KindUInt64:
		return "UInt64"
	case KindUInt128:
		return "UInt128"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindInt128:
		return "Int128"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindBigUInt:
		return "BigUInt"
	case KindBigInt:
		return "BigInt"
	case KindBigDecimal:
		return "BigDecimal"
	case KindString:
		return "String"
	case KindBinary:
		return "Binary"
	case KindArray:
		return "Array"
	case KindTuple:
		return "Tuple"
	case KindMap:
		return "Map"
	case KindDate:
		return "Date"
	case KindDateTime:
		return "DateTime"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// numChildren returns the fixed child count of the kind, or -1 for Tuple,
// whose count is carried on the wire. Unknown and reserved codes return -2.
func (k Kind) numChildren() int {
	switch k {
	case KindOptional, KindArray:
		return 1
	case KindMap:
		return 2
	case KindTuple:
		return -1
	case KindUnit, KindBoolean,
		KindUInt8, KindUInt16, KindUInt32, KindUInt64, KindUInt128,
		KindInt8, KindInt16, KindInt32, KindInt64, KindInt128,
		KindFloat32, KindFloat64,
		KindBigUInt, KindBigInt, KindBigDecimal,
		KindString, KindBinary,
		KindDate, KindDateTime:
		return 0
	default:
		return -2
	}
}

// Header is a finite descriptor tree naming a value's shape. Headers are
// immutable once built and have no identity beyond structural equality;
// construct them with the kind constructors below or by decoding bytes.
//
// The zero Header describes Unit.
type Header struct {
	kind  Kind
	elems []Header
}

// Leaf constructors.

// Unit returns the descriptor of the zero-byte unit value.
func Unit() Header { return Header{kind: KindUnit} }

// Boolean returns the descriptor of a one-byte boolean.
func Boolean() Header { return Header{kind: KindBoolean} }

// UInt8 returns the descriptor of a raw-byte unsigned integer.
func UInt8() Header { return Header{kind: KindUInt8} }

// UInt16 returns the descriptor of a varint-encoded 16-bit unsigned integer.
func UInt16() Header { return Header{kind: KindUInt16} }

// UInt32 returns the descriptor of a varint-encoded 32-bit unsigned integer.
func UInt32() Header { return Header{kind: KindUInt32} }

// UInt64 returns the descriptor of a varint-encoded 64-bit unsigned integer.
func UInt64() Header { return Header{kind: KindUInt64} }

// UInt128 returns the descriptor of a varint-encoded 128-bit unsigned integer.
func UInt128() Header { return Header{kind: KindUInt128} }

// Int8 returns the descriptor of a zigzag varint-encoded 8-bit integer.
func Int8() Header { return Header{kind: KindInt8} }

// Int16 returns the descriptor of a zigzag varint-encoded 16-bit integer.
func Int16() Header { return Header{kind: KindInt16} }

// Int32 returns the descriptor of a zigzag varint-encoded 32-bit integer.
func Int32() Header { return Header{kind: KindInt32} }

// Int64 returns the descriptor of a zigzag varint-encoded 64-bit integer.
func Int64() Header { return Header{kind: KindInt64} }

// Int128 returns the descriptor of a zigzag varint-encoded 128-bit integer.
func Int128() Header { return Header{kind: KindInt128} }

// Float32 returns the descriptor of a fixed-width IEEE-754 single.
func Float32() Header { return Header{kind: KindFloat32} }

// Float64 returns the descriptor of a fixed-width IEEE-754 double.
func Float64() Header { return Header{kind: KindFloat64} }

// BigUInt returns the descriptor of an arbitrary-precision unsigned integer.
func BigUInt() Header { return Header{kind: KindBigUInt} }

// BigInt returns the descriptor of an arbitrary-precision signed integer.
func BigInt() Header { return Header{kind: KindBigInt} }

// BigDecimal returns the descriptor of a fixed-point decimal.
func BigDecimal() Header { return Header{kind: KindBigDecimal} }

// String returns the descriptor of a length-prefixed UTF-8 string.
func String() Header { return Header{kind: KindString} }

// Binary returns the descriptor of a length-prefixed byte sequence.
func Binary() Header { return Header{kind: KindBinary} }

// Date returns the descriptor of a calendar date.
func Date() Header { return Header{kind: KindDate} }

// DateTime returns the descriptor of a date with time of day.
func DateTime() Header { return Header{kind: KindDateTime} }

// Composite constructors.

// Optional returns the descriptor of an optional value with the given inner
// shape.
func Optional(inner Header) Header {
	return Header{kind: KindOptional, elems: []Header{inner}}
}

// Array returns the descriptor of a homogeneous sequence whose elements all
// have the given shape.
func Array(elem Header) Header {
	return Header{kind: KindArray, elems: []Header{elem}}
}

// Map returns the descriptor of a homogeneous key/value mapping.
func Map(key, value Header) Header {
	return Header{kind: KindMap, elems: []Header{key, value}}
}

// Tuple returns the descriptor of a fixed-arity sequence of possibly mixed
// shapes. Tuple is used uniformly for anonymous tuples and for fixed-field
// records: field names are never serialized, field identity is positional
// and agreed out of band.
func Tuple(elems ...Header) Header {
	return Header{kind: KindTuple, elems: elems}
}

// Kind returns the node's variant.
func (h Header) Kind() Kind {
	return h.kind
}

// Elems returns the node's child descriptors: one for Optional and Array,
// key then value for Map, the declared elements for Tuple, nil for leaves.
// The returned slice must not be modified.
func (h Header) Elems() []Header {
	return h.elems
}

// Elem returns the child descriptor at index i.
func (h Header) Elem(i int) Header {
	return h.elems[i]
}

// Key returns the key descriptor of a Map header.
func (h Header) Key() Header {
	return h.elems[0]
}

// Value returns the value descriptor of a Map header.
func (h Header) Value() Header {
	return h.elems[1]
}

// Equal reports structural equality of two descriptor trees.
func (h Header) Equal(other Header) bool {
	if h.kind != other.kind || len(h.elems) != len(other.elems) {
		return false
	}
	for i := range h.elems {
		if !h.elems[i].Equal(other.elems[i]) {
			return false
		}
	}

	return true
}

// Validate checks that every node in the tree carries a known kind with the
// right number of children. Trees built with the constructors are always
// valid; Validate exists for descriptor trees assembled by external
// derivation facilities.
func (h Header) Validate() error {
	n := h.kind.numChildren()
	switch {
	case n == -2:
		return fmt.Errorf("kind code %d is not a valid descriptor kind", uint8(h.kind))
	case n >= 0 && len(h.elems) != n:
		return fmt.Errorf("%s descriptor requires %d child(ren), has %d", h.kind, n, len(h.elems))
	}

	for _, elem := range h.elems {
		if err := elem.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// String renders the descriptor tree in a compact human-readable form, e.g.
// "Tuple[Boolean, UInt8, String]".
func (h Header) String() string {
	switch h.kind {
	case KindOptional:
		return "Optional[" + h.elems[0].String() + "]"
	case KindArray:
		return "Array[" + h.elems[0].String() + "]"
	case KindMap:
		return "Map[" + h.elems[0].String() + ", " + h.elems[1].String() + "]"
	case KindTuple:
		parts := make([]string, len(h.elems))
		for i, elem := range h.elems {
			parts[i] = elem.String()
		}

		return "Tuple[" + strings.Join(parts, ", ") + "]"
	default:
		return h.kind.String()
	}
}
