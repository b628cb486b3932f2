package body

import (
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/arloliu/herald/errs"
	"github.com/arloliu/herald/header"
)

// Unit is the Go representation of the zero-byte unit value.
type Unit struct{}

// Optional is the dynamic representation of an optional value. An absent
// optional has Present false and Value nil; a present one carries the inner
// value, which may itself be another Optional.
type Optional struct {
	Present bool
	Value   any
}

// MapEntry is one (key, value) pair of a dynamic map value. Maps are kept
// as ordered entry slices rather than Go maps: the format permits composite
// keys, which Go maps cannot hold, and slices keep encoding deterministic.
type MapEntry struct {
	Key   any
	Value any
}

// EncodeValue appends the encoding of a dynamically-typed value, dispatching
// on the descriptor's kind.
//
// The expected Go type per kind: Unit for Unit, bool for Boolean,
// uint8..uint64 / int8..int64 for the fixed widths, *big.Int for UInt128,
// Int128, BigUInt and BigInt, float32/float64, string, []byte for Binary,
// decimal.Decimal, civil.Date, time.Time, Optional, []any for Array and
// Tuple, and []MapEntry for Map.
//
// A Go value that does not match the kind fails with errs.ErrInvalidValue;
// nothing is appended for a failed value beyond the bytes of the children
// already encoded.
func EncodeValue(e *Encoder, h header.Header, v any) error {
	switch h.Kind() {
	case header.KindUnit:
		if _, ok := v.(Unit); !ok {
			return mismatch(h, v)
		}
		e.EncodeUnit()

		return nil

	case header.KindBoolean:
		b, ok := v.(bool)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeBool(b)

		return nil

	case header.KindUInt8:
		u, ok := v.(uint8)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeUint8(u)

		return nil

	case header.KindUInt16:
		u, ok := v.(uint16)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeUint16(u)

		return nil

	case header.KindUInt32:
		u, ok := v.(uint32)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeUint32(u)

		return nil

	case header.KindUInt64:
		u, ok := v.(uint64)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeUint64(u)

		return nil

	case header.KindUInt128:
		u, ok := v.(*big.Int)
		if !ok {
			return mismatch(h, v)
		}

		return e.EncodeUint128(u)

	case header.KindInt8:
		i, ok := v.(int8)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeInt8(i)

		return nil

	case header.KindInt16:
		i, ok := v.(int16)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeInt16(i)

		return nil

	case header.KindInt32:
		i, ok := v.(int32)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeInt32(i)

		return nil

	case header.KindInt64:
		i, ok := v.(int64)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeInt64(i)

		return nil

	case header.KindInt128:
		i, ok := v.(*big.Int)
		if !ok {
			return mismatch(h, v)
		}

		return e.EncodeInt128(i)

	case header.KindFloat32:
		f, ok := v.(float32)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeFloat32(f)

		return nil

	case header.KindFloat64:
		f, ok := v.(float64)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeFloat64(f)

		return nil

	case header.KindBigUInt:
		u, ok := v.(*big.Int)
		if !ok {
			return mismatch(h, v)
		}

		return e.EncodeBigUint(u)

	case header.KindBigInt:
		i, ok := v.(*big.Int)
		if !ok {
			return mismatch(h, v)
		}

		return e.EncodeBigInt(i)

	case header.KindBigDecimal:
		dec, ok := v.(decimal.Decimal)
		if !ok {
			return mismatch(h, v)
		}

		return e.EncodeDecimal(dec)

	case header.KindString:
		s, ok := v.(string)
		if !ok {
			return mismatch(h, v)
		}

		return e.EncodeString(s)

	case header.KindBinary:
		b, ok := v.([]byte)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeBinary(b)

		return nil

	case header.KindDate:
		date, ok := v.(civil.Date)
		if !ok {
			return mismatch(h, v)
		}

		return e.EncodeDate(date)

	case header.KindDateTime:
		t, ok := v.(time.Time)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeDateTime(t)

		return nil

	case header.KindOptional:
		opt, ok := v.(Optional)
		if !ok {
			return mismatch(h, v)
		}
		e.EncodeOptional(opt.Present)
		if opt.Present {
			return EncodeValue(e, h.Elem(0), opt.Value)
		}

		return nil

	case header.KindArray:
		elems, ok := v.([]any)
		if !ok {
			return mismatch(h, v)
		}
		if err := e.EncodeArrayLen(len(elems)); err != nil {
			return err
		}
		for _, elem := range elems {
			if err := EncodeValue(e, h.Elem(0), elem); err != nil {
				return err
			}
		}

		return nil

	case header.KindTuple:
		elems, ok := v.([]any)
		if !ok {
			return mismatch(h, v)
		}
		if len(elems) != len(h.Elems()) {
			return fmt.Errorf("%w: tuple has %d element(s), descriptor declares %d",
				errs.ErrInvalidValue, len(elems), len(h.Elems()))
		}
		for i, elem := range elems {
			if err := EncodeValue(e, h.Elem(i), elem); err != nil {
				return err
			}
		}

		return nil

	case header.KindMap:
		entries, ok := v.([]MapEntry)
		if !ok {
			return mismatch(h, v)
		}
		if err := e.EncodeMapLen(len(entries)); err != nil {
			return err
		}
		for _, entry := range entries {
			if err := EncodeValue(e, h.Key(), entry.Key); err != nil {
				return err
			}
			if err := EncodeValue(e, h.Value(), entry.Value); err != nil {
				return err
			}
		}

		return nil

	default:
		return fmt.Errorf("%w: %d", errs.ErrUnknownCode, uint8(h.Kind()))
	}
}

// DecodeValue consumes the encoding of one value of the descriptor's shape
// and reconstructs it as a dynamically-typed value, using the Go types
// documented on EncodeValue.
func DecodeValue(d *Decoder, h header.Header) (any, error) {
	switch h.Kind() {
	case header.KindUnit:
		return d.DecodeUnit()
	case header.KindBoolean:
		return d.DecodeBool()
	case header.KindUInt8:
		return d.DecodeUint8()
	case header.KindUInt16:
		return d.DecodeUint16()
	case header.KindUInt32:
		return d.DecodeUint32()
	case header.KindUInt64:
		return d.DecodeUint64()
	case header.KindUInt128:
		return d.DecodeUint128()
	case header.KindInt8:
		return d.DecodeInt8()
	case header.KindInt16:
		return d.DecodeInt16()
	case header.KindInt32:
		return d.DecodeInt32()
	case header.KindInt64:
		return d.DecodeInt64()
	case header.KindInt128:
		return d.DecodeInt128()
	case header.KindFloat32:
		return d.DecodeFloat32()
	case header.KindFloat64:
		return d.DecodeFloat64()
	case header.KindBigUInt:
		return d.DecodeBigUint()
	case header.KindBigInt:
		return d.DecodeBigInt()
	case header.KindBigDecimal:
		return d.DecodeDecimal()
	case header.KindString:
		return d.DecodeString()
	case header.KindBinary:
		return d.DecodeBinary()
	case header.KindDate:
		return d.DecodeDate()
	case header.KindDateTime:
		return d.DecodeDateTime()

	case header.KindOptional:
		present, err := d.DecodeOptional()
		if err != nil {
			return nil, err
		}
		opt := Optional{Present: present}
		if present {
			opt.Value, err = DecodeValue(d, h.Elem(0))
			if err != nil {
				return nil, err
			}
		}

		return opt, nil

	case header.KindArray:
		n, err := d.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		elems := make([]any, 0, min(n, 4096))
		for i := 0; i < n; i++ {
			elem, err := DecodeValue(d, h.Elem(0))
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}

		return elems, nil

	case header.KindTuple:
		elems := make([]any, len(h.Elems()))
		for i := range elems {
			elem, err := DecodeValue(d, h.Elem(i))
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}

		return elems, nil

	case header.KindMap:
		n, err := d.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		entries := make([]MapEntry, 0, min(n, 4096))
		for i := 0; i < n; i++ {
			key, err := DecodeValue(d, h.Key())
			if err != nil {
				return nil, err
			}
			value, err := DecodeValue(d, h.Value())
			if err != nil {
				return nil, err
			}
			entries = append(entries, MapEntry{Key: key, Value: value})
		}

		return entries, nil

	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownCode, uint8(h.Kind()))
	}
}

func mismatch(h header.Header, v any) error {
	return fmt.Errorf("%w: %s value cannot be represented by %T", errs.ErrInvalidValue, h.Kind(), v)
}
