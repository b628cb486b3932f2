package body

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/arloliu/herald/encoding"
	"github.com/arloliu/herald/errs"
)

// EncodeUint128 encodes a 128-bit unsigned integer as a varint.
//
// Returns errs.ErrNegative for a negative value and errs.ErrOverflow when
// the magnitude exceeds 128 bits. A nil value is rejected with
// errs.ErrInvalidValue.
func (e *Encoder) EncodeUint128(v *big.Int) error {
	if v == nil {
		return fmt.Errorf("%w: nil big integer", errs.ErrInvalidValue)
	}
	if v.Sign() < 0 {
		return errs.ErrNegative
	}
	if v.BitLen() > 128 {
		return errs.ErrOverflow
	}

	e.buf.B = encoding.AppendUvarintBig(e.buf.B, v)

	return nil
}

// DecodeUint128 decodes a varint-encoded 128-bit unsigned integer.
func (d *Decoder) DecodeUint128() (*big.Int, error) {
	return encoding.UvarintBig(d, 128)
}

// EncodeInt128 encodes a 128-bit signed integer as a zigzag varint.
//
// Returns errs.ErrOverflow when the value falls outside the signed 128-bit
// range, and errs.ErrInvalidValue for a nil value.
func (e *Encoder) EncodeInt128(v *big.Int) error {
	if v == nil {
		return fmt.Errorf("%w: nil big integer", errs.ErrInvalidValue)
	}

	u := encoding.ZigZagBig(v)
	if u.BitLen() > 128 {
		return errs.ErrOverflow
	}

	e.buf.B = encoding.AppendUvarintBig(e.buf.B, u)

	return nil
}

// DecodeInt128 decodes a zigzag varint-encoded 128-bit signed integer.
func (d *Decoder) DecodeInt128() (*big.Int, error) {
	u, err := encoding.UvarintBig(d, 128)
	if err != nil {
		return nil, err
	}

	return encoding.UnZigZagBig(u), nil
}

// EncodeBigUint encodes an arbitrary-precision unsigned integer as a varint
// byte-length prefix followed by the big-endian magnitude bytes. Zero
// encodes as a single zero length byte.
//
// Returns errs.ErrNegative for a negative value and errs.ErrInvalidValue
// for nil.
func (e *Encoder) EncodeBigUint(v *big.Int) error {
	if v == nil {
		return fmt.Errorf("%w: nil big integer", errs.ErrInvalidValue)
	}
	if v.Sign() < 0 {
		return errs.ErrNegative
	}

	mag := v.Bytes()
	e.buf.Grow(encoding.MaxVarintLen32 + len(mag))
	e.buf.B = encoding.AppendUvarint(e.buf.B, uint64(len(mag)))
	e.buf.B = append(e.buf.B, mag...)

	return nil
}

// DecodeBigUint decodes an arbitrary-precision unsigned integer.
func (d *Decoder) DecodeBigUint() (*big.Int, error) {
	n, err := encoding.Uvarint(d, 32)
	if err != nil {
		return nil, err
	}

	mag, err := d.readN(n)
	if err != nil {
		return nil, err
	}

	return new(big.Int).SetBytes(mag), nil
}

// EncodeBigInt encodes an arbitrary-precision signed integer as a varint
// sign flag (0 for non-negative, 1 for negative, the zigzag images of 0 and
// -1) followed by the magnitude encoded as for EncodeBigUint.
func (e *Encoder) EncodeBigInt(v *big.Int) error {
	if v == nil {
		return fmt.Errorf("%w: nil big integer", errs.ErrInvalidValue)
	}

	var sign uint64
	if v.Sign() < 0 {
		sign = 1
	}
	e.buf.B = encoding.AppendUvarint(e.buf.B, sign)

	return e.EncodeBigUint(new(big.Int).Abs(v))
}

// DecodeBigInt decodes an arbitrary-precision signed integer.
//
// Returns errs.ErrInvalidValue for a sign flag other than 0 or 1.
func (d *Decoder) DecodeBigInt() (*big.Int, error) {
	sign, err := encoding.Uvarint(d, 8)
	if err != nil {
		return nil, err
	}
	if sign > 1 {
		return nil, fmt.Errorf("%w: sign flag %d", errs.ErrInvalidValue, sign)
	}

	mag, err := d.DecodeBigUint()
	if err != nil {
		return nil, err
	}
	if sign == 1 {
		mag.Neg(mag)
	}

	return mag, nil
}

// EncodeDecimal encodes a fixed-point decimal as a zigzag varint scale
// followed by the arbitrary-precision signed unscaled value, so that
// value = unscaled * 10^-scale. A negative scale is legal and shifts the
// point right.
func (e *Encoder) EncodeDecimal(v decimal.Decimal) error {
	scale := -int64(v.Exponent())
	e.buf.B = encoding.AppendVarint(e.buf.B, scale)

	return e.EncodeBigInt(v.Coefficient())
}

// DecodeDecimal decodes a fixed-point decimal.
//
// Returns errs.ErrOverflow when the scale exceeds the 32-bit exponent range
// of the decimal representation.
func (d *Decoder) DecodeDecimal() (decimal.Decimal, error) {
	scale, err := encoding.Varint(d, 64)
	if err != nil {
		return decimal.Decimal{}, err
	}

	exp := -scale
	if exp > math.MaxInt32 || exp < math.MinInt32 {
		return decimal.Decimal{}, fmt.Errorf("%w: decimal scale %d", errs.ErrOverflow, scale)
	}

	unscaled, err := d.DecodeBigInt()
	if err != nil {
		return decimal.Decimal{}, err
	}

	return decimal.NewFromBigInt(unscaled, int32(exp)), nil
}
