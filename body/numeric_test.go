package body

import (
	"math"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/herald/errs"
)

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)

	return v
}

func TestUint128_RoundTrip(t *testing.T) {
	max128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(127),
		new(big.Int).SetUint64(math.MaxUint64),
		max128,
	}

	for _, value := range values {
		enc := newTestEncoder()
		require.NoError(t, enc.EncodeUint128(value))

		got, err := newTestDecoder(enc.Bytes()).DecodeUint128()
		enc.Reset()
		require.NoError(t, err)
		require.Zero(t, value.Cmp(got), "value %s", value)
	}
}

func TestUint128_Rejections(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	require.ErrorIs(t, enc.EncodeUint128(nil), errs.ErrInvalidValue)
	require.ErrorIs(t, enc.EncodeUint128(big.NewInt(-1)), errs.ErrNegative)
	require.ErrorIs(t, enc.EncodeUint128(new(big.Int).Lsh(big.NewInt(1), 128)), errs.ErrOverflow)
	require.Empty(t, enc.Bytes(), "rejected values must not leak bytes")
}

func TestInt128_RoundTrip(t *testing.T) {
	min128 := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	max128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(-1),
		big.NewInt(math.MinInt64),
		big.NewInt(math.MaxInt64),
		min128,
		max128,
	}

	for _, value := range values {
		enc := newTestEncoder()
		require.NoError(t, enc.EncodeInt128(value))

		got, err := newTestDecoder(enc.Bytes()).DecodeInt128()
		enc.Reset()
		require.NoError(t, err)
		require.Zero(t, value.Cmp(got), "value %s", value)
	}
}

func TestInt128_Overflow(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	tooBig := new(big.Int).Lsh(big.NewInt(1), 127)                  // 2^127
	tooSmall := new(big.Int).Sub(new(big.Int).Neg(tooBig), big.NewInt(1)) // -2^127-1

	require.ErrorIs(t, enc.EncodeInt128(tooBig), errs.ErrOverflow)
	require.ErrorIs(t, enc.EncodeInt128(tooSmall), errs.ErrOverflow)
}

func TestBigUint_RoundTrip(t *testing.T) {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(255),
		new(big.Int).SetUint64(math.MaxUint64),
		bigFromString(t, "340282366920938463463374607431768211456"),            // 2^128, past the fixed widths
		bigFromString(t, "179769313486231590772930519078902473361797697894230"), // arbitrary 50-digit value
	}

	for _, value := range values {
		enc := newTestEncoder()
		require.NoError(t, enc.EncodeBigUint(value))

		got, err := newTestDecoder(enc.Bytes()).DecodeBigUint()
		enc.Reset()
		require.NoError(t, err)
		require.Zero(t, value.Cmp(got), "value %s", value)
	}
}

func TestBigUint_ExactBytes(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	// Zero is just a zero length prefix.
	require.NoError(t, enc.EncodeBigUint(big.NewInt(0)))
	require.Equal(t, []byte{0}, enc.Bytes())

	enc2 := newTestEncoder()
	defer enc2.Reset()

	// 0x01FF: two magnitude bytes, big-endian.
	require.NoError(t, enc2.EncodeBigUint(big.NewInt(511)))
	require.Equal(t, []byte{2, 0x01, 0xff}, enc2.Bytes())
}

func TestBigUint_RejectsNegative(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	require.ErrorIs(t, enc.EncodeBigUint(big.NewInt(-5)), errs.ErrNegative)
}

func TestBigUint_TruncatedMagnitude(t *testing.T) {
	// Length prefix 4, only two magnitude bytes present.
	_, err := newTestDecoder([]byte{4, 0x01, 0x02}).DecodeBigUint()
	require.ErrorIs(t, err, errs.ErrRead)
}

func TestBigInt_RoundTrip(t *testing.T) {
	big200 := new(big.Int).Lsh(big.NewInt(1), 200)
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(-1),
		big.NewInt(math.MinInt64),
		big200,
		new(big.Int).Neg(big200),
	}

	for _, value := range values {
		enc := newTestEncoder()
		require.NoError(t, enc.EncodeBigInt(value))

		got, err := newTestDecoder(enc.Bytes()).DecodeBigInt()
		enc.Reset()
		require.NoError(t, err)
		require.Zero(t, value.Cmp(got), "value %s", value)
	}
}

func TestBigInt_SignFlagBytes(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	require.NoError(t, enc.EncodeBigInt(big.NewInt(7)))
	require.Equal(t, []byte{0, 1, 7}, enc.Bytes(), "sign 0, length 1, magnitude 7")

	enc2 := newTestEncoder()
	defer enc2.Reset()

	require.NoError(t, enc2.EncodeBigInt(big.NewInt(-7)))
	require.Equal(t, []byte{1, 1, 7}, enc2.Bytes(), "sign 1, length 1, magnitude 7")
}

func TestBigInt_RejectsBadSignFlag(t *testing.T) {
	_, err := newTestDecoder([]byte{2, 1, 7}).DecodeBigInt()
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}

func TestDecimal_RoundTrip(t *testing.T) {
	values := []decimal.Decimal{
		decimal.Zero,
		decimal.New(1, 0),
		decimal.New(1, -1),      // 0.1
		decimal.New(1, 1),       // 10
		decimal.New(-12345, -3), // -12.345
		decimal.New(1, 63),      // positive exponent = negative scale
		decimal.RequireFromString("123456789012345678901234567890.5"),
	}

	for _, value := range values {
		enc := newTestEncoder()
		require.NoError(t, enc.EncodeDecimal(value))

		got, err := newTestDecoder(enc.Bytes()).DecodeDecimal()
		enc.Reset()
		require.NoError(t, err)
		require.True(t, value.Equal(got), "value %s, got %s", value, got)
		require.Equal(t, value.Exponent(), got.Exponent(), "scale preserved for %s", value)
	}
}

func TestDecimal_ExactBytes(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	// 12.5 = unscaled 125, scale 1: zigzag(1)=2, then sign 0, length 1, 125.
	require.NoError(t, enc.EncodeDecimal(decimal.New(125, -1)))
	require.Equal(t, []byte{2, 0, 1, 125}, enc.Bytes())
}

func TestDecimal_ScaleOverflow(t *testing.T) {
	// Scale far beyond the 32-bit exponent range.
	enc := newTestEncoder()
	defer enc.Reset()
	enc.EncodeInt64(int64(math.MinInt32) - 1)
	require.NoError(t, enc.EncodeBigInt(big.NewInt(1)))

	_, err := newTestDecoder(enc.Bytes()).DecodeDecimal()
	require.ErrorIs(t, err, errs.ErrOverflow)
}
