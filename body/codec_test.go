package body

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/herald/endian"
	"github.com/arloliu/herald/errs"
)

func newTestEncoder() *Encoder {
	return NewEncoder(endian.GetLittleEndianEngine())
}

func newTestDecoder(data []byte) *Decoder {
	return NewDecoder(bytes.NewReader(data), endian.GetLittleEndianEngine())
}

func TestBool_StreamOfTwo(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	enc.EncodeBool(true)
	enc.EncodeBool(false)
	require.Equal(t, []byte{1, 0}, enc.Bytes())

	dec := newTestDecoder(enc.Bytes())

	first, err := dec.DecodeBool()
	require.NoError(t, err)
	require.True(t, first)

	second, err := dec.DecodeBool()
	require.NoError(t, err)
	require.False(t, second)

	// The source is exhausted; a third decode fails cleanly.
	_, err = dec.DecodeBool()
	require.ErrorIs(t, err, errs.ErrRead)
}

func TestBool_RejectsJunkByte(t *testing.T) {
	_, err := newTestDecoder([]byte{2}).DecodeBool()
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}

func TestUnit_OccupiesNoBytes(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	enc.EncodeUnit()
	require.Empty(t, enc.Bytes())

	_, err := newTestDecoder(nil).DecodeUnit()
	require.NoError(t, err)
}

func TestUint8_RawByte(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	enc.EncodeUint8(0)
	enc.EncodeUint8(200)
	enc.EncodeUint8(255)
	require.Equal(t, []byte{0, 200, 255}, enc.Bytes())

	dec := newTestDecoder(enc.Bytes())
	for _, want := range []uint8{0, 200, 255} {
		got, err := dec.DecodeUint8()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestUnsignedInts_Boundaries(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	enc.EncodeUint16(0)
	enc.EncodeUint16(math.MaxUint16)
	enc.EncodeUint32(0)
	enc.EncodeUint32(math.MaxUint32)
	enc.EncodeUint64(0)
	enc.EncodeUint64(math.MaxUint64)

	dec := newTestDecoder(enc.Bytes())

	u16, err := dec.DecodeUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0), u16)
	u16, err = dec.DecodeUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(math.MaxUint16), u16)

	u32, err := dec.DecodeUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0), u32)
	u32, err = dec.DecodeUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(math.MaxUint32), u32)

	u64, err := dec.DecodeUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0), u64)
	u64, err = dec.DecodeUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), u64)
}

func TestSignedInts_Boundaries(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	enc.EncodeInt8(math.MinInt8)
	enc.EncodeInt8(math.MaxInt8)
	enc.EncodeInt16(math.MinInt16)
	enc.EncodeInt16(math.MaxInt16)
	enc.EncodeInt32(math.MinInt32)
	enc.EncodeInt32(math.MaxInt32)
	enc.EncodeInt64(math.MinInt64)
	enc.EncodeInt64(math.MaxInt64)

	dec := newTestDecoder(enc.Bytes())

	i8, err := dec.DecodeInt8()
	require.NoError(t, err)
	require.Equal(t, int8(math.MinInt8), i8)
	i8, err = dec.DecodeInt8()
	require.NoError(t, err)
	require.Equal(t, int8(math.MaxInt8), i8)

	i16, err := dec.DecodeInt16()
	require.NoError(t, err)
	require.Equal(t, int16(math.MinInt16), i16)
	i16, err = dec.DecodeInt16()
	require.NoError(t, err)
	require.Equal(t, int16(math.MaxInt16), i16)

	i32, err := dec.DecodeInt32()
	require.NoError(t, err)
	require.Equal(t, int32(math.MinInt32), i32)
	i32, err = dec.DecodeInt32()
	require.NoError(t, err)
	require.Equal(t, int32(math.MaxInt32), i32)

	i64, err := dec.DecodeInt64()
	require.NoError(t, err)
	require.Equal(t, int64(math.MinInt64), i64)
	i64, err = dec.DecodeInt64()
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), i64)
}

func TestSignedInts_SmallMagnitudesStayShort(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	enc.EncodeInt64(-1)
	enc.EncodeInt64(1)
	enc.EncodeInt64(-64)
	require.Equal(t, []byte{1, 2, 127}, enc.Bytes())
}

func TestFloats_SpecialValues(t *testing.T) {
	f64Values := []float64{0, math.Copysign(0, -1), 1.5, -2.25, math.Inf(1), math.Inf(-1)}

	enc := newTestEncoder()
	defer enc.Reset()
	for _, v := range f64Values {
		enc.EncodeFloat64(v)
	}
	enc.EncodeFloat64(math.NaN())

	dec := newTestDecoder(enc.Bytes())
	for _, want := range f64Values {
		got, err := dec.DecodeFloat64()
		require.NoError(t, err)
		require.Equal(t, math.Float64bits(want), math.Float64bits(got), "value %v", want)
	}

	nan, err := dec.DecodeFloat64()
	require.NoError(t, err)
	require.Equal(t, math.Float64bits(math.NaN()), math.Float64bits(nan), "NaN bit pattern preserved")
}

func TestFloat32_RoundTripAndWidth(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	enc.EncodeFloat32(float32(math.Inf(1)))
	enc.EncodeFloat32(-0.5)
	require.Equal(t, 8, enc.Size())

	dec := newTestDecoder(enc.Bytes())

	inf, err := dec.DecodeFloat32()
	require.NoError(t, err)
	require.Equal(t, float32(math.Inf(1)), inf)

	half, err := dec.DecodeFloat32()
	require.NoError(t, err)
	require.Equal(t, float32(-0.5), half)
}

func TestFloat_TruncatedSource(t *testing.T) {
	_, err := newTestDecoder([]byte{1, 2, 3}).DecodeFloat32()
	require.ErrorIs(t, err, errs.ErrRead)

	_, err = newTestDecoder([]byte{1, 2, 3, 4, 5}).DecodeFloat64()
	require.ErrorIs(t, err, errs.ErrRead)
}

func TestString_RoundTrip(t *testing.T) {
	values := []string{"", "a", "hello", "héllo wörld", "日本語", strings.Repeat("x", 300)}

	enc := newTestEncoder()
	defer enc.Reset()
	for _, v := range values {
		require.NoError(t, enc.EncodeString(v))
	}

	dec := newTestDecoder(enc.Bytes())
	for _, want := range values {
		got, err := dec.DecodeString()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestString_ExactBytes(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	require.NoError(t, enc.EncodeString("hello"))
	require.Equal(t, append([]byte{5}, "hello"...), enc.Bytes())
}

func TestString_InvalidUTF8(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()
	require.ErrorIs(t, enc.EncodeString(string([]byte{0xff, 0xfe})), errs.ErrInvalidUTF8)

	// Length prefix 2 followed by an invalid byte sequence.
	_, err := newTestDecoder([]byte{2, 0xff, 0xfe}).DecodeString()
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}

func TestString_LengthClaimsMoreThanAvailable(t *testing.T) {
	// Prefix says 10 bytes, only 3 follow: ErrRead, never a partial value.
	_, err := newTestDecoder([]byte{10, 'a', 'b', 'c'}).DecodeString()
	require.ErrorIs(t, err, errs.ErrRead)
}

func TestString_HugeLengthPrefixDoesNotAllocate(t *testing.T) {
	// A corrupted prefix claiming ~4GiB against a 2-byte source must fail
	// with ErrRead without trying to allocate the claimed size up front.
	prefix := []byte{0xff, 0xff, 0xff, 0xff, 0x0f, 'h', 'i'}
	_, err := newTestDecoder(prefix).DecodeString()
	require.ErrorIs(t, err, errs.ErrRead)
}

func TestBinary_RoundTrip(t *testing.T) {
	values := [][]byte{nil, {0}, {0xff, 0xfe, 0x00}, bytes.Repeat([]byte{0xaa}, 1000)}

	enc := newTestEncoder()
	defer enc.Reset()
	for _, v := range values {
		enc.EncodeBinary(v)
	}

	dec := newTestDecoder(enc.Bytes())
	for _, want := range values {
		got, err := dec.DecodeBinary()
		require.NoError(t, err)
		require.Equal(t, len(want), len(got))
		require.Equal(t, []byte(want), got)
	}
}

func TestOptional_PresenceFlag(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	enc.EncodeOptional(false)
	enc.EncodeOptional(true)
	enc.EncodeUint8(42)
	require.Equal(t, []byte{0, 1, 42}, enc.Bytes())

	dec := newTestDecoder(enc.Bytes())

	present, err := dec.DecodeOptional()
	require.NoError(t, err)
	require.False(t, present)

	present, err = dec.DecodeOptional()
	require.NoError(t, err)
	require.True(t, present)

	inner, err := dec.DecodeUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(42), inner)
}

func TestArrayAndMapLen_Prefixes(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	require.NoError(t, enc.EncodeArrayLen(0))
	require.NoError(t, enc.EncodeArrayLen(300))
	require.NoError(t, enc.EncodeMapLen(1))
	require.Error(t, enc.EncodeArrayLen(-1))

	dec := newTestDecoder(enc.Bytes())

	n, err := dec.DecodeArrayLen()
	require.NoError(t, err)
	require.Equal(t, 0, n)

	n, err = dec.DecodeArrayLen()
	require.NoError(t, err)
	require.Equal(t, 300, n)

	n, err = dec.DecodeMapLen()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestEncoder_WriteTo(t *testing.T) {
	enc := newTestEncoder()
	defer enc.Reset()

	enc.EncodeBool(true)
	require.NoError(t, enc.EncodeString("ok"))

	var out bytes.Buffer
	n, err := enc.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(enc.Size()), n)
	require.Equal(t, enc.Bytes(), out.Bytes())
}

func TestDecoder_BigEndianEngine(t *testing.T) {
	enc := NewEncoder(endian.GetBigEndianEngine())
	defer enc.Reset()

	enc.EncodeFloat64(1.5)

	dec := NewDecoder(bytes.NewReader(enc.Bytes()), endian.GetBigEndianEngine())
	got, err := dec.DecodeFloat64()
	require.NoError(t, err)
	require.Equal(t, 1.5, got)
}
