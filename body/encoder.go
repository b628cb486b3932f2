package body

import (
	"io"
	"math"
	"unicode/utf8"

	"github.com/arloliu/herald/encoding"
	"github.com/arloliu/herald/endian"
	"github.com/arloliu/herald/errs"
	"github.com/arloliu/herald/internal/pool"
)

// Encoder appends value encodings to a pooled byte buffer.
//
// An Encoder is created with NewEncoder, fed with one Encode call per value
// (values concatenate with no delimiter), and drained with Bytes or WriteTo.
// Reset releases the buffer back to the pool; the Encoder must not be used
// afterwards.
//
// Encoders are not safe for concurrent use; they hold no process-wide state,
// so any number of independent Encoders may run in parallel.
type Encoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewEncoder creates a new value encoder using the specified endian engine
// for fixed-width encodings.
//
// Little-endian is the interchange default; see endian.GetLittleEndianEngine.
func NewEncoder(engine endian.EndianEngine) *Encoder {
	return &Encoder{
		engine: engine,
		buf:    pool.GetCodecBuffer(),
	}
}

// EncodeUnit encodes the unit value, which occupies zero bytes.
func (e *Encoder) EncodeUnit() {}

// EncodeBool encodes a boolean as one byte: 0 for false, 1 for true.
func (e *Encoder) EncodeBool(v bool) {
	if v {
		e.buf.B = append(e.buf.B, 1)
	} else {
		e.buf.B = append(e.buf.B, 0)
	}
}

// EncodeUint8 encodes an 8-bit unsigned integer as one raw byte. Variable
// length encoding has no benefit at this width.
func (e *Encoder) EncodeUint8(v uint8) {
	e.buf.B = append(e.buf.B, v)
}

// EncodeUint16 encodes a 16-bit unsigned integer as a varint.
func (e *Encoder) EncodeUint16(v uint16) {
	e.buf.B = encoding.AppendUvarint(e.buf.B, uint64(v))
}

// EncodeUint32 encodes a 32-bit unsigned integer as a varint.
func (e *Encoder) EncodeUint32(v uint32) {
	e.buf.B = encoding.AppendUvarint(e.buf.B, uint64(v))
}

// EncodeUint64 encodes a 64-bit unsigned integer as a varint.
func (e *Encoder) EncodeUint64(v uint64) {
	e.buf.B = encoding.AppendUvarint(e.buf.B, v)
}

// EncodeInt8 encodes an 8-bit signed integer as a zigzag varint.
func (e *Encoder) EncodeInt8(v int8) {
	e.buf.B = encoding.AppendVarint(e.buf.B, int64(v))
}

// EncodeInt16 encodes a 16-bit signed integer as a zigzag varint.
func (e *Encoder) EncodeInt16(v int16) {
	e.buf.B = encoding.AppendVarint(e.buf.B, int64(v))
}

// EncodeInt32 encodes a 32-bit signed integer as a zigzag varint.
func (e *Encoder) EncodeInt32(v int32) {
	e.buf.B = encoding.AppendVarint(e.buf.B, int64(v))
}

// EncodeInt64 encodes a 64-bit signed integer as a zigzag varint.
func (e *Encoder) EncodeInt64(v int64) {
	e.buf.B = encoding.AppendVarint(e.buf.B, v)
}

// EncodeFloat32 encodes an IEEE-754 single as four raw bytes in the
// encoder's byte order. NaN bit patterns are preserved.
func (e *Encoder) EncodeFloat32(v float32) {
	e.buf.B = e.engine.AppendUint32(e.buf.B, math.Float32bits(v))
}

// EncodeFloat64 encodes an IEEE-754 double as eight raw bytes in the
// encoder's byte order. NaN bit patterns are preserved.
func (e *Encoder) EncodeFloat64(v float64) {
	e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v))
}

// EncodeString encodes a string as a varint byte-length prefix followed by
// its UTF-8 bytes.
//
// Returns errs.ErrInvalidUTF8 if the string does not hold valid UTF-8; Go
// permits such strings in memory but the wire format does not.
func (e *Encoder) EncodeString(v string) error {
	if !utf8.ValidString(v) {
		return errs.ErrInvalidUTF8
	}

	e.buf.Grow(encoding.MaxVarintLen32 + len(v))
	e.buf.B = encoding.AppendUvarint(e.buf.B, uint64(len(v)))
	e.buf.B = append(e.buf.B, v...)

	return nil
}

// EncodeBinary encodes a byte sequence as a varint byte-length prefix
// followed by the raw bytes, with no content validation.
func (e *Encoder) EncodeBinary(v []byte) {
	e.buf.Grow(encoding.MaxVarintLen32 + len(v))
	e.buf.B = encoding.AppendUvarint(e.buf.B, uint64(len(v)))
	e.buf.B = append(e.buf.B, v...)
}

// EncodeOptional encodes the one-byte presence flag of an optional value:
// 0 for absent, 1 for present. When present is true the caller encodes the
// inner value immediately afterwards; when false, nothing follows.
func (e *Encoder) EncodeOptional(present bool) {
	e.EncodeBool(present)
}

// EncodeArrayLen encodes the element-count prefix of a homogeneous array.
// The caller encodes each of the n elements afterwards, in order.
func (e *Encoder) EncodeArrayLen(n int) error {
	if n < 0 {
		return errs.ErrNegative
	}

	e.buf.B = encoding.AppendUvarint(e.buf.B, uint64(n))

	return nil
}

// EncodeMapLen encodes the pair-count prefix of a map. The caller encodes
// each of the n (key, value) pairs afterwards, in order.
func (e *Encoder) EncodeMapLen(n int) error {
	return e.EncodeArrayLen(n)
}

// Bytes returns the encoded stream accumulated so far.
//
// The returned slice shares the underlying buffer with the encoder and is
// invalidated by Reset; copy it if it must outlive the Encoder.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Size returns the number of bytes accumulated so far.
func (e *Encoder) Size() int {
	return e.buf.Len()
}

// WriteTo writes the accumulated stream to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	return e.buf.WriteTo(w)
}

// Reset returns the buffer to the pool. After calling Reset, the encoder
// must not be used again.
func (e *Encoder) Reset() {
	if e.buf != nil {
		pool.PutCodecBuffer(e.buf)
		e.buf = nil
	}
}
