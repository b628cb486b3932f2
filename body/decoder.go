package body

import (
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/arloliu/herald/encoding"
	"github.com/arloliu/herald/endian"
	"github.com/arloliu/herald/errs"
)

// Decoder consumes value encodings from a sequential byte source.
//
// Each Decode call consumes exactly the bytes its value needs and leaves the
// cursor at the start of the next value, so N concatenated values decode
// with N calls. A source exhausted mid-value yields errs.ErrRead, never a
// partial value; on a live stream the caller may treat ErrRead as "retry
// once more bytes are available".
//
// Decoders are not safe for concurrent use.
type Decoder struct {
	r       io.Reader
	engine  endian.EndianEngine
	scratch [8]byte
}

// NewDecoder creates a new value decoder reading from r, using the
// specified endian engine for fixed-width encodings. The engine must match
// the one the stream was encoded with.
func NewDecoder(r io.Reader, engine endian.EndianEngine) *Decoder {
	return &Decoder{
		r:      r,
		engine: engine,
	}
}

// ReadByte reads a single byte from the source, implementing io.ByteReader.
// An exhausted source yields errs.ErrRead.
func (d *Decoder) ReadByte() (byte, error) {
	if err := d.readFull(d.scratch[:1]); err != nil {
		return 0, err
	}

	return d.scratch[0], nil
}

// DecodeUnit decodes the unit value, consuming zero bytes.
func (d *Decoder) DecodeUnit() (Unit, error) {
	return Unit{}, nil
}

// DecodeBool decodes a one-byte boolean.
//
// Returns errs.ErrInvalidValue for any byte other than 0 or 1.
func (d *Decoder) DecodeBool() (bool, error) {
	b, err := d.ReadByte()
	if err != nil {
		return false, err
	}

	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: boolean byte %d", errs.ErrInvalidValue, b)
	}
}

// DecodeUint8 decodes an 8-bit unsigned integer from one raw byte.
func (d *Decoder) DecodeUint8() (uint8, error) {
	return d.ReadByte()
}

// DecodeUint16 decodes a varint-encoded 16-bit unsigned integer.
func (d *Decoder) DecodeUint16() (uint16, error) {
	v, err := encoding.Uvarint(d, 16)

	return uint16(v), err //nolint:gosec
}

// DecodeUint32 decodes a varint-encoded 32-bit unsigned integer.
func (d *Decoder) DecodeUint32() (uint32, error) {
	v, err := encoding.Uvarint(d, 32)

	return uint32(v), err //nolint:gosec
}

// DecodeUint64 decodes a varint-encoded 64-bit unsigned integer.
func (d *Decoder) DecodeUint64() (uint64, error) {
	return encoding.Uvarint(d, 64)
}

// DecodeInt8 decodes a zigzag varint-encoded 8-bit signed integer.
func (d *Decoder) DecodeInt8() (int8, error) {
	v, err := encoding.Varint(d, 8)

	return int8(v), err //nolint:gosec
}

// DecodeInt16 decodes a zigzag varint-encoded 16-bit signed integer.
func (d *Decoder) DecodeInt16() (int16, error) {
	v, err := encoding.Varint(d, 16)

	return int16(v), err //nolint:gosec
}

// DecodeInt32 decodes a zigzag varint-encoded 32-bit signed integer.
func (d *Decoder) DecodeInt32() (int32, error) {
	v, err := encoding.Varint(d, 32)

	return int32(v), err //nolint:gosec
}

// DecodeInt64 decodes a zigzag varint-encoded 64-bit signed integer.
func (d *Decoder) DecodeInt64() (int64, error) {
	return encoding.Varint(d, 64)
}

// DecodeFloat32 decodes a fixed-width IEEE-754 single. NaN bit patterns are
// preserved.
func (d *Decoder) DecodeFloat32() (float32, error) {
	if err := d.readFull(d.scratch[:4]); err != nil {
		return 0, err
	}

	return math.Float32frombits(d.engine.Uint32(d.scratch[:4])), nil
}

// DecodeFloat64 decodes a fixed-width IEEE-754 double. NaN bit patterns are
// preserved.
func (d *Decoder) DecodeFloat64() (float64, error) {
	if err := d.readFull(d.scratch[:8]); err != nil {
		return 0, err
	}

	return math.Float64frombits(d.engine.Uint64(d.scratch[:8])), nil
}

// DecodeString decodes a length-prefixed UTF-8 string.
//
// Returns errs.ErrRead if the prefix claims more bytes than the source
// holds, and errs.ErrInvalidUTF8 if the bytes are not valid UTF-8.
func (d *Decoder) DecodeString() (string, error) {
	n, err := encoding.Uvarint(d, 32)
	if err != nil {
		return "", err
	}

	buf, err := d.readN(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", errs.ErrInvalidUTF8
	}

	return string(buf), nil
}

// DecodeBinary decodes a length-prefixed byte sequence with no content
// validation. The returned slice is freshly allocated and owned by the
// caller.
func (d *Decoder) DecodeBinary() ([]byte, error) {
	n, err := encoding.Uvarint(d, 32)
	if err != nil {
		return nil, err
	}

	return d.readN(n)
}

// DecodeOptional decodes the one-byte presence flag of an optional value.
// When it returns true, the caller decodes the inner value next; when
// false, the optional occupied only the flag byte.
func (d *Decoder) DecodeOptional() (bool, error) {
	present, err := d.DecodeBool()
	if err != nil {
		return false, fmt.Errorf("optional presence flag: %w", err)
	}

	return present, nil
}

// DecodeArrayLen decodes the element-count prefix of a homogeneous array.
func (d *Decoder) DecodeArrayLen() (int, error) {
	n, err := encoding.Uvarint(d, 32)

	return int(n), err //nolint:gosec
}

// DecodeMapLen decodes the pair-count prefix of a map.
func (d *Decoder) DecodeMapLen() (int, error) {
	return d.DecodeArrayLen()
}

// readFull fills buf from the source, normalizing end-of-stream conditions
// into errs.ErrRead.
func (d *Decoder) readFull(buf []byte) error {
	if _, err := io.ReadFull(d.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errs.ErrRead
		}

		return err
	}

	return nil
}

// readN reads exactly n bytes into a fresh slice. The allocation is grown
// chunk by chunk as bytes actually arrive, so a corrupted length prefix
// claiming gigabytes fails with errs.ErrRead instead of exhausting memory.
func (d *Decoder) readN(n uint64) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	const chunkSize = 64 * 1024
	if n <= chunkSize {
		buf := make([]byte, n)
		if err := d.readFull(buf); err != nil {
			return nil, err
		}

		return buf, nil
	}

	buf := make([]byte, 0, chunkSize)
	for remaining := n; remaining > 0; {
		step := uint64(chunkSize)
		if remaining < step {
			step = remaining
		}

		start := len(buf)
		buf = append(buf, make([]byte, step)...)
		if err := d.readFull(buf[start:]); err != nil {
			return nil, err
		}
		remaining -= step
	}

	return buf, nil
}
