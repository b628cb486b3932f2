package encoding

import (
	"io"
	"math/big"

	"github.com/arloliu/herald/errs"
)

// Maximum encoded lengths of a base-128 varint for each supported bit width.
const (
	MaxVarintLen8   = 2
	MaxVarintLen16  = 3
	MaxVarintLen32  = 5
	MaxVarintLen64  = 10
	MaxVarintLen128 = 19
)

// AppendUvarint appends the canonical base-128 varint encoding of v to dst
// and returns the extended slice.
//
// The encoding is minimal: no unnecessary trailing zero groups are emitted,
// and zero encodes as the single byte 0x00.
//
// Parameters:
//   - dst: Destination slice to append to (may be nil)
//   - v: Unsigned value to encode
//
// Returns:
//   - []byte: The extended destination slice
func AppendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// Uvarint decodes a base-128 varint from r, restricted to the given target
// bit width (8, 16, 32 or 64).
//
// Non-minimal encodings are accepted as long as the decoded value fits the
// target width; the continuation chain itself may not extend past the ten
// groups a 64-bit value can occupy.
//
// Parameters:
//   - r: Sequential byte source
//   - bits: Target width in bits; decoded values above 2^bits-1 are rejected
//
// Returns:
//   - uint64: The decoded value
//   - error: errs.ErrRead if the source is exhausted before a terminating
//     byte, errs.ErrOverflow if the value exceeds the target width
func Uvarint(r io.ByteReader, bits uint) (uint64, error) {
	var v uint64
	var shift uint

	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, readErr(err)
		}

		if shift > 63 || (shift == 63 && b&0x7f > 1) {
			return 0, errs.ErrOverflow
		}

		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			break
		}
		shift += 7
	}

	if bits < 64 && v > 1<<bits-1 {
		return 0, errs.ErrOverflow
	}

	return v, nil
}

// AppendVarint appends the canonical varint encoding of the ZigZag-mapped
// signed value v to dst and returns the extended slice.
func AppendVarint(dst []byte, v int64) []byte {
	return AppendUvarint(dst, ZigZag(v))
}

// Varint decodes a ZigZag-mapped signed varint from r, restricted to the
// given target bit width (8, 16, 32 or 64).
//
// Returns errs.ErrRead on a truncated source and errs.ErrOverflow when the
// value does not fit the target width.
func Varint(r io.ByteReader, bits uint) (int64, error) {
	u, err := Uvarint(r, bits)
	if err != nil {
		return 0, err
	}

	return UnZigZag(u), nil
}

var low7 = big.NewInt(0x7f)

// AppendUvarintBig appends the canonical base-128 varint encoding of the
// non-negative big integer v to dst and returns the extended slice.
//
// The caller is responsible for rejecting negative values and for enforcing
// any width limit before encoding; this function only transforms magnitude
// bits into 7-bit groups.
func AppendUvarintBig(dst []byte, v *big.Int) []byte {
	if v.Sign() <= 0 {
		return append(dst, 0)
	}

	n := new(big.Int).Set(v)
	group := new(big.Int)
	for n.BitLen() > 7 {
		group.And(n, low7)
		dst = append(dst, byte(group.Uint64())|0x80)
		n.Rsh(n, 7)
	}

	return append(dst, byte(n.Uint64()))
}

// UvarintBig decodes a base-128 varint from r into a big integer, restricted
// to maxBits significant bits.
//
// Returns errs.ErrRead on a truncated source and errs.ErrOverflow when the
// value, or the continuation chain, exceeds maxBits.
func UvarintBig(r io.ByteReader, maxBits uint) (*big.Int, error) {
	maxGroups := (maxBits + 6) / 7

	v := new(big.Int)
	group := new(big.Int)
	var groups uint

	for {
		b, err := r.ReadByte()
		if err != nil {
			return nil, readErr(err)
		}

		if groups >= maxGroups {
			return nil, errs.ErrOverflow
		}

		group.SetUint64(uint64(b & 0x7f))
		v.Or(v, group.Lsh(group, 7*groups))
		groups++

		if b < 0x80 {
			break
		}
	}

	if uint(v.BitLen()) > maxBits {
		return nil, errs.ErrOverflow
	}

	return v, nil
}

// readErr normalizes end-of-stream conditions from a byte source into
// errs.ErrRead. Genuine I/O failures pass through untouched.
func readErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errs.ErrRead
	}

	return err
}
