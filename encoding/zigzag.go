package encoding

import "math/big"

// ZigZag maps a signed integer onto an unsigned integer of the same width,
// interleaving positive and negative values so small magnitudes of either
// sign produce small unsigned values: 0 -> 0, -1 -> 1, 1 -> 2, -2 -> 3.
//
// The mapping is bijective; UnZigZag is the exact inverse over the full
// signed range.
func ZigZag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63) //nolint:gosec
}

// UnZigZag reverses the ZigZag mapping.
func UnZigZag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1) //nolint:gosec
}

// ZigZagBig returns the ZigZag image of an arbitrary-precision signed
// integer: 2v for v >= 0, -2v-1 for v < 0. The argument is not modified.
func ZigZagBig(v *big.Int) *big.Int {
	u := new(big.Int).Lsh(v, 1)
	if v.Sign() < 0 {
		u.Neg(u)
		u.Sub(u, big.NewInt(1))
	}

	return u
}

// UnZigZagBig reverses ZigZagBig. The argument is not modified.
func UnZigZagBig(u *big.Int) *big.Int {
	v := new(big.Int).Rsh(u, 1)
	if u.Bit(0) == 1 {
		v.Neg(v)
		v.Sub(v, big.NewInt(1))
	}

	return v
}
