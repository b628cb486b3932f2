// Package encoding provides the variable-length integer primitives shared by
// the herald header and body codecs.
//
// Unsigned integers are encoded as canonical base-128 varints: the value is
// split into 7-bit groups, least-significant group first, and every byte
// except the last has its high (continuation) bit set. The encoder always
// emits the minimal number of groups, which is what gives the format its
// density guarantee. Signed integers are first mapped through the ZigZag
// transform so small magnitudes of either sign stay short on the wire.
//
// All functions are pure transformations over the supplied destination slice
// or byte source; the package holds no state and is safe for concurrent use.
package encoding
