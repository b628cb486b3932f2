package header

import (
	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/herald/internal/pool"
)

// Fingerprint returns the xxHash64 of the descriptor's canonical wire
// encoding.
//
// Two headers have the same fingerprint exactly when they are structurally
// equal (modulo hash collisions), so peers can compare expected shapes by
// exchanging eight bytes instead of whole descriptor trees.
func (h Header) Fingerprint() uint64 {
	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)

	buf.B = h.AppendTo(buf.B)

	return xxhash.Sum64(buf.B)
}
