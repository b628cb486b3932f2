// Package header implements the self-describing type descriptor of the
// herald format.
//
// A Header is a finite, recursively-defined tree naming a value's shape
// without carrying the value itself. Leaf kinds (Boolean, the fixed-width
// integers, String, ...) serialize as a single reserved code byte; composite
// kinds (Optional, Array, Map, Tuple) serialize as their code byte followed
// by their child descriptors, with Tuple adding a varint element count.
//
// Header and body streams are serialized completely independently: a body
// stream never embeds kind codes, so two parties exchange or agree on a
// Header out of band and then decode bodies positionally against it.
//
// The kind-to-code assignment is a fixed, closed table shared byte-for-byte
// by every implementation of the format; see the Kind constants. Reordering
// or extending the table breaks interoperability.
package header
