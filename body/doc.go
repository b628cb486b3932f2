// Package body implements the value codec of the herald format.
//
// A body stream is the concatenation of per-value encodings with no
// envelope, magic number or delimiter: both sides agree on each value's
// shape out of band (typically by exchanging a header descriptor) and the
// decoder consumes exactly the bytes its value needs, leaving the cursor at
// the start of the next value.
//
// Encoder appends encodings to a pooled in-memory buffer; Decoder consumes
// them from any sequential io.Reader. Both offer one method per kind
// (EncodeBool/DecodeBool, EncodeString/DecodeString, ...) for callers whose
// shape is known statically, plus EncodeValue/DecodeValue, which walk a
// header.Header descriptor and dispatch dynamically.
//
// Every decode failure wraps a sentinel from the errs package; a truncated
// source always surfaces errs.ErrRead, never a partial value.
package body
