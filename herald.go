// Package herald provides a compact binary encoding for structured values
// with an optional self-describing type descriptor.
//
// A value serializes to a "body": a dense byte sequence decodable only by a
// party that already knows the value's shape. The shape itself can be
// exchanged as a "header": a recursive descriptor tree with its own,
// completely independent, byte encoding. There is no schema file, no
// envelope and no version byte; multiple values concatenate on one stream
// and decode with one call each.
//
// # Basic Usage
//
// A record type plugs into the codec by describing its own shape and
// encoding its fields in declared order:
//
//	import (
//	    "github.com/arloliu/herald"
//	    "github.com/arloliu/herald/body"
//	    "github.com/arloliu/herald/header"
//	)
//
//	type Sensor struct {
//	    Online bool
//	    Slot   uint8
//	    Name   string
//	}
//
//	func (s *Sensor) HeraldHeader() header.Header {
//	    return header.Tuple(header.Boolean(), header.UInt8(), header.String())
//	}
//
//	func (s *Sensor) MarshalHerald(enc *body.Encoder) error {
//	    enc.EncodeBool(s.Online)
//	    enc.EncodeUint8(s.Slot)
//	    return enc.EncodeString(s.Name)
//	}
//
//	func (s *Sensor) UnmarshalHerald(dec *body.Decoder) (err error) {
//	    if s.Online, err = dec.DecodeBool(); err != nil {
//	        return err
//	    }
//	    if s.Slot, err = dec.DecodeUint8(); err != nil {
//	        return err
//	    }
//	    s.Name, err = dec.DecodeString()
//	    return err
//	}
//
//	data, _ := herald.Marshal(&Sensor{Online: true, Slot: 3, Name: "intake"})
//	shape := herald.MarshalHeader(&Sensor{})
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the header and
// body packages, simplifying the most common use cases. For streaming,
// dynamic values and fine-grained control, use those packages directly.
package herald

import (
	"bytes"
	"io"

	"github.com/arloliu/herald/body"
	"github.com/arloliu/herald/endian"
	"github.com/arloliu/herald/header"
)

// Marshaler is implemented by record types that can describe their own shape
// and encode themselves. How the descriptor is produced — by hand, by a
// code generator, or by a reflection registry — is the implementer's
// business; the codec only consumes the tree.
type Marshaler interface {
	// HeraldHeader returns the descriptor of the type's wire shape.
	HeraldHeader() header.Header

	// MarshalHerald appends the receiver's body encoding to enc, fields in
	// declared order.
	MarshalHerald(enc *body.Encoder) error
}

// Unmarshaler is implemented by record types that can decode themselves
// from a body stream, consuming fields in declared order.
type Unmarshaler interface {
	UnmarshalHerald(dec *body.Decoder) error
}

// NewEncoder creates a body encoder with the little-endian interchange
// default.
func NewEncoder() *body.Encoder {
	return body.NewEncoder(endian.GetLittleEndianEngine())
}

// NewDecoder creates a body decoder over r with the little-endian
// interchange default.
func NewDecoder(r io.Reader) *body.Decoder {
	return body.NewDecoder(r, endian.GetLittleEndianEngine())
}

// Marshal encodes v's body and returns it as a fresh byte slice.
func Marshal(v Marshaler) ([]byte, error) {
	enc := NewEncoder()
	defer enc.Reset()

	if err := v.MarshalHerald(enc); err != nil {
		return nil, err
	}

	return bytes.Clone(enc.Bytes()), nil
}

// Unmarshal decodes one body from data into v. Trailing bytes are not an
// error: the format is positional and callers may concatenate values; use a
// body.Decoder directly to drain a multi-value stream.
func Unmarshal(data []byte, v Unmarshaler) error {
	return v.UnmarshalHerald(NewDecoder(bytes.NewReader(data)))
}

// MarshalHeader returns the wire encoding of v's shape descriptor. Header
// and body streams are serialized completely independently; callers choose
// whether and how to frame them together.
func MarshalHeader(v Marshaler) []byte {
	return v.HeraldHeader().Marshal()
}

// DecodeHeader reconstructs a shape descriptor from its wire encoding. The
// input must contain exactly one descriptor.
func DecodeHeader(data []byte) (header.Header, error) {
	return header.Unmarshal(data)
}
