// Package errs defines the closed set of error kinds surfaced by the herald
// header and body codecs.
//
// Every decode failure wraps one of these sentinels, so callers can classify
// failures with errors.Is and apply their own recovery policy: retry once
// more bytes arrive (ErrRead on a live stream), or abort (anything else on a
// closed buffer). Higher-level value-mapping layers report their own
// validation failures by wrapping these sentinels, or any error of their
// own, with fmt.Errorf and %w.
package errs

import "errors"

var (
	// ErrRead indicates the input source was exhausted before a value's
	// required bytes were fully consumed (truncated stream).
	ErrRead = errors.New("input exhausted before value was fully decoded")

	// ErrUnknownCode indicates a header byte did not match any reserved
	// kind code.
	ErrUnknownCode = errors.New("unknown header kind code")

	// ErrInvalidUTF8 indicates string bytes are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("string bytes are not valid UTF-8")

	// ErrOverflow indicates a decoded varint or arbitrary-precision value
	// exceeds the bit width or representable range of the target.
	ErrOverflow = errors.New("decoded value exceeds target range")

	// ErrNegative indicates a negative magnitude was supplied where an
	// unsigned encoding was required.
	ErrNegative = errors.New("negative value for unsigned encoding")

	// ErrInvalidValue indicates a value does not match the kind it was
	// encoded or declared as: a mismatched Go type handed to the dynamic
	// codec, or a malformed in-band byte such as a presence flag that is
	// neither 0 nor 1.
	ErrInvalidValue = errors.New("value does not match declared kind")
)
