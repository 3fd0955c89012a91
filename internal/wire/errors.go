// Package wire implements the bit-exact reader/writer for ScreenView's
// private binary wire format: little-endian integers, length-prefixed
// and greedy byte/vector fields, bool-prefixed and condition-gated
// options, and tag-discriminated message enums.
package wire

import "errors"

// Decode/encode errors. These are sentinel errors so callers can match
// with errors.Is even after a layer wraps them with additional context.
var (
	// ErrEOF is returned when a read would consume past the end of the cursor.
	ErrEOF = errors.New("wire: unexpected end of buffer")

	// ErrInvalidBool is returned when a bool byte is neither 0 nor 1.
	ErrInvalidBool = errors.New("wire: invalid bool byte")

	// ErrInvalidString is returned when string bytes are not valid UTF-8.
	ErrInvalidString = errors.New("wire: invalid UTF-8 string")

	// ErrInvalidEnum is returned when an enum discriminant has no known variant.
	ErrInvalidEnum = errors.New("wire: invalid enum discriminant")

	// ErrBadMessageID is returned when a top-level message discriminant is unknown.
	ErrBadMessageID = errors.New("wire: unknown message id")

	// ErrLengthTooLong is returned when a length does not fit the declared prefix width.
	ErrLengthTooLong = errors.New("wire: length exceeds prefix width")

	// ErrInvalidLengthWidth is returned when a length-prefix width is not one of {1,2,3,4,8}.
	ErrInvalidLengthWidth = errors.New("wire: invalid length-prefix width")
)
