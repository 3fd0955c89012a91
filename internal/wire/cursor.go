package wire

import (
	"encoding/binary"
	"unicode/utf8"
)

// Cursor is a read-only view over a byte buffer with a moving offset.
// It mirrors the offset-tracking style of a length-prefixed decoder:
// every Read method advances the cursor and fails with ErrEOF rather
// than panicking when the buffer is exhausted.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor wraps buf for sequential reads starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// Offset returns the current read offset.
func (c *Cursor) Offset() int {
	return c.off
}

// Bytes returns the unread tail of the buffer without consuming it.
func (c *Cursor) Bytes() []byte {
	return c.buf[c.off:]
}

func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, ErrEOF
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// ReadBool reads a 1-byte boolean (0 = false, 1 = true).
func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.take(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidBool
	}
}

// ReadU8 reads a single byte.
func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a little-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads a little-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64 reads a little-endian uint64.
func (c *Cursor) ReadU64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI64 reads a little-endian signed int64.
func (c *Cursor) ReadI64() (int64, error) {
	u, err := c.ReadU64()
	return int64(u), err
}

// ReadFixed reads exactly n raw bytes ([u8; N] fields).
func (c *Cursor) ReadFixed(n int) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// readLen reads an unsigned little-endian length of width bytes.
// width must be one of {1,2,3,4,8} per the wire format rules.
func (c *Cursor) readLen(width int) (uint64, error) {
	switch width {
	case 1:
		v, err := c.ReadU8()
		return uint64(v), err
	case 2:
		v, err := c.ReadU16()
		return uint64(v), err
	case 3:
		b, err := c.take(3)
		if err != nil {
			return 0, err
		}
		return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16, nil
	case 4:
		v, err := c.ReadU32()
		return uint64(v), err
	case 8:
		return c.ReadU64()
	default:
		return 0, ErrInvalidLengthWidth
	}
}

// ReadLenPrefixedBytes reads a length-prefixed (width bytes) byte vector.
func (c *Cursor) ReadLenPrefixedBytes(width int) ([]byte, error) {
	n, err := c.readLen(width)
	if err != nil {
		return nil, err
	}
	return c.ReadFixed(int(n))
}

// ReadGreedyBytes consumes all remaining bytes in the cursor.
func (c *Cursor) ReadGreedyBytes() ([]byte, error) {
	return c.ReadFixed(c.Remaining())
}

// ReadLenPrefixedString reads a length-prefixed (width bytes) UTF-8 string.
func (c *Cursor) ReadLenPrefixedString(width int) (string, error) {
	b, err := c.ReadLenPrefixedBytes(width)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidString
	}
	return string(b), nil
}

// ReadFixedString reads a fixed-length UTF-8 string with no length prefix.
func (c *Cursor) ReadFixedString(n int) (string, error) {
	b, err := c.ReadFixed(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidString
	}
	return string(b), nil
}
