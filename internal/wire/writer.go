package wire

import "encoding/binary"

// Writer accumulates encoded bytes for a single message. Its methods
// mirror Cursor's read methods one-for-one so a message type's
// Marshal/Unmarshal pair reads as a straight mirror image.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer. sizeHint pre-allocates capacity.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the accumulated encoded buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteBool writes a 1-byte boolean.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// WriteU8 writes a single byte.
func (w *Writer) WriteU8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteU16 writes a little-endian uint16.
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU32 writes a little-endian uint32.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU64 writes a little-endian uint64.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteI64 writes a little-endian signed int64.
func (w *Writer) WriteI64(v int64) {
	w.WriteU64(uint64(v))
}

// WriteFixed writes raw bytes with no length prefix ([u8; N] fields).
// The caller is responsible for ensuring len(b) matches the declared N.
func (w *Writer) WriteFixed(b []byte) {
	w.buf = append(w.buf, b...)
}

// writeLen writes an unsigned length in `width` little-endian bytes.
// Returns ErrLengthTooLong if n does not fit in width bytes.
func (w *Writer) writeLen(n int, width int) error {
	if n < 0 {
		return ErrLengthTooLong
	}
	u := uint64(n)
	switch width {
	case 1:
		if u > 0xFF {
			return ErrLengthTooLong
		}
		w.WriteU8(uint8(u))
	case 2:
		if u > 0xFFFF {
			return ErrLengthTooLong
		}
		w.WriteU16(uint16(u))
	case 3:
		if u > 0xFFFFFF {
			return ErrLengthTooLong
		}
		w.buf = append(w.buf, byte(u), byte(u>>8), byte(u>>16))
	case 4:
		if u > 0xFFFFFFFF {
			return ErrLengthTooLong
		}
		w.WriteU32(uint32(u))
	case 8:
		w.WriteU64(u)
	default:
		return ErrInvalidLengthWidth
	}
	return nil
}

// WriteLenPrefixedBytes writes a length-prefixed (width bytes) byte vector.
func (w *Writer) WriteLenPrefixedBytes(b []byte, width int) error {
	if err := w.writeLen(len(b), width); err != nil {
		return err
	}
	w.buf = append(w.buf, b...)
	return nil
}

// WriteGreedyBytes writes raw bytes with no length prefix at all,
// intended to be the last field in a message body.
func (w *Writer) WriteGreedyBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteLenPrefixedString writes a length-prefixed (width bytes) UTF-8 string.
func (w *Writer) WriteLenPrefixedString(s string, width int) error {
	return w.WriteLenPrefixedBytes([]byte(s), width)
}

// WriteFixedString writes a fixed-length UTF-8 string with no length prefix.
// The caller must ensure len(s) matches the declared fixed length.
func (w *Writer) WriteFixedString(s string) {
	w.buf = append(w.buf, s...)
}
