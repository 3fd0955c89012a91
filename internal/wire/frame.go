package wire

import (
	"encoding/binary"
	"errors"
	"io"
)

// LengthPrefixSize is the width, in bytes, of the top-level framing
// length prefix used by IoHandle on the reliable stream (spec section
// 4.1, "Message framing"). Inner tunneled layers (WPSKKA transport
// messages, SVSC session-data) use their own declared widths.
const LengthPrefixSize = 2

// MaxFrameSize bounds a single framed message body. It exists purely
// as a sanity check against a corrupt or malicious length prefix; it is
// generous enough to never reject a legitimate frame (display names,
// frame-data cells, and clipboard payloads are all far smaller).
const MaxFrameSize = 1 << 20

var (
	// ErrFrameTooLong is returned by WriteFrame and EncodeDatagram when a
	// body is longer than the 2-byte length prefix can express (0xFFFF).
	ErrFrameTooLong = errors.New("wire: framed message exceeds maximum size")
	// ErrDatagramLengthMismatch is returned when a datagram's payload length
	// disagrees with its length prefix; the caller must drop the datagram.
	ErrDatagramLengthMismatch = errors.New("wire: datagram length mismatch")
)

// StreamWriter frames messages onto a reliable byte stream with a
// 2-byte little-endian length prefix, mirroring the transport-level
// framing used by IoHandle's reliable sub-handle.
type StreamWriter struct {
	w io.Writer
}

// NewStreamWriter wraps w for length-prefixed frame writes.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

// WriteFrame writes body prefixed by its 2-byte little-endian length.
func (sw *StreamWriter) WriteFrame(body []byte) error {
	if len(body) > 0xFFFF {
		return ErrFrameTooLong
	}
	var prefix [LengthPrefixSize]byte
	binary.LittleEndian.PutUint16(prefix[:], uint16(len(body)))
	if _, err := sw.w.Write(prefix[:]); err != nil {
		return err
	}
	_, err := sw.w.Write(body)
	return err
}

// StreamReader reads length-prefixed frames off a reliable byte stream.
type StreamReader struct {
	r io.Reader
}

// NewStreamReader wraps r for length-prefixed frame reads.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{r: r}
}

// ReadFrame reads exactly one length-prefixed frame body. Returns io.EOF
// (unwrapped) when the stream closes cleanly between frames.
func (sr *StreamReader) ReadFrame() ([]byte, error) {
	var prefix [LengthPrefixSize]byte
	if _, err := io.ReadFull(sr.r, prefix[:]); err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint16(prefix[:])
	if int(n) > MaxFrameSize {
		return nil, ErrFrameTooLong
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(sr.r, body); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, err
		}
		return nil, err
	}
	return body, nil
}

// EncodeDatagram frames a single unreliable-channel message with the
// same 2-byte length prefix convention used on the reliable stream.
func EncodeDatagram(body []byte) ([]byte, error) {
	if len(body) > 0xFFFF {
		return nil, ErrFrameTooLong
	}
	out := make([]byte, LengthPrefixSize+len(body))
	binary.LittleEndian.PutUint16(out, uint16(len(body)))
	copy(out[LengthPrefixSize:], body)
	return out, nil
}

// DecodeDatagram validates and strips the length prefix from a received
// datagram. Per spec section 4.1, a datagram whose payload length does
// not match its prefix is dropped (ErrDatagramLengthMismatch) and must
// produce no state change in the caller.
func DecodeDatagram(raw []byte) ([]byte, error) {
	if len(raw) < LengthPrefixSize {
		return nil, ErrDatagramLengthMismatch
	}
	n := binary.LittleEndian.Uint16(raw[:LengthPrefixSize])
	body := raw[LengthPrefixSize:]
	if int(n) != len(body) {
		return nil, ErrDatagramLengthMismatch
	}
	return body, nil
}
