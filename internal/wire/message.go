package wire

// Message is implemented by every wire message type in every protocol
// layer (SVSC, SEL, WPSKKA, RVD). MessageID returns the layer-scoped
// discriminant byte written immediately before the body.
type Message interface {
	MessageID() uint8
	Marshal(w *Writer) error
}

// Unmarshaler is implemented by a message body whose fields are parsed
// from a cursor positioned just after the discriminant byte.
type Unmarshaler interface {
	Unmarshal(c *Cursor) error
}

// Encode serializes a tagged message: 1-byte discriminant followed by
// the variant body.
func Encode(m Message) ([]byte, error) {
	w := NewWriter(64)
	w.WriteU8(m.MessageID())
	if err := m.Marshal(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// DecodeInto reads the discriminant from c, checks it against want, and
// if it matches, unmarshals the body into m. Callers typically call
// PeekMessageID first to pick the right concrete type to allocate.
func DecodeInto(c *Cursor, want uint8, m Unmarshaler) error {
	id, err := c.ReadU8()
	if err != nil {
		return err
	}
	if id != want {
		return ErrBadMessageID
	}
	return m.Unmarshal(c)
}

// PeekMessageID reads the leading discriminant byte of buf without
// consuming a caller-owned cursor, so a dispatcher can choose which
// concrete message type to decode into.
func PeekMessageID(buf []byte) (uint8, error) {
	if len(buf) < 1 {
		return 0, ErrEOF
	}
	return buf[0], nil
}
