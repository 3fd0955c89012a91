package sel

import (
	"errors"

	"github.com/screenview/svcore/internal/wire"
)

// ErrUnknownMessageID is returned by Decode for a discriminant outside
// the SEL catalog.
var ErrUnknownMessageID = errors.New("sel: unknown message id")

// Encode serializes a SEL frame with its leading discriminant byte.
func Encode(m wire.Message) ([]byte, error) {
	return wire.Encode(m)
}

// Decode peeks the discriminant in buf and decodes the matching SEL
// frame type.
func Decode(buf []byte) (interface{}, error) {
	id, err := wire.PeekMessageID(buf)
	if err != nil {
		return nil, err
	}
	c := wire.NewCursor(buf[1:])

	var m interface {
		wire.Message
		wire.Unmarshaler
	}
	switch id {
	case MsgTransportDataMessageReliable:
		m = &TransportDataMessageReliable{}
	case MsgTransportDataPeerMessageUnreliable:
		m = &TransportDataPeerMessageUnreliable{}
	case MsgTransportDataServerMessageUnreliable:
		m = &TransportDataServerMessageUnreliable{}
	default:
		return nil, ErrUnknownMessageID
	}

	if err := m.Unmarshal(c); err != nil {
		return nil, err
	}
	return m, nil
}
