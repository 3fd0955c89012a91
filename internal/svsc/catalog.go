package svsc

import (
	"errors"

	"github.com/screenview/svcore/internal/wire"
)

// ErrUnknownMessageID is returned by DecodeMessage for a discriminant
// outside the SVSC catalog.
var ErrUnknownMessageID = errors.New("svsc: unknown message id")

// Encode serializes an SVSC message with its leading discriminant
// byte, ready to be wrapped by SessionDataSend/an SEL frame.
func Encode(m wire.Message) ([]byte, error) {
	return wire.Encode(m)
}

// DecodeMessage peeks the discriminant in buf and decodes the matching
// SVSC message type.
func DecodeMessage(buf []byte) (interface{}, error) {
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
	case MsgProtocolVersion:
		m = &ProtocolVersion{}
	case MsgProtocolVersionResponse:
		m = &ProtocolVersionResponse{}
	case MsgLeaseRequest:
		m = &LeaseRequest{}
	case MsgLeaseResponse:
		m = &LeaseResponse{}
	case MsgLeaseExtensionRequest:
		m = &LeaseExtensionRequest{}
	case MsgLeaseExtensionResponse:
		m = &LeaseExtensionResponse{}
	case MsgEstablishSessionRequest:
		m = &EstablishSessionRequest{}
	case MsgEstablishSessionResponse:
		m = &EstablishSessionResponse{}
	case MsgEstablishSessionNotification:
		m = &EstablishSessionNotification{}
	case MsgSessionEnd:
		m = &SessionEnd{}
	case MsgSessionEndNotification:
		m = &SessionEndNotification{}
	case MsgSessionDataSend:
		m = &SessionDataSend{}
	case MsgSessionDataReceive:
		m = &SessionDataReceive{}
	case MsgKeepAlive:
		m = &KeepAlive{}
	default:
		return nil, ErrUnknownMessageID
	}

	if err := m.Unmarshal(c); err != nil {
		return nil, err
	}
	return m, nil
}
