// Package sel implements the Signal Encryption Layer, the outer
// framing that multiplexes reliable and unreliable SVSC traffic
// through the session broker (spec section 4.6).
package sel

import (
	"github.com/screenview/svcore/internal/wire"
)

// Message discriminants for the SEL outer wrapper.
const (
	MsgTransportDataMessageReliable       uint8 = 0
	MsgTransportDataPeerMessageUnreliable uint8 = 1
	MsgTransportDataServerMessageUnreliable uint8 = 2
)

// TransportDataMessageReliable carries SVSC bytes over the already
// reliable transport (typically TLS); no SEL-level encryption applies.
type TransportDataMessageReliable struct {
	Data []byte
}

func (m *TransportDataMessageReliable) MessageID() uint8 { return MsgTransportDataMessageReliable }
func (m *TransportDataMessageReliable) Marshal(w *wire.Writer) error {
	w.WriteGreedyBytes(m.Data)
	return nil
}
func (m *TransportDataMessageReliable) Unmarshal(c *wire.Cursor) error {
	b, err := c.ReadGreedyBytes()
	if err != nil {
		return err
	}
	m.Data = b
	return nil
}

// TransportDataPeerMessageUnreliable carries SEL-encrypted bytes
// addressed to a specific peer over the unreliable channel.
type TransportDataPeerMessageUnreliable struct {
	PeerID  [16]byte
	Counter uint64
	Data    []byte
}

func (m *TransportDataPeerMessageUnreliable) MessageID() uint8 {
	return MsgTransportDataPeerMessageUnreliable
}
func (m *TransportDataPeerMessageUnreliable) Marshal(w *wire.Writer) error {
	w.WriteFixed(m.PeerID[:])
	w.WriteU64(m.Counter)
	w.WriteGreedyBytes(m.Data)
	return nil
}
func (m *TransportDataPeerMessageUnreliable) Unmarshal(c *wire.Cursor) error {
	b, err := c.ReadFixed(16)
	if err != nil {
		return err
	}
	copy(m.PeerID[:], b)
	if m.Counter, err = c.ReadU64(); err != nil {
		return err
	}
	body, err := c.ReadGreedyBytes()
	if err != nil {
		return err
	}
	m.Data = body
	return nil
}

// TransportDataServerMessageUnreliable is the server-originated
// variant: same shape as the peer variant minus the peer identifier,
// since the server is implicit.
type TransportDataServerMessageUnreliable struct {
	Counter uint64
	Data    []byte
}

func (m *TransportDataServerMessageUnreliable) MessageID() uint8 {
	return MsgTransportDataServerMessageUnreliable
}
func (m *TransportDataServerMessageUnreliable) Marshal(w *wire.Writer) error {
	w.WriteU64(m.Counter)
	w.WriteGreedyBytes(m.Data)
	return nil
}
func (m *TransportDataServerMessageUnreliable) Unmarshal(c *wire.Cursor) error {
	var err error
	if m.Counter, err = c.ReadU64(); err != nil {
		return err
	}
	body, err := c.ReadGreedyBytes()
	if err != nil {
		return err
	}
	m.Data = body
	return nil
}
