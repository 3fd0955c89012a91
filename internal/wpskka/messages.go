// Package wpskka implements the WPSKKA layer: ECDH key exchange plus
// SRP password authentication, producing the reliable and unreliable
// AEAD cipher peers the higher (RVD) layer tunnels through (spec
// section 4.4).
package wpskka

import (
	"errors"

	"github.com/screenview/svcore/internal/wire"
)

// Message discriminants (spec section 8, WPSKKA catalog).
const (
	MsgKeyExchange                  uint8 = 1
	MsgAuthScheme                   uint8 = 2
	MsgTryAuth                      uint8 = 3
	MsgAuthMessage                  uint8 = 4
	MsgAuthResult                   uint8 = 5
	MsgTransportDataMessageReliable uint8 = 6
	MsgTransportDataMessageUnreliable uint8 = 7
)

// AuthScheme is the authentication-method enum (spec section 3,
// "AuthScheme variants"). Values are this implementation's choice: the
// spec names the variants but not their wire encoding.
type AuthSchemeKind uint8

const (
	SchemeNone       AuthSchemeKind = 0
	SchemeSrpDynamic AuthSchemeKind = 1
	SchemeSrpStatic  AuthSchemeKind = 2
	SchemePublicKey  AuthSchemeKind = 3
)

var ErrUnknownMessageID = errors.New("wpskka: unknown message id")

// KeyExchange carries one side's Curve25519 public key.
type KeyExchange struct {
	PublicKey [32]byte
}

func (m *KeyExchange) MessageID() uint8 { return MsgKeyExchange }
func (m *KeyExchange) Marshal(w *wire.Writer) error {
	w.WriteFixed(m.PublicKey[:])
	return nil
}
func (m *KeyExchange) Unmarshal(c *wire.Cursor) error {
	b, err := c.ReadFixed(32)
	if err != nil {
		return err
	}
	copy(m.PublicKey[:], b)
	return nil
}

// AuthScheme advertises the set of schemes the host supports.
type AuthScheme struct {
	Schemes []AuthSchemeKind
}

func (m *AuthScheme) MessageID() uint8 { return MsgAuthScheme }
func (m *AuthScheme) Marshal(w *wire.Writer) error {
	raw := make([]byte, len(m.Schemes))
	for i, s := range m.Schemes {
		raw[i] = uint8(s)
	}
	return w.WriteLenPrefixedBytes(raw, 1)
}
func (m *AuthScheme) Unmarshal(c *wire.Cursor) error {
	raw, err := c.ReadLenPrefixedBytes(1)
	if err != nil {
		return err
	}
	schemes := make([]AuthSchemeKind, len(raw))
	for i, b := range raw {
		schemes[i] = AuthSchemeKind(b)
	}
	m.Schemes = schemes
	return nil
}

// TryAuth is the client's chosen scheme.
type TryAuth struct {
	AuthScheme AuthSchemeKind
}

func (m *TryAuth) MessageID() uint8 { return MsgTryAuth }
func (m *TryAuth) Marshal(w *wire.Writer) error {
	w.WriteU8(uint8(m.AuthScheme))
	return nil
}
func (m *TryAuth) Unmarshal(c *wire.Cursor) error {
	v, err := c.ReadU8()
	m.AuthScheme = AuthSchemeKind(v)
	return err
}

// AuthMessage carries one opaque step of the chosen auth sub-protocol
// (e.g. an SRP HostHello/ClientHello/HostVerify payload).
type AuthMessage struct {
	Data []byte
}

func (m *AuthMessage) MessageID() uint8 { return MsgAuthMessage }
func (m *AuthMessage) Marshal(w *wire.Writer) error {
	return w.WriteLenPrefixedBytes(m.Data, 2)
}
func (m *AuthMessage) Unmarshal(c *wire.Cursor) error {
	b, err := c.ReadLenPrefixedBytes(2)
	if err != nil {
		return err
	}
	m.Data = b
	return nil
}

// AuthResult is emitted by the host after verifying the auth
// sub-protocol; kept in the catalog for completeness but the host
// never actually sends it (AuthSuccessful/AuthFailed informs carry the
// outcome instead — see DESIGN.md).
type AuthResult struct {
	OK bool
}

func (m *AuthResult) MessageID() uint8 { return MsgAuthResult }
func (m *AuthResult) Marshal(w *wire.Writer) error {
	w.WriteBool(m.OK)
	return nil
}
func (m *AuthResult) Unmarshal(c *wire.Cursor) error {
	ok, err := c.ReadBool()
	m.OK = ok
	return err
}

// TransportDataMessageReliable tunnels a reliable-cipher ciphertext.
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

// TransportDataMessageUnreliable tunnels an unreliable-cipher
// ciphertext alongside its send counter.
type TransportDataMessageUnreliable struct {
	Counter uint64
	Data    []byte
}

func (m *TransportDataMessageUnreliable) MessageID() uint8 {
	return MsgTransportDataMessageUnreliable
}
func (m *TransportDataMessageUnreliable) Marshal(w *wire.Writer) error {
	w.WriteU64(m.Counter)
	w.WriteGreedyBytes(m.Data)
	return nil
}
func (m *TransportDataMessageUnreliable) Unmarshal(c *wire.Cursor) error {
	var err error
	if m.Counter, err = c.ReadU64(); err != nil {
		return err
	}
	b, err := c.ReadGreedyBytes()
	if err != nil {
		return err
	}
	m.Data = b
	return nil
}

// Decode peeks the discriminant in buf and decodes the matching
// WPSKKA message type.
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
	case MsgKeyExchange:
		m = &KeyExchange{}
	case MsgAuthScheme:
		m = &AuthScheme{}
	case MsgTryAuth:
		m = &TryAuth{}
	case MsgAuthMessage:
		m = &AuthMessage{}
	case MsgAuthResult:
		m = &AuthResult{}
	case MsgTransportDataMessageReliable:
		m = &TransportDataMessageReliable{}
	case MsgTransportDataMessageUnreliable:
		m = &TransportDataMessageUnreliable{}
	default:
		return nil, ErrUnknownMessageID
	}

	if err := m.Unmarshal(c); err != nil {
		return nil, err
	}
	return m, nil
}

// Encode serializes a WPSKKA message with its leading discriminant.
func Encode(m wire.Message) ([]byte, error) {
	return wire.Encode(m)
}
