package wpskka

import (
	"errors"

	"github.com/screenview/svcore/internal/wire"
)

// SRP sub-message discriminants. These travel inside AuthMessage.data
// (spec section 4.2: "the final proof is an HMAC..."); the spec treats
// this payload as opaque bytes and lets each side's state machine fix
// the ordering (HostHello always first, ClientHello always second,
// HostVerify always last), but a leading discriminant byte is added
// here for self-description and so the sub-protocol can be unit tested
// independently of the surrounding AuthMessage envelope.
const (
	srpHostHello   uint8 = 1
	srpClientHello uint8 = 2
	srpHostVerify  uint8 = 3
)

var errUnknownSRPMessage = errors.New("wpskka: unknown srp sub-message id")

// srpHostHello is the Host's first SRP message: the invented username
// and salt plus its public ephemeral B (spec section 9, "SRP 2048
// modulus and custom username").
type srpHostHelloMsg struct {
	Username []byte
	Salt     []byte
	PublicB  []byte
}

func (m *srpHostHelloMsg) encode() []byte {
	w := wire.NewWriter(64)
	w.WriteLenPrefixedBytes(m.Username, 1)
	w.WriteLenPrefixedBytes(m.Salt, 1)
	w.WriteLenPrefixedBytes(m.PublicB, 2)
	return w.Bytes()
}

func decodeSRPHostHello(c *wire.Cursor) (*srpHostHelloMsg, error) {
	username, err := c.ReadLenPrefixedBytes(1)
	if err != nil {
		return nil, err
	}
	salt, err := c.ReadLenPrefixedBytes(1)
	if err != nil {
		return nil, err
	}
	pubB, err := c.ReadLenPrefixedBytes(2)
	if err != nil {
		return nil, err
	}
	return &srpHostHelloMsg{Username: username, Salt: salt, PublicB: pubB}, nil
}

// srpClientHelloMsg is "ClientHello { a_pub, mac }" from spec section
// 4.2: mac = HMAC(kdf1(srp_K), client_ecdh_pub).
type srpClientHelloMsg struct {
	PublicA []byte
	MAC     [32]byte
}

func (m *srpClientHelloMsg) encode() []byte {
	w := wire.NewWriter(64)
	w.WriteLenPrefixedBytes(m.PublicA, 2)
	w.WriteFixed(m.MAC[:])
	return w.Bytes()
}

func decodeSRPClientHello(c *wire.Cursor) (*srpClientHelloMsg, error) {
	pubA, err := c.ReadLenPrefixedBytes(2)
	if err != nil {
		return nil, err
	}
	mac, err := c.ReadFixed(32)
	if err != nil {
		return nil, err
	}
	var out srpClientHelloMsg
	out.PublicA = pubA
	copy(out.MAC[:], mac)
	return &out, nil
}

// srpHostVerifyMsg is "HostVerify { mac }" from spec section 4.2: mac =
// HMAC(kdf1(srp_K), host_ecdh_pub).
type srpHostVerifyMsg struct {
	MAC [32]byte
}

func (m *srpHostVerifyMsg) encode() []byte {
	w := wire.NewWriter(64)
	w.WriteFixed(m.MAC[:])
	return w.Bytes()
}

func decodeSRPHostVerify(c *wire.Cursor) (*srpHostVerifyMsg, error) {
	mac, err := c.ReadFixed(32)
	if err != nil {
		return nil, err
	}
	var out srpHostVerifyMsg
	copy(out.MAC[:], mac)
	return &out, nil
}

// encodeAuthMessage wraps one SRP sub-message body (already including
// its discriminant byte) into an AuthMessage wire message.
func encodeAuthMessage(id uint8, body []byte) *AuthMessage {
	data := make([]byte, 0, 1+len(body))
	data = append(data, id)
	data = append(data, body...)
	return &AuthMessage{Data: data}
}

// decodeAuthMessage peeks the SRP sub-discriminant inside an
// AuthMessage payload and decodes the matching sub-message.
func decodeAuthMessage(data []byte) (interface{}, error) {
	if len(data) < 1 {
		return nil, errUnknownSRPMessage
	}
	c := wire.NewCursor(data[1:])
	switch data[0] {
	case srpHostHello:
		return decodeSRPHostHello(c)
	case srpClientHello:
		return decodeSRPClientHello(c)
	case srpHostVerify:
		return decodeSRPHostVerify(c)
	default:
		return nil, errUnknownSRPMessage
	}
}
