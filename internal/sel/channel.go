package sel

import (
	"github.com/screenview/svcore/internal/cipher"
	"github.com/screenview/svcore/internal/crypto"
	"github.com/screenview/svcore/internal/svsc"
)

// Channel is the SEL unreliable-channel cipher, keyed exactly once at
// session creation from the session triple (spec section 4.6):
// kdf2(hash(session_id || peer_id || peer_key)).
type Channel struct {
	peer *cipher.UnreliablePeer
}

// NewChannel derives the SEL unreliable cipher for triple. initiator
// distinguishes which of the two KDF outputs is this side's send key,
// mirroring the other side so each side's send key equals the peer's
// recv key (the same role-mirroring WPSKKA's dh() uses).
func NewChannel(triple *svsc.SessionTriple, initiator bool) (*Channel, error) {
	h := crypto.Hash(triple.SessionID[:], triple.PeerID[:], triple.PeerKey[:])
	a, b, err := crypto.KDF2(h[:])
	if err != nil {
		return nil, err
	}

	sendKey, recvKey := b, a
	if initiator {
		sendKey, recvKey = a, b
	}
	return &Channel{peer: cipher.NewUnreliablePeer(sendKey, recvKey)}, nil
}

// Wrap encrypts plaintext SVSC bytes for the unreliable channel,
// returning the ciphertext and the send counter to frame alongside it.
func (c *Channel) Wrap(plaintext []byte) (ciphertext []byte, counter uint64, err error) {
	return c.peer.Encrypt(plaintext)
}

// Unwrap decrypts an unreliable-channel SEL frame's payload.
func (c *Channel) Unwrap(counter uint64, ciphertext []byte) ([]byte, error) {
	return c.peer.Decrypt(counter, ciphertext)
}
