package crypto

import (
	"crypto/subtle"

	"golang.org/x/crypto/curve25519"
)

// Curve25519 sizing constants (spec section 4.2).
const (
	// PrivateKeySize is the size of a Curve25519 scalar in bytes.
	PrivateKeySize = curve25519.ScalarSize
	// PublicKeySize is the size of a Curve25519 point in bytes.
	PublicKeySize = curve25519.PointSize
	// SharedSecretSize is the size of the raw ECDH agreement output.
	SharedSecretSize = curve25519.PointSize
)

// KeyPair is an ephemeral Curve25519 keypair, generated fresh for
// every WPSKKA key exchange. It is never persisted or reused across
// sessions.
type KeyPair struct {
	private [PrivateKeySize]byte
	public  [PublicKeySize]byte
}

// GenerateKeyPair creates a fresh ephemeral Curve25519 keypair using
// the core's cryptographic RNG. This implements keypair() from spec
// section 4.2.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := RandomBytes(PrivateKeySize)
	if err != nil {
		return nil, err
	}

	kp := &KeyPair{}
	copy(kp.private[:], priv)

	pub, err := curve25519.X25519(kp.private[:], curve25519.Basepoint)
	if err != nil {
		return nil, err
	}
	copy(kp.public[:], pub)
	return kp, nil
}

// PublicKey returns the 32-byte Curve25519 public key.
func (kp *KeyPair) PublicKey() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, kp.public[:])
	return out
}

// PrivateKey returns a copy of the 32-byte scalar. The agreement
// function below reads the scalar directly; callers outside this
// package should never need it.
func (kp *KeyPair) PrivateKey() []byte {
	out := make([]byte, PrivateKeySize)
	copy(out, kp.private[:])
	return out
}

// ECDH performs the scalar multiplication my_private * peer_public and
// returns the raw 32-byte shared secret. This implements the agreement
// half of dh() from spec section 4.2; callers feed the result through
// HKDF themselves (see DeriveExchangeKeys).
func (kp *KeyPair) ECDH(peerPublic []byte) ([]byte, error) {
	if len(peerPublic) != PublicKeySize {
		return nil, ErrBadPublicKey
	}
	secret, err := curve25519.X25519(kp.private[:], peerPublic)
	if err != nil {
		return nil, ErrAgreementFailed
	}
	// Reject the degenerate all-zero output (low-order point attack).
	var zero [SharedSecretSize]byte
	if subtle.ConstantTimeCompare(secret, zero[:]) == 1 {
		return nil, ErrAgreementFailed
	}
	return secret, nil
}
