// Package crypto provides the cryptographic primitives that key
// ScreenView's WPSKKA and SEL layers: a cryptographic RNG, Curve25519
// ECDH, HKDF-based key derivation, constant-time HMAC, and a balanced
// SRP-6a authenticator (in the srp subpackage).
package crypto

import "errors"

var (
	// ErrBadPublicKey is returned when a peer's ECDH public key does not
	// have the Curve25519 point length. Low-order points are caught later,
	// by the all-zero check that returns ErrAgreementFailed.
	ErrBadPublicKey = errors.New("crypto: invalid ECDH public key")

	// ErrAgreementFailed is returned when the ECDH scalar multiplication
	// produces a degenerate (all-zero) shared secret.
	ErrAgreementFailed = errors.New("crypto: ECDH key agreement failed")

	// ErrInvalidKeySize is returned when a key does not match its required length.
	ErrInvalidKeySize = errors.New("crypto: invalid key size")
)
