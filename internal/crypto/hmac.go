package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
)

// HMACSize is the output length of HMAC-SHA256.
const HMACSize = sha256.Size

// HMAC computes HMAC-SHA256(key, msg).
func HMAC(key, msg []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(msg)
	return h.Sum(nil)
}

// HMACVerify recomputes HMAC-SHA256(key, msg) and compares it against
// tag in constant time. This is used to verify the SRP-to-ECDH binding
// MACs in WPSKKA (spec section 4.4) and must never short-circuit on
// the first differing byte.
func HMACVerify(key, msg, tag []byte) bool {
	expected := HMAC(key, msg)
	return hmac.Equal(expected, tag)
}
