package srp

import "crypto/sha256"

// srpHash is the fixed hash used throughout the group's internal
// arithmetic (computing k, u, x, and the session key K). It is
// independent of, and not to be confused with, the WPSKKA-level
// HMAC binding in the parent crypto package.
func srpHash(parts ...[]byte) [sha256.Size]byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
