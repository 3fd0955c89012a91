package crypto

import "crypto/sha256"

// HashSize is the output length of the fixed hash function.
const HashSize = sha256.Size

// Hash computes SHA-256 over the concatenation of parts. This backs
// hash(x1 || x2 || ...) from spec section 4.2, used by LowerSignal to
// derive the SEL unreliable cipher key from the session triple
// (session_id, peer_id, peer_key).
func Hash(parts ...[]byte) [HashSize]byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [HashSize]byte
	copy(out[:], h.Sum(nil))
	return out
}
