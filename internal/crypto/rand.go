package crypto

import "crypto/rand"

// RandomBytes returns n cryptographically random bytes. ECDH ephemeral
// scalars and the RVD unreliable-auth challenges route through this
// function; the srp subpackage reads crypto/rand directly for its
// usernames, salts and ephemerals.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
