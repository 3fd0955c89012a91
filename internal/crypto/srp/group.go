// Package srp implements the balanced SRP-6a authenticator used by
// WPSKKA (spec section 4.2/4.4). It is built on top of the standard
// asymmetric SRP-6a roles (client/server) fixed to a single 2048-bit
// group: the Host plays the server role and additionally simulates the
// verifier-registration step at Init time (it never discloses the
// verifier; only the random username and salt it invented are sent to
// the peer, exactly as a real SRP server would send them during
// authentication).
package srp

import "math/big"

// Group2048 is the fixed 2048-bit SRP group from RFC 5054 Appendix A,
// the "2048-bit group". N is prime, g is a primitive root mod N.
var Group2048 = mustGroup(
	"AC6BDB41324A9A9BF166DE5E1389582FAF72B6651987EE07FC3192943DB56050A37329CBB4A099ED8193E0757767A13DD52312AB4B03310DCD7F48A9DA04FD50E8083969EDB767B0CF6095179A163AB3661A05FBD5FAAAE82918A9962F0B93B855F97993EC975EEAA80D740ADBF4FF747359D041D5C33EA71D281E446B14773BCA97B43A23FB801676BD207A436C6481F1D2B9078717461A5B9D32E688F87748544523B524B0D57D5EA77A2775D2ECFA032CFBDBF52FB3786160279004E57AE6AF874E7303CE53299CCC041C7BC308D82A5698F3A8D0C38271AE35F8E9DBFBB694B5C803D89F7AE435DE236D525F54759B65E372FCD68EF20FA7111F9E4AFF73",
	"2",
)

// Group holds the SRP group parameters plus the derived multiplier k.
type Group struct {
	N *big.Int
	G *big.Int
	K *big.Int // k = H(N || PAD(g))
}

func mustGroup(nHex, gDec string) *Group {
	n, ok := new(big.Int).SetString(nHex, 16)
	if !ok {
		panic("srp: invalid N")
	}
	g, ok := new(big.Int).SetString(gDec, 10)
	if !ok {
		panic("srp: invalid g")
	}
	k := computeK(n, g)
	return &Group{N: n, G: g, K: k}
}

func pad(x *big.Int, size int) []byte {
	b := x.Bytes()
	if len(b) >= size {
		return b
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}

func computeK(n, g *big.Int) *big.Int {
	size := (n.BitLen() + 7) / 8
	h := srpHash(pad(n, size), pad(g, size))
	return new(big.Int).SetBytes(h[:])
}

// Size returns the byte length of N.
func (grp *Group) Size() int {
	return (grp.N.BitLen() + 7) / 8
}
