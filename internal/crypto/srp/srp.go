package srp

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// UsernameSize and SaltSize are the lengths of the random username and
// salt the Host invents at Init time (spec section 9, "SRP 2048
// modulus and custom username").
const (
	UsernameSize   = 16
	SaltSize       = 16
	EphemeralSize  = 32 // minimum entropy for private ephemeral values a, b
	SessionKeySize = 32 // length of the derived SRP session key K
)

var (
	ErrInvalidPublicEphemeral = errors.New("srp: invalid public ephemeral (A or B mod N == 0)")
	ErrMACMismatch            = errors.New("srp: verification MAC mismatch")
)

// Verifier is what the Host derives once at Init and keeps secret; it
// never crosses the wire. Username and Salt are sent to the peer.
type Verifier struct {
	Username []byte
	Salt     []byte
	V        *big.Int // g^x mod N
}

// computeX implements x = H(salt || H(username || ":" || password)),
// the standard SRP-6a private key derivation (RFC 5054 section 2.5.3).
func computeX(grp *Group, username, salt, password []byte) *big.Int {
	inner := srpHash(username, []byte(":"), password)
	outer := srpHash(salt, inner[:])
	return new(big.Int).SetBytes(outer[:])
}

// GenerateVerifier simulates SRP registration: it invents a random
// username and salt, derives x from them and password, and computes
// the verifier v = g^x mod N. This is the Host-side `srp(password)`
// Init step from spec section 4.2 — the Host never discloses v, only
// Username and Salt, exactly as a registered SRP server would.
func GenerateVerifier(grp *Group, password []byte) (*Verifier, error) {
	username := make([]byte, UsernameSize)
	if _, err := rand.Read(username); err != nil {
		return nil, err
	}
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	x := computeX(grp, username, salt, password)
	v := new(big.Int).Exp(grp.G, x, grp.N)
	return &Verifier{Username: username, Salt: salt, V: v}, nil
}

// HostRole runs the SRP-6a server side of the exchange on behalf of
// the Host (spec section 4.2/4.4: "Host simulates both SRP roles").
type HostRole struct {
	grp      *Group
	verifier *Verifier
	b        *big.Int
	pubB     *big.Int
	sessionK [SessionKeySize]byte
}

// NewHostRole starts the server role with a freshly generated verifier.
func NewHostRole(grp *Group, verifier *Verifier) (*HostRole, error) {
	b, err := randScalar(grp)
	if err != nil {
		return nil, err
	}
	// B = k*v + g^b mod N
	kv := new(big.Int).Mul(grp.K, verifier.V)
	gb := new(big.Int).Exp(grp.G, b, grp.N)
	pubB := new(big.Int).Mod(new(big.Int).Add(kv, gb), grp.N)

	return &HostRole{grp: grp, verifier: verifier, b: b, pubB: pubB}, nil
}

// PublicB returns the host's public ephemeral value B, sent to the
// peer as part of HostHello.
func (h *HostRole) PublicB() []byte {
	return pad(h.pubB, h.grp.Size())
}

// ComputeSessionKey completes the server-side SRP computation given
// the client's public ephemeral A, producing the shared session key K.
// Must be called before VerifyClientProof.
func (h *HostRole) ComputeSessionKey(clientA []byte) error {
	a := new(big.Int).SetBytes(clientA)
	if new(big.Int).Mod(a, h.grp.N).Sign() == 0 {
		return ErrInvalidPublicEphemeral
	}
	u := computeU(h.grp, a, h.pubB)

	// S = (A * v^u)^b mod N
	vu := new(big.Int).Exp(h.verifier.V, u, h.grp.N)
	base := new(big.Int).Mod(new(big.Int).Mul(a, vu), h.grp.N)
	s := new(big.Int).Exp(base, h.b, h.grp.N)

	h.sessionK = srpHash(pad(s, h.grp.Size()))
	return nil
}

// SessionKey returns the derived 32-byte SRP session key K.
func (h *HostRole) SessionKey() [SessionKeySize]byte {
	return h.sessionK
}

// ClientRole runs the SRP-6a client side on behalf of the WPSKKA peer
// entering a password (either typed by a user, in response to a
// PasswordPrompt inform, or a preconfigured static password).
type ClientRole struct {
	grp      *Group
	password []byte
	a        *big.Int
	pubA     *big.Int
	sessionK [SessionKeySize]byte
}

// NewClientRole generates the client's ephemeral keypair (a, A).
func NewClientRole(grp *Group, password []byte) (*ClientRole, error) {
	a, err := randScalar(grp)
	if err != nil {
		return nil, err
	}
	pubA := new(big.Int).Exp(grp.G, a, grp.N)
	return &ClientRole{grp: grp, password: password, a: a, pubA: pubA}, nil
}

// PublicA returns the client's public ephemeral value A.
func (c *ClientRole) PublicA() []byte {
	return pad(c.pubA, c.grp.Size())
}

// ComputeSessionKey completes the client-side SRP computation given
// the host's username, salt, and public ephemeral B.
func (c *ClientRole) ComputeSessionKey(username, salt, hostB []byte) error {
	b := new(big.Int).SetBytes(hostB)
	if new(big.Int).Mod(b, c.grp.N).Sign() == 0 {
		return ErrInvalidPublicEphemeral
	}
	u := computeU(c.grp, c.pubA, b)
	x := computeX(c.grp, username, salt, c.password)

	// S = (B - k*g^x)^(a + u*x) mod N
	kgx := new(big.Int).Mul(c.grp.K, new(big.Int).Exp(c.grp.G, x, c.grp.N))
	base := new(big.Int).Mod(new(big.Int).Sub(b, kgx), c.grp.N)
	if base.Sign() < 0 {
		base.Add(base, c.grp.N)
	}
	exp := new(big.Int).Add(c.a, new(big.Int).Mul(u, x))
	s := new(big.Int).Exp(base, exp, c.grp.N)

	c.sessionK = srpHash(pad(s, c.grp.Size()))
	return nil
}

// SessionKey returns the derived 32-byte SRP session key K.
func (c *ClientRole) SessionKey() [SessionKeySize]byte {
	return c.sessionK
}

func computeU(grp *Group, a, b *big.Int) *big.Int {
	size := grp.Size()
	h := srpHash(pad(a, size), pad(b, size))
	return new(big.Int).SetBytes(h[:])
}

func randScalar(grp *Group) (*big.Int, error) {
	buf := make([]byte, EphemeralSize)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(buf), nil
}
