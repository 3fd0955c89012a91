package wpskka

import (
	"github.com/pion/logging"

	"github.com/screenview/svcore/internal/cipher"
	"github.com/screenview/svcore/internal/crypto"
	"github.com/screenview/svcore/internal/crypto/srp"
	"github.com/screenview/svcore/internal/svlog"
)

// HostState is the WPSKKA Host's handshake state (spec section 4.4).
type HostState int

const (
	HostPreAuthSelect HostState = iota
	HostIsAuthenticating
	HostAuthenticated
)

// HostEventKind enumerates the informs the Host WPSKKA handler emits
// to the embedder/higher layer.
type HostEventKind int

const (
	HostEventAuthSuccessful HostEventKind = iota
	HostEventAuthFailed
)

// HostEvent is one inform emitted by the Host handshake.
type HostEvent struct {
	Kind HostEventKind
}

// Host runs the WPSKKA authenticator on behalf of the Host peer role:
// it advertises auth schemes, drives the SRP server role (simulating
// both SRP roles as spec section 4.2 describes), and installs the
// reliable/unreliable cipher peers on success.
type Host struct {
	state HostState

	kp      *crypto.KeyPair
	peerPub []byte

	schemes   []AuthSchemeKind
	passwords map[AuthSchemeKind][]byte
	scheme    AuthSchemeKind
	srpHost   *srp.HostRole

	reliable           *cipher.ReliablePeer
	unreliable         *cipher.UnreliablePeer
	recvReliableCounter uint64

	log logging.LeveledLogger
}

// NewHost generates a fresh ECDH keypair and returns the KeyExchange
// message the Host sends first, before entering PreAuthSelect. schemes
// is the set of AuthScheme variants advertised; passwords supplies the
// configured password for SrpStatic and/or SrpDynamic, keyed by
// AuthSchemeKind (absent entries mean that scheme cannot be selected).
func NewHost(schemes []AuthSchemeKind, passwords map[AuthSchemeKind][]byte, loggerFactory logging.LoggerFactory) (*Host, *KeyExchange, error) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	h := &Host{
		state:     HostPreAuthSelect,
		kp:        kp,
		schemes:   schemes,
		passwords: passwords,
		log:       svlog.New(loggerFactory, "wpskka-host"),
	}
	var pub [32]byte
	copy(pub[:], kp.PublicKey())
	return h, &KeyExchange{PublicKey: pub}, nil
}

func (h *Host) supports(scheme AuthSchemeKind) bool {
	for _, s := range h.schemes {
		if s == scheme {
			return true
		}
	}
	return false
}

// HandleKeyExchange stores the client's public key (received in
// response to the Host's own KeyExchange) and returns the AuthScheme
// advertisement.
func (h *Host) HandleKeyExchange(msg *KeyExchange) (*AuthScheme, error) {
	if h.state != HostPreAuthSelect {
		return nil, ErrWrongMessageForState
	}
	h.peerPub = append([]byte(nil), msg.PublicKey[:]...)
	return &AuthScheme{Schemes: h.schemes}, nil
}

// HandleTryAuth processes the client's chosen scheme. For SRP schemes
// it instantiates the host-side SRP role and returns the first SRP
// message (HostHello) wrapped in an AuthMessage. For None it treats
// the ECDH exchange alone as authentication and installs the cipher
// peers immediately.
func (h *Host) HandleTryAuth(msg *TryAuth) (*AuthMessage, *HostEvent, error) {
	if h.state != HostPreAuthSelect {
		return nil, nil, ErrWrongMessageForState
	}
	if !h.supports(msg.AuthScheme) {
		return nil, nil, ErrBadAuthSchemeType
	}

	switch msg.AuthScheme {
	case SchemeNone:
		h.scheme = SchemeNone
		if err := h.installKeys(); err != nil {
			return nil, nil, err
		}
		h.state = HostAuthenticated
		return nil, &HostEvent{Kind: HostEventAuthSuccessful}, nil

	case SchemeSrpStatic, SchemeSrpDynamic:
		password, ok := h.passwords[msg.AuthScheme]
		if !ok {
			return nil, nil, ErrNoPassword
		}
		verifier, err := srp.GenerateVerifier(srp.Group2048, password)
		if err != nil {
			return nil, nil, err
		}
		role, err := srp.NewHostRole(srp.Group2048, verifier)
		if err != nil {
			return nil, nil, err
		}
		h.scheme = msg.AuthScheme
		h.srpHost = role
		h.state = HostIsAuthenticating

		hello := &srpHostHelloMsg{Username: verifier.Username, Salt: verifier.Salt, PublicB: role.PublicB()}
		return encodeAuthMessage(srpHostHello, hello.encode()), nil, nil

	default:
		return nil, nil, ErrBadAuthSchemeType
	}
}

// HandleAuthMessage processes the client's ClientHello. On MAC success
// it installs the cipher peers, transitions to Authenticated, and
// returns HostVerify plus AuthSuccessful. On MAC failure it emits
// AuthFailed and returns to PreAuthSelect, allowing a retry TryAuth.
func (h *Host) HandleAuthMessage(msg *AuthMessage) (*AuthMessage, *HostEvent, error) {
	if h.state != HostIsAuthenticating {
		return nil, nil, ErrWrongMessageForState
	}
	inner, err := decodeAuthMessage(msg.Data)
	if err != nil {
		return nil, nil, err
	}
	clientHello, ok := inner.(*srpClientHelloMsg)
	if !ok {
		return nil, nil, ErrWrongMessageForState
	}

	if err := h.srpHost.ComputeSessionKey(clientHello.PublicA); err != nil {
		h.state = HostPreAuthSelect
		return nil, &HostEvent{Kind: HostEventAuthFailed}, nil
	}

	k := h.srpHost.SessionKey()
	macKey, err := crypto.KDF1(k[:])
	if err != nil {
		return nil, nil, err
	}
	if !crypto.HMACVerify(macKey[:], h.peerPub, clientHello.MAC[:]) {
		h.state = HostPreAuthSelect
		return nil, &HostEvent{Kind: HostEventAuthFailed}, nil
	}

	verify := &srpHostVerifyMsg{}
	copy(verify.MAC[:], crypto.HMAC(macKey[:], h.kp.PublicKey()))

	if err := h.installKeys(); err != nil {
		return nil, nil, err
	}
	h.state = HostAuthenticated
	return encodeAuthMessage(srpHostVerify, verify.encode()), &HostEvent{Kind: HostEventAuthSuccessful}, nil
}

// installKeys derives the four AEAD keys from (host_priv, client_pub)
// in initiator order, since the Host sends KeyExchange first (spec
// section 4.2: "Host and Client assign the four outputs to opposite
// roles").
func (h *Host) installKeys() error {
	ek, err := crypto.DeriveExchangeKeys(h.kp, h.peerPub, false)
	if err != nil {
		return err
	}
	reliable, err := cipher.NewReliablePeer(ek.SendReliable, ek.RecvReliable)
	if err != nil {
		return err
	}
	h.reliable = reliable
	h.unreliable = cipher.NewUnreliablePeer(ek.SendUnreliable, ek.RecvUnreliable)
	return nil
}

// WrapReliable encrypts plaintext under the reliable cipher peer.
func (h *Host) WrapReliable(plaintext []byte) (*TransportDataMessageReliable, error) {
	if h.state != HostAuthenticated {
		return nil, ErrNotAuthenticated
	}
	ct, err := h.reliable.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}
	return &TransportDataMessageReliable{Data: ct}, nil
}

// UnwrapReliable decrypts an inbound reliable-channel message. The
// reliable wire format carries no counter (the transport already
// guarantees order), so the handler tracks the expected counter itself
// and advances it by one per successfully decrypted message.
func (h *Host) UnwrapReliable(msg *TransportDataMessageReliable) ([]byte, error) {
	if h.state != HostAuthenticated {
		return nil, ErrNotAuthenticated
	}
	pt, err := h.reliable.Decrypt(h.recvReliableCounter, msg.Data)
	if err != nil {
		return nil, err
	}
	h.recvReliableCounter++
	return pt, nil
}

// WrapUnreliable encrypts plaintext under the unreliable cipher peer,
// returning the counter the receiver must see alongside it.
func (h *Host) WrapUnreliable(plaintext []byte) (*TransportDataMessageUnreliable, error) {
	if h.state != HostAuthenticated {
		return nil, ErrNotAuthenticated
	}
	ct, counter, err := h.unreliable.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}
	return &TransportDataMessageUnreliable{Counter: counter, Data: ct}, nil
}

// UnwrapUnreliable decrypts an inbound unreliable-channel message,
// validating it against the replay window.
func (h *Host) UnwrapUnreliable(msg *TransportDataMessageUnreliable) ([]byte, error) {
	if h.state != HostAuthenticated {
		return nil, ErrNotAuthenticated
	}
	return h.unreliable.Decrypt(msg.Counter, msg.Data)
}

// State returns the current handshake state.
func (h *Host) State() HostState { return h.state }
