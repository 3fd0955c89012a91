package wpskka

import (
	"github.com/pion/logging"

	"github.com/screenview/svcore/internal/cipher"
	"github.com/screenview/svcore/internal/crypto"
	"github.com/screenview/svcore/internal/crypto/srp"
	"github.com/screenview/svcore/internal/svlog"
)

// ClientState is the WPSKKA Client's handshake state (spec section
// 4.4, "Client state machine (mirror)").
type ClientState int

const (
	ClientKeyExchange ClientState = iota
	ClientChooseAnAuthScheme
	ClientIsAuthenticating
	ClientAuthenticated
)

// ClientEventKind enumerates the informs the Client WPSKKA handler
// emits to the embedder.
type ClientEventKind int

const (
	ClientEventAuthSchemeOffered ClientEventKind = iota
	ClientEventPasswordPrompt
	ClientEventAuthSuccessful
	ClientEventAuthFailed
)

// ClientEvent is one inform emitted by the Client handshake. Schemes
// is only populated for ClientEventAuthSchemeOffered.
type ClientEvent struct {
	Kind    ClientEventKind
	Schemes []AuthSchemeKind
}

// Client runs the WPSKKA authenticator on behalf of the Client peer
// role, mirroring Host's state machine.
type Client struct {
	state ClientState

	kp      *crypto.KeyPair
	peerPub []byte

	scheme          AuthSchemeKind
	srpClient       *srp.ClientRole
	pendingHostHello *srpHostHelloMsg

	reliable            *cipher.ReliablePeer
	unreliable          *cipher.UnreliablePeer
	recvReliableCounter uint64

	log logging.LeveledLogger
}

// NewClient generates a fresh ECDH keypair. The Client waits for the
// Host's KeyExchange before sending anything.
func NewClient(loggerFactory logging.LoggerFactory) (*Client, error) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return &Client{
		state: ClientKeyExchange,
		kp:    kp,
		log:   svlog.New(loggerFactory, "wpskka-client"),
	}, nil
}

// HandleKeyExchange responds to the Host's public key with the
// Client's own, transitioning to ChooseAnAuthScheme.
func (c *Client) HandleKeyExchange(msg *KeyExchange) (*KeyExchange, error) {
	if c.state != ClientKeyExchange {
		return nil, ErrWrongMessageForState
	}
	c.peerPub = append([]byte(nil), msg.PublicKey[:]...)
	c.state = ClientChooseAnAuthScheme

	var pub [32]byte
	copy(pub[:], c.kp.PublicKey())
	return &KeyExchange{PublicKey: pub}, nil
}

// HandleAuthScheme surfaces the Host's advertised schemes to the
// embedder, which chooses one via TryAuth.
func (c *Client) HandleAuthScheme(msg *AuthScheme) (*ClientEvent, error) {
	if c.state != ClientChooseAnAuthScheme {
		return nil, ErrWrongMessageForState
	}
	return &ClientEvent{Kind: ClientEventAuthSchemeOffered, Schemes: msg.Schemes}, nil
}

// TryAuth is called by the embedder once it has picked a scheme. For
// SchemeNone it installs the cipher peers immediately. For SRP schemes
// it only sends TryAuth and waits for the Host's HostHello.
func (c *Client) TryAuth(scheme AuthSchemeKind) (*TryAuth, *ClientEvent, error) {
	if c.state != ClientChooseAnAuthScheme {
		return nil, nil, ErrWrongMessageForState
	}

	switch scheme {
	case SchemeNone:
		c.scheme = SchemeNone
		if err := c.installKeys(); err != nil {
			return nil, nil, err
		}
		c.state = ClientAuthenticated
		return &TryAuth{AuthScheme: SchemeNone}, &ClientEvent{Kind: ClientEventAuthSuccessful}, nil

	case SchemeSrpStatic, SchemeSrpDynamic, SchemePublicKey:
		c.scheme = scheme
		c.state = ClientIsAuthenticating
		return &TryAuth{AuthScheme: scheme}, nil, nil

	default:
		return nil, nil, ErrBadAuthSchemeType
	}
}

// HandleAuthMessage processes one SRP protocol step from the Host. For
// HostHello it stashes the host's invented username/salt/B and emits
// PasswordPrompt, waiting for ProcessPassword. For HostVerify it
// checks the final MAC and completes or fails the handshake.
func (c *Client) HandleAuthMessage(msg *AuthMessage) (*AuthMessage, *ClientEvent, error) {
	if c.state != ClientIsAuthenticating {
		return nil, nil, ErrWrongMessageForState
	}
	inner, err := decodeAuthMessage(msg.Data)
	if err != nil {
		return nil, nil, err
	}

	switch m := inner.(type) {
	case *srpHostHelloMsg:
		c.pendingHostHello = m
		return nil, &ClientEvent{Kind: ClientEventPasswordPrompt}, nil

	case *srpHostVerifyMsg:
		if c.srpClient == nil {
			return nil, nil, ErrWrongMessageForState
		}
		k := c.srpClient.SessionKey()
		macKey, err := crypto.KDF1(k[:])
		if err != nil {
			return nil, nil, err
		}
		if !crypto.HMACVerify(macKey[:], c.peerPub, m.MAC[:]) {
			c.state = ClientChooseAnAuthScheme
			return nil, &ClientEvent{Kind: ClientEventAuthFailed}, nil
		}
		if err := c.installKeys(); err != nil {
			return nil, nil, err
		}
		c.state = ClientAuthenticated
		return nil, &ClientEvent{Kind: ClientEventAuthSuccessful}, nil

	default:
		return nil, nil, ErrWrongMessageForState
	}
}

// ProcessPassword answers a PasswordPrompt event: it instantiates the
// client-side SRP role, computes the session key against the stashed
// HostHello, and returns the ClientHello AuthMessage to send.
func (c *Client) ProcessPassword(password []byte) (*AuthMessage, error) {
	if c.state != ClientIsAuthenticating || c.pendingHostHello == nil {
		return nil, ErrWrongMessageForState
	}
	hello := c.pendingHostHello

	role, err := srp.NewClientRole(srp.Group2048, password)
	if err != nil {
		return nil, err
	}
	if err := role.ComputeSessionKey(hello.Username, hello.Salt, hello.PublicB); err != nil {
		c.state = ClientChooseAnAuthScheme
		return nil, ErrSRPAuthFailed
	}
	c.srpClient = role

	k := role.SessionKey()
	macKey, err := crypto.KDF1(k[:])
	if err != nil {
		return nil, err
	}

	hello2 := &srpClientHelloMsg{PublicA: role.PublicA()}
	copy(hello2.MAC[:], crypto.HMAC(macKey[:], c.kp.PublicKey()))
	return encodeAuthMessage(srpClientHello, hello2.encode()), nil
}

// installKeys derives the four AEAD keys from (client_priv, host_pub)
// in the mirrored (responder) order, so the Client's send key equals
// the Host's recv key and vice versa.
func (c *Client) installKeys() error {
	ek, err := crypto.DeriveExchangeKeys(c.kp, c.peerPub, true)
	if err != nil {
		return err
	}
	reliable, err := cipher.NewReliablePeer(ek.SendReliable, ek.RecvReliable)
	if err != nil {
		return err
	}
	c.reliable = reliable
	c.unreliable = cipher.NewUnreliablePeer(ek.SendUnreliable, ek.RecvUnreliable)
	return nil
}

// WrapReliable encrypts plaintext under the reliable cipher peer.
func (c *Client) WrapReliable(plaintext []byte) (*TransportDataMessageReliable, error) {
	if c.state != ClientAuthenticated {
		return nil, ErrNotAuthenticated
	}
	ct, err := c.reliable.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}
	return &TransportDataMessageReliable{Data: ct}, nil
}

// UnwrapReliable decrypts an inbound reliable-channel message using
// the locally tracked expected counter (see Host.UnwrapReliable).
func (c *Client) UnwrapReliable(msg *TransportDataMessageReliable) ([]byte, error) {
	if c.state != ClientAuthenticated {
		return nil, ErrNotAuthenticated
	}
	pt, err := c.reliable.Decrypt(c.recvReliableCounter, msg.Data)
	if err != nil {
		return nil, err
	}
	c.recvReliableCounter++
	return pt, nil
}

// WrapUnreliable encrypts plaintext under the unreliable cipher peer.
func (c *Client) WrapUnreliable(plaintext []byte) (*TransportDataMessageUnreliable, error) {
	if c.state != ClientAuthenticated {
		return nil, ErrNotAuthenticated
	}
	ct, counter, err := c.unreliable.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}
	return &TransportDataMessageUnreliable{Counter: counter, Data: ct}, nil
}

// UnwrapUnreliable decrypts an inbound unreliable-channel message.
func (c *Client) UnwrapUnreliable(msg *TransportDataMessageUnreliable) ([]byte, error) {
	if c.state != ClientAuthenticated {
		return nil, ErrNotAuthenticated
	}
	return c.unreliable.Decrypt(msg.Counter, msg.Data)
}

// State returns the current handshake state.
func (c *Client) State() ClientState { return c.state }
