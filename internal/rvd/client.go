package rvd

import (
	"crypto/subtle"

	"github.com/pion/logging"

	"github.com/screenview/svcore/internal/crypto"
	"github.com/screenview/svcore/internal/svlog"
)

// ClientState is the RVD Client's handshake state (spec section 3).
type ClientState int

const (
	ClientProtocolVersion ClientState = iota
	ClientUnreliableAuth
	ClientHandshakeComplete
	ClientReady
)

// ClientEventKind enumerates the informs the Client RVD handler emits.
type ClientEventKind int

const (
	ClientEventVersionBad ClientEventKind = iota
	ClientEventUnreliableAuthFailed
	ClientEventHandshakeComplete
	ClientEventFrameData
	ClientEventDisplayShare
	ClientEventDisplayUnshare
	ClientEventMouseHidden
	ClientEventMouseLocation
	ClientEventClipboardNotification
)

// ClientEvent is one inform emitted by the Client RVD handler.
type ClientEvent struct {
	Kind           ClientEventKind
	Frame          *FrameData
	DisplayShare   *DisplayShare
	DisplayUnshare *DisplayUnshare
	MouseLocation  *MouseLocation
	MouseHidden    *MouseHidden
	Notify         *ClipboardNotification
}

// Client drives the RVD protocol on behalf of the Client peer role,
// mirroring Display state from the Host and running the liveness
// challenge/response as the initiator.
type Client struct {
	state ClientState

	challenge          [16]byte
	unreliableVerified bool
	handshakeSeen      bool

	displays map[uint8]*Display

	log logging.LeveledLogger
}

// NewClient constructs a Client RVD handler in the ProtocolVersion state.
func NewClient(loggerFactory logging.LoggerFactory) *Client {
	return &Client{
		displays: make(map[uint8]*Display),
		log:      svlog.New(loggerFactory, "rvd-client"),
	}
}

// HandleProtocolVersion checks the Host's advertised version, returns
// the ProtocolVersionResponse and, on match, the first liveness
// message, transitioning to UnreliableAuth.
func (c *Client) HandleProtocolVersion(msg *ProtocolVersion) (*ProtocolVersionResponse, *UnreliableAuthInitial, *ClientEvent, error) {
	if c.state != ClientProtocolVersion {
		return nil, nil, nil, ErrWrongMessageForState
	}
	ok := msg.Version == ProtocolVersionString
	if !ok {
		return &ProtocolVersionResponse{OK: false}, nil, &ClientEvent{Kind: ClientEventVersionBad}, nil
	}

	challenge, err := crypto.RandomBytes(16)
	if err != nil {
		return nil, nil, nil, err
	}
	copy(c.challenge[:], challenge)
	c.state = ClientUnreliableAuth

	return &ProtocolVersionResponse{OK: true}, &UnreliableAuthInitial{Challenge: c.challenge}, nil, nil
}

// HandleUnreliableAuthInter validates the Host's echo, sends
// UnreliableAuthFinal, and completes the handshake if HandshakeComplete
// already arrived over the reliable channel.
func (c *Client) HandleUnreliableAuthInter(msg *UnreliableAuthInter) (*UnreliableAuthFinal, *ClientEvent, error) {
	if c.state != ClientUnreliableAuth && c.state != ClientHandshakeComplete {
		return nil, nil, ErrWrongMessageForState
	}
	if subtle.ConstantTimeCompare(c.challenge[:], msg.Response[:]) != 1 {
		return nil, &ClientEvent{Kind: ClientEventUnreliableAuthFailed}, nil
	}
	c.unreliableVerified = true

	final := &UnreliableAuthFinal{Response: msg.Challenge}
	if c.handshakeSeen {
		c.state = ClientReady
		return final, &ClientEvent{Kind: ClientEventHandshakeComplete}, nil
	}
	c.state = ClientHandshakeComplete
	return final, nil, nil
}

// HandleHandshakeComplete records the Host's reliable-channel
// handshake-complete signal, completing the transition to Ready if the
// unreliable liveness check already succeeded.
func (c *Client) HandleHandshakeComplete(msg *HandshakeComplete) (*ClientEvent, error) {
	if c.state != ClientUnreliableAuth && c.state != ClientHandshakeComplete {
		return nil, ErrWrongMessageForState
	}
	c.handshakeSeen = true
	if c.unreliableVerified {
		c.state = ClientReady
		return &ClientEvent{Kind: ClientEventHandshakeComplete}, nil
	}
	c.state = ClientHandshakeComplete
	return nil, nil
}

// Handle dispatches one inbound Ready-state RVD message, updating the
// mirrored display table and returning the matching event (plus, for
// DisplayShare, the DisplayShareAck to send back).
func (c *Client) Handle(msg interface{}) (*ClientEvent, *DisplayShareAck, error) {
	if c.state != ClientReady {
		return nil, nil, ErrWrongMessageForState
	}

	switch m := msg.(type) {
	case *FrameData:
		return &ClientEvent{Kind: ClientEventFrameData, Frame: m}, nil, nil

	case *DisplayShare:
		c.displays[m.DisplayID] = &Display{DisplayID: m.DisplayID, Access: m.Access, Name: m.Name}
		return &ClientEvent{Kind: ClientEventDisplayShare, DisplayShare: m}, &DisplayShareAck{DisplayID: m.DisplayID}, nil

	case *DisplayUnshare:
		delete(c.displays, m.DisplayID)
		return &ClientEvent{Kind: ClientEventDisplayUnshare, DisplayUnshare: m}, nil, nil

	case *MouseLocation:
		return &ClientEvent{Kind: ClientEventMouseLocation, MouseLocation: m}, nil, nil

	case *MouseHidden:
		return &ClientEvent{Kind: ClientEventMouseHidden, MouseHidden: m}, nil, nil

	case *ClipboardNotification:
		if !m.Info.ContentRequest || !m.TypeExists {
			return nil, nil, nil
		}
		return &ClientEvent{Kind: ClientEventClipboardNotification, Notify: m}, nil, nil

	default:
		return nil, nil, ErrWrongMessageForState
	}
}

// State returns the current handshake state.
func (c *Client) State() ClientState { return c.state }
