package stack

import (
	"github.com/pion/logging"

	"github.com/screenview/svcore/internal/clock"
	"github.com/screenview/svcore/internal/rvd"
	"github.com/screenview/svcore/internal/wire"
	"github.com/screenview/svcore/internal/wpskka"
)

// OutMessage is one outbound wire-layer message the Higher layer
// produced, tagged with the transport channel it must travel over
// (spec section 4.7, step 3: "route each result to the transport's
// reliable or unreliable channel per the higher layer's declared
// reliability").
type OutMessage struct {
	Data     []byte
	Reliable bool
}

// Event is one inform the Higher layer surfaces to the embedder,
// tagging which sub-layer (WPSKKA handshake vs. RVD session) produced
// it so the embedder can check whichever field is set.
type Event struct {
	WPSKKAHost   *wpskka.HostEvent
	WPSKKAClient *wpskka.ClientEvent
	RVDHost      *rvd.HostEvent
	RVDClient    *rvd.ClientEvent
}

// Higher composes a WPSKKA handler with an RVD handler (spec section
// 4.6): WPSKKA provides the authenticated reliable/unreliable AEAD
// channels; RVD's own wire messages travel as the plaintext tunneled
// through them.
type Higher interface {
	// Handle processes one inbound WPSKKA-layer message (the payload a
	// Lower.Handle call surfaced) and returns the informs and outbound
	// messages it produced.
	Handle(payload []byte) ([]Event, []OutMessage, error)
}

// HostHigher drives the Host side: WPSKKA authenticates the Client,
// then RVD runs the display/input/clipboard protocol inside the
// resulting AEAD channels.
type HostHigher struct {
	wpskka *wpskka.Host
	rvd    *rvd.Host
	rvdPV  *rvd.ProtocolVersion

	firstMessage *wpskka.KeyExchange
	sentFirst    bool
}

// NewHostHigher constructs the Host Higher layer. schemes/passwords
// configure the WPSKKA authenticator (spec section 4.4); c may be nil
// to use the real wall clock for RVD's pending-share expiry.
func NewHostHigher(schemes []wpskka.AuthSchemeKind, passwords map[wpskka.AuthSchemeKind][]byte, c clock.Clock, loggerFactory logging.LoggerFactory) (*HostHigher, error) {
	wh, kex, err := wpskka.NewHost(schemes, passwords, loggerFactory)
	if err != nil {
		return nil, err
	}
	rh, pv := rvd.NewHost(c, loggerFactory)
	return &HostHigher{wpskka: wh, rvd: rh, rvdPV: pv, firstMessage: kex}, nil
}

// FirstOutbound returns the Host's initial KeyExchange, which the
// stack owner sends once before any inbound message arrives (spec
// section 4.4: the Host speaks first).
func (h *HostHigher) FirstOutbound() (OutMessage, bool) {
	if h.sentFirst {
		return OutMessage{}, false
	}
	h.sentFirst = true
	buf, err := wpskka.Encode(h.firstMessage)
	if err != nil {
		return OutMessage{}, false
	}
	return OutMessage{Data: buf, Reliable: true}, true
}

// RVD returns the underlying RVD host handler so the embedder can
// drive ShareDisplay/SetPermissions/NextFrameData/CheckExpiredShares,
// wrapping the results through WrapOutbound.
func (h *HostHigher) RVD() *rvd.Host { return h.rvd }

// WrapOutbound encrypts an RVD-layer message produced directly by the
// embedder (e.g. FrameData) under the appropriate WPSKKA cipher,
// returning the OutMessage ready for Lower.Send.
func (h *HostHigher) WrapOutbound(msg wire.Message, reliable bool) (OutMessage, error) {
	rvdBuf, err := rvd.Encode(msg)
	if err != nil {
		return OutMessage{}, err
	}
	return h.wrapPlaintext(rvdBuf, reliable)
}

func (h *HostHigher) wrapPlaintext(plaintext []byte, reliable bool) (OutMessage, error) {
	if reliable {
		tm, err := h.wpskka.WrapReliable(plaintext)
		if err != nil {
			return OutMessage{}, err
		}
		buf, err := wpskka.Encode(tm)
		if err != nil {
			return OutMessage{}, err
		}
		return OutMessage{Data: buf, Reliable: true}, nil
	}
	tm, err := h.wpskka.WrapUnreliable(plaintext)
	if err != nil {
		return OutMessage{}, err
	}
	buf, err := wpskka.Encode(tm)
	if err != nil {
		return OutMessage{}, err
	}
	return OutMessage{Data: buf, Reliable: false}, nil
}

// Handle implements Higher.
func (h *HostHigher) Handle(payload []byte) ([]Event, []OutMessage, error) {
	msg, err := wpskka.Decode(payload)
	if err != nil {
		return nil, nil, err
	}

	switch m := msg.(type) {
	case *wpskka.KeyExchange:
		resp, err := h.wpskka.HandleKeyExchange(m)
		if err != nil {
			return nil, nil, err
		}
		buf, err := wpskka.Encode(resp)
		if err != nil {
			return nil, nil, err
		}
		return nil, []OutMessage{{Data: buf, Reliable: true}}, nil

	case *wpskka.TryAuth:
		reply, event, err := h.wpskka.HandleTryAuth(m)
		if err != nil {
			return nil, nil, err
		}
		out, encErr := encodeWPSKKA(reply, true)
		if encErr != nil {
			return nil, nil, encErr
		}
		if event != nil && event.Kind == wpskka.HostEventAuthSuccessful {
			wrapped, err := h.WrapOutbound(h.rvdPV, true)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, wrapped)
		}
		return wrapHostEvent(event), out, nil

	case *wpskka.AuthMessage:
		reply, event, err := h.wpskka.HandleAuthMessage(m)
		if err != nil {
			return nil, nil, err
		}
		out, encErr := encodeWPSKKA(reply, true)
		if encErr != nil {
			return nil, nil, encErr
		}
		if event != nil && event.Kind == wpskka.HostEventAuthSuccessful {
			wrapped, err := h.WrapOutbound(h.rvdPV, true)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, wrapped)
		}
		return wrapHostEvent(event), out, nil

	case *wpskka.TransportDataMessageReliable:
		pt, err := h.wpskka.UnwrapReliable(m)
		if err != nil {
			return nil, nil, err
		}
		return h.handleRVD(pt)

	case *wpskka.TransportDataMessageUnreliable:
		pt, err := h.wpskka.UnwrapUnreliable(m)
		if err != nil {
			return nil, nil, err
		}
		return h.handleRVD(pt)

	default:
		return nil, nil, ErrUnexpectedMessage
	}
}

func (h *HostHigher) handleRVD(plaintext []byte) ([]Event, []OutMessage, error) {
	msg, err := rvd.Decode(plaintext)
	if err != nil {
		return nil, nil, err
	}

	switch m := msg.(type) {
	case *rvd.ProtocolVersionResponse:
		complete, event, err := h.rvd.HandleProtocolVersionResponse(m)
		if err != nil {
			return nil, nil, err
		}
		var out []OutMessage
		if complete != nil {
			wrapped, err := h.WrapOutbound(complete, true)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, wrapped)
		}
		return wrapRVDHostEvent(event), out, nil

	case *rvd.UnreliableAuthInitial:
		inter, err := h.rvd.HandleUnreliableAuthInitial(m)
		if err != nil {
			return nil, nil, err
		}
		wrapped, err := h.WrapOutbound(inter, false)
		if err != nil {
			return nil, nil, err
		}
		return nil, []OutMessage{wrapped}, nil

	case *rvd.UnreliableAuthFinal:
		if err := h.rvd.HandleUnreliableAuthFinal(m); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil

	default:
		event, err := h.rvd.Handle(msg)
		if err != nil {
			return nil, nil, err
		}
		return wrapRVDHostEvent(event), nil, nil
	}
}

// ClientHigher drives the Client side, mirroring HostHigher.
type ClientHigher struct {
	wpskka *wpskka.Client
	rvd    *rvd.Client
}

// NewClientHigher constructs the Client Higher layer.
func NewClientHigher(loggerFactory logging.LoggerFactory) (*ClientHigher, error) {
	wc, err := wpskka.NewClient(loggerFactory)
	if err != nil {
		return nil, err
	}
	return &ClientHigher{wpskka: wc, rvd: rvd.NewClient(loggerFactory)}, nil
}

// RVD returns the underlying RVD client handler.
func (c *ClientHigher) RVD() *rvd.Client { return c.rvd }

// ChooseAuthScheme is called by the embedder in response to a
// ClientEventAuthSchemeOffered event.
func (c *ClientHigher) ChooseAuthScheme(scheme wpskka.AuthSchemeKind) (OutMessage, *wpskka.ClientEvent, error) {
	msg, event, err := c.wpskka.TryAuth(scheme)
	if err != nil {
		return OutMessage{}, nil, err
	}
	buf, err := wpskka.Encode(msg)
	if err != nil {
		return OutMessage{}, nil, err
	}
	return OutMessage{Data: buf, Reliable: true}, event, nil
}

// SubmitPassword is called by the embedder in response to a
// ClientEventPasswordPrompt event.
func (c *ClientHigher) SubmitPassword(password []byte) (OutMessage, error) {
	msg, err := c.wpskka.ProcessPassword(password)
	if err != nil {
		return OutMessage{}, err
	}
	buf, err := wpskka.Encode(msg)
	if err != nil {
		return OutMessage{}, err
	}
	return OutMessage{Data: buf, Reliable: true}, nil
}

func (c *ClientHigher) wrapPlaintext(plaintext []byte, reliable bool) (OutMessage, error) {
	if reliable {
		tm, err := c.wpskka.WrapReliable(plaintext)
		if err != nil {
			return OutMessage{}, err
		}
		buf, err := wpskka.Encode(tm)
		if err != nil {
			return OutMessage{}, err
		}
		return OutMessage{Data: buf, Reliable: true}, nil
	}
	tm, err := c.wpskka.WrapUnreliable(plaintext)
	if err != nil {
		return OutMessage{}, err
	}
	buf, err := wpskka.Encode(tm)
	if err != nil {
		return OutMessage{}, err
	}
	return OutMessage{Data: buf, Reliable: false}, nil
}

// WrapOutbound encrypts an RVD-layer message produced directly by the
// embedder (e.g. MouseInput) under the appropriate WPSKKA cipher.
func (c *ClientHigher) WrapOutbound(msg wire.Message, reliable bool) (OutMessage, error) {
	rvdBuf, err := rvd.Encode(msg)
	if err != nil {
		return OutMessage{}, err
	}
	return c.wrapPlaintext(rvdBuf, reliable)
}

// Handle implements Higher.
func (c *ClientHigher) Handle(payload []byte) ([]Event, []OutMessage, error) {
	msg, err := wpskka.Decode(payload)
	if err != nil {
		return nil, nil, err
	}

	switch m := msg.(type) {
	case *wpskka.KeyExchange:
		resp, err := c.wpskka.HandleKeyExchange(m)
		if err != nil {
			return nil, nil, err
		}
		buf, err := wpskka.Encode(resp)
		if err != nil {
			return nil, nil, err
		}
		return nil, []OutMessage{{Data: buf, Reliable: true}}, nil

	case *wpskka.AuthScheme:
		event, err := c.wpskka.HandleAuthScheme(m)
		if err != nil {
			return nil, nil, err
		}
		return wrapClientEvent(event), nil, nil

	case *wpskka.AuthMessage:
		reply, event, err := c.wpskka.HandleAuthMessage(m)
		if err != nil {
			return nil, nil, err
		}
		out, encErr := encodeWPSKKA(reply, true)
		if encErr != nil {
			return nil, nil, encErr
		}
		return wrapClientEvent(event), out, nil

	case *wpskka.TransportDataMessageReliable:
		pt, err := c.wpskka.UnwrapReliable(m)
		if err != nil {
			return nil, nil, err
		}
		return c.handleRVD(pt)

	case *wpskka.TransportDataMessageUnreliable:
		pt, err := c.wpskka.UnwrapUnreliable(m)
		if err != nil {
			return nil, nil, err
		}
		return c.handleRVD(pt)

	default:
		return nil, nil, ErrUnexpectedMessage
	}
}

func (c *ClientHigher) handleRVD(plaintext []byte) ([]Event, []OutMessage, error) {
	msg, err := rvd.Decode(plaintext)
	if err != nil {
		return nil, nil, err
	}

	switch m := msg.(type) {
	case *rvd.ProtocolVersion:
		resp, initial, event, err := c.rvd.HandleProtocolVersion(m)
		if err != nil {
			return nil, nil, err
		}
		var out []OutMessage
		if resp != nil {
			wrapped, err := c.WrapOutbound(resp, true)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, wrapped)
		}
		if initial != nil {
			wrapped, err := c.WrapOutbound(initial, false)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, wrapped)
		}
		return wrapRVDClientEvent(event), out, nil

	case *rvd.UnreliableAuthInter:
		final, event, err := c.rvd.HandleUnreliableAuthInter(m)
		if err != nil {
			return nil, nil, err
		}
		var out []OutMessage
		if final != nil {
			wrapped, err := c.WrapOutbound(final, false)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, wrapped)
		}
		return wrapRVDClientEvent(event), out, nil

	case *rvd.HandshakeComplete:
		event, err := c.rvd.HandleHandshakeComplete(m)
		if err != nil {
			return nil, nil, err
		}
		return wrapRVDClientEvent(event), nil, nil

	default:
		event, ack, err := c.rvd.Handle(msg)
		if err != nil {
			return nil, nil, err
		}
		var out []OutMessage
		if ack != nil {
			wrapped, err := c.WrapOutbound(ack, true)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, wrapped)
		}
		return wrapRVDClientEvent(event), out, nil
	}
}

// encodeWPSKKA encodes a possibly-nil AuthMessage produced by a
// handshake step into a single-element OutMessage slice, or nil if the
// step had nothing to send. The nil check must happen on the concrete
// pointer type: boxing a nil *AuthMessage into a wire.Message
// interface value first would make it compare non-nil.
func encodeWPSKKA(m *wpskka.AuthMessage, reliable bool) ([]OutMessage, error) {
	if m == nil {
		return nil, nil
	}
	buf, err := wpskka.Encode(m)
	if err != nil {
		return nil, err
	}
	return []OutMessage{{Data: buf, Reliable: reliable}}, nil
}

func wrapHostEvent(e *wpskka.HostEvent) []Event {
	if e == nil {
		return nil
	}
	return []Event{{WPSKKAHost: e}}
}

func wrapClientEvent(e *wpskka.ClientEvent) []Event {
	if e == nil {
		return nil
	}
	return []Event{{WPSKKAClient: e}}
}

func wrapRVDHostEvent(e *rvd.HostEvent) []Event {
	if e == nil {
		return nil
	}
	return []Event{{RVDHost: e}}
}

func wrapRVDClientEvent(e *rvd.ClientEvent) []Event {
	if e == nil {
		return nil
	}
	return []Event{{RVDClient: e}}
}
