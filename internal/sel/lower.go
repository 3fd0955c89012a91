package sel

import (
	"errors"

	"github.com/pion/logging"

	"github.com/screenview/svcore/internal/svlog"
	"github.com/screenview/svcore/internal/svsc"
)

// ErrNoChannel is returned when an unreliable SEL frame arrives before
// a session (and therefore the SEL unreliable cipher) exists.
var ErrNoChannel = errors.New("sel: no unreliable channel keyed yet")

// Lower is the Signal-mode lower layer (spec section 4.6,
// "LowerSignal"): it owns an SEL sub-handler and an SVSC sub-handler,
// decrypting the unreliable channel and feeding unwrapped bytes to
// SVSC, surfacing session-data bytes as the WPSKKA payload.
type Lower struct {
	SVSC      *svsc.State
	channel   *Channel
	initiator bool
}

// NewLower returns a LowerSignal handler in the SVSC Handshake state.
// The SEL unreliable channel is keyed lazily, once a session triple is
// known (spec: "derived exactly once at session creation").
func NewLower(initiator bool, loggerFactory logging.LoggerFactory) *Lower {
	return &Lower{
		SVSC:      svsc.NewState(loggerFactory),
		initiator: initiator,
	}
}

// Handle parses one SEL frame from the wire, unwraps it to an SVSC
// message, and feeds it to SVSC. If SVSC surfaces session-data bytes,
// those are returned as the WPSKKA payload.
func (l *Lower) Handle(raw []byte) ([]svsc.Event, []byte, error) {
	frame, err := Decode(raw)
	if err != nil {
		return nil, nil, err
	}

	var svscBytes []byte
	switch f := frame.(type) {
	case *TransportDataMessageReliable:
		svscBytes = f.Data

	case *TransportDataPeerMessageUnreliable:
		if l.channel == nil {
			return nil, nil, ErrNoChannel
		}
		pt, derr := l.channel.Unwrap(f.Counter, f.Data)
		if derr != nil {
			return nil, nil, derr
		}
		svscBytes = pt

	case *TransportDataServerMessageUnreliable:
		if l.channel == nil {
			return nil, nil, ErrNoChannel
		}
		pt, derr := l.channel.Unwrap(f.Counter, f.Data)
		if derr != nil {
			return nil, nil, derr
		}
		svscBytes = pt
	}

	svscMsg, err := svsc.DecodeMessage(svscBytes)
	if err != nil {
		return nil, nil, err
	}

	events, reply, err := l.SVSC.Handle(svscMsg)
	if err != nil {
		return nil, nil, err
	}

	l.maybeKeyChannel(events)

	payload, _ := reply.([]byte)
	return events, payload, nil
}

// maybeKeyChannel derives the SEL unreliable cipher the moment a
// session becomes available, exactly once (spec section 4.6).
func (l *Lower) maybeKeyChannel(events []svsc.Event) {
	if l.channel != nil {
		return
	}
	for _, ev := range events {
		if ev.Kind == svsc.EventSessionUpdate && ev.Session != nil {
			ch, err := NewChannel(ev.Session, l.initiator)
			if err == nil {
				l.channel = ch
			}
			return
		}
	}
}

// Send wraps WPSKKA bytes in SessionDataSend then in a SEL frame of
// the requested reliability, ready to hand to the transport.
func (l *Lower) Send(payload []byte, reliable bool) ([]byte, error) {
	svscRaw, err := svsc.Encode(&svsc.SessionDataSend{Data: payload})
	if err != nil {
		return nil, err
	}

	if reliable {
		return Encode(&TransportDataMessageReliable{Data: svscRaw})
	}

	if l.channel == nil {
		return nil, ErrNoChannel
	}
	ciphertext, counter, err := l.channel.Wrap(svscRaw)
	if err != nil {
		return nil, err
	}
	return Encode(&TransportDataServerMessageUnreliable{Counter: counter, Data: ciphertext})
}
