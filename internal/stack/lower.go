package stack

import (
	"github.com/pion/logging"

	"github.com/screenview/svcore/internal/sel"
	"github.com/screenview/svcore/internal/svsc"
)

// Lower abstracts the two lower-layer variants spec section 4.6
// describes: handle() turns one inbound wire-layer message into a
// WPSKKA payload (or nil if the message was lower-layer-internal,
// e.g. an SVSC lease renewal); send() wraps one outbound WPSKKA
// payload for the wire layer.
type Lower interface {
	Handle(raw []byte) ([]byte, error)
	Send(payload []byte, reliable bool) ([]byte, error)
}

// LowerDirect is the identity lower layer used once a direct transport
// connection exists and no SVSC rendezvous is involved.
type LowerDirect struct{}

// NewLowerDirect returns a LowerDirect handler.
func NewLowerDirect() *LowerDirect { return &LowerDirect{} }

// Handle returns raw unchanged as the WPSKKA payload.
func (LowerDirect) Handle(raw []byte) ([]byte, error) { return raw, nil }

// Send returns payload unchanged; the caller routes it to the
// reliable or unreliable transport channel per reliable.
func (LowerDirect) Send(payload []byte, reliable bool) ([]byte, error) { return payload, nil }

// LowerSignal adapts *sel.Lower (the SEL+SVSC composition) to the
// Lower interface, forwarding SVSC lifecycle events (lease granted,
// session established, session torn down) to onEvent so the embedder
// or stack owner can react to rendezvous state without the Higher
// layer needing to know about SVSC.
type LowerSignal struct {
	inner   *sel.Lower
	onEvent func(svsc.Event)
}

// NewLowerSignal returns a LowerSignal handler. initiator selects
// which side derives the SEL unreliable cipher in the initiator role
// (spec section 4.6). onEvent may be nil.
func NewLowerSignal(initiator bool, loggerFactory logging.LoggerFactory, onEvent func(svsc.Event)) *LowerSignal {
	return &LowerSignal{
		inner:   sel.NewLower(initiator, loggerFactory),
		onEvent: onEvent,
	}
}

// Handle parses one SEL frame, feeds it to the SVSC sub-handler, and
// surfaces any resulting WPSKKA payload. SVSC-internal traffic (lease
// renewal, session-broker chatter) yields a nil payload.
func (l *LowerSignal) Handle(raw []byte) ([]byte, error) {
	events, payload, err := l.inner.Handle(raw)
	if err != nil {
		return nil, err
	}
	if l.onEvent != nil {
		for _, ev := range events {
			l.onEvent(ev)
		}
	}
	return payload, nil
}

// Send wraps payload in SessionDataSend then in an SEL frame of the
// requested reliability.
func (l *LowerSignal) Send(payload []byte, reliable bool) ([]byte, error) {
	return l.inner.Send(payload, reliable)
}

// SVSC exposes the underlying SVSC state machine so the embedder can
// drive lease/session operations (request lease, create/join session)
// that do not originate from an inbound wire message.
func (l *LowerSignal) SVSC() *svsc.State {
	return l.inner.SVSC
}
