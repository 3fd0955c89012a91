package stack

import (
	"github.com/pion/logging"

	"github.com/screenview/svcore/internal/svlog"
	"github.com/screenview/svcore/internal/transport"
)

// maxBatch bounds how many inbound remote messages one Step processes,
// so a busy reliable/unreliable channel cannot starve the capture and
// processing paths (spec section 4.7).
const maxBatch = 8

// Stack is the thin top-level composition spec section 4.7 describes:
// inbound bytes flow transport -> lower -> higher -> event; outbound
// events flow higher -> lower -> transport. It exposes exactly one
// driver method, Step, meant to be invoked by the embedder's event
// loop whenever the IoHandle's Waker fires.
type Stack struct {
	io     *transport.IoHandle
	lower  Lower
	higher Higher

	log logging.LeveledLogger
}

// New composes a transport handle with a Lower and Higher
// implementation. Either of io.Reliable/io.Unreliable may be attached
// later; Step tolerates either being nil.
func New(io *transport.IoHandle, lower Lower, higher Higher, loggerFactory logging.LoggerFactory) *Stack {
	return &Stack{
		io:     io,
		lower:  lower,
		higher: higher,
		log:    svlog.New(loggerFactory, "stack"),
	}
}

// Waker returns the shared wakeup primitive the embedder parks on
// between Step calls (spec section 5, "the core thread parks until
// any worker signals activity").
func (s *Stack) Waker() *transport.Waker {
	return s.io.Waker
}

// Step performs one bounded processing pass (spec section 4.7):
//  1. Drain up to maxBatch inbound framed messages from transport,
//     feeding each to lower.Handle, which may surface a WPSKKA payload.
//  2. Forward each payload to higher.Handle, collecting events and
//     outbound higher messages.
//  3. Route each outbound message to the transport's reliable or
//     unreliable send queue per its declared reliability.
//
// It returns the events collected, whether the inbound queue may still
// have work waiting (so the caller should re-invoke Step without
// parking again), and the first error encountered.
func (s *Stack) Step() ([]Event, bool, error) {
	var events []Event

	for i := 0; i < maxBatch; i++ {
		raw, ok, err := s.pollInbound()
		if err != nil {
			return events, false, err
		}
		if !ok {
			return events, false, nil
		}

		payload, err := s.lower.Handle(raw)
		if err != nil {
			if s.log != nil {
				s.log.Warnf("lower.Handle: %v", err)
			}
			continue
		}
		if payload == nil {
			continue
		}

		evs, outbound, err := s.higher.Handle(payload)
		if err != nil {
			if s.log != nil {
				s.log.Warnf("higher.Handle: %v", err)
			}
			continue
		}
		events = append(events, evs...)

		for _, out := range outbound {
			if err := s.send(out); err != nil {
				return events, false, err
			}
		}

		if i == maxBatch-1 {
			return events, true, nil
		}
	}
	return events, true, nil
}

// Send pushes one Higher-produced OutMessage that did not originate
// from Step's own dispatch (e.g. a FrameData the embedder built
// directly via HostHigher.WrapOutbound) onto the transport.
func (s *Stack) Send(out OutMessage) error {
	return s.send(out)
}

func (s *Stack) send(out OutMessage) error {
	wire, err := s.lower.Send(out.Data, out.Reliable)
	if err != nil {
		return err
	}
	if out.Reliable {
		if s.io.Reliable != nil {
			s.io.Reliable.Send(wire)
		}
		return nil
	}
	if s.io.Unreliable != nil {
		return s.io.Unreliable.Send(wire)
	}
	return nil
}

// pollInbound does one non-blocking check of both transport channels,
// preferring the reliable channel when both have data.
func (s *Stack) pollInbound() (raw []byte, ok bool, err error) {
	if s.io.Reliable != nil {
		select {
		case res := <-s.io.Reliable.Inbound():
			return s.unwrapResult(res)
		default:
		}
	}
	if s.io.Unreliable != nil {
		select {
		case res := <-s.io.Unreliable.Inbound():
			return s.unwrapResult(res)
		default:
		}
	}
	return nil, false, nil
}

func (s *Stack) unwrapResult(res transport.Result) ([]byte, bool, error) {
	if res.Shutdown {
		return nil, false, nil
	}
	if res.Fatal {
		return nil, false, res.Err
	}
	if res.Err != nil {
		if s.log != nil {
			s.log.Warnf("transport read error: %v", res.Err)
		}
		return nil, true, nil
	}
	return res.Data, true, nil
}
