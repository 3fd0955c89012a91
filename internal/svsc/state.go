package svsc

import (
	"github.com/google/uuid"
	"github.com/pion/logging"

	"github.com/screenview/svcore/internal/svlog"
)

// HandlerState is the SVSC state machine's two states (spec section
// 3, "HandlerState (SVSC)").
type HandlerState int

const (
	StateHandshake HandlerState = iota
	StatePostHandshake
)

// Lease is the broker-issued lease a Host holds while advertising
// availability (spec section 3, "Lease").
type Lease struct {
	ID         uint32
	Cookie     [24]byte
	Expiration int64

	// InternalID correlates this lease across log lines and embedder
	// callbacks; it never goes on the wire.
	InternalID uuid.UUID
}

// EventKind tags the events State.Handle emits for the embedder.
type EventKind int

const (
	EventVersionBad EventKind = iota
	EventLeaseUpdate
	EventLeaseRequestRejected
	EventLeaseExtensionRequestRejected
	EventSessionUpdate
	EventSessionRequestRejected
	EventSessionEnded
)

// Event is one outcome of processing an inbound SVSC message.
type Event struct {
	Kind    EventKind
	Lease   *Lease
	Session *SessionTriple
	Status  SessionStatus
}

// State is the SVSC handler, shared by Host and Client: the broker
// protocol is symmetric, and either side may initiate a lease or
// session request or receive one as notifications.
type State struct {
	handler HandlerState

	awaitingLease     bool
	awaitingExtension bool
	awaitingSession   bool

	lease   *Lease
	session *SessionTriple

	// sessionInternalID correlates the current session across log
	// lines and embedder callbacks; it never goes on the wire, since
	// SessionTriple is wire-marshaled and carries only broker-assigned
	// IDs.
	sessionInternalID uuid.UUID

	log logging.LeveledLogger
}

// NewState returns a fresh SVSC handler in the Handshake state.
func NewState(loggerFactory logging.LoggerFactory) *State {
	return &State{
		handler: StateHandshake,
		log:     svlog.New(loggerFactory, "svsc"),
	}
}

// Lease returns the currently held lease, or nil.
func (s *State) Lease() *Lease { return s.lease }

// Session returns the currently active session triple, or nil.
func (s *State) Session() *SessionTriple { return s.session }

// SessionInternalID returns the correlation ID minted for the current
// session, or the zero UUID if no session is active.
func (s *State) SessionInternalID() uuid.UUID { return s.sessionInternalID }

// LeaseRequestMsg builds an outbound LeaseRequest and marks a
// response as outstanding.
func (s *State) LeaseRequestMsg(cookie *[24]byte) *LeaseRequest {
	s.awaitingLease = true
	return &LeaseRequest{Cookie: cookie}
}

// LeaseExtensionRequestMsg builds an outbound LeaseExtensionRequest
// and marks a response as outstanding.
func (s *State) LeaseExtensionRequestMsg(cookie [24]byte) *LeaseExtensionRequest {
	s.awaitingExtension = true
	return &LeaseExtensionRequest{Cookie: cookie}
}

// EstablishSessionRequestMsg builds an outbound EstablishSessionRequest
// and marks a response as outstanding.
func (s *State) EstablishSessionRequestMsg(leaseID uint32) *EstablishSessionRequest {
	s.awaitingSession = true
	return &EstablishSessionRequest{LeaseID: leaseID}
}

// Handle processes one inbound SVSC message, returning any events to
// surface to the embedder and an optional reply to send back.
//
// KeepAlive is answered immediately regardless of state (spec section
// 4.3). Every other message outside PostHandshake, or a reply with no
// matching outstanding-request flag, fails WrongMessageForState.
func (s *State) Handle(msg interface{}) ([]Event, interface{}, error) {
	if _, ok := msg.(*KeepAlive); ok {
		return nil, &KeepAlive{}, nil
	}

	switch s.handler {
	case StateHandshake:
		return s.handleHandshake(msg)
	case StatePostHandshake:
		return s.handlePostHandshake(msg)
	default:
		return nil, nil, ErrWrongMessageForState
	}
}

func (s *State) handleHandshake(msg interface{}) ([]Event, interface{}, error) {
	pv, ok := msg.(*ProtocolVersion)
	if !ok {
		return nil, nil, ErrWrongMessageForState
	}

	ok = pv.Version == ProtocolVersionString
	reply := &ProtocolVersionResponse{OK: ok}
	if !ok {
		return []Event{{Kind: EventVersionBad}}, reply, nil
	}
	s.handler = StatePostHandshake
	return nil, reply, nil
}

func (s *State) handlePostHandshake(msg interface{}) ([]Event, interface{}, error) {
	switch m := msg.(type) {
	case *LeaseResponse:
		if !s.awaitingLease {
			return nil, nil, ErrWrongMessageForState
		}
		s.awaitingLease = false
		if m.ResponseData == nil {
			return []Event{{Kind: EventLeaseRequestRejected}}, nil, nil
		}
		s.lease = &Lease{
			ID:         m.ResponseData.ID,
			Cookie:     m.ResponseData.Cookie,
			Expiration: m.ResponseData.Expiration,
			InternalID: uuid.New(),
		}
		return []Event{{Kind: EventLeaseUpdate, Lease: s.lease}}, nil, nil

	case *LeaseExtensionResponse:
		if !s.awaitingExtension {
			return nil, nil, ErrWrongMessageForState
		}
		s.awaitingExtension = false
		if m.NewExpiration == nil {
			return []Event{{Kind: EventLeaseExtensionRequestRejected}}, nil, nil
		}
		if s.lease == nil {
			return nil, nil, ErrNoLease
		}
		s.lease.Expiration = *m.NewExpiration
		return []Event{{Kind: EventLeaseUpdate, Lease: s.lease}}, nil, nil

	case *EstablishSessionResponse:
		if !s.awaitingSession {
			return nil, nil, ErrWrongMessageForState
		}
		s.awaitingSession = false
		if m.Status != StatusSuccess || m.ResponseData == nil {
			return []Event{{Kind: EventSessionRequestRejected, Status: m.Status}}, nil, nil
		}
		s.session = m.ResponseData
		s.sessionInternalID = uuid.New()
		return []Event{{Kind: EventSessionUpdate, Session: s.session}}, nil, nil

	case *EstablishSessionNotification:
		s.session = &m.SessionData
		s.sessionInternalID = uuid.New()
		return []Event{{Kind: EventSessionUpdate, Session: s.session}}, nil, nil

	case *SessionEnd, *SessionEndNotification:
		s.session = nil
		s.sessionInternalID = uuid.UUID{}
		return []Event{{Kind: EventSessionEnded}}, nil, nil

	case *SessionDataReceive:
		return nil, m.Data, nil

	default:
		return nil, nil, ErrWrongMessageForState
	}
}
