package svsc

import "testing"

func TestHandshakeVersionMismatch(t *testing.T) {
	s := NewState(nil)
	events, reply, err := s.Handle(&ProtocolVersion{Version: "bogus-version"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, ok := reply.(*ProtocolVersionResponse)
	if !ok || resp.OK {
		t.Fatalf("expected rejecting ProtocolVersionResponse, got %+v", reply)
	}
	if len(events) != 1 || events[0].Kind != EventVersionBad {
		t.Fatalf("expected VersionBad event, got %+v", events)
	}
	if s.handler != StateHandshake {
		t.Fatalf("expected to remain in Handshake state")
	}
}

func TestHandshakeThenLeaseLifecycle(t *testing.T) {
	s := NewState(nil)
	_, reply, err := s.Handle(&ProtocolVersion{Version: ProtocolVersionString})
	if err != nil {
		t.Fatalf("handshake: %v", err)
	}
	if resp := reply.(*ProtocolVersionResponse); !resp.OK {
		t.Fatalf("expected ok response")
	}

	req := s.LeaseRequestMsg(nil)
	if req == nil {
		t.Fatal("expected non-nil lease request")
	}

	data := &LeaseResponseData{ID: 42, Expiration: 999}
	events, _, err := s.Handle(&LeaseResponse{ResponseData: data})
	if err != nil {
		t.Fatalf("LeaseResponse: %v", err)
	}
	if len(events) != 1 || events[0].Kind != EventLeaseUpdate {
		t.Fatalf("expected LeaseUpdate event, got %+v", events)
	}
	if s.Lease() == nil || s.Lease().ID != 42 {
		t.Fatalf("expected lease stored, got %+v", s.Lease())
	}
}

func TestLeaseResponseWithoutOutstandingRequestFails(t *testing.T) {
	s := NewState(nil)
	s.Handle(&ProtocolVersion{Version: ProtocolVersionString})

	_, _, err := s.Handle(&LeaseResponse{ResponseData: &LeaseResponseData{}})
	if err != ErrWrongMessageForState {
		t.Fatalf("expected ErrWrongMessageForState, got %v", err)
	}
}

func TestKeepAliveAnsweredInAnyState(t *testing.T) {
	s := NewState(nil)
	_, reply, err := s.Handle(&KeepAlive{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := reply.(*KeepAlive); !ok {
		t.Fatalf("expected KeepAlive reply, got %+v", reply)
	}
}

func TestEstablishSessionNotificationStoresSession(t *testing.T) {
	s := NewState(nil)
	s.Handle(&ProtocolVersion{Version: ProtocolVersionString})

	triple := SessionTriple{}
	triple.SessionID[0] = 0xAB
	events, _, err := s.Handle(&EstablishSessionNotification{SessionData: triple})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Kind != EventSessionUpdate {
		t.Fatalf("expected SessionUpdate event, got %+v", events)
	}
	if s.Session() == nil || s.Session().SessionID[0] != 0xAB {
		t.Fatalf("expected session stored, got %+v", s.Session())
	}

	events, _, err = s.Handle(&SessionEndNotification{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Kind != EventSessionEnded {
		t.Fatalf("expected SessionEnded event, got %+v", events)
	}
	if s.Session() != nil {
		t.Fatalf("expected session cleared")
	}
}
