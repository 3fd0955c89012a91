package svsc

import (
	"testing"

	"github.com/screenview/svcore/internal/wire"
)

func roundtrip(t *testing.T, m wire.Message, want uint8, into wire.Unmarshaler) []byte {
	t.Helper()
	w := wire.NewWriter(32)
	if err := m.Marshal(w); err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if m.MessageID() != want {
		t.Fatalf("MessageID: got %d want %d", m.MessageID(), want)
	}
	c := wire.NewCursor(w.Bytes())
	if err := into.Unmarshal(c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("%d bytes left unconsumed", c.Remaining())
	}
	return w.Bytes()
}

func TestProtocolVersionRoundtrip(t *testing.T) {
	got := &ProtocolVersion{}
	roundtrip(t, &ProtocolVersion{Version: ProtocolVersionString}, MsgProtocolVersion, got)
	if got.Version != ProtocolVersionString {
		t.Fatalf("got %q", got.Version)
	}
}

func TestLeaseResponseRoundtripPresentAndAbsent(t *testing.T) {
	want := &LeaseResponseData{ID: 7, Expiration: 123456}
	for i := range want.Cookie {
		want.Cookie[i] = byte(i)
	}
	got := &LeaseResponse{}
	roundtrip(t, &LeaseResponse{ResponseData: want}, MsgLeaseResponse, got)
	if got.ResponseData == nil || got.ResponseData.ID != 7 || got.ResponseData.Expiration != 123456 {
		t.Fatalf("got %+v", got.ResponseData)
	}

	gotAbsent := &LeaseResponse{}
	roundtrip(t, &LeaseResponse{ResponseData: nil}, MsgLeaseResponse, gotAbsent)
	if gotAbsent.ResponseData != nil {
		t.Fatalf("expected nil ResponseData, got %+v", gotAbsent.ResponseData)
	}
}

func TestEstablishSessionResponseRoundtrip(t *testing.T) {
	triple := &SessionTriple{}
	for i := range triple.SessionID {
		triple.SessionID[i] = 1
		triple.PeerID[i] = 2
		triple.PeerKey[i] = 3
	}
	got := &EstablishSessionResponse{}
	roundtrip(t, &EstablishSessionResponse{LeaseID: 9, Status: StatusSuccess, ResponseData: triple}, MsgEstablishSessionResponse, got)
	if got.Status != StatusSuccess || got.ResponseData == nil {
		t.Fatalf("got %+v", got)
	}
	if got.ResponseData.SessionID != triple.SessionID {
		t.Fatalf("session id mismatch")
	}

	gotRejected := &EstablishSessionResponse{}
	roundtrip(t, &EstablishSessionResponse{LeaseID: 9, Status: StatusRejected}, MsgEstablishSessionResponse, gotRejected)
	if gotRejected.ResponseData != nil {
		t.Fatalf("expected nil ResponseData on rejection, got %+v", gotRejected.ResponseData)
	}
}

func TestSessionDataSendRoundtrip(t *testing.T) {
	got := &SessionDataSend{}
	roundtrip(t, &SessionDataSend{Data: []byte("tunnel bytes")}, MsgSessionDataSend, got)
	if string(got.Data) != "tunnel bytes" {
		t.Fatalf("got %q", got.Data)
	}
}
