package sel

import (
	"bytes"
	"testing"

	"github.com/screenview/svcore/internal/svsc"
)

func TestChannelMirroredRoles(t *testing.T) {
	triple := &svsc.SessionTriple{}
	triple.SessionID[0] = 1
	triple.PeerID[0] = 2
	triple.PeerKey[0] = 3

	host, err := NewChannel(triple, true)
	if err != nil {
		t.Fatalf("NewChannel host: %v", err)
	}
	client, err := NewChannel(triple, false)
	if err != nil {
		t.Fatalf("NewChannel client: %v", err)
	}

	ct, counter, err := host.Wrap([]byte("svsc bytes"))
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	pt, err := client.Unwrap(counter, ct)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if !bytes.Equal(pt, []byte("svsc bytes")) {
		t.Fatalf("roundtrip mismatch: %q", pt)
	}
}

func TestLowerReliableHandshakeAndSessionData(t *testing.T) {
	lower := NewLower(true, nil)

	versionFrame, err := svsc.Encode(&svsc.ProtocolVersion{Version: svsc.ProtocolVersionString})
	if err != nil {
		t.Fatalf("encode version: %v", err)
	}
	selFrame, err := Encode(&TransportDataMessageReliable{Data: versionFrame})
	if err != nil {
		t.Fatalf("encode sel frame: %v", err)
	}

	events, payload, err := lower.Handle(selFrame)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if payload != nil {
		t.Fatalf("expected no WPSKKA payload from handshake, got %v", payload)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events from successful handshake, got %+v", events)
	}

	sendFrame, err := svsc.Encode(&svsc.SessionDataReceive{Data: []byte("wpskka bytes")})
	if err != nil {
		t.Fatalf("encode session data: %v", err)
	}
	selFrame2, err := Encode(&TransportDataMessageReliable{Data: sendFrame})
	if err != nil {
		t.Fatalf("encode sel frame 2: %v", err)
	}

	_, payload, err = lower.Handle(selFrame2)
	if err != nil {
		t.Fatalf("Handle session data: %v", err)
	}
	if !bytes.Equal(payload, []byte("wpskka bytes")) {
		t.Fatalf("expected wpskka payload, got %q", payload)
	}
}

func TestLowerSendWrapsReliableFrame(t *testing.T) {
	lower := NewLower(true, nil)
	raw, err := lower.Send([]byte("outbound wpskka"), true)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	frame, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tdm, ok := frame.(*TransportDataMessageReliable)
	if !ok {
		t.Fatalf("expected TransportDataMessageReliable, got %T", frame)
	}

	svscMsg, err := svsc.DecodeMessage(tdm.Data)
	if err != nil {
		t.Fatalf("decode svsc: %v", err)
	}
	sds, ok := svscMsg.(*svsc.SessionDataSend)
	if !ok {
		t.Fatalf("expected SessionDataSend, got %T", svscMsg)
	}
	if !bytes.Equal(sds.Data, []byte("outbound wpskka")) {
		t.Fatalf("got %q", sds.Data)
	}
}
