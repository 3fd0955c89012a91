package rvd

import (
	"testing"
	"time"

	"github.com/screenview/svcore/internal/clock"
)

func TestHostClientHandshake(t *testing.T) {
	host, hostVersion := NewHost(nil, nil)
	client := NewClient(nil)

	resp, initial, event, err := client.HandleProtocolVersion(hostVersion)
	if err != nil {
		t.Fatalf("client.HandleProtocolVersion: %v", err)
	}
	if event != nil {
		t.Fatalf("unexpected event: %+v", event)
	}
	if !resp.OK {
		t.Fatalf("expected version match")
	}

	complete, hostEvent, err := host.HandleProtocolVersionResponse(resp)
	if err != nil {
		t.Fatalf("host.HandleProtocolVersionResponse: %v", err)
	}
	if hostEvent != nil {
		t.Fatalf("unexpected host event: %+v", hostEvent)
	}
	if host.State() != HostReady {
		t.Fatalf("expected host Ready, got %v", host.State())
	}

	inter, err := host.HandleUnreliableAuthInitial(initial)
	if err != nil {
		t.Fatalf("host.HandleUnreliableAuthInitial: %v", err)
	}

	final, clientEvent, err := client.HandleUnreliableAuthInter(inter)
	if err != nil {
		t.Fatalf("client.HandleUnreliableAuthInter: %v", err)
	}
	if clientEvent != nil {
		t.Fatalf("client should not be Ready before HandshakeComplete, got %+v", clientEvent)
	}
	if client.State() != ClientHandshakeComplete {
		t.Fatalf("expected ClientHandshakeComplete, got %v", client.State())
	}

	if err := host.HandleUnreliableAuthFinal(final); err != nil {
		t.Fatalf("host.HandleUnreliableAuthFinal: %v", err)
	}

	readyEvent, err := client.HandleHandshakeComplete(complete)
	if err != nil {
		t.Fatalf("client.HandleHandshakeComplete: %v", err)
	}
	if readyEvent == nil || readyEvent.Kind != ClientEventHandshakeComplete {
		t.Fatalf("expected HandshakeComplete event, got %+v", readyEvent)
	}
	if client.State() != ClientReady {
		t.Fatalf("expected ClientReady, got %v", client.State())
	}
}

func TestHostClientHandshakeOppositeArrivalOrder(t *testing.T) {
	host, hostVersion := NewHost(nil, nil)
	client := NewClient(nil)

	resp, initial, _, _ := client.HandleProtocolVersion(hostVersion)
	complete, _, _ := host.HandleProtocolVersionResponse(resp)
	inter, _ := host.HandleUnreliableAuthInitial(initial)

	// HandshakeComplete arrives before UnreliableAuthInter this time.
	event, err := client.HandleHandshakeComplete(complete)
	if err != nil {
		t.Fatalf("client.HandleHandshakeComplete: %v", err)
	}
	if event != nil {
		t.Fatalf("expected no event yet, got %+v", event)
	}

	_, clientEvent, err := client.HandleUnreliableAuthInter(inter)
	if err != nil {
		t.Fatalf("client.HandleUnreliableAuthInter: %v", err)
	}
	if clientEvent == nil || clientEvent.Kind != ClientEventHandshakeComplete {
		t.Fatalf("expected HandshakeComplete event, got %+v", clientEvent)
	}
	if client.State() != ClientReady {
		t.Fatalf("expected ClientReady, got %v", client.State())
	}
}

func TestDisplayShareAckAndExpiry(t *testing.T) {
	mc := clock.NewManual(clock.Real.Now())
	host, _ := NewHost(mc, nil)
	host.state = HostReady

	share, err := host.ShareDisplay("Monitor 1", AccessControllable, 1, DisplayMonitor, 1920, 1080)
	if err != nil {
		t.Fatalf("ShareDisplay: %v", err)
	}

	mc.Advance(6 * time.Second)
	expired := host.CheckExpiredShares()
	if len(expired) != 1 || expired[0].DisplayID != share.DisplayID {
		t.Fatalf("expected share %d to expire, got %+v", share.DisplayID, expired)
	}

	if _, ok := host.displays.get(share.DisplayID); ok {
		t.Fatalf("expected display removed after expiry")
	}
}

func TestDisplayShareAckPreventsExpiry(t *testing.T) {
	mc := clock.NewManual(clock.Real.Now())
	host, _ := NewHost(mc, nil)
	host.state = HostReady

	share, err := host.ShareDisplay("Monitor 1", AccessControllable, 1, DisplayMonitor, 1920, 1080)
	if err != nil {
		t.Fatalf("ShareDisplay: %v", err)
	}

	if _, err := host.Handle(&DisplayShareAck{DisplayID: share.DisplayID}); err != nil {
		t.Fatalf("Handle DisplayShareAck: %v", err)
	}

	mc.Advance(6 * time.Second)
	if expired := host.CheckExpiredShares(); len(expired) != 0 {
		t.Fatalf("expected no expiry after ack, got %+v", expired)
	}
}

func TestMouseInputRequiresControllableDisplay(t *testing.T) {
	host, _ := NewHost(nil, nil)
	host.state = HostReady

	share, err := host.ShareDisplay("Monitor 1", 0 /* no CONTROLLABLE */, 1, DisplayMonitor, 100, 100)
	if err != nil {
		t.Fatalf("ShareDisplay: %v", err)
	}

	_, err = host.Handle(&MouseInput{DisplayID: share.DisplayID, X: 1, Y: 1})
	if err != ErrPermissionDenied {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestClipboardRequestRequiresPermission(t *testing.T) {
	host, _ := NewHost(nil, nil)
	host.state = HostReady

	_, err := host.Handle(&ClipboardRequest{Info: ClipboardMeta{Kind: ClipboardText}})
	if err != ErrPermissionDenied {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	host.SetPermissions(PermClipboardRead)
	event, err := host.Handle(&ClipboardRequest{Info: ClipboardMeta{Kind: ClipboardText}})
	if err != nil {
		t.Fatalf("Handle after granting permission: %v", err)
	}
	if event == nil || event.Kind != HostEventClipboardRequest {
		t.Fatalf("expected ClipboardRequest event, got %+v", event)
	}
}

func TestClientMirrorsDisplayShareAndAcks(t *testing.T) {
	client := NewClient(nil)
	client.state = ClientReady

	share := &DisplayShare{DisplayID: 5, Access: AccessControllable, Name: "Window A"}
	event, ack, err := client.Handle(share)
	if err != nil {
		t.Fatalf("Handle DisplayShare: %v", err)
	}
	if event.Kind != ClientEventDisplayShare || ack.DisplayID != 5 {
		t.Fatalf("unexpected result: event=%+v ack=%+v", event, ack)
	}
	if _, ok := client.displays[5]; !ok {
		t.Fatalf("expected display mirrored into client table")
	}

	_, _, err = client.Handle(&DisplayUnshare{DisplayID: 5})
	if err != nil {
		t.Fatalf("Handle DisplayUnshare: %v", err)
	}
	if _, ok := client.displays[5]; ok {
		t.Fatalf("expected display removed from client table")
	}
}
