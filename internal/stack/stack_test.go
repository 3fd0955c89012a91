package stack

import (
	"net"
	"testing"
	"time"

	"github.com/screenview/svcore/internal/rvd"
	"github.com/screenview/svcore/internal/transport"
	"github.com/screenview/svcore/internal/wpskka"
)

// pump drains and processes Step until no events remain for a beat,
// returning every event observed. It is only a test convenience; the
// real embedder drives Step from its own event loop on Waker signals.
func pump(t *testing.T, s *Stack, rounds int) []Event {
	t.Helper()
	var all []Event
	for i := 0; i < rounds; i++ {
		events, _, err := s.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		all = append(all, events...)
		time.Sleep(5 * time.Millisecond)
	}
	return all
}

func TestStackHostClientHandshakeOverDirectLower(t *testing.T) {
	connA, connB := net.Pipe()
	udpA, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen a: %v", err)
	}
	udpB, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen b: %v", err)
	}

	hostIO := transport.NewIoHandle(nil)
	hostIO.AttachReliable(connA)
	hostIO.AttachUnreliable(udpA, udpB.LocalAddr())

	clientIO := transport.NewIoHandle(nil)
	clientIO.AttachReliable(connB)
	clientIO.AttachUnreliable(udpB, udpA.LocalAddr())

	defer hostIO.Close()
	defer clientIO.Close()

	passwords := map[wpskka.AuthSchemeKind][]byte{wpskka.SchemeNone: nil}
	hostHigher, err := NewHostHigher([]wpskka.AuthSchemeKind{wpskka.SchemeNone}, passwords, nil, nil)
	if err != nil {
		t.Fatalf("NewHostHigher: %v", err)
	}
	clientHigher, err := NewClientHigher(nil)
	if err != nil {
		t.Fatalf("NewClientHigher: %v", err)
	}

	hostStack := New(hostIO, NewLowerDirect(), hostHigher, nil)
	clientStack := New(clientIO, NewLowerDirect(), clientHigher, nil)

	first, ok := hostHigher.FirstOutbound()
	if !ok {
		t.Fatalf("expected Host's first KeyExchange")
	}
	if err := hostStack.Send(first); err != nil {
		t.Fatalf("Send first message: %v", err)
	}

	var clientAuthenticated, hostAuthenticated bool
	var clientRVDReady, hostRVDReady bool

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		for _, ev := range pump(t, clientStack, 1) {
			if ev.WPSKKAClient != nil && ev.WPSKKAClient.Kind == wpskka.ClientEventAuthSchemeOffered {
				out, chosenEvent, err := clientHigher.ChooseAuthScheme(wpskka.SchemeNone)
				if err != nil {
					t.Fatalf("ChooseAuthScheme: %v", err)
				}
				if err := clientStack.Send(out); err != nil {
					t.Fatalf("Send TryAuth: %v", err)
				}
				if chosenEvent != nil && chosenEvent.Kind == wpskka.ClientEventAuthSuccessful {
					clientAuthenticated = true
				}
			}
			if ev.WPSKKAClient != nil && ev.WPSKKAClient.Kind == wpskka.ClientEventAuthSuccessful {
				clientAuthenticated = true
			}
			if ev.RVDClient != nil && ev.RVDClient.Kind == rvd.ClientEventHandshakeComplete {
				clientRVDReady = true
			}
		}
		for _, ev := range pump(t, hostStack, 1) {
			if ev.WPSKKAHost != nil && ev.WPSKKAHost.Kind == wpskka.HostEventAuthSuccessful {
				hostAuthenticated = true
			}
		}
		if hostHigher.RVD().State() == rvd.HostReady {
			hostRVDReady = true
		}
		if clientAuthenticated && hostAuthenticated && clientRVDReady && hostRVDReady {
			break
		}
	}

	if !clientAuthenticated {
		t.Fatalf("client never authenticated")
	}
	if !hostAuthenticated {
		t.Fatalf("host never authenticated")
	}
	if !hostRVDReady {
		t.Fatalf("host RVD never reached Ready")
	}
	if !clientRVDReady {
		t.Fatalf("client RVD never reached Ready")
	}
}
