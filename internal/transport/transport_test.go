package transport

import (
	"bytes"
	"net"
	"testing"
	"time"
)

func TestReliableHandleRoundTrip(t *testing.T) {
	connA, connB := net.Pipe()

	wakerA := NewWaker()
	wakerB := NewWaker()
	a := NewReliableHandle(connA, wakerA, nil)
	b := NewReliableHandle(connB, wakerB, nil)
	defer a.Close()
	defer b.Close()

	a.Send([]byte("hello from a"))

	select {
	case res := <-b.Inbound():
		if res.Err != nil {
			t.Fatalf("unexpected error: %v", res.Err)
		}
		if !bytes.Equal(res.Data, []byte("hello from a")) {
			t.Fatalf("got %q", res.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
	}
}

func TestReliableHandleCloseSignalsShutdown(t *testing.T) {
	connA, connB := net.Pipe()
	waker := NewWaker()
	a := NewReliableHandle(connA, waker, nil)
	_ = NewReliableHandle(connB, NewWaker(), nil)

	a.Close()

	select {
	case res := <-a.Inbound():
		if !res.Shutdown && !res.Fatal {
			t.Fatalf("expected shutdown or fatal result after close, got %+v", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for shutdown result")
	}
}

func TestUnreliableHandleRoundTrip(t *testing.T) {
	connA, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen a: %v", err)
	}
	connB, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen b: %v", err)
	}

	a := NewUnreliableHandle(connA, connB.LocalAddr(), NewWaker(), nil)
	b := NewUnreliableHandle(connB, connA.LocalAddr(), NewWaker(), nil)
	defer a.Close()
	defer b.Close()

	if err := a.Send([]byte("frame data")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case res := <-b.Inbound():
		if res.Err != nil {
			t.Fatalf("unexpected error: %v", res.Err)
		}
		if !bytes.Equal(res.Data, []byte("frame data")) {
			t.Fatalf("got %q", res.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for datagram")
	}
}

func TestIoHandleConnectReliableRequiresListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	h := NewIoHandle(nil)
	if err := h.ConnectReliable(ln.Addr().String()); err != nil {
		t.Fatalf("ConnectReliable: %v", err)
	}
	defer h.Close()

	select {
	case conn := <-accepted:
		conn.Close()
	case <-time.After(2 * time.Second):
		t.Fatal("server never accepted connection")
	}

	if err := h.ConnectReliable(ln.Addr().String()); err != ErrAlreadyConnected {
		t.Fatalf("expected ErrAlreadyConnected, got %v", err)
	}
}
