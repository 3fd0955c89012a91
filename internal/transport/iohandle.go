package transport

import (
	"net"

	"github.com/pion/logging"
)

// IoHandle owns the optional reliable and unreliable sub-handles for
// one peer connection (spec section 2, "Transport I/O"). Either side
// may be nil: SEL/SVSC rendezvous traffic and the WPSKKA/RVD tunnel
// both run over reliable and unreliable channels, but some transports
// (e.g. Direct mode before a session exists) only have one of the two
// wired up yet.
type IoHandle struct {
	Reliable   *ReliableHandle
	Unreliable *UnreliableHandle
	Waker      *Waker

	loggerFactory logging.LoggerFactory
}

// NewIoHandle returns an empty handle sharing one waker across
// whichever sub-handles get attached.
func NewIoHandle(loggerFactory logging.LoggerFactory) *IoHandle {
	return &IoHandle{
		Waker:         NewWaker(),
		loggerFactory: loggerFactory,
	}
}

// ConnectReliable dials addr over TCP and attaches the reliable
// sub-handle.
func (h *IoHandle) ConnectReliable(addr string) error {
	if h.Reliable != nil {
		return ErrAlreadyConnected
	}
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	h.Reliable = NewReliableHandle(conn, h.Waker, h.loggerFactory)
	return nil
}

// AttachReliable wraps an already-established connection (e.g. an
// accepted server-side conn, or a net.Pipe() endpoint in tests).
func (h *IoHandle) AttachReliable(conn net.Conn) {
	h.Reliable = NewReliableHandle(conn, h.Waker, h.loggerFactory)
}

// ConnectUnreliable resolves and opens a UDP socket bound to the local
// ephemeral port, targeting addr for every Send.
func (h *IoHandle) ConnectUnreliable(addr string) error {
	if h.Unreliable != nil {
		return ErrAlreadyConnected
	}
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return err
	}
	h.Unreliable = NewUnreliableHandle(conn, raddr, h.Waker, h.loggerFactory)
	return nil
}

// AttachUnreliable wraps an already-bound packet connection, optionally
// fixed to a single peer address.
func (h *IoHandle) AttachUnreliable(conn net.PacketConn, peer net.Addr) {
	h.Unreliable = NewUnreliableHandle(conn, peer, h.Waker, h.loggerFactory)
}

// DisconnectReliable closes and detaches the reliable sub-handle.
func (h *IoHandle) DisconnectReliable() error {
	if h.Reliable == nil {
		return ErrNotConnected
	}
	err := h.Reliable.Close()
	h.Reliable = nil
	return err
}

// DisconnectUnreliable closes and detaches the unreliable sub-handle.
func (h *IoHandle) DisconnectUnreliable() error {
	if h.Unreliable == nil {
		return ErrNotConnected
	}
	err := h.Unreliable.Close()
	h.Unreliable = nil
	return err
}

// Close tears down both sub-handles. Dropping the handle is the
// cancellation path spec section 6 describes: closing the reliable
// socket and signaling the unreliable worker's shutdown flag, then
// joining both workers.
func (h *IoHandle) Close() error {
	var rerr, uerr error
	if h.Reliable != nil {
		rerr = h.Reliable.Close()
	}
	if h.Unreliable != nil {
		uerr = h.Unreliable.Close()
	}
	if rerr != nil {
		return rerr
	}
	return uerr
}
