package transport

import (
	"net"
	"sync"
	"time"

	"github.com/pion/logging"

	"github.com/screenview/svcore/internal/svlog"
	"github.com/screenview/svcore/internal/wire"
)

// unreliableReadTimeout bounds each blocking recv call so shutdown is
// bounded even though the read worker lives inside a blocking I/O call
// (spec section 6, "Suspension points").
const unreliableReadTimeout = 500 * time.Millisecond

// maxDatagramSize is generous enough for any legitimate RVD frame-data
// cell while still bounding a single recv buffer.
const maxDatagramSize = 65535

// UnreliableHandle owns one datagram connection. Outbound datagrams
// longer than maxDatagramSize are dropped by the write worker; inbound
// datagrams whose encoded length prefix disagrees with the payload are
// dropped silently, per spec section 4.1.
type UnreliableHandle struct {
	conn net.PacketConn
	peer net.Addr
	log  logging.LeveledLogger

	inbound  *unboundedQueue[Result]
	outbound *unboundedQueue[[]byte]
	waker    *Waker

	closeOnce sync.Once
	closed    chan struct{}
	wg        sync.WaitGroup
}

// NewUnreliableHandle starts read and write workers over conn. Every
// Send is written to peer; there is no per-datagram addressing, so with
// a nil peer the handle still receives but each write fails and is
// logged by the write worker.
func NewUnreliableHandle(conn net.PacketConn, peer net.Addr, waker *Waker, loggerFactory logging.LoggerFactory) *UnreliableHandle {
	h := &UnreliableHandle{
		conn:     conn,
		peer:     peer,
		log:      svlog.New(loggerFactory, "transport-unreliable"),
		inbound:  newUnboundedQueue[Result](),
		outbound: newUnboundedQueue[[]byte](),
		waker:    waker,
		closed:   make(chan struct{}),
	}

	h.wg.Add(2)
	go h.readWorker()
	go h.writeWorker()
	return h
}

func (h *UnreliableHandle) Inbound() <-chan Result {
	return h.inbound.pop()
}

// Send encodes and enqueues plaintext-framed bytes for the write
// worker; it never blocks on the network.
func (h *UnreliableHandle) Send(body []byte) error {
	raw, err := wire.EncodeDatagram(body)
	if err != nil {
		return err
	}
	h.outbound.push(raw)
	return nil
}

func (h *UnreliableHandle) Close() error {
	var err error
	h.closeOnce.Do(func() {
		close(h.closed)
		err = h.conn.Close()
		h.outbound.close()
		h.wg.Wait()
		h.inbound.close()
	})
	return err
}

func (h *UnreliableHandle) readWorker() {
	defer h.wg.Done()
	buf := make([]byte, maxDatagramSize)

	for {
		select {
		case <-h.closed:
			h.inbound.push(shutdownResult())
			h.waker.Wake()
			return
		default:
		}

		h.conn.SetReadDeadline(time.Now().Add(unreliableReadTimeout))
		n, _, err := h.conn.ReadFrom(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			select {
			case <-h.closed:
				h.inbound.push(shutdownResult())
			default:
				h.inbound.push(fatalResult(err))
			}
			h.waker.Wake()
			return
		}

		raw := make([]byte, n)
		copy(raw, buf[:n])

		body, derr := wire.DecodeDatagram(raw)
		if derr != nil {
			// Spec section 4.1: length mismatch datagrams are dropped
			// silently and leave no state change; the core never sees
			// them.
			if h.log != nil {
				h.log.Debugf("dropped malformed datagram: %v", derr)
			}
			continue
		}

		h.inbound.push(dataResult(body))
		h.waker.Wake()
	}
}

func (h *UnreliableHandle) writeWorker() {
	defer h.wg.Done()
	for {
		select {
		case raw, ok := <-h.outbound.pop():
			if !ok {
				return
			}
			if len(raw) > maxDatagramSize {
				if h.log != nil {
					h.log.Warnf("dropped oversized outbound datagram (%d bytes)", len(raw))
				}
				continue
			}
			if _, err := h.conn.WriteTo(raw, h.peer); err != nil {
				if h.log != nil {
					h.log.Warnf("unreliable write error: %v", err)
				}
			}
		case <-h.closed:
			return
		}
	}
}
