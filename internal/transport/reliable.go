package transport

import (
	"io"
	"net"
	"sync"

	"github.com/pion/logging"

	"github.com/screenview/svcore/internal/svlog"
	"github.com/screenview/svcore/internal/wire"
)

// ReliableHandle owns one ordered byte-stream connection, framed with
// the 2-byte length prefix spec section 4.5 defines. It runs a read
// worker and a write worker, each talking to the core only through
// queues and the shared waker (spec section 6).
type ReliableHandle struct {
	conn   net.Conn
	reader *wire.StreamReader
	writer *wire.StreamWriter
	log    logging.LeveledLogger

	inbound  *unboundedQueue[Result]
	outbound *unboundedQueue[[]byte]
	waker    *Waker

	closeOnce sync.Once
	closed    chan struct{}
	wg        sync.WaitGroup
}

// NewReliableHandle starts read and write workers over conn. The
// caller retains ownership of addressing; conn is already connected.
func NewReliableHandle(conn net.Conn, waker *Waker, loggerFactory logging.LoggerFactory) *ReliableHandle {
	h := &ReliableHandle{
		conn:     conn,
		reader:   wire.NewStreamReader(conn),
		writer:   wire.NewStreamWriter(conn),
		log:      svlog.New(loggerFactory, "transport-reliable"),
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

// Inbound is the channel the core drains for arriving frames.
func (h *ReliableHandle) Inbound() <-chan Result {
	return h.inbound.pop()
}

// Send enqueues data to be framed and written; it never blocks on the
// network.
func (h *ReliableHandle) Send(data []byte) {
	h.outbound.push(data)
}

// Close tears down the connection and joins both workers.
func (h *ReliableHandle) Close() error {
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

func (h *ReliableHandle) readWorker() {
	defer h.wg.Done()
	for {
		frame, rerr := h.reader.ReadFrame()
		if rerr != nil {
			select {
			case <-h.closed:
				h.inbound.push(shutdownResult())
			default:
				if rerr == io.EOF {
					h.inbound.push(fatalResult(rerr))
				} else {
					h.inbound.push(fatalResult(rerr))
					if h.log != nil {
						h.log.Warnf("reliable read error: %v", rerr)
					}
				}
			}
			h.waker.Wake()
			return
		}
		h.inbound.push(dataResult(frame))
		h.waker.Wake()
	}
}

func (h *ReliableHandle) writeWorker() {
	defer h.wg.Done()
	for {
		select {
		case data, ok := <-h.outbound.pop():
			if !ok {
				return
			}
			if err := h.writer.WriteFrame(data); err != nil {
				if h.log != nil {
					h.log.Warnf("reliable write error: %v", err)
				}
				return
			}
		case <-h.closed:
			return
		}
	}
}
