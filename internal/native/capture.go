package native

import (
	"github.com/pion/logging"

	"github.com/screenview/svcore/internal/svlog"
)

// captureRequest is the only message the core ever sends a capture
// worker: "capture one more frame of this source".
type captureRequest struct {
	stop bool
}

// CaptureResult is what a worker sends back: a captured frame or an
// error, never both.
type CaptureResult struct {
	Frame *Frame
	Err   error
}

// CaptureWorker owns one capture source (a monitor or a window) and
// runs its own goroutine, exactly as spec section 5 describes: "each
// capture source runs its own worker thread... the worker blocks
// between frames, which naturally rate-limits capture." The request
// and result channels each have capacity 1, matching the bounded
// queue the spec calls for in both directions.
type CaptureWorker struct {
	requests chan captureRequest
	results  chan CaptureResult

	log logging.LeveledLogger
}

// NewMonitorCaptureWorker starts a worker that calls
// platform.CaptureMonitorFrame(id) once per Request.
func NewMonitorCaptureWorker(platform Platform, id uint32, loggerFactory logging.LoggerFactory) *CaptureWorker {
	return newCaptureWorker(loggerFactory, func() (*Frame, error) {
		return platform.CaptureMonitorFrame(id)
	})
}

// NewWindowCaptureWorker starts a worker that calls
// platform.CaptureWindowFrame(id) once per Request.
func NewWindowCaptureWorker(platform Platform, id uint32, loggerFactory logging.LoggerFactory) *CaptureWorker {
	return newCaptureWorker(loggerFactory, func() (*Frame, error) {
		return platform.CaptureWindowFrame(id)
	})
}

func newCaptureWorker(loggerFactory logging.LoggerFactory, capture func() (*Frame, error)) *CaptureWorker {
	w := &CaptureWorker{
		requests: make(chan captureRequest, 1),
		results:  make(chan CaptureResult, 1),
		log:      svlog.New(loggerFactory, "native-capture"),
	}
	go w.run(capture)
	return w
}

func (w *CaptureWorker) run(capture func() (*Frame, error)) {
	for req := range w.requests {
		if req.stop {
			close(w.results)
			return
		}
		frame, err := capture()
		w.results <- CaptureResult{Frame: frame, Err: err}
	}
}

// Request asks the worker to capture one more frame. It never blocks
// the caller: if a request is already pending the new one is dropped,
// since the worker is still busy with the previous frame.
func (w *CaptureWorker) Request() {
	select {
	case w.requests <- captureRequest{}:
	default:
	}
}

// Results returns the channel the core drains captured frames from.
func (w *CaptureWorker) Results() <-chan CaptureResult {
	return w.results
}

// Stop queues a stop marker for the worker goroutine and closes the
// request channel. It waits only while an earlier request is still
// queued and not yet taken by the worker; it does not wait for the
// worker to exit. The caller should stop draining Results() once Stop
// has been called.
func (w *CaptureWorker) Stop() {
	w.requests <- captureRequest{stop: true}
	close(w.requests)
}
