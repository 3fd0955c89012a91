package transport

// Waker is the shared wakeup primitive the I/O workers use to nudge
// the core event loop out of its park without blocking themselves if
// the core has not yet consumed the previous wakeup (spec section 6).
type Waker struct {
	ch chan struct{}
}

// NewWaker returns a waker with a single pending slot.
func NewWaker() *Waker {
	return &Waker{ch: make(chan struct{}, 1)}
}

// Wake signals the waker. Redundant wakes are coalesced.
func (w *Waker) Wake() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// C returns the channel the core selects on to park until woken.
func (w *Waker) C() <-chan struct{} {
	return w.ch
}
