package svsc

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
)

// KeepAliveInterval is how often a Host or Client sends KeepAlive while
// a lease or session is active, absent other broker traffic.
const KeepAliveInterval = 30 * time.Second

// Sender delivers one SVSC message over whatever connection carries
// broker traffic. Embedders implement this over their transport.
type Sender interface {
	Send(msg interface{}) error
}

// KeepAliveLoop sends a KeepAlive on every tick until ctx is cancelled
// or a send fails, in which case it returns the send error so the
// caller can decide whether to reconnect.
func KeepAliveLoop(ctx context.Context, sender Sender, interval time.Duration) error {
	if interval <= 0 {
		interval = KeepAliveInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := sender.Send(&KeepAlive{}); err != nil {
				return err
			}
		}
	}
}

// Reconnect retries dial with exponential backoff until it succeeds,
// ctx is cancelled, or the backoff's default maximum elapsed time runs
// out (then the last dial error is returned). A Host or Client that
// loses its broker connection re-establishes its lease or session this
// way rather than failing permanently the first time the broker is
// unreachable.
func Reconnect(ctx context.Context, dial func() error) error {
	b := backoff.NewExponentialBackOff()

	for {
		err := dial()
		if err == nil {
			return nil
		}

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
