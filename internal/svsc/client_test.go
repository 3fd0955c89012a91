package svsc

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingSender struct {
	count int32
	fail  error
}

func (c *countingSender) Send(msg interface{}) error {
	atomic.AddInt32(&c.count, 1)
	return c.fail
}

func TestKeepAliveLoopSendsOnTick(t *testing.T) {
	sender := &countingSender{}
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	err := KeepAliveLoop(ctx, sender, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&sender.count) < 2 {
		t.Fatalf("expected at least 2 KeepAlive sends, got %d", sender.count)
	}
}

func TestKeepAliveLoopReturnsSendError(t *testing.T) {
	wantErr := errors.New("broker gone")
	sender := &countingSender{fail: wantErr}

	err := KeepAliveLoop(context.Background(), sender, 1*time.Millisecond)
	if err != wantErr {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

func TestReconnectSucceedsEventually(t *testing.T) {
	var attempts int32
	dial := func() error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("not yet")
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := Reconnect(ctx, dial); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts < 3 {
		t.Fatalf("expected at least 3 attempts, got %d", attempts)
	}
}

func TestReconnectStopsOnContextCancel(t *testing.T) {
	dial := func() error { return errors.New("always fails") }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Reconnect(ctx, dial)
	if err == nil {
		t.Fatalf("expected an error once context is cancelled")
	}
}
