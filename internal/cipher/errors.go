// Package cipher implements the two cipher-peer abstractions WPSKKA
// installs after a successful key exchange: ReliablePeer (counter-
// ordered AEAD over the reliable channel) and UnreliablePeer (AEAD
// with an explicit per-packet counter and an RFC-6479-style replay
// window over the unreliable channel).
package cipher

import "errors"

var (
	// ErrOutOfOrder is returned when a reliable-channel counter does not
	// strictly increase, per spec section 3 ("recv_counter must strictly
	// monotonically increase on receipt").
	ErrOutOfOrder = errors.New("cipher: reliable message received out of order")

	// ErrReplay is returned when an unreliable-channel counter is rejected
	// by the replay window.
	ErrReplay = errors.New("cipher: replay window rejected counter")

	// ErrAuthFailed is returned when AEAD tag verification fails.
	ErrAuthFailed = errors.New("cipher: AEAD authentication failed")

	// ErrCounterExhausted is returned when a send counter would wrap u64.
	ErrCounterExhausted = errors.New("cipher: send counter exhausted")
)
