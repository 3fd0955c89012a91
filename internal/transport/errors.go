// Package transport provides the reliable and unreliable I/O handles
// the stack drives: a length-prefixed ordered byte stream and a
// length-validated datagram channel, each owning a read worker and a
// write worker that communicate with the core via queues.
package transport

import "errors"

// Transport errors.
var (
	ErrClosed           = errors.New("transport: closed")
	ErrInvalidAddress   = errors.New("transport: invalid address")
	ErrNotConnected     = errors.New("transport: not connected")
	ErrAlreadyConnected = errors.New("transport: already connected")
	ErrMessageTooLarge  = errors.New("transport: message too large")
)
