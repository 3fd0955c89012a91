// Package svsc implements the ScreenView Signal/Session Control
// protocol: the server-mediated lease and session broker used in
// Signal transport mode. Both Host and Client run the same state
// machine against the broker.
package svsc

import "errors"

var (
	ErrWrongMessageForState = errors.New("svsc: message received with no matching outstanding request")
	ErrVersionMismatch      = errors.New("svsc: protocol version mismatch")
	ErrNoSession            = errors.New("svsc: no active session")
	ErrNoLease              = errors.New("svsc: no active lease")
)

// ProtocolVersionString is the fixed 12-byte version string exchanged
// during the SVSC handshake.
const ProtocolVersionString = "screenview01"
