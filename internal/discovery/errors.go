// Package discovery implements optional LAN-local mDNS advertising and
// resolution for Direct-mode ScreenView hosts. It supplements, but is
// never required by, the core protocol stack: a Direct-mode client can
// always be pointed at a host by address directly; this package only
// saves the user from having to type one.
package discovery

import "errors"

// Package-level sentinel errors for discovery operations.
var (
	// ErrClosed is returned when an operation is attempted on a closed
	// Advertiser.
	ErrClosed = errors.New("discovery: closed")

	// ErrAlreadyAdvertising is returned by Start when the Advertiser
	// already has an active registration.
	ErrAlreadyAdvertising = errors.New("discovery: already advertising")

	// ErrNotAdvertising is returned by Stop when nothing is registered.
	ErrNotAdvertising = errors.New("discovery: not advertising")

	// ErrInvalidHostName is returned when a host name is empty.
	ErrInvalidHostName = errors.New("discovery: invalid host name")

	// ErrInvalidPort is returned when a port is out of range.
	ErrInvalidPort = errors.New("discovery: invalid port")

	// ErrServiceNotFound is returned by Lookup when the underlying
	// resolver finishes without the named instance answering.
	ErrServiceNotFound = errors.New("discovery: service not found")

	// ErrTimeout is returned by Lookup when its deadline passes before
	// the named instance answers.
	ErrTimeout = errors.New("discovery: operation timed out")

	// ErrInvalidTXTRecord is returned when a TXT record is malformed.
	ErrInvalidTXTRecord = errors.New("discovery: invalid TXT record")
)
