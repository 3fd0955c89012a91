package wpskka

import "errors"

var (
	// ErrWrongMessageForState is returned when a message arrives that
	// the current state does not accept.
	ErrWrongMessageForState = errors.New("wpskka: message not valid in current state")
	// ErrBadAuthSchemeType is returned when TryAuth names a scheme the
	// host did not advertise, or one this implementation cannot serve.
	ErrBadAuthSchemeType = errors.New("wpskka: unsupported auth scheme")
	// ErrNoPassword is returned when SrpStatic or SrpDynamic is selected
	// but no password was configured on the host for that scheme.
	ErrNoPassword = errors.New("wpskka: no password configured for scheme")
	// ErrSRPAuthFailed is returned by Client.ProcessPassword when the SRP
	// session key cannot be computed from the Host's HostHello. A MAC
	// that fails to verify is reported as an AuthFailed event instead.
	ErrSRPAuthFailed = errors.New("wpskka: srp authentication failed")
	// ErrNotAuthenticated is returned by wrap/unwrap calls made before
	// the cipher peers are installed.
	ErrNotAuthenticated = errors.New("wpskka: not authenticated yet")
	// ErrAlreadyAuthenticated guards against re-running the handshake.
	ErrAlreadyAuthenticated = errors.New("wpskka: already authenticated")
)
