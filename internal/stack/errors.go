// Package stack composes the Lower and Higher layers into the single
// top-level handler the event loop drives one step at a time (spec
// section 4.7).
package stack

import "errors"

// ErrUnexpectedMessage is returned when a decoded message does not fit
// the layer's current expectations (e.g. an RVD message arriving
// before the WPSKKA tunnel is authenticated).
var ErrUnexpectedMessage = errors.New("stack: unexpected message for current state")
