// Package rvd implements the RVD layer: display lifecycle, input, and
// clipboard messages exchanged once WPSKKA has established the
// reliable and unreliable cipher peers (spec section 4.5).
package rvd

import "errors"

var (
	ErrWrongMessageForState  = errors.New("rvd: message not valid in current state")
	ErrUnknownMessageID      = errors.New("rvd: unknown message id")
	ErrInvalidClipboardMeta  = errors.New("rvd: custom-type bit inconsistent with discriminant/string field")
	ErrPermissionDenied      = errors.New("rvd: missing required permission")
	ErrRanOutOfDisplayIDs    = errors.New("rvd: all 256 display ids in use")
	ErrUnknownDisplay        = errors.New("rvd: unknown display id")
	ErrUnreliableAuthFailed  = errors.New("rvd: unreliable liveness challenge mismatch")
	ErrFrameNumberOverflow   = errors.New("rvd: frame_number overflowed u32")
)
