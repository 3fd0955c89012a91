package rvd

import (
	"crypto/subtle"

	"github.com/pion/logging"

	"github.com/screenview/svcore/internal/clock"
	"github.com/screenview/svcore/internal/crypto"
	"github.com/screenview/svcore/internal/svlog"
)

// HostState is the RVD Host's handshake state (spec section 3:
// "HandlerState (RVD host): {Handshake, Ready}").
type HostState int

const (
	HostHandshake HostState = iota
	HostReady
)

// HostEventKind enumerates the informs the Host RVD handler emits.
type HostEventKind int

const (
	HostEventVersionBad HostEventKind = iota
	HostEventMouseInput
	HostEventKeyInput
	HostEventClipboardRequest
	HostEventClipboardNotification
)

// HostEvent is one inform emitted by the Host RVD handler.
type HostEvent struct {
	Kind       HostEventKind
	MouseInput *MouseInput
	KeyInput   *KeyInput
	Clipboard  *ClipboardRequest
	Notify     *ClipboardNotification
}

// Host drives the RVD protocol on behalf of the Host peer role: it
// owns the authoritative display table, the permission mask, and the
// unreliable-channel liveness responder.
type Host struct {
	state       HostState
	permissions uint8
	displays    *displayTable
	frameNums   map[uint8]uint32

	unreliableChallenge *[16]byte // this host's challenge' sent in UnreliableAuthInter

	log logging.LeveledLogger
}

// NewHost constructs a Host RVD handler in the Handshake state. c may
// be nil to use the real wall clock.
func NewHost(c clock.Clock, loggerFactory logging.LoggerFactory) (*Host, *ProtocolVersion) {
	h := &Host{
		displays:  newDisplayTable(c),
		frameNums: make(map[uint8]uint32),
		log:       svlog.New(loggerFactory, "rvd-host"),
	}
	return h, &ProtocolVersion{Version: ProtocolVersionString}
}

// HandleProtocolVersionResponse advances Handshake -> Ready on match,
// returning the HandshakeComplete reliable message to send. On
// mismatch it emits VersionBad and stays in Handshake.
func (h *Host) HandleProtocolVersionResponse(msg *ProtocolVersionResponse) (*HandshakeComplete, *HostEvent, error) {
	if h.state != HostHandshake {
		return nil, nil, ErrWrongMessageForState
	}
	if !msg.OK {
		return nil, &HostEvent{Kind: HostEventVersionBad}, nil
	}
	h.state = HostReady
	return &HandshakeComplete{}, nil, nil
}

// HandleUnreliableAuthInitial echoes the client's challenge and issues
// a fresh challenge of the host's own, per the liveness handshake
// (spec section 4.5). Valid in either state since it arrives over the
// unreliable channel and ordering versus the reliable handshake is not
// guaranteed.
func (h *Host) HandleUnreliableAuthInitial(msg *UnreliableAuthInitial) (*UnreliableAuthInter, error) {
	challenge, err := crypto.RandomBytes(16)
	if err != nil {
		return nil, err
	}
	var c [16]byte
	copy(c[:], challenge)
	h.unreliableChallenge = &c

	return &UnreliableAuthInter{Response: msg.Challenge, Challenge: c}, nil
}

// HandleUnreliableAuthFinal verifies the client echoed back the host's
// own challenge, proving the unreliable path is live in both
// directions.
func (h *Host) HandleUnreliableAuthFinal(msg *UnreliableAuthFinal) error {
	if h.unreliableChallenge == nil {
		return ErrWrongMessageForState
	}
	if subtle.ConstantTimeCompare(h.unreliableChallenge[:], msg.Response[:]) != 1 {
		return ErrUnreliableAuthFailed
	}
	return nil
}

// Handle dispatches one inbound Ready-state RVD message.
func (h *Host) Handle(msg interface{}) (*HostEvent, error) {
	if h.state != HostReady {
		return nil, ErrWrongMessageForState
	}

	switch m := msg.(type) {
	case *DisplayShareAck:
		h.displays.ack(m.DisplayID)
		return nil, nil

	case *MouseInput:
		d, ok := h.displays.get(m.DisplayID)
		if !ok {
			return nil, nil
		}
		if d.Access&AccessControllable == 0 {
			return nil, ErrPermissionDenied
		}
		return &HostEvent{Kind: HostEventMouseInput, MouseInput: m}, nil

	case *KeyInput:
		if !h.anyControllableShared() {
			return nil, ErrPermissionDenied
		}
		return &HostEvent{Kind: HostEventKeyInput, KeyInput: m}, nil

	case *ClipboardRequest:
		if h.permissions&PermClipboardRead == 0 {
			return nil, ErrPermissionDenied
		}
		return &HostEvent{Kind: HostEventClipboardRequest, Clipboard: m}, nil

	case *ClipboardNotification:
		if h.permissions&PermClipboardWrite == 0 {
			return nil, ErrPermissionDenied
		}
		if m.Info.ContentRequest && m.TypeExists {
			return &HostEvent{Kind: HostEventClipboardNotification, Notify: m}, nil
		}
		return nil, nil

	default:
		return nil, ErrWrongMessageForState
	}
}

func (h *Host) anyControllableShared() bool {
	for _, d := range h.displays.byID {
		if d.Access&AccessControllable != 0 {
			return true
		}
	}
	return false
}

// ShareDisplay allocates the smallest unused display_id, records a
// pending share, and returns the DisplayShare message to send.
func (h *Host) ShareDisplay(name string, access uint8, nativeID uint32, kind DisplayKind, width, height uint16) (*DisplayShare, error) {
	id, err := h.displays.allocate()
	if err != nil {
		return nil, err
	}
	h.displays.insert(&Display{
		DisplayID: id,
		NativeID:  nativeID,
		Kind:      kind,
		Name:      name,
		Access:    access,
		Width:     width,
		Height:    height,
	})
	return &DisplayShare{DisplayID: id, Access: access, Name: name}, nil
}

// UnshareDisplay removes a display from the table and returns the
// DisplayUnshare message to send.
func (h *Host) UnshareDisplay(id uint8) *DisplayUnshare {
	h.displays.remove(id)
	delete(h.frameNums, id)
	return &DisplayUnshare{DisplayID: id}
}

// CheckExpiredShares removes any pending share older than 5s and
// returns a DisplayUnshare for each (spec section 4.5). The embedder
// is expected to call this at least once a second.
func (h *Host) CheckExpiredShares() []*DisplayUnshare {
	ids := h.displays.expired()
	out := make([]*DisplayUnshare, len(ids))
	for i, id := range ids {
		delete(h.frameNums, id)
		out[i] = &DisplayUnshare{DisplayID: id}
	}
	return out
}

// SetPermissions replaces the permission mask and returns the
// PermissionsUpdate message to send.
func (h *Host) SetPermissions(mask uint8) *PermissionsUpdate {
	h.permissions = mask
	return &PermissionsUpdate{Mask: mask}
}

// NextFrameData builds a FrameData message for one encoded-frame
// fragment, advancing the per-display monotonic frame_number. Per
// spec section 4.5 an overflow of the u32 counter is a programming
// error in the core design and panics.
func (h *Host) NextFrameData(displayID uint8, cellNumber uint16, data []byte) *FrameData {
	n := h.frameNums[displayID]
	if n == ^uint32(0) {
		panic("rvd: frame_number overflowed u32")
	}
	h.frameNums[displayID] = n + 1
	return &FrameData{FrameNumber: n, DisplayID: displayID, CellNumber: cellNumber, Data: data}
}

// State returns the current handshake state.
func (h *Host) State() HostState { return h.state }
