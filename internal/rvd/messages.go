package rvd

import (
	"github.com/screenview/svcore/internal/wire"
)

// Message discriminants (spec section 8, RVD catalog). FrameData=12
// and ClipboardNotification=11 resolve the spec's own noted source
// collision (§9) per its stated assumption. HandshakeComplete and the
// UnreliableAuthInitial/Inter/Final trio are referenced by the RVD
// client/host state-machine prose (§4.5) but left out of the literal
// wire table; their ids are this implementation's assignment.
const (
	MsgProtocolVersion         uint8 = 0
	MsgProtocolVersionResponse uint8 = 1
	MsgPermissionsUpdate       uint8 = 2
	MsgDisplayShare            uint8 = 3
	MsgDisplayShareAck         uint8 = 4
	MsgDisplayUnshare          uint8 = 5
	MsgMouseLocation           uint8 = 6
	MsgMouseHidden             uint8 = 7
	MsgMouseInput              uint8 = 8
	MsgKeyInput                uint8 = 9
	MsgClipboardRequest        uint8 = 10
	MsgClipboardNotification   uint8 = 11
	MsgFrameData               uint8 = 12
	MsgHandshakeComplete       uint8 = 13
	MsgUnreliableAuthInitial   uint8 = 14
	MsgUnreliableAuthInter     uint8 = 15
	MsgUnreliableAuthFinal     uint8 = 16
)

// ProtocolVersionString is the fixed 11-byte RVD version string (spec
// section 8: "fixed_len 11 string").
const ProtocolVersionString = "screenview1"

// PermissionMask bitflags (spec section 3).
const (
	PermClipboardRead  uint8 = 1 << 0
	PermClipboardWrite uint8 = 1 << 1
)

// AccessMask bitflags for a shared display (spec section 3).
const (
	AccessControllable uint8 = 1 << 0
)

type ProtocolVersion struct {
	Version string
}

func (m *ProtocolVersion) MessageID() uint8 { return MsgProtocolVersion }
func (m *ProtocolVersion) Marshal(w *wire.Writer) error {
	w.WriteFixedString(m.Version)
	return nil
}
func (m *ProtocolVersion) Unmarshal(c *wire.Cursor) error {
	v, err := c.ReadFixedString(len(ProtocolVersionString))
	m.Version = v
	return err
}

type ProtocolVersionResponse struct {
	OK bool
}

func (m *ProtocolVersionResponse) MessageID() uint8 { return MsgProtocolVersionResponse }
func (m *ProtocolVersionResponse) Marshal(w *wire.Writer) error {
	w.WriteBool(m.OK)
	return nil
}
func (m *ProtocolVersionResponse) Unmarshal(c *wire.Cursor) error {
	v, err := c.ReadBool()
	m.OK = v
	return err
}

type PermissionsUpdate struct {
	Mask uint8
}

func (m *PermissionsUpdate) MessageID() uint8 { return MsgPermissionsUpdate }
func (m *PermissionsUpdate) Marshal(w *wire.Writer) error {
	w.WriteU8(m.Mask)
	return nil
}
func (m *PermissionsUpdate) Unmarshal(c *wire.Cursor) error {
	v, err := c.ReadU8()
	m.Mask = v
	return err
}

type DisplayShare struct {
	DisplayID uint8
	Access    uint8
	Name      string
}

func (m *DisplayShare) MessageID() uint8 { return MsgDisplayShare }
func (m *DisplayShare) Marshal(w *wire.Writer) error {
	w.WriteU8(m.DisplayID)
	w.WriteU8(m.Access)
	return w.WriteLenPrefixedString(m.Name, 1)
}
func (m *DisplayShare) Unmarshal(c *wire.Cursor) error {
	var err error
	if m.DisplayID, err = c.ReadU8(); err != nil {
		return err
	}
	if m.Access, err = c.ReadU8(); err != nil {
		return err
	}
	m.Name, err = c.ReadLenPrefixedString(1)
	return err
}

type DisplayShareAck struct {
	DisplayID uint8
}

func (m *DisplayShareAck) MessageID() uint8 { return MsgDisplayShareAck }
func (m *DisplayShareAck) Marshal(w *wire.Writer) error {
	w.WriteU8(m.DisplayID)
	return nil
}
func (m *DisplayShareAck) Unmarshal(c *wire.Cursor) error {
	v, err := c.ReadU8()
	m.DisplayID = v
	return err
}

type DisplayUnshare struct {
	DisplayID uint8
}

func (m *DisplayUnshare) MessageID() uint8 { return MsgDisplayUnshare }
func (m *DisplayUnshare) Marshal(w *wire.Writer) error {
	w.WriteU8(m.DisplayID)
	return nil
}
func (m *DisplayUnshare) Unmarshal(c *wire.Cursor) error {
	v, err := c.ReadU8()
	m.DisplayID = v
	return err
}

type MouseLocation struct {
	DisplayID uint8
	X, Y      uint16
}

func (m *MouseLocation) MessageID() uint8 { return MsgMouseLocation }
func (m *MouseLocation) Marshal(w *wire.Writer) error {
	w.WriteU8(m.DisplayID)
	w.WriteU16(m.X)
	w.WriteU16(m.Y)
	return nil
}
func (m *MouseLocation) Unmarshal(c *wire.Cursor) error {
	var err error
	if m.DisplayID, err = c.ReadU8(); err != nil {
		return err
	}
	if m.X, err = c.ReadU16(); err != nil {
		return err
	}
	m.Y, err = c.ReadU16()
	return err
}

type MouseHidden struct {
	DisplayID uint8
}

func (m *MouseHidden) MessageID() uint8 { return MsgMouseHidden }
func (m *MouseHidden) Marshal(w *wire.Writer) error {
	w.WriteU8(m.DisplayID)
	return nil
}
func (m *MouseHidden) Unmarshal(c *wire.Cursor) error {
	v, err := c.ReadU8()
	m.DisplayID = v
	return err
}

type MouseInput struct {
	DisplayID    uint8
	X, Y         uint16
	ButtonsDelta uint8
	ButtonsState uint8
}

func (m *MouseInput) MessageID() uint8 { return MsgMouseInput }
func (m *MouseInput) Marshal(w *wire.Writer) error {
	w.WriteU8(m.DisplayID)
	w.WriteU16(m.X)
	w.WriteU16(m.Y)
	w.WriteU8(m.ButtonsDelta)
	w.WriteU8(m.ButtonsState)
	return nil
}
func (m *MouseInput) Unmarshal(c *wire.Cursor) error {
	var err error
	if m.DisplayID, err = c.ReadU8(); err != nil {
		return err
	}
	if m.X, err = c.ReadU16(); err != nil {
		return err
	}
	if m.Y, err = c.ReadU16(); err != nil {
		return err
	}
	if m.ButtonsDelta, err = c.ReadU8(); err != nil {
		return err
	}
	m.ButtonsState, err = c.ReadU8()
	return err
}

type KeyInput struct {
	Down bool
	Key  uint32
}

func (m *KeyInput) MessageID() uint8 { return MsgKeyInput }
func (m *KeyInput) Marshal(w *wire.Writer) error {
	w.WriteBool(m.Down)
	w.WriteU32(m.Key)
	return nil
}
func (m *KeyInput) Unmarshal(c *wire.Cursor) error {
	var err error
	if m.Down, err = c.ReadBool(); err != nil {
		return err
	}
	m.Key, err = c.ReadU32()
	return err
}

type ClipboardRequest struct {
	Info ClipboardMeta
}

func (m *ClipboardRequest) MessageID() uint8 { return MsgClipboardRequest }
func (m *ClipboardRequest) Marshal(w *wire.Writer) error {
	return m.Info.marshal(w)
}
func (m *ClipboardRequest) Unmarshal(c *wire.Cursor) error {
	return m.Info.unmarshal(c)
}

type ClipboardNotification struct {
	Info       ClipboardMeta
	TypeExists bool
	Content    []byte // present iff Info.ContentRequest && TypeExists
}

func (m *ClipboardNotification) MessageID() uint8 { return MsgClipboardNotification }
func (m *ClipboardNotification) Marshal(w *wire.Writer) error {
	if err := m.Info.marshal(w); err != nil {
		return err
	}
	w.WriteBool(m.TypeExists)
	if m.Info.ContentRequest && m.TypeExists {
		return w.WriteLenPrefixedBytes(m.Content, 3)
	}
	return nil
}
func (m *ClipboardNotification) Unmarshal(c *wire.Cursor) error {
	if err := m.Info.unmarshal(c); err != nil {
		return err
	}
	var err error
	if m.TypeExists, err = c.ReadBool(); err != nil {
		return err
	}
	if m.Info.ContentRequest && m.TypeExists {
		m.Content, err = c.ReadLenPrefixedBytes(3)
	}
	return err
}

type FrameData struct {
	FrameNumber uint32
	DisplayID   uint8
	CellNumber  uint16
	Data        []byte
}

func (m *FrameData) MessageID() uint8 { return MsgFrameData }
func (m *FrameData) Marshal(w *wire.Writer) error {
	w.WriteU32(m.FrameNumber)
	w.WriteU8(m.DisplayID)
	w.WriteU16(m.CellNumber)
	return w.WriteLenPrefixedBytes(m.Data, 2)
}
func (m *FrameData) Unmarshal(c *wire.Cursor) error {
	var err error
	if m.FrameNumber, err = c.ReadU32(); err != nil {
		return err
	}
	if m.DisplayID, err = c.ReadU8(); err != nil {
		return err
	}
	if m.CellNumber, err = c.ReadU16(); err != nil {
		return err
	}
	m.Data, err = c.ReadLenPrefixedBytes(2)
	return err
}

// HandshakeComplete is sent by the Host over the reliable channel once
// it has transitioned Handshake -> Ready, independent of the
// unreliable-channel liveness proof (spec section 4.5).
type HandshakeComplete struct{}

func (m *HandshakeComplete) MessageID() uint8          { return MsgHandshakeComplete }
func (m *HandshakeComplete) Marshal(w *wire.Writer) error { return nil }
func (m *HandshakeComplete) Unmarshal(c *wire.Cursor) error { return nil }

// UnreliableAuthInitial is the Client's first liveness-handshake
// message: a fresh random challenge plus a reserved zero block.
type UnreliableAuthInitial struct {
	Challenge [16]byte
	Zero      [16]byte
}

func (m *UnreliableAuthInitial) MessageID() uint8 { return MsgUnreliableAuthInitial }
func (m *UnreliableAuthInitial) Marshal(w *wire.Writer) error {
	w.WriteFixed(m.Challenge[:])
	w.WriteFixed(m.Zero[:])
	return nil
}
func (m *UnreliableAuthInitial) Unmarshal(c *wire.Cursor) error {
	b, err := c.ReadFixed(16)
	if err != nil {
		return err
	}
	copy(m.Challenge[:], b)
	b, err = c.ReadFixed(16)
	if err != nil {
		return err
	}
	copy(m.Zero[:], b)
	return nil
}

// UnreliableAuthInter is the Host's echo of the client's challenge
// plus a fresh challenge of its own.
type UnreliableAuthInter struct {
	Response  [16]byte
	Challenge [16]byte
}

func (m *UnreliableAuthInter) MessageID() uint8 { return MsgUnreliableAuthInter }
func (m *UnreliableAuthInter) Marshal(w *wire.Writer) error {
	w.WriteFixed(m.Response[:])
	w.WriteFixed(m.Challenge[:])
	return nil
}
func (m *UnreliableAuthInter) Unmarshal(c *wire.Cursor) error {
	b, err := c.ReadFixed(16)
	if err != nil {
		return err
	}
	copy(m.Response[:], b)
	b, err = c.ReadFixed(16)
	if err != nil {
		return err
	}
	copy(m.Challenge[:], b)
	return nil
}

// UnreliableAuthFinal is the Client's echo of the Host's second challenge.
type UnreliableAuthFinal struct {
	Response [16]byte
}

func (m *UnreliableAuthFinal) MessageID() uint8 { return MsgUnreliableAuthFinal }
func (m *UnreliableAuthFinal) Marshal(w *wire.Writer) error {
	w.WriteFixed(m.Response[:])
	return nil
}
func (m *UnreliableAuthFinal) Unmarshal(c *wire.Cursor) error {
	b, err := c.ReadFixed(16)
	if err != nil {
		return err
	}
	copy(m.Response[:], b)
	return nil
}

// Encode serializes an RVD message with its leading discriminant.
func Encode(m wire.Message) ([]byte, error) {
	return wire.Encode(m)
}

// Decode peeks the discriminant in buf and decodes the matching RVD
// message type.
func Decode(buf []byte) (interface{}, error) {
	id, err := wire.PeekMessageID(buf)
	if err != nil {
		return nil, err
	}
	c := wire.NewCursor(buf[1:])

	var m interface {
		wire.Message
		wire.Unmarshaler
	}
	switch id {
	case MsgProtocolVersion:
		m = &ProtocolVersion{}
	case MsgProtocolVersionResponse:
		m = &ProtocolVersionResponse{}
	case MsgPermissionsUpdate:
		m = &PermissionsUpdate{}
	case MsgDisplayShare:
		m = &DisplayShare{}
	case MsgDisplayShareAck:
		m = &DisplayShareAck{}
	case MsgDisplayUnshare:
		m = &DisplayUnshare{}
	case MsgMouseLocation:
		m = &MouseLocation{}
	case MsgMouseHidden:
		m = &MouseHidden{}
	case MsgMouseInput:
		m = &MouseInput{}
	case MsgKeyInput:
		m = &KeyInput{}
	case MsgClipboardRequest:
		m = &ClipboardRequest{}
	case MsgClipboardNotification:
		m = &ClipboardNotification{}
	case MsgFrameData:
		m = &FrameData{}
	case MsgHandshakeComplete:
		m = &HandshakeComplete{}
	case MsgUnreliableAuthInitial:
		m = &UnreliableAuthInitial{}
	case MsgUnreliableAuthInter:
		m = &UnreliableAuthInter{}
	case MsgUnreliableAuthFinal:
		m = &UnreliableAuthFinal{}
	default:
		return nil, ErrUnknownMessageID
	}

	if err := m.Unmarshal(c); err != nil {
		return nil, err
	}
	return m, nil
}
