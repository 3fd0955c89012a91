package svsc

import (
	"github.com/screenview/svcore/internal/wire"
)

// Message discriminants (spec section 8, SVSC catalog).
const (
	MsgProtocolVersion               uint8 = 0
	MsgProtocolVersionResponse       uint8 = 1
	MsgLeaseRequest                  uint8 = 2
	MsgLeaseResponse                 uint8 = 3
	MsgLeaseExtensionRequest         uint8 = 4
	MsgLeaseExtensionResponse        uint8 = 5
	MsgEstablishSessionRequest       uint8 = 6
	MsgEstablishSessionResponse      uint8 = 7
	MsgEstablishSessionNotification  uint8 = 8
	MsgSessionEnd                    uint8 = 9
	MsgSessionEndNotification        uint8 = 10
	MsgSessionDataSend               uint8 = 11
	MsgSessionDataReceive            uint8 = 12
	MsgKeepAlive                     uint8 = 13
)

// SessionStatus is EstablishSessionResponse's status enum. The spec
// names only Success explicitly; the remaining values are this
// implementation's choice (see DESIGN.md, Open Question decisions).
type SessionStatus uint8

const (
	StatusSuccess       SessionStatus = 0
	StatusLeaseNotFound SessionStatus = 1
	StatusPeerNotFound  SessionStatus = 2
	StatusRejected      SessionStatus = 3
)

// SessionTriple is the (session_id, peer_id, peer_key) bound delivered
// to both Host and Client on session establishment.
type SessionTriple struct {
	SessionID [16]byte
	PeerID    [16]byte
	PeerKey   [16]byte
}

func (t *SessionTriple) marshal(w *wire.Writer) {
	w.WriteFixed(t.SessionID[:])
	w.WriteFixed(t.PeerID[:])
	w.WriteFixed(t.PeerKey[:])
}

func (t *SessionTriple) unmarshal(c *wire.Cursor) error {
	if err := readFixedInto(c, t.SessionID[:]); err != nil {
		return err
	}
	if err := readFixedInto(c, t.PeerID[:]); err != nil {
		return err
	}
	return readFixedInto(c, t.PeerKey[:])
}

func readFixedInto(c *wire.Cursor, dst []byte) error {
	b, err := c.ReadFixed(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// ProtocolVersion announces the sender's SVSC version.
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
	if err != nil {
		return err
	}
	m.Version = v
	return nil
}

// ProtocolVersionResponse answers ProtocolVersion.
type ProtocolVersionResponse struct {
	OK bool
}

func (m *ProtocolVersionResponse) MessageID() uint8 { return MsgProtocolVersionResponse }
func (m *ProtocolVersionResponse) Marshal(w *wire.Writer) error {
	w.WriteBool(m.OK)
	return nil
}
func (m *ProtocolVersionResponse) Unmarshal(c *wire.Cursor) error {
	ok, err := c.ReadBool()
	m.OK = ok
	return err
}

// LeaseRequest asks the broker for a lease, optionally renewing a
// previously issued cookie.
type LeaseRequest struct {
	Cookie *[24]byte
}

func (m *LeaseRequest) MessageID() uint8 { return MsgLeaseRequest }
func (m *LeaseRequest) Marshal(w *wire.Writer) error {
	w.WriteBool(m.Cookie != nil)
	if m.Cookie != nil {
		w.WriteFixed(m.Cookie[:])
	}
	return nil
}
func (m *LeaseRequest) Unmarshal(c *wire.Cursor) error {
	present, err := c.ReadBool()
	if err != nil {
		return err
	}
	if !present {
		m.Cookie = nil
		return nil
	}
	var cookie [24]byte
	if err := readFixedInto(c, cookie[:]); err != nil {
		return err
	}
	m.Cookie = &cookie
	return nil
}

// LeaseResponseData is the body of a successful LeaseResponse.
type LeaseResponseData struct {
	ID         uint32
	Cookie     [24]byte
	Expiration int64
}

// LeaseResponse answers LeaseRequest. Absent ResponseData means the
// broker rejected the request.
type LeaseResponse struct {
	ResponseData *LeaseResponseData
}

func (m *LeaseResponse) MessageID() uint8 { return MsgLeaseResponse }
func (m *LeaseResponse) Marshal(w *wire.Writer) error {
	w.WriteBool(m.ResponseData != nil)
	if d := m.ResponseData; d != nil {
		w.WriteU32(d.ID)
		w.WriteFixed(d.Cookie[:])
		w.WriteI64(d.Expiration)
	}
	return nil
}
func (m *LeaseResponse) Unmarshal(c *wire.Cursor) error {
	present, err := c.ReadBool()
	if err != nil {
		return err
	}
	if !present {
		m.ResponseData = nil
		return nil
	}
	d := &LeaseResponseData{}
	if d.ID, err = c.ReadU32(); err != nil {
		return err
	}
	if err := readFixedInto(c, d.Cookie[:]); err != nil {
		return err
	}
	if d.Expiration, err = c.ReadI64(); err != nil {
		return err
	}
	m.ResponseData = d
	return nil
}

// LeaseExtensionRequest asks the broker to extend an existing lease.
type LeaseExtensionRequest struct {
	Cookie [24]byte
}

func (m *LeaseExtensionRequest) MessageID() uint8 { return MsgLeaseExtensionRequest }
func (m *LeaseExtensionRequest) Marshal(w *wire.Writer) error {
	w.WriteFixed(m.Cookie[:])
	return nil
}
func (m *LeaseExtensionRequest) Unmarshal(c *wire.Cursor) error {
	return readFixedInto(c, m.Cookie[:])
}

// LeaseExtensionResponse answers LeaseExtensionRequest. A nil
// NewExpiration means the broker rejected the extension.
type LeaseExtensionResponse struct {
	NewExpiration *int64
}

func (m *LeaseExtensionResponse) MessageID() uint8 { return MsgLeaseExtensionResponse }
func (m *LeaseExtensionResponse) Marshal(w *wire.Writer) error {
	w.WriteBool(m.NewExpiration != nil)
	if m.NewExpiration != nil {
		w.WriteI64(*m.NewExpiration)
	}
	return nil
}
func (m *LeaseExtensionResponse) Unmarshal(c *wire.Cursor) error {
	present, err := c.ReadBool()
	if err != nil {
		return err
	}
	if !present {
		m.NewExpiration = nil
		return nil
	}
	v, err := c.ReadI64()
	if err != nil {
		return err
	}
	m.NewExpiration = &v
	return nil
}

// EstablishSessionRequest asks the broker to pair with a peer's lease.
type EstablishSessionRequest struct {
	LeaseID uint32
}

func (m *EstablishSessionRequest) MessageID() uint8 { return MsgEstablishSessionRequest }
func (m *EstablishSessionRequest) Marshal(w *wire.Writer) error {
	w.WriteU32(m.LeaseID)
	return nil
}
func (m *EstablishSessionRequest) Unmarshal(c *wire.Cursor) error {
	v, err := c.ReadU32()
	m.LeaseID = v
	return err
}

// EstablishSessionResponse answers EstablishSessionRequest, carrying
// the session triple only when Status is StatusSuccess.
type EstablishSessionResponse struct {
	LeaseID      uint32
	Status       SessionStatus
	ResponseData *SessionTriple
}

func (m *EstablishSessionResponse) MessageID() uint8 { return MsgEstablishSessionResponse }
func (m *EstablishSessionResponse) Marshal(w *wire.Writer) error {
	w.WriteU32(m.LeaseID)
	w.WriteU8(uint8(m.Status))
	if m.Status == StatusSuccess {
		if m.ResponseData == nil {
			return wire.ErrInvalidEnum
		}
		m.ResponseData.marshal(w)
	}
	return nil
}
func (m *EstablishSessionResponse) Unmarshal(c *wire.Cursor) error {
	var err error
	if m.LeaseID, err = c.ReadU32(); err != nil {
		return err
	}
	status, err := c.ReadU8()
	if err != nil {
		return err
	}
	m.Status = SessionStatus(status)
	if m.Status == StatusSuccess {
		t := &SessionTriple{}
		if err := t.unmarshal(c); err != nil {
			return err
		}
		m.ResponseData = t
	} else {
		m.ResponseData = nil
	}
	return nil
}

// EstablishSessionNotification is delivered to the target side of a
// session establishment (the peer who did not send the request).
type EstablishSessionNotification struct {
	SessionData SessionTriple
}

func (m *EstablishSessionNotification) MessageID() uint8 {
	return MsgEstablishSessionNotification
}
func (m *EstablishSessionNotification) Marshal(w *wire.Writer) error {
	m.SessionData.marshal(w)
	return nil
}
func (m *EstablishSessionNotification) Unmarshal(c *wire.Cursor) error {
	return m.SessionData.unmarshal(c)
}

// SessionEnd requests the broker tear down the active session.
type SessionEnd struct{}

func (m *SessionEnd) MessageID() uint8                  { return MsgSessionEnd }
func (m *SessionEnd) Marshal(w *wire.Writer) error      { return nil }
func (m *SessionEnd) Unmarshal(c *wire.Cursor) error     { return nil }

// SessionEndNotification informs the peer that the session has ended.
type SessionEndNotification struct{}

func (m *SessionEndNotification) MessageID() uint8              { return MsgSessionEndNotification }
func (m *SessionEndNotification) Marshal(w *wire.Writer) error  { return nil }
func (m *SessionEndNotification) Unmarshal(c *wire.Cursor) error { return nil }

// SessionDataSend tunnels WPSKKA bytes to the broker for forwarding.
type SessionDataSend struct {
	Data []byte
}

func (m *SessionDataSend) MessageID() uint8 { return MsgSessionDataSend }
func (m *SessionDataSend) Marshal(w *wire.Writer) error {
	return w.WriteLenPrefixedBytes(m.Data, 3)
}
func (m *SessionDataSend) Unmarshal(c *wire.Cursor) error {
	b, err := c.ReadLenPrefixedBytes(3)
	if err != nil {
		return err
	}
	m.Data = b
	return nil
}

// SessionDataReceive carries WPSKKA bytes forwarded from the peer.
type SessionDataReceive struct {
	Data []byte
}

func (m *SessionDataReceive) MessageID() uint8 { return MsgSessionDataReceive }
func (m *SessionDataReceive) Marshal(w *wire.Writer) error {
	return w.WriteLenPrefixedBytes(m.Data, 3)
}
func (m *SessionDataReceive) Unmarshal(c *wire.Cursor) error {
	b, err := c.ReadLenPrefixedBytes(3)
	if err != nil {
		return err
	}
	m.Data = b
	return nil
}

// KeepAlive is answered immediately regardless of state.
type KeepAlive struct{}

func (m *KeepAlive) MessageID() uint8              { return MsgKeepAlive }
func (m *KeepAlive) Marshal(w *wire.Writer) error  { return nil }
func (m *KeepAlive) Unmarshal(c *wire.Cursor) error { return nil }
