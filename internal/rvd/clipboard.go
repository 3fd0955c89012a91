package rvd

import "github.com/screenview/svcore/internal/wire"

// ClipboardKind enumerates the non-custom clipboard content types
// (spec section 8, ClipboardMeta bits 5..0).
type ClipboardKind uint8

const (
	ClipboardNone        ClipboardKind = 0
	ClipboardText        ClipboardKind = 1
	ClipboardRtf         ClipboardKind = 2
	ClipboardHtml         ClipboardKind = 3
	ClipboardFilePointer ClipboardKind = 4
)

const (
	clipboardCustomBit uint8 = 1 << 7
	clipboardRequestBit uint8 = 1 << 6
	clipboardKindMask   uint8 = 0x3F
)

// ClipboardMeta is the single-byte clipboard-type bitfield plus its
// conditional custom-type name string (spec section 8). Invariant: the
// custom-type bit is set iff Kind==0 iff CustomType is non-empty;
// violating it is a decode error.
type ClipboardMeta struct {
	ContentRequest bool
	Kind           ClipboardKind // 0 when CustomType is used
	CustomType     string        // present iff Kind == 0
}

func (m *ClipboardMeta) marshal(w *wire.Writer) error {
	custom := m.Kind == ClipboardNone
	if custom && m.CustomType == "" {
		return ErrInvalidClipboardMeta
	}
	if !custom && m.CustomType != "" {
		return ErrInvalidClipboardMeta
	}

	b := uint8(m.Kind) & clipboardKindMask
	if custom {
		b |= clipboardCustomBit
	}
	if m.ContentRequest {
		b |= clipboardRequestBit
	}
	w.WriteU8(b)
	if custom {
		return w.WriteLenPrefixedString(m.CustomType, 1)
	}
	return nil
}

func (m *ClipboardMeta) unmarshal(c *wire.Cursor) error {
	b, err := c.ReadU8()
	if err != nil {
		return err
	}
	custom := b&clipboardCustomBit != 0
	m.ContentRequest = b&clipboardRequestBit != 0
	m.Kind = ClipboardKind(b & clipboardKindMask)

	if custom != (m.Kind == ClipboardNone) {
		return ErrInvalidClipboardMeta
	}
	if custom {
		s, err := c.ReadLenPrefixedString(1)
		if err != nil {
			return err
		}
		m.CustomType = s
	}
	return nil
}
