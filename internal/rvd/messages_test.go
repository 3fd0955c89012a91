package rvd

import (
	"bytes"
	"testing"

	"github.com/screenview/svcore/internal/wire"
)

func roundtrip(t *testing.T, m wire.Message, want uint8) []byte {
	t.Helper()
	buf, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf[0] != want {
		t.Fatalf("message id mismatch: got %d want %d", buf[0], want)
	}
	return buf
}

func TestProtocolVersionRoundtrip(t *testing.T) {
	buf := roundtrip(t, &ProtocolVersion{Version: ProtocolVersionString}, MsgProtocolVersion)
	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	pv, ok := decoded.(*ProtocolVersion)
	if !ok || pv.Version != ProtocolVersionString {
		t.Fatalf("roundtrip mismatch: %+v", decoded)
	}
}

func TestDisplayShareRoundtrip(t *testing.T) {
	buf := roundtrip(t, &DisplayShare{DisplayID: 3, Access: AccessControllable, Name: "Monitor 1"}, MsgDisplayShare)
	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ds, ok := decoded.(*DisplayShare)
	if !ok || ds.DisplayID != 3 || ds.Access != AccessControllable || ds.Name != "Monitor 1" {
		t.Fatalf("roundtrip mismatch: %+v", decoded)
	}
}

func TestFrameDataRoundtrip(t *testing.T) {
	buf := roundtrip(t, &FrameData{FrameNumber: 7, DisplayID: 2, CellNumber: 9, Data: []byte("jpeg-bytes")}, MsgFrameData)
	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	fd, ok := decoded.(*FrameData)
	if !ok || fd.FrameNumber != 7 || fd.DisplayID != 2 || fd.CellNumber != 9 || !bytes.Equal(fd.Data, []byte("jpeg-bytes")) {
		t.Fatalf("roundtrip mismatch: %+v", decoded)
	}
}

func TestClipboardNotificationRoundtripWithContent(t *testing.T) {
	meta := ClipboardMeta{ContentRequest: true, Kind: ClipboardText}
	msg := &ClipboardNotification{Info: meta, TypeExists: true, Content: []byte("clipboard text")}
	buf := roundtrip(t, msg, MsgClipboardNotification)

	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cn, ok := decoded.(*ClipboardNotification)
	if !ok {
		t.Fatalf("expected *ClipboardNotification, got %T", decoded)
	}
	if cn.Info.Kind != ClipboardText || !cn.TypeExists || !bytes.Equal(cn.Content, []byte("clipboard text")) {
		t.Fatalf("roundtrip mismatch: %+v", cn)
	}
}

func TestClipboardNotificationRoundtripWithoutContent(t *testing.T) {
	msg := &ClipboardNotification{Info: ClipboardMeta{Kind: ClipboardHtml}, TypeExists: false}
	buf := roundtrip(t, msg, MsgClipboardNotification)

	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cn := decoded.(*ClipboardNotification)
	if cn.Content != nil {
		t.Fatalf("expected no content, got %v", cn.Content)
	}
}

func TestClipboardMetaCustomType(t *testing.T) {
	meta := ClipboardMeta{ContentRequest: true, Kind: ClipboardNone, CustomType: "application/x-custom"}
	msg := &ClipboardRequest{Info: meta}
	buf := roundtrip(t, msg, MsgClipboardRequest)

	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cr := decoded.(*ClipboardRequest)
	if cr.Info.Kind != ClipboardNone || cr.Info.CustomType != "application/x-custom" {
		t.Fatalf("roundtrip mismatch: %+v", cr.Info)
	}
}

func TestClipboardMetaInvariantViolationIsDecodeError(t *testing.T) {
	// Hand-craft a byte with the custom bit set but discriminant != 0,
	// which violates the invariant bit7 == (discriminant==0).
	raw := []byte{MsgClipboardRequest, 0x80 | 0x01}
	if _, err := Decode(raw); err != ErrInvalidClipboardMeta {
		t.Fatalf("expected ErrInvalidClipboardMeta, got %v", err)
	}
}
