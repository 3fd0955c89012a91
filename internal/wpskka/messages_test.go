package wpskka

import (
	"bytes"
	"testing"

	"github.com/screenview/svcore/internal/wire"
)

func roundtrip(t *testing.T, m wire.Message, want uint8) []byte {
	t.Helper()
	buf, err := wire.Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf[0] != want {
		t.Fatalf("message id mismatch: got %d want %d", buf[0], want)
	}
	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	_ = decoded
	return buf
}

func TestKeyExchangeRoundtrip(t *testing.T) {
	var pub [32]byte
	for i := range pub {
		pub[i] = byte(i)
	}
	buf := roundtrip(t, &KeyExchange{PublicKey: pub}, MsgKeyExchange)

	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ke, ok := decoded.(*KeyExchange)
	if !ok {
		t.Fatalf("expected *KeyExchange, got %T", decoded)
	}
	if ke.PublicKey != pub {
		t.Fatalf("public key mismatch")
	}
}

func TestAuthSchemeRoundtrip(t *testing.T) {
	schemes := []AuthSchemeKind{SchemeSrpStatic, SchemeSrpDynamic, SchemeNone}
	buf := roundtrip(t, &AuthScheme{Schemes: schemes}, MsgAuthScheme)

	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	as, ok := decoded.(*AuthScheme)
	if !ok {
		t.Fatalf("expected *AuthScheme, got %T", decoded)
	}
	if len(as.Schemes) != len(schemes) {
		t.Fatalf("scheme count mismatch: got %d want %d", len(as.Schemes), len(schemes))
	}
	for i := range schemes {
		if as.Schemes[i] != schemes[i] {
			t.Fatalf("scheme %d mismatch: got %v want %v", i, as.Schemes[i], schemes[i])
		}
	}
}

func TestAuthMessageRoundtrip(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	buf := roundtrip(t, &AuthMessage{Data: data}, MsgAuthMessage)

	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	am, ok := decoded.(*AuthMessage)
	if !ok {
		t.Fatalf("expected *AuthMessage, got %T", decoded)
	}
	if !bytes.Equal(am.Data, data) {
		t.Fatalf("data mismatch: got %v want %v", am.Data, data)
	}
}

func TestTransportDataMessageUnreliableRoundtrip(t *testing.T) {
	buf := roundtrip(t, &TransportDataMessageUnreliable{Counter: 42, Data: []byte("ciphertext")}, MsgTransportDataMessageUnreliable)

	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tdm, ok := decoded.(*TransportDataMessageUnreliable)
	if !ok {
		t.Fatalf("expected *TransportDataMessageUnreliable, got %T", decoded)
	}
	if tdm.Counter != 42 || !bytes.Equal(tdm.Data, []byte("ciphertext")) {
		t.Fatalf("roundtrip mismatch: %+v", tdm)
	}
}

func TestSRPSubMessageRoundtrip(t *testing.T) {
	hello := &srpHostHelloMsg{Username: []byte("user"), Salt: []byte("salt"), PublicB: bytes.Repeat([]byte{0xAB}, 256)}
	am := encodeAuthMessage(srpHostHello, hello.encode())

	inner, err := decodeAuthMessage(am.Data)
	if err != nil {
		t.Fatalf("decodeAuthMessage: %v", err)
	}
	decoded, ok := inner.(*srpHostHelloMsg)
	if !ok {
		t.Fatalf("expected *srpHostHelloMsg, got %T", inner)
	}
	if !bytes.Equal(decoded.Username, hello.Username) || !bytes.Equal(decoded.Salt, hello.Salt) || !bytes.Equal(decoded.PublicB, hello.PublicB) {
		t.Fatalf("roundtrip mismatch")
	}
}
