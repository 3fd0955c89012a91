package cipher

import (
	"bytes"
	"testing"
)

func keys(b1, b2 byte) (a, b [32]byte) {
	for i := range a {
		a[i] = b1
		b[i] = b2
	}
	return
}

func TestReliablePeerSymmetry(t *testing.T) {
	keyAB, keyBA := keys(0x11, 0x22)

	host, err := NewReliablePeer(keyAB, keyBA)
	if err != nil {
		t.Fatalf("NewReliablePeer host: %v", err)
	}
	client, err := NewReliablePeer(keyBA, keyAB)
	if err != nil {
		t.Fatalf("NewReliablePeer client: %v", err)
	}

	msg := []byte("host to client, reliable channel")
	ct, err := host.Encrypt(msg)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	pt, err := client.Decrypt(0, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(pt, msg) {
		t.Fatalf("roundtrip mismatch: %q != %q", pt, msg)
	}
}

func TestReliablePeerRejectsOutOfOrder(t *testing.T) {
	keyAB, keyBA := keys(0x33, 0x44)
	host, _ := NewReliablePeer(keyAB, keyBA)
	client, _ := NewReliablePeer(keyBA, keyAB)

	ct0, _ := host.Encrypt([]byte("first"))
	ct1, _ := host.Encrypt([]byte("second"))

	if _, err := client.Decrypt(0, ct0); err != nil {
		t.Fatalf("Decrypt ct0: %v", err)
	}
	if _, err := client.Decrypt(0, ct1); err != ErrOutOfOrder {
		t.Fatalf("expected ErrOutOfOrder replaying counter 0, got %v", err)
	}
	if _, err := client.Decrypt(1, ct1); err != nil {
		t.Fatalf("Decrypt ct1: %v", err)
	}
}

func TestUnreliablePeerSymmetryAndReplay(t *testing.T) {
	keyAB, keyBA := keys(0x55, 0x66)
	host := NewUnreliablePeer(keyAB, keyBA)
	client := NewUnreliablePeer(keyBA, keyAB)

	ct, counter, err := host.Encrypt([]byte("frame bytes"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	pt, err := client.Decrypt(counter, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(pt) != "frame bytes" {
		t.Fatalf("roundtrip mismatch: %q", pt)
	}

	if _, err := client.Decrypt(counter, ct); err != ErrReplay {
		t.Fatalf("expected ErrReplay on duplicate counter, got %v", err)
	}
}

func TestUnreliablePeerTagFailure(t *testing.T) {
	keyAB, keyBA := keys(0x77, 0x88)
	host := NewUnreliablePeer(keyAB, keyBA)
	client := NewUnreliablePeer(keyBA, keyAB)

	ct, counter, _ := host.Encrypt([]byte("tamper me"))
	ct[len(ct)-1] ^= 0xFF

	if _, err := client.Decrypt(counter, ct); err != ErrAuthFailed {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}
