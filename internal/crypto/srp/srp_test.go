package srp

import "testing"

func TestSRPMatchingPasswordsAgreeOnSessionKey(t *testing.T) {
	grp := Group2048
	password := []byte("static")

	verifier, err := GenerateVerifier(grp, password)
	if err != nil {
		t.Fatalf("GenerateVerifier: %v", err)
	}

	host, err := NewHostRole(grp, verifier)
	if err != nil {
		t.Fatalf("NewHostRole: %v", err)
	}

	client, err := NewClientRole(grp, password)
	if err != nil {
		t.Fatalf("NewClientRole: %v", err)
	}

	if err := client.ComputeSessionKey(verifier.Username, verifier.Salt, host.PublicB()); err != nil {
		t.Fatalf("client ComputeSessionKey: %v", err)
	}
	if err := host.ComputeSessionKey(client.PublicA()); err != nil {
		t.Fatalf("host ComputeSessionKey: %v", err)
	}

	if host.SessionKey() != client.SessionKey() {
		t.Fatalf("session keys disagree: host=%x client=%x", host.SessionKey(), client.SessionKey())
	}
}

func TestSRPMismatchedPasswordsDisagree(t *testing.T) {
	grp := Group2048
	verifier, err := GenerateVerifier(grp, []byte("correct-horse"))
	if err != nil {
		t.Fatalf("GenerateVerifier: %v", err)
	}
	host, err := NewHostRole(grp, verifier)
	if err != nil {
		t.Fatalf("NewHostRole: %v", err)
	}
	client, err := NewClientRole(grp, []byte("wrong-password"))
	if err != nil {
		t.Fatalf("NewClientRole: %v", err)
	}

	if err := client.ComputeSessionKey(verifier.Username, verifier.Salt, host.PublicB()); err != nil {
		t.Fatalf("client ComputeSessionKey: %v", err)
	}
	if err := host.ComputeSessionKey(client.PublicA()); err != nil {
		t.Fatalf("host ComputeSessionKey: %v", err)
	}

	if host.SessionKey() == client.SessionKey() {
		t.Fatalf("expected session keys to disagree on mismatched passwords")
	}
}

func TestZeroPublicEphemeralRejected(t *testing.T) {
	grp := Group2048
	verifier, err := GenerateVerifier(grp, []byte("pw"))
	if err != nil {
		t.Fatalf("GenerateVerifier: %v", err)
	}
	host, err := NewHostRole(grp, verifier)
	if err != nil {
		t.Fatalf("NewHostRole: %v", err)
	}
	zero := make([]byte, grp.Size())
	if err := host.ComputeSessionKey(zero); err != ErrInvalidPublicEphemeral {
		t.Fatalf("expected ErrInvalidPublicEphemeral, got %v", err)
	}
}
