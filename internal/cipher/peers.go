package cipher

import (
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the AEAD key length for both cipher peers.
const KeySize = chacha20poly1305.KeySize

// buildNonce packs a 64-bit counter into the 12-byte ChaCha20-Poly1305
// nonce (zero-padded high bytes), giving every message a nonce that is
// unique for the lifetime of a single send key.
func buildNonce(counter uint64) [chacha20poly1305.NonceSize]byte {
	var nonce [chacha20poly1305.NonceSize]byte
	binary.LittleEndian.PutUint64(nonce[:8], counter)
	return nonce
}

// ReliablePeer is the AEAD cipher peer for the reliable channel (spec
// section 3): each side holds its own send/recv key and a
// monotonically increasing counter, and decryption requires the
// received counter to strictly increase with each message.
type ReliablePeer struct {
	mu          sync.Mutex
	sendKey     [KeySize]byte
	recvKey     [KeySize]byte
	sendCounter uint64
	recvCounter uint64
	recvSeen    bool
}

// NewReliablePeer installs a reliable cipher peer from the send/recv
// keys produced by WPSKKA's key exchange.
func NewReliablePeer(sendKey, recvKey [32]byte) (*ReliablePeer, error) {
	// Validate the keys are usable AEAD keys up front so construction
	// fails fast instead of on the first Encrypt/Decrypt call.
	if _, err := chacha20poly1305.New(sendKey[:]); err != nil {
		return nil, err
	}
	if _, err := chacha20poly1305.New(recvKey[:]); err != nil {
		return nil, err
	}
	return &ReliablePeer{sendKey: sendKey, recvKey: recvKey}, nil
}

// Encrypt seals plaintext under the next send counter, returning the
// ciphertext. The internal send counter advances automatically.
func (p *ReliablePeer) Encrypt(plaintext []byte) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sendCounter == ^uint64(0) {
		return nil, ErrCounterExhausted
	}
	nonce := buildNonce(p.sendCounter)
	p.sendCounter++

	aead, err := chacha20poly1305.New(p.sendKey[:])
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce[:], plaintext, nil), nil
}

// Decrypt opens ciphertext encrypted with counter. The counter must be
// strictly greater than the last accepted counter (ErrOutOfOrder), and
// the AEAD tag must verify (ErrAuthFailed).
func (p *ReliablePeer) Decrypt(counter uint64, ciphertext []byte) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.recvSeen && counter <= p.recvCounter {
		return nil, ErrOutOfOrder
	}

	aead, err := chacha20poly1305.New(p.recvKey[:])
	if err != nil {
		return nil, err
	}
	nonce := buildNonce(counter)
	plaintext, err := aead.Open(nil, nonce[:], ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}

	p.recvCounter = counter
	p.recvSeen = true
	return plaintext, nil
}

// UnreliablePeer is the AEAD cipher peer for the unreliable channel
// (spec section 3): the sender assigns an explicit counter per packet;
// the receiver validates counters through a 512-bit replay window.
type UnreliablePeer struct {
	mu          sync.Mutex
	sendKey     [KeySize]byte
	recvKey     [KeySize]byte
	sendCounter uint64
	window      *ReplayWindow
}

// NewUnreliablePeer installs an unreliable cipher peer from the
// send/recv keys produced by WPSKKA's key exchange (or, for SEL, from
// the session-triple derivation in spec section 4.6).
func NewUnreliablePeer(sendKey, recvKey [32]byte) *UnreliablePeer {
	return &UnreliablePeer{
		sendKey: sendKey,
		recvKey: recvKey,
		window:  NewReplayWindow(),
	}
}

// Encrypt seals plaintext under a freshly assigned send counter and
// returns both the ciphertext and the counter, which the caller must
// transmit alongside it (spec section 4.4, wrap_unreliable).
func (p *UnreliablePeer) Encrypt(plaintext []byte) (ciphertext []byte, counter uint64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sendCounter == ^uint64(0) {
		return nil, 0, ErrCounterExhausted
	}
	counter = p.sendCounter
	p.sendCounter++

	aead, err := chacha20poly1305.New(p.sendKey[:])
	if err != nil {
		return nil, 0, err
	}
	nonce := buildNonce(counter)
	return aead.Seal(nil, nonce[:], plaintext, nil), counter, nil
}

// Decrypt opens ciphertext sent under counter, first checking the
// replay window and then the AEAD tag. A rejected replay and a failed
// tag are both reported distinctly so callers can log accordingly, but
// spec section 5 treats both as "drop silently" on the unreliable
// channel.
func (p *UnreliablePeer) Decrypt(counter uint64, ciphertext []byte) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.window.Accept(counter) {
		return nil, ErrReplay
	}

	aead, err := chacha20poly1305.New(p.recvKey[:])
	if err != nil {
		return nil, err
	}
	nonce := buildNonce(counter)
	plaintext, err := aead.Open(nil, nonce[:], ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}
