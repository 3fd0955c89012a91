package crypto

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HKDFExpandSHA256 runs HKDF-Expand (no extract step, no salt) over ikm
// with the given info string, producing length bytes of output keying
// material. This is the primitive behind kdf1/kdf2/kdf4 below.
func HKDFExpandSHA256(ikm, info []byte, length int) ([]byte, error) {
	r := hkdf.Expand(sha256.New, ikm, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

// KDF1 derives a single 32-byte key from ikm. Used to derive the SRP
// MAC-binding key (kdf1(srp_session_key)) in spec section 4.2/4.4.
func KDF1(ikm []byte) ([32]byte, error) {
	out, err := HKDFExpandSHA256(ikm, nil, 32)
	var result [32]byte
	if err != nil {
		return result, err
	}
	copy(result[:], out)
	return result, nil
}

// KDF2 derives two 32-byte keys from ikm in one expansion, splitting
// the 64-byte output in declaration order.
func KDF2(ikm []byte) (a, b [32]byte, err error) {
	out, err := HKDFExpandSHA256(ikm, nil, 64)
	if err != nil {
		return a, b, err
	}
	copy(a[:], out[:32])
	copy(b[:], out[32:64])
	return a, b, nil
}

// KDF4 derives four 32-byte keys from ikm in one expansion. This backs
// dh(): the 128-byte HKDF output is split, in order, into
// send-reliable, recv-reliable, send-unreliable, recv-unreliable keys
// from the initiator's perspective (spec section 4.2).
func KDF4(ikm []byte) (a, b, c, d [32]byte, err error) {
	out, err := HKDFExpandSHA256(ikm, nil, 128)
	if err != nil {
		return a, b, c, d, err
	}
	copy(a[:], out[0:32])
	copy(b[:], out[32:64])
	copy(c[:], out[64:96])
	copy(d[:], out[96:128])
	return a, b, c, d, nil
}

// ExchangeKeys holds the four AEAD keys produced by a WPSKKA ECDH key
// exchange, already assigned to this side's send/recv roles.
type ExchangeKeys struct {
	SendReliable   [32]byte
	RecvReliable   [32]byte
	SendUnreliable [32]byte
	RecvUnreliable [32]byte
}

// DeriveExchangeKeys implements dh(my_private, peer_public) from spec
// section 4.2: ECDH agreement fed through HKDF (no salt, empty info),
// expanded to four 32-byte keys. asResponder controls the send/recv
// assignment so that one side's send key equals the other side's recv
// key: the initiator takes the HKDF output in (send-reliable,
// recv-reliable, send-unreliable, recv-unreliable) order and the
// responder takes the mirrored (recv-reliable, send-reliable,
// recv-unreliable, send-unreliable) order.
func DeriveExchangeKeys(kp *KeyPair, peerPublic []byte, asResponder bool) (*ExchangeKeys, error) {
	secret, err := kp.ECDH(peerPublic)
	if err != nil {
		return nil, err
	}
	k0, k1, k2, k3, err := KDF4(secret)
	if err != nil {
		return nil, err
	}
	if !asResponder {
		return &ExchangeKeys{
			SendReliable:   k0,
			RecvReliable:   k1,
			SendUnreliable: k2,
			RecvUnreliable: k3,
		}, nil
	}
	return &ExchangeKeys{
		SendReliable:   k1,
		RecvReliable:   k0,
		SendUnreliable: k3,
		RecvUnreliable: k2,
	}, nil
}
