package crypto

import (
	"encoding/hex"
	"fmt"

	"github.com/opd-ai/cryptonote/limits"
)

// KeySize is the encoded size of every scalar and point type.
const KeySize = limits.KeySize

// SignatureSize is the size of one (c, r) pair.
const SignatureSize = limits.SignatureSize

// Scalar is a 32-byte little-endian integer. Valid scalars are < ℓ.
type Scalar [KeySize]byte

// PublicKey is a compressed Ed25519 point.
type PublicKey [KeySize]byte

// SecretKey is a scalar kept private by its owner.
type SecretKey [KeySize]byte

// KeyDerivation is the shared point 8·b·A from which one-time keys are
// derived.
type KeyDerivation [KeySize]byte

// KeyImage is x·Hp(P); it links ring signatures made with the same key.
type KeyImage [KeySize]byte

// Signature is a (c, r) pair stored as c ‖ r.
type Signature [SignatureSize]byte

// RingSignature holds one (c, r) pair per ring member, in ring order.
type RingSignature []Signature

func (s Scalar) String() string        { return hex.EncodeToString(s[:]) }
func (p PublicKey) String() string     { return hex.EncodeToString(p[:]) }
func (d KeyDerivation) String() string { return hex.EncodeToString(d[:]) }
func (i KeyImage) String() string      { return hex.EncodeToString(i[:]) }
func (s Signature) String() string     { return hex.EncodeToString(s[:]) }

// String never reveals the key material.
func (s SecretKey) String() string { return "SecretKey(redacted)" }

// C returns the challenge half of the signature.
func (s *Signature) C() (c Scalar) {
	copy(c[:], s[:KeySize])
	return c
}

// R returns the response half of the signature.
func (s *Signature) R() (r Scalar) {
	copy(r[:], s[KeySize:])
	return r
}

func newSignature(c, r []byte) (s Signature) {
	copy(s[:KeySize], c)
	copy(s[KeySize:], r)
	return s
}

// ParseSignature decodes a 64-byte c ‖ r signature. The scalars are not
// range checked here; verification rejects out-of-range values.
func ParseSignature(b []byte) (Signature, error) {
	var s Signature
	if err := limits.ValidateExactSize(b, SignatureSize); err != nil {
		return s, fmt.Errorf("crypto: parse signature: %w", err)
	}
	copy(s[:], b)
	return s, nil
}

// ParseRingSignature splits a concatenation of 64-byte pairs for a ring of
// n members.
func ParseRingSignature(b []byte, n int) (RingSignature, error) {
	if err := limits.ValidateSignatureBlob(b); err != nil {
		return nil, fmt.Errorf("crypto: parse ring signature: %w", err)
	}
	if len(b)/SignatureSize != n {
		return nil, fmt.Errorf("%w: %d signatures for %d members", ErrMalformedRing, len(b)/SignatureSize, n)
	}
	sigs := make(RingSignature, len(b)/SignatureSize)
	for i := range sigs {
		copy(sigs[i][:], b[i*SignatureSize:])
	}
	return sigs, nil
}

// Bytes concatenates the pairs in ring order.
func (rs RingSignature) Bytes() []byte {
	out := make([]byte, 0, len(rs)*SignatureSize)
	for i := range rs {
		out = append(out, rs[i][:]...)
	}
	return out
}
