package crypto

import (
	"fmt"
	"io"

	"filippo.io/edwards25519"

	"github.com/opd-ai/cryptonote/types"
)

// GenerateSignature produces a Schnorr signature (c, r) over prefix with
// c = H_s(prefix || P || k·G) and r = k - c·x. The nonce k is drawn from
// rng. sec must open pub.
func GenerateSignature(prefix types.Hash, pub PublicKey, sec SecretKey, rng io.Reader) (Signature, error) {
	x, err := parseScalar(sec[:])
	if err != nil {
		return Signature{}, fmt.Errorf("secret key: %w", err)
	}
	if !opens(x, pub) {
		return Signature{}, ErrKeyMismatch
	}

	k, err := randomScalar(rng)
	if err != nil {
		return Signature{}, err
	}
	commitment := new(edwards25519.Point).ScalarBaseMult(k)
	c := hashToScalar(prefix[:], pub[:], commitment.Bytes())
	r := edwards25519.NewScalar().Negate(c)
	r.MultiplyAdd(r, x, k)

	return newSignature(c.Bytes(), r.Bytes()), nil
}

// CheckSignature verifies sig against prefix and pub. It rejects
// undecodable keys, unreduced scalars, a zero challenge and an identity
// commitment.
func CheckSignature(prefix types.Hash, pub PublicKey, sig Signature) bool {
	p, err := decodePoint(pub[:])
	if err != nil {
		return false
	}
	c, err := parseScalar(sig[:KeySize])
	if err != nil || c.Equal(scalarZero) == 1 {
		return false
	}
	r, err := parseScalar(sig[KeySize:])
	if err != nil {
		return false
	}

	commitment := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(c, p, r)
	if commitment.Equal(identity) == 1 {
		return false
	}
	return hashToScalar(prefix[:], pub[:], commitment.Bytes()).Equal(c) == 1
}

// opens reports whether x·G encodes to pub.
func opens(x *edwards25519.Scalar, pub PublicKey) bool {
	var got PublicKey
	copy(got[:], new(edwards25519.Point).ScalarBaseMult(x).Bytes())
	return got == pub
}
