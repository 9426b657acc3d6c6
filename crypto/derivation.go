package crypto

import (
	"encoding/binary"
	"fmt"

	"filippo.io/edwards25519"
)

// GenerateKeyDerivation computes the shared secret 8·(b·A) between a
// public key A and a secret key b. Both stealth-address sides arrive at the
// same value: the sender from (view public, tx secret) and the receiver
// from (tx public, view secret).
func GenerateKeyDerivation(pub PublicKey, sec SecretKey) (KeyDerivation, error) {
	a, err := decodePoint(pub[:])
	if err != nil {
		NewLogger("GenerateKeyDerivation").
			WithFields(SecureFieldHash(pub[:], "public_key")).
			WithError(err, "invalid_point", "decode_public_key").
			Debug("Rejected public key")
		return KeyDerivation{}, err
	}
	b, err := parseScalar(sec[:])
	if err != nil {
		return KeyDerivation{}, fmt.Errorf("secret key: %w", err)
	}

	d := new(edwards25519.Point).ScalarMult(b, a)
	d.MultByCofactor(d)

	var out KeyDerivation
	copy(out[:], d.Bytes())
	return out, nil
}

func derivationScalar(d KeyDerivation, index uint64) *edwards25519.Scalar {
	var buf [KeySize + binary.MaxVarintLen64]byte
	copy(buf[:], d[:])
	n := binary.PutUvarint(buf[KeySize:], index)
	return hashToScalar(buf[:KeySize+n])
}

// DerivationToScalar returns H_s(d || varint(index)), the per-output
// scalar for output index.
func DerivationToScalar(d KeyDerivation, index uint64) Scalar {
	return toScalar(derivationScalar(d, index))
}

// DerivePublicKey returns the one-time output key s·G + B, where s is the
// derivation scalar for index and B the recipient's spend public key.
func DerivePublicKey(d KeyDerivation, index uint64, base PublicKey) (PublicKey, error) {
	b, err := decodePoint(base[:])
	if err != nil {
		return PublicKey{}, err
	}
	p := new(edwards25519.Point).ScalarBaseMult(derivationScalar(d, index))
	p.Add(p, b)

	var out PublicKey
	copy(out[:], p.Bytes())
	return out, nil
}

// UnderivePublicKey inverts DerivePublicKey: it returns P - s·G. A wallet
// uses it to test whether an output belongs to a spend key.
func UnderivePublicKey(d KeyDerivation, index uint64, derived PublicKey) (PublicKey, error) {
	p, err := decodePoint(derived[:])
	if err != nil {
		return PublicKey{}, err
	}
	sg := new(edwards25519.Point).ScalarBaseMult(derivationScalar(d, index))
	p.Subtract(p, sg)

	var out PublicKey
	copy(out[:], p.Bytes())
	return out, nil
}

// DeriveSecretKey returns s + b, the secret key opening DerivePublicKey's
// output.
func DeriveSecretKey(d KeyDerivation, index uint64, base SecretKey) (SecretKey, error) {
	b, err := parseScalar(base[:])
	if err != nil {
		return SecretKey{}, fmt.Errorf("base secret key: %w", err)
	}
	x := edwards25519.NewScalar().Add(derivationScalar(d, index), b)

	var out SecretKey
	copy(out[:], x.Bytes())
	return out, nil
}
