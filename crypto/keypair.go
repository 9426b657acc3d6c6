package crypto

import (
	"fmt"
	"io"

	"filippo.io/edwards25519"
)

// KeyPair is a CryptoNote key pair: a secret scalar and its public point.
type KeyPair struct {
	Public PublicKey
	Secret SecretKey
}

// GenerateKeyPair draws a fresh secret scalar from rng and derives its
// public key.
func GenerateKeyPair(rng io.Reader) (*KeyPair, error) {
	logger := NewLogger("GenerateKeyPair")
	logger.Entry("generating key pair")

	x, err := randomScalar(rng)
	if err != nil {
		logger.WithError(err, "entropy_failure", "random_scalar").Error("Key generation failed")
		return nil, err
	}

	kp := &KeyPair{}
	copy(kp.Secret[:], x.Bytes())
	copy(kp.Public[:], new(edwards25519.Point).ScalarBaseMult(x).Bytes())

	logger.WithFields(SecureFieldHash(kp.Public[:], "public_key")).Exit()
	return kp, nil
}

// SecretToPublic returns x·G. It fails if sec is not reduced mod ℓ.
func SecretToPublic(sec SecretKey) (PublicKey, error) {
	x, err := parseScalar(sec[:])
	if err != nil {
		return PublicKey{}, fmt.Errorf("secret key: %w", err)
	}
	var pub PublicKey
	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(x).Bytes())
	return pub, nil
}

// FromSecretKey builds the key pair for an existing secret key.
func FromSecretKey(sec SecretKey) (*KeyPair, error) {
	pub, err := SecretToPublic(sec)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Public: pub, Secret: sec}, nil
}
