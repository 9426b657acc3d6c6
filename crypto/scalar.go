package crypto

import (
	"fmt"
	"io"

	"filippo.io/edwards25519"

	"github.com/opd-ai/cryptonote/keccak"
)

var (
	scalarZero     = edwards25519.NewScalar()
	scalarMinusOne = edwards25519.NewScalar().Subtract(scalarZero, mustScalar(1))
)

func mustScalar(v byte) *edwards25519.Scalar {
	var b [KeySize]byte
	b[0] = v
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}
	return s
}

// parseScalar decodes b and rejects values >= ℓ.
func parseScalar(b []byte) (*edwards25519.Scalar, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	return s, nil
}

// reduce32 interprets a 32-byte hash as a little-endian integer mod ℓ.
func reduce32(h []byte) *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:], h)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err) // unreachable: wide is always 64 bytes
	}
	return s
}

func hashToScalar(parts ...[]byte) *edwards25519.Scalar {
	h := keccak.Fast(parts...)
	return reduce32(h[:])
}

func randomScalar(rng io.Reader) (*edwards25519.Scalar, error) {
	var buf [64]byte
	defer ZeroBytes(buf[:])
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return nil, fmt.Errorf("crypto: read entropy: %w", err)
	}
	return edwards25519.NewScalar().SetUniformBytes(buf[:])
}

func toScalar(s *edwards25519.Scalar) (out Scalar) {
	copy(out[:], s.Bytes())
	return out
}

// CheckScalar reports whether s is reduced mod ℓ.
func CheckScalar(s Scalar) bool {
	_, err := parseScalar(s[:])
	return err == nil
}

// RandomScalar samples 64 bytes from rng and reduces them mod ℓ.
func RandomScalar(rng io.Reader) (Scalar, error) {
	s, err := randomScalar(rng)
	if err != nil {
		return Scalar{}, err
	}
	return toScalar(s), nil
}

// HashToScalar is the fast hash of data reduced mod ℓ.
func HashToScalar(data []byte) Scalar {
	return toScalar(hashToScalar(data))
}
