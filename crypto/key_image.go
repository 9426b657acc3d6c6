package crypto

import (
	"fmt"

	"filippo.io/edwards25519"
)

// GenerateKeyImage returns I = x·Hp(P). The same output key always yields
// the same image, which is how double spends are detected. pub is hashed,
// not decoded.
func GenerateKeyImage(pub PublicKey, sec SecretKey) (KeyImage, error) {
	x, err := parseScalar(sec[:])
	if err != nil {
		return KeyImage{}, fmt.Errorf("secret key: %w", err)
	}
	img := new(edwards25519.Point).ScalarMult(x, hashToEC(pub[:]))

	var out KeyImage
	copy(out[:], img.Bytes())
	return out, nil
}
