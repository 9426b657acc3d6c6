package crypto

import (
	"fmt"
	"io"

	"filippo.io/edwards25519"

	"github.com/opd-ai/cryptonote/types"
)

// GenerateRingSignature signs prefix as one anonymous member of pubs. sec
// must open pubs[secIndex] and image must equal its key image. Random
// scalars are drawn from rng in ring order: k for the signer, then c and r
// for every other member.
func GenerateRingSignature(prefix types.Hash, image KeyImage, pubs []PublicKey, sec SecretKey, secIndex int, rng io.Reader) (RingSignature, error) {
	logger := NewLogger("GenerateRingSignature").WithField("ring_size", len(pubs))

	if len(pubs) == 0 || secIndex < 0 || secIndex >= len(pubs) {
		return nil, fmt.Errorf("%w: %d members, signer index %d", ErrMalformedRing, len(pubs), secIndex)
	}
	x, err := parseScalar(sec[:])
	if err != nil {
		return nil, fmt.Errorf("secret key: %w", err)
	}
	if !opens(x, pubs[secIndex]) {
		logger.Warn("Secret key does not open signer's ring member")
		return nil, ErrKeyMismatch
	}
	img, err := decodePoint(image[:])
	if err != nil {
		return nil, fmt.Errorf("key image: %w", err)
	}
	if new(edwards25519.Point).ScalarMult(x, hashToEC(pubs[secIndex][:])).Equal(img) != 1 {
		logger.Warn("Key image does not match signer")
		return nil, ErrKeyMismatch
	}

	n := len(pubs)
	cs := make([]*edwards25519.Scalar, n)
	rs := make([]*edwards25519.Scalar, n)
	sum := edwards25519.NewScalar()
	buf := make([]byte, 0, KeySize+2*KeySize*n)
	buf = append(buf, prefix[:]...)

	var k *edwards25519.Scalar
	for i := range pubs {
		hp := hashToEC(pubs[i][:])
		var l, r *edwards25519.Point
		if i == secIndex {
			if k, err = randomScalar(rng); err != nil {
				return nil, err
			}
			l = new(edwards25519.Point).ScalarBaseMult(k)
			r = new(edwards25519.Point).ScalarMult(k, hp)
		} else {
			p, err := decodePoint(pubs[i][:])
			if err != nil {
				return nil, fmt.Errorf("ring member %d: %w", i, err)
			}
			if p.Equal(identity) == 1 {
				return nil, fmt.Errorf("%w: member %d is the identity", ErrMalformedRing, i)
			}
			if cs[i], err = randomScalar(rng); err != nil {
				return nil, err
			}
			if rs[i], err = randomScalar(rng); err != nil {
				return nil, err
			}
			l = new(edwards25519.Point).VarTimeDoubleScalarBaseMult(cs[i], p, rs[i])
			r = new(edwards25519.Point).VarTimeMultiScalarMult(
				[]*edwards25519.Scalar{rs[i], cs[i]},
				[]*edwards25519.Point{hp, img},
			)
			sum.Add(sum, cs[i])
		}
		buf = append(buf, l.Bytes()...)
		buf = append(buf, r.Bytes()...)
	}

	cs[secIndex] = edwards25519.NewScalar().Subtract(hashToScalar(buf), sum)
	rs[secIndex] = edwards25519.NewScalar().Negate(cs[secIndex])
	rs[secIndex].MultiplyAdd(rs[secIndex], x, k)

	sigs := make(RingSignature, n)
	for i := range sigs {
		sigs[i] = newSignature(cs[i].Bytes(), rs[i].Bytes())
	}
	logger.Debug("Ring signature generated")
	return sigs, nil
}

// CheckRingSignature verifies sigs over prefix for the ring pubs and key
// image. Every member must pass CheckPublicKey and differ from the
// identity, and the image must lie in the prime-order subgroup.
func CheckRingSignature(prefix types.Hash, image KeyImage, pubs []PublicKey, sigs RingSignature) bool {
	if len(pubs) == 0 || len(sigs) != len(pubs) {
		return false
	}
	img, err := decodePoint(image[:])
	if err != nil || !torsionFree(img) {
		return false
	}

	sum := edwards25519.NewScalar()
	buf := make([]byte, 0, KeySize+2*KeySize*len(pubs))
	buf = append(buf, prefix[:]...)
	for i := range pubs {
		p, err := decodePoint(pubs[i][:])
		if err != nil || !torsionFree(p) || p.Equal(identity) == 1 {
			return false
		}
		c, err := parseScalar(sigs[i][:KeySize])
		if err != nil {
			return false
		}
		r, err := parseScalar(sigs[i][KeySize:])
		if err != nil {
			return false
		}
		l := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(c, p, r)
		rr := new(edwards25519.Point).VarTimeMultiScalarMult(
			[]*edwards25519.Scalar{r, c},
			[]*edwards25519.Point{hashToEC(pubs[i][:]), img},
		)
		buf = append(buf, l.Bytes()...)
		buf = append(buf, rr.Bytes()...)
		sum.Add(sum, c)
	}

	h := hashToScalar(buf)
	return h.Equal(sum) == 1
}
