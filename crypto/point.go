package crypto

import (
	"bytes"
	"fmt"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"

	"github.com/opd-ai/cryptonote/keccak"
	"github.com/opd-ai/cryptonote/types"
)

var identity = edwards25519.NewIdentityPoint()

// decodePoint accepts only canonical encodings: y < p and no negative zero.
func decodePoint(b []byte) (*edwards25519.Point, error) {
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if !bytes.Equal(p.Bytes(), b) {
		return nil, fmt.Errorf("%w: non-canonical encoding", ErrInvalidPoint)
	}
	return p, nil
}

// torsionFree reports whether ℓ·P is the identity, computed as
// (ℓ-1)·P + P.
func torsionFree(p *edwards25519.Point) bool {
	t := new(edwards25519.Point).ScalarMult(scalarMinusOne, p)
	t.Add(t, p)
	return t.Equal(identity) == 1
}

// CheckPublicKey reports whether pub decodes canonically to a point in the
// prime-order subgroup.
func CheckPublicKey(pub PublicKey) bool {
	p, err := decodePoint(pub[:])
	if err != nil {
		return false
	}
	return torsionFree(p)
}

// Field constants for the hash-to-point map, with A = 486662 the Montgomery
// coefficient of Curve25519.
var (
	feZero     = new(field.Element)
	feOne      = new(field.Element).One()
	feNineteen = new(field.Element)
	feMinusA   = new(field.Element)
	feMinusA2  = new(field.Element)
	feSqrtM1   = new(field.Element)
	feFFFB1    = new(field.Element)
	feFFFB2    = new(field.Element)
	feFFFB3    = new(field.Element)
	feFFFB4    = new(field.Element)
)

func feFromUint(v uint32) *field.Element {
	var b [32]byte
	b[0], b[1], b[2], b[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
	e, err := new(field.Element).SetBytes(b[:])
	if err != nil {
		panic(err)
	}
	return e
}

func feSqrt(v *field.Element) *field.Element {
	r, wasSquare := new(field.Element).SqrtRatio(v, feOne)
	if wasSquare != 1 {
		panic("crypto: hash-to-point constant is not a square")
	}
	return r
}

func init() {
	a := feFromUint(486662)
	feNineteen.Set(feFromUint(19))
	feMinusA.Negate(a)
	feMinusA2.Square(a)
	feMinusA2.Negate(feMinusA2)

	minusOne := new(field.Element).Negate(feOne)
	feSqrtM1.Set(feSqrt(minusOne))

	// A(A+2)
	aa2 := new(field.Element).Add(a, feFromUint(2))
	aa2.Multiply(aa2, a)

	t := new(field.Element)
	feFFFB1.Set(feSqrt(t.Negate(t.Add(aa2, aa2))))
	feFFFB2.Set(feSqrt(t.Add(aa2, aa2)))
	feFFFB3.Set(feSqrt(t.Negate(t.Multiply(feSqrtM1, aa2))))
	feFFFB4.Set(feSqrt(t.Multiply(feSqrtM1, aa2)))
}

// divPowM1 sets r = u·v³·(u·v⁷)^((p-5)/8).
func divPowM1(r, u, v *field.Element) {
	var v3, uv7 field.Element
	v3.Square(v)
	v3.Multiply(&v3, v)
	uv7.Square(&v3)
	uv7.Multiply(&uv7, v)
	uv7.Multiply(&uv7, u)
	r.Pow22523(&uv7)
	r.Multiply(r, &v3)
	r.Multiply(r, u)
}

// hashToPointBytes maps 32 bytes to a curve point without clearing the
// cofactor. All 256 input bits are used: bit 255 adds 2^255 ≡ 19.
func hashToPointBytes(h []byte) [KeySize]byte {
	var u, v, w, x, y, z, rX field.Element
	if _, err := u.SetBytes(h); err != nil {
		panic(err) // unreachable: h is 32 bytes
	}
	if h[31]&0x80 != 0 {
		u.Add(&u, feNineteen)
	}

	v.Square(&u)
	v.Add(&v, &v) // 2u²
	w.Add(&v, feOne)
	x.Square(&w)
	y.Multiply(feMinusA2, &v)
	x.Add(&x, &y) // w² - 2A²u²
	divPowM1(&rX, &w, &x)
	y.Square(&rX)
	x.Multiply(&y, &x)
	z.Set(feMinusA)

	negative := false
	switch {
	case y.Subtract(&w, &x).Equal(feZero) == 1:
		rX.Multiply(&rX, feFFFB2)
	case y.Add(&w, &x).Equal(feZero) == 1:
		rX.Multiply(&rX, feFFFB1)
	default:
		negative = true
	}

	sign := 0
	if negative {
		x.Multiply(&x, feSqrtM1)
		if y.Subtract(&w, &x).Equal(feZero) == 0 {
			rX.Multiply(&rX, feFFFB3)
		} else {
			rX.Multiply(&rX, feFFFB4)
		}
		sign = 1
	} else {
		rX.Multiply(&rX, &u)
		z.Multiply(&z, &v)
	}
	if rX.IsNegative() != sign {
		rX.Negate(&rX)
	}

	var bigX, bigY, bigZ, zInv field.Element
	bigZ.Add(&z, &w)
	bigY.Subtract(&z, &w)
	bigX.Multiply(&rX, &bigZ)
	zInv.Invert(&bigZ)
	bigX.Multiply(&bigX, &zInv)
	bigY.Multiply(&bigY, &zInv)

	var out [KeySize]byte
	copy(out[:], bigY.Bytes())
	out[31] |= byte(bigX.IsNegative() << 7)
	return out
}

// hashToEC is Hp: fast hash, map to the curve, multiply by the cofactor.
func hashToEC(data []byte) *edwards25519.Point {
	h := keccak.Fast(data)
	enc := hashToPointBytes(h[:])
	p, err := new(edwards25519.Point).SetBytes(enc[:])
	if err != nil {
		panic(err) // unreachable: the map always lands on the curve
	}
	return p.MultByCofactor(p)
}

// HashToPoint maps a hash to a curve point. The result may carry a small
// torsion component; HashToEC clears it.
func HashToPoint(h types.Hash) PublicKey {
	return PublicKey(hashToPointBytes(h[:]))
}

// HashToEC returns 8·HashToPoint(fast_hash(data)), the Hp used by key
// images and ring signatures.
func HashToEC(data []byte) PublicKey {
	var out PublicKey
	copy(out[:], hashToEC(data).Bytes())
	return out
}
