package crypto

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/cryptonote/entropy"
	"github.com/opd-ai/cryptonote/internal/fixture"
	"github.com/opd-ai/cryptonote/types"
)

// vectorRNGSeed seeds the stream the vectors were generated with. Records
// that draw randomness consume it in file order, one permutation per
// scalar, so each record's draws are taken up front and handed to its
// subtest. That keeps a filtered run such as
// -run 'TestVectors/generate_signature' aligned with the file.
const vectorRNGSeed = 42

// scalarDraws reports how many random scalars the record's operation takes.
func scalarDraws(rec fixture.Record) (int, error) {
	switch rec.Name {
	case "random_scalar", "generate_keys", "generate_signature":
		return 1, nil
	case "generate_ring_signature":
		n, err := rec.Uint64(2)
		if err != nil {
			return 0, err
		}
		return 2*int(n) - 1, nil
	}
	return 0, nil
}

type vector struct {
	t   *testing.T
	rec fixture.Record
}

func (v vector) bytes(i int) []byte {
	b, err := v.rec.Bytes(i)
	require.NoError(v.t, err)
	return b
}

func (v vector) b32(i int) [32]byte {
	b, err := v.rec.Bytes32(i)
	require.NoError(v.t, err)
	return b
}

func (v vector) boolean(i int) bool {
	b, err := v.rec.Bool(i)
	require.NoError(v.t, err)
	return b
}

func (v vector) u64(i int) uint64 {
	n, err := v.rec.Uint64(i)
	require.NoError(v.t, err)
	return n
}

func (v vector) pubs(from, n int) []PublicKey {
	out := make([]PublicKey, n)
	for i := range out {
		out[i] = PublicKey(v.b32(from + i))
	}
	return out
}

func TestVectors(t *testing.T) {
	records, err := fixture.Load("testdata/tests.txt")
	require.NoError(t, err)
	require.NotEmpty(t, records)

	rng := entropy.NewDeterministic(vectorRNGSeed)
	for _, rec := range records {
		draws, err := scalarDraws(rec)
		require.NoError(t, err, "line %d", rec.Line)
		stream := make([]byte, 64*draws)
		for i := 0; i < draws; i++ {
			_, err := rng.Read(stream[64*i : 64*(i+1)])
			require.NoError(t, err)
		}

		t.Run(fmt.Sprintf("%s/line%d", rec.Name, rec.Line), func(t *testing.T) {
			r := bytes.NewReader(stream)
			runVector(t, vector{t: t, rec: rec}, r)
			assert.Zero(t, r.Len(), "unused randomness")
		})
	}
}

func runVector(t *testing.T, v vector, rng io.Reader) {
	switch v.rec.Name {
	case "check_scalar":
		assert.Equal(t, v.boolean(1), CheckScalar(Scalar(v.b32(0))))

	case "random_scalar":
		got, err := RandomScalar(rng)
		require.NoError(t, err)
		assert.Equal(t, Scalar(v.b32(0)), got)

	case "hash_to_scalar":
		assert.Equal(t, Scalar(v.b32(1)), HashToScalar(v.bytes(0)))

	case "generate_keys":
		kp, err := GenerateKeyPair(rng)
		require.NoError(t, err)
		assert.Equal(t, PublicKey(v.b32(0)), kp.Public)
		assert.Equal(t, SecretKey(v.b32(1)), kp.Secret)

	case "check_key":
		assert.Equal(t, v.boolean(1), CheckPublicKey(PublicKey(v.b32(0))))

	case "secret_key_to_public_key":
		pub, err := SecretToPublic(SecretKey(v.b32(0)))
		if !v.boolean(1) {
			assert.ErrorIs(t, err, ErrInvalidScalar)
			return
		}
		require.NoError(t, err)
		assert.Equal(t, PublicKey(v.b32(2)), pub)

	case "generate_key_derivation":
		d, err := GenerateKeyDerivation(PublicKey(v.b32(0)), SecretKey(v.b32(1)))
		if !v.boolean(2) {
			assert.ErrorIs(t, err, ErrInvalidPoint)
			assert.Equal(t, KeyDerivation{}, d)
			return
		}
		require.NoError(t, err)
		assert.Equal(t, KeyDerivation(v.b32(3)), d)

	case "derive_public_key":
		out, err := DerivePublicKey(KeyDerivation(v.b32(0)), v.u64(1), PublicKey(v.b32(2)))
		if !v.boolean(3) {
			assert.ErrorIs(t, err, ErrInvalidPoint)
			return
		}
		require.NoError(t, err)
		assert.Equal(t, PublicKey(v.b32(4)), out)

	case "derive_secret_key":
		out, err := DeriveSecretKey(KeyDerivation(v.b32(0)), v.u64(1), SecretKey(v.b32(2)))
		require.NoError(t, err)
		assert.Equal(t, SecretKey(v.b32(3)), out)

	case "underive_public_key":
		out, err := UnderivePublicKey(KeyDerivation(v.b32(0)), v.u64(1), PublicKey(v.b32(2)))
		if !v.boolean(3) {
			assert.ErrorIs(t, err, ErrInvalidPoint)
			return
		}
		require.NoError(t, err)
		assert.Equal(t, PublicKey(v.b32(4)), out)

	case "generate_signature":
		sig, err := GenerateSignature(types.Hash(v.b32(0)), PublicKey(v.b32(1)), SecretKey(v.b32(2)), rng)
		require.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(v.bytes(3)), sig.String())

	case "check_signature":
		sig, err := ParseSignature(v.bytes(2))
		require.NoError(t, err)
		assert.Equal(t, v.boolean(3), CheckSignature(types.Hash(v.b32(0)), PublicKey(v.b32(1)), sig))

	case "hash_to_point":
		assert.Equal(t, PublicKey(v.b32(1)), HashToPoint(types.Hash(v.b32(0))))

	case "hash_to_ec":
		in := v.b32(0)
		assert.Equal(t, PublicKey(v.b32(1)), HashToEC(in[:]))

	case "generate_key_image":
		img, err := GenerateKeyImage(PublicKey(v.b32(0)), SecretKey(v.b32(1)))
		require.NoError(t, err)
		assert.Equal(t, KeyImage(v.b32(2)), img)

	case "generate_ring_signature":
		n := int(v.u64(2))
		require.Equal(t, 6+n, v.rec.Len())
		pubs := v.pubs(3, n)
		sec := SecretKey(v.b32(3 + n))
		idx := int(v.u64(4 + n))
		sigs, err := GenerateRingSignature(types.Hash(v.b32(0)), KeyImage(v.b32(1)), pubs, sec, idx, rng)
		require.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(v.bytes(5+n)), hex.EncodeToString(sigs.Bytes()))

	case "check_ring_signature":
		n := int(v.u64(2))
		require.Equal(t, 5+n, v.rec.Len())
		pubs := v.pubs(3, n)
		sigs, err := ParseRingSignature(v.bytes(3+n), n)
		require.NoError(t, err)
		assert.Equal(t, v.boolean(4+n), CheckRingSignature(types.Hash(v.b32(0)), KeyImage(v.b32(1)), pubs, sigs))

	default:
		t.Fatalf("unknown vector %q", v.rec.Name)
	}
}

// The generated signatures in the vector file must also pass verification,
// independent of the stream that produced them.
func TestGeneratedVectorsVerify(t *testing.T) {
	records, err := fixture.Load("testdata/tests.txt")
	require.NoError(t, err)

	sigs := fixture.Filter(records, "generate_signature")
	require.NotEmpty(t, sigs)
	for _, rec := range sigs {
		v := vector{t: t, rec: rec}
		sig, err := ParseSignature(v.bytes(3))
		require.NoError(t, err)
		assert.True(t, CheckSignature(types.Hash(v.b32(0)), PublicKey(v.b32(1)), sig), "line %d", rec.Line)
	}

	rings := fixture.Filter(records, "generate_ring_signature")
	require.NotEmpty(t, rings)
	for _, rec := range rings {
		v := vector{t: t, rec: rec}
		n := int(v.u64(2))
		ring, err := ParseRingSignature(v.bytes(5+n), n)
		require.NoError(t, err)
		assert.True(t, CheckRingSignature(types.Hash(v.b32(0)), KeyImage(v.b32(1)), v.pubs(3, n), ring), "line %d", rec.Line)
	}
}

func mustKeyPair(t testing.TB, rng *entropy.Deterministic) *KeyPair {
	kp, err := GenerateKeyPair(rng)
	require.NoError(t, err)
	return kp
}

func TestSignatureRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair(entropy.System())
	require.NoError(t, err)
	prefix := types.MustHashFromString("c70652593e59fa2a00ffd4f5e1e2a4fb2f4eb5ffc0f4a0b3c8e8a12ab3d2b9d1")

	sig, err := GenerateSignature(prefix, kp.Public, kp.Secret, entropy.System())
	require.NoError(t, err)
	assert.True(t, CheckSignature(prefix, kp.Public, sig))

	other := prefix
	other[0] ^= 1
	assert.False(t, CheckSignature(other, kp.Public, sig), "wrong prefix")

	tampered := sig
	tampered[40] ^= 0x04
	assert.False(t, CheckSignature(prefix, kp.Public, tampered), "tampered response")

	kp2, err := GenerateKeyPair(entropy.System())
	require.NoError(t, err)
	assert.False(t, CheckSignature(prefix, kp2.Public, sig), "wrong key")
}

func TestGenerateSignatureKeyMismatch(t *testing.T) {
	rng := entropy.NewDeterministic(3)
	a, b := mustKeyPair(t, rng), mustKeyPair(t, rng)

	_, err := GenerateSignature(types.ZeroHash, a.Public, b.Secret, rng)
	assert.ErrorIs(t, err, ErrKeyMismatch)

	_, err = GenerateSignature(types.ZeroHash, a.Public, SecretKey{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, rng)
	assert.ErrorIs(t, err, ErrInvalidScalar)
}

func TestCheckSignatureRejectsDegenerate(t *testing.T) {
	rng := entropy.NewDeterministic(4)
	kp := mustKeyPair(t, rng)

	// c = 0, r = 0 makes the commitment the identity.
	assert.False(t, CheckSignature(types.ZeroHash, kp.Public, Signature{}))

	// c = 0 with any r is refused outright.
	var zeroC Signature
	zeroC[KeySize] = 1
	assert.False(t, CheckSignature(types.ZeroHash, kp.Public, zeroC))
}

func TestRingSignatureRoundTrip(t *testing.T) {
	rng := entropy.NewDeterministic(5)
	prefix := types.MustHashFromString("0fe46b8b6871a9397194f8ecac7382b85cdb81a2f3d092a953b0f6ff90497c1c")

	for n := 1; n <= 5; n++ {
		for s := 0; s < n; s++ {
			t.Run(fmt.Sprintf("n%d/s%d", n, s), func(t *testing.T) {
				pubs := make([]PublicKey, n)
				var signer *KeyPair
				for i := range pubs {
					kp := mustKeyPair(t, rng)
					pubs[i] = kp.Public
					if i == s {
						signer = kp
					}
				}
				img, err := GenerateKeyImage(signer.Public, signer.Secret)
				require.NoError(t, err)

				sigs, err := GenerateRingSignature(prefix, img, pubs, signer.Secret, s, rng)
				require.NoError(t, err)
				require.Len(t, sigs, n)
				assert.True(t, CheckRingSignature(prefix, img, pubs, sigs))

				other := prefix
				other[31] ^= 0x80
				assert.False(t, CheckRingSignature(other, img, pubs, sigs), "wrong prefix")

				bad := append(RingSignature(nil), sigs...)
				bad[n-1][3] ^= 0x10
				assert.False(t, CheckRingSignature(prefix, img, pubs, bad), "tampered pair")

				assert.False(t, CheckRingSignature(prefix, img, pubs, sigs[:n-1]), "short signature")
			})
		}
	}
}

func TestRingSignatureKeyImageLinks(t *testing.T) {
	rng := entropy.NewDeterministic(6)
	signer := mustKeyPair(t, rng)
	img, err := GenerateKeyImage(signer.Public, signer.Secret)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		ring := []PublicKey{mustKeyPair(t, rng).Public, signer.Public, mustKeyPair(t, rng).Public}
		sigs, err := GenerateRingSignature(types.ZeroHash, img, ring, signer.Secret, 1, rng)
		require.NoError(t, err)
		assert.True(t, CheckRingSignature(types.ZeroHash, img, ring, sigs))
	}

	again, err := GenerateKeyImage(signer.Public, signer.Secret)
	require.NoError(t, err)
	assert.Equal(t, img, again)
}

func TestGenerateRingSignatureErrors(t *testing.T) {
	rng := entropy.NewDeterministic(8)
	a, b := mustKeyPair(t, rng), mustKeyPair(t, rng)
	imgA, err := GenerateKeyImage(a.Public, a.Secret)
	require.NoError(t, err)
	imgB, err := GenerateKeyImage(b.Public, b.Secret)
	require.NoError(t, err)
	ring := []PublicKey{a.Public, b.Public}

	tests := []struct {
		name  string
		image KeyImage
		pubs  []PublicKey
		sec   SecretKey
		index int
		want  error
	}{
		{"empty ring", imgA, nil, a.Secret, 0, ErrMalformedRing},
		{"negative index", imgA, ring, a.Secret, -1, ErrMalformedRing},
		{"index past end", imgA, ring, a.Secret, 2, ErrMalformedRing},
		{"secret opens other member", imgA, ring, a.Secret, 1, ErrKeyMismatch},
		{"image of other member", imgB, ring, a.Secret, 0, ErrKeyMismatch},
		{"unreduced secret", imgA, ring, SecretKey{0: 0xed, 31: 0xff}, 0, ErrInvalidScalar},
		{"identity member", imgA, []PublicKey{a.Public, {0: 1}}, a.Secret, 0, ErrMalformedRing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sigs, err := GenerateRingSignature(types.ZeroHash, tt.image, tt.pubs, tt.sec, tt.index, rng)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, sigs)
		})
	}
}

// An identity member contributes nothing to L, so a signature over it is
// easy to complete. Sign such a ring by hand and check it is refused.
func TestCheckRingSignatureRejectsIdentityMember(t *testing.T) {
	rng := entropy.NewDeterministic(10)
	signer := mustKeyPair(t, rng)
	img, err := GenerateKeyImage(signer.Public, signer.Secret)
	require.NoError(t, err)
	pubs := []PublicKey{signer.Public, {0: 1}}
	prefix := types.MustHashFromString("f81a252ff5cade1b4669da4ae8dae2ef7480fa95d3283ae1ba65277e43e6a6fc")

	x, err := parseScalar(signer.Secret[:])
	require.NoError(t, err)
	imgPoint, err := decodePoint(img[:])
	require.NoError(t, err)
	k, err := randomScalar(rng)
	require.NoError(t, err)
	c1, err := randomScalar(rng)
	require.NoError(t, err)
	r1, err := randomScalar(rng)
	require.NoError(t, err)

	buf := append([]byte(nil), prefix[:]...)
	buf = append(buf, new(edwards25519.Point).ScalarBaseMult(k).Bytes()...)
	buf = append(buf, new(edwards25519.Point).ScalarMult(k, hashToEC(pubs[0][:])).Bytes()...)
	buf = append(buf, new(edwards25519.Point).ScalarBaseMult(r1).Bytes()...)
	buf = append(buf, new(edwards25519.Point).VarTimeMultiScalarMult(
		[]*edwards25519.Scalar{r1, c1},
		[]*edwards25519.Point{hashToEC(pubs[1][:]), imgPoint},
	).Bytes()...)

	c0 := edwards25519.NewScalar().Subtract(hashToScalar(buf), c1)
	r0 := edwards25519.NewScalar().Negate(c0)
	r0.MultiplyAdd(r0, x, k)
	sigs := RingSignature{newSignature(c0.Bytes(), r0.Bytes()), newSignature(c1.Bytes(), r1.Bytes())}

	assert.True(t, CheckPublicKey(pubs[1]), "identity passes the key check on its own")
	assert.False(t, CheckRingSignature(prefix, img, pubs, sigs))
}

func TestStealthAddressRoundTrip(t *testing.T) {
	rng := entropy.NewDeterministic(9)
	view, spend := mustKeyPair(t, rng), mustKeyPair(t, rng)
	tx := mustKeyPair(t, rng)

	sender, err := GenerateKeyDerivation(view.Public, tx.Secret)
	require.NoError(t, err)
	receiver, err := GenerateKeyDerivation(tx.Public, view.Secret)
	require.NoError(t, err)
	require.Equal(t, sender, receiver)

	for _, index := range []uint64{0, 1, 127, 128, 1 << 40} {
		out, err := DerivePublicKey(sender, index, spend.Public)
		require.NoError(t, err)

		sec, err := DeriveSecretKey(receiver, index, spend.Secret)
		require.NoError(t, err)
		pub, err := SecretToPublic(sec)
		require.NoError(t, err)
		assert.Equal(t, out, pub, "index %d", index)

		base, err := UnderivePublicKey(receiver, index, out)
		require.NoError(t, err)
		assert.Equal(t, spend.Public, base, "index %d", index)
	}
}

func TestDerivationToScalarVarint(t *testing.T) {
	var d KeyDerivation
	for i := range d {
		d[i] = byte(i)
	}
	// 300 encodes as ac 02.
	want := HashToScalar(append(append([]byte{}, d[:]...), 0xac, 0x02))
	assert.Equal(t, want, DerivationToScalar(d, 300))
	assert.NotEqual(t, DerivationToScalar(d, 0), DerivationToScalar(d, 1))
}

func TestCheckPublicKey(t *testing.T) {
	identityKey := PublicKey{1}
	assert.True(t, CheckPublicKey(identityKey), "identity lies in the subgroup")

	// Order-2 point (0, -1).
	minusOne := PublicKey{0xec, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}
	assert.False(t, CheckPublicKey(minusOne), "torsion point")

	// Negative zero encoding of the identity.
	negZero := PublicKey{1}
	negZero[31] = 0x80
	assert.False(t, CheckPublicKey(negZero), "non-canonical encoding")
}

func TestHashToPointLandsOnCurve(t *testing.T) {
	rng := entropy.NewDeterministic(10)
	for i := 0; i < 64; i++ {
		var h types.Hash
		_, err := rng.Read(h[:])
		require.NoError(t, err)

		p := HashToPoint(h)
		_, err = decodePoint(p[:])
		require.NoError(t, err, "hash %s", h)

		ec := HashToEC(h[:])
		assert.True(t, CheckPublicKey(ec), "hash %s", h)
	}
}

func TestParseSignature(t *testing.T) {
	_, err := ParseSignature(make([]byte, SignatureSize-1))
	assert.Error(t, err)

	sig, err := ParseSignature(make([]byte, SignatureSize))
	require.NoError(t, err)
	assert.Equal(t, Scalar{}, sig.C())
	assert.Equal(t, Scalar{}, sig.R())

	_, err = ParseRingSignature(nil, 0)
	assert.Error(t, err)
	_, err = ParseRingSignature(make([]byte, 2*SignatureSize), 3)
	assert.ErrorIs(t, err, ErrMalformedRing)
	rs, err := ParseRingSignature(make([]byte, 3*SignatureSize), 3)
	require.NoError(t, err)
	assert.Len(t, rs.Bytes(), 3*SignatureSize)
}

func TestSecretKeyStringRedacted(t *testing.T) {
	sec := SecretKey{0xde, 0xad}
	assert.NotContains(t, sec.String(), "dead")
	assert.NotContains(t, fmt.Sprint(sec), "dead")
}
