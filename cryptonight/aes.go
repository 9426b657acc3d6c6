package cryptonight

import "math/bits"

// The slow hash needs single AES rounds with caller-supplied round keys,
// which crypto/aes does not expose. The tables below are the standard
// encryption T-tables for little-endian column words.

var (
	sbox [256]byte
	te0  [256]uint32
	te1  [256]uint32
	te2  [256]uint32
	te3  [256]uint32
)

func init() {
	// Walk the multiplicative group with generator 3 to build the inverse
	// map, then apply the affine transform.
	var p, q byte = 1, 1
	for {
		p = p ^ (p << 1) ^ byte(int8(p)>>7)&0x1b
		q ^= q << 1
		q ^= q << 2
		q ^= q << 4
		q ^= byte(int8(q)>>7) & 0x09
		x := q ^ bits.RotateLeft8(q, 1) ^ bits.RotateLeft8(q, 2) ^
			bits.RotateLeft8(q, 3) ^ bits.RotateLeft8(q, 4)
		sbox[p] = x ^ 0x63
		if p == 1 {
			break
		}
	}
	sbox[0] = 0x63

	for i := 0; i < 256; i++ {
		s := uint32(sbox[i])
		s2 := uint32(xtime(sbox[i]))
		s3 := s2 ^ s
		w := s2 | s<<8 | s<<16 | s3<<24
		te0[i] = w
		te1[i] = bits.RotateLeft32(w, 8)
		te2[i] = bits.RotateLeft32(w, 16)
		te3[i] = bits.RotateLeft32(w, 24)
	}
}

func xtime(b byte) byte {
	return b<<1 ^ byte(int8(b)>>7)&0x1b
}

// block is one 16-byte AES state as four little-endian column words.
type block [4]uint32

// aesRound performs SubBytes, ShiftRows, MixColumns and AddRoundKey.
func aesRound(s *block, k *block) {
	s0, s1, s2, s3 := s[0], s[1], s[2], s[3]
	s[0] = te0[byte(s0)] ^ te1[byte(s1>>8)] ^ te2[byte(s2>>16)] ^ te3[byte(s3>>24)] ^ k[0]
	s[1] = te0[byte(s1)] ^ te1[byte(s2>>8)] ^ te2[byte(s3>>16)] ^ te3[byte(s0>>24)] ^ k[1]
	s[2] = te0[byte(s2)] ^ te1[byte(s3>>8)] ^ te2[byte(s0>>16)] ^ te3[byte(s1>>24)] ^ k[2]
	s[3] = te0[byte(s3)] ^ te1[byte(s0>>8)] ^ te2[byte(s1>>16)] ^ te3[byte(s2>>24)] ^ k[3]
}

// pseudoRounds is the ten-round AES variant used to fill and drain the
// scratchpad: every round is a full round and there is no initial key
// whitening.
func pseudoRounds(s *block, keys *roundKeys) {
	for i := range keys {
		aesRound(s, &keys[i])
	}
}

const pseudoRoundCount = 10

type roundKeys [pseudoRoundCount]block

var rcon = [...]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

// expandKey runs the AES-256 key schedule over a 32-byte key and keeps the
// first ten round keys.
func expandKey(key []byte, out *roundKeys) {
	const words = 4 * pseudoRoundCount
	var w [words]uint32
	for i := 0; i < 8; i++ {
		w[i] = uint32(key[4*i]) | uint32(key[4*i+1])<<8 | uint32(key[4*i+2])<<16 | uint32(key[4*i+3])<<24
	}
	for i := 8; i < words; i++ {
		t := w[i-1]
		switch i % 8 {
		case 0:
			t = subWord(bits.RotateLeft32(t, -8)) ^ uint32(rcon[i/8-1])
		case 4:
			t = subWord(t)
		}
		w[i] = w[i-8] ^ t
	}
	for r := range out {
		copy(out[r][:], w[4*r:4*r+4])
	}
}

func subWord(w uint32) uint32 {
	return uint32(sbox[byte(w)]) | uint32(sbox[byte(w>>8)])<<8 |
		uint32(sbox[byte(w>>16)])<<16 | uint32(sbox[byte(w>>24)])<<24
}
