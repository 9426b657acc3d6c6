// Package keccak implements the Keccak-1600 primitives used by CryptoNote:
// the raw permutation over a 200-byte state, the full-state absorb that seeds
// the slow hash, and the 32-byte fast hash.
//
// The fast hash is Keccak-256 with the original Keccak padding (0x01 ... 0x80),
// not the FIPS 202 SHA3-256 padding:
//
//	h := keccak.Fast([]byte("message"))
//	fmt.Println(h) // hex
package keccak

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/crypto/sha3"

	"github.com/opd-ai/cryptonote/types"
)

const (
	// StateSize is the width of the Keccak-1600 state in bytes.
	StateSize = 200

	// Rate is the number of bytes absorbed per permutation (capacity 512).
	Rate = 136

	// Rounds is the number of rounds of Keccak-f[1600].
	Rounds = 24
)

var roundConstants = [Rounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

var rotations = [24]int{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14, 27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

var piLanes = [24]int{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4, 15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

// State is the Keccak-1600 state as 25 little-endian lanes.
type State [25]uint64

// Permute applies the 24-round Keccak-f[1600] permutation in place.
func (s *State) Permute() {
	var bc [5]uint64
	for round := 0; round < Rounds; round++ {
		// theta
		for i := 0; i < 5; i++ {
			bc[i] = s[i] ^ s[i+5] ^ s[i+10] ^ s[i+15] ^ s[i+20]
		}
		for i := 0; i < 5; i++ {
			t := bc[(i+4)%5] ^ bits.RotateLeft64(bc[(i+1)%5], 1)
			for j := 0; j < 25; j += 5 {
				s[j+i] ^= t
			}
		}

		// rho and pi
		t := s[1]
		for i := 0; i < 24; i++ {
			j := piLanes[i]
			bc[0] = s[j]
			s[j] = bits.RotateLeft64(t, rotations[i])
			t = bc[0]
		}

		// chi
		for j := 0; j < 25; j += 5 {
			for i := 0; i < 5; i++ {
				bc[i] = s[j+i]
			}
			for i := 0; i < 5; i++ {
				s[j+i] ^= (^bc[(i+1)%5]) & bc[(i+2)%5]
			}
		}

		// iota
		s[0] ^= roundConstants[round]
	}
}

// Reset zeroes the state.
func (s *State) Reset() {
	*s = State{}
}

// Absorb resets the state and absorbs data with the CryptoNote padding rule,
// leaving the permuted state ready to be read out in full.
func (s *State) Absorb(data []byte) {
	s.Reset()
	for len(data) >= Rate {
		s.xorBlock(data[:Rate])
		s.Permute()
		data = data[Rate:]
	}

	var last [Rate]byte
	n := copy(last[:], data)
	last[n] = 0x01
	last[Rate-1] |= 0x80
	s.xorBlock(last[:])
	s.Permute()
}

func (s *State) xorBlock(block []byte) {
	for i := 0; i < Rate/8; i++ {
		s[i] ^= binary.LittleEndian.Uint64(block[i*8:])
	}
}

// Bytes serialises the state little-endian.
func (s *State) Bytes() [StateSize]byte {
	var out [StateSize]byte
	s.PutBytes(out[:])
	return out
}

// PutBytes writes the little-endian state into dst, which must hold at least
// StateSize bytes.
func (s *State) PutBytes(dst []byte) {
	_ = dst[StateSize-1]
	for i, lane := range s {
		binary.LittleEndian.PutUint64(dst[i*8:], lane)
	}
}

// SetBytes loads a 200-byte little-endian state.
func (s *State) SetBytes(src []byte) {
	_ = src[StateSize-1]
	for i := range s {
		s[i] = binary.LittleEndian.Uint64(src[i*8:])
	}
}

// Sum1600 absorbs data and returns the complete 200-byte state.
func Sum1600(data []byte) [StateSize]byte {
	var s State
	s.Absorb(data)
	return s.Bytes()
}

// Fast is the CryptoNote fast hash: Keccak-256 over the concatenation of
// parts. It is deterministic and cannot fail.
func Fast(parts ...[]byte) types.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out types.Hash
	h.Sum(out[:0])
	return out
}
