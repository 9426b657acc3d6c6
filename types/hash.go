// Package types holds the fixed-width value types shared by the hashing,
// proof-of-work and difficulty packages.
package types

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// HashSize is the width of a fast hash or proof-of-work hash in bytes.
const HashSize = 32

// ErrInvalidHashLength is returned when decoding a hash of the wrong width.
var ErrInvalidHashLength = errors.New("invalid hash length")

// Hash is the 32-byte output of the fast hash and of the slow hash.
type Hash [HashSize]byte

// ZeroHash is the all-zero hash.
var ZeroHash Hash

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether every byte of the hash is zero.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// HashFromBytes copies a 32-byte slice into a Hash.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidHashLength, len(b), HashSize)
	}
	copy(h[:], b)
	return h, nil
}

// HashFromString decodes a 64-character hex string into a Hash.
func HashFromString(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("decode hash: %w", err)
	}
	return HashFromBytes(b)
}

// MustHashFromString is like HashFromString but panics on malformed input.
// It is intended for constants and tests.
func MustHashFromString(s string) Hash {
	h, err := HashFromString(s)
	if err != nil {
		panic(err)
	}
	return h
}
