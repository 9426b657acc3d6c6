// Package chacha implements the ChaCha8 stream cipher used to encrypt
// CryptoNote wallet data, together with the password-based key derivation
// and the IV-prefixed container the wallet stores on disk.
//
// ChaCha8 here is the original Bernstein construction: 8 rounds, a 64-bit
// block counter starting at zero and a 64-bit IV. Encryption and decryption
// are the same operation.
package chacha

import (
	"errors"
	"fmt"
	"io"

	"github.com/aead/chacha20/chacha"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/cryptonote/crypto"
	"github.com/opd-ai/cryptonote/cryptonight"
	"github.com/opd-ai/cryptonote/limits"
)

const (
	// KeySize is the ChaCha key size in bytes.
	KeySize = chacha.KeySize
	// IVSize is the ChaCha IV size in bytes.
	IVSize = chacha.NonceSize
	// Rounds is the number of ChaCha rounds.
	Rounds = 8
)

// ErrSealedTooShort is returned by Open for input shorter than an IV.
var ErrSealedTooShort = errors.New("chacha: sealed data shorter than IV")

// Key is a ChaCha8 key.
type Key [KeySize]byte

// IV is a ChaCha8 initialisation vector.
type IV [IVSize]byte

// Wipe zeroes the key in place.
func (k *Key) Wipe() {
	crypto.ZeroBytes(k[:])
}

// KeyFromPassword derives a key as the first 32 bytes of the variant-0 slow
// hash of password. The derivation is deliberately expensive.
func KeyFromPassword(password []byte) (Key, error) {
	h, err := cryptonight.Sum(password, cryptonight.V0, false)
	if err != nil {
		return Key{}, fmt.Errorf("chacha: derive key: %w", err)
	}
	defer crypto.ZeroBytes(h[:])

	var k Key
	copy(k[:], h[:])
	return k, nil
}

// NewIV draws a fresh IV from rng.
func NewIV(rng io.Reader) (IV, error) {
	var iv IV
	if _, err := io.ReadFull(rng, iv[:]); err != nil {
		return IV{}, fmt.Errorf("chacha: read IV: %w", err)
	}
	return iv, nil
}

// XOR returns data XORed with the keystream for key and iv.
func XOR(key Key, iv IV, data []byte) []byte {
	out := make([]byte, len(data))
	chacha.XORKeyStream(out, data, iv[:], key[:], Rounds)
	return out
}

// Cipher is a streaming ChaCha8 instance. Successive calls continue the
// keystream where the previous call stopped.
type Cipher struct {
	c *chacha.Cipher
}

// NewCipher returns a Cipher positioned at the start of the keystream.
func NewCipher(key Key, iv IV) (*Cipher, error) {
	c, err := chacha.NewCipher(iv[:], key[:], Rounds)
	if err != nil {
		return nil, fmt.Errorf("chacha: new cipher: %w", err)
	}
	return &Cipher{c: c}, nil
}

// XORKeyStream XORs src with the next len(src) keystream bytes into dst.
// dst must be at least as long as src.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	c.c.XORKeyStream(dst, src)
}

// Seal encrypts plaintext under a fresh IV and returns iv ‖ ciphertext.
// Seal does not authenticate; a wrong key opens to garbage.
func Seal(key Key, rng io.Reader, plaintext []byte) ([]byte, error) {
	if err := limits.ValidateProcessingBuffer(plaintext); err != nil {
		return nil, fmt.Errorf("chacha: seal: %w", err)
	}
	iv, err := NewIV(rng)
	if err != nil {
		return nil, err
	}

	out := make([]byte, IVSize+len(plaintext))
	copy(out, iv[:])
	chacha.XORKeyStream(out[IVSize:], plaintext, iv[:], key[:], Rounds)

	logrus.WithFields(logrus.Fields{
		"function": "Seal",
		"package":  "chacha",
		"size":     len(plaintext),
	}).Debug("Sealed data")
	return out, nil
}

// Open reverses Seal.
func Open(key Key, sealed []byte) ([]byte, error) {
	if err := limits.ValidateMinSize(sealed, IVSize); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSealedTooShort, err)
	}
	if err := limits.ValidateProcessingBuffer(sealed[IVSize:]); err != nil {
		return nil, fmt.Errorf("chacha: open: %w", err)
	}

	var iv IV
	copy(iv[:], sealed)
	return XOR(key, iv, sealed[IVSize:]), nil
}
