// Package limits provides centralized size limits for CryptoNote inputs.
package limits

import (
	"errors"
	"fmt"
	"math"
)

const (
	// KeySize is the encoded size of scalars, points, hashes and key images.
	KeySize = 32

	// SignatureSize is the encoded size of one (c, r) signature pair.
	SignatureSize = 2 * KeySize

	// KeccakStateSize is the Keccak-1600 state width; a prehashed slow-hash
	// input is exactly this long.
	KeccakStateSize = 200

	// Variant1MinInput is the minimum input length for the variant-1 slow
	// hash. The tweak reads the eight bytes starting at offset 35.
	Variant1MinInput = 43

	// Variant1TweakOffset is where the variant-1 tweak starts in the input.
	Variant1TweakOffset = 35

	// MaxBlockSize is the largest block size accepted by the penalty formula.
	MaxBlockSize = math.MaxUint32

	// MaxProcessingBuffer is the absolute maximum for any untrusted input
	// (1MB limit).
	MaxProcessingBuffer = 1024 * 1024
)

var (
	// ErrInputTooShort indicates an input below a required minimum length.
	ErrInputTooShort = errors.New("input too short")

	// ErrInputTooLarge indicates an input above a maximum length.
	ErrInputTooLarge = errors.New("input too large")

	// ErrInputSize indicates an input whose length must match exactly.
	ErrInputSize = errors.New("invalid input size")
)

// ValidateMinSize requires len(data) >= minSize.
func ValidateMinSize(data []byte, minSize int) error {
	if len(data) < minSize {
		return fmt.Errorf("%w: size %d below minimum %d", ErrInputTooShort, len(data), minSize)
	}
	return nil
}

// ValidateMaxSize requires len(data) <= maxSize.
func ValidateMaxSize(data []byte, maxSize int) error {
	if len(data) > maxSize {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrInputTooLarge, len(data), maxSize)
	}
	return nil
}

// ValidateExactSize requires len(data) == size.
func ValidateExactSize(data []byte, size int) error {
	if len(data) != size {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInputSize, len(data), size)
	}
	return nil
}

// ValidateVariant1Input checks that data is long enough for the variant-1
// tweak.
func ValidateVariant1Input(data []byte) error {
	if err := ValidateMinSize(data, Variant1MinInput); err != nil {
		return fmt.Errorf("variant 1 tweak: %w", err)
	}
	return nil
}

// ValidatePrehashedInput checks that data is a full Keccak state.
func ValidatePrehashedInput(data []byte) error {
	if len(data) != KeccakStateSize {
		return fmt.Errorf("%w: prehashed input is %d bytes, want %d", ErrInputSize, len(data), KeccakStateSize)
	}
	return nil
}

// ValidateSignatureBlob checks that data holds a whole number of signature
// pairs, at least one.
func ValidateSignatureBlob(data []byte) error {
	if len(data) == 0 || len(data)%SignatureSize != 0 {
		return fmt.Errorf("%w: %d bytes is not a positive multiple of %d", ErrInputSize, len(data), SignatureSize)
	}
	return nil
}

// ValidateProcessingBuffer validates data against MaxProcessingBuffer.
// This limit should be used for all untrusted input.
func ValidateProcessingBuffer(data []byte) error {
	return ValidateMaxSize(data, MaxProcessingBuffer)
}
