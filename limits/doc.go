// Package limits provides the centralized size constants and input
// validation shared by the CryptoNote primitives. Keeping them in one place
// ensures that the slow hash, the signature codecs and the command-line tool
// agree on what a well-formed input looks like.
//
// # Size Hierarchy
//
//   - KeySize (32 bytes): every scalar, point, hash and key image.
//
//   - SignatureSize (64 bytes): one (c, r) pair; a ring signature is n of them.
//
//   - Variant1MinInput (43 bytes): the shortest input the variant-1 slow hash
//     accepts, because its tweak reads input bytes 35..43.
//
//   - KeccakStateSize (200 bytes): the exact length of a prehashed slow-hash
//     input.
//
//   - MaxBlockSize (2^32 - 1): the largest block size the reward penalty
//     arithmetic is defined for.
//
//   - MaxProcessingBuffer (1MB): the absolute maximum for any untrusted input
//     read by the command-line tool.
//
// # Validation Functions
//
//	if err := limits.ValidateVariant1Input(blob); err != nil {
//	    // errors.Is(err, limits.ErrInputTooShort)
//	}
//
// Errors wrap ErrInputTooShort, ErrInputTooLarge or ErrInputSize with the
// actual and expected sizes so callers can match on the sentinel.
package limits
