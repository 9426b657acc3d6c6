// Package cryptonight implements the CryptoNight v0 and v1 slow hash: a
// Keccak-1600 absorb, a 2 MiB AES-filled scratchpad, 524,288 iterations of
// AES and 64-bit multiply mixing, and a final hash picked from BLAKE-256,
// Grøstl-256, JH-256 or Skein-512-256 by the low two bits of the state.
//
// The package-level Sum draws scratchpads from a pool and is safe for
// concurrent use:
//
//	h, err := cryptonight.Sum(blob, cryptonight.V1, false)
//
// Callers that hash in a tight loop on one goroutine can hold a State and
// reuse its scratchpad directly.
package cryptonight
