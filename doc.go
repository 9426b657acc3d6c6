// Package cryptonote is the root of a library of CryptoNote cryptographic
// and consensus primitives. It holds no code of its own; the primitives live
// in one package per concern:
//
//   - keccak: Keccak-1600 permutation and the fast hash
//   - cryptonight: the CryptoNight slow hash, variants 0 and 1
//   - crypto: scalars, points, key derivation, key images, signatures and
//     ring signatures over Ed25519
//   - chacha: ChaCha8 with password-derived keys
//   - difficulty: proof-of-work checks and difficulty retarget
//   - reward: the block-size reward penalty
//   - entropy: system and deterministic randomness sources
//   - limits, types: shared sizes, validation and the Hash type
//
// Every operation is a pure function over byte buffers plus an explicit
// entropy source, safe for concurrent use. Networking, storage and wallet
// workflows are left to the layers that import this module.
//
// # Getting Started
//
//	kp, err := crypto.GenerateKeyPair(entropy.System())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer crypto.WipeKeyPair(kp)
//
//	h, err := cryptonight.Sum(blob, cryptonight.V1, false)
//	ok := difficulty.CheckHash(h, diff)
//
// The cmd/cnutil binary exposes the same operations on the command line and
// the examples directory holds runnable walkthroughs.
package cryptonote
