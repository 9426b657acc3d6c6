// Package crypto implements the CryptoNote key and signature primitives over
// the Ed25519 curve.
//
// Scalars are 32-byte little-endian integers modulo the group order ℓ and
// points are 32-byte compressed Edwards encodings. All arithmetic is done by
// filippo.io/edwards25519; this package adds the CryptoNote hash-to-scalar,
// hash-to-point and ring constructions on top.
//
// # Core Types
//
//   - [Scalar], [SecretKey]: values modulo ℓ
//   - [PublicKey], [KeyDerivation], [KeyImage]: compressed points
//   - [Signature]: a (c, r) pair, stored as c ‖ r
//   - [RingSignature]: one pair per ring member
//
// # Keys and Stealth Addresses
//
// A sender derives a one-time output key from the recipient's view and spend
// public keys; the recipient recovers the matching secret:
//
//	d, _ := crypto.GenerateKeyDerivation(viewPublic, txSecret)
//	out, _ := crypto.DerivePublicKey(d, index, spendPublic)
//
//	d, _ = crypto.GenerateKeyDerivation(txPublic, viewSecret)
//	sec, _ := crypto.DeriveSecretKey(d, index, spendSecret)
//
// # Signatures
//
// [GenerateSignature] and [CheckSignature] implement a Schnorr signature over
// a 32-byte prefix hash. [GenerateRingSignature] and [CheckRingSignature]
// implement the linkable ring signature used for transaction inputs; the key
// image from [GenerateKeyImage] links two signatures made with the same key.
//
// # Entropy
//
// Every operation that consumes randomness takes an io.Reader. Production
// code passes entropy.System(); tests pass entropy.NewDeterministic(seed) to
// reproduce the published vectors.
//
// # Secure Memory Handling
//
// Secret keys should be wiped once no longer needed:
//
//	defer crypto.WipeKeyPair(keyPair)
//
// # Thread Safety
//
// All functions are pure over their arguments and safe for concurrent use.
// A shared deterministic entropy source serialises its readers.
package crypto
