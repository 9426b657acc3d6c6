// Command cnutil exposes the CryptoNote primitives on the command line.
//
// # Usage
//
// Hash some text with the slow hash:
//
//	go run ./cmd/cnutil -op slow-hash -text "This is a test"
//
// Generate a reproducible key pair:
//
//	go run ./cmd/cnutil -op keygen -seed 42
//
// Compute a stealth-address derivation and the output key for index 0:
//
//	go run ./cmd/cnutil -op derive -secret <view secret> -pub <tx public> -spend <spend public>
//
// # Operations
//
//   - fast-hash: Keccak fast hash of -in or -text
//   - slow-hash: CryptoNight hash of -in or -text, -variant 0 or 1
//   - keygen: fresh key pair, deterministic with -seed
//   - derive: key derivation, index scalar and optional output key
//   - key-image: key image of -pub under -secret
//   - check-hash: whether the hash in -in meets -difficulty
//   - penalty: block reward after the size penalty
//
// Results are written to stdout as hex. Logging goes to stderr at the level
// given by -log-level.
package main
