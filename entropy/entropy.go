// Package entropy provides the randomness sources consumed by key generation
// and signing. Production code uses System; tests that need reproducible
// signatures construct a Deterministic source from a seed byte.
package entropy

import (
	"crypto/rand"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/cryptonote/keccak"
)

// System returns the operating system CSPRNG.
func System() io.Reader {
	return rand.Reader
}

// Deterministic is a seedable Keccak-based generator. Its state is the
// 200-byte Keccak state filled with the seed byte; every Read permutes the
// state and copies out at most keccak.Rate bytes per permutation.
//
// Output is reproducible across runs and is NOT suitable for secrets.
type Deterministic struct {
	mu    sync.Mutex
	state keccak.State
}

// NewDeterministic returns a generator seeded with seed.
func NewDeterministic(seed byte) *Deterministic {
	d := &Deterministic{}
	d.Reseed(seed)
	return d
}

// Reseed resets the generator to the state produced by seed.
func (d *Deterministic) Reseed(seed byte) {
	var raw [keccak.StateSize]byte
	for i := range raw {
		raw[i] = seed
	}

	d.mu.Lock()
	d.state.SetBytes(raw[:])
	d.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "Reseed",
		"seed":     seed,
	}).Debug("Deterministic entropy source reseeded")
}

// Read fills p and never fails.
func (d *Deterministic) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var buf [keccak.StateSize]byte
	n := 0
	for n < len(p) {
		d.state.Permute()
		d.state.PutBytes(buf[:])
		n += copy(p[n:], buf[:keccak.Rate])
	}
	return n, nil
}
