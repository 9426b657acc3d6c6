package difficulty

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for a Config that cannot drive a retarget.
var ErrInvalidConfig = errors.New("difficulty: invalid config")

// Config holds the retarget parameters.
type Config struct {
	// Target is the desired block interval in seconds.
	Target uint8
	// Cut is the number of timestamps dropped from each end after sorting.
	Cut uint8
	// Lag is the number of most recent blocks left out of the window.
	Lag uint16
	// Window is the number of blocks the retarget looks at.
	Window uint32
}

// DefaultConfig is the CryptoNote reference configuration: two-minute
// blocks over a one-day window.
var DefaultConfig = Config{Target: 120, Cut: 60, Lag: 15, Window: 720}

// Pack encodes c as window<<32 | lag<<16 | cut<<8 | target.
func (c Config) Pack() uint64 {
	return uint64(c.Window)<<32 | uint64(c.Lag)<<16 | uint64(c.Cut)<<8 | uint64(c.Target)
}

// Unpack is the inverse of Config.Pack.
func Unpack(v uint64) Config {
	return Config{
		Target: uint8(v),
		Cut:    uint8(v >> 8),
		Lag:    uint16(v >> 16),
		Window: uint32(v >> 32),
	}
}

// Validate checks that the window holds at least two blocks after cutting.
func (c Config) Validate() error {
	if c.Target == 0 {
		return fmt.Errorf("%w: zero target", ErrInvalidConfig)
	}
	if c.Window < 2 {
		return fmt.Errorf("%w: window %d below 2", ErrInvalidConfig, c.Window)
	}
	if 2*uint32(c.Cut) > c.Window-2 {
		return fmt.Errorf("%w: cut %d leaves fewer than 2 of %d blocks", ErrInvalidConfig, c.Cut, c.Window)
	}
	return nil
}

// Span returns the [begin, end) range of an n-block history that the
// retarget inspects: the newest Window blocks once Lag blocks are set
// aside, or as many as exist while the chain is young.
func (c Config) Span(n int) (begin, end int) {
	window, lag := int(c.Window), int(c.Lag)
	if n < window+lag {
		return 0, min(n, window)
	}
	end = n - lag
	return end - window, end
}
