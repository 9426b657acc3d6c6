// Package difficulty implements proof-of-work target checks and the
// CryptoNote difficulty retarget.
package difficulty

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/cryptonote/types"
)

// ErrLengthMismatch is returned when the timestamp and cumulative
// difficulty histories differ in length.
var ErrLengthMismatch = errors.New("difficulty: history length mismatch")

// CheckHash reports whether hash, read as a little-endian 256-bit integer,
// times difficulty still fits in 256 bits.
func CheckHash(hash types.Hash, difficulty uint64) bool {
	var carry uint64
	for i := 0; i < 4; i++ {
		hi, lo := bits.Mul64(binary.LittleEndian.Uint64(hash[8*i:]), difficulty)
		_, c := bits.Add64(lo, carry, 0)
		carry = hi + c
	}
	return carry == 0
}

// Next computes the difficulty for the block following a history of
// timestamps and cumulative difficulties. Only the first Window entries are
// used. A result of 0 means the history was degenerate: the work did not
// increase or the computation overflowed.
func Next(timestamps, cumulative []uint64, cfg Config) (uint64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if len(timestamps) != len(cumulative) {
		return 0, fmt.Errorf("%w: %d timestamps, %d difficulties", ErrLengthMismatch, len(timestamps), len(cumulative))
	}

	n := len(timestamps)
	if n > int(cfg.Window) {
		n = int(cfg.Window)
	}
	if n <= 1 {
		return 1, nil
	}

	sorted := slices.Clone(timestamps[:n])
	slices.Sort(sorted)

	kept := int(cfg.Window) - 2*int(cfg.Cut)
	cutBegin, cutEnd := 0, n
	if n > kept {
		cutBegin = (n - kept + 1) / 2
		cutEnd = cutBegin + kept
	}

	timeSpan := sorted[cutEnd-1] - sorted[cutBegin]
	if timeSpan == 0 {
		timeSpan = 1
	}

	first, last := cumulative[cutBegin], cumulative[cutEnd-1]
	if last <= first {
		logrus.WithFields(logrus.Fields{
			"function": "Next",
			"package":  "difficulty",
			"first":    first,
			"last":     last,
		}).Warn("Cumulative difficulty did not increase")
		return 0, nil
	}

	hi, lo := bits.Mul64(last-first, uint64(cfg.Target))
	if hi != 0 || lo+timeSpan-1 < lo {
		return 0, nil
	}
	return (lo + timeSpan - 1) / timeSpan, nil
}

// NextForHeight selects the retarget window from a full chain history with
// Config.Span and computes the next difficulty over it.
func NextForHeight(timestamps, cumulative []uint64, cfg Config) (uint64, error) {
	if len(timestamps) != len(cumulative) {
		return 0, fmt.Errorf("%w: %d timestamps, %d difficulties", ErrLengthMismatch, len(timestamps), len(cumulative))
	}
	begin, end := cfg.Span(len(timestamps))
	return Next(timestamps[begin:end], cumulative[begin:end], cfg)
}
