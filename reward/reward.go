// Package reward applies the CryptoNote block-size penalty to a block
// reward.
package reward

import (
	"math/bits"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/cryptonote/limits"
)

// Penalized returns the part of amount a miner keeps for a block of size
// bytes when the median block size is median:
//
//	amount · size · (2·median − size) / median²
//
// Blocks no larger than the median keep the full amount. Blocks larger than
// twice the median, and sizes beyond 2³²−1, get nothing.
func Penalized(amount, median, size uint64) uint64 {
	if amount == 0 {
		return 0
	}
	if size <= median {
		return amount
	}
	if median > limits.MaxBlockSize || size > limits.MaxBlockSize || size > 2*median {
		logrus.WithFields(logrus.Fields{
			"function": "Penalized",
			"package":  "reward",
			"median":   median,
			"size":     size,
		}).Debug("Block size outside penalty range")
		return 0
	}

	// size·(2·median−size) ≤ median² < 2⁶⁴ because median < 2³².
	hi, lo := bits.Mul64(amount, size*(2*median-size))
	hi, lo = div128(hi, lo, median)
	_, lo = div128(hi, lo, median)
	return lo
}

// div128 divides the 128-bit value hi:lo by d.
func div128(hi, lo, d uint64) (qhi, qlo uint64) {
	qhi, r := hi/d, hi%d
	qlo, _ = bits.Div64(r, lo, d)
	return qhi, qlo
}
