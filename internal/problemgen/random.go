package problemgen

import (
	"math/rand/v2"
	"time"
)

// Source is the random source used for operand draws and tier selection.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniformly distributed value in [0, n).
	IntN(n int) int
}

// NewSource returns a time-seeded, non-cryptographic source.
func NewSource() Source {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>32|1))
}

// DrawInt draws uniformly from the closed range [min, max].
//
// If reject is non-nil and flags the drawn value, the value is redrawn,
// consuming one retry. Once retries are exhausted the last drawn value is
// accepted as-is, so the policy biases away from rejected values without
// ever forbidding them.
func DrawInt(src Source, min, max int, reject func(int) bool, retries int) int {
	for {
		n := min + src.IntN(max+1-min)
		if retries <= 0 || reject == nil || !reject(n) {
			return n
		}
		retries--
	}
}

func isZero(n int) bool { return n == 0 }
