// Package dice isolates every random decision the game makes behind one
// seedable source so turns can be replayed under test.
package dice

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Roller produces uniformly distributed integers.
type Roller interface {
	// IntN returns an int in [0, n). n must be positive.
	IntN(n int) int
}

// Source is a Roller backed by a PCG generator. It is safe for concurrent use.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a Source seeded with seed. A zero seed is replaced with
// the current time.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{
		rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
}

func (s *Source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Between returns a uniform int in [lo, hi]. Reversed bounds are swapped.
func Between(r Roller, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Range is an inclusive [min, max] pair as stored in content files.
type Range [2]int

func (r Range) Min() int { return min(r[0], r[1]) }
func (r Range) Max() int { return max(r[0], r[1]) }

// Roll returns a uniform int within the range.
func (r Range) Roll(rl Roller) int {
	return Between(rl, r[0], r[1])
}

// OneIn reports whether a roll of a d-n came up 1.
func OneIn(r Roller, n int) bool {
	return Between(r, 1, n) == 1
}

// Choice returns a uniformly chosen element of items. It panics on an empty slice.
func Choice[T any](r Roller, items []T) T {
	return items[r.IntN(len(items))]
}
