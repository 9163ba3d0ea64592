package service

import (
	"math/rand"
	"time"
)

// Shuffler produces uniform random permutations.
type Shuffler struct {
	rng *rand.Rand
}

// NewShuffler creates a Shuffler. A nil rng is replaced by a time-seeded one.
func NewShuffler(rng *rand.Rand) *Shuffler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Shuffler{rng: rng}
}

// Permutation returns the indices 0..n-1 in random order (Fisher-Yates).
func (s *Shuffler) Permutation(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	for i := n - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// Pick returns the first k indices of a random permutation of 0..n-1.
// k is clamped to n; k <= 0 selects all of them.
func (s *Shuffler) Pick(n, k int) []int {
	perm := s.Permutation(n)
	if k <= 0 || k > n {
		k = n
	}
	return perm[:k]
}
