// Package choice draws uniform random subsets of server indices for
// power-of-k-choices policies.
package choice

import "math/rand"

// Picker draws uniform random k-subsets of {0..n-1} without replacement.
//
// It keeps a persistent permutation buffer and performs a partial
// Fisher-Yates shuffle per draw, then rewinds the recorded swaps so the
// buffer is ready for the next draw. Setup is O(n) once; each draw is O(k).
//
// Thread-safety: NOT thread-safe. Each worker goroutine owns its own Picker.
type Picker struct {
	perm  []int
	swaps []int
}

// NewPicker creates a Picker over the index set {0..n-1} able to draw
// subsets of up to maxK elements per call.
func NewPicker(n, maxK int) *Picker {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return &Picker{
		perm:  perm,
		swaps: make([]int, maxK),
	}
}

// N returns the size of the underlying index set.
func (p *Picker) N() int {
	return len(p.perm)
}

// Pick draws k distinct indices uniformly at random and calls visit for each
// one in sample order. k must be in [1, n]; the caller validates bounds.
func (p *Picker) Pick(rng *rand.Rand, k int, visit func(idx int)) {
	for j := 0; j < k; j++ {
		r := j + rng.Intn(len(p.perm)-j)
		p.perm[j], p.perm[r] = p.perm[r], p.perm[j]
		p.swaps[j] = r
		visit(p.perm[j])
	}
	// Rewind the swaps so the buffer state does not depend on k.
	for j := k - 1; j >= 0; j-- {
		r := p.swaps[j]
		p.perm[j], p.perm[r] = p.perm[r], p.perm[j]
	}
}

// MinIndex draws a k-subset and returns the sampled index that orders first
// under less, where less reports whether index a orders strictly before
// index b. Ties keep the earlier sampled index.
func (p *Picker) MinIndex(rng *rand.Rand, k int, less func(a, b int) bool) int {
	best := -1
	p.Pick(rng, k, func(idx int) {
		if best < 0 || less(idx, best) {
			best = idx
		}
	})
	return best
}
