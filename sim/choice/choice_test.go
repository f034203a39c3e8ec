package choice

import (
	"math"
	"math/rand"
	"testing"
)

func TestPicker_DrawsDistinctIndicesInRange(t *testing.T) {
	// GIVEN a picker over 20 indices
	rng := rand.New(rand.NewSource(42))
	p := NewPicker(20, 5)

	// WHEN drawing many 5-subsets
	for trial := 0; trial < 500; trial++ {
		seen := make(map[int]bool)
		p.Pick(rng, 5, func(idx int) {
			if idx < 0 || idx >= 20 {
				t.Fatalf("trial %d: index %d out of range [0, 20)", trial, idx)
			}
			if seen[idx] {
				t.Fatalf("trial %d: index %d sampled twice", trial, idx)
			}
			seen[idx] = true
		})

		// THEN each draw yields exactly 5 distinct in-range indices
		if len(seen) != 5 {
			t.Fatalf("trial %d: got %d indices, want 5", trial, len(seen))
		}
	}
}

func TestPicker_FullDrawVisitsEveryIndex(t *testing.T) {
	// GIVEN a picker where k equals n
	const n = 12
	rng := rand.New(rand.NewSource(7))
	p := NewPicker(n, n)

	for trial := 0; trial < 50; trial++ {
		seen := make(map[int]bool)
		p.Pick(rng, n, func(idx int) { seen[idx] = true })
		if len(seen) != n {
			t.Fatalf("trial %d: full draw visited %d of %d indices", trial, len(seen), n)
		}
	}
}

func TestPicker_BufferRestoredAfterDraw(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := NewPicker(10, 4)

	for trial := 0; trial < 100; trial++ {
		p.Pick(rng, 1+rng.Intn(4), func(int) {})
		for i, v := range p.perm {
			if v != i {
				t.Fatalf("trial %d: perm[%d] = %d after rewind, want identity", trial, i, v)
			}
		}
	}
}

func TestPicker_InclusionFrequencyMatchesKOverN(t *testing.T) {
	// GIVEN n=10, k=3, the chance any fixed index is sampled is k/n = 0.3
	const (
		n      = 10
		k      = 3
		trials = 20000
	)
	rng := rand.New(rand.NewSource(42))
	p := NewPicker(n, k)

	hits := 0
	for trial := 0; trial < trials; trial++ {
		p.Pick(rng, k, func(idx int) {
			if idx == 3 {
				hits++
			}
		})
	}

	got := float64(hits) / float64(trials)
	if math.Abs(got-0.3) > 0.02 {
		t.Errorf("inclusion frequency = %.4f, want 0.3 +/- 0.02", got)
	}
}

func TestPicker_MinIndexFindsGlobalMinimumOnFullDraw(t *testing.T) {
	loads := []float64{0.9, 0.4, 0.7, 0.05, 0.6, 0.3}
	rng := rand.New(rand.NewSource(11))
	p := NewPicker(len(loads), len(loads))

	got := p.MinIndex(rng, len(loads), func(a, b int) bool { return loads[a] < loads[b] })
	if got != 3 {
		t.Errorf("MinIndex over all indices = %d, want 3", got)
	}
}

func TestPicker_ReproducibleUnderFixedSeed(t *testing.T) {
	draw := func() [][]int {
		rng := rand.New(rand.NewSource(99))
		p := NewPicker(50, 8)
		var out [][]int
		for trial := 0; trial < 200; trial++ {
			var subset []int
			p.Pick(rng, 8, func(idx int) { subset = append(subset, idx) })
			out = append(out, subset)
		}
		return out
	}

	a, b := draw(), draw()
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("draw %d position %d differs: %d vs %d", i, j, a[i][j], b[i][j])
			}
		}
	}
}
