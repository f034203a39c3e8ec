package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestAggregator_FinalizeAverages(t *testing.T) {
	// GIVEN three observed trials over k = 1..2
	a := NewAggregator(2)
	a.Observe([]float64{0.9, 0.3})
	a.Observe([]float64{0.6, 0.2})
	a.Observe([]float64{0.3, 0.1})

	table, err := a.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	// THEN rows carry per-k means in k order
	if table.Trials != 3 {
		t.Errorf("Trials = %d, want 3", table.Trials)
	}
	if table.Rows[0].K != 1 || table.Rows[1].K != 2 {
		t.Errorf("row order = %d, %d, want 1, 2", table.Rows[0].K, table.Rows[1].K)
	}
	if got := table.Rows[0].ExpectedLoad; math.Abs(got-0.6) > 1e-12 {
		t.Errorf("k=1 mean = %g, want 0.6", got)
	}
	if got := table.Rows[1].ExpectedLoad; math.Abs(got-0.2) > 1e-12 {
		t.Errorf("k=2 mean = %g, want 0.2", got)
	}
}

func TestAggregator_FinalizeWithoutTrialsFails(t *testing.T) {
	_, err := NewAggregator(3).Finalize()
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("got %v, want ErrInvalidConfiguration", err)
	}
}

func TestAggregator_MergeMatchesSequentialObservation(t *testing.T) {
	// GIVEN the same trial stream observed whole vs split in two halves
	rng := rand.New(rand.NewSource(42))
	trials := make([][]float64, 400)
	for i := range trials {
		trials[i] = []float64{rng.Float64(), rng.Float64() / 2}
	}

	whole := NewAggregator(2)
	for _, tr := range trials {
		whole.Observe(tr)
	}

	left, right := NewAggregator(2), NewAggregator(2)
	for _, tr := range trials[:200] {
		left.Observe(tr)
	}
	for _, tr := range trials[200:] {
		right.Observe(tr)
	}
	left.Merge(right)

	wt, err := whole.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	mt, err := left.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	// THEN means agree to rounding and quantiles agree exactly
	for i := range wt.Rows {
		if math.Abs(wt.Rows[i].ExpectedLoad-mt.Rows[i].ExpectedLoad) > 1e-12 {
			t.Errorf("k=%d mean differs: %g vs %g", i+1, wt.Rows[i].ExpectedLoad, mt.Rows[i].ExpectedLoad)
		}
		if wt.Rows[i].P50 != mt.Rows[i].P50 || wt.Rows[i].P95 != mt.Rows[i].P95 || wt.Rows[i].P99 != mt.Rows[i].P99 {
			t.Errorf("k=%d quantiles differ after merge", i+1)
		}
	}
}

func TestAggregator_QuantilesTrackDistribution(t *testing.T) {
	// Uniform observations: the median sits near 0.5 and p99 near 0.99.
	a := NewAggregator(1)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20000; i++ {
		a.Observe([]float64{rng.Float64()})
	}

	table, err := a.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	row := table.Rows[0]
	if math.Abs(row.P50-0.5) > 0.02 {
		t.Errorf("p50 = %.4f, want about 0.5", row.P50)
	}
	if math.Abs(row.P95-0.95) > 0.02 {
		t.Errorf("p95 = %.4f, want about 0.95", row.P95)
	}
	if math.Abs(row.P99-0.99) > 0.02 {
		t.Errorf("p99 = %.4f, want about 0.99", row.P99)
	}
}
