package sim

import (
	"fmt"
	"math"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
)

// loadHistMax maps the [0, 1] load domain onto integer micro-load units
// for HDR recording at 3 significant figures.
const loadHistMax = 1_000_000

// Aggregator accumulates per-k chosen loads across trials: plain sums for
// the expectation plus HDR histograms for quantiles. Merging is
// associative, so parallel workers each fill their own and combine.
type Aggregator struct {
	sums   []float64
	hists  []*hdrhistogram.Histogram
	trials int
}

// NewAggregator creates an aggregator covering subset sizes 1..maxK.
func NewAggregator(maxK int) *Aggregator {
	a := &Aggregator{
		sums:  make([]float64, maxK),
		hists: make([]*hdrhistogram.Histogram, maxK),
	}
	for i := range a.hists {
		a.hists[i] = hdrhistogram.New(1, loadHistMax, 3)
	}
	return a
}

// Observe records one trial's chosen loads, indexed by k-1.
func (a *Aggregator) Observe(result []float64) {
	for i, v := range result {
		a.sums[i] += v
		// Loads live in [0, 1], so micro-units never leave the
		// trackable range.
		_ = a.hists[i].RecordValue(int64(math.Round(v * loadHistMax)))
	}
	a.trials++
}

// Merge folds other into a. The driver merges in worker order to keep
// floating-point rounding reproducible run to run.
func (a *Aggregator) Merge(other *Aggregator) {
	for i := range a.sums {
		a.sums[i] += other.sums[i]
		a.hists[i].Merge(other.hists[i])
	}
	a.trials += other.trials
}

// Trials returns the number of observed trials.
func (a *Aggregator) Trials() int {
	return a.trials
}

// Finalize divides the accumulated sums into the expected-load table,
// ordered by k ascending.
func (a *Aggregator) Finalize() (*LoadTable, error) {
	if a.trials == 0 {
		return nil, fmt.Errorf("%w: no trials observed", ErrInvalidConfiguration)
	}

	t := &LoadTable{
		Trials: a.trials,
		Rows:   make([]LoadRow, len(a.sums)),
	}
	for i, sum := range a.sums {
		h := a.hists[i]
		t.Rows[i] = LoadRow{
			K:            i + 1,
			ExpectedLoad: sum / float64(a.trials),
			P50:          float64(h.ValueAtQuantile(50)) / loadHistMax,
			P95:          float64(h.ValueAtQuantile(95)) / loadHistMax,
			P99:          float64(h.ValueAtQuantile(99)) / loadHistMax,
		}
	}
	return t, nil
}

// LoadTable is the outcome of a study: one row per subset size k, ordered
// ascending. ExpectedLoad estimates the mean load of the server the
// k-choices policy routes to.
type LoadTable struct {
	Trials int
	Rows   []LoadRow
}

// LoadRow aggregates the chosen load under one subset size.
type LoadRow struct {
	K            int
	ExpectedLoad float64
	P50          float64
	P95          float64
	P99          float64
}
