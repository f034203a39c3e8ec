// Package bins runs the discrete balls-into-bins companion study: every
// ball lands in the least-loaded of k uniformly sampled bins, and the
// statistic of interest is the maximum bin load after all balls placed.
package bins

import (
	"fmt"
	"math/rand"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/choice-sim/choice-sim/sim"
	"github.com/choice-sim/choice-sim/sim/choice"
)

// occupancyWindow is the half-width of the exactly tracked occupancy band
// around the mean occupancy, used by the occupancy distribution chart.
const occupancyWindow = 10

// Config groups the geometry of a balls-into-bins study.
type Config struct {
	// Bins is the number of bins.
	Bins int

	// Balls is the number of balls placed per trial.
	Balls int

	// Trials is the number of independent placement rounds per strategy.
	Trials int

	// MaxK sweeps the placement strategies k = 1..MaxK, where each ball
	// samples k distinct candidate bins. Must not exceed Bins.
	MaxK int

	// Seed is the master seed; every strategy derives its own stream, so
	// enlarging MaxK never perturbs smaller strategies.
	Seed int64
}

// Validate rejects impossible geometry before any placement runs.
func (c Config) Validate() error {
	if c.Bins <= 0 {
		return fmt.Errorf("%w: bins = %d, want > 0", sim.ErrInvalidConfiguration, c.Bins)
	}
	if c.Balls <= 0 {
		return fmt.Errorf("%w: balls = %d, want > 0", sim.ErrInvalidConfiguration, c.Balls)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("%w: trials = %d, want > 0", sim.ErrInvalidConfiguration, c.Trials)
	}
	if c.MaxK <= 0 {
		return fmt.Errorf("%w: max_k = %d, want > 0", sim.ErrInvalidConfiguration, c.MaxK)
	}
	if c.MaxK > c.Bins {
		return fmt.Errorf("%w: max_k = %d exceeds bins = %d", sim.ErrInvalidConfiguration, c.MaxK, c.Bins)
	}
	return nil
}

// MeanOccupancy returns Balls/Bins, the expected final occupancy of one bin.
func (c Config) MeanOccupancy() int {
	return c.Balls / c.Bins
}

// Result is the outcome of a sweep, one StrategyResult per k ascending.
type Result struct {
	Config     Config
	Strategies []StrategyResult
}

// WindowRange returns the occupancy band [lo, hi] that strategies track
// exactly for the occupancy distribution chart.
func (r *Result) WindowRange() (lo, hi int) {
	return windowRange(r.Config)
}

// StrategyResult aggregates one placement strategy across trials.
type StrategyResult struct {
	// K is the number of candidate bins sampled per ball.
	K int

	// AvgMaxLoad and StdMaxLoad summarize the per-trial maximum bin
	// occupancy (population standard deviation over trials).
	AvgMaxLoad float64
	StdMaxLoad float64

	// OccP50 and OccP99 are occupancy quantiles across all bins and
	// trials.
	OccP50 int64
	OccP99 int64

	windowMin int
	window    []int64
	total     int64
}

// OccupancyProb returns the empirical probability that a bin finishes with
// exactly v balls. Only occupancies inside the tracked window report; the
// rest return 0.
func (s *StrategyResult) OccupancyProb(v int) float64 {
	i := v - s.windowMin
	if i < 0 || i >= len(s.window) || s.total == 0 {
		return 0
	}
	return float64(s.window[i]) / float64(s.total)
}

// Run executes the sweep. Each strategy owns an isolated RNG stream
// derived from the master seed.
func Run(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.Infof("starting placement sweep: bins=%d balls=%d trials=%d max_k=%d seed=%d",
		cfg.Bins, cfg.Balls, cfg.Trials, cfg.MaxK, cfg.Seed)

	prng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	res := &Result{Config: cfg}
	for k := 1; k <= cfg.MaxK; k++ {
		sr, err := runStrategy(cfg, k, prng.ForSubsystem(sim.SubsystemStrategy(k)))
		if err != nil {
			return nil, fmt.Errorf("strategy k=%d: %w", k, err)
		}
		logrus.Debugf("strategy k=%d: avg max load %.2f (std %.2f)", k, sr.AvgMaxLoad, sr.StdMaxLoad)
		res.Strategies = append(res.Strategies, *sr)
	}
	return res, nil
}

// runStrategy places all balls of all trials under one subset size.
func runStrategy(cfg Config, k int, rng *rand.Rand) (*StrategyResult, error) {
	lo, hi := windowRange(cfg)
	picker := choice.NewPicker(cfg.Bins, k)
	counts := make([]int, cfg.Bins)
	maxima := make([]float64, cfg.Trials)
	window := make([]int64, hi-lo+1)
	hist := hdrhistogram.New(1, int64(cfg.Balls), 3)
	less := func(a, b int) bool { return counts[a] < counts[b] }

	for t := 0; t < cfg.Trials; t++ {
		for i := range counts {
			counts[i] = 0
		}
		for ball := 0; ball < cfg.Balls; ball++ {
			counts[picker.MinIndex(rng, k, less)]++
		}

		trialMax := 0
		for _, c := range counts {
			if c > trialMax {
				trialMax = c
			}
			if err := hist.RecordValue(int64(c)); err != nil {
				return nil, fmt.Errorf("recording occupancy %d: %w", c, err)
			}
			if c >= lo && c <= hi {
				window[c-lo]++
			}
		}
		maxima[t] = float64(trialMax)
	}

	return &StrategyResult{
		K:          k,
		AvgMaxLoad: stat.Mean(maxima, nil),
		StdMaxLoad: stat.PopStdDev(maxima, nil),
		OccP50:     hist.ValueAtQuantile(50),
		OccP99:     hist.ValueAtQuantile(99),
		windowMin:  lo,
		window:     window,
		total:      hist.TotalCount(),
	}, nil
}

// windowRange brackets the mean occupancy, floored at zero.
func windowRange(cfg Config) (lo, hi int) {
	mean := cfg.MeanOccupancy()
	lo = mean - occupancyWindow
	if lo < 0 {
		lo = 0
	}
	return lo, mean + occupancyWindow
}
