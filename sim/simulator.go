package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/choice-sim/choice-sim/sim/choice"
	"github.com/choice-sim/choice-sim/sim/density"
)

// Simulator runs one k-choices study: Trials trials of Servers servers
// under a single load density, aggregated into an expected-load table over
// k = 1..MaxK.
type Simulator struct {
	cfg Config
	den density.Density
	rng *PartitionedRNG
}

// NewSimulator validates cfg, builds the density and partitions the RNG.
// Every configuration error surfaces here, before any trial runs. A
// density spec whose polynomial dips negative counts as configuration
// error; numerical normalization failures keep their own kind.
func NewSimulator(cfg Config, spec density.Spec) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	den, err := density.New(spec, prng.ForSubsystem(SubsystemDensity))
	if err != nil {
		if errors.Is(err, density.ErrNegativeDensity) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		return nil, err
	}

	return &Simulator{cfg: cfg, den: den, rng: prng}, nil
}

// Density returns the density under study, for reports.
func (s *Simulator) Density() density.Density {
	return s.den
}

// Config returns the validated configuration.
func (s *Simulator) Config() Config {
	return s.cfg
}

// Run executes all trials and finalizes the expected-load table.
//
// With Workers <= 1 trials run inline on the calling goroutine (the
// sequential reference model). Otherwise contiguous trial chunks run on
// Workers goroutines, each with a pre-derived stream, picker and buffers;
// partial aggregates merge in worker order. Results are bit-identical for
// a fixed (seed, workers) pair.
func (s *Simulator) Run() (*LoadTable, error) {
	workers := s.cfg.workerCount()

	logrus.Infof("starting study: servers=%d max_k=%d trials=%d workers=%d seed=%d",
		s.cfg.Servers, s.cfg.MaxK, s.cfg.Trials, workers, s.cfg.Seed)
	start := time.Now()

	// Derive every worker stream up front; PartitionedRNG derivation is
	// single-goroutine only.
	rngs := make([]*rand.Rand, workers)
	for w := range rngs {
		rngs[w] = s.rng.ForSubsystem(SubsystemWorker(w))
	}
	chunks := splitTrials(s.cfg.Trials, workers)

	aggs := make([]*Aggregator, workers)
	for w := range aggs {
		aggs[w] = NewAggregator(s.cfg.MaxK)
	}

	errs := make([]error, workers)
	if workers == 1 {
		errs[0] = s.runChunk(rngs[0], aggs[0], chunks[0])
	} else {
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				errs[w] = s.runChunk(rngs[w], aggs[w], chunks[w])
				logrus.Debugf("worker %d finished %d trials", w, chunks[w])
			}(w)
		}
		wg.Wait()
	}
	for w, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("worker %d: %w", w, err)
		}
	}

	total := aggs[0]
	for _, agg := range aggs[1:] {
		total.Merge(agg)
	}
	table, err := total.Finalize()
	if err != nil {
		return nil, err
	}

	logrus.Infof("study complete: %d trials in %s", table.Trials, time.Since(start).Round(time.Millisecond))
	return table, nil
}

// runChunk executes a consecutive block of trials on one worker stream.
func (s *Simulator) runChunk(rng *rand.Rand, agg *Aggregator, trials int) error {
	smp := s.den.Sampler()
	picker := choice.NewPicker(s.cfg.Servers, s.cfg.MaxK)
	loads := make([]float64, s.cfg.Servers)
	result := make([]float64, s.cfg.MaxK)

	for t := 0; t < trials; t++ {
		if err := runTrial(rng, smp, picker, loads, result); err != nil {
			return fmt.Errorf("trial %d: %w", t, err)
		}
		agg.Observe(result)
	}
	return nil
}

// splitTrials partitions total trials into contiguous per-worker counts,
// spreading the remainder over the first workers.
func splitTrials(total, workers int) []int {
	chunks := make([]int, workers)
	base, rem := total/workers, total%workers
	for w := range chunks {
		chunks[w] = base
		if w < rem {
			chunks[w]++
		}
	}
	return chunks
}
