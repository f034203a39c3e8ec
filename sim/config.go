package sim

import "fmt"

// Config groups the geometry of one load-balancing study.
type Config struct {
	// Servers is the number of simulated servers (N). Each trial draws
	// one load per server.
	Servers int

	// MaxK is the largest subset size swept; policies run for k = 1..MaxK.
	// Must not exceed Servers.
	MaxK int

	// Trials is the number of Monte Carlo trials (T).
	Trials int

	// Workers is the number of goroutines running trials. 0 or 1 selects
	// the sequential reference model. The worker count takes part in RNG
	// stream partitioning, so results are reproducible per (seed,
	// workers) pair.
	Workers int

	// Seed is the master seed all subsystem streams derive from.
	Seed int64
}

// Validate rejects impossible geometry. It runs before any density
// construction or trial.
func (c Config) Validate() error {
	if c.Servers <= 0 {
		return fmt.Errorf("%w: servers = %d, want > 0", ErrInvalidConfiguration, c.Servers)
	}
	if c.MaxK <= 0 {
		return fmt.Errorf("%w: max_k = %d, want > 0", ErrInvalidConfiguration, c.MaxK)
	}
	if c.MaxK > c.Servers {
		return fmt.Errorf("%w: max_k = %d exceeds servers = %d", ErrInvalidConfiguration, c.MaxK, c.Servers)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("%w: trials = %d, want > 0", ErrInvalidConfiguration, c.Trials)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers = %d, want >= 0", ErrInvalidConfiguration, c.Workers)
	}
	return nil
}

// workerCount resolves the effective number of trial workers: at least one,
// never more than there are trials.
func (c Config) workerCount() int {
	w := c.Workers
	if w < 1 {
		w = 1
	}
	if w > c.Trials {
		w = c.Trials
	}
	return w
}
