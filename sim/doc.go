// Package sim provides the Monte Carlo engine estimating the expected load
// of the server chosen by a randomized k-choices load balancer.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - trial.go: one trial (N fresh loads, per-k subset minima)
//   - aggregate.go: per-k sums and quantile histograms, merge and finalize
//   - simulator.go: the trial loop, sequential or worker-parallel
//
// # Architecture
//
// The sim package owns configuration, RNG partitioning and the trial
// driver; the concerns it delegates live in sub-packages:
//   - sim/density/: load densities on [0, 1] (uniform, polynomial, smooth
//     random) and their samplers
//   - sim/choice/: uniform k-subset selection without replacement
//   - sim/report/: tables, CSV export and HTML charts over finished runs
//   - sim/bins/: the discrete balls-into-bins companion study
//
// # Reproducibility
//
// All randomness derives from one master seed through PartitionedRNG:
// density synthesis, worker trial streams and placement strategies each
// get an isolated, deterministically derived source. A fixed (seed,
// workers) pair reproduces results bit for bit.
package sim
