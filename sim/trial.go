package sim

import (
	"fmt"
	"math/rand"

	"github.com/choice-sim/choice-sim/sim/choice"
	"github.com/choice-sim/choice-sim/sim/density"
)

// runTrial executes one Monte Carlo trial: draw a fresh load for every
// server, then for each subset size k record the minimum load among k
// servers sampled uniformly without replacement.
//
// loads has length Servers and result length MaxK; the owning worker
// reuses both across trials. Subsets are drawn independently per k, so
// when k equals the server count the policy degenerates to the exhaustive
// minimum.
func runTrial(rng *rand.Rand, smp density.Sampler, picker *choice.Picker, loads, result []float64) error {
	for i := range loads {
		v, err := smp.Sample(rng)
		if err != nil {
			return fmt.Errorf("drawing load for server %d: %w", i, err)
		}
		loads[i] = v
	}

	less := func(a, b int) bool { return loads[a] < loads[b] }
	for k := 1; k <= len(result); k++ {
		result[k-1] = loads[picker.MinIndex(rng, k, less)]
	}
	return nil
}
