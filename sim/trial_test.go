package sim

import (
	"errors"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/choice-sim/choice-sim/sim/choice"
	"github.com/choice-sim/choice-sim/sim/density"
)

func TestRunTrial_FullSubsetEqualsExhaustiveMinimum(t *testing.T) {
	// GIVEN a trial where max k equals the server count
	const n = 16
	rng := rand.New(rand.NewSource(42))
	smp := density.Uniform{}.Sampler()
	picker := choice.NewPicker(n, n)
	loads := make([]float64, n)
	result := make([]float64, n)

	for trial := 0; trial < 200; trial++ {
		if err := runTrial(rng, smp, picker, loads, result); err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}

		// THEN the k=n policy lands on the global minimum
		if want := floats.Min(loads); result[n-1] != want {
			t.Fatalf("trial %d: result[k=n] = %g, exhaustive minimum = %g", trial, result[n-1], want)
		}
	}
}

func TestRunTrial_ResultsAreDrawnLoads(t *testing.T) {
	const n = 32
	rng := rand.New(rand.NewSource(7))
	smp := density.Uniform{}.Sampler()
	picker := choice.NewPicker(n, 8)
	loads := make([]float64, n)
	result := make([]float64, 8)

	if err := runTrial(rng, smp, picker, loads, result); err != nil {
		t.Fatal(err)
	}

	have := make(map[float64]bool, n)
	for _, v := range loads {
		have[v] = true
	}
	min := floats.Min(loads)
	for k, v := range result {
		if !have[v] {
			t.Errorf("result[k=%d] = %g is not one of the drawn loads", k+1, v)
		}
		if v < min {
			t.Errorf("result[k=%d] = %g below the trial minimum %g", k+1, v, min)
		}
	}
}

// failingSampler aborts after a fixed number of draws.
type failingSampler struct {
	remaining int
	err       error
}

func (s *failingSampler) Sample(rng *rand.Rand) (float64, error) {
	if s.remaining <= 0 {
		return 0, s.err
	}
	s.remaining--
	return rng.Float64(), nil
}

func TestRunTrial_PropagatesSamplerError(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cause := errors.New("draw failed")
	smp := &failingSampler{remaining: 3, err: cause}
	picker := choice.NewPicker(8, 2)

	err := runTrial(rng, smp, picker, make([]float64, 8), make([]float64, 2))
	if !errors.Is(err, cause) {
		t.Fatalf("got %v, want wrapped sampler error", err)
	}
}
