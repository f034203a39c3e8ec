// Package density synthesizes, normalizes and samples probability densities
// of server load on [0, 1].
package density

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Sentinel errors for density construction and sampling failures.
var (
	// ErrNegativeDensity reports a density function that dips below zero
	// somewhere on [0, 1]. Detected at construction.
	ErrNegativeDensity = errors.New("density is negative on [0, 1]")

	// ErrNormalization reports a normalization integral that is zero,
	// negative or non-finite. Detected at construction.
	ErrNormalization = errors.New("density normalization failed")

	// ErrSamplingExhausted reports a rejection sampler that exceeded its
	// retry budget without accepting a draw.
	ErrSamplingExhausted = errors.New("rejection sampling retry budget exhausted")
)

const (
	// gridN is the number of subdivisions used for numerical
	// normalization, negativity scans and envelope bounds.
	gridN = 2000

	// maxRejectionRetries caps the candidate draws of a single rejection
	// sample before giving up with ErrSamplingExhausted.
	maxRejectionRetries = 10000

	// envelopeHeadroom inflates the grid maximum of a density so the
	// rejection envelope also covers interpolation overshoot between
	// grid nodes.
	envelopeHeadroom = 1.05

	// negativityTolerance absorbs floating-point noise when scanning a
	// density for negative values.
	negativityTolerance = 1e-12
)

// Density is a normalized probability density on [0, 1].
type Density interface {
	// Evaluate returns the density at x. Outside [0, 1] it returns 0.
	Evaluate(x float64) float64

	// Sampler returns a sampler drawing from this density. Samplers hold
	// no mutable state and are safe for concurrent use as long as each
	// goroutine passes its own rng.
	Sampler() Sampler
}

// Sampler draws values in [0, 1] distributed according to a Density.
type Sampler interface {
	Sample(rng *rand.Rand) (float64, error)
}

// New builds a Density from a Spec. The rng feeds the random synthesis of
// the smooth variant and is otherwise unused. All construction failures
// happen here, before any trial runs.
func New(spec Spec, rng *rand.Rand) (Density, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	switch spec.Type {
	case TypeUniform:
		return Uniform{}, nil
	case TypePolynomial:
		return NewPolynomial(spec.Coefficients)
	case TypeSmooth:
		m := spec.ControlPoints
		if m == 0 {
			m = DefaultControlPoints
		}
		mode := spec.Smoothing
		if mode == "" {
			mode = SmoothingLinear
		}
		return NewSmoothRandom(m, mode, rng)
	default:
		return nil, fmt.Errorf("unknown density type %q", spec.Type)
	}
}

// Uniform is the flat density on [0, 1].
type Uniform struct{}

func (Uniform) Evaluate(x float64) float64 {
	if x < 0 || x > 1 {
		return 0
	}
	return 1
}

func (Uniform) Sampler() Sampler { return uniformSampler{} }

type uniformSampler struct{}

func (uniformSampler) Sample(rng *rand.Rand) (float64, error) {
	return rng.Float64(), nil
}

// rejectionSampler draws from a bounded density by acceptance-rejection:
// propose x ~ U[0, 1], accept when a uniform vertical draw under the
// envelope lands below f(x).
type rejectionSampler struct {
	f     func(x float64) float64
	bound float64
}

func (s *rejectionSampler) Sample(rng *rand.Rand) (float64, error) {
	for i := 0; i < maxRejectionRetries; i++ {
		x := rng.Float64()
		if rng.Float64()*s.bound <= s.f(x) {
			return x, nil
		}
	}
	return 0, fmt.Errorf("%w after %d retries (envelope %.4g)", ErrSamplingExhausted, maxRejectionRetries, s.bound)
}

// grid returns n+1 evenly spaced points spanning [0, 1] inclusive.
func grid(n int) []float64 {
	return floats.Span(make([]float64, n+1), 0, 1)
}
