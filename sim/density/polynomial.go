package density

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Polynomial is the density p(x) = sum ci * x^i on [0, 1], normalized by
// its analytic integral Z = sum ci / (i+1).
type Polynomial struct {
	coeffs []float64 // original coefficients divided by Z
	xs     []float64 // inversion grid
	cdf    []float64 // exact CDF at xs, last entry forced to 1
}

// NewPolynomial builds a polynomial density from coefficients c0..cn.
// It fails with ErrNegativeDensity if the polynomial dips below zero
// anywhere on [0, 1] and with ErrNormalization if the integral is
// non-positive or non-finite.
func NewPolynomial(coeffs []float64) (*Polynomial, error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("polynomial density requires coefficients")
	}

	var z float64
	for i, c := range coeffs {
		z += c / float64(i+1)
	}
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return nil, fmt.Errorf("%w: polynomial integral is not finite", ErrNormalization)
	}

	for _, x := range grid(gridN) {
		if v := horner(coeffs, x); v < -negativityTolerance {
			return nil, fmt.Errorf("%w: p(%.4f) = %.6g", ErrNegativeDensity, x, v)
		}
	}
	if z <= 0 {
		return nil, fmt.Errorf("%w: polynomial integral is %.6g, want > 0", ErrNormalization, z)
	}

	normalized := make([]float64, len(coeffs))
	for i, c := range coeffs {
		normalized[i] = c / z
	}

	// Exact CDF on the grid via the antiderivative of the normalized
	// polynomial. Monotone because the density is non-negative.
	xs := grid(gridN)
	cdf := make([]float64, len(xs))
	for i, x := range xs {
		cdf[i] = antiderivative(normalized, x)
	}
	cdf[len(cdf)-1] = 1.0

	return &Polynomial{coeffs: normalized, xs: xs, cdf: cdf}, nil
}

func (p *Polynomial) Evaluate(x float64) float64 {
	if x < 0 || x > 1 {
		return 0
	}
	// Clamp residual noise within the negativity tolerance.
	return math.Max(0, horner(p.coeffs, x))
}

func (p *Polynomial) Sampler() Sampler {
	return &inverseCDFSampler{xs: p.xs, cdf: p.cdf}
}

// horner evaluates sum ci * x^i.
func horner(coeffs []float64, x float64) float64 {
	v := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*x + coeffs[i]
	}
	return v
}

// antiderivative evaluates sum ci * x^(i+1) / (i+1), the CDF at x of the
// density with coefficients ci.
func antiderivative(coeffs []float64, x float64) float64 {
	v := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = (v + coeffs[i]/float64(i+1)) * x
	}
	return v
}

// inverseCDFSampler inverts a tabulated CDF by binary search plus linear
// interpolation inside the bracketing grid cell.
type inverseCDFSampler struct {
	xs  []float64
	cdf []float64
}

func (s *inverseCDFSampler) Sample(rng *rand.Rand) (float64, error) {
	u := rng.Float64()
	idx := sort.SearchFloat64s(s.cdf, u)
	if idx == 0 {
		return s.xs[0], nil
	}
	if idx >= len(s.cdf) {
		idx = len(s.cdf) - 1
	}
	lo, hi := s.cdf[idx-1], s.cdf[idx]
	if hi <= lo {
		// Zero-density span: every u in it maps to the cell edge.
		return s.xs[idx], nil
	}
	frac := (u - lo) / (hi - lo)
	return s.xs[idx-1] + frac*(s.xs[idx]-s.xs[idx-1]), nil
}
