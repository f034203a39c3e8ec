package density

import (
	"fmt"
	"math"
	"math/rand"
	randv2 "math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// smoothHeightOffset keeps raw control heights strictly positive.
	smoothHeightOffset = 0.1

	// smoothFloor keeps smoothed heights strictly positive so the
	// normalization integral cannot vanish.
	smoothFloor = 1e-6
)

// SmoothRandom is a randomly synthesized smooth density on [0, 1]: random
// control-point heights, moving-average smoothing, an interpolant through
// the smoothed points, clamping at zero and numerical normalization.
type SmoothRandom struct {
	ctrlX     []float64
	ctrlY     []float64 // normalized heights, for reporting
	predictor interp.Predictor
	area      float64
	bound     float64
}

// NewSmoothRandom synthesizes a smooth density from m evenly spaced control
// points using the given interpolation mode (SmoothingLinear or
// SmoothingAkima). Heights come from the rng, so the same rng state
// reproduces the same density bit for bit.
func NewSmoothRandom(m int, mode string, rng *rand.Rand) (*SmoothRandom, error) {
	if m < 4 {
		return nil, fmt.Errorf("smooth density requires at least 4 control points, got %d", m)
	}

	// distuv sources live in math/rand/v2; bridge the simulation stream
	// into a PCG seed so determinism carries over.
	src := randv2.NewPCG(rng.Uint64(), rng.Uint64())
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	raw := make([]float64, m)
	for i := range raw {
		raw[i] = math.Abs(normal.Rand()) + smoothHeightOffset
	}

	// Moving-average smoothing with a (1, 2, 1) window, zero-padded at
	// the edges. Scale is irrelevant; normalization divides it out.
	heights := make([]float64, m)
	for i := range heights {
		v := 2 * raw[i]
		if i > 0 {
			v += raw[i-1]
		}
		if i < m-1 {
			v += raw[i+1]
		}
		heights[i] = math.Max(v, smoothFloor)
	}

	ctrlX := floats.Span(make([]float64, m), 0, 1)

	var predictor interp.FittablePredictor
	switch mode {
	case SmoothingLinear:
		predictor = &interp.PiecewiseLinear{}
	case SmoothingAkima:
		predictor = &interp.AkimaSpline{}
	default:
		return nil, fmt.Errorf("unknown smoothing mode %q", mode)
	}
	if err := predictor.Fit(ctrlX, heights); err != nil {
		return nil, fmt.Errorf("fitting %s interpolant: %w", mode, err)
	}

	d := &SmoothRandom{ctrlX: ctrlX, predictor: predictor}

	// Normalize the clamped curve by trapezoidal integration.
	xs := grid(gridN)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = d.raw(x)
	}
	area := integrate.Trapezoidal(xs, ys)
	if math.IsNaN(area) || math.IsInf(area, 0) || area <= 0 {
		return nil, fmt.Errorf("%w: smooth density integrates to %.6g", ErrNormalization, area)
	}
	d.area = area

	// Rejection envelope over grid and control points, with headroom for
	// spline overshoot between grid nodes.
	maxY := floats.Max(ys)
	for _, h := range heights {
		maxY = math.Max(maxY, h)
	}
	d.bound = maxY / area * envelopeHeadroom

	d.ctrlY = make([]float64, m)
	for i, h := range heights {
		d.ctrlY[i] = h / area
	}

	return d, nil
}

// raw evaluates the unnormalized clamped interpolant.
func (d *SmoothRandom) raw(x float64) float64 {
	return math.Max(0, d.predictor.Predict(x))
}

func (d *SmoothRandom) Evaluate(x float64) float64 {
	if x < 0 || x > 1 {
		return 0
	}
	return d.raw(x) / d.area
}

func (d *SmoothRandom) Sampler() Sampler {
	return &rejectionSampler{f: d.Evaluate, bound: d.bound}
}

// ControlPoints returns the control-point positions and their normalized
// heights in x order. Chart reports overlay these on the density curve.
func (d *SmoothRandom) ControlPoints() (xs, ys []float64) {
	xs = make([]float64, len(d.ctrlX))
	ys = make([]float64, len(d.ctrlY))
	copy(xs, d.ctrlX)
	copy(ys, d.ctrlY)
	return xs, ys
}
