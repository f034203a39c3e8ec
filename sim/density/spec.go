package density

import "fmt"

// Density type names accepted in study specs and on the command line.
const (
	TypeUniform    = "uniform"
	TypePolynomial = "polynomial"
	TypeSmooth     = "smooth"
)

// Smoothing interpolation modes for the smooth density.
const (
	SmoothingLinear = "linear"
	SmoothingAkima  = "akima"
)

// DefaultControlPoints is the control-point count used when a smooth spec
// leaves it unset.
const DefaultControlPoints = 10

// Spec configures a server-load density on [0, 1].
type Spec struct {
	// Type selects the density family: uniform, polynomial or smooth.
	Type string `yaml:"type"`

	// Coefficients are the polynomial coefficients c0..cn of
	// p(x) = sum ci * x^i. Required for polynomial, ignored otherwise.
	Coefficients []float64 `yaml:"coefficients,omitempty"`

	// ControlPoints is the number of random control points of a smooth
	// density. Zero means DefaultControlPoints; the minimum is 4.
	ControlPoints int `yaml:"control_points,omitempty"`

	// Smoothing selects the interpolant through the smoothed control
	// points: SmoothingLinear (default) or SmoothingAkima.
	Smoothing string `yaml:"smoothing,omitempty"`
}

// Validate checks structural consistency without building the density.
// Numerical failures (negative polynomials, vanishing integrals) surface
// later, at construction.
func (s Spec) Validate() error {
	switch s.Type {
	case TypeUniform:
	case TypePolynomial:
		if len(s.Coefficients) == 0 {
			return fmt.Errorf("polynomial density requires coefficients")
		}
	case TypeSmooth:
		if s.ControlPoints != 0 && s.ControlPoints < 4 {
			return fmt.Errorf("smooth density requires at least 4 control points, got %d", s.ControlPoints)
		}
		switch s.Smoothing {
		case "", SmoothingLinear, SmoothingAkima:
		default:
			return fmt.Errorf("unknown smoothing mode %q (expected %q or %q)", s.Smoothing, SmoothingLinear, SmoothingAkima)
		}
	default:
		return fmt.Errorf("unknown density type %q", s.Type)
	}
	return nil
}
