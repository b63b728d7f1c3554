package cspline

import (
	"slices"

	"github.com/tphakala/go-constrained-spline/internal/engine"
)

// =============================================================================
// Float32 Native API
// =============================================================================
//
// The following types provide a float32-native spline for callers whose data
// is already float32, such as animation curves and audio parameter tracks.
// Coefficients are held in float32 in a per-segment offset basis, so accuracy
// tracks the segment scale rather than the distance from zero; expect about
// 1e-6 relative error. For maximum precision use the float64 API instead.
//
// Spline32 covers evaluation, slope, integral and the knot accessors. Grid
// sampling ([Spline.Sample]), [Spline.WithPoint] and coefficient export are
// float64-only.

// DataPoint32 is a float32 knot.
type DataPoint32 struct {
	X float32
	Y float32
}

// Spline32 is the float32 equivalent of [Spline].
type Spline32 struct {
	engine *engine.Spline[float32]
	ys     []float32 // knot y values, for Range
}

// New32 builds a float32 spline through points. The same preconditions as
// [New] apply.
func New32(points []DataPoint32) *Spline32 {
	ps := make([]engine.Point[float32], len(points))
	ys := make([]float32, len(points))
	for i, p := range points {
		ps[i] = engine.Point[float32]{X: p.X, Y: p.Y}
		ys[i] = p.Y
	}
	return &Spline32{engine: engine.NewSpline(ps), ys: ys}
}

// Evaluate returns the interpolated value at x.
func (s *Spline32) Evaluate(x float32) float32 {
	return s.engine.Evaluate(x)
}

// EvaluateAll evaluates the spline at each x in xs. An optional output slice
// can be supplied to prevent heap allocation.
func (s *Spline32) EvaluateAll(xs []float32, out ...[]float32) []float32 {
	return s.engine.EvaluateAll(xs, out...)
}

// Slope returns the first derivative of the interpolant at x. It is 0
// outside the knot domain.
func (s *Spline32) Slope(x float32) float32 {
	return s.engine.Slope(x)
}

// Domain returns the first and last knot x. An empty spline reports (0, 0).
func (s *Spline32) Domain() (lo, hi float32) {
	return s.engine.Domain()
}

// Range returns the smallest and largest knot y. An empty spline reports
// (0, 0).
func (s *Spline32) Range() (lo, hi float32) {
	if len(s.ys) == 0 {
		return 0, 0
	}
	return slices.Min(s.ys), slices.Max(s.ys)
}

// Integrate returns the integral of the interpolant over [lo, hi].
func (s *Spline32) Integrate(lo, hi float32) float32 {
	return s.engine.Integrate(lo, hi)
}

// Len returns the number of knots.
func (s *Spline32) Len() int {
	return s.engine.Len()
}

// At returns knot i.
func (s *Spline32) At(i int) DataPoint32 {
	p := s.engine.At(i)
	return DataPoint32{X: p.X, Y: p.Y}
}

// Derivative returns the constrained first-derivative estimate at knot i.
func (s *Spline32) Derivative(i int) float32 {
	return s.engine.Derivative(i)
}

// ToFloat32 converts float64 knots to float32 knots.
func ToFloat32(points []DataPoint) []DataPoint32 {
	out := make([]DataPoint32, len(points))
	for i, p := range points {
		out[i] = DataPoint32{X: float32(p.X), Y: float32(p.Y)}
	}
	return out
}
