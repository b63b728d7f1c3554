package cspline

import (
	"errors"

	"github.com/tphakala/go-constrained-spline/internal/engine"
	"gonum.org/v1/gonum/floats"
)

// DataPoint is a single knot (x, y) of a spline.
type DataPoint struct {
	X float64
	Y float64
}

// Common errors returned by validation and sampling.
var (
	// ErrInvalidConfig indicates invalid sampling parameters.
	ErrInvalidConfig = errors.New("invalid spline configuration")

	// ErrNotIncreasing indicates knot x values that are not strictly increasing.
	ErrNotIncreasing = errors.New("knot x values must be strictly increasing")

	// ErrNonFinite indicates a NaN or infinite knot coordinate.
	ErrNonFinite = errors.New("knot coordinate is not finite")
)

// Spline is a constrained cubic spline through an ordered set of knots.
//
// A Spline is immutable once built. All query methods are free of side
// effects and safe for concurrent use by multiple goroutines.
type Spline struct {
	engine *engine.Spline[float64]
	ys     []float64 // knot y values, for Range
}

// New builds a spline through points.
//
// points must be sorted by strictly increasing X with no duplicates. This is
// not checked: use [NewStrict] or [ValidatePoints] for untrusted input.
// Empty and single-point inputs are allowed and give a constant curve.
//
// The slice is copied; later changes by the caller do not affect the spline.
func New(points []DataPoint) *Spline {
	ps := make([]engine.Point[float64], len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		ps[i] = engine.Point[float64]{X: p.X, Y: p.Y}
		ys[i] = p.Y
	}
	return &Spline{
		engine: engine.NewSpline(ps),
		ys:     ys,
	}
}

// Evaluate returns the interpolated value at x.
//
// With no knots the result is 0 and with one knot it is that knot's Y.
// Below the first knot and above the last, the nearest end value is returned.
func (s *Spline) Evaluate(x float64) float64 {
	return s.engine.Evaluate(x)
}

// EvaluateAll evaluates the spline at each x in xs and returns the results.
// An optional output slice can be supplied to prevent heap allocation; it is
// used when its capacity is at least len(xs).
func (s *Spline) EvaluateAll(xs []float64, out ...[]float64) []float64 {
	return s.engine.EvaluateAll(xs, out...)
}

// Slope returns the first derivative of the interpolant at x. It is 0
// outside the knot domain.
func (s *Spline) Slope(x float64) float64 {
	return s.engine.Slope(x)
}

// Integrate returns the integral of the interpolant over [lo, hi], including
// the flat extensions outside the knot domain.
func (s *Spline) Integrate(lo, hi float64) float64 {
	return s.engine.Integrate(lo, hi)
}

// Len returns the number of knots.
func (s *Spline) Len() int {
	return s.engine.Len()
}

// At returns knot i. It panics if i is out of range.
func (s *Spline) At(i int) DataPoint {
	p := s.engine.At(i)
	return DataPoint{X: p.X, Y: p.Y}
}

// Points returns a copy of the knots.
func (s *Spline) Points() []DataPoint {
	out := make([]DataPoint, s.engine.Len())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// Derivative returns the constrained first-derivative estimate at knot i.
// It is exactly 0 at every local extremum of the knot data.
func (s *Spline) Derivative(i int) float64 {
	return s.engine.Derivative(i)
}

// Segments returns the number of cubic segments, one per pair of adjacent
// knots.
func (s *Spline) Segments() int {
	return s.engine.Segments()
}

// Cubic returns the coefficients of segment i, which equals
// a + b·x + c·x² + d·x³ on [At(i).X, At(i+1).X]. The coefficients are in
// absolute x and lose precision on domains far from zero; evaluation itself
// works in a per-segment offset basis and is not affected.
func (s *Spline) Cubic(i int) (a, b, c, d float64) {
	return s.engine.Cubic(i).Absolute()
}

// Domain returns the first and last knot x. An empty spline reports (0, 0).
func (s *Spline) Domain() (lo, hi float64) {
	return s.engine.Domain()
}

// Range returns the smallest and largest knot y. An empty spline reports
// (0, 0). Because the interpolant never overshoots, every value returned by
// Evaluate lies within this range.
func (s *Spline) Range() (lo, hi float64) {
	if len(s.ys) == 0 {
		return 0, 0
	}
	return floats.Min(s.ys), floats.Max(s.ys)
}

// WithPoint returns a new spline with knot i replaced by p. All segments are
// rebuilt; the receiver is unchanged. It panics if i is out of range.
func (s *Spline) WithPoint(i int, p DataPoint) *Spline {
	ys := make([]float64, len(s.ys))
	copy(ys, s.ys)
	ys[i] = p.Y
	return &Spline{
		engine: s.engine.WithPoint(i, engine.Point[float64]{X: p.X, Y: p.Y}),
		ys:     ys,
	}
}

// Interpolate is a convenience function for one-shot evaluation. It builds a
// spline through points and evaluates it at every x in xs.
func Interpolate(points []DataPoint, xs []float64) []float64 {
	return New(points).EvaluateAll(xs)
}
