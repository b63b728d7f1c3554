// Package engine implements the constrained cubic spline.
//
// The spline is built in three passes over an ordered knot set: a constrained
// first-derivative estimate per knot, one cubic per interval derived from the
// two end values and derivatives, and the integral of each cubic over its own
// interval. All three are computed eagerly at construction.
package engine

import (
	"github.com/tphakala/go-constrained-spline/internal/simdops"
)

// Spline is a constrained cubic spline through an ordered knot set.
//
// Type parameter F must be float32 or float64.
//
// A Spline is immutable after construction. Evaluate, Slope and Integrate do
// not allocate or mutate and are safe for concurrent use.
type Spline[F simdops.Float] struct {
	points Points[F]
	slopes []F        // constrained derivative estimate at each knot
	cubics []Cubic[F] // cubics[i] covers [points[i].X, points[i+1].X]
	areas  []F        // integral of cubics[i] over its interval

	ops *simdops.Ops[F]
}

// NewSpline builds a spline through points. The slice is copied, so later
// changes by the caller do not affect the spline.
//
// points must be sorted by strictly increasing X. Empty and single-point
// inputs are allowed.
func NewSpline[F simdops.Float](points []Point[F]) *Spline[F] {
	s := &Spline[F]{
		points: Points[F](points).Clone(),
		ops:    simdops.For[F](),
	}
	s.build()
	return s
}

// build derives every knot slope, cubic and segment area from s.points.
func (s *Spline[F]) build() {
	n := len(s.points)
	s.slopes = make([]F, n)
	estimateDerivatives(s.points, s.slopes)

	if n < twoKnots {
		s.cubics, s.areas = nil, nil
		return
	}

	s.cubics = make([]Cubic[F], n-1)
	s.areas = make([]F, n-1)
	for i := range s.cubics {
		p0, p1 := s.points[i], s.points[i+1]
		s.cubics[i] = newCubic(p0, p1, s.slopes[i], s.slopes[i+1])
		s.areas[i] = s.cubics[i].area(p0.X, p1.X, s.ops)
	}
}

// Len returns the number of knots.
func (s *Spline[F]) Len() int {
	return s.points.Len()
}

// At returns knot i.
func (s *Spline[F]) At(i int) Point[F] {
	return s.points.At(i)
}

// Points returns a copy of the knots.
func (s *Spline[F]) Points() []Point[F] {
	return s.points.Clone()
}

// Segments returns the number of cubic segments, max(n-1, 0).
func (s *Spline[F]) Segments() int {
	return len(s.cubics)
}

// Cubic returns the polynomial for segment i.
func (s *Spline[F]) Cubic(i int) Cubic[F] {
	return s.cubics[i]
}

// Derivative returns the constrained derivative estimate at knot i.
func (s *Spline[F]) Derivative(i int) F {
	return s.slopes[i]
}

// Domain returns the x range covered by the knots. An empty spline reports
// (0, 0).
func (s *Spline[F]) Domain() (lo, hi F) {
	if len(s.points) == 0 {
		return 0, 0
	}
	return s.points[0].X, s.points[len(s.points)-1].X
}

// WithPoint returns a new spline with knot i replaced by p. Every derived
// value is rebuilt; the receiver is left untouched.
func (s *Spline[F]) WithPoint(i int, p Point[F]) *Spline[F] {
	next := &Spline[F]{
		points: s.points.Clone(),
		ops:    s.ops,
	}
	next.points[i] = p
	next.build()
	return next
}

// Evaluate returns the interpolated value at x.
//
// With no knots the result is 0 and with one knot it is that knot's Y.
// Outside the knot domain the nearest end value is returned.
func (s *Spline[F]) Evaluate(x F) F {
	n := len(s.points)
	switch n {
	case 0:
		return 0
	case 1:
		return s.points[0].Y
	}

	if x <= s.points[0].X {
		return s.points[0].Y
	}
	if x >= s.points[n-1].X {
		return s.points[n-1].Y
	}

	return s.cubics[bracket(s.points, x)-1].Eval(x)
}

// EvaluateAll evaluates the spline at every x in xs. An optional output
// slice can be supplied to prevent heap allocation; it is used when its
// capacity is at least len(xs).
//
// Runs of ascending queries reuse the previous interval before falling back
// to binary search.
func (s *Spline[F]) EvaluateAll(xs []F, out ...[]F) []F {
	var dst []F
	if len(out) > 0 && cap(out[0]) >= len(xs) {
		dst = out[0][:len(xs)]
	} else {
		dst = make([]F, len(xs))
	}

	n := len(s.points)
	if n < twoKnots {
		for i, x := range xs {
			dst[i] = s.Evaluate(x)
		}
		return dst
	}

	first, last := s.points[0], s.points[n-1]
	hint := 1
	for i, x := range xs {
		switch {
		case x <= first.X:
			dst[i] = first.Y
		case x >= last.X:
			dst[i] = last.Y
		default:
			hint = bracketFrom(s.points, x, hint)
			dst[i] = s.cubics[hint-1].Eval(x)
		}
	}
	return dst
}

// Slope returns the first derivative of the interpolant at x.
//
// Outside the knot domain the interpolant is flat, so the slope is 0. At the
// two end knots the knot derivative estimate is returned.
func (s *Spline[F]) Slope(x F) F {
	n := len(s.points)
	if n < twoKnots {
		return 0
	}

	first, last := s.points[0], s.points[n-1]
	switch {
	case x < first.X || x > last.X:
		return 0
	case x == last.X:
		return s.slopes[n-1]
	}

	return s.cubics[bracket(s.points, x)-1].Slope(x)
}

// Integrate returns the integral of Evaluate over [lo, hi], including the
// flat extensions outside the knot domain. Integrate(hi, lo) is
// -Integrate(lo, hi).
func (s *Spline[F]) Integrate(lo, hi F) F {
	if lo > hi {
		return -s.Integrate(hi, lo)
	}

	n := len(s.points)
	switch n {
	case 0:
		return 0
	case 1:
		return s.points[0].Y * (hi - lo)
	}

	first, last := s.points[0], s.points[n-1]
	var total F
	if lo < first.X {
		total += first.Y * (min(hi, first.X) - lo)
		lo = first.X
	}
	if hi > last.X {
		total += last.Y * (hi - max(lo, last.X))
		hi = last.X
	}
	if lo >= hi {
		return total
	}

	// first.X <= lo < hi <= last.X from here on.
	i := bracket(s.points, lo) - 1
	j := n - 2
	if hi < last.X {
		j = bracket(s.points, hi) - 1
	}

	if i == j {
		return total + s.cubics[i].area(lo, hi, s.ops)
	}

	total += s.cubics[i].area(lo, s.points[i+1].X, s.ops)
	if j > i+1 {
		total += s.ops.Sum(s.areas[i+1 : j])
	}
	total += s.cubics[j].area(s.points[j].X, hi, s.ops)
	return total
}
