package engine

import (
	"slices"

	"github.com/tphakala/go-constrained-spline/internal/simdops"
)

// Point is a single knot (x, y) of a spline.
type Point[F simdops.Float] struct {
	X, Y F
}

// Points is an ordered knot sequence.
//
// X must be strictly increasing with no duplicates. This is a documented
// precondition and is not checked; violating it yields NaN, infinities or a
// mis-selected interval rather than an error.
type Points[F simdops.Float] []Point[F]

// Len returns the number of knots.
func (p Points[F]) Len() int {
	return len(p)
}

// At returns knot i. The index is not range-checked beyond the usual slice
// bounds check.
func (p Points[F]) At(i int) Point[F] {
	return p[i]
}

// Clone returns an independent copy of the knot sequence.
func (p Points[F]) Clone() Points[F] {
	return slices.Clone(p)
}

// secant returns the slope of the chord from knot i to knot i+1.
func (p Points[F]) secant(i int) F {
	return (p[i+1].Y - p[i].Y) / (p[i+1].X - p[i].X)
}
