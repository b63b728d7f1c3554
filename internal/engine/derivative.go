package engine

import (
	"github.com/tphakala/go-constrained-spline/internal/mathutil"
	"github.com/tphakala/go-constrained-spline/internal/simdops"
)

// estimateDerivatives fills dst with the constrained first-derivative
// estimate at every knot. len(dst) must equal len(pts).
//
// Interior knots get the harmonic combination of the two neighbouring chord
// slopes, or exactly zero when those slopes fall into different sign classes.
// The boundary knots use a one-sided formula that references the adjacent
// interior estimate, so interior values are computed first.
func estimateDerivatives[F simdops.Float](pts Points[F], dst []F) {
	n := len(pts)
	switch n {
	case 0:
		return
	case 1:
		dst[0] = 0
		return
	case twoKnots:
		// Both ends reference each other. The only consistent pair is the
		// chord slope at both knots, which makes the segment a straight line.
		s := pts.secant(0)
		dst[0], dst[1] = s, s
		return
	}

	for i := 1; i < n-1; i++ {
		dst[i] = interiorDerivative(pts, i)
	}
	dst[0] = boundaryDerivative(pts.secant(0), dst[1])
	dst[n-1] = boundaryDerivative(pts.secant(n-2), dst[n-2])
}

// interiorDerivative returns the constrained estimate at knot i, 0 < i < n-1.
func interiorDerivative[F simdops.Float](pts Points[F], i int) F {
	prev, next := pts[i-1], pts[i+1]
	cur := pts[i]

	// A sign change or a flat neighbour marks a local extremum: pin the slope.
	if !mathutil.SameSign(pts.secant(i), pts.secant(i-1)) {
		return 0
	}

	return harmonicScale / ((next.X-cur.X)/(next.Y-cur.Y) + (cur.X-prev.X)/(cur.Y-prev.Y))
}

// boundaryDerivative returns the end-knot estimate from the end chord slope
// and the estimate at the neighbouring knot.
func boundaryDerivative[F simdops.Float](secant, inner F) F {
	return boundaryChordWeight*secant - inner/boundaryInnerDivisor
}
