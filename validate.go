package cspline

import (
	"fmt"

	"github.com/tphakala/go-constrained-spline/internal/mathutil"
)

// ValidatePoints checks the knot precondition that [New] assumes: every
// coordinate finite and x strictly increasing. Empty and single-point inputs
// are valid.
//
// The returned error wraps [ErrNonFinite] or [ErrNotIncreasing] and names the
// offending index.
func ValidatePoints(points []DataPoint) error {
	return validateKnots(len(points), func(i int) (x, y float64) {
		return points[i].X, points[i].Y
	})
}

// ValidatePoints32 is [ValidatePoints] for float32 knots. Run it after
// narrowing float64 data: knots a few ULPs apart in float64 can collapse to
// the same float32 x.
func ValidatePoints32(points []DataPoint32) error {
	return validateKnots(len(points), func(i int) (x, y float32) {
		return points[i].X, points[i].Y
	})
}

func validateKnots[F mathutil.Float](n int, at func(i int) (x, y F)) error {
	var prevX F
	for i := range n {
		x, y := at(i)
		if !mathutil.IsFinite(x) || !mathutil.IsFinite(y) {
			return fmt.Errorf("%w: point %d is (%v, %v)", ErrNonFinite, i, x, y)
		}
		if i > 0 && x <= prevX {
			return fmt.Errorf("%w: x[%d]=%v follows x[%d]=%v", ErrNotIncreasing, i, x, i-1, prevX)
		}
		prevX = x
	}
	return nil
}

// NewStrict validates points with [ValidatePoints] and builds a spline.
func NewStrict(points []DataPoint) (*Spline, error) {
	if err := ValidatePoints(points); err != nil {
		return nil, err
	}
	return New(points), nil
}

// NewStrict32 validates points with [ValidatePoints32] and builds a float32
// spline.
func NewStrict32(points []DataPoint32) (*Spline32, error) {
	if err := ValidatePoints32(points); err != nil {
		return nil, err
	}
	return New32(points), nil
}
