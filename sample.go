package cspline

import (
	"fmt"

	"github.com/tphakala/go-constrained-spline/internal/mathutil"
	"gonum.org/v1/gonum/floats"
)

// SampleSpec describes a uniform sampling grid.
type SampleSpec struct {
	// From is the first x of the grid.
	From float64

	// To is the last x of the grid. Must be greater than From.
	To float64

	// Count is the number of grid points including both ends.
	Count int
}

// Validate checks if the sampling grid is valid.
func (c *SampleSpec) Validate() error {
	if c.Count < minSampleCount {
		return fmt.Errorf("%w: count must be at least %d", ErrInvalidConfig, minSampleCount)
	}

	if !mathutil.IsFinite(c.From) || !mathutil.IsFinite(c.To) {
		return fmt.Errorf("%w: grid bounds must be finite", ErrInvalidConfig)
	}

	if c.To <= c.From {
		return fmt.Errorf("%w: grid end %v must be greater than start %v", ErrInvalidConfig, c.To, c.From)
	}

	return nil
}

// Sample evaluates the spline on the uniform grid described by spec and
// returns the grid and the values.
func (s *Spline) Sample(spec SampleSpec) (xs, ys []float64, err error) {
	if err := spec.Validate(); err != nil {
		return nil, nil, err
	}

	xs = floats.Span(make([]float64, spec.Count), spec.From, spec.To)
	return xs, s.EvaluateAll(xs), nil
}

// SampleDomain samples count evenly spaced points across the knot domain.
// The spline needs at least two knots.
func (s *Spline) SampleDomain(count int) (xs, ys []float64, err error) {
	lo, hi := s.Domain()
	return s.Sample(SampleSpec{From: lo, To: hi, Count: count})
}
