// Package cspline provides a constrained cubic spline in pure Go.
//
// A constrained cubic spline passes through every knot, is continuous in
// value and first derivative, and never overshoots: the interpolant is
// monotone wherever the knot data is monotone, and every local extremum of
// the data is a flat extremum of the curve. This makes it a good fit for
// envelopes, calibration tables and any curve where ringing between samples
// is unacceptable.
//
// The method follows the constrained cubic spline of C. J. C. Kruger: knot
// derivatives come from a harmonic mean of the neighbouring secant slopes
// and are forced to zero where the slope changes sign, and the second
// derivative is allowed to jump at knots.
//
// # Quick Start
//
// For one-shot evaluation:
//
//	ys := cspline.Interpolate(points, xs)
//
// For repeated queries, build a spline once:
//
//	s, err := cspline.NewStrict([]cspline.DataPoint{
//	    {X: 0, Y: 0},
//	    {X: 1, Y: 1},
//	    {X: 2, Y: 0},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := s.Evaluate(0.5) // 0.6875
//
// # Evaluation Outside the Knots
//
// Queries below the first knot return the first knot's Y and queries above
// the last knot return the last knot's Y. [Spline.Slope] and
// [Spline.Integrate] are consistent with this flat extension.
//
// # Batch Evaluation
//
// [Spline.EvaluateAll] evaluates many abscissas at once and accepts an
// optional output buffer. Ascending query runs reuse the last interval found
// instead of repeating the binary search. [Spline.Sample] evaluates on a
// uniform grid described by [SampleSpec].
//
// # Float32
//
// [Spline32] and [New32] provide the same algorithm with float32 storage and
// arithmetic.
//
// # Thread Safety
//
// A [Spline] is immutable after construction and safe for concurrent use.
// [Spline.WithPoint] returns a new spline rather than modifying the receiver.
package cspline
