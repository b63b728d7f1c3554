package engine

import (
	"math"

	"github.com/tphakala/go-constrained-spline/internal/simdops"
)

// Cubic holds one segment polynomial A + B·t + C·t² + D·t³ with t = x − X0,
// where X0 is the segment's left knot.
//
// The local basis keeps every coefficient on the scale of the segment, so
// accuracy does not depend on how far the domain lies from zero. Use
// Absolute for the equivalent polynomial in x.
type Cubic[F simdops.Float] struct {
	X0         F
	A, B, C, D F
}

// newCubic solves for the cubic through p0 and p1 whose first derivatives at
// the two ends are d0 and d1.
//
// The endpoint second derivatives are
//
//	f''(x0) = −2(d1 + 2·d0)/h + 6·Δy/h²
//	f''(x1) =  2(2·d1 + d0)/h − 6·Δy/h²
//
// so C = f''(x0)/2 and D = (f''(x1) − f''(x0))/(6h).
func newCubic[F simdops.Float](p0, p1 Point[F], d0, d1 F) Cubic[F] {
	h := p1.X - p0.X
	dy := p1.Y - p0.Y

	dd0 := -2*(d1+2*d0)/h + 6*dy/(h*h)
	dd1 := 2*(2*d1+d0)/h - 6*dy/(h*h)

	return Cubic[F]{
		X0: p0.X,
		A:  p0.Y,
		B:  d0,
		C:  dd0 / 2,
		D:  (dd1 - dd0) / (6 * h),
	}
}

// Eval evaluates the polynomial at x.
// Uses Horner's form ((D*t + C)*t + B)*t + A as three fused multiply-adds.
func (c Cubic[F]) Eval(x F) F {
	t := float64(x - c.X0)
	return F(math.FMA(math.FMA(math.FMA(float64(c.D), t, float64(c.C)), t, float64(c.B)), t, float64(c.A)))
}

// Slope evaluates the first derivative B + 2C·t + 3D·t².
func (c Cubic[F]) Slope(x F) F {
	t := float64(x - c.X0)
	return F(math.FMA(math.FMA(3*float64(c.D), t, 2*float64(c.C)), t, float64(c.B)))
}

// Absolute returns the coefficients of the same polynomial in absolute x,
// a + b·x + c·x² + d·x³. Far from the origin these suffer cancellation and
// are meant for display and export, not evaluation.
func (c Cubic[F]) Absolute() (a, b, cc, d F) {
	x0 := c.X0
	a = c.A - c.B*x0 + c.C*x0*x0 - c.D*x0*x0*x0
	b = c.B - 2*c.C*x0 + 3*c.D*x0*x0
	cc = c.C - 3*c.D*x0
	d = c.D
	return a, b, cc, d
}

// area returns the integral of the polynomial over [u, v].
func (c Cubic[F]) area(u, v F, ops *simdops.Ops[F]) F {
	coeffs := [cubicCoefficients]F{c.A, c.B, c.C, c.D}

	// Weight k is (tv^(k+1) − tu^(k+1)) / (k+1), the antiderivative of t^k.
	tu, tv := u-c.X0, v-c.X0
	var weights [cubicCoefficients]F
	pu, pv := tu, tv
	for k := range weights {
		weights[k] = (pv - pu) / F(k+1)
		pu *= tu
		pv *= tv
	}

	return ops.DotProductUnsafe(coeffs[:], weights[:])
}
