// Package mathutil provides small numeric helpers shared by the spline engine.
package mathutil

import "math"

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Sign classifies x as negative, zero or positive.
//
// Zero is its own class, so Sign(0) never matches Sign of a non-zero value.
// Both signed zeros map to SignZero. NaN has no sign and also maps to SignZero.
func Sign[F Float](x F) int {
	switch {
	case x > 0:
		return SignPositive
	case x < 0:
		return SignNegative
	default:
		return SignZero
	}
}

// SameSign reports whether a and b fall into the same sign class.
func SameSign[F Float](a, b F) bool {
	return Sign(a) == Sign(b)
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite[F Float](x F) bool {
	v := float64(x)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp limits x to [lo, hi].
func Clamp[F Float](x, lo, hi F) F {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
