// Package simdops provides SIMD-accelerated vector operations for float32 and
// float64 spline data, so generic code can share one implementation for both
// precisions.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
type Ops[F Float] struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []F) F

	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []F)
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		Sum:              f32.Sum,
		Scale:            f32.Scale,
		Interleave2:      f32.Interleave2,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		Sum:              f64.Sum,
		Scale:            f64.Scale,
		Interleave2:      f64.Interleave2,
	}
)

// For returns the Ops instance for type F.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}
