// Package testutil provides reusable test helper functions for spline tests.
package testutil

import (
	"fmt"
	"math"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

// T is the subset of *testing.T the assertion helpers need.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Default tolerances for various test scenarios.
const (
	DefaultTolerance   = 1e-10
	KnotTolerance      = 1e-7
	MonotoneTolerance  = 1e-7
	Float32Tolerance   = 1e-4
	IntegralTolerance  = 1e-7
	ContinuityEpsilon  = 1e-9
	ContinuityDistance = 1e-6
)

// Linspace returns n evenly spaced values from lo to hi inclusive.
// A single value is just lo.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}[:n]
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, fmt.Sprintf("found NaN at s[%d]", i), msgAndArgs...)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, fmt.Sprintf("found Inf at s[%d]", i), msgAndArgs...)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, fmt.Sprintf("s[%d]=%g is outside range [%g, %g]", i, v, minVal, maxVal), msgAndArgs...)
		}
	}
	return true
}

// AssertMonotonic verifies that a slice is monotonically non-decreasing,
// allowing for rounding drift up to tolerance.
func AssertMonotonic(t T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1]-tolerance {
			return assert.Fail(t, fmt.Sprintf("not monotonic: s[%d]=%g < s[%d]=%g", i, s[i], i-1, s[i-1]), msgAndArgs...)
		}
	}
	return true
}

// AssertMonotonicDecreasing verifies that a slice is monotonically
// non-increasing, allowing for rounding drift up to tolerance.
func AssertMonotonicDecreasing(t T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] > s[i-1]+tolerance {
			return assert.Fail(t, fmt.Sprintf("not monotonically decreasing: s[%d]=%g > s[%d]=%g", i, s[i], i-1, s[i-1]), msgAndArgs...)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	if relError > tolerance {
		return assert.Fail(t, fmt.Sprintf("relative error %e exceeds tolerance %e (expected=%g, actual=%g)",
			relError, tolerance, expected, actual), msgAndArgs...)
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, fmt.Sprintf("value %g is outside range [%g, %g]", value, minVal, maxVal), msgAndArgs...)
	}
	return true
}
