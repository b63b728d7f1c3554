package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSign(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want int
	}{
		{"Positive", 2.5, SignPositive},
		{"Tiny positive", math.SmallestNonzeroFloat64, SignPositive},
		{"Negative", -0.1, SignNegative},
		{"Zero", 0, SignZero},
		{"Negative zero", math.Copysign(0, -1), SignZero},
		{"Positive infinity", math.Inf(1), SignPositive},
		{"Negative infinity", math.Inf(-1), SignNegative},
		{"NaN", math.NaN(), SignZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sign(tt.x))
			assert.Equal(t, tt.want, Sign(float32(tt.x)))
		})
	}
}

// TestSameSign_ZeroIsDistinct checks that zero never shares a class with a
// signed value, which is what forces flat neighbours to a zero derivative.
func TestSameSign_ZeroIsDistinct(t *testing.T) {
	assert.True(t, SameSign(1.0, 3.0))
	assert.True(t, SameSign(-1.0, -3.0))
	assert.True(t, SameSign(0.0, math.Copysign(0, -1)))
	assert.False(t, SameSign(0.0, 1.0))
	assert.False(t, SameSign(-1.0, 0.0))
	assert.False(t, SameSign(-1.0, 1.0))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0.0))
	assert.True(t, IsFinite(float32(-1e30)))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))
	assert.False(t, IsFinite(float32(math.Inf(1))))
}

func TestClamp(t *testing.T) {
	assert.InDelta(t, 0.0, Clamp(-3.0, 0, 1), 0)
	assert.InDelta(t, 1.0, Clamp(7.0, 0, 1), 0)
	assert.InDelta(t, 0.25, Clamp(0.25, 0, 1), 0)
}
