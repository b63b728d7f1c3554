package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cspline "github.com/tphakala/go-constrained-spline"
)

func TestCompare_ConstrainedNeverOvershoots(t *testing.T) {
	for _, ds := range builtinDatasets {
		t.Run(ds.name, func(t *testing.T) {
			results, err := compare(ds.points, defaultSamplesPerSegment)
			require.NoError(t, err)
			require.NotEmpty(t, results)

			constrained := results[0]
			assert.Equal(t, "constrained", constrained.name)
			assert.Zero(t, constrained.overshootSegs)
			assert.Zero(t, constrained.monotoneBreak)
			assert.InDelta(t, 0.0, constrained.maxOvershoot, 0)
		})
	}
}

func TestCompare_NaturalCubicOvershootsStep(t *testing.T) {
	step := []cspline.DataPoint{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 1}}

	results, err := compare(step, defaultSamplesPerSegment)
	require.NoError(t, err)

	byName := make(map[string]result, len(results))
	for _, r := range results {
		byName[r.name] = r
	}

	require.Contains(t, byName, "natural-cubic")
	assert.Positive(t, byName["natural-cubic"].overshootSegs)
	assert.Greater(t, byName["natural-cubic"].maxOvershoot, 0.1)

	require.Contains(t, byName, "linear")
	assert.Zero(t, byName["linear"].overshootSegs)
}

func TestCompare_InvalidKnots(t *testing.T) {
	_, err := compare([]cspline.DataPoint{{X: 1, Y: 0}, {X: 0, Y: 1}}, 10)
	assert.ErrorIs(t, err, cspline.ErrNotIncreasing)
}

func TestAnalyze_DetectsOvershootAndReversal(t *testing.T) {
	points := []cspline.DataPoint{{X: 0, Y: 0}, {X: 1, Y: 1}}
	bump := method{name: "bump", predict: func(x float64) float64 {
		if x >= 0.5 {
			return 1.4 - 0.5*x
		}
		return x
	}}

	r := analyze(points, bump, 10)
	assert.Equal(t, 1, r.overshootSegs)
	assert.Equal(t, 1, r.monotoneBreak)
}
