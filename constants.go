package cspline

// Sampling constants
const (
	minSampleCount = 2 // A grid needs both end points
)
