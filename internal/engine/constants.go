package engine

// Derivative estimation constants
const (
	// Numerator of the harmonic combination 2 / (1/s_left + 1/s_right)
	harmonicScale = 2.0

	// End-knot estimate: boundaryChordWeight*s - f'_inner/boundaryInnerDivisor
	boundaryChordWeight  = 1.5
	boundaryInnerDivisor = 2.0

	// Knot count where both ends reference each other
	twoKnots = 2
)

// Cubic segment constants
const (
	// Number of polynomial coefficients per segment (A, B, C, D)
	cubicCoefficients = 4
)
