package engine

import "github.com/tphakala/go-constrained-spline/internal/simdops"

// bracket returns the index upper such that pts[upper-1].X <= x < pts[upper].X.
//
// Requires len(pts) >= 2 and pts[0].X <= x < pts[len(pts)-1].X. The search
// narrows a [lower, upper] bracket until the two ends are adjacent.
func bracket[F simdops.Float](pts Points[F], x F) int {
	lower, upper := 0, len(pts)-1
	for lower+1 != upper {
		mid := int(uint(lower+upper) >> 1)
		if x < pts[mid].X {
			upper = mid
		} else {
			lower = mid
		}
	}
	return upper
}

// bracketFrom is bracket with a hint from a previous lookup. Ascending query
// runs usually land in the hinted interval or the one after it.
func bracketFrom[F simdops.Float](pts Points[F], x F, hint int) int {
	if hint >= 1 && hint < len(pts) && pts[hint-1].X <= x {
		if x < pts[hint].X {
			return hint
		}
		if hint+1 < len(pts) && x < pts[hint+1].X {
			return hint + 1
		}
	}
	return bracket(pts, x)
}
