package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	cspline "github.com/tphakala/go-constrained-spline"
)

// method is one interpolation scheme under comparison.
type method struct {
	name    string
	predict func(x float64) float64
}

// result summarizes how a method behaves between the knots.
type result struct {
	name          string
	maxOvershoot  float64 // largest excursion outside the bracketing knot values
	overshootSegs int     // segments with any excursion
	monotoneBreak int     // monotone segments whose samples reverse direction
}

// fitMethods fits every comparison method to points. The constrained spline
// always comes first.
func fitMethods(points []cspline.DataPoint) ([]method, error) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}

	s, err := cspline.NewStrict(points)
	if err != nil {
		return nil, err
	}
	methods := []method{{name: "constrained", predict: s.Evaluate}}

	fitters := []struct {
		name string
		fp   interp.FittablePredictor
	}{
		{"natural-cubic", &interp.NaturalCubic{}},
		{"akima", &interp.AkimaSpline{}},
		{"fritsch-butland", &interp.FritschButland{}},
		{"linear", &interp.PiecewiseLinear{}},
	}
	for _, f := range fitters {
		if err := f.fp.Fit(xs, ys); err != nil {
			return nil, fmt.Errorf("%s fit failed: %w", f.name, err)
		}
		methods = append(methods, method{name: f.name, predict: f.fp.Predict})
	}
	return methods, nil
}

// analyze samples predict inside every segment of points.
func analyze(points []cspline.DataPoint, m method, samplesPerSegment int) result {
	r := result{name: m.name}

	for i := 0; i+1 < len(points); i++ {
		p0, p1 := points[i], points[i+1]
		lo, hi := math.Min(p0.Y, p1.Y), math.Max(p0.Y, p1.Y)
		dir := math.Copysign(1, p1.Y-p0.Y)
		monotone := p0.Y != p1.Y

		segOvershoot := 0.0
		reversed := false
		prev := p0.Y
		for k := 1; k < samplesPerSegment; k++ {
			x := p0.X + (p1.X-p0.X)*float64(k)/float64(samplesPerSegment)
			v := m.predict(x)

			segOvershoot = math.Max(segOvershoot, math.Max(v-hi, lo-v))
			if monotone && (v-prev)*dir < -reversalTolerance {
				reversed = true
			}
			prev = v
		}

		if segOvershoot > overshootTolerance {
			r.overshootSegs++
			r.maxOvershoot = math.Max(r.maxOvershoot, segOvershoot)
		}
		if reversed {
			r.monotoneBreak++
		}
	}
	return r
}

// compare fits and analyzes every method.
func compare(points []cspline.DataPoint, samplesPerSegment int) ([]result, error) {
	methods, err := fitMethods(points)
	if err != nil {
		return nil, err
	}

	results := make([]result, len(methods))
	for i, m := range methods {
		results[i] = analyze(points, m, samplesPerSegment)
	}
	return results, nil
}
