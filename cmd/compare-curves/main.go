// Command compare-curves reports how far common interpolation schemes
// overshoot the data compared with the constrained cubic spline.
//
// Usage:
//
//	compare-curves                     # built-in datasets
//	compare-curves -knots data.csv     # a knot file
package main

import (
	"flag"
	"fmt"
	"log"

	cspline "github.com/tphakala/go-constrained-spline"
	"github.com/tphakala/go-constrained-spline/internal/knotfile"
)

const (
	defaultSamplesPerSegment = 200

	// Excursions below these are rounding noise
	overshootTolerance = 1e-9
	reversalTolerance  = 1e-12
)

type dataset struct {
	name   string
	points []cspline.DataPoint
}

var builtinDatasets = []dataset{
	{"Step", []cspline.DataPoint{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}}},
	{"Peak", []cspline.DataPoint{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}}},
	{"Saturation", []cspline.DataPoint{{X: 0, Y: 0}, {X: 0.5, Y: 0.8}, {X: 1, Y: 0.95}, {X: 3, Y: 1}, {X: 10, Y: 1}}},
	{"Uneven", []cspline.DataPoint{{X: 0, Y: 10}, {X: 0.1, Y: 9}, {X: 5, Y: 2}, {X: 5.2, Y: 8}, {X: 9, Y: 8.5}, {X: 12, Y: 0}}},
}

func main() {
	knotsPath := flag.String("knots", "", "Knot file (.yaml, .yml or .csv) to compare instead of the built-in datasets")
	samples := flag.Int("samples", defaultSamplesPerSegment, "Samples per segment")
	flag.Parse()

	datasets := builtinDatasets
	if *knotsPath != "" {
		points, err := knotfile.Load(*knotsPath)
		if err != nil {
			log.Fatal(err)
		}
		datasets = []dataset{{name: *knotsPath, points: points}}
	}

	fmt.Println("=== Interpolant Overshoot Comparison ===")
	for _, ds := range datasets {
		results, err := compare(ds.points, *samples)
		if err != nil {
			fmt.Printf("\n%s: Error - %v\n", ds.name, err)
			continue
		}

		fmt.Printf("\n%s (%d knots):\n", ds.name, len(ds.points))
		fmt.Printf("  %-16s %14s %14s %16s\n", "method", "max overshoot", "overshoot segs", "reversed segs")
		for _, r := range results {
			fmt.Printf("  %-16s %14.6g %14d %16d\n", r.name, r.maxOvershoot, r.overshootSegs, r.monotoneBreak)
		}
	}
}
