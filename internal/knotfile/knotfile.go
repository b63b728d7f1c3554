// Package knotfile reads and writes spline knot lists.
//
// Three formats are understood:
//
//   - YAML: a top-level "points" sequence whose items are either {x, y}
//     mappings or [x, y] pairs. Values may be numbers or numeric strings.
//   - CSV: one "x,y" record per line, an optional header, '#' comments.
//   - Inline: "x:y,x:y,..." as accepted on the command line.
package knotfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	cspline "github.com/tphakala/go-constrained-spline"
)

// Format identifies a knot file encoding.
type Format int

const (
	// FormatYAML is the YAML "points:" document.
	FormatYAML Format = iota
	// FormatCSV is comma separated x,y records.
	FormatCSV
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatCSV:
		return "csv"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Errors returned by the loaders.
var (
	ErrUnknownFormat = errors.New("unknown knot file format")
	ErrMalformed     = errors.New("malformed knot data")
)

const csvFields = 2

// document is the YAML layout.
type document struct {
	Points []any `yaml:"points"`
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads knots from the file at path, choosing the format from its
// extension.
func Load(path string) ([]cspline.DataPoint, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open knot file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, format)
}

// Read decodes knots in the given format.
func Read(r io.Reader, format Format) ([]cspline.DataPoint, error) {
	switch format {
	case FormatYAML:
		return readYAML(r)
	case FormatCSV:
		return readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

func readYAML(r io.Reader) ([]cspline.DataPoint, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	points := make([]cspline.DataPoint, 0, len(doc.Points))
	for i, item := range doc.Points {
		var xv, yv any
		switch v := item.(type) {
		case map[string]any:
			xv, yv = v["x"], v["y"]
		case []any:
			if len(v) != csvFields {
				return nil, fmt.Errorf("%w: point %d has %d values", ErrMalformed, i, len(v))
			}
			xv, yv = v[0], v[1]
		default:
			return nil, fmt.Errorf("%w: point %d has unsupported type %T", ErrMalformed, i, item)
		}

		p, err := toPoint(xv, yv)
		if err != nil {
			return nil, fmt.Errorf("%w: point %d: %w", ErrMalformed, i, err)
		}
		points = append(points, p)
	}
	return points, nil
}

func readCSV(r io.Reader) ([]cspline.DataPoint, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = csvFields
	cr.TrimLeadingSpace = true

	var points []cspline.DataPoint
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		p, err := toPoint(rec[0], rec[1])
		if err != nil {
			// A non-numeric first record is a header.
			if line == 0 {
				continue
			}
			return nil, fmt.Errorf("%w: record %d: %w", ErrMalformed, line+1, err)
		}
		points = append(points, p)
	}
	return points, nil
}

// ParseInline parses "x:y,x:y,..." into knots. Whitespace around values is
// ignored and an empty string yields no knots.
func ParseInline(s string) ([]cspline.DataPoint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	points := make([]cspline.DataPoint, 0, len(fields))
	for i, field := range fields {
		x, y, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not x:y (item %d)", ErrMalformed, field, i)
		}
		p, err := toPoint(strings.TrimSpace(x), strings.TrimSpace(y))
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", ErrMalformed, i, err)
		}
		points = append(points, p)
	}
	return points, nil
}

// WriteYAML encodes points as a YAML knot document readable by Read.
func WriteYAML(w io.Writer, points []cspline.DataPoint) error {
	type knot struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	}
	out := struct {
		Points []knot `yaml:"points"`
	}{Points: make([]knot, len(points))}
	for i, p := range points {
		out.Points[i] = knot{X: p.X, Y: p.Y}
	}

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode knots: %w", err)
	}
	return enc.Close()
}

func toPoint(xv, yv any) (cspline.DataPoint, error) {
	if xv == nil || yv == nil {
		return cspline.DataPoint{}, errors.New("missing coordinate")
	}
	x, err := cast.ToFloat64E(xv)
	if err != nil {
		return cspline.DataPoint{}, fmt.Errorf("x: %w", err)
	}
	y, err := cast.ToFloat64E(yv)
	if err != nil {
		return cspline.DataPoint{}, fmt.Errorf("y: %w", err)
	}
	return cspline.DataPoint{X: x, Y: y}, nil
}
