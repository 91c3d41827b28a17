// Package geom computes planar areas of small polygons given by their vertices.
package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

var ErrInvalidVertices = errors.New("invalid vertices")

// TriangleArea returns the unsigned area of the triangle with vertices
// (x[0], y[0]), (x[1], y[1]), (x[2], y[2]) using the shoelace formula,
// rounded to digits decimal places.
func TriangleArea(x, y []float64, digits int) (float64, error) {
	if len(x) != 3 || len(y) != 3 {
		return 0, errors.Wrapf(ErrInvalidVertices, "need 3 x and 3 y coordinates, got %d and %d", len(x), len(y))
	}
	if err := checkFinite(x, y); err != nil {
		return 0, err
	}

	a := 0.5 * math.Abs(x[0]*(y[1]-y[2])+x[1]*(y[2]-y[0])+x[2]*(y[0]-y[1]))
	return Round(a, digits), nil
}

// PolygonArea returns the unsigned area of a simple polygon, rounded to digits
// decimal places. The ring is closed automatically.
func PolygonArea(ring []orb.Point, digits int) (float64, error) {
	if len(ring) < 3 {
		return 0, errors.Wrapf(ErrInvalidVertices, "need at least 3 vertices, got %d", len(ring))
	}
	r := make(orb.Ring, len(ring), len(ring)+1)
	copy(r, ring)
	for i, p := range r {
		if !finite(p[0]) || !finite(p[1]) {
			return 0, errors.Wrapf(ErrInvalidVertices, "vertex %d is not finite", i)
		}
	}
	if !r.Closed() {
		r = append(r, r[0])
	}

	return Round(math.Abs(planar.Area(r)), digits), nil
}

// Round rounds v to the given number of decimal digits, halves to even.
// Negative digits round to tens, hundreds and so on.
func Round(v float64, digits int) float64 {
	if v == 0 || !finite(v) {
		return v
	}
	p := math.Pow(10, float64(digits))
	r := math.RoundToEven(v*p) / p
	if !finite(r) {
		return v
	}
	return r
}

func checkFinite(x, y []float64) error {
	for i := range x {
		if !finite(x[i]) || !finite(y[i]) {
			return errors.Wrapf(ErrInvalidVertices, "vertex %d (%v, %v) is not finite", i, x[i], y[i])
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
