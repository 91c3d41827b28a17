package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangleArea(t *testing.T) {
	testCases := []struct {
		name   string
		x, y   []float64
		digits int
		want   float64
	}{
		{"unit right triangle", []float64{0, 1, 0}, []float64{0, 0, 1}, 3, 0.5},
		{"collinear", []float64{0, 1, 2}, []float64{0, 1, 2}, 3, 0},
		{"repeated vertex", []float64{3, 3, 5}, []float64{1, 1, 7}, 3, 0},
		{"clockwise", []float64{0, 0, 4}, []float64{0, 3, 0}, 3, 6},
		{"rounded", []float64{0, 1, 0}, []float64{0, 0, 1.0 / 3}, 2, 0.17},
		{"negative digits", []float64{0, 100, 0}, []float64{0, 0, 33.4}, -2, 1700},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TriangleArea(tc.x, tc.y, tc.digits)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestTriangleAreaPermutationInvariant(t *testing.T) {
	x := []float64{1.5, -2, 4.25}
	y := []float64{0.5, 3, -1}
	want, err := TriangleArea(x, y, 10)
	require.NoError(t, err)

	perms := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, p := range perms {
		px := []float64{x[p[0]], x[p[1]], x[p[2]]}
		py := []float64{y[p[0]], y[p[1]], y[p[2]]}
		got, err := TriangleArea(px, py, 10)
		require.NoError(t, err)
		assert.Equal(t, want, got, "permutation %v", p)
	}
}

func TestTriangleAreaInvalid(t *testing.T) {
	_, err := TriangleArea([]float64{0, 1}, []float64{0, 0, 1}, 2)
	assert.True(t, errors.Is(err, ErrInvalidVertices))

	_, err = TriangleArea([]float64{0, 1, 0, 2}, []float64{0, 0, 1, 2}, 2)
	assert.True(t, errors.Is(err, ErrInvalidVertices))

	_, err = TriangleArea(nil, nil, 2)
	assert.True(t, errors.Is(err, ErrInvalidVertices))

	_, err = TriangleArea([]float64{0, math.NaN(), 0}, []float64{0, 0, 1}, 2)
	assert.True(t, errors.Is(err, ErrInvalidVertices))
}

func TestPolygonArea(t *testing.T) {
	square := []orb.Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	a, err := PolygonArea(square, 6)
	require.NoError(t, err)
	assert.InDelta(t, 4, a, 1e-12)

	// closed ring and clockwise winding give the same area
	cw := []orb.Point{{0, 0}, {0, 2}, {2, 2}, {2, 0}, {0, 0}}
	a, err = PolygonArea(cw, 6)
	require.NoError(t, err)
	assert.InDelta(t, 4, a, 1e-12)

	// a triangle agrees with the shoelace helper
	tri, err := PolygonArea([]orb.Point{{1.5, 0.5}, {-2, 3}, {4.25, -1}}, 8)
	require.NoError(t, err)
	want, err := TriangleArea([]float64{1.5, -2, 4.25}, []float64{0.5, 3, -1}, 8)
	require.NoError(t, err)
	assert.InDelta(t, want, tri, 1e-8)

	_, err = PolygonArea(square[:2], 2)
	assert.True(t, errors.Is(err, ErrInvalidVertices))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.23, Round(1.234, 2))
	assert.Equal(t, 1.0, Round(1.4, 0))
	assert.Equal(t, 100.0, Round(149, -2))
	assert.Equal(t, 2.0, Round(2.5, 0))
	assert.Equal(t, 4.0, Round(3.5, 0))
	assert.Equal(t, 0.12, Round(0.125, 2))
	assert.Equal(t, -2.0, Round(-2.5, 0))
	assert.True(t, math.IsInf(Round(math.Inf(1), 2), 1))
}

func TestTriangleAreaRoundsHalfToEven(t *testing.T) {
	area, err := TriangleArea([]float64{0, 1, 0}, []float64{0, 0, 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, area)

	area, err = TriangleArea([]float64{0, 3, 0}, []float64{0, 0, 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, area)
}
