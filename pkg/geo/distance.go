// Package geo provides great-circle distance helpers for geographic point sets.
package geo

import (
	"math"

	"github.com/kass/go-geo-plot/pkg/models"
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// EarthRadiusKm is the mean earth radius in kilometers
	EarthRadiusKm = 6371.0
	// EarthRadiusM is the mean earth radius in meters
	EarthRadiusM = EarthRadiusKm * 1000

	// LargeInputThreshold is the point count above which MaxEarthDist warns
	// that the pairwise comparison is too slow for the input.
	LargeInputThreshold = 2000
)

var (
	ErrInvalidRadius = errors.New("radius must be positive and finite")
	ErrInvalidPoint  = errors.New("invalid point")
)

// Option configures a MaxEarthDist call
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger makes the call log to l. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// Distance returns the great-circle distance between a and b on a sphere of the
// given radius. The result has the unit of radius.
func Distance(a, b models.Location, radius float64) float64 {
	// orb works on its own earth radius, rescale to the caller's sphere
	return orbgeo.DistanceHaversine(a.Point(), b.Point()) / orb.EarthRadius * radius
}

// MaxEarthDist returns the largest great-circle distance between any two points
// of the set, in the unit of radius.
//
// Every unordered pair is compared, so the cost is O(N²). This is fine for the
// handful of points on a map plot but does not scale to large datasets; inputs
// above LargeInputThreshold points log a warning.
func MaxEarthDist(points []models.Location, radius float64, opts ...Option) (float64, error) {
	d, _, _, err := MaxEarthDistPair(points, radius, opts...)
	return d, err
}

// MaxEarthDistPair is MaxEarthDist that also returns the indexes of the farthest
// pair. For fewer than two points the indexes are -1.
func MaxEarthDistPair(points []models.Location, radius float64, opts ...Option) (float64, int, int, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger

	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return 0, -1, -1, errors.Wrapf(ErrInvalidRadius, "radius %v", radius)
	}
	for i, p := range points {
		if err := p.Validate(); err != nil {
			return 0, -1, -1, errors.Wrapf(ErrInvalidPoint, "point %d: %v", i, err)
		}
	}

	n := len(points)
	if n > LargeInputThreshold {
		log.Warn("pairwise max distance is O(N^2) and slow for large inputs",
			zap.Int("points", n),
			zap.Int("pairs", n*(n-1)/2))
	}

	best, bi, bj := 0.0, -1, -1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := Distance(points[i], points[j], radius)
			if d > best || bi < 0 {
				best, bi, bj = d, i, j
			}
		}
	}

	log.Debug("max earth distance",
		zap.Int("points", n),
		zap.Float64("distance", best),
		zap.Int("i", bi),
		zap.Int("j", bj))

	return best, bi, bj, nil
}
