// Package proj adapts map projections for the plotting helpers. A Projection
// converts between map coordinates and plain geographic lon/lat and reports
// whether its axes are locally linear meters.
package proj

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/pkg/errors"
)

var ErrUnknownProjection = errors.New("unknown projection")

// Projection is a map projection as seen by the plotting helpers.
type Projection interface {
	// Name identifies the projection
	Name() string
	// LocallyEquidistant reports whether short distances along the axes are
	// linear meters (UTM-like systems).
	LocallyEquidistant() bool
	// ToLonLat converts a map coordinate into (lon, lat) degrees
	ToLonLat(p orb.Point) (orb.Point, error)
	// FromLonLat converts (lon, lat) degrees into a map coordinate
	FromLonLat(p orb.Point) (orb.Point, error)
}

type webMercator struct{}

// WebMercator is the spherical pseudo-Mercator projection used by web maps (EPSG:3857).
var WebMercator Projection = webMercator{}

func (webMercator) Name() string             { return "EPSG:3857" }
func (webMercator) LocallyEquidistant() bool { return false }

func (webMercator) ToLonLat(p orb.Point) (orb.Point, error) {
	if !finite(p) {
		return orb.Point{}, fmt.Errorf("mercator: point %v is not finite", p)
	}
	return project.Mercator.ToWGS84(p), nil
}

func (webMercator) FromLonLat(p orb.Point) (orb.Point, error) {
	if !finite(p) || p.Lat() <= -90 || p.Lat() >= 90 {
		return orb.Point{}, fmt.Errorf("mercator: point %v cannot be projected", p)
	}
	return project.WGS84.ToMercator(p), nil
}

type lonLat struct{}

// LonLat is the unprojected geographic system (EPSG:4326), axes in degrees.
var LonLat Projection = lonLat{}

func (lonLat) Name() string             { return "EPSG:4326" }
func (lonLat) LocallyEquidistant() bool { return false }

func (lonLat) ToLonLat(p orb.Point) (orb.Point, error) {
	if !finite(p) || p.Lat() < -90 || p.Lat() > 90 {
		return orb.Point{}, fmt.Errorf("longlat: point %v is outside the globe", p)
	}
	return p, nil
}

func (l lonLat) FromLonLat(p orb.Point) (orb.Point, error) {
	return l.ToLonLat(p)
}

// Parse returns the projection for an identifier. Accepted forms are
// "merc", "EPSG:3857", "longlat", "EPSG:4326", "utm:<zone>" with an optional
// "s" suffix for the southern hemisphere, and raw proj4 strings ("+proj=...").
func Parse(id string) (Projection, error) {
	s := strings.TrimSpace(id)
	switch strings.ToLower(s) {
	case "merc", "mercator", "webmercator", "epsg:3857", "epsg:900913":
		return WebMercator, nil
	case "longlat", "lonlat", "wgs84", "epsg:4326":
		return LonLat, nil
	}

	if zone, ok := strings.CutPrefix(strings.ToLower(s), "utm:"); ok {
		south := strings.HasSuffix(zone, "s")
		zone = strings.TrimSuffix(strings.TrimSuffix(zone, "s"), "n")
		z, err := strconv.Atoi(zone)
		if err != nil || z < 1 || z > 60 {
			return nil, errors.Wrapf(ErrUnknownProjection, "bad utm zone in %q", id)
		}
		p, err := UTM(z, south)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	if strings.HasPrefix(s, "+proj=") {
		p, err := NewProj4(s)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	return nil, errors.Wrapf(ErrUnknownProjection, "%q", id)
}

func finite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsNaN(p[1]) && !math.IsInf(p[0], 0) && !math.IsInf(p[1], 0)
}
