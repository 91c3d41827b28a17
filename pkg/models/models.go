package models

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Location represents a geographic location with latitude and longitude
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point returns the location as an orb point (lon, lat order)
func (l Location) Point() orb.Point {
	return orb.Point{l.Lon, l.Lat}
}

// Validate checks that the location is finite and within the lat/lon ranges
func (l Location) Validate() error {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lon) || math.IsInf(l.Lat, 0) || math.IsInf(l.Lon, 0) {
		return fmt.Errorf("location (%v, %v) is not finite", l.Lat, l.Lon)
	}
	if l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("latitude %v is outside [-90, 90]", l.Lat)
	}
	return nil
}

// LocationFromPoint converts an orb point (lon, lat) into a Location
func LocationFromPoint(p orb.Point) Location {
	return Location{Lat: p.Lat(), Lon: p.Lon()}
}

// Extent represents the plot coordinate extents in map units
type Extent struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`
}

// Width of the extent along x
func (e Extent) Width() float64 {
	return e.XMax - e.XMin
}

// Height of the extent along y
func (e Extent) Height() float64 {
	return e.YMax - e.YMin
}

// At returns the absolute map coordinate of a relative (fx, fy) position
func (e Extent) At(fx, fy float64) orb.Point {
	return orb.Point{e.XMin + fx*e.Width(), e.YMin + fy*e.Height()}
}

// Bound returns the extent as an orb bound
func (e Extent) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{e.XMin, e.YMin},
		Max: orb.Point{e.XMax, e.YMax},
	}
}

// Validate checks that both axes have a positive, finite span
func (e Extent) Validate() error {
	for _, v := range []float64{e.XMin, e.XMax, e.YMin, e.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("extent %+v is not finite", e)
		}
	}
	if e.Width() <= 0 || e.Height() <= 0 {
		return fmt.Errorf("extent %+v has an empty axis", e)
	}
	return nil
}

// ExtentFromBound converts an orb bound into an Extent
func ExtentFromBound(b orb.Bound) Extent {
	return Extent{XMin: b.Min[0], XMax: b.Max[0], YMin: b.Min[1], YMax: b.Max[1]}
}
