package models

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestLocationPoint(t *testing.T) {
	l := Location{Lat: 37.7749, Lon: -122.4194}
	p := l.Point()
	assert.Equal(t, orb.Point{-122.4194, 37.7749}, p)
	assert.Equal(t, l, LocationFromPoint(p))
}

func TestLocationValidate(t *testing.T) {
	assert.NoError(t, Location{Lat: 90, Lon: 540}.Validate())
	assert.Error(t, Location{Lat: -90.5}.Validate())
	assert.Error(t, Location{Lat: math.NaN()}.Validate())
	assert.Error(t, Location{Lon: math.Inf(1)}.Validate())
}

func TestExtent(t *testing.T) {
	e := Extent{XMin: -10, XMax: 30, YMin: 0, YMax: 20}
	assert.NoError(t, e.Validate())
	assert.Equal(t, 40.0, e.Width())
	assert.Equal(t, 20.0, e.Height())
	assert.Equal(t, orb.Point{-10, 0}, e.At(0, 0))
	assert.Equal(t, orb.Point{10, 15}, e.At(0.5, 0.75))
	assert.Equal(t, e, ExtentFromBound(e.Bound()))

	assert.Error(t, Extent{XMin: 1, XMax: 1, YMin: 0, YMax: 1}.Validate())
	assert.Error(t, Extent{XMin: 0, XMax: 1, YMin: 2, YMax: 1}.Validate())
	assert.Error(t, Extent{XMin: 0, XMax: math.NaN(), YMin: 0, YMax: 1}.Validate())
}
