// Package plot defines the drawing surface the map helpers draw on and the map
// context they read extents and projection from.
package plot

import (
	"image/color"
	"strings"

	"github.com/kass/go-geo-plot/pkg/models"
	"github.com/kass/go-geo-plot/pkg/proj"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Device is a drawing surface. All coordinates are map units of the plot.
type Device interface {
	Rect(b orb.Bound, f Fill)
	Line(a, b orb.Point, s Stroke)
	// Text draws s with its vertical center at p, aligned horizontally by f.Align
	Text(p orb.Point, s string, f Font)
	// TextSize returns the width and height of s in map units
	TextSize(s string, f Font) (w, h float64)
}

// Map is the context of a map plot: its current extents and projection.
type Map struct {
	Extent     models.Extent
	Projection proj.Projection
}

// Validate checks that the map has usable extents and a projection
func (m Map) Validate() error {
	if m.Projection == nil {
		return errors.New("map has no projection")
	}
	if err := m.Extent.Validate(); err != nil {
		return errors.Wrap(err, "map extent")
	}
	return nil
}

// Fill styles a rectangle. A nil Color leaves the interior transparent and a
// nil Border draws no outline.
type Fill struct {
	Color       color.Color
	Border      color.Color
	BorderWidth float64
}

// Cap is a line end style
type Cap int

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

func (c Cap) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	}
	return "butt"
}

// ParseCap returns the cap for its name
func ParseCap(s string) (Cap, error) {
	switch strings.ToLower(s) {
	case "", "butt":
		return CapButt, nil
	case "round":
		return CapRound, nil
	case "square":
		return CapSquare, nil
	}
	return CapButt, errors.Errorf("unknown line cap %q", s)
}

// Stroke styles a line. Width is in device pixels.
type Stroke struct {
	Color color.Color
	Width float64
	Cap   Cap
}

// Align is the horizontal anchor of a text label
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Font styles a text label. Scale multiplies the device's base font size.
type Font struct {
	Color color.Color
	Scale float64
	Align Align
}

// TextBound returns the bound of a label drawn at p with size (w, h)
func TextBound(p orb.Point, w, h float64, a Align) orb.Bound {
	x0 := p[0] - w/2
	switch a {
	case AlignLeft:
		x0 = p[0]
	case AlignRight:
		x0 = p[0] - w
	}
	return orb.Bound{
		Min: orb.Point{x0, p[1] - h/2},
		Max: orb.Point{x0 + w, p[1] + h/2},
	}
}
