// Package config holds the settings of the geoplot commands and binds them to
// command line flags.
package config

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/kass/go-geo-plot/pkg/geo"
	"github.com/kass/go-geo-plot/pkg/models"
	"github.com/kass/go-geo-plot/pkg/plot"
	"github.com/kass/go-geo-plot/pkg/scalebar"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// ScaleBar configures the scalebar command
type ScaleBar struct {
	Projection string
	Extent     []float64
	Size       string
	Out        string
	Mono       bool

	X, Y       float64
	Length     float64
	AbsLen     float64
	Unit       string
	Label      string
	Type       string
	NDiv       int
	Cap        string
	LineWidth  float64
	TextScale  float64
	BarHeight  float64
	Background string
	Mar        []float64
}

// DefaultScaleBar returns the scalebar settings for a Web Mercator map of Europe
func DefaultScaleBar() ScaleBar {
	def := scalebar.DefaultOptions()
	return ScaleBar{
		Projection: "merc",
		Extent:     []float64{-1113195, 3339585, 4163881, 8399738},
		Size:       "800x600",
		Out:        "scalebar.png",
		X:          def.X,
		Y:          def.Y,
		Length:     def.Length,
		Unit:       def.Unit,
		Type:       def.Type,
		Cap:        def.Cap.String(),
		LineWidth:  def.LineWidth,
		TextScale:  def.TextScale,
		BarHeight:  def.BarHeight,
		Mar:        def.Mar[:],
	}
}

// Bind registers the scalebar flags on fs
func (c *ScaleBar) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Projection, "proj", c.Projection, "Map projection: merc, longlat, utm:<zone>[s] or a proj4 string")
	fs.Float64SliceVar(&c.Extent, "extent", c.Extent, "Plot extent xmin,xmax,ymin,ymax in map units")
	fs.StringVar(&c.Size, "size", c.Size, "Image size WIDTHxHEIGHT in pixels")
	fs.StringVarP(&c.Out, "out", "o", c.Out, "Output PNG file")
	fs.BoolVar(&c.Mono, "mono", c.Mono, "Write a 1-bit PNG")

	fs.Float64Var(&c.X, "x", c.X, "Relative x position of the bar start, 0..1")
	fs.Float64Var(&c.Y, "y", c.Y, "Relative y position of the bar start, 0..1")
	fs.Float64VarP(&c.Length, "length", "l", c.Length, "Preferred bar length as a fraction of the plot width")
	fs.Float64Var(&c.AbsLen, "abslen", c.AbsLen, "Explicit bar length in --unit (0 picks a round length)")
	fs.StringVarP(&c.Unit, "unit", "u", c.Unit, "Distance unit: m, km, mi, ft, yd")
	fs.StringVar(&c.Label, "label", c.Label, "Text replacing the unit symbol")
	fs.StringVarP(&c.Type, "type", "t", c.Type, "Scale bar type: bar or line")
	fs.IntVar(&c.NDiv, "ndiv", c.NDiv, "Number of bar divisions (0 picks one)")
	fs.StringVar(&c.Cap, "cap", c.Cap, "Line cap: butt, round or square")
	fs.Float64Var(&c.LineWidth, "lwd", c.LineWidth, "Line width in pixels")
	fs.Float64Var(&c.TextScale, "cex", c.TextScale, "Text scale")
	fs.Float64Var(&c.BarHeight, "bar-height", c.BarHeight, "Bar height in text heights")
	fs.StringVar(&c.Background, "bg", c.Background, "Background color as #rrggbb, empty for none")
	fs.Float64SliceVar(&c.Mar, "mar", c.Mar, "Background margins bottom,left,top,right")
}

// Validate checks the settings that the scalebar package does not check itself
func (c *ScaleBar) Validate() error {
	if len(c.Extent) != 4 {
		return errors.Errorf("extent needs 4 values, got %d", len(c.Extent))
	}
	if len(c.Mar) != 4 {
		return errors.Errorf("mar needs 4 values, got %d", len(c.Mar))
	}
	if _, _, err := c.ImageSize(); err != nil {
		return err
	}
	if _, err := plot.ParseCap(c.Cap); err != nil {
		return err
	}
	if _, err := ParseColor(c.Background); err != nil {
		return err
	}
	if c.Out == "" {
		return errors.New("output file is required")
	}
	return c.MapExtent().Validate()
}

// MapExtent returns the configured extent
func (c *ScaleBar) MapExtent() models.Extent {
	if len(c.Extent) != 4 {
		return models.Extent{}
	}
	return models.Extent{XMin: c.Extent[0], XMax: c.Extent[1], YMin: c.Extent[2], YMax: c.Extent[3]}
}

// ImageSize parses Size
func (c *ScaleBar) ImageSize() (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(c.Size), "x")
	if !ok {
		return 0, 0, errors.Errorf("bad size %q, want WIDTHxHEIGHT", c.Size)
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, errors.Errorf("bad size %q, want WIDTHxHEIGHT", c.Size)
	}
	return w, h, nil
}

// Options converts the settings into scale bar options
func (c *ScaleBar) Options() (scalebar.Options, error) {
	opts := scalebar.DefaultOptions()
	cp, err := plot.ParseCap(c.Cap)
	if err != nil {
		return opts, err
	}
	bg, err := ParseColor(c.Background)
	if err != nil {
		return opts, err
	}

	opts.X, opts.Y = c.X, c.Y
	opts.Length = c.Length
	opts.AbsLen = c.AbsLen
	opts.Unit = c.Unit
	opts.Label = c.Label
	opts.Type = c.Type
	opts.NDiv = c.NDiv
	opts.Cap = cp
	opts.LineWidth = c.LineWidth
	opts.TextScale = c.TextScale
	opts.BarHeight = c.BarHeight
	opts.Background = bg
	copy(opts.Mar[:], c.Mar)
	return opts, nil
}

// Triangle configures the triangle command
type Triangle struct {
	X, Y   []float64
	Digits int
}

func (c *Triangle) Bind(fs *pflag.FlagSet) {
	fs.Float64SliceVar(&c.X, "x", c.X, "x coordinates of the 3 vertices")
	fs.Float64SliceVar(&c.Y, "y", c.Y, "y coordinates of the 3 vertices")
	fs.IntVarP(&c.Digits, "digits", "d", c.Digits, "Decimal digits of the result")
}

// MaxDist configures the maxdist command
type MaxDist struct {
	File   string
	Sheet  string
	Radius float64
}

// DefaultMaxDist returns distances in kilometers
func DefaultMaxDist() MaxDist {
	return MaxDist{Radius: geo.EarthRadiusKm}
}

func (c *MaxDist) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&c.File, "file", "f", c.File, "CSV or XLSX file with lat,lon rows")
	fs.StringVar(&c.Sheet, "sheet", c.Sheet, "XLSX sheet name (default first sheet)")
	fs.Float64VarP(&c.Radius, "radius", "r", c.Radius, "Sphere radius, sets the unit of the result")
}

func (c *MaxDist) Validate() error {
	if c.File == "" {
		return errors.New("point file is required")
	}
	return nil
}

// ParseColor parses #rgb or #rrggbb. An empty string is no color.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") || strings.EqualFold(s, "transparent") {
		return nil, nil
	}
	switch strings.ToLower(s) {
	case "white":
		return color.White, nil
	case "black":
		return color.Black, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, errors.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, errors.Errorf("bad color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
