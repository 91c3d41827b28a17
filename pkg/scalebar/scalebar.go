// Package scalebar draws scale bars on projected map plots.
//
// The bar length is a round real-world distance. On projections whose axes are
// not linear meters (Web Mercator, plain lon/lat) the end of the bar is found
// by reprojecting to lon/lat and matching the great-circle distance, so the
// drawn bar is correct at its position on the map.
package scalebar

import (
	"image/color"
	"math"
	"strconv"

	"github.com/kass/go-geo-plot/pkg/geom"
	"github.com/kass/go-geo-plot/pkg/plot"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	TypeLine = "line"
	TypeBar  = "bar"

	labelDigits = 2
)

var (
	ErrOutOfRange     = errors.New("value out of range")
	ErrUnknownUnit    = errors.New("unknown unit")
	ErrNotImplemented = errors.New("scale bar type not implemented")
	ErrZeroLength     = errors.New("scale bar length rounds to zero")
	ErrUnreachable    = errors.New("scale bar length cannot be matched on this projection")
)

// Options controls the placement and look of a scale bar
type Options struct {
	// X and Y place the start of the bar relative to the plot extents, in [0, 1]
	X, Y float64
	// Length is the preferred bar length as a fraction of the plot width
	Length float64
	// AbsLen is an explicit bar length in Unit; 0 picks a round length
	AbsLen float64
	Unit   string
	// Label replaces the unit symbol in the labels
	Label string
	Type  string
	// NDiv is the number of bar divisions; 0 picks one
	NDiv int

	// Colors alternate over the bar divisions
	Colors    []color.Color
	LineColor color.Color
	LineWidth float64
	Cap       plot.Cap
	TextColor color.Color
	TextScale float64
	// BarHeight is the bar thickness in text heights
	BarHeight float64
	// Background fills the box behind the bar; nil keeps it transparent
	Background color.Color
	// Mar is the background margin as bottom, left, top, right. Vertical
	// margins are in text heights, horizontal ones in character widths.
	Mar [4]float64

	Logger *zap.Logger
}

// DefaultOptions returns a bar in kilometers in the lower left corner
func DefaultOptions() Options {
	return Options{
		X:         0.05,
		Y:         0.05,
		Length:    0.3,
		Unit:      "km",
		Type:      TypeBar,
		Colors:    []color.Color{color.Black, color.White},
		LineColor: color.Black,
		LineWidth: 1,
		TextColor: color.Black,
		TextScale: 1,
		BarHeight: 0.5,
		Mar:       [4]float64{1, 1, 1, 1},
	}
}

// Result describes the scale bar that was drawn
type Result struct {
	// Start is the anchor of the bar in map units
	Start orb.Point
	// End is the x coordinate of the bar end
	End float64
	Y   float64
	// AbsLen is the real-world bar length in meters
	AbsLen float64
	// Length is the bar length in Unit
	Length float64
	Unit   Unit
	NDiv   int
	// LabelX holds the x positions of the length labels
	LabelX []float64
	// UnitX is the x position of the trailing unit label of a bar
	UnitX float64
}

// ScaleBar computes a scale bar for the map and draws it on dev.
func ScaleBar(m plot.Map, dev plot.Device, opts Options) (*Result, error) {
	opts = withDefaults(opts)
	log := opts.Logger

	if err := checkUnit("x", opts.X); err != nil {
		return nil, err
	}
	if err := checkUnit("y", opts.Y); err != nil {
		return nil, err
	}
	if opts.Type != TypeLine && opts.Type != TypeBar {
		return nil, errors.Wrapf(ErrNotImplemented, "type %q", opts.Type)
	}
	if !(opts.Length > 0) || math.IsInf(opts.Length, 0) {
		return nil, errors.Wrapf(ErrOutOfRange, "length %v must be positive", opts.Length)
	}
	if opts.AbsLen < 0 || math.IsNaN(opts.AbsLen) || math.IsInf(opts.AbsLen, 0) {
		return nil, errors.Wrapf(ErrOutOfRange, "abslen %v", opts.AbsLen)
	}
	if opts.NDiv < 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "ndiv %d", opts.NDiv)
	}

	unit, err := LookupUnit(opts.Unit)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	ext := m.Extent
	start := ext.At(opts.X, opts.Y)

	length := opts.AbsLen
	if length == 0 {
		width, err := groundWidth(m.Projection, ext, start[1])
		if err != nil {
			return nil, err
		}
		span := width
		if !m.Projection.LocallyEquidistant() {
			// no bar can be longer than the way to the antipodal meridian
			r, err := reach(m.Projection, start)
			if err != nil {
				return nil, err
			}
			span = math.Min(span, r)
		}
		target := opts.Length * width / unit.Meters
		length, err = NiceLength(target, span/unit.Meters)
		if err != nil {
			return nil, err
		}
		log.Debug("picked scale bar length",
			zap.Float64("target", target),
			zap.Float64("length", length),
			zap.String("unit", unit.Symbol))
	}

	meters := length * unit.Meters
	end, err := endX(m.Projection, ext, start, meters)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Start:  start,
		End:    end,
		Y:      start[1],
		AbsLen: meters,
		Length: length,
		Unit:   unit,
	}

	label := unit.Symbol
	if opts.Label != "" {
		label = opts.Label
	}

	switch opts.Type {
	case TypeLine:
		drawLine(dev, opts, res, label)
	case TypeBar:
		res.NDiv = opts.NDiv
		if res.NDiv == 0 {
			res.NDiv = ChooseNDiv(length)
		}
		drawBar(dev, opts, res, label)
	}

	log.Debug("drew scale bar",
		zap.String("type", opts.Type),
		zap.String("projection", m.Projection.Name()),
		zap.Float64("meters", meters),
		zap.Int("ndiv", res.NDiv))

	return res, nil
}

func drawLine(dev plot.Device, opts Options, res *Result, label string) {
	font := plot.Font{Color: opts.TextColor, Scale: opts.TextScale, Align: plot.AlignCenter}
	cw, th := dev.TextSize("0", font)
	text := formatLength(res.Length) + " " + label
	tw, _ := dev.TextSize(text, font)

	mid := (res.Start[0] + res.End) / 2
	labelY := res.Y + th

	if opts.Background != nil {
		left := math.Min(res.Start[0], mid-tw/2)
		right := math.Max(res.End, mid+tw/2)
		dev.Rect(orb.Bound{
			Min: orb.Point{left - opts.Mar[1]*cw, res.Y - opts.Mar[0]*th},
			Max: orb.Point{right + opts.Mar[3]*cw, labelY + th/2 + opts.Mar[2]*th},
		}, plot.Fill{Color: opts.Background})
	}

	dev.Line(res.Start, orb.Point{res.End, res.Y}, plot.Stroke{
		Color: opts.LineColor,
		Width: opts.LineWidth,
		Cap:   opts.Cap,
	})
	dev.Text(orb.Point{mid, labelY}, text, font)

	res.LabelX = []float64{mid}
}

func drawBar(dev plot.Device, opts Options, res *Result, label string) {
	font := plot.Font{Color: opts.TextColor, Scale: opts.TextScale, Align: plot.AlignCenter}
	cw, th := dev.TextSize("0", font)

	n := res.NDiv
	step := (res.End - res.Start[0]) / float64(n)
	barTop := res.Y + opts.BarHeight*th
	labelY := res.Y - th

	labels := make([]string, n+1)
	res.LabelX = make([]float64, n+1)
	for i := 0; i <= n; i++ {
		labels[i] = formatLength(float64(i) * res.Length / float64(n))
		res.LabelX[i] = res.Start[0] + float64(i)*step
	}

	firstW, _ := dev.TextSize(labels[0], font)
	lastW, _ := dev.TextSize(labels[n], font)
	unitFont := font
	unitFont.Align = plot.AlignLeft
	unitW, _ := dev.TextSize(label, unitFont)
	res.UnitX = res.End + lastW/2 + cw/2

	if opts.Background != nil {
		dev.Rect(orb.Bound{
			Min: orb.Point{res.Start[0] - firstW/2 - opts.Mar[1]*cw, labelY - th/2 - opts.Mar[0]*th},
			Max: orb.Point{res.UnitX + unitW + opts.Mar[3]*cw, barTop + opts.Mar[2]*th},
		}, plot.Fill{Color: opts.Background})
	}

	for i := 0; i < n; i++ {
		dev.Rect(orb.Bound{
			Min: orb.Point{res.LabelX[i], res.Y},
			Max: orb.Point{res.LabelX[i+1], barTop},
		}, plot.Fill{
			Color:       opts.Colors[i%len(opts.Colors)],
			Border:      opts.LineColor,
			BorderWidth: opts.LineWidth,
		})
	}

	for i, s := range labels {
		dev.Text(orb.Point{res.LabelX[i], labelY}, s, font)
	}
	dev.Text(orb.Point{res.UnitX, labelY}, label, unitFont)
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.Length == 0 {
		opts.Length = def.Length
	}
	if opts.Unit == "" {
		opts.Unit = def.Unit
	}
	if opts.Type == "" {
		opts.Type = def.Type
	}
	if len(opts.Colors) == 0 {
		opts.Colors = def.Colors
	}
	if opts.LineColor == nil {
		opts.LineColor = def.LineColor
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = def.LineWidth
	}
	if opts.TextColor == nil {
		opts.TextColor = def.TextColor
	}
	if opts.TextScale <= 0 {
		opts.TextScale = def.TextScale
	}
	if opts.BarHeight <= 0 {
		opts.BarHeight = def.BarHeight
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func checkUnit(name string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return errors.Wrapf(ErrOutOfRange, "%s = %v must be within [0, 1]", name, v)
	}
	return nil
}

func formatLength(v float64) string {
	return strconv.FormatFloat(geom.Round(v, labelDigits), 'f', -1, 64)
}
