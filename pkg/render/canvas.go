// Package render rasterizes plot primitives onto an image and encodes it as PNG.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/kass/go-geo-plot/pkg/models"
	"github.com/kass/go-geo-plot/pkg/plot"
	"github.com/mi-v/img1b"
	png1b "github.com/mi-v/img1b/png"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const maxSide = 1 << 14

// Canvas is a raster plot.Device. Map coordinates of the extent are mapped
// onto the full image with y growing upwards.
type Canvas struct {
	img  *image.RGBA
	ext  models.Extent
	face font.Face
}

// NewCanvas creates a width x height canvas showing ext, filled with bg.
func NewCanvas(width, height int, ext models.Extent, bg color.Color) (*Canvas, error) {
	if width <= 0 || height <= 0 || width > maxSide || height > maxSide {
		return nil, errors.Errorf("canvas size %dx%d out of range", width, height)
	}
	if err := ext.Validate(); err != nil {
		return nil, errors.Wrap(err, "canvas extent")
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	return &Canvas{img: img, ext: ext, face: basicfont.Face7x13}, nil
}

// Image returns the canvas image
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Extent returns the map extent shown on the canvas
func (c *Canvas) Extent() models.Extent {
	return c.ext
}

// ToPixel converts a map coordinate into fractional pixel coordinates
func (c *Canvas) ToPixel(p orb.Point) (float64, float64) {
	b := c.img.Bounds()
	x := (p[0] - c.ext.XMin) / c.ext.Width() * float64(b.Dx())
	y := (c.ext.YMax - p[1]) / c.ext.Height() * float64(b.Dy())
	return x, y
}

func (c *Canvas) unitsPerPixel() (float64, float64) {
	b := c.img.Bounds()
	return c.ext.Width() / float64(b.Dx()), c.ext.Height() / float64(b.Dy())
}

func (c *Canvas) Rect(b orb.Bound, f plot.Fill) {
	x0, y1 := c.ToPixel(b.Min)
	x1, y0 := c.ToPixel(b.Max)
	r := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))

	if f.Color != nil {
		draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(f.Color), image.Point{}, draw.Over)
	}
	if f.Border != nil {
		s := plot.Stroke{Color: f.Border, Width: f.BorderWidth, Cap: plot.CapSquare}
		corners := []orb.Point{
			b.Min,
			{b.Max[0], b.Min[1]},
			b.Max,
			{b.Min[0], b.Max[1]},
		}
		for i := range corners {
			c.Line(corners[i], corners[(i+1)%len(corners)], s)
		}
	}
}

func (c *Canvas) Line(a, b orb.Point, s plot.Stroke) {
	if s.Color == nil {
		return
	}
	ax, ay := c.ToPixel(a)
	bx, by := c.ToPixel(b)
	hw := math.Max(s.Width, 1) / 2

	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	ext := 0.0
	if s.Cap != plot.CapButt {
		ext = hw
	}

	minX := int(math.Floor(math.Min(ax, bx) - hw - ext))
	maxX := int(math.Ceil(math.Max(ax, bx) + hw + ext))
	minY := int(math.Floor(math.Min(ay, by) - hw - ext))
	maxY := int(math.Ceil(math.Max(ay, by) + hw + ext))
	area := image.Rect(minX, minY, maxX+1, maxY+1).Intersect(c.img.Bounds())

	src := image.NewUniform(s.Color)
	for py := area.Min.Y; py < area.Max.Y; py++ {
		for px := area.Min.X; px < area.Max.X; px++ {
			// pixel center
			cx, cy := float64(px)+0.5, float64(py)+0.5
			if onStroke(cx-ax, cy-ay, dx, dy, length, hw, s.Cap) {
				draw.Draw(c.img, image.Rect(px, py, px+1, py+1), src, image.Point{}, draw.Over)
			}
		}
	}
}

// onStroke reports whether offset (x, y) from the segment start lies within
// half width hw of the segment (dx, dy).
func onStroke(x, y, dx, dy, length, hw float64, cp plot.Cap) bool {
	if length == 0 {
		switch cp {
		case plot.CapRound:
			return math.Hypot(x, y) <= hw
		case plot.CapSquare:
			return math.Abs(x) <= hw && math.Abs(y) <= hw
		}
		return false
	}

	// along and across the segment
	t := (x*dx + y*dy) / length
	d := math.Abs(x*dy-y*dx) / length

	switch cp {
	case plot.CapRound:
		if t < 0 {
			return math.Hypot(x, y) <= hw
		}
		if t > length {
			return math.Hypot(x-dx, y-dy) <= hw
		}
		return d <= hw
	case plot.CapSquare:
		return t >= -hw && t <= length+hw && d <= hw
	}
	return t >= 0 && t <= length && d <= hw
}

func (c *Canvas) Text(p orb.Point, s string, f plot.Font) {
	if s == "" {
		return
	}
	col := f.Color
	if col == nil {
		col = color.Black
	}
	scale := pixelScale(f.Scale)

	// draw at native size, then blow up each pixel
	adv := font.MeasureString(c.face, s).Ceil()
	m := c.face.Metrics()
	h := m.Height.Ceil()
	mask := image.NewAlpha(image.Rect(0, 0, adv, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: c.face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(s)

	w, hh := float64(adv*scale), float64(h*scale)
	px, py := c.ToPixel(p)
	x0 := px - w/2
	switch f.Align {
	case plot.AlignLeft:
		x0 = px
	case plot.AlignRight:
		x0 = px - w
	}
	ox, oy := int(math.Round(x0)), int(math.Round(py-hh/2))

	src := image.NewUniform(col)
	for y := 0; y < h; y++ {
		for x := 0; x < adv; x++ {
			a := mask.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			r := image.Rect(ox+x*scale, oy+y*scale, ox+(x+1)*scale, oy+(y+1)*scale)
			draw.DrawMask(c.img, r, src, image.Point{}, image.NewUniform(color.Alpha{A: a}), image.Point{}, draw.Over)
		}
	}
}

func (c *Canvas) TextSize(s string, f plot.Font) (float64, float64) {
	scale := float64(pixelScale(f.Scale))
	ux, uy := c.unitsPerPixel()
	w := float64(font.MeasureString(c.face, s).Ceil()) * scale
	h := float64(c.face.Metrics().Height.Ceil()) * scale
	return w * ux, h * uy
}

// EncodePNG writes the canvas as an RGBA PNG
func (c *Canvas) EncodePNG(w io.Writer) error {
	return errors.Wrap(png.Encode(w, c.img), "encode png")
}

// EncodeMono writes the canvas as a 1-bit PNG. Pixels at least half bright
// become white, the rest black.
func (c *Canvas) EncodeMono(w io.Writer) error {
	b := c.img.Bounds()
	stride := (b.Dx() + 7) / 8
	pix := make([]byte, stride*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(c.img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			if g.Y >= 128 {
				pix[y*stride+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}

	err := png1b.Encode(w, &img1b.Image{
		Pix:    pix,
		Stride: stride,
		Rect:   image.Rect(0, 0, b.Dx(), b.Dy()),
		Palette: color.Palette{
			color.Black,
			color.White,
		},
	})
	return errors.Wrap(err, "encode 1-bit png")
}

func pixelScale(s float64) int {
	if s <= 1 {
		return 1
	}
	return int(math.Round(s))
}
