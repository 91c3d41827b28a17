package config

import (
	"image/color"
	"testing"

	"github.com/kass/go-geo-plot/pkg/plot"
	"github.com/kass/go-geo-plot/pkg/scalebar"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleBarFlags(t *testing.T) {
	c := DefaultScaleBar()
	fs := pflag.NewFlagSet("scalebar", pflag.ContinueOnError)
	c.Bind(fs)

	err := fs.Parse([]string{
		"--proj", "utm:33",
		"--extent", "400000,600000,5000000,5200000",
		"--size", "400x300",
		"--abslen", "20",
		"--unit", "mi",
		"--type", "line",
		"--cap", "round",
		"--bg", "#fff",
		"--mar", "2,2,1,1",
	})
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	w, h, err := c.ImageSize()
	require.NoError(t, err)
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)
	assert.Equal(t, 200000.0, c.MapExtent().Width())

	opts, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, 20.0, opts.AbsLen)
	assert.Equal(t, "mi", opts.Unit)
	assert.Equal(t, scalebar.TypeLine, opts.Type)
	assert.Equal(t, plot.CapRound, opts.Cap)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, opts.Background)
	assert.Equal(t, [4]float64{2, 2, 1, 1}, opts.Mar)
}

func TestScaleBarDefaultsValidate(t *testing.T) {
	c := DefaultScaleBar()
	require.NoError(t, c.Validate())

	opts, err := c.Options()
	require.NoError(t, err)
	assert.Nil(t, opts.Background)
	assert.Equal(t, scalebar.DefaultOptions().Mar, opts.Mar)
}

func TestScaleBarValidateErrors(t *testing.T) {
	testCases := map[string]func(*ScaleBar){
		"extent length": func(c *ScaleBar) { c.Extent = []float64{0, 1, 2} },
		"empty extent":  func(c *ScaleBar) { c.Extent = []float64{0, 0, 0, 1} },
		"mar length":    func(c *ScaleBar) { c.Mar = []float64{1} },
		"size":          func(c *ScaleBar) { c.Size = "big" },
		"zero size":     func(c *ScaleBar) { c.Size = "0x10" },
		"cap":           func(c *ScaleBar) { c.Cap = "arrow" },
		"color":         func(c *ScaleBar) { c.Background = "#12" },
		"no output":     func(c *ScaleBar) { c.Out = "" },
	}
	for name, mutate := range testCases {
		t.Run(name, func(t *testing.T) {
			c := DefaultScaleBar()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestTriangleAndMaxDistFlags(t *testing.T) {
	tri := Triangle{Digits: 3}
	fs := pflag.NewFlagSet("triangle", pflag.ContinueOnError)
	tri.Bind(fs)
	require.NoError(t, fs.Parse([]string{"--x", "0,1,0", "--y", "0,0,1", "-d", "2"}))
	assert.Equal(t, []float64{0, 1, 0}, tri.X)
	assert.Equal(t, []float64{0, 0, 1}, tri.Y)
	assert.Equal(t, 2, tri.Digits)

	md := DefaultMaxDist()
	assert.Error(t, md.Validate())
	fs = pflag.NewFlagSet("maxdist", pflag.ContinueOnError)
	md.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-f", "points.csv", "-r", "3958.8"}))
	assert.NoError(t, md.Validate())
	assert.Equal(t, 3958.8, md.Radius)
}

func TestParseColor(t *testing.T) {
	testCases := map[string]color.Color{
		"":        nil,
		"none":    nil,
		"white":   color.White,
		"#000000": color.RGBA{0, 0, 0, 255},
		"#f80":    color.RGBA{255, 136, 0, 255},
		"336699":  color.RGBA{0x33, 0x66, 0x99, 255},
	}
	for in, want := range testCases {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"#12", "#gggggg", "rgb(1,2,3)"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
