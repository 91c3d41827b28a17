package proj

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		id     string
		linear bool
	}{
		{"merc", false},
		{"EPSG:3857", false},
		{"longlat", false},
		{"EPSG:4326", false},
		{"utm:33", true},
		{"utm:33n", true},
		{"utm:56s", true},
		{"+proj=utm +zone=10 +datum=WGS84 +units=m +no_defs", true},
		{"+proj=merc +datum=WGS84 +units=m +no_defs", false},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			p, err := Parse(tc.id)
			require.NoError(t, err)
			assert.Equal(t, tc.linear, p.LocallyEquidistant())
			assert.NotEmpty(t, p.Name())
		})
	}
}

func TestParseUnknown(t *testing.T) {
	for _, id := range []string{"", "robinson", "utm:0", "utm:61", "utm:x"} {
		_, err := Parse(id)
		assert.True(t, errors.Is(err, ErrUnknownProjection), "id %q", id)
	}
}

func TestWebMercatorRoundTrip(t *testing.T) {
	ll := orb.Point{2.3522, 48.8566}
	xy, err := WebMercator.FromLonLat(ll)
	require.NoError(t, err)
	assert.InDelta(t, 261845.7, xy[0], 1)

	back, err := WebMercator.ToLonLat(xy)
	require.NoError(t, err)
	assert.InDelta(t, ll[0], back[0], 1e-9)
	assert.InDelta(t, ll[1], back[1], 1e-9)

	_, err = WebMercator.FromLonLat(orb.Point{0, 90})
	assert.Error(t, err)
}

func TestLonLat(t *testing.T) {
	p, err := LonLat.ToLonLat(orb.Point{10, 20})
	require.NoError(t, err)
	assert.Equal(t, orb.Point{10, 20}, p)

	_, err = LonLat.ToLonLat(orb.Point{10, 95})
	assert.Error(t, err)
}

func TestUTMRoundTrip(t *testing.T) {
	p, err := UTM(33, false)
	require.NoError(t, err)

	// the false easting on the equator is the central meridian
	ll, err := p.ToLonLat(orb.Point{500000, 0})
	require.NoError(t, err)
	assert.InDelta(t, 15, ll[0], 1e-6)
	assert.InDelta(t, 0, ll[1], 1e-6)

	xy, err := p.FromLonLat(orb.Point{16, 48})
	require.NoError(t, err)
	back, err := p.ToLonLat(xy)
	require.NoError(t, err)
	assert.InDelta(t, 16, back[0], 1e-6)
	assert.InDelta(t, 48, back[1], 1e-6)
}
