package proj

import (
	"fmt"
	"strings"

	ctproj "github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const wgs84Def = "+proj=longlat +datum=WGS84 +no_defs"

// equidistant lists proj4 projection names whose axes are linear meters
// over the extent of a typical map plot.
var equidistant = map[string]bool{
	"utm":    true,
	"tmerc":  true,
	"etmerc": true,
}

// Proj4 is a projection defined by a proj4 string.
type Proj4 struct {
	def     string
	linear  bool
	inverse ctproj.Transformer
	forward ctproj.Transformer
}

// NewProj4 parses a proj4 definition and prepares transforms to and from WGS84.
func NewProj4(def string) (*Proj4, error) {
	src, err := ctproj.Parse(def)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownProjection, "parse %q: %v", def, err)
	}
	dst, err := ctproj.Parse(wgs84Def)
	if err != nil {
		return nil, errors.Wrap(err, "parse wgs84")
	}

	inverse, err := src.NewTransform(dst)
	if err != nil {
		return nil, errors.Wrapf(err, "transform %q to wgs84", def)
	}
	forward, err := dst.NewTransform(src)
	if err != nil {
		return nil, errors.Wrapf(err, "transform wgs84 to %q", def)
	}

	params := proj4Params(def)
	units := params["units"]
	return &Proj4{
		def:     def,
		linear:  equidistant[params["proj"]] && (units == "" || units == "m"),
		inverse: inverse,
		forward: forward,
	}, nil
}

// UTM returns the Universal Transverse Mercator projection for a zone on the WGS84 datum.
func UTM(zone int, south bool) (*Proj4, error) {
	def := fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", zone)
	if south {
		def = fmt.Sprintf("+proj=utm +zone=%d +south +datum=WGS84 +units=m +no_defs", zone)
	}
	return NewProj4(def)
}

func (p *Proj4) Name() string             { return p.def }
func (p *Proj4) LocallyEquidistant() bool { return p.linear }

func (p *Proj4) ToLonLat(pt orb.Point) (orb.Point, error) {
	if !finite(pt) {
		return orb.Point{}, fmt.Errorf("proj4: point %v is not finite", pt)
	}
	x, y, err := p.inverse(pt[0], pt[1])
	if err != nil {
		return orb.Point{}, errors.Wrapf(err, "proj4: inverse %v", pt)
	}
	return orb.Point{x, y}, nil
}

func (p *Proj4) FromLonLat(pt orb.Point) (orb.Point, error) {
	if !finite(pt) {
		return orb.Point{}, fmt.Errorf("proj4: point %v is not finite", pt)
	}
	x, y, err := p.forward(pt[0], pt[1])
	if err != nil {
		return orb.Point{}, errors.Wrapf(err, "proj4: forward %v", pt)
	}
	return orb.Point{x, y}, nil
}

// proj4Params splits "+key=value +flag" tokens into a map.
func proj4Params(def string) map[string]string {
	params := make(map[string]string)
	for _, tok := range strings.Fields(def) {
		tok = strings.TrimPrefix(tok, "+")
		k, v, _ := strings.Cut(tok, "=")
		params[strings.ToLower(k)] = v
	}
	return params
}
