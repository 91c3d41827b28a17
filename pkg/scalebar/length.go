package scalebar

import (
	"math"

	"github.com/kass/go-geo-plot/pkg/geo"
	"github.com/kass/go-geo-plot/pkg/models"
	"github.com/kass/go-geo-plot/pkg/proj"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	// widthSegments is the number of pieces the plot width is split into when
	// measuring it on the ground
	widthSegments = 100

	// searchStart divides the plot width into the first offset tried by endX
	searchStart = 1000

	maxExpand   = 60
	maxBisect   = 200
	bisectTol   = 1e-12
	matchRelTol = 1e-6
)

var niceMantissas = []float64{1, 2, 5}

// NiceLength returns the number of the 1, 2, 5 x 10^n sequence closest to
// target, not exceeding span when such a candidate exists. Equal distances
// resolve to the smaller candidate.
func NiceLength(target, span float64) (float64, error) {
	if !(target > 0) || math.IsInf(target, 0) {
		return 0, errors.Wrapf(ErrZeroLength, "target length %v", target)
	}

	e := math.Floor(math.Log10(target))
	var candidates []float64
	for k := e - 1; k <= e+1; k++ {
		for _, m := range niceMantissas {
			candidates = append(candidates, m*math.Pow(10, k))
		}
	}

	best, bestDiff := 0.0, math.Inf(1)
	for _, c := range candidates {
		if c > span*(1+1e-9) {
			continue
		}
		if d := math.Abs(c - target); d < bestDiff {
			best, bestDiff = c, d
		}
	}
	if best == 0 {
		// the span is narrower than every candidate
		for _, c := range candidates {
			if d := math.Abs(c - target); d < bestDiff {
				best, bestDiff = c, d
			}
		}
	}
	return best, nil
}

// groundWidth returns the width of the plot in meters measured along y.
func groundWidth(p proj.Projection, e models.Extent, y float64) (float64, error) {
	if p.LocallyEquidistant() {
		return e.Width(), nil
	}

	step := e.Width() / widthSegments
	prev, err := lonLat(p, orb.Point{e.XMin, y})
	if err != nil {
		return 0, err
	}
	total := 0.0
	for i := 1; i <= widthSegments; i++ {
		cur, err := lonLat(p, orb.Point{e.XMin + float64(i)*step, y})
		if err != nil {
			return 0, err
		}
		total += geo.Distance(prev, cur, geo.EarthRadiusM)
		prev = cur
	}
	return total, nil
}

// reach returns the largest great-circle distance in meters from start to a
// point east of it on the same row, the one on the antipodal meridian.
func reach(p proj.Projection, start orb.Point) (float64, error) {
	origin, err := lonLat(p, start)
	if err != nil {
		return 0, err
	}
	far := models.Location{Lat: origin.Lat, Lon: origin.Lon + 180}
	return geo.Distance(origin, far, geo.EarthRadiusM), nil
}

// eastOffset returns how far east of origin ll lies, in degrees within [0, 360).
func eastOffset(origin, ll models.Location) float64 {
	d := math.Mod(ll.Lon-origin.Lon, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// endX returns the x coordinate at which the bar starting at start is meters
// long on the ground. The search stays east of start and short of the
// antipodal meridian, where the distance grows with x.
func endX(p proj.Projection, e models.Extent, start orb.Point, meters float64) (float64, error) {
	if p.LocallyEquidistant() {
		return start[0] + meters, nil
	}

	origin, err := lonLat(p, start)
	if err != nil {
		return 0, err
	}
	// probe returns the distance at offset dx and whether dx is past the
	// antipodal meridian
	probe := func(dx float64) (float64, bool, error) {
		ll, err := lonLat(p, orb.Point{start[0] + dx, start[1]})
		if err != nil {
			return 0, false, err
		}
		return geo.Distance(origin, ll, geo.EarthRadiusM), eastOffset(origin, ll) >= 180, nil
	}

	// bracket the length
	lo, hi := 0.0, e.Width()/searchStart
	for i := 0; ; i++ {
		d, past, err := probe(hi)
		if err != nil {
			return 0, err
		}
		if past {
			if hi, err = antipodeX(probe, lo, hi); err != nil {
				return 0, err
			}
			if d, _, err = probe(hi); err != nil {
				return 0, err
			}
			if d < meters*(1-matchRelTol) {
				return 0, errors.Wrapf(ErrUnreachable, "%v m exceeds the largest distance %v m along the row", meters, d)
			}
			break
		}
		if d >= meters {
			break
		}
		if i == maxExpand {
			return 0, errors.Wrapf(ErrUnreachable, "%v m", meters)
		}
		lo, hi = hi, 2*hi
	}

	for i := 0; i < maxBisect && hi-lo > bisectTol*hi; i++ {
		mid := (lo + hi) / 2
		d, _, err := probe(mid)
		if err != nil {
			return 0, err
		}
		if d < meters {
			lo = mid
		} else {
			hi = mid
		}
	}

	x := (lo + hi) / 2
	d, _, err := probe(x)
	if err != nil {
		return 0, err
	}
	if math.Abs(d-meters) > matchRelTol*meters {
		return 0, errors.Wrapf(ErrUnreachable, "best match %v m for %v m", d, meters)
	}
	return start[0] + x, nil
}

// antipodeX narrows [lo, hi] onto the antipodal meridian and returns the last
// offset before it. lo must be short of it and hi past it.
func antipodeX(probe func(float64) (float64, bool, error), lo, hi float64) (float64, error) {
	for i := 0; i < maxBisect && hi-lo > bisectTol*hi; i++ {
		mid := (lo + hi) / 2
		_, past, err := probe(mid)
		if err != nil {
			return 0, err
		}
		if past {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo, nil
}

func lonLat(p proj.Projection, pt orb.Point) (models.Location, error) {
	ll, err := p.ToLonLat(pt)
	if err != nil {
		return models.Location{}, errors.Wrapf(err, "reproject %v from %s", pt, p.Name())
	}
	return models.LocationFromPoint(ll), nil
}
