package scalebar

import (
	"strings"

	"github.com/pkg/errors"
)

// Unit is a distance unit for scale bar lengths
type Unit struct {
	Name   string
	Symbol string
	Meters float64
}

var (
	Meter     = Unit{Name: "meter", Symbol: "m", Meters: 1}
	Kilometer = Unit{Name: "kilometer", Symbol: "km", Meters: 1000}
	Mile      = Unit{Name: "mile", Symbol: "mi", Meters: 1609.344}
	Foot      = Unit{Name: "foot", Symbol: "ft", Meters: 0.3048}
	Yard      = Unit{Name: "yard", Symbol: "yd", Meters: 0.9144}
)

var units = map[string]Unit{
	"m":          Meter,
	"meter":      Meter,
	"meters":     Meter,
	"metre":      Meter,
	"metres":     Meter,
	"km":         Kilometer,
	"kilometer":  Kilometer,
	"kilometers": Kilometer,
	"kilometre":  Kilometer,
	"kilometres": Kilometer,
	"mi":         Mile,
	"mile":       Mile,
	"miles":      Mile,
	"ft":         Foot,
	"foot":       Foot,
	"feet":       Foot,
	"yd":         Yard,
	"yard":       Yard,
	"yards":      Yard,
}

// LookupUnit returns the unit for a name or symbol, case insensitive
func LookupUnit(name string) (Unit, error) {
	u, ok := units[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Unit{}, errors.Wrapf(ErrUnknownUnit, "%q", name)
	}
	return u, nil
}
