// Package metricunits maps the unit strings used for monitoring metrics
// ("MHz", "kJ", "degC", "W/s") onto catalog units, so metric values can be
// converted with the unit engine.
package metricunits

import (
	"fmt"
	"strings"

	units "github.com/ClusterCockpit/cc-units"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	ccunits "github.com/ClusterCockpit/cc-unit-engine/pkg/ccUnits"
)

// Physical measures known to cc-units and their catalog symbol. Bytes,
// flops, cycles, packets and friends are counts and have no physical unit.
var measureSymbols = map[string]string{
	"degC": "°C",
	"degF": "°F",
	"RPM":  "rpm",
	"Hz":   "Hz",
	"s":    "s",
	"W":    "W",
	"J":    "J",
	"V":    "V",
	"A":    "A",
}

// Decimal prefixes as cc-units prints them
var prefixSymbols = map[string]string{
	"":  "",
	"K": "k",
	"k": "k",
	"M": "M",
	"G": "G",
	"T": "T",
	"P": "P",
	"E": "E",
	"m": "m",
	"u": "μ",
	"n": "n",
}

// measures sorted by decreasing length, so "degC" is tried before "s"
var measures = func() []string {
	keys := maps.Keys(measureSymbols)
	slices.SortFunc(keys, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return keys
}()

// Normalize returns the cc-units short form of unit
func Normalize(unit string) (string, bool) {
	u := units.NewUnit(unit)
	if !u.Valid() {
		return "", false
	}
	return u.Short(), true
}

// Lookup resolves a metric unit string in c. Strings cc-units does not
// know are looked up in the catalog as they are.
func Lookup(c *ccunits.Catalog, unit string) (*ccunits.Unit, error) {
	short, ok := Normalize(unit)
	if !ok {
		return c.Get(strings.TrimSpace(unit))
	}
	parts := strings.Split(short, "/")
	u, err := lookupPart(c, parts[0])
	if err != nil {
		return nil, fmt.Errorf("metric unit '%s': %w", unit, err)
	}
	for _, p := range parts[1:] {
		d, err := lookupPart(c, p)
		if err != nil {
			return nil, fmt.Errorf("metric unit '%s': %w", unit, err)
		}
		u = u.Div(d)
	}
	return u, nil
}

// lookupPart resolves a single prefixed measure like "MHz" or "udegC"
func lookupPart(c *ccunits.Catalog, part string) (*ccunits.Unit, error) {
	for _, m := range measures {
		if !strings.HasSuffix(part, m) {
			continue
		}
		prefix, ok := prefixSymbols[strings.TrimSuffix(part, m)]
		if !ok {
			continue
		}
		symbol := measureSymbols[m]
		if u, err := c.Get(prefix + symbol); err == nil {
			return u, nil
		}
		base, err := c.Get(symbol)
		if err != nil {
			return nil, err
		}
		n, ok := ccunits.NewPrefix(prefix)
		if !ok {
			return nil, fmt.Errorf("%w: '%s'", ccunits.ErrUnitNotFound, part)
		}
		return base.Shift(n), nil
	}
	return nil, fmt.Errorf("%w: '%s' is not a physical measure", ccunits.ErrUnitNotFound, part)
}
