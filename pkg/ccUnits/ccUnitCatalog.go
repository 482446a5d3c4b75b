package ccunits

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrUnitNotFound is returned for names that are not in the catalog
var ErrUnitNotFound = errors.New("unit not found")

// Region selects between the US and the UK definition of ambiguous unit names
type Region int32

const (
	RegionUK Region = iota
	RegionUS
)

func (r Region) String() string {
	switch r {
	case RegionUK:
		return "UK"
	case RegionUS:
		return "US"
	default:
		return "Unknown"
	}
}

func ParseRegion(region string) (Region, error) {
	switch strings.ToUpper(strings.TrimSpace(region)) {
	case "UK", "GB":
		return RegionUK, nil
	case "US", "USA":
		return RegionUS, nil
	default:
		return RegionUK, fmt.Errorf("unknown region '%s'", region)
	}
}

// CatalogObserver gets notified about lookups and region changes
type CatalogObserver interface {
	ObserveLookup(name string, found bool)
	ObserveRegion(region Region)
}

type regionalAlias struct {
	us string
	uk string
}

func (a regionalAlias) key(r Region) string {
	if r == RegionUS {
		return a.us
	}
	return a.uk
}

// Catalog maps stable names to units. The table itself never changes after
// NewCatalog; only the region selector deciding where the aliases point to
// can be switched.
type Catalog struct {
	units    map[string]*Unit
	aliases  map[string]regionalAlias
	force    [numForceUnits]*Unit
	region   *atomic.Int32
	observer CatalogObserver
}

// NewCatalog builds a catalog with aliases bound to region
func NewCatalog(region Region) *Catalog {
	c := &Catalog{
		units:   make(map[string]*Unit),
		aliases: make(map[string]regionalAlias),
		region:  atomic.NewInt32(int32(region)),
	}
	c.build()
	return c
}

func (c *Catalog) add(name string, u *Unit) {
	if _, ok := c.units[name]; ok {
		panic(fmt.Sprintf("duplicate unit '%s' in catalog", name))
	}
	c.units[name] = u
}

// addRegional registers name_US and name_UK and the alias name
func (c *Catalog) addRegional(name string, us, uk *Unit) {
	a := regionalAlias{us: name + "_US", uk: name + "_UK"}
	c.add(a.us, us)
	c.add(a.uk, uk)
	c.aliases[name] = a
}

// SetObserver installs o. It is not synchronized with lookups and should be
// called before the catalog is used.
func (c *Catalog) SetObserver(o CatalogObserver) {
	c.observer = o
}

// Region returns the region the aliases currently resolve to
func (c *Catalog) Region() Region {
	return Region(c.region.Load())
}

// SetRegion rebinds all aliases at once. Units obtained earlier keep their
// definition.
func (c *Catalog) SetRegion(r Region) {
	c.region.Store(int32(r))
	if c.observer != nil {
		c.observer.ObserveRegion(r)
	}
}

func (c *Catalog) resolve(name string) string {
	if a, ok := c.aliases[name]; ok {
		return a.key(c.Region())
	}
	return name
}

// Get returns the unit registered as name. The empty name is the unitless
// value (nil).
func (c *Catalog) Get(name string) (*Unit, error) {
	if name == "" {
		return nil, nil
	}
	u, ok := c.units[c.resolve(name)]
	if c.observer != nil {
		c.observer.ObserveLookup(name, ok)
	}
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnitNotFound, name)
	}
	return u, nil
}

// MustGet is Get but panics for unknown names
func (c *Catalog) MustGet(name string) *Unit {
	u, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return u
}

// Exists reports whether name can be looked up
func (c *Catalog) Exists(name string) bool {
	if name == "" {
		return true
	}
	_, ok := c.units[c.resolve(name)]
	return ok
}

// Keys returns all names including the aliases, sorted
func (c *Catalog) Keys() []string {
	keys := maps.Keys(c.units)
	keys = append(keys, maps.Keys(c.aliases)...)
	slices.Sort(keys)
	return keys
}

// Aliases returns the regional alias names, sorted
func (c *Catalog) Aliases() []string {
	keys := maps.Keys(c.aliases)
	slices.Sort(keys)
	return keys
}

// ForceUnit returns the force family unit with the same length exponent as
// u, nil if there is none
func (c *Catalog) ForceUnit(u *Unit) *Unit {
	i, ok := forceIndex(u)
	if !ok {
		return nil
	}
	return c.force[i]
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the process wide catalog, built on first use with the
// aliases bound to the UK definitions
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog = NewCatalog(RegionUK)
	})
	return defaultCatalog
}

// Get looks up name in the default catalog
func Get(name string) (*Unit, error) {
	return Default().Get(name)
}

// MustGet looks up name in the default catalog and panics if it is unknown
func MustGet(name string) *Unit {
	return Default().MustGet(name)
}

// SetRegion switches the aliases of the default catalog
func SetRegion(r Region) {
	Default().SetRegion(r)
}

// CurrentRegion returns the region of the default catalog
func CurrentRegion() Region {
	return Default().Region()
}

// GetForceUnit returns the force family unit of the default catalog for u
func GetForceUnit(u *Unit) *Unit {
	return Default().ForceUnit(u)
}
