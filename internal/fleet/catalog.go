// Package fleet holds the static aircraft catalog. The enumeration order of
// the catalog is significant: evaluation tables and selection lists preserve it.
package fleet

import (
	"fmt"
	"hash/fnv"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
)

// Catalog is an ordered, immutable set of aircraft specs.
type Catalog struct {
	specs []models.AircraftSpec
	index map[string]int
}

// New builds a catalog preserving the order of the provided specs.
func New(specs []models.AircraftSpec) *Catalog {
	c := &Catalog{
		specs: make([]models.AircraftSpec, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	copy(c.specs, specs)
	for i, s := range c.specs {
		c.index[s.Model] = i
	}
	return c
}

// Default returns the production fleet of seven types.
func Default() *Catalog {
	return New([]models.AircraftSpec{
		{Model: "A320neo", SeatsEco: 156, SeatsBC: 8, SeatsFirst: 0, HourlyCostUSD: 708, RangeKM: 6300},
		{Model: "A321neo", SeatsEco: 162, SeatsBC: 12, SeatsFirst: 0, HourlyCostUSD: 840, RangeKM: 7400},
		{Model: "A350-900", SeatsEco: 288, SeatsBC: 40, SeatsFirst: 0, HourlyCostUSD: 1950, RangeKM: 15000},
		{Model: "A350-900ULR", SeatsEco: 133, SeatsBC: 48, SeatsFirst: 8, HourlyCostUSD: 2095, RangeKM: 18000},
		{Model: "B787-8", SeatsEco: 261, SeatsBC: 30, SeatsFirst: 0, HourlyCostUSD: 1370, RangeKM: 13500},
		{Model: "B787-9", SeatsEco: 297, SeatsBC: 36, SeatsFirst: 0, HourlyCostUSD: 1650, RangeKM: 14000},
		{Model: "B777-300ER", SeatsEco: 315, SeatsBC: 40, SeatsFirst: 8, HourlyCostUSD: 2080, RangeKM: 13650},
	})
}

// Lookup returns the spec for the given model. A miss signals a caller bug:
// the set of valid identifiers is fixed and known.
func (c *Catalog) Lookup(model string) (models.AircraftSpec, bool) {
	i, ok := c.index[model]
	if !ok {
		return models.AircraftSpec{}, false
	}
	return c.specs[i], true
}

// Specs returns the catalog entries in catalog order.
func (c *Catalog) Specs() []models.AircraftSpec {
	out := make([]models.AircraftSpec, len(c.specs))
	copy(out, c.specs)
	return out
}

// Models returns the identifiers in catalog order.
func (c *Catalog) Models() []string {
	out := make([]string, len(c.specs))
	for i, s := range c.specs {
		out[i] = s.Model
	}
	return out
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.specs)
}

// Version is a stable fingerprint of the catalog contents, used as a cache
// key component so cached tables die with any fleet change.
func (c *Catalog) Version() string {
	h := fnv.New64a()
	for _, s := range c.specs {
		fmt.Fprintf(h, "%s|%d|%d|%d|%d|%d;", s.Model, s.SeatsEco, s.SeatsBC, s.SeatsFirst, s.HourlyCostUSD, s.RangeKM)
	}
	return fmt.Sprintf("%x", h.Sum64())
}
