package era

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an era or region does not exist in a catalog.
var ErrNotFound = errors.New("not found")

// Catalog indexes expanded worlds for lookup by era and region.
// A Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	worlds []World
	byID   map[string]int
}

// NewCatalog expands every era with the given describer. A nil describer
// uses DefaultDescriber. Later eras with a duplicate ID are ignored.
func NewCatalog(eras []Era, d Describer) *Catalog {
	c := &Catalog{
		worlds: make([]World, 0, len(eras)),
		byID:   make(map[string]int, len(eras)),
	}
	for _, e := range eras {
		if _, dup := c.byID[e.ID]; dup {
			continue
		}
		c.byID[e.ID] = len(c.worlds)
		c.worlds = append(c.worlds, Expand(e, d))
	}
	return c
}

// Worlds returns every world in dataset order.
func (c *Catalog) Worlds() []World {
	return c.worlds
}

// World returns the world for an era ID.
func (c *Catalog) World(eraID string) (World, error) {
	i, ok := c.byID[eraID]
	if !ok {
		return World{}, fmt.Errorf("era %q: %w", eraID, ErrNotFound)
	}
	return c.worlds[i], nil
}

// Regions returns every region of every world, flattened in order.
func (c *Catalog) Regions() []Region {
	var out []Region
	for _, w := range c.worlds {
		out = append(out, w.Regions...)
	}
	return out
}

// RegionsByEra returns the regions of one era, or nil for an unknown era.
func (c *Catalog) RegionsByEra(eraID string) []Region {
	w, err := c.World(eraID)
	if err != nil {
		return nil
	}
	return w.Regions
}

// Region looks up a region within an era. Region IDs are only unique per era.
func (c *Catalog) Region(eraID, regionID string) (Region, error) {
	w, err := c.World(eraID)
	if err != nil {
		return Region{}, err
	}
	for _, r := range w.Regions {
		if r.ID == regionID {
			return r, nil
		}
	}
	return Region{}, fmt.Errorf("region %q in era %q: %w", regionID, eraID, ErrNotFound)
}

// Siblings returns the names of the other regions in the same era, in
// dataset order. The region's own name is never included.
func (c *Catalog) Siblings(eraID, regionID string) ([]string, error) {
	r, err := c.Region(eraID, regionID)
	if err != nil {
		return nil, err
	}
	w, _ := c.World(eraID)

	names := make([]string, 0, len(w.Regions))
	for _, other := range w.Regions {
		if other.Name == r.Name {
			continue
		}
		names = append(names, other.Name)
	}
	return names, nil
}
