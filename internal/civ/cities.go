package civ

import "fmt"

// CityCap returns the derived city capacity: max(0, base+bonus). A nomadic
// civilization with base 0 and no grants cannot found cities at all.
func (c *Civilization) CityCap() int {
	return max(0, c.def.BaseCityCap+c.cityCapBonus)
}

// PantheonCap returns the derived pantheon capacity.
func (c *Civilization) PantheonCap() int {
	return max(0, c.def.BasePantheonCap+c.pantheonCapBonus)
}

// GovernorSlots returns the derived governor slot count.
func (c *Civilization) GovernorSlots() int {
	return max(0, c.def.BaseGovernorSlots+c.governorSlotBonus)
}

// Cities returns the owned cities in founding order.
func (c *Civilization) Cities() []City {
	return append([]City(nil), c.cities...)
}

func (c *Civilization) ownsCity(city City) bool {
	for _, owned := range c.cities {
		if owned == city {
			return true
		}
	}
	return false
}

// FoundNewCity founds a city on a tile. Capacity is checked first; site
// validation and construction are delegated to the founder, whose rejection
// is passed through.
func (c *Civilization) FoundNewCity(tile int) (City, error) {
	if len(c.cities) >= c.CityCap() {
		return nil, fmt.Errorf("found city: %d of %d cities: %w", len(c.cities), c.CityCap(), ErrCapacityExceeded)
	}
	city, err := c.founder(c.id, tile)
	if err != nil {
		return nil, fmt.Errorf("found city: %w", err)
	}
	c.attachCity(city)
	c.emit(EventCityFounded, fmt.Sprintf("city founded: %s", city.Name()), map[string]any{
		"city": city.ID(),
		"tile": tile,
	})
	return city, nil
}

// AddCity registers an already-built city, bypassing the capacity gate.
// Game setup and snapshot restore use it; FoundNewCity is the gated path.
func (c *Civilization) AddCity(city City) {
	if city == nil || c.ownsCity(city) {
		return
	}
	c.attachCity(city)
}

// attachCity wires a city in. City count feeds requirement predicates, so
// the availability cache is invalidated.
func (c *Civilization) attachCity(city City) {
	c.cities = append(c.cities, city)
	c.bumpUnlockEpoch()
}

// AddCombatUnit registers an owned combat unit.
func (c *Civilization) AddCombatUnit(u Unit) {
	if u == nil {
		return
	}
	c.combatUnits = append(c.combatUnits, u)
}

// AddWorkerUnit registers an owned worker unit.
func (c *Civilization) AddWorkerUnit(u Unit) {
	if u == nil {
		return
	}
	c.workerUnits = append(c.workerUnits, u)
}

// RemoveUnit drops a destroyed unit from either registry. Its equipment is
// lost with it.
func (c *Civilization) RemoveUnit(u Unit) bool {
	for i, owned := range c.combatUnits {
		if owned == u {
			c.combatUnits = append(c.combatUnits[:i], c.combatUnits[i+1:]...)
			return true
		}
	}
	for i, owned := range c.workerUnits {
		if owned == u {
			c.workerUnits = append(c.workerUnits[:i], c.workerUnits[i+1:]...)
			return true
		}
	}
	return false
}

// CombatUnits returns the owned combat units.
func (c *Civilization) CombatUnits() []Unit {
	return append([]Unit(nil), c.combatUnits...)
}

// WorkerUnits returns the owned worker units.
func (c *Civilization) WorkerUnits() []Unit {
	return append([]Unit(nil), c.workerUnits...)
}
