package civ

import "github.com/corvidae/stellar-age/internal/rules"

// The availability cache memoizes requirement evaluations for producible
// definitions. Instead of clearing the cache when unlock state changes, the
// civilization bumps an epoch counter; entries from older epochs are
// recomputed lazily on next read and overwritten in place.

type availKind uint8

const (
	availCombatUnit availKind = iota
	availWorkerUnit
	availBuilding
	availEquipment
	availProjectile
)

type availKey struct {
	kind availKind
	id   string
}

type availEntry struct {
	epoch uint64
	ok    bool
}

func (c *Civilization) available(kind availKind, id string, req rules.Requirements) bool {
	key := availKey{kind: kind, id: id}
	if e, found := c.avail[key]; found && e.epoch == c.unlockEpoch {
		return e.ok
	}
	ok := req.Met(c)
	c.avail[key] = availEntry{epoch: c.unlockEpoch, ok: ok}
	return ok
}

// bumpUnlockEpoch invalidates the availability cache and tells every owned
// city to recompute its buildable list. Called whenever unlock predicates
// can change: completions, adoptions, government swaps, and city founding.
func (c *Civilization) bumpUnlockEpoch() {
	c.unlockEpoch++
	for _, city := range c.cities {
		city.RefreshBuildings()
	}
	c.emit(EventUnlocksChanged, "available units and buildings changed", nil)
}

// UnlockEpoch returns the current cache epoch. It moves only forward.
func (c *Civilization) UnlockEpoch() uint64 { return c.unlockEpoch }

// IsCombatUnitAvailable reports whether a combat unit type can currently be
// produced. Unknown IDs are unavailable.
func (c *Civilization) IsCombatUnitAvailable(id string) bool {
	def := c.cat.CombatUnit(id)
	if def == nil {
		return false
	}
	return c.available(availCombatUnit, id, def.Requires)
}

// IsWorkerUnitAvailable reports whether a worker unit type can currently be
// produced.
func (c *Civilization) IsWorkerUnitAvailable(id string) bool {
	def := c.cat.WorkerUnit(id)
	if def == nil {
		return false
	}
	return c.available(availWorkerUnit, id, def.Requires)
}

// IsBuildingAvailable reports whether a building can currently be built.
func (c *Civilization) IsBuildingAvailable(id string) bool {
	def := c.cat.Building(id)
	if def == nil {
		return false
	}
	return c.available(availBuilding, id, def.Requires)
}

// IsEquipmentAvailable reports whether an equipment item can currently be
// produced.
func (c *Civilization) IsEquipmentAvailable(id string) bool {
	def := c.cat.EquipmentDef(id)
	if def == nil {
		return false
	}
	return c.available(availEquipment, id, def.Requires)
}

// IsProjectileAvailable reports whether a projectile type can currently be
// produced.
func (c *Civilization) IsProjectileAvailable(id string) bool {
	def := c.cat.Projectile(id)
	if def == nil {
		return false
	}
	return c.available(availProjectile, id, def.Requires)
}

// AvailableBuildings returns the IDs of every currently buildable building,
// sorted. Cities use it to refresh their buildable lists.
func (c *Civilization) AvailableBuildings() []string {
	var out []string
	for _, id := range c.cat.BuildingIDs() {
		if c.IsBuildingAvailable(id) {
			out = append(out, id)
		}
	}
	return out
}
