package rules

import (
	"fmt"
	"sort"
)

// Catalog holds every definition table the engine plays from. Lookups return
// nil for unknown IDs; callers treat nil as "not available".
type Catalog struct {
	Technologies  map[string]*TechnologyDef
	Cultures      map[string]*CultureDef
	Policies      map[string]*PolicyDef
	Governments   map[string]*GovernmentDef
	CombatUnits   map[string]*CombatUnitDef
	WorkerUnits   map[string]*WorkerUnitDef
	Buildings     map[string]*BuildingDef
	Equipment     map[string]*EquipmentDef
	Projectiles   map[string]*ProjectileDef
	Resources     map[string]*ResourceDef
	Beliefs       map[string]*BeliefDef
	Pantheons     map[string]*PantheonDef
	Religions     map[string]*ReligionDef
	Civilizations map[string]*CivilizationDef
}

// NewCatalog returns an empty catalog with all tables allocated.
func NewCatalog() *Catalog {
	return &Catalog{
		Technologies:  make(map[string]*TechnologyDef),
		Cultures:      make(map[string]*CultureDef),
		Policies:      make(map[string]*PolicyDef),
		Governments:   make(map[string]*GovernmentDef),
		CombatUnits:   make(map[string]*CombatUnitDef),
		WorkerUnits:   make(map[string]*WorkerUnitDef),
		Buildings:     make(map[string]*BuildingDef),
		Equipment:     make(map[string]*EquipmentDef),
		Projectiles:   make(map[string]*ProjectileDef),
		Resources:     make(map[string]*ResourceDef),
		Beliefs:       make(map[string]*BeliefDef),
		Pantheons:     make(map[string]*PantheonDef),
		Religions:     make(map[string]*ReligionDef),
		Civilizations: make(map[string]*CivilizationDef),
	}
}

// Technology returns the technology definition or nil.
func (c *Catalog) Technology(id string) *TechnologyDef { return c.Technologies[id] }

// Culture returns the culture definition or nil.
func (c *Catalog) Culture(id string) *CultureDef { return c.Cultures[id] }

// Policy returns the policy definition or nil.
func (c *Catalog) Policy(id string) *PolicyDef { return c.Policies[id] }

// Government returns the government definition or nil.
func (c *Catalog) Government(id string) *GovernmentDef { return c.Governments[id] }

// CombatUnit returns the combat-unit definition or nil.
func (c *Catalog) CombatUnit(id string) *CombatUnitDef { return c.CombatUnits[id] }

// WorkerUnit returns the worker-unit definition or nil.
func (c *Catalog) WorkerUnit(id string) *WorkerUnitDef { return c.WorkerUnits[id] }

// Building returns the building definition or nil.
func (c *Catalog) Building(id string) *BuildingDef { return c.Buildings[id] }

// EquipmentDef returns the equipment definition or nil.
func (c *Catalog) EquipmentDef(id string) *EquipmentDef { return c.Equipment[id] }

// Projectile returns the projectile definition or nil.
func (c *Catalog) Projectile(id string) *ProjectileDef { return c.Projectiles[id] }

// Resource returns the resource definition or nil.
func (c *Catalog) Resource(id string) *ResourceDef { return c.Resources[id] }

// Belief returns the belief definition or nil.
func (c *Catalog) Belief(id string) *BeliefDef { return c.Beliefs[id] }

// Pantheon returns the pantheon definition or nil.
func (c *Catalog) Pantheon(id string) *PantheonDef { return c.Pantheons[id] }

// Religion returns the religion definition or nil.
func (c *Catalog) Religion(id string) *ReligionDef { return c.Religions[id] }

// Civilization returns the civilization definition or nil.
func (c *Catalog) Civilization(id string) *CivilizationDef { return c.Civilizations[id] }

// TechnologyIDs returns every technology ID in sorted order.
func (c *Catalog) TechnologyIDs() []string { return sortedKeys(c.Technologies) }

// CultureIDs returns every culture ID in sorted order.
func (c *Catalog) CultureIDs() []string { return sortedKeys(c.Cultures) }

// PolicyIDs returns every policy ID in sorted order.
func (c *Catalog) PolicyIDs() []string { return sortedKeys(c.Policies) }

// GovernmentIDs returns every government ID in sorted order.
func (c *Catalog) GovernmentIDs() []string { return sortedKeys(c.Governments) }

// CombatUnitIDs returns every combat-unit ID in sorted order.
func (c *Catalog) CombatUnitIDs() []string { return sortedKeys(c.CombatUnits) }

// WorkerUnitIDs returns every worker-unit ID in sorted order.
func (c *Catalog) WorkerUnitIDs() []string { return sortedKeys(c.WorkerUnits) }

// BuildingIDs returns every building ID in sorted order.
func (c *Catalog) BuildingIDs() []string { return sortedKeys(c.Buildings) }

// EquipmentIDs returns every equipment ID in sorted order.
func (c *Catalog) EquipmentIDs() []string { return sortedKeys(c.Equipment) }

// ProjectileIDs returns every projectile ID in sorted order.
func (c *Catalog) ProjectileIDs() []string { return sortedKeys(c.Projectiles) }

// ResourceIDs returns every resource ID in sorted order.
func (c *Catalog) ResourceIDs() []string { return sortedKeys(c.Resources) }

// BeliefIDs returns every belief ID in sorted order.
func (c *Catalog) BeliefIDs() []string { return sortedKeys(c.Beliefs) }

// PantheonIDs returns every pantheon ID in sorted order.
func (c *Catalog) PantheonIDs() []string { return sortedKeys(c.Pantheons) }

// ReligionIDs returns every religion ID in sorted order.
func (c *Catalog) ReligionIDs() []string { return sortedKeys(c.Religions) }

// CivilizationIDs returns every civilization ID in sorted order.
func (c *Catalog) CivilizationIDs() []string { return sortedKeys(c.Civilizations) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate cross-checks every table: IDs must match map keys, and every
// reference (requirements, belief lists, upgrade chains, resource costs)
// must resolve to an existing definition.
func (c *Catalog) Validate() error {
	for id, d := range c.Technologies {
		if d.ID != id {
			return fmt.Errorf("technology %q: key does not match ID %q", id, d.ID)
		}
		if d.Cost <= 0 {
			return fmt.Errorf("technology %q: cost must be positive", id)
		}
		if err := c.checkRequires(d.Requires); err != nil {
			return fmt.Errorf("technology %q: %w", id, err)
		}
	}
	for id, d := range c.Cultures {
		if d.ID != id {
			return fmt.Errorf("culture %q: key does not match ID %q", id, d.ID)
		}
		if d.Cost <= 0 {
			return fmt.Errorf("culture %q: cost must be positive", id)
		}
		if err := c.checkRequires(d.Requires); err != nil {
			return fmt.Errorf("culture %q: %w", id, err)
		}
	}
	for id, d := range c.Policies {
		if d.ID != id {
			return fmt.Errorf("policy %q: key does not match ID %q", id, d.ID)
		}
		if d.PointCost < 0 {
			return fmt.Errorf("policy %q: point cost must not be negative", id)
		}
		if err := c.checkRequires(d.Requires); err != nil {
			return fmt.Errorf("policy %q: %w", id, err)
		}
	}
	for id, d := range c.Governments {
		if d.ID != id {
			return fmt.Errorf("government %q: key does not match ID %q", id, d.ID)
		}
		if err := c.checkRequires(d.Requires); err != nil {
			return fmt.Errorf("government %q: %w", id, err)
		}
	}
	for id, d := range c.CombatUnits {
		if d.ID != id {
			return fmt.Errorf("combat unit %q: key does not match ID %q", id, d.ID)
		}
		if d.MaxHealth <= 0 {
			return fmt.Errorf("combat unit %q: max health must be positive", id)
		}
		if err := c.checkRequires(d.Requires); err != nil {
			return fmt.Errorf("combat unit %q: %w", id, err)
		}
	}
	for id, d := range c.WorkerUnits {
		if d.ID != id {
			return fmt.Errorf("worker unit %q: key does not match ID %q", id, d.ID)
		}
		if d.MaxHealth <= 0 {
			return fmt.Errorf("worker unit %q: max health must be positive", id)
		}
		if err := c.checkRequires(d.Requires); err != nil {
			return fmt.Errorf("worker unit %q: %w", id, err)
		}
	}
	for id, d := range c.Buildings {
		if d.ID != id {
			return fmt.Errorf("building %q: key does not match ID %q", id, d.ID)
		}
		if err := c.checkRequires(d.Requires); err != nil {
			return fmt.Errorf("building %q: %w", id, err)
		}
	}
	for id, d := range c.Equipment {
		if d.ID != id {
			return fmt.Errorf("equipment %q: key does not match ID %q", id, d.ID)
		}
		if err := c.checkRequires(d.Requires); err != nil {
			return fmt.Errorf("equipment %q: %w", id, err)
		}
		for rid := range d.ResourceCost {
			if c.Resources[rid] == nil {
				return fmt.Errorf("equipment %q: unknown resource %q", id, rid)
			}
		}
		for _, uid := range d.Units {
			if c.CombatUnits[uid] == nil && c.WorkerUnits[uid] == nil {
				return fmt.Errorf("equipment %q: unknown unit %q", id, uid)
			}
		}
	}
	for id, d := range c.Projectiles {
		if d.ID != id {
			return fmt.Errorf("projectile %q: key does not match ID %q", id, d.ID)
		}
		if err := c.checkRequires(d.Requires); err != nil {
			return fmt.Errorf("projectile %q: %w", id, err)
		}
		for rid := range d.ResourceCost {
			if c.Resources[rid] == nil {
				return fmt.Errorf("projectile %q: unknown resource %q", id, rid)
			}
		}
	}
	for id, d := range c.Resources {
		if d.ID != id {
			return fmt.Errorf("resource %q: key does not match ID %q", id, d.ID)
		}
	}
	for id, d := range c.Beliefs {
		if d.ID != id {
			return fmt.Errorf("belief %q: key does not match ID %q", id, d.ID)
		}
	}
	for id, d := range c.Pantheons {
		if d.ID != id {
			return fmt.Errorf("pantheon %q: key does not match ID %q", id, d.ID)
		}
		if len(d.Beliefs) == 0 {
			return fmt.Errorf("pantheon %q: no selectable beliefs", id)
		}
		for _, bid := range d.Beliefs {
			if c.Beliefs[bid] == nil {
				return fmt.Errorf("pantheon %q: unknown belief %q", id, bid)
			}
		}
		if d.UpgradesTo != "" {
			up := c.Pantheons[d.UpgradesTo]
			if up == nil {
				return fmt.Errorf("pantheon %q: unknown upgrade target %q", id, d.UpgradesTo)
			}
			if up == d {
				return fmt.Errorf("pantheon %q: upgrades to itself", id)
			}
		}
	}
	for id, d := range c.Religions {
		if d.ID != id {
			return fmt.Errorf("religion %q: key does not match ID %q", id, d.ID)
		}
		if c.Pantheons[d.Pantheon] == nil {
			return fmt.Errorf("religion %q: unknown pantheon %q", id, d.Pantheon)
		}
		for _, bid := range d.Beliefs {
			if c.Beliefs[bid] == nil {
				return fmt.Errorf("religion %q: unknown belief %q", id, bid)
			}
		}
	}
	for id, d := range c.Civilizations {
		if d.ID != id {
			return fmt.Errorf("civilization %q: key does not match ID %q", id, d.ID)
		}
		if d.BaseCityCap < 0 || d.BasePantheonCap < 0 || d.BaseGovernorSlots < 0 {
			return fmt.Errorf("civilization %q: base capacities must not be negative", id)
		}
		if d.StartingGovernment != "" && c.Governments[d.StartingGovernment] == nil {
			return fmt.Errorf("civilization %q: unknown government %q", id, d.StartingGovernment)
		}
	}
	return nil
}

func (c *Catalog) checkRequires(r Requirements) error {
	for _, id := range r.Techs {
		if c.Technologies[id] == nil {
			return fmt.Errorf("requires unknown technology %q", id)
		}
	}
	for _, id := range r.Cultures {
		if c.Cultures[id] == nil {
			return fmt.Errorf("requires unknown culture %q", id)
		}
	}
	for _, id := range r.Policies {
		if c.Policies[id] == nil {
			return fmt.Errorf("requires unknown policy %q", id)
		}
	}
	if r.Government != "" && c.Governments[r.Government] == nil {
		return fmt.Errorf("requires unknown government %q", r.Government)
	}
	if r.MinCities < 0 {
		return fmt.Errorf("requires negative city count")
	}
	return nil
}
