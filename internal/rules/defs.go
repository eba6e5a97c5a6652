package rules

// TechnologyDef is one entry in the technology tree. Researching it costs
// science over time; on completion its modifiers and grants apply permanently.
type TechnologyDef struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Cost     int          `json:"cost"` // Science required to complete
	Requires Requirements `json:"requires,omitempty"`

	Mods   []Modifier       `json:"mods,omitempty"`
	Combat []CombatModifier `json:"combat,omitempty"`
	Grant  Grants           `json:"grant,omitempty"`
}

func (d *TechnologyDef) SourceID() string                  { return d.ID }
func (d *TechnologyDef) YieldModifiers() []Modifier        { return d.Mods }
func (d *TechnologyDef) CombatModifiers() []CombatModifier { return d.Combat }
func (d *TechnologyDef) Requirements() Requirements        { return d.Requires }
func (d *TechnologyDef) UnlockGrants() Grants              { return d.Grant }

// CultureDef is one entry in the culture track, the civic counterpart of a
// technology. Adoption costs culture over time.
type CultureDef struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Cost     int          `json:"cost"` // Culture required to complete
	Requires Requirements `json:"requires,omitempty"`

	Mods   []Modifier       `json:"mods,omitempty"`
	Combat []CombatModifier `json:"combat,omitempty"`
	Grant  Grants           `json:"grant,omitempty"`
}

func (d *CultureDef) SourceID() string                  { return d.ID }
func (d *CultureDef) YieldModifiers() []Modifier        { return d.Mods }
func (d *CultureDef) CombatModifiers() []CombatModifier { return d.Combat }
func (d *CultureDef) Requirements() Requirements        { return d.Requires }
func (d *CultureDef) UnlockGrants() Grants              { return d.Grant }

// PolicyDef is an adoptable policy card. Adoption spends policy points and is
// immediate; the policy's modifiers then apply permanently.
type PolicyDef struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	PointCost int          `json:"point_cost"` // Policy points spent on adoption
	Requires  Requirements `json:"requires,omitempty"`

	Mods   []Modifier       `json:"mods,omitempty"`
	Combat []CombatModifier `json:"combat,omitempty"`
	Grant  Grants           `json:"grant,omitempty"`
}

func (d *PolicyDef) SourceID() string                  { return d.ID }
func (d *PolicyDef) YieldModifiers() []Modifier        { return d.Mods }
func (d *PolicyDef) CombatModifiers() []CombatModifier { return d.Combat }
func (d *PolicyDef) Requirements() Requirements        { return d.Requires }
func (d *PolicyDef) UnlockGrants() Grants              { return d.Grant }

// GovernmentDef is a form of government. Exactly one is active at a time and
// only the active one contributes its modifiers; switching swaps the
// contribution rather than stacking it.
type GovernmentDef struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Requires Requirements `json:"requires,omitempty"`

	Mods   []Modifier       `json:"mods,omitempty"`
	Combat []CombatModifier `json:"combat,omitempty"`
}

func (d *GovernmentDef) SourceID() string                  { return d.ID }
func (d *GovernmentDef) YieldModifiers() []Modifier        { return d.Mods }
func (d *GovernmentDef) CombatModifiers() []CombatModifier { return d.Combat }

// CombatUnitDef describes a military unit type: its combat profile, upkeep,
// per-round yields, and which equipment slots it exposes.
type CombatUnitDef struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Requires Requirements `json:"requires,omitempty"`

	// Combat profile
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	Movement  int `json:"movement"`
	MaxHealth int `json:"max_health"`

	// Economy
	Yields     YieldSet `json:"yields,omitempty"` // Produced each round while fielded
	FoodUpkeep int      `json:"food_upkeep"`      // Consumed each round

	Slots []EquipSlot `json:"slots,omitempty"` // Equipment slots this unit exposes
}

// HasSlot reports whether the unit type exposes the given equipment slot.
func (d *CombatUnitDef) HasSlot(s EquipSlot) bool {
	for _, slot := range d.Slots {
		if slot == s {
			return true
		}
	}
	return false
}

// WorkerUnitDef describes a civilian unit type: surveyors, harvesters, and
// other non-combatants that produce yields each round.
type WorkerUnitDef struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Requires Requirements `json:"requires,omitempty"`

	Yields     YieldSet `json:"yields,omitempty"` // Produced each round while fielded
	FoodUpkeep int      `json:"food_upkeep"`      // Consumed each round
	MaxHealth  int      `json:"max_health"`

	Slots []EquipSlot `json:"slots,omitempty"` // Tool slots this unit exposes
}

// HasSlot reports whether the worker type exposes the given equipment slot.
func (d *WorkerUnitDef) HasSlot(s EquipSlot) bool {
	for _, slot := range d.Slots {
		if slot == s {
			return true
		}
	}
	return false
}

// BuildingDef describes a city building. Cities recompute their buildable
// lists from these whenever the owning civilization's unlocks change.
type BuildingDef struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	GoldCost int          `json:"gold_cost"`
	Requires Requirements `json:"requires,omitempty"`

	Yields YieldSet `json:"yields,omitempty"` // Added to the host city each round
}

// EquipmentDef describes a producible item a unit can wield in one of its
// slots. Production spends gold and strategic resources.
type EquipmentDef struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Slot     EquipSlot    `json:"slot"`
	Requires Requirements `json:"requires,omitempty"`

	// Production cost
	GoldCost     int            `json:"gold_cost"`
	ResourceCost map[string]int `json:"resource_cost,omitempty"` // Resource ID -> count

	// Units lists the unit definition IDs that may wield this item.
	// Empty means any unit with a matching slot.
	Units []string `json:"units,omitempty"`

	// Wielder contributions, active while equipped.
	Attack   int      `json:"attack,omitempty"`
	Defense  int      `json:"defense,omitempty"`
	Movement int      `json:"movement,omitempty"`
	Yields   YieldSet `json:"yields,omitempty"` // Added to the wielder's base yields
}

// FitsUnit reports whether the given unit definition ID may wield this item.
func (d *EquipmentDef) FitsUnit(unitDefID string) bool {
	if len(d.Units) == 0 {
		return true
	}
	for _, id := range d.Units {
		if id == unitDefID {
			return true
		}
	}
	return false
}

// ProjectileDef describes expendable munitions tracked per civilization and
// consumed by combat.
type ProjectileDef struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Damage   int          `json:"damage"`
	Requires Requirements `json:"requires,omitempty"`

	GoldCost     int            `json:"gold_cost"`
	ResourceCost map[string]int `json:"resource_cost,omitempty"`
}

// ResourceDef describes a strategic resource: mined from the map, stockpiled
// per civilization, and consumed by equipment production.
type ResourceDef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BeliefDef is one selectable tenet. Pantheons and religions carry beliefs,
// and an owned belief's modifiers apply to the whole civilization.
type BeliefDef struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Mods []Modifier `json:"mods,omitempty"`
}

// PantheonDef describes a foundable pantheon. Founding costs faith, is gated
// by the civilization's pantheon capacity, and selects one belief from the
// allowed list.
type PantheonDef struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	FaithCost int      `json:"faith_cost"`
	Beliefs   []string `json:"beliefs,omitempty"` // Selectable belief IDs

	// UpgradesTo names the pantheon this one can be upgraded into in place.
	// Empty means not upgradeable.
	UpgradesTo string `json:"upgrades_to,omitempty"`
}

// Upgradeable reports whether the pantheon has a defined upgraded form.
func (d *PantheonDef) Upgradeable() bool { return d.UpgradesTo != "" }

// AllowsBelief reports whether the given belief may be selected when founding
// this pantheon.
func (d *PantheonDef) AllowsBelief(beliefID string) bool {
	for _, id := range d.Beliefs {
		if id == beliefID {
			return true
		}
	}
	return false
}

// ReligionDef describes a foundable religion. A civilization founds at most
// one religion ever; founding requires the named pantheon, faith, and a city
// on a holy-site tile.
type ReligionDef struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Pantheon  string   `json:"pantheon"` // Owned pantheon required to found
	FaithCost int      `json:"faith_cost"`
	Beliefs   []string `json:"beliefs,omitempty"` // Intrinsic beliefs, active once founded
}

// CivilizationDef describes a playable civilization: its starting stockpiles
// and the base values its capacities derive from.
type CivilizationDef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Leader string `json:"leader"`

	// Base capacities; effective capacity is max(0, base+bonus).
	BaseCityCap       int `json:"base_city_cap"`
	BasePantheonCap   int `json:"base_pantheon_cap"`
	BaseGovernorSlots int `json:"base_governor_slots"`

	// GovernorsEnabled gates the governor feature for this civilization.
	GovernorsEnabled bool `json:"governors_enabled"`

	StartingStockpiles YieldSet `json:"starting_stockpiles,omitempty"`
	StartingGovernment string   `json:"starting_government"`
}
