package sim

import (
	"github.com/corvidae/stellar-age/internal/civ"
	"github.com/corvidae/stellar-age/internal/rules"
)

// CombatUnit is a fielded military unit. Its effective combat profile is
// the definition plus wielded equipment plus the owner's combat bonuses,
// cached until the owner signals a bonus change or the loadout moves.
type CombatUnit struct {
	id       int
	owner    *civ.Civilization
	cat      *rules.Catalog
	def      *rules.CombatUnitDef
	health   int
	moves    int
	equipped map[rules.EquipSlot]string

	attack   int
	defense  int
	movement int
	stale    bool
}

func newCombatUnit(id int, owner *civ.Civilization, cat *rules.Catalog, def *rules.CombatUnitDef) *CombatUnit {
	u := &CombatUnit{
		id:       id,
		owner:    owner,
		cat:      cat,
		def:      def,
		health:   def.MaxHealth,
		equipped: make(map[rules.EquipSlot]string),
		stale:    true,
	}
	u.moves = u.Movement()
	return u
}

// ID returns the unit's game-scoped identifier.
func (u *CombatUnit) ID() int { return u.id }

// TypeID returns the unit's definition ID.
func (u *CombatUnit) TypeID() string { return u.def.ID }

// MaxHealth returns the definition's health pool.
func (u *CombatUnit) MaxHealth() int { return u.def.MaxHealth }

// Health returns current health.
func (u *CombatUnit) Health() int { return u.health }

// Destroyed reports whether the unit has no health left.
func (u *CombatUnit) Destroyed() bool { return u.health <= 0 }

// FoodUpkeep returns the food the unit consumes per round.
func (u *CombatUnit) FoodUpkeep() int { return u.def.FoodUpkeep }

// MovesLeft returns the movement remaining this round.
func (u *CombatUnit) MovesLeft() int { return u.moves }

// ApplyDamage reduces health, clamping at zero.
func (u *CombatUnit) ApplyDamage(points int) {
	u.health -= points
	if u.health < 0 {
		u.health = 0
	}
}

// ResetTurn restores movement for a new round.
func (u *CombatUnit) ResetTurn() { u.moves = u.Movement() }

// BonusesChanged marks the cached combat profile stale.
func (u *CombatUnit) BonusesChanged() { u.stale = true }

// Equipped returns the equipment ID wielded in a slot, or "".
func (u *CombatUnit) Equipped(slot rules.EquipSlot) string { return u.equipped[slot] }

// SetEquipped installs or clears a slot. The owner's inventory operation is
// responsible for stock movement.
func (u *CombatUnit) SetEquipped(slot rules.EquipSlot, equipmentID string) {
	if equipmentID == "" {
		delete(u.equipped, slot)
	} else {
		u.equipped[slot] = equipmentID
	}
	u.stale = true
}

// BaseYields returns the unit's raw per-round output including wielded
// equipment contributions.
func (u *CombatUnit) BaseYields() rules.YieldSet {
	out := u.def.Yields
	for _, id := range u.equipped {
		if item := u.cat.EquipmentDef(id); item != nil {
			out.Add(item.Yields)
		}
	}
	return out
}

// Attack returns the effective attack stat.
func (u *CombatUnit) Attack() int {
	u.refresh()
	return u.attack
}

// Defense returns the effective defense stat.
func (u *CombatUnit) Defense() int {
	u.refresh()
	return u.defense
}

// Movement returns the effective movement stat.
func (u *CombatUnit) Movement() int {
	u.refresh()
	return u.movement
}

func (u *CombatUnit) refresh() {
	if !u.stale {
		return
	}
	u.attack = u.def.Attack + u.statBonus(rules.StatAttack)
	u.defense = u.def.Defense + u.statBonus(rules.StatDefense)
	u.movement = u.def.Movement + u.statBonus(rules.StatMovement)
	u.stale = false
}

func (u *CombatUnit) statBonus(s rules.CombatStat) int {
	total := u.owner.CombatBonus(rules.CombatUnitTarget(u.def.ID), s)
	for _, id := range u.equipped {
		item := u.cat.EquipmentDef(id)
		if item == nil {
			continue
		}
		switch s {
		case rules.StatAttack:
			total += item.Attack
		case rules.StatDefense:
			total += item.Defense
		case rules.StatMovement:
			total += item.Movement
		}
		total += u.owner.CombatBonus(rules.EquipmentTarget(id), s)
	}
	return total
}

// WorkerUnit is a fielded civilian unit: it produces yields and can wield
// tools but has no combat profile.
type WorkerUnit struct {
	id       int
	owner    *civ.Civilization
	cat      *rules.Catalog
	def      *rules.WorkerUnitDef
	health   int
	equipped map[rules.EquipSlot]string
}

func newWorkerUnit(id int, owner *civ.Civilization, cat *rules.Catalog, def *rules.WorkerUnitDef) *WorkerUnit {
	return &WorkerUnit{
		id:       id,
		owner:    owner,
		cat:      cat,
		def:      def,
		health:   def.MaxHealth,
		equipped: make(map[rules.EquipSlot]string),
	}
}

// ID returns the unit's game-scoped identifier.
func (u *WorkerUnit) ID() int { return u.id }

// TypeID returns the unit's definition ID.
func (u *WorkerUnit) TypeID() string { return u.def.ID }

// MaxHealth returns the definition's health pool.
func (u *WorkerUnit) MaxHealth() int { return u.def.MaxHealth }

// Health returns current health.
func (u *WorkerUnit) Health() int { return u.health }

// Destroyed reports whether the unit has no health left.
func (u *WorkerUnit) Destroyed() bool { return u.health <= 0 }

// FoodUpkeep returns the food the unit consumes per round.
func (u *WorkerUnit) FoodUpkeep() int { return u.def.FoodUpkeep }

// ApplyDamage reduces health, clamping at zero.
func (u *WorkerUnit) ApplyDamage(points int) {
	u.health -= points
	if u.health < 0 {
		u.health = 0
	}
}

// ResetTurn is a no-op; workers carry no per-round state.
func (u *WorkerUnit) ResetTurn() {}

// BonusesChanged is a no-op; workers cache no derived stats.
func (u *WorkerUnit) BonusesChanged() {}

// Equipped returns the equipment ID wielded in a slot, or "".
func (u *WorkerUnit) Equipped(slot rules.EquipSlot) string { return u.equipped[slot] }

// SetEquipped installs or clears a slot.
func (u *WorkerUnit) SetEquipped(slot rules.EquipSlot, equipmentID string) {
	if equipmentID == "" {
		delete(u.equipped, slot)
	} else {
		u.equipped[slot] = equipmentID
	}
}

// BaseYields returns the unit's raw per-round output including wielded
// equipment contributions.
func (u *WorkerUnit) BaseYields() rules.YieldSet {
	out := u.def.Yields
	for _, id := range u.equipped {
		if item := u.cat.EquipmentDef(id); item != nil {
			out.Add(item.Yields)
		}
	}
	return out
}
