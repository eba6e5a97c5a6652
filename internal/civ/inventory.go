package civ

import (
	"fmt"

	"github.com/corvidae/stellar-age/internal/rules"
)

// stockpile is a non-negative key-to-count map. Every mutation goes through
// add and consume so the invariant cannot be bypassed; zero entries are
// removed.
type stockpile map[string]int

func (s stockpile) count(id string) int { return s[id] }

func (s stockpile) add(id string, n int) {
	s[id] += n
}

func (s stockpile) consume(id string, n int) bool {
	if s[id] < n {
		return false
	}
	s[id] -= n
	if s[id] == 0 {
		delete(s, id)
	}
	return true
}

func (s stockpile) snapshot() map[string]int {
	out := make(map[string]int, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// ResourceCount returns the stockpiled count of one strategic resource.
func (c *Civilization) ResourceCount(id string) int { return c.resources.count(id) }

// EquipmentCount returns the stockpiled count of one equipment item.
func (c *Civilization) EquipmentCount(id string) int { return c.equipment.count(id) }

// ProjectileCount returns the stockpiled count of one projectile type.
func (c *Civilization) ProjectileCount(id string) int { return c.projectiles.count(id) }

// HasResource reports whether at least n of a resource is stockpiled.
func (c *Civilization) HasResource(id string, n int) bool { return c.resources.count(id) >= n }

// Resources returns a copy of the resource stockpile.
func (c *Civilization) Resources() map[string]int { return c.resources.snapshot() }

// EquipmentStock returns a copy of the equipment stockpile.
func (c *Civilization) EquipmentStock() map[string]int { return c.equipment.snapshot() }

// Projectiles returns a copy of the projectile stockpile.
func (c *Civilization) Projectiles() map[string]int { return c.projectiles.snapshot() }

// AddResource deposits harvested resources.
func (c *Civilization) AddResource(id string, n int) error {
	if n <= 0 {
		return fmt.Errorf("add resource %q: count %d: %w", id, n, ErrInvalidAmount)
	}
	if c.cat.Resource(id) == nil {
		return fmt.Errorf("add resource %q: %w", id, ErrInvalidTarget)
	}
	c.resources.add(id, n)
	c.emit(EventInventoryChanged, fmt.Sprintf("+%d %s", n, id), map[string]any{
		"stockpile": "resource",
		"item":      id,
		"delta":     n,
		"total":     c.resources.count(id),
	})
	return nil
}

// ConsumeResource withdraws resources, rejecting the whole amount if the
// stockpile cannot cover it.
func (c *Civilization) ConsumeResource(id string, n int) error {
	if n <= 0 {
		return fmt.Errorf("consume resource %q: count %d: %w", id, n, ErrInvalidAmount)
	}
	if c.cat.Resource(id) == nil {
		return fmt.Errorf("consume resource %q: %w", id, ErrInvalidTarget)
	}
	if !c.resources.consume(id, n) {
		return fmt.Errorf("consume %d %s, have %d: %w", n, id, c.resources.count(id), ErrInsufficientResource)
	}
	c.emit(EventInventoryChanged, fmt.Sprintf("-%d %s", n, id), map[string]any{
		"stockpile": "resource",
		"item":      id,
		"delta":     -n,
		"total":     c.resources.count(id),
	})
	return nil
}

// ConsumeProjectile expends munitions, typically from combat resolution.
func (c *Civilization) ConsumeProjectile(id string, n int) error {
	if n <= 0 {
		return fmt.Errorf("consume projectile %q: count %d: %w", id, n, ErrInvalidAmount)
	}
	if c.cat.Projectile(id) == nil {
		return fmt.Errorf("consume projectile %q: %w", id, ErrInvalidTarget)
	}
	if !c.projectiles.consume(id, n) {
		return fmt.Errorf("consume %d %s, have %d: %w", n, id, c.projectiles.count(id), ErrInsufficientResource)
	}
	c.emit(EventInventoryChanged, fmt.Sprintf("-%d %s", n, id), map[string]any{
		"stockpile": "projectile",
		"item":      id,
		"delta":     -n,
		"total":     c.projectiles.count(id),
	})
	return nil
}

// ProduceEquipment manufactures equipment into the stockpile, spending gold
// and strategic resources. Every cost component is verified before any is
// deducted, so a rejected production changes nothing.
func (c *Civilization) ProduceEquipment(id string, n int) error {
	def := c.cat.EquipmentDef(id)
	if def == nil {
		return fmt.Errorf("produce equipment %q: %w", id, ErrInvalidTarget)
	}
	if n <= 0 {
		return fmt.Errorf("produce equipment %q: count %d: %w", id, n, ErrInvalidAmount)
	}
	if !c.IsEquipmentAvailable(id) {
		return fmt.Errorf("produce equipment %q: %w", id, ErrPrerequisiteNotMet)
	}
	if err := c.payProductionCost(id, def.GoldCost, def.ResourceCost, n); err != nil {
		return err
	}
	c.equipment.add(id, n)
	c.emit(EventInventoryChanged, fmt.Sprintf("produced %d %s", n, def.Name), map[string]any{
		"stockpile": "equipment",
		"item":      id,
		"delta":     n,
		"total":     c.equipment.count(id),
	})
	return nil
}

// ProduceProjectile manufactures munitions into the stockpile under the same
// cost rules as equipment.
func (c *Civilization) ProduceProjectile(id string, n int) error {
	def := c.cat.Projectile(id)
	if def == nil {
		return fmt.Errorf("produce projectile %q: %w", id, ErrInvalidTarget)
	}
	if n <= 0 {
		return fmt.Errorf("produce projectile %q: count %d: %w", id, n, ErrInvalidAmount)
	}
	if !c.IsProjectileAvailable(id) {
		return fmt.Errorf("produce projectile %q: %w", id, ErrPrerequisiteNotMet)
	}
	if err := c.payProductionCost(id, def.GoldCost, def.ResourceCost, n); err != nil {
		return err
	}
	c.projectiles.add(id, n)
	c.emit(EventInventoryChanged, fmt.Sprintf("produced %d %s", n, def.Name), map[string]any{
		"stockpile": "projectile",
		"item":      id,
		"delta":     n,
		"total":     c.projectiles.count(id),
	})
	return nil
}

// payProductionCost checks gold and every resource line for n items, then
// deducts them all. Checks complete before the first deduction.
func (c *Civilization) payProductionCost(id string, goldCost int, resourceCost map[string]int, n int) error {
	gold := goldCost * n
	if c.stock[rules.YieldGold] < gold {
		return fmt.Errorf("produce %q: need %d gold, have %d: %w", id, gold, c.stock[rules.YieldGold], ErrInsufficientResource)
	}
	for rid, per := range resourceCost {
		need := per * n
		if c.resources.count(rid) < need {
			return fmt.Errorf("produce %q: need %d %s, have %d: %w", id, need, rid, c.resources.count(rid), ErrInsufficientResource)
		}
	}

	if gold > 0 {
		c.Credit(rules.YieldGold, -gold)
	}
	for rid, per := range resourceCost {
		c.resources.consume(rid, per*n)
	}
	return nil
}

// EquipUnit installs one stockpiled item on an owned unit: the new item is
// consumed from the stockpile, installed in its slot, and any displaced item
// returned to the stockpile. A rejected equip leaves unit and stockpile
// untouched.
func (c *Civilization) EquipUnit(u Unit, equipmentID string) error {
	if u == nil {
		return fmt.Errorf("equip: nil unit: %w", ErrInvalidTarget)
	}
	def := c.cat.EquipmentDef(equipmentID)
	if def == nil {
		return fmt.Errorf("equip %q: %w", equipmentID, ErrInvalidTarget)
	}
	if !c.ownsUnit(u) {
		return fmt.Errorf("equip %q: unit %d not owned: %w", equipmentID, u.ID(), ErrInvalidTarget)
	}
	if !c.unitHasSlot(u, def.Slot) {
		return fmt.Errorf("equip %q: unit %q has no %s slot: %w", equipmentID, u.TypeID(), def.Slot.Name(), ErrInvalidTarget)
	}
	if !def.FitsUnit(u.TypeID()) {
		return fmt.Errorf("equip %q: not wieldable by %q: %w", equipmentID, u.TypeID(), ErrInvalidTarget)
	}
	if !c.equipment.consume(equipmentID, 1) {
		return fmt.Errorf("equip %q: none stockpiled: %w", equipmentID, ErrInsufficientResource)
	}

	previous := u.Equipped(def.Slot)
	u.SetEquipped(def.Slot, equipmentID)
	if previous != "" {
		c.equipment.add(previous, 1)
	}
	u.BonusesChanged()
	c.emit(EventUnitEquipped, fmt.Sprintf("unit %d equipped %s", u.ID(), def.Name), map[string]any{
		"unit":     u.ID(),
		"item":     equipmentID,
		"replaced": previous,
	})
	return nil
}

// UnequipUnit clears a slot and returns its item to the stockpile. An empty
// slot is a no-op.
func (c *Civilization) UnequipUnit(u Unit, slot rules.EquipSlot) error {
	if u == nil {
		return fmt.Errorf("unequip: nil unit: %w", ErrInvalidTarget)
	}
	if !c.ownsUnit(u) {
		return fmt.Errorf("unequip: unit %d not owned: %w", u.ID(), ErrInvalidTarget)
	}
	item := u.Equipped(slot)
	if item == "" {
		return nil
	}
	u.SetEquipped(slot, "")
	c.equipment.add(item, 1)
	u.BonusesChanged()
	c.emit(EventUnitUnequipped, fmt.Sprintf("unit %d unequipped %s", u.ID(), item), map[string]any{
		"unit": u.ID(),
		"item": item,
	})
	return nil
}

func (c *Civilization) ownsUnit(u Unit) bool {
	for _, owned := range c.combatUnits {
		if owned == u {
			return true
		}
	}
	for _, owned := range c.workerUnits {
		if owned == u {
			return true
		}
	}
	return false
}

func (c *Civilization) unitHasSlot(u Unit, slot rules.EquipSlot) bool {
	if def := c.cat.CombatUnit(u.TypeID()); def != nil {
		return def.HasSlot(slot)
	}
	if def := c.cat.WorkerUnit(u.TypeID()); def != nil {
		return def.HasSlot(slot)
	}
	return false
}
