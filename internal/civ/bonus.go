package civ

import (
	"math"

	"github.com/corvidae/stellar-age/internal/rules"
)

// bonusTable accumulates modifier contributions keyed by target. Flat and
// percentage parts are additive across sources; the zero map value reads as
// no bonus.
type bonusTable struct {
	flat   map[rules.TargetRef]rules.YieldSet
	pct    map[rules.TargetRef]rules.PctSet
	combat map[rules.TargetRef][rules.NumCombatStats]int
}

func (t *bonusTable) reset() {
	t.flat = make(map[rules.TargetRef]rules.YieldSet)
	t.pct = make(map[rules.TargetRef]rules.PctSet)
	t.combat = make(map[rules.TargetRef][rules.NumCombatStats]int)
}

func (t *bonusTable) absorb(src rules.BonusSource) {
	t.absorbMods(src.YieldModifiers())
	t.absorbCombat(src.CombatModifiers())
}

func (t *bonusTable) absorbMods(mods []rules.Modifier) {
	for _, m := range mods {
		if m.Flat != 0 {
			set := t.flat[m.Target]
			set[m.Yield] += m.Flat
			t.flat[m.Target] = set
		}
		if m.Pct != 0 {
			set := t.pct[m.Target]
			set[m.Yield] += m.Pct
			t.pct[m.Target] = set
		}
	}
}

func (t *bonusTable) absorbCombat(mods []rules.CombatModifier) {
	for _, m := range mods {
		if m.Flat == 0 {
			continue
		}
		set := t.combat[m.Target]
		set[m.Stat] += m.Flat
		t.combat[m.Target] = set
	}
}

func (t *bonusTable) yield(target rules.TargetRef, k rules.YieldKind) (flat int, pct float64) {
	return t.flat[target][k], t.pct[target][k]
}

// rebuildBonuses recomputes every accumulator from the currently active
// sources: completed technologies, cultures and policies, the active
// government, and owned beliefs. Sources change rarely, so the rebuild is
// always done in full.
func (c *Civilization) rebuildBonuses() {
	c.bonuses.reset()
	for _, id := range c.techOrder {
		if d := c.cat.Technology(id); d != nil {
			c.bonuses.absorb(d)
		}
	}
	for _, id := range c.cultureOrder {
		if d := c.cat.Culture(id); d != nil {
			c.bonuses.absorb(d)
		}
	}
	for _, id := range c.policyOrder {
		if d := c.cat.Policy(id); d != nil {
			c.bonuses.absorb(d)
		}
	}
	if c.government != nil {
		c.bonuses.absorb(c.government)
	}
	for _, p := range c.pantheons {
		if p.Belief != nil {
			c.bonuses.absorbMods(p.Belief.Mods)
		}
	}
	if c.religion != nil {
		for _, bid := range c.religion.Beliefs {
			if b := c.cat.Belief(bid); b != nil {
				c.bonuses.absorbMods(b.Mods)
			}
		}
	}
	c.notifyBonusesChanged()
}

func (c *Civilization) notifyBonusesChanged() {
	for _, u := range c.combatUnits {
		u.BonusesChanged()
	}
	for _, u := range c.workerUnits {
		u.BonusesChanged()
	}
}

// Bonus returns the accumulated flat and percentage adjustment for one yield
// channel and target. Scoped queries return only that scope's entries; the
// global share is queried with rules.Global.
func (c *Civilization) Bonus(target rules.TargetRef, k rules.YieldKind) (flat int, pct float64) {
	return c.bonuses.yield(target, k)
}

// CombatBonus returns the accumulated flat adjustment for one combat stat
// and target.
func (c *Civilization) CombatBonus(target rules.TargetRef, s rules.CombatStat) int {
	return c.bonuses.combat[target][s]
}

// roundScale applies an additive percentage to a base amount and rounds to
// the nearest integer. Every scaling stage rounds, so totals stay integral
// throughout the pipeline.
func roundScale(base int, pct float64) int {
	if pct == 0 {
		return base
	}
	return int(math.Round(float64(base) * (1 + pct)))
}

// scaleCivWide applies the civilization-wide percentage for one channel.
func (c *Civilization) scaleCivWide(k rules.YieldKind, amount int) int {
	_, pct := c.bonuses.yield(rules.Global, k)
	return roundScale(amount, pct)
}

// entityYields computes one unit's effective per-round yields: base plus
// target-scoped flat bonuses, scaled by target-scoped percentages, rounded
// per entity. Scopes that apply are the unit's own definition and every
// wielded item's definition. The civilization-wide percentage is applied
// later, to the summed group total.
func (c *Civilization) entityYields(u Unit, kind rules.TargetKind) rules.YieldSet {
	targets := make([]rules.TargetRef, 1, 1+rules.NumEquipSlots)
	targets[0] = rules.TargetRef{Kind: kind, ID: u.TypeID()}
	for slot := rules.EquipSlot(0); slot < rules.NumEquipSlots; slot++ {
		if id := u.Equipped(slot); id != "" {
			targets = append(targets, rules.EquipmentTarget(id))
		}
	}

	base := u.BaseYields()
	var out rules.YieldSet
	for _, k := range rules.AllYields() {
		flat := 0
		pct := 0.0
		for _, t := range targets {
			f, p := c.bonuses.yield(t, k)
			flat += f
			pct += p
		}
		out[k] = roundScale(base[k]+flat, pct)
	}
	return out
}

// globalFlatIncome returns the per-round standing income contributed by
// global flat modifiers. It is credited once per round, unscaled; the
// percentage share of global modifiers applies to collected yields instead.
func (c *Civilization) globalFlatIncome() rules.YieldSet {
	return c.bonuses.flat[rules.Global]
}
