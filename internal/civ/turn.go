package civ

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/corvidae/stellar-age/internal/rules"
)

// BeginTurn runs the civilization's round-start pipeline in fixed order:
// unit resets, city turns, yield collection (cities, trade, combat units,
// workers, standing income), food consumption, track advancement, war
// weariness, and famine. Research and culture advance on the yields gained
// this round, not on stockpile totals.
func (c *Civilization) BeginTurn(round int) {
	c.round = round

	for _, u := range c.combatUnits {
		u.ResetTurn()
	}
	for _, u := range c.workerUnits {
		u.ResetTurn()
	}
	for _, city := range c.cities {
		city.ProcessTurn()
	}

	var gains rules.YieldSet

	// City yields, scaled civilization-wide and rounded per city.
	for _, city := range c.cities {
		raw := city.Yields()
		for _, k := range rules.AllYields() {
			gains[k] += c.scaleCivWide(k, raw[k])
		}
	}

	// Interplanetary trade routes pay gold.
	if trade := c.trade.TradeGold(c.id); trade != 0 {
		gains[rules.YieldGold] += c.scaleCivWide(rules.YieldGold, trade)
	}

	// Fielded units: per-entity bonuses and rounding first, the
	// civilization-wide percentage on each group's sum second.
	gains.Add(c.collectUnitYields(c.combatUnits, rules.TargetCombatUnit))
	gains.Add(c.collectUnitYields(c.workerUnits, rules.TargetWorkerUnit))

	// Standing income from global flat bonuses.
	gains.Add(c.globalFlatIncome())

	c.stock.Add(gains)
	if !gains.IsZero() {
		c.emit(EventYieldsCollected, "yields collected", yieldMeta(gains))
	}

	consumed := c.foodConsumption()
	c.stock[rules.YieldFood] -= consumed
	if c.stock[rules.YieldFood] < c.tuning.FoodFloor {
		c.stock[rules.YieldFood] = c.tuning.FoodFloor
	}

	c.advanceResearch(gains[rules.YieldScience])
	c.advanceCulture(gains[rules.YieldCulture])

	c.updateWarWeariness()
	c.updateFamine(consumed)

	c.emit(EventTurnStarted, fmt.Sprintf("round %d", round), map[string]any{
		"round": round,
		"food":  c.stock[rules.YieldFood],
	})
}

func (c *Civilization) collectUnitYields(units []Unit, kind rules.TargetKind) rules.YieldSet {
	var out rules.YieldSet
	if len(units) == 0 {
		return out
	}
	var sum rules.YieldSet
	for _, u := range units {
		sum.Add(c.entityYields(u, kind))
	}
	for _, k := range rules.AllYields() {
		out[k] = c.scaleCivWide(k, sum[k])
	}
	return out
}

func (c *Civilization) foodConsumption() int {
	total := 0
	for _, city := range c.cities {
		total += city.FoodConsumption()
	}
	for _, u := range c.combatUnits {
		total += u.FoodUpkeep()
	}
	for _, u := range c.workerUnits {
		total += u.FoodUpkeep()
	}
	return total
}

func (c *Civilization) updateWarWeariness() {
	prev := c.warWeariness
	if n := len(c.wars); n > 0 {
		c.warWeariness += float64(n) * c.tuning.WarWearinessPerWar
	} else {
		c.warWeariness -= c.tuning.WarWearinessRecovery
	}
	c.warWeariness = math.Min(1, math.Max(0, c.warWeariness))
	if c.warWeariness != prev {
		c.emit(EventWearinessChanged, fmt.Sprintf("war weariness %.2f", c.warWeariness), map[string]any{
			"weariness": c.warWeariness,
			"wars":      len(c.wars),
		})
	}
}

// updateFamine applies famine damage when the post-consumption food
// stockpile is non-positive, and raises the low-food warning when the
// stockpile covers less than the configured horizon of consumption.
func (c *Civilization) updateFamine(consumed int) {
	food := c.stock[rules.YieldFood]
	inFamine := food <= 0

	if inFamine {
		for _, u := range c.combatUnits {
			u.ApplyDamage(famineDamage(u.MaxHealth(), c.tuning.FamineDamageFrac))
		}
		for _, u := range c.workerUnits {
			u.ApplyDamage(famineDamage(u.MaxHealth(), c.tuning.FamineDamageFrac))
		}
		if !c.famine {
			slog.Warn("famine", "civ", c.id, "round", c.round, "food", food)
			c.emit(EventFamineStarted, "famine: units are starving", map[string]any{
				"food": food,
			})
		}
	} else {
		if c.famine {
			c.emit(EventFamineEnded, "famine ended", map[string]any{
				"food": food,
			})
		}
		if consumed > 0 && food < consumed*c.tuning.LowFoodRounds {
			c.emit(EventLowFood, fmt.Sprintf("food low: %d in store, %d consumed per round", food, consumed), map[string]any{
				"food":     food,
				"consumed": consumed,
			})
		}
	}
	c.famine = inFamine
}

func famineDamage(maxHealth int, frac float64) int {
	return int(math.Ceil(float64(maxHealth) * frac))
}

func yieldMeta(gains rules.YieldSet) map[string]any {
	meta := make(map[string]any, rules.NumYields)
	for _, k := range rules.AllYields() {
		if gains[k] != 0 {
			meta[k.Name()] = gains[k]
		}
	}
	return meta
}
