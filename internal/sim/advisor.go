// The advisor plays each civilization's round with fixed-priority rules.
// Every choice iterates sorted IDs, so a game is fully deterministic for a
// given map, catalog, and seating.
package sim

import (
	"sort"

	"github.com/corvidae/stellar-age/internal/civ"
	"github.com/corvidae/stellar-age/internal/rules"
	"github.com/corvidae/stellar-age/internal/world"
)

// advise runs one civilization's decisions for the round, after its yields
// have been collected. Rejected operations are recoverable by design; the
// advisor just moves on.
func (g *Game) advise(c *civ.Civilization) {
	g.adviseResearch(c)
	g.adviseCulture(c)
	g.advisePolicies(c)
	g.adviseGovernment(c)
	g.adviseExpansion(c)
	g.adviseConstruction(c)
	g.adviseArmory(c)
	g.adviseFaith(c)
	g.adviseGovernors(c)
}

// adviseResearch starts the cheapest reachable technology when the track
// is idle.
func (g *Game) adviseResearch(c *civ.Civilization) {
	if _, busy := c.CurrentResearch(); busy {
		return
	}
	best := ""
	bestCost := 0
	for _, id := range g.cat.TechnologyIDs() {
		def := g.cat.Technology(id)
		if c.HasTech(id) || !def.Requires.Met(c) {
			continue
		}
		if best == "" || def.Cost < bestCost {
			best, bestCost = id, def.Cost
		}
	}
	if best != "" {
		c.StartResearch(best)
	}
}

// adviseCulture starts the cheapest reachable culture when the track is
// idle.
func (g *Game) adviseCulture(c *civ.Civilization) {
	if _, busy := c.CurrentCulture(); busy {
		return
	}
	best := ""
	bestCost := 0
	for _, id := range g.cat.CultureIDs() {
		def := g.cat.Culture(id)
		if c.HasCulture(id) || !def.Requires.Met(c) {
			continue
		}
		if best == "" || def.Cost < bestCost {
			best, bestCost = id, def.Cost
		}
	}
	if best != "" {
		c.StartCultureAdoption(best)
	}
}

// advisePolicies adopts every reachable policy the point bank covers.
func (g *Game) advisePolicies(c *civ.Civilization) {
	for _, id := range g.cat.PolicyIDs() {
		def := g.cat.Policy(id)
		if c.HasPolicy(id) || !def.Requires.Met(c) {
			continue
		}
		if c.Stockpile(rules.YieldPolicy) < def.PointCost {
			continue
		}
		c.AdoptPolicy(id)
	}
}

// adviseGovernment swaps to the reachable government carrying the most
// modifiers, staying put on ties.
func (g *Game) adviseGovernment(c *civ.Civilization) {
	current := 0
	if gov := c.Government(); gov != nil {
		current = len(gov.Mods) + len(gov.Combat)
	}
	best := ""
	bestScore := current
	for _, id := range g.cat.GovernmentIDs() {
		if id == c.GovernmentID() {
			continue
		}
		def := g.cat.Government(id)
		if !def.Requires.Met(c) {
			continue
		}
		if score := len(def.Mods) + len(def.Combat); score > bestScore {
			best, bestScore = id, score
		}
	}
	if best != "" {
		c.ChangeGovernment(best)
	}
}

// adviseExpansion founds cities on the best unclaimed frontier sites until
// capacity or the frontier runs out.
func (g *Game) adviseExpansion(c *civ.Civilization) {
	for c.CityCount() < c.CityCap() {
		tile := g.nextFrontierTile()
		if tile < 0 {
			return
		}
		if _, err := c.FoundNewCity(tile); err != nil {
			return
		}
	}
}

// nextFrontierTile pops the best remaining unclaimed start site, or -1.
func (g *Game) nextFrontierTile() int {
	for len(g.frontier) > 0 {
		tile := g.frontier[0]
		g.frontier = g.frontier[1:]
		if _, taken := g.claimed[tile]; !taken {
			return tile
		}
	}
	return -1
}

// adviseConstruction starts at most one affordable building per city per
// round, cheapest first.
func (g *Game) adviseConstruction(c *civ.Civilization) {
	for _, owned := range c.Cities() {
		city := g.cities[owned.ID()]
		if city == nil {
			continue
		}
		ids := city.Buildable()
		sort.Slice(ids, func(i, j int) bool {
			ci, cj := g.cat.Building(ids[i]).GoldCost, g.cat.Building(ids[j]).GoldCost
			if ci != cj {
				return ci < cj
			}
			return ids[i] < ids[j]
		})
		for _, id := range ids {
			if c.Stockpile(rules.YieldGold) < g.cat.Building(id).GoldCost {
				continue
			}
			if city.Build(id) == nil {
				break
			}
		}
	}
}

// adviseArmory produces equipment some unit still lacks, installs whatever
// is stocked, and keeps a small projectile reserve.
func (g *Game) adviseArmory(c *civ.Civilization) {
	units := append(c.CombatUnits(), c.WorkerUnits()...)

	for _, id := range g.cat.EquipmentIDs() {
		if !c.IsEquipmentAvailable(id) || c.EquipmentCount(id) > 0 {
			continue
		}
		if g.wielderFor(c, units, id) == nil {
			continue
		}
		c.ProduceEquipment(id, 1)
	}

	for _, id := range g.cat.EquipmentIDs() {
		for c.EquipmentCount(id) > 0 {
			u := g.wielderFor(c, units, id)
			if u == nil {
				break
			}
			if c.EquipUnit(u, id) != nil {
				break
			}
		}
	}

	for _, id := range g.cat.ProjectileIDs() {
		if !c.IsProjectileAvailable(id) || c.ProjectileCount(id) >= 2 {
			continue
		}
		c.ProduceProjectile(id, 1)
	}
}

// wielderFor returns the first unit with a free matching slot that may
// wield the item, or nil.
func (g *Game) wielderFor(c *civ.Civilization, units []civ.Unit, equipmentID string) civ.Unit {
	def := g.cat.EquipmentDef(equipmentID)
	if def == nil {
		return nil
	}
	for _, u := range units {
		if !def.FitsUnit(u.TypeID()) || u.Equipped(def.Slot) != "" {
			continue
		}
		if cu := g.cat.CombatUnit(u.TypeID()); cu != nil && cu.HasSlot(def.Slot) {
			return u
		}
		if wu := g.cat.WorkerUnit(u.TypeID()); wu != nil && wu.HasSlot(def.Slot) {
			return u
		}
	}
	return nil
}

// adviseFaith founds pantheons up to capacity, upgrades the upgradeable,
// and founds a religion from a holy-site city once one is owned.
func (g *Game) adviseFaith(c *civ.Civilization) {
	if !c.PantheonsEnabled() {
		return
	}

	if len(c.Pantheons()) < c.PantheonCap() {
		for _, id := range g.cat.PantheonIDs() {
			def := g.cat.Pantheon(id)
			if len(def.Beliefs) == 0 || g.ownsPantheon(c, id) {
				continue
			}
			if c.FoundPantheon(id, def.Beliefs[0]) == nil {
				break
			}
		}
	}

	for _, ps := range c.Pantheons() {
		if ps.Pantheon.UpgradesTo != "" {
			c.UpgradePantheon(ps.Pantheon.ID)
		}
	}

	if c.Religion() != nil {
		return
	}
	for _, id := range g.cat.ReligionIDs() {
		for _, owned := range c.Cities() {
			if !g.m.HasFeature(owned.CenterTile(), world.FeatureHolySite) {
				continue
			}
			if c.FoundReligion(id, owned) == nil {
				return
			}
		}
	}
}

func (g *Game) ownsPantheon(c *civ.Civilization, id string) bool {
	for _, ps := range c.Pantheons() {
		if ps.Pantheon.ID == id {
			return true
		}
	}
	return false
}

// governorSpecs is the appointment rotation for new governors.
var governorSpecs = []civ.GovernorSpec{civ.SpecLogistics, civ.SpecResearch, civ.SpecFaith, civ.SpecDefense}

// adviseGovernors fills open governor slots and seats idle governors in the
// biggest ungoverned cities.
func (g *Game) adviseGovernors(c *civ.Civilization) {
	for len(c.Governors()) < c.GovernorSlots() {
		n := len(c.Governors())
		name := governorNames[n%len(governorNames)]
		if _, err := c.CreateGovernor(name, governorSpecs[n%len(governorSpecs)]); err != nil {
			break
		}
	}

	for _, gov := range c.Governors() {
		if len(gov.Cities()) > 0 {
			continue
		}
		if city := g.biggestUngoverned(c); city != nil {
			c.AssignGovernor(gov, city)
		}
	}
}

// biggestUngoverned returns the most populous owned city without a
// governor, lowest ID on ties, or nil.
func (g *Game) biggestUngoverned(c *civ.Civilization) civ.City {
	var best civ.City
	bestPop := -1
	for _, owned := range c.Cities() {
		if c.CityGovernor(owned) != nil {
			continue
		}
		pop := 0
		if city := g.cities[owned.ID()]; city != nil {
			pop = city.population
		}
		if pop > bestPop {
			best, bestPop = owned, pop
		}
	}
	return best
}
