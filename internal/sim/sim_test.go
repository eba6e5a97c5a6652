package sim

import (
	"encoding/json"
	"testing"

	"github.com/corvidae/stellar-age/internal/rules"
	"github.com/corvidae/stellar-age/internal/world"
)

// The harness tests run against a small catalog with arithmetic chosen for
// exact assertions, on hand-built maps where tile placement is controlled.

func ys(gold, food, science, culture, faith, policy int) rules.YieldSet {
	return rules.YieldSet{gold, food, science, culture, faith, policy}
}

func testCatalog() *rules.Catalog {
	cat := rules.NewCatalog()

	cat.Technologies["charting"] = &rules.TechnologyDef{ID: "charting", Name: "Charting", Cost: 10}
	cat.Technologies["rites"] = &rules.TechnologyDef{
		ID: "rites", Name: "Rites", Cost: 15,
		Grant: rules.Grants{EnablesPantheons: true},
	}
	cat.Technologies["alloys"] = &rules.TechnologyDef{
		ID: "alloys", Name: "Alloys", Cost: 25,
		Requires: rules.Requirements{Techs: []string{"charting"}},
	}

	cat.Cultures["ways"] = &rules.CultureDef{ID: "ways", Name: "Ways", Cost: 12}

	cat.Policies["tithe"] = &rules.PolicyDef{
		ID: "tithe", Name: "Tithe", PointCost: 2,
		Mods: []rules.Modifier{{Target: rules.Global, Yield: rules.YieldGold, Pct: 0.10}},
	}
	cat.Policies["doctrine"] = &rules.PolicyDef{
		ID: "doctrine", Name: "Doctrine", PointCost: 3,
		Combat: []rules.CombatModifier{{Target: rules.CombatUnitTarget("guard"), Stat: rules.StatDefense, Flat: 1}},
	}

	cat.Governments["council"] = &rules.GovernmentDef{
		ID: "council", Name: "Council",
		Mods: []rules.Modifier{{Target: rules.Global, Yield: rules.YieldScience, Pct: 0.05}},
	}
	cat.Governments["league"] = &rules.GovernmentDef{
		ID: "league", Name: "League",
		Requires: rules.Requirements{MinCities: 2},
		Mods: []rules.Modifier{
			{Target: rules.Global, Yield: rules.YieldGold, Pct: 0.10},
			{Target: rules.Global, Yield: rules.YieldScience, Pct: 0.05},
		},
	}

	cat.CombatUnits["guard"] = &rules.CombatUnitDef{
		ID: "guard", Name: "Guard",
		Attack: 3, Defense: 2, Movement: 2, MaxHealth: 20, FoodUpkeep: 1,
		Slots: []rules.EquipSlot{rules.SlotWeapon},
	}
	cat.WorkerUnits["digger"] = &rules.WorkerUnitDef{
		ID: "digger", Name: "Digger",
		Yields: ys(2, 0, 0, 0, 0, 0), FoodUpkeep: 1, MaxHealth: 10,
		Slots: []rules.EquipSlot{rules.SlotWeapon},
	}

	cat.Buildings["dome"] = &rules.BuildingDef{
		ID: "dome", Name: "Dome", GoldCost: 30,
		Yields: ys(0, 2, 0, 0, 0, 0),
	}
	cat.Buildings["spire"] = &rules.BuildingDef{
		ID: "spire", Name: "Spire", GoldCost: 40,
		Requires: rules.Requirements{Techs: []string{"charting"}},
		Yields:   ys(0, 0, 2, 0, 0, 0),
	}

	cat.Equipment["blade"] = &rules.EquipmentDef{
		ID: "blade", Name: "Blade", Slot: rules.SlotWeapon,
		GoldCost: 10, ResourceCost: map[string]int{"ferrite": 1},
		Attack: 2,
	}
	cat.Equipment["drill"] = &rules.EquipmentDef{
		ID: "drill", Name: "Drill", Slot: rules.SlotWeapon,
		GoldCost: 12, Units: []string{"digger"},
		Yields: ys(2, 0, 0, 0, 0, 0),
	}

	cat.Projectiles["slug"] = &rules.ProjectileDef{
		ID: "slug", Name: "Slug", Damage: 5, GoldCost: 5,
	}

	for _, id := range []string{"ferrite", "isotopes", "crystal", "helium-3"} {
		cat.Resources[id] = &rules.ResourceDef{ID: id, Name: id}
	}

	cat.Beliefs["gold-tithe"] = &rules.BeliefDef{
		ID: "gold-tithe", Name: "Gold Tithe",
		Mods: []rules.Modifier{{Target: rules.Global, Yield: rules.YieldGold, Pct: 0.10}},
	}
	cat.Beliefs["ember"] = &rules.BeliefDef{
		ID: "ember", Name: "Ember",
		Mods: []rules.Modifier{{Target: rules.Global, Yield: rules.YieldFaith, Flat: 2}},
	}
	cat.Pantheons["circle"] = &rules.PantheonDef{
		ID: "circle", Name: "Circle", FaithCost: 25,
		Beliefs: []string{"gold-tithe"}, UpgradesTo: "temple",
	}
	cat.Pantheons["temple"] = &rules.PantheonDef{
		ID: "temple", Name: "Temple", FaithCost: 50,
		Beliefs: []string{"gold-tithe", "ember"},
	}
	cat.Religions["helix"] = &rules.ReligionDef{
		ID: "helix", Name: "Helix", Pantheon: "circle", FaithCost: 60,
		Beliefs: []string{"ember"},
	}

	cat.Civilizations["testers"] = &rules.CivilizationDef{
		ID: "testers", Name: "The Testers", Leader: "Prime Unit",
		BaseCityCap: 2, BasePantheonCap: 1, BaseGovernorSlots: 1,
		GovernorsEnabled:   true,
		StartingStockpiles: ys(100, 20, 0, 0, 0, 0),
		StartingGovernment: "council",
	}
	cat.Civilizations["nomads"] = &rules.CivilizationDef{
		ID: "nomads", Name: "The Nomads", Leader: "Walker",
		BaseCityCap: 0, BasePantheonCap: 0, BaseGovernorSlots: 0,
		StartingStockpiles: ys(0, 5, 0, 0, 0, 0),
		StartingGovernment: "council",
	}
	return cat
}

// flatland returns a hexagonal disk of lowlands tiles.
func flatland(radius int) []*world.Tile {
	var tiles []*world.Tile
	for q := -radius; q <= radius; q++ {
		lo, hi := -radius, radius
		if -q-radius > lo {
			lo = -q - radius
		}
		if -q+radius < hi {
			hi = -q + radius
		}
		for r := lo; r <= hi; r++ {
			tiles = append(tiles, &world.Tile{
				Coord:   world.HexCoord{Q: q, R: r},
				Terrain: world.TerrainLowlands,
			})
		}
	}
	return tiles
}

// testMap assembles tiles into a decoded map with the coordinate index
// built. Tile IDs are assigned by slice position.
func testMap(t *testing.T, radius int, tiles []*world.Tile) *world.Map {
	t.Helper()
	for i, tile := range tiles {
		tile.ID = i
	}
	data, err := json.Marshal(&world.Map{Radius: radius, Seed: 1, Tiles: tiles})
	if err != nil {
		t.Fatalf("marshal map: %v", err)
	}
	m, err := world.DecodeMap(data)
	if err != nil {
		t.Fatalf("decode map: %v", err)
	}
	return m
}

// tileAt returns the map tile at axial (q, r).
func tileAt(t *testing.T, m *world.Map, q, r int) *world.Tile {
	t.Helper()
	tile := m.At(world.HexCoord{Q: q, R: r})
	if tile == nil {
		t.Fatalf("no tile at (%d, %d)", q, r)
	}
	return tile
}
