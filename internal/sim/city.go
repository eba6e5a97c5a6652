package sim

import (
	"fmt"
	"sort"

	"github.com/corvidae/stellar-age/internal/civ"
	"github.com/corvidae/stellar-age/internal/rules"
	"github.com/corvidae/stellar-age/internal/world"
)

// Growth pacing. A citizen eats foodPerPop each round; the granary must
// reach growthBase plus growthPerPop per citizen before the city grows.
const (
	foodPerPop   = 2
	growthBase   = 8
	growthPerPop = 4
)

// Civic base output every city produces regardless of worked tiles.
const (
	cityBaseScience = 1
	cityBaseCulture = 1
	cityBasePolicy  = 1
)

// City is a settlement on the planet surface. Its population works the
// center tile plus the best adjacent tiles, and its constructed buildings
// add their yields on top. The owning civilization drives it once per round
// through ProcessTurn and reads the result through Yields.
type City struct {
	id     int
	name   string
	owner  *civ.Civilization
	cat    *rules.Catalog
	m      *world.Map
	center int

	population int
	granary    int // Growth progress; local food surplus feeds it
	worked     []int
	buildings  []string
	buildable  []string
}

func newCity(id int, name string, owner *civ.Civilization, cat *rules.Catalog, m *world.Map, center int) *City {
	c := &City{
		id:         id,
		name:       name,
		owner:      owner,
		cat:        cat,
		m:          m,
		center:     center,
		population: 1,
	}
	c.assignWork()
	return c
}

// ID returns the city's game-scoped identifier.
func (c *City) ID() int { return c.id }

// Name returns the city's display name.
func (c *City) Name() string { return c.name }

// CenterTile returns the tile the city was founded on.
func (c *City) CenterTile() int { return c.center }

// Population returns the current citizen count.
func (c *City) Population() int { return c.population }

// Buildings returns the constructed building IDs in construction order.
func (c *City) Buildings() []string { return append([]string(nil), c.buildings...) }

// WorkedTiles returns the tile IDs worked this round, center first.
func (c *City) WorkedTiles() []int { return append([]int(nil), c.worked...) }

// ProcessTurn steps the city one round: reassign worked tiles, mine
// strategic resources from them, and advance or regress growth from the
// local food balance. Runs before the owner reads Yields.
func (c *City) ProcessTurn() {
	c.assignWork()
	c.mine()
	c.grow()
}

// Yields returns the city's raw per-round output: civic base, worked tiles,
// and building yields. The owner scales it with civilization bonuses.
func (c *City) Yields() rules.YieldSet {
	var out rules.YieldSet
	out[rules.YieldScience] += cityBaseScience
	out[rules.YieldCulture] += cityBaseCulture
	out[rules.YieldPolicy] += cityBasePolicy
	for _, id := range c.worked {
		out.Add(tileYields(c.m.Tile(id)))
	}
	for _, id := range c.buildings {
		if def := c.cat.Building(id); def != nil {
			out.Add(def.Yields)
		}
	}
	return out
}

// FoodConsumption returns the food the population eats per round.
func (c *City) FoodConsumption() int { return c.population * foodPerPop }

// RefreshBuildings recomputes the buildable list from the owner's current
// unlocks. Called by the owner whenever availability changes.
func (c *City) RefreshBuildings() {
	c.buildable = c.owner.AvailableBuildings()
}

// Buildable returns the building IDs the city could start, sorted, with
// already constructed ones filtered out.
func (c *City) Buildable() []string {
	var out []string
	for _, id := range c.buildable {
		if !c.hasBuilding(id) {
			out = append(out, id)
		}
	}
	return out
}

// Build constructs a building: it must be unlocked, not yet present, and
// paid for in gold. A rejected build changes nothing.
func (c *City) Build(id string) error {
	def := c.cat.Building(id)
	if def == nil {
		return fmt.Errorf("build %q: %w", id, civ.ErrInvalidTarget)
	}
	if c.hasBuilding(id) {
		return fmt.Errorf("build %q: already constructed: %w", id, civ.ErrInvalidTarget)
	}
	if !c.owner.IsBuildingAvailable(id) {
		return fmt.Errorf("build %q: %w", id, civ.ErrPrerequisiteNotMet)
	}
	if err := c.owner.Spend(rules.YieldGold, def.GoldCost); err != nil {
		return fmt.Errorf("build %q: %w", id, err)
	}
	c.buildings = append(c.buildings, id)
	return nil
}

func (c *City) hasBuilding(id string) bool {
	for _, b := range c.buildings {
		if b == id {
			return true
		}
	}
	return false
}

// assignWork picks the tiles the population works this round: the center is
// always worked, then one adjacent tile per citizen, best yield first with
// tile ID as the tiebreak.
func (c *City) assignWork() {
	c.worked = c.worked[:0]
	c.worked = append(c.worked, c.center)

	ring := c.m.NeighborIDs(c.center)
	sort.Slice(ring, func(i, j int) bool {
		si, sj := workScore(c.m.Tile(ring[i])), workScore(c.m.Tile(ring[j]))
		if si != sj {
			return si > sj
		}
		return ring[i] < ring[j]
	})
	for _, id := range ring {
		if len(c.worked) > c.population {
			break
		}
		if workable(c.m.Tile(id)) {
			c.worked = append(c.worked, id)
		}
	}
}

// mine credits the owner with strategic resources from worked extraction
// tiles.
func (c *City) mine() {
	for _, id := range c.worked {
		if res := tileResource(c.m.Tile(id)); res != "" {
			c.owner.AddResource(res, 1)
		}
	}
}

// grow advances the granary by the local food balance. A full granary adds
// a citizen; a starved one removes one, never below a single citizen.
func (c *City) grow() {
	surplus := c.Yields().Get(rules.YieldFood) - c.FoodConsumption()
	c.granary += surplus

	threshold := growthBase + growthPerPop*c.population
	if c.granary >= threshold {
		c.granary -= threshold
		c.population++
		return
	}
	if c.granary < 0 {
		c.granary = 0
		if c.population > 1 {
			c.population--
		}
	}
}

// tileYields returns the per-round output of one worked tile.
func tileYields(t *world.Tile) rules.YieldSet {
	var y rules.YieldSet
	if t == nil {
		return y
	}
	switch t.Terrain {
	case world.TerrainLowlands:
		y[rules.YieldFood] += 2
	case world.TerrainHighlands:
		y[rules.YieldGold]++
		y[rules.YieldFood]++
	case world.TerrainSea:
		y[rules.YieldGold] += 2
	case world.TerrainWastes:
		y[rules.YieldGold]++
	}
	if t.HasFeature(world.FeatureFertileSoil) {
		y[rules.YieldFood]++
	}
	if t.HasFeature(world.FeatureOreVein) {
		y[rules.YieldGold]++
	}
	if t.HasFeature(world.FeatureHolySite) {
		y[rules.YieldFaith] += 2
	}
	if t.HasFeature(world.FeatureAncientRuin) {
		y[rules.YieldScience] += 2
	}
	return y
}

// tileResource returns the strategic resource a worked tile produces per
// round, or "".
func tileResource(t *world.Tile) string {
	if t == nil {
		return ""
	}
	if t.HasFeature(world.FeatureOreVein) {
		if t.Terrain == world.TerrainWastes {
			return "isotopes"
		}
		return "ferrite"
	}
	if t.HasFeature(world.FeatureAncientRuin) {
		return "crystal"
	}
	if t.Terrain == world.TerrainIce {
		return "helium-3"
	}
	return ""
}

func workable(t *world.Tile) bool {
	return t != nil && t.Terrain != world.TerrainPeaks
}

func workScore(t *world.Tile) int {
	var total int
	for _, v := range tileYields(t) {
		total += v
	}
	return total
}
