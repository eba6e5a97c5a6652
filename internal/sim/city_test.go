package sim

import (
	"errors"
	"reflect"
	"testing"

	"github.com/corvidae/stellar-age/internal/civ"
	"github.com/corvidae/stellar-age/internal/rules"
	"github.com/corvidae/stellar-age/internal/world"
)

// standaloneCiv wires a civilization to a map without a surrounding game, so
// city mechanics can be probed in isolation.
func standaloneCiv(t *testing.T, cat *rules.Catalog, m *world.Map, defID string) *civ.Civilization {
	t.Helper()
	c, err := civ.New(1, defID, cat, civ.DefaultTuning(), civ.Deps{
		Tiles: m,
		Trade: &tradeLedger{},
		Founder: func(owner civ.CivID, tile int) (civ.City, error) {
			return nil, civ.ErrInvalidTarget
		},
	})
	if err != nil {
		t.Fatalf("civ.New: %v", err)
	}
	return c
}

// surveyTiles is a radius-1 disk with one tile per terrain and feature mix
// the work scoring distinguishes. IDs follow slice order.
func surveyTiles() []*world.Tile {
	return []*world.Tile{
		{Coord: world.HexCoord{Q: 0, R: 0}, Terrain: world.TerrainLowlands},
		{Coord: world.HexCoord{Q: 1, R: 0}, Terrain: world.TerrainLowlands, Features: map[string]bool{world.FeatureFertileSoil: true}},
		{Coord: world.HexCoord{Q: 0, R: 1}, Terrain: world.TerrainHighlands, Features: map[string]bool{world.FeatureOreVein: true}},
		{Coord: world.HexCoord{Q: -1, R: 1}, Terrain: world.TerrainWastes, Features: map[string]bool{world.FeatureOreVein: true}},
		{Coord: world.HexCoord{Q: 1, R: -1}, Terrain: world.TerrainIce},
		{Coord: world.HexCoord{Q: 0, R: -1}, Terrain: world.TerrainSea},
		{Coord: world.HexCoord{Q: -1, R: 0}, Terrain: world.TerrainPeaks},
	}
}

func TestCityWorkAssignmentAndYields(t *testing.T) {
	cat := testCatalog()
	m := testMap(t, 1, surveyTiles())
	owner := standaloneCiv(t, cat, m, "testers")
	city := newCity(1, "Probe", owner, cat, m, 0)

	cases := []struct {
		population int
		worked     []int
		want       rules.YieldSet
	}{
		// One citizen works the center and the fertile flats.
		{1, []int{0, 1}, ys(0, 5, 1, 1, 0, 1)},
		// Three citizens reach both ore veins.
		{3, []int{0, 1, 2, 3}, ys(4, 6, 1, 1, 0, 1)},
		// Five citizens work everything but the peaks.
		{5, []int{0, 1, 2, 3, 5, 4}, ys(6, 6, 1, 1, 0, 1)},
	}
	for _, tc := range cases {
		city.population = tc.population
		city.assignWork()
		if !reflect.DeepEqual(city.WorkedTiles(), tc.worked) {
			t.Errorf("population %d works %v, want %v", tc.population, city.WorkedTiles(), tc.worked)
		}
		if got := city.Yields(); got != tc.want {
			t.Errorf("population %d yields %v, want %v", tc.population, got, tc.want)
		}
	}
}

func TestCityMinesWorkedTiles(t *testing.T) {
	cat := testCatalog()
	m := testMap(t, 1, surveyTiles())
	owner := standaloneCiv(t, cat, m, "testers")
	city := newCity(1, "Probe", owner, cat, m, 0)
	city.population = 5

	city.ProcessTurn()

	wantStock := map[string]int{"ferrite": 1, "isotopes": 1, "helium-3": 1, "crystal": 0}
	for res, want := range wantStock {
		if got := owner.ResourceCount(res); got != want {
			t.Errorf("ResourceCount(%s) = %d after one turn, want %d", res, got, want)
		}
	}
}

func TestCityGrowth(t *testing.T) {
	cat := testCatalog()
	m := testMap(t, 1, flatland(1))
	owner := standaloneCiv(t, cat, m, "testers")
	city := newCity(1, "Sprout", owner, cat, m, 0)

	// Two food surplus per turn against a threshold of twelve.
	for turn := 1; turn <= 5; turn++ {
		city.ProcessTurn()
		if city.Population() != 1 {
			t.Fatalf("population grew to %d on turn %d", city.Population(), turn)
		}
	}
	city.ProcessTurn()
	if city.Population() != 2 {
		t.Fatalf("Population() = %d after filling the granary, want 2", city.Population())
	}
	if city.granary != 0 {
		t.Errorf("granary = %d after growth, want 0", city.granary)
	}
}

func TestCityShrinksButNeverEmpties(t *testing.T) {
	cat := testCatalog()
	m := testMap(t, 1, surveyTiles())
	owner := standaloneCiv(t, cat, m, "testers")
	city := newCity(1, "Wane", owner, cat, m, 0)

	// Five citizens eat ten against six food worked: the city shrinks.
	city.population = 5
	city.ProcessTurn()
	if city.Population() != 4 {
		t.Fatalf("Population() = %d after a starved turn, want 4", city.Population())
	}
	if city.granary != 0 {
		t.Errorf("granary = %d after a starved turn, want 0", city.granary)
	}

	// A lone citizen on a barren center holds at one forever.
	barren := testMap(t, 1, []*world.Tile{
		{Coord: world.HexCoord{Q: 0, R: 0}, Terrain: world.TerrainWastes},
		{Coord: world.HexCoord{Q: 1, R: 0}, Terrain: world.TerrainPeaks},
		{Coord: world.HexCoord{Q: 0, R: 1}, Terrain: world.TerrainPeaks},
		{Coord: world.HexCoord{Q: -1, R: 1}, Terrain: world.TerrainPeaks},
		{Coord: world.HexCoord{Q: 1, R: -1}, Terrain: world.TerrainPeaks},
		{Coord: world.HexCoord{Q: 0, R: -1}, Terrain: world.TerrainPeaks},
		{Coord: world.HexCoord{Q: -1, R: 0}, Terrain: world.TerrainPeaks},
	})
	lone := newCity(2, "Holdfast", standaloneCiv(t, cat, barren, "testers"), cat, barren, 0)
	for turn := 0; turn < 10; turn++ {
		lone.ProcessTurn()
	}
	if lone.Population() != 1 {
		t.Errorf("Population() = %d on a barren map, want the floor of 1", lone.Population())
	}
}

func TestCityBuild(t *testing.T) {
	cat := testCatalog()
	m := testMap(t, 1, flatland(1))
	owner := standaloneCiv(t, cat, m, "testers")
	city := newCity(1, "Forge", owner, cat, m, 0)
	city.RefreshBuildings()

	if got := city.Buildable(); len(got) != 1 || got[0] != "dome" {
		t.Fatalf("Buildable() = %v, want [dome]", got)
	}

	if err := city.Build("ghost"); !errors.Is(err, civ.ErrInvalidTarget) {
		t.Errorf("Build(ghost) = %v, want ErrInvalidTarget", err)
	}
	if err := city.Build("spire"); !errors.Is(err, civ.ErrPrerequisiteNotMet) {
		t.Errorf("Build(spire) without charting = %v, want ErrPrerequisiteNotMet", err)
	}

	if err := city.Build("dome"); err != nil {
		t.Fatalf("Build(dome): %v", err)
	}
	if got := owner.Stockpile(rules.YieldGold); got != 70 {
		t.Errorf("gold = %d after building, want 70", got)
	}
	if got := city.Buildable(); len(got) != 0 {
		t.Errorf("Buildable() = %v after building, want none", got)
	}
	if err := city.Build("dome"); !errors.Is(err, civ.ErrInvalidTarget) {
		t.Errorf("rebuilding dome = %v, want ErrInvalidTarget", err)
	}

	// Drain the treasury; the next dome must bounce.
	if err := owner.Spend(rules.YieldGold, 70); err != nil {
		t.Fatalf("Spend: %v", err)
	}
	second := newCity(2, "Broke", owner, cat, m, 1)
	second.RefreshBuildings()
	if err := second.Build("dome"); !errors.Is(err, civ.ErrInsufficientResource) {
		t.Errorf("unaffordable build = %v, want ErrInsufficientResource", err)
	}
}
