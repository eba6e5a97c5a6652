package civ

import (
	"fmt"
	"testing"

	"github.com/corvidae/stellar-age/internal/rules"
)

// testCatalog builds a compact catalog with known numbers so yield math can
// be asserted exactly. Tests mutate it before constructing civilizations.
func testCatalog(t *testing.T) *rules.Catalog {
	t.Helper()
	c := rules.NewCatalog()

	c.Resources["ferrite"] = &rules.ResourceDef{ID: "ferrite", Name: "Ferrite"}
	c.Resources["crystal"] = &rules.ResourceDef{ID: "crystal", Name: "Crystal"}

	c.Technologies["solar-sails"] = &rules.TechnologyDef{ID: "solar-sails", Name: "Solar Sails", Cost: 30}
	c.Technologies["astro-rites"] = &rules.TechnologyDef{
		ID: "astro-rites", Name: "Astro Rites", Cost: 20,
		Grant: rules.Grants{EnablesPantheons: true},
	}
	c.Technologies["charter"] = &rules.TechnologyDef{
		ID: "charter", Name: "Charter", Cost: 25,
		Grant: rules.Grants{CityCap: 1},
	}
	c.Technologies["alloy-forging"] = &rules.TechnologyDef{
		ID: "alloy-forging", Name: "Alloy Forging", Cost: 40,
		Requires: rules.Requirements{Techs: []string{"solar-sails"}},
	}

	c.Cultures["hearth-ways"] = &rules.CultureDef{ID: "hearth-ways", Name: "Hearth Ways", Cost: 20}
	c.Cultures["exodus-songs"] = &rules.CultureDef{
		ID: "exodus-songs", Name: "Exodus Songs", Cost: 25,
		Grant: rules.Grants{PantheonCap: 1},
	}

	c.Policies["tithe"] = &rules.PolicyDef{
		ID: "tithe", Name: "Tithe", PointCost: 4,
		Mods: []rules.Modifier{{Target: rules.Global, Yield: rules.YieldGold, Pct: 0.10}},
	}
	c.Policies["militia-doctrine"] = &rules.PolicyDef{
		ID: "militia-doctrine", Name: "Militia Doctrine", PointCost: 3,
		Requires: rules.Requirements{Cultures: []string{"hearth-ways"}},
	}

	c.Governments["council"] = &rules.GovernmentDef{ID: "council", Name: "Council"}
	c.Governments["syndicate"] = &rules.GovernmentDef{
		ID: "syndicate", Name: "Syndicate",
		Mods: []rules.Modifier{{Target: rules.Global, Yield: rules.YieldGold, Pct: 0.10}},
	}
	c.Governments["imperium"] = &rules.GovernmentDef{
		ID: "imperium", Name: "Imperium",
		Requires: rules.Requirements{MinCities: 2},
		Mods:     []rules.Modifier{{Target: rules.Global, Yield: rules.YieldScience, Pct: 0.20}},
	}

	c.CombatUnits["raider"] = &rules.CombatUnitDef{
		ID: "raider", Name: "Raider",
		Attack: 3, Defense: 2, Movement: 2, MaxHealth: 40, FoodUpkeep: 2,
		Yields: rules.YieldSet{2, 0, 0, 0, 0, 0},
		Slots:  []rules.EquipSlot{rules.SlotWeapon, rules.SlotArmor},
	}
	c.CombatUnits["lancer"] = &rules.CombatUnitDef{
		ID: "lancer", Name: "Lancer",
		Requires: rules.Requirements{Techs: []string{"alloy-forging"}},
		Attack:   8, Defense: 5, Movement: 3, MaxHealth: 55, FoodUpkeep: 3,
		Slots: []rules.EquipSlot{rules.SlotWeapon},
	}
	c.WorkerUnits["digger"] = &rules.WorkerUnitDef{
		ID: "digger", Name: "Digger",
		Yields: rules.YieldSet{3, 0, 0, 0, 0, 0}, FoodUpkeep: 1, MaxHealth: 20,
		Slots: []rules.EquipSlot{rules.SlotWeapon},
	}

	c.Buildings["dome"] = &rules.BuildingDef{ID: "dome", Name: "Dome", GoldCost: 40}
	c.Buildings["spire"] = &rules.BuildingDef{
		ID: "spire", Name: "Spire", GoldCost: 60,
		Requires: rules.Requirements{Techs: []string{"solar-sails"}},
	}

	c.Equipment["blade"] = &rules.EquipmentDef{
		ID: "blade", Name: "Blade", Slot: rules.SlotWeapon,
		GoldCost: 10, ResourceCost: map[string]int{"ferrite": 1},
		Attack: 2,
	}
	c.Equipment["rifle"] = &rules.EquipmentDef{
		ID: "rifle", Name: "Rifle", Slot: rules.SlotWeapon,
		Requires: rules.Requirements{Techs: []string{"alloy-forging"}},
		GoldCost: 20, ResourceCost: map[string]int{"ferrite": 2},
		Units:  []string{"raider"},
		Attack: 4,
	}
	c.Equipment["plate"] = &rules.EquipmentDef{
		ID: "plate", Name: "Plate", Slot: rules.SlotArmor,
		GoldCost: 15, ResourceCost: map[string]int{"ferrite": 1},
		Defense: 3,
	}
	c.Equipment["drill"] = &rules.EquipmentDef{
		ID: "drill", Name: "Drill", Slot: rules.SlotWeapon,
		GoldCost: 12,
		Units:    []string{"digger"},
		Yields:   rules.YieldSet{2, 0, 0, 0, 0, 0},
	}

	c.Projectiles["slug"] = &rules.ProjectileDef{
		ID: "slug", Name: "Slug", Damage: 5,
		GoldCost: 5, ResourceCost: map[string]int{"ferrite": 1},
	}

	c.Beliefs["gold-tithe"] = &rules.BeliefDef{
		ID: "gold-tithe", Name: "Gold Tithe",
		Mods: []rules.Modifier{{Target: rules.Global, Yield: rules.YieldGold, Pct: 0.10}},
	}
	c.Beliefs["grain-song"] = &rules.BeliefDef{
		ID: "grain-song", Name: "Grain Song",
		Mods: []rules.Modifier{{Target: rules.Global, Yield: rules.YieldFood, Pct: 0.10}},
	}
	c.Beliefs["ember-psalm"] = &rules.BeliefDef{
		ID: "ember-psalm", Name: "Ember Psalm",
		Mods: []rules.Modifier{{Target: rules.Global, Yield: rules.YieldFaith, Flat: 2}},
	}
	c.Beliefs["void-hymn"] = &rules.BeliefDef{
		ID: "void-hymn", Name: "Void Hymn",
		Mods: []rules.Modifier{{Target: rules.Global, Yield: rules.YieldScience, Pct: 0.05}},
	}

	c.Pantheons["hearth-circle"] = &rules.PantheonDef{
		ID: "hearth-circle", Name: "Hearth Circle", FaithCost: 25,
		Beliefs:    []string{"gold-tithe", "grain-song"},
		UpgradesTo: "hearth-temple",
	}
	c.Pantheons["hearth-temple"] = &rules.PantheonDef{
		ID: "hearth-temple", Name: "Hearth Temple", FaithCost: 50,
		Beliefs: []string{"gold-tithe", "ember-psalm"},
	}
	c.Pantheons["sky-ring"] = &rules.PantheonDef{
		ID: "sky-ring", Name: "Sky Ring", FaithCost: 30,
		Beliefs: []string{"void-hymn"},
	}

	c.Religions["helix-church"] = &rules.ReligionDef{
		ID: "helix-church", Name: "Helix Church",
		Pantheon: "hearth-circle", FaithCost: 80,
		Beliefs: []string{"ember-psalm"},
	}

	c.Civilizations["testers"] = &rules.CivilizationDef{
		ID: "testers", Name: "Testers", Leader: "Prime",
		BaseCityCap: 1, BasePantheonCap: 1, BaseGovernorSlots: 1,
		GovernorsEnabled:   true,
		StartingStockpiles: rules.YieldSet{100, 20, 0, 0, 100, 10},
		StartingGovernment: "council",
	}
	c.Civilizations["nomads"] = &rules.CivilizationDef{
		ID: "nomads", Name: "Nomads", Leader: "Walker",
		BaseCityCap: 0, BasePantheonCap: 1, BaseGovernorSlots: 0,
		GovernorsEnabled:   false,
		StartingStockpiles: rules.YieldSet{0, 30, 0, 0, 60, 0},
		StartingGovernment: "council",
	}

	if err := c.Validate(); err != nil {
		t.Fatalf("test catalog invalid: %v", err)
	}
	return c
}

type fakeCity struct {
	id    int
	name  string
	tile  int
	yield rules.YieldSet
	food  int

	refreshes int
	trace     *[]string
}

func (f *fakeCity) ID() int         { return f.id }
func (f *fakeCity) Name() string    { return f.name }
func (f *fakeCity) CenterTile() int { return f.tile }

func (f *fakeCity) ProcessTurn() {
	if f.trace != nil {
		*f.trace = append(*f.trace, "city.process")
	}
}

func (f *fakeCity) Yields() rules.YieldSet {
	if f.trace != nil {
		*f.trace = append(*f.trace, "city.yields")
	}
	return f.yield
}

func (f *fakeCity) FoodConsumption() int { return f.food }
func (f *fakeCity) RefreshBuildings()    { f.refreshes++ }

type fakeUnit struct {
	id     int
	typeID string
	maxHP  int
	yield  rules.YieldSet
	upkeep int

	damage   int
	resets   int
	notices  int
	equipped map[rules.EquipSlot]string
	trace    *[]string
}

func (f *fakeUnit) ID() int         { return f.id }
func (f *fakeUnit) TypeID() string  { return f.typeID }
func (f *fakeUnit) MaxHealth() int  { return f.maxHP }
func (f *fakeUnit) FoodUpkeep() int { return f.upkeep }
func (f *fakeUnit) BonusesChanged() { f.notices++ }
func (f *fakeUnit) ApplyDamage(n int) {
	f.damage += n
}

func (f *fakeUnit) ResetTurn() {
	f.resets++
	if f.trace != nil {
		*f.trace = append(*f.trace, "unit.reset")
	}
}

func (f *fakeUnit) Equipped(slot rules.EquipSlot) string { return f.equipped[slot] }

func (f *fakeUnit) SetEquipped(slot rules.EquipSlot, id string) {
	if f.equipped == nil {
		f.equipped = make(map[rules.EquipSlot]string)
	}
	if id == "" {
		delete(f.equipped, slot)
		return
	}
	f.equipped[slot] = id
}

func (f *fakeUnit) BaseYields() rules.YieldSet { return f.yield }

type fakeTiles struct {
	holy map[int]bool
}

func (f *fakeTiles) HasFeature(tile int, feature string) bool {
	return feature == FeatureHolySite && f.holy[tile]
}

type fakeTrade struct {
	gold map[CivID]int
}

func (f *fakeTrade) TradeGold(id CivID) int { return f.gold[id] }

// fixture bundles a catalog, fakes, and the events collected by the sink.
type fixture struct {
	cat        *rules.Catalog
	tiles      *fakeTiles
	trade      *fakeTrade
	events     []Event
	nextCityID int
}

func newFixture(t *testing.T) *fixture {
	return &fixture{
		cat:   testCatalog(t),
		tiles: &fakeTiles{holy: make(map[int]bool)},
		trade: &fakeTrade{gold: make(map[CivID]int)},
	}
}

func (f *fixture) founder(owner CivID, tile int) (City, error) {
	if tile < 0 {
		return nil, fmt.Errorf("tile %d out of bounds: %w", tile, ErrInvalidTarget)
	}
	f.nextCityID++
	return &fakeCity{id: f.nextCityID, name: fmt.Sprintf("city-%d", f.nextCityID), tile: tile}, nil
}

func (f *fixture) deps() Deps {
	return Deps{
		Tiles:   f.tiles,
		Trade:   f.trade,
		Founder: f.founder,
		Sink:    func(ev Event) { f.events = append(f.events, ev) },
	}
}

func (f *fixture) newCiv(t *testing.T, defID string) *Civilization {
	t.Helper()
	c, err := New(1, defID, f.cat, DefaultTuning(), f.deps())
	if err != nil {
		t.Fatalf("New(%q) failed: %v", defID, err)
	}
	return c
}

func (f *fixture) sawEvent(kind EventKind) bool {
	for _, ev := range f.events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

// research drives a technology to completion through the track.
func research(t *testing.T, c *Civilization, techID string) {
	t.Helper()
	if err := c.StartResearch(techID); err != nil {
		t.Fatalf("StartResearch(%q) failed: %v", techID, err)
	}
	c.advanceResearch(c.cat.Technology(techID).Cost)
	if !c.HasTech(techID) {
		t.Fatalf("technology %q did not complete", techID)
	}
}

// adoptCulture drives a culture to completion through the track.
func adoptCulture(t *testing.T, c *Civilization, cultureID string) {
	t.Helper()
	if err := c.StartCultureAdoption(cultureID); err != nil {
		t.Fatalf("StartCultureAdoption(%q) failed: %v", cultureID, err)
	}
	c.advanceCulture(c.cat.Culture(cultureID).Cost)
	if !c.HasCulture(cultureID) {
		t.Fatalf("culture %q did not complete", cultureID)
	}
}

func TestNewRejectsBadArguments(t *testing.T) {
	f := newFixture(t)

	if _, err := New(1, "testers", nil, DefaultTuning(), f.deps()); err == nil {
		t.Error("New() accepted a nil catalog")
	}
	if _, err := New(1, "no-such", f.cat, DefaultTuning(), f.deps()); err == nil {
		t.Error("New() accepted an unknown civilization")
	}

	deps := f.deps()
	deps.Tiles = nil
	if _, err := New(1, "testers", f.cat, DefaultTuning(), deps); err == nil {
		t.Error("New() accepted nil tile features")
	}

	deps = f.deps()
	deps.Trade = nil
	if _, err := New(1, "testers", f.cat, DefaultTuning(), deps); err == nil {
		t.Error("New() accepted nil trade routes")
	}

	deps = f.deps()
	deps.Founder = nil
	if _, err := New(1, "testers", f.cat, DefaultTuning(), deps); err == nil {
		t.Error("New() accepted a nil founder")
	}
}

func TestNewStartingState(t *testing.T) {
	f := newFixture(t)
	c := f.newCiv(t, "testers")

	if got := c.Stockpile(rules.YieldGold); got != 100 {
		t.Errorf("starting gold = %d, want 100", got)
	}
	if got := c.Stockpile(rules.YieldFaith); got != 100 {
		t.Errorf("starting faith = %d, want 100", got)
	}
	if c.CityCap() != 1 || c.PantheonCap() != 1 || c.GovernorSlots() != 1 {
		t.Errorf("derived caps = %d/%d/%d, want 1/1/1", c.CityCap(), c.PantheonCap(), c.GovernorSlots())
	}
	if c.GovernmentID() != "council" {
		t.Errorf("starting government = %q, want council", c.GovernmentID())
	}
	if c.PantheonsEnabled() {
		t.Error("pantheons should start locked")
	}
	if _, busy := c.CurrentResearch(); busy {
		t.Error("research track should start idle")
	}
}

func TestEventRingIsBounded(t *testing.T) {
	f := newFixture(t)
	c := f.newCiv(t, "testers")

	for i := 0; i < maxRecentEvents+50; i++ {
		c.Credit(rules.YieldGold, 1)
	}

	all := c.RecentEvents(0)
	if len(all) != maxRecentEvents {
		t.Fatalf("ring holds %d events, want %d", len(all), maxRecentEvents)
	}
	if got := len(c.RecentEvents(10)); got != 10 {
		t.Errorf("RecentEvents(10) returned %d events", got)
	}
	if len(f.events) != maxRecentEvents+50 {
		t.Errorf("sink saw %d events, want %d", len(f.events), maxRecentEvents+50)
	}
}

func TestSpendRejectsUncovered(t *testing.T) {
	f := newFixture(t)
	c := f.newCiv(t, "testers")

	if err := c.Spend(rules.YieldGold, 101); err == nil {
		t.Fatal("Spend() over stockpile succeeded")
	}
	if got := c.Stockpile(rules.YieldGold); got != 100 {
		t.Errorf("rejected spend changed stockpile to %d", got)
	}
	if err := c.Spend(rules.YieldGold, 100); err != nil {
		t.Fatalf("Spend() at exact stockpile failed: %v", err)
	}
	if got := c.Stockpile(rules.YieldGold); got != 0 {
		t.Errorf("gold = %d after spending all, want 0", got)
	}
}
