package sim

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/corvidae/stellar-age/internal/civ"
	"github.com/corvidae/stellar-age/internal/rules"
	"github.com/corvidae/stellar-age/internal/world"
)

// GameState is the complete persistable state of a game: the map, the
// round counter, and every civilization with its cities and units.
type GameState struct {
	ID    string     `json:"id"`
	Round int        `json:"round"`
	Map   *world.Map `json:"map"`
	Civs  []CivState `json:"civs"`
}

// CivState bundles one civilization's snapshot with the concrete state the
// engine delegates to the simulation.
type CivState struct {
	Civ         civ.Snapshot `json:"civ"`
	Cities      []CityState  `json:"cities,omitempty"`
	CombatUnits []UnitState  `json:"combat_units,omitempty"`
	WorkerUnits []UnitState  `json:"worker_units,omitempty"`
}

// CityState is one city's persistable state.
type CityState struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Center     int      `json:"center"`
	Population int      `json:"population"`
	Granary    int      `json:"granary"`
	Buildings  []string `json:"buildings,omitempty"`
}

// UnitState is one unit's persistable state. Equipped maps slot names to
// installed equipment IDs.
type UnitState struct {
	ID       int               `json:"id"`
	Type     string            `json:"type"`
	Health   int               `json:"health"`
	Equipped map[string]string `json:"equipped,omitempty"`
}

// Snapshot captures the full game state for persistence.
func (g *Game) Snapshot() GameState {
	g.mu.RLock()
	defer g.mu.RUnlock()

	state := GameState{ID: g.id, Round: g.round, Map: g.m}
	for _, c := range g.civs {
		cs := CivState{Civ: c.Snapshot()}
		for _, owned := range c.Cities() {
			city := g.cities[owned.ID()]
			if city == nil {
				continue
			}
			cs.Cities = append(cs.Cities, CityState{
				ID:         city.id,
				Name:       city.name,
				Center:     city.center,
				Population: city.population,
				Granary:    city.granary,
				Buildings:  append([]string(nil), city.buildings...),
			})
		}
		for _, u := range c.CombatUnits() {
			cs.CombatUnits = append(cs.CombatUnits, unitState(u))
		}
		for _, u := range c.WorkerUnits() {
			cs.WorkerUnits = append(cs.WorkerUnits, unitState(u))
		}
		state.Civs = append(state.Civs, cs)
	}
	return state
}

func unitState(u civ.Unit) UnitState {
	st := UnitState{ID: u.ID(), Type: u.TypeID()}
	if h, ok := u.(interface{ Health() int }); ok {
		st.Health = h.Health()
	}
	for i := 0; i < rules.NumEquipSlots; i++ {
		slot := rules.EquipSlot(i)
		if item := u.Equipped(slot); item != "" {
			if st.Equipped == nil {
				st.Equipped = make(map[string]string)
			}
			st.Equipped[slot.Name()] = item
		}
	}
	return st
}

// RestoreGame rebuilds a game from persisted state. Civilization snapshots
// are replayed through the engine's restore path; cities, units, and
// governor seats are then reattached. Tuning and the war schedule come from
// opts, not the save.
func RestoreGame(cat *rules.Catalog, state GameState, opts Options) (*Game, error) {
	if cat == nil {
		return nil, fmt.Errorf("sim: nil catalog")
	}
	if state.Map == nil {
		return nil, fmt.Errorf("sim: restore: no map")
	}
	if len(state.Civs) == 0 {
		return nil, fmt.Errorf("sim: restore: no civilizations")
	}
	tuning := opts.Tuning
	if tuning == (civ.Tuning{}) {
		tuning = civ.DefaultTuning()
	}

	g := &Game{
		id:         state.ID,
		cat:        cat,
		m:          state.Map,
		round:      state.Round,
		trade:      &tradeLedger{},
		wars:       opts.Wars,
		cities:     make(map[int]*City),
		claimed:    make(map[int]civ.CivID),
		nextCityID: 1,
		nextUnitID: 1,
		subs:       make(map[int]chan civ.Event),
	}
	if g.id == "" {
		g.id = uuid.NewString()
	}

	for _, cs := range state.Civs {
		c, err := civ.Restore(cs.Civ, cat, tuning, g.depsFor(cs.Civ.ID))
		if err != nil {
			return nil, fmt.Errorf("sim: restore civ %d: %w", cs.Civ.ID, err)
		}
		g.civs = append(g.civs, c)

		for _, st := range cs.Cities {
			if g.m.Tile(st.Center) == nil {
				return nil, fmt.Errorf("sim: restore: city %d on unknown tile %d", st.ID, st.Center)
			}
			if holder, taken := g.claimed[st.Center]; taken {
				return nil, fmt.Errorf("sim: restore: tile %d claimed by civ %d and %d", st.Center, holder, c.ID())
			}
			city := &City{
				id:         st.ID,
				name:       st.Name,
				owner:      c,
				cat:        cat,
				m:          g.m,
				center:     st.Center,
				population: st.Population,
				granary:    st.Granary,
				buildings:  append([]string(nil), st.Buildings...),
			}
			if city.population < 1 {
				city.population = 1
			}
			city.assignWork()
			g.cities[city.id] = city
			g.claimed[city.center] = c.ID()
			c.AddCity(city)
			if city.id >= g.nextCityID {
				g.nextCityID = city.id + 1
			}
		}

		for _, st := range cs.CombatUnits {
			def := cat.CombatUnit(st.Type)
			if def == nil {
				return nil, fmt.Errorf("sim: restore: unknown combat unit %q", st.Type)
			}
			u := newCombatUnit(st.ID, c, cat, def)
			u.health = st.Health
			if err := restoreLoadout(u, st.Equipped); err != nil {
				return nil, err
			}
			c.AddCombatUnit(u)
			g.bumpUnitID(st.ID)
		}
		for _, st := range cs.WorkerUnits {
			def := cat.WorkerUnit(st.Type)
			if def == nil {
				return nil, fmt.Errorf("sim: restore: unknown worker unit %q", st.Type)
			}
			u := newWorkerUnit(st.ID, c, cat, def)
			u.health = st.Health
			if err := restoreLoadout(u, st.Equipped); err != nil {
				return nil, err
			}
			c.AddWorkerUnit(u)
			g.bumpUnitID(st.ID)
		}

		if err := g.reseatGovernors(c, cs.Civ.Governors); err != nil {
			return nil, err
		}
	}

	g.frontier = g.unclaimedFrontier(opts.StartSpacing, len(state.Civs))
	return g, nil
}

func (g *Game) bumpUnitID(id int) {
	if id >= g.nextUnitID {
		g.nextUnitID = id + 1
	}
}

// restoreLoadout reinstalls saved equipment directly; the snapshot's
// stockpile already excludes installed items.
func restoreLoadout(u civ.Unit, equipped map[string]string) error {
	for name, item := range equipped {
		slot, ok := slotByName(name)
		if !ok {
			return fmt.Errorf("sim: restore: unknown equip slot %q", name)
		}
		u.SetEquipped(slot, item)
	}
	return nil
}

func slotByName(name string) (rules.EquipSlot, bool) {
	for i, n := range rules.SlotNames {
		if n == name {
			return rules.EquipSlot(i), true
		}
	}
	return 0, false
}

// reseatGovernors reattaches saved governor assignments by city ID.
func (g *Game) reseatGovernors(c *civ.Civilization, snaps []civ.GovernorSnapshot) error {
	for _, gs := range snaps {
		gov := governorByID(c, gs.ID)
		if gov == nil {
			return fmt.Errorf("sim: restore: governor %d missing after replay", gs.ID)
		}
		for _, cityID := range gs.Cities {
			city := g.cities[cityID]
			if city == nil {
				return fmt.Errorf("sim: restore: governor %d holds unknown city %d", gs.ID, cityID)
			}
			if err := c.AssignGovernor(gov, city); err != nil {
				return fmt.Errorf("sim: restore: governor %d: %w", gs.ID, err)
			}
		}
	}
	return nil
}

func governorByID(c *civ.Civilization, id int) *civ.Governor {
	for _, gov := range c.Governors() {
		if gov.ID() == id {
			return gov
		}
	}
	return nil
}

// unclaimedFrontier recomputes the ranked start sites minus claimed tiles.
func (g *Game) unclaimedFrontier(spacing, seats int) []int {
	if spacing <= 0 {
		spacing = g.m.Radius / 3
		if spacing < 4 {
			spacing = 4
		}
	}
	var out []int
	for _, tile := range world.StartPositions(g.m, seats*4, spacing) {
		if _, taken := g.claimed[tile]; !taken {
			out = append(out, tile)
		}
	}
	return out
}
