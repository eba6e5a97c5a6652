// Package sim runs complete games: it owns the planet map, the civilization
// roster, the concrete cities and units behind the engine's collaborator
// interfaces, trade and diplomacy between civilizations, and the round loop
// that drives them all in a fixed order.
package sim

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/corvidae/stellar-age/internal/civ"
	"github.com/corvidae/stellar-age/internal/rules"
	"github.com/corvidae/stellar-age/internal/world"
)

// maxGameEvents bounds the game-wide event ring.
const maxGameEvents = 1000

// WarTerm schedules one war between two civilizations: declared at the
// start of round From, peace at the start of round Until.
type WarTerm struct {
	A     civ.CivID `json:"a"`
	B     civ.CivID `json:"b"`
	From  int       `json:"from"`
	Until int       `json:"until"`
}

// Options configures a new game.
type Options struct {
	// Civs lists civilization definition IDs in seating order. Seat order
	// is turn order and never changes.
	Civs []string

	// Tuning applies to every civilization. Zero value means defaults.
	Tuning civ.Tuning

	// Wars is the scheduled diplomacy script, if any.
	Wars []WarTerm

	// StartSpacing is the minimum hex distance between start positions.
	// Zero picks a spacing from the map radius.
	StartSpacing int
}

// Game is one running match. All mutation happens inside RunRound under the
// write lock; readers snapshot state through the accessor methods.
type Game struct {
	mu sync.RWMutex

	id   string
	cat  *rules.Catalog
	m    *world.Map
	civs []*civ.Civilization

	round      int
	trade      *tradeLedger
	wars       []WarTerm
	cities     map[int]*City
	claimed    map[int]civ.CivID
	frontier   []int
	nextCityID int
	nextUnitID int

	events  []civ.Event
	subs    map[int]chan civ.Event
	nextSub int
}

// NewGame builds a game on a generated map: one civilization per seat, each
// with a starting escort of the first unlocked combat and worker unit.
// Cities are founded later by the civilizations themselves.
func NewGame(cat *rules.Catalog, m *world.Map, opts Options) (*Game, error) {
	if cat == nil {
		return nil, fmt.Errorf("sim: nil catalog")
	}
	if m == nil {
		return nil, fmt.Errorf("sim: nil map")
	}
	if len(opts.Civs) == 0 {
		return nil, fmt.Errorf("sim: no civilizations")
	}
	tuning := opts.Tuning
	if tuning == (civ.Tuning{}) {
		tuning = civ.DefaultTuning()
	}

	g := &Game{
		id:         uuid.NewString(),
		cat:        cat,
		m:          m,
		trade:      &tradeLedger{},
		wars:       opts.Wars,
		cities:     make(map[int]*City),
		claimed:    make(map[int]civ.CivID),
		nextCityID: 1,
		nextUnitID: 1,
		subs:       make(map[int]chan civ.Event),
	}
	g.frontier = g.unclaimedFrontier(opts.StartSpacing, len(opts.Civs))

	for i, defID := range opts.Civs {
		id := civ.CivID(i + 1)
		c, err := civ.New(id, defID, cat, tuning, g.depsFor(id))
		if err != nil {
			return nil, fmt.Errorf("sim: seat %d: %w", i+1, err)
		}
		g.civs = append(g.civs, c)
		g.spawnStartingUnits(c)
	}
	return g, nil
}

// depsFor wires one civilization's collaborators back to the game.
func (g *Game) depsFor(id civ.CivID) civ.Deps {
	return civ.Deps{
		Tiles:   g.m,
		Trade:   g.trade,
		Founder: g.founderFor(id),
		Sink:    g.recordEvent,
	}
}

// founderFor returns the city-founder callback for one civilization. It
// owns site validation: the tile must exist, be land, and be unclaimed.
func (g *Game) founderFor(owner civ.CivID) civ.CityFounder {
	return func(_ civ.CivID, tile int) (civ.City, error) {
		t := g.m.Tile(tile)
		if t == nil {
			return nil, fmt.Errorf("tile %d out of bounds: %w", tile, civ.ErrInvalidTarget)
		}
		if !t.Land() {
			return nil, fmt.Errorf("tile %d is not land: %w", tile, civ.ErrInvalidTarget)
		}
		if holder, taken := g.claimed[tile]; taken {
			return nil, fmt.Errorf("tile %d already claimed by civ %d: %w", tile, holder, civ.ErrInvalidTarget)
		}

		c := g.civByID(owner)
		city := newCity(g.nextCityID, g.nextCityName(), c, g.cat, g.m, tile)
		g.nextCityID++
		g.cities[city.id] = city
		g.claimed[tile] = owner
		return city, nil
	}
}

// spawnStartingUnits fields each seat's opening roster: the first combat
// unit and worker type the civilization can already produce, in catalog
// order.
func (g *Game) spawnStartingUnits(c *civ.Civilization) {
	for _, id := range g.cat.CombatUnitIDs() {
		if c.IsCombatUnitAvailable(id) {
			u := newCombatUnit(g.nextUnitID, c, g.cat, g.cat.CombatUnit(id))
			g.nextUnitID++
			c.AddCombatUnit(u)
			break
		}
	}
	for _, id := range g.cat.WorkerUnitIDs() {
		if c.IsWorkerUnitAvailable(id) {
			u := newWorkerUnit(g.nextUnitID, c, g.cat, g.cat.WorkerUnit(id))
			g.nextUnitID++
			c.AddWorkerUnit(u)
			break
		}
	}
}

func (g *Game) civByID(id civ.CivID) *civ.Civilization {
	for _, c := range g.civs {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// RunRound advances the game one round: scheduled diplomacy, trade route
// refresh, then every civilization's turn in seat order, each followed by
// its advisor. Destroyed units are culled at the end.
func (g *Game) RunRound() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.round++
	g.applyDiplomacy()
	g.trade.rebuild(g.civs)

	for _, c := range g.civs {
		c.BeginTurn(g.round)
		g.advise(c)
	}
	g.cullDestroyed()
	g.logRound()
}

// applyDiplomacy runs the scheduled war script for the current round.
func (g *Game) applyDiplomacy() {
	for _, term := range g.wars {
		a, b := g.civByID(term.A), g.civByID(term.B)
		if a == nil || b == nil {
			continue
		}
		if g.round == term.From {
			a.SetAtWar(term.B, true)
			b.SetAtWar(term.A, true)
			slog.Info("war declared", "round", g.round, "a", term.A, "b", term.B)
		}
		if g.round == term.Until {
			a.SetAtWar(term.B, false)
			b.SetAtWar(term.A, false)
			slog.Info("peace declared", "round", g.round, "a", term.A, "b", term.B)
		}
	}
}

// cullDestroyed removes units with no health left from their rosters.
func (g *Game) cullDestroyed() {
	for _, c := range g.civs {
		for _, u := range c.CombatUnits() {
			if destroyed(u) {
				c.RemoveUnit(u)
				slog.Info("unit destroyed", "round", g.round, "civ", c.ID(), "unit", u.ID(), "type", u.TypeID())
			}
		}
		for _, u := range c.WorkerUnits() {
			if destroyed(u) {
				c.RemoveUnit(u)
				slog.Info("unit destroyed", "round", g.round, "civ", c.ID(), "unit", u.ID(), "type", u.TypeID())
			}
		}
	}
}

func destroyed(u civ.Unit) bool {
	d, ok := u.(interface{ Destroyed() bool })
	return ok && d.Destroyed()
}

func (g *Game) logRound() {
	pop, gold, cities := 0, 0, 0
	for _, c := range g.civs {
		gold += c.Stockpile(rules.YieldGold)
		cities += c.CityCount()
	}
	for _, city := range g.cities {
		pop += city.population
	}
	slog.Info("round report",
		"round", g.round,
		"civs", len(g.civs),
		"cities", cities,
		"population", pop,
		"total_gold", gold,
	)
}

// recordEvent is the sink every civilization emits into. Callers hold the
// game lock during rounds; setup-time emits arrive before the loop starts.
func (g *Game) recordEvent(ev civ.Event) {
	g.events = append(g.events, ev)
	if len(g.events) > maxGameEvents {
		g.events = g.events[len(g.events)-maxGameEvents:]
	}
	for _, ch := range g.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// ID returns the game's unique identifier.
func (g *Game) ID() string {
	return g.id
}

// Round returns the last completed round.
func (g *Game) Round() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.round
}

// Map returns the planet map. Tiles are immutable after generation.
func (g *Game) Map() *world.Map { return g.m }

// Catalog returns the definition tables the game plays from.
func (g *Game) Catalog() *rules.Catalog { return g.cat }

// SetTuning swaps the balance knobs of every civilization between rounds.
func (g *Game) SetTuning(t civ.Tuning) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.civs {
		c.SetTuning(t)
	}
}

// Events returns up to limit of the newest game events, oldest first. A
// non-positive limit returns the whole ring.
func (g *Game) Events(limit int) []civ.Event {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := len(g.events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]civ.Event, n)
	copy(out, g.events[len(g.events)-n:])
	return out
}

// Subscribe registers an event channel. Events that would block are
// dropped; the subscriber owns draining.
func (g *Game) Subscribe(buffer int) (int, <-chan civ.Event) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextSub
	g.nextSub++
	ch := make(chan civ.Event, buffer)
	g.subs[id] = ch
	return id, ch
}

// Unsubscribe removes and closes a subscriber channel.
func (g *Game) Unsubscribe(id int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ch, ok := g.subs[id]; ok {
		delete(g.subs, id)
		close(ch)
	}
}

// nextCityName picks the next unused name from the pool, cycling with a
// numeric suffix once exhausted.
func (g *Game) nextCityName() string {
	n := g.nextCityID - 1
	name := cityNames[n%len(cityNames)]
	if cycle := n / len(cityNames); cycle > 0 {
		name = fmt.Sprintf("%s %d", name, cycle+1)
	}
	return name
}

// sortedCityIDs returns every city ID in ascending order.
func (g *Game) sortedCityIDs() []int {
	ids := make([]int, 0, len(g.cities))
	for id := range g.cities {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Name pools for founded cities and appointed governors.
var cityNames = []string{
	"Meridian", "Anchorpoint", "Solace", "Crucible", "Windward",
	"Highgate", "Lastlight", "Emberfall", "Cinderline", "Farhaven",
	"Kelder", "Novarra", "Palegarden", "Quarry", "Redoubt",
	"Skylance", "Tidewall", "Umbra", "Vantage", "Wanefield",
}

var governorNames = []string{
	"Sable Voss", "Arden Kell", "Mirel Osk", "Tovan Reyes",
	"Ilka Maren", "Bren Halow", "Cass Vier", "Dain Okoro",
	"Esra Vail", "Fenn Adler", "Gale Ruiz", "Hale Winter",
}
