package sim

import (
	"github.com/corvidae/stellar-age/internal/civ"
	"github.com/corvidae/stellar-age/internal/rules"
)

// Read models for the observation API and the inspect command. Assembled
// under the game lock and marshalled as-is.

// GameStatus is the top-level game summary.
type GameStatus struct {
	ID    string       `json:"id"`
	Round int          `json:"round"`
	Tiles int          `json:"tiles"`
	Civs  []CivSummary `json:"civs"`
}

// CivSummary is one civilization's headline state.
type CivSummary struct {
	ID          civ.CivID      `json:"id"`
	Def         string         `json:"def"`
	Name        string         `json:"name"`
	Leader      string         `json:"leader,omitempty"`
	Government  string         `json:"government,omitempty"`
	Cities      int            `json:"cities"`
	CombatUnits int            `json:"combat_units"`
	WorkerUnits int            `json:"worker_units"`
	Stockpiles  map[string]int `json:"stockpiles"`
	Researching string         `json:"researching,omitempty"`
	Adopting    string         `json:"adopting,omitempty"`
	Religion    string         `json:"religion,omitempty"`
	TradeGold   int            `json:"trade_gold"`
	AtWar       []civ.CivID    `json:"at_war,omitempty"`
	Weariness   float64        `json:"weariness"`
	Famine      bool           `json:"famine"`
}

// CivDetail is the full per-civilization view.
type CivDetail struct {
	CivSummary

	Techs       []string       `json:"techs,omitempty"`
	Cultures    []string       `json:"cultures,omitempty"`
	Policies    []string       `json:"policies,omitempty"`
	Research    *ProgressView  `json:"research,omitempty"`
	Culture     *ProgressView  `json:"culture,omitempty"`
	Caps        CapsView       `json:"caps"`
	Resources   map[string]int `json:"resources,omitempty"`
	Equipment   map[string]int `json:"equipment,omitempty"`
	Projectiles map[string]int `json:"projectiles,omitempty"`
	Pantheons   []PantheonView `json:"pantheons,omitempty"`
	Governors   []GovernorView `json:"governors,omitempty"`
	CityList    []CityView     `json:"city_list,omitempty"`
	UnitList    []UnitView     `json:"unit_list,omitempty"`
}

// ProgressView is a progression track in flight.
type ProgressView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Cost   int    `json:"cost"`
}

// CapsView bundles the derived capacities.
type CapsView struct {
	Cities        int `json:"cities"`
	Pantheons     int `json:"pantheons"`
	GovernorSlots int `json:"governor_slots"`
}

// PantheonView is one founded pantheon and its chosen belief.
type PantheonView struct {
	Pantheon string `json:"pantheon"`
	Belief   string `json:"belief"`
}

// GovernorView is one appointed governor and the cities they hold.
type GovernorView struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Spec   string `json:"spec"`
	Cities []int  `json:"cities,omitempty"`
}

// CityView is one city's headline state.
type CityView struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Center     int      `json:"center"`
	Population int      `json:"population"`
	Buildings  []string `json:"buildings,omitempty"`
	Governor   string   `json:"governor,omitempty"`
}

// UnitView is one unit's headline state.
type UnitView struct {
	ID       int               `json:"id"`
	Type     string            `json:"type"`
	Kind     string            `json:"kind"`
	Health   int               `json:"health"`
	Max      int               `json:"max_health"`
	Attack   int               `json:"attack,omitempty"`
	Defense  int               `json:"defense,omitempty"`
	Movement int               `json:"movement,omitempty"`
	Equipped map[string]string `json:"equipped,omitempty"`
}

// Status assembles the top-level summary.
func (g *Game) Status() GameStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st := GameStatus{ID: g.id, Round: g.round, Tiles: g.m.TileCount()}
	for _, c := range g.civs {
		st.Civs = append(st.Civs, g.civSummary(c))
	}
	return st
}

// CivSummaries assembles the headline view of every civilization in seat
// order.
func (g *Game) CivSummaries() []CivSummary {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]CivSummary, 0, len(g.civs))
	for _, c := range g.civs {
		out = append(out, g.civSummary(c))
	}
	return out
}

// CivDetail assembles the full view of one civilization. It takes the
// write lock: unit views may fill stale stat caches.
func (g *Game) CivDetail(id civ.CivID) (CivDetail, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.civByID(id)
	if c == nil {
		return CivDetail{}, false
	}
	d := CivDetail{
		CivSummary: g.civSummary(c),
		Techs:      c.ResearchedTechs(),
		Cultures:   c.AdoptedCultures(),
		Policies:   c.AdoptedPolicies(),
		Caps: CapsView{
			Cities:        c.CityCap(),
			Pantheons:     c.PantheonCap(),
			GovernorSlots: c.GovernorSlots(),
		},
		Resources:   c.Resources(),
		Equipment:   c.EquipmentStock(),
		Projectiles: c.Projectiles(),
	}
	if p, ok := c.CurrentResearch(); ok {
		d.Research = &ProgressView{ID: p.ItemID, Name: p.Name, Points: p.Points, Cost: p.Cost}
	}
	if p, ok := c.CurrentCulture(); ok {
		d.Culture = &ProgressView{ID: p.ItemID, Name: p.Name, Points: p.Points, Cost: p.Cost}
	}
	for _, ps := range c.Pantheons() {
		d.Pantheons = append(d.Pantheons, PantheonView{Pantheon: ps.Pantheon.ID, Belief: ps.Belief.ID})
	}
	for _, gov := range c.Governors() {
		gv := GovernorView{ID: gov.ID(), Name: gov.Name(), Spec: gov.Spec().Name()}
		for _, held := range gov.Cities() {
			gv.Cities = append(gv.Cities, held.ID())
		}
		d.Governors = append(d.Governors, gv)
	}
	for _, owned := range c.Cities() {
		cv := CityView{ID: owned.ID(), Name: owned.Name(), Center: owned.CenterTile()}
		if city := g.cities[owned.ID()]; city != nil {
			cv.Population = city.population
			cv.Buildings = append([]string(nil), city.buildings...)
		}
		if gov := c.CityGovernor(owned); gov != nil {
			cv.Governor = gov.Name()
		}
		d.CityList = append(d.CityList, cv)
	}
	for _, u := range c.CombatUnits() {
		d.UnitList = append(d.UnitList, unitView(u, "combat"))
	}
	for _, u := range c.WorkerUnits() {
		d.UnitList = append(d.UnitList, unitView(u, "worker"))
	}
	return d, true
}

func (g *Game) civSummary(c *civ.Civilization) CivSummary {
	s := CivSummary{
		ID:          c.ID(),
		Def:         c.Def().ID,
		Name:        c.Def().Name,
		Leader:      c.Def().Leader,
		Government:  c.GovernmentID(),
		Cities:      c.CityCount(),
		CombatUnits: len(c.CombatUnits()),
		WorkerUnits: len(c.WorkerUnits()),
		Stockpiles:  yieldMap(c.Stockpiles()),
		TradeGold:   g.trade.TradeGold(c.ID()),
		AtWar:       c.Wars(),
		Weariness:   c.WarWeariness(),
		Famine:      c.InFamine(),
	}
	if p, ok := c.CurrentResearch(); ok {
		s.Researching = p.ItemID
	}
	if p, ok := c.CurrentCulture(); ok {
		s.Adopting = p.ItemID
	}
	if r := c.Religion(); r != nil {
		s.Religion = r.ID
	}
	return s
}

func unitView(u civ.Unit, kind string) UnitView {
	v := UnitView{ID: u.ID(), Type: u.TypeID(), Kind: kind, Max: u.MaxHealth()}
	if h, ok := u.(interface{ Health() int }); ok {
		v.Health = h.Health()
	}
	if cu, ok := u.(*CombatUnit); ok {
		v.Attack = cu.Attack()
		v.Defense = cu.Defense()
		v.Movement = cu.Movement()
	}
	for i := 0; i < rules.NumEquipSlots; i++ {
		slot := rules.EquipSlot(i)
		if item := u.Equipped(slot); item != "" {
			if v.Equipped == nil {
				v.Equipped = make(map[string]string)
			}
			v.Equipped[slot.Name()] = item
		}
	}
	return v
}

// yieldMap converts a yield set to a name-keyed map for marshalling.
func yieldMap(ys rules.YieldSet) map[string]int {
	out := make(map[string]int, rules.NumYields)
	for _, k := range rules.AllYields() {
		out[k.Name()] = ys.Get(k)
	}
	return out
}
