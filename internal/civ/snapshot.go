package civ

import (
	"fmt"

	"github.com/corvidae/stellar-age/internal/rules"
)

// Snapshot is the serializable image of a civilization. Cities and units are
// owned by the simulation and captured separately; governor assignments
// reference them by city ID.
type Snapshot struct {
	ID    CivID  `json:"id"`
	Def   string `json:"def"`
	Round int    `json:"round"`

	Stockpiles rules.YieldSet `json:"stockpiles"`

	Techs      []string `json:"techs,omitempty"`
	Cultures   []string `json:"cultures,omitempty"`
	Policies   []string `json:"policies,omitempty"`
	Government string   `json:"government,omitempty"`

	ResearchItem   string `json:"research_item,omitempty"`
	ResearchPoints int    `json:"research_points,omitempty"`
	CultureItem    string `json:"culture_item,omitempty"`
	CulturePoints  int    `json:"culture_points,omitempty"`

	Resources   map[string]int `json:"resources,omitempty"`
	Equipment   map[string]int `json:"equipment,omitempty"`
	Projectiles map[string]int `json:"projectiles,omitempty"`

	Pantheons []PantheonSnapshot `json:"pantheons,omitempty"`
	Religion  string             `json:"religion,omitempty"`

	Governors      []GovernorSnapshot `json:"governors,omitempty"`
	NextGovernorID int                `json:"next_governor_id"`

	Wars         []CivID `json:"wars,omitempty"`
	WarWeariness float64 `json:"war_weariness"`
	Famine       bool    `json:"famine"`
}

// PantheonSnapshot records one founded pantheon and its chosen belief.
type PantheonSnapshot struct {
	Pantheon string `json:"pantheon"`
	Belief   string `json:"belief"`
}

// GovernorSnapshot records one governor and the IDs of the cities held.
type GovernorSnapshot struct {
	ID     int          `json:"id"`
	Name   string       `json:"name"`
	Spec   GovernorSpec `json:"spec"`
	Cities []int        `json:"cities,omitempty"`
}

// Snapshot captures the civilization's state for persistence.
func (c *Civilization) Snapshot() Snapshot {
	snap := Snapshot{
		ID:             c.id,
		Def:            c.def.ID,
		Round:          c.round,
		Stockpiles:     c.stock,
		Techs:          append([]string(nil), c.techOrder...),
		Cultures:       append([]string(nil), c.cultureOrder...),
		Policies:       append([]string(nil), c.policyOrder...),
		Government:     c.GovernmentID(),
		Resources:      c.resources.snapshot(),
		Equipment:      c.equipment.snapshot(),
		Projectiles:    c.projectiles.snapshot(),
		NextGovernorID: c.nextGovernorID,
		Wars:           c.Wars(),
		WarWeariness:   c.warWeariness,
		Famine:         c.famine,
	}
	if c.research != nil {
		snap.ResearchItem = c.research.def.ID
		snap.ResearchPoints = c.research.points
	}
	if c.culture != nil {
		snap.CultureItem = c.culture.def.ID
		snap.CulturePoints = c.culture.points
	}
	for _, p := range c.pantheons {
		snap.Pantheons = append(snap.Pantheons, PantheonSnapshot{
			Pantheon: p.Pantheon.ID,
			Belief:   p.Belief.ID,
		})
	}
	if c.religion != nil {
		snap.Religion = c.religion.ID
	}
	for _, g := range c.governors {
		gs := GovernorSnapshot{ID: g.id, Name: g.name, Spec: g.spec}
		for _, city := range g.cities {
			gs.Cities = append(gs.Cities, city.ID())
		}
		snap.Governors = append(snap.Governors, gs)
	}
	return snap
}

// Restore rebuilds a civilization from a snapshot against the given catalog.
// Derived state is recomputed, not trusted from the snapshot: grants are
// replayed from completed sources and the bonus table rebuilt. Cities, units,
// and governor assignments are reattached by the caller afterwards.
func Restore(snap Snapshot, cat *rules.Catalog, tuning Tuning, deps Deps) (*Civilization, error) {
	c, err := New(snap.ID, snap.Def, cat, tuning, deps)
	if err != nil {
		return nil, err
	}

	c.round = snap.Round
	c.stock = snap.Stockpiles

	for _, id := range snap.Techs {
		def := cat.Technology(id)
		if def == nil {
			return nil, fmt.Errorf("civ: restore: unknown technology %q", id)
		}
		c.techOrder = append(c.techOrder, id)
		c.techSet[id] = true
		c.applyGrants(def.Grant, true)
	}
	for _, id := range snap.Cultures {
		def := cat.Culture(id)
		if def == nil {
			return nil, fmt.Errorf("civ: restore: unknown culture %q", id)
		}
		c.cultureOrder = append(c.cultureOrder, id)
		c.cultureSet[id] = true
		c.applyGrants(def.Grant, true)
	}
	for _, id := range snap.Policies {
		def := cat.Policy(id)
		if def == nil {
			return nil, fmt.Errorf("civ: restore: unknown policy %q", id)
		}
		c.policyOrder = append(c.policyOrder, id)
		c.policySet[id] = true
		c.applyGrants(def.Grant, false)
	}

	if snap.Government != "" {
		c.government = cat.Government(snap.Government)
		if c.government == nil {
			return nil, fmt.Errorf("civ: restore: unknown government %q", snap.Government)
		}
	} else {
		c.government = nil
	}

	if snap.ResearchItem != "" {
		def := cat.Technology(snap.ResearchItem)
		if def == nil {
			return nil, fmt.Errorf("civ: restore: unknown technology in progress %q", snap.ResearchItem)
		}
		c.research = &researchTrack{def: def, points: snap.ResearchPoints}
	}
	if snap.CultureItem != "" {
		def := cat.Culture(snap.CultureItem)
		if def == nil {
			return nil, fmt.Errorf("civ: restore: unknown culture in progress %q", snap.CultureItem)
		}
		c.culture = &cultureTrack{def: def, points: snap.CulturePoints}
	}

	for id, n := range snap.Resources {
		if n < 0 {
			return nil, fmt.Errorf("civ: restore: negative resource count %q", id)
		}
		c.resources[id] = n
	}
	for id, n := range snap.Equipment {
		if n < 0 {
			return nil, fmt.Errorf("civ: restore: negative equipment count %q", id)
		}
		c.equipment[id] = n
	}
	for id, n := range snap.Projectiles {
		if n < 0 {
			return nil, fmt.Errorf("civ: restore: negative projectile count %q", id)
		}
		c.projectiles[id] = n
	}

	for _, ps := range snap.Pantheons {
		def := cat.Pantheon(ps.Pantheon)
		belief := cat.Belief(ps.Belief)
		if def == nil || belief == nil {
			return nil, fmt.Errorf("civ: restore: unknown pantheon %q or belief %q", ps.Pantheon, ps.Belief)
		}
		c.pantheons = append(c.pantheons, PantheonState{Pantheon: def, Belief: belief})
	}
	if snap.Religion != "" {
		c.religion = cat.Religion(snap.Religion)
		if c.religion == nil {
			return nil, fmt.Errorf("civ: restore: unknown religion %q", snap.Religion)
		}
	}

	for _, gs := range snap.Governors {
		c.governors = append(c.governors, &Governor{id: gs.ID, name: gs.Name, spec: gs.Spec})
	}
	c.nextGovernorID = snap.NextGovernorID
	if c.nextGovernorID < 1 {
		c.nextGovernorID = 1
	}

	for _, id := range snap.Wars {
		if id != c.id {
			c.wars[id] = true
		}
	}
	c.warWeariness = snap.WarWeariness
	c.famine = snap.Famine

	c.rebuildBonuses()
	return c, nil
}
