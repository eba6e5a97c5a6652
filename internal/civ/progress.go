package civ

import (
	"fmt"
	"log/slog"

	"github.com/corvidae/stellar-age/internal/rules"
)

type researchTrack struct {
	def    *rules.TechnologyDef
	points int
}

type cultureTrack struct {
	def    *rules.CultureDef
	points int
}

// Progress is the public view of an in-progress track.
type Progress struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Cost   int    `json:"cost"`
}

// CurrentResearch returns the technology in progress, if any.
func (c *Civilization) CurrentResearch() (Progress, bool) {
	if c.research == nil {
		return Progress{}, false
	}
	t := c.research
	return Progress{ItemID: t.def.ID, Name: t.def.Name, Points: t.points, Cost: t.def.Cost}, true
}

// CurrentCulture returns the culture in progress, if any.
func (c *Civilization) CurrentCulture() (Progress, bool) {
	if c.culture == nil {
		return Progress{}, false
	}
	t := c.culture
	return Progress{ItemID: t.def.ID, Name: t.def.Name, Points: t.points, Cost: t.def.Cost}, true
}

// StartResearch begins researching a technology. The track must be idle, the
// technology unresearched, and its requirements met.
func (c *Civilization) StartResearch(techID string) error {
	def := c.cat.Technology(techID)
	if def == nil {
		return fmt.Errorf("start research %q: %w", techID, ErrInvalidTarget)
	}
	if c.techSet[techID] {
		return fmt.Errorf("start research %q: already researched: %w", techID, ErrPrerequisiteNotMet)
	}
	if c.research != nil {
		return fmt.Errorf("start research %q: %q in progress: %w", techID, c.research.def.ID, ErrPrerequisiteNotMet)
	}
	if !def.Requires.Met(c) {
		return fmt.Errorf("start research %q: %w", techID, ErrPrerequisiteNotMet)
	}
	c.research = &researchTrack{def: def}
	c.emit(EventResearchStarted, fmt.Sprintf("research started: %s", def.Name), map[string]any{
		"tech": def.ID,
		"cost": def.Cost,
	})
	return nil
}

// StartCultureAdoption begins adopting a culture under the same gates as
// StartResearch.
func (c *Civilization) StartCultureAdoption(cultureID string) error {
	def := c.cat.Culture(cultureID)
	if def == nil {
		return fmt.Errorf("start culture %q: %w", cultureID, ErrInvalidTarget)
	}
	if c.cultureSet[cultureID] {
		return fmt.Errorf("start culture %q: already adopted: %w", cultureID, ErrPrerequisiteNotMet)
	}
	if c.culture != nil {
		return fmt.Errorf("start culture %q: %q in progress: %w", cultureID, c.culture.def.ID, ErrPrerequisiteNotMet)
	}
	if !def.Requires.Met(c) {
		return fmt.Errorf("start culture %q: %w", cultureID, ErrPrerequisiteNotMet)
	}
	c.culture = &cultureTrack{def: def}
	c.emit(EventCultureStarted, fmt.Sprintf("culture adoption started: %s", def.Name), map[string]any{
		"culture": def.ID,
		"cost":    def.Cost,
	})
	return nil
}

// advanceResearch feeds one round's science into the track. Points beyond
// the cost are discarded on completion; the track returns to idle.
func (c *Civilization) advanceResearch(points int) {
	if c.research == nil || points <= 0 {
		return
	}
	t := c.research
	t.points += points
	if t.points < t.def.Cost {
		return
	}
	c.research = nil
	c.techOrder = append(c.techOrder, t.def.ID)
	c.techSet[t.def.ID] = true
	c.applyGrants(t.def.Grant, true)
	c.rebuildBonuses()
	c.bumpUnlockEpoch()
	slog.Debug("research completed", "civ", c.id, "tech", t.def.ID, "round", c.round)
	c.emit(EventResearchCompleted, fmt.Sprintf("research completed: %s", t.def.Name), map[string]any{
		"tech": t.def.ID,
	})
}

// advanceCulture feeds one round's culture into the track, mirroring
// advanceResearch.
func (c *Civilization) advanceCulture(points int) {
	if c.culture == nil || points <= 0 {
		return
	}
	t := c.culture
	t.points += points
	if t.points < t.def.Cost {
		return
	}
	c.culture = nil
	c.cultureOrder = append(c.cultureOrder, t.def.ID)
	c.cultureSet[t.def.ID] = true
	c.applyGrants(t.def.Grant, true)
	c.rebuildBonuses()
	c.bumpUnlockEpoch()
	slog.Debug("culture completed", "civ", c.id, "culture", t.def.ID, "round", c.round)
	c.emit(EventCultureCompleted, fmt.Sprintf("culture adopted: %s", t.def.Name), map[string]any{
		"culture": t.def.ID,
	})
}

// applyGrants folds a completed source's grants into the capacity bonuses.
// Only technologies and cultures may flip the pantheon-founding flag.
func (c *Civilization) applyGrants(g rules.Grants, canEnablePantheons bool) {
	c.cityCapBonus += g.CityCap
	c.pantheonCapBonus += g.PantheonCap
	c.governorSlotBonus += g.GovernorSlots
	if g.EnablesPantheons && canEnablePantheons {
		c.pantheonsEnabled = true
	}
}
