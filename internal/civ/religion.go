package civ

import (
	"fmt"

	"github.com/corvidae/stellar-age/internal/rules"
)

// PantheonState is one owned pantheon and the belief chosen at founding.
type PantheonState struct {
	Pantheon *rules.PantheonDef
	Belief   *rules.BeliefDef
}

// Pantheons returns the owned pantheons in founding order.
func (c *Civilization) Pantheons() []PantheonState {
	return append([]PantheonState(nil), c.pantheons...)
}

// Religion returns the founded religion, or nil.
func (c *Civilization) Religion() *rules.ReligionDef { return c.religion }

// PantheonsEnabled reports whether any completed technology or culture has
// unlocked pantheon founding.
func (c *Civilization) PantheonsEnabled() bool { return c.pantheonsEnabled }

func (c *Civilization) ownedPantheon(id string) int {
	for i, p := range c.pantheons {
		if p.Pantheon.ID == id {
			return i
		}
	}
	return -1
}

// FoundPantheon spends faith to found a pantheon with one belief chosen from
// its allowed list. Founding is gated by the pantheon-founding unlock and by
// pantheon capacity.
func (c *Civilization) FoundPantheon(pantheonID, beliefID string) error {
	def := c.cat.Pantheon(pantheonID)
	if def == nil {
		return fmt.Errorf("found pantheon %q: %w", pantheonID, ErrInvalidTarget)
	}
	belief := c.cat.Belief(beliefID)
	if belief == nil {
		return fmt.Errorf("found pantheon %q: belief %q: %w", pantheonID, beliefID, ErrInvalidTarget)
	}
	if !c.pantheonsEnabled {
		return fmt.Errorf("found pantheon %q: founding not unlocked: %w", pantheonID, ErrPrerequisiteNotMet)
	}
	if c.ownedPantheon(pantheonID) >= 0 {
		return fmt.Errorf("found pantheon %q: already founded: %w", pantheonID, ErrPrerequisiteNotMet)
	}
	if len(c.pantheons) >= c.PantheonCap() {
		return fmt.Errorf("found pantheon %q: %d of %d founded: %w", pantheonID, len(c.pantheons), c.PantheonCap(), ErrCapacityExceeded)
	}
	if !def.AllowsBelief(beliefID) {
		return fmt.Errorf("found pantheon %q: belief %q not selectable: %w", pantheonID, beliefID, ErrPrerequisiteNotMet)
	}
	if err := c.Spend(rules.YieldFaith, def.FaithCost); err != nil {
		return fmt.Errorf("found pantheon %q: %w", pantheonID, err)
	}

	c.pantheons = append(c.pantheons, PantheonState{Pantheon: def, Belief: belief})
	c.rebuildBonuses()
	c.emit(EventPantheonFounded, fmt.Sprintf("pantheon founded: %s (%s)", def.Name, belief.Name), map[string]any{
		"pantheon": def.ID,
		"belief":   belief.ID,
	})
	return nil
}

// UpgradePantheon replaces an owned pantheon with its upgraded form in
// place, spending the upgraded form's faith cost. The chosen belief carries
// over when the upgraded form still allows it; otherwise the upgraded form's
// first belief is selected.
func (c *Civilization) UpgradePantheon(pantheonID string) error {
	idx := c.ownedPantheon(pantheonID)
	if idx < 0 {
		return fmt.Errorf("upgrade pantheon %q: not owned: %w", pantheonID, ErrInvalidTarget)
	}
	current := c.pantheons[idx]
	if !current.Pantheon.Upgradeable() {
		return fmt.Errorf("upgrade pantheon %q: not upgradeable: %w", pantheonID, ErrPrerequisiteNotMet)
	}
	upgraded := c.cat.Pantheon(current.Pantheon.UpgradesTo)
	if upgraded == nil {
		return fmt.Errorf("upgrade pantheon %q: unknown form %q: %w", pantheonID, current.Pantheon.UpgradesTo, ErrInvalidTarget)
	}
	if c.ownedPantheon(upgraded.ID) >= 0 {
		return fmt.Errorf("upgrade pantheon %q: %q already founded: %w", pantheonID, upgraded.ID, ErrPrerequisiteNotMet)
	}
	if err := c.Spend(rules.YieldFaith, upgraded.FaithCost); err != nil {
		return fmt.Errorf("upgrade pantheon %q: %w", pantheonID, err)
	}

	belief := current.Belief
	if belief == nil || !upgraded.AllowsBelief(belief.ID) {
		belief = c.cat.Belief(upgraded.Beliefs[0])
	}
	c.pantheons[idx] = PantheonState{Pantheon: upgraded, Belief: belief}
	c.rebuildBonuses()
	c.emit(EventPantheonUpgraded, fmt.Sprintf("pantheon upgraded: %s", upgraded.Name), map[string]any{
		"pantheon": upgraded.ID,
		"from":     pantheonID,
		"belief":   belief.ID,
	})
	return nil
}

// FoundReligion founds the civilization's one religion at an owned city
// whose center tile carries the holy-site feature. It requires the
// religion's named pantheon and spends faith; a civilization founds at most
// one religion ever.
func (c *Civilization) FoundReligion(religionID string, city City) error {
	def := c.cat.Religion(religionID)
	if def == nil {
		return fmt.Errorf("found religion %q: %w", religionID, ErrInvalidTarget)
	}
	if city == nil {
		return fmt.Errorf("found religion %q: nil city: %w", religionID, ErrInvalidTarget)
	}
	if c.religion != nil {
		return fmt.Errorf("found religion %q: %q already founded: %w", religionID, c.religion.ID, ErrPrerequisiteNotMet)
	}
	if c.ownedPantheon(def.Pantheon) < 0 {
		return fmt.Errorf("found religion %q: pantheon %q not owned: %w", religionID, def.Pantheon, ErrPrerequisiteNotMet)
	}
	if !c.ownsCity(city) {
		return fmt.Errorf("found religion %q: city %d not owned: %w", religionID, city.ID(), ErrInvalidTarget)
	}
	if !c.tiles.HasFeature(city.CenterTile(), FeatureHolySite) {
		return fmt.Errorf("found religion %q: no holy site at city %s: %w", religionID, city.Name(), ErrPrerequisiteNotMet)
	}
	if err := c.Spend(rules.YieldFaith, def.FaithCost); err != nil {
		return fmt.Errorf("found religion %q: %w", religionID, err)
	}

	c.religion = def
	c.rebuildBonuses()
	c.emit(EventReligionFounded, fmt.Sprintf("religion founded: %s at %s", def.Name, city.Name()), map[string]any{
		"religion": def.ID,
		"city":     city.ID(),
	})
	return nil
}
