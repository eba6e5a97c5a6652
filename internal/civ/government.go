package civ

import (
	"fmt"

	"github.com/corvidae/stellar-age/internal/rules"
)

// AdoptPolicy spends policy points to adopt a policy immediately. The policy
// must be unadopted and its requirements met; the full point cost must be
// covered.
func (c *Civilization) AdoptPolicy(policyID string) error {
	def := c.cat.Policy(policyID)
	if def == nil {
		return fmt.Errorf("adopt policy %q: %w", policyID, ErrInvalidTarget)
	}
	if c.policySet[policyID] {
		return fmt.Errorf("adopt policy %q: already adopted: %w", policyID, ErrPrerequisiteNotMet)
	}
	if !def.Requires.Met(c) {
		return fmt.Errorf("adopt policy %q: %w", policyID, ErrPrerequisiteNotMet)
	}
	if err := c.Spend(rules.YieldPolicy, def.PointCost); err != nil {
		return fmt.Errorf("adopt policy %q: %w", policyID, err)
	}

	c.policyOrder = append(c.policyOrder, def.ID)
	c.policySet[def.ID] = true
	c.applyGrants(def.Grant, false)
	c.rebuildBonuses()
	c.bumpUnlockEpoch()
	c.emit(EventPolicyAdopted, fmt.Sprintf("policy adopted: %s", def.Name), map[string]any{
		"policy": def.ID,
		"cost":   def.PointCost,
	})
	return nil
}

// ChangeGovernment swaps the active government. The old government's
// modifier contribution is withdrawn and the new one's applied; nothing else
// accumulates.
func (c *Civilization) ChangeGovernment(governmentID string) error {
	def := c.cat.Government(governmentID)
	if def == nil {
		return fmt.Errorf("change government %q: %w", governmentID, ErrInvalidTarget)
	}
	if c.government != nil && c.government.ID == governmentID {
		return fmt.Errorf("change government %q: already active: %w", governmentID, ErrPrerequisiteNotMet)
	}
	if !def.Requires.Met(c) {
		return fmt.Errorf("change government %q: %w", governmentID, ErrPrerequisiteNotMet)
	}

	previous := ""
	if c.government != nil {
		previous = c.government.ID
	}
	c.government = def
	c.rebuildBonuses()
	c.bumpUnlockEpoch()
	c.emit(EventGovernmentChanged, fmt.Sprintf("government changed: %s", def.Name), map[string]any{
		"government": def.ID,
		"previous":   previous,
	})
	return nil
}
