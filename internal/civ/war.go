package civ

import (
	"fmt"
	"sort"
)

// SetAtWar opens or closes a war against another civilization. Redundant
// transitions and self-war are ignored.
func (c *Civilization) SetAtWar(other CivID, atWar bool) {
	if other == c.id || c.wars[other] == atWar {
		return
	}
	if atWar {
		c.wars[other] = true
		c.emit(EventWarDeclared, fmt.Sprintf("at war with civilization %d", other), map[string]any{
			"other": other,
		})
		return
	}
	delete(c.wars, other)
	c.emit(EventPeaceDeclared, fmt.Sprintf("peace with civilization %d", other), map[string]any{
		"other": other,
	})
}

// AtWarWith reports whether a war with the other civilization is open.
func (c *Civilization) AtWarWith(other CivID) bool { return c.wars[other] }

// WarCount returns the number of simultaneous open wars.
func (c *Civilization) WarCount() int { return len(c.wars) }

// Wars returns the IDs of every civilization this one is at war with,
// sorted.
func (c *Civilization) Wars() []CivID {
	out := make([]CivID, 0, len(c.wars))
	for id := range c.wars {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
