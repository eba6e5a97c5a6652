package civ

// EventKind classifies an emitted event.
type EventKind string

const (
	EventTurnStarted       EventKind = "turn.started"
	EventResearchStarted   EventKind = "research.started"
	EventResearchCompleted EventKind = "research.completed"
	EventCultureStarted    EventKind = "culture.started"
	EventCultureCompleted  EventKind = "culture.completed"
	EventPolicyAdopted     EventKind = "policy.adopted"
	EventGovernmentChanged EventKind = "government.changed"
	EventUnlocksChanged    EventKind = "unlocks.changed"
	EventStockpileChanged  EventKind = "stockpile.changed"
	EventYieldsCollected   EventKind = "yields.collected"
	EventInventoryChanged  EventKind = "inventory.changed"
	EventUnitEquipped      EventKind = "unit.equipped"
	EventUnitUnequipped    EventKind = "unit.unequipped"
	EventPantheonFounded   EventKind = "pantheon.founded"
	EventPantheonUpgraded  EventKind = "pantheon.upgraded"
	EventReligionFounded   EventKind = "religion.founded"
	EventGovernorCreated   EventKind = "governor.created"
	EventGovernorAssigned  EventKind = "governor.assigned"
	EventCityFounded       EventKind = "city.founded"
	EventWarDeclared       EventKind = "war.declared"
	EventPeaceDeclared     EventKind = "peace.declared"
	EventWearinessChanged  EventKind = "weariness.changed"
	EventLowFood           EventKind = "food.low"
	EventFamineStarted     EventKind = "famine.started"
	EventFamineEnded       EventKind = "famine.ended"
)

// Event is one notable state change, kept in a bounded per-civilization ring
// and fanned out to an optional sink.
type Event struct {
	Round   int            `json:"round"`
	Civ     CivID          `json:"civ"`
	Kind    EventKind      `json:"kind"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// maxRecentEvents bounds the per-civilization event ring.
const maxRecentEvents = 256

func (c *Civilization) emit(kind EventKind, msg string, meta map[string]any) {
	ev := Event{
		Round:   c.round,
		Civ:     c.id,
		Kind:    kind,
		Message: msg,
		Meta:    meta,
	}
	c.recent = append(c.recent, ev)
	if len(c.recent) > maxRecentEvents {
		c.recent = c.recent[len(c.recent)-maxRecentEvents:]
	}
	if c.sink != nil {
		c.sink(ev)
	}
}

// RecentEvents returns up to limit of the newest events, oldest first.
// A non-positive limit returns the whole ring.
func (c *Civilization) RecentEvents(limit int) []Event {
	n := len(c.recent)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Event, n)
	copy(out, c.recent[len(c.recent)-n:])
	return out
}
