package sim

import "github.com/corvidae/stellar-age/internal/civ"

// goldPerRoute is each partner's per-round income from one open route.
const goldPerRoute = 2

// tradeRoute is one open route between two civilizations. Partners are
// stored with the lower ID first.
type tradeRoute struct {
	a, b civ.CivID
	gold int
}

// tradeLedger tracks the open trade routes of a game. The game rebuilds it
// every round from the current war and city state, so a declared war severs
// the pair's routes on the next rebuild.
type tradeLedger struct {
	routes []tradeRoute
}

// TradeGold returns the per-round trade income owed to one civilization.
func (l *tradeLedger) TradeGold(id civ.CivID) int {
	total := 0
	for _, r := range l.routes {
		if r.a == id || r.b == id {
			total += r.gold
		}
	}
	return total
}

// RouteCount returns the number of open routes touching one civilization.
func (l *tradeLedger) RouteCount(id civ.CivID) int {
	n := 0
	for _, r := range l.routes {
		if r.a == id || r.b == id {
			n++
		}
	}
	return n
}

// rebuild recomputes the route set: every pair of civilizations at peace
// with at least one city each trades, and route value scales with the
// smaller partner's city count.
func (l *tradeLedger) rebuild(civs []*civ.Civilization) {
	l.routes = l.routes[:0]
	for i := 0; i < len(civs); i++ {
		for j := i + 1; j < len(civs); j++ {
			a, b := civs[i], civs[j]
			if a.CityCount() == 0 || b.CityCount() == 0 {
				continue
			}
			if a.AtWarWith(b.ID()) {
				continue
			}
			cities := a.CityCount()
			if b.CityCount() < cities {
				cities = b.CityCount()
			}
			l.routes = append(l.routes, tradeRoute{
				a:    a.ID(),
				b:    b.ID(),
				gold: goldPerRoute * cities,
			})
		}
	}
}
