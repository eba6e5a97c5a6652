package civ

import "fmt"

// GovernorSpec is a governor's specialization.
type GovernorSpec uint8

const (
	SpecLogistics GovernorSpec = iota
	SpecResearch
	SpecFaith
	SpecDefense
)

var specNames = [...]string{"logistics", "research", "faith", "defense"}

// Name returns the specialization's display name.
func (s GovernorSpec) Name() string {
	if int(s) < len(specNames) {
		return specNames[s]
	}
	return "unknown"
}

// Governor is an appointed official who can hold any number of owned cities.
// A city is held by at most one governor.
type Governor struct {
	id     int
	name   string
	spec   GovernorSpec
	cities []City
}

func (g *Governor) ID() int            { return g.id }
func (g *Governor) Name() string       { return g.name }
func (g *Governor) Spec() GovernorSpec { return g.spec }

// Cities returns the cities this governor holds.
func (g *Governor) Cities() []City {
	return append([]City(nil), g.cities...)
}

func (g *Governor) holds(city City) bool {
	for _, held := range g.cities {
		if held == city {
			return true
		}
	}
	return false
}

func (g *Governor) release(city City) {
	for i, held := range g.cities {
		if held == city {
			g.cities = append(g.cities[:i], g.cities[i+1:]...)
			return
		}
	}
}

// Governors returns the appointed governors in creation order.
func (c *Civilization) Governors() []*Governor {
	return append([]*Governor(nil), c.governors...)
}

// CreateGovernor appoints a governor. The governor feature must be enabled
// for this civilization and a slot free.
func (c *Civilization) CreateGovernor(name string, spec GovernorSpec) (*Governor, error) {
	if !c.def.GovernorsEnabled {
		return nil, fmt.Errorf("create governor: feature disabled: %w", ErrPrerequisiteNotMet)
	}
	if len(c.governors) >= c.GovernorSlots() {
		return nil, fmt.Errorf("create governor: %d of %d slots used: %w", len(c.governors), c.GovernorSlots(), ErrCapacityExceeded)
	}

	g := &Governor{id: c.nextGovernorID, name: name, spec: spec}
	c.nextGovernorID++
	c.governors = append(c.governors, g)
	c.emit(EventGovernorCreated, fmt.Sprintf("governor appointed: %s (%s)", name, spec.Name()), map[string]any{
		"governor": g.id,
		"spec":     spec.Name(),
	})
	return g, nil
}

// AssignGovernor gives a governor an owned city. If another governor holds
// the city it is released first, so a city is never held twice.
func (c *Civilization) AssignGovernor(g *Governor, city City) error {
	if g == nil || city == nil {
		return fmt.Errorf("assign governor: %w", ErrInvalidTarget)
	}
	if !c.def.GovernorsEnabled {
		return fmt.Errorf("assign governor: feature disabled: %w", ErrPrerequisiteNotMet)
	}
	if !c.ownsGovernor(g) {
		return fmt.Errorf("assign governor %d: not appointed here: %w", g.ID(), ErrInvalidTarget)
	}
	if !c.ownsCity(city) {
		return fmt.Errorf("assign governor %d: city %d not owned: %w", g.ID(), city.ID(), ErrInvalidTarget)
	}
	if g.holds(city) {
		return nil
	}

	for _, other := range c.governors {
		if other != g {
			other.release(city)
		}
	}
	g.cities = append(g.cities, city)
	c.emit(EventGovernorAssigned, fmt.Sprintf("governor %s assigned to %s", g.Name(), city.Name()), map[string]any{
		"governor": g.id,
		"city":     city.ID(),
	})
	return nil
}

// CityGovernor returns the governor holding a city, or nil.
func (c *Civilization) CityGovernor(city City) *Governor {
	for _, g := range c.governors {
		if g.holds(city) {
			return g
		}
	}
	return nil
}

func (c *Civilization) ownsGovernor(g *Governor) bool {
	for _, owned := range c.governors {
		if owned == g {
			return true
		}
	}
	return false
}
