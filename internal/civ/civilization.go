// Package civ implements the per-civilization engine: yield stockpiles,
// bonus aggregation from technologies, cultures, policies, governments and
// beliefs, research and culture tracks, inventories, religion, governors,
// and the begin-turn pipeline that drives them.
package civ

import (
	"errors"
	"fmt"

	"github.com/corvidae/stellar-age/internal/rules"
)

// Tuning holds the balance knobs the turn pipeline reads. Games may swap it
// between rounds.
type Tuning struct {
	// FoodFloor clamps the food stockpile after consumption.
	FoodFloor int `json:"food_floor" mapstructure:"food_floor"`

	// WarWearinessPerWar is added per simultaneous war each round.
	WarWearinessPerWar float64 `json:"war_weariness_per_war" mapstructure:"war_weariness_per_war"`

	// WarWearinessRecovery is subtracted each peaceful round.
	WarWearinessRecovery float64 `json:"war_weariness_recovery" mapstructure:"war_weariness_recovery"`

	// FamineDamageFrac is the fraction of max health, rounded up, every unit
	// loses each famine round.
	FamineDamageFrac float64 `json:"famine_damage_frac" mapstructure:"famine_damage_frac"`

	// LowFoodRounds is the supply horizon, in rounds of consumption, below
	// which the low-food warning fires.
	LowFoodRounds int `json:"low_food_rounds" mapstructure:"low_food_rounds"`
}

// DefaultTuning returns the shipped balance values.
func DefaultTuning() Tuning {
	return Tuning{
		FoodFloor:            -10,
		WarWearinessPerWar:   0.02,
		WarWearinessRecovery: 0.05,
		FamineDamageFrac:     0.05,
		LowFoodRounds:        2,
	}
}

// Civilization is one player's economic and progression state. It is not
// safe for concurrent use; the game loop drives every civilization from a
// single goroutine.
type Civilization struct {
	id     CivID
	def    *rules.CivilizationDef
	cat    *rules.Catalog
	tuning Tuning

	tiles   TileFeatures
	trade   TradeRoutes
	founder CityFounder
	sink    func(Event)

	round int
	stock rules.YieldSet

	// Progression. Order slices preserve completion order; sets answer
	// requirement predicates.
	techOrder    []string
	techSet      map[string]bool
	cultureOrder []string
	cultureSet   map[string]bool
	policyOrder  []string
	policySet    map[string]bool
	government   *rules.GovernmentDef

	research *researchTrack
	culture  *cultureTrack

	bonuses bonusTable

	// Availability cache, invalidated by bumping the epoch.
	unlockEpoch uint64
	avail       map[availKey]availEntry

	// Capacity bonuses accumulated from completed unlocks.
	cityCapBonus      int
	pantheonCapBonus  int
	governorSlotBonus int
	pantheonsEnabled  bool

	resources   stockpile
	equipment   stockpile
	projectiles stockpile

	pantheons []PantheonState
	religion  *rules.ReligionDef

	governors      []*Governor
	nextGovernorID int

	cities      []City
	combatUnits []Unit
	workerUnits []Unit

	wars         map[CivID]bool
	warWeariness float64
	famine       bool

	recent []Event
}

// New builds a civilization from its definition with empty progression and
// the definition's starting stockpiles. Every collaborator in deps except
// Sink is required.
func New(id CivID, defID string, cat *rules.Catalog, tuning Tuning, deps Deps) (*Civilization, error) {
	if cat == nil {
		return nil, errors.New("civ: nil catalog")
	}
	def := cat.Civilization(defID)
	if def == nil {
		return nil, fmt.Errorf("civ: unknown civilization %q: %w", defID, ErrInvalidTarget)
	}
	if deps.Tiles == nil {
		return nil, errors.New("civ: nil tile features")
	}
	if deps.Trade == nil {
		return nil, errors.New("civ: nil trade routes")
	}
	if deps.Founder == nil {
		return nil, errors.New("civ: nil city founder")
	}

	c := &Civilization{
		id:             id,
		def:            def,
		cat:            cat,
		tuning:         tuning,
		tiles:          deps.Tiles,
		trade:          deps.Trade,
		founder:        deps.Founder,
		sink:           deps.Sink,
		stock:          def.StartingStockpiles,
		techSet:        make(map[string]bool),
		cultureSet:     make(map[string]bool),
		policySet:      make(map[string]bool),
		avail:          make(map[availKey]availEntry),
		resources:      make(stockpile),
		equipment:      make(stockpile),
		projectiles:    make(stockpile),
		wars:           make(map[CivID]bool),
		nextGovernorID: 1,
		government:     cat.Government(def.StartingGovernment),
	}
	c.bonuses.reset()
	c.rebuildBonuses()
	return c, nil
}

// ID returns the civilization's game-scoped identifier.
func (c *Civilization) ID() CivID { return c.id }

// Def returns the civilization's definition.
func (c *Civilization) Def() *rules.CivilizationDef { return c.def }

// Round returns the last round this civilization began.
func (c *Civilization) Round() int { return c.round }

// Tuning returns the active balance values.
func (c *Civilization) Tuning() Tuning { return c.tuning }

// SetTuning swaps the balance values. Call between rounds.
func (c *Civilization) SetTuning(t Tuning) { c.tuning = t }

// Stockpile returns the current amount of one yield channel.
func (c *Civilization) Stockpile(k rules.YieldKind) int { return c.stock[k] }

// Stockpiles returns a copy of every stockpile.
func (c *Civilization) Stockpiles() rules.YieldSet { return c.stock }

// Credit adds to one stockpile. Negative deltas are allowed; use Spend when
// the amount must be covered.
func (c *Civilization) Credit(k rules.YieldKind, n int) {
	if n == 0 {
		return
	}
	c.stock[k] += n
	c.emit(EventStockpileChanged, fmt.Sprintf("%+d %s", n, k.Name()), map[string]any{
		"yield": k.Name(),
		"delta": n,
		"total": c.stock[k],
	})
}

// Spend deducts from one stockpile, rejecting the whole amount if the
// stockpile cannot cover it.
func (c *Civilization) Spend(k rules.YieldKind, n int) error {
	if n < 0 {
		return fmt.Errorf("spend %s: %d: %w", k.Name(), n, ErrInvalidAmount)
	}
	if c.stock[k] < n {
		return fmt.Errorf("spend %d %s, have %d: %w", n, k.Name(), c.stock[k], ErrInsufficientResource)
	}
	c.Credit(k, -n)
	return nil
}

// Civilization satisfies rules.RequirementState so definition requirements
// can be evaluated against it directly.

func (c *Civilization) HasTech(id string) bool    { return c.techSet[id] }
func (c *Civilization) HasCulture(id string) bool { return c.cultureSet[id] }
func (c *Civilization) HasPolicy(id string) bool  { return c.policySet[id] }

func (c *Civilization) GovernmentID() string {
	if c.government == nil {
		return ""
	}
	return c.government.ID
}

func (c *Civilization) CityCount() int { return len(c.cities) }

// ResearchedTechs returns completed technology IDs in completion order.
func (c *Civilization) ResearchedTechs() []string {
	return append([]string(nil), c.techOrder...)
}

// AdoptedCultures returns completed culture IDs in completion order.
func (c *Civilization) AdoptedCultures() []string {
	return append([]string(nil), c.cultureOrder...)
}

// AdoptedPolicies returns adopted policy IDs in adoption order.
func (c *Civilization) AdoptedPolicies() []string {
	return append([]string(nil), c.policyOrder...)
}

// Government returns the active government definition, or nil.
func (c *Civilization) Government() *rules.GovernmentDef { return c.government }

// WarWeariness returns the accumulated weariness in [0, 1].
func (c *Civilization) WarWeariness() float64 { return c.warWeariness }

// InFamine reports whether the last begin-turn left the civilization in
// famine.
func (c *Civilization) InFamine() bool { return c.famine }
