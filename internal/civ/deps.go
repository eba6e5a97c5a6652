package civ

import "github.com/corvidae/stellar-age/internal/rules"

// CivID identifies a civilization within a game.
type CivID uint64

// FeatureHolySite is the tile feature religious founding requires at the
// chosen city's center tile.
const FeatureHolySite = "holy-site"

// City is the view of an owned settlement the civilization drives each round.
// The simulation owns the concrete type.
type City interface {
	ID() int
	Name() string
	CenterTile() int

	// ProcessTurn steps city-internal state one round before yields are read.
	ProcessTurn()

	// Yields returns the city's raw per-round output before civilization
	// bonuses are applied.
	Yields() rules.YieldSet

	FoodConsumption() int

	// RefreshBuildings recomputes the city's buildable list after the owning
	// civilization's unlocks change.
	RefreshBuildings()
}

// Unit is the view of an owned unit, combat or worker. Which of the two a
// unit is follows from the registry it was added to.
type Unit interface {
	ID() int
	TypeID() string // Definition ID
	MaxHealth() int

	// ApplyDamage reduces health; the simulation clamps and handles death.
	ApplyDamage(points int)

	// ResetTurn clears per-round state such as spent movement.
	ResetTurn()

	// BonusesChanged tells the unit that civilization-wide bonuses moved and
	// cached stats are stale.
	BonusesChanged()

	// Equipped returns the equipment definition ID in a slot, or "".
	Equipped(slot rules.EquipSlot) string
	SetEquipped(slot rules.EquipSlot, equipmentID string)

	// BaseYields returns the unit's raw per-round output, including wielded
	// equipment contributions.
	BaseYields() rules.YieldSet

	FoodUpkeep() int
}

// TileFeatures answers feature queries against the world map.
type TileFeatures interface {
	HasFeature(tile int, feature string) bool
}

// TradeRoutes reports per-round trade income owed to a civilization.
type TradeRoutes interface {
	TradeGold(id CivID) int
}

// CityFounder creates the concrete city for FoundNewCity once the
// civilization has cleared its own gates. It rejects bad sites.
type CityFounder func(owner CivID, tile int) (City, error)

// Deps are the collaborators a civilization is constructed with. All three
// interfaces are required; Sink is optional.
type Deps struct {
	Tiles   TileFeatures
	Trade   TradeRoutes
	Founder CityFounder

	// Sink receives every emitted event, if set.
	Sink func(Event)
}
