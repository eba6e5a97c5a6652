// Package rules provides the static definition tables and the modifier model:
// technologies, cultures, policies, governments, units, equipment, pantheons,
// religions, and the bonus entries they contribute to a civilization.
package rules

// YieldKind enumerates the yield channels a civilization accumulates.
type YieldKind uint8

const (
	YieldGold    YieldKind = iota // Currency for purchases and upkeep
	YieldFood                     // Consumed by cities and units each round
	YieldScience                  // Advances the research track
	YieldCulture                  // Advances the culture track
	YieldFaith                    // Spent on pantheons and religions
	YieldPolicy                   // Policy points, spent on policy adoption
)

// NumYields is the total number of yield channels.
const NumYields = 6

// YieldNames maps each yield kind to its display name, in channel order.
var YieldNames = [NumYields]string{"gold", "food", "science", "culture", "faith", "policy"}

// Name returns the display name of a yield kind.
func (k YieldKind) Name() string {
	if int(k) < len(YieldNames) {
		return YieldNames[k]
	}
	return "unknown"
}

// AllYields returns every yield kind in channel order.
func AllYields() [NumYields]YieldKind {
	return [NumYields]YieldKind{YieldGold, YieldFood, YieldScience, YieldCulture, YieldFaith, YieldPolicy}
}

// YieldSet is a fixed-size array holding an integer amount per yield channel.
// Replaces map[YieldKind]int: inline in structs, zero heap allocation.
type YieldSet [NumYields]int

// Get returns the amount for one channel.
func (y YieldSet) Get(k YieldKind) int { return y[k] }

// Add accumulates another set channel by channel.
func (y *YieldSet) Add(other YieldSet) {
	for i := range y {
		y[i] += other[i]
	}
}

// IsZero returns true if every channel is zero.
func (y YieldSet) IsZero() bool {
	for _, v := range y {
		if v != 0 {
			return false
		}
	}
	return true
}

// PctSet is a fixed-size array holding a percentage modifier per yield channel.
// Percentages are additive across sources: 0.10 + 0.15 = +25%.
type PctSet [NumYields]float64

// Add accumulates another set channel by channel.
func (p *PctSet) Add(other PctSet) {
	for i := range p {
		p[i] += other[i]
	}
}

// CombatStat enumerates the flat combat bonuses a source can grant.
type CombatStat uint8

const (
	StatAttack   CombatStat = iota // Added to unit attack
	StatDefense                    // Added to unit defense
	StatMovement                   // Added to unit movement range
)

// NumCombatStats is the total number of combat stats.
const NumCombatStats = 3

// TargetKind scopes a modifier to a class of recipients.
type TargetKind uint8

const (
	TargetGlobal     TargetKind = iota // Applies civilization-wide
	TargetCombatUnit                   // Applies to one combat-unit definition
	TargetWorkerUnit                   // Applies to one worker-unit definition
	TargetEquipment                    // Applies to units wielding one equipment definition
)

// TargetRef identifies the recipient of a scoped modifier. A zero TargetRef
// is the global target.
type TargetRef struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id,omitempty"` // Definition ID; empty for global
}

// Global is the civilization-wide target.
var Global = TargetRef{Kind: TargetGlobal}

// CombatUnitTarget scopes to one combat-unit definition.
func CombatUnitTarget(id string) TargetRef { return TargetRef{Kind: TargetCombatUnit, ID: id} }

// WorkerUnitTarget scopes to one worker-unit definition.
func WorkerUnitTarget(id string) TargetRef { return TargetRef{Kind: TargetWorkerUnit, ID: id} }

// EquipmentTarget scopes to units wielding one equipment definition.
func EquipmentTarget(id string) TargetRef { return TargetRef{Kind: TargetEquipment, ID: id} }

// IsGlobal returns true for the civilization-wide target.
func (t TargetRef) IsGlobal() bool { return t.Kind == TargetGlobal }

// Matches reports whether a modifier carrying this target applies to the
// queried target. Global entries match only the global query; scoped entries
// match the exact kind and definition ID.
func (t TargetRef) Matches(query TargetRef) bool {
	return t.Kind == query.Kind && t.ID == query.ID
}

// Modifier is one yield adjustment contributed by a bonus source: a flat
// addend and/or an additive percentage on a single channel, globally or
// scoped to a target.
type Modifier struct {
	Target TargetRef `json:"target"`
	Yield  YieldKind `json:"yield"`
	Flat   int       `json:"flat,omitempty"`
	Pct    float64   `json:"pct,omitempty"`
}

// CombatModifier is one flat combat-stat adjustment contributed by a source.
type CombatModifier struct {
	Target TargetRef  `json:"target"`
	Stat   CombatStat `json:"stat"`
	Flat   int        `json:"flat"`
}

// Grants are the secondary effects a progression source applies once when it
// completes: capacity increases and feature unlocks. Grants accumulate and
// never decrease.
type Grants struct {
	CityCap          int  `json:"city_cap,omitempty"`
	PantheonCap      int  `json:"pantheon_cap,omitempty"`
	GovernorSlots    int  `json:"governor_slots,omitempty"`
	EnablesPantheons bool `json:"enables_pantheons,omitempty"`
}

// IsZero returns true when the grant carries no effect.
func (g Grants) IsZero() bool {
	return g.CityCap == 0 && g.PantheonCap == 0 && g.GovernorSlots == 0 && !g.EnablesPantheons
}

// BonusSource is the uniform shape every modifier-carrying definition
// exposes: technologies, cultures, policies, and governments all implement it.
type BonusSource interface {
	SourceID() string
	YieldModifiers() []Modifier
	CombatModifiers() []CombatModifier
}

// Unlock is a progression source: a bonus source that is gated behind
// requirements and applies grants when it becomes active.
type Unlock interface {
	BonusSource
	Requirements() Requirements
	UnlockGrants() Grants
}

// EquipSlot enumerates the equipment slots a unit exposes.
type EquipSlot uint8

const (
	SlotWeapon EquipSlot = iota
	SlotArmor
	SlotRelic
)

// NumEquipSlots is the total number of equipment slots.
const NumEquipSlots = 3

// SlotNames maps each slot to its display name.
var SlotNames = [NumEquipSlots]string{"weapon", "armor", "relic"}

// Name returns the display name of an equipment slot.
func (s EquipSlot) Name() string {
	if int(s) < len(SlotNames) {
		return SlotNames[s]
	}
	return "unknown"
}
