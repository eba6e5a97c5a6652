package world

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Terrain classifies a tile's surface.
type Terrain uint8

const (
	TerrainLowlands  Terrain = iota // settleable flats
	TerrainHighlands                // rough uplands, mineral-bearing
	TerrainPeaks                    // impassable ranges
	TerrainWastes                   // hot, dry badlands
	TerrainIce                      // polar sheets
	TerrainSea                      // shallow seas, no ground sites
)

var terrainNames = [...]string{"lowlands", "highlands", "peaks", "wastes", "ice", "sea"}

// Name returns the terrain's display name.
func (t Terrain) Name() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return "unknown"
}

// Tile features referenced by the engine. The strings are the contract;
// holy-site in particular gates religion founding.
const (
	FeatureHolySite    = "holy-site"
	FeatureFertileSoil = "fertile-soil"
	FeatureOreVein     = "ore-vein"
	FeatureAncientRuin = "ancient-ruin"
)

// Tile is one hex of the planet surface.
type Tile struct {
	ID      int      `json:"id"`
	Coord   HexCoord `json:"coord"`
	Terrain Terrain  `json:"terrain"`

	// Generation layers, kept for scoring and rendering.
	Elevation float64 `json:"elevation"`
	Moisture  float64 `json:"moisture"`
	Thermal   float64 `json:"thermal"`

	Features map[string]bool `json:"features,omitempty"`
}

// HasFeature reports whether the tile carries the named feature.
func (t *Tile) HasFeature(feature string) bool {
	return t.Features[feature]
}

func (t *Tile) addFeature(feature string) {
	if t.Features == nil {
		t.Features = make(map[string]bool)
	}
	t.Features[feature] = true
}

// Land reports whether ground sites can exist on the tile.
func (t *Tile) Land() bool {
	return t.Terrain != TerrainSea && t.Terrain != TerrainPeaks
}

// Map is the complete planet surface. Tile IDs are dense indices into the
// tile slice, assigned in generation order, so a map regenerated from the
// same seed carries the same IDs.
type Map struct {
	Radius int     `json:"radius"`
	Seed   int64   `json:"seed"`
	Tiles  []*Tile `json:"tiles"`

	byCoord map[HexCoord]int
}

// NewMap creates an empty map with the given radius.
func NewMap(radius int) *Map {
	return &Map{
		Radius:  radius,
		byCoord: make(map[HexCoord]int),
	}
}

// Tile returns the tile with the given ID, or nil.
func (m *Map) Tile(id int) *Tile {
	if id < 0 || id >= len(m.Tiles) {
		return nil
	}
	return m.Tiles[id]
}

// At returns the tile at a coordinate, or nil when out of bounds.
func (m *Map) At(coord HexCoord) *Tile {
	id, ok := m.byCoord[coord]
	if !ok {
		return nil
	}
	return m.Tiles[id]
}

func (m *Map) add(t *Tile) {
	t.ID = len(m.Tiles)
	m.Tiles = append(m.Tiles, t)
	m.byCoord[t.Coord] = t.ID
}

// TileCount returns the number of tiles.
func (m *Map) TileCount() int { return len(m.Tiles) }

// InBounds reports whether a coordinate lies within the map radius.
func (m *Map) InBounds(coord HexCoord) bool {
	q, r, s := abs(coord.Q), abs(coord.R), abs(coord.S())
	mx := q
	if r > mx {
		mx = r
	}
	if s > mx {
		mx = s
	}
	return mx <= m.Radius
}

// NeighborIDs returns the IDs of the adjacent tiles that exist.
func (m *Map) NeighborIDs(id int) []int {
	t := m.Tile(id)
	if t == nil {
		return nil
	}
	out := make([]int, 0, 6)
	for _, nc := range t.Coord.Neighbors() {
		if nid, ok := m.byCoord[nc]; ok {
			out = append(out, nid)
		}
	}
	return out
}

// HasFeature reports whether the tile with the given ID carries the named
// feature. Unknown IDs read as featureless. This is the engine's tile
// feature lookup.
func (m *Map) HasFeature(tile int, feature string) bool {
	t := m.Tile(tile)
	return t != nil && t.Features[feature]
}

// FeatureTiles returns the IDs of every tile carrying the feature, sorted.
func (m *Map) FeatureTiles(feature string) []int {
	var out []int
	for _, t := range m.Tiles {
		if t.Features[feature] {
			out = append(out, t.ID)
		}
	}
	sort.Ints(out)
	return out
}

// TerrainCounts summarizes the terrain distribution.
func (m *Map) TerrainCounts() map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, t := range m.Tiles {
		counts[t.Terrain]++
	}
	return counts
}

// UnmarshalJSON restores a serialized map and rebuilds the coordinate
// lookup, so maps can be nested inside larger state blobs.
func (m *Map) UnmarshalJSON(data []byte) error {
	type plain Map
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = Map(p)
	m.byCoord = make(map[HexCoord]int, len(m.Tiles))
	for _, t := range m.Tiles {
		m.byCoord[t.Coord] = t.ID
	}
	return nil
}

// DecodeMap restores a map serialized with encoding/json.
func DecodeMap(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("world: decode map: %w", err)
	}
	return &m, nil
}

func (m *Map) String() string {
	return fmt.Sprintf("Map(radius=%d, tiles=%d)", m.Radius, len(m.Tiles))
}
