// Package world provides the planet surface: hex grid geometry, terrain,
// tile features, and procedural generation. Tiles are addressed by a dense
// integer ID; axial coordinates (q, r) carry the geometry.
package world

// HexCoord is a position on the hex grid in axial coordinates. The third
// cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// hexDirections are the six neighbor offsets in axial coordinates.
var hexDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var out [6]HexCoord
	for i, dir := range hexDirections {
		out[i] = HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
	}
	return out
}

// Distance returns the hex distance between two coordinates: the largest
// absolute difference across the three cube axes.
func Distance(a, b HexCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	m := dq
	if dr > m {
		m = dr
	}
	if ds > m {
		m = ds
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
