// Start position selection: scores land tiles and picks spaced-out seeds
// for the civilizations.

package world

import "sort"

// StartPositions picks n starting tile IDs, best-scored first, keeping at
// least minDist between picks. When the map cannot fit n picks at that
// spacing the spacing is halved until it can.
func StartPositions(m *Map, n, minDist int) []int {
	type scored struct {
		id    int
		score float64
	}
	var candidates []scored
	for _, t := range m.Tiles {
		if s := startScore(m, t); s > 0 {
			candidates = append(candidates, scored{t.ID, s})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})

	for dist := minDist; ; dist /= 2 {
		picks := make([]int, 0, n)
		for _, c := range candidates {
			if len(picks) == n {
				break
			}
			if tooClose(m, c.id, picks, dist) {
				continue
			}
			picks = append(picks, c.id)
		}
		if len(picks) == n || dist == 0 {
			return picks
		}
	}
}

// startScore rates a tile as a civilization seat. Sea and peaks are out;
// fertile flats with mineral and water access score best.
func startScore(m *Map, t *Tile) float64 {
	var score float64
	switch t.Terrain {
	case TerrainLowlands:
		score = 3.0
	case TerrainHighlands:
		score = 1.5
	case TerrainWastes:
		score = 0.5
	case TerrainIce:
		score = 0.2
	default:
		return 0
	}

	if t.Features[FeatureFertileSoil] {
		score += 2.0
	}
	if t.Features[FeatureOreVein] {
		score += 1.5
	}
	if t.Features[FeatureAncientRuin] {
		score += 1.0
	}
	if t.Features[FeatureHolySite] {
		score += 1.0
	}

	terrains := make(map[Terrain]bool)
	for _, nc := range t.Coord.Neighbors() {
		nt := m.At(nc)
		if nt == nil {
			continue
		}
		if nt.Terrain == TerrainSea {
			score += 0.5 // water access
			continue
		}
		terrains[nt.Terrain] = true
		if nt.Features[FeatureFertileSoil] {
			score += 0.5
		}
		if nt.Features[FeatureOreVein] {
			score += 0.4
		}
		if nt.Features[FeatureHolySite] {
			score += 0.8
		}
	}
	score += float64(len(terrains)) * 0.3
	return score
}

func tooClose(m *Map, id int, picks []int, minDist int) bool {
	t := m.Tile(id)
	for _, p := range picks {
		if Distance(t.Coord, m.Tile(p).Coord) < minDist {
			return true
		}
	}
	return false
}
