// Surface generation: layered simplex noise fields sampled per hex, terrain
// derived from thresholds, features placed in post-passes.

package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds surface generation parameters.
type GenConfig struct {
	Radius       int     `json:"radius" mapstructure:"radius"`
	Seed         int64   `json:"seed" mapstructure:"seed"`
	SeaLevel     float64 `json:"sea_level" mapstructure:"sea_level"`
	PeakLevel    float64 `json:"peak_level" mapstructure:"peak_level"`
	MinHolySites int     `json:"min_holy_sites" mapstructure:"min_holy_sites"`
	RuinsPer     int     `json:"ruins_per" mapstructure:"ruins_per"`
}

// DefaultGenConfig returns the shipped generation parameters. Radius 24
// yields about 1800 tiles.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:       24,
		Seed:         0,
		SeaLevel:     0.28,
		PeakLevel:    0.78,
		MinHolySites: 3,
		RuinsPer:     80,
	}
}

// SmallGenConfig returns a tiny deterministic surface for tests.
func SmallGenConfig() GenConfig {
	return GenConfig{
		Radius:       6,
		Seed:         42,
		SeaLevel:     0.30,
		PeakLevel:    0.80,
		MinHolySites: 2,
		RuinsPer:     40,
	}
}

// Generate creates a complete planet surface. A zero seed picks one; the
// chosen seed is recorded on the map, and regenerating from it reproduces
// the map tile for tile.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)
	thermNoise := opensimplex.NewNormalized(seed + 2)
	mineralNoise := opensimplex.NewNormalized(seed + 3)
	sacredNoise := opensimplex.NewNormalized(seed + 4)

	m := NewMap(cfg.Radius)
	m.Seed = seed

	// Scan the bounding rectangle in fixed order so tile IDs are stable for
	// a given seed.
	for q := -cfg.Radius; q <= cfg.Radius; q++ {
		for r := -cfg.Radius; r <= cfg.Radius; r++ {
			coord := HexCoord{Q: q, R: r}
			if !m.InBounds(coord) {
				continue
			}

			// Axial to cartesian for noise sampling.
			x := float64(q) + float64(r)*0.5
			y := float64(r) * math.Sqrt(3.0) / 2.0

			elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
			moist := octaveNoise(moistNoise, x, y, 3, 0.06, 0.5)
			therm := octaveNoise(thermNoise, x, y, 3, 0.05, 0.5)

			// Sink the rim so the landmass sits in a world sea.
			distFromCenter := math.Sqrt(x*x+y*y) / float64(cfg.Radius)
			edgeFalloff := 1.0 - math.Pow(distFromCenter, 3.5)
			if edgeFalloff < 0 {
				edgeFalloff = 0
			}
			elev *= edgeFalloff

			// Colder toward the poles and at altitude.
			therm = therm*0.6 + (1.0-math.Abs(y)/float64(cfg.Radius))*0.3 + (1.0-elev)*0.1

			tile := &Tile{
				Coord:     coord,
				Terrain:   deriveTerrain(elev, moist, therm, cfg),
				Elevation: elev,
				Moisture:  moist,
				Thermal:   therm,
			}
			placeFeatures(tile, x, y, mineralNoise, sacredNoise)
			m.add(tile)
		}
	}

	ensureHolySites(m, cfg.MinHolySites)
	scatterRuins(m, seed, cfg.RuinsPer)
	return m
}

// deriveTerrain maps the noise fields to a terrain class.
func deriveTerrain(elev, moist, therm float64, cfg GenConfig) Terrain {
	switch {
	case elev < cfg.SeaLevel:
		return TerrainSea
	case elev > cfg.PeakLevel:
		return TerrainPeaks
	case therm < 0.22:
		return TerrainIce
	case moist < 0.25 && therm > 0.55:
		return TerrainWastes
	case elev > 0.55:
		return TerrainHighlands
	default:
		return TerrainLowlands
	}
}

// placeFeatures marks threshold-driven features on a freshly derived tile.
func placeFeatures(t *Tile, x, y float64, mineral, sacred opensimplex.Noise) {
	switch t.Terrain {
	case TerrainLowlands:
		if t.Moisture > 0.55 {
			t.addFeature(FeatureFertileSoil)
		}
	case TerrainHighlands, TerrainWastes:
		if octaveNoise(mineral, x, y, 2, 0.12, 0.5) > 0.62 {
			t.addFeature(FeatureOreVein)
		}
	}
	if t.Land() && t.Terrain != TerrainIce {
		if octaveNoise(sacred, x, y, 2, 0.10, 0.5) > 0.80 {
			t.addFeature(FeatureHolySite)
		}
	}
}

// ensureHolySites guarantees a minimum number of holy sites; religion
// founding needs somewhere to happen even on unlucky seeds. Extra sites are
// spread across the land tiles at a fixed stride.
func ensureHolySites(m *Map, minSites int) {
	have := len(m.FeatureTiles(FeatureHolySite))
	if have >= minSites {
		return
	}

	var land []*Tile
	for _, t := range m.Tiles {
		if t.Land() && t.Terrain != TerrainIce && !t.Features[FeatureHolySite] {
			land = append(land, t)
		}
	}
	if len(land) == 0 {
		return
	}

	need := minSites - have
	stride := len(land) / (need + 1)
	if stride < 1 {
		stride = 1
	}
	for i := stride; i < len(land) && need > 0; i += stride {
		land[i].addFeature(FeatureHolySite)
		need--
	}
	for i := 0; i < len(land) && need > 0; i++ {
		if !land[i].Features[FeatureHolySite] {
			land[i].addFeature(FeatureHolySite)
			need--
		}
	}
}

// scatterRuins drops ancient ruins on random land tiles, one per ruinsPer
// land tiles with a floor of two.
func scatterRuins(m *Map, seed int64, ruinsPer int) {
	if ruinsPer <= 0 {
		return
	}
	rng := rand.New(rand.NewSource(seed + 100))

	var land []*Tile
	for _, t := range m.Tiles {
		if t.Land() {
			land = append(land, t)
		}
	}
	if len(land) == 0 {
		return
	}

	count := len(land) / ruinsPer
	if count < 2 {
		count = 2
	}
	for placed, attempts := 0, 0; placed < count && attempts < count*10; attempts++ {
		t := land[rng.Intn(len(land))]
		if t.Features[FeatureAncientRuin] {
			continue
		}
		t.addFeature(FeatureAncientRuin)
		placed++
	}
}

// octaveNoise layers multiple noise frequencies into fractal detail,
// normalized back to [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
