package scoring

import (
	"github.com/gravitas-games/habitats/internal/habitat"
	"github.com/gravitas-games/habitats/internal/hex"
)

// LongestTerrain returns the size of the largest region of tiles connected
// through facing edges that both show terrain tr.
func LongestTerrain(tr habitat.Terrain, h *habitat.Habitat) int {
	cells := make(cellSet)
	for _, c := range h.Coords() {
		if t, _ := h.At(c); t.HasTerrain(tr) {
			cells[c] = true
		}
	}
	best := 0
	linked := func(a, b hex.Axial) bool { return h.TerrainLinked(a, b, tr) }
	for _, g := range components(cells, linked) {
		best = max(best, len(g))
	}
	return best
}

// TerrainLengths returns LongestTerrain for every terrain.
func TerrainLengths(h *habitat.Habitat) map[habitat.Terrain]int {
	out := make(map[habitat.Terrain]int, len(habitat.Terrains))
	for _, tr := range habitat.Terrains {
		out[tr] = LongestTerrain(tr, h)
	}
	return out
}
