package habitat

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gravitas-games/habitats/internal/hex"
)

var (
	ErrOccupied     = errors.New("coordinate occupied")
	ErrNotAdjacent  = errors.New("not adjacent to an existing tile")
	ErrEmptyCoord   = errors.New("no tile at coordinate")
	ErrTokenPresent = errors.New("tile already holds a token")
	ErrNotCapable   = errors.New("tile cannot host this animal")
)

// Habitat maps coordinates to the tiles a single player has placed.
type Habitat struct {
	tiles map[hex.Axial]*Tile
}

// New creates an empty habitat.
func New() *Habitat {
	return &Habitat{tiles: make(map[hex.Axial]*Tile)}
}

// Seed places a starter tile without the adjacency requirement.
func (h *Habitat) Seed(at hex.Axial, t *Tile) error {
	if t == nil {
		return ErrNoTile
	}
	if _, ok := h.tiles[at]; ok {
		return fmt.Errorf("%w: %v", ErrOccupied, at)
	}
	h.tiles[at] = t
	return nil
}

// At returns the tile at c.
func (h *Habitat) At(c hex.Axial) (*Tile, bool) {
	t, ok := h.tiles[c]
	return t, ok
}

// Len returns the number of placed tiles.
func (h *Habitat) Len() int { return len(h.tiles) }

// Coords returns every occupied coordinate in deterministic order.
func (h *Habitat) Coords() []hex.Axial {
	out := make([]hex.Axial, 0, len(h.tiles))
	for c := range h.tiles {
		out = append(out, c)
	}
	slices.SortFunc(out, hex.Compare)
	return out
}

// OccupiedNeighbors counts placed tiles around c.
func (h *Habitat) OccupiedNeighbors(c hex.Axial) int {
	n := 0
	for _, nb := range c.Neighbors() {
		if _, ok := h.tiles[nb]; ok {
			n++
		}
	}
	return n
}

// CanPlaceTile reports whether c is empty and touches at least one tile.
func (h *Habitat) CanPlaceTile(c hex.Axial) bool {
	return h.CheckTile(c) == nil
}

// CheckTile is CanPlaceTile with the reason for refusal.
func (h *Habitat) CheckTile(c hex.Axial) error {
	if _, ok := h.tiles[c]; ok {
		return fmt.Errorf("%w: %v", ErrOccupied, c)
	}
	if h.OccupiedNeighbors(c) == 0 {
		return fmt.Errorf("%w: %v", ErrNotAdjacent, c)
	}
	return nil
}

// Place adds t at c after checking CanPlaceTile.
func (h *Habitat) Place(c hex.Axial, t *Tile) error {
	if t == nil {
		return ErrNoTile
	}
	if err := h.CheckTile(c); err != nil {
		return err
	}
	h.tiles[c] = t
	return nil
}

// CanPlaceToken reports whether the tile at c is empty and can host a.
func (h *Habitat) CanPlaceToken(c hex.Axial, a Animal) bool {
	return h.CheckToken(c, a) == nil
}

// CheckToken is CanPlaceToken with the reason for refusal.
func (h *Habitat) CheckToken(c hex.Axial, a Animal) error {
	t, ok := h.tiles[c]
	if !ok {
		return fmt.Errorf("%w: %v", ErrEmptyCoord, c)
	}
	if t.token != nil {
		return fmt.Errorf("%w: %v", ErrTokenPresent, c)
	}
	if !t.Animals.Has(a) {
		return fmt.Errorf("%w: %s at %v", ErrNotCapable, a, c)
	}
	return nil
}

// PlaceToken attaches tok to the tile at c after CheckToken.
func (h *Habitat) PlaceToken(c hex.Axial, tok *Token) error {
	if tok == nil {
		return errors.New("nil token")
	}
	if err := h.CheckToken(c, tok.Animal); err != nil {
		return err
	}
	h.tiles[c].attach(tok)
	return nil
}

// AnimalAt returns the species resting at c, if any.
func (h *Habitat) AnimalAt(c hex.Axial) (Animal, bool) {
	t, ok := h.tiles[c]
	if !ok || t.token == nil {
		return 0, false
	}
	return t.token.Animal, true
}

// Tokens returns the coordinates holding a token of species a.
func (h *Habitat) Tokens(a Animal) []hex.Axial {
	var out []hex.Axial
	for c, t := range h.tiles {
		if t.token != nil && t.token.Animal == a {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, hex.Compare)
	return out
}

// TokenCount returns the number of tokens placed in the habitat.
func (h *Habitat) TokenCount() int {
	n := 0
	for _, t := range h.tiles {
		if t.token != nil {
			n++
		}
	}
	return n
}

// NeighborAnimals returns the species on the tiles around c, one entry per
// occupied neighbor.
func (h *Habitat) NeighborAnimals(c hex.Axial) []Animal {
	out := make([]Animal, 0, 6)
	for _, nb := range c.Neighbors() {
		if a, ok := h.AnimalAt(nb); ok {
			out = append(out, a)
		}
	}
	return out
}

// TerrainLinked reports whether the tiles at a and b are neighbors whose
// facing edges both show terrain tr.
func (h *Habitat) TerrainLinked(a, b hex.Axial, tr Terrain) bool {
	ta, ok := h.tiles[a]
	if !ok {
		return false
	}
	tb, ok := h.tiles[b]
	if !ok {
		return false
	}
	dir, ok := hex.DirectionTo(a, b)
	if !ok {
		return false
	}
	return ta.EdgeTerrain(dir) == tr && tb.EdgeTerrain(hex.Opposite(dir)) == tr
}

// Cell is one placed tile in a habitat snapshot.
type Cell struct {
	At   hex.Axial `json:"at"`
	Tile View      `json:"tile"`
}

// Snapshot returns the habitat's tiles in deterministic order.
func (h *Habitat) Snapshot() []Cell {
	coords := h.Coords()
	out := make([]Cell, 0, len(coords))
	for _, c := range coords {
		out = append(out, Cell{At: c, Tile: h.tiles[c].Snapshot()})
	}
	return out
}
