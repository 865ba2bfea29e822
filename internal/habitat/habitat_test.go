package habitat

import (
	"errors"
	"strings"
	"testing"

	"github.com/gravitas-games/habitats/internal/hex"
)

func split(a, b Terrain) [6]Terrain {
	return [6]Terrain{a, a, a, b, b, b}
}

func TestRotateSixTimesRestoresTile(t *testing.T) {
	tile := NewTile(1, [6]Terrain{Forest, Mountain, Prairie, River, Wetland, Forest}, NewAnimalSet(Bear), false)
	orig := tile.Edges()
	for i := 0; i < 6; i++ {
		if err := Rotate(tile); err != nil {
			t.Fatalf("rotate: %v", err)
		}
	}
	if tile.Rotation() != 0 {
		t.Fatalf("expected rotation 0 after six turns, got %d", tile.Rotation())
	}
	if tile.Edges() != orig {
		t.Fatalf("edges changed after six rotations: %v vs %v", tile.Edges(), orig)
	}
}

func TestRotateMovesLastEdgeToFront(t *testing.T) {
	tile := NewTile(1, [6]Terrain{Forest, Mountain, Prairie, River, Wetland, Forest}, 0, false)
	tile.Rotate()
	want := [6]Terrain{Forest, Forest, Mountain, Prairie, River, Wetland}
	if got := tile.Edges(); got != want {
		t.Fatalf("after one rotation got %v want %v", got, want)
	}
	if tile.EdgeTerrain(1) != Forest || tile.EdgeTerrain(5) != Wetland {
		t.Fatalf("EdgeTerrain does not follow rotation")
	}
	if err := Rotate(nil); !errors.Is(err, ErrNoTile) {
		t.Fatalf("expected ErrNoTile, got %v", err)
	}
}

func TestPlacementRequiresAdjacencyAndEmptyCoord(t *testing.T) {
	h := New()
	if err := h.Seed(hex.Axial{}, NewTile(1, split(Forest, River), NewAnimalSet(Bear), false)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if h.CanPlaceTile(hex.Axial{}) {
		t.Fatalf("occupied coordinate reported placeable")
	}
	if err := h.Place(hex.Axial{Q: 3, R: 0}, NewTile(2, split(Forest, River), 0, false)); !errors.Is(err, ErrNotAdjacent) {
		t.Fatalf("expected ErrNotAdjacent, got %v", err)
	}
	if err := h.Place(hex.Axial{}, NewTile(3, split(Forest, River), 0, false)); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
	if err := h.Place(hex.Axial{Q: 1, R: 0}, NewTile(4, split(Forest, River), 0, false)); err != nil {
		t.Fatalf("unexpected place error: %v", err)
	}
	if h.Len() != 2 {
		t.Fatalf("expected 2 tiles, got %d", h.Len())
	}
}

func TestTokenPlacementChecksCapabilityAndEmptiness(t *testing.T) {
	h := New()
	_ = h.Seed(hex.Axial{}, NewTile(1, split(Forest, River), NewAnimalSet(Bear, Elk), false))
	if h.CanPlaceToken(hex.Axial{}, Hawk) {
		t.Fatalf("hawk should not be placeable on bear/elk tile")
	}
	if err := h.PlaceToken(hex.Axial{}, NewToken(Hawk)); !errors.Is(err, ErrNotCapable) {
		t.Fatalf("expected ErrNotCapable, got %v", err)
	}
	if err := h.PlaceToken(hex.Axial{}, NewToken(Elk)); err != nil {
		t.Fatalf("unexpected token error: %v", err)
	}
	if err := h.PlaceToken(hex.Axial{}, NewToken(Bear)); !errors.Is(err, ErrTokenPresent) {
		t.Fatalf("expected ErrTokenPresent, got %v", err)
	}
	if err := h.PlaceToken(hex.Axial{Q: 1}, NewToken(Bear)); !errors.Is(err, ErrEmptyCoord) {
		t.Fatalf("expected ErrEmptyCoord, got %v", err)
	}
	if got := h.Tokens(Elk); len(got) != 1 || got[0] != (hex.Axial{}) {
		t.Fatalf("unexpected elk tokens %v", got)
	}
}

func TestTerrainLinkedUsesFacingEdges(t *testing.T) {
	h := New()
	// Direction 0 faces (1,0); the neighbor faces back through edge 3.
	left := NewTile(1, [6]Terrain{River, Forest, Forest, Forest, Forest, Forest}, 0, false)
	right := NewTile(2, [6]Terrain{Prairie, Prairie, Prairie, River, Prairie, Prairie}, 0, false)
	_ = h.Seed(hex.Axial{}, left)
	_ = h.Seed(hex.Axial{Q: 1}, right)
	if !h.TerrainLinked(hex.Axial{}, hex.Axial{Q: 1}, River) {
		t.Fatalf("expected river link")
	}
	right.Rotate()
	if h.TerrainLinked(hex.Axial{}, hex.Axial{Q: 1}, River) {
		t.Fatalf("rotation should break the river link")
	}
}

func TestParseSuggestsClosestName(t *testing.T) {
	if a, err := ParseAnimal(" Salmon "); err != nil || a != Salmon {
		t.Fatalf("ParseAnimal = %v, %v", a, err)
	}
	_, err := ParseAnimal("haw")
	if err == nil || !strings.Contains(err.Error(), `"hawk"`) {
		t.Fatalf("expected hawk suggestion, got %v", err)
	}
	if _, err := ParseTerrain("ocean"); err == nil {
		t.Fatalf("expected error for unknown terrain")
	}
	var tr Terrain
	if err := tr.UnmarshalText([]byte("wetland")); err != nil || tr != Wetland {
		t.Fatalf("UnmarshalText = %v, %v", tr, err)
	}
}
