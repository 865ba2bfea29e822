package supply

import (
	"strings"
	"testing"
)

func TestDefaultCatalogBuild(t *testing.T) {
	cat := DefaultCatalog()
	if got := cat.TileCount(); got != 85 {
		t.Fatalf("expected 85 tiles, got %d", got)
	}
	if got := cat.TokenCount(); got != 100 {
		t.Fatalf("expected 100 tokens, got %d", got)
	}
	deal, err := Build(cat, 42, 43)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if deal.Supply.TilesLeft() != 43 {
		t.Fatalf("expected tile stack trimmed to 43, got %d", deal.Supply.TilesLeft())
	}
	if len(deal.Starters) != 5 {
		t.Fatalf("expected 5 starter triads, got %d", len(deal.Starters))
	}
	ids := make(map[int]bool)
	for _, triad := range deal.Starters {
		for _, tile := range triad {
			if ids[tile.ID] {
				t.Fatalf("duplicate tile id %d", tile.ID)
			}
			ids[tile.ID] = true
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a, _ := Build(DefaultCatalog(), 7, 0)
	b, _ := Build(DefaultCatalog(), 7, 0)
	for a.Supply.TilesLeft() > 0 {
		ta, _ := a.Supply.DrawTile()
		tb, _ := b.Supply.DrawTile()
		if ta.ID != tb.ID {
			t.Fatalf("same seed produced different tile order: %d vs %d", ta.ID, tb.ID)
		}
	}
	pa, pb := a.Supply.PeekTokens(), b.Supply.PeekTokens()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("same seed produced different token order at %d", i)
		}
	}
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`
tiles:
  - edges: [forest]
    animals: [bear]
    keystone: true
    count: 2
  - edges: [river, wetland]
    animals: [salmon, hawk]
starters:
  - - {edges: [forest], animals: [bear], keystone: true}
    - {edges: [river, prairie], animals: [elk, fox]}
    - {edges: [mountain, forest, forest, river, river, mountain], animals: [hawk]}
tokens:
  bear: 3
  salmon: 1
`)
	cat, err := ParseCatalog(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cat.TileCount() != 3 || cat.TokenCount() != 4 {
		t.Fatalf("unexpected counts %d/%d", cat.TileCount(), cat.TokenCount())
	}
	deal, err := Build(cat, 1, 0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if deal.Supply.TilesLeft() != 3 || deal.Supply.TokensLeft() != 4 {
		t.Fatalf("unexpected supply %d/%d", deal.Supply.TilesLeft(), deal.Supply.TokensLeft())
	}

	_, err = ParseCatalog([]byte("tiles:\n  - edges: [forrest]\n    animals: [bear]\n"))
	if err == nil || !strings.Contains(err.Error(), "forest") {
		t.Fatalf("expected suggestion for misspelled terrain, got %v", err)
	}
	if _, err := ParseCatalog([]byte("tiles:\n  - edges: [forest, river, river]\n    animals: [bear]\n")); err == nil {
		t.Fatalf("expected error for three edges")
	}
}
