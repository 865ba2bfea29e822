package scoring

import (
	"errors"
	"testing"

	"github.com/gravitas-games/habitats/internal/habitat"
	"github.com/gravitas-games/habitats/internal/hex"
)

var allAnimals = habitat.NewAnimalSet(habitat.Animals[:]...)

// build seeds a habitat with one all-forest tile per entry and places the
// given token on it.
func build(t *testing.T, tokens map[hex.Axial]habitat.Animal) *habitat.Habitat {
	t.Helper()
	h := habitat.New()
	id := 1
	for c, a := range tokens {
		tile := habitat.NewTile(id, [6]habitat.Terrain{}, allAnimals, false)
		id++
		if err := h.Seed(c, tile); err != nil {
			t.Fatalf("seed %v: %v", c, err)
		}
		if err := h.PlaceToken(c, habitat.NewToken(a)); err != nil {
			t.Fatalf("token %v: %v", c, err)
		}
	}
	return h
}

func at(q, r int) hex.Axial { return hex.Axial{Q: q, R: r} }

func TestBearPairTable(t *testing.T) {
	for pairs, want := range map[int]int{1: 4, 2: 11, 3: 19, 4: 27, 5: 27} {
		tokens := make(map[hex.Axial]habitat.Animal)
		for k := 0; k < pairs; k++ {
			tokens[at(10*k, 0)] = habitat.Bear
			tokens[at(10*k+1, 0)] = habitat.Bear
		}
		if got := Animal(habitat.Bear, VariantA, build(t, tokens)); got != want {
			t.Fatalf("%d pairs: expected %d, got %d", pairs, want, got)
		}
	}
}

func TestBearPairsGreedyMatching(t *testing.T) {
	line := build(t, map[hex.Axial]habitat.Animal{
		at(0, 0): habitat.Bear, at(1, 0): habitat.Bear, at(2, 0): habitat.Bear, at(3, 0): habitat.Bear,
	})
	if got := Animal(habitat.Bear, VariantA, line); got != 11 {
		t.Fatalf("line of four bears: expected two pairs (11), got %d", got)
	}
	lonely := build(t, map[hex.Axial]habitat.Animal{at(0, 0): habitat.Bear, at(5, 5): habitat.Bear})
	if got := Animal(habitat.Bear, VariantA, lonely); got != 0 {
		t.Fatalf("isolated bears should score 0, got %d", got)
	}
}

func TestBearTriples(t *testing.T) {
	h := build(t, map[hex.Axial]habitat.Animal{
		at(0, 0): habitat.Bear, at(1, 0): habitat.Bear, at(2, 0): habitat.Bear,
		at(10, 0): habitat.Bear, at(11, 0): habitat.Bear, at(10, 1): habitat.Bear,
		at(20, 0): habitat.Bear, at(21, 0): habitat.Bear, at(22, 0): habitat.Bear, at(23, 0): habitat.Bear,
	})
	if got := Animal(habitat.Bear, VariantB, h); got != 20 {
		t.Fatalf("expected two scoring triples (20), got %d", got)
	}
}

func TestSalmonTriangleIsVoidUnderA(t *testing.T) {
	triangle := build(t, map[hex.Axial]habitat.Animal{
		at(0, 0): habitat.Salmon, at(1, 0): habitat.Salmon, at(0, 1): habitat.Salmon,
	})
	if got := Animal(habitat.Salmon, VariantA, triangle); got != 0 {
		t.Fatalf("triangle under A: expected 0, got %d", got)
	}
	if got := Animal(habitat.Salmon, VariantB, triangle); got != 9 {
		t.Fatalf("triangle under B: expected 9, got %d", got)
	}
	run := build(t, map[hex.Axial]habitat.Animal{
		at(0, 0): habitat.Salmon, at(1, 0): habitat.Salmon, at(2, 0): habitat.Salmon,
	})
	if got := Animal(habitat.Salmon, VariantA, run); got != 8 {
		t.Fatalf("straight run of 3 under A: expected 8, got %d", got)
	}
}

func TestSalmonBranchingRunScoresNothing(t *testing.T) {
	h := build(t, map[hex.Axial]habitat.Animal{
		at(0, 0): habitat.Salmon, at(1, 0): habitat.Salmon, at(-1, 0): habitat.Salmon, at(0, -1): habitat.Salmon,
		at(10, 0): habitat.Salmon,
	})
	if got := Animal(habitat.Salmon, VariantA, h); got != 2 {
		t.Fatalf("expected only the lone salmon to score 2, got %d", got)
	}
	long := make(map[hex.Axial]habitat.Animal)
	for q := 0; q < 9; q++ {
		long[at(q, 0)] = habitat.Salmon
	}
	if got := Animal(habitat.Salmon, VariantA, build(t, long)); got != 25 {
		t.Fatalf("run of 9 should cap at 25, got %d", got)
	}
}

func TestElkLinesAndHerds(t *testing.T) {
	five := make(map[hex.Axial]habitat.Animal)
	for r := 0; r < 5; r++ {
		five[at(0, r)] = habitat.Elk
	}
	if got := Animal(habitat.Elk, VariantA, build(t, five)); got != 15 {
		t.Fatalf("line of five: expected 13+2, got %d", got)
	}
	herd := build(t, map[hex.Axial]habitat.Animal{
		at(0, 0): habitat.Elk, at(1, 0): habitat.Elk, at(0, 1): habitat.Elk,
	})
	if got := Animal(habitat.Elk, VariantA, herd); got != 7 {
		t.Fatalf("triangle as lines: expected 5+2, got %d", got)
	}
	if got := Animal(habitat.Elk, VariantB, herd); got != 9 {
		t.Fatalf("triangle as herd: expected 9, got %d", got)
	}
}

func TestHawkScoring(t *testing.T) {
	solo := build(t, map[hex.Axial]habitat.Animal{
		at(0, 0): habitat.Hawk, at(2, 0): habitat.Hawk, at(4, 0): habitat.Hawk,
		at(9, 0): habitat.Hawk, at(10, 0): habitat.Hawk,
	})
	if got := Animal(habitat.Hawk, VariantA, solo); got != 8 {
		t.Fatalf("three isolated hawks: expected 8, got %d", got)
	}
	if got := Animal(habitat.Hawk, VariantB, solo); got != 4 {
		t.Fatalf("spaced hawks: expected only the adjacent pair (4), got %d", got)
	}
	runs := build(t, map[hex.Axial]habitat.Animal{
		at(0, 0): habitat.Hawk, at(1, 0): habitat.Hawk, at(2, 0): habitat.Hawk,
		at(0, 4): habitat.Hawk, at(0, 5): habitat.Hawk,
		at(6, 6): habitat.Hawk,
	})
	if got := Animal(habitat.Hawk, VariantB, runs); got != 11 {
		t.Fatalf("hawk runs of 3 and 2: expected 7+4, got %d", got)
	}
	if got := Animal(habitat.Hawk, VariantA, runs); got != 2 {
		t.Fatalf("one isolated hawk: expected 2, got %d", got)
	}
	if got := lookup(hawkTableA, 10, 4); got != 34 {
		t.Fatalf("hawk table should extend by 4 per hawk, got %d", got)
	}
}

func TestFoxScoring(t *testing.T) {
	h := build(t, map[hex.Axial]habitat.Animal{
		at(0, 0):  habitat.Fox,
		at(1, 0):  habitat.Bear,
		at(1, -1): habitat.Elk,
		at(0, -1): habitat.Elk,
		at(-1, 0): habitat.Fox,
	})
	if got := Animal(habitat.Fox, VariantA, h); got != 5 {
		t.Fatalf("fox variety: expected 3+2, got %d", got)
	}
	if got := Animal(habitat.Fox, VariantB, h); got != 3 {
		t.Fatalf("fox pairs: expected 3, got %d", got)
	}
}

func TestLongestTerrainFollowsEdges(t *testing.T) {
	h := habitat.New()
	forest := [6]habitat.Terrain{}
	_ = h.Seed(at(0, 0), habitat.NewTile(1, forest, allAnimals, false))
	_ = h.Seed(at(1, 0), habitat.NewTile(2, forest, allAnimals, false))
	_ = h.Seed(at(2, 0), habitat.NewTile(3, forest, allAnimals, false))
	split := [6]habitat.Terrain{habitat.River, habitat.River, habitat.River, habitat.Wetland, habitat.Wetland, habitat.Wetland}
	_ = h.Seed(at(0, 1), habitat.NewTile(4, split, allAnimals, false))
	if got := LongestTerrain(habitat.Forest, h); got != 3 {
		t.Fatalf("expected forest region 3, got %d", got)
	}
	if got := LongestTerrain(habitat.River, h); got != 1 {
		t.Fatalf("expected river region 1, got %d", got)
	}
	if got := LongestTerrain(habitat.Prairie, h); got != 0 {
		t.Fatalf("expected no prairie, got %d", got)
	}
}

func TestLongestTerrainInvariantUnderEquivalentRotation(t *testing.T) {
	printed := [6]habitat.Terrain{habitat.River, habitat.River, habitat.Forest, habitat.Forest, habitat.Forest, habitat.River}
	coords := []hex.Axial{at(0, 0), at(1, 0), at(1, -1), at(0, 1), at(-1, 1)}
	plain, shifted := habitat.New(), habitat.New()
	for i, c := range coords {
		_ = plain.Seed(c, habitat.NewTile(i, printed, allAnimals, false))
		// Printing the sequence k steps earlier and rotating k times shows
		// the same edges in every direction.
		k := i + 1
		var alt [6]habitat.Terrain
		for d := range alt {
			alt[d] = printed[(d+k)%6]
		}
		tile := habitat.NewTile(i, alt, allAnimals, false)
		tile.SetRotation(k)
		if tile.Edges() != printed {
			t.Fatalf("relabelled tile shows %v, want %v", tile.Edges(), printed)
		}
		_ = shifted.Seed(c, tile)
	}
	for _, tr := range habitat.Terrains {
		if a, b := LongestTerrain(tr, plain), LongestTerrain(tr, shifted); a != b {
			t.Fatalf("%s: %d vs %d after relabelling", tr, a, b)
		}
	}
}

func lengths(forest ...int) []map[habitat.Terrain]int {
	out := make([]map[habitat.Terrain]int, len(forest))
	for i, f := range forest {
		out[i] = map[habitat.Terrain]int{}
		for _, tr := range habitat.Terrains {
			out[i][tr] = 0
		}
		out[i][habitat.Forest] = f
	}
	return out
}

func TestBonusRanking(t *testing.T) {
	cases := []struct {
		name string
		in   []int
		want []int
	}{
		{"two leader", []int{5, 4}, []int{2, 0}},
		{"two tied", []int{5, 5}, []int{1, 1}},
		{"three leader runner", []int{5, 4, 3}, []int{3, 1, 0}},
		{"three tied leaders pair", []int{5, 5, 3}, []int{2, 2, 0}},
		{"three way tie", []int{5, 5, 5}, []int{1, 1, 1}},
		{"tied runners", []int{5, 4, 4}, []int{3, 1, 1}},
		{"four players", []int{2, 6, 4, 1}, []int{0, 3, 1, 0}},
		{"solo below", []int{6}, []int{0}},
		{"solo reached", []int{7}, []int{2}},
		{"nobody", []int{0, 0}, []int{0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Bonus(lengths(tc.in...))
			if err != nil {
				t.Fatalf("bonus: %v", err)
			}
			for i, w := range tc.want {
				if got[i][habitat.Forest] != w {
					t.Fatalf("player %d: expected %d, got %d", i, w, got[i][habitat.Forest])
				}
			}
		})
	}
}

func TestBonusRejectsIncompleteInput(t *testing.T) {
	in := lengths(3, 4)
	delete(in[1], habitat.Wetland)
	if _, err := Bonus(in); !errors.Is(err, ErrIncompleteInput) {
		t.Fatalf("expected ErrIncompleteInput, got %v", err)
	}
	if _, err := Bonus(nil); !errors.Is(err, ErrIncompleteInput) {
		t.Fatalf("expected ErrIncompleteInput for no players, got %v", err)
	}
}

func TestCalculateBreakdown(t *testing.T) {
	a := build(t, map[hex.Axial]habitat.Animal{at(0, 0): habitat.Bear, at(1, 0): habitat.Bear})
	b := build(t, map[hex.Axial]habitat.Animal{at(0, 0): habitat.Hawk})
	rules, err := ParseRules(map[string]string{"salmon": "b"})
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if rules.For(habitat.Salmon) != VariantB || rules.For(habitat.Bear) != VariantA {
		t.Fatalf("unexpected rules %s", rules)
	}
	out, err := Calculate([]Input{
		{Player: "ana", Habitat: a, NatureTokens: 2},
		{Player: "ben", Habitat: b},
	}, rules)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if out[0].Animals[habitat.Bear] != 4 || out[1].Animals[habitat.Hawk] != 2 {
		t.Fatalf("unexpected animal scores %+v / %+v", out[0].Animals, out[1].Animals)
	}
	if out[0].Terrains[habitat.Forest] != 2 || out[0].Bonus[habitat.Forest] != 2 || out[1].Bonus[habitat.Forest] != 0 {
		t.Fatalf("unexpected terrain scores %+v %+v", out[0], out[1])
	}
	if got := out[0].Total(); got != 4+2+2+2 {
		t.Fatalf("expected total 10, got %d", got)
	}
}
