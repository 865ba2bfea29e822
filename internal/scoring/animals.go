package scoring

import (
	"github.com/gravitas-games/habitats/internal/habitat"
	"github.com/gravitas-games/habitats/internal/hex"
)

type scorer func(h *habitat.Habitat) int

type ruleKey struct {
	animal  habitat.Animal
	variant Variant
}

var scorers = map[ruleKey]scorer{
	{habitat.Bear, VariantA}:   bearPairs,
	{habitat.Bear, VariantB}:   bearTriples,
	{habitat.Elk, VariantA}:    elkLines,
	{habitat.Elk, VariantB}:    elkHerds,
	{habitat.Fox, VariantA}:    foxVariety,
	{habitat.Fox, VariantB}:    foxPairs,
	{habitat.Hawk, VariantA}:   hawkSolitary,
	{habitat.Hawk, VariantB}:   hawkLines,
	{habitat.Salmon, VariantA}: salmonRunsA,
	{habitat.Salmon, VariantB}: salmonRunsB,
}

// Animal scores species a in h under variant v.
func Animal(a habitat.Animal, v Variant, h *habitat.Habitat) int {
	fn, ok := scorers[ruleKey{a, v}]
	if !ok {
		return 0
	}
	return fn(h)
}

var (
	bearPairTable   = []int{0, 4, 11, 19, 27}
	elkTable        = []int{0, 2, 5, 9, 13}
	salmonTableA    = []int{0, 2, 5, 8, 12, 16, 20, 25}
	salmonTableB    = []int{0, 2, 4, 9, 12, 17, 20, 25}
	hawkTableA      = []int{0, 2, 5, 8, 11, 14, 18, 22, 26}
	hawkTableB      = []int{0, 4, 7, 10, 14, 18, 22, 26}
	foxPairTable    = []int{0, 3, 5, 7}
	bearTriplePoint = 10
)

func tokens(h *habitat.Habitat, a habitat.Animal) cellSet {
	return newCellSet(h.Tokens(a))
}

// bearPairs greedily matches adjacent bears into disjoint pairs, always
// pairing the bear with the fewest free partners first.
func bearPairs(h *habitat.Habitat) int {
	free := tokens(h, habitat.Bear)
	pairs := 0
	for {
		var pick hex.Axial
		pickDeg := 7
		for _, c := range free.sorted() {
			if d := free.degree(c); d > 0 && d < pickDeg {
				pick, pickDeg = c, d
			}
		}
		if pickDeg == 7 {
			break
		}
		var mate hex.Axial
		mateDeg := 7
		for _, nb := range pick.Neighbors() {
			if !free[nb] {
				continue
			}
			d := free.degree(nb)
			if d < mateDeg || (d == mateDeg && hex.Compare(nb, mate) < 0) {
				mate, mateDeg = nb, d
			}
		}
		delete(free, pick)
		delete(free, mate)
		pairs++
	}
	return bearPairTable[min(pairs, len(bearPairTable)-1)]
}

// bearTriples scores every group of exactly three connected bears.
func bearTriples(h *habitat.Habitat) int {
	n := 0
	for _, g := range components(tokens(h, habitat.Bear), anyLink) {
		if len(g) == 3 {
			n++
		}
	}
	return n * bearTriplePoint
}

// elkLines repeatedly removes the longest straight elk line (at most four
// long) and scores it.
func elkLines(h *habitat.Habitat) int {
	free := tokens(h, habitat.Elk)
	total := 0
	for len(free) > 0 {
		line := longestLine(free, len(elkTable)-1)
		for _, c := range line {
			delete(free, c)
		}
		total += elkTable[len(line)]
	}
	return total
}

// elkHerds scores each connected elk group once, by size capped at four.
func elkHerds(h *habitat.Habitat) int {
	total := 0
	for _, g := range components(tokens(h, habitat.Elk), anyLink) {
		total += elkTable[min(len(g), len(elkTable)-1)]
	}
	return total
}

// salmonRuns scores connected salmon groups in which no salmon touches more
// than two others. Closed triangles are void unless allowTriangle is set.
func salmonRuns(h *habitat.Habitat, table []int, allowTriangle bool) int {
	fish := tokens(h, habitat.Salmon)
	total := 0
	for _, g := range components(fish, anyLink) {
		valid := true
		for _, c := range g {
			if fish.degree(c) > 2 {
				valid = false
				break
			}
		}
		if valid && !allowTriangle && isTriangle(g) {
			valid = false
		}
		if valid {
			total += table[min(len(g), len(table)-1)]
		}
	}
	return total
}

func isTriangle(g []hex.Axial) bool {
	return len(g) == 3 &&
		hex.AreAdjacent(g[0], g[1]) && hex.AreAdjacent(g[1], g[2]) && hex.AreAdjacent(g[0], g[2])
}

func salmonRunsA(h *habitat.Habitat) int { return salmonRuns(h, salmonTableA, false) }
func salmonRunsB(h *habitat.Habitat) int { return salmonRuns(h, salmonTableB, true) }

// hawkSolitary scores hawks that have no neighboring hawk.
func hawkSolitary(h *habitat.Habitat) int {
	hawks := tokens(h, habitat.Hawk)
	n := 0
	for c := range hawks {
		if hawks.degree(c) == 0 {
			n++
		}
	}
	return lookup(hawkTableA, n, 4)
}

// hawkLines repeatedly removes the longest straight hawk run, the way elk
// lines are found. Each run of two or more hawks scores by its number of
// links; lone hawks score nothing.
func hawkLines(h *habitat.Habitat) int {
	free := tokens(h, habitat.Hawk)
	total := 0
	for len(free) > 0 {
		line := longestLine(free, 0)
		for _, c := range line {
			delete(free, c)
		}
		total += lookup(hawkTableB, len(line)-1, 4)
	}
	return total
}

// foxVariety gives each fox one point per distinct species around it.
func foxVariety(h *habitat.Habitat) int {
	total := 0
	for _, c := range h.Tokens(habitat.Fox) {
		var seen habitat.AnimalSet
		for _, a := range h.NeighborAnimals(c) {
			seen = seen.With(a)
		}
		total += seen.Len()
	}
	return total
}

// foxPairs scores each fox by how many other species appear at least twice
// around it.
func foxPairs(h *habitat.Habitat) int {
	total := 0
	for _, c := range h.Tokens(habitat.Fox) {
		var counts [len(habitat.Animals)]int
		for _, a := range h.NeighborAnimals(c) {
			counts[a]++
		}
		pairs := 0
		for _, a := range habitat.Animals {
			if a != habitat.Fox && counts[a] >= 2 {
				pairs++
			}
		}
		total += foxPairTable[min(pairs, len(foxPairTable)-1)]
	}
	return total
}
