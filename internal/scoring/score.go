package scoring

import (
	"fmt"

	"github.com/gravitas-games/habitats/internal/habitat"
)

// Input is one player's finished state.
type Input struct {
	Player       string
	Habitat      *habitat.Habitat
	NatureTokens int
}

// Breakdown is one player's score by component. Callers sum it with Total.
type Breakdown struct {
	Player       string                  `json:"player"`
	Animals      map[habitat.Animal]int  `json:"animals"`
	Terrains     map[habitat.Terrain]int `json:"terrains"`
	Bonus        map[habitat.Terrain]int `json:"bonus"`
	NatureTokens int                     `json:"nature_tokens"`
}

// AnimalTotal sums the wildlife scores.
func (b Breakdown) AnimalTotal() int {
	n := 0
	for _, v := range b.Animals {
		n += v
	}
	return n
}

// TerrainTotal sums own region lengths and majority bonuses.
func (b Breakdown) TerrainTotal() int {
	n := 0
	for _, v := range b.Terrains {
		n += v
	}
	for _, v := range b.Bonus {
		n += v
	}
	return n
}

// Total adds every component including nature tokens.
func (b Breakdown) Total() int {
	return b.AnimalTotal() + b.TerrainTotal() + b.NatureTokens
}

// Animals scores every species of h under rules.
func Animals(h *habitat.Habitat, rules Rules) map[habitat.Animal]int {
	out := make(map[habitat.Animal]int, len(habitat.Animals))
	for _, a := range habitat.Animals {
		out[a] = Animal(a, rules.For(a), h)
	}
	return out
}

// Calculate scores every player, including the cross-player terrain bonus.
func Calculate(players []Input, rules Rules) ([]Breakdown, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrIncompleteInput)
	}
	out := make([]Breakdown, len(players))
	lengths := make([]map[habitat.Terrain]int, len(players))
	for i, p := range players {
		if p.Habitat == nil {
			return nil, fmt.Errorf("%w: player %s has no habitat", ErrIncompleteInput, p.Player)
		}
		lengths[i] = TerrainLengths(p.Habitat)
		out[i] = Breakdown{
			Player:       p.Player,
			Animals:      Animals(p.Habitat, rules),
			Terrains:     lengths[i],
			NatureTokens: p.NatureTokens,
		}
	}
	bonus, err := Bonus(lengths)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Bonus = bonus[i]
	}
	return out, nil
}
