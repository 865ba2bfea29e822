package supply

import (
	"fmt"

	"github.com/gravitas-games/habitats/internal/habitat"
)

// OverpopulationKind classifies how many shop tokens share a species.
type OverpopulationKind int

const (
	NoOverpopulation OverpopulationKind = iota
	ThreeOfAKind
	FourOfAKind
)

// String returns a human-readable representation of the kind.
func (k OverpopulationKind) String() string {
	switch k {
	case NoOverpopulation:
		return "None"
	case ThreeOfAKind:
		return "ThreeOfAKind"
	case FourOfAKind:
		return "FourOfAKind"
	default:
		return "Unknown"
	}
}

// Overpopulation is the result of DetectOverpopulation. Indices lists the
// slots of the matching tokens in ascending order.
type Overpopulation struct {
	Kind    OverpopulationKind `json:"kind"`
	Animal  habitat.Animal     `json:"animal"`
	Indices []int              `json:"indices,omitempty"`
}

// DetectOverpopulation groups the shop's tokens by species, ignoring empty
// slots. Two different groups of three cannot exist with four slots.
func DetectOverpopulation(s *Shop) Overpopulation {
	var groups [len(habitat.Animals)][]int
	for i, sl := range s.slots {
		if sl.Token != nil {
			a := sl.Token.Animal
			groups[a] = append(groups[a], i)
		}
	}
	for _, a := range habitat.Animals {
		switch len(groups[a]) {
		case 4:
			return Overpopulation{Kind: FourOfAKind, Animal: a, Indices: groups[a]}
		case 3:
			return Overpopulation{Kind: ThreeOfAKind, Animal: a, Indices: groups[a]}
		}
	}
	return Overpopulation{Kind: NoOverpopulation}
}

// ResolveFourOfAKind replaces all four tokens. It fails without changes when
// the shop is not four of a kind or fewer than four tokens remain.
func ResolveFourOfAKind(s *Shop, sup *Supply) error {
	op := DetectOverpopulation(s)
	if op.Kind != FourOfAKind {
		return fmt.Errorf("%w: shop is not four of a kind", ErrInvalidArgument)
	}
	return s.ReplaceTokens(op.Indices, sup)
}

// ResolveThreeOfAKind replaces the three matching tokens at indices.
func ResolveThreeOfAKind(indices []int, s *Shop, sup *Supply) error {
	op := DetectOverpopulation(s)
	if op.Kind != ThreeOfAKind {
		return fmt.Errorf("%w: shop is not three of a kind", ErrInvalidArgument)
	}
	if !sameIndices(indices, op.Indices) {
		return fmt.Errorf("%w: indices %v do not match the overpopulated slots %v", ErrInvalidArgument, indices, op.Indices)
	}
	return s.ReplaceTokens(indices, sup)
}

// Cull resolves four-of-a-kind displays until none remain, at most
// maxRounds times. It returns the number of replacements made and
// ErrInsufficientSupply when the token supply cannot cover another round;
// the shop is then left as it was before that round.
func Cull(s *Shop, sup *Supply, maxRounds int) (int, error) {
	rounds := 0
	for rounds < maxRounds {
		if DetectOverpopulation(s).Kind != FourOfAKind {
			return rounds, nil
		}
		if err := ResolveFourOfAKind(s, sup); err != nil {
			return rounds, err
		}
		rounds++
	}
	return rounds, nil
}

func sameIndices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	var seen [Slots]int
	for _, i := range a {
		if i < 0 || i >= Slots {
			return false
		}
		seen[i]++
	}
	for _, i := range b {
		if seen[i] == 0 {
			return false
		}
		seen[i]--
	}
	return true
}
