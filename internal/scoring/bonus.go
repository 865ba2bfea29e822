package scoring

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gravitas-games/habitats/internal/habitat"
)

// ErrIncompleteInput is returned when bonus input is missing players or
// terrains.
var ErrIncompleteInput = errors.New("incomplete terrain input")

// SoloThreshold is the region size that earns the solo terrain bonus.
const SoloThreshold = 7

// Bonus ranks players per terrain by longest region and awards majority
// points. lengths[i] is player i's longest region per terrain; the result
// is indexed the same way.
//
//	1 player:  2 if the region reaches SoloThreshold
//	2 players: leader 2, tied leaders 1 each
//	3+ players: leader 3, runners-up 1 each; two tied leaders 2 each and
//	            no runner-up; three or more tied leaders 1 each
//
// Players with no region of a terrain never score its bonus.
func Bonus(lengths []map[habitat.Terrain]int) ([]map[habitat.Terrain]int, error) {
	if len(lengths) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrIncompleteInput)
	}
	for i, m := range lengths {
		for _, tr := range habitat.Terrains {
			if _, ok := m[tr]; !ok {
				return nil, fmt.Errorf("%w: player %d has no %s length", ErrIncompleteInput, i, tr)
			}
		}
	}

	out := make([]map[habitat.Terrain]int, len(lengths))
	for i := range out {
		out[i] = make(map[habitat.Terrain]int, len(habitat.Terrains))
		for _, tr := range habitat.Terrains {
			out[i][tr] = 0
		}
	}
	for _, tr := range habitat.Terrains {
		if len(lengths) == 1 {
			if lengths[0][tr] >= SoloThreshold {
				out[0][tr] = 2
			}
			continue
		}
		ranks := rankGroups(lengths, tr)
		if len(ranks) == 0 {
			continue
		}
		first := ranks[0]
		switch {
		case len(lengths) == 2:
			award(out, tr, first, 2, 1)
		case len(first) == 1:
			out[first[0]][tr] = 3
			if len(ranks) > 1 {
				for _, p := range ranks[1] {
					out[p][tr] = 1
				}
			}
		case len(first) == 2:
			award(out, tr, first, 2, 2)
		default:
			award(out, tr, first, 1, 1)
		}
	}
	return out, nil
}

func award(out []map[habitat.Terrain]int, tr habitat.Terrain, group []int, alone, tied int) {
	pts := alone
	if len(group) > 1 {
		pts = tied
	}
	for _, p := range group {
		out[p][tr] = pts
	}
}

// rankGroups groups player indices by descending region length, skipping
// players without a region.
func rankGroups(lengths []map[habitat.Terrain]int, tr habitat.Terrain) [][]int {
	idx := make([]int, 0, len(lengths))
	for i, m := range lengths {
		if m[tr] > 0 {
			idx = append(idx, i)
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int { return lengths[b][tr] - lengths[a][tr] })
	var groups [][]int
	for k, p := range idx {
		if k > 0 && lengths[idx[k-1]][tr] == lengths[p][tr] {
			groups[len(groups)-1] = append(groups[len(groups)-1], p)
			continue
		}
		groups = append(groups, []int{p})
	}
	return groups
}
