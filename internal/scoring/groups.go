package scoring

import (
	"slices"

	"github.com/gravitas-games/habitats/internal/hex"
)

type cellSet map[hex.Axial]bool

func newCellSet(cells []hex.Axial) cellSet {
	s := make(cellSet, len(cells))
	for _, c := range cells {
		s[c] = true
	}
	return s
}

func (s cellSet) sorted() []hex.Axial {
	out := make([]hex.Axial, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	slices.SortFunc(out, hex.Compare)
	return out
}

// degree counts the members of s adjacent to c.
func (s cellSet) degree(c hex.Axial) int {
	n := 0
	for _, nb := range c.Neighbors() {
		if s[nb] {
			n++
		}
	}
	return n
}

// components flood-fills s into connected groups, where linked decides
// whether two neighboring members connect. Groups and their members come
// out in deterministic order.
func components(s cellSet, linked func(a, b hex.Axial) bool) [][]hex.Axial {
	visited := make(map[hex.Axial]bool, len(s))
	var groups [][]hex.Axial
	for _, start := range s.sorted() {
		if visited[start] {
			continue
		}
		visited[start] = true
		group := []hex.Axial{start}
		queue := []hex.Axial{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range cur.Neighbors() {
				if !s[nb] || visited[nb] || !linked(cur, nb) {
					continue
				}
				visited[nb] = true
				group = append(group, nb)
				queue = append(queue, nb)
			}
		}
		slices.SortFunc(group, hex.Compare)
		groups = append(groups, group)
	}
	return groups
}

// anyLink connects every pair of neighboring members.
func anyLink(a, b hex.Axial) bool { return true }

// longestLine returns the longest straight run of members of s along one
// of the three axes, truncated to limit cells when limit > 0. Ties go to
// the run whose first cell sorts first.
func longestLine(s cellSet, limit int) []hex.Axial {
	var best []hex.Axial
	for _, start := range s.sorted() {
		for _, dir := range hex.Axes {
			if s[start.Neighbor(hex.Opposite(dir))] {
				continue
			}
			run := []hex.Axial{start}
			for cur := start.Neighbor(dir); s[cur]; cur = cur.Neighbor(dir) {
				run = append(run, cur)
			}
			if limit > 0 && len(run) > limit {
				run = run[:limit]
			}
			if len(run) > len(best) {
				best = run
			}
		}
	}
	return best
}

// lookup reads table[n], extending past the end by step per extra unit.
func lookup(table []int, n, step int) int {
	if n <= 0 {
		return 0
	}
	if n < len(table) {
		return table[n]
	}
	last := len(table) - 1
	return table[last] + (n-last)*step
}
