package hex

// Axial represents axial coordinates (q, r) for pointy-top orientation.
type Axial struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// Directions for axial neighbors in pointy-top orientation. Index i is also
// the edge index of a tile that faces the neighbor in that direction.
var Directions = [6]Axial{
	{+1, 0}, {+1, -1}, {0, -1}, {-1, 0}, {-1, +1}, {0, +1},
}

// Axes are the direction indices of the three hex axes. Walking an axis in
// direction d and d+3 covers the whole line.
var Axes = [3]int{0, 1, 2}

// Add returns a+b in axial space.
func (a Axial) Add(b Axial) Axial { return Axial{a.Q + b.Q, a.R + b.R} }

// Neighbor returns the adjacent coordinate in direction dir (0..5).
func (a Axial) Neighbor(dir int) Axial { return a.Add(Directions[norm(dir)]) }

// Neighbors returns the six adjacent coordinates in direction order.
func (a Axial) Neighbors() [6]Axial {
	var out [6]Axial
	for i, d := range Directions {
		out[i] = a.Add(d)
	}
	return out
}

// Opposite returns the direction pointing back along dir.
func Opposite(dir int) int { return norm(dir + 3) }

// AreAdjacent reports whether b is one of the six neighbors of a.
func AreAdjacent(a, b Axial) bool {
	_, ok := DirectionTo(a, b)
	return ok
}

// DirectionTo returns the direction index leading from a to its neighbor b.
// ok is false when the two coordinates are not adjacent.
func DirectionTo(a, b Axial) (dir int, ok bool) {
	delta := Axial{b.Q - a.Q, b.R - a.R}
	for i, d := range Directions {
		if d == delta {
			return i, true
		}
	}
	return 0, false
}

func norm(dir int) int {
	dir %= 6
	if dir < 0 {
		dir += 6
	}
	return dir
}
