package hex

// Compare orders coordinates by R then Q, for deterministic iteration over
// map-backed sets.
func Compare(a, b Axial) int {
	if a.R != b.R {
		return a.R - b.R
	}
	return a.Q - b.Q
}
