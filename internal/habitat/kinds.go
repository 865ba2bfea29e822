// Package habitat models a player's hex grid of placed habitat tiles and the
// wildlife tokens resting on them.
package habitat

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Terrain is one of the five landscape types printed on tile edges.
type Terrain int

const (
	Forest Terrain = iota
	Mountain
	Prairie
	River
	Wetland
)

// Terrains lists every terrain in canonical order.
var Terrains = [...]Terrain{Forest, Mountain, Prairie, River, Wetland}

var terrainNames = [...]string{"forest", "mountain", "prairie", "river", "wetland"}

// String returns the lower-case terrain name.
func (t Terrain) String() string {
	if t < 0 || int(t) >= len(terrainNames) {
		return fmt.Sprintf("terrain(%d)", int(t))
	}
	return terrainNames[t]
}

// MarshalText encodes the terrain by name.
func (t Terrain) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText decodes a terrain name.
func (t *Terrain) UnmarshalText(b []byte) error {
	v, err := ParseTerrain(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Animal is one of the five wildlife species.
type Animal int

const (
	Bear Animal = iota
	Elk
	Fox
	Hawk
	Salmon
)

// Animals lists every species in canonical order.
var Animals = [...]Animal{Bear, Elk, Fox, Hawk, Salmon}

var animalNames = [...]string{"bear", "elk", "fox", "hawk", "salmon"}

func (a Animal) String() string {
	if a < 0 || int(a) >= len(animalNames) {
		return fmt.Sprintf("animal(%d)", int(a))
	}
	return animalNames[a]
}

// MarshalText encodes the animal by name.
func (a Animal) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText decodes an animal name.
func (a *Animal) UnmarshalText(b []byte) error {
	v, err := ParseAnimal(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseTerrain resolves a case-insensitive terrain name.
func ParseTerrain(s string) (Terrain, error) {
	i, err := lookupName("terrain", s, terrainNames[:])
	return Terrain(i), err
}

// ParseAnimal resolves a case-insensitive animal name.
func ParseAnimal(s string) (Animal, error) {
	i, err := lookupName("animal", s, animalNames[:])
	return Animal(i), err
}

// lookupName matches s against names and, on a miss, suggests the closest
// name when it is within two edits.
func lookupName(kind, s string, names []string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	best, bestDist := -1, 3
	for i, n := range names {
		if n == key {
			return i, nil
		}
		if d := levenshtein.ComputeDistance(key, n); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		return 0, fmt.Errorf("unknown %s %q (did you mean %q?)", kind, s, names[best])
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

// AnimalSet is a small bit set of species a tile can host.
type AnimalSet uint8

// NewAnimalSet builds a set from the given species.
func NewAnimalSet(animals ...Animal) AnimalSet {
	var s AnimalSet
	for _, a := range animals {
		s = s.With(a)
	}
	return s
}

// With returns the set including a.
func (s AnimalSet) With(a Animal) AnimalSet { return s | 1<<uint(a) }

// Has reports whether a is in the set.
func (s AnimalSet) Has(a Animal) bool { return s&(1<<uint(a)) != 0 }

// Len returns the number of species in the set.
func (s AnimalSet) Len() int {
	n := 0
	for _, a := range Animals {
		if s.Has(a) {
			n++
		}
	}
	return n
}

// List returns the species in canonical order.
func (s AnimalSet) List() []Animal {
	out := make([]Animal, 0, 5)
	for _, a := range Animals {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
