// Package supply holds the undealt tiles and tokens of a game and the shared
// four-slot shop they are dealt into.
package supply

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/habitats/internal/habitat"
)

// TileSpec describes one printed tile design. Edges lists one terrain (the
// whole tile), two terrains (three edges each) or all six edges in order.
type TileSpec struct {
	Edges    []string `yaml:"edges"`
	Animals  []string `yaml:"animals"`
	Keystone bool     `yaml:"keystone,omitempty"`
	Count    int      `yaml:"count,omitempty"`
}

// Catalog is the full component list of a game box.
type Catalog struct {
	Tiles    []TileSpec     `yaml:"tiles"`
	Starters [][]TileSpec   `yaml:"starters"`
	Tokens   map[string]int `yaml:"tokens"`
}

// LoadCatalog reads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates YAML catalog data.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks that every spec resolves to real terrains and animals.
func (c *Catalog) Validate() error {
	if len(c.Tiles) == 0 {
		return errors.New("catalog has no tiles")
	}
	for i, s := range c.Tiles {
		if _, _, err := s.resolve(); err != nil {
			return fmt.Errorf("tile %d: %w", i, err)
		}
		if s.Count < 0 {
			return fmt.Errorf("tile %d: count cannot be negative", i)
		}
	}
	for i, triad := range c.Starters {
		if len(triad) != 3 {
			return fmt.Errorf("starter %d: expected 3 tiles, got %d", i, len(triad))
		}
		for j, s := range triad {
			if _, _, err := s.resolve(); err != nil {
				return fmt.Errorf("starter %d tile %d: %w", i, j, err)
			}
		}
	}
	for name, n := range c.Tokens {
		if _, err := habitat.ParseAnimal(name); err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("token count for %s cannot be negative", name)
		}
	}
	return nil
}

func (s TileSpec) resolve() ([6]habitat.Terrain, habitat.AnimalSet, error) {
	var edges [6]habitat.Terrain
	terrains := make([]habitat.Terrain, 0, len(s.Edges))
	for _, name := range s.Edges {
		t, err := habitat.ParseTerrain(name)
		if err != nil {
			return edges, 0, err
		}
		terrains = append(terrains, t)
	}
	switch len(terrains) {
	case 1:
		for i := range edges {
			edges[i] = terrains[0]
		}
	case 2:
		for i := range edges {
			edges[i] = terrains[i/3]
		}
	case 6:
		copy(edges[:], terrains)
	default:
		return edges, 0, fmt.Errorf("edges must list 1, 2 or 6 terrains, got %d", len(terrains))
	}
	var set habitat.AnimalSet
	for _, name := range s.Animals {
		a, err := habitat.ParseAnimal(name)
		if err != nil {
			return edges, 0, err
		}
		set = set.With(a)
	}
	if set == 0 {
		return edges, 0, errors.New("tile hosts no animals")
	}
	return edges, set, nil
}

// TileCount returns the number of tiles the catalog produces.
func (c *Catalog) TileCount() int {
	n := 0
	for _, s := range c.Tiles {
		n += max(s.Count, 1)
	}
	return n
}

// TokenCount returns the number of tokens the catalog produces.
func (c *Catalog) TokenCount() int {
	n := 0
	for _, v := range c.Tokens {
		n += v
	}
	return n
}

// affinity lists, per terrain, the species that favour it.
var affinity = map[habitat.Terrain][]habitat.Animal{
	habitat.Forest:   {habitat.Bear, habitat.Elk, habitat.Fox},
	habitat.Mountain: {habitat.Bear, habitat.Elk, habitat.Hawk},
	habitat.Prairie:  {habitat.Elk, habitat.Fox, habitat.Salmon},
	habitat.River:    {habitat.Salmon, habitat.Hawk, habitat.Bear},
	habitat.Wetland:  {habitat.Salmon, habitat.Fox, habitat.Hawk},
}

func names[T fmt.Stringer](vs ...T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

// DefaultCatalog returns the standard box: 25 keystone tiles, 60 split
// tiles, five starter triads and 20 tokens per species.
func DefaultCatalog() *Catalog {
	cat := &Catalog{Tokens: make(map[string]int)}
	for _, t := range habitat.Terrains {
		fav := affinity[t]
		for i := 0; i < 5; i++ {
			cat.Tiles = append(cat.Tiles, TileSpec{
				Edges:    names(t),
				Animals:  names(fav[i%len(fav)]),
				Keystone: true,
				Count:    1,
			})
		}
	}
	for i, a := range habitat.Terrains {
		for _, b := range habitat.Terrains[i+1:] {
			pool := unionAnimals(affinity[a], affinity[b])
			for k := 0; k < 6; k++ {
				animals := []habitat.Animal{pool[k%len(pool)], pool[(k+1)%len(pool)]}
				if k%3 == 0 {
					animals = append(animals, pool[(k+2)%len(pool)])
				}
				cat.Tiles = append(cat.Tiles, TileSpec{Edges: names(a, b), Animals: names(animals...), Count: 1})
			}
		}
	}
	for j, t := range habitat.Terrains {
		n := len(habitat.Terrains)
		second := [2]habitat.Terrain{habitat.Terrains[(j+1)%n], habitat.Terrains[(j+2)%n]}
		third := [2]habitat.Terrain{habitat.Terrains[(j+3)%n], habitat.Terrains[(j+4)%n]}
		pool2 := unionAnimals(affinity[second[0]], affinity[second[1]])
		pool3 := unionAnimals(affinity[third[0]], affinity[third[1]])
		cat.Starters = append(cat.Starters, []TileSpec{
			{Edges: names(t), Animals: names(affinity[t][0]), Keystone: true},
			{Edges: names(second[0], second[1]), Animals: names(pool2[0], pool2[1], pool2[2])},
			{Edges: names(third[0], third[1]), Animals: names(pool3[1], pool3[2])},
		})
	}
	for _, a := range habitat.Animals {
		cat.Tokens[a.String()] = 20
	}
	return cat
}

func unionAnimals(a, b []habitat.Animal) []habitat.Animal {
	set := habitat.NewAnimalSet(a...)
	for _, x := range b {
		set = set.With(x)
	}
	return set.List()
}
