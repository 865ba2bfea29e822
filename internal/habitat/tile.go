package habitat

import "errors"

// Token is a wildlife token. Tokens are passed by value and never change
// species once drawn.
type Token struct {
	Animal Animal `json:"animal"`
}

// NewToken returns a token of the given species.
func NewToken(a Animal) *Token { return &Token{Animal: a} }

// ErrNoTile is returned when an operation needs a tile and none is given.
var ErrNoTile = errors.New("no tile selected")

// Tile is a hexagonal habitat tile. Edge i of the printed sequence faces
// hex direction i when the tile is unrotated.
type Tile struct {
	ID       int
	Keystone bool
	Animals  AnimalSet

	edges    [6]Terrain
	rotation int
	token    *Token
}

// NewTile creates an unrotated tile.
func NewTile(id int, edges [6]Terrain, animals AnimalSet, keystone bool) *Tile {
	return &Tile{ID: id, edges: edges, Animals: animals, Keystone: keystone}
}

// Rotation returns the current clockwise rotation offset in [0,6).
func (t *Tile) Rotation() int { return t.rotation }

// Rotate turns the tile one step clockwise. The visible edge sequence loses
// its last entry and gains it at the front; no data moves, only the offset.
func (t *Tile) Rotate() { t.rotation = (t.rotation + 1) % 6 }

// SetRotation sets the rotation offset, normalised into [0,6).
func (t *Tile) SetRotation(r int) {
	r %= 6
	if r < 0 {
		r += 6
	}
	t.rotation = r
}

// Rotate rotates t one step or fails with ErrNoTile.
func Rotate(t *Tile) error {
	if t == nil {
		return ErrNoTile
	}
	t.Rotate()
	return nil
}

// EdgeTerrain returns the terrain on the edge facing direction dir, taking
// the current rotation into account.
func (t *Tile) EdgeTerrain(dir int) Terrain {
	return t.edges[((dir-t.rotation)%6+6)%6]
}

// Edges returns the visible edge sequence in direction order.
func (t *Tile) Edges() [6]Terrain {
	var out [6]Terrain
	for d := 0; d < 6; d++ {
		out[d] = t.EdgeTerrain(d)
	}
	return out
}

// HasTerrain reports whether any edge shows terrain tr.
func (t *Tile) HasTerrain(tr Terrain) bool {
	for _, e := range t.edges {
		if e == tr {
			return true
		}
	}
	return false
}

// Token returns the token resting on the tile, or nil.
func (t *Tile) Token() *Token { return t.token }

// CanHost reports whether the tile is empty and capable of hosting a.
func (t *Tile) CanHost(a Animal) bool { return t.token == nil && t.Animals.Has(a) }

func (t *Tile) attach(tok *Token) { t.token = tok }

// View is a plain snapshot of a tile for transport and logs.
type View struct {
	ID       int        `json:"id"`
	Edges    [6]Terrain `json:"edges"`
	Rotation int        `json:"rotation"`
	Animals  []Animal   `json:"animals"`
	Keystone bool       `json:"keystone,omitempty"`
	Token    *Animal    `json:"token,omitempty"`
}

// Snapshot returns the tile's View.
func (t *Tile) Snapshot() View {
	v := View{
		ID:       t.ID,
		Edges:    t.Edges(),
		Rotation: t.rotation,
		Animals:  t.Animals.List(),
		Keystone: t.Keystone,
	}
	if t.token != nil {
		a := t.token.Animal
		v.Token = &a
	}
	return v
}
