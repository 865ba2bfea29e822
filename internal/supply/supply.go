package supply

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/gravitas-games/habitats/internal/habitat"
)

var (
	// ErrInsufficientSupply is returned when a draw asks for more than remains.
	ErrInsufficientSupply = errors.New("insufficient supply")
	// ErrInvalidArgument is returned for malformed slot or index arguments.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Supply is the undealt stack of tiles and tokens. Both stacks are drawn
// from the tail and only ever shrink.
type Supply struct {
	tiles     []*habitat.Tile
	tokens    []*habitat.Token
	discarded int
}

// New creates a supply over already-ordered stacks.
func New(tiles []*habitat.Tile, tokens []*habitat.Token) *Supply {
	return &Supply{tiles: tiles, tokens: tokens}
}

// Deal is the shuffled content of a catalog for one game.
type Deal struct {
	Supply   *Supply
	Starters [][]*habitat.Tile
}

// Build instantiates every tile and token of cat, shuffles them with seed,
// and trims the tile stack to tileLimit (0 keeps everything).
func Build(cat *Catalog, seed int64, tileLimit int) (*Deal, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))

	nextID := 1
	tiles := make([]*habitat.Tile, 0, cat.TileCount())
	for _, s := range cat.Tiles {
		edges, animals, _ := s.resolve()
		for i := 0; i < max(s.Count, 1); i++ {
			tiles = append(tiles, habitat.NewTile(nextID, edges, animals, s.Keystone))
			nextID++
		}
	}
	rng.Shuffle(len(tiles), func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })
	if tileLimit > 0 && tileLimit < len(tiles) {
		tiles = tiles[:tileLimit]
	}

	// Map iteration order is random, so tokens are built in species order.
	tokens := make([]*habitat.Token, 0, cat.TokenCount())
	for _, a := range habitat.Animals {
		for i := 0; i < cat.Tokens[a.String()]; i++ {
			tokens = append(tokens, habitat.NewToken(a))
		}
	}
	rng.Shuffle(len(tokens), func(i, j int) { tokens[i], tokens[j] = tokens[j], tokens[i] })

	starters := make([][]*habitat.Tile, 0, len(cat.Starters))
	for _, triad := range cat.Starters {
		set := make([]*habitat.Tile, 0, len(triad))
		for _, s := range triad {
			edges, animals, _ := s.resolve()
			set = append(set, habitat.NewTile(nextID, edges, animals, s.Keystone))
			nextID++
		}
		starters = append(starters, set)
	}
	rng.Shuffle(len(starters), func(i, j int) { starters[i], starters[j] = starters[j], starters[i] })

	return &Deal{Supply: New(tiles, tokens), Starters: starters}, nil
}

// TilesLeft returns the number of undealt tiles.
func (s *Supply) TilesLeft() int { return len(s.tiles) }

// TokensLeft returns the number of undealt tokens.
func (s *Supply) TokensLeft() int { return len(s.tokens) }

// Discarded returns how many tokens have left play through replacement or
// discard.
func (s *Supply) Discarded() int { return s.discarded }

// DrawTile pops a tile from the tail.
func (s *Supply) DrawTile() (*habitat.Tile, bool) {
	n := len(s.tiles)
	if n == 0 {
		return nil, false
	}
	t := s.tiles[n-1]
	s.tiles[n-1] = nil
	s.tiles = s.tiles[:n-1]
	return t, true
}

// DrawToken pops a token from the tail.
func (s *Supply) DrawToken() (*habitat.Token, bool) {
	n := len(s.tokens)
	if n == 0 {
		return nil, false
	}
	t := s.tokens[n-1]
	s.tokens[n-1] = nil
	s.tokens = s.tokens[:n-1]
	return t, true
}

// DrawTokens pops n tokens or none at all.
func (s *Supply) DrawTokens(n int) ([]*habitat.Token, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative draw %d", ErrInvalidArgument, n)
	}
	if n > len(s.tokens) {
		return nil, fmt.Errorf("%w: need %d tokens, %d left", ErrInsufficientSupply, n, len(s.tokens))
	}
	out := make([]*habitat.Token, 0, n)
	for i := 0; i < n; i++ {
		t, _ := s.DrawToken()
		out = append(out, t)
	}
	return out, nil
}

// Discard removes tokens from play for good.
func (s *Supply) Discard(tokens ...*habitat.Token) {
	for _, t := range tokens {
		if t != nil {
			s.discarded++
		}
	}
}

// PeekTokens returns the species of the remaining tokens, tail first.
func (s *Supply) PeekTokens() []habitat.Animal {
	out := make([]habitat.Animal, 0, len(s.tokens))
	for _, t := range s.tokens {
		out = append(out, t.Animal)
	}
	slices.Reverse(out)
	return out
}
