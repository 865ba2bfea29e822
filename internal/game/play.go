package game

import "github.com/gravitas-games/habitats/internal/hex"

// The methods below act for the active player. They exist for local play
// and tests; remote seats go through Execute with their own name.

// ChooseTokenTilePair takes both halves of shop slot i.
func (g *Game) ChooseTokenTilePair(i int) error {
	return g.executeActive(ChoosePair{Slot: i})
}

// ChooseCustomPair takes the tile of one slot and the token of another for
// one nature token.
func (g *Game) ChooseCustomPair(tileSlot, tokenSlot int) error {
	return g.executeActive(ChooseCustomPair{TileSlot: tileSlot, TokenSlot: tokenSlot})
}

// RotateTile rotates the tile in hand one step.
func (g *Game) RotateTile() error { return g.executeActive(RotateTile{}) }

// AddTileToHabitat places the tile in hand at c.
func (g *Game) AddTileToHabitat(c hex.Axial) error {
	return g.executeActive(PlaceTile{At: c})
}

// AddToken places the token in hand on the tile at c.
func (g *Game) AddToken(c hex.Axial) error {
	return g.executeActive(PlaceToken{At: c})
}

// DiscardToken drops the token in hand.
func (g *Game) DiscardToken() error { return g.executeActive(DiscardToken{}) }

// ReplaceWildlifeTokens replaces shop tokens at the given indices, either
// for free on a three-of-a-kind or by spending a nature token.
func (g *Game) ReplaceWildlifeTokens(indices []int, spendNature bool) error {
	return g.executeActive(ReplaceTokens{Indices: indices, SpendNature: spendNature})
}

// NextTurn ends the active turn.
func (g *Game) NextTurn() error { return g.executeActive(EndTurn{}) }

func (g *Game) executeActive(a Action) error {
	if g == nil || len(g.players) == 0 {
		return ErrNoGame
	}
	return g.Execute(g.Active().Name, a)
}
