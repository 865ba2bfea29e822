package game

import (
	"fmt"

	"github.com/gravitas-games/habitats/internal/habitat"
	"github.com/gravitas-games/habitats/internal/hex"
	"github.com/gravitas-games/habitats/internal/scoring"
	"github.com/gravitas-games/habitats/internal/supply"
)

// Action is one player command. Every implementation validates fully
// before it mutates anything.
type Action interface {
	// Kind names the action on the wire and in logs.
	Kind() string
	apply(g *Game, p *Player) error
	offTurn() bool
}

// Action kinds.
const (
	KindChoosePair       = "choose_pair"
	KindChooseCustomPair = "choose_custom_pair"
	KindRotateTile       = "rotate_tile"
	KindPlaceTile        = "place_tile"
	KindPlaceToken       = "place_token"
	KindDiscardToken     = "discard_token"
	KindReplaceTokens    = "replace_tokens"
	KindEndTurn          = "end_turn"
)

type onTurn struct{}

func (onTurn) offTurn() bool { return false }

// ChoosePair takes both halves of one shop slot.
type ChoosePair struct {
	onTurn
	Slot int `json:"slot"`
}

func (ChoosePair) Kind() string { return KindChoosePair }

func (a ChoosePair) apply(g *Game, p *Player) error {
	if err := g.requireSelection(); err != nil {
		return err
	}
	slot, err := g.shop.Slot(a.Slot)
	if err != nil {
		return err
	}
	if !slot.Full() {
		return invalidState("slot %d is not fully stocked", a.Slot)
	}
	tile, token, err := g.shop.TakePair(a.Slot)
	if err != nil {
		return err
	}
	g.pending = Pending{Tile: tile, Token: token}
	g.phase = AwaitingPlacement
	return nil
}

// ChooseCustomPair takes the tile of one slot and the token of another (or
// the same) slot for one nature token.
type ChooseCustomPair struct {
	onTurn
	TileSlot  int `json:"tile_slot"`
	TokenSlot int `json:"token_slot"`
}

func (ChooseCustomPair) Kind() string { return KindChooseCustomPair }

func (a ChooseCustomPair) apply(g *Game, p *Player) error {
	if err := g.requireSelection(); err != nil {
		return err
	}
	if p.NatureTokens < 1 {
		return invalidState("%s has no nature tokens", p.Name)
	}
	ts, err := g.shop.Slot(a.TileSlot)
	if err != nil {
		return err
	}
	ks, err := g.shop.Slot(a.TokenSlot)
	if err != nil {
		return err
	}
	if ts.Tile == nil {
		return invalidState("slot %d has no tile", a.TileSlot)
	}
	if ks.Token == nil {
		return invalidState("slot %d has no token", a.TokenSlot)
	}
	tile, token, err := g.shop.TakeSplit(a.TileSlot, a.TokenSlot)
	if err != nil {
		return err
	}
	p.NatureTokens--
	g.pending = Pending{Tile: tile, Token: token}
	g.phase = AwaitingPlacement
	return nil
}

// RotateTile turns the tile in hand one step clockwise.
type RotateTile struct{ onTurn }

func (RotateTile) Kind() string { return KindRotateTile }

func (RotateTile) apply(g *Game, p *Player) error {
	if g.pending.Tile == nil {
		return invalidState("no tile in hand")
	}
	return habitat.Rotate(g.pending.Tile)
}

// PlaceTile puts the tile in hand into the active habitat.
type PlaceTile struct {
	onTurn
	At hex.Axial `json:"at"`
}

func (PlaceTile) Kind() string { return KindPlaceTile }

func (a PlaceTile) apply(g *Game, p *Player) error {
	if g.pending.Tile == nil || g.phase != AwaitingPlacement {
		return invalidState("no tile in hand")
	}
	if err := p.Habitat.Place(a.At, g.pending.Tile); err != nil {
		return invalidArgument(err)
	}
	g.pending.Tile = nil
	g.tilePlayed = true
	if g.pending.Token != nil {
		g.phase = AwaitingTokenDecision
	} else {
		g.phase = TurnComplete
	}
	return nil
}

// PlaceToken puts the token in hand onto a tile of the active habitat.
type PlaceToken struct {
	onTurn
	At hex.Axial `json:"at"`
}

func (PlaceToken) Kind() string { return KindPlaceToken }

func (a PlaceToken) apply(g *Game, p *Player) error {
	tok := g.pending.Token
	if tok == nil {
		return invalidState("no token in hand")
	}
	if g.phase != AwaitingTokenDecision {
		return invalidState("place the tile before the token")
	}
	if err := p.Habitat.CheckToken(a.At, tok.Animal); err != nil {
		return invalidArgument(err)
	}
	tile, _ := p.Habitat.At(a.At)
	if !tile.Keystone {
		if err := placementRule(p.Habitat, a.At, tok.Animal, g.rules); err != nil {
			return err
		}
	}
	if err := p.Habitat.PlaceToken(a.At, tok); err != nil {
		return invalidArgument(err)
	}
	if tile.Keystone {
		p.NatureTokens++
	}
	g.pending.Token = nil
	g.phase = TurnComplete
	return nil
}

// placementRule enforces the species-specific neighbourhood required for
// tokens on ordinary tiles. No bear, old or new, may touch more bears than
// its card scores in a group; foxes need company to be worth anything.
func placementRule(h *habitat.Habitat, at hex.Axial, a habitat.Animal, rules scoring.Rules) error {
	switch a {
	case habitat.Bear:
		limit := 1
		if rules.For(habitat.Bear) == scoring.VariantB {
			limit = 2
		}
		n := 0
		for _, nb := range at.Neighbors() {
			if animal, ok := h.AnimalAt(nb); !ok || animal != habitat.Bear {
				continue
			}
			n++
			if m := bearsAround(h, nb) + 1; m > limit {
				return fmt.Errorf("%w: bear at %v would leave the bear at %v touching %d bears (max %d)", ErrInvalidArgument, at, nb, m, limit)
			}
		}
		if n > limit {
			return fmt.Errorf("%w: bear at %v would touch %d bears (max %d)", ErrInvalidArgument, at, n, limit)
		}
	case habitat.Fox:
		if len(h.NeighborAnimals(at)) == 0 {
			return fmt.Errorf("%w: fox at %v needs a neighbouring token", ErrInvalidArgument, at)
		}
	}
	return nil
}

func bearsAround(h *habitat.Habitat, c hex.Axial) int {
	n := 0
	for _, nb := range h.NeighborAnimals(c) {
		if nb == habitat.Bear {
			n++
		}
	}
	return n
}

// DiscardToken drops the token in hand. It does not return to the supply.
type DiscardToken struct{ onTurn }

func (DiscardToken) Kind() string { return KindDiscardToken }

func (DiscardToken) apply(g *Game, p *Player) error {
	if g.pending.Token == nil {
		return invalidState("no token in hand")
	}
	g.supply.Discard(g.pending.Token)
	g.pending.Token = nil
	if g.phase == AwaitingTokenDecision {
		g.phase = TurnComplete
	}
	return nil
}

// ReplaceTokens swaps shop tokens for fresh ones before a selection is made.
// Spending a nature token replaces any 1-4 slots and may be done by any
// player; without it only the active player may clear a three-of-a-kind,
// once per turn.
type ReplaceTokens struct {
	Indices     []int `json:"indices"`
	SpendNature bool  `json:"spend_nature"`
}

func (ReplaceTokens) Kind() string { return KindReplaceTokens }

func (a ReplaceTokens) offTurn() bool { return a.SpendNature }

func (a ReplaceTokens) apply(g *Game, p *Player) error {
	if err := supply.ValidateIndices(a.Indices); err != nil {
		return err
	}
	if g.phase != AwaitingSelection || !g.pending.Empty() {
		return invalidState("tokens can only be replaced before a selection")
	}
	if a.SpendNature {
		if p.NatureTokens < 1 {
			return invalidState("%s has no nature tokens", p.Name)
		}
		if err := g.shop.ReplaceTokens(a.Indices, g.supply); err != nil {
			return err
		}
		p.NatureTokens--
	} else {
		if g.replacedThree {
			return invalidState("three of a kind already replaced this turn")
		}
		op := supply.DetectOverpopulation(g.shop)
		if op.Kind != supply.ThreeOfAKind {
			return invalidState("free replacement needs three of a kind, shop shows %s", op.Kind)
		}
		if err := supply.ResolveThreeOfAKind(a.Indices, g.shop, g.supply); err != nil {
			return err
		}
		g.replacedThree = true
	}
	res := g.cull()
	g.culled = &res
	return nil
}

// EndTurn finishes the active turn.
type EndTurn struct{ onTurn }

func (EndTurn) Kind() string { return KindEndTurn }

func (EndTurn) apply(g *Game, p *Player) error {
	if !g.tilePlayed {
		return invalidState("%s has not placed a tile this turn", p.Name)
	}
	if g.pending.Tile != nil {
		return invalidState("tile still in hand")
	}
	res := g.endTurn()
	g.ended = &res
	return nil
}

func (g *Game) requireSelection() error {
	if !g.pending.Empty() {
		return invalidState("a selection is already pending")
	}
	if g.phase != AwaitingSelection {
		return invalidState("selection not allowed during %s", g.phase)
	}
	return nil
}
