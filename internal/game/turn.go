package game

import (
	"fmt"

	"github.com/gravitas-games/habitats/internal/habitat"
	"github.com/gravitas-games/habitats/internal/scoring"
	"github.com/gravitas-games/habitats/internal/supply"
)

type cullResult struct {
	rounds int
	err    error
}

// cull replaces four-of-a-kind displays until none remain or the token
// supply cannot cover another round. The loop is bounded by the number of
// full replacements the supply could ever pay for.
func (g *Game) cull() cullResult {
	maxRounds := g.supply.TokensLeft()/supply.Slots + 1
	rounds, err := supply.Cull(g.shop, g.supply, maxRounds)
	return cullResult{rounds: rounds, err: err}
}

// endTurn closes the active turn. It drops an unplaced token and restocks
// the shop. Play passes on only while every slot can still be restocked
// with both halves; otherwise the game ends.
func (g *Game) endTurn() cullResult {
	if g.pending.Token != nil {
		g.supply.Discard(g.pending.Token)
	}
	g.pending = Pending{}
	g.shop.Refill(g.supply)
	res := g.cull()

	g.tilePlayed = false
	g.replacedThree = false
	g.phase = AwaitingSelection

	if !g.shop.Stocked() {
		g.finish()
		return res
	}
	g.turn++
	g.active = (g.active + 1) % len(g.players)
	return res
}

func (g *Game) finish() {
	g.finished = true
	scores, err := g.CalculateScore()
	if err != nil {
		return
	}
	g.final = scores
	for i, p := range g.players {
		b := scores[i]
		p.Score = &b
	}
}

func (g *Game) publishCull(res cullResult) {
	if res.rounds == 0 && res.err == nil {
		return
	}
	data := map[string]any{"rounds": res.rounds}
	if res.err != nil {
		data["error"] = res.err.Error()
	}
	g.publish(Event{Type: EventShopCulled, Turn: g.turn, Data: data})
}

func (g *Game) afterTurn(res cullResult) {
	g.publishCull(res)
	if g.finished {
		g.publish(Event{Type: EventGameOver, Turn: g.turn, Data: map[string]any{"scores": g.final}})
		return
	}
	g.publish(Event{Type: EventTurnStarted, Turn: g.turn, Player: g.Active().Name})
}

// Results returns the final scores once the game has ended.
func (g *Game) Results() ([]scoring.Breakdown, bool) {
	if !g.finished || g.final == nil {
		return nil, false
	}
	return g.final, true
}

// CalculateScore scores every player's current habitat. At game end the
// result is also stored on each Player.
func (g *Game) CalculateScore() ([]scoring.Breakdown, error) {
	if g == nil || len(g.players) == 0 {
		return nil, ErrNoGame
	}
	in := make([]scoring.Input, len(g.players))
	for i, p := range g.players {
		in[i] = scoring.Input{Player: p.Name, Habitat: p.Habitat, NatureTokens: p.NatureTokens}
	}
	out, err := scoring.Calculate(in, g.rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return out, nil
}

// CalculateBonusScores ranks the given per-player longest regions. Missing
// terrains are a caller error reported as ErrInvalidState.
func (g *Game) CalculateBonusScores(lengths []map[habitat.Terrain]int) ([]map[habitat.Terrain]int, error) {
	if g == nil || len(g.players) == 0 {
		return nil, ErrNoGame
	}
	out, err := scoring.Bonus(lengths)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return out, nil
}
