package game

import (
	"github.com/gravitas-games/habitats/internal/habitat"
	"github.com/gravitas-games/habitats/internal/scoring"
	"github.com/gravitas-games/habitats/internal/supply"
)

// PlayerState is the public view of one seat.
type PlayerState struct {
	Name         string             `json:"name"`
	Mode         Mode               `json:"mode"`
	NatureTokens int                `json:"nature_tokens"`
	Habitat      []habitat.Cell     `json:"habitat"`
	Score        *scoring.Breakdown `json:"score,omitempty"`
}

// State is a full snapshot of a game, safe to marshal and send.
type State struct {
	ID          string                    `json:"id"`
	Turn        int                       `json:"turn"`
	Active      string                    `json:"active"`
	Phase       string                    `json:"phase"`
	Rules       string                    `json:"rules"`
	Players     []PlayerState             `json:"players"`
	Shop        [supply.Slots]supply.View `json:"shop"`
	PendingTile *habitat.View             `json:"pending_tile,omitempty"`
	PendingTok  *habitat.Animal           `json:"pending_token,omitempty"`
	TilesLeft   int                       `json:"tiles_left"`
	TokensLeft  int                       `json:"tokens_left"`
	Discarded   int                       `json:"discarded"`
	Finished    bool                      `json:"finished"`
}

// Snapshot captures the current state.
func (g *Game) Snapshot() State {
	s := State{
		ID:         g.id,
		Turn:       g.turn,
		Active:     g.Active().Name,
		Phase:      g.phase.String(),
		Rules:      g.rules.String(),
		Shop:       g.shop.Snapshot(),
		TilesLeft:  g.supply.TilesLeft(),
		TokensLeft: g.supply.TokensLeft(),
		Discarded:  g.supply.Discarded(),
		Finished:   g.finished,
	}
	for _, p := range g.players {
		s.Players = append(s.Players, PlayerState{
			Name:         p.Name,
			Mode:         p.Mode,
			NatureTokens: p.NatureTokens,
			Habitat:      p.Habitat.Snapshot(),
			Score:        p.Score,
		})
	}
	if g.pending.Tile != nil {
		v := g.pending.Tile.Snapshot()
		s.PendingTile = &v
	}
	if g.pending.Token != nil {
		a := g.pending.Token.Animal
		s.PendingTok = &a
	}
	return s
}
