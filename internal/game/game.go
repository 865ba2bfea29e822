// Package game runs the turn rules of a single game: which tile and token a
// player may take, where they may place them, and when the game ends.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gravitas-games/habitats/internal/habitat"
	"github.com/gravitas-games/habitats/internal/hex"
	"github.com/gravitas-games/habitats/internal/scoring"
	"github.com/gravitas-games/habitats/internal/supply"
)

// MaxPlayers is the largest supported roster.
const MaxPlayers = 4

// DefaultTurnsPerPlayer is the number of turns each player takes.
const DefaultTurnsPerPlayer = 20

// starterCoords are the mutually adjacent positions of a starter triad.
var starterCoords = [3]hex.Axial{{Q: 0, R: 0}, {Q: 0, R: 1}, {Q: -1, R: 1}}

// Mode tags who drives a seat. The rules treat every mode alike.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
	ModeBot    Mode = "bot"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeLocal, ModeRemote, ModeBot:
		return true
	}
	return false
}

// PlayerSpec describes one seat at setup.
type PlayerSpec struct {
	Name string `json:"name" yaml:"name"`
	Mode Mode   `json:"mode" yaml:"mode"`
}

// Setup holds everything needed to start a game.
type Setup struct {
	ID             string
	Players        []PlayerSpec
	Rules          scoring.Rules
	Catalog        *supply.Catalog
	Seed           int64
	TurnsPerPlayer int
	Events         EventBus
}

// Player is one seat in a running game.
type Player struct {
	Name         string
	Mode         Mode
	Habitat      *habitat.Habitat
	NatureTokens int
	Score        *scoring.Breakdown
}

// Phase is the step of the active player's turn.
type Phase int

const (
	// AwaitingSelection: nothing taken from the shop yet.
	AwaitingSelection Phase = iota
	// AwaitingPlacement: a tile (and usually a token) is in hand; the tile
	// may still be rotated.
	AwaitingPlacement
	// AwaitingTokenDecision: the tile is down, the token is in hand.
	AwaitingTokenDecision
	// TurnComplete: only EndTurn remains.
	TurnComplete
)

func (p Phase) String() string {
	switch p {
	case AwaitingSelection:
		return "AwaitingSelection"
	case AwaitingPlacement:
		return "AwaitingPlacement"
	case AwaitingTokenDecision:
		return "AwaitingTokenDecision"
	case TurnComplete:
		return "TurnComplete"
	default:
		return "Unknown"
	}
}

// Pending is what the active player holds but has not placed.
type Pending struct {
	Tile  *habitat.Tile
	Token *habitat.Token
}

// Empty reports whether nothing is in hand.
func (p Pending) Empty() bool { return p.Tile == nil && p.Token == nil }

// Game is one game session. It is not safe for concurrent use; callers
// serialise all actions.
type Game struct {
	id      string
	rules   scoring.Rules
	players []*Player
	active  int
	turn    int

	shop   *supply.Shop
	supply *supply.Supply

	pending       Pending
	phase         Phase
	tilePlayed    bool
	replacedThree bool
	finished      bool
	final         []scoring.Breakdown

	events EventBus
	seq    uint64
	ended  *cullResult
	culled *cullResult
}

// New validates the setup, deals starter tiles and fills the shop.
func New(s Setup) (*Game, error) {
	if len(s.Players) == 0 || len(s.Players) > MaxPlayers {
		return nil, fmt.Errorf("%w: expected 1-%d players, got %d", ErrInvalidArgument, MaxPlayers, len(s.Players))
	}
	seen := make(map[string]bool, len(s.Players))
	for _, p := range s.Players {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: player name cannot be empty", ErrInvalidArgument)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrInvalidArgument, p.Name)
		}
		seen[p.Name] = true
		if !p.Mode.Valid() {
			return nil, fmt.Errorf("%w: unknown mode %q for %s", ErrInvalidArgument, p.Mode, p.Name)
		}
	}

	cat := s.Catalog
	if cat == nil {
		cat = supply.DefaultCatalog()
	}
	turns := s.TurnsPerPlayer
	if turns <= 0 {
		turns = DefaultTurnsPerPlayer
	}
	deal, err := supply.Build(cat, s.Seed, turns*len(s.Players)+supply.Slots-1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if len(deal.Starters) < len(s.Players) {
		return nil, fmt.Errorf("%w: %d starter sets for %d players", ErrInsufficientSupply, len(deal.Starters), len(s.Players))
	}

	id := s.ID
	if id == "" {
		id = uuid.NewString()
	}
	events := s.Events
	if events == nil {
		events = NewNullEventBus()
	}
	g := &Game{
		id:     id,
		rules:  s.Rules,
		shop:   supply.NewShop(),
		supply: deal.Supply,
		events: events,
	}
	for i, spec := range s.Players {
		h := habitat.New()
		for k, tile := range deal.Starters[i] {
			if err := h.Seed(starterCoords[k], tile); err != nil {
				return nil, err
			}
		}
		g.players = append(g.players, &Player{Name: spec.Name, Mode: spec.Mode, Habitat: h})
	}
	g.shop.Refill(g.supply)
	g.cull()
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Rules returns the scoring rules in play.
func (g *Game) Rules() scoring.Rules { return g.rules }

// Players returns the seats in turn order.
func (g *Game) Players() []*Player { return g.players }

// Player looks a seat up by name.
func (g *Game) Player(name string) (*Player, bool) {
	for _, p := range g.players {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Active returns the player whose turn it is.
func (g *Game) Active() *Player { return g.players[g.active] }

// Turn returns the zero-based index of the current turn.
func (g *Game) Turn() int { return g.turn }

// Phase returns the active turn's phase.
func (g *Game) Phase() Phase { return g.phase }

// Pending returns what the active player holds.
func (g *Game) Pending() Pending { return g.pending }

// Shop returns the shared display.
func (g *Game) Shop() *supply.Shop { return g.shop }

// Supply returns the undealt stacks.
func (g *Game) Supply() *supply.Supply { return g.supply }

// Finished reports whether the game has ended.
func (g *Game) Finished() bool { return g.finished }

// Execute applies an action on behalf of player. Local play, bots, network
// messages and replays all come through here. Nothing changes on error.
func (g *Game) Execute(player string, a Action) error {
	if g == nil {
		return ErrNoGame
	}
	if a == nil {
		return ErrUnknownAction
	}
	if g.finished {
		return ErrGameOver
	}
	p, ok := g.Player(player)
	if !ok {
		return fmt.Errorf("%w: unknown player %q", ErrInvalidArgument, player)
	}
	if p != g.Active() && !a.offTurn() {
		return ErrNotYourTurn
	}
	turn := g.turn
	if err := a.apply(g, p); err != nil {
		return err
	}
	g.publish(Event{Type: EventAction, Turn: turn, Player: player, Action: a})
	if g.culled != nil {
		res := *g.culled
		g.culled = nil
		g.publishCull(res)
	}
	if g.ended != nil {
		res := *g.ended
		g.ended = nil
		g.afterTurn(res)
	}
	return nil
}

func (g *Game) publish(e Event) {
	g.seq++
	e.Seq = g.seq
	e.Game = g.id
	e.Timestamp = time.Now()
	g.events.Publish(e)
}
