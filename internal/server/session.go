package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gravitas-games/habitats/internal/config"
	"github.com/gravitas-games/habitats/internal/game"
	"github.com/gravitas-games/habitats/internal/network"
	"github.com/gravitas-games/habitats/internal/replay"
	"github.com/gravitas-games/habitats/internal/scoring"
	"github.com/gravitas-games/habitats/pkg/models"
)

// ResultStore persists final scores.
type ResultStore interface {
	SaveResult(gameID string, scores []scoring.Breakdown) error
}

// client is the outbound side of a connection.
type client interface {
	SendMessage(msg *network.ServerMessage)
}

// Session hosts one game and the users seated in it
type Session struct {
	ID        string
	CreatedAt time.Time

	// Player management
	players     map[string]*models.Player // playerID -> Player
	connections map[string]client         // playerID -> Connection
	mu          sync.RWMutex

	// Game state; every action goes through gameMu
	game     *game.Game
	gameMu   sync.Mutex
	recorder *replay.Writer

	results ResultStore
	cache   ScoreCache
	ctx     context.Context
}

// SessionStatus represents the current state of the session
type SessionStatus struct {
	State       string   `json:"state"` // "waiting", "running", "finished"
	PlayerCount int      `json:"player_count"`
	Seats       []string `json:"seats"`
	Uptime      int64    `json:"uptime"` // seconds
}

// NewSession creates a session hosting the configured game. results and
// cache may be nil.
func NewSession(ctx context.Context, cfg *config.Config, results ResultStore, cache ScoreCache) (*Session, error) {
	id := uuid.NewString()
	log.Printf("Creating session: %s", id)

	setup, err := cfg.Game.Setup(id)
	if err != nil {
		return nil, fmt.Errorf("game setup: %w", err)
	}

	s := &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		players:     make(map[string]*models.Player),
		connections: make(map[string]client),
		results:     results,
		cache:       cache,
		ctx:         ctx,
	}

	bus := game.NewSimpleEventBus()
	if cfg.Replay.Dir != "" {
		w, err := replay.Create(replay.Path(cfg.Replay.Dir, id), replay.NewHeader(setup))
		if err != nil {
			return nil, fmt.Errorf("replay log: %w", err)
		}
		s.recorder = w
		bus.Subscribe("0-replay", w.Handler())
	}
	bus.Subscribe("1-session", s.handleEvent)
	setup.Events = bus

	g, err := game.New(setup)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.game = g

	log.Printf("Session %s created for %d seats (rules %s)", id, len(g.Players()), g.Rules())
	return s, nil
}

// AddPlayer seats a player. seat defaults to the username and must name a
// free roster seat.
func (s *Session) AddPlayer(player *models.Player, conn client, seat string) error {
	if seat == "" {
		seat = player.Username
	}

	s.gameMu.Lock()
	_, ok := s.game.Player(seat)
	s.gameMu.Unlock()
	if !ok {
		return fmt.Errorf("no seat named %q", seat)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.players {
		if p.Seat == seat && id != player.ID {
			return fmt.Errorf("seat %q is taken by %s", seat, p.Username)
		}
	}
	player.Seat = seat
	player.Connected = true
	player.ConnectedAt = time.Now()
	player.SessionID = s.ID
	s.players[player.ID] = player
	s.connections[player.ID] = conn

	log.Printf("Player %s (%s) joined session %s as %s", player.Username, player.ID, s.ID, seat)
	return nil
}

// RemovePlayer removes a player from the session. The seat stays in the
// game and can be taken again.
func (s *Session) RemovePlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player, exists := s.players[playerID]; exists {
		log.Printf("Player %s (%s) left session %s", player.Username, playerID, s.ID)
		player.Connected = false
		player.LastSeen = time.Now()
		delete(s.players, playerID)
		delete(s.connections, playerID)
	}
}

// GetPlayer retrieves a player by ID
func (s *Session) GetPlayer(playerID string) (*models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, exists := s.players[playerID]
	return player, exists
}

// Apply runs an action for a seat and broadcasts the resulting state.
func (s *Session) Apply(seat string, a game.Action) error {
	s.gameMu.Lock()
	defer s.gameMu.Unlock()

	if err := s.game.Execute(seat, a); err != nil {
		return err
	}
	s.BroadcastMessage(&network.ServerMessage{Type: network.MsgTypeState, Payload: s.game.Snapshot()})
	return nil
}

// State returns a snapshot of the hosted game.
func (s *Session) State() game.State {
	s.gameMu.Lock()
	defer s.gameMu.Unlock()
	return s.game.Snapshot()
}

// GameID returns the hosted game's id.
func (s *Session) GameID() string { return s.game.ID() }

// handleEvent relays game events. It runs inside Execute with gameMu held.
func (s *Session) handleEvent(e game.Event) {
	s.BroadcastMessage(&network.ServerMessage{Type: network.MsgTypeEvent, Payload: network.NewEventPayload(e)})
	if e.Type == game.EventGameOver {
		if scores, ok := s.game.Results(); ok {
			s.finish(scores)
		}
	}
}

// finish stores and announces the final scoreboard. Storage failures are
// logged; players still get their scores.
func (s *Session) finish(scores []scoring.Breakdown) {
	payload := network.NewFinalScoresPayload(s.game.ID(), scores)
	log.Printf("Game %s finished: %v", s.game.ID(), payload.Totals)

	if s.results != nil {
		if err := s.results.SaveResult(s.game.ID(), scores); err != nil {
			log.Printf("Failed to save results for %s: %v", s.game.ID(), err)
		}
	}
	if s.cache != nil {
		data, err := json.Marshal(payload)
		if err == nil {
			err = s.cache.CacheScores(s.ctx, s.game.ID(), data)
		}
		if err != nil {
			log.Printf("Failed to cache scores for %s: %v", s.game.ID(), err)
		}
	}
	s.BroadcastMessage(&network.ServerMessage{Type: network.MsgTypeFinalScores, Payload: payload})
}

// BroadcastMessage sends a message to all connected players
func (s *Session) BroadcastMessage(msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		conn.SendMessage(msg)
	}
}

// BroadcastExcept sends a message to all players except the specified connection
func (s *Session) BroadcastExcept(exclude client, msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		if conn != exclude {
			conn.SendMessage(msg)
		}
	}
}

// GetStatus returns the current session status
func (s *Session) GetStatus() SessionStatus {
	s.gameMu.Lock()
	finished := s.game.Finished()
	s.gameMu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	status := SessionStatus{
		State:       "waiting",
		PlayerCount: len(s.players),
		Uptime:      int64(time.Since(s.CreatedAt).Seconds()),
	}
	for _, p := range s.players {
		if p.IsSeated() {
			status.Seats = append(status.Seats, p.Seat)
		}
	}
	slices.Sort(status.Seats)
	switch {
	case finished:
		status.State = "finished"
	case len(status.Seats) > 0:
		status.State = "running"
	}
	return status
}

// Close flushes the replay log.
func (s *Session) Close() error {
	if s.recorder == nil {
		return nil
	}
	return s.recorder.Close()
}
