package network

import (
	"encoding/json"

	"github.com/gravitas-games/habitats/internal/game"
	"github.com/gravitas-games/habitats/internal/scoring"
)

// Message types - Client → Server
const (
	MsgTypeJoin   = "join"
	MsgTypeLeave  = "leave"
	MsgTypeAction = "action"
	MsgTypePing   = "ping"
)

// Message types - Server → Client
const (
	MsgTypeWelcome      = "welcome"
	MsgTypePlayerJoined = "player_joined"
	MsgTypePlayerLeft   = "player_left"
	MsgTypeEvent        = "event"
	MsgTypeState        = "state"
	MsgTypeFinalScores  = "final_scores"
	MsgTypeError        = "error"
	MsgTypePong         = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// JoinPayload is sent by client to take a seat. The seat defaults to the
// authenticated username.
type JoinPayload struct {
	Seat string `json:"seat,omitempty"`
}

// ActionPayload carries one game action. Params holds the action's own
// fields and may be omitted for actions without any.
type ActionPayload struct {
	Kind   string          `json:"kind"`
	Params json.RawMessage `json:"params,omitempty"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to client after successful join
type WelcomePayload struct {
	PlayerID  string     `json:"player_id"`
	Username  string     `json:"username"`
	Seat      string     `json:"seat"`
	SessionID string     `json:"session_id"`
	GameID    string     `json:"game_id"`
	State     game.State `json:"state"`
}

// PlayerJoinedPayload notifies clients when a player joins
type PlayerJoinedPayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	Seat     string `json:"seat"`
}

// PlayerLeftPayload notifies clients when a player leaves
type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// EventPayload relays one game event. Kind and Params are set for action
// events so clients can mirror the move.
type EventPayload struct {
	Seq       uint64         `json:"seq"`
	Type      string         `json:"type"`
	Turn      int            `json:"turn"`
	Player    string         `json:"player,omitempty"`
	Kind      string         `json:"kind,omitempty"`
	Params    any            `json:"params,omitempty"`
	Timestamp int64          `json:"timestamp"` // Unix timestamp
	Data      map[string]any `json:"data,omitempty"`
}

// FinalScoresPayload is broadcast once when the game ends.
type FinalScoresPayload struct {
	GameID string              `json:"game_id"`
	Scores []scoring.Breakdown `json:"scores"`
	Totals map[string]int      `json:"totals"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEventPayload converts a game event for the wire.
func NewEventPayload(e game.Event) EventPayload {
	p := EventPayload{
		Seq:       e.Seq,
		Type:      e.Type.String(),
		Turn:      e.Turn,
		Player:    e.Player,
		Timestamp: e.Timestamp.Unix(),
		Data:      e.Data,
	}
	if e.Action != nil {
		p.Kind = e.Action.Kind()
		p.Params = e.Action
	}
	return p
}

// NewFinalScoresPayload summarises final breakdowns.
func NewFinalScoresPayload(gameID string, scores []scoring.Breakdown) FinalScoresPayload {
	totals := make(map[string]int, len(scores))
	for _, b := range scores {
		totals[b.Player] = b.Total()
	}
	return FinalScoresPayload{GameID: gameID, Scores: scores, Totals: totals}
}
