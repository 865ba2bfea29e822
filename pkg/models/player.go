package models

import "time"

// Player represents an authenticated user connected to the server
type Player struct {
	// From JWT claims
	ID        string `json:"id"`        // Converted from int64 user_id
	Username  string `json:"username"`  // JWT claim
	Email     string `json:"email"`     // JWT claim
	Activated int64  `json:"activated"` // JWT claim: activation timestamp or ban status
	TokenID   string `json:"-"`         // JWT jti, used for revocation

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
	LastSeen    time.Time `json:"last_seen"`

	// Session state
	SessionID string `json:"session_id"`

	// Seat is the roster name this user plays as, set on join.
	Seat string `json:"seat,omitempty"`
}

// IsActive checks if the player account is activated and not banned
func (p *Player) IsActive() bool {
	// activated > 0 means activated
	// activated == 0 means not activated
	// activated == -1 means banned
	return p.Activated > 0
}

// IsBanned checks if the player is banned
func (p *Player) IsBanned() bool {
	return p.Activated == -1
}

// IsSeated reports whether the player has joined the game as a seat.
func (p *Player) IsSeated() bool {
	return p.Connected && p.Seat != ""
}
