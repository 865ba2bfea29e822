package network

import (
	"errors"

	"github.com/gravitas-games/habitats/internal/game"
)

// Error codes sent in ErrorPayload.
const (
	CodeInvalidMessage     = "invalid_message"
	CodeUnknownMessageType = "unknown_message_type"
	CodeNotAuthenticated   = "not_authenticated"
	CodeJoinFailed         = "join_failed"
	CodeInvalidArgument    = "invalid_argument"
	CodeInvalidState       = "invalid_state"
	CodeInsufficientSupply = "insufficient_supply"
	CodeNotYourTurn        = "not_your_turn"
	CodeGameOver           = "game_over"
	CodeInternal           = "internal"
)

// ErrorCode maps a game error onto its wire code. The most specific
// sentinel wins.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, game.ErrNotYourTurn):
		return CodeNotYourTurn
	case errors.Is(err, game.ErrGameOver):
		return CodeGameOver
	case errors.Is(err, game.ErrInsufficientSupply):
		return CodeInsufficientSupply
	case errors.Is(err, game.ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, game.ErrInvalidState):
		return CodeInvalidState
	default:
		return CodeInternal
	}
}

// NewErrorMessage wraps err as an error message for a client.
func NewErrorMessage(err error) *ServerMessage {
	return &ServerMessage{
		Type:    MsgTypeError,
		Payload: ErrorPayload{Code: ErrorCode(err), Message: err.Error()},
	}
}
