package game

import (
	"errors"
	"fmt"

	"github.com/gravitas-games/habitats/internal/supply"
)

var (
	// ErrInvalidArgument marks an illegal target or malformed index list.
	ErrInvalidArgument = supply.ErrInvalidArgument
	// ErrInsufficientSupply marks a draw larger than what remains.
	ErrInsufficientSupply = supply.ErrInsufficientSupply
	// ErrInvalidState marks an action outside its turn or game phase.
	ErrInvalidState = errors.New("invalid state")

	ErrNotYourTurn   = fmt.Errorf("%w: not your turn", ErrInvalidState)
	ErrGameOver      = fmt.Errorf("%w: game is over", ErrInvalidState)
	ErrNoGame        = fmt.Errorf("%w: no active game", ErrInvalidState)
	ErrUnknownAction = fmt.Errorf("%w: unknown action", ErrInvalidArgument)
)

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

func invalidArgument(err error) error {
	if errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrInsufficientSupply) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}
