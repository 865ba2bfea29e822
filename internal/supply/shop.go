package supply

import (
	"fmt"

	"github.com/gravitas-games/habitats/internal/habitat"
)

// Slots is the number of tile/token pairs on display.
const Slots = 4

// Slot is one display position. Either half may be empty after a custom
// pair draw or when the supply has run dry.
type Slot struct {
	Tile  *habitat.Tile
	Token *habitat.Token
}

// Full reports whether both halves are present.
func (s Slot) Full() bool { return s.Tile != nil && s.Token != nil }

// Shop is the shared display of tile/token pairs.
type Shop struct {
	slots [Slots]Slot
}

// NewShop returns an empty shop.
func NewShop() *Shop { return &Shop{} }

// Slot returns a copy of slot i.
func (s *Shop) Slot(i int) (Slot, error) {
	if i < 0 || i >= Slots {
		return Slot{}, fmt.Errorf("%w: slot %d out of range", ErrInvalidArgument, i)
	}
	return s.slots[i], nil
}

// Refill tops up every empty half from the tail of sup. A half stays empty
// when its stack is exhausted.
func (s *Shop) Refill(sup *Supply) {
	for i := range s.slots {
		if s.slots[i].Tile == nil {
			if t, ok := sup.DrawTile(); ok {
				s.slots[i].Tile = t
			}
		}
		if s.slots[i].Token == nil {
			if t, ok := sup.DrawToken(); ok {
				s.slots[i].Token = t
			}
		}
	}
}

// TakePair removes both halves of a full slot.
func (s *Shop) TakePair(i int) (*habitat.Tile, *habitat.Token, error) {
	slot, err := s.Slot(i)
	if err != nil {
		return nil, nil, err
	}
	if !slot.Full() {
		return nil, nil, fmt.Errorf("%w: slot %d is not fully stocked", ErrInvalidArgument, i)
	}
	s.slots[i] = Slot{}
	return slot.Tile, slot.Token, nil
}

// TakeSplit removes the tile of tileSlot and the token of tokenSlot.
func (s *Shop) TakeSplit(tileSlot, tokenSlot int) (*habitat.Tile, *habitat.Token, error) {
	ts, err := s.Slot(tileSlot)
	if err != nil {
		return nil, nil, err
	}
	ks, err := s.Slot(tokenSlot)
	if err != nil {
		return nil, nil, err
	}
	if ts.Tile == nil {
		return nil, nil, fmt.Errorf("%w: slot %d has no tile", ErrInvalidArgument, tileSlot)
	}
	if ks.Token == nil {
		return nil, nil, fmt.Errorf("%w: slot %d has no token", ErrInvalidArgument, tokenSlot)
	}
	s.slots[tileSlot].Tile = nil
	s.slots[tokenSlot].Token = nil
	return ts.Tile, ks.Token, nil
}

// Tiles returns the number of slots holding a tile.
func (s *Shop) Tiles() int {
	n := 0
	for _, sl := range s.slots {
		if sl.Tile != nil {
			n++
		}
	}
	return n
}

// Stocked reports whether every slot holds both a tile and a token.
func (s *Shop) Stocked() bool {
	for _, sl := range s.slots {
		if !sl.Full() {
			return false
		}
	}
	return true
}

// TokenCount returns the number of slots holding a token.
func (s *Shop) TokenCount() int {
	n := 0
	for _, sl := range s.slots {
		if sl.Token != nil {
			n++
		}
	}
	return n
}

// ValidateIndices checks a replacement index list: 1 to Slots unique
// entries, each a valid slot.
func ValidateIndices(indices []int) error {
	if len(indices) == 0 || len(indices) > Slots {
		return fmt.Errorf("%w: expected 1-%d indices, got %d", ErrInvalidArgument, Slots, len(indices))
	}
	var seen [Slots]bool
	for _, i := range indices {
		if i < 0 || i >= Slots {
			return fmt.Errorf("%w: slot %d out of range", ErrInvalidArgument, i)
		}
		if seen[i] {
			return fmt.Errorf("%w: duplicate slot %d", ErrInvalidArgument, i)
		}
		seen[i] = true
	}
	return nil
}

// ReplaceTokens discards the tokens in the given slots and draws fresh ones
// into them. Nothing changes unless the supply can cover every slot.
func (s *Shop) ReplaceTokens(indices []int, sup *Supply) error {
	if err := ValidateIndices(indices); err != nil {
		return err
	}
	fresh, err := sup.DrawTokens(len(indices))
	if err != nil {
		return err
	}
	for k, i := range indices {
		sup.Discard(s.slots[i].Token)
		s.slots[i].Token = fresh[k]
	}
	return nil
}

// View is a plain snapshot of one slot.
type View struct {
	Tile  *habitat.View   `json:"tile,omitempty"`
	Token *habitat.Animal `json:"token,omitempty"`
}

// Snapshot returns the shop's slots.
func (s *Shop) Snapshot() [Slots]View {
	var out [Slots]View
	for i, sl := range s.slots {
		if sl.Tile != nil {
			v := sl.Tile.Snapshot()
			out[i].Tile = &v
		}
		if sl.Token != nil {
			a := sl.Token.Animal
			out[i].Token = &a
		}
	}
	return out
}
