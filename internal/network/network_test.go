package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/gravitas-games/habitats/internal/game"
	"github.com/gravitas-games/habitats/internal/hex"
)

func TestDecodeActionAcceptsValidPayloads(t *testing.T) {
	cases := map[string]game.Action{
		`{"kind":"choose_pair","params":{"slot":2}}`:                            game.ChoosePair{Slot: 2},
		`{"kind":"choose_custom_pair","params":{"tile_slot":0,"token_slot":3}}`: game.ChooseCustomPair{TileSlot: 0, TokenSlot: 3},
		`{"kind":"place_tile","params":{"at":{"q":1,"r":-1}}}`:                  game.PlaceTile{At: hex.Axial{Q: 1, R: -1}},
		`{"kind":"rotate_tile"}`:                                                game.RotateTile{},
		`{"kind":"end_turn"}`:                                                   game.EndTurn{},
	}
	for raw, want := range cases {
		got, err := DecodeAction(json.RawMessage(raw))
		if err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		if fmt.Sprintf("%#v", got) != fmt.Sprintf("%#v", want) {
			t.Fatalf("%s: expected %#v, got %#v", raw, want, got)
		}
	}
}

func TestDecodeActionRejectsSchemaViolations(t *testing.T) {
	bad := []string{
		`{}`,
		`{"kind":"fly"}`,
		`{"kind":"choose_pair"}`,
		`{"kind":"choose_pair","params":{"slot":4}}`,
		`{"kind":"place_token","params":{"at":{"q":1}}}`,
		`{"kind":"replace_tokens","params":{"indices":[]}}`,
		`{"kind":"replace_tokens","params":{"indices":[1,1]}}`,
		`{"kind":"replace_tokens","params":{"indices":[0,1,2,3,0]}}`,
		`{"kind":"end_turn","extra":true}`,
		`not json`,
	}
	for _, raw := range bad {
		if _, err := DecodeAction(json.RawMessage(raw)); !errors.Is(err, game.ErrInvalidArgument) {
			t.Fatalf("%s: expected ErrInvalidArgument, got %v", raw, err)
		}
	}
}

func TestEncodeActionDecodes(t *testing.T) {
	raw, err := EncodeAction(game.ReplaceTokens{Indices: []int{0, 2}, SpendNature: true})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	a, err := DecodeAction(raw)
	if err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	rt, ok := a.(game.ReplaceTokens)
	if !ok || !rt.SpendNature || len(rt.Indices) != 2 {
		t.Fatalf("unexpected action %#v", a)
	}
}

func TestErrorCode(t *testing.T) {
	cases := map[error]string{
		game.ErrNotYourTurn:                       CodeNotYourTurn,
		game.ErrGameOver:                          CodeGameOver,
		fmt.Errorf("x: %w", game.ErrInvalidState): CodeInvalidState,
		game.ErrUnknownAction:                     CodeInvalidArgument,
		game.ErrInsufficientSupply:                CodeInsufficientSupply,
		errors.New("boom"):                        CodeInternal,
	}
	for err, want := range cases {
		if got := ErrorCode(err); got != want {
			t.Fatalf("%v: expected %s, got %s", err, want, got)
		}
	}
}
