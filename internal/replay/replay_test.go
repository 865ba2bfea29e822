package replay

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gravitas-games/habitats/internal/game"
	"github.com/gravitas-games/habitats/internal/habitat"
	"github.com/gravitas-games/habitats/internal/scoring"
	"github.com/gravitas-games/habitats/internal/supply"
)

func setup() game.Setup {
	var rules scoring.Rules
	rules[habitat.Hawk] = scoring.VariantB
	return game.Setup{
		ID:             "replay-test",
		Players:        []game.PlayerSpec{{Name: "ana", Mode: game.ModeLocal}, {Name: "ben", Mode: game.ModeBot}},
		Rules:          rules,
		Seed:           42,
		TurnsPerPlayer: 3,
	}
}

// playTurn takes the first full slot, places the tile on the first free
// spot and tries the token everywhere before discarding it.
func playTurn(t *testing.T, g *game.Game) {
	t.Helper()
	for i := 0; i < supply.Slots; i++ {
		if s, _ := g.Shop().Slot(i); s.Full() {
			if err := g.ChooseTokenTilePair(i); err != nil {
				t.Fatalf("choose: %v", err)
			}
			break
		}
	}
	h := g.Active().Habitat
	_ = g.RotateTile()
placed:
	for _, c := range h.Coords() {
		for _, nb := range c.Neighbors() {
			if h.CanPlaceTile(nb) {
				if err := g.AddTileToHabitat(nb); err != nil {
					t.Fatalf("place: %v", err)
				}
				break placed
			}
		}
	}
	for _, c := range h.Coords() {
		if g.AddToken(c) == nil {
			break
		}
	}
	if err := g.NextTurn(); err != nil {
		t.Fatalf("end turn: %v", err)
	}
}

func TestRecordAndReplay(t *testing.T) {
	path := Path(t.TempDir(), "replay-test")
	s := setup()
	w, err := Create(path, NewHeader(s))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	bus := game.NewSimpleEventBus()
	bus.Subscribe("replay", w.Handler())
	s.Events = bus
	g, err := game.New(s)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	// A rejected action must not reach the log.
	if err := g.Execute("ben", game.ChoosePair{Slot: 0}); !errors.Is(err, game.ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	for !g.Finished() {
		playTurn(t, g)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	h, recs, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if h.GameID != "replay-test" || h.Seed != 42 || len(h.Players) != 2 {
		t.Fatalf("unexpected header %+v", h)
	}
	for i, r := range recs {
		if r.Player == "ben" && i == 0 {
			t.Fatalf("rejected action was recorded")
		}
	}

	again, err := Replay(path, nil)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	want, _ := json.Marshal(g.Snapshot())
	got, _ := json.Marshal(again.Snapshot())
	if string(want) != string(got) {
		t.Fatalf("replayed game differs:\nwant %s\ngot  %s", want, got)
	}
	if !again.Finished() {
		t.Fatalf("expected replayed game to be finished")
	}
}

func TestApplyStopsAtRejectedRecord(t *testing.T) {
	g, err := game.New(setup())
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	recs := []Record{
		{Seq: 1, Player: "ana", Kind: game.KindChoosePair, Payload: json.RawMessage(`{"slot":0}`)},
		{Seq: 2, Player: "ana", Kind: game.KindEndTurn},
	}
	if err := Apply(g, recs); !errors.Is(err, game.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if err := Apply(g, []Record{{Seq: 3, Player: "ana", Kind: "warp"}}); !errors.Is(err, game.ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl.zst")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := Read(path); err == nil {
		t.Fatalf("expected error reading uncompressed file")
	}
	if _, _, err := Read(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
