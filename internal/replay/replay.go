// Package replay records the actions of a game to a compressed JSONL log
// and re-runs them against a fresh game.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/gravitas-games/habitats/internal/game"
	"github.com/gravitas-games/habitats/internal/scoring"
	"github.com/gravitas-games/habitats/internal/supply"
)

// Header is the first line of a log and carries what is needed to rebuild
// the starting position.
type Header struct {
	GameID         string            `json:"game_id"`
	Seed           int64             `json:"seed"`
	TurnsPerPlayer int               `json:"turns_per_player"`
	Players        []game.PlayerSpec `json:"players"`
	Rules          scoring.Rules     `json:"rules"`
}

// Record is one applied action.
type Record struct {
	Seq     uint64          `json:"seq"`
	Player  string          `json:"player"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewHeader describes the game a setup will produce.
func NewHeader(s game.Setup) Header {
	return Header{
		GameID:         s.ID,
		Seed:           s.Seed,
		TurnsPerPlayer: s.TurnsPerPlayer,
		Players:        s.Players,
		Rules:          s.Rules,
	}
}

// Setup rebuilds the game setup. A nil catalog selects the built-in one and
// must match the catalog the game was recorded with.
func (h Header) Setup(cat *supply.Catalog) game.Setup {
	return game.Setup{
		ID:             h.GameID,
		Players:        h.Players,
		Rules:          h.Rules,
		Catalog:        cat,
		Seed:           h.Seed,
		TurnsPerPlayer: h.TurnsPerPlayer,
	}
}

// Path returns the log file for a game inside dir.
func Path(dir, gameID string) string {
	return filepath.Join(dir, gameID+".jsonl.zst")
}

// Writer appends records to a zstd-compressed JSONL file.
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// Create starts a new log at path and writes the header line.
func Create(path string, h Header) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w := &Writer{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}
	if err := w.writeLine(h); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// Write appends one record.
func (w *Writer) Write(r Record) error {
	return w.writeLine(r)
}

func (w *Writer) writeLine(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return errors.New("replay log is closed")
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

// Handler returns an event handler that records every action event. Write
// failures are logged; the game carries on.
func (w *Writer) Handler() func(game.Event) {
	return func(e game.Event) {
		if e.Type != game.EventAction || e.Action == nil {
			return
		}
		kind, payload, err := game.EncodeAction(e.Action)
		if err != nil {
			log.Printf("Replay: failed to encode action %d: %v", e.Seq, err)
			return
		}
		if err := w.Write(Record{Seq: e.Seq, Player: e.Player, Kind: kind, Payload: payload}); err != nil {
			log.Printf("Replay: failed to write action %d: %v", e.Seq, err)
		}
	}
}

// Close flushes and closes the log.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
		w.w = nil
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		if err := w.f.Close(); err1 == nil {
			err1 = err
		}
		w.f = nil
	}
	return err1
}

// Read loads a log written by Writer.
func Read(path string) (Header, []Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a compressed log from r.
func Decode(r io.Reader) (Header, []Record, error) {
	var h Header
	dec, err := zstd.NewReader(r)
	if err != nil {
		return h, nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return h, nil, err
		}
		return h, nil, errors.New("replay log is empty")
	}
	if err := json.Unmarshal(sc.Bytes(), &h); err != nil {
		return h, nil, fmt.Errorf("header: %w", err)
	}

	var recs []Record
	for line := 2; sc.Scan(); line++ {
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return h, nil, fmt.Errorf("line %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
	return h, recs, sc.Err()
}

// Apply re-executes records against g in order. It stops at the first
// record the game rejects.
func Apply(g *game.Game, recs []Record) error {
	for _, rec := range recs {
		a, err := game.DecodeAction(rec.Kind, rec.Payload)
		if err != nil {
			return fmt.Errorf("record %d: %w", rec.Seq, err)
		}
		if err := g.Execute(rec.Player, a); err != nil {
			return fmt.Errorf("record %d (%s by %s): %w", rec.Seq, rec.Kind, rec.Player, err)
		}
	}
	return nil
}

// Replay rebuilds a game from a log file and runs every record.
func Replay(path string, cat *supply.Catalog) (*game.Game, error) {
	h, recs, err := Read(path)
	if err != nil {
		return nil, err
	}
	g, err := game.New(h.Setup(cat))
	if err != nil {
		return nil, err
	}
	return g, Apply(g, recs)
}
