// Package persistence stores finished game results in SQLite.
package persistence

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/gravitas-games/habitats/internal/scoring"
)

// Store wraps a SQLite connection for result storage.
type Store struct {
	conn *sqlx.DB
}

// Result is one player's stored final score.
type Result struct {
	GameID       string    `db:"game_id" json:"game_id"`
	Player       string    `db:"player" json:"player"`
	Rank         int       `db:"rank" json:"rank"`
	Total        int       `db:"total" json:"total"`
	NatureTokens int       `db:"nature_tokens" json:"nature_tokens"`
	Animals      string    `db:"animals_json" json:"-"`
	Terrains     string    `db:"terrains_json" json:"-"`
	Bonus        string    `db:"bonus_json" json:"-"`
	FinishedAt   time.Time `db:"finished_at" json:"finished_at"`
}

// Open opens or creates a SQLite database at the given path. ":memory:"
// gives a private in-memory store.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own database.
		conn.SetMaxOpenConns(1)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		game_id TEXT NOT NULL,
		player TEXT NOT NULL,
		rank INTEGER NOT NULL,
		total INTEGER NOT NULL,
		nature_tokens INTEGER NOT NULL,
		animals_json TEXT NOT NULL,
		terrains_json TEXT NOT NULL,
		bonus_json TEXT NOT NULL,
		finished_at DATETIME NOT NULL,
		PRIMARY KEY (game_id, player)
	);

	CREATE INDEX IF NOT EXISTS idx_results_total ON results(total DESC);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveResult stores the final breakdowns of a game, replacing any earlier
// save of the same game. Players are ranked by total; ties share a rank.
func (s *Store) SaveResult(gameID string, scores []scoring.Breakdown) error {
	if gameID == "" {
		return fmt.Errorf("save result: empty game id")
	}
	rows := make([]Result, 0, len(scores))
	now := time.Now().UTC()
	for _, b := range scores {
		animals, err := json.Marshal(b.Animals)
		if err != nil {
			return err
		}
		terrains, err := json.Marshal(b.Terrains)
		if err != nil {
			return err
		}
		bonus, err := json.Marshal(b.Bonus)
		if err != nil {
			return err
		}
		rows = append(rows, Result{
			GameID:       gameID,
			Player:       b.Player,
			Total:        b.Total(),
			NatureTokens: b.NatureTokens,
			Animals:      string(animals),
			Terrains:     string(terrains),
			Bonus:        string(bonus),
			FinishedAt:   now,
		})
	}
	rank(rows)

	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM results WHERE game_id = ?", gameID); err != nil {
		return err
	}
	for _, r := range rows {
		_, err := tx.NamedExec(`INSERT INTO results
			(game_id, player, rank, total, nature_tokens, animals_json, terrains_json, bonus_json, finished_at)
			VALUES (:game_id, :player, :rank, :total, :nature_tokens, :animals_json, :terrains_json, :bonus_json, :finished_at)`, r)
		if err != nil {
			return fmt.Errorf("insert result %s/%s: %w", gameID, r.Player, err)
		}
	}
	return tx.Commit()
}

// Results returns the stored results of one game, best first.
func (s *Store) Results(gameID string) ([]Result, error) {
	var out []Result
	err := s.conn.Select(&out,
		"SELECT * FROM results WHERE game_id = ? ORDER BY rank, player",
		gameID,
	)
	return out, err
}

// TopScores returns the best individual results across all games.
func (s *Store) TopScores(limit int) ([]Result, error) {
	var out []Result
	err := s.conn.Select(&out,
		"SELECT * FROM results ORDER BY total DESC, finished_at, player LIMIT ?",
		limit,
	)
	return out, err
}

// Breakdown rebuilds the scoring breakdown of a stored result.
func (r Result) Breakdown() (scoring.Breakdown, error) {
	b := scoring.Breakdown{Player: r.Player, NatureTokens: r.NatureTokens}
	if err := json.Unmarshal([]byte(r.Animals), &b.Animals); err != nil {
		return b, fmt.Errorf("animals: %w", err)
	}
	if err := json.Unmarshal([]byte(r.Terrains), &b.Terrains); err != nil {
		return b, fmt.Errorf("terrains: %w", err)
	}
	if err := json.Unmarshal([]byte(r.Bonus), &b.Bonus); err != nil {
		return b, fmt.Errorf("bonus: %w", err)
	}
	return b, nil
}

// rank assigns competition ranks (1, 2, 2, 4) by descending total.
func rank(rows []Result) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })
	for i := range rows {
		if i > 0 && rows[i].Total == rows[i-1].Total {
			rows[i].Rank = rows[i-1].Rank
		} else {
			rows[i].Rank = i + 1
		}
	}
}
