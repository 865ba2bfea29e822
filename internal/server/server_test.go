package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gravitas-games/habitats/internal/habitat"
	"github.com/gravitas-games/habitats/internal/persistence"
	"github.com/gravitas-games/habitats/internal/scoring"
)

func newTestServer(t *testing.T) (*Server, *fakeCache) {
	t.Helper()
	store, err := persistence.Open(":memory:")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	s, _, cache := newTestSession(t, testConfig(t))
	return &Server{session: s, store: store, cache: cache}, cache
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Status  string        `json:"status"`
		Session SessionStatus `json:"session"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.Session.State != "waiting" {
		t.Fatalf("unexpected health %+v", body)
	}
}

func TestScoresPrefersCache(t *testing.T) {
	srv, cache := newTestServer(t)
	if rec := get(t, srv, "/scores?game=g1"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown game, got %d", rec.Code)
	}

	b := scoring.Breakdown{Player: "ana", Animals: map[habitat.Animal]int{habitat.Elk: 5}}
	if err := srv.store.SaveResult("g1", []scoring.Breakdown{b}); err != nil {
		t.Fatalf("save: %v", err)
	}
	rec := get(t, srv, "/scores?game=g1")
	var rows []persistence.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil || len(rows) != 1 || rows[0].Total != 5 {
		t.Fatalf("expected stored result, got %d %s", rec.Code, rec.Body.String())
	}

	cache.data["g1"] = []byte(`{"game_id":"g1","cached":true}`)
	rec = get(t, srv, "/scores?game=g1")
	if rec.Body.String() != `{"game_id":"g1","cached":true}` {
		t.Fatalf("expected cached body, got %s", rec.Body.String())
	}
}

func TestLeaderboard(t *testing.T) {
	srv, _ := newTestServer(t)
	_ = srv.store.SaveResult("g1", []scoring.Breakdown{
		{Player: "ana", NatureTokens: 3},
		{Player: "ben", NatureTokens: 7},
	})
	rec := get(t, srv, "/leaderboard?limit=1")
	var rows []persistence.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 || rows[0].Player != "ben" {
		t.Fatalf("unexpected leaderboard %+v", rows)
	}
	if rec := get(t, srv, "/leaderboard?limit=zero"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
