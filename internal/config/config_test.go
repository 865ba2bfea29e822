package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gravitas-games/habitats/internal/game"
	"github.com/gravitas-games/habitats/internal/habitat"
	"github.com/gravitas-games/habitats/internal/scoring"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("game:\n  players:\n    - name: ana\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.JWT.PublicKeyRefreshHrs != 24 {
		t.Fatalf("unexpected server defaults: %+v %+v", cfg.Server, cfg.JWT)
	}
	if cfg.Redis.BlacklistPrefix != "blacklist:" || cfg.Redis.ScoresPrefix != "scores:" {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Game.TurnsPerPlayer != game.DefaultTurnsPerPlayer {
		t.Fatalf("expected %d turns, got %d", game.DefaultTurnsPerPlayer, cfg.Game.TurnsPerPlayer)
	}
	if cfg.Game.Players[0].Mode != game.ModeRemote {
		t.Fatalf("expected remote mode default, got %q", cfg.Game.Players[0].Mode)
	}
}

func TestParseRejectsBadRules(t *testing.T) {
	if _, err := Parse([]byte("game:\n  rules:\n    bare: A\n")); err == nil {
		t.Fatalf("expected unknown animal to fail")
	}
	if _, err := Parse([]byte("game:\n  rules:\n    bear: C\n")); err == nil {
		t.Fatalf("expected unknown variant to fail")
	}
}

func TestSetupUsesRulesAndCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data, err := os.ReadFile("../../configs/server.yaml")
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("parse sample config: %v", err)
	}
	cfg.Game.Rules = map[string]string{"hawk": "B"}
	s, err := cfg.Game.Setup("g1")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if s.Rules.For(habitat.Hawk) != scoring.VariantB || s.Catalog != nil || len(s.Players) != 2 {
		t.Fatalf("unexpected setup %+v", s)
	}

	cfg.Game.Catalog = path
	if _, err := cfg.Game.Setup("g1"); err == nil {
		t.Fatalf("expected missing catalog file to fail")
	}
	if err := os.WriteFile(path, []byte("tiles: []\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := cfg.Game.Setup("g1"); err == nil {
		t.Fatalf("expected empty catalog rejected")
	}
}
