package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/habitats/internal/game"
	"github.com/gravitas-games/habitats/internal/scoring"
	"github.com/gravitas-games/habitats/internal/supply"
)

// Config holds all server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	JWT     JWTConfig     `yaml:"jwt"`
	Redis   RedisConfig   `yaml:"redis"`
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Replay  ReplayConfig  `yaml:"replay"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// JWTConfig holds JWT authentication settings
type JWTConfig struct {
	Issuer              string `yaml:"issuer"`
	PublicKeyURL        string `yaml:"public_key_url"`
	PublicKeyRefreshHrs int    `yaml:"public_key_refresh_hours"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
	ScoresPrefix    string `yaml:"scores_prefix"`
	ScoresTTLHours  int    `yaml:"scores_ttl_hours"`
}

// GameConfig describes the game a server session hosts.
type GameConfig struct {
	Players        []game.PlayerSpec `yaml:"players"`
	Seed           int64             `yaml:"seed"`
	TurnsPerPlayer int               `yaml:"turns_per_player"`
	Rules          map[string]string `yaml:"rules"` // animal -> A|B
	Catalog        string            `yaml:"catalog"`
}

// StorageConfig holds the result store settings
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ReplayConfig holds action log settings
type ReplayConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.PublicKeyRefreshHrs == 0 {
		cfg.JWT.PublicKeyRefreshHrs = 24
	}
	if cfg.Redis.BlacklistPrefix == "" {
		cfg.Redis.BlacklistPrefix = "blacklist:"
	}
	if cfg.Redis.ScoresPrefix == "" {
		cfg.Redis.ScoresPrefix = "scores:"
	}
	if cfg.Redis.ScoresTTLHours == 0 {
		cfg.Redis.ScoresTTLHours = 24 * 7
	}
	if cfg.Game.TurnsPerPlayer == 0 {
		cfg.Game.TurnsPerPlayer = game.DefaultTurnsPerPlayer
	}
	for i := range cfg.Game.Players {
		if cfg.Game.Players[i].Mode == "" {
			cfg.Game.Players[i].Mode = game.ModeRemote
		}
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "data/results.db"
	}
	if cfg.Replay.Dir == "" {
		cfg.Replay.Dir = "data/replays"
	}

	if _, err := cfg.Game.ScoringRules(); err != nil {
		return nil, fmt.Errorf("invalid game rules: %w", err)
	}
	return &cfg, nil
}

// ScoringRules parses the configured rule selection.
func (g GameConfig) ScoringRules() (scoring.Rules, error) {
	return scoring.ParseRules(g.Rules)
}

// Setup builds a game setup from the configuration. The catalog file is
// optional; without it the built-in catalog is used.
func (g GameConfig) Setup(id string) (game.Setup, error) {
	rules, err := g.ScoringRules()
	if err != nil {
		return game.Setup{}, err
	}
	s := game.Setup{
		ID:             id,
		Players:        g.Players,
		Rules:          rules,
		Seed:           g.Seed,
		TurnsPerPlayer: g.TurnsPerPlayer,
	}
	if g.Catalog != "" {
		cat, err := supply.LoadCatalog(g.Catalog)
		if err != nil {
			return game.Setup{}, err
		}
		s.Catalog = cat
	}
	return s, nil
}
