package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"suspects/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Game    GameConfig    `yaml:"game"`
	Limits  LimitsConfig  `yaml:"limits"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
	Env  string `yaml:"env"` // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	MinPlayers     int                     `yaml:"min_players"`
	MaxPlayers     int                     `yaml:"max_players"`
	NightVoteMs    int                     `yaml:"night_vote_ms"`
	DayVoteMs      int                     `yaml:"day_vote_ms"`
	TrialVoteMs    int                     `yaml:"trial_vote_ms"`
	RoomCodeLength int                     `yaml:"room_code_length"`
	Roles          domain.RoleDistribution `yaml:"roles"`
}

// LimitsConfig holds per-connection inbound message limits
type LimitsConfig struct {
	MessagesPerSecond float64 `yaml:"messages_per_second"`
	MessageBurst      int     `yaml:"message_burst"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Host: "0.0.0.0",
			Env:  "development",
		},
		Game: GameConfig{
			MinPlayers:     4,
			MaxPlayers:     15,
			NightVoteMs:    30000,
			DayVoteMs:      90000,
			TrialVoteMs:    30000,
			RoomCodeLength: 6,
			Roles:          domain.DefaultRoleDistribution(),
		},
		Limits: LimitsConfig{
			MessagesPerSecond: 10,
			MessageBurst:      20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (a missing file is fine), then a .env file, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides fields with any environment variables that are set
func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.Host = getEnv("HOST", c.Server.Host)
	c.Server.Env = getEnv("ENV", c.Server.Env)

	c.Game.MinPlayers = getEnvInt("MIN_PLAYERS", c.Game.MinPlayers)
	c.Game.MaxPlayers = getEnvInt("MAX_PLAYERS", c.Game.MaxPlayers)
	c.Game.NightVoteMs = getEnvInt("NIGHT_VOTE_MS", c.Game.NightVoteMs)
	c.Game.DayVoteMs = getEnvInt("DAY_VOTE_MS", c.Game.DayVoteMs)
	c.Game.TrialVoteMs = getEnvInt("TRIAL_VOTE_MS", c.Game.TrialVoteMs)
	c.Game.RoomCodeLength = getEnvInt("ROOM_CODE_LENGTH", c.Game.RoomCodeLength)

	c.Game.Roles.ImpostorThreshold = getEnvInt("IMPOSTOR_THRESHOLD", c.Game.Roles.ImpostorThreshold)
	c.Game.Roles.ImpostorDivisorLow = getEnvInt("IMPOSTOR_DIVISOR_LOW", c.Game.Roles.ImpostorDivisorLow)
	c.Game.Roles.ImpostorDivisorHigh = getEnvInt("IMPOSTOR_DIVISOR_HIGH", c.Game.Roles.ImpostorDivisorHigh)
	c.Game.Roles.MedicDivisor = getEnvInt("MEDIC_DIVISOR", c.Game.Roles.MedicDivisor)
	c.Game.Roles.DetectiveDivisor = getEnvInt("DETECTIVE_DIVISOR", c.Game.Roles.DetectiveDivisor)
	c.Game.Roles.JesterDivisor = getEnvInt("JESTER_DIVISOR", c.Game.Roles.JesterDivisor)

	c.Limits.MessagesPerSecond = getEnvFloat("MESSAGES_PER_SECOND", c.Limits.MessagesPerSecond)
	c.Limits.MessageBurst = getEnvInt("MESSAGE_BURST", c.Limits.MessageBurst)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
}

// Validate rejects settings the game cannot run with
func (c *Config) Validate() error {
	g := c.Game
	if g.MinPlayers < 1 || g.MaxPlayers < g.MinPlayers {
		return fmt.Errorf("invalid player bounds: min=%d max=%d", g.MinPlayers, g.MaxPlayers)
	}
	if g.NightVoteMs <= 0 || g.DayVoteMs <= 0 || g.TrialVoteMs <= 0 {
		return fmt.Errorf("vote durations must be positive")
	}

	for n := g.MinPlayers; n <= g.MaxPlayers; n++ {
		if _, err := g.Roles.Counts(n); err != nil {
			return fmt.Errorf("role distribution at %d players: %w", n, err)
		}
	}

	return nil
}

// Settings converts the game section into domain settings
func (g GameConfig) Settings() domain.GameSettings {
	return domain.GameSettings{
		MinPlayers:    g.MinPlayers,
		MaxPlayers:    g.MaxPlayers,
		NightDuration: time.Duration(g.NightVoteMs) * time.Millisecond,
		DayDuration:   time.Duration(g.DayVoteMs) * time.Millisecond,
		TrialDuration: time.Duration(g.TrialVoteMs) * time.Millisecond,
		Roles:         g.Roles,
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat returns an environment variable as a float or a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
