// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	engine "github.com/JohnLee1360/JLpebbles-gear-academy/engine"
)

// Config holds every setting of the pebbles server.
type Config struct {
	Addr            string        `env:"PEBBLES_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"PEBBLES_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"PEBBLES_LOG_FORMAT" envDefault:"text"`
	ShutdownTimeout time.Duration `env:"PEBBLES_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Redis is optional; an empty address disables the action log.
	RedisAddr     string        `env:"PEBBLES_REDIS_ADDR"`
	RedisPassword string        `env:"PEBBLES_REDIS_PASSWORD"`
	RedisDB       int           `env:"PEBBLES_REDIS_DB" envDefault:"0"`
	ActionLogTTL  time.Duration `env:"PEBBLES_ACTION_LOG_TTL" envDefault:"24h"`

	// DatabaseURL selects Postgres; otherwise results go to SQLitePath.
	// Both empty disables result storage.
	DatabaseURL string `env:"PEBBLES_DATABASE_URL"`
	SQLitePath  string `env:"PEBBLES_SQLITE_PATH" envDefault:"data/pebbles.db"`

	// Seed makes games reproducible when non-zero.
	Seed uint64 `env:"PEBBLES_SEED" envDefault:"0"`

	DefaultDifficulty        string `env:"PEBBLES_DEFAULT_DIFFICULTY" envDefault:"easy"`
	DefaultPebblesCount      uint32 `env:"PEBBLES_DEFAULT_PEBBLES_COUNT" envDefault:"15"`
	DefaultMaxPebblesPerTurn uint32 `env:"PEBBLES_DEFAULT_MAX_PEBBLES_PER_TURN" envDefault:"3"`
}

// Load reads the given .env files (default ".env"), skipping missing ones,
// then parses the environment. Variables already set win over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// GameDefaults is the engine config used when an init or restart message
// carries none.
func (c Config) GameDefaults() (engine.Config, error) {
	difficulty, err := engine.ParseDifficulty(c.DefaultDifficulty)
	if err != nil {
		return engine.Config{}, fmt.Errorf("default difficulty: %w", err)
	}
	gc := engine.Config{
		Difficulty:        difficulty,
		PebblesCount:      c.DefaultPebblesCount,
		MaxPebblesPerTurn: c.DefaultMaxPebblesPerTurn,
	}
	if err := gc.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("default game config: %w", err)
	}
	return gc, nil
}
