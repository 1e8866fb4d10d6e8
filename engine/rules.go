package engine

import (
	"errors"
	"fmt"
)

// Config holds the parameters accepted by Init and Restart.
type Config struct {
	Difficulty        DifficultyLevel `json:"difficulty"`
	PebblesCount      uint32          `json:"pebbles_count"`
	MaxPebblesPerTurn uint32          `json:"max_pebbles_per_turn"`
}

// DefaultConfig returns the standard game: 15 pebbles, at most 3 per turn, easy.
func DefaultConfig() Config {
	return Config{
		Difficulty:        Easy,
		PebblesCount:      15,
		MaxPebblesPerTurn: 3,
	}
}

// ErrInvalidConfig is matched by every *ConfigError via errors.Is.
var ErrInvalidConfig = errors.New("invalid game config")

// ConfigError reports which Init/Restart parameter was rejected.
type ConfigError struct {
	Field  string
	Value  uint32
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfig) true for any ConfigError.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// Validate checks pebbles_count >= 1 and 1 <= max_pebbles_per_turn <= pebbles_count.
func (c Config) Validate() error {
	if c.Difficulty != Easy && c.Difficulty != Hard {
		return &ConfigError{Field: "difficulty", Value: uint32(c.Difficulty), Reason: "unknown level"}
	}
	if c.PebblesCount < 1 {
		return &ConfigError{Field: "pebbles_count", Value: c.PebblesCount, Reason: "must be at least 1"}
	}
	if c.MaxPebblesPerTurn < 1 {
		return &ConfigError{Field: "max_pebbles_per_turn", Value: c.MaxPebblesPerTurn, Reason: "must be at least 1"}
	}
	if c.MaxPebblesPerTurn > c.PebblesCount {
		return &ConfigError{
			Field:  "max_pebbles_per_turn",
			Value:  c.MaxPebblesPerTurn,
			Reason: fmt.Sprintf("must not exceed pebbles_count %d", c.PebblesCount),
		}
	}
	return nil
}
