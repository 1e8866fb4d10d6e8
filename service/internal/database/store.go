// Package database persists the results of finished games.
package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoStore is returned by Open when neither backend is configured.
var ErrNoStore = errors.New("no results store configured")

// GameResult is the final record of one round of a game. Restarting a game
// begins a new round under the same game ID.
type GameResult struct {
	GameID            uuid.UUID `json:"game_id"`
	Round             int       `json:"round"`
	Difficulty        string    `json:"difficulty"`
	PebblesCount      uint32    `json:"pebbles_count"`
	MaxPebblesPerTurn uint32    `json:"max_pebbles_per_turn"`
	PebblesRemaining  uint32    `json:"pebbles_remaining"`
	FirstPlayer       string    `json:"first_player"`
	Winner            string    `json:"winner"`
	Turns             int       `json:"turns"`
	GaveUp            bool      `json:"gave_up"`
	FinishedAt        time.Time `json:"finished_at"`
}

// Store saves and lists game results.
type Store interface {
	SaveResult(ctx context.Context, r GameResult) error
	ListResults(ctx context.Context, limit int) ([]GameResult, error)
	Close() error
}

// Open picks Postgres when databaseURL is set, SQLite when sqlitePath is set.
func Open(ctx context.Context, databaseURL, sqlitePath string) (Store, error) {
	switch {
	case databaseURL != "":
		return OpenPostgres(ctx, databaseURL)
	case sqlitePath != "":
		return OpenSQLite(ctx, sqlitePath)
	}
	return nil, ErrNoStore
}

const defaultListLimit = 50

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return defaultListLimit
	}
	return limit
}
