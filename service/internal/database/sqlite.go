package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS game_results (
	game_id              TEXT    NOT NULL,
	round                INTEGER NOT NULL,
	difficulty           TEXT    NOT NULL,
	pebbles_count        INTEGER NOT NULL,
	max_pebbles_per_turn INTEGER NOT NULL,
	pebbles_remaining    INTEGER NOT NULL,
	first_player         TEXT    NOT NULL,
	winner               TEXT    NOT NULL,
	turns                INTEGER NOT NULL,
	gave_up              BOOLEAN NOT NULL DEFAULT 0,
	finished_at          INTEGER NOT NULL,
	PRIMARY KEY (game_id, round)
);
CREATE INDEX IF NOT EXISTS idx_game_results_finished_at ON game_results (finished_at);
`

// SQLiteStore keeps results in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and its schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection serializes writers and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveResult inserts r, overwriting an earlier record of the same round.
func (s *SQLiteStore) SaveResult(ctx context.Context, r GameResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_results (
			game_id, round, difficulty, pebbles_count, max_pebbles_per_turn,
			pebbles_remaining, first_player, winner, turns, gave_up, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (game_id, round) DO UPDATE SET
			pebbles_remaining = excluded.pebbles_remaining,
			winner            = excluded.winner,
			turns             = excluded.turns,
			gave_up           = excluded.gave_up,
			finished_at       = excluded.finished_at`,
		r.GameID.String(), r.Round, r.Difficulty, r.PebblesCount, r.MaxPebblesPerTurn,
		r.PebblesRemaining, r.FirstPlayer, r.Winner, r.Turns, r.GaveUp, r.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert result for game %s: %w", r.GameID, err)
	}
	return nil
}

// ListResults returns the most recent results first.
func (s *SQLiteStore) ListResults(ctx context.Context, limit int) ([]GameResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_id, round, difficulty, pebbles_count, max_pebbles_per_turn,
		       pebbles_remaining, first_player, winner, turns, gave_up, finished_at
		FROM game_results
		ORDER BY finished_at DESC, round DESC
		LIMIT ?`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var (
			r        GameResult
			id       string
			finished int64
		)
		if err := rows.Scan(&id, &r.Round, &r.Difficulty, &r.PebblesCount, &r.MaxPebblesPerTurn,
			&r.PebblesRemaining, &r.FirstPlayer, &r.Winner, &r.Turns, &r.GaveUp, &finished); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if r.GameID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse game id %q: %w", id, err)
		}
		r.FinishedAt = time.UnixMilli(finished).UTC()
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
