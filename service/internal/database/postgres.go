package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS game_results (
	game_id              UUID        NOT NULL,
	round                INTEGER     NOT NULL,
	difficulty           TEXT        NOT NULL,
	pebbles_count        BIGINT      NOT NULL,
	max_pebbles_per_turn BIGINT      NOT NULL,
	pebbles_remaining    BIGINT      NOT NULL,
	first_player         TEXT        NOT NULL,
	winner               TEXT        NOT NULL,
	turns                INTEGER     NOT NULL,
	gave_up              BOOLEAN     NOT NULL DEFAULT FALSE,
	finished_at          TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (game_id, round)
);
CREATE INDEX IF NOT EXISTS idx_game_results_finished_at ON game_results (finished_at DESC);
`

// PostgresStore keeps results in Postgres through a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects, pings and creates the schema if needed.
func OpenPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// SaveResult inserts r, overwriting an earlier record of the same round.
func (s *PostgresStore) SaveResult(ctx context.Context, r GameResult) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO game_results (
			game_id, round, difficulty, pebbles_count, max_pebbles_per_turn,
			pebbles_remaining, first_player, winner, turns, gave_up, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (game_id, round) DO UPDATE SET
			pebbles_remaining = EXCLUDED.pebbles_remaining,
			winner            = EXCLUDED.winner,
			turns             = EXCLUDED.turns,
			gave_up           = EXCLUDED.gave_up,
			finished_at       = EXCLUDED.finished_at`,
		r.GameID, r.Round, r.Difficulty, int64(r.PebblesCount), int64(r.MaxPebblesPerTurn),
		int64(r.PebblesRemaining), r.FirstPlayer, r.Winner, r.Turns, r.GaveUp, r.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert result for game %s: %w", r.GameID, err)
	}
	return nil
}

// ListResults returns the most recent results first.
func (s *PostgresStore) ListResults(ctx context.Context, limit int) ([]GameResult, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT game_id, round, difficulty, pebbles_count, max_pebbles_per_turn,
		       pebbles_remaining, first_player, winner, turns, gave_up, finished_at
		FROM game_results
		ORDER BY finished_at DESC
		LIMIT $1`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (GameResult, error) {
		var r GameResult
		var count, perTurn, remaining int64
		err := row.Scan(&r.GameID, &r.Round, &r.Difficulty, &count, &perTurn,
			&remaining, &r.FirstPlayer, &r.Winner, &r.Turns, &r.GaveUp, &r.FinishedAt)
		r.PebblesCount, r.MaxPebblesPerTurn, r.PebblesRemaining = uint32(count), uint32(perTurn), uint32(remaining)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan results: %w", err)
	}
	return results, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
