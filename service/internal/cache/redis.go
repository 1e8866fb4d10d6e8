// Package cache keeps the per-game action log and the latest state snapshot
// in Redis. Redis is never the source of truth: the live game owns its state.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	engine "github.com/JohnLee1360/JLpebbles-gear-academy/engine"
)

// ErrCacheMiss is returned when no snapshot is cached for a game.
var ErrCacheMiss = errors.New("cache miss")

// Client is the subset of go-redis commands the cache uses. *redis.Client
// satisfies it; tests substitute an in-memory fake.
type Client interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// GameActionRecord is one processed message in a game's action log.
type GameActionRecord struct {
	GameID        uuid.UUID              `json:"gameId"`
	ActionIndex   int                    `json:"actionIndex"`
	ActionType    string                 `json:"actionType"`
	ActionPayload map[string]interface{} `json:"actionPayload,omitempty"`
	Events        []string               `json:"events,omitempty"`
	Timestamp     int64                  `json:"timestamp"` // Unix millis.
}

// Store publishes action records and caches state snapshots.
type Store struct {
	client Client
	ttl    time.Duration
}

// New wraps client. Keys expire ttl after their last write; zero disables expiry.
func New(client Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Connect opens a go-redis client and verifies it with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return rdb, nil
}

func actionsKey(gameID uuid.UUID) string { return "pebbles:game:" + gameID.String() + ":actions" }
func stateKey(gameID uuid.UUID) string   { return "pebbles:game:" + gameID.String() + ":state" }

// PublishGameAction appends rec to the game's action log.
func (s *Store) PublishGameAction(ctx context.Context, rec GameActionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action record: %w", err)
	}
	key := actionsKey(rec.GameID)
	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", key, err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return nil
}

// GameActions returns the full action log of a game, oldest first.
func (s *Store) GameActions(ctx context.Context, gameID uuid.UUID) ([]GameActionRecord, error) {
	key := actionsKey(gameID)
	raw, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}
	records := make([]GameActionRecord, 0, len(raw))
	for i, item := range raw {
		var rec GameActionRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal action record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// SetState caches the latest snapshot of a game.
func (s *Store) SetState(ctx context.Context, gameID uuid.UUID, state engine.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal game state: %w", err)
	}
	if err := s.client.Set(ctx, stateKey(gameID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set state for game %s: %w", gameID, err)
	}
	return nil
}

// GetState returns the cached snapshot, or ErrCacheMiss.
func (s *Store) GetState(ctx context.Context, gameID uuid.UUID) (engine.GameState, error) {
	data, err := s.client.Get(ctx, stateKey(gameID)).Result()
	if errors.Is(err, redis.Nil) {
		return engine.GameState{}, ErrCacheMiss
	}
	if err != nil {
		return engine.GameState{}, fmt.Errorf("get state for game %s: %w", gameID, err)
	}

	var state engine.GameState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return engine.GameState{}, fmt.Errorf("unmarshal game state: %w", err)
	}
	return state, nil
}
