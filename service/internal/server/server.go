// Package server exposes pebbles games over websocket and a small JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/JohnLee1360/JLpebbles-gear-academy/engine"
	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/cache"
	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/database"
	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/game"
	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/random"
)

// Options configures a Server. Cache and Results are optional.
type Options struct {
	Logger    *logrus.Logger
	Defaults  engine.Config
	NewRandom func() (engine.RandomSource, error)
	Cache     *cache.Store
	Results   database.Store
}

// Server owns the registry of live games, one per websocket connection.
type Server struct {
	log       *logrus.Logger
	defaults  engine.Config
	newRandom func() (engine.RandomSource, error)
	cache     *cache.Store
	results   database.Store

	mu    sync.RWMutex
	games map[uuid.UUID]*game.PebblesGame

	ctx    context.Context
	cancel context.CancelFunc
	mux    *http.ServeMux
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.NewRandom == nil {
		opts.NewRandom = random.SourceFactory(0)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		log:       opts.Logger,
		defaults:  opts.Defaults,
		newRandom: opts.NewRandom,
		cache:     opts.Cache,
		results:   opts.Results,
		games:     make(map[uuid.UUID]*game.PebblesGame),
		ctx:       ctx,
		cancel:    cancel,
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /ws", s.handleWebsocket)
	s.mux.HandleFunc("GET /games/{id}", s.handleGame)
	s.mux.HandleFunc("GET /games/{id}/actions", s.handleGameActions)
	s.mux.HandleFunc("GET /results", s.handleResults)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.mux }

// Close stops every live game. Their websocket connections are closed.
func (s *Server) Close() { s.cancel() }

func (s *Server) register(g *game.PebblesGame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g
}

func (s *Server) unregister(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

func (s *Server) lookup(id uuid.UUID) (*game.PebblesGame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	return g, ok
}

// LiveGames returns the number of connected games.
func (s *Server) LiveGames() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// handleGame returns the live state of a game, falling back to the cached
// snapshot once its connection is gone.
func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	if g, ok := s.lookup(id); ok {
		writeJSON(w, http.StatusOK, g.Snapshot())
		return
	}
	if s.cache == nil {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}

	state, err := s.cache.GetState(r.Context(), id)
	if errors.Is(err, cache.ErrCacheMiss) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if err != nil {
		s.log.WithError(err).WithField("game_id", id.String()).Error("Failed reading cached state.")
		writeError(w, http.StatusInternalServerError, "cache unavailable")
		return
	}
	writeJSON(w, http.StatusOK, game.StateView{
		GameID:      id,
		Initialized: true,
		GameOver:    state.IsTerminal(),
		Game:        state,
		LegalMoves:  game.LegalMoveRange(&state),
	})
}

func (s *Server) handleGameActions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	if s.cache == nil {
		writeError(w, http.StatusServiceUnavailable, "action log disabled")
		return
	}
	records, err := s.cache.GameActions(r.Context(), id)
	if err != nil {
		s.log.WithError(err).WithField("game_id", id.String()).Error("Failed reading action log.")
		writeError(w, http.StatusInternalServerError, "cache unavailable")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		writeError(w, http.StatusServiceUnavailable, "results store disabled")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	results, err := s.results.ListResults(r.Context(), limit)
	if err != nil {
		s.log.WithError(err).Error("Failed listing results.")
		writeError(w, http.StatusInternalServerError, "results unavailable")
		return
	}
	if results == nil {
		results = []database.GameResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"games":  s.LiveGames(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
