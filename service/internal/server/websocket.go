package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/game"
)

const writeTimeout = 5 * time.Second

// handleWebsocket hosts one game for the lifetime of the connection. The
// first frame sent is the uninitialized state, carrying the game ID.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("Websocket accept failed.")
		return
	}
	defer conn.CloseNow()

	rng, err := s.newRandom()
	if err != nil {
		s.log.WithError(err).Error("Failed seeding game.")
		conn.Close(websocket.StatusInternalError, "failed to seed game")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	g := game.NewPebblesGame(rng, s.defaults, s.log)
	if s.cache != nil {
		g.Actions = s.cache
		g.States = s.cache
	}
	if s.results != nil {
		g.Results = s.results
	}

	var writeMu sync.Mutex
	send := func(ev game.GameEvent) {
		writeMu.Lock()
		defer writeMu.Unlock()
		wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
		defer wcancel()
		if err := wsjson.Write(wctx, conn, ev); err != nil {
			g.Logger.WithError(err).Debug("Failed writing event.")
		}
	}
	g.BroadcastFn = send

	s.register(g)
	defer s.unregister(g.ID)
	g.Logger.Info("Client connected.")

	go g.Run(ctx)

	view := g.Snapshot()
	send(game.GameEvent{Type: game.EventState, State: &view})

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				g.Logger.Info("Client disconnected.")
			} else {
				g.Logger.WithError(err).Warn("Websocket read failed.")
			}
			break
		}

		var action game.Action
		if err := json.Unmarshal(data, &action); err != nil {
			send(game.GameEvent{Type: game.EventError, Message: "malformed action: " + err.Error()})
			continue
		}
		if _, err := g.Send(ctx, action); err != nil {
			g.Logger.WithError(err).Debug("Game stopped while sending.")
			break
		}
	}

	cancel()
	<-g.Done()
	g.Wait()
}
