// internal/game/game.go
package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/JohnLee1360/JLpebbles-gear-academy/engine"
	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/cache"
	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/database"
)

// ErrStopped is returned by Send once Run has exited.
var ErrStopped = errors.New("game actor stopped")

// persistTimeout bounds each background write to Redis or the results store.
const persistTimeout = 2 * time.Second

// OnGameEndFunc is called, with the lock held, when a round finishes.
type OnGameEndFunc func(gameID uuid.UUID, result database.GameResult)

// ActionPublisher appends processed actions to a game's log.
type ActionPublisher interface {
	PublishGameAction(ctx context.Context, rec cache.GameActionRecord) error
}

// StateCacher stores the latest state of a game.
type StateCacher interface {
	SetState(ctx context.Context, gameID uuid.UUID, state engine.GameState) error
}

// ResultSaver records finished rounds.
type ResultSaver interface {
	SaveResult(ctx context.Context, r database.GameResult) error
}

type request struct {
	action Action
	reply  chan []GameEvent
}

// PebblesGame hosts one engine game behind a mailbox. Messages are handled
// one at a time in arrival order by the Run goroutine.
type PebblesGame struct {
	ID uuid.UUID

	Engine      engine.GameState // Authoritative state, valid once Initialized.
	Initialized bool
	Round       int            // 1 after init, incremented by each restart.
	Defaults    engine.Config  // Used when init/restart carry no config.
	rng         engine.RandomSource
	gaveUp      bool
	actionIndex int

	Mu sync.Mutex

	BroadcastFn func(ev GameEvent)
	OnGameEnd   OnGameEndFunc

	// Optional collaborators; nil disables the concern.
	Actions ActionPublisher
	States  StateCacher
	Results ResultSaver

	Logger *logrus.Entry

	mailbox chan request
	done    chan struct{}
	pending sync.WaitGroup
}

// NewPebblesGame creates an uninitialized game using rng for every random
// decision.
func NewPebblesGame(rng engine.RandomSource, defaults engine.Config, logger *logrus.Logger) *PebblesGame {
	id, _ := uuid.NewRandom()
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PebblesGame{
		ID:       id,
		Defaults: defaults,
		rng:      rng,
		Logger:   logger.WithField("game_id", id.String()),
		mailbox:  make(chan request),
		done:     make(chan struct{}),
	}
}

// Run drains the mailbox until ctx is cancelled. It must be called once.
func (g *PebblesGame) Run(ctx context.Context) error {
	defer close(g.done)
	for {
		select {
		case <-ctx.Done():
			g.Logger.Debug("Actor stopped.")
			return ctx.Err()
		case req := <-g.mailbox:
			req.reply <- g.HandleAction(req.action)
		}
	}
}

// Send delivers a to the Run goroutine and waits for its events.
func (g *PebblesGame) Send(ctx context.Context, a Action) ([]GameEvent, error) {
	req := request{action: a, reply: make(chan []GameEvent, 1)}
	select {
	case g.mailbox <- req:
	case <-g.done:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	// Once accepted, Run always replies before looking at ctx again.
	select {
	case events := <-req.reply:
		return events, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done is closed when Run returns.
func (g *PebblesGame) Done() <-chan struct{} { return g.done }

// HandleAction processes a single message synchronously and broadcasts the
// resulting events. Run calls it; tests may call it directly.
func (g *PebblesGame) HandleAction(a Action) []GameEvent {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	wasOver := g.Initialized && g.Engine.IsTerminal()
	prevRound := g.Round

	var events []GameEvent
	switch a.Type {
	case ActionInit:
		events = g.handleInit(a)
	case ActionTurn:
		events = g.handleTurn(a)
	case ActionGiveUp:
		events = g.handleGiveUp()
	case ActionRestart:
		events = g.handleRestart(a)
	case ActionState:
		events = []GameEvent{g.stateEvent()}
	default:
		g.Logger.WithField("action", a.Type).Warn("Unknown action type.")
		events = []GameEvent{errorEvent("unknown action type %q", a.Type)}
	}

	if a.Type != ActionState {
		g.logAction(a, events)
		g.cacheState()
	}

	// A round that starts over (restart) is never "still over".
	if g.Round != prevRound {
		wasOver = false
	}
	if !wasOver && g.Initialized && g.Engine.IsTerminal() {
		g.endRound()
	}

	for _, ev := range events {
		g.fireEvent(ev)
	}
	return events
}

// fireEvent broadcasts ev via BroadcastFn.
// Assumes lock is held by caller.
func (g *PebblesGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

// endRound records the finished round and fires OnGameEnd.
// Assumes lock is held by caller.
func (g *PebblesGame) endRound() {
	result := database.GameResult{
		GameID:            g.ID,
		Round:             g.Round,
		Difficulty:        g.Engine.Difficulty.String(),
		PebblesCount:      g.Engine.PebblesCount,
		MaxPebblesPerTurn: g.Engine.MaxPebblesPerTurn,
		PebblesRemaining:  g.Engine.PebblesRemaining,
		FirstPlayer:       g.Engine.FirstPlayer.String(),
		Winner:            g.Engine.Winner.String(),
		Turns:             int(g.Engine.TurnNumber),
		GaveUp:            g.gaveUp,
		FinishedAt:        time.Now().UTC(),
	}
	g.Logger.WithFields(logrus.Fields{
		"round":   result.Round,
		"winner":  result.Winner,
		"turns":   result.Turns,
		"gave_up": result.GaveUp,
	}).Info("Round finished.")

	if g.Results != nil {
		g.persist(func(ctx context.Context) error { return g.Results.SaveResult(ctx, result) },
			"Failed saving game result.")
	}
	if g.OnGameEnd != nil {
		g.OnGameEnd(g.ID, result)
	}
}

// logAction appends the processed action to the action log.
// Assumes lock is held by caller.
func (g *PebblesGame) logAction(a Action, events []GameEvent) {
	if g.Actions == nil {
		return
	}
	g.actionIndex++

	payload := make(map[string]interface{})
	if a.Type == ActionTurn {
		payload["pebbles"] = a.Pebbles
	}
	if a.Config != nil {
		payload["difficulty"] = a.Config.Difficulty.String()
		payload["pebbles_count"] = a.Config.PebblesCount
		payload["max_pebbles_per_turn"] = a.Config.MaxPebblesPerTurn
	}
	summary := make([]string, len(events))
	for i, ev := range events {
		summary[i] = ev.String()
	}

	rec := cache.GameActionRecord{
		GameID:        g.ID,
		ActionIndex:   g.actionIndex,
		ActionType:    string(a.Type),
		ActionPayload: payload,
		Events:        summary,
		Timestamp:     time.Now().UnixMilli(),
	}
	g.persist(func(ctx context.Context) error { return g.Actions.PublishGameAction(ctx, rec) },
		"Failed publishing action.")
}

// cacheState stores the latest state.
// Assumes lock is held by caller.
func (g *PebblesGame) cacheState() {
	if g.States == nil || !g.Initialized {
		return
	}
	state := g.Engine
	g.persist(func(ctx context.Context) error { return g.States.SetState(ctx, g.ID, state) },
		"Failed caching game state.")
}

// persist runs write in the background with a short timeout. Failures are
// logged and never affect the game.
func (g *PebblesGame) persist(write func(ctx context.Context) error, failMsg string) {
	g.pending.Add(1)
	go func() {
		defer g.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := write(ctx); err != nil {
			g.Logger.WithError(err).Error(failMsg)
		}
	}()
}

// Wait blocks until every background write started so far has finished.
func (g *PebblesGame) Wait() { g.pending.Wait() }
