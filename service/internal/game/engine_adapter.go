// internal/game/engine_adapter.go
package game

import (
	"errors"

	"github.com/sirupsen/logrus"

	engine "github.com/JohnLee1360/JLpebbles-gear-academy/engine"
)

// toGameEvent maps an engine event onto the wire envelope.
func toGameEvent(ev engine.Event) GameEvent {
	switch ev.Type {
	case engine.EventTurn:
		return GameEvent{Type: EventTurn, Pebbles: ev.Pebbles}
	case engine.EventCounterTurn:
		return GameEvent{Type: EventCounterTurn, Pebbles: ev.Pebbles}
	case engine.EventWon:
		return GameEvent{Type: EventWon, Winner: ev.Player}
	case engine.EventInvalidTurn:
		return GameEvent{Type: EventInvalidTurn}
	}
	return errorEvent("unknown engine event %s", ev.Type)
}

// toGameEvents converts a batch, attaching reason to an invalid_turn.
func toGameEvents(events []engine.Event, reason error) []GameEvent {
	out := make([]GameEvent, 0, len(events))
	for _, ev := range events {
		gev := toGameEvent(ev)
		if gev.Type == EventInvalidTurn && reason != nil {
			gev.Message = reason.Error()
		}
		out = append(out, gev)
	}
	return out
}

// configErrorEvent reports a rejected init or restart.
func configErrorEvent(err error) GameEvent {
	var cfgErr *engine.ConfigError
	if errors.As(err, &cfgErr) {
		return GameEvent{Type: EventConfigError, Message: cfgErr.Error()}
	}
	return GameEvent{Type: EventConfigError, Message: err.Error()}
}

// configFor returns the config carried by a, or the game's defaults.
// Assumes lock is held by caller.
func (g *PebblesGame) configFor(a Action) engine.Config {
	if a.Config != nil {
		return *a.Config
	}
	return g.Defaults
}

// handleInit starts the first round.
// Assumes lock is held by caller.
func (g *PebblesGame) handleInit(a Action) []GameEvent {
	if g.Initialized {
		return []GameEvent{errorEvent("game already initialized, send restart instead")}
	}

	state, events, err := engine.NewGame(g.configFor(a), g.rng)
	if err != nil {
		g.Logger.WithError(err).Info("Init rejected.")
		return []GameEvent{configErrorEvent(err)}
	}

	g.Engine = state
	g.Initialized = true
	g.Round = 1
	g.gaveUp = false
	g.Logger.WithFields(logrus.Fields{
		"round":        g.Round,
		"difficulty":   state.Difficulty.String(),
		"pebbles":      state.PebblesCount,
		"max_per_turn": state.MaxPebblesPerTurn,
		"first_player": state.FirstPlayer.String(),
	}).Info("Game initialized.")
	return toGameEvents(events, nil)
}

// handleTurn applies the user's move and the program's reply.
// Assumes lock is held by caller.
func (g *PebblesGame) handleTurn(a Action) []GameEvent {
	if !g.Initialized {
		return []GameEvent{errorEvent("game not initialized")}
	}

	reason := g.Engine.ValidateTurn(a.Pebbles)
	if reason != nil {
		g.Logger.WithField("pebbles", a.Pebbles).WithError(reason).Debug("Turn rejected.")
	}
	return toGameEvents(g.Engine.Turn(a.Pebbles, g.rng), reason)
}
