// internal/game/special_actions.go
package game

import (
	"github.com/sirupsen/logrus"

	engine "github.com/JohnLee1360/JLpebbles-gear-academy/engine"
)

// handleGiveUp concedes the round to the program.
// Assumes lock is held by caller.
func (g *PebblesGame) handleGiveUp() []GameEvent {
	if !g.Initialized {
		return []GameEvent{errorEvent("game not initialized")}
	}

	var reason error
	if g.Engine.IsTerminal() {
		reason = engine.ErrGameOver
	}
	events := g.Engine.GiveUp()
	if reason == nil {
		g.gaveUp = true
		g.Logger.Info("User gave up.")
	}
	return toGameEvents(events, reason)
}

// handleRestart replaces the round with a fresh one. A rejected config
// leaves the current round untouched.
// Assumes lock is held by caller.
func (g *PebblesGame) handleRestart(a Action) []GameEvent {
	if !g.Initialized {
		return []GameEvent{errorEvent("game not initialized")}
	}

	events, err := g.Engine.Restart(g.configFor(a), g.rng)
	if err != nil {
		g.Logger.WithError(err).Info("Restart rejected.")
		return []GameEvent{configErrorEvent(err)}
	}

	g.Round++
	g.gaveUp = false
	g.Logger.WithFields(logrus.Fields{
		"round":        g.Round,
		"difficulty":   g.Engine.Difficulty.String(),
		"pebbles":      g.Engine.PebblesCount,
		"first_player": g.Engine.FirstPlayer.String(),
	}).Info("Game restarted.")
	return toGameEvents(events, nil)
}
