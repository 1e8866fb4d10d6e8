// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"

	engine "github.com/JohnLee1360/JLpebbles-gear-academy/engine"
)

// StateView is the full observable state of a hosted game.
type StateView struct {
	GameID      uuid.UUID        `json:"game_id"`
	Round       int              `json:"round"`
	Initialized bool             `json:"initialized"`
	GameOver    bool             `json:"game_over"`
	Game        engine.GameState `json:"game"`
	LegalMoves  *MoveRange       `json:"legal_moves,omitempty"` // Nil once the game is over.
}

// MoveRange bounds the legal moves: any n with Min <= n <= Max.
type MoveRange struct {
	Min uint32 `json:"min"`
	Max uint32 `json:"max"`
}

// LegalMoveRange returns the legal moves of state, or nil when none remain.
func LegalMoveRange(state *engine.GameState) *MoveRange {
	lo, hi, ok := state.LegalRange()
	if !ok {
		return nil
	}
	return &MoveRange{Min: lo, Max: hi}
}

// stateView builds the current view.
// Assumes lock is held by caller.
func (g *PebblesGame) stateView() StateView {
	view := StateView{
		GameID:      g.ID,
		Round:       g.Round,
		Initialized: g.Initialized,
		Game:        g.Engine,
	}
	if g.Initialized {
		view.GameOver = g.Engine.IsTerminal()
		view.LegalMoves = LegalMoveRange(&g.Engine)
	}
	return view
}

// Snapshot returns the current view, safe to call from any goroutine.
func (g *PebblesGame) Snapshot() StateView {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.stateView()
}

// stateEvent wraps the current view.
// Assumes lock is held by caller.
func (g *PebblesGame) stateEvent() GameEvent {
	view := g.stateView()
	return GameEvent{Type: EventState, State: &view}
}
